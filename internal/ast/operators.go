package ast

type BinaryOperator int

const (
	OpAdd BinaryOperator = iota
	OpSub
	OpMul
	OpDiv
	OpRem
	OpPow
	OpConcat
	OpArrayConcat // Rewritten from OpConcat when the left side is an Array
	OpMerge
	OpBitAnd
	OpBitOr
	OpBitXor
	OpShl
	OpShr
	OpNoneCoalescing
	OpEq
	OpNotEq
	OpIdentical
	OpNotIdentical
	OpLt
	OpLe
	OpGt
	OpGe
	OpAnd
	OpOr
)

var binaryOperatorNames = map[BinaryOperator]string{
	OpAdd:            "+",
	OpSub:            "-",
	OpMul:            "*",
	OpDiv:            "/",
	OpRem:            "%",
	OpPow:            "**",
	OpConcat:         "concat",
	OpArrayConcat:    "array concat",
	OpMerge:          "merge",
	OpBitAnd:         "&",
	OpBitOr:          "|",
	OpBitXor:         "^",
	OpShl:            "<<",
	OpShr:            ">>",
	OpNoneCoalescing: "??",
	OpEq:             "==",
	OpNotEq:          "!=",
	OpIdentical:      "===",
	OpNotIdentical:   "!==",
	OpLt:             "<",
	OpLe:             "<=",
	OpGt:             ">",
	OpGe:             ">=",
	OpAnd:            "and",
	OpOr:             "or",
}

func (op BinaryOperator) String() string {
	if s, ok := binaryOperatorNames[op]; ok {
		return s
	}
	return "?"
}

// IsArithmetic covers the number-only operators.
func (op BinaryOperator) IsArithmetic() bool {
	return op >= OpAdd && op <= OpPow
}

func (op BinaryOperator) IsBitwise() bool {
	return op >= OpBitAnd && op <= OpShr
}

func (op BinaryOperator) IsComparison() bool {
	return op >= OpEq && op <= OpGe
}

type UnaryOperator int

const (
	OpNeg UnaryOperator = iota
	OpPlus
	OpBitNot
	OpNot
)

func (op UnaryOperator) String() string {
	switch op {
	case OpNeg:
		return "-"
	case OpPlus:
		return "+"
	case OpBitNot:
		return "~"
	case OpNot:
		return "not"
	}
	return "?"
}
