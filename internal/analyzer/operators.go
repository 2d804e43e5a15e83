package analyzer

import (
	"github.com/funvibe/tea/internal/ast"
	"github.com/funvibe/tea/internal/diagnostics"
	"github.com/funvibe/tea/internal/token"
	"github.com/funvibe/tea/internal/typesystem"
)

func (w *walker) VisitBinaryOperation(e *ast.BinaryOperation) (typesystem.Type, error) {
	switch e.Operator {
	case ast.OpAnd:
		return w.inferAnd(e)
	case ast.OpOr:
		if _, err := w.infer(e.Left); err != nil {
			return nil, err
		}
		if _, err := w.infer(e.Right); err != nil {
			return nil, err
		}
		return typesystem.Bool, nil
	}
	lt, err := w.infer(e.Left)
	if err != nil {
		return nil, err
	}
	rt, err := w.infer(e.Right)
	if err != nil {
		return nil, err
	}
	t, op, err := w.binaryResult(e.Operator, lt, rt, e.Token)
	if err != nil {
		return nil, err
	}
	e.Operator = op
	return t, nil
}

// inferAnd infers the right side under the assertions of the left side
// and records the assertions of both.
func (w *walker) inferAnd(e *ast.BinaryOperation) (typesystem.Type, error) {
	if _, err := w.infer(e.Left); err != nil {
		return nil, err
	}
	left := assertionsOf(e.Left)
	err := w.withAssertions(left, false, func() error {
		_, err := w.infer(e.Right)
		return err
	})
	if err != nil {
		return nil, err
	}
	e.Assertions = append(append([]*ast.TypeAssertion{}, left...), assertionsOf(e.Right)...)
	return typesystem.Bool, nil
}

func hasAny(types ...typesystem.Type) bool {
	for _, t := range types {
		if t != nil && t.Tag() == typesystem.TagAny {
			return true
		}
	}
	return false
}

// binaryResult applies the operator rules. Concatenation of arrays is
// reported back as OpArrayConcat.
func (w *walker) binaryResult(op ast.BinaryOperator, l, r typesystem.Type, tok token.Token) (typesystem.Type, ast.BinaryOperator, error) {
	invalid := func() (typesystem.Type, ast.BinaryOperator, error) {
		if w.weak && hasAny(l, r) {
			return typesystem.Any, op, nil
		}
		return nil, op, w.fail(diagnostics.ErrInvalidOperatorUsage, tok, op, l.String()+" and "+r.String())
	}

	switch {
	case op.IsArithmetic():
		if !typesystem.IsNumber(l) || !typesystem.IsNumber(r) {
			return invalid()
		}
		return arithmeticResult(op, l, r, invalid)

	case op == ast.OpConcat, op == ast.OpArrayConcat:
		return w.concatResult(l, r, tok)

	case op == ast.OpMerge:
		ld, lok := typesystem.NonNull(l).(*typesystem.Dict)
		rd, rok := typesystem.NonNull(r).(*typesystem.Dict)
		if !lok || !rok {
			return invalid()
		}
		if !w.accepts(ld.Elem, rd.Elem) {
			return nil, op, w.fail(diagnostics.ErrTypeIncompatible, tok, l, r)
		}
		return l, op, nil

	case op.IsBitwise():
		if !isInteger(l) || !isInteger(r) {
			return invalid()
		}
		return typesystem.UniteType(l, r), op, nil

	case op == ast.OpNoneCoalescing:
		return typesystem.UniteType(typesystem.NonNull(l), r), op, nil

	case op == ast.OpEq, op == ast.OpNotEq, op == ast.OpIdentical, op == ast.OpNotIdentical:
		return typesystem.Bool, op, nil

	case op.IsComparison():
		ok := (typesystem.IsNumber(l) && typesystem.IsNumber(r)) ||
			(isStringish(l) && isStringish(r))
		if !ok {
			if _, _, err := invalid(); err != nil {
				return nil, op, err
			}
		}
		return typesystem.Bool, op, nil
	}
	return invalid()
}

// arithmeticResult: Float wins, then Int; UInt op UInt stays UInt except
// division, which is always Float. Remainder rejects Float.
func arithmeticResult(op ast.BinaryOperator, l, r typesystem.Type, invalid func() (typesystem.Type, ast.BinaryOperator, error)) (typesystem.Type, ast.BinaryOperator, error) {
	hasFloat := typesystem.ContainsTag(l, typesystem.TagFloat) || typesystem.ContainsTag(r, typesystem.TagFloat)
	if op == ast.OpRem && hasFloat {
		return invalid()
	}
	switch {
	case hasFloat, op == ast.OpDiv:
		return typesystem.Float, op, nil
	case typesystem.ContainsTag(l, typesystem.TagInt), typesystem.ContainsTag(r, typesystem.TagInt):
		return typesystem.Int, op, nil
	}
	return typesystem.UInt, op, nil
}

func isInteger(t typesystem.Type) bool {
	return typesystem.IsNumber(t) && !typesystem.ContainsTag(t, typesystem.TagFloat)
}

func isStringish(t typesystem.Type) bool {
	if t == nil || t.Nullable() {
		return false
	}
	for _, m := range typesystem.Members(t) {
		if m.Tag() != typesystem.TagString && m.Tag() != typesystem.TagPureString {
			return false
		}
	}
	return true
}

// concatResult: arrays append arrays of a compatible element type;
// stringable operands make a string, pure when both sides are pure.
func (w *walker) concatResult(l, r typesystem.Type, tok token.Token) (typesystem.Type, ast.BinaryOperator, error) {
	if la, ok := typesystem.NonNull(l).(*typesystem.Array); ok {
		ra, ok := typesystem.NonNull(r).(*typesystem.Array)
		if !ok || !w.accepts(la.Elem, ra.Elem) {
			if w.weak && hasAny(r) {
				return l, ast.OpArrayConcat, nil
			}
			return nil, ast.OpArrayConcat, w.fail(diagnostics.ErrTypeIncompatible, tok, l, r)
		}
		return l, ast.OpArrayConcat, nil
	}
	if typesystem.IsStringable(l) {
		if !typesystem.IsStringable(r) {
			if w.weak && hasAny(r) {
				return typesystem.String, ast.OpConcat, nil
			}
			return nil, ast.OpConcat, w.fail(diagnostics.ErrInvalidOperatorUsage, tok, ast.OpConcat, l.String()+" and "+r.String())
		}
		if typesystem.IsPureString(l) && typesystem.IsPureString(r) {
			return typesystem.PureString, ast.OpConcat, nil
		}
		return typesystem.String, ast.OpConcat, nil
	}
	if w.weak && hasAny(l) {
		return typesystem.Any, ast.OpConcat, nil
	}
	return nil, ast.OpConcat, w.fail(diagnostics.ErrInvalidConcatTarget, tok, l)
}

func (w *walker) VisitUnaryOperation(e *ast.UnaryOperation) (typesystem.Type, error) {
	t, err := w.infer(e.Operand)
	if err != nil {
		return nil, err
	}
	switch e.Operator {
	case ast.OpNot:
		return typesystem.Bool, nil
	case ast.OpBitNot:
		if typesystem.IsNumber(t) || isStringish(t) {
			return typesystem.Int, nil
		}
		return t, nil
	}
	if !typesystem.IsNumber(t) {
		if w.weak && hasAny(t) {
			return typesystem.Any, nil
		}
		return nil, w.fail(diagnostics.ErrInvalidOperatorUsage, e.Token, e.Operator, t)
	}
	if e.Operator == ast.OpNeg && typesystem.ContainsTag(t, typesystem.TagUInt) {
		return typesystem.Replace(t, typesystem.UInt, typesystem.Int), nil
	}
	return t, nil
}
