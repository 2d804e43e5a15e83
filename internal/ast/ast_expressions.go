package ast

import (
	"github.com/funvibe/tea/internal/symbols"
	"github.com/funvibe/tea/internal/token"
	"github.com/funvibe/tea/internal/typesystem"
)

type NoneLiteral struct {
	Token token.Token
}

func (e *NoneLiteral) GetToken() token.Token { return e.Token }
func (e *NoneLiteral) Accept(v ExprVisitor) (typesystem.Type, error) {
	return v.VisitNoneLiteral(e)
}
func (e *NoneLiteral) expressionNode() {}

type BoolLiteral struct {
	Token token.Token
	Value bool
}

func (e *BoolLiteral) GetToken() token.Token { return e.Token }
func (e *BoolLiteral) Accept(v ExprVisitor) (typesystem.Type, error) {
	return v.VisitBoolLiteral(e)
}
func (e *BoolLiteral) expressionNode() {}

// IntegerLiteral is an unsigned literal; negative numbers are unary negation.
type IntegerLiteral struct {
	Token token.Token
	Raw   string
}

func (e *IntegerLiteral) GetToken() token.Token { return e.Token }
func (e *IntegerLiteral) Accept(v ExprVisitor) (typesystem.Type, error) {
	return v.VisitIntegerLiteral(e)
}
func (e *IntegerLiteral) expressionNode() {}

type FloatLiteral struct {
	Token token.Token
	Raw   string
}

func (e *FloatLiteral) GetToken() token.Token { return e.Token }
func (e *FloatLiteral) Accept(v ExprVisitor) (typesystem.Type, error) {
	return v.VisitFloatLiteral(e)
}
func (e *FloatLiteral) expressionNode() {}

// StringLiteral is a constant string without interpolation.
type StringLiteral struct {
	Token token.Token
	Value string
}

func (e *StringLiteral) GetToken() token.Token { return e.Token }
func (e *StringLiteral) Accept(v ExprVisitor) (typesystem.Type, error) {
	return v.VisitStringLiteral(e)
}
func (e *StringLiteral) expressionNode() {}

type InterpolatedString struct {
	Token token.Token
	Parts []Expression
}

func (e *InterpolatedString) GetToken() token.Token { return e.Token }
func (e *InterpolatedString) Accept(v ExprVisitor) (typesystem.Type, error) {
	return v.VisitInterpolatedString(e)
}
func (e *InterpolatedString) expressionNode() {}

type RegexLiteral struct {
	Token   token.Token
	Pattern string
	Flags   string
}

func (e *RegexLiteral) GetToken() token.Token { return e.Token }
func (e *RegexLiteral) Accept(v ExprVisitor) (typesystem.Type, error) {
	return v.VisitRegexLiteral(e)
}
func (e *RegexLiteral) expressionNode() {}

type ArrayLiteral struct {
	Token    token.Token
	Elements []Expression
}

func (e *ArrayLiteral) GetToken() token.Token { return e.Token }
func (e *ArrayLiteral) Accept(v ExprVisitor) (typesystem.Type, error) {
	return v.VisitArrayLiteral(e)
}
func (e *ArrayLiteral) expressionNode() {}

type DictEntry struct {
	Key   Expression
	Value Expression
}

type DictLiteral struct {
	Token   token.Token
	Entries []*DictEntry
}

func (e *DictLiteral) GetToken() token.Token { return e.Token }
func (e *DictLiteral) Accept(v ExprVisitor) (typesystem.Type, error) {
	return v.VisitDictLiteral(e)
}
func (e *DictLiteral) expressionNode() {}

type ObjectLiteral struct {
	Token   token.Token
	Members []*ObjectMember
}

func (e *ObjectLiteral) GetToken() token.Token { return e.Token }
func (e *ObjectLiteral) Accept(v ExprVisitor) (typesystem.Type, error) {
	return v.VisitObjectLiteral(e)
}
func (e *ObjectLiteral) expressionNode() {}

// PlainIdentifier is an unqualified name. Symbol is attached on first
// resolution.
type PlainIdentifier struct {
	Token  token.Token
	Name   string
	Symbol *symbols.Symbol
}

func (e *PlainIdentifier) GetToken() token.Token { return e.Token }
func (e *PlainIdentifier) Accept(v ExprVisitor) (typesystem.Type, error) {
	return v.VisitPlainIdentifier(e)
}
func (e *PlainIdentifier) expressionNode() {}

type ThisIdentifier struct {
	Token token.Token
}

func (e *ThisIdentifier) GetToken() token.Token { return e.Token }
func (e *ThisIdentifier) Accept(v ExprVisitor) (typesystem.Type, error) {
	return v.VisitThisIdentifier(e)
}
func (e *ThisIdentifier) expressionNode() {}

type SuperIdentifier struct {
	Token token.Token
}

func (e *SuperIdentifier) GetToken() token.Token { return e.Token }
func (e *SuperIdentifier) Accept(v ExprVisitor) (typesystem.Type, error) {
	return v.VisitSuperIdentifier(e)
}
func (e *SuperIdentifier) expressionNode() {}

// AccessingIdentifier is member access: Object.Name
type AccessingIdentifier struct {
	Token  token.Token
	Object Expression
	Name   string
	Member Member // Resolved member, nil for dict-style access
}

func (e *AccessingIdentifier) GetToken() token.Token { return e.Token }
func (e *AccessingIdentifier) Accept(v ExprVisitor) (typesystem.Type, error) {
	return v.VisitAccessingIdentifier(e)
}
func (e *AccessingIdentifier) expressionNode() {}

// KeyAccessing: Left[Key]
type KeyAccessing struct {
	Token token.Token
	Left  Expression
	Key   Expression
}

func (e *KeyAccessing) GetToken() token.Token { return e.Token }
func (e *KeyAccessing) Accept(v ExprVisitor) (typesystem.Type, error) {
	return v.VisitKeyAccessing(e)
}
func (e *KeyAccessing) expressionNode() {}

// SquareAccessing: Left[] as an append target.
type SquareAccessing struct {
	Token token.Token
	Left  Expression
}

func (e *SquareAccessing) GetToken() token.Token { return e.Token }
func (e *SquareAccessing) Accept(v ExprVisitor) (typesystem.Type, error) {
	return v.VisitSquareAccessing(e)
}
func (e *SquareAccessing) expressionNode() {}

type Parentheses struct {
	Token token.Token
	Inner Expression
}

func (e *Parentheses) GetToken() token.Token { return e.Token }
func (e *Parentheses) Accept(v ExprVisitor) (typesystem.Type, error) {
	return v.VisitParentheses(e)
}
func (e *Parentheses) expressionNode() {}

// TypeAssertion is a narrowing fact: Target is (or is not) Type.
type TypeAssertion struct {
	Target Declaration
	Type   typesystem.Type
	Not    bool
}

type BinaryOperation struct {
	Token    token.Token
	Operator BinaryOperator
	Left     Expression
	Right    Expression
	// Assertions carried through an and-chain, recorded during inference.
	Assertions []*TypeAssertion
}

func (e *BinaryOperation) GetToken() token.Token { return e.Token }
func (e *BinaryOperation) Accept(v ExprVisitor) (typesystem.Type, error) {
	return v.VisitBinaryOperation(e)
}
func (e *BinaryOperation) expressionNode() {}

type UnaryOperation struct {
	Token    token.Token
	Operator UnaryOperator
	Operand  Expression
}

func (e *UnaryOperation) GetToken() token.Token { return e.Token }
func (e *UnaryOperation) Accept(v ExprVisitor) (typesystem.Type, error) {
	return v.VisitUnaryOperation(e)
}
func (e *UnaryOperation) expressionNode() {}

type TernaryExpression struct {
	Token     token.Token
	Condition Expression
	Then      Expression
	Else      Expression
}

func (e *TernaryExpression) GetToken() token.Token { return e.Token }
func (e *TernaryExpression) Accept(v ExprVisitor) (typesystem.Type, error) {
	return v.VisitTernaryExpression(e)
}
func (e *TernaryExpression) expressionNode() {}

// CastOperation: Left as Target
type CastOperation struct {
	Token  token.Token
	Left   Expression
	Target TypeExpr
}

func (e *CastOperation) GetToken() token.Token { return e.Token }
func (e *CastOperation) Accept(v ExprVisitor) (typesystem.Type, error) {
	return v.VisitCastOperation(e)
}
func (e *CastOperation) expressionNode() {}

// IsOperation: Left is [not] Target
type IsOperation struct {
	Token     token.Token
	Left      Expression
	Target    TypeExpr
	Not       bool
	Assertion *TypeAssertion // Recorded when Left is a variable or parameter
}

func (e *IsOperation) GetToken() token.Token { return e.Token }
func (e *IsOperation) Accept(v ExprVisitor) (typesystem.Type, error) {
	return v.VisitIsOperation(e)
}
func (e *IsOperation) expressionNode() {}

// Argument is a positional (Name == "") or named call argument.
type Argument struct {
	Token token.Token
	Name  string
	Value Expression
}

// CallbackArgument is a trailing lambda, optionally labelled with the
// parameter it binds to.
type CallbackArgument struct {
	Token token.Token
	Label string
	Value *AnonymousFunction
}

// CallArguments is the argument part shared by calls and instantiations.
type CallArguments struct {
	Args      []*Argument
	Callbacks []*CallbackArgument
	// Normalized is the positional list in declaration order, filled when
	// named arguments were used.
	Normalized []Expression
}

type CallExpression struct {
	Token  token.Token
	Callee Expression
	CallArguments
	Target Callable // Resolved callee declaration
}

func (e *CallExpression) GetToken() token.Token { return e.Token }
func (e *CallExpression) Accept(v ExprVisitor) (typesystem.Type, error) {
	return v.VisitCallExpression(e)
}
func (e *CallExpression) expressionNode() {}

// PipeCall: Left |> Call, with Left passed as the first argument.
type PipeCall struct {
	Token token.Token
	Left  Expression
	Call  *CallExpression
}

func (e *PipeCall) GetToken() token.Token { return e.Token }
func (e *PipeCall) Accept(v ExprVisitor) (typesystem.Type, error) {
	return v.VisitPipeCall(e)
}
func (e *PipeCall) expressionNode() {}

// NewExpression: new Class(args)
type NewExpression struct {
	Token token.Token
	Class *PlainIdentifier
	CallArguments
	Target ClassKindred
}

func (e *NewExpression) GetToken() token.Token { return e.Token }
func (e *NewExpression) Accept(v ExprVisitor) (typesystem.Type, error) {
	return v.VisitNewExpression(e)
}
func (e *NewExpression) expressionNode() {}

// AnonymousFunction is a lambda: both an expression and a declaration.
// Either Body or Result is set.
type AnonymousFunction struct {
	DeclBase
	FuncBase
	Result Expression
}

func (e *AnonymousFunction) Accept(v ExprVisitor) (typesystem.Type, error) {
	return v.VisitAnonymousFunction(e)
}
func (e *AnonymousFunction) AcceptDeclaration(v DeclVisitor) error {
	return v.VisitAnonymousFunctionDecl(e)
}
func (e *AnonymousFunction) expressionNode() {}

type YieldExpression struct {
	Token token.Token
	Value Expression
}

func (e *YieldExpression) GetToken() token.Token { return e.Token }
func (e *YieldExpression) Accept(v ExprVisitor) (typesystem.Type, error) {
	return v.VisitYieldExpression(e)
}
func (e *YieldExpression) expressionNode() {}

// IncludeExpression embeds another program of the unit.
type IncludeExpression struct {
	Token  token.Token
	Path   string
	Target *Program
}

func (e *IncludeExpression) GetToken() token.Token { return e.Token }
func (e *IncludeExpression) Accept(v ExprVisitor) (typesystem.Type, error) {
	return v.VisitIncludeExpression(e)
}
func (e *IncludeExpression) expressionNode() {}

type XAttribute struct {
	Name  string
	Value Expression
}

// XTag is a UI fragment: <Name attrs...>children</Name>
type XTag struct {
	Token      token.Token
	Name       string
	Attributes []*XAttribute
	Children   []Expression
}

func (e *XTag) GetToken() token.Token { return e.Token }
func (e *XTag) Accept(v ExprVisitor) (typesystem.Type, error) {
	return v.VisitXTag(e)
}
func (e *XTag) expressionNode() {}
