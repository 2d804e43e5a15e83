package ast

// Constructors for producers that build trees programmatically: the
// weak-mode synthesizer and tests. Tokens are left zero.

func Ident(name string) *PlainIdentifier { return &PlainIdentifier{Name: name} }
func Int(raw string) *IntegerLiteral     { return &IntegerLiteral{Raw: raw} }
func Float(raw string) *FloatLiteral     { return &FloatLiteral{Raw: raw} }
func Str(value string) *StringLiteral    { return &StringLiteral{Value: value} }
func Bool(value bool) *BoolLiteral       { return &BoolLiteral{Value: value} }
func None() *NoneLiteral                 { return &NoneLiteral{} }
func This() *ThisIdentifier              { return &ThisIdentifier{} }
func Super() *SuperIdentifier            { return &SuperIdentifier{} }

func Named(name string) *NamedType         { return &NamedType{Name: name} }
func ArrayOf(elem TypeExpr) *ArrayType     { return &ArrayType{Elem: elem} }
func DictOf(elem TypeExpr) *DictType       { return &DictType{Elem: elem} }
func NullableOf(inner TypeExpr) *NullableType {
	return &NullableType{Inner: inner}
}
func UnionOf(members ...TypeExpr) *UnionType { return &UnionType{Members: members} }

func Array(elems ...Expression) *ArrayLiteral { return &ArrayLiteral{Elements: elems} }

func Dict(kv ...Expression) *DictLiteral {
	d := &DictLiteral{}
	for i := 0; i+1 < len(kv); i += 2 {
		d.Entries = append(d.Entries, &DictEntry{Key: kv[i], Value: kv[i+1]})
	}
	return d
}

func Binary(op BinaryOperator, left, right Expression) *BinaryOperation {
	return &BinaryOperation{Operator: op, Left: left, Right: right}
}

func Unary(op UnaryOperator, operand Expression) *UnaryOperation {
	return &UnaryOperation{Operator: op, Operand: operand}
}

func Is(left Expression, target TypeExpr) *IsOperation {
	return &IsOperation{Left: left, Target: target}
}

func IsNot(left Expression, target TypeExpr) *IsOperation {
	return &IsOperation{Left: left, Target: target, Not: true}
}

func Access(object Expression, name string) *AccessingIdentifier {
	return &AccessingIdentifier{Object: object, Name: name}
}

func Key(left, key Expression) *KeyAccessing { return &KeyAccessing{Left: left, Key: key} }

func Arg(value Expression) *Argument { return &Argument{Value: value} }

func NamedArg(name string, value Expression) *Argument {
	return &Argument{Name: name, Value: value}
}

func Call(callee Expression, args ...*Argument) *CallExpression {
	return &CallExpression{Callee: callee, CallArguments: CallArguments{Args: args}}
}

func New(class string, args ...*Argument) *NewExpression {
	return &NewExpression{Class: Ident(class), CallArguments: CallArguments{Args: args}}
}

func Lambda(params []*ParameterDeclaration, result Expression) *AnonymousFunction {
	return &AnonymousFunction{
		DeclBase: DeclBase{Name: "lambda"},
		FuncBase: FuncBase{Params: params},
		Result:   result,
	}
}

func LambdaBlock(params []*ParameterDeclaration, body ...Statement) *AnonymousFunction {
	return &AnonymousFunction{
		DeclBase: DeclBase{Name: "lambda"},
		FuncBase: FuncBase{Params: params, Body: NewBlock(body...)},
	}
}

func NewBlock(stmts ...Statement) *Block { return &Block{Statements: stmts} }

func ExprStmt(e Expression) *ExpressionStatement { return &ExpressionStatement{Expr: e} }
func Return(e Expression) *ReturnStatement        { return &ReturnStatement{Value: e} }

func Var(name string, hint TypeExpr, value Expression) *VariableDeclaration {
	return &VariableDeclaration{DeclBase: DeclBase{Name: name, DeclaredType: hint}, Value: value}
}

func VarStmt(decl *VariableDeclaration) *VarStatement { return &VarStatement{Decl: decl} }

func Assign(target, value Expression) *AssignmentStatement {
	return &AssignmentStatement{Target: target, Value: value}
}

func If(cond Expression, then *Block, els Statement) *IfStatement {
	return &IfStatement{Condition: cond, Then: then, Else: els}
}

func Const(name string, hint TypeExpr, value Expression) *ConstantDeclaration {
	return &ConstantDeclaration{DeclBase: DeclBase{Name: name, DeclaredType: hint}, Value: value}
}

func Param(name string, hint TypeExpr, def Expression) *ParameterDeclaration {
	return &ParameterDeclaration{DeclBase: DeclBase{Name: name, DeclaredType: hint}, Value: def}
}

func Params(params ...*ParameterDeclaration) []*ParameterDeclaration { return params }

// Func builds a function; a nil body means declare-only.
func Func(name string, params []*ParameterDeclaration, ret TypeExpr, body *Block) *FunctionDeclaration {
	return &FunctionDeclaration{
		DeclBase: DeclBase{Name: name, DeclaredType: ret},
		FuncBase: FuncBase{Params: params, Body: body},
	}
}

func Method(name string, params []*ParameterDeclaration, ret TypeExpr, body *Block) *MethodDeclaration {
	return &MethodDeclaration{
		DeclBase: DeclBase{Name: name, DeclaredType: ret},
		FuncBase: FuncBase{Params: params, Body: body},
	}
}

func Property(name string, hint TypeExpr, value Expression) *PropertyDeclaration {
	return &PropertyDeclaration{DeclBase: DeclBase{Name: name, DeclaredType: hint}, Value: value}
}

func ClassConst(name string, hint TypeExpr, value Expression) *ClassConstantDeclaration {
	return &ClassConstantDeclaration{DeclBase: DeclBase{Name: name, DeclaredType: hint}, Value: value}
}

func baseNames(names []string) []*PlainIdentifier {
	out := make([]*PlainIdentifier, len(names))
	for i, n := range names {
		out[i] = Ident(n)
	}
	return out
}

// Class builds a class; bases lists the superclass and interfaces by name.
func Class(name string, bases []string, members ...Member) *ClassDeclaration {
	return &ClassDeclaration{
		DeclBase:  DeclBase{Name: name},
		ClassBase: ClassBase{BaseNames: baseNames(bases), Declarations: members},
	}
}

func Interface(name string, bases []string, members ...Member) *InterfaceDeclaration {
	return &InterfaceDeclaration{
		DeclBase:  DeclBase{Name: name},
		ClassBase: ClassBase{BaseNames: baseNames(bases), Declarations: members},
	}
}

func Trait(name string, members ...Member) *TraitDeclaration {
	return &TraitDeclaration{
		DeclBase:  DeclBase{Name: name},
		ClassBase: ClassBase{Declarations: members},
	}
}

// WithModifier sets the access modifier and returns d for chaining.
func WithModifier[T Declaration](d T, m Modifier) T {
	d.Base().Modifier = m
	return d
}

// Static marks d as a static member.
func Static[T Declaration](d T) T {
	d.Base().IsStatic = true
	return d
}
