package ast

import "github.com/funvibe/tea/internal/token"

type ExpressionStatement struct {
	Token token.Token
	Expr  Expression
}

func (s *ExpressionStatement) GetToken() token.Token { return s.Token }
func (s *ExpressionStatement) AcceptStatement(v StmtVisitor) error {
	return v.VisitExpressionStatement(s)
}
func (s *ExpressionStatement) statementNode() {}

// VarStatement introduces a block-scoped variable.
type VarStatement struct {
	Token token.Token
	Decl  *VariableDeclaration
}

func (s *VarStatement) GetToken() token.Token { return s.Token }
func (s *VarStatement) AcceptStatement(v StmtVisitor) error {
	return v.VisitVarStatement(s)
}
func (s *VarStatement) statementNode() {}

// AssignmentStatement: Target = Value, or Target op= Value when Compound.
type AssignmentStatement struct {
	Token    token.Token
	Target   Expression
	Value    Expression
	Compound bool
	Operator BinaryOperator
}

func (s *AssignmentStatement) GetToken() token.Token { return s.Token }
func (s *AssignmentStatement) AcceptStatement(v StmtVisitor) error {
	return v.VisitAssignmentStatement(s)
}
func (s *AssignmentStatement) statementNode() {}

type ReturnStatement struct {
	Token token.Token
	Value Expression
}

func (s *ReturnStatement) GetToken() token.Token { return s.Token }
func (s *ReturnStatement) AcceptStatement(v StmtVisitor) error {
	return v.VisitReturnStatement(s)
}
func (s *ReturnStatement) statementNode() {}

// IfStatement: Else is nil, a *Block, or an *IfStatement for elseif.
type IfStatement struct {
	Token     token.Token
	Condition Expression
	Then      *Block
	Else      Statement
}

func (s *IfStatement) GetToken() token.Token { return s.Token }
func (s *IfStatement) AcceptStatement(v StmtVisitor) error {
	return v.VisitIfStatement(s)
}
func (s *IfStatement) statementNode() {}

type WhileStatement struct {
	Token     token.Token
	Condition Expression
	Body      *Block
}

func (s *WhileStatement) GetToken() token.Token { return s.Token }
func (s *WhileStatement) AcceptStatement(v StmtVisitor) error {
	return v.VisitWhileStatement(s)
}
func (s *WhileStatement) statementNode() {}

// ForInStatement: for Key, Value in Iterable. Key is optional. The loop
// variables are declared in Body's scope.
type ForInStatement struct {
	Token    token.Token
	Iterable Expression
	Key      *VariableDeclaration
	Value    *VariableDeclaration
	Body     *Block
}

func (s *ForInStatement) GetToken() token.Token { return s.Token }
func (s *ForInStatement) AcceptStatement(v StmtVisitor) error {
	return v.VisitForInStatement(s)
}
func (s *ForInStatement) statementNode() {}

// CatchClause binds Var (whose hint is the caught class) in Body's scope.
type CatchClause struct {
	Token token.Token
	Var   *VariableDeclaration
	Body  *Block
}

type TryStatement struct {
	Token   token.Token
	Body    *Block
	Catches []*CatchClause
	Finally *Block
}

func (s *TryStatement) GetToken() token.Token { return s.Token }
func (s *TryStatement) AcceptStatement(v StmtVisitor) error {
	return v.VisitTryStatement(s)
}
func (s *TryStatement) statementNode() {}

type ThrowStatement struct {
	Token token.Token
	Value Expression
}

func (s *ThrowStatement) GetToken() token.Token { return s.Token }
func (s *ThrowStatement) AcceptStatement(v StmtVisitor) error {
	return v.VisitThrowStatement(s)
}
func (s *ThrowStatement) statementNode() {}

type EchoStatement struct {
	Token  token.Token
	Values []Expression
}

func (s *EchoStatement) GetToken() token.Token { return s.Token }
func (s *EchoStatement) AcceptStatement(v StmtVisitor) error {
	return v.VisitEchoStatement(s)
}
func (s *EchoStatement) statementNode() {}

type BreakStatement struct {
	Token token.Token
}

func (s *BreakStatement) GetToken() token.Token { return s.Token }
func (s *BreakStatement) AcceptStatement(v StmtVisitor) error {
	return v.VisitBreakStatement(s)
}
func (s *BreakStatement) statementNode() {}

type ContinueStatement struct {
	Token token.Token
}

func (s *ContinueStatement) GetToken() token.Token { return s.Token }
func (s *ContinueStatement) AcceptStatement(v StmtVisitor) error {
	return v.VisitContinueStatement(s)
}
func (s *ContinueStatement) statementNode() {}
