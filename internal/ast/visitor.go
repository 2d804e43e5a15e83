package ast

import "github.com/funvibe/tea/internal/typesystem"

// ExprVisitor must handle every expression kind. Adding a kind adds a
// method here, which breaks every visitor until it is handled.
type ExprVisitor interface {
	VisitNoneLiteral(e *NoneLiteral) (typesystem.Type, error)
	VisitBoolLiteral(e *BoolLiteral) (typesystem.Type, error)
	VisitIntegerLiteral(e *IntegerLiteral) (typesystem.Type, error)
	VisitFloatLiteral(e *FloatLiteral) (typesystem.Type, error)
	VisitStringLiteral(e *StringLiteral) (typesystem.Type, error)
	VisitInterpolatedString(e *InterpolatedString) (typesystem.Type, error)
	VisitRegexLiteral(e *RegexLiteral) (typesystem.Type, error)
	VisitArrayLiteral(e *ArrayLiteral) (typesystem.Type, error)
	VisitDictLiteral(e *DictLiteral) (typesystem.Type, error)
	VisitObjectLiteral(e *ObjectLiteral) (typesystem.Type, error)
	VisitPlainIdentifier(e *PlainIdentifier) (typesystem.Type, error)
	VisitThisIdentifier(e *ThisIdentifier) (typesystem.Type, error)
	VisitSuperIdentifier(e *SuperIdentifier) (typesystem.Type, error)
	VisitAccessingIdentifier(e *AccessingIdentifier) (typesystem.Type, error)
	VisitKeyAccessing(e *KeyAccessing) (typesystem.Type, error)
	VisitSquareAccessing(e *SquareAccessing) (typesystem.Type, error)
	VisitParentheses(e *Parentheses) (typesystem.Type, error)
	VisitBinaryOperation(e *BinaryOperation) (typesystem.Type, error)
	VisitUnaryOperation(e *UnaryOperation) (typesystem.Type, error)
	VisitTernaryExpression(e *TernaryExpression) (typesystem.Type, error)
	VisitCastOperation(e *CastOperation) (typesystem.Type, error)
	VisitIsOperation(e *IsOperation) (typesystem.Type, error)
	VisitCallExpression(e *CallExpression) (typesystem.Type, error)
	VisitPipeCall(e *PipeCall) (typesystem.Type, error)
	VisitNewExpression(e *NewExpression) (typesystem.Type, error)
	VisitAnonymousFunction(e *AnonymousFunction) (typesystem.Type, error)
	VisitYieldExpression(e *YieldExpression) (typesystem.Type, error)
	VisitIncludeExpression(e *IncludeExpression) (typesystem.Type, error)
	VisitXTag(e *XTag) (typesystem.Type, error)
}

// StmtVisitor must handle every statement kind.
type StmtVisitor interface {
	VisitExpressionStatement(s *ExpressionStatement) error
	VisitVarStatement(s *VarStatement) error
	VisitAssignmentStatement(s *AssignmentStatement) error
	VisitReturnStatement(s *ReturnStatement) error
	VisitIfStatement(s *IfStatement) error
	VisitWhileStatement(s *WhileStatement) error
	VisitForInStatement(s *ForInStatement) error
	VisitTryStatement(s *TryStatement) error
	VisitThrowStatement(s *ThrowStatement) error
	VisitEchoStatement(s *EchoStatement) error
	VisitBreakStatement(s *BreakStatement) error
	VisitContinueStatement(s *ContinueStatement) error
	VisitBlock(s *Block) error
}

// DeclVisitor must handle every declaration kind.
type DeclVisitor interface {
	VisitConstantDeclaration(d *ConstantDeclaration) error
	VisitVariableDeclaration(d *VariableDeclaration) error
	VisitParameterDeclaration(d *ParameterDeclaration) error
	VisitFunctionDeclaration(d *FunctionDeclaration) error
	VisitMethodDeclaration(d *MethodDeclaration) error
	VisitMaskedDeclaration(d *MaskedDeclaration) error
	VisitAnonymousFunctionDecl(d *AnonymousFunction) error
	VisitClassDeclaration(d *ClassDeclaration) error
	VisitInterfaceDeclaration(d *InterfaceDeclaration) error
	VisitTraitDeclaration(d *TraitDeclaration) error
	VisitPropertyDeclaration(d *PropertyDeclaration) error
	VisitClassConstantDeclaration(d *ClassConstantDeclaration) error
	VisitObjectMember(d *ObjectMember) error
	VisitUseDeclaration(d *UseDeclaration) error
	VisitBuiltinTypeClassDeclaration(d *BuiltinTypeClassDeclaration) error
}
