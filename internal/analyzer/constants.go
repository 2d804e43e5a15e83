package analyzer

import (
	"github.com/funvibe/tea/internal/ast"
)

// isConstantExpression reports whether e can be evaluated at compile
// time: literals, other constants, class references and operators or
// collections over those. e must have been inferred already.
func isConstantExpression(e ast.Expression) bool {
	switch n := e.(type) {
	case *ast.NoneLiteral, *ast.BoolLiteral, *ast.IntegerLiteral, *ast.FloatLiteral,
		*ast.StringLiteral, *ast.RegexLiteral:
		return true
	case *ast.PlainIdentifier:
		if n.Symbol == nil {
			return false
		}
		switch n.Symbol.Declaration().(type) {
		case *ast.ConstantDeclaration, *ast.ClassConstantDeclaration, ast.ClassKindred:
			return true
		}
		return false
	case *ast.AccessingIdentifier:
		if _, ok := n.Member.(*ast.ClassConstantDeclaration); !ok {
			return false
		}
		return isConstantExpression(n.Object)
	case *ast.Parentheses:
		return isConstantExpression(n.Inner)
	case *ast.UnaryOperation:
		return isConstantExpression(n.Operand)
	case *ast.BinaryOperation:
		return isConstantExpression(n.Left) && isConstantExpression(n.Right)
	case *ast.TernaryExpression:
		return isConstantExpression(n.Condition) &&
			isConstantExpression(n.Then) && isConstantExpression(n.Else)
	case *ast.ArrayLiteral:
		for _, x := range n.Elements {
			if !isConstantExpression(x) {
				return false
			}
		}
		return true
	case *ast.DictLiteral:
		for _, entry := range n.Entries {
			if !isConstantExpression(entry.Key) || !isConstantExpression(entry.Value) {
				return false
			}
		}
		return true
	}
	return false
}
