package analyzer

import (
	"testing"

	"github.com/funvibe/tea/internal/ast"
	"github.com/funvibe/tea/internal/diagnostics"
)

// account has a private balance, a protected owner and a public getter.
func account() *ast.ClassDeclaration {
	return ast.Class("Account", nil,
		ast.WithModifier(ast.Property("balance", ast.Named("Int"), ast.Int("0")), ast.Private),
		ast.WithModifier(ast.Property("owner", ast.Named("String"), ast.Str("")), ast.Protected),
		ast.Method("getBalance", nil, ast.Named("Int"), block(ast.Return(ast.Access(ast.This(), "balance")))),
		ast.WithModifier(ast.Static(ast.ClassConst("LIMIT", nil, ast.Int("10"))), ast.Private),
		ast.Static(ast.Method("limit", nil, nil, block(ast.Return(ast.Access(ast.Ident("Account"), "LIMIT"))))),
	)
}

func accessFromMain(member string) *ast.Block {
	return block(
		ast.VarStmt(ast.Var("a", nil, ast.New("Account"))),
		ast.ExprStmt(ast.Access(ast.Ident("a"), member)),
	)
}

func TestMemberAccess(t *testing.T) {
	expectNoCheckErrors(t, check(t, program(accessFromMain("getBalance"), account())))
	expectCheckError(t, check(t, program(accessFromMain("balance"), account())), diagnostics.ErrAccessViolation)
	expectCheckError(t, check(t, program(accessFromMain("owner"), account())), diagnostics.ErrAccessViolation)

	static := block(ast.ExprStmt(ast.Access(ast.Ident("Account"), "LIMIT")))
	expectCheckError(t, check(t, program(static, account())), diagnostics.ErrAccessViolation)
}

func TestProtectedThroughSubclass(t *testing.T) {
	savings := ast.Class("Savings", []string{"Account"},
		ast.Method("who", nil, nil, block(ast.Return(ast.Access(ast.This(), "owner")))),
	)
	expectNoCheckErrors(t, check(t, program(nil, account(), savings)))

	private := ast.Class("Savings", []string{"Account"},
		ast.Method("peek", nil, nil, block(ast.Return(ast.Access(ast.This(), "balance")))),
	)
	expectCheckError(t, check(t, program(nil, account(), private)), diagnostics.ErrAccessViolation)

	other := ast.Class("Other", nil,
		ast.Method("steal", ast.Params(ast.Param("a", ast.Named("Account"), nil)), nil,
			block(ast.Return(ast.Access(ast.Ident("a"), "owner")))),
	)
	expectCheckError(t, check(t, program(nil, account(), other)), diagnostics.ErrAccessViolation)
}

func TestStaticAccess(t *testing.T) {
	instance := block(ast.ExprStmt(ast.Access(ast.Ident("Account"), "getBalance")))
	expectCheckError(t, check(t, program(instance, account())), diagnostics.ErrMemberNotFound)

	static := block(ast.ExprStmt(ast.Call(ast.Access(ast.Ident("Account"), "limit"))))
	expectNoCheckErrors(t, check(t, program(static, account())))
}

func TestTraitPrivateMembersBelongToTheClass(t *testing.T) {
	trait := ast.Trait("Counter", ast.WithModifier(ast.Property("count", ast.Named("Int"), ast.Int("0")), ast.Private))
	c := ast.Class("C", nil, ast.Method("next", nil, nil, block(ast.Return(ast.Access(ast.This(), "count")))))
	c.TraitNames = []*ast.PlainIdentifier{ast.Ident("Counter")}
	expectNoCheckErrors(t, check(t, program(nil, trait, c)))
}
