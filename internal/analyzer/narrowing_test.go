package analyzer

import (
	"testing"

	"github.com/funvibe/tea/internal/ast"
	"github.com/funvibe/tea/internal/diagnostics"
	"github.com/funvibe/tea/internal/typesystem"
)

func TestIfNarrowsBothBranches(t *testing.T) {
	x := ast.Param("x", union("Int", "String"), nil)
	y := ast.Var("y", ast.Named("Int"), ast.Ident("x"))
	z := ast.Var("z", ast.Named("String"), ast.Ident("x"))
	fn := ast.Func("f", ast.Params(x), nil, block(
		ast.If(ast.Is(ast.Ident("x"), ast.Named("Int")),
			block(ast.VarStmt(y)),
			block(ast.VarStmt(z))),
	))
	expectNoCheckErrors(t, check(t, program(nil, fn)))

	expectType(t, "x after the branches", x.InferedType, typesystem.UniteType(typesystem.Int, typesystem.String))
	expectType(t, "y", y.InferedType, typesystem.Int)
	expectType(t, "z", z.InferedType, typesystem.String)
}

func TestNarrowingIsScopedToTheBranch(t *testing.T) {
	x := ast.Param("x", union("Int", "String"), nil)
	fn := ast.Func("f", ast.Params(x), nil, block(
		ast.If(ast.Is(ast.Ident("x"), ast.Named("Int")), block(), nil),
		ast.VarStmt(ast.Var("y", ast.Named("Int"), ast.Ident("x"))),
	))
	expectCheckError(t, check(t, program(nil, fn)), diagnostics.ErrTypeIncompatible)
}

func TestAndChainNarrowsRightSide(t *testing.T) {
	cond := ast.Binary(ast.OpAnd,
		ast.Is(ast.Ident("x"), ast.Named("Int")),
		ast.Binary(ast.OpGt, ast.Ident("x"), ast.Int("0")))
	fn := ast.Func("f", ast.Params(ast.Param("x", union("Int", "String"), nil)), nil, block(
		ast.If(cond, block(), nil),
	))
	expectNoCheckErrors(t, check(t, program(nil, fn)))
	if len(cond.Assertions) != 1 {
		t.Errorf("expected one recorded assertion, got %d", len(cond.Assertions))
	}

	unguarded := ast.Func("f", ast.Params(ast.Param("x", union("Int", "String"), nil)), nil, block(
		ast.ExprStmt(ast.Binary(ast.OpGt, ast.Ident("x"), ast.Int("0"))),
	))
	expectCheckError(t, check(t, program(nil, unguarded)), diagnostics.ErrInvalidOperatorUsage)
}

func TestNoneCheckNarrowsElseToNonNull(t *testing.T) {
	x := ast.Param("x", ast.NullableOf(ast.Named("Int")), nil)
	n := ast.Var("n", nil, ast.Ident("x"))
	fn := ast.Func("f", ast.Params(x), nil, block(
		ast.If(ast.Is(ast.Ident("x"), ast.Named("None")), block(), block(ast.VarStmt(n))),
	))
	expectNoCheckErrors(t, check(t, program(nil, fn)))
	expectType(t, "n", n.InferedType, typesystem.Int)
	expectType(t, "x", x.InferedType, typesystem.WithNullable(typesystem.Int, true))
}

func TestIsNotNarrowsThenBranch(t *testing.T) {
	x := ast.Param("x", union("Int", "String"), nil)
	s := ast.Var("s", nil, ast.Ident("x"))
	fn := ast.Func("f", ast.Params(x), nil, block(
		ast.If(ast.IsNot(ast.Ident("x"), ast.Named("Int")), block(ast.VarStmt(s)), nil),
	))
	expectNoCheckErrors(t, check(t, program(nil, fn)))
	expectType(t, "s", s.InferedType, typesystem.String)
}

func TestTernaryNarrowing(t *testing.T) {
	x := ast.Param("x", union("Int", "String"), nil)
	r := ast.Var("r", nil, &ast.TernaryExpression{
		Condition: ast.Is(ast.Ident("x"), ast.Named("String")),
		Then:      ast.Binary(ast.OpConcat, ast.Ident("x"), ast.Str("!")),
		Else:      ast.Unary(ast.OpNeg, ast.Ident("x")),
	})
	fn := ast.Func("f", ast.Params(x), nil, block(ast.VarStmt(r)))
	expectNoCheckErrors(t, check(t, program(nil, fn)))
	expectType(t, "r", r.InferedType, typesystem.UniteType(typesystem.String, typesystem.Int))
}

func TestAssignmentUsesDeclaredType(t *testing.T) {
	x := ast.Param("x", union("Int", "String"), nil)
	fn := ast.Func("f", ast.Params(x), nil, block(
		ast.If(ast.Is(ast.Ident("x"), ast.Named("Int")),
			block(ast.Assign(ast.Ident("x"), ast.Str("s"))), nil),
	))
	expectNoCheckErrors(t, check(t, program(nil, fn)))
}

func TestCompoundAssignmentReadsNarrowedType(t *testing.T) {
	x := ast.Param("x", union("Int", "String"), nil)
	inc := &ast.AssignmentStatement{
		Target:   ast.Ident("x"),
		Value:    ast.Int("1"),
		Compound: true,
		Operator: ast.OpAdd,
	}
	fn := ast.Func("f", ast.Params(x), nil, block(
		ast.If(ast.Is(ast.Ident("x"), ast.Named("Int")), block(inc), nil),
	))
	expectNoCheckErrors(t, check(t, program(nil, fn)))

	unguarded := &ast.AssignmentStatement{
		Target:   ast.Ident("x"),
		Value:    ast.Int("1"),
		Compound: true,
		Operator: ast.OpAdd,
	}
	fn = ast.Func("f", ast.Params(ast.Param("x", union("Int", "String"), nil)), nil, block(unguarded))
	expectCheckError(t, check(t, program(nil, fn)), diagnostics.ErrInvalidOperatorUsage)
}

func TestNarrowingStaysOutOfLazyChecks(t *testing.T) {
	x := ast.Var("x", union("Int", "String"), ast.Int("1"))
	f := ast.Func("f", nil, nil, block(
		ast.If(ast.Is(ast.Ident("x"), ast.Named("Int")),
			block(ast.ExprStmt(ast.Call(ast.Ident("g")))), nil),
	))
	g := ast.Func("g", nil, nil, block(ast.Return(ast.Ident("x"))))
	expectNoCheckErrors(t, check(t, program(nil, x, f, g)))

	declared := typesystem.UniteType(typesystem.Int, typesystem.String)
	expectType(t, "x", x.InferedType, declared)
	expectType(t, "g", returnOf(t, g), declared)
}

func TestNestedNarrowingRestores(t *testing.T) {
	declared := typesystem.UniteType(typesystem.Int, typesystem.String)
	x := ast.Param("x", ast.NullableOf(union("Int", "String")), nil)
	outer := ast.Var("outer", nil, ast.Ident("x"))
	inner := ast.Var("inner", nil, ast.Ident("x"))
	afterInner := ast.Var("afterInner", nil, ast.Ident("x"))
	after := ast.Var("after", nil, ast.Ident("x"))
	fn := ast.Func("f", ast.Params(x), nil, block(
		ast.If(ast.IsNot(ast.Ident("x"), ast.Named("None")), block(
			ast.VarStmt(outer),
			ast.If(ast.Is(ast.Ident("x"), ast.Named("Int")), block(
				ast.VarStmt(inner),
				ast.Return(nil),
			), nil),
			ast.VarStmt(afterInner),
		), nil),
		ast.VarStmt(after),
	))
	expectNoCheckErrors(t, check(t, program(nil, fn)))

	expectType(t, "outer branch", outer.InferedType, declared)
	expectType(t, "inner branch", inner.InferedType, typesystem.Int)
	expectType(t, "after the inner if", afterInner.InferedType, declared)
	expectType(t, "after the construct", after.InferedType, typesystem.WithNullable(declared, true))
	expectType(t, "x", x.InferedType, typesystem.WithNullable(declared, true))
}

func TestNarrowHelper(t *testing.T) {
	u := typesystem.UniteType(typesystem.Int, typesystem.String)
	tests := []struct {
		name              string
		current, asserted typesystem.Type
		exclude           bool
		want              typesystem.Type
	}{
		{"include", u, typesystem.Int, false, typesystem.Int},
		{"exclude", u, typesystem.Int, true, typesystem.String},
		{"exclude none", typesystem.WithNullable(u, true), typesystem.None, true, u},
		{"exclude everything", typesystem.Int, typesystem.Int, true, typesystem.Int},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			expectType(t, test.name, narrow(test.current, test.asserted, test.exclude), test.want)
		})
	}
}
