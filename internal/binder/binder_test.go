package binder

import (
	"testing"

	"github.com/funvibe/tea/internal/ast"
	"github.com/funvibe/tea/internal/diagnostics"
	"github.com/funvibe/tea/internal/symbols"
)

func unitOf(decls ...ast.Declaration) *ast.Unit {
	return &ast.Unit{
		Name:     "app",
		Programs: []*ast.Program{{File: "main.tea", Declarations: decls}},
	}
}

func TestBindDeclaresTopLevel(t *testing.T) {
	fn := ast.Func("f", nil, nil, ast.NewBlock())
	c := ast.Const("PI", ast.Named("Float"), ast.Float("3.14"))
	unit := unitOf(fn, c)

	if err := Bind(unit); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if unit.Scope.Kind() != symbols.ScopeUnit {
		t.Errorf("expected unit scope, got %s", unit.Scope.Kind())
	}
	for _, name := range []string{"f", "PI"} {
		sym, ok := unit.Scope.LookupLocal(name)
		if !ok || !sym.IsResolved() {
			t.Fatalf("expected resolved symbol %q", name)
		}
	}
	if fn.Program != unit.Programs[0] {
		t.Errorf("expected program back-reference")
	}
}

func TestBindDuplicate(t *testing.T) {
	unit := unitOf(ast.Const("A", nil, ast.Int("1")), ast.Const("A", nil, ast.Int("2")))

	err := Bind(unit)
	if !diagnostics.Is(err, diagnostics.ErrDuplicateDeclaration) {
		t.Fatalf("expected duplicate declaration, got %v", err)
	}
}

func TestBindUsesAreDeferred(t *testing.T) {
	unit := unitOf()
	use := &ast.UseDeclaration{DeclBase: ast.DeclBase{Name: "Logger"}, Target: "log", Source: "Logger"}
	unit.Programs[0].Uses = []*ast.UseDeclaration{use}

	if err := Bind(unit); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sym, ok := unit.Programs[0].Scope.LookupLocal("Logger")
	if !ok {
		t.Fatalf("expected use alias in program scope")
	}
	if sym.IsResolved() {
		t.Errorf("use alias must start unresolved")
	}
	if sym.Declaration() != use {
		t.Errorf("expected placeholder declaration")
	}
}

func TestBindLocalsAndParameters(t *testing.T) {
	local := ast.Var("x", nil, ast.Int("1"))
	param := ast.Param("a", ast.Named("Int"), nil)
	body := ast.NewBlock(ast.VarStmt(local), ast.Return(ast.Ident("x")))
	fn := ast.Func("f", ast.Params(param), nil, body)

	if err := Bind(unitOf(fn)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if local.Block != body || local.Function != fn {
		t.Errorf("local must record its block and function")
	}
	if param.Function != fn {
		t.Errorf("parameter must record its function")
	}
	if _, ok := body.Scope.Lookup("a"); !ok {
		t.Errorf("body scope must see parameters")
	}
	if _, ok := fn.Scope.LookupLocal("x"); ok {
		t.Errorf("locals must not leak into the parameter scope")
	}
}

func TestBindLambdaClosesOverBlock(t *testing.T) {
	lambda := ast.Lambda(ast.Params(ast.Param("v", nil, nil)), ast.Ident("x"))
	local := ast.Var("x", nil, ast.Int("1"))
	body := ast.NewBlock(ast.VarStmt(local), ast.VarStmt(ast.Var("g", nil, lambda)))
	fn := ast.Func("f", nil, nil, body)

	if err := Bind(unitOf(fn)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if lambda.Function != fn {
		t.Errorf("lambda must record the enclosing function")
	}
	if _, ok := lambda.Scope.Lookup("x"); !ok {
		t.Errorf("lambda scope must chain to the enclosing block")
	}
}

func TestBindClassMembers(t *testing.T) {
	m := ast.Method("run", nil, nil, ast.NewBlock())
	p := ast.Property("name", ast.Named("String"), nil)
	class := ast.Class("A", nil, m, p)

	if err := Bind(unitOf(class)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.OwnerClass() != class || p.OwnerClass() != class {
		t.Errorf("members must record their owner")
	}
	if got := len(class.OwnMembers()); got != 2 {
		t.Errorf("expected 2 members, got %d", got)
	}
	if _, ok := class.Members.LookupLocal("run"); !ok {
		t.Errorf("expected member symbol")
	}
}

func TestBindForInAndCatch(t *testing.T) {
	loop := &ast.ForInStatement{
		Iterable: ast.Array(ast.Int("1")),
		Value:    ast.Var("item", nil, nil),
		Body:     ast.NewBlock(),
	}
	catch := &ast.CatchClause{Var: ast.Var("e", nil, nil), Body: ast.NewBlock()}
	try := &ast.TryStatement{Body: ast.NewBlock(), Catches: []*ast.CatchClause{catch}}
	unit := unitOf()
	unit.Programs[0].Main = ast.NewBlock(loop, try)

	if err := Bind(unit); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := loop.Body.Scope.LookupLocal("item"); !ok {
		t.Errorf("loop variable must live in the body scope")
	}
	if _, ok := catch.Body.Scope.LookupLocal("e"); !ok {
		t.Errorf("catch variable must live in the catch scope")
	}
	if _, ok := unit.Programs[0].Main.Scope.LookupLocal("item"); ok {
		t.Errorf("loop variable must not leak")
	}
}
