package analyzer

import (
	"testing"

	"github.com/funvibe/tea/internal/ast"
	"github.com/funvibe/tea/internal/binder"
	"github.com/funvibe/tea/internal/config"
	"github.com/funvibe/tea/internal/diagnostics"
	"github.com/funvibe/tea/internal/typesystem"
)

// newBuiltin builds a small builtin unit: Exception, Iterator, IView and
// a String type class.
func newBuiltin(t *testing.T) *ast.Unit {
	t.Helper()
	exception := ast.Class("Exception", nil, ast.Property("message", ast.Named("String"), nil))
	iterator := ast.Interface("Iterator", nil)
	view := ast.Interface("IView", nil, ast.Method("render", nil, ast.Named("XView"), nil))
	str := &ast.BuiltinTypeClassDeclaration{
		DeclBase: ast.DeclBase{Name: "String"},
		ClassBase: ast.ClassBase{
			IsDeclareMode: true,
			Declarations:  []ast.Member{ast.Method("length", nil, ast.Named("Int"), nil)},
		},
		Type: typesystem.String,
	}
	unit := &ast.Unit{
		Name: config.BuiltinUnitName,
		Programs: []*ast.Program{{
			File:         "builtin.tea",
			Declarations: []ast.Declaration{exception, iterator, view, str},
		}},
	}
	if err := binder.BindBuiltin(unit); err != nil {
		t.Fatalf("bind builtin: %v", err)
	}
	return unit
}

func newAnalyzer(t *testing.T, opts config.Options, unit *ast.Unit) *Analyzer {
	t.Helper()
	if err := binder.Bind(unit); err != nil {
		t.Fatalf("bind: %v", err)
	}
	a := New(unit, opts)
	a.SetBuiltin(newBuiltin(t), opts.WellKnown)
	return a
}

func program(main *ast.Block, decls ...ast.Declaration) *ast.Program {
	return &ast.Program{File: "main.tea", Declarations: decls, Main: main}
}

func unitOf(programs ...*ast.Program) *ast.Unit {
	return &ast.Unit{Name: "app", Programs: programs}
}

func checkWith(t *testing.T, opts config.Options, p *ast.Program) error {
	t.Helper()
	return newAnalyzer(t, opts, unitOf(p)).CheckUnit()
}

func check(t *testing.T, p *ast.Program) error {
	t.Helper()
	return checkWith(t, config.DefaultOptions(), p)
}

func weakOptions() config.Options {
	opts := config.DefaultOptions()
	opts.WeakMode = true
	return opts
}

func expectCheckError(t *testing.T, err error, code diagnostics.ErrorCode) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error %s (%s), got none", code, code.Title())
	}
	if got := diagnostics.CodeOf(err); got != code {
		t.Fatalf("expected error %s (%s), got %v", code, code.Title(), err)
	}
}

func expectNoCheckErrors(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func expectType(t *testing.T, what string, got, want typesystem.Type) {
	t.Helper()
	if !typesystem.Identical(got, want) {
		t.Errorf("%s: expected %s, got %s", what, want, got)
	}
}

func returnOf(t *testing.T, d ast.Declaration) typesystem.Type {
	t.Helper()
	c, ok := d.Base().InferedType.(*typesystem.Callable)
	if !ok {
		t.Fatalf("%s: expected a callable type, got %v", d.DeclName(), d.Base().InferedType)
	}
	return c.Return
}

func block(stmts ...ast.Statement) *ast.Block { return ast.NewBlock(stmts...) }

func union(names ...string) *ast.UnionType {
	members := make([]ast.TypeExpr, len(names))
	for i, n := range names {
		members[i] = ast.Named(n)
	}
	return ast.UnionOf(members...)
}
