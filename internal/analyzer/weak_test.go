package analyzer

import (
	"bytes"
	"log"
	"strings"
	"testing"

	"github.com/funvibe/tea/internal/ast"
	"github.com/funvibe/tea/internal/binder"
	"github.com/funvibe/tea/internal/config"
	"github.com/funvibe/tea/internal/diagnostics"
	"github.com/funvibe/tea/internal/typesystem"
)

func TestUndefinedSymbol(t *testing.T) {
	main := func() *ast.Block {
		return block(ast.VarStmt(ast.Var("x", nil, ast.Access(ast.Ident("foo"), "bar"))))
	}
	expectCheckError(t, check(t, program(main())), diagnostics.ErrSymbolNotFound)

	p := program(main())
	unit := unitOf(p)
	a := newAnalyzer(t, weakOptions(), unit)
	var buf bytes.Buffer
	a.SetLogger(log.New(&buf, "", 0))
	expectNoCheckErrors(t, a.CheckUnit())

	x := p.Main.Statements[0].(*ast.VarStatement).Decl
	expectType(t, "x", x.InferedType, typesystem.Any)
	sym, ok := unit.Scope.LookupLocal("foo")
	if !ok || !sym.Declaration().(ast.Declaration).Base().IsVirtual {
		t.Fatalf("expected a virtual foo in the unit scope")
	}
	if !strings.Contains(buf.String(), "synthesized foo") {
		t.Errorf("expected the synthesis to be logged, got %q", buf.String())
	}
}

func TestVirtualMembers(t *testing.T) {
	main := func(name string) *ast.Block {
		return block(
			ast.VarStmt(ast.Var("a", nil, ast.New("A"))),
			ast.VarStmt(ast.Var("y", nil, ast.Access(ast.Ident("a"), name))),
		)
	}
	expectCheckError(t, check(t, program(main("missing"), ast.Class("A", nil))), diagnostics.ErrMemberNotFound)

	class := ast.Class("A", nil)
	expectNoCheckErrors(t, checkWith(t, weakOptions(), program(main("missing"), class)))
	m, ok := class.AggregatedMembers.Get("missing")
	if !ok || !m.Base().IsVirtual {
		t.Fatalf("expected a virtual member on A")
	}
	if _, ok := class.Members.LookupLocal("missing"); !ok {
		t.Errorf("virtual member must be registered in the class scope")
	}

	expectCheckError(t, checkWith(t, weakOptions(), program(main("not-a-name"), ast.Class("A", nil))),
		diagnostics.ErrMemberNotFound)
}

func TestWeakMembersOfBuiltinClassesStayLocal(t *testing.T) {
	builtin := newBuiltin(t)
	analyze := func(opts config.Options, p *ast.Program) error {
		unit := unitOf(p)
		if err := binder.Bind(unit); err != nil {
			t.Fatalf("bind: %v", err)
		}
		a := New(unit, opts)
		a.SetBuiltin(builtin, opts.WellKnown)
		return a.CheckUnit()
	}

	first := ast.Access(ast.Str("abc"), "size")
	second := ast.Access(ast.Str("def"), "size")
	weak := program(block(
		ast.VarStmt(ast.Var("a", nil, first)),
		ast.VarStmt(ast.Var("b", nil, second)),
	))
	expectNoCheckErrors(t, analyze(weakOptions(), weak))
	if first.Member == nil || first.Member != second.Member {
		t.Errorf("expected both accesses to share one virtual member")
	}

	sym, _ := builtin.Scope.LookupLocal("String")
	str := sym.Declaration().(*ast.BuiltinTypeClassDeclaration)
	if _, ok := str.AggregatedMembers.Get("size"); ok {
		t.Errorf("virtual member leaked into the builtin aggregated members")
	}
	if _, ok := str.OwnMember("size"); ok {
		t.Errorf("virtual member leaked into the builtin class scope")
	}

	strict := program(block(ast.VarStmt(ast.Var("a", nil, ast.Access(ast.Str("abc"), "size")))))
	expectCheckError(t, analyze(config.DefaultOptions(), strict), diagnostics.ErrMemberNotFound)
}

func TestVirtualClass(t *testing.T) {
	v := ast.Var("w", nil, ast.New("Widget", ast.Arg(ast.Int("1"))))
	expectCheckError(t, check(t, program(block(ast.VarStmt(ast.Var("w", nil, ast.New("Widget")))))), diagnostics.ErrSymbolNotFound)

	expectNoCheckErrors(t, checkWith(t, weakOptions(), program(block(ast.VarStmt(v)))))
	c, ok := v.InferedType.(*typesystem.Class)
	if !ok || c.Decl.NominalName() != "Widget" {
		t.Fatalf("expected a Widget instance, got %v", v.InferedType)
	}

	hinted := ast.Var("h", ast.Named("Gadget"), nil)
	expectNoCheckErrors(t, checkWith(t, weakOptions(), program(block(ast.VarStmt(hinted)))))
	if c, ok := hinted.InferedType.(*typesystem.Class); !ok || c.Decl.NominalName() != "Gadget" {
		t.Errorf("expected a Gadget instance, got %v", hinted.InferedType)
	}
}

func TestWeakModeRelaxesAny(t *testing.T) {
	sum := ast.Var("sum", nil, ast.Binary(ast.OpAdd, ast.Ident("foo"), ast.Int("1")))
	arg := ast.ExprStmt(ast.Call(ast.Ident("f"), ast.Arg(ast.Ident("bar"))))
	f := ast.Func("f", ast.Params(ast.Param("a", ast.Named("Int"), nil)), nil, block())
	expectNoCheckErrors(t, checkWith(t, weakOptions(), program(block(ast.VarStmt(sum), arg), f)))
	expectType(t, "sum", sum.InferedType, typesystem.Any)
}

func TestWeakModeKeepsCircularityErrors(t *testing.T) {
	f := ast.Func("f", nil, nil, block(ast.Return(ast.Call(ast.Ident("g")))))
	g := ast.Func("g", nil, nil, block(ast.Return(ast.Call(ast.Ident("f")))))
	expectCheckError(t, checkWith(t, weakOptions(), program(nil, f, g)), diagnostics.ErrCircularTypeInference)
}
