package symbols

import (
	"testing"

	"github.com/funvibe/tea/internal/token"
)

type decl struct{ name string }

func (d *decl) DeclName() string      { return d.name }
func (d *decl) GetToken() token.Token { return token.Token{} }

func TestSymbolResolveOnce(t *testing.T) {
	placeholder := &decl{name: "use Foo"}
	sym := NewDeferred("Foo", placeholder)
	if sym.IsResolved() {
		t.Fatal("deferred symbol must start unresolved")
	}
	if sym.Declaration() != placeholder {
		t.Fatal("unresolved symbol points at its placeholder")
	}
	target := &decl{name: "Foo"}
	if err := sym.Resolve(target); err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if !sym.IsResolved() || sym.Declaration() != target {
		t.Fatal("symbol should point at the target")
	}
	if err := sym.Resolve(&decl{name: "Other"}); err == nil {
		t.Fatal("second resolution must fail")
	}
	if sym.Declaration() != target {
		t.Fatal("failed resolution must not re-point the symbol")
	}
}

func TestResolvedSymbolCannotBeRepointed(t *testing.T) {
	sym := New("x", &decl{name: "x"})
	if err := sym.Resolve(&decl{name: "y"}); err == nil {
		t.Fatal("resolved symbols are final")
	}
	if err := NewDeferred("z", &decl{}).Resolve(nil); err == nil {
		t.Fatal("resolving to nil must fail")
	}
}

func TestScopeChain(t *testing.T) {
	unit := NewScope(ScopeUnit, nil)
	fn := NewScope(ScopeFunction, unit)
	block := NewScope(ScopeBlock, fn)

	unit.Define(New("g", &decl{name: "g"}))
	fn.Define(New("p", &decl{name: "p"}))
	if !block.Define(New("x", &decl{name: "x"})) {
		t.Fatal("first definition should succeed")
	}
	if block.Define(New("x", &decl{name: "x2"})) {
		t.Fatal("duplicate local definition should fail")
	}
	for _, name := range []string{"g", "p", "x"} {
		if _, ok := block.Lookup(name); !ok {
			t.Errorf("%s should be visible from the block", name)
		}
	}
	if _, ok := fn.Lookup("x"); ok {
		t.Error("block locals must not leak outward")
	}
	if _, ok := block.LookupLocal("g"); ok {
		t.Error("LookupLocal must not walk outward")
	}
	if block.Outer() != fn || fn.Kind() != ScopeFunction {
		t.Error("scope links")
	}
	if got := block.Names(); len(got) != 1 || got[0] != "x" {
		t.Errorf("Names() = %v", got)
	}
}

func TestShadowing(t *testing.T) {
	outer := NewScope(ScopeUnit, nil)
	inner := NewScope(ScopeBlock, outer)
	a := &decl{name: "outer"}
	b := &decl{name: "inner"}
	outer.Define(New("v", a))
	inner.Define(New("v", b))
	sym, _ := inner.Lookup("v")
	if sym.Declaration() != b {
		t.Error("inner definition should shadow the outer one")
	}
	if len(inner.Symbols()) != 1 || inner.Len() != 1 {
		t.Error("Symbols/Len")
	}
}
