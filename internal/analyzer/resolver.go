package analyzer

import (
	"github.com/funvibe/tea/internal/ast"
	"github.com/funvibe/tea/internal/diagnostics"
	"github.com/funvibe/tea/internal/symbols"
)

// lookup resolves name from the cursor outward: block scopes, the
// program's use aliases, the unit, then the builtin unit.
func (w *walker) lookup(name string) (*symbols.Symbol, bool) {
	if sym, ok := w.ctx.scope.Lookup(name); ok {
		return sym, true
	}
	if p := w.ctx.program; p != nil {
		if sym, ok := p.Scope.LookupLocal(name); ok {
			return sym, true
		}
		if p.Unit != nil {
			if sym, ok := p.Unit.Scope.LookupLocal(name); ok {
				return sym, true
			}
		}
	}
	if sym, ok := w.unit.Scope.LookupLocal(name); ok {
		return sym, true
	}
	if w.builtin != nil {
		if sym, ok := w.builtin.Scope.LookupLocal(name); ok {
			return sym, true
		}
	}
	return nil, false
}

// symbolDeclaration returns the declaration sym points at, resolving a
// pending use alias first.
func (w *walker) symbolDeclaration(sym *symbols.Symbol) (ast.Declaration, error) {
	if !sym.IsResolved() {
		use, ok := sym.Declaration().(*ast.UseDeclaration)
		if !ok {
			return nil, w.fail(diagnostics.ErrSymbolNotFound, sym.Declaration().GetToken(), sym.Name)
		}
		if err := w.resolveUse(use, sym); err != nil {
			return nil, err
		}
	}
	decl, ok := sym.Declaration().(ast.Declaration)
	if !ok {
		return nil, w.fail(diagnostics.ErrSymbolNotFound, sym.Declaration().GetToken(), sym.Name)
	}
	return decl, nil
}

// resolveName binds id. In weak mode a missing name is synthesized by
// virtual and registered in the unit scope.
func (w *walker) resolveName(id *ast.PlainIdentifier, virtual func(string) ast.Declaration) (ast.Declaration, error) {
	if id.Symbol == nil {
		sym, ok := w.lookup(id.Name)
		if !ok {
			if !w.weak {
				return nil, w.fail(diagnostics.ErrSymbolNotFound, id.Token, id.Name)
			}
			sym = w.defineVirtual(virtual(id.Name))
		}
		id.Symbol = sym
	}
	return w.symbolDeclaration(id.Symbol)
}

func (w *walker) resolveIdentifier(id *ast.PlainIdentifier) (ast.Declaration, error) {
	return w.resolveName(id, w.virtualVariable)
}
