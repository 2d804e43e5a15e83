package analyzer

import (
	"github.com/funvibe/tea/internal/ast"
	"github.com/funvibe/tea/internal/diagnostics"
	"github.com/funvibe/tea/internal/symbols"
)

// resolveUses binds the use aliases of every program of unit.
func (w *walker) resolveUses(unit *ast.Unit) error {
	for _, p := range unit.Programs {
		for _, use := range p.Uses {
			sym, ok := p.Scope.LookupLocal(use.Name)
			if !ok || sym.IsResolved() {
				continue
			}
			if err := w.resolveUse(use, sym); err != nil {
				return err
			}
		}
	}
	return nil
}

// resolveUse points sym at the declaration named by use and records the
// dependency on the target unit.
func (w *walker) resolveUse(use *ast.UseDeclaration, sym *symbols.Symbol) error {
	defer w.enter(cursor{program: use.Program})()
	target, err := w.findUseTarget(use)
	if err != nil {
		return err
	}
	if err := sym.Resolve(target); err != nil {
		return w.fail(diagnostics.ErrSymbolNotFound, use.Token, use.Name)
	}
	if use.Program != nil && use.Program.Unit != nil {
		use.Program.Unit.AddDependency(use.Target)
	}
	w.logger.Printf("use %s resolved to %s.%s", use.Name, use.Target, use.Source)
	return nil
}

// useTarget is the declaration a use points at, resolving it if needed.
func (w *walker) useTarget(use *ast.UseDeclaration) (ast.Declaration, error) {
	if use.Program != nil {
		if sym, ok := use.Program.Scope.LookupLocal(use.Name); ok {
			return w.symbolDeclaration(sym)
		}
	}
	return w.findUseTarget(use)
}

func (w *walker) findUseTarget(use *ast.UseDeclaration) (ast.Declaration, error) {
	source := use.Source
	if source == "" {
		source = use.Name
	}
	unit, ok := w.units.Unit(use.Target)
	if !ok && w.builtin != nil && w.builtin.Name == use.Target {
		unit, ok = w.builtin, true
	}
	if ok {
		if sym, found := unit.Scope.LookupLocal(source); found && sym.IsResolved() {
			if decl, isDecl := sym.Declaration().(ast.Declaration); isDecl {
				return decl, nil
			}
		}
	}
	if w.weak {
		return w.virtualVariable(use.Name), nil
	}
	return nil, w.fail(diagnostics.ErrSymbolNotFound, use.Token, use.Target+"."+source)
}
