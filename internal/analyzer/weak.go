package analyzer

import (
	"github.com/funvibe/tea/internal/ast"
	"github.com/funvibe/tea/internal/config"
	"github.com/funvibe/tea/internal/symbols"
	"github.com/funvibe/tea/internal/typesystem"
)

// Weak mode synthesizes virtual declarations for names that foreign,
// loosely typed code refers to without declaring.

func (w *walker) virtualVariable(name string) ast.Declaration {
	v := ast.Var(name, nil, nil)
	v.IsVirtual = true
	v.InferedType = typesystem.Any
	v.MarkChecking()
	v.MarkChecked()
	return v
}

func (w *walker) virtualClass(name string) ast.Declaration {
	c := ast.Class(name, nil)
	c.IsVirtual = true
	c.IsDeclareMode = true
	c.Program = w.ctx.program
	c.Members = symbols.NewScope(symbols.ScopeClass, nil)
	c.MarkHeaderResolved()
	c.AggregatedMembers = ast.NewMemberTable()
	c.InferedType = typesystem.NewMeta(typesystem.NewClass(c))
	c.MarkChecking()
	c.MarkChecked()
	return c
}

// defineVirtual registers d in the unit so later lookups share it.
func (w *walker) defineVirtual(d ast.Declaration) *symbols.Symbol {
	sym := symbols.New(d.DeclName(), d)
	w.unit.Scope.Define(sym)
	w.logger.Printf("weak mode: synthesized %s", d.DeclName())
	return sym
}

// virtualMember adds an Any-typed property named name to k. Only valid
// identifiers are synthesized. Classes of the checked unit receive the
// member; classes shared with other analyzers, such as builtin type
// classes, keep it in this analyzer's overlay.
func (w *walker) virtualMember(k ast.ClassKindred, name string) ast.Member {
	if !config.IsIdentifier(name) {
		return nil
	}
	p := ast.Property(name, nil, nil)
	p.IsVirtual = true
	p.Owner = k
	p.Program = k.Base().Program
	p.InferedType = typesystem.Any
	p.MarkChecking()
	p.MarkChecked()

	if !w.owns(k) {
		table, ok := w.virtualMembers[k]
		if !ok {
			table = ast.NewMemberTable()
			w.virtualMembers[k] = table
		}
		table.Set(name, p)
		w.logger.Printf("weak mode: synthesized %s.%s", k.DeclName(), name)
		return p
	}

	cb := k.Class()
	if cb.Members == nil {
		cb.Members = symbols.NewScope(symbols.ScopeClass, nil)
	}
	cb.Members.Define(symbols.New(name, p))
	if cb.AggregatedMembers != nil {
		cb.AggregatedMembers.Set(name, p)
	}
	return p
}

// owns reports whether k is declared in the checked unit.
func (w *walker) owns(k ast.ClassKindred) bool {
	prog := k.Base().Program
	return prog != nil && prog.Unit == w.unit
}
