package analyzer

import (
	"github.com/funvibe/tea/internal/ast"
	"github.com/funvibe/tea/internal/diagnostics"
	"github.com/funvibe/tea/internal/typesystem"
)

func (w *walker) VisitClassDeclaration(d *ast.ClassDeclaration) error {
	return w.checkClassKindred(d)
}

func (w *walker) VisitInterfaceDeclaration(d *ast.InterfaceDeclaration) error {
	return w.checkClassKindred(d)
}

func (w *walker) VisitTraitDeclaration(d *ast.TraitDeclaration) error {
	return w.checkClassKindred(d)
}

func (w *walker) VisitBuiltinTypeClassDeclaration(d *ast.BuiltinTypeClassDeclaration) error {
	return w.checkClassKindred(d)
}

// checkClassKindred builds the aggregated member table of k:
// header, own and trait members, the superclass, then interfaces.
func (w *walker) checkClassKindred(k ast.ClassKindred) error {
	cb := k.Class()
	base := k.Base()
	if err := w.resolveHeader(k); err != nil {
		return err
	}

	// Traits first so their members can be checked alongside our own.
	cb.TraitMembers = ast.NewMemberTable()
	for _, t := range cb.Traits {
		if err := w.checkDeclaration(t); err != nil {
			return err
		}
		for _, name := range t.AggregatedMembers.Names() {
			if cb.Members != nil {
				if _, own := cb.Members.LookupLocal(name); own {
					continue
				}
			}
			m, _ := t.AggregatedMembers.Get(name)
			cb.TraitMembers.Set(name, m)
		}
	}
	for _, m := range cb.OwnMembers() {
		if err := w.checkDeclaration(m); err != nil {
			return err
		}
	}

	agg := ast.NewMemberTable()
	if cb.Inherits != nil {
		if err := w.checkDeclaration(cb.Inherits); err != nil {
			return err
		}
		agg = cb.Inherits.Class().AggregatedMembers.Clone()
	}
	merge := func(name string, m ast.Member) error {
		if super, ok := agg.Get(name); ok {
			if err := w.checkOverride(m, super); err != nil {
				return err
			}
		}
		agg.Set(name, m)
		return nil
	}
	for _, name := range cb.TraitMembers.Names() {
		m, _ := cb.TraitMembers.Get(name)
		if err := merge(name, m); err != nil {
			return err
		}
	}
	for _, m := range cb.OwnMembers() {
		if err := merge(m.DeclName(), m); err != nil {
			return err
		}
	}

	// Interface members fill the gaps. Whatever is already aggregated has
	// priority and must stay compatible with the interface signature.
	for _, iface := range cb.Bases {
		if err := w.checkDeclaration(iface); err != nil {
			return err
		}
		ib := iface.Class().AggregatedMembers
		for _, name := range ib.Names() {
			im, _ := ib.Get(name)
			if existing, ok := agg.Get(name); ok {
				if existing == im {
					continue
				}
				if err := w.checkOverride(existing, im); err != nil {
					return err
				}
				continue
			}
			agg.Set(name, im)
		}
	}

	if class, ok := k.(*ast.ClassDeclaration); ok && !class.IsAbstract && !cb.IsDeclareMode && !class.IsVirtual {
		for _, name := range agg.Names() {
			m, _ := agg.Get(name)
			if method, ok := m.(*ast.MethodDeclaration); ok && method.Body == nil {
				return w.fail(diagnostics.ErrUnimplementedInterfaceMethod, base.Token, name, m.OwnerClass().DeclName())
			}
		}
	}

	cb.AggregatedMembers = agg
	base.InferedType = typesystem.NewMeta(instanceType(k))
	base.MarkChecked()
	return nil
}

// resolveHeader binds the base and trait names of k. It does not descend
// into the bases, so it is safe to call on classes being checked.
func (w *walker) resolveHeader(k ast.ClassKindred) error {
	cb := k.Class()
	if cb.HeaderResolved() {
		return nil
	}
	defer w.enter(cursor{program: k.Base().Program, class: k})()
	_, isInterface := k.(*ast.InterfaceDeclaration)
	_, isTrait := k.(*ast.TraitDeclaration)

	for _, name := range cb.BaseNames {
		decl, err := w.resolveClassName(name)
		if err != nil {
			return err
		}
		switch b := decl.(type) {
		case *ast.InterfaceDeclaration:
			cb.Bases = append(cb.Bases, b)
		case *ast.ClassDeclaration:
			switch {
			case isInterface || isTrait:
				return w.fail(diagnostics.ErrInvalidInheritance, name.Token, k.DeclName(), "cannot extend class "+b.Name)
			case cb.Inherits != nil:
				return w.fail(diagnostics.ErrInvalidInheritance, name.Token, k.DeclName(), "more than one superclass")
			case b == k:
				return w.fail(diagnostics.ErrInvalidInheritance, name.Token, k.DeclName(), "extends itself")
			}
			cb.Inherits = b
		default:
			return w.fail(diagnostics.ErrInvalidInheritance, name.Token, k.DeclName(), decl.DeclName()+" is not a class or interface")
		}
	}
	for _, name := range cb.TraitNames {
		decl, err := w.resolveClassName(name)
		if err != nil {
			return err
		}
		t, ok := decl.(*ast.TraitDeclaration)
		if !ok {
			return w.fail(diagnostics.ErrInvalidInheritance, name.Token, k.DeclName(), decl.DeclName()+" is not a trait")
		}
		cb.Traits = append(cb.Traits, t)
	}
	cb.MarkHeaderResolved()
	return nil
}

func (w *walker) resolveClassName(name *ast.PlainIdentifier) (ast.ClassKindred, error) {
	decl, err := w.resolveName(name, w.virtualClass)
	if err != nil {
		return nil, err
	}
	k, ok := decl.(ast.ClassKindred)
	if !ok {
		return nil, w.fail(diagnostics.ErrInvalidInheritance, name.Token, name.Name, "not a class, interface or trait")
	}
	return k, nil
}

// findMember looks name up on k. Checked classes answer from their
// aggregated table; classes still being checked are walked structurally.
// Weak-mode members of shared classes come last.
func (w *walker) findMember(k ast.ClassKindred, name string) (ast.Member, error) {
	var m ast.Member
	if agg := k.Class().AggregatedMembers; agg != nil {
		m, _ = agg.Get(name)
	} else {
		var err error
		if m, err = w.findMemberStructural(k, name, map[ast.ClassKindred]bool{}); err != nil {
			return nil, err
		}
	}
	if m == nil {
		m, _ = w.virtualMembers[k].Get(name)
	}
	return m, nil
}

func (w *walker) findMemberStructural(k ast.ClassKindred, name string, seen map[ast.ClassKindred]bool) (ast.Member, error) {
	if k == nil || seen[k] {
		return nil, nil
	}
	seen[k] = true
	if err := w.resolveHeader(k); err != nil {
		return nil, err
	}
	cb := k.Class()
	if m, ok := cb.OwnMember(name); ok {
		return m, nil
	}
	for _, t := range cb.Traits {
		if m, err := w.findMemberStructural(t, name, seen); m != nil || err != nil {
			return m, err
		}
	}
	if m, err := w.findMemberStructural(cb.Inherits, name, seen); m != nil || err != nil {
		return m, err
	}
	for _, b := range cb.Bases {
		if m, err := w.findMemberStructural(b, name, seen); m != nil || err != nil {
			return m, err
		}
	}
	return nil, nil
}

// memberType returns the type of m. Callable members may be referenced
// while still being checked when they carry a return hint.
func (w *walker) memberType(m ast.Member) (typesystem.Type, error) {
	if c, ok := m.(ast.Callable); ok {
		return w.callableTypeOf(c)
	}
	if err := w.checkDeclaration(m); err != nil {
		return nil, err
	}
	if t := m.Base().InferedType; t != nil {
		return t, nil
	}
	return typesystem.Any, nil
}
