package analyzer

import (
	"github.com/funvibe/tea/internal/ast"
	"github.com/funvibe/tea/internal/typesystem"
)

// assertionsOf collects the type assertions a condition proves when true.
func assertionsOf(e ast.Expression) []*ast.TypeAssertion {
	switch n := e.(type) {
	case *ast.Parentheses:
		return assertionsOf(n.Inner)
	case *ast.IsOperation:
		if n.Assertion != nil {
			return []*ast.TypeAssertion{n.Assertion}
		}
	case *ast.BinaryOperation:
		if n.Operator == ast.OpAnd {
			return n.Assertions
		}
	}
	return nil
}

// withAssertions runs fn with the declarations named by asserts narrowed.
// With negate set the complement is applied, which is only sound for a
// single assertion; otherwise nothing is narrowed. Narrowed types are
// restored in reverse order when fn returns.
func (w *walker) withAssertions(asserts []*ast.TypeAssertion, negate bool, fn func() error) error {
	if len(asserts) == 0 || (negate && len(asserts) != 1) {
		return fn()
	}
	defer w.applyAssertions(asserts, negate)()
	return fn()
}

func (w *walker) applyAssertions(asserts []*ast.TypeAssertion, negate bool) func() {
	type saved struct {
		decl     ast.Declaration
		previous typesystem.Type
		first    bool
	}
	var undo []saved
	for _, a := range asserts {
		base := a.Target.Base()
		prev := base.InferedType
		_, already := w.narrowed[a.Target]
		if !already {
			w.narrowed[a.Target] = prev
		}
		undo = append(undo, saved{decl: a.Target, previous: prev, first: !already})
		base.InferedType = narrow(prev, a.Type, a.Not != negate)
	}
	return func() {
		for i := len(undo) - 1; i >= 0; i-- {
			u := undo[i]
			u.decl.Base().InferedType = u.previous
			if u.first {
				delete(w.narrowed, u.decl)
			}
		}
	}
}

// narrow computes the type of a declaration of type current after
// proving it is (or, with exclude, is not) of type asserted.
func narrow(current, asserted typesystem.Type, exclude bool) typesystem.Type {
	if !exclude {
		return asserted
	}
	if current == nil {
		return current
	}
	if asserted.Tag() == typesystem.TagNone {
		return typesystem.NonNull(current)
	}
	if rest := typesystem.Without(current, asserted); rest != nil {
		return rest
	}
	return current
}

// suspendNarrowing puts every narrowed declaration back to its declared
// type and returns the function that re-applies the narrowing.
func (w *walker) suspendNarrowing() func() {
	if len(w.narrowed) == 0 {
		return func() {}
	}
	saved := w.narrowed
	current := make(map[ast.Declaration]typesystem.Type, len(saved))
	for d, declared := range saved {
		current[d] = d.Base().InferedType
		d.Base().InferedType = declared
	}
	w.narrowed = make(map[ast.Declaration]typesystem.Type)
	return func() {
		for d, t := range current {
			d.Base().InferedType = t
		}
		w.narrowed = saved
	}
}

// declaredType is the type of d ignoring any active narrowing.
func (w *walker) declaredType(d ast.Declaration) typesystem.Type {
	if t, ok := w.narrowed[d]; ok {
		return t
	}
	return d.Base().InferedType
}
