package analyzer

import (
	"github.com/funvibe/tea/internal/ast"
	"github.com/funvibe/tea/internal/diagnostics"
	"github.com/funvibe/tea/internal/typesystem"
)

// VisitXTag types a UI fragment. Every child must be renderable.
func (w *walker) VisitXTag(e *ast.XTag) (typesystem.Type, error) {
	for _, a := range e.Attributes {
		if _, err := w.infer(a.Value); err != nil {
			return nil, err
		}
	}
	for _, child := range e.Children {
		t, err := w.infer(child)
		if err != nil {
			return nil, err
		}
		if !w.isViewChild(t) {
			return nil, w.fail(diagnostics.ErrTypeIncompatible, child.GetToken(), typesystem.XView, t)
		}
	}
	return typesystem.XView, nil
}

// isViewChild accepts fragments, stringable values, arrays of children and
// instances of classes implementing the view acceptor interface.
func (w *walker) isViewChild(t typesystem.Type) bool {
	if t == nil {
		return false
	}
	for _, m := range typesystem.Members(t) {
		switch mt := m.(type) {
		case *typesystem.Array:
			if !w.isViewChild(mt.Elem) {
				return false
			}
			continue
		case *typesystem.Class:
			if w.wellKnown.ViewAcceptor == nil || !typesystem.IsSubtypeOf(mt.Decl, w.wellKnown.ViewAcceptor) {
				return false
			}
			continue
		}
		switch m.Tag() {
		case typesystem.TagXView, typesystem.TagAny, typesystem.TagNone:
		default:
			if !typesystem.IsStringable(m) {
				return false
			}
		}
	}
	return true
}
