package analyzer

import (
	"github.com/funvibe/tea/internal/ast"
	"github.com/funvibe/tea/internal/diagnostics"
	"github.com/funvibe/tea/internal/typesystem"
)

// VisitAccessingIdentifier resolves object.name: static members on class
// references, instance members on class values, builtin type class members
// on basic values and string keys on dicts.
func (w *walker) VisitAccessingIdentifier(e *ast.AccessingIdentifier) (typesystem.Type, error) {
	objType, err := w.infer(e.Object)
	if err != nil {
		return nil, err
	}
	obj := typesystem.NonNull(objType)

	var owner ast.ClassKindred
	static := false
	switch t := obj.(type) {
	case *typesystem.Meta:
		if c, ok := t.Of.(*typesystem.Class); ok {
			owner, _ = c.Decl.(ast.ClassKindred)
		} else {
			owner = w.typeClassOf(t.Of)
		}
		static = true
	case *typesystem.Class:
		owner, _ = t.Decl.(ast.ClassKindred)
	case *typesystem.Dict:
		if owner = w.typeClassOf(obj); owner == nil {
			return t.Elem, nil
		}
	default:
		switch obj.Tag() {
		case typesystem.TagAny:
			return typesystem.Any, nil
		}
		owner = w.typeClassOf(obj)
	}
	if owner == nil {
		if w.weak {
			return typesystem.Any, nil
		}
		return nil, w.fail(diagnostics.ErrMemberNotFound, e.Token, e.Name, objType)
	}

	m, err := w.findMember(owner, e.Name)
	if err != nil {
		return nil, err
	}
	if d, ok := obj.(*typesystem.Dict); ok && m == nil {
		return d.Elem, nil
	}
	if m == nil && w.weak {
		m = w.virtualMember(owner, e.Name)
	}
	if m == nil {
		return nil, w.fail(diagnostics.ErrMemberNotFound, e.Token, e.Name, owner.DeclName())
	}
	if static && !isStaticMember(m) {
		return nil, w.fail(diagnostics.ErrMemberNotFound, e.Token, e.Name+" (instance member)", owner.DeclName())
	}
	if err := w.checkAccess(m, e.Object, e); err != nil {
		return nil, err
	}
	e.Member = m

	t, err := w.memberType(m)
	if err != nil {
		return nil, err
	}
	return t, nil
}

func isStaticMember(m ast.Member) bool {
	return m.MemberKind() == ast.ConstantMember || m.Base().IsStatic || m.Base().IsVirtual
}

// typeClassOf finds the builtin type class that lends members to a basic
// or container type.
func (w *walker) typeClassOf(t typesystem.Type) ast.ClassKindred {
	if w.builtin == nil || t == nil {
		return nil
	}
	tag := typesystem.NonNull(t).Tag()
	if tag == typesystem.TagPureString {
		tag = typesystem.TagString
	}
	for _, sym := range w.builtin.Scope.Symbols() {
		b, ok := sym.Declaration().(*ast.BuiltinTypeClassDeclaration)
		if ok && b.Type != nil && b.Type.Tag() == tag {
			return b
		}
	}
	return nil
}

// checkAccess enforces member modifiers: private members only through
// this inside the declaring class, protected ones through this or super
// within the hierarchy, internal ones within the declaring unit.
func (w *walker) checkAccess(m ast.Member, receiver ast.Expression, tok ast.Node) error {
	base := m.Base()
	owner := m.OwnerClass()
	current := w.ctx.class
	viaSelf := false
	switch r := receiver.(type) {
	case *ast.ThisIdentifier, *ast.SuperIdentifier:
		viaSelf = true
	case *ast.PlainIdentifier:
		// Static access through the class name.
		if r.Symbol == nil {
			break
		}
		if k, ok := r.Symbol.Declaration().(ast.ClassKindred); ok && current != nil {
			viaSelf = k == current || typesystem.IsSubtypeOf(current, k)
		}
	}

	denied := false
	switch base.Modifier {
	case ast.Private:
		denied = !viaSelf || current == nil || !sameClass(current, owner)
	case ast.Protected:
		denied = !viaSelf || current == nil || !(typesystem.IsSubtypeOf(current, owner) || typesystem.IsSubtypeOf(owner, current))
	case ast.Internal:
		denied = !sameUnit(base.Program, w.ctx.program)
	}
	if denied {
		return w.fail(diagnostics.ErrAccessViolation, tok.GetToken(), base.Modifier, m.DeclName())
	}
	return nil
}

// sameClass treats members flattened in from a trait as the class's own.
func sameClass(current, owner ast.ClassKindred) bool {
	if current == owner {
		return true
	}
	for _, t := range current.Class().Traits {
		if ast.ClassKindred(t) == owner {
			return true
		}
	}
	return false
}

func sameUnit(a, b *ast.Program) bool {
	if a == nil || b == nil {
		return true
	}
	return a.Unit == b.Unit
}

// VisitKeyAccessing types left[key].
func (w *walker) VisitKeyAccessing(e *ast.KeyAccessing) (typesystem.Type, error) {
	lt, err := w.infer(e.Left)
	if err != nil {
		return nil, err
	}
	kt, err := w.infer(e.Key)
	if err != nil {
		return nil, err
	}
	return w.keyAccess(lt, kt, e)
}

var arrayKey = typesystem.Int

func (w *walker) keyAccess(left, key typesystem.Type, e *ast.KeyAccessing) (typesystem.Type, error) {
	checkKey := func(want typesystem.Type) error {
		if !w.accepts(want, key) {
			return w.fail(diagnostics.ErrTypeIncompatible, e.Key.GetToken(), want, key)
		}
		return nil
	}
	switch t := typesystem.NonNull(left).(type) {
	case *typesystem.Array:
		return t.Elem, checkKey(arrayKey)
	case *typesystem.Dict:
		return t.Elem, checkKey(dictKey)
	case *typesystem.Union:
		var arrays, dicts []typesystem.Type
		for _, m := range t.Members {
			switch mt := m.(type) {
			case *typesystem.Array:
				arrays = append(arrays, mt.Elem)
			case *typesystem.Dict:
				dicts = append(dicts, mt.Elem)
			}
		}
		switch {
		case len(arrays) == len(t.Members):
			return typesystem.ReduceTypes(arrays), checkKey(arrayKey)
		case len(dicts) == len(t.Members):
			return typesystem.ReduceTypes(dicts), checkKey(dictKey)
		case w.weak && len(arrays)+len(dicts) > 0:
			return typesystem.Any, nil
		}
	}
	switch left.Tag() {
	case typesystem.TagAny:
		return typesystem.Any, checkKey(dictKey)
	case typesystem.TagString, typesystem.TagPureString:
		return typesystem.String, checkKey(arrayKey)
	}
	return nil, w.fail(diagnostics.ErrInvalidOperatorUsage, e.Token, "[]", left)
}

// VisitSquareAccessing types left[], the append slot of an array.
func (w *walker) VisitSquareAccessing(e *ast.SquareAccessing) (typesystem.Type, error) {
	lt, err := w.infer(e.Left)
	if err != nil {
		return nil, err
	}
	if a, ok := typesystem.NonNull(lt).(*typesystem.Array); ok {
		return a.Elem, nil
	}
	if lt.Tag() == typesystem.TagAny {
		return typesystem.Any, nil
	}
	return nil, w.fail(diagnostics.ErrInvalidOperatorUsage, e.Token, "[]", lt)
}
