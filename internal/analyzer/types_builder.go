package analyzer

import (
	"github.com/funvibe/tea/internal/ast"
	"github.com/funvibe/tea/internal/config"
	"github.com/funvibe/tea/internal/diagnostics"
	"github.com/funvibe/tea/internal/typesystem"
)

var builtinTypes = map[string]typesystem.Type{
	config.AnyTypeName:        typesystem.Any,
	config.NoneTypeName:       typesystem.None,
	config.VoidTypeName:       typesystem.Void,
	config.BoolTypeName:       typesystem.Bool,
	config.IntTypeName:        typesystem.Int,
	config.UIntTypeName:       typesystem.UInt,
	config.FloatTypeName:      typesystem.Float,
	config.StringTypeName:     typesystem.String,
	config.PureStringTypeName: typesystem.PureString,
	config.BytesTypeName:      typesystem.Bytes,
	config.ObjectTypeName:     typesystem.Object,
	config.RegexTypeName:      typesystem.Regex,
	config.XViewTypeName:      typesystem.XView,
}

// resolveHint converts an optional annotation. A nil hint yields nil.
func (w *walker) resolveHint(t ast.TypeExpr) (typesystem.Type, error) {
	if t == nil {
		return nil, nil
	}
	return w.resolveType(t)
}

// resolveType converts a type expression into a semantic type.
func (w *walker) resolveType(t ast.TypeExpr) (typesystem.Type, error) {
	switch n := t.(type) {
	case *ast.NamedType:
		return w.resolveNamedType(n)
	case *ast.ArrayType:
		elem, err := w.resolveType(n.Elem)
		if err != nil {
			return nil, err
		}
		return typesystem.NewArray(elem), nil
	case *ast.DictType:
		elem, err := w.resolveType(n.Elem)
		if err != nil {
			return nil, err
		}
		return typesystem.NewDict(elem), nil
	case *ast.NullableType:
		inner, err := w.resolveType(n.Inner)
		if err != nil {
			return nil, err
		}
		return typesystem.WithNullable(inner, true), nil
	case *ast.UnionType:
		var out typesystem.Type
		for _, m := range n.Members {
			mt, err := w.resolveType(m)
			if err != nil {
				return nil, err
			}
			out = typesystem.UniteType(out, mt)
		}
		return out, nil
	case *ast.CallableType:
		params := make([]typesystem.Type, len(n.Params))
		for i, p := range n.Params {
			pt, err := w.resolveType(p)
			if err != nil {
				return nil, err
			}
			params[i] = pt
		}
		ret := typesystem.Type(typesystem.Void)
		if n.Return != nil {
			var err error
			if ret, err = w.resolveType(n.Return); err != nil {
				return nil, err
			}
		}
		return typesystem.NewCallable(params, ret), nil
	case *ast.MetaType:
		of, err := w.resolveType(n.Of)
		if err != nil {
			return nil, err
		}
		return typesystem.NewMeta(of), nil
	}
	return typesystem.Any, nil
}

func (w *walker) resolveNamedType(n *ast.NamedType) (typesystem.Type, error) {
	if b, ok := builtinTypes[n.Name]; ok {
		return b, nil
	}
	if n.Name == config.SelfTypeName {
		if w.ctx.class != nil {
			return instanceType(w.ctx.class), nil
		}
		return typesystem.Self, nil
	}
	if n.Name == config.ArrayTypeName {
		return typesystem.NewArray(typesystem.Any), nil
	}
	if n.Name == config.DictTypeName {
		return typesystem.NewDict(typesystem.Any), nil
	}

	if n.Symbol == nil {
		sym, ok := w.lookup(n.Name)
		if !ok {
			if !w.weak {
				return nil, w.fail(diagnostics.ErrSymbolNotFound, n.Token, n.Name)
			}
			sym = w.defineVirtual(w.virtualClass(n.Name))
		}
		n.Symbol = sym
	}
	decl, err := w.symbolDeclaration(n.Symbol)
	if err != nil {
		return nil, err
	}
	k, ok := decl.(ast.ClassKindred)
	if !ok {
		return nil, w.fail(diagnostics.ErrSymbolNotFound, n.Token, n.Name+" (not a type)")
	}
	if err := w.resolveHeader(k); err != nil {
		return nil, err
	}
	return instanceType(k), nil
}
