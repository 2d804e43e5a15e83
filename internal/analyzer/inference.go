package analyzer

import (
	"github.com/funvibe/tea/internal/ast"
	"github.com/funvibe/tea/internal/config"
	"github.com/funvibe/tea/internal/diagnostics"
	"github.com/funvibe/tea/internal/typesystem"
)

// infer returns the type of e.
func (w *walker) infer(e ast.Expression) (typesystem.Type, error) {
	return e.Accept(w)
}

// accepts is typesystem.Accepts with the checker's relaxations.
func (w *walker) accepts(target, source typesystem.Type) bool {
	if typesystem.Accepts(target, source) {
		return true
	}
	if w.weak && source != nil && source.Tag() == typesystem.TagAny {
		return true
	}
	if target != nil && typesystem.NonNull(target).Tag() == typesystem.TagXView {
		return w.isViewChild(source)
	}
	return false
}

func (w *walker) VisitNoneLiteral(e *ast.NoneLiteral) (typesystem.Type, error) {
	return typesystem.None, nil
}

func (w *walker) VisitBoolLiteral(e *ast.BoolLiteral) (typesystem.Type, error) {
	return typesystem.Bool, nil
}

// Integer literals are unsigned; negation makes them Int.
func (w *walker) VisitIntegerLiteral(e *ast.IntegerLiteral) (typesystem.Type, error) {
	return typesystem.UInt, nil
}

func (w *walker) VisitFloatLiteral(e *ast.FloatLiteral) (typesystem.Type, error) {
	return typesystem.Float, nil
}

func (w *walker) VisitStringLiteral(e *ast.StringLiteral) (typesystem.Type, error) {
	return typesystem.PureString, nil
}

func (w *walker) VisitInterpolatedString(e *ast.InterpolatedString) (typesystem.Type, error) {
	for _, part := range e.Parts {
		if _, err := w.infer(part); err != nil {
			return nil, err
		}
	}
	return typesystem.String, nil
}

func (w *walker) VisitRegexLiteral(e *ast.RegexLiteral) (typesystem.Type, error) {
	return typesystem.Regex, nil
}

func (w *walker) inferAll(exprs []ast.Expression) ([]typesystem.Type, error) {
	out := make([]typesystem.Type, 0, len(exprs))
	for _, x := range exprs {
		t, err := w.infer(x)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

func (w *walker) VisitArrayLiteral(e *ast.ArrayLiteral) (typesystem.Type, error) {
	types, err := w.inferAll(e.Elements)
	if err != nil {
		return nil, err
	}
	elem := typesystem.ReduceTypes(types)
	if elem == nil {
		elem = typesystem.Any
	}
	return typesystem.NewArray(elem), nil
}

var dictKey = typesystem.UniteType(typesystem.String, typesystem.Int)

func (w *walker) VisitDictLiteral(e *ast.DictLiteral) (typesystem.Type, error) {
	values := make([]typesystem.Type, 0, len(e.Entries))
	for _, entry := range e.Entries {
		kt, err := w.infer(entry.Key)
		if err != nil {
			return nil, err
		}
		if !w.accepts(dictKey, kt) {
			return nil, w.fail(diagnostics.ErrTypeIncompatible, entry.Key.GetToken(), dictKey, kt)
		}
		vt, err := w.infer(entry.Value)
		if err != nil {
			return nil, err
		}
		values = append(values, vt)
	}
	elem := typesystem.ReduceTypes(values)
	if elem == nil {
		elem = typesystem.Any
	}
	return typesystem.NewDict(elem), nil
}

func (w *walker) VisitObjectLiteral(e *ast.ObjectLiteral) (typesystem.Type, error) {
	for _, m := range e.Members {
		if err := w.checkDeclaration(m); err != nil {
			return nil, err
		}
	}
	return typesystem.Object, nil
}

func (w *walker) VisitPlainIdentifier(e *ast.PlainIdentifier) (typesystem.Type, error) {
	decl, err := w.resolveIdentifier(e)
	if err != nil {
		return nil, err
	}
	return w.declarationType(decl)
}

// currentClass returns the class of the cursor, failing outside classes
// and inside static methods.
func (w *walker) currentClass(tok ast.Node, what string) (ast.ClassKindred, error) {
	k := w.ctx.class
	if k == nil {
		return nil, w.fail(diagnostics.ErrMisplacedStatement, tok.GetToken(), "'"+what+"' outside of a class")
	}
	if m := enclosingMethod(w.ctx.function); m != nil && m.Base().IsStatic {
		return nil, w.fail(diagnostics.ErrMisplacedStatement, tok.GetToken(), "'"+what+"' in a static method")
	}
	return k, nil
}

func (w *walker) VisitThisIdentifier(e *ast.ThisIdentifier) (typesystem.Type, error) {
	k, err := w.currentClass(e, config.ThisName)
	if err != nil {
		return nil, err
	}
	if err := w.resolveHeader(k); err != nil {
		return nil, err
	}
	return instanceType(k), nil
}

func (w *walker) VisitSuperIdentifier(e *ast.SuperIdentifier) (typesystem.Type, error) {
	k, err := w.currentClass(e, config.SuperName)
	if err != nil {
		return nil, err
	}
	if err := w.resolveHeader(k); err != nil {
		return nil, err
	}
	parent := k.Class().Inherits
	if parent == nil {
		return nil, w.fail(diagnostics.ErrMisplacedStatement, e.Token, "'super' in "+k.DeclName()+" which has no superclass")
	}
	return instanceType(parent), nil
}

func (w *walker) VisitParentheses(e *ast.Parentheses) (typesystem.Type, error) {
	return w.infer(e.Inner)
}

func (w *walker) VisitTernaryExpression(e *ast.TernaryExpression) (typesystem.Type, error) {
	if _, err := w.infer(e.Condition); err != nil {
		return nil, err
	}
	asserts := assertionsOf(e.Condition)
	var then, els typesystem.Type
	err := w.withAssertions(asserts, false, func() (err error) {
		then, err = w.infer(e.Then)
		return err
	})
	if err != nil {
		return nil, err
	}
	err = w.withAssertions(asserts, true, func() (err error) {
		els, err = w.infer(e.Else)
		return err
	})
	if err != nil {
		return nil, err
	}
	if t := typesystem.ReduceTypes([]typesystem.Type{then, els}); t != nil {
		return t, nil
	}
	return typesystem.Any, nil
}

func isScalar(t typesystem.Type) bool {
	switch typesystem.NonNull(t).Tag() {
	case typesystem.TagBool, typesystem.TagInt, typesystem.TagUInt, typesystem.TagFloat,
		typesystem.TagString, typesystem.TagPureString:
		return true
	}
	return false
}

// VisitCastOperation allows casts along the type relation in either
// direction and between scalars.
func (w *walker) VisitCastOperation(e *ast.CastOperation) (typesystem.Type, error) {
	source, err := w.infer(e.Left)
	if err != nil {
		return nil, err
	}
	target, err := w.resolveType(e.Target)
	if err != nil {
		return nil, err
	}
	switch {
	case w.accepts(target, source), typesystem.Accepts(source, target):
	case isScalar(source) && isScalar(target):
	case source.Tag() == typesystem.TagAny, source.Tag() == typesystem.TagObject:
	default:
		return nil, w.fail(diagnostics.ErrTypeIncompatible, e.Token, target, source)
	}
	return target, nil
}

// VisitIsOperation records a narrowing assertion when the left side names
// a variable or parameter.
func (w *walker) VisitIsOperation(e *ast.IsOperation) (typesystem.Type, error) {
	if _, err := w.infer(e.Left); err != nil {
		return nil, err
	}
	target, err := w.resolveType(e.Target)
	if err != nil {
		return nil, err
	}
	e.Assertion = nil
	if id, ok := e.Left.(*ast.PlainIdentifier); ok && id.Symbol != nil {
		switch decl := id.Symbol.Declaration().(type) {
		case *ast.VariableDeclaration, *ast.ParameterDeclaration:
			e.Assertion = &ast.TypeAssertion{Target: decl.(ast.Declaration), Type: target, Not: e.Not}
		}
	}
	return typesystem.Bool, nil
}

func (w *walker) VisitAnonymousFunction(e *ast.AnonymousFunction) (typesystem.Type, error) {
	return w.callableTypeOf(e)
}

func (w *walker) VisitYieldExpression(e *ast.YieldExpression) (typesystem.Type, error) {
	fr := w.ctx.frame
	if fr == nil {
		return nil, w.fail(diagnostics.ErrMisplacedStatement, e.Token, "'yield' outside of a function")
	}
	fr.decl.Signature().IsGenerator = true
	if _, err := w.inferOptional(e.Value); err != nil {
		return nil, err
	}
	return typesystem.Any, nil
}

// VisitIncludeExpression checks the main block of the included program
// once, in that program's context.
func (w *walker) VisitIncludeExpression(e *ast.IncludeExpression) (typesystem.Type, error) {
	if e.Target == nil {
		if w.weak {
			return typesystem.Any, nil
		}
		return nil, w.fail(diagnostics.ErrSymbolNotFound, e.Token, e.Path)
	}
	if e.Target.Main != nil && !w.included[e.Target] {
		if err := w.checkMain(e.Target); err != nil {
			return nil, err
		}
	}
	return typesystem.Any, nil
}
