package analyzer

import (
	"fmt"

	"github.com/funvibe/tea/internal/ast"
	"github.com/funvibe/tea/internal/config"
	"github.com/funvibe/tea/internal/diagnostics"
	"github.com/funvibe/tea/internal/token"
	"github.com/funvibe/tea/internal/typesystem"
)

func (w *walker) VisitCallExpression(e *ast.CallExpression) (typesystem.Type, error) {
	return w.inferCall(e, &e.CallArguments)
}

// VisitPipeCall types left |> f(args) as f(left, args).
func (w *walker) VisitPipeCall(e *ast.PipeCall) (typesystem.Type, error) {
	args := &ast.CallArguments{
		Args:      append([]*ast.Argument{{Token: e.Left.GetToken(), Value: e.Left}}, e.Call.Args...),
		Callbacks: e.Call.Callbacks,
	}
	t, err := w.inferCall(e.Call, args)
	if err != nil {
		return nil, err
	}
	e.Call.Normalized = args.Normalized
	return t, nil
}

func (w *walker) inferCall(e *ast.CallExpression, args *ast.CallArguments) (typesystem.Type, error) {
	calleeType, err := w.infer(e.Callee)
	if err != nil {
		return nil, err
	}
	e.Target = calleeDeclaration(e.Callee)
	ct, isCallable := typesystem.NonNull(calleeType).(*typesystem.Callable)

	if e.Target != nil && isCallable && !e.Target.Base().IsVirtual {
		if err := w.bindArguments(e.Target.DeclName(), e.Target.Signature().Params, ct.Params, args, e.Token); err != nil {
			return nil, err
		}
		return ct.Return, nil
	}
	if isCallable {
		if err := w.bindPositional(ct, args, e.Token); err != nil {
			return nil, err
		}
		return ct.Return, nil
	}
	if calleeType.Tag() == typesystem.TagAny {
		if err := w.inferArguments(args); err != nil {
			return nil, err
		}
		return typesystem.Any, nil
	}
	return nil, w.fail(diagnostics.ErrNotCallable, e.Callee.GetToken(), calleeType)
}

// calleeDeclaration returns the callable declaration a callee names, if any.
func calleeDeclaration(callee ast.Expression) ast.Callable {
	switch c := callee.(type) {
	case *ast.Parentheses:
		return calleeDeclaration(c.Inner)
	case *ast.PlainIdentifier:
		if c.Symbol != nil {
			fn, _ := c.Symbol.Declaration().(ast.Callable)
			return fn
		}
	case *ast.AccessingIdentifier:
		fn, _ := c.Member.(ast.Callable)
		return fn
	}
	return nil
}

func (w *walker) inferArguments(args *ast.CallArguments) error {
	for _, a := range args.Args {
		if _, err := w.infer(a.Value); err != nil {
			return err
		}
	}
	for _, cb := range args.Callbacks {
		if _, err := w.infer(cb.Value); err != nil {
			return err
		}
	}
	return nil
}

func paramIndex(params []*ast.ParameterDeclaration, name string) int {
	for i, p := range params {
		if p.Name == name {
			return i
		}
	}
	return -1
}

// bindArguments matches arguments to the parameters of a declared callee:
// positional first, then named ones, then trailing callbacks onto the last
// parameters. When arguments were reordered, Normalized receives the full
// positional list with defaults filling the gaps.
func (w *walker) bindArguments(name string, params []*ast.ParameterDeclaration, types []typesystem.Type, args *ast.CallArguments, tok token.Token) error {
	mismatch := func(tok token.Token, reason string) error {
		return w.fail(diagnostics.ErrArgumentMismatch, tok, name, reason)
	}
	bound := make([]ast.Expression, len(params))
	var rest []ast.Expression
	reordered := false
	next := 0

	for _, a := range args.Args {
		if a.Name == "" {
			switch {
			case reordered:
				return mismatch(a.Token, "positional argument after named argument")
			case next < len(params) && params[next].Variadic:
				rest = append(rest, a.Value)
			case next >= len(params):
				return mismatch(a.Token, fmt.Sprintf("expected at most %d arguments", len(params)))
			default:
				bound[next] = a.Value
				next++
			}
			continue
		}
		reordered = true
		idx := paramIndex(params, a.Name)
		if idx < 0 {
			return mismatch(a.Token, "unknown parameter '"+a.Name+"'")
		}
		if bound[idx] != nil {
			return mismatch(a.Token, "parameter '"+a.Name+"' given twice")
		}
		bound[idx] = a.Value
	}

	var unlabelled []*ast.CallbackArgument
	for _, cb := range args.Callbacks {
		reordered = true
		if cb.Label == "" {
			unlabelled = append(unlabelled, cb)
			continue
		}
		idx := paramIndex(params, cb.Label)
		if idx < 0 {
			return mismatch(cb.Token, "unknown parameter '"+cb.Label+"'")
		}
		if bound[idx] != nil {
			return mismatch(cb.Token, "parameter '"+cb.Label+"' given twice")
		}
		bound[idx] = cb.Value
	}
	if len(unlabelled) > 0 {
		start := len(params) - len(unlabelled)
		if start < 0 {
			return w.fail(diagnostics.ErrAmbiguousCallbackTarget, unlabelled[0].Token, name, "more callbacks than parameters")
		}
		for i, cb := range unlabelled {
			idx := start + i
			p := params[idx]
			if _, ok := typesystem.NonNull(types[idx]).(*typesystem.Callable); !ok {
				return w.fail(diagnostics.ErrAmbiguousCallbackTarget, cb.Token, name, "parameter '"+p.Name+"' is not callable")
			}
			if bound[idx] != nil {
				return w.fail(diagnostics.ErrAmbiguousCallbackTarget, cb.Token, name, "parameter '"+p.Name+"' is already bound")
			}
			bound[idx] = cb.Value
		}
	}

	for i, p := range params {
		if bound[i] == nil {
			if !p.IsOptional() {
				return w.fail(diagnostics.ErrMissingRequiredArgument, tok, p.Name)
			}
			continue
		}
		if err := w.checkArgument(p, types[i], bound[i]); err != nil {
			return err
		}
	}
	if len(rest) > 0 {
		last := params[len(params)-1]
		elem := typesystem.Type(typesystem.Any)
		if a, ok := types[len(params)-1].(*typesystem.Array); ok {
			elem = a.Elem
		}
		for _, x := range rest {
			if err := w.checkArgument(last, elem, x); err != nil {
				return err
			}
		}
	}

	if reordered {
		normalized := make([]ast.Expression, 0, len(params))
		for i, p := range params {
			switch {
			case bound[i] != nil:
				normalized = append(normalized, bound[i])
			case p.Variadic:
				normalized = append(normalized, rest...)
			case p.Value != nil:
				normalized = append(normalized, p.Value)
			}
		}
		args.Normalized = normalized
	}
	return nil
}

// bindPositional checks a call through a callable value, where only
// positional arguments are possible.
func (w *walker) bindPositional(ct *typesystem.Callable, args *ast.CallArguments, tok token.Token) error {
	values := make([]ast.Expression, 0, len(args.Args)+len(args.Callbacks))
	for _, a := range args.Args {
		if a.Name != "" {
			return w.fail(diagnostics.ErrArgumentMismatch, a.Token, ct, "named argument '"+a.Name+"' needs a declared callee")
		}
		values = append(values, a.Value)
	}
	for _, cb := range args.Callbacks {
		values = append(values, cb.Value)
	}
	if len(values) > len(ct.Params) {
		return w.fail(diagnostics.ErrArgumentMismatch, tok, ct, fmt.Sprintf("expected %d arguments, got %d", len(ct.Params), len(values)))
	}
	if len(values) < len(ct.Params) {
		return w.fail(diagnostics.ErrMissingRequiredArgument, tok, fmt.Sprintf("#%d", len(values)+1))
	}
	for i, v := range values {
		p := &ast.ParameterDeclaration{DeclBase: ast.DeclBase{Name: fmt.Sprintf("#%d", i+1)}}
		if err := w.checkArgument(p, ct.Params[i], v); err != nil {
			return err
		}
	}
	return nil
}

// checkArgument infers arg against parameter p of type pt. Unhinted
// lambda parameters take their types from the expected callable.
func (w *walker) checkArgument(p *ast.ParameterDeclaration, pt typesystem.Type, arg ast.Expression) error {
	if lambda, ok := arg.(*ast.AnonymousFunction); ok {
		if ct, ok := typesystem.NonNull(pt).(*typesystem.Callable); ok {
			propagateParams(lambda, ct)
		}
	}
	at, err := w.infer(arg)
	if err != nil {
		return err
	}
	if !w.accepts(pt, at) {
		return w.fail(diagnostics.ErrArgumentTypeMismatch, arg.GetToken(), p.Name, pt, at)
	}
	if p.IsInout && !w.isAssignable(arg) {
		return w.fail(diagnostics.ErrNonAssignableInoutArgument, arg.GetToken(), p.Name)
	}
	return nil
}

func propagateParams(lambda *ast.AnonymousFunction, ct *typesystem.Callable) {
	for i, lp := range lambda.Params {
		if i >= len(ct.Params) || lp.Hint() != nil || lp.IsChecking() {
			continue
		}
		lp.InferedType = ct.Params[i]
		lp.MarkChecking()
		lp.MarkChecked()
	}
}

// isAssignable reports expressions that denote a storage location.
func (w *walker) isAssignable(e ast.Expression) bool {
	switch n := e.(type) {
	case *ast.Parentheses:
		return w.isAssignable(n.Inner)
	case *ast.PlainIdentifier:
		if n.Symbol == nil {
			return false
		}
		switch n.Symbol.Declaration().(type) {
		case *ast.VariableDeclaration, *ast.ParameterDeclaration:
			return true
		}
	case *ast.AccessingIdentifier:
		if n.Member == nil {
			return true // dict key
		}
		return n.Member.MemberKind() == ast.PropertyMember
	case *ast.KeyAccessing, *ast.SquareAccessing:
		return true
	}
	return false
}

// VisitNewExpression instantiates a concrete class through its constructor.
func (w *walker) VisitNewExpression(e *ast.NewExpression) (typesystem.Type, error) {
	decl, err := w.resolveName(e.Class, w.virtualClass)
	if err != nil {
		return nil, err
	}
	class, ok := decl.(*ast.ClassDeclaration)
	if !ok {
		return nil, w.fail(diagnostics.ErrInvalidOperatorUsage, e.Token, "new", decl.DeclName()+" (not a class)")
	}
	if class.IsAbstract {
		return nil, w.fail(diagnostics.ErrInvalidOperatorUsage, e.Token, "new", "abstract class "+class.Name)
	}
	if !class.IsChecking() {
		if err := w.checkDeclaration(class); err != nil {
			return nil, err
		}
	} else if err := w.resolveHeader(class); err != nil {
		return nil, err
	}
	e.Target = class
	result := typesystem.NewClass(class)

	if class.IsVirtual {
		if err := w.inferArguments(&e.CallArguments); err != nil {
			return nil, err
		}
		return result, nil
	}
	ctor, err := w.findMember(class, config.ConstructorName)
	if err != nil {
		return nil, err
	}
	fn, isCallable := ctor.(ast.Callable)
	if !isCallable {
		if len(e.Args)+len(e.Callbacks) > 0 {
			return nil, w.fail(diagnostics.ErrArgumentMismatch, e.Token, class.Name, "constructor takes no arguments")
		}
		return result, nil
	}
	if err := w.checkAccess(ctor, e.Class, e); err != nil {
		return nil, err
	}
	ct, err := w.callableType(fn)
	if err != nil {
		return nil, err
	}
	if err := w.bindArguments(class.Name, fn.Signature().Params, ct.Params, &e.CallArguments, e.Token); err != nil {
		return nil, err
	}
	return result, nil
}
