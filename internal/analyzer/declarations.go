package analyzer

import (
	"github.com/funvibe/tea/internal/ast"
	"github.com/funvibe/tea/internal/diagnostics"
	"github.com/funvibe/tea/internal/typesystem"
)

// checkDeclaration runs the check of d at most once. Reaching a
// declaration whose check is still in progress is a circular inference.
func (w *walker) checkDeclaration(d ast.Declaration) error {
	base := d.Base()
	if base.IsChecked() {
		return nil
	}
	if base.IsChecking() {
		return w.fail(diagnostics.ErrCircularTypeInference, base.Token, base.Name)
	}
	base.MarkChecking()
	if !w.inFlow(d) {
		defer w.suspendNarrowing()()
	}
	defer w.enter(w.cursorFor(d))()
	return d.AcceptDeclaration(w)
}

// inFlow reports whether d is checked as part of the code being walked:
// locals of the current callable chain and declarations embedded in
// expressions. Those see the narrowing in effect; everything else is
// checked against declared types.
func (w *walker) inFlow(d ast.Declaration) bool {
	switch d.(type) {
	case *ast.ObjectMember, *ast.AnonymousFunction:
		return true
	}
	fn := d.Base().Function
	if fn == nil {
		return false
	}
	for c := w.ctx.function; c != nil; c = c.Base().Function {
		if c == fn {
			return true
		}
	}
	return false
}

// cursorFor computes the position a declaration is checked from,
// independent of where the check was requested.
func (w *walker) cursorFor(d ast.Declaration) cursor {
	base := d.Base()
	c := cursor{program: base.Program}
	if c.program == nil {
		c.program = w.ctx.program
	}
	switch n := d.(type) {
	case ast.Member:
		c.class = n.OwnerClass()
	case ast.ClassKindred:
		c.class = n
	case *ast.ObjectMember, *ast.AnonymousFunction:
		// Embedded in an expression: checked where it appears.
		c = w.ctx
	default:
		c.function = base.Function
		c.class = classOf(base.Function)
		if base.Block != nil {
			c.scope = base.Block.Scope
			if base.Function == w.ctx.function {
				c.frame = w.ctx.frame
			}
		}
	}
	return c
}

// classOf finds the class owning fn, looking through enclosing lambdas.
func classOf(fn ast.Callable) ast.ClassKindred {
	for fn != nil {
		if m, ok := fn.(ast.Member); ok {
			return m.OwnerClass()
		}
		fn = fn.Base().Function
	}
	return nil
}

// enclosingMethod is the nearest non-lambda callable.
func enclosingMethod(fn ast.Callable) ast.Callable {
	for fn != nil {
		if _, ok := fn.(*ast.AnonymousFunction); !ok {
			return fn
		}
		fn = fn.Base().Function
	}
	return nil
}

// declarationType returns the type an identifier bound to d has.
func (w *walker) declarationType(d ast.Declaration) (typesystem.Type, error) {
	switch n := d.(type) {
	case ast.ClassKindred:
		// A class may be named while its own members are being checked.
		if !n.Base().IsChecking() {
			if err := w.checkDeclaration(n); err != nil {
				return nil, err
			}
		}
		return typesystem.NewMeta(instanceType(n)), nil
	case ast.Callable:
		return w.callableTypeOf(n)
	}
	if err := w.checkDeclaration(d); err != nil {
		return nil, err
	}
	if t := d.Base().InferedType; t != nil {
		return t, nil
	}
	return typesystem.Any, nil
}

// instanceType is the type of values of class-kindred k.
func instanceType(k ast.ClassKindred) typesystem.Type {
	if b, ok := k.(*ast.BuiltinTypeClassDeclaration); ok && b.Type != nil {
		return b.Type
	}
	return typesystem.NewClass(k)
}

// callableType returns the callable type of fn. While fn is being checked
// its type can still be built from its hints; without a return hint the
// reference is circular.
func (w *walker) callableType(fn ast.Callable) (*typesystem.Callable, error) {
	base := fn.Base()
	if base.IsChecking() && !base.IsChecked() {
		if base.Hint() == nil {
			return nil, w.fail(diagnostics.ErrCircularTypeInference, base.Token, base.Name)
		}
		defer w.enter(w.cursorFor(fn))()
		ret, err := w.resolveHint(base.Hint())
		if err != nil {
			return nil, err
		}
		return typesystem.NewCallable(paramTypes(fn.Signature()), ret), nil
	}
	if err := w.checkDeclaration(fn); err != nil {
		return nil, err
	}
	if c, ok := base.InferedType.(*typesystem.Callable); ok {
		return c, nil
	}
	return typesystem.NewCallable(paramTypes(fn.Signature()), typesystem.Any), nil
}

// callableTypeOf is callableType as a plain Type.
func (w *walker) callableTypeOf(fn ast.Callable) (typesystem.Type, error) {
	c, err := w.callableType(fn)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func paramTypes(sig *ast.FuncBase) []typesystem.Type {
	out := make([]typesystem.Type, len(sig.Params))
	for i, p := range sig.Params {
		out[i] = p.InferedType
		if out[i] == nil {
			out[i] = typesystem.Any
		}
	}
	return out
}

// hintedOrInferred merges an optional type hint with the type inferred
// from the initial value.
func (w *walker) hintedOrInferred(base *ast.DeclBase, inferred typesystem.Type, value ast.Expression) (typesystem.Type, error) {
	hint, err := w.resolveHint(base.Hint())
	if err != nil {
		return nil, err
	}
	if hint != nil {
		if inferred != nil && inferred.Tag() != typesystem.TagNone && !w.accepts(hint, inferred) {
			return nil, w.fail(diagnostics.ErrTypeIncompatible, value.GetToken(), hint, inferred)
		}
		return hint, nil
	}
	if inferred == nil || inferred.Tag() == typesystem.TagNone {
		return typesystem.Any, nil
	}
	if inferred.Tag() == typesystem.TagUInt {
		if _, ok := value.(*ast.IntegerLiteral); ok {
			return typesystem.Int, nil
		}
	}
	return inferred, nil
}

func (w *walker) inferOptional(e ast.Expression) (typesystem.Type, error) {
	if e == nil {
		return nil, nil
	}
	return w.infer(e)
}

func (w *walker) VisitConstantDeclaration(d *ast.ConstantDeclaration) error {
	return w.checkConstant(&d.DeclBase, d.Value)
}

func (w *walker) VisitClassConstantDeclaration(d *ast.ClassConstantDeclaration) error {
	return w.checkConstant(&d.DeclBase, d.Value)
}

// checkConstant requires a hint or a value; a value must be a
// compile-time constant expression.
func (w *walker) checkConstant(base *ast.DeclBase, value ast.Expression) error {
	hint, err := w.resolveHint(base.Hint())
	if err != nil {
		return err
	}
	if value == nil {
		if hint == nil {
			if !w.weak {
				return w.fail(diagnostics.ErrMissingTypeHint, base.Token, "constant '"+base.Name+"'")
			}
			hint = typesystem.Any
		}
		base.InferedType = hint
		base.MarkChecked()
		return nil
	}

	t, err := w.infer(value)
	if err != nil {
		return err
	}
	if !isConstantExpression(value) {
		return w.fail(diagnostics.ErrInvalidConstantExpression, value.GetToken(), "value of '"+base.Name+"'")
	}
	if hint != nil {
		if !w.accepts(hint, t) {
			return w.fail(diagnostics.ErrTypeIncompatible, value.GetToken(), hint, t)
		}
		t = hint
	}
	base.InferedType = t
	base.MarkChecked()
	return nil
}

func (w *walker) VisitVariableDeclaration(d *ast.VariableDeclaration) error {
	t, err := w.inferOptional(d.Value)
	if err != nil {
		return err
	}
	if d.InferedType, err = w.hintedOrInferred(&d.DeclBase, t, d.Value); err != nil {
		return err
	}
	d.MarkChecked()
	return nil
}

func (w *walker) VisitParameterDeclaration(d *ast.ParameterDeclaration) error {
	t, err := w.inferOptional(d.Value)
	if err != nil {
		return err
	}
	if d.Value != nil && !isConstantExpression(d.Value) {
		return w.fail(diagnostics.ErrInvalidConstantExpression, d.Value.GetToken(), "default of '"+d.Name+"'")
	}
	pt, err := w.hintedOrInferred(&d.DeclBase, t, d.Value)
	if err != nil {
		return err
	}
	if d.Variadic {
		pt = typesystem.NewArray(pt)
	}
	d.InferedType = pt
	d.MarkChecked()
	return nil
}

func (w *walker) VisitPropertyDeclaration(d *ast.PropertyDeclaration) error {
	t, err := w.inferOptional(d.Value)
	if err != nil {
		return err
	}
	if d.InferedType, err = w.hintedOrInferred(&d.DeclBase, t, d.Value); err != nil {
		return err
	}
	d.MarkChecked()
	return nil
}

func (w *walker) VisitObjectMember(d *ast.ObjectMember) error {
	t, err := w.inferOptional(d.Value)
	if err != nil {
		return err
	}
	if d.InferedType, err = w.hintedOrInferred(&d.DeclBase, t, d.Value); err != nil {
		return err
	}
	d.MarkChecked()
	return nil
}

func (w *walker) VisitFunctionDeclaration(d *ast.FunctionDeclaration) error {
	return w.checkCallable(d)
}

func (w *walker) VisitMethodDeclaration(d *ast.MethodDeclaration) error {
	return w.checkCallable(d)
}

func (w *walker) VisitAnonymousFunctionDecl(d *ast.AnonymousFunction) error {
	return w.checkCallable(d)
}

// checkCallable checks parameters, then the body with a fresh return
// frame, and stores the resulting callable type.
func (w *walker) checkCallable(fn ast.Callable) error {
	base := fn.Base()
	sig := fn.Signature()
	for _, p := range sig.Params {
		if err := w.checkDeclaration(p); err != nil {
			return err
		}
	}
	ret, err := w.resolveHint(base.Hint())
	if err != nil {
		return err
	}

	fr := &frame{decl: fn, expected: ret}
	if err := w.checkBody(fn, fr); err != nil {
		return err
	}

	switch {
	case ret != nil:
	case sig.IsGenerator:
		ret = typesystem.Any
		if w.wellKnown.Iterator != nil {
			ret = instanceType(w.wellKnown.Iterator)
		}
	default:
		// Bare returns alone give Void; next to valued returns they make
		// the result nullable.
		ret = typesystem.ReduceTypes(fr.returns)
		switch {
		case ret == nil:
			ret = typesystem.Void
		case fr.bare:
			ret = typesystem.WithNullable(ret, true)
		}
	}
	base.InferedType = typesystem.NewCallable(paramTypes(sig), ret)
	base.MarkChecked()
	return nil
}

func (w *walker) checkBody(fn ast.Callable, fr *frame) error {
	sig := fn.Signature()
	lambda, _ := fn.(*ast.AnonymousFunction)
	if sig.Body == nil && (lambda == nil || lambda.Result == nil) {
		return nil
	}
	c := w.ctx
	c.scope = sig.Scope
	c.function = fn
	c.frame = fr
	c.loopDepth = 0
	defer w.enter(c)()

	if lambda != nil && lambda.Result != nil {
		t, err := w.infer(lambda.Result)
		if err != nil {
			return err
		}
		if fr.expected != nil && !w.accepts(fr.expected, t) {
			return w.fail(diagnostics.ErrTypeIncompatible, lambda.Result.GetToken(), fr.expected, t)
		}
		fr.returns = append(fr.returns, t)
		return nil
	}
	return w.checkStatement(sig.Body)
}

// VisitMaskedDeclaration checks a method whose body is a call template.
func (w *walker) VisitMaskedDeclaration(d *ast.MaskedDeclaration) error {
	for _, p := range d.Params {
		if err := w.checkDeclaration(p); err != nil {
			return err
		}
	}
	c := w.ctx
	c.scope = d.Scope
	c.function = d
	restore := w.enter(c)
	t, err := w.infer(d.Template)
	restore()
	if err != nil {
		return err
	}
	ret, err := w.hintedOrInferred(&d.DeclBase, t, d.Template)
	if err != nil {
		return err
	}
	d.InferedType = typesystem.NewCallable(paramTypes(&d.FuncBase), ret)
	d.MarkChecked()
	return nil
}

func (w *walker) VisitUseDeclaration(d *ast.UseDeclaration) error {
	target, err := w.useTarget(d)
	if err != nil {
		return err
	}
	t, err := w.declarationType(target)
	if err != nil {
		return err
	}
	d.InferedType = t
	d.MarkChecked()
	return nil
}
