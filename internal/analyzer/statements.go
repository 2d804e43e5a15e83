package analyzer

import (
	"github.com/funvibe/tea/internal/ast"
	"github.com/funvibe/tea/internal/config"
	"github.com/funvibe/tea/internal/diagnostics"
	"github.com/funvibe/tea/internal/typesystem"
)

func (w *walker) checkStatement(s ast.Statement) error {
	return s.AcceptStatement(w)
}

func (w *walker) VisitBlock(b *ast.Block) error {
	if b.Scope != nil {
		defer w.enterScope(b.Scope)()
	}
	for _, s := range b.Statements {
		if err := w.checkStatement(s); err != nil {
			return err
		}
	}
	return nil
}

func (w *walker) VisitExpressionStatement(s *ast.ExpressionStatement) error {
	_, err := w.infer(s.Expr)
	return err
}

func (w *walker) VisitVarStatement(s *ast.VarStatement) error {
	return w.checkDeclaration(s.Decl)
}

// VisitAssignmentStatement checks the value against the declared type of
// the target, ignoring any narrowing in effect. A compound assignment
// reads the target with its narrowed type.
func (w *walker) VisitAssignmentStatement(s *ast.AssignmentStatement) error {
	targetType, err := w.infer(s.Target)
	if err != nil {
		return err
	}
	if !w.isAssignable(s.Target) {
		return w.fail(diagnostics.ErrNotAssignable, s.Target.GetToken(), describe(s.Target))
	}
	storeType := targetType
	if id, ok := s.Target.(*ast.PlainIdentifier); ok {
		if d, ok := id.Symbol.Declaration().(ast.Declaration); ok {
			if t := w.declaredType(d); t != nil {
				storeType = t
			}
		}
	}

	valueType, err := w.infer(s.Value)
	if err != nil {
		return err
	}
	if s.Compound {
		var op ast.BinaryOperator
		if valueType, op, err = w.binaryResult(s.Operator, targetType, valueType, s.Token); err != nil {
			return err
		}
		s.Operator = op
	}
	if !w.accepts(storeType, valueType) {
		return w.fail(diagnostics.ErrTypeIncompatible, s.Value.GetToken(), storeType, valueType)
	}
	return nil
}

func describe(e ast.Expression) string {
	switch n := e.(type) {
	case *ast.PlainIdentifier:
		return "'" + n.Name + "'"
	case *ast.AccessingIdentifier:
		return "member '" + n.Name + "'"
	}
	return "expression"
}

func (w *walker) VisitReturnStatement(s *ast.ReturnStatement) error {
	fr := w.ctx.frame
	if fr == nil {
		return w.fail(diagnostics.ErrMisplacedStatement, s.Token, "'return' outside of a function")
	}
	if s.Value == nil {
		if fr.expected != nil && fr.expected.Tag() != typesystem.TagVoid && !fr.expected.Nullable() {
			return w.fail(diagnostics.ErrTypeIncompatible, s.Token, fr.expected, typesystem.Void)
		}
		fr.bare = true
		return nil
	}
	t, err := w.infer(s.Value)
	if err != nil {
		return err
	}
	if fr.expected != nil && !w.accepts(fr.expected, t) {
		return w.fail(diagnostics.ErrTypeIncompatible, s.Value.GetToken(), fr.expected, t)
	}
	fr.returns = append(fr.returns, t)
	return nil
}

// VisitIfStatement narrows the then-branch by the assertions of the
// condition and the else-branch by their complement.
func (w *walker) VisitIfStatement(s *ast.IfStatement) error {
	if _, err := w.infer(s.Condition); err != nil {
		return err
	}
	asserts := assertionsOf(s.Condition)
	if err := w.withAssertions(asserts, false, func() error {
		return w.checkStatement(s.Then)
	}); err != nil {
		return err
	}
	if s.Else == nil {
		return nil
	}
	return w.withAssertions(asserts, true, func() error {
		return w.checkStatement(s.Else)
	})
}

func (w *walker) inLoop() func() {
	w.ctx.loopDepth++
	return func() { w.ctx.loopDepth-- }
}

func (w *walker) VisitWhileStatement(s *ast.WhileStatement) error {
	if _, err := w.infer(s.Condition); err != nil {
		return err
	}
	defer w.inLoop()()
	return w.withAssertions(assertionsOf(s.Condition), false, func() error {
		return w.checkStatement(s.Body)
	})
}

// VisitForInStatement types the loop variables from the iterable.
func (w *walker) VisitForInStatement(s *ast.ForInStatement) error {
	it, err := w.infer(s.Iterable)
	if err != nil {
		return err
	}
	var key, value typesystem.Type
	switch t := typesystem.NonNull(it).(type) {
	case *typesystem.Array:
		key, value = typesystem.UInt, t.Elem
	case *typesystem.Dict:
		key, value = typesystem.String, t.Elem
	default:
		switch {
		case isStringish(it):
			key, value = typesystem.UInt, typesystem.String
		case it.Tag() == typesystem.TagAny:
			key, value = typesystem.Any, typesystem.Any
		case w.isIterator(it):
			key, value = typesystem.Any, typesystem.Any
		default:
			return w.fail(diagnostics.ErrInvalidOperatorUsage, s.Iterable.GetToken(), "for in", it)
		}
	}
	if err := w.bindLoopVariable(s.Key, key); err != nil {
		return err
	}
	if err := w.bindLoopVariable(s.Value, value); err != nil {
		return err
	}
	defer w.inLoop()()
	return w.checkStatement(s.Body)
}

func (w *walker) isIterator(t typesystem.Type) bool {
	c, ok := typesystem.NonNull(t).(*typesystem.Class)
	return ok && w.wellKnown.Iterator != nil && typesystem.IsSubtypeOf(c.Decl, w.wellKnown.Iterator)
}

func (w *walker) bindLoopVariable(v *ast.VariableDeclaration, t typesystem.Type) error {
	if v == nil || v.IsChecked() {
		return nil
	}
	v.MarkChecking()
	hint, err := w.resolveHint(v.Hint())
	if err != nil {
		return err
	}
	if hint != nil {
		if !w.accepts(hint, t) {
			return w.fail(diagnostics.ErrTypeIncompatible, v.Token, hint, t)
		}
		t = hint
	}
	v.InferedType = t
	v.MarkChecked()
	return nil
}

func (w *walker) VisitTryStatement(s *ast.TryStatement) error {
	if err := w.checkStatement(s.Body); err != nil {
		return err
	}
	for _, c := range s.Catches {
		if err := w.checkCatch(c); err != nil {
			return err
		}
	}
	if s.Finally != nil {
		return w.checkStatement(s.Finally)
	}
	return nil
}

// checkCatch types the catch variable, which must be an exception class.
func (w *walker) checkCatch(c *ast.CatchClause) error {
	if v := c.Var; v != nil && !v.IsChecked() {
		v.MarkChecking()
		t, err := w.resolveHint(v.Hint())
		if err != nil {
			return err
		}
		if t == nil {
			t = typesystem.Any
			if w.wellKnown.Exception != nil {
				t = instanceType(w.wellKnown.Exception)
			}
		}
		if !w.isThrowable(t) {
			return w.fail(diagnostics.ErrTypeIncompatible, v.Token, w.exceptionName(), t)
		}
		v.InferedType = t
		v.MarkChecked()
	}
	return w.checkStatement(c.Body)
}

func (w *walker) isThrowable(t typesystem.Type) bool {
	if t.Tag() == typesystem.TagAny || w.wellKnown.Exception == nil {
		return true
	}
	c, ok := typesystem.NonNull(t).(*typesystem.Class)
	return ok && typesystem.IsSubtypeOf(c.Decl, w.wellKnown.Exception)
}

func (w *walker) exceptionName() string {
	if w.wellKnown.Exception != nil {
		return w.wellKnown.Exception.DeclName()
	}
	return config.ExceptionName
}

func (w *walker) VisitThrowStatement(s *ast.ThrowStatement) error {
	t, err := w.infer(s.Value)
	if err != nil {
		return err
	}
	if !w.isThrowable(t) {
		return w.fail(diagnostics.ErrTypeIncompatible, s.Value.GetToken(), w.exceptionName(), t)
	}
	return nil
}

func (w *walker) VisitEchoStatement(s *ast.EchoStatement) error {
	_, err := w.inferAll(s.Values)
	return err
}

func (w *walker) VisitBreakStatement(s *ast.BreakStatement) error {
	if w.ctx.loopDepth == 0 {
		return w.fail(diagnostics.ErrMisplacedStatement, s.Token, "'break' outside of a loop")
	}
	return nil
}

func (w *walker) VisitContinueStatement(s *ast.ContinueStatement) error {
	if w.ctx.loopDepth == 0 {
		return w.fail(diagnostics.ErrMisplacedStatement, s.Token, "'continue' outside of a loop")
	}
	return nil
}
