// Package binder builds the symbol tables of parsed units. It runs once per
// unit after parsing and before checking: every declaration gets a symbol in
// its scope, and every local learns its enclosing program, block and callable.
package binder

import (
	"github.com/funvibe/tea/internal/ast"
	"github.com/funvibe/tea/internal/diagnostics"
	"github.com/funvibe/tea/internal/symbols"
)

type binder struct {
	unit    *ast.Unit
	program *ast.Program
	fn      ast.Callable
}

// Bind declares the symbols of a regular unit.
func Bind(unit *ast.Unit) error {
	return bind(unit, symbols.ScopeUnit)
}

// BindBuiltin declares the symbols of the builtin unit.
func BindBuiltin(unit *ast.Unit) error {
	return bind(unit, symbols.ScopeBuiltin)
}

func bind(unit *ast.Unit, kind symbols.ScopeType) error {
	if unit.Scope == nil {
		unit.Scope = symbols.NewScope(kind, nil)
	}
	b := &binder{unit: unit}
	for _, p := range unit.Programs {
		if err := b.bindProgram(p); err != nil {
			return err
		}
	}
	return nil
}

func (b *binder) fail(code diagnostics.ErrorCode, node ast.Node, args ...interface{}) error {
	err := diagnostics.NewError(code, node.GetToken(), args...)
	if b.program != nil {
		err.InFile(b.program.File)
	}
	return err
}

func (b *binder) define(scope *symbols.Scope, d ast.Declaration) error {
	if !scope.Define(symbols.New(d.DeclName(), d)) {
		return b.fail(diagnostics.ErrDuplicateDeclaration, d, d.DeclName())
	}
	return nil
}

func (b *binder) bindProgram(p *ast.Program) error {
	b.program = p
	p.Unit = b.unit
	if p.Scope == nil {
		p.Scope = symbols.NewScope(symbols.ScopeProgram, nil)
	}

	// Use aliases stay unresolved until the checker looks at the target unit.
	for _, use := range p.Uses {
		use.Program = p
		if !p.Scope.Define(symbols.NewDeferred(use.Name, use)) {
			return b.fail(diagnostics.ErrDuplicateDeclaration, use, use.Name)
		}
	}

	for _, d := range p.Declarations {
		d.Base().Program = p
		if err := b.define(b.unit.Scope, d); err != nil {
			return err
		}
		if err := b.bindDeclaration(d, nil); err != nil {
			return err
		}
	}

	if p.Main != nil {
		b.fn = nil
		if err := b.bindBlock(p.Main, nil); err != nil {
			return err
		}
	}
	return nil
}

// bindDeclaration binds the inner scopes of d. outer is the scope lambdas
// close over.
func (b *binder) bindDeclaration(d ast.Declaration, outer *symbols.Scope) error {
	switch n := d.(type) {
	case *ast.ConstantDeclaration:
		return b.bindExpression(n.Value, outer)
	case *ast.VariableDeclaration:
		return b.bindExpression(n.Value, outer)
	case *ast.ClassConstantDeclaration:
		return b.bindExpression(n.Value, outer)
	case *ast.PropertyDeclaration:
		return b.bindExpression(n.Value, outer)
	case *ast.FunctionDeclaration:
		return b.bindCallable(n, outer)
	case *ast.MethodDeclaration:
		return b.bindCallable(n, outer)
	case *ast.MaskedDeclaration:
		if err := b.bindCallable(n, outer); err != nil {
			return err
		}
		return b.withFunction(n, func() error {
			return b.bindExpression(n.Template, n.Scope)
		})
	case ast.ClassKindred:
		return b.bindClass(n)
	}
	return nil
}

func (b *binder) withFunction(fn ast.Callable, f func() error) error {
	saved := b.fn
	b.fn = fn
	defer func() { b.fn = saved }()
	return f()
}

func (b *binder) bindClass(c ast.ClassKindred) error {
	cb := c.Class()
	if cb.Members == nil {
		cb.Members = symbols.NewScope(symbols.ScopeClass, nil)
	}
	for _, m := range cb.Declarations {
		setOwner(m, c)
		m.Base().Program = b.program
		if err := b.define(cb.Members, m); err != nil {
			return err
		}
		if err := b.bindDeclaration(m, nil); err != nil {
			return err
		}
	}
	return nil
}

func setOwner(m ast.Member, owner ast.ClassKindred) {
	switch n := m.(type) {
	case *ast.MethodDeclaration:
		n.Owner = owner
	case *ast.MaskedDeclaration:
		n.Owner = owner
	case *ast.PropertyDeclaration:
		n.Owner = owner
	case *ast.ClassConstantDeclaration:
		n.Owner = owner
	}
}

// bindCallable declares parameters in a fresh function scope chained to
// outer, then binds the body under it.
func (b *binder) bindCallable(fn ast.Callable, outer *symbols.Scope) error {
	sig := fn.Signature()
	sig.Scope = symbols.NewScope(symbols.ScopeFunction, outer)
	for _, p := range sig.Params {
		p.Program = b.program
		p.Function = fn
		if err := b.define(sig.Scope, p); err != nil {
			return err
		}
		if err := b.bindExpression(p.Value, outer); err != nil {
			return err
		}
	}
	return b.withFunction(fn, func() error {
		if lambda, ok := fn.(*ast.AnonymousFunction); ok && lambda.Result != nil {
			if err := b.bindExpression(lambda.Result, sig.Scope); err != nil {
				return err
			}
		}
		if sig.Body == nil {
			return nil
		}
		return b.bindBlock(sig.Body, sig.Scope)
	})
}

func (b *binder) bindBlock(block *ast.Block, outer *symbols.Scope) error {
	block.Scope = symbols.NewScope(symbols.ScopeBlock, outer)
	return b.bindStatements(block)
}

func (b *binder) bindStatements(block *ast.Block) error {
	for _, stmt := range block.Statements {
		if err := b.bindStatement(stmt, block); err != nil {
			return err
		}
	}
	return nil
}

// local declares d in block.
func (b *binder) local(d *ast.VariableDeclaration, block *ast.Block) error {
	if d == nil {
		return nil
	}
	d.Program = b.program
	d.Block = block
	d.Function = b.fn
	return b.define(block.Scope, d)
}

func (b *binder) bindStatement(stmt ast.Statement, block *ast.Block) error {
	scope := block.Scope
	switch s := stmt.(type) {
	case *ast.ExpressionStatement:
		return b.bindExpression(s.Expr, scope)
	case *ast.VarStatement:
		if err := b.local(s.Decl, block); err != nil {
			return err
		}
		return b.bindExpression(s.Decl.Value, scope)
	case *ast.AssignmentStatement:
		if err := b.bindExpression(s.Target, scope); err != nil {
			return err
		}
		return b.bindExpression(s.Value, scope)
	case *ast.ReturnStatement:
		return b.bindExpression(s.Value, scope)
	case *ast.ThrowStatement:
		return b.bindExpression(s.Value, scope)
	case *ast.EchoStatement:
		for _, v := range s.Values {
			if err := b.bindExpression(v, scope); err != nil {
				return err
			}
		}
	case *ast.IfStatement:
		if err := b.bindExpression(s.Condition, scope); err != nil {
			return err
		}
		if err := b.bindBlock(s.Then, scope); err != nil {
			return err
		}
		switch e := s.Else.(type) {
		case nil:
		case *ast.Block:
			return b.bindBlock(e, scope)
		default:
			return b.bindStatement(e, block)
		}
	case *ast.WhileStatement:
		if err := b.bindExpression(s.Condition, scope); err != nil {
			return err
		}
		return b.bindBlock(s.Body, scope)
	case *ast.ForInStatement:
		if err := b.bindExpression(s.Iterable, scope); err != nil {
			return err
		}
		s.Body.Scope = symbols.NewScope(symbols.ScopeBlock, scope)
		if err := b.local(s.Key, s.Body); err != nil {
			return err
		}
		if err := b.local(s.Value, s.Body); err != nil {
			return err
		}
		return b.bindStatements(s.Body)
	case *ast.TryStatement:
		if err := b.bindBlock(s.Body, scope); err != nil {
			return err
		}
		for _, c := range s.Catches {
			c.Body.Scope = symbols.NewScope(symbols.ScopeBlock, scope)
			if err := b.local(c.Var, c.Body); err != nil {
				return err
			}
			if err := b.bindStatements(c.Body); err != nil {
				return err
			}
		}
		if s.Finally != nil {
			return b.bindBlock(s.Finally, scope)
		}
	case *ast.Block:
		return b.bindBlock(s, scope)
	}
	return nil
}

// bindExpression finds the lambdas and object literals inside e.
func (b *binder) bindExpression(e ast.Expression, scope *symbols.Scope) error {
	var err error
	ast.Inspect(e, func(n ast.Expression) bool {
		if err != nil {
			return false
		}
		switch x := n.(type) {
		case *ast.AnonymousFunction:
			x.Program = b.program
			x.Function = b.fn
			err = b.bindCallable(x, scope)
			return false
		case *ast.ObjectLiteral:
			for _, m := range x.Members {
				m.Program = b.program
				m.Function = b.fn
			}
		}
		return true
	})
	return err
}
