package pipeline

import (
	"fmt"

	"github.com/funvibe/tea/internal/ast"
	"github.com/funvibe/tea/internal/binder"
)

// BindProcessor declares the symbols of the builtin unit and of every
// unit that has not been bound yet.
type BindProcessor struct{}

func (bp *BindProcessor) Process(ctx *Context) *Context {
	if ctx.Builtin != nil && ctx.Builtin.Scope == nil {
		if err := binder.BindBuiltin(ctx.Builtin); err != nil {
			ctx.Err = err
			return ctx
		}
	}
	seen := make(map[string]bool)
	for _, unit := range ctx.Units {
		if seen[unit.Name] {
			ctx.Err = fmt.Errorf("duplicate unit %q", unit.Name)
			return ctx
		}
		seen[unit.Name] = true
		if unit.Scope != nil {
			continue
		}
		if err := binder.Bind(unit); err != nil {
			ctx.Err = err
			return ctx
		}
	}
	return ctx
}

// UsesProcessor resolves the use declarations of every unit, which also
// records the unit dependencies.
type UsesProcessor struct{}

func (up *UsesProcessor) Process(ctx *Context) *Context {
	for _, unit := range ctx.Units {
		if err := ctx.analyzerFor(unit).ResolveUses(); err != nil {
			ctx.Err = err
			return ctx
		}
	}
	return ctx
}

// OrderProcessor sorts the units so that dependencies come first. Among
// ready units declaration order is kept; a dependency cycle is broken at
// its first declared unit.
type OrderProcessor struct{}

func (op *OrderProcessor) Process(ctx *Context) *Context {
	placed := make(map[*ast.Unit]bool)
	ready := func(u *ast.Unit) bool {
		for _, name := range u.Dependencies {
			if dep, ok := ctx.Unit(name); ok && dep != u && !placed[dep] {
				return false
			}
		}
		return true
	}

	order := make([]*ast.Unit, 0, len(ctx.Units))
	for len(order) < len(ctx.Units) {
		var next, pending *ast.Unit
		for _, u := range ctx.Units {
			if placed[u] {
				continue
			}
			if pending == nil {
				pending = u
			}
			if ready(u) {
				next = u
				break
			}
		}
		if next == nil {
			ctx.Logger.Printf("dependency cycle through unit %s", pending.Name)
			next = pending
		}
		placed[next] = true
		order = append(order, next)
	}
	ctx.Order = order
	return ctx
}

// CheckProcessor checks the units in order, skipping the ones the
// options filter out.
type CheckProcessor struct{}

func (cp *CheckProcessor) Process(ctx *Context) *Context {
	units := ctx.Order
	if units == nil {
		units = ctx.Units
	}
	for _, unit := range units {
		if !ctx.Options.Wants(unit.Name) {
			ctx.Logger.Printf("skipping unit %s", unit.Name)
			continue
		}
		if err := ctx.analyzerFor(unit).CheckUnit(); err != nil {
			ctx.Err = err
			return ctx
		}
		ctx.Checked = append(ctx.Checked, unit.Name)
	}
	return ctx
}
