package pipeline

import (
	"io"
	"log"

	"github.com/google/uuid"

	"github.com/funvibe/tea/internal/analyzer"
	"github.com/funvibe/tea/internal/ast"
	"github.com/funvibe/tea/internal/config"
)

// Context carries the units of one run through the processors.
type Context struct {
	RunID   string
	Builtin *ast.Unit
	Units   []*ast.Unit
	Options config.Options
	Logger  *log.Logger

	// Order is the checking order set by OrderProcessor.
	Order   []*ast.Unit
	// Checked lists the names of the units checked so far.
	Checked []string
	Err     error

	analyzers map[*ast.Unit]*analyzer.Analyzer
}

// NewContext starts a run over units. The log output is discarded until
// SetOutput is called.
func NewContext(builtin *ast.Unit, units []*ast.Unit, opts config.Options) *Context {
	ctx := &Context{
		RunID:     uuid.NewString(),
		Builtin:   builtin,
		Units:     units,
		Options:   opts,
		analyzers: make(map[*ast.Unit]*analyzer.Analyzer),
	}
	ctx.SetOutput(io.Discard)
	return ctx
}

// SetOutput redirects the run log. Lines are prefixed with the run id.
func (ctx *Context) SetOutput(w io.Writer) {
	ctx.Logger = log.New(w, "["+ctx.RunID+"] ", 0)
}

// Unit implements analyzer.UnitResolver over the units of the run.
func (ctx *Context) Unit(name string) (*ast.Unit, bool) {
	for _, u := range ctx.Units {
		if u.Name == name {
			return u, true
		}
	}
	return nil, false
}

// analyzerFor returns the analyzer of unit, creating it on first use.
func (ctx *Context) analyzerFor(unit *ast.Unit) *analyzer.Analyzer {
	if a, ok := ctx.analyzers[unit]; ok {
		return a
	}
	if ctx.analyzers == nil {
		ctx.analyzers = make(map[*ast.Unit]*analyzer.Analyzer)
	}
	a := analyzer.New(unit, ctx.Options)
	a.SetBuiltin(ctx.Builtin, ctx.Options.WellKnown)
	a.SetUnits(ctx)
	a.SetLogger(ctx.Logger)
	ctx.analyzers[unit] = a
	return a
}
