package pipeline

import "io"

// Pipeline represents a sequence of processing stages.
type Pipeline struct {
	processors []Processor
}

// Processor is one stage. It records failures in ctx.Err.
type Processor interface {
	Process(ctx *Context) *Context
}

func New(processors ...Processor) *Pipeline {
	return &Pipeline{processors: processors}
}

// Default binds, resolves uses, orders and checks every unit.
func Default() *Pipeline {
	return New(
		&BindProcessor{},
		&UsesProcessor{},
		&OrderProcessor{},
		&CheckProcessor{},
	)
}

// Run executes the pipeline. It stops at the first stage that fails.
func (p *Pipeline) Run(initialCtx *Context) *Context {
	ctx := initialCtx
	if ctx.Logger == nil {
		ctx.SetOutput(io.Discard)
	}
	for _, processor := range p.processors {
		ctx = processor.Process(ctx)
		if ctx.Err != nil {
			ctx.Logger.Printf("stopped: %v", ctx.Err)
			break
		}
	}
	return ctx
}
