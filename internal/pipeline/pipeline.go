package pipeline

// Pipeline represents a sequence of processing stages.
type Pipeline struct {
	processors []Processor
}

func New(processors ...Processor) *Pipeline {
	return &Pipeline{processors: processors}
}

// Run executes the stages in order. A failed stage does not stop the run:
// later stages skip work whose input is missing. Cancelling ctx.Context
// stops before the next stage and records the cancellation.
func (p *Pipeline) Run(ctx *PipelineContext) *PipelineContext {
	for _, processor := range p.processors {
		if ctx.Context != nil {
			if err := ctx.Context.Err(); err != nil {
				ctx.addError(err)
				return ctx
			}
		}
		ctx = processor.Process(ctx)
	}
	return ctx
}
