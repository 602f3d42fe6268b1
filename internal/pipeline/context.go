package pipeline

import (
	"context"
	"errors"

	"github.com/seraphln/pyre-check/internal/ast"
	"github.com/seraphln/pyre-check/internal/typesystem"
)

// Processor is one stage of a pipeline.
type Processor interface {
	Process(ctx *PipelineContext) *PipelineContext
}

// PipelineContext carries one annotation through the stages.
type PipelineContext struct {
	Context context.Context

	// Name labels the annotation in output and in the store.
	Name       string
	SourceCode string

	Expression ast.Expression
	Type       typesystem.Type
	Errors     []error
}

func NewPipelineContext(name, source string) *PipelineContext {
	return &PipelineContext{Context: context.Background(), Name: name, SourceCode: source}
}

func (ctx *PipelineContext) addError(err error) {
	ctx.Errors = append(ctx.Errors, err)
}

// Err joins every error recorded so far.
func (ctx *PipelineContext) Err() error {
	return errors.Join(ctx.Errors...)
}
