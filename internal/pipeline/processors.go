package pipeline

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/seraphln/pyre-check/internal/parser"
	"github.com/seraphln/pyre-check/internal/typestore"
	"github.com/seraphln/pyre-check/internal/typesystem"
)

// ParseProcessor parses SourceCode into Expression.
type ParseProcessor struct{}

func (ParseProcessor) Process(ctx *PipelineContext) *PipelineContext {
	expression, err := parser.Parse(ctx.SourceCode)
	if err != nil {
		ctx.addError(err)
		return ctx
	}
	ctx.Expression = expression
	return ctx
}

// ConstructProcessor builds Type from Expression.
type ConstructProcessor struct {
	Aliases typesystem.AliasResolver
}

func (p ConstructProcessor) Process(ctx *PipelineContext) *PipelineContext {
	if ctx.Expression == nil {
		return ctx
	}
	ctx.Type = typesystem.Create(p.Aliases, ctx.Expression)
	return ctx
}

// DequalifyProcessor shortens qualified names in Type. An empty rename table is a no-op.
type DequalifyProcessor struct {
	Renames map[string]string
}

func (p DequalifyProcessor) Process(ctx *PipelineContext) *PipelineContext {
	if ctx.Type == nil || len(p.Renames) == 0 {
		return ctx
	}
	ctx.Type = typesystem.Dequalify(p.Renames, ctx.Type)
	return ctx
}

// ArchiveProcessor writes Type into a store snapshot under Name.
type ArchiveProcessor struct {
	Store    *typestore.Store
	Snapshot uuid.UUID
}

func (p ArchiveProcessor) Process(ctx *PipelineContext) *PipelineContext {
	if ctx.Type == nil || p.Store == nil {
		return ctx
	}
	if err := p.Store.Put(ctx.Context, p.Snapshot, ctx.Name, ctx.Type); err != nil {
		ctx.addError(fmt.Errorf("archiving %s: %w", ctx.Name, err))
	}
	return ctx
}

// Annotation runs the parse and construct stages over source and returns the
// resulting type.
func Annotation(aliases typesystem.AliasResolver, source string) (typesystem.Type, error) {
	ctx := New(ParseProcessor{}, ConstructProcessor{Aliases: aliases}).Run(NewPipelineContext(source, source))
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return ctx.Type, nil
}

// Aliases builds the alias table from name to annotation text. Targets are
// constructed without aliases.
func Aliases(targets map[string]string) (map[string]typesystem.Type, error) {
	aliases := make(map[string]typesystem.Type, len(targets))
	for name, target := range targets {
		typ, err := Annotation(typesystem.NoAliases, target)
		if err != nil {
			return nil, fmt.Errorf("alias %s: %w", name, err)
		}
		aliases[name] = typ
	}
	return aliases, nil
}
