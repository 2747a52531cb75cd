package parser

import (
	"github.com/funvibe/funseal/internal/diagnostics"
	"github.com/funvibe/funseal/internal/pipeline"
	"github.com/funvibe/funseal/internal/token"
)

type ParserProcessor struct{}

func (pp *ParserProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if ctx.TokenStream == nil {
		err := diagnostics.NewError(diagnostics.ErrP001, token.Token{}, "parser: token stream is nil")
		ctx.Errors = append(ctx.Errors, err)
		return ctx
	}

	p := New(ctx.TokenStream, ctx)
	ctx.AstRoot = p.ParseProgram()

	return ctx
}
