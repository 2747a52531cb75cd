package analyzer

import (
	"github.com/funvibe/funseal/internal/ast"
	"github.com/funvibe/funseal/internal/pipeline"
)

// SemanticAnalyzerProcessor runs definition analysis as a pipeline
// stage. The wrapped Analyzer may be shared across runs (REPL); a
// zero-value processor analyzes with a fresh one.
type SemanticAnalyzerProcessor struct {
	Analyzer *Analyzer
}

func (sap *SemanticAnalyzerProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	program, ok := ctx.AstRoot.(*ast.Program)
	if !ok || program == nil {
		return ctx
	}

	a := sap.Analyzer
	if a == nil {
		a = New()
	}
	a.Analyze(program, ctx)

	return ctx
}
