package backend

import (
	"github.com/funvibe/funseal/internal/ast"
	"github.com/funvibe/funseal/internal/diagnostics"
	"github.com/funvibe/funseal/internal/evaluator"
	"github.com/funvibe/funseal/internal/pipeline"
	"github.com/funvibe/funseal/internal/token"
)

// Backend executes an analyzed program.
type Backend interface {
	Execute(ctx *pipeline.PipelineContext) evaluator.Object
}

// TreeWalk is the tree-walking backend. It owns the evaluator and the
// global environment, so classes and let bindings survive across runs
// when the same TreeWalk is reused (REPL, embedding).
type TreeWalk struct {
	Evaluator *evaluator.Evaluator
	Env       *evaluator.Environment
}

func NewTreeWalk() *TreeWalk {
	e := evaluator.New()
	env := evaluator.NewEnvironment()
	evaluator.RegisterBuiltins(e, env)
	return &TreeWalk{Evaluator: e, Env: env}
}

func (tw *TreeWalk) Execute(ctx *pipeline.PipelineContext) evaluator.Object {
	program, ok := ctx.AstRoot.(*ast.Program)
	if !ok || program == nil {
		return nil
	}
	tw.Evaluator.AddBindings(ctx.TypeMap, ctx.SlotKeys, ctx.Resolutions)
	return tw.Evaluator.Eval(program, tw.Env)
}

// ExecutionProcessor runs the backend as the final pipeline stage.
// Definition errors abort before execution: a program with dangling
// bindings never runs.
type ExecutionProcessor struct {
	backend Backend
}

func NewExecutionProcessor(b Backend) *ExecutionProcessor {
	return &ExecutionProcessor{backend: b}
}

func (ep *ExecutionProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if ctx.HasErrors() {
		return ctx
	}

	result := ep.backend.Execute(ctx)
	ctx.Result = result

	if errObj, ok := result.(*evaluator.Error); ok {
		ctx.Errors = append(ctx.Errors, diagnostics.NewError(
			diagnostics.ErrR001, token.Token{}, "%s", errObj.Message))
	}

	return ctx
}
