// Package funseal provides a high-level API for embedding the funseal
// interpreter in a Go program.
//
// An Engine is a persistent session: classes defined by one Eval call
// are visible to the next, and instances stay alive as long as the
// engine does. Results are marshalled to plain Go values.
package funseal

import (
	"fmt"
	"io"
	"strings"

	"github.com/funvibe/funseal/internal/analyzer"
	"github.com/funvibe/funseal/internal/backend"
	"github.com/funvibe/funseal/internal/evaluator"
	"github.com/funvibe/funseal/internal/lexer"
	"github.com/funvibe/funseal/internal/parser"
	"github.com/funvibe/funseal/internal/pipeline"
)

// Engine wraps the full pipeline behind a persistent session.
type Engine struct {
	analyzer *analyzer.Analyzer
	backend  *backend.TreeWalk
}

// New creates a fresh engine with its own class namespace and globals.
func New() *Engine {
	return &Engine{
		analyzer: analyzer.New(),
		backend:  backend.NewTreeWalk(),
	}
}

// SetOutput redirects the print builtin. Default is os.Stdout.
func (e *Engine) SetOutput(w io.Writer) {
	e.backend.Evaluator.Out = w
}

// EvalError aggregates the diagnostics of one failed Eval call.
type EvalError struct {
	Diagnostics []string
}

func (e *EvalError) Error() string {
	return strings.Join(e.Diagnostics, "; ")
}

// Eval runs one source unit. The result is the value of the unit's
// last expression, marshalled to a Go value; definitions evaluate to
// nil.
func (e *Engine) Eval(source string) (interface{}, error) {
	ctx := pipeline.NewPipelineContext(source)
	ctx.FilePath = "<embed>"

	p := pipeline.New(
		&lexer.LexerProcessor{},
		&parser.ParserProcessor{},
		&analyzer.SemanticAnalyzerProcessor{Analyzer: e.analyzer},
		backend.NewExecutionProcessor(e.backend),
	)
	finalCtx := p.Run(ctx)

	if finalCtx.HasErrors() {
		evalErr := &EvalError{}
		for _, err := range finalCtx.Errors {
			evalErr.Diagnostics = append(evalErr.Diagnostics, err.Error())
		}
		return nil, evalErr
	}

	result, _ := finalCtx.Result.(evaluator.Object)
	return marshal(result)
}

// HasClass reports whether a class of that name has been defined in
// this engine.
func (e *Engine) HasClass(name string) bool {
	_, ok := e.analyzer.Class(name)
	return ok
}

// Classes returns the names of every class defined so far, sorted.
func (e *Engine) Classes() []string {
	return e.analyzer.Classes()
}

// Instance is an opaque handle to a funseal object held by an Engine.
type Instance struct {
	obj *evaluator.Instance
}

// ClassName returns the name of the class the instance was built from.
func (i *Instance) ClassName() string {
	return i.obj.Class.Name
}

func marshal(obj evaluator.Object) (interface{}, error) {
	switch obj := obj.(type) {
	case nil, *evaluator.Nil, *evaluator.EmptyValue:
		return nil, nil
	case *evaluator.Integer:
		return obj.Value, nil
	case *evaluator.String:
		return obj.Value, nil
	case *evaluator.Boolean:
		return obj.Value, nil
	case *evaluator.Instance:
		return &Instance{obj: obj}, nil
	default:
		return nil, fmt.Errorf("cannot marshal %s to a Go value", obj.Type())
	}
}
