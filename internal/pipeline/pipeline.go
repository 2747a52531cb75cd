package pipeline

import (
	"github.com/funvibe/funseal/internal/ast"
	"github.com/funvibe/funseal/internal/diagnostics"
	"github.com/funvibe/funseal/internal/slots"
	"github.com/funvibe/funseal/internal/token"
)

// PipelineContext carries one source unit through the stages. Each
// processor reads what earlier stages produced and appends its own
// results and errors.
type PipelineContext struct {
	Source   string
	FilePath string

	// Produced by the lexer.
	TokenStream []token.Token

	// Produced by the parser.
	AstRoot ast.Node

	// Produced by the analyzer: the engine type per class declaration,
	// the minted key per slot declaration, and the bound slot key per
	// private reference. All maps are keyed by AST node, fixed before
	// execution starts.
	TypeMap     map[*ast.ClassDeclaration]*slots.Type
	SlotKeys    map[*ast.SlotDeclaration]*slots.SlotKey
	Resolutions map[*ast.PrivateRef]*slots.SlotKey

	// Produced by the execution backend.
	Result interface{}

	Errors []*diagnostics.DiagnosticError
}

func NewPipelineContext(source string) *PipelineContext {
	return &PipelineContext{
		Source:      source,
		TypeMap:     make(map[*ast.ClassDeclaration]*slots.Type),
		SlotKeys:    make(map[*ast.SlotDeclaration]*slots.SlotKey),
		Resolutions: make(map[*ast.PrivateRef]*slots.SlotKey),
	}
}

// HasErrors reports whether any stage recorded a diagnostic.
func (ctx *PipelineContext) HasErrors() bool {
	return len(ctx.Errors) > 0
}

// Processor is a single pipeline stage.
type Processor interface {
	Process(ctx *PipelineContext) *PipelineContext
}

// Pipeline is a sequence of processing stages.
type Pipeline struct {
	processors []Processor
}

func New(processors ...Processor) *Pipeline {
	return &Pipeline{processors: processors}
}

// Run executes the pipeline. Stages keep running after errors so all
// diagnostics are collected; stages that must not run on a broken
// program (execution) check ctx.HasErrors themselves.
func (p *Pipeline) Run(initialCtx *PipelineContext) *PipelineContext {
	ctx := initialCtx
	for _, processor := range p.processors {
		ctx = processor.Process(ctx)
	}

	for _, err := range ctx.Errors {
		if err.File == "" {
			err.File = ctx.FilePath
		}
	}

	return ctx
}
