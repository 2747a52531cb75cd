// Package analyzer performs definition-time analysis: it turns class
// declarations into composed slot layouts and environments, and binds
// every private-name reference to exactly one slot key. Binding
// happens once, here; execution never resolves a name again.
package analyzer

import (
	"sort"

	"github.com/funvibe/funseal/internal/ast"
	"github.com/funvibe/funseal/internal/diagnostics"
	"github.com/funvibe/funseal/internal/pipeline"
	"github.com/funvibe/funseal/internal/slots"
)

// Analyzer holds the definition-time state that outlives a single
// pipeline run: the key registry and the table of defined classes.
// A REPL session keeps one Analyzer so later lines see earlier
// classes; redefining a class name replaces the entry and mints a
// wholly new set of keys, leaving old instances bound to the old ones.
type Analyzer struct {
	registry *slots.Registry
	classes  map[string]*slots.Type
}

func New() *Analyzer {
	return &Analyzer{
		registry: NewRegistry(),
		classes:  make(map[string]*slots.Type),
	}
}

// NewRegistry is split out so tests can mint keys against the same
// allocator the analyzer uses.
func NewRegistry() *slots.Registry {
	return slots.NewRegistry()
}

// Class returns the engine type for a defined class name.
func (a *Analyzer) Class(name string) (*slots.Type, bool) {
	t, ok := a.classes[name]
	return t, ok
}

// Classes returns the defined class names, sorted.
func (a *Analyzer) Classes() []string {
	names := make([]string, 0, len(a.classes))
	for name := range a.classes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Analyze walks the program, defines every class it declares (nested
// ones included) and binds every private reference. Results go to
// ctx.TypeMap and ctx.Resolutions; failures become D-diagnostics on
// ctx.Errors.
func (a *Analyzer) Analyze(program *ast.Program, ctx *pipeline.PipelineContext) {
	b := &binder{analyzer: a, ctx: ctx}
	program.Accept(b)
}

// binder is the ast.Visitor that performs reference binding. current
// is the class body being analyzed, or nil outside any class body.
//
// Scoping is deliberately non-cascading: entering a nested class
// declaration replaces current wholesale, so an inner class never
// resolves against an outer class's names — only against its own
// declarations and its own parent's protected environment.
type binder struct {
	analyzer *Analyzer
	ctx      *pipeline.PipelineContext
	current  *slots.Type
}

func (b *binder) VisitProgram(n *ast.Program) {
	for _, stmt := range n.Statements {
		stmt.Accept(b)
	}
}

func (b *binder) VisitClassDeclaration(n *ast.ClassDeclaration) {
	var parent *slots.Type
	if n.Parent != nil {
		p, ok := b.analyzer.classes[n.Parent.Value]
		if !ok {
			b.ctx.Errors = append(b.ctx.Errors, diagnostics.NewError(
				diagnostics.ErrD003, n.Parent.Token,
				"unknown parent class %s", n.Parent.Value))
			return
		}
		parent = p
	}

	decls := make([]slots.Declaration, 0, len(n.Slots))
	seen := make(map[string]bool, len(n.Slots))
	dup := false
	for _, s := range n.Slots {
		if seen[s.Name] {
			dup = true
			b.ctx.Errors = append(b.ctx.Errors, diagnostics.NewError(
				diagnostics.ErrD001, s.Token,
				"duplicate slot declaration #%s in class %s", s.Name, n.Name.Value))
			continue
		}
		seen[s.Name] = true
		kind := slots.Private
		if s.Protected {
			kind = slots.Protected
		}
		decls = append(decls, slots.Declaration{Name: s.Name, Kind: kind})
	}
	if dup {
		// The class never becomes runnable; no keys are minted for it.
		return
	}

	typ, err := slots.DefineType(b.analyzer.registry, n.Name.Value, parent, decls)
	if err != nil {
		b.ctx.Errors = append(b.ctx.Errors, diagnostics.NewError(
			diagnostics.ErrD001, n.Name.Token, "%s", err))
		return
	}

	b.ctx.TypeMap[n] = typ
	b.analyzer.classes[n.Name.Value] = typ
	for _, s := range n.Slots {
		if key, ok := typ.Own(s.Name); ok {
			b.ctx.SlotKeys[s] = key
		}
	}

	// Bind initializers and method bodies against this class only.
	// Nested class declarations inside method bodies re-enter
	// VisitClassDeclaration and swap current for their own scope.
	prev := b.current
	b.current = typ
	for _, s := range n.Slots {
		if s.Init != nil {
			s.Init.Accept(b)
		}
	}
	for _, m := range n.Methods {
		m.Body.Accept(b)
	}
	b.current = prev
}

func (b *binder) VisitPrivateRef(n *ast.PrivateRef) {
	n.Receiver.Accept(b)

	if b.current == nil {
		b.ctx.Errors = append(b.ctx.Errors, diagnostics.NewError(
			diagnostics.ErrD004, n.Token,
			"private reference #%s outside a class body", n.Name))
		return
	}

	key, ok := b.current.Resolve(n.Name)
	if !ok {
		b.ctx.Errors = append(b.ctx.Errors, diagnostics.NewError(
			diagnostics.ErrD002, n.Token,
			"cannot resolve #%s: not declared by %s and not inherited as protected",
			n.Name, b.current.Name))
		return
	}
	b.ctx.Resolutions[n] = key
}

func (b *binder) VisitLetStatement(n *ast.LetStatement) {
	if n.Value != nil {
		n.Value.Accept(b)
	}
}

func (b *binder) VisitReturnStatement(n *ast.ReturnStatement) {
	if n.Value != nil {
		n.Value.Accept(b)
	}
}

func (b *binder) VisitExpressionStatement(n *ast.ExpressionStatement) {
	n.Expression.Accept(b)
}

func (b *binder) VisitBlockStatement(n *ast.BlockStatement) {
	for _, stmt := range n.Statements {
		stmt.Accept(b)
	}
}

func (b *binder) VisitAssignExpression(n *ast.AssignExpression) {
	n.Target.Accept(b)
	n.Value.Accept(b)
}

func (b *binder) VisitPrefixExpression(n *ast.PrefixExpression) {
	n.Right.Accept(b)
}

func (b *binder) VisitInfixExpression(n *ast.InfixExpression) {
	n.Left.Accept(b)
	n.Right.Accept(b)
}

func (b *binder) VisitIfExpression(n *ast.IfExpression) {
	n.Condition.Accept(b)
	n.Consequence.Accept(b)
	if n.Alternative != nil {
		n.Alternative.Accept(b)
	}
}

func (b *binder) VisitCallExpression(n *ast.CallExpression) {
	n.Function.Accept(b)
	for _, arg := range n.Arguments {
		arg.Accept(b)
	}
}

func (b *binder) VisitMethodCallExpression(n *ast.MethodCallExpression) {
	n.Receiver.Accept(b)
	for _, arg := range n.Arguments {
		arg.Accept(b)
	}
}

func (b *binder) VisitNewExpression(n *ast.NewExpression) {
	for _, arg := range n.Arguments {
		arg.Accept(b)
	}
}

func (b *binder) VisitIdentifier(n *ast.Identifier)         {}
func (b *binder) VisitIntegerLiteral(n *ast.IntegerLiteral) {}
func (b *binder) VisitStringLiteral(n *ast.StringLiteral)   {}
func (b *binder) VisitBooleanLiteral(n *ast.BooleanLiteral) {}
func (b *binder) VisitNilLiteral(n *ast.NilLiteral)         {}
func (b *binder) VisitThisExpression(n *ast.ThisExpression) {}
