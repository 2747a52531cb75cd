package analyzer

import (
	"testing"

	"github.com/funvibe/funseal/internal/ast"
	"github.com/funvibe/funseal/internal/lexer"
	"github.com/funvibe/funseal/internal/parser"
	"github.com/funvibe/funseal/internal/pipeline"
	"github.com/funvibe/funseal/internal/slots"
)

func analyze(t *testing.T, input string) (*Analyzer, *pipeline.PipelineContext) {
	t.Helper()
	a := New()
	ctx := pipeline.NewPipelineContext(input)
	p := pipeline.New(
		&lexer.LexerProcessor{},
		&parser.ParserProcessor{},
		&SemanticAnalyzerProcessor{Analyzer: a},
	)
	return a, p.Run(ctx)
}

func analyzeNoErrors(t *testing.T, input string) (*Analyzer, *pipeline.PipelineContext) {
	t.Helper()
	a, ctx := analyze(t, input)
	for _, err := range ctx.Errors {
		t.Errorf("unexpected diagnostic: %s", err)
	}
	if ctx.HasErrors() {
		t.FailNow()
	}
	return a, ctx
}

// collectRefs returns every private reference node in declaration
// order, keyed by "Class.method" walking.
func collectRefs(program *ast.Program) []*ast.PrivateRef {
	var refs []*ast.PrivateRef
	var walkStmt func(ast.Statement)
	var walkExpr func(ast.Expression)

	walkExpr = func(e ast.Expression) {
		switch n := e.(type) {
		case *ast.PrivateRef:
			walkExpr(n.Receiver)
			refs = append(refs, n)
		case *ast.AssignExpression:
			walkExpr(n.Target)
			walkExpr(n.Value)
		case *ast.PrefixExpression:
			walkExpr(n.Right)
		case *ast.InfixExpression:
			walkExpr(n.Left)
			walkExpr(n.Right)
		case *ast.IfExpression:
			walkExpr(n.Condition)
			walkStmt(n.Consequence)
			if n.Alternative != nil {
				walkStmt(n.Alternative)
			}
		case *ast.CallExpression:
			walkExpr(n.Function)
			for _, a := range n.Arguments {
				walkExpr(a)
			}
		case *ast.MethodCallExpression:
			walkExpr(n.Receiver)
			for _, a := range n.Arguments {
				walkExpr(a)
			}
		case *ast.NewExpression:
			for _, a := range n.Arguments {
				walkExpr(a)
			}
		}
	}
	walkStmt = func(s ast.Statement) {
		switch n := s.(type) {
		case *ast.LetStatement:
			walkExpr(n.Value)
		case *ast.ReturnStatement:
			if n.Value != nil {
				walkExpr(n.Value)
			}
		case *ast.ExpressionStatement:
			walkExpr(n.Expression)
		case *ast.BlockStatement:
			for _, inner := range n.Statements {
				walkStmt(inner)
			}
		case *ast.ClassDeclaration:
			for _, m := range n.Methods {
				walkStmt(m.Body)
			}
		}
	}
	for _, s := range program.Statements {
		walkStmt(s)
	}
	return refs
}

func TestBindOwnAndInherited(t *testing.T) {
	input := `
class Base {
  protected #s
  private #t
  m() { this.#s = this.#t }
}
class Child extends Base {
  n() { return this.#s }
}`

	a, ctx := analyzeNoErrors(t, input)
	program := ctx.AstRoot.(*ast.Program)
	refs := collectRefs(program)
	if len(refs) != 3 {
		t.Fatalf("found %d private refs, want 3", len(refs))
	}

	base, _ := a.Class("Base")
	sKey, _ := base.Own("s")
	tKey, _ := base.Own("t")

	if ctx.Resolutions[refs[0]] != sKey {
		t.Errorf("Base.m #s bound to %s, want Base's #s", ctx.Resolutions[refs[0]])
	}
	if ctx.Resolutions[refs[1]] != tKey {
		t.Errorf("Base.m #t bound to %s, want Base's #t", ctx.Resolutions[refs[1]])
	}
	// Child has no own #s: the reference binds to the inherited
	// protected key — the same identity, not a copy.
	if ctx.Resolutions[refs[2]] != sKey {
		t.Errorf("Child.n #s bound to %s, want Base's #s", ctx.Resolutions[refs[2]])
	}
}

func TestShadowedBindingIsLocal(t *testing.T) {
	input := `
class Base {
  protected #s
  baseS() { return this.#s }
}
class Derived extends Base {
  private #s
  ownS() { return this.#s }
}`

	a, ctx := analyzeNoErrors(t, input)
	refs := collectRefs(ctx.AstRoot.(*ast.Program))

	base, _ := a.Class("Base")
	derived, _ := a.Class("Derived")
	baseKey, _ := base.Own("s")
	derivedKey, _ := derived.Own("s")

	if ctx.Resolutions[refs[0]] != baseKey {
		t.Errorf("Base.baseS bound to %s, want Base's key", ctx.Resolutions[refs[0]])
	}
	if ctx.Resolutions[refs[1]] != derivedKey {
		t.Errorf("Derived.ownS bound to %s, want Derived's key", ctx.Resolutions[refs[1]])
	}
	if baseKey == derivedKey {
		t.Errorf("shadowing reused the parent key")
	}
}

func TestDefinitionErrors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantCode string
	}{
		{
			"unresolved in root class",
			`class T { m() { return this.#missing } }`,
			"D002",
		},
		{
			"unresolved despite parent",
			`class P { protected #a }
			 class C extends P { m() { return this.#b } }`,
			"D002",
		},
		{
			"private not inherited",
			`class P { private #a }
			 class C extends P { m() { return this.#a } }`,
			"D002",
		},
		{
			"shadow removes inherited name from grandchild",
			`class P { protected #x }
			 class C extends P { private #x }
			 class G extends C { m() { return this.#x } }`,
			"D002",
		},
		{
			"duplicate slot",
			`class T { private #a protected #a }`,
			"D001",
		},
		{
			"unknown parent",
			`class C extends Nope { }`,
			"D003",
		},
		{
			"reference outside class",
			`let x = 1
			 x.#secret`,
			"D004",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ctx := analyze(t, tt.input)
			found := false
			for _, err := range ctx.Errors {
				if err.Code == tt.wantCode {
					found = true
				}
			}
			if !found {
				t.Errorf("no %s diagnostic; got %v", tt.wantCode, ctx.Errors)
			}
		})
	}
}

func TestDuplicateClassIsRedefinition(t *testing.T) {
	input := `
class T { private #x  m() { return this.#x } }
class T { private #x  m() { return this.#x } }`

	a, ctx := analyzeNoErrors(t, input)
	program := ctx.AstRoot.(*ast.Program)

	first := program.Statements[0].(*ast.ClassDeclaration)
	second := program.Statements[1].(*ast.ClassDeclaration)

	firstType := ctx.TypeMap[first]
	secondType := ctx.TypeMap[second]
	if firstType == secondType {
		t.Fatalf("redefinition did not produce a new type")
	}

	fKey, _ := firstType.Own("x")
	sKey, _ := secondType.Own("x")
	if fKey == sKey {
		t.Errorf("redefinition reused slot keys")
	}

	// The table holds the latest definition.
	if current, _ := a.Class("T"); current != secondType {
		t.Errorf("class table does not hold the latest definition")
	}
}

func TestNestedClassIsolation(t *testing.T) {
	// Outer declares #x; Inner does not. The reference inside Inner
	// must NOT resolve against Outer's declarations.
	input := `
class Outer {
  private #x
  make() {
    class Inner {
      m() { return this.#x }
    }
    return 0
  }
}`

	_, ctx := analyze(t, input)
	found := false
	for _, err := range ctx.Errors {
		if err.Code == "D002" {
			found = true
		}
	}
	if !found {
		t.Fatalf("nested class resolved an outer private name; diagnostics: %v", ctx.Errors)
	}
}

func TestNestedClassWithOwnParentEnv(t *testing.T) {
	// The inner class inherits from a class defined outside; its
	// references resolve against that parent's environment, not the
	// lexically enclosing class.
	input := `
class Carrier { protected #p }
class Outer {
  private #x
  make() {
    class Inner extends Carrier {
      m() { return this.#p }
    }
    return 0
  }
}`

	a, ctx := analyzeNoErrors(t, input)
	refs := collectRefs(ctx.AstRoot.(*ast.Program))
	if len(refs) != 1 {
		t.Fatalf("found %d refs, want 1", len(refs))
	}

	carrier, _ := a.Class("Carrier")
	pKey, _ := carrier.Own("p")
	if ctx.Resolutions[refs[0]] != pKey {
		t.Errorf("Inner.m #p bound to %s, want Carrier's key", ctx.Resolutions[refs[0]])
	}
}

func TestEmptyDeclarationListsAreTotal(t *testing.T) {
	a, _ := analyzeNoErrors(t, `class A { } class B extends A { }`)

	bType, ok := a.Class("B")
	if !ok {
		t.Fatalf("class B not defined")
	}
	if bType.Layout().Len() != 0 {
		t.Errorf("empty hierarchy has %d slots, want 0", bType.Layout().Len())
	}
	if bType.Protected().Len() != 0 {
		t.Errorf("empty hierarchy exposes %d protected names, want 0", bType.Protected().Len())
	}
	if _, err := slots.GetPrivate(slots.Allocate(bType.Layout()), slots.NewRegistry().Mint("X", "y", slots.Private)); err == nil {
		t.Errorf("foreign key against empty layout should fail")
	}
}
