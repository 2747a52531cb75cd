// Package cli implements the funseal command: script execution,
// one-shot evaluation with -e, and an interactive REPL when stdin is a
// terminal.
package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/docopt/docopt-go"
	"github.com/mattn/go-isatty"

	"github.com/funvibe/funseal/internal/analyzer"
	"github.com/funvibe/funseal/internal/backend"
	"github.com/funvibe/funseal/internal/config"
	"github.com/funvibe/funseal/internal/diagnostics"
	"github.com/funvibe/funseal/internal/evaluator"
	"github.com/funvibe/funseal/internal/lexer"
	"github.com/funvibe/funseal/internal/parser"
	"github.com/funvibe/funseal/internal/pipeline"
	"github.com/funvibe/funseal/internal/prettyprinter"
)

const usage = `funseal

Usage:
  funseal fmt SCRIPT
  funseal SCRIPT
  funseal -e EXPR
  funseal
  funseal -h | --help
  funseal -v | --version

Arguments:
  SCRIPT  Path to a funseal source file (.seal or .funseal).

Options:
  -e, --eval=EXPR  Evaluate the given source text and exit.
  -h, --help       Display this help.
  -v, --version    Print funseal version.

fmt parses the script and prints its canonical form on stdout.

With no operands and a TTY on stdin, funseal starts an interactive
session. Classes and bindings persist across REPL lines.
`

// Session holds the state shared by every run of the pipeline: one
// analyzer (so later lines resolve classes from earlier ones) and one
// backend (so the global environment persists).
type Session struct {
	Analyzer *analyzer.Analyzer
	Backend  *backend.TreeWalk
	Config   *config.Config
}

func NewSession(cfg *config.Config) *Session {
	if cfg == nil {
		cfg = config.Default()
	}
	return &Session{
		Analyzer: analyzer.New(),
		Backend:  backend.NewTreeWalk(),
		Config:   cfg,
	}
}

// Run executes one source unit through the full pipeline and reports
// its diagnostics on stderr. It returns the final context; callers
// check HasErrors for the exit code.
func (s *Session) Run(source, filePath string) *pipeline.PipelineContext {
	ctx := pipeline.NewPipelineContext(source)
	ctx.FilePath = filePath

	p := pipeline.New(
		&lexer.LexerProcessor{},
		&parser.ParserProcessor{},
		&analyzer.SemanticAnalyzerProcessor{Analyzer: s.Analyzer},
		backend.NewExecutionProcessor(s.Backend),
	)

	if s.Config.Trace {
		fmt.Fprintf(os.Stderr, "trace: running %q (%d bytes)\n", filePath, len(source))
	}

	finalCtx := p.Run(ctx)
	for _, err := range finalCtx.Errors {
		printDiagnostic(err)
	}
	return finalCtx
}

func isSourceFile(path string) bool {
	for _, ext := range config.SourceFileExtensions {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}

// colorEnabled decides ANSI coloring for stderr per the configured
// color mode.
func colorEnabled(cfg *config.Config) bool {
	switch cfg.Color {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	default:
		return isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())
	}
}

var useColor bool

func printDiagnostic(err *diagnostics.DiagnosticError) {
	if useColor {
		fmt.Fprintf(os.Stderr, "\033[31m%s\033[0m\n", err.Error())
		return
	}
	fmt.Fprintf(os.Stderr, "%s\n", err.Error())
}

func runScript(session *Session, path string) int {
	if !isSourceFile(path) {
		fmt.Fprintf(os.Stderr, "funseal: %s is not a funseal source file (want %s)\n",
			path, strings.Join(config.SourceFileExtensions, " or "))
		return 1
	}
	source, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "funseal: %v\n", err)
		return 1
	}

	ctx := session.Run(string(source), path)
	if ctx.HasErrors() {
		return 1
	}
	return 0
}

// runFmt parses a script and writes its canonical form to stdout. The
// pipeline stops after the parser; execution state is never touched.
func runFmt(path string) int {
	source, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "funseal: %v\n", err)
		return 1
	}

	ctx := pipeline.NewPipelineContext(string(source))
	ctx.FilePath = path
	p := pipeline.New(&lexer.LexerProcessor{}, &parser.ParserProcessor{})
	finalCtx := p.Run(ctx)
	if finalCtx.HasErrors() {
		for _, err := range finalCtx.Errors {
			printDiagnostic(err)
		}
		return 1
	}

	fmt.Println(prettyprinter.Print(finalCtx.AstRoot))
	return 0
}

func runEval(session *Session, expr string) int {
	ctx := session.Run(expr, "<eval>")
	if ctx.HasErrors() {
		return 1
	}
	if result, ok := ctx.Result.(evaluator.Object); ok && result != evaluator.NIL {
		fmt.Println(result.Inspect())
	}
	return 0
}

// Run is the funseal entry point. It returns the process exit code.
func Run() int {
	defer func() {
		if r := recover(); r != nil {
			if os.Getenv("DEBUG") == "1" {
				panic(r) // re-panic to get a stack trace
			}
			fmt.Fprintf(os.Stderr, "Internal error: %v\n", r)
			fmt.Fprintln(os.Stderr, "This is a bug. Please report it.")
			os.Exit(1)
		}
	}()

	opts, err := docopt.ParseArgs(usage, os.Args[1:], "funseal "+config.Version)
	if err != nil {
		// docopt already printed usage.
		return 1
	}

	cwd, _ := os.Getwd()
	cfg, err := config.Load(cwd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "funseal: %v\n", err)
		return 1
	}
	useColor = colorEnabled(cfg)

	session := NewSession(cfg)

	if expr, _ := opts.String("--eval"); expr != "" {
		return runEval(session, expr)
	}
	if script, _ := opts.String("SCRIPT"); script != "" {
		if isFmt, _ := opts.Bool("fmt"); isFmt {
			return runFmt(script)
		}
		return runScript(session, script)
	}

	if isatty.IsTerminal(os.Stdin.Fd()) {
		return runREPL(session)
	}

	// Piped stdin: treat it as a script.
	source, err := io.ReadAll(os.Stdin)
	if err != nil {
		fmt.Fprintf(os.Stderr, "funseal: %v\n", err)
		return 1
	}
	ctx := session.Run(string(source), "<stdin>")
	if ctx.HasErrors() {
		return 1
	}
	return 0
}
