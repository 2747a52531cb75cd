package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/peterh/liner"

	"github.com/funvibe/funseal/internal/config"
	"github.com/funvibe/funseal/internal/evaluator"
)

const (
	prompt     = ">> "
	contPrompt = ".. "
)

// runREPL reads lines with liner and feeds each complete unit through
// the session pipeline. A line with more opening than closing braces
// starts a continuation, so class bodies can span lines.
func runREPL(session *Session) int {
	fmt.Printf("funseal %s\n", config.Version)

	cli := liner.NewLiner()
	defer cli.Close()
	cli.SetCtrlCAborts(true)

	loadHistory(cli, session.Config.HistoryFile)
	defer saveHistory(cli, session.Config.HistoryFile)

	var pending []string
	depth := 0

	for {
		p := prompt
		if depth > 0 {
			p = contPrompt
		}

		line, err := cli.Prompt(p)
		switch err {
		case nil:
		case liner.ErrPromptAborted:
			// Ctrl-C drops the pending input, not the session.
			pending = nil
			depth = 0
			continue
		default:
			fmt.Println()
			return 0
		}

		if depth == 0 && strings.TrimSpace(line) == "" {
			continue
		}

		pending = append(pending, line)
		depth += braceDelta(line)
		if depth > 0 {
			continue
		}

		source := strings.Join(pending, "\n")
		pending = nil
		depth = 0
		cli.AppendHistory(source)

		ctx := session.Run(source, "<repl>")
		if ctx.HasErrors() {
			continue
		}
		if result, ok := ctx.Result.(evaluator.Object); ok && result != evaluator.NIL {
			fmt.Println(result.Inspect())
		}
	}
}

// braceDelta counts unbalanced braces outside string literals and
// comments. Good enough for the REPL's continuation heuristic; the
// parser has the final say.
func braceDelta(line string) int {
	delta := 0
	inString := false
	for i := 0; i < len(line); i++ {
		ch := line[i]
		switch {
		case inString:
			if ch == '\\' {
				i++
			} else if ch == '"' {
				inString = false
			}
		case ch == '"':
			inString = true
		case ch == '/' && i+1 < len(line) && line[i+1] == '/':
			return delta
		case ch == '{':
			delta++
		case ch == '}':
			delta--
		}
	}
	return delta
}

func loadHistory(cli *liner.State, path string) {
	if path == "" {
		return
	}
	if f, err := os.Open(path); err == nil {
		cli.ReadHistory(f)
		f.Close()
	}
}

func saveHistory(cli *liner.State, path string) {
	if path == "" {
		return
	}
	f, err := os.Create(path)
	if err != nil {
		return
	}
	defer f.Close()
	cli.WriteHistory(f)
}
