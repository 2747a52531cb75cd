package lexer

import (
	"github.com/funvibe/funseal/internal/diagnostics"
	"github.com/funvibe/funseal/internal/pipeline"
	"github.com/funvibe/funseal/internal/token"
)

type LexerProcessor struct{}

// Process scans the whole source into ctx.TokenStream. Illegal tokens
// become diagnostics but stay in the stream so the parser can keep
// going and report its own errors against real positions.
func (lp *LexerProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	l := New(ctx.Source)

	for {
		tok := l.NextToken()
		if tok.Type == token.ILLEGAL {
			code := diagnostics.ErrL001
			msg := "illegal character %q"
			switch {
			case tok.Lexeme == "#":
				code = diagnostics.ErrL003
				msg = "malformed private identifier %q: '#' must be followed by a name"
			case len(tok.Lexeme) > 0 && tok.Lexeme[0] == '"':
				code = diagnostics.ErrL002
				msg = "unterminated string %q"
			}
			ctx.Errors = append(ctx.Errors, diagnostics.NewError(code, tok, msg, tok.Lexeme))
		}
		ctx.TokenStream = append(ctx.TokenStream, tok)
		if tok.Type == token.EOF {
			break
		}
	}

	return ctx
}
