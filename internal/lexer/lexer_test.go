package lexer

import (
	"testing"

	"github.com/funvibe/funseal/internal/token"
)

func TestNextToken(t *testing.T) {
	input := `class Derived extends Base {
  private #s
  protected #t

  init() { this.#s = 5 }
}

let d = new Derived()
print(d == nil, !true, 1 + 2 <= 3)
// trailing comment
"hi\n"`

	tests := []struct {
		wantType    token.TokenType
		wantLexeme  string
		wantLiteral interface{}
	}{
		{token.CLASS, "class", "class"},
		{token.IDENT, "Derived", "Derived"},
		{token.EXTENDS, "extends", "extends"},
		{token.IDENT, "Base", "Base"},
		{token.LBRACE, "{", "{"},
		{token.PRIVATE, "private", "private"},
		{token.PRIVATE_IDENT, "#s", "s"},
		{token.PROTECTED, "protected", "protected"},
		{token.PRIVATE_IDENT, "#t", "t"},
		{token.IDENT, "init", "init"},
		{token.LPAREN, "(", "("},
		{token.RPAREN, ")", ")"},
		{token.LBRACE, "{", "{"},
		{token.THIS, "this", "this"},
		{token.DOT, ".", "."},
		{token.PRIVATE_IDENT, "#s", "s"},
		{token.ASSIGN, "=", "="},
		{token.INT, "5", int64(5)},
		{token.RBRACE, "}", "}"},
		{token.RBRACE, "}", "}"},
		{token.LET, "let", "let"},
		{token.IDENT, "d", "d"},
		{token.ASSIGN, "=", "="},
		{token.NEW, "new", "new"},
		{token.IDENT, "Derived", "Derived"},
		{token.LPAREN, "(", "("},
		{token.RPAREN, ")", ")"},
		{token.IDENT, "print", "print"},
		{token.LPAREN, "(", "("},
		{token.IDENT, "d", "d"},
		{token.EQ, "==", "=="},
		{token.NIL, "nil", "nil"},
		{token.COMMA, ",", ","},
		{token.BANG, "!", "!"},
		{token.TRUE, "true", "true"},
		{token.COMMA, ",", ","},
		{token.INT, "1", int64(1)},
		{token.PLUS, "+", "+"},
		{token.INT, "2", int64(2)},
		{token.LT_EQ, "<=", "<="},
		{token.INT, "3", int64(3)},
		{token.RPAREN, ")", ")"},
		{token.STRING, "\"hi\n\"", "hi\n"},
		{token.EOF, "", ""},
	}

	l := New(input)
	for i, tt := range tests {
		tok := l.NextToken()
		if tok.Type != tt.wantType {
			t.Fatalf("token %d: type = %s (%q), want %s", i, tok.Type, tok.Lexeme, tt.wantType)
		}
		if tok.Lexeme != tt.wantLexeme {
			t.Errorf("token %d: lexeme = %q, want %q", i, tok.Lexeme, tt.wantLexeme)
		}
		if tok.Literal != tt.wantLiteral {
			t.Errorf("token %d: literal = %v, want %v", i, tok.Literal, tt.wantLiteral)
		}
	}
}

func TestPositions(t *testing.T) {
	l := New("let x\n  #ab")

	letTok := l.NextToken()
	if letTok.Line != 1 || letTok.Column != 1 {
		t.Errorf("let at %d:%d, want 1:1", letTok.Line, letTok.Column)
	}
	xTok := l.NextToken()
	if xTok.Line != 1 || xTok.Column != 5 {
		t.Errorf("x at %d:%d, want 1:5", xTok.Line, xTok.Column)
	}
	refTok := l.NextToken()
	if refTok.Line != 2 || refTok.Column != 3 {
		t.Errorf("#ab at %d:%d, want 2:3", refTok.Line, refTok.Column)
	}
}

func TestIllegalTokens(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"# x", "#"},
		{"@", "@"},
		{`"open`, `"open`},
	}

	for _, tt := range tests {
		l := New(tt.input)
		tok := l.NextToken()
		if tok.Type != token.ILLEGAL {
			t.Errorf("input %q: type = %s, want ILLEGAL", tt.input, tok.Type)
			continue
		}
		if tok.Lexeme != tt.want {
			t.Errorf("input %q: lexeme = %q, want %q", tt.input, tok.Lexeme, tt.want)
		}
	}
}
