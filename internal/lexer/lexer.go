package lexer

import (
	"strconv"
	"unicode"
	"unicode/utf8"

	"github.com/funvibe/funseal/internal/token"
)

type Lexer struct {
	input        string
	position     int  // current position in input (points to current char)
	readPosition int  // current reading position in input (after current char)
	ch           rune // current char under examination
	line         int  // current line number
	column       int  // current column number
}

func New(input string) *Lexer {
	l := &Lexer{input: input, line: 1, column: 0}
	l.readChar()
	return l
}

func (l *Lexer) readChar() {
	if l.ch == '\n' {
		l.line++
		l.column = 0
	}

	if l.readPosition >= len(l.input) {
		l.ch = 0
		l.position = l.readPosition
		l.readPosition++
		l.column++
		return
	}

	r, w := utf8.DecodeRuneInString(l.input[l.readPosition:])
	l.ch = r
	l.position = l.readPosition
	l.readPosition += w
	l.column++
}

func (l *Lexer) peekChar() rune {
	if l.readPosition >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.readPosition:])
	return r
}

func (l *Lexer) NextToken() token.Token {
	l.skipWhitespace()

	for l.ch == '/' && l.peekChar() == '/' {
		l.skipLineComment()
		l.skipWhitespace()
	}

	line, column := l.line, l.column

	var tok token.Token
	switch l.ch {
	case '=':
		if l.peekChar() == '=' {
			l.readChar()
			tok = token.Token{Type: token.EQ, Lexeme: "==", Literal: "==", Line: line, Column: column}
		} else {
			tok = newToken(token.ASSIGN, l.ch, line, column)
		}
	case '+':
		tok = newToken(token.PLUS, l.ch, line, column)
	case '-':
		tok = newToken(token.MINUS, l.ch, line, column)
	case '*':
		tok = newToken(token.ASTERISK, l.ch, line, column)
	case '/':
		tok = newToken(token.SLASH, l.ch, line, column)
	case '!':
		if l.peekChar() == '=' {
			l.readChar()
			tok = token.Token{Type: token.NOT_EQ, Lexeme: "!=", Literal: "!=", Line: line, Column: column}
		} else {
			tok = newToken(token.BANG, l.ch, line, column)
		}
	case '<':
		if l.peekChar() == '=' {
			l.readChar()
			tok = token.Token{Type: token.LT_EQ, Lexeme: "<=", Literal: "<=", Line: line, Column: column}
		} else {
			tok = newToken(token.LT, l.ch, line, column)
		}
	case '>':
		if l.peekChar() == '=' {
			l.readChar()
			tok = token.Token{Type: token.GT_EQ, Lexeme: ">=", Literal: ">=", Line: line, Column: column}
		} else {
			tok = newToken(token.GT, l.ch, line, column)
		}
	case ',':
		tok = newToken(token.COMMA, l.ch, line, column)
	case ';':
		tok = newToken(token.SEMICOLON, l.ch, line, column)
	case '.':
		tok = newToken(token.DOT, l.ch, line, column)
	case '(':
		tok = newToken(token.LPAREN, l.ch, line, column)
	case ')':
		tok = newToken(token.RPAREN, l.ch, line, column)
	case '{':
		tok = newToken(token.LBRACE, l.ch, line, column)
	case '}':
		tok = newToken(token.RBRACE, l.ch, line, column)
	case '"':
		return l.readString(line, column)
	case '#':
		return l.readPrivateIdent(line, column)
	case 0:
		tok = token.Token{Type: token.EOF, Lexeme: "", Literal: "", Line: line, Column: column}
	default:
		if isLetter(l.ch) {
			return l.readIdentifier(line, column)
		}
		if unicode.IsDigit(l.ch) {
			return l.readNumber(line, column)
		}
		tok = newToken(token.ILLEGAL, l.ch, line, column)
	}

	l.readChar()
	return tok
}

func (l *Lexer) readIdentifier(line, column int) token.Token {
	start := l.position
	for isLetter(l.ch) || unicode.IsDigit(l.ch) {
		l.readChar()
	}
	lexeme := l.input[start:l.position]
	return token.Token{
		Type:    token.LookupIdent(lexeme),
		Lexeme:  lexeme,
		Literal: lexeme,
		Line:    line,
		Column:  column,
	}
}

// readPrivateIdent scans a '#name' reference or declaration as one
// token. A bare '#' not followed by a letter is malformed.
func (l *Lexer) readPrivateIdent(line, column int) token.Token {
	l.readChar() // consume '#'
	if !isLetter(l.ch) {
		return token.Token{Type: token.ILLEGAL, Lexeme: "#", Literal: "#", Line: line, Column: column}
	}
	start := l.position
	for isLetter(l.ch) || unicode.IsDigit(l.ch) {
		l.readChar()
	}
	name := l.input[start:l.position]
	return token.Token{
		Type:    token.PRIVATE_IDENT,
		Lexeme:  "#" + name,
		Literal: name,
		Line:    line,
		Column:  column,
	}
}

func (l *Lexer) readNumber(line, column int) token.Token {
	start := l.position
	for unicode.IsDigit(l.ch) {
		l.readChar()
	}
	lexeme := l.input[start:l.position]
	value, err := strconv.ParseInt(lexeme, 10, 64)
	if err != nil {
		return token.Token{Type: token.ILLEGAL, Lexeme: lexeme, Literal: lexeme, Line: line, Column: column}
	}
	return token.Token{Type: token.INT, Lexeme: lexeme, Literal: value, Line: line, Column: column}
}

func (l *Lexer) readString(line, column int) token.Token {
	l.readChar() // consume opening quote
	var out []rune
	for l.ch != '"' {
		if l.ch == 0 || l.ch == '\n' {
			return token.Token{Type: token.ILLEGAL, Lexeme: "\"" + string(out), Literal: string(out), Line: line, Column: column}
		}
		if l.ch == '\\' {
			l.readChar()
			switch l.ch {
			case 'n':
				out = append(out, '\n')
			case 't':
				out = append(out, '\t')
			case '"':
				out = append(out, '"')
			case '\\':
				out = append(out, '\\')
			default:
				out = append(out, '\\', l.ch)
			}
		} else {
			out = append(out, l.ch)
		}
		l.readChar()
	}
	l.readChar() // consume closing quote
	value := string(out)
	return token.Token{Type: token.STRING, Lexeme: "\"" + value + "\"", Literal: value, Line: line, Column: column}
}

func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r' {
		l.readChar()
	}
}

func (l *Lexer) skipLineComment() {
	for l.ch != '\n' && l.ch != 0 {
		l.readChar()
	}
}

func newToken(tokenType token.TokenType, ch rune, line, column int) token.Token {
	return token.Token{Type: tokenType, Lexeme: string(ch), Literal: string(ch), Line: line, Column: column}
}

func isLetter(ch rune) bool {
	return ch == '_' || unicode.IsLetter(ch)
}
