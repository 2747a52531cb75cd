package diagnostics

import (
	"fmt"

	"github.com/funvibe/funseal/internal/token"
)

// Error codes. The letter identifies the reporting stage:
// L = lexer, P = parser, D = definition analysis, R = runtime.
const (
	ErrL001 = "L001" // illegal character
	ErrL002 = "L002" // unterminated string
	ErrL003 = "L003" // malformed private identifier

	ErrP001 = "P001" // unexpected token
	ErrP002 = "P002" // no prefix parse rule
	ErrP003 = "P003" // malformed class body
	ErrP004 = "P004" // invalid assignment target

	ErrD001 = "D001" // duplicate slot declaration
	ErrD002 = "D002" // unresolved private reference
	ErrD003 = "D003" // unknown parent class
	ErrD004 = "D004" // private reference outside class body

	ErrR001 = "R001" // slot access error
)

// DiagnosticError is an error tied to a source position.
type DiagnosticError struct {
	Code    string
	Message string
	File    string
	Line    int
	Column  int
}

func (e *DiagnosticError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("[%s] %s:%d:%d: %s", e.Code, e.File, e.Line, e.Column, e.Message)
	}
	if e.Line > 0 {
		return fmt.Sprintf("[%s] %d:%d: %s", e.Code, e.Line, e.Column, e.Message)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// NewError builds a DiagnosticError at the position of tok.
func NewError(code string, tok token.Token, format string, args ...interface{}) *DiagnosticError {
	return &DiagnosticError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Line:    tok.Line,
		Column:  tok.Column,
	}
}
