package token

type TokenType string

// Token is a single lexical token with its source position.
// Literal holds the decoded value (string for identifiers and strings,
// int64 for integers); Lexeme is the raw source text.
type Token struct {
	Type    TokenType
	Lexeme  string
	Literal interface{}
	Line    int
	Column  int
}

const (
	ILLEGAL = "ILLEGAL"
	EOF     = "EOF"

	// Identifiers and literals
	IDENT         = "IDENT"         // foo, Base
	PRIVATE_IDENT = "PRIVATE_IDENT" // #name
	INT           = "INT"           // 123
	STRING        = "STRING"        // "abc"

	// Operators
	ASSIGN   = "="
	PLUS     = "+"
	MINUS    = "-"
	BANG     = "!"
	ASTERISK = "*"
	SLASH    = "/"
	EQ       = "=="
	NOT_EQ   = "!="
	LT       = "<"
	GT       = ">"
	LT_EQ    = "<="
	GT_EQ    = ">="

	// Delimiters
	COMMA     = ","
	SEMICOLON = ";"
	DOT       = "."
	LPAREN    = "("
	RPAREN    = ")"
	LBRACE    = "{"
	RBRACE    = "}"

	// Keywords
	CLASS     = "CLASS"
	EXTENDS   = "EXTENDS"
	PRIVATE   = "PRIVATE"
	PROTECTED = "PROTECTED"
	LET       = "LET"
	RETURN    = "RETURN"
	NEW       = "NEW"
	THIS      = "THIS"
	TRUE      = "TRUE"
	FALSE     = "FALSE"
	NIL       = "NIL"
	IF        = "IF"
	ELSE      = "ELSE"
)

var keywords = map[string]TokenType{
	"class":     CLASS,
	"extends":   EXTENDS,
	"private":   PRIVATE,
	"protected": PROTECTED,
	"let":       LET,
	"return":    RETURN,
	"new":       NEW,
	"this":      THIS,
	"true":      TRUE,
	"false":     FALSE,
	"nil":       NIL,
	"if":        IF,
	"else":      ELSE,
}

// LookupIdent maps an identifier lexeme to its keyword token type,
// or IDENT if it is not a keyword.
func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return IDENT
}
