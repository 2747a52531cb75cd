package ast

import (
	"github.com/funvibe/funseal/internal/token"
)

// Node is the base interface for all AST nodes.
type Node interface {
	TokenLiteral() string
	Accept(v Visitor)
}

// Statement is a Node that represents a statement.
type Statement interface {
	Node
	statementNode()
	GetToken() token.Token
}

// Expression is a Node that represents an expression.
type Expression interface {
	Node
	expressionNode()
	GetToken() token.Token
}

// Visitor dispatches over every concrete node type.
type Visitor interface {
	VisitProgram(n *Program)
	VisitLetStatement(n *LetStatement)
	VisitReturnStatement(n *ReturnStatement)
	VisitExpressionStatement(n *ExpressionStatement)
	VisitBlockStatement(n *BlockStatement)
	VisitClassDeclaration(n *ClassDeclaration)
	VisitIdentifier(n *Identifier)
	VisitIntegerLiteral(n *IntegerLiteral)
	VisitStringLiteral(n *StringLiteral)
	VisitBooleanLiteral(n *BooleanLiteral)
	VisitNilLiteral(n *NilLiteral)
	VisitThisExpression(n *ThisExpression)
	VisitPrivateRef(n *PrivateRef)
	VisitAssignExpression(n *AssignExpression)
	VisitPrefixExpression(n *PrefixExpression)
	VisitInfixExpression(n *InfixExpression)
	VisitIfExpression(n *IfExpression)
	VisitCallExpression(n *CallExpression)
	VisitMethodCallExpression(n *MethodCallExpression)
	VisitNewExpression(n *NewExpression)
}

// Program is the root node of every AST the parser produces.
type Program struct {
	File       string
	Statements []Statement
}

func (p *Program) Accept(v Visitor) { v.VisitProgram(p) }
func (p *Program) TokenLiteral() string {
	if len(p.Statements) > 0 {
		return p.Statements[0].TokenLiteral()
	}
	return ""
}

// LetStatement binds an expression to a name.
// let x = expr
type LetStatement struct {
	Token token.Token // the 'let' token
	Name  *Identifier
	Value Expression
}

func (ls *LetStatement) Accept(v Visitor)      { v.VisitLetStatement(ls) }
func (ls *LetStatement) statementNode()        {}
func (ls *LetStatement) TokenLiteral() string  { return ls.Token.Lexeme }
func (ls *LetStatement) GetToken() token.Token { return ls.Token }

// ReturnStatement returns a value from a method body.
type ReturnStatement struct {
	Token token.Token // the 'return' token
	Value Expression  // nil for a bare return
}

func (rs *ReturnStatement) Accept(v Visitor)      { v.VisitReturnStatement(rs) }
func (rs *ReturnStatement) statementNode()        {}
func (rs *ReturnStatement) TokenLiteral() string  { return rs.Token.Lexeme }
func (rs *ReturnStatement) GetToken() token.Token { return rs.Token }

// ExpressionStatement wraps an expression used as a statement.
type ExpressionStatement struct {
	Token      token.Token // first token of the expression
	Expression Expression
}

func (es *ExpressionStatement) Accept(v Visitor)      { v.VisitExpressionStatement(es) }
func (es *ExpressionStatement) statementNode()        {}
func (es *ExpressionStatement) TokenLiteral() string  { return es.Token.Lexeme }
func (es *ExpressionStatement) GetToken() token.Token { return es.Token }

// BlockStatement is a braced statement sequence.
type BlockStatement struct {
	Token      token.Token // the '{' token
	Statements []Statement
}

func (bs *BlockStatement) Accept(v Visitor)      { v.VisitBlockStatement(bs) }
func (bs *BlockStatement) statementNode()        {}
func (bs *BlockStatement) TokenLiteral() string  { return bs.Token.Lexeme }
func (bs *BlockStatement) GetToken() token.Token { return bs.Token }

// SlotDeclaration is one `private #name` or `protected #name` line in
// a class body, with an optional initializer expression:
// `protected #s = 0`. Protected is false for private declarations.
type SlotDeclaration struct {
	Token     token.Token // the 'private' or 'protected' token
	Name      string      // without the leading '#'
	Protected bool
	Init      Expression // nil when the slot starts empty
}

func (sd *SlotDeclaration) GetToken() token.Token { return sd.Token }

// MethodDeclaration is one method of a class body. The constructor is
// the method named "init".
type MethodDeclaration struct {
	Token      token.Token // the method-name token
	Name       *Identifier
	Parameters []*Identifier
	Body       *BlockStatement
}

func (md *MethodDeclaration) GetToken() token.Token { return md.Token }

// ClassDeclaration declares a class with optional parent, ordered slot
// declarations, and methods. Class declarations may be nested inside
// method bodies; their private names never leak across the nesting
// boundary.
type ClassDeclaration struct {
	Token   token.Token // the 'class' token
	Name    *Identifier
	Parent  *Identifier // nil for a root class
	Slots   []*SlotDeclaration
	Methods []*MethodDeclaration
}

func (cd *ClassDeclaration) Accept(v Visitor)      { v.VisitClassDeclaration(cd) }
func (cd *ClassDeclaration) statementNode()        {}
func (cd *ClassDeclaration) TokenLiteral() string  { return cd.Token.Lexeme }
func (cd *ClassDeclaration) GetToken() token.Token { return cd.Token }
