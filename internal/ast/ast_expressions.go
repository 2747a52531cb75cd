package ast

import (
	"github.com/funvibe/funseal/internal/token"
)

// Identifier refers to a let binding, parameter, or class name.
type Identifier struct {
	Token token.Token
	Value string
}

func (i *Identifier) Accept(v Visitor)      { v.VisitIdentifier(i) }
func (i *Identifier) expressionNode()       {}
func (i *Identifier) TokenLiteral() string  { return i.Token.Lexeme }
func (i *Identifier) GetToken() token.Token { return i.Token }

type IntegerLiteral struct {
	Token token.Token
	Value int64
}

func (il *IntegerLiteral) Accept(v Visitor)      { v.VisitIntegerLiteral(il) }
func (il *IntegerLiteral) expressionNode()       {}
func (il *IntegerLiteral) TokenLiteral() string  { return il.Token.Lexeme }
func (il *IntegerLiteral) GetToken() token.Token { return il.Token }

type StringLiteral struct {
	Token token.Token
	Value string
}

func (sl *StringLiteral) Accept(v Visitor)      { v.VisitStringLiteral(sl) }
func (sl *StringLiteral) expressionNode()       {}
func (sl *StringLiteral) TokenLiteral() string  { return sl.Token.Lexeme }
func (sl *StringLiteral) GetToken() token.Token { return sl.Token }

type BooleanLiteral struct {
	Token token.Token
	Value bool
}

func (bl *BooleanLiteral) Accept(v Visitor)      { v.VisitBooleanLiteral(bl) }
func (bl *BooleanLiteral) expressionNode()       {}
func (bl *BooleanLiteral) TokenLiteral() string  { return bl.Token.Lexeme }
func (bl *BooleanLiteral) GetToken() token.Token { return bl.Token }

type NilLiteral struct {
	Token token.Token
}

func (nl *NilLiteral) Accept(v Visitor)      { v.VisitNilLiteral(nl) }
func (nl *NilLiteral) expressionNode()       {}
func (nl *NilLiteral) TokenLiteral() string  { return nl.Token.Lexeme }
func (nl *NilLiteral) GetToken() token.Token { return nl.Token }

// ThisExpression is the receiver inside a method body.
type ThisExpression struct {
	Token token.Token
}

func (te *ThisExpression) Accept(v Visitor)      { v.VisitThisExpression(te) }
func (te *ThisExpression) expressionNode()       {}
func (te *ThisExpression) TokenLiteral() string  { return te.Token.Lexeme }
func (te *ThisExpression) GetToken() token.Token { return te.Token }

// PrivateRef is a private-name reference: receiver.#name. The analyzer
// binds each PrivateRef node to exactly one slot key; the evaluator
// never sees the name again.
type PrivateRef struct {
	Token    token.Token // the '#name' token
	Receiver Expression
	Name     string // without the leading '#'
}

func (pr *PrivateRef) Accept(v Visitor)      { v.VisitPrivateRef(pr) }
func (pr *PrivateRef) expressionNode()       {}
func (pr *PrivateRef) TokenLiteral() string  { return pr.Token.Lexeme }
func (pr *PrivateRef) GetToken() token.Token { return pr.Token }

// AssignExpression assigns to an identifier or a private reference.
type AssignExpression struct {
	Token  token.Token // the '=' token
	Target Expression  // *Identifier or *PrivateRef
	Value  Expression
}

func (ae *AssignExpression) Accept(v Visitor)      { v.VisitAssignExpression(ae) }
func (ae *AssignExpression) expressionNode()       {}
func (ae *AssignExpression) TokenLiteral() string  { return ae.Token.Lexeme }
func (ae *AssignExpression) GetToken() token.Token { return ae.Token }

type PrefixExpression struct {
	Token    token.Token
	Operator string
	Right    Expression
}

func (pe *PrefixExpression) Accept(v Visitor)      { v.VisitPrefixExpression(pe) }
func (pe *PrefixExpression) expressionNode()       {}
func (pe *PrefixExpression) TokenLiteral() string  { return pe.Token.Lexeme }
func (pe *PrefixExpression) GetToken() token.Token { return pe.Token }

type InfixExpression struct {
	Token    token.Token
	Left     Expression
	Operator string
	Right    Expression
}

func (ie *InfixExpression) Accept(v Visitor)      { v.VisitInfixExpression(ie) }
func (ie *InfixExpression) expressionNode()       {}
func (ie *InfixExpression) TokenLiteral() string  { return ie.Token.Lexeme }
func (ie *InfixExpression) GetToken() token.Token { return ie.Token }

// IfExpression evaluates to the value of the taken branch.
type IfExpression struct {
	Token       token.Token // the 'if' token
	Condition   Expression
	Consequence *BlockStatement
	Alternative *BlockStatement // nil when there is no else
}

func (ie *IfExpression) Accept(v Visitor)      { v.VisitIfExpression(ie) }
func (ie *IfExpression) expressionNode()       {}
func (ie *IfExpression) TokenLiteral() string  { return ie.Token.Lexeme }
func (ie *IfExpression) GetToken() token.Token { return ie.Token }

// CallExpression calls a builtin or bound function value.
type CallExpression struct {
	Token     token.Token // the '(' token
	Function  Expression
	Arguments []Expression
}

func (ce *CallExpression) Accept(v Visitor)      { v.VisitCallExpression(ce) }
func (ce *CallExpression) expressionNode()       {}
func (ce *CallExpression) TokenLiteral() string  { return ce.Token.Lexeme }
func (ce *CallExpression) GetToken() token.Token { return ce.Token }

// MethodCallExpression calls a method on a receiver: recv.name(args).
type MethodCallExpression struct {
	Token     token.Token // the method-name token
	Receiver  Expression
	Method    *Identifier
	Arguments []Expression
}

func (mc *MethodCallExpression) Accept(v Visitor)      { v.VisitMethodCallExpression(mc) }
func (mc *MethodCallExpression) expressionNode()       {}
func (mc *MethodCallExpression) TokenLiteral() string  { return mc.Token.Lexeme }
func (mc *MethodCallExpression) GetToken() token.Token { return mc.Token }

// NewExpression constructs an instance: new Name(args).
type NewExpression struct {
	Token     token.Token // the 'new' token
	ClassName *Identifier
	Arguments []Expression
}

func (ne *NewExpression) Accept(v Visitor)      { v.VisitNewExpression(ne) }
func (ne *NewExpression) expressionNode()       {}
func (ne *NewExpression) TokenLiteral() string  { return ne.Token.Lexeme }
func (ne *NewExpression) GetToken() token.Token { return ne.Token }
