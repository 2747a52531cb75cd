// Package prettyprinter renders an AST back to source form. The fmt
// command and tests use it to show what the parser actually built.
package prettyprinter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/funvibe/funseal/internal/ast"
)

// Operator precedence (higher = binds tighter). Used to decide where
// parentheses are required to preserve the tree's grouping.
var operatorPrecedence = map[string]int{
	"=":  1,
	"==": 3,
	"!=": 3,
	"<":  4,
	">":  4,
	"<=": 4,
	">=": 4,
	"+":  5,
	"-":  5,
	"*":  6,
	"/":  6,
}

const indentUnit = "  "

// Print renders node as source text.
func Print(node ast.Node) string {
	p := &printer{}
	p.printNode(node, 0)
	return p.sb.String()
}

type printer struct {
	sb strings.Builder
}

func (p *printer) printNode(node ast.Node, indent int) {
	switch node := node.(type) {
	case *ast.Program:
		for i, stmt := range node.Statements {
			if i > 0 {
				p.sb.WriteString("\n")
			}
			p.printNode(stmt, indent)
		}
	case *ast.LetStatement:
		p.writeIndent(indent)
		p.sb.WriteString("let " + node.Name.Value + " = ")
		p.sb.WriteString(p.expr(node.Value, 0))
	case *ast.ReturnStatement:
		p.writeIndent(indent)
		p.sb.WriteString("return")
		if node.Value != nil {
			p.sb.WriteString(" " + p.expr(node.Value, 0))
		}
	case *ast.ExpressionStatement:
		p.writeIndent(indent)
		p.sb.WriteString(p.expr(node.Expression, 0))
	case *ast.BlockStatement:
		p.sb.WriteString("{\n")
		for _, stmt := range node.Statements {
			p.printNode(stmt, indent+1)
			p.sb.WriteString("\n")
		}
		p.writeIndent(indent)
		p.sb.WriteString("}")
	case *ast.ClassDeclaration:
		p.printClass(node, indent)
	default:
		if expr, ok := node.(ast.Expression); ok {
			p.sb.WriteString(p.expr(expr, 0))
		} else {
			fmt.Fprintf(&p.sb, "/* ? %T */", node)
		}
	}
}

func (p *printer) printClass(node *ast.ClassDeclaration, indent int) {
	p.writeIndent(indent)
	p.sb.WriteString("class " + node.Name.Value)
	if node.Parent != nil {
		p.sb.WriteString(" extends " + node.Parent.Value)
	}
	p.sb.WriteString(" {\n")
	for _, slot := range node.Slots {
		p.printSlot(slot, indent+1)
	}
	for _, method := range node.Methods {
		p.printMethod(method, indent+1)
	}
	p.writeIndent(indent)
	p.sb.WriteString("}")
}

func (p *printer) printSlot(slot *ast.SlotDeclaration, indent int) {
	p.writeIndent(indent)
	if slot.Protected {
		p.sb.WriteString("protected #" + slot.Name)
	} else {
		p.sb.WriteString("private #" + slot.Name)
	}
	if slot.Init != nil {
		p.sb.WriteString(" = " + p.expr(slot.Init, 0))
	}
	p.sb.WriteString("\n")
}

func (p *printer) printMethod(method *ast.MethodDeclaration, indent int) {
	p.writeIndent(indent)
	params := make([]string, len(method.Parameters))
	for i, param := range method.Parameters {
		params[i] = param.Value
	}
	p.sb.WriteString(method.Name.Value + "(" + strings.Join(params, ", ") + ") ")
	p.printNode(method.Body, indent)
	p.sb.WriteString("\n")
}

// expr renders an expression, parenthesizing it when its operator
// binds looser than the surrounding context.
func (p *printer) expr(node ast.Expression, outerPrec int) string {
	switch node := node.(type) {
	case *ast.Identifier:
		return node.Value
	case *ast.IntegerLiteral:
		return strconv.FormatInt(node.Value, 10)
	case *ast.StringLiteral:
		return strconv.Quote(node.Value)
	case *ast.BooleanLiteral:
		return strconv.FormatBool(node.Value)
	case *ast.NilLiteral:
		return "nil"
	case *ast.ThisExpression:
		return "this"
	case *ast.PrivateRef:
		return p.expr(node.Receiver, maxPrecedence) + ".#" + node.Name
	case *ast.AssignExpression:
		prec := operatorPrecedence["="]
		s := p.expr(node.Target, prec) + " = " + p.expr(node.Value, prec-1)
		return parenthesize(s, prec, outerPrec)
	case *ast.PrefixExpression:
		return node.Operator + p.expr(node.Right, maxPrecedence)
	case *ast.InfixExpression:
		prec := operatorPrecedence[node.Operator]
		s := p.expr(node.Left, prec-1) + " " + node.Operator + " " + p.expr(node.Right, prec)
		return parenthesize(s, prec, outerPrec)
	case *ast.IfExpression:
		s := "if (" + p.expr(node.Condition, 0) + ") " + blockString(node.Consequence)
		if node.Alternative != nil {
			s += " else " + blockString(node.Alternative)
		}
		return s
	case *ast.CallExpression:
		return p.expr(node.Function, maxPrecedence) + "(" + p.exprList(node.Arguments) + ")"
	case *ast.MethodCallExpression:
		return p.expr(node.Receiver, maxPrecedence) + "." + node.Method.Value +
			"(" + p.exprList(node.Arguments) + ")"
	case *ast.NewExpression:
		return "new " + node.ClassName.Value + "(" + p.exprList(node.Arguments) + ")"
	}
	return fmt.Sprintf("/* ? %T */", node)
}

const maxPrecedence = 100

func (p *printer) exprList(exprs []ast.Expression) string {
	parts := make([]string, len(exprs))
	for i, expr := range exprs {
		parts[i] = p.expr(expr, 0)
	}
	return strings.Join(parts, ", ")
}

func blockString(block *ast.BlockStatement) string {
	inner := &printer{}
	inner.printNode(block, 0)
	return inner.sb.String()
}

func parenthesize(s string, prec, outerPrec int) string {
	if prec <= outerPrec {
		return "(" + s + ")"
	}
	return s
}

func (p *printer) writeIndent(indent int) {
	for i := 0; i < indent; i++ {
		p.sb.WriteString(indentUnit)
	}
}
