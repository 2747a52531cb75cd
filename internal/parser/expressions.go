package parser

import (
	"github.com/funvibe/funseal/internal/ast"
	"github.com/funvibe/funseal/internal/diagnostics"
	"github.com/funvibe/funseal/internal/token"
)

func (p *Parser) parseExpression(precedence int) ast.Expression {
	prefix := p.prefixParseFns[p.curToken.Type]
	if prefix == nil {
		p.ctx.Errors = append(p.ctx.Errors, diagnostics.NewError(
			diagnostics.ErrP002, p.curToken,
			"unexpected %s at start of expression", describe(p.curToken)))
		return nil
	}
	left := prefix()
	if left == nil {
		return nil
	}

	for precedence < p.peekPrecedence() {
		infix := p.infixParseFns[p.peekToken.Type]
		if infix == nil {
			return left
		}
		p.nextToken()
		left = infix(left)
		if left == nil {
			return nil
		}
	}

	return left
}

func (p *Parser) parseIdentifier() ast.Expression {
	return &ast.Identifier{Token: p.curToken, Value: p.curToken.Literal.(string)}
}

func (p *Parser) parseIntegerLiteral() ast.Expression {
	return &ast.IntegerLiteral{Token: p.curToken, Value: p.curToken.Literal.(int64)}
}

func (p *Parser) parseStringLiteral() ast.Expression {
	return &ast.StringLiteral{Token: p.curToken, Value: p.curToken.Literal.(string)}
}

func (p *Parser) parseBooleanLiteral() ast.Expression {
	return &ast.BooleanLiteral{Token: p.curToken, Value: p.curTokenIs(token.TRUE)}
}

func (p *Parser) parseNilLiteral() ast.Expression {
	return &ast.NilLiteral{Token: p.curToken}
}

func (p *Parser) parseThisExpression() ast.Expression {
	return &ast.ThisExpression{Token: p.curToken}
}

func (p *Parser) parsePrefixExpression() ast.Expression {
	expr := &ast.PrefixExpression{Token: p.curToken, Operator: p.curToken.Lexeme}
	p.nextToken()
	expr.Right = p.parseExpression(PREFIX)
	if expr.Right == nil {
		return nil
	}
	return expr
}

func (p *Parser) parseInfixExpression(left ast.Expression) ast.Expression {
	expr := &ast.InfixExpression{
		Token:    p.curToken,
		Left:     left,
		Operator: p.curToken.Lexeme,
	}
	precedence := p.curPrecedence()
	p.nextToken()
	expr.Right = p.parseExpression(precedence)
	if expr.Right == nil {
		return nil
	}
	return expr
}

func (p *Parser) parseGroupedExpression() ast.Expression {
	p.nextToken()
	expr := p.parseExpression(LOWEST)
	if expr == nil {
		return nil
	}
	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	return expr
}

func (p *Parser) parseIfExpression() ast.Expression {
	expr := &ast.IfExpression{Token: p.curToken}

	if !p.expectPeek(token.LPAREN) {
		return nil
	}
	p.nextToken()
	expr.Condition = p.parseExpression(LOWEST)
	if expr.Condition == nil {
		return nil
	}
	if !p.expectPeek(token.RPAREN) {
		return nil
	}

	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	expr.Consequence = p.parseBlockStatement()
	if expr.Consequence == nil {
		return nil
	}

	if p.peekTokenIs(token.ELSE) {
		p.nextToken()
		if !p.expectPeek(token.LBRACE) {
			return nil
		}
		expr.Alternative = p.parseBlockStatement()
		if expr.Alternative == nil {
			return nil
		}
	}

	return expr
}

func (p *Parser) parseNewExpression() ast.Expression {
	expr := &ast.NewExpression{Token: p.curToken}

	if !p.expectPeek(token.IDENT) {
		return nil
	}
	expr.ClassName = &ast.Identifier{Token: p.curToken, Value: p.curToken.Literal.(string)}

	if !p.expectPeek(token.LPAREN) {
		return nil
	}
	args := p.parseExpressionList(token.RPAREN)
	if args == nil {
		return nil
	}
	expr.Arguments = args
	return expr
}

func (p *Parser) parseCallExpression(function ast.Expression) ast.Expression {
	expr := &ast.CallExpression{Token: p.curToken, Function: function}
	args := p.parseExpressionList(token.RPAREN)
	if args == nil {
		return nil
	}
	expr.Arguments = args
	return expr
}

// parseDotExpression handles everything after '.': a private
// reference recv.#name or a method call recv.name(args). Plain
// property access does not exist in the language.
func (p *Parser) parseDotExpression(receiver ast.Expression) ast.Expression {
	if p.peekTokenIs(token.PRIVATE_IDENT) {
		p.nextToken()
		return &ast.PrivateRef{
			Token:    p.curToken,
			Receiver: receiver,
			Name:     p.curToken.Literal.(string),
		}
	}

	if !p.expectPeek(token.IDENT) {
		return nil
	}
	method := &ast.Identifier{Token: p.curToken, Value: p.curToken.Literal.(string)}
	call := &ast.MethodCallExpression{Token: p.curToken, Receiver: receiver, Method: method}

	if !p.expectPeek(token.LPAREN) {
		return nil
	}
	args := p.parseExpressionList(token.RPAREN)
	if args == nil {
		return nil
	}
	call.Arguments = args
	return call
}

func (p *Parser) parseAssignExpression(target ast.Expression) ast.Expression {
	switch target.(type) {
	case *ast.Identifier, *ast.PrivateRef:
	default:
		p.ctx.Errors = append(p.ctx.Errors, diagnostics.NewError(
			diagnostics.ErrP004, p.curToken,
			"invalid assignment target: expected a name or a private reference"))
		return nil
	}

	expr := &ast.AssignExpression{Token: p.curToken, Target: target}
	p.nextToken()
	// Right-associative: a = b = c assigns c to both.
	expr.Value = p.parseExpression(ASSIGN - 1)
	if expr.Value == nil {
		return nil
	}
	return expr
}

func (p *Parser) parseExpressionList(end token.TokenType) []ast.Expression {
	list := []ast.Expression{}

	if p.peekTokenIs(end) {
		p.nextToken()
		return list
	}

	p.nextToken()
	expr := p.parseExpression(LOWEST)
	if expr == nil {
		return nil
	}
	list = append(list, expr)

	for p.peekTokenIs(token.COMMA) {
		p.nextToken()
		p.nextToken()
		expr = p.parseExpression(LOWEST)
		if expr == nil {
			return nil
		}
		list = append(list, expr)
	}

	if !p.expectPeek(end) {
		return nil
	}
	return list
}
