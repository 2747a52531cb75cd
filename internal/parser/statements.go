package parser

import (
	"github.com/funvibe/funseal/internal/ast"
	"github.com/funvibe/funseal/internal/diagnostics"
	"github.com/funvibe/funseal/internal/token"
)

func (p *Parser) parseStatement() ast.Statement {
	switch p.curToken.Type {
	case token.LET:
		return p.parseLetStatement()
	case token.RETURN:
		return p.parseReturnStatement()
	case token.CLASS:
		return p.parseClassDeclaration()
	default:
		return p.parseExpressionStatement()
	}
}

func (p *Parser) parseLetStatement() ast.Statement {
	stmt := &ast.LetStatement{Token: p.curToken}

	if !p.expectPeek(token.IDENT) {
		return nil
	}
	stmt.Name = &ast.Identifier{Token: p.curToken, Value: p.curToken.Literal.(string)}

	if !p.expectPeek(token.ASSIGN) {
		return nil
	}
	p.nextToken()

	stmt.Value = p.parseExpression(LOWEST)
	if stmt.Value == nil {
		return nil
	}

	if p.peekTokenIs(token.SEMICOLON) {
		p.nextToken()
	}
	return stmt
}

func (p *Parser) parseReturnStatement() ast.Statement {
	stmt := &ast.ReturnStatement{Token: p.curToken}

	// A bare return is allowed before '}' or ';'.
	if p.peekTokenIs(token.RBRACE) || p.peekTokenIs(token.SEMICOLON) || p.peekTokenIs(token.EOF) {
		if p.peekTokenIs(token.SEMICOLON) {
			p.nextToken()
		}
		return stmt
	}

	p.nextToken()
	stmt.Value = p.parseExpression(LOWEST)
	if stmt.Value == nil {
		return nil
	}

	if p.peekTokenIs(token.SEMICOLON) {
		p.nextToken()
	}
	return stmt
}

func (p *Parser) parseExpressionStatement() ast.Statement {
	stmt := &ast.ExpressionStatement{Token: p.curToken}

	stmt.Expression = p.parseExpression(LOWEST)
	if stmt.Expression == nil {
		return nil
	}

	if p.peekTokenIs(token.SEMICOLON) {
		p.nextToken()
	}
	return stmt
}

func (p *Parser) parseBlockStatement() *ast.BlockStatement {
	block := &ast.BlockStatement{Token: p.curToken}

	p.nextToken()
	for !p.curTokenIs(token.RBRACE) && !p.curTokenIs(token.EOF) {
		if p.curTokenIs(token.SEMICOLON) {
			p.nextToken()
			continue
		}
		stmt := p.parseStatement()
		if stmt != nil {
			block.Statements = append(block.Statements, stmt)
		} else {
			p.synchronize()
		}
		p.nextToken()
	}

	if p.curTokenIs(token.EOF) {
		p.ctx.Errors = append(p.ctx.Errors, diagnostics.NewError(
			diagnostics.ErrP001, p.curToken, "expected '}', got end of input"))
		return nil
	}
	return block
}

// parseClassDeclaration parses
//
//	class Name [extends Parent] {
//	  private #a
//	  protected #b
//	  method(params) { ... }
//	}
func (p *Parser) parseClassDeclaration() ast.Statement {
	decl := &ast.ClassDeclaration{Token: p.curToken}

	if !p.expectPeek(token.IDENT) {
		return nil
	}
	decl.Name = &ast.Identifier{Token: p.curToken, Value: p.curToken.Literal.(string)}

	if p.peekTokenIs(token.EXTENDS) {
		p.nextToken()
		if !p.expectPeek(token.IDENT) {
			return nil
		}
		decl.Parent = &ast.Identifier{Token: p.curToken, Value: p.curToken.Literal.(string)}
	}

	if !p.expectPeek(token.LBRACE) {
		return nil
	}

	p.nextToken()
	for !p.curTokenIs(token.RBRACE) && !p.curTokenIs(token.EOF) {
		switch p.curToken.Type {
		case token.SEMICOLON:
			// separator, nothing to do
		case token.PRIVATE, token.PROTECTED:
			slot := p.parseSlotDeclaration()
			if slot == nil {
				return nil
			}
			decl.Slots = append(decl.Slots, slot)
		case token.IDENT:
			method := p.parseMethodDeclaration()
			if method == nil {
				return nil
			}
			decl.Methods = append(decl.Methods, method)
		default:
			p.ctx.Errors = append(p.ctx.Errors, diagnostics.NewError(
				diagnostics.ErrP003, p.curToken,
				"unexpected %s in class body: expected a slot declaration or a method", describe(p.curToken)))
			return nil
		}
		p.nextToken()
	}

	if p.curTokenIs(token.EOF) {
		p.ctx.Errors = append(p.ctx.Errors, diagnostics.NewError(
			diagnostics.ErrP001, p.curToken, "expected '}', got end of input"))
		return nil
	}
	return decl
}

func (p *Parser) parseSlotDeclaration() *ast.SlotDeclaration {
	slot := &ast.SlotDeclaration{
		Token:     p.curToken,
		Protected: p.curTokenIs(token.PROTECTED),
	}

	if !p.expectPeek(token.PRIVATE_IDENT) {
		return nil
	}
	slot.Name = p.curToken.Literal.(string)

	if p.peekTokenIs(token.ASSIGN) {
		p.nextToken()
		p.nextToken()
		slot.Init = p.parseExpression(LOWEST)
		if slot.Init == nil {
			return nil
		}
	}
	return slot
}

func (p *Parser) parseMethodDeclaration() *ast.MethodDeclaration {
	method := &ast.MethodDeclaration{Token: p.curToken}
	method.Name = &ast.Identifier{Token: p.curToken, Value: p.curToken.Literal.(string)}

	if !p.expectPeek(token.LPAREN) {
		return nil
	}
	method.Parameters = p.parseMethodParameters()
	if method.Parameters == nil {
		return nil
	}

	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	method.Body = p.parseBlockStatement()
	if method.Body == nil {
		return nil
	}
	return method
}

func (p *Parser) parseMethodParameters() []*ast.Identifier {
	params := []*ast.Identifier{}

	if p.peekTokenIs(token.RPAREN) {
		p.nextToken()
		return params
	}

	if !p.expectPeek(token.IDENT) {
		return nil
	}
	params = append(params, &ast.Identifier{Token: p.curToken, Value: p.curToken.Literal.(string)})

	for p.peekTokenIs(token.COMMA) {
		p.nextToken()
		if !p.expectPeek(token.IDENT) {
			return nil
		}
		params = append(params, &ast.Identifier{Token: p.curToken, Value: p.curToken.Literal.(string)})
	}

	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	return params
}
