package parser

import (
	"github.com/mna/lox/lang/ast"
	"github.com/mna/lox/lang/token"
)

const maxArgs = 255

func (p *parser) parseExpr() ast.Expr {
	return p.parseAssignment()
}

// assignment → ( call "." )? IDENT "=" assignment | logic_or
//
// The left-hand side is parsed as a normal expression and then re-examined:
// a bare Variable becomes an Assign, a Get becomes a Set, anything else is
// an invalid assignment target reported at the "=" token (the rest of the
// expression is kept, parsing is not aborted).
func (p *parser) parseAssignment() ast.Expr {
	expr := p.parseOr()

	if p.tok == token.EQ {
		eq := p.expect(token.EQ)
		value := p.parseAssignment()

		switch target := expr.(type) {
		case *ast.VariableExpr:
			return &ast.AssignExpr{Name: target.Name, Eq: eq, Value: value}
		case *ast.GetExpr:
			return &ast.SetExpr{Object: target.Object, Name: target.Name, Eq: eq, Value: value}
		default:
			p.error(eq, "invalid assignment target")
			return expr
		}
	}
	return expr
}

func (p *parser) parseOr() ast.Expr {
	expr := p.parseAnd()
	for p.tok == token.OR {
		op := p.tok
		pos := p.expect(token.OR)
		right := p.parseAnd()
		expr = &ast.LogicalExpr{Left: expr, Op: op, OpPos: pos, Right: right}
	}
	return expr
}

func (p *parser) parseAnd() ast.Expr {
	expr := p.parseEquality()
	for p.tok == token.AND {
		op := p.tok
		pos := p.expect(token.AND)
		right := p.parseEquality()
		expr = &ast.LogicalExpr{Left: expr, Op: op, OpPos: pos, Right: right}
	}
	return expr
}

func (p *parser) parseEquality() ast.Expr {
	expr := p.parseComparison()
	for p.check(token.BANG_EQ, token.EQ_EQ) {
		op := p.tok
		pos := p.expect(op)
		right := p.parseComparison()
		expr = &ast.BinaryExpr{Left: expr, Op: op, OpPos: pos, Right: right}
	}
	return expr
}

func (p *parser) parseComparison() ast.Expr {
	expr := p.parseTerm()
	for p.check(token.GT, token.GE, token.LT, token.LE) {
		op := p.tok
		pos := p.expect(op)
		right := p.parseTerm()
		expr = &ast.BinaryExpr{Left: expr, Op: op, OpPos: pos, Right: right}
	}
	return expr
}

func (p *parser) parseTerm() ast.Expr {
	expr := p.parseFactor()
	for p.check(token.MINUS, token.PLUS) {
		op := p.tok
		pos := p.expect(op)
		right := p.parseFactor()
		expr = &ast.BinaryExpr{Left: expr, Op: op, OpPos: pos, Right: right}
	}
	return expr
}

func (p *parser) parseFactor() ast.Expr {
	expr := p.parseUnary()
	for p.check(token.SLASH, token.STAR) {
		op := p.tok
		pos := p.expect(op)
		right := p.parseUnary()
		expr = &ast.BinaryExpr{Left: expr, Op: op, OpPos: pos, Right: right}
	}
	return expr
}

func (p *parser) parseUnary() ast.Expr {
	if p.check(token.BANG, token.MINUS) {
		op := p.tok
		pos := p.expect(op)
		right := p.parseUnary()
		return &ast.UnaryExpr{Op: op, OpPos: pos, Right: right}
	}
	return p.parseCall()
}

func (p *parser) parseCall() ast.Expr {
	expr := p.parsePrimary()

	for {
		switch p.tok {
		case token.LPAREN:
			expr = p.finishCall(expr)
		case token.DOT:
			p.expect(token.DOT)
			name := p.parseIdent()
			expr = &ast.GetExpr{Object: expr, Name: name}
		default:
			return expr
		}
	}
}

func (p *parser) finishCall(callee ast.Expr) ast.Expr {
	p.expect(token.LPAREN)

	var args []ast.Expr
	if p.tok != token.RPAREN {
		args = append(args, p.parseExpr())
		for p.tok == token.COMMA {
			p.expect(token.COMMA)
			if len(args) >= maxArgs {
				p.error(p.val.Pos, "can't have more than 255 arguments")
			}
			args = append(args, p.parseExpr())
		}
	}
	rparen := p.expect(token.RPAREN)
	return &ast.CallExpr{Callee: callee, Args: args, Rparen: rparen}
}

func (p *parser) parsePrimary() ast.Expr {
	switch p.tok {
	case token.FALSE:
		pos := p.expect(token.FALSE)
		return &ast.LiteralExpr{Start: pos, Raw: "false", Value: false}
	case token.TRUE:
		pos := p.expect(token.TRUE)
		return &ast.LiteralExpr{Start: pos, Raw: "true", Value: true}
	case token.NIL:
		pos := p.expect(token.NIL)
		return &ast.LiteralExpr{Start: pos, Raw: "nil", Value: nil}
	case token.NUMBER:
		val := p.val
		pos := p.expect(token.NUMBER)
		return &ast.LiteralExpr{Start: pos, Raw: val.Raw, Value: val.Number}
	case token.STRING:
		val := p.val
		pos := p.expect(token.STRING)
		return &ast.LiteralExpr{Start: pos, Raw: val.Raw, Value: val.Raw}
	case token.SUPER:
		start := p.expect(token.SUPER)
		p.expect(token.DOT)
		method := p.parseIdent()
		return &ast.SuperExpr{Start: start, Method: method}
	case token.THIS:
		pos := p.expect(token.THIS)
		return &ast.ThisExpr{Start: pos}
	case token.IDENT:
		return &ast.VariableExpr{Name: p.parseIdent()}
	case token.LPAREN:
		lparen := p.expect(token.LPAREN)
		inner := p.parseExpr()
		rparen := p.expect(token.RPAREN)
		return &ast.GroupingExpr{Lparen: lparen, Inner: inner, Rparen: rparen}
	default:
		p.errorExpected(p.val.Pos, "expression")
		panic(errPanicMode)
	}
}

func (p *parser) parseIdent() *ast.Ident {
	name, pos := p.val.Raw, p.val.Pos
	p.expect(token.IDENT)
	return &ast.Ident{Name: name, Pos: pos}
}
