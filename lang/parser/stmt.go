package parser

import (
	"github.com/mna/lox/lang/ast"
	"github.com/mna/lox/lang/token"
)

const maxParams = 255

func (p *parser) parseProgram() *ast.Program {
	var prog ast.Program
	for p.tok != token.EOF {
		if stmt := p.parseDeclaration(); stmt != nil {
			prog.Stmts = append(prog.Stmts, stmt)
		}
	}
	prog.EOF = p.val.Pos
	return &prog
}

// declaration → classDecl | funDecl | varDecl | statement
//
// Parse errors panic with errPanicMode and are recovered here, at the
// declaration boundary: the rest of the broken declaration is discarded by
// synchronize and parsing resumes at the next safe token.
func (p *parser) parseDeclaration() (stmt ast.Stmt) {
	defer func() {
		if err := recover(); err != nil {
			if err != errPanicMode {
				panic(err)
			}
			p.synchronize()
			stmt = nil
		}
	}()

	switch p.tok {
	case token.CLASS:
		return p.parseClassDecl()
	case token.FUN:
		return p.parseFunDecl()
	case token.VAR:
		return p.parseVarDecl()
	default:
		return p.parseStatement()
	}
}

// classDecl → "class" IDENT ( ">" IDENT )? "{" function* "}"
func (p *parser) parseClassDecl() *ast.ClassStmt {
	var stmt ast.ClassStmt
	stmt.Class = p.expect(token.CLASS)
	stmt.Name = p.parseIdent()

	if p.tok == token.GT {
		p.expect(token.GT)
		stmt.Superclass = &ast.VariableExpr{Name: p.parseIdent()}
	}

	p.expect(token.LBRACE)
	for p.tok != token.RBRACE && p.tok != token.EOF {
		stmt.Methods = append(stmt.Methods, p.parseFunction())
	}
	stmt.End = p.expect(token.RBRACE)
	return &stmt
}

// funDecl → "fun" function
func (p *parser) parseFunDecl() *ast.FunctionStmt {
	p.expect(token.FUN)
	return p.parseFunction()
}

// function → IDENT "(" params? ")" "{" declaration* "}"
func (p *parser) parseFunction() *ast.FunctionStmt {
	var stmt ast.FunctionStmt
	stmt.Fun = p.val.Pos
	stmt.Name = p.parseIdent()

	p.expect(token.LPAREN)
	if p.tok != token.RPAREN {
		stmt.Params = append(stmt.Params, p.parseIdent())
		for p.tok == token.COMMA {
			p.expect(token.COMMA)
			if len(stmt.Params) >= maxParams {
				p.error(p.val.Pos, "can't have more than 255 parameters")
			}
			stmt.Params = append(stmt.Params, p.parseIdent())
		}
	}
	p.expect(token.RPAREN)

	p.expect(token.LBRACE)
	stmt.Body = p.parseBlockStmts()
	stmt.End = p.expect(token.RBRACE)
	return &stmt
}

// varDecl → "var" IDENT ( "=" expression )? ";"
func (p *parser) parseVarDecl() *ast.VarStmt {
	var stmt ast.VarStmt
	stmt.Var = p.expect(token.VAR)
	stmt.Name = p.parseIdent()
	if p.match(token.EQ) {
		stmt.Value = p.parseExpr()
	}
	stmt.End = p.expect(token.SEMICOLON)
	return &stmt
}

// statement → exprStmt | forStmt | ifStmt | printStmt | returnStmt
//
//	| whileStmt | block
func (p *parser) parseStatement() ast.Stmt {
	switch p.tok {
	case token.FOR:
		return p.parseForStmt()
	case token.IF:
		return p.parseIfStmt()
	case token.PRINT:
		return p.parsePrintStmt()
	case token.RETURN:
		return p.parseReturnStmt()
	case token.WHILE:
		return p.parseWhileStmt()
	case token.LBRACE:
		return p.parseBlockStmt()
	default:
		return p.parseExprStmt()
	}
}

// block → "{" declaration* "}"
func (p *parser) parseBlockStmt() *ast.BlockStmt {
	lbrace := p.expect(token.LBRACE)
	stmts := p.parseBlockStmts()
	rbrace := p.expect(token.RBRACE)
	return &ast.BlockStmt{Lbrace: lbrace, Stmts: stmts, Rbrace: rbrace}
}

func (p *parser) parseBlockStmts() []ast.Stmt {
	var stmts []ast.Stmt
	for p.tok != token.RBRACE && p.tok != token.EOF {
		if stmt := p.parseDeclaration(); stmt != nil {
			stmts = append(stmts, stmt)
		}
	}
	return stmts
}

// forStmt → "for" "(" (varDecl | exprStmt | ";") expression? ";" expression? ")" statement
//
// Desugared immediately into a WhileStmt: "for (init; cond; post) body"
// becomes "{ init; while (cond ?? true) { body; post; } }", so the resolver
// and interpreter never see a for loop.
func (p *parser) parseForStmt() ast.Stmt {
	forPos := p.expect(token.FOR)
	p.expect(token.LPAREN)

	var init ast.Stmt
	switch p.tok {
	case token.SEMICOLON:
		p.expect(token.SEMICOLON)
	case token.VAR:
		init = p.parseVarDecl()
	default:
		init = p.parseExprStmt()
	}

	var cond ast.Expr
	if p.tok != token.SEMICOLON {
		cond = p.parseExpr()
	}
	p.expect(token.SEMICOLON)

	var post ast.Expr
	if p.tok != token.RPAREN {
		post = p.parseExpr()
	}
	rparen := p.expect(token.RPAREN)

	body := p.parseStatement()

	if post != nil {
		body = &ast.BlockStmt{
			Lbrace: rparen,
			Stmts:  []ast.Stmt{body, &ast.ExpressionStmt{Expr: post, End: rparen}},
			Rbrace: rparen,
		}
	}
	if cond == nil {
		cond = &ast.LiteralExpr{Start: forPos, Raw: "true", Value: true}
	}
	loop := ast.Stmt(&ast.WhileStmt{While: forPos, Cond: cond, Body: body})

	if init != nil {
		loop = &ast.BlockStmt{Lbrace: forPos, Stmts: []ast.Stmt{init, loop}, Rbrace: forPos}
	}
	return loop
}

// ifStmt → "if" "(" expression ")" statement ( "else" statement )?
func (p *parser) parseIfStmt() *ast.IfStmt {
	var stmt ast.IfStmt
	stmt.If = p.expect(token.IF)
	p.expect(token.LPAREN)
	stmt.Cond = p.parseExpr()
	p.expect(token.RPAREN)
	stmt.Then = p.parseStatement()
	if p.match(token.ELSE) {
		stmt.Else = p.parseStatement()
	}
	return &stmt
}

// printStmt → "print" expression ";"
func (p *parser) parsePrintStmt() *ast.PrintStmt {
	var stmt ast.PrintStmt
	stmt.Print = p.expect(token.PRINT)
	stmt.Expr = p.parseExpr()
	stmt.End = p.expect(token.SEMICOLON)
	return &stmt
}

// returnStmt → "return" expression? ";"
func (p *parser) parseReturnStmt() *ast.ReturnStmt {
	var stmt ast.ReturnStmt
	stmt.Return = p.expect(token.RETURN)
	if p.tok != token.SEMICOLON {
		stmt.Value = p.parseExpr()
	}
	stmt.End = p.expect(token.SEMICOLON)
	return &stmt
}

// whileStmt → "while" "(" expression ")" statement
func (p *parser) parseWhileStmt() *ast.WhileStmt {
	var stmt ast.WhileStmt
	stmt.While = p.expect(token.WHILE)
	p.expect(token.LPAREN)
	stmt.Cond = p.parseExpr()
	p.expect(token.RPAREN)
	stmt.Body = p.parseStatement()
	return &stmt
}

// exprStmt → expression ";"
func (p *parser) parseExprStmt() *ast.ExpressionStmt {
	expr := p.parseExpr()
	end := p.expect(token.SEMICOLON)
	return &ast.ExpressionStmt{Expr: expr, End: end}
}

// synchronize discards tokens until after the next ';' or until the next
// token begins a new statement, so that parsing can resume after a broken
// declaration without cascading spurious errors.
func (p *parser) synchronize() {
	for p.tok != token.EOF {
		if p.tok == token.SEMICOLON {
			p.advance()
			return
		}
		switch p.tok {
		case token.CLASS, token.FUN, token.VAR, token.FOR, token.IF, token.WHILE, token.PRINT, token.RETURN:
			return
		}
		p.advance()
	}
}
