// Package parser implements the hand-written recursive-descent parser that
// transforms a token stream into an abstract syntax tree (AST).
package parser

import (
	"context"
	"errors"
	"os"
	"strings"

	gotoken "go/token"

	"github.com/mna/lox/lang/ast"
	"github.com/mna/lox/lang/scanner"
	"github.com/mna/lox/lang/token"
)

// ParseFiles parses each of the given source files into a *ast.Program and
// returns the fileset along with the ASTs and any error encountered. The
// error, if non-nil, is guaranteed to be a scanner.ErrorList.
func ParseFiles(ctx context.Context, files ...string) (*token.FileSet, []*ast.Program, error) {
	if len(files) == 0 {
		return nil, nil, nil
	}

	var p parser
	fs := token.NewFileSet()
	progs := make([]*ast.Program, 0, len(files))

	for _, file := range files {
		if ctx.Err() != nil {
			p.errors.Add(gotoken.Position{Filename: file}, ctx.Err().Error())
			break
		}

		b, err := os.ReadFile(file)
		if err != nil {
			p.errors.Add(gotoken.Position{Filename: file}, err.Error())
			continue
		}

		f := fs.AddFile(file, len(b))
		p.init(f, b)
		prog := p.parseProgram()
		prog.Name = file
		progs = append(progs, prog)
	}
	p.errors.Sort()
	return fs, progs, p.errors.Err()
}

// ParseSource parses a single in-memory chunk (e.g. a REPL line), reporting
// its position under name. The error, if non-nil, is guaranteed to be a
// scanner.ErrorList.
func ParseSource(name string, src []byte) (*token.File, *ast.Program, error) {
	var p parser
	f := &token.File{Name: name, Size: len(src)}
	p.init(f, src)
	prog := p.parseProgram()
	prog.Name = name
	return f, prog, p.errors.Err()
}

// parser parses a token stream and produces an AST.
type parser struct {
	scanner scanner.Scanner
	errors  scanner.ErrorList
	file    *token.File

	// current token
	tok token.Token
	val token.Value
}

func (p *parser) init(file *token.File, src []byte) {
	p.file = file
	p.scanner.Init(file, src, p.errors.Add)
	p.advance()
}

func (p *parser) advance() {
	p.tok = p.scanner.Scan(&p.val)
}

func (p *parser) check(toks ...token.Token) bool {
	for _, tok := range toks {
		if p.tok == tok {
			return true
		}
	}
	return false
}

// match consumes and returns true if the current token is one of toks,
// otherwise it leaves the parser untouched and returns false.
func (p *parser) match(toks ...token.Token) bool {
	if p.check(toks...) {
		p.advance()
		return true
	}
	return false
}

var errPanicMode = errors.New("panic")

// expect returns the position of the current token and consumes it if it is
// one of the expected tokens, otherwise it reports an error and panics with
// errPanicMode, which is recovered at the statement level, resulting in the
// enclosing declaration being discarded by synchronize.
func (p *parser) expect(toks ...token.Token) token.Pos {
	pos := p.val.Pos
	if !p.check(toks...) {
		var buf strings.Builder
		for i, tok := range toks {
			if i > 0 {
				buf.WriteString(", ")
			}
			buf.WriteString(tok.GoString())
		}
		lbl := buf.String()
		if len(toks) > 1 {
			lbl = "one of " + lbl
		}
		p.errorExpected(pos, lbl)
		panic(errPanicMode)
	}
	p.advance()
	return pos
}

func (p *parser) error(pos token.Pos, msg string) {
	line, col := pos.LineCol()
	name := ""
	if p.file != nil {
		name = p.file.Name
	}
	p.errors.Add(gotoken.Position{Filename: name, Line: line, Column: col}, msg)
}

func (p *parser) errorExpected(pos token.Pos, msg string) {
	msg = "expected " + msg
	if pos == p.val.Pos {
		switch lit := p.tok.Literal(p.val); lit {
		case "":
			msg += ", found " + p.tok.GoString()
		default:
			msg += ", found " + lit
		}
	}
	p.error(pos, msg)
}
