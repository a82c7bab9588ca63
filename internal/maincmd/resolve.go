package maincmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/mna/mainer"
	"github.com/mna/lox/lang/ast"
	"github.com/mna/lox/lang/parser"
	"github.com/mna/lox/lang/resolver"
	"github.com/mna/lox/lang/scanner"
	"github.com/mna/lox/lang/token"
)

func (c *Cmd) Resolve(ctx context.Context, stdio mainer.Stdio, args []string) error {
	return ResolveFiles(ctx, stdio, token.PosLong, args...)
}

// ResolveFiles parses and resolves each file, then prints its AST the same
// way the "parse" command does, annotating every variable reference, this,
// super and assignment target with the lexical distance the resolver
// recorded for it (or "global" when unresolved).
func ResolveFiles(ctx context.Context, stdio mainer.Stdio, posMode token.PosMode, files ...string) error {
	_, progs, perr := parser.ParseFiles(ctx, files...)
	if perr != nil {
		scanner.PrintError(stdio.Stderr, perr)
		return perr
	}

	locals, rerr := resolver.ResolveFiles(ctx, progs)
	for _, prog := range progs {
		printResolved(stdio.Stdout, prog, posMode, locals)
	}
	if rerr != nil {
		scanner.PrintError(stdio.Stderr, rerr)
	}
	return rerr
}

func printResolved(w io.Writer, prog *ast.Program, posMode token.PosMode, locals resolver.Locals) {
	f := &token.File{Name: prog.Name}
	rp := &resolvePrinter{w: w, pos: posMode, file: f, locals: locals}
	ast.Walk(rp, prog)
}

type resolvePrinter struct {
	w      io.Writer
	pos    token.PosMode
	file   *token.File
	locals resolver.Locals
	depth  int
}

func (p *resolvePrinter) Visit(n ast.Node, dir ast.VisitDirection) ast.Visitor {
	if dir == ast.VisitExit {
		p.depth--
		return nil
	}
	p.depth++

	indent := strings.Repeat(". ", p.depth-1)
	start, end := n.Span()
	posStr := ""
	if p.pos != token.PosNone {
		posStr = fmt.Sprintf("[%s:%s] ",
			token.FormatPos(p.pos, p.file, start, true),
			token.FormatPos(p.pos, p.file, end, false))
	}

	annotation := ""
	if e, ok := n.(ast.Expr); ok {
		if d, ok := p.locals[e]; ok {
			annotation = fmt.Sprintf(" (local depth %d)", d)
		} else {
			switch e.(type) {
			case *ast.VariableExpr, *ast.AssignExpr, *ast.ThisExpr, *ast.SuperExpr:
				annotation = " (global)"
			}
		}
	}

	fmt.Fprintf(p.w, "%s%s%v%s\n", indent, posStr, n, annotation)
	return p
}
