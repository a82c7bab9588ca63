package maincmd

import (
	"context"
	"fmt"

	"github.com/mna/mainer"
	"github.com/mna/lox/lang/ast"
	"github.com/mna/lox/lang/parser"
	"github.com/mna/lox/lang/scanner"
	"github.com/mna/lox/lang/token"
)

func (c *Cmd) Parse(ctx context.Context, stdio mainer.Stdio, args []string) error {
	return ParseFiles(ctx, stdio, token.PosLong, args...)
}

// ParseFiles parses each file and prints its AST, one indented line per
// node.
func ParseFiles(ctx context.Context, stdio mainer.Stdio, posMode token.PosMode, files ...string) error {
	printer := ast.Printer{Output: stdio.Stdout, Pos: posMode}
	_, progs, err := parser.ParseFiles(ctx, files...)
	for _, prog := range progs {
		f := &token.File{Name: prog.Name}
		if perr := printer.Print(prog, f); perr != nil {
			fmt.Fprintln(stdio.Stderr, perr)
			return perr
		}
	}
	if err != nil {
		scanner.PrintError(stdio.Stderr, err)
	}
	return err
}
