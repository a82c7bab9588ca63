package maincmd

import (
	"context"
	"fmt"

	"github.com/mna/mainer"
	"github.com/mna/lox/lang/ast"
	"github.com/mna/lox/lang/interp"
	"github.com/mna/lox/lang/parser"
	"github.com/mna/lox/lang/resolver"
	"github.com/mna/lox/lang/scanner"
)

func (c *Cmd) Run(ctx context.Context, stdio mainer.Stdio, args []string) error {
	return RunFile(ctx, stdio, args[0])
}

// RunFile reads, parses, resolves and executes file once, printing any
// scan/parse/resolve/runtime error to stderr.
func RunFile(ctx context.Context, stdio mainer.Stdio, file string) error {
	_, progs, perr := parser.ParseFiles(ctx, file)
	if perr != nil {
		scanner.PrintError(stdio.Stderr, perr)
		return perr
	}

	locals, rerr := resolver.ResolveFiles(ctx, progs)
	if rerr != nil {
		scanner.PrintError(stdio.Stderr, rerr)
		return rerr
	}

	in := interp.New(locals)
	in.Stdout = stdio.Stdout
	in.Stderr = stdio.Stderr

	var prog *ast.Program
	if len(progs) > 0 {
		prog = progs[0]
	}
	if err := in.Run(ctx, prog); err != nil {
		fmt.Fprintln(stdio.Stderr, err)
		return err
	}
	return nil
}
