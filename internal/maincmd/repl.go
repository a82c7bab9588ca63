package maincmd

import (
	"bufio"
	"context"
	"fmt"

	"github.com/mna/mainer"
	"github.com/mna/lox/lang/ast"
	"github.com/mna/lox/lang/interp"
	"github.com/mna/lox/lang/parser"
	"github.com/mna/lox/lang/resolver"
	"github.com/mna/lox/lang/scanner"
)

func (c *Cmd) Repl(ctx context.Context, stdio mainer.Stdio, args []string) error {
	return Repl(ctx, stdio)
}

// Repl reads one line at a time from stdio.Stdin, executing it against a
// single persistent Interpreter so top-level "var"/"fun"/"class"
// declarations survive across lines. Errors on one line are printed to
// stderr and do not stop the session; only ctx cancellation or EOF does.
func Repl(ctx context.Context, stdio mainer.Stdio) error {
	in := interp.New(nil)
	in.Stdout = stdio.Stdout
	in.Stderr = stdio.Stderr

	sc := bufio.NewScanner(stdio.Stdin)
	for {
		if ctx.Err() != nil {
			return nil
		}
		fmt.Fprint(stdio.Stdout, "> ")
		if !sc.Scan() {
			return nil
		}
		line := sc.Text()
		if line == "" {
			continue
		}

		_, prog, perr := parser.ParseSource("<repl>", []byte(line))
		if perr != nil {
			scanner.PrintError(stdio.Stderr, perr)
			continue
		}

		locals, rerr := resolver.ResolveFiles(ctx, []*ast.Program{prog})
		if rerr != nil {
			scanner.PrintError(stdio.Stderr, rerr)
			continue
		}
		in.AddLocals(locals)

		if err := in.Run(ctx, prog); err != nil {
			fmt.Fprintln(stdio.Stderr, err)
		}
	}
}
