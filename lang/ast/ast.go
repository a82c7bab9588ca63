// Package ast defines the abstract syntax tree produced by the parser and
// consumed by the resolver and interpreter. Unlike the parser's lossless
// cousins in other languages, this tree keeps only what evaluation needs:
// positions for diagnostics, and the shape of expressions and statements.
package ast

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mna/lox/lang/token"
)

// Node represents any node in the AST.
type Node interface {
	// Every Node implements fmt.Formatter so it can print a description of
	// itself. The only supported verbs are 'v' and 's'; see format for the
	// supported flags and width behavior.
	fmt.Formatter

	// Span reports the start and end position of the node.
	Span() (start, end token.Pos)

	// Walk visits the node's children, if any, with v.
	Walk(v Visitor)
}

// Expr represents an expression in the AST.
type Expr interface {
	Node
	expr()
}

// Stmt represents a statement in the AST.
type Stmt interface {
	Node
	stmt()
}

// Ident is a name together with the position it was found at. It is not
// itself an expression - it is embedded in the expressions and statements
// that bind or reference a name (variables, parameters, class and function
// names, property accesses).
type Ident struct {
	Name string
	Pos  token.Pos
}

func (n *Ident) Format(f fmt.State, verb rune) { format(f, verb, n, n.Name, nil) }
func (n *Ident) Span() (start, end token.Pos)  { return n.Pos, n.Pos.Advance(len(n.Name)) }
func (n *Ident) Walk(_ Visitor)                {}

// Program is the root node produced by parsing one source file or REPL
// chunk: a sequence of top-level declarations.
type Program struct {
	// Name is the source name, which may be empty for a REPL chunk.
	Name  string
	Stmts []Stmt
	EOF   token.Pos
}

func (n *Program) Format(f fmt.State, verb rune) {
	lbl := "program"
	if n.Name != "" {
		lbl += " " + n.Name
	}
	format(f, verb, n, lbl, map[string]int{"stmts": len(n.Stmts)})
}

func (n *Program) Span() (start, end token.Pos) {
	if len(n.Stmts) == 0 {
		return n.EOF, n.EOF
	}
	start, _ = n.Stmts[0].Span()
	return start, n.EOF
}

func (n *Program) Walk(v Visitor) {
	for _, s := range n.Stmts {
		Walk(v, s)
	}
}

// format implements the shared fmt.Formatter body for every Node, the same
// way across expressions and statements: a short label plus, with the '#'
// flag, a count of interesting children.
func format(f fmt.State, verb rune, n Node, label string, counts map[string]int) {
	if verb != 'v' && verb != 's' {
		fmt.Fprintf(f, "%%!%c(%T)", verb, n)
		return
	}

	label = strings.ReplaceAll(label, "\r\n", "⏎")
	label = strings.ReplaceAll(label, "\n", "⏎")
	label = strings.ReplaceAll(label, "\t", "⭾")

	if w, ok := f.Width(); ok {
		minus, plus := f.Flag('-'), f.Flag('+')
		runes := []rune(label)
		if len(runes) >= w {
			runes = runes[:w]
		} else if minus {
			runes = append(runes, []rune(strings.Repeat(" ", w-len(runes)))...)
		} else if !plus {
			runes = append([]rune(strings.Repeat(" ", w-len(runes))), runes...)
		}
		label = string(runes)
	}

	fmt.Fprint(f, label)
	if f.Flag('#') && len(counts) > 0 {
		keys := make([]string, 0, len(counts))
		for k := range counts {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		fmt.Fprint(f, " {")
		for i, k := range keys {
			if i > 0 {
				fmt.Fprint(f, ", ")
			}
			fmt.Fprintf(f, "%s=%d", k, counts[k])
		}
		fmt.Fprint(f, "}")
	}
}
