package ast

import (
	"fmt"
	"testing"

	"github.com/mna/lox/lang/token"
	"github.com/stretchr/testify/require"
)

func TestIdentSpan(t *testing.T) {
	id := &Ident{Name: "count", Pos: token.MakePos(1, 5)}
	start, end := id.Span()
	require.Equal(t, token.MakePos(1, 5), start)
	require.Equal(t, token.MakePos(1, 10), end)
}

func TestFormatVerbs(t *testing.T) {
	lit := &LiteralExpr{Start: token.MakePos(1, 1), Raw: "123", Value: 123.0}
	require.Equal(t, "literal 123", fmt.Sprintf("%v", lit))
	require.Equal(t, "%!z(*ast.LiteralExpr)", fmt.Sprintf("%z", lit))
}

func TestWalkCountsNodes(t *testing.T) {
	prog := &Program{
		Stmts: []Stmt{
			&VarStmt{Name: &Ident{Name: "a"}, Value: &LiteralExpr{Raw: "1", Value: 1.0}},
			&PrintStmt{Expr: &VariableExpr{Name: &Ident{Name: "a"}}},
		},
	}

	var count int
	Walk(VisitorFunc(func(Node) bool {
		count++
		return true
	}), prog)

	// program + 2 stmts + (ident + literal) + (variable + ident) = 7
	require.Equal(t, 7, count)
}

func TestClassStmtFormat(t *testing.T) {
	cls := &ClassStmt{
		Name: &Ident{Name: "Duck"},
		Superclass: &VariableExpr{
			Name: &Ident{Name: "Animal"},
		},
		Methods: []*FunctionStmt{
			{Name: &Ident{Name: "quack"}},
		},
	}
	require.Equal(t, "class Duck {inherits=1, methods=1}", fmt.Sprintf("%#v", cls))
}
