package resolver

import (
	"context"
	"testing"

	"github.com/mna/lox/lang/ast"
	"github.com/mna/lox/lang/parser"
	"github.com/stretchr/testify/require"
)

func mustResolve(t *testing.T, src string) (*ast.Program, Locals) {
	t.Helper()
	_, prog, err := parser.ParseSource("t", []byte(src))
	require.NoError(t, err)
	locals, err := ResolveFiles(context.Background(), []*ast.Program{prog})
	require.NoError(t, err)
	return prog, locals
}

func resolveErr(t *testing.T, src string) error {
	t.Helper()
	_, prog, err := parser.ParseSource("t", []byte(src))
	require.NoError(t, err)
	_, err = ResolveFiles(context.Background(), []*ast.Program{prog})
	return err
}

func TestResolveLocalDistance(t *testing.T) {
	prog, locals := mustResolve(t, `
{
	var a = 1;
	{
		var b = a;
		print b;
	}
}
`)
	outerBlock := prog.Stmts[0].(*ast.BlockStmt)
	innerBlock := outerBlock.Stmts[1].(*ast.BlockStmt)
	bDecl := innerBlock.Stmts[0].(*ast.VarStmt)
	printStmt := innerBlock.Stmts[1].(*ast.PrintStmt)

	// "a" is read one scope out from where "b" is declared
	aRef := bDecl.Value.(*ast.VariableExpr)
	require.Equal(t, 1, locals[aRef])

	// "b" is read in the same scope it was declared in
	bRef := printStmt.Expr.(*ast.VariableExpr)
	require.Equal(t, 0, locals[bRef])
}

func TestResolveGlobalUnrecorded(t *testing.T) {
	prog, locals := mustResolve(t, `
var g = 1;
print g;
`)
	printStmt := prog.Stmts[1].(*ast.PrintStmt)
	gRef := printStmt.Expr.(*ast.VariableExpr)
	_, ok := locals[gRef]
	require.False(t, ok)
}

func TestResolveReadInOwnInitializerError(t *testing.T) {
	err := resolveErr(t, `{ var a = a; }`)
	require.Error(t, err)
	require.Contains(t, err.Error(), "own initializer")
}

func TestResolveDoubleDeclareError(t *testing.T) {
	err := resolveErr(t, `{ var a = 1; var a = 2; }`)
	require.Error(t, err)
	require.Contains(t, err.Error(), "already a variable")
}

func TestResolveDoubleDeclareAllowedAtGlobalScope(t *testing.T) {
	err := resolveErr(t, `var a = 1; var a = 2;`)
	require.NoError(t, err)
}

func TestResolveReturnAtTopLevelError(t *testing.T) {
	err := resolveErr(t, `return 1;`)
	require.Error(t, err)
	require.Contains(t, err.Error(), "top-level")
}

func TestResolveReturnValueInInitializerError(t *testing.T) {
	err := resolveErr(t, `
class A {
	init() {
		return 1;
	}
}
`)
	require.Error(t, err)
	require.Contains(t, err.Error(), "initializer")
}

func TestResolveReturnBareInInitializerAllowed(t *testing.T) {
	err := resolveErr(t, `
class A {
	init() {
		return;
	}
}
`)
	require.NoError(t, err)
}

func TestResolveThisOutsideClassError(t *testing.T) {
	err := resolveErr(t, `print this;`)
	require.Error(t, err)
	require.Contains(t, err.Error(), "'this'")
}

func TestResolveSuperOutsideClassError(t *testing.T) {
	err := resolveErr(t, `print super.method();`)
	require.Error(t, err)
	require.Contains(t, err.Error(), "'super'")
}

func TestResolveSuperWithoutSuperclassError(t *testing.T) {
	err := resolveErr(t, `
class A {
	m() {
		super.m();
	}
}
`)
	require.Error(t, err)
	require.Contains(t, err.Error(), "no superclass")
}

func TestResolveClassInheritsFromItselfError(t *testing.T) {
	err := resolveErr(t, `class A > A {}`)
	require.Error(t, err)
	require.Contains(t, err.Error(), "inherit from itself")
}

func TestResolveThisAndSuperInsideSubclassMethod(t *testing.T) {
	err := resolveErr(t, `
class A {
	greet() { print "hi"; }
}
class B > A {
	greet() {
		this.x = 1;
		super.greet();
	}
}
`)
	require.NoError(t, err)
}

func TestResolveClosureCapturesDistance(t *testing.T) {
	prog, locals := mustResolve(t, `
fun makeCounter() {
	var count = 0;
	fun increment() {
		count = count + 1;
		return count;
	}
	return increment;
}
`)
	outer := prog.Stmts[0].(*ast.FunctionStmt)
	inner := outer.Body[1].(*ast.FunctionStmt)
	assign := inner.Body[0].(*ast.ExpressionStmt).Expr.(*ast.AssignExpr)
	// count is declared one function-scope out from the assignment
	require.Equal(t, 1, locals[assign])
}
