package parser

import (
	"testing"

	"github.com/mna/lox/lang/ast"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, src string) *ast.Program {
	t.Helper()
	_, prog, err := ParseSource("t", []byte(src))
	require.NoError(t, err)
	return prog
}

func TestParseVarDecl(t *testing.T) {
	prog := mustParse(t, `var x = 1 + 2;`)
	require.Len(t, prog.Stmts, 1)
	v, ok := prog.Stmts[0].(*ast.VarStmt)
	require.True(t, ok)
	require.Equal(t, "x", v.Name.Name)
	bin, ok := v.Value.(*ast.BinaryExpr)
	require.True(t, ok)
	require.Equal(t, float64(1), bin.Left.(*ast.LiteralExpr).Value)
}

func TestParseVarDeclNoInitializer(t *testing.T) {
	prog := mustParse(t, `var x;`)
	v := prog.Stmts[0].(*ast.VarStmt)
	require.Nil(t, v.Value)
}

func TestParsePrecedence(t *testing.T) {
	// 1 + 2 * 3 should parse as 1 + (2 * 3)
	prog := mustParse(t, `1 + 2 * 3;`)
	es := prog.Stmts[0].(*ast.ExpressionStmt)
	top := es.Expr.(*ast.BinaryExpr)
	require.Equal(t, "'+'", top.Op.GoString())
	require.IsType(t, &ast.BinaryExpr{}, top.Right)
}

func TestParseAssignmentTargets(t *testing.T) {
	prog := mustParse(t, `x = 1; obj.field = 2;`)
	require.Len(t, prog.Stmts, 2)

	assign := prog.Stmts[0].(*ast.ExpressionStmt).Expr.(*ast.AssignExpr)
	require.Equal(t, "x", assign.Name.Name)

	set := prog.Stmts[1].(*ast.ExpressionStmt).Expr.(*ast.SetExpr)
	require.Equal(t, "field", set.Name.Name)
}

func TestParseInvalidAssignmentTarget(t *testing.T) {
	_, _, err := ParseSource("t", []byte(`1 + 2 = 3;`))
	require.Error(t, err)
	require.Contains(t, err.Error(), "invalid assignment target")
}

func TestParseClassWithSuperclass(t *testing.T) {
	prog := mustParse(t, `class B > A { greet() { return 1; } }`)
	cls := prog.Stmts[0].(*ast.ClassStmt)
	require.Equal(t, "B", cls.Name.Name)
	require.NotNil(t, cls.Superclass)
	require.Equal(t, "A", cls.Superclass.Name.Name)
	require.Len(t, cls.Methods, 1)
	require.Equal(t, "greet", cls.Methods[0].Name.Name)
}

func TestParseClassWithoutSuperclass(t *testing.T) {
	prog := mustParse(t, `class A { }`)
	cls := prog.Stmts[0].(*ast.ClassStmt)
	require.Nil(t, cls.Superclass)
	require.Empty(t, cls.Methods)
}

func TestParseFunDecl(t *testing.T) {
	prog := mustParse(t, `fun add(a, b) { return a + b; }`)
	fn := prog.Stmts[0].(*ast.FunctionStmt)
	require.Equal(t, "add", fn.Name.Name)
	require.Len(t, fn.Params, 2)
	require.Len(t, fn.Body, 1)
}

func TestParseForDesugarsToWhile(t *testing.T) {
	prog := mustParse(t, `for (var i = 0; i < 10; i = i + 1) print i;`)
	// desugared into: { var i = 0; while (i < 10) { print i; i = i + 1; } }
	block := prog.Stmts[0].(*ast.BlockStmt)
	require.Len(t, block.Stmts, 2)
	require.IsType(t, &ast.VarStmt{}, block.Stmts[0])
	while := block.Stmts[1].(*ast.WhileStmt)
	require.NotNil(t, while.Cond)
	body := while.Body.(*ast.BlockStmt)
	require.Len(t, body.Stmts, 2)
}

func TestParseForWithoutClauses(t *testing.T) {
	prog := mustParse(t, `for (;;) print 1;`)
	while := prog.Stmts[0].(*ast.WhileStmt)
	lit, ok := while.Cond.(*ast.LiteralExpr)
	require.True(t, ok)
	require.Equal(t, true, lit.Value)
}

func TestParseIfElse(t *testing.T) {
	prog := mustParse(t, `if (true) print 1; else print 2;`)
	ifs := prog.Stmts[0].(*ast.IfStmt)
	require.NotNil(t, ifs.Then)
	require.NotNil(t, ifs.Else)
}

func TestParseSuperAndThis(t *testing.T) {
	prog := mustParse(t, `class B > A { m() { this.x = super.y(); } }`)
	cls := prog.Stmts[0].(*ast.ClassStmt)
	body := cls.Methods[0].Body
	set := body[0].(*ast.ExpressionStmt).Expr.(*ast.SetExpr)
	require.IsType(t, &ast.ThisExpr{}, set.Object)
	call := set.Value.(*ast.CallExpr)
	require.IsType(t, &ast.SuperExpr{}, call.Callee)
}

func TestParseCallArity(t *testing.T) {
	var args []byte
	for i := 0; i < 256; i++ {
		if i > 0 {
			args = append(args, ',')
		}
		args = append(args, '1')
	}
	src := "f(" + string(args) + ");"
	_, _, err := ParseSource("t", []byte(src))
	require.Error(t, err)
	require.Contains(t, err.Error(), "255 arguments")
}

func TestSynchronizeRecoversAfterError(t *testing.T) {
	// the first statement is broken (missing semicolon), synchronize should
	// still let the second declaration parse successfully.
	prog, err := synchronizeParse(t, `var x = 1 var y = 2;`)
	require.Error(t, err)
	require.NotEmpty(t, prog.Stmts)
}

func synchronizeParse(t *testing.T, src string) (*ast.Program, error) {
	t.Helper()
	_, prog, err := ParseSource("t", []byte(src))
	return prog, err
}
