package interp

import (
	"bytes"
	"context"
	"testing"

	"github.com/mna/lox/lang/ast"
	"github.com/mna/lox/lang/parser"
	"github.com/mna/lox/lang/resolver"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, src string) (string, error) {
	t.Helper()
	_, prog, err := parser.ParseSource("t", []byte(src))
	require.NoError(t, err)

	locals, err := resolver.ResolveFiles(context.Background(), []*ast.Program{prog})
	require.NoError(t, err)

	var out bytes.Buffer
	in := New(locals)
	in.Stdout = &out
	err = in.Run(context.Background(), prog)
	return out.String(), err
}

func TestArithmeticPrecedence(t *testing.T) {
	out, err := run(t, `print 1 + 2 * 3;`)
	require.NoError(t, err)
	require.Equal(t, "7\n", out)
}

func TestStringConcatenation(t *testing.T) {
	out, err := run(t, `print "foo" + "bar";`)
	require.NoError(t, err)
	require.Equal(t, "foobar\n", out)
}

func TestClosureCapturesState(t *testing.T) {
	out, err := run(t, `
fun makeCounter() {
	var count = 0;
	fun increment() {
		count = count + 1;
		return count;
	}
	return increment;
}

var counter = makeCounter();
print counter();
print counter();
print counter();
`)
	require.NoError(t, err)
	require.Equal(t, "1\n2\n3\n", out)
}

func TestLexicalScopingIndependentOfCallSite(t *testing.T) {
	// "a" always prints the global, because the closure captured at
	// definition time, not at call time, is what "show" resolves against.
	out, err := run(t, `
var a = "global";
{
	fun show() {
		print a;
	}
	fun runIt(f) {
		var a = "local";
		f();
	}
	runIt(show);
}
`)
	require.NoError(t, err)
	require.Equal(t, "global\n", out)
}

func TestClassInitAndMethod(t *testing.T) {
	out, err := run(t, `
class Greeter {
	init(name) {
		this.name = name;
	}
	greet() {
		print "hello " + this.name;
	}
}

var g = Greeter("world");
g.greet();
`)
	require.NoError(t, err)
	require.Equal(t, "hello world\n", out)
}

func TestInheritanceWithSuper(t *testing.T) {
	out, err := run(t, `
class Animal {
	speak() {
		print "...";
	}
}

class Dog > Animal {
	speak() {
		super.speak();
		print "woof";
	}
}

Dog().speak();
`)
	require.NoError(t, err)
	require.Equal(t, "...\nwoof\n", out)
}

func TestRuntimeErrorOnBadOperands(t *testing.T) {
	_, err := run(t, `print 1 + "a";`)
	require.Error(t, err)
	require.Contains(t, err.Error(), "numbers or two strings")
}

func TestDivisionByZero(t *testing.T) {
	_, err := run(t, `print 1 / 0;`)
	require.Error(t, err)
	require.Contains(t, err.Error(), "division by zero")
}

func TestShortCircuitOr(t *testing.T) {
	// the right side, a call, must never run: if it did it would print.
	out, err := run(t, `
fun boom() {
	print "should not print";
	return true;
}
print true or boom();
`)
	require.NoError(t, err)
	require.Equal(t, "true\n", out)
}

func TestShortCircuitAnd(t *testing.T) {
	out, err := run(t, `
fun boom() {
	print "should not print";
	return true;
}
print false and boom();
`)
	require.NoError(t, err)
	require.Equal(t, "false\n", out)
}

func TestArityMismatch(t *testing.T) {
	_, err := run(t, `
fun f(a, b) { return a + b; }
f(1);
`)
	require.Error(t, err)
	require.Contains(t, err.Error(), "expected 2 arguments but got 1")
}

func TestUndefinedVariable(t *testing.T) {
	_, err := run(t, `print nope;`)
	require.Error(t, err)
	require.Contains(t, err.Error(), "undefined variable")
}

func TestEqualityReflexivity(t *testing.T) {
	out, err := run(t, `
print 1 == 1;
print nil == nil;
print nil == 0;
`)
	require.NoError(t, err)
	require.Equal(t, "true\ntrue\nfalse\n", out)
}

func TestForLoopDesugaring(t *testing.T) {
	out, err := run(t, `
for (var i = 0; i < 3; i = i + 1) {
	print i;
}
`)
	require.NoError(t, err)
	require.Equal(t, "0\n1\n2\n", out)
}

func TestInitializerReturnIgnoresExplicitBareReturn(t *testing.T) {
	out, err := run(t, `
class Point {
	init(x) {
		if (x < 0) return;
		this.x = x;
	}
}

var p = Point(5);
print p.x;
print Point(-1);
`)
	require.NoError(t, err)
	require.Equal(t, "5\nPoint instance\n", out)
}

func TestFunctionStringification(t *testing.T) {
	out, err := run(t, `
fun f() {}
print f;
`)
	require.NoError(t, err)
	require.Equal(t, "<fn f>\n", out)
}

func TestInstanceStringification(t *testing.T) {
	out, err := run(t, `
class Foo {}
print Foo();
`)
	require.NoError(t, err)
	require.Equal(t, "Foo instance\n", out)
}
