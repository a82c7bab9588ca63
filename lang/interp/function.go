package interp

import (
	"fmt"

	"github.com/mna/lox/lang/ast"
)

// Function is a user-defined function or method: the AST of its declaration
// plus the environment it closes over.
type Function struct {
	decl          *ast.FunctionStmt
	closure       *Environment
	isInitializer bool
}

var (
	_ Value    = (*Function)(nil)
	_ Callable = (*Function)(nil)
)

func (f *Function) String() string { return "<fn " + f.decl.Name.Name + ">" }
func (f *Function) Type() string   { return "function" }
func (f *Function) Name() string   { return f.decl.Name.Name }
func (f *Function) Arity() int     { return len(f.decl.Params) }

// Bind returns a copy of f whose closure additionally binds "this" to inst.
// It is recomputed on every property access rather than cached, so that
// mutating a method's definition (there is no such operation in Lox, but
// nothing relies on identity of the bound method either) never matters.
func (f *Function) Bind(inst *Instance) *Function {
	env := NewEnvironment(f.closure)
	env.Define("this", inst)
	return &Function{decl: f.decl, closure: env, isInitializer: f.isInitializer}
}

// Call executes the function body in a fresh environment enclosed by its
// closure, with parameters bound to args.
func (f *Function) Call(in *Interpreter, args []Value) (Value, error) {
	env := NewEnvironment(f.closure)
	for i, p := range f.decl.Params {
		env.Define(p.Name, args[i])
	}

	err := in.executeBlock(f.decl.Body, env)
	if ret, ok := err.(returnSignal); ok {
		if f.isInitializer {
			return f.closure.GetAt(0, "this"), nil
		}
		return ret.value, nil
	}
	if err != nil {
		return nil, err
	}
	if f.isInitializer {
		return f.closure.GetAt(0, "this"), nil
	}
	return Nil{}, nil
}

// returnSignal is the non-error control-flow value that unwinds a function
// call on "return". It implements error so it can travel the same channel
// as a genuine runtime error from executeBlock/executeStmt. Function.Call
// intercepts it; Interpreter.Run does not, and it never reaches Run for a
// resolved program because the resolver rejects "return" outside a function.
type returnSignal struct {
	value Value
}

func (returnSignal) Error() string { return "return outside of a function call" }

// Native wraps a Go function as a zero-or-more-arity Callable, the way the
// language's single builtin (clock) is registered in globals.
type Native struct {
	name  string
	arity int
	fn    func(in *Interpreter, args []Value) (Value, error)
}

var (
	_ Value    = (*Native)(nil)
	_ Callable = (*Native)(nil)
)

func (n *Native) String() string { return fmt.Sprintf("<native fn %s>", n.name) }
func (n *Native) Type() string   { return "function" }
func (n *Native) Name() string   { return n.name }
func (n *Native) Arity() int     { return n.arity }
func (n *Native) Call(in *Interpreter, args []Value) (Value, error) {
	return n.fn(in, args)
}
