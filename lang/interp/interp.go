package interp

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/mna/lox/lang/ast"
	"github.com/mna/lox/lang/resolver"
	"github.com/mna/lox/lang/token"
)

// RuntimeError is a failure raised while executing a resolved program: a
// type mismatch, an arity mismatch, an undefined variable or property,
// division by zero, calling a non-callable, or similar. It carries the
// source position it was raised at so the driver can report "[line N]
// message", matching how scan/parse/resolve errors are reported.
type RuntimeError struct {
	Pos     token.Pos
	Message string
}

func (e *RuntimeError) Error() string {
	line, _ := e.Pos.LineCol()
	if line == 0 {
		return e.Message
	}
	return fmt.Sprintf("[line %d] %s", line, e.Message)
}

func runtimeErrorf(pos token.Pos, format string, args ...any) *RuntimeError {
	return &RuntimeError{Pos: pos, Message: fmt.Sprintf(format, args...)}
}

// Interpreter executes resolved *ast.Program values. It is not safe for
// concurrent use: Lox is single-threaded by design.
type Interpreter struct {
	// Stdout receives the output of "print" statements. Stderr is not written
	// by the Interpreter itself (runtime errors are returned, not printed),
	// but is carried alongside Stdout for callers that want the pair,
	// matching the teacher's Thread. Both default to os.Stdout/os.Stderr.
	Stdout io.Writer
	Stderr io.Writer

	globals *Environment
	env     *Environment
	locals  resolver.Locals
}

// New returns an Interpreter with a fresh global environment seeded with
// clock(), ready to run one or more programs against the given locals map
// (typically produced by resolver.ResolveFiles). locals may be nil; a REPL
// session starts that way and merges each line's map in with AddLocals.
func New(locals resolver.Locals) *Interpreter {
	globals := newGlobals()
	return &Interpreter{
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		globals: globals,
		env:     globals,
		locals:  locals,
	}
}

// AddLocals merges l into the interpreter's distance map, so a REPL session
// can resolve each line independently (against distinct AST node pointers)
// while accumulating into one Interpreter across the whole session.
func (in *Interpreter) AddLocals(l resolver.Locals) {
	if in.locals == nil {
		in.locals = make(resolver.Locals, len(l))
	}
	for k, v := range l {
		in.locals[k] = v
	}
}

func (in *Interpreter) stdout() io.Writer {
	if in.Stdout == nil {
		return os.Stdout
	}
	return in.Stdout
}

// Run executes every statement of prog in the global environment, stopping
// at the first runtime error. ctx is polled once per top-level statement, as
// no Lox expression can suspend mid-evaluation.
func (in *Interpreter) Run(ctx context.Context, prog *ast.Program) error {
	for _, stmt := range prog.Stmts {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := in.executeStmt(stmt); err != nil {
			return err
		}
	}
	return nil
}

// executeBlock runs stmts in env, restoring the interpreter's previous
// environment on every exit path (normal, return, or error) exactly as a
// Block statement's scope is detached on block exit.
func (in *Interpreter) executeBlock(stmts []ast.Stmt, env *Environment) error {
	previous := in.env
	in.env = env
	defer func() { in.env = previous }()

	for _, stmt := range stmts {
		if err := in.executeStmt(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (in *Interpreter) executeStmt(stmt ast.Stmt) error {
	switch s := stmt.(type) {
	case *ast.BlockStmt:
		return in.executeBlock(s.Stmts, NewEnvironment(in.env))

	case *ast.ClassStmt:
		return in.executeClassStmt(s)

	case *ast.ExpressionStmt:
		_, err := in.evalExpr(s.Expr)
		return err

	case *ast.FunctionStmt:
		fn := &Function{decl: s, closure: in.env}
		in.env.Define(s.Name.Name, fn)
		return nil

	case *ast.IfStmt:
		cond, err := in.evalExpr(s.Cond)
		if err != nil {
			return err
		}
		if Truthy(cond) {
			return in.executeStmt(s.Then)
		}
		if s.Else != nil {
			return in.executeStmt(s.Else)
		}
		return nil

	case *ast.PrintStmt:
		v, err := in.evalExpr(s.Expr)
		if err != nil {
			return err
		}
		fmt.Fprintln(in.stdout(), v.String())
		return nil

	case *ast.ReturnStmt:
		var v Value = Nil{}
		if s.Value != nil {
			val, err := in.evalExpr(s.Value)
			if err != nil {
				return err
			}
			v = val
		}
		return returnSignal{value: v}

	case *ast.VarStmt:
		var v Value = Nil{}
		if s.Value != nil {
			val, err := in.evalExpr(s.Value)
			if err != nil {
				return err
			}
			v = val
		}
		in.env.Define(s.Name.Name, v)
		return nil

	case *ast.WhileStmt:
		for {
			cond, err := in.evalExpr(s.Cond)
			if err != nil {
				return err
			}
			if !Truthy(cond) {
				return nil
			}
			if err := in.executeStmt(s.Body); err != nil {
				return err
			}
		}

	default:
		panic(fmt.Sprintf("interp: unhandled statement type %T", stmt))
	}
}

func (in *Interpreter) executeClassStmt(s *ast.ClassStmt) error {
	var super *Class
	if s.Superclass != nil {
		v, err := in.evalExpr(s.Superclass)
		if err != nil {
			return err
		}
		sc, ok := v.(*Class)
		if !ok {
			return runtimeErrorf(s.Superclass.Name.Pos, "superclass must be a class")
		}
		super = sc
	}

	in.env.Define(s.Name.Name, Nil{})

	env := in.env
	if super != nil {
		env = NewEnvironment(in.env)
		env.Define("super", super)
	}

	methods := make(map[string]*Function, len(s.Methods))
	for _, m := range s.Methods {
		methods[m.Name.Name] = &Function{
			decl:          m,
			closure:       env,
			isInitializer: m.Name.Name == "init",
		}
	}

	class := &Class{name: s.Name.Name, superclass: super, methods: methods}
	in.env.Assign(s.Name.Name, class)
	return nil
}
