// Package resolver implements the static pass that runs between parsing and
// evaluation: it walks the AST once to bind every variable reference to the
// scope it belongs to, so the interpreter never has to search the
// environment chain at call time.
//
// For each expression that reads or assigns a variable (Variable, Assign,
// This, Super), the resolver records its lexical distance - the number of
// enclosing environments to walk, 0 meaning the innermost - in a Locals map
// keyed by the expression node itself. An expression absent from the map is
// resolved at the global scope.
package resolver

import (
	"context"

	gotoken "go/token"

	"github.com/mna/lox/lang/ast"
	"github.com/mna/lox/lang/scanner"
	"github.com/mna/lox/lang/token"
)

// FunctionType tracks what kind of function body the resolver is currently
// inside, to validate "return" and the implicit return value of "init".
type FunctionType int

// List of function types.
const (
	FuncNone FunctionType = iota
	FuncFunction
	FuncInitializer
	FuncMethod
)

// ClassType tracks whether the resolver is currently inside a class body,
// and whether that class has a superclass, to validate "this" and "super".
type ClassType int

// List of class types.
const (
	ClassNone ClassType = iota
	ClassClass
	ClassSubClass
)

// Locals maps a variable-reference expression to the number of enclosing
// scopes between it and the scope that declares the variable it refers to.
// Expressions not present in the map refer to a global.
type Locals map[ast.Expr]int

// ResolveFiles resolves each of the given parsed programs and returns the
// combined Locals table. The returned error, if non-nil, is guaranteed to be
// a scanner.ErrorList; partial results (for programs that resolved cleanly)
// are still usable.
func ResolveFiles(ctx context.Context, progs []*ast.Program) (Locals, error) {
	var r resolver
	r.locals = make(Locals)

	for _, prog := range progs {
		if ctx.Err() != nil {
			break
		}
		r.fileName = prog.Name
		r.resolveStmts(prog.Stmts)
	}
	r.errors.Sort()
	return r.locals, r.errors.Err()
}

type scope map[string]bool

type resolver struct {
	fileName string
	errors   scanner.ErrorList
	locals   Locals

	scopes          []scope
	currentFunction FunctionType
	currentClass    ClassType
}

func (r *resolver) error(pos token.Pos, msg string) {
	line, col := pos.LineCol()
	r.errors.Add(gotoken.Position{Filename: r.fileName, Line: line, Column: col}, msg)
}

func (r *resolver) beginScope() { r.scopes = append(r.scopes, make(scope)) }
func (r *resolver) endScope()   { r.scopes = r.scopes[:len(r.scopes)-1] }

func (r *resolver) declare(name *ast.Ident) {
	if len(r.scopes) == 0 {
		return
	}
	sc := r.scopes[len(r.scopes)-1]
	if _, ok := sc[name.Name]; ok {
		r.error(name.Pos, "already a variable with this name in this scope")
	}
	sc[name.Name] = false
}

func (r *resolver) define(name *ast.Ident) {
	if len(r.scopes) == 0 {
		return
	}
	r.scopes[len(r.scopes)-1][name.Name] = true
}

// resolveLocal records the distance between expr and the scope, if any,
// that declares name - searching from the innermost scope outward.
func (r *resolver) resolveLocal(expr ast.Expr, name string) {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if _, ok := r.scopes[i][name]; ok {
			r.locals[expr] = len(r.scopes) - 1 - i
			return
		}
	}
	// not found in any scope: a global, resolved dynamically at run time.
}

func (r *resolver) resolveFunction(params []*ast.Ident, body []ast.Stmt, typ FunctionType) {
	enclosing := r.currentFunction
	r.currentFunction = typ

	r.beginScope()
	for _, p := range params {
		r.declare(p)
		r.define(p)
	}
	r.resolveStmts(body)
	r.endScope()

	r.currentFunction = enclosing
}

func (r *resolver) resolveStmts(stmts []ast.Stmt) {
	for _, s := range stmts {
		r.resolveStmt(s)
	}
}

func (r *resolver) resolveStmt(stmt ast.Stmt) {
	switch s := stmt.(type) {
	case *ast.BlockStmt:
		r.beginScope()
		r.resolveStmts(s.Stmts)
		r.endScope()

	case *ast.ClassStmt:
		enclosingClass := r.currentClass
		r.currentClass = ClassClass

		r.declare(s.Name)
		r.define(s.Name)

		if s.Superclass != nil {
			if s.Superclass.Name.Name == s.Name.Name {
				r.error(s.Superclass.Name.Pos, "a class can't inherit from itself")
			} else {
				r.currentClass = ClassSubClass
				r.resolveExpr(s.Superclass)

				r.beginScope()
				r.scopes[len(r.scopes)-1]["super"] = true
			}
		}

		r.beginScope()
		r.scopes[len(r.scopes)-1]["this"] = true

		for _, m := range s.Methods {
			typ := FuncMethod
			if m.Name.Name == "init" {
				typ = FuncInitializer
			}
			r.resolveFunction(m.Params, m.Body, typ)
		}

		r.endScope()
		if s.Superclass != nil {
			r.endScope()
		}
		r.currentClass = enclosingClass

	case *ast.ExpressionStmt:
		r.resolveExpr(s.Expr)

	case *ast.FunctionStmt:
		r.declare(s.Name)
		r.define(s.Name)
		r.resolveFunction(s.Params, s.Body, FuncFunction)

	case *ast.IfStmt:
		r.resolveExpr(s.Cond)
		r.resolveStmt(s.Then)
		if s.Else != nil {
			r.resolveStmt(s.Else)
		}

	case *ast.PrintStmt:
		r.resolveExpr(s.Expr)

	case *ast.ReturnStmt:
		if r.currentFunction == FuncNone {
			r.error(s.Return, "can't return from top-level code")
		}
		if s.Value != nil {
			if r.currentFunction == FuncInitializer {
				r.error(s.Return, "can't return a value from an initializer")
			}
			r.resolveExpr(s.Value)
		}

	case *ast.VarStmt:
		r.declare(s.Name)
		if s.Value != nil {
			r.resolveExpr(s.Value)
		}
		r.define(s.Name)

	case *ast.WhileStmt:
		r.resolveExpr(s.Cond)
		r.resolveStmt(s.Body)
	}
}

func (r *resolver) resolveExpr(expr ast.Expr) {
	switch e := expr.(type) {
	case *ast.AssignExpr:
		r.resolveExpr(e.Value)
		r.resolveLocal(e, e.Name.Name)

	case *ast.BinaryExpr:
		r.resolveExpr(e.Left)
		r.resolveExpr(e.Right)

	case *ast.CallExpr:
		r.resolveExpr(e.Callee)
		for _, a := range e.Args {
			r.resolveExpr(a)
		}

	case *ast.GetExpr:
		r.resolveExpr(e.Object)

	case *ast.GroupingExpr:
		r.resolveExpr(e.Inner)

	case *ast.LiteralExpr:
		// no identifiers to resolve

	case *ast.LogicalExpr:
		r.resolveExpr(e.Left)
		r.resolveExpr(e.Right)

	case *ast.SetExpr:
		r.resolveExpr(e.Value)
		r.resolveExpr(e.Object)

	case *ast.SuperExpr:
		if r.currentClass == ClassNone {
			r.error(e.Start, "can't use 'super' outside of a class")
		} else if r.currentClass != ClassSubClass {
			r.error(e.Start, "can't use 'super' in a class with no superclass")
		}
		r.resolveLocal(e, "super")

	case *ast.ThisExpr:
		if r.currentClass == ClassNone {
			r.error(e.Start, "can't use 'this' outside of a class")
		}
		r.resolveLocal(e, "this")

	case *ast.UnaryExpr:
		r.resolveExpr(e.Right)

	case *ast.VariableExpr:
		if len(r.scopes) > 0 {
			if defined, ok := r.scopes[len(r.scopes)-1][e.Name.Name]; ok && !defined {
				r.error(e.Name.Pos, "can't read local variable in its own initializer")
			}
		}
		r.resolveLocal(e, e.Name.Name)
	}
}
