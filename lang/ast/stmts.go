package ast

import (
	"fmt"

	"github.com/mna/lox/lang/token"
)

type (
	// BlockStmt represents a `{ ... }` block of statements introducing a new
	// lexical scope.
	BlockStmt struct {
		Lbrace token.Pos
		Stmts  []Stmt
		Rbrace token.Pos
	}

	// ClassStmt represents a class declaration, optionally with a superclass.
	// Lox spells inheritance "class B > A" rather than the more common ":" or
	// "extends", a deliberate quirk kept from the language as specified.
	ClassStmt struct {
		Class      token.Pos
		Name       *Ident
		Superclass *VariableExpr // nil if the class has no superclass
		Methods    []*FunctionStmt
		End        token.Pos
	}

	// ExpressionStmt represents an expression evaluated for its side effect.
	ExpressionStmt struct {
		Expr Expr
		End  token.Pos // position of the terminating ';'
	}

	// FunctionStmt represents a function or method declaration. Methods reuse
	// this node; the parser does not distinguish them beyond where they are
	// declared.
	FunctionStmt struct {
		Fun    token.Pos
		Name   *Ident
		Params []*Ident
		Body   []Stmt
		End    token.Pos
	}

	// IfStmt represents an if/else statement.
	IfStmt struct {
		If   token.Pos
		Cond Expr
		Then Stmt
		Else Stmt // nil if there is no else clause
	}

	// PrintStmt represents a print statement.
	PrintStmt struct {
		Print token.Pos
		Expr  Expr
		End   token.Pos
	}

	// ReturnStmt represents a return statement.
	ReturnStmt struct {
		Return token.Pos
		Value  Expr // nil for a bare "return;"
		End    token.Pos
	}

	// VarStmt represents a variable declaration, optionally with an
	// initializer.
	VarStmt struct {
		Var   token.Pos
		Name  *Ident
		Value Expr // nil if uninitialized, in which case the variable is nil
		End   token.Pos
	}

	// WhileStmt represents a while loop. The parser desugars for loops into a
	// WhileStmt (wrapped in a BlockStmt when there is an initializer), so the
	// resolver and interpreter only ever deal with one loop construct.
	WhileStmt struct {
		While token.Pos
		Cond  Expr
		Body  Stmt
	}
)

func (n *BlockStmt) Format(f fmt.State, verb rune) {
	format(f, verb, n, "block", map[string]int{"stmts": len(n.Stmts)})
}
func (n *BlockStmt) Span() (start, end token.Pos) { return n.Lbrace, n.Rbrace.Advance(1) }
func (n *BlockStmt) Walk(v Visitor) {
	for _, s := range n.Stmts {
		Walk(v, s)
	}
}
func (n *BlockStmt) stmt() {}

func (n *ClassStmt) Format(f fmt.State, verb rune) {
	var inherits int
	if n.Superclass != nil {
		inherits = 1
	}
	format(f, verb, n, "class "+n.Name.Name, map[string]int{
		"inherits": inherits,
		"methods":  len(n.Methods),
	})
}
func (n *ClassStmt) Span() (start, end token.Pos) { return n.Class, n.End.Advance(1) }
func (n *ClassStmt) Walk(v Visitor) {
	Walk(v, n.Name)
	if n.Superclass != nil {
		Walk(v, n.Superclass)
	}
	for _, m := range n.Methods {
		Walk(v, m)
	}
}
func (n *ClassStmt) stmt() {}

func (n *ExpressionStmt) Format(f fmt.State, verb rune) { format(f, verb, n, "expr stmt", nil) }
func (n *ExpressionStmt) Span() (start, end token.Pos) {
	start, _ = n.Expr.Span()
	return start, n.End.Advance(1)
}
func (n *ExpressionStmt) Walk(v Visitor) { Walk(v, n.Expr) }
func (n *ExpressionStmt) stmt()          {}

func (n *FunctionStmt) Format(f fmt.State, verb rune) {
	format(f, verb, n, "fun "+n.Name.Name, map[string]int{"params": len(n.Params)})
}
func (n *FunctionStmt) Span() (start, end token.Pos) { return n.Fun, n.End.Advance(1) }
func (n *FunctionStmt) Walk(v Visitor) {
	Walk(v, n.Name)
	for _, p := range n.Params {
		Walk(v, p)
	}
	for _, s := range n.Body {
		Walk(v, s)
	}
}
func (n *FunctionStmt) stmt() {}

func (n *IfStmt) Format(f fmt.State, verb rune) { format(f, verb, n, "if", nil) }
func (n *IfStmt) Span() (start, end token.Pos) {
	if n.Else != nil {
		_, end = n.Else.Span()
	} else {
		_, end = n.Then.Span()
	}
	return n.If, end
}
func (n *IfStmt) Walk(v Visitor) {
	Walk(v, n.Cond)
	Walk(v, n.Then)
	if n.Else != nil {
		Walk(v, n.Else)
	}
}
func (n *IfStmt) stmt() {}

func (n *PrintStmt) Format(f fmt.State, verb rune) { format(f, verb, n, "print", nil) }
func (n *PrintStmt) Span() (start, end token.Pos)  { return n.Print, n.End.Advance(1) }
func (n *PrintStmt) Walk(v Visitor)                { Walk(v, n.Expr) }
func (n *PrintStmt) stmt()                         {}

func (n *ReturnStmt) Format(f fmt.State, verb rune) { format(f, verb, n, "return", nil) }
func (n *ReturnStmt) Span() (start, end token.Pos)  { return n.Return, n.End.Advance(1) }
func (n *ReturnStmt) Walk(v Visitor) {
	if n.Value != nil {
		Walk(v, n.Value)
	}
}
func (n *ReturnStmt) stmt() {}

func (n *VarStmt) Format(f fmt.State, verb rune) { format(f, verb, n, "var "+n.Name.Name, nil) }
func (n *VarStmt) Span() (start, end token.Pos)  { return n.Var, n.End.Advance(1) }
func (n *VarStmt) Walk(v Visitor) {
	Walk(v, n.Name)
	if n.Value != nil {
		Walk(v, n.Value)
	}
}
func (n *VarStmt) stmt() {}

func (n *WhileStmt) Format(f fmt.State, verb rune) { format(f, verb, n, "while", nil) }
func (n *WhileStmt) Span() (start, end token.Pos) {
	_, end = n.Body.Span()
	return n.While, end
}
func (n *WhileStmt) Walk(v Visitor) {
	Walk(v, n.Cond)
	Walk(v, n.Body)
}
func (n *WhileStmt) stmt() {}
