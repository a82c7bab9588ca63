package ast

import (
	"fmt"

	"github.com/mna/lox/lang/token"
)

type (
	// AssignExpr represents a variable assignment, e.g. x = 1. Assignment is
	// an expression in Lox, not a statement: it evaluates to the assigned
	// value.
	AssignExpr struct {
		Name  *Ident
		Eq    token.Pos
		Value Expr
	}

	// BinaryExpr represents a binary operator expression, e.g. x + y.
	BinaryExpr struct {
		Left  Expr
		Op    token.Token
		OpPos token.Pos
		Right Expr
	}

	// CallExpr represents a function or method call, e.g. f(a, b).
	CallExpr struct {
		Callee Expr
		Args   []Expr
		Rparen token.Pos // used to report arity/runtime errors at the call site
	}

	// GetExpr represents a property access, e.g. obj.field.
	GetExpr struct {
		Object Expr
		Name   *Ident
	}

	// GroupingExpr represents a parenthesized expression.
	GroupingExpr struct {
		Lparen token.Pos
		Inner  Expr
		Rparen token.Pos
	}

	// LiteralExpr represents a number, string, boolean or nil literal.
	LiteralExpr struct {
		Start token.Pos
		Raw   string
		Value any // float64 | string | bool | nil
	}

	// LogicalExpr represents a short-circuiting "and"/"or" expression. Unlike
	// BinaryExpr, its right operand may not be evaluated.
	LogicalExpr struct {
		Left  Expr
		Op    token.Token // AND or OR
		OpPos token.Pos
		Right Expr
	}

	// SetExpr represents a property assignment, e.g. obj.field = 1.
	SetExpr struct {
		Object Expr
		Name   *Ident
		Eq     token.Pos
		Value  Expr
	}

	// SuperExpr represents a super.method reference inside a subclass method.
	SuperExpr struct {
		Start  token.Pos
		Method *Ident
	}

	// ThisExpr represents a this reference inside a method body.
	ThisExpr struct {
		Start token.Pos
	}

	// UnaryExpr represents a unary operator expression, e.g. -x or !x.
	UnaryExpr struct {
		Op    token.Token
		OpPos token.Pos
		Right Expr
	}

	// VariableExpr represents a variable reference.
	VariableExpr struct {
		Name *Ident
	}
)

func (n *AssignExpr) Format(f fmt.State, verb rune) { format(f, verb, n, "assign "+n.Name.Name, nil) }
func (n *AssignExpr) Span() (start, end token.Pos) {
	start, _ = n.Name.Span()
	_, end = n.Value.Span()
	return start, end
}
func (n *AssignExpr) Walk(v Visitor) {
	Walk(v, n.Name)
	Walk(v, n.Value)
}
func (n *AssignExpr) expr()          {}

func (n *BinaryExpr) Format(f fmt.State, verb rune) {
	format(f, verb, n, "binary "+n.Op.GoString(), nil)
}
func (n *BinaryExpr) Span() (start, end token.Pos) {
	start, _ = n.Left.Span()
	_, end = n.Right.Span()
	return start, end
}
func (n *BinaryExpr) Walk(v Visitor) {
	Walk(v, n.Left)
	Walk(v, n.Right)
}
func (n *BinaryExpr) expr() {}

func (n *CallExpr) Format(f fmt.State, verb rune) {
	format(f, verb, n, "call", map[string]int{"args": len(n.Args)})
}
func (n *CallExpr) Span() (start, end token.Pos) {
	start, _ = n.Callee.Span()
	return start, n.Rparen.Advance(1)
}
func (n *CallExpr) Walk(v Visitor) {
	Walk(v, n.Callee)
	for _, a := range n.Args {
		Walk(v, a)
	}
}
func (n *CallExpr) expr() {}

func (n *GetExpr) Format(f fmt.State, verb rune) { format(f, verb, n, "get ."+n.Name.Name, nil) }
func (n *GetExpr) Span() (start, end token.Pos) {
	start, _ = n.Object.Span()
	_, end = n.Name.Span()
	return start, end
}
func (n *GetExpr) Walk(v Visitor) {
	Walk(v, n.Object)
	Walk(v, n.Name)
}
func (n *GetExpr) expr()          {}

func (n *GroupingExpr) Format(f fmt.State, verb rune) { format(f, verb, n, "(expr)", nil) }
func (n *GroupingExpr) Span() (start, end token.Pos) {
	return n.Lparen, n.Rparen.Advance(1)
}
func (n *GroupingExpr) Walk(v Visitor) { Walk(v, n.Inner) }
func (n *GroupingExpr) expr()          {}

func (n *LiteralExpr) Format(f fmt.State, verb rune) {
	lbl := n.Raw
	if lbl == "" {
		lbl = "nil"
	}
	format(f, verb, n, "literal "+lbl, nil)
}
func (n *LiteralExpr) Span() (start, end token.Pos) {
	return n.Start, n.Start.Advance(len(n.Raw))
}
func (n *LiteralExpr) Walk(_ Visitor) {}
func (n *LiteralExpr) expr()          {}

func (n *LogicalExpr) Format(f fmt.State, verb rune) {
	format(f, verb, n, "logical "+n.Op.GoString(), nil)
}
func (n *LogicalExpr) Span() (start, end token.Pos) {
	start, _ = n.Left.Span()
	_, end = n.Right.Span()
	return start, end
}
func (n *LogicalExpr) Walk(v Visitor) {
	Walk(v, n.Left)
	Walk(v, n.Right)
}
func (n *LogicalExpr) expr() {}

func (n *SetExpr) Format(f fmt.State, verb rune) { format(f, verb, n, "set ."+n.Name.Name, nil) }
func (n *SetExpr) Span() (start, end token.Pos) {
	start, _ = n.Object.Span()
	_, end = n.Value.Span()
	return start, end
}
func (n *SetExpr) Walk(v Visitor) {
	Walk(v, n.Object)
	Walk(v, n.Name)
	Walk(v, n.Value)
}
func (n *SetExpr) expr() {}

func (n *SuperExpr) Format(f fmt.State, verb rune) {
	format(f, verb, n, "super."+n.Method.Name, nil)
}
func (n *SuperExpr) Span() (start, end token.Pos) {
	_, end = n.Method.Span()
	return n.Start, end
}
func (n *SuperExpr) Walk(v Visitor) { Walk(v, n.Method) }
func (n *SuperExpr) expr()          {}

func (n *ThisExpr) Format(f fmt.State, verb rune) { format(f, verb, n, "this", nil) }
func (n *ThisExpr) Span() (start, end token.Pos) {
	return n.Start, n.Start.Advance(len("this"))
}
func (n *ThisExpr) Walk(_ Visitor) {}
func (n *ThisExpr) expr()          {}

func (n *UnaryExpr) Format(f fmt.State, verb rune) {
	format(f, verb, n, "unary "+n.Op.GoString(), nil)
}
func (n *UnaryExpr) Span() (start, end token.Pos) {
	_, end = n.Right.Span()
	return n.OpPos, end
}
func (n *UnaryExpr) Walk(v Visitor) { Walk(v, n.Right) }
func (n *UnaryExpr) expr()          {}

func (n *VariableExpr) Format(f fmt.State, verb rune) { format(f, verb, n, "var "+n.Name.Name, nil) }
func (n *VariableExpr) Span() (start, end token.Pos)  { return n.Name.Span() }
func (n *VariableExpr) Walk(v Visitor)                { Walk(v, n.Name) }
func (n *VariableExpr) expr()                         {}
