package interp

import (
	"github.com/mna/lox/lang/ast"
	"github.com/mna/lox/lang/token"
)

func (in *Interpreter) evalExpr(expr ast.Expr) (Value, error) {
	switch e := expr.(type) {
	case *ast.AssignExpr:
		v, err := in.evalExpr(e.Value)
		if err != nil {
			return nil, err
		}
		if d, ok := in.locals[e]; ok {
			in.env.AssignAt(d, e.Name.Name, v)
		} else if !in.globals.Assign(e.Name.Name, v) {
			return nil, runtimeErrorf(e.Name.Pos, "undefined variable '%s'", e.Name.Name)
		}
		return v, nil

	case *ast.BinaryExpr:
		return in.evalBinary(e)

	case *ast.CallExpr:
		return in.evalCall(e)

	case *ast.GetExpr:
		obj, err := in.evalExpr(e.Object)
		if err != nil {
			return nil, err
		}
		has, ok := obj.(HasAttrs)
		if !ok {
			return nil, runtimeErrorf(e.Name.Pos, "only instances have properties")
		}
		v, err := has.GetAttr(e.Name.Name)
		if err != nil {
			return nil, runtimeErrorf(e.Name.Pos, "%s", err)
		}
		return v, nil

	case *ast.GroupingExpr:
		return in.evalExpr(e.Inner)

	case *ast.LiteralExpr:
		return literalValue(e), nil

	case *ast.LogicalExpr:
		left, err := in.evalExpr(e.Left)
		if err != nil {
			return nil, err
		}
		truthy := Truthy(left)
		if e.Op == token.OR {
			if truthy {
				return left, nil
			}
			return in.evalExpr(e.Right)
		}
		// AND
		if !truthy {
			return left, nil
		}
		return in.evalExpr(e.Right)

	case *ast.SetExpr:
		obj, err := in.evalExpr(e.Object)
		if err != nil {
			return nil, err
		}
		has, ok := obj.(HasSetField)
		if !ok {
			return nil, runtimeErrorf(e.Name.Pos, "only instances have fields")
		}
		v, err := in.evalExpr(e.Value)
		if err != nil {
			return nil, err
		}
		if err := has.SetAttr(e.Name.Name, v); err != nil {
			return nil, runtimeErrorf(e.Name.Pos, "%s", err)
		}
		return v, nil

	case *ast.SuperExpr:
		return in.evalSuper(e)

	case *ast.ThisExpr:
		return in.lookupVariable(e, "this", e.Start)

	case *ast.UnaryExpr:
		return in.evalUnary(e)

	case *ast.VariableExpr:
		return in.lookupVariable(e, e.Name.Name, e.Name.Pos)

	default:
		panic("interp: unhandled expression type")
	}
}

func literalValue(e *ast.LiteralExpr) Value {
	switch v := e.Value.(type) {
	case float64:
		return Number(v)
	case string:
		return String(v)
	case bool:
		return Bool(v)
	default:
		return Nil{}
	}
}

// lookupVariable resolves a name (either a variable reference or "this")
// through the locals distance map, keyed by the expression node itself, or
// falls back to the global scope.
func (in *Interpreter) lookupVariable(expr ast.Expr, name string, pos token.Pos) (Value, error) {
	if d, ok := in.locals[expr]; ok {
		return in.env.GetAt(d, name), nil
	}
	if v, ok := in.globals.Get(name); ok {
		return v, nil
	}
	return nil, runtimeErrorf(pos, "undefined variable '%s'", name)
}

func (in *Interpreter) evalUnary(e *ast.UnaryExpr) (Value, error) {
	right, err := in.evalExpr(e.Right)
	if err != nil {
		return nil, err
	}
	switch e.Op {
	case token.MINUS:
		n, ok := right.(Number)
		if !ok {
			return nil, runtimeErrorf(e.OpPos, "operand must be a number")
		}
		return -n, nil
	case token.BANG:
		return Bool(!Truthy(right)), nil
	default:
		panic("interp: unhandled unary operator")
	}
}

func (in *Interpreter) evalBinary(e *ast.BinaryExpr) (Value, error) {
	left, err := in.evalExpr(e.Left)
	if err != nil {
		return nil, err
	}
	right, err := in.evalExpr(e.Right)
	if err != nil {
		return nil, err
	}

	switch e.Op {
	case token.PLUS:
		if ln, ok := left.(Number); ok {
			if rn, ok := right.(Number); ok {
				return ln + rn, nil
			}
		}
		if ls, ok := left.(String); ok {
			if rs, ok := right.(String); ok {
				return ls + rs, nil
			}
		}
		return nil, runtimeErrorf(e.OpPos, "operands must be two numbers or two strings")
	case token.MINUS, token.STAR, token.SLASH, token.GT, token.GE, token.LT, token.LE:
		ln, ok := left.(Number)
		if !ok {
			return nil, runtimeErrorf(e.OpPos, "operands must be numbers")
		}
		rn, ok := right.(Number)
		if !ok {
			return nil, runtimeErrorf(e.OpPos, "operands must be numbers")
		}
		switch e.Op {
		case token.MINUS:
			return ln - rn, nil
		case token.STAR:
			return ln * rn, nil
		case token.SLASH:
			if rn == 0 {
				return nil, runtimeErrorf(e.OpPos, "division by zero")
			}
			return ln / rn, nil
		case token.GT:
			return Bool(ln > rn), nil
		case token.GE:
			return Bool(ln >= rn), nil
		case token.LT:
			return Bool(ln < rn), nil
		default: // LE
			return Bool(ln <= rn), nil
		}
	case token.EQ_EQ:
		return Bool(Equal(left, right)), nil
	case token.BANG_EQ:
		return Bool(!Equal(left, right)), nil
	default:
		panic("interp: unhandled binary operator")
	}
}

func (in *Interpreter) evalCall(e *ast.CallExpr) (Value, error) {
	callee, err := in.evalExpr(e.Callee)
	if err != nil {
		return nil, err
	}

	args := make([]Value, len(e.Args))
	for i, a := range e.Args {
		v, err := in.evalExpr(a)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}

	fn, ok := callee.(Callable)
	if !ok {
		return nil, runtimeErrorf(e.Rparen, "can only call functions and classes")
	}
	if len(args) != fn.Arity() {
		return nil, runtimeErrorf(e.Rparen, "expected %d arguments but got %d", fn.Arity(), len(args))
	}
	return fn.Call(in, args)
}

func (in *Interpreter) evalSuper(e *ast.SuperExpr) (Value, error) {
	d, ok := in.locals[e]
	if !ok {
		// the resolver rejects "super" outside a subclass method, so this is
		// unreachable for a program that passed resolution.
		return nil, runtimeErrorf(e.Start, "can't use 'super' here")
	}
	super, _ := in.env.GetAt(d, "super").(*Class)
	this, _ := in.env.GetAt(d-1, "this").(*Instance)

	method, ok := super.findMethod(e.Method.Name)
	if !ok {
		return nil, runtimeErrorf(e.Method.Pos, "undefined property '%s'", e.Method.Name)
	}
	return method.Bind(this), nil
}
