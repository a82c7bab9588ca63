package interp

import "fmt"

// Class is a Lox class: a name, an optional superclass, and its own
// (non-inherited) methods.
type Class struct {
	name       string
	superclass *Class
	methods    map[string]*Function
}

var (
	_ Value    = (*Class)(nil)
	_ Callable = (*Class)(nil)
)

func (c *Class) String() string { return c.name }
func (c *Class) Type() string   { return "class" }
func (c *Class) Name() string   { return c.name }

// findMethod looks up name in c's own methods, then its superclass chain.
func (c *Class) findMethod(name string) (*Function, bool) {
	if m, ok := c.methods[name]; ok {
		return m, true
	}
	if c.superclass != nil {
		return c.superclass.findMethod(name)
	}
	return nil, false
}

// Arity is the arity of the class's "init" method, or 0 if it has none.
func (c *Class) Arity() int {
	if init, ok := c.findMethod("init"); ok {
		return init.Arity()
	}
	return 0
}

// Call constructs a new instance, running its "init" method (if any) against
// args, and returns the instance.
func (c *Class) Call(in *Interpreter, args []Value) (Value, error) {
	inst := &Instance{class: c, fields: make(map[string]Value)}
	if init, ok := c.findMethod("init"); ok {
		if _, err := init.Bind(inst).Call(in, args); err != nil {
			return nil, err
		}
	}
	return inst, nil
}

// Instance is an instance of a Class: its fields, plus the class it was
// constructed from (used for method lookup).
type Instance struct {
	class  *Class
	fields map[string]Value
}

var (
	_ Value       = (*Instance)(nil)
	_ HasAttrs    = (*Instance)(nil)
	_ HasSetField = (*Instance)(nil)
)

func (i *Instance) String() string { return i.class.name + " instance" }
func (i *Instance) Type() string   { return "instance" }

// GetAttr returns a field if one is set, else a method bound to i, else an
// "undefined property" error (the interpreter wraps it in a RuntimeError).
func (i *Instance) GetAttr(name string) (Value, error) {
	if v, ok := i.fields[name]; ok {
		return v, nil
	}
	if m, ok := i.class.findMethod(name); ok {
		return m.Bind(i), nil
	}
	return nil, fmt.Errorf("undefined property '%s'", name)
}

// SetAttr always succeeds: a field is created on its first assignment.
func (i *Instance) SetAttr(name string, v Value) error {
	i.fields[name] = v
	return nil
}
