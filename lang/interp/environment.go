package interp

import (
	"fmt"

	"github.com/dolthub/swiss"
)

// Environment is a single lexical scope: a table of names to values, linked
// to the enclosing scope it was opened in. The global scope has a nil
// enclosing.
type Environment struct {
	enclosing *Environment
	values    *swiss.Map[string, Value]
}

// NewEnvironment returns a scope enclosed by parent (nil for the global
// scope).
func NewEnvironment(parent *Environment) *Environment {
	return &Environment{enclosing: parent, values: swiss.NewMap[string, Value](8)}
}

// Define binds name to v in this scope, shadowing any binding of the same
// name in an enclosing scope. Redefining a name already bound in this same
// scope (e.g. a second top-level "var x") simply replaces it.
func (e *Environment) Define(name string, v Value) {
	e.values.Put(name, v)
}

// Get looks up name, walking the enclosing chain, and reports whether it was
// found.
func (e *Environment) Get(name string) (Value, bool) {
	for env := e; env != nil; env = env.enclosing {
		if v, ok := env.values.Get(name); ok {
			return v, true
		}
	}
	return nil, false
}

// Assign rebinds an already-declared name, walking the enclosing chain, and
// reports whether a binding was found to assign to.
func (e *Environment) Assign(name string, v Value) bool {
	for env := e; env != nil; env = env.enclosing {
		if _, ok := env.values.Get(name); ok {
			env.values.Put(name, v)
			return true
		}
	}
	return false
}

// ancestor walks exactly distance scopes up from e.
func (e *Environment) ancestor(distance int) *Environment {
	env := e
	for i := 0; i < distance; i++ {
		env = env.enclosing
	}
	return env
}

// GetAt looks up name in the scope exactly distance hops up from e. The
// resolver guarantees the name is bound there directly, so unlike the
// lenient lookup in the language this was ported from (which falls back to
// outer scopes when a zero-distance lookup misses locally), this does a
// single non-fallback lookup: the distance it was handed is trusted.
func (e *Environment) GetAt(distance int, name string) Value {
	env := e.ancestor(distance)
	v, ok := env.values.Get(name)
	if !ok {
		panic(fmt.Sprintf("interp: resolver recorded distance %d for %q but it is unbound there", distance, name))
	}
	return v
}

// AssignAt is GetAt's assignment counterpart: it writes name into the scope
// exactly distance hops up from e. Unlike GetAt it does not check that name
// is already bound there.
func (e *Environment) AssignAt(distance int, name string, v Value) {
	env := e.ancestor(distance)
	env.values.Put(name, v)
}
