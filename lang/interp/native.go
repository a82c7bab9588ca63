package interp

import "time"

// now is the time source of clock(), a variable so that it can be swapped
// for deterministic output.
var now = time.Now

func newGlobals() *Environment {
	env := NewEnvironment(nil)
	env.Define("clock", &Native{
		name:  "clock",
		arity: 0,
		fn: func(_ *Interpreter, _ []Value) (Value, error) {
			return Number(now().UnixMilli()), nil
		},
	})
	return env
}
