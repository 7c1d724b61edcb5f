// Package environment implements the environment-chain scoping model:
// a mutable binding map with an optional parent.
package environment

import "miniscript/value"

// Environment is one link in the lexical scope chain. Blocks, function
// calls, and the top-level program each get their own Environment
// parented at the scope that was active when they began.
type Environment struct {
	vars   map[string]value.Value
	parent *Environment
}

// New creates an Environment. parent is nil for the global scope.
func New(parent *Environment) *Environment {
	return &Environment{vars: make(map[string]value.Value), parent: parent}
}

// Define binds name in this environment, shadowing any binding of the
// same name in an enclosing scope. Redefining an existing local name
// simply overwrites it.
func (e *Environment) Define(name string, v value.Value) {
	e.vars[name] = v
}

// Get looks up name starting at this environment and walking outward
// through parents. The bool reports whether a binding was found at all.
func (e *Environment) Get(name string) (value.Value, bool) {
	for env := e; env != nil; env = env.parent {
		if v, ok := env.vars[name]; ok {
			return v, true
		}
	}
	return nil, false
}

// Assign updates an existing binding found anywhere in the chain,
// closest scope first, and reports whether it found one to update. It
// never creates a new binding — implicit global assignment is the
// evaluator's responsibility, applied only after Assign reports false
// all the way to the global scope.
func (e *Environment) Assign(name string, v value.Value) bool {
	for env := e; env != nil; env = env.parent {
		if _, ok := env.vars[name]; ok {
			env.vars[name] = v
			return true
		}
	}
	return false
}

// Global walks to the outermost environment in the chain. Function
// closures capture their defining Environment by reference (never by
// copy), so a nested function can still see later-assigned globals —
// late binding, not capture-by-value.
func (e *Environment) Global() *Environment {
	env := e
	for env.parent != nil {
		env = env.parent
	}
	return env
}
