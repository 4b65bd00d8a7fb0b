package eval

import "skit/types"

// Environment manages variable bindings with lexical scoping. Lookup walks
// the parent chain outward; Define always inserts in the innermost scope.
type Environment struct {
	vars   map[string]types.Value
	parent *Environment
}

// NewEnvironment creates a root environment with no parent
func NewEnvironment() *Environment {
	return &Environment{vars: make(map[string]types.Value)}
}

// NewEnclosed creates a child scope of parent. The parent link is non-owning;
// the child's lifetime is bounded by its caller.
func NewEnclosed(parent *Environment) *Environment {
	return &Environment{vars: make(map[string]types.Value), parent: parent}
}

// Get looks up a variable, walking parent scopes
func (e *Environment) Get(name string) (types.Value, bool) {
	for env := e; env != nil; env = env.parent {
		if val, ok := env.vars[name]; ok {
			return val, true
		}
	}
	return nil, false
}

// GetLocal looks up a variable in this scope only
func (e *Environment) GetLocal(name string) (types.Value, bool) {
	val, ok := e.vars[name]
	return val, ok
}

// Define creates or replaces a variable in the innermost scope
func (e *Environment) Define(name string, val types.Value) {
	e.vars[name] = val
}

// Set assigns to an existing variable: it walks the chain and mutates the
// first scope that already defines the name. Returns false if the name is
// undefined everywhere; the caller surfaces that as an UndefinedError.
func (e *Environment) Set(name string, val types.Value) bool {
	for env := e; env != nil; env = env.parent {
		if _, ok := env.vars[name]; ok {
			env.vars[name] = val
			return true
		}
	}
	return false
}

var _ types.Scope = (*Environment)(nil)
