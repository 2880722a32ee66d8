package evaluator

import "sort"

// Env is one scope in the chained-environment scoping model. Lookups
// walk parent links outward; writes follow the Bind/Assign split below.
type Env struct {
	bindings map[string]Value
	parent   *Env
}

// NewEnv creates a root environment with no parent.
func NewEnv() *Env {
	return &Env{bindings: make(map[string]Value)}
}

// Child creates a new environment whose parent is e.
func (e *Env) Child() *Env {
	return &Env{bindings: make(map[string]Value), parent: e}
}

// Lookup resolves a name by walking the scope chain from e outward.
func (e *Env) Lookup(name string) (Value, bool) {
	for env := e; env != nil; env = env.parent {
		if v, ok := env.bindings[name]; ok {
			return v, true
		}
	}
	return nil, false
}

// Bind writes a name into e itself, shadowing any outer binding.
func (e *Env) Bind(name string, v Value) {
	e.bindings[name] = v
}

// Assign mutates the innermost scope that already binds name. When no
// scope binds it, the name is bound in e.
func (e *Env) Assign(name string, v Value) {
	for env := e; env != nil; env = env.parent {
		if _, ok := env.bindings[name]; ok {
			env.bindings[name] = v
			return
		}
	}
	e.bindings[name] = v
}

// Binding is one name/value pair in a scope snapshot.
type Binding struct {
	Name  string
	Value Value
}

// Snapshot returns e's own bindings (parents excluded) sorted by name.
func (e *Env) Snapshot() []Binding {
	out := make([]Binding, 0, len(e.bindings))
	for name, v := range e.bindings {
		out = append(out, Binding{Name: name, Value: v})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
