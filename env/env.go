// Package env implements the scope chain the interpreter evaluates in.
package env

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/takoeight0821/q/ast"
)

// ErrScopeUnderflow is returned when popping the root scope.
var ErrScopeUnderflow = errors.New("scope underflow")

type UndefinedSymbolError struct {
	Name ast.Name
}

func (e *UndefinedSymbolError) Error() string {
	return fmt.Sprintf("undefined symbol %s", e.Name)
}

const root = -1

type scope struct {
	parent   int
	bindings map[ast.Name]ast.Node
}

// Environment is a chain of scopes stored in an arena.
// Scopes refer to their parent by index; the root has no parent.
type Environment struct {
	scopes  []scope
	current int
}

func New() *Environment {
	return &Environment{
		scopes:  []scope{{parent: root, bindings: make(map[ast.Name]ast.Node)}},
		current: 0,
	}
}

func (env *Environment) String() string {
	var b strings.Builder
	for i := env.current; i != root; i = env.scopes[i].parent {
		if i != env.current {
			b.WriteString("\n\t&")
		}
		b.WriteString("{")
		for _, name := range slices.Sorted(maps.Keys(env.scopes[i].bindings)) {
			fmt.Fprintf(&b, " %s:%v", name, env.scopes[i].bindings[name])
		}
		b.WriteString(" }")
	}
	return b.String()
}

// Bind binds name in the innermost scope, replacing any binding it already has there.
func (env *Environment) Bind(name ast.Name, value ast.Node) {
	env.scopes[env.current].bindings[name] = value
}

// Lookup searches from the innermost scope outwards.
func (env *Environment) Lookup(name ast.Name) (ast.Node, error) {
	for i := env.current; i != root; i = env.scopes[i].parent {
		if v, ok := env.scopes[i].bindings[name]; ok {
			return v, nil
		}
	}
	return nil, &UndefinedSymbolError{Name: name}
}

// Local returns the binding of name in the innermost scope only.
func (env *Environment) Local(name ast.Name) (ast.Node, bool) {
	v, ok := env.scopes[env.current].bindings[name]
	return v, ok
}

// Unbind removes name from the innermost scope. Outer bindings become visible again.
func (env *Environment) Unbind(name ast.Name) {
	delete(env.scopes[env.current].bindings, name)
}

func (env *Environment) PushScope() {
	env.scopes = append(env.scopes, scope{parent: env.current, bindings: make(map[ast.Name]ast.Node)})
	env.current = len(env.scopes) - 1
}

// PopScope discards the innermost scope and all of its bindings.
func (env *Environment) PopScope() error {
	parent := env.scopes[env.current].parent
	if parent == root {
		return ErrScopeUnderflow
	}
	clear(env.scopes[env.current].bindings)
	env.scopes = env.scopes[:env.current]
	env.current = parent
	return nil
}

// Depth returns the number of scopes in the chain, counting the root.
func (env *Environment) Depth() int {
	depth := 0
	for i := env.current; i != root; i = env.scopes[i].parent {
		depth++
	}
	return depth
}

// Names returns every visible name, sorted.
func (env *Environment) Names() []string {
	seen := make(map[string]struct{})
	for i := env.current; i != root; i = env.scopes[i].parent {
		for name := range env.scopes[i].bindings {
			seen[string(name)] = struct{}{}
		}
	}
	return slices.Sorted(maps.Keys(seen))
}
