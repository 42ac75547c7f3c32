// Package nameresolve checks which names a module refers to without running it.
// Functions see their caller's bindings at run time, so everything it reports
// is a warning rather than an error.
package nameresolve

import (
	"fmt"

	"github.com/takoeight0821/q/ast"
	"github.com/takoeight0821/q/diagnostic"
	"github.com/takoeight0821/q/token"
	"github.com/takoeight0821/q/utils"
)

type Resolver struct {
	builtins map[ast.Name]struct{}
	env      *env
	warnings []diagnostic.Diagnostic
}

// NewResolver returns a Resolver. Calls to any of builtins are always resolved.
func NewResolver(builtins ...string) *Resolver {
	r := &Resolver{builtins: make(map[ast.Name]struct{})}
	for _, name := range builtins {
		r.builtins[ast.Name(name)] = struct{}{}
	}
	return r
}

type env struct {
	parent *env
	table  map[ast.Name]token.Token
}

func newEnv(parent *env) *env {
	return &env{
		parent: parent,
		table:  make(map[ast.Name]token.Token),
	}
}

func (e *env) lookup(name ast.Name) (token.Token, bool) {
	if def, ok := e.table[name]; ok {
		return def, true
	}
	if e.parent != nil {
		return e.parent.lookup(name)
	}
	return token.Token{}, false
}

// Resolve returns the warnings for module in source order.
func (r *Resolver) Resolve(module *ast.Module) []diagnostic.Diagnostic {
	r.env = newEnv(nil)
	r.warnings = nil

	// Register top-level declarations.
	for _, decl := range module.Decls() {
		r.define(decl.Name)
	}
	for _, decl := range module.Decls() {
		r.solve(decl.Value)
	}

	return r.warnings
}

func (r *Resolver) define(name token.Token) {
	if prev, ok := r.env.table[ast.NameOf(name)]; ok {
		r.warn(&AlreadyDefinedError{Name: name, Previous: prev})
	}
	r.env.table[ast.NameOf(name)] = name
}

func (r *Resolver) use(name token.Token) {
	if _, ok := r.env.lookup(ast.NameOf(name)); !ok {
		r.warn(&NotDefinedError{Name: name})
	}
}

func (r *Resolver) warn(d diagnostic.Diagnostic) {
	r.warnings = append(r.warnings, d)
}

// solve checks every name used in node.
func (r *Resolver) solve(node ast.Node) {
	switch n := node.(type) {
	case *ast.Literal:
	case *ast.Var:
		r.use(n.Name)
	case *ast.Call:
		// Built-ins are only reachable as call targets.
		if _, ok := r.builtins[ast.NameOf(n.Name)]; !ok {
			r.use(n.Name)
		}
		for _, arg := range n.Args {
			r.solve(arg)
		}
	case *ast.Function:
		for _, clause := range n.Clauses {
			r.solve(clause)
		}
	case *ast.Clause:
		r.env = newEnv(r.env)
		defer func() { r.env = r.env.parent }()
		for _, pattern := range n.Patterns {
			r.assign(pattern)
		}
		r.solve(n.Body)
	}
}

// assign defines the names a pattern binds.
func (r *Resolver) assign(pattern ast.Pattern) {
	switch p := pattern.(type) {
	case *ast.Bind:
		r.define(p.Name)
	}
}

// NotDefinedError reports a name with no lexically enclosing definition.
type NotDefinedError struct {
	Name token.Token
}

func (e *NotDefinedError) Error() string {
	return utils.At(e.Name, fmt.Sprintf("%s is not defined here", e.Name.Lexeme))
}

func (e *NotDefinedError) Span() token.Span {
	return e.Name.Span
}

// AlreadyDefinedError reports a name defined twice in the same scope.
// The later definition wins.
type AlreadyDefinedError struct {
	Name     token.Token
	Previous token.Token
}

func (e *AlreadyDefinedError) Error() string {
	return utils.At(e.Name, fmt.Sprintf("%s is already defined at line %d", e.Name.Lexeme, e.Previous.Line))
}

func (e *AlreadyDefinedError) Span() token.Span {
	return e.Name.Span
}
