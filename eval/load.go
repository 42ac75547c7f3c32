package eval

import (
	"fmt"

	"github.com/takoeight0821/q/ast"
	"github.com/takoeight0821/q/utils"
)

type loadState int

const (
	unloaded loadState = iota
	loading
	loaded
)

// previous is the binding a name had in the innermost scope before a Load.
type previous struct {
	name  ast.Name
	value ast.Node
	bound bool
}

// loader evaluates the declarations of one module.
// A declaration is evaluated on demand when a sibling's value turns out to be
// its unevaluated expression, so only values end up bound.
type loader struct {
	in      *Interpreter
	pending map[ast.Node]*ast.ValueDecl
	state   map[*ast.ValueDecl]loadState
	saved   []previous
}

func newLoader(in *Interpreter, decls []*ast.ValueDecl) *loader {
	l := &loader{
		in:      in,
		pending: make(map[ast.Node]*ast.ValueDecl),
		state:   make(map[*ast.ValueDecl]loadState),
	}
	seen := make(map[ast.Name]bool)
	for _, decl := range decls {
		if !isValue(decl.Value) {
			l.pending[decl.Value] = decl
		}
		name := ast.NameOf(decl.Name)
		if seen[name] {
			continue
		}
		seen[name] = true
		v, ok := in.env.Local(name)
		l.saved = append(l.saved, previous{name: name, value: v, bound: ok})
	}
	return l
}

func (l *loader) force(decl *ast.ValueDecl) error {
	switch l.state[decl] {
	case loaded:
		return nil
	case loading:
		return utils.ErrorAt{Where: decl.Name, Err: &RecursiveValueError{Name: ast.NameOf(decl.Name)}}
	}
	l.state[decl] = loading

	v, err := l.in.Eval(decl.Value)
	for err == nil {
		dep, ok := l.pending[v]
		if !ok {
			break
		}
		if err = l.force(dep); err == nil {
			v, err = l.in.env.Lookup(ast.NameOf(dep.Name))
		}
	}
	if err != nil {
		return fmt.Errorf("evaluate %s: %w", decl.Name.Lexeme, err)
	}

	l.in.env.Bind(ast.NameOf(decl.Name), v)
	l.state[decl] = loaded
	return nil
}

func (l *loader) rollback() {
	for _, p := range l.saved {
		if p.bound {
			l.in.env.Bind(p.name, p.value)
		} else {
			l.in.env.Unbind(p.name)
		}
	}
}

func isValue(node ast.Node) bool {
	switch node.(type) {
	case *ast.Literal, *ast.Function:
		return true
	default:
		return false
	}
}
