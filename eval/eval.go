// Package eval is a tree-walking interpreter over parsed modules.
package eval

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/takoeight0821/q/ast"
	"github.com/takoeight0821/q/env"
	"github.com/takoeight0821/q/token"
	"github.com/takoeight0821/q/utils"
)

// Interpreter evaluates expressions against one Environment.
// Values are themselves ast nodes: literals and functions.
type Interpreter struct {
	env    *env.Environment
	out    io.Writer
	logger *slog.Logger
}

type Option func(*Interpreter)

// WithOutput sets where print writes. The default is os.Stdout.
func WithOutput(w io.Writer) Option {
	return func(in *Interpreter) {
		in.out = w
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(in *Interpreter) {
		in.logger = logger
	}
}

// New creates an interpreter and loads module into its root scope.
// module may be nil.
func New(module *ast.Module, opts ...Option) (*Interpreter, error) {
	in := &Interpreter{
		env:    env.New(),
		out:    os.Stdout,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(in)
	}

	if module == nil {
		return in, nil
	}
	if err := in.Load(module); err != nil {
		return nil, err
	}
	return in, nil
}

// Load binds every declaration of module, then evaluates each value in
// declaration order and rebinds the result.
// Binding first lets any declaration refer to any other. If any value fails
// to evaluate, the innermost scope is restored to what it was before Load.
func (in *Interpreter) Load(module *ast.Module) error {
	decls := module.Decls()
	l := newLoader(in, decls)
	for _, decl := range decls {
		in.env.Bind(ast.NameOf(decl.Name), decl.Value)
	}
	for _, decl := range decls {
		if err := l.force(decl); err != nil {
			l.rollback()
			return err
		}
	}

	in.logger.Debug("loaded module",
		slog.String("module", module.Name.String()),
		slog.Int("decls", len(decls)),
	)
	return nil
}

// Env returns the environment the interpreter evaluates in.
func (in *Interpreter) Env() *env.Environment {
	return in.env
}

// Main calls main with the single argument "hello world".
func (in *Interpreter) Main() error {
	call := &ast.Call{
		Name: token.Token{Kind: token.IDENT, Lexeme: "main", Line: 1},
		Args: []ast.Node{ast.NewString("hello world")},
	}
	_, err := in.Eval(call)
	return err
}

func (in *Interpreter) Eval(node ast.Node) (ast.Node, error) {
	switch n := node.(type) {
	case *ast.Literal, *ast.Function:
		return n, nil
	case *ast.Var:
		v, err := in.env.Lookup(ast.NameOf(n.Name))
		if err != nil {
			return nil, utils.ErrorAt{Where: n.Name, Err: err}
		}
		return v, nil
	case *ast.Call:
		return in.call(n)
	default:
		return nil, utils.ErrorAt{Where: node.Base(), Err: fmt.Errorf("unexpected node: %v", n)}
	}
}

func (in *Interpreter) call(call *ast.Call) (ast.Node, error) {
	name := ast.NameOf(call.Name)

	// Built-ins take precedence over bindings of the same name.
	if f, ok := lookupBuiltin(name); ok {
		return f(in, call)
	}

	callee, err := in.env.Lookup(name)
	if err != nil {
		return nil, utils.ErrorAt{Where: call.Name, Err: err}
	}
	fn, ok := callee.(*ast.Function)
	if !ok {
		return nil, utils.ErrorAt{Where: call.Name, Err: &CannotCallNonFunctionError{Name: name, Value: callee}}
	}

	args, err := in.evalArgs(call.Args)
	if err != nil {
		return nil, err
	}

	in.logger.Debug("call",
		slog.String("name", name.String()),
		slog.Int("arity", len(args)),
		slog.Int("depth", in.env.Depth()),
	)
	return in.apply(call, fn, args)
}

func (in *Interpreter) evalArgs(nodes []ast.Node) ([]ast.Node, error) {
	args := make([]ast.Node, len(nodes))
	for i, arg := range nodes {
		v, err := in.Eval(arg)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}
	return args, nil
}

// apply runs the first clause whose patterns all match args.
// Matching finishes before any scope is pushed.
func (in *Interpreter) apply(call *ast.Call, fn *ast.Function, args []ast.Node) (ast.Node, error) {
	for _, clause := range fn.Clauses {
		if clause.Arity() != len(args) {
			continue
		}
		bindings, ok := matchAll(clause.Patterns, args)
		if !ok {
			continue
		}

		var result ast.Node
		err := in.scoped(func() error {
			for _, b := range bindings {
				in.env.Bind(b.name, b.value)
			}
			var err error
			result, err = in.Eval(clause.Body)
			return err
		})
		return result, err
	}

	return nil, utils.ErrorAt{Where: call.Name, Err: &ClauseMatchError{Name: ast.NameOf(call.Name), Arity: len(args)}}
}

// scoped runs f in a fresh scope. The scope is popped whether or not f fails.
func (in *Interpreter) scoped(f func() error) (err error) {
	in.env.PushScope()
	defer func() {
		if perr := in.env.PopScope(); perr != nil {
			err = errors.Join(err, perr)
		}
	}()

	return f()
}

type binding struct {
	name  ast.Name
	value ast.Node
}

func matchAll(patterns []ast.Pattern, args []ast.Node) ([]binding, bool) {
	var bindings []binding
	for i, pattern := range patterns {
		bs, ok := match(pattern, args[i])
		if !ok {
			return nil, false
		}
		bindings = append(bindings, bs...)
	}
	return bindings, true
}

func match(pattern ast.Pattern, value ast.Node) ([]binding, bool) {
	switch p := pattern.(type) {
	case *ast.Bind:
		return []binding{{name: ast.NameOf(p.Name), value: value}}, true
	default:
		return nil, false
	}
}
