// Package driver connects the parser and the interpreter for whole files and
// interactive sessions.
package driver

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/takoeight0821/q/ast"
	"github.com/takoeight0821/q/diagnostic"
	"github.com/takoeight0821/q/eval"
	"github.com/takoeight0821/q/lexer"
	"github.com/takoeight0821/q/nameresolve"
	"github.com/takoeight0821/q/parser"
	"github.com/takoeight0821/q/token"
	"github.com/ztrue/tracerr"
)

type Runner struct {
	out    io.Writer
	logger *slog.Logger
}

type Option func(*Runner)

// WithOutput sets where programs print. The default is os.Stdout.
func WithOutput(w io.Writer) Option {
	return func(r *Runner) {
		r.out = w
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		r.logger = logger
	}
}

func NewRunner(opts ...Option) *Runner {
	r := &Runner{
		out:    os.Stdout,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Parse parses source as a module named name.
// If the parser reported diagnostics, the partial module is returned together
// with a *diagnostic.Diagnostics error.
func (r *Runner) Parse(name, source string) (*ast.Module, error) {
	p := parser.New(name, source, parser.WithLogger(r.logger))
	module, err := p.Parse()
	if err != nil {
		return nil, err
	}
	if diags := p.Diagnostics(); diags != nil {
		return module, diags
	}

	r.logger.Debug("parsed", slog.String("module", name), slog.Int("items", len(module.Items)))
	return module, nil
}

// Check reports static warnings for a parsed module in Diagnostics.Warnings.
func (r *Runner) Check(module *ast.Module) *diagnostic.Diagnostics {
	return &diagnostic.Diagnostics{Warnings: nameresolve.NewResolver(eval.Builtins()...).Resolve(module)}
}

// RunSource parses source and calls its main function.
// A module with diagnostics is never evaluated. Warnings are only logged.
func (r *Runner) RunSource(name, source string) error {
	module, err := r.Parse(name, source)
	if err != nil {
		return err
	}
	for _, w := range r.Check(module).Warnings {
		r.logger.Warn(w.Error(), slog.String("module", name), slog.String("span", w.Span().String()))
	}

	in, err := eval.New(module, eval.WithOutput(r.out), eval.WithLogger(r.logger))
	if err != nil {
		return err
	}
	return in.Main()
}

// RunFile runs the source file at path. The module is named after the file.
func (r *Runner) RunFile(path string) error {
	source, err := os.ReadFile(path)
	if err != nil {
		return tracerr.Wrap(err)
	}
	return r.RunSource(filepath.Base(path), string(source))
}

// Session keeps one interpreter alive across inputs.
type Session struct {
	runner *Runner
	in     *eval.Interpreter
	inputs int
}

func (r *Runner) NewSession() (*Session, error) {
	in, err := eval.New(nil, eval.WithOutput(r.out), eval.WithLogger(r.logger))
	if err != nil {
		return nil, err
	}
	return &Session{runner: r, in: in}, nil
}

// Eval reads input as declarations first and as a single expression otherwise.
// Declarations are loaded into the session and yield no value.
func (s *Session) Eval(input string) (ast.Node, error) {
	s.inputs++
	name := fmt.Sprintf("<repl:%d>", s.inputs)

	module, errDecls := s.runner.Parse(name, input)
	if errDecls == nil {
		if len(module.Items) == 0 {
			return nil, nil
		}
		return nil, s.in.Load(module)
	}

	expr, errExpr := parser.New(name, input).ParseExpr()
	if errExpr == nil {
		return s.in.Eval(expr)
	}

	if isDecl(input) {
		return nil, errDecls
	}
	return nil, errExpr
}

// isDecl reports whether input starts like a declaration, so that its errors
// are the ones worth showing.
func isDecl(input string) bool {
	l := lexer.New(input)
	first, err := l.Next()
	if err != nil || first.Kind != token.IDENT {
		return false
	}
	second, ok := l.Peek()
	return ok && second.Kind == token.EQUAL
}

// Names returns every name an input could refer to, for completion and suggestions.
func (s *Session) Names() []string {
	return append(s.in.Env().Names(), eval.Builtins()...)
}
