package parser

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"

	"github.com/takoeight0821/q/ast"
	"github.com/takoeight0821/q/diagnostic"
	"github.com/takoeight0821/q/lexer"
	"github.com/takoeight0821/q/token"
	"github.com/takoeight0821/q/utils"
)

type Parser struct {
	name   string
	source string
	logger *slog.Logger

	lexer       *lexer.Lexer
	diagnostics []diagnostic.Diagnostic
}

type Option func(*Parser)

// WithLogger makes the parser report recoveries at debug level.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Parser) {
		p.logger = logger
	}
}

// New returns a parser for source. name becomes the module name.
func New(name, source string, opts ...Option) *Parser {
	p := &Parser{
		name:   name,
		source: source,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// FromFile reads path and names the module after its base name.
func FromFile(path string, opts ...Option) (*Parser, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return New(filepath.Base(path), string(source), opts...), nil
}

func (p *Parser) Name() string {
	return p.name
}

func (p *Parser) Source() string {
	return p.source
}

// Parse parses the whole source as a module.
// A malformed declaration is recorded as a diagnostic and parsing resumes at
// the token after the one that made it fail. The returned module holds every
// declaration that parsed. Only an InternalError makes Parse fail.
func (p *Parser) Parse() (*ast.Module, error) {
	p.lexer = lexer.New(p.source)
	p.diagnostics = nil

	items := []ast.Item{}
	for {
		if _, ok := p.lexer.Peek(); !ok {
			break
		}

		before := p.lexer.Consumed()
		decl, err := p.valueDecl()
		if err == nil {
			items = append(items, decl)
			continue
		}

		var diag diagnostic.Diagnostic
		if !errors.As(err, &diag) {
			return nil, err
		}
		p.recover(diag)

		if p.lexer.Consumed() == before {
			return nil, &InternalError{Module: p.name, Msg: fmt.Sprintf("no progress at %v", diag.Span())}
		}
		if errors.Is(err, lexer.ErrEndOfInput) {
			break
		}
	}

	return &ast.Module{Name: ast.Name(p.name), Items: items}, nil
}

// ParseExpr parses the whole source as a single expression.
func (p *Parser) ParseExpr() (ast.Node, error) {
	p.lexer = lexer.New(p.source)
	p.diagnostics = nil

	node, err := p.expr()
	if err != nil {
		return nil, err
	}
	if tok, ok := p.lexer.Peek(); ok {
		return nil, &TrailingInputError{Found: tok}
	}

	return node, nil
}

// Diagnostics returns nil, or a *diagnostic.Diagnostics holding the errors
// recorded by the last Parse in the order they were found.
func (p *Parser) Diagnostics() error {
	if len(p.diagnostics) == 0 {
		return nil
	}
	return &diagnostic.Diagnostics{Errors: slices.Clone(p.diagnostics)}
}

// valueDecl = IDENT "=" expr ;
func (p *Parser) valueDecl() (*ast.ValueDecl, error) {
	name, err := p.consume(token.IDENT)
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.EQUAL); err != nil {
		return nil, err
	}

	if tok, ok := p.lexer.Peek(); !ok || !startsExpr(tok.Kind) {
		missing := &MissingValueError{Decl: name, At: p.lexer.End(), Name: p.name, Source: p.source}
		if ok {
			missing.At = tok.Span
			if _, err := p.next(); err != nil {
				return nil, err
			}
		}
		return nil, missing
	}

	value, err := p.expr()
	if err != nil {
		return nil, err
	}

	return &ast.ValueDecl{Name: name, Value: value}, nil
}

func startsExpr(kind token.Kind) bool {
	//exhaustive:ignore
	switch kind {
	case token.STRING, token.INTEGER, token.FLOAT, token.IDENT, token.LEFTPAREN:
		return true
	default:
		return false
	}
}

// expr = literal | IDENT | call | function ;
// literal = STRING | INTEGER | FLOAT ;
func (p *Parser) expr() (ast.Node, error) {
	if p.match(token.LEFTPAREN) {
		return p.function()
	}

	tok, err := p.next()
	if err != nil {
		return nil, err
	}

	//exhaustive:ignore
	switch tok.Kind {
	case token.STRING, token.INTEGER, token.FLOAT:
		return &ast.Literal{Token: tok}, nil
	case token.IDENT:
		if p.match(token.LEFTPAREN) {
			return p.callTail(tok)
		}
		return &ast.Var{Name: tok}, nil
	default:
		return nil, &ExpectedExpressionError{Found: tok}
	}
}

// call = IDENT callTail ;
// callTail = "(" ")" | "(" expr ("," expr)* ","? ")" ;
func (p *Parser) callTail(name token.Token) (*ast.Call, error) {
	if _, err := p.consume(token.LEFTPAREN); err != nil {
		return nil, err
	}

	args := []ast.Node{}
	if !p.match(token.RIGHTPAREN) {
		arg, err := p.expr()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		for p.match(token.COMMA) {
			if _, err := p.next(); err != nil {
				return nil, err
			}
			if p.match(token.RIGHTPAREN) {
				break
			}
			arg, err := p.expr()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
		}
	}

	if _, err := p.consume(token.RIGHTPAREN); err != nil {
		return nil, err
	}

	return &ast.Call{Name: name, Args: args}, nil
}

// function = clause (";" clause)* ";"? ;
func (p *Parser) function() (*ast.Function, error) {
	clause, err := p.clause()
	if err != nil {
		return nil, err
	}

	clauses := []*ast.Clause{clause}
	for p.match(token.SEMICOLON) {
		if _, err := p.next(); err != nil {
			return nil, err
		}
		if !p.match(token.LEFTPAREN) {
			break
		}
		clause, err := p.clause()
		if err != nil {
			return nil, err
		}
		clauses = append(clauses, clause)
	}

	return &ast.Function{Clauses: clauses}, nil
}

// clause = "(" (pattern ("," pattern)* ","?)? ")" "{" expr "}" ;
func (p *Parser) clause() (*ast.Clause, error) {
	open, err := p.consume(token.LEFTPAREN)
	if err != nil {
		return nil, err
	}

	patterns := []ast.Pattern{}
	if !p.match(token.RIGHTPAREN) {
		pat, err := p.pattern()
		if err != nil {
			return nil, err
		}
		patterns = append(patterns, pat)
		for p.match(token.COMMA) {
			if _, err := p.next(); err != nil {
				return nil, err
			}
			if p.match(token.RIGHTPAREN) {
				break
			}
			pat, err := p.pattern()
			if err != nil {
				return nil, err
			}
			patterns = append(patterns, pat)
		}
	}

	if _, err := p.consume(token.RIGHTPAREN); err != nil {
		return nil, err
	}
	if _, err := p.consume(token.LEFTBRACE); err != nil {
		return nil, err
	}
	body, err := p.expr()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.RIGHTBRACE); err != nil {
		return nil, err
	}

	return &ast.Clause{Where: open, Patterns: patterns, Body: body}, nil
}

// pattern = IDENT ;
func (p *Parser) pattern() (ast.Pattern, error) {
	tok, err := p.next()
	if err != nil {
		return nil, err
	}
	if tok.Kind != token.IDENT {
		return nil, &ExpectedPatternError{Found: tok}
	}

	return &ast.Bind{Name: tok}, nil
}

func (p *Parser) recover(diag diagnostic.Diagnostic) {
	p.logger.Debug("recovered from malformed declaration",
		slog.String("module", p.name),
		slog.String("span", diag.Span().String()),
		slog.String("error", diag.Error()),
	)
	p.diagnostics = append(p.diagnostics, diag)
}

func (p *Parser) match(kind token.Kind) bool {
	tok, ok := p.lexer.Peek()
	return ok && tok.Kind == kind
}

func (p *Parser) next() (token.Token, error) {
	tok, err := p.lexer.Next()
	if errors.Is(err, lexer.ErrEndOfInput) {
		return tok, &UnexpectedEndError{At: p.lexer.End()}
	}
	return tok, err
}

func (p *Parser) consume(kind token.Kind) (token.Token, error) {
	tok, err := p.lexer.Expect(kind)
	if errors.Is(err, lexer.ErrEndOfInput) {
		return tok, &UnexpectedEndError{At: p.lexer.End()}
	}
	return tok, err
}

// TrailingInputError reports tokens left over after a complete expression.
type TrailingInputError struct {
	Found token.Token
}

func (e *TrailingInputError) Error() string {
	return utils.At(e.Found, "unexpected input after expression")
}

func (e *TrailingInputError) Span() token.Span {
	return e.Found.Span
}
