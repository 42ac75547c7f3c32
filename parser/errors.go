package parser

import (
	"fmt"

	"github.com/takoeight0821/q/diagnostic"
	"github.com/takoeight0821/q/lexer"
	"github.com/takoeight0821/q/token"
	"github.com/takoeight0821/q/utils"
)

type ExpectedExpressionError struct {
	Found token.Token
}

func (e *ExpectedExpressionError) Error() string {
	return utils.At(e.Found, "expected an expression, found "+e.Found.Kind.Describe())
}

func (e *ExpectedExpressionError) Span() token.Span {
	return e.Found.Span
}

type ExpectedPatternError struct {
	Found token.Token
}

func (e *ExpectedPatternError) Error() string {
	return utils.At(e.Found, "expected a pattern, found "+e.Found.Kind.Describe())
}

func (e *ExpectedPatternError) Span() token.Span {
	return e.Found.Span
}

// MissingValueError reports a declaration whose `=` is not followed by a value.
// Name and Source identify the text At points into.
type MissingValueError struct {
	Decl   token.Token
	At     token.Span
	Name   string
	Source string
}

func (e *MissingValueError) Error() string {
	return utils.At(e.Decl, "declaration has no value")
}

func (e *MissingValueError) Span() token.Span {
	return e.At
}

// UnexpectedEndError reports input that ended in the middle of a declaration.
type UnexpectedEndError struct {
	At token.Span
}

func (e *UnexpectedEndError) Error() string {
	return "at end: unexpected end of input"
}

func (e *UnexpectedEndError) Span() token.Span {
	return e.At
}

func (e *UnexpectedEndError) Unwrap() error {
	return lexer.ErrEndOfInput
}

// InternalError is a hard failure: the parser reached a state it cannot
// recover from. It is never recorded as a diagnostic.
type InternalError struct {
	Module string
	Msg    string
}

func (e *InternalError) Error() string {
	return fmt.Sprintf("internal parser error in %s: %s", e.Module, e.Msg)
}

var (
	_ diagnostic.Diagnostic = &lexer.UnexpectedSymbolError{}
	_ diagnostic.Diagnostic = &ExpectedExpressionError{}
	_ diagnostic.Diagnostic = &ExpectedPatternError{}
	_ diagnostic.Diagnostic = &MissingValueError{}
	_ diagnostic.Diagnostic = &UnexpectedEndError{}
)
