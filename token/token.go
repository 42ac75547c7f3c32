package token

import "fmt"

//go:generate go run golang.org/x/tools/cmd/stringer@v0.13.0 -type=Kind
type Kind int

const (
	// INVALID marks a lexeme the lexer could not classify.
	INVALID Kind = iota

	// Single-character tokens.
	EQUAL
	COMMA
	SEMICOLON
	LEFTPAREN
	RIGHTPAREN
	LEFTBRACE
	RIGHTBRACE
	LEFTBRACKET
	RIGHTBRACKET

	// Literals and identifiers.
	IDENT
	STRING
	INTEGER
	FLOAT
)

// Describe returns the name used for k in error messages.
func (k Kind) Describe() string {
	switch k {
	case IDENT:
		return "identifier"
	case STRING:
		return "string"
	case INTEGER:
		return "integer"
	case FLOAT:
		return "float"
	case INVALID:
		return "invalid token"
	}
	if char, ok := punctuation[k]; ok {
		return "`" + string(char) + "`"
	}
	return k.String()
}

var punctuation = map[Kind]rune{
	EQUAL:        '=',
	COMMA:        ',',
	SEMICOLON:    ';',
	LEFTPAREN:    '(',
	RIGHTPAREN:   ')',
	LEFTBRACE:    '{',
	RIGHTBRACE:   '}',
	LEFTBRACKET:  '[',
	RIGHTBRACKET: ']',
}

// Span is a half-open byte range [Start, End) into the source text.
type Span struct {
	Start int
	End   int
}

func (s Span) String() string {
	return fmt.Sprintf("%d..%d", s.Start, s.End)
}

// Len returns the number of bytes covered by s.
func (s Span) Len() int {
	return s.End - s.Start
}

type Token struct {
	Kind    Kind
	Lexeme  string
	Line    int
	Span    Span
	Literal any
}

func (t Token) String() string {
	return fmt.Sprintf("{%v, %q, %d, %v}", t.Kind, t.Lexeme, t.Line, t.Literal)
}

func (t Token) Base() Token {
	return t
}
