package lexer

import (
	"errors"
	"strconv"
	"unicode"
	"unicode/utf8"

	"github.com/takoeight0821/q/token"
	"github.com/takoeight0821/q/utils"
)

// ErrEndOfInput is returned by Next and Expect once the source is exhausted.
var ErrEndOfInput = errors.New("end of input")

// Lexer is a token stream over a source string with one token of lookahead.
type Lexer struct {
	source string

	current  int // current position in source
	line     int // current line number
	peeked   *token.Token
	last     token.Span
	consumed int
}

func New(source string) *Lexer {
	return &Lexer{source: source, line: 1}
}

// Lex drains a fresh Lexer over source.
func Lex(source string) []token.Token {
	l := New(source)
	tokens := []token.Token{}
	for {
		tok, err := l.Next()
		if err != nil {
			return tokens
		}
		tokens = append(tokens, tok)
	}
}

// Next consumes and returns the next token.
func (l *Lexer) Next() (token.Token, error) {
	var tok token.Token
	if l.peeked != nil {
		tok = *l.peeked
		l.peeked = nil
	} else {
		var ok bool
		if tok, ok = l.scanToken(); !ok {
			return token.Token{}, ErrEndOfInput
		}
	}
	l.last = tok.Span
	l.consumed++

	return tok, nil
}

// Peek returns the next token without consuming it.
// It reports false at the end of input.
func (l *Lexer) Peek() (token.Token, bool) {
	if l.peeked != nil {
		return *l.peeked, true
	}
	tok, ok := l.scanToken()
	if !ok {
		return token.Token{}, false
	}
	l.peeked = &tok

	return tok, true
}

// Expect consumes one token and checks that it is of the given kind.
func (l *Lexer) Expect(kind token.Kind) (token.Token, error) {
	tok, err := l.Next()
	if err != nil {
		return tok, err
	}
	if tok.Kind != kind {
		return tok, &UnexpectedSymbolError{Expected: kind, Found: tok}
	}

	return tok, nil
}

// Span returns the span of the token most recently returned by Next.
func (l *Lexer) Span() token.Span {
	return l.last
}

// Consumed returns how many tokens Next has returned so far.
func (l *Lexer) Consumed() int {
	return l.consumed
}

// End returns the empty span at the end of the source.
func (l *Lexer) End() token.Span {
	return token.Span{Start: len(l.source), End: len(l.source)}
}

// Line returns the line the lexer is currently positioned on.
func (l *Lexer) Line() int {
	return l.line
}

func (l *Lexer) isAtEnd() bool {
	return l.current >= len(l.source)
}

func (l *Lexer) peekRune() rune {
	if l.isAtEnd() {
		return '\x00'
	}
	r, _ := utf8.DecodeRuneInString(l.source[l.current:])

	return r
}

func (l *Lexer) peekNextRune() rune {
	if l.isAtEnd() {
		return '\x00'
	}
	_, width := utf8.DecodeRuneInString(l.source[l.current:])
	if l.current+width >= len(l.source) {
		return '\x00'
	}
	r, _ := utf8.DecodeRuneInString(l.source[l.current+width:])

	return r
}

func (l *Lexer) advance() rune {
	r, width := utf8.DecodeRuneInString(l.source[l.current:])
	l.current += width
	if r == '\n' {
		l.line++
	}

	return r
}

func (l *Lexer) skipWhitespace() {
	for !l.isAtEnd() && unicode.IsSpace(l.peekRune()) {
		l.advance()
	}
}

func (l *Lexer) scanToken() (token.Token, bool) {
	l.skipWhitespace()
	if l.isAtEnd() {
		return token.Token{}, false
	}

	start, line := l.current, l.line
	char := l.advance()

	emit := func(kind token.Kind, literal any) token.Token {
		return token.Token{
			Kind:    kind,
			Lexeme:  l.source[start:l.current],
			Line:    line,
			Span:    token.Span{Start: start, End: l.current},
			Literal: literal,
		}
	}

	switch {
	case char == '"':
		if value, ok := l.string(start); ok {
			return emit(token.STRING, value), true
		}
		return emit(token.INVALID, nil), true
	case isDigit(char) || (char == '.' && isDigit(l.peekRune())):
		return l.number(char, emit), true
	case isAlpha(char):
		for isAlpha(l.peekRune()) {
			l.advance()
		}
		return emit(token.IDENT, nil), true
	}

	if kind, ok := reservedSymbols[char]; ok {
		return emit(kind, nil), true
	}

	return emit(token.INVALID, nil), true
}

// string scans the rest of a string literal whose opening quote is at start.
// An unterminated literal consumes the rest of the source.
func (l *Lexer) string(start int) (string, bool) {
	for !l.isAtEnd() {
		switch l.advance() {
		case '\\':
			if l.isAtEnd() {
				return "", false
			}
			l.advance()
		case '"':
			return l.source[start+1 : l.current-1], true
		}
	}

	return "", false
}

func (l *Lexer) number(first rune, emit func(token.Kind, any) token.Token) token.Token {
	isFloat := first == '.'
	for isDigit(l.peekRune()) {
		l.advance()
	}
	if !isFloat && l.peekRune() == '.' && isDigit(l.peekNextRune()) {
		isFloat = true
		l.advance()
	}
	if isFloat {
		for isDigit(l.peekRune()) {
			l.advance()
		}
	}

	tok := emit(token.INVALID, nil)
	if isFloat {
		value, err := strconv.ParseFloat(tok.Lexeme, 64)
		if err != nil {
			return tok
		}
		tok.Kind, tok.Literal = token.FLOAT, value

		return tok
	}

	value, err := strconv.ParseUint(tok.Lexeme, 10, 64)
	if err != nil {
		return tok
	}
	tok.Kind, tok.Literal = token.INTEGER, value

	return tok
}

func isDigit(c rune) bool {
	return c >= '0' && c <= '9'
}

func isAlpha(c rune) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_'
}

var reservedSymbols = map[rune]token.Kind{
	'=': token.EQUAL,
	',': token.COMMA,
	';': token.SEMICOLON,
	'(': token.LEFTPAREN,
	')': token.RIGHTPAREN,
	'{': token.LEFTBRACE,
	'}': token.RIGHTBRACE,
	'[': token.LEFTBRACKET,
	']': token.RIGHTBRACKET,
}

// UnexpectedSymbolError is raised when a token of one kind was required
// and another was found.
type UnexpectedSymbolError struct {
	Expected token.Kind
	Found    token.Token
}

func (e *UnexpectedSymbolError) Error() string {
	return utils.At(e.Found, "unexpected symbol: expected "+e.Expected.Describe()+", found "+e.Found.Kind.Describe())
}

func (e *UnexpectedSymbolError) Span() token.Span {
	return e.Found.Span
}
