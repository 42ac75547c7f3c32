package lexer_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/sebdah/goldie/v2"
	"github.com/takoeight0821/q/lexer"
	"github.com/takoeight0821/q/token"
	"github.com/takoeight0821/q/utils"
)

func TestGolden(t *testing.T) {
	t.Parallel()

	testfiles, err := utils.FindSourceFiles("../testdata")
	if err != nil {
		t.Errorf("failed to find test files: %v", err)
		return
	}

	for _, testfile := range testfiles {
		source, err := os.ReadFile(testfile)
		if err != nil {
			t.Errorf("failed to read %s: %v", testfile, err)
			return
		}

		var builder strings.Builder
		for _, token := range lexer.Lex(string(source)) {
			builder.WriteString(token.String())
			builder.WriteString("\n")
		}

		g := goldie.New(t)
		g.Assert(t, filepath.Base(testfile), []byte(builder.String()))
	}
}

func kinds(tokens []token.Token) []token.Kind {
	ks := make([]token.Kind, len(tokens))
	for i, tok := range tokens {
		ks[i] = tok.Kind
	}
	return ks
}

func TestKinds(t *testing.T) {
	t.Parallel()

	testcases := []struct {
		input    string
		expected []token.Kind
	}{
		{"[]", []token.Kind{token.LEFTBRACKET, token.RIGHTBRACKET}},
		{"[3.14, true]", []token.Kind{token.LEFTBRACKET, token.FLOAT, token.COMMA, token.IDENT, token.RIGHTBRACKET}},
		{"hello_world = () {\n}", []token.Kind{token.IDENT, token.EQUAL, token.LEFTPAREN, token.RIGHTPAREN, token.LEFTBRACE, token.RIGHTBRACE}},
		{"hello_world()", []token.Kind{token.IDENT, token.LEFTPAREN, token.RIGHTPAREN}},
		{"a;b", []token.Kind{token.IDENT, token.SEMICOLON, token.IDENT}},
		{"x1", []token.Kind{token.IDENT, token.INTEGER}},
		{".5 3.", []token.Kind{token.FLOAT, token.INTEGER, token.INVALID}},
		{"? ! é", []token.Kind{token.INVALID, token.INVALID, token.INVALID}},
		{"　\t\r\n", []token.Kind{}},
		{`"unterminated`, []token.Kind{token.INVALID}},
		{"99999999999999999999", []token.Kind{token.INVALID}},
	}

	for _, testcase := range testcases {
		actual := kinds(lexer.Lex(testcase.input))
		if diff := cmp.Diff(testcase.expected, actual); diff != "" {
			t.Errorf("Lex(%q) mismatch (-want +got):\n%s", testcase.input, diff)
		}
	}
}

func TestLiterals(t *testing.T) {
	t.Parallel()

	tokens := lexer.Lex(`"3.14" "a\"b" 3.14 42`)
	expected := []any{"3.14", `a\"b`, 3.14, uint64(42)}
	actual := make([]any, len(tokens))
	for i, tok := range tokens {
		actual[i] = tok.Literal
	}
	if diff := cmp.Diff(expected, actual); diff != "" {
		t.Errorf("literal mismatch (-want +got):\n%s", diff)
	}
}

func TestSpanAndLine(t *testing.T) {
	t.Parallel()

	l := lexer.New("PI = 3.14\nName = \"Q\"")
	var spans []token.Span
	var lines []int
	for {
		tok, err := l.Next()
		if err != nil {
			break
		}
		if l.Span() != tok.Span {
			t.Errorf("Span() = %v, want %v", l.Span(), tok.Span)
		}
		spans = append(spans, tok.Span)
		lines = append(lines, tok.Line)
	}

	expectedSpans := []token.Span{{0, 2}, {3, 4}, {5, 9}, {10, 14}, {15, 16}, {17, 20}}
	if diff := cmp.Diff(expectedSpans, spans); diff != "" {
		t.Errorf("span mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{1, 1, 1, 2, 2, 2}, lines); diff != "" {
		t.Errorf("line mismatch (-want +got):\n%s", diff)
	}
}

func TestPeekDoesNotConsume(t *testing.T) {
	t.Parallel()

	l := lexer.New("foo bar")
	first, ok := l.Peek()
	if !ok {
		t.Fatal("Peek returned no token")
	}
	second, ok := l.Peek()
	if !ok {
		t.Fatal("second Peek returned no token")
	}
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("Peek is not idempotent (-first +second):\n%s", diff)
	}
	if l.Consumed() != 0 {
		t.Errorf("Peek consumed %d tokens", l.Consumed())
	}

	next, err := l.Next()
	if err != nil {
		t.Fatalf("Next returned error: %v", err)
	}
	if diff := cmp.Diff(first, next); diff != "" {
		t.Errorf("Next did not return the peeked token (-peek +next):\n%s", diff)
	}
	if l.Consumed() != 1 {
		t.Errorf("Next consumed %d tokens, want 1", l.Consumed())
	}

	next, err = l.Next()
	if err != nil {
		t.Fatalf("Next returned error: %v", err)
	}
	if next.Lexeme != "bar" {
		t.Errorf("Next returned %v, want bar", next)
	}
}

func TestEndOfInput(t *testing.T) {
	t.Parallel()

	l := lexer.New("  ")
	if tok, ok := l.Peek(); ok {
		t.Errorf("Peek returned %v at end of input", tok)
	}
	if _, err := l.Next(); !errors.Is(err, lexer.ErrEndOfInput) {
		t.Errorf("Next returned %v, want ErrEndOfInput", err)
	}
	if _, err := l.Expect(token.EQUAL); !errors.Is(err, lexer.ErrEndOfInput) {
		t.Errorf("Expect returned %v, want ErrEndOfInput", err)
	}
}

func TestExpect(t *testing.T) {
	t.Parallel()

	l := lexer.New("= ?")
	if _, err := l.Expect(token.EQUAL); err != nil {
		t.Fatalf("Expect(EQUAL) returned error: %v", err)
	}

	_, err := l.Expect(token.EQUAL)
	var unexpected *lexer.UnexpectedSymbolError
	if !errors.As(err, &unexpected) {
		t.Fatalf("Expect returned %v, want UnexpectedSymbolError", err)
	}
	if unexpected.Expected != token.EQUAL || unexpected.Found.Kind != token.INVALID {
		t.Errorf("unexpected error contents: %+v", unexpected)
	}
	if unexpected.Span() != (token.Span{Start: 2, End: 3}) {
		t.Errorf("Span() = %v", unexpected.Span())
	}
	if msg := err.Error(); msg != "at 1: `?`, unexpected symbol: expected `=`, found invalid token" {
		t.Errorf("Error() = %q", msg)
	}
}
