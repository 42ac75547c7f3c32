package diagnostic_test

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/takoeight0821/q/diagnostic"
	"github.com/takoeight0821/q/parser"
	"github.com/takoeight0821/q/token"
)

type spanError struct {
	msg  string
	span token.Span
}

func (e *spanError) Error() string {
	return e.msg
}

func (e *spanError) Span() token.Span {
	return e.span
}

func TestAll(t *testing.T) {
	t.Parallel()

	first := &spanError{msg: "first"}
	second := &spanError{msg: "second"}
	err := errors.Join(first, fmt.Errorf("wrapped: %w", second), errors.New("plain"))

	if diff := cmp.Diff([]diagnostic.Diagnostic{first, second}, diagnostic.All(err), cmp.AllowUnexported(spanError{})); diff != "" {
		t.Errorf("All mismatch (-want +got):\n%s", diff)
	}
	if diagnostic.All(nil) != nil {
		t.Errorf("All(nil) is not nil")
	}
	if ds := diagnostic.All(errors.New("plain")); ds != nil {
		t.Errorf("All on a plain error = %v", ds)
	}
}

func TestDiagnosticsError(t *testing.T) {
	t.Parallel()

	ds := &diagnostic.Diagnostics{Errors: []diagnostic.Diagnostic{
		&spanError{msg: "first"},
		&spanError{msg: "second"},
	}}
	if diff := cmp.Diff("first\nsecond", ds.Error()); diff != "" {
		t.Errorf("Error mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]error{ds.Errors[0], ds.Errors[1]}, ds.Unwrap(), cmp.AllowUnexported(spanError{})); diff != "" {
		t.Errorf("Unwrap mismatch (-want +got):\n%s", diff)
	}
}

func TestPositionOf(t *testing.T) {
	t.Parallel()

	source := "a = \"x\"\nmain = (Arg) { π }\n"
	testcases := []struct {
		offset   int
		expected diagnostic.Position
	}{
		{0, diagnostic.Position{Line: 1, Column: 1}},
		{4, diagnostic.Position{Line: 1, Column: 5}},
		{8, diagnostic.Position{Line: 2, Column: 1}},
		{23, diagnostic.Position{Line: 2, Column: 16}},
		{25, diagnostic.Position{Line: 2, Column: 17}},
		{-1, diagnostic.Position{Line: 1, Column: 1}},
		{100, diagnostic.Position{Line: 3, Column: 1}},
	}

	for _, testcase := range testcases {
		if diff := cmp.Diff(testcase.expected, diagnostic.PositionOf(source, testcase.offset)); diff != "" {
			t.Errorf("offset %d mismatch (-want +got):\n%s", testcase.offset, diff)
		}
	}
}

func TestRender(t *testing.T) {
	t.Parallel()

	source := `Name ? "Q-Lang"`
	p := parser.New("test.q", source)
	if _, err := p.Parse(); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	r := diagnostic.NewRenderer(&out, "test.q", source)
	if err := r.Fprint(&out, p.Diagnostics()); err != nil {
		t.Fatal(err)
	}

	rendered := out.String()
	for _, want := range []string{
		"error: at 1: `?`, unexpected symbol: expected `=`, found invalid token",
		"--> test.q:1:6",
		"1 | Name ? \"Q-Lang\"",
		"|      ^\n",
		"--> test.q:1:8",
		"|        ^^^^^^^^\n",
	} {
		if !strings.Contains(rendered, want) {
			t.Errorf("rendered output does not contain %q:\n%s", want, rendered)
		}
	}
}

func TestRenderAtEnd(t *testing.T) {
	t.Parallel()

	source := "main = "
	p := parser.New("test.q", source)
	if _, err := p.Parse(); err != nil {
		t.Fatal(err)
	}
	ds := diagnostic.All(p.Diagnostics())
	if len(ds) != 1 {
		t.Fatalf("got %d diagnostics, want 1", len(ds))
	}

	var out bytes.Buffer
	rendered := diagnostic.NewRenderer(&out, "test.q", source).Render(ds[0])
	if !strings.Contains(rendered, "--> test.q:1:8") || !strings.Contains(rendered, "^") {
		t.Errorf("unexpected rendering:\n%s", rendered)
	}
}

func TestFprintPlainError(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	r := diagnostic.NewRenderer(&out, "test.q", "")
	if err := r.Fprint(&out, errors.New("boom")); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff("error: boom\n", out.String()); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestSuggest(t *testing.T) {
	t.Parallel()

	testcases := []struct {
		name       string
		candidates []string
		expected   []string
	}{
		{"greting", []string{"main", "greeting", "print"}, []string{"greeting"}},
		{"main", []string{"main", "remain"}, []string{"remain"}},
		{"zzz", []string{"main", "print"}, []string{}},
	}

	for _, testcase := range testcases {
		if diff := cmp.Diff(testcase.expected, diagnostic.Suggest(testcase.name, testcase.candidates)); diff != "" {
			t.Errorf("%s mismatch (-want +got):\n%s", testcase.name, diff)
		}
	}
}
