package ast_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/takoeight0821/q/ast"
	"github.com/takoeight0821/q/token"
)

func ident(name string) token.Token {
	return token.Token{Kind: token.IDENT, Lexeme: name, Line: 1}
}

func TestString(t *testing.T) {
	t.Parallel()

	fun := &ast.Function{Clauses: []*ast.Clause{
		{Patterns: []ast.Pattern{&ast.Bind{Name: ident("A")}}, Body: &ast.Var{Name: ident("A")}},
		{Patterns: []ast.Pattern{}, Body: ast.NewString("none")},
	}}

	testcases := []struct {
		node     ast.Node
		expected string
	}{
		{ast.NewString("hi"), `(literal "hi")`},
		{&ast.Var{Name: ident("x")}, `(var x)`},
		{&ast.Call{Name: ident("f")}, `(call f)`},
		{&ast.Call{Name: ident("f"), Args: []ast.Node{ast.NewString("a"), &ast.Var{Name: ident("b")}}}, `(call f (literal "a") (var b))`},
		{fun, `(fun (clause (A) (var A)) (clause () (literal "none")))`},
		{&ast.ValueDecl{Name: ident("main"), Value: fun}, `(def main (fun (clause (A) (var A)) (clause () (literal "none"))))`},
	}

	for _, testcase := range testcases {
		if diff := cmp.Diff(testcase.expected, testcase.node.String()); diff != "" {
			t.Errorf("String mismatch (-want +got):\n%s", diff)
		}
	}
}

func TestModule(t *testing.T) {
	t.Parallel()

	module := ast.Module{Name: "test_module", Items: []ast.Item{
		&ast.ValueDecl{Name: ident("a"), Value: ast.NewString("1")},
		&ast.ValueDecl{Name: ident("b"), Value: &ast.Var{Name: ident("a")}},
	}}

	if diff := cmp.Diff("(def a (literal \"1\"))\n(def b (var a))\n", module.String()); diff != "" {
		t.Errorf("String mismatch (-want +got):\n%s", diff)
	}
	decls := module.Decls()
	if len(decls) != 2 || ast.NameOf(decls[1].Name) != "b" {
		t.Errorf("Decls() = %v", decls)
	}
	if (ast.Module{}).String() != "" {
		t.Errorf("empty module renders as %q", ast.Module{}.String())
	}
}

func TestBase(t *testing.T) {
	t.Parallel()

	open := token.Token{Kind: token.LEFTPAREN, Lexeme: "(", Line: 3}
	clause := &ast.Clause{Where: open, Body: ast.NewString("x")}
	if got := (&ast.Function{Clauses: []*ast.Clause{clause}}).Base(); got != open {
		t.Errorf("Function.Base() = %v, want %v", got, open)
	}
	if clause.Arity() != 0 {
		t.Errorf("Arity() = %d", clause.Arity())
	}

	lit := ast.NewString("x")
	if lit.Literal != "x" || lit.Kind != token.STRING {
		t.Errorf("NewString built %v", lit.Token)
	}
}
