package ast

import (
	"fmt"
	"strings"

	"github.com/takoeight0821/q/token"
)

// Name identifies a variable or function.
type Name string

func (n Name) String() string {
	return string(n)
}

// NameOf returns the Name an identifier token refers to.
func NameOf(t token.Token) Name {
	return Name(t.Lexeme)
}

// AST

type Node interface {
	fmt.Stringer
	Base() token.Token
}

// Literal is a string, integer or float literal. Literals are values.
type Literal struct {
	token.Token
}

func (l Literal) String() string {
	return parenthesize("literal", lexeme(l.Token)).String()
}

func (l *Literal) Base() token.Token {
	return l.Token
}

var _ Node = &Literal{}

// NewString builds a string literal that did not come from source text.
func NewString(s string) *Literal {
	return &Literal{Token: token.Token{Kind: token.STRING, Lexeme: `"` + s + `"`, Literal: s}}
}

type Var struct {
	Name token.Token
}

func (v Var) String() string {
	return parenthesize("var", lexeme(v.Name)).String()
}

func (v *Var) Base() token.Token {
	return v.Name
}

var _ Node = &Var{}

type Call struct {
	Name token.Token
	Args []Node
}

func (c Call) String() string {
	return parenthesize("call", lexeme(c.Name), concat(c.Args)).String()
}

func (c *Call) Base() token.Token {
	return c.Name
}

var _ Node = &Call{}

// Function is a function value made of one or more clauses.
type Function struct {
	Clauses []*Clause // len(Clauses) > 0
}

func (f Function) String() string {
	return parenthesize("fun", concat(f.Clauses)).String()
}

func (f *Function) Base() token.Token {
	if len(f.Clauses) == 0 {
		return token.Token{}
	}
	return f.Clauses[0].Base()
}

var _ Node = &Function{}

// Clause is one alternative of a Function. Clauses are tried in source order.
type Clause struct {
	Where    token.Token // opening parenthesis of the parameter list
	Patterns []Pattern
	Body     Node
}

func (c Clause) String() string {
	return parenthesize("clause", parenthesize("", concat(c.Patterns)), c.Body).String()
}

func (c *Clause) Base() token.Token {
	return c.Where
}

// Arity returns the number of arguments the clause accepts.
func (c *Clause) Arity() int {
	return len(c.Patterns)
}

var _ Node = &Clause{}

// Pattern is the left-hand side of a clause parameter.
type Pattern interface {
	Node
	pattern()
}

// Bind captures the matched value under a name. It always matches.
type Bind struct {
	Name token.Token
}

func (b Bind) String() string {
	return b.Name.Lexeme
}

func (b *Bind) Base() token.Token {
	return b.Name
}

func (*Bind) pattern() {}

var _ Pattern = &Bind{}

// Item is a top-level declaration of a Module.
type Item interface {
	Node
	item()
}

type ValueDecl struct {
	Name  token.Token
	Value Node
}

func (v ValueDecl) String() string {
	return parenthesize("def", lexeme(v.Name), v.Value).String()
}

func (v *ValueDecl) Base() token.Token {
	return v.Name
}

func (*ValueDecl) item() {}

var _ Item = &ValueDecl{}

// Module is the result of parsing one source file.
type Module struct {
	Name  Name
	Items []Item
}

// String renders every item on its own line.
func (m Module) String() string {
	var b strings.Builder
	for _, item := range m.Items {
		b.WriteString(item.String())
		b.WriteString("\n")
	}
	return b.String()
}

// Decls returns the value declarations of m in source order.
func (m Module) Decls() []*ValueDecl {
	var decls []*ValueDecl
	for _, item := range m.Items {
		if decl, ok := item.(*ValueDecl); ok {
			decls = append(decls, decl)
		}
	}
	return decls
}

type lexeme token.Token

func (l lexeme) String() string {
	return l.Lexeme
}

// parenthesize takes a head string and a variadic number of nodes that implement the fmt.Stringer interface.
// It returns a fmt.Stringer that represents a string where each node is parenthesized and separated by a space.
// If the head string is not empty, it is added at the beginning of the string.
func parenthesize(head string, elems ...fmt.Stringer) fmt.Stringer {
	var b strings.Builder
	b.WriteString("(")
	elemsStr := concat(elems).String()
	if head != "" {
		b.WriteString(head)
	}
	if elemsStr != "" {
		if head != "" {
			b.WriteString(" ")
		}
		b.WriteString(elemsStr)
	}
	b.WriteString(")")
	return &b
}

// concat takes a slice of nodes that implement the fmt.Stringer interface.
// It returns a fmt.Stringer that represents a string where each node is separated by a space.
func concat[T fmt.Stringer](elems []T) fmt.Stringer {
	var b strings.Builder
	for _, elem := range elems {
		// ignore empty string
		// e.g. concat({}) == ""
		str := elem.String()
		if str == "" {
			continue
		}
		if b.Len() != 0 {
			b.WriteString(" ")
		}
		b.WriteString(str)
	}
	return &b
}
