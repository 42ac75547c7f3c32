package eval

import (
	"fmt"
	"strings"

	"github.com/takoeight0821/q/ast"
	"github.com/takoeight0821/q/utils"
)

type builtin func(in *Interpreter, call *ast.Call) (ast.Node, error)

func lookupBuiltin(name ast.Name) (builtin, bool) {
	switch name {
	case "print":
		return printBuiltin, true
	default:
		return nil, false
	}
}

// Builtins returns the names that always resolve to a built-in.
func Builtins() []string {
	return []string{"print"}
}

// print writes its arguments as a list and returns "ok".
func printBuiltin(in *Interpreter, call *ast.Call) (ast.Node, error) {
	args, err := in.evalArgs(call.Args)
	if err != nil {
		return nil, err
	}

	elems := make([]string, len(args))
	for i, arg := range args {
		elems[i] = Repr(arg)
	}
	if _, err := fmt.Fprintf(in.out, "[%s]\n", strings.Join(elems, ", ")); err != nil {
		return nil, utils.ErrorAt{Where: call.Name, Err: fmt.Errorf("print: %w", err)}
	}

	return ast.NewString("ok"), nil
}

// Repr returns the debug representation of a value.
// String literals keep their quotes; functions are opaque.
func Repr(v ast.Node) string {
	switch v := v.(type) {
	case *ast.Literal:
		return v.Lexeme
	case *ast.Function:
		return "<function>"
	default:
		return v.String()
	}
}
