package eval

import (
	"fmt"

	"github.com/takoeight0821/q/ast"
)

type CannotCallNonFunctionError struct {
	Name  ast.Name
	Value ast.Node
}

func (e *CannotCallNonFunctionError) Error() string {
	return fmt.Sprintf("cannot call %s: %s is not a function", e.Name, Repr(e.Value))
}

// ClauseMatchError reports a call no clause accepts.
type ClauseMatchError struct {
	Name  ast.Name
	Arity int
}

func (e *ClauseMatchError) Error() string {
	return fmt.Sprintf("no clause of %s matches %d arguments", e.Name, e.Arity)
}

// RecursiveValueError reports a declaration whose value depends on itself,
// as in `x = y y = x`.
type RecursiveValueError struct {
	Name ast.Name
}

func (e *RecursiveValueError) Error() string {
	return fmt.Sprintf("value of %s depends on itself", e.Name)
}
