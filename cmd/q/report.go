package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/takoeight0821/q/diagnostic"
	"github.com/takoeight0821/q/env"
	"github.com/takoeight0821/q/eval"
	"github.com/takoeight0821/q/parser"
	"github.com/ztrue/tracerr"
)

// report writes err to stderr and returns errFailed.
// Diagnostics are drawn against source; undefined symbols get suggestions
// from names.
func (st *state) report(name, source string, err error, names []string) error {
	if st.trace {
		fmt.Fprintln(st.stderr, tracerr.SprintSourceColor(tracerr.Wrap(err)))
		return errFailed
	}

	r := diagnostic.NewRenderer(st.stderr, name, source)
	if werr := r.Fprint(st.stderr, err); werr != nil {
		return werr
	}

	var undefined *env.UndefinedSymbolError
	if errors.As(err, &undefined) {
		if suggestions := diagnostic.Suggest(string(undefined.Name), names); len(suggestions) > 0 {
			fmt.Fprint(st.stderr, r.Hint("did you mean "+strings.Join(suggestions, " or ")+"?"))
		}
	}
	return errFailed
}

// candidates returns the names declared at the top of source plus the built-ins.
func candidates(source string) []string {
	names := eval.Builtins()
	module, err := parser.New("", source).Parse()
	if err != nil {
		return names
	}
	for _, decl := range module.Decls() {
		names = append(names, decl.Name.Lexeme)
	}
	return names
}
