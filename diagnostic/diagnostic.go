// Package diagnostic defines the errors that the front-end reports in batches
// and renders them against the source they point into.
package diagnostic

import (
	"strings"

	"github.com/takoeight0821/q/token"
)

// Diagnostic is an error that points at a range of the source text.
type Diagnostic interface {
	error
	Span() token.Span
}

// Diagnostics is an ordered batch of diagnostics.
// Only Errors make it an error; Warnings are carried alongside.
type Diagnostics struct {
	Errors   []Diagnostic
	Warnings []Diagnostic
}

func (d *Diagnostics) Error() string {
	msgs := make([]string, len(d.Errors))
	for i, err := range d.Errors {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "\n")
}

// Unwrap exposes every error so errors.Is and errors.As see them.
func (d *Diagnostics) Unwrap() []error {
	errs := make([]error, len(d.Errors))
	for i, err := range d.Errors {
		errs[i] = err
	}
	return errs
}

// All returns every Diagnostic carried by err, in order.
// err may be a single Diagnostic, a *Diagnostics or any error tree built
// with errors.Join or %w.
func All(err error) []Diagnostic {
	if err == nil {
		return nil
	}
	if d, ok := err.(Diagnostic); ok {
		return []Diagnostic{d}
	}
	switch err := err.(type) {
	case interface{ Unwrap() []error }:
		var ds []Diagnostic
		for _, e := range err.Unwrap() {
			ds = append(ds, All(e)...)
		}
		return ds
	case interface{ Unwrap() error }:
		return All(err.Unwrap())
	}
	return nil
}

