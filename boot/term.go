// Package boot compiles a single integer term to a native program that
// prints it.
package boot

import (
	"fmt"
	"math"

	"github.com/alecthomas/participle"
)

// Term is the whole language of the boot compiler.
type Term struct {
	Neg   bool   `@"-"?`
	Group *Term  `( "(" @@ ")"`
	Int   *int64 `| @Int )`
}

func (t *Term) value() int64 {
	var n int64
	if t.Group != nil {
		n = t.Group.value()
	} else {
		n = *t.Int
	}
	if t.Neg {
		return -n
	}
	return n
}

var termParser = participle.MustBuild(&Term{})

// ParseTerm parses src and returns the integer it denotes.
func ParseTerm(src string) (int32, error) {
	term := &Term{}
	if err := termParser.ParseString(src, term); err != nil {
		return 0, fmt.Errorf("parse term: %w", err)
	}

	n := term.value()
	if n < math.MinInt32 || n > math.MaxInt32 {
		return 0, fmt.Errorf("parse term: %d does not fit in 32 bits", n)
	}
	return int32(n), nil
}
