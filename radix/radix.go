// Package radix formats IEEE 754 doubles in any base from 2 to 36 the way
// ECMAScript Number.prototype.toString(radix) does: the shortest digit string
// that still identifies the value, rounded half to even.
package radix

import (
	"fmt"

	"github.com/lattice-substrate/ecmakit/ecmaerr"
)

// Radix is a numeral base in [2, 36]. The zero value is not valid; build one
// with New or MustNew, or use a named constant.
type Radix uint8

const (
	Binary         Radix = 2
	Ternary        Radix = 3
	Octal          Radix = 8
	Decimal        Radix = 10
	Hexadecimal    Radix = 16
	Duotrigesimal  Radix = 32
	Hexatrigesimal Radix = 36
)

const (
	minRadix = 2
	maxRadix = 36
)

// New validates n as a radix.
func New(n int) (Radix, error) {
	if n < minRadix || n > maxRadix {
		return 0, ecmaerr.Newf(ecmaerr.InvalidRadix, -1, "radix %d outside [%d, %d]", n, minRadix, maxRadix)
	}
	return Radix(n), nil
}

// MustNew is like New but panics on an invalid radix.
func MustNew(n int) Radix {
	r, err := New(n)
	if err != nil {
		panic(err)
	}
	return r
}

// Valid reports whether r is in [2, 36].
func (r Radix) Valid() bool {
	return r >= minRadix && r <= maxRadix
}

// maxDigit is the largest digit character of r.
func (r Radix) maxDigit() byte {
	return Digit(byte(r) - 1)
}

func (r Radix) String() string {
	return fmt.Sprintf("radix(%d)", uint8(r))
}
