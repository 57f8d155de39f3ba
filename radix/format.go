package radix

import (
	"math"

	"github.com/lattice-substrate/ecmakit/floatbits"
)

// bufferSize covers the longest output: radix 2 needs up to 1074 fractional
// digits or 1024 integral digits, plus the sign and the point.
const bufferSize = 2200

// assembly is a scratch buffer filled from the back. Output occupies
// buf[write:truncate]; fractional digits occupy buf[boundary:truncate].
//
// 0 <= write <= boundary <= truncate <= bufferSize holds throughout.
type assembly struct {
	buf      [bufferSize]byte
	write    int
	truncate int
	boundary int
}

func (a *assembly) reset() {
	a.write, a.boundary, a.truncate = bufferSize, bufferSize, bufferSize
}

func (a *assembly) push(c byte) {
	a.write--
	a.buf[a.write] = c
}

func (a *assembly) bytes() []byte {
	return a.buf[a.write:a.truncate]
}

// Format returns the base-r representation of x.
func Format(x float64, r Radix) string {
	var b [64]byte
	return string(Append(b[:0], x, r))
}

// Append appends the base-r representation of x to dst and returns the
// extended buffer. It panics if r is not a valid Radix.
func Append(dst []byte, x float64, r Radix) []byte {
	if !r.Valid() {
		panic("radix: invalid " + r.String())
	}
	switch {
	case math.IsNaN(x):
		return append(dst, "NaN"...)
	case x == 0:
		return append(dst, '0')
	case math.IsInf(x, 1):
		return append(dst, "Infinity"...)
	case math.IsInf(x, -1):
		return append(dst, "-Infinity"...)
	}
	var a assembly
	a.reset()
	a.finite(x, r)
	return append(dst, a.bytes()...)
}

// finite assembles a finite non-zero x.
func (a *assembly) finite(x float64, r Radix) {
	mag := math.Abs(x)
	n, fraction := split(mag)
	delta := math.Max(0.5*(floatbits.NextAwayFromZero(mag)-mag), floatbits.NextAwayFromZero(0))

	if fraction >= delta {
		if a.fraction(fraction, delta, r) {
			n.increment()
		} else {
			a.push('.')
		}
	}
	n.pushDigits(a, r)
	if math.Signbit(x) {
		a.push('-')
	}
}

// fraction emits the fractional digits of f, stopping once the remainder is
// within delta of either neighbour. It reports whether rounding carried out
// of every fractional digit, in which case nothing is left behind and the
// integral part must be incremented.
func (a *assembly) fraction(f, delta float64, r Radix) (carry bool) {
	base := float64(r)
	roundUp := false
	for {
		f *= base
		delta *= base
		d := byte(f)
		a.push(Digit(d))
		f -= float64(d)
		if f > 0.5 || (f == 0.5 && d&1 == 1) {
			if f+delta > 1 {
				roundUp = true
				break
			}
		} else if f < delta {
			break
		}
	}

	return a.closeFraction(r, roundUp)
}

// closeFraction puts the fractional digits in reading order and applies a
// pending round up to them, dropping trailing top digits through truncate.
// It reports whether the carry consumed every fractional digit.
func (a *assembly) closeFraction(r Radix, roundUp bool) (carry bool) {
	a.boundary = a.write
	reverse(a.buf[a.boundary:a.truncate])
	if !roundUp {
		return false
	}

	top := r.maxDigit()
	for a.truncate > a.boundary && a.buf[a.truncate-1] == top {
		a.truncate--
	}
	if a.truncate == a.boundary {
		return true
	}
	v, _ := DigitValue(a.buf[a.truncate-1])
	a.buf[a.truncate-1] = Digit(v + 1)
	return false
}

func reverse(b []byte) {
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
}
