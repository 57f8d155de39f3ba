// Package ecmafloat implements the ECMAScript Number::toString algorithm for
// radix 10 (ECMA-262, "Number::toString", steps 5 to 9).
//
// Digits come from the Burger-Dybvig free-format algorithm on exact big.Int
// arithmetic, with ties resolved to the even digit as Note 2 of the algorithm
// allows. The output for every double is byte-identical to ECMAScript
// String(x): "NaN", "Infinity" and "-Infinity" for the non-finite values and
// "0" for both zeros.
package ecmafloat

import (
	"errors"
	"math"
	"math/big"
)

// ErrNotFinite is returned by FormatJSON for NaN and the infinities, which
// have no JSON number form.
var ErrNotFinite = errors.New("ecmafloat: value is not finite (NaN or Infinity)")

var bigTen = big.NewInt(10)

// Format returns the ECMAScript String(x) text of x.
func Format(x float64) string {
	var b [32]byte
	return string(Append(b[:0], x))
}

// Append appends the ECMAScript String(x) text of x to dst.
func Append(dst []byte, x float64) []byte {
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
	if x < 0 {
		dst = append(dst, '-')
		x = -x
	}
	digits, n := shortestDigits(x)
	return appendLayout(dst, digits, n)
}

// FormatJSON is Format restricted to values with a JSON number form.
func FormatJSON(x float64) (string, error) {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return "", ErrNotFinite
	}
	return Format(x), nil
}

// appendLayout places the decimal point for value = 0.digits * 10^n.
func appendLayout(dst, digits []byte, n int) []byte {
	k := len(digits)
	switch {
	case k <= n && n <= 21:
		dst = append(dst, digits...)
		for i := k; i < n; i++ {
			dst = append(dst, '0')
		}
	case 0 < n && n <= 21:
		dst = append(dst, digits[:n]...)
		dst = append(dst, '.')
		dst = append(dst, digits[n:]...)
	case -6 < n && n <= 0:
		dst = append(dst, '0', '.')
		for i := n; i < 0; i++ {
			dst = append(dst, '0')
		}
		dst = append(dst, digits...)
	default:
		dst = append(dst, digits[0])
		if k > 1 {
			dst = append(dst, '.')
			dst = append(dst, digits[1:]...)
		}
		dst = append(dst, 'e')
		if n-1 >= 0 {
			dst = append(dst, '+')
		}
		dst = appendInt(dst, n-1)
	}
	return dst
}

func appendInt(dst []byte, v int) []byte {
	if v < 0 {
		dst = append(dst, '-')
		v = -v
	}
	var tmp [20]byte
	i := len(tmp)
	for {
		i--
		tmp[i] = byte('0' + v%10)
		v /= 10
		if v == 0 {
			break
		}
	}
	return append(dst, tmp[i:]...)
}

// scaled holds the Burger-Dybvig state: value = r/s, and the rounding
// interval is (r-mMinus)/s to (r+mPlus)/s.
type scaled struct {
	r, s, mPlus, mMinus *big.Int
	// even means the interval bounds themselves round to the value.
	even bool
}

func newScaled(x float64) *scaled {
	b := math.Float64bits(x)
	frac := b & (1<<52 - 1)
	biased := int(b>>52) & 0x7FF

	mant, exp := frac, -1074
	if biased != 0 {
		mant, exp = frac|1<<52, biased-1075
	}
	// The gap below a power of two is half the gap above it.
	lowerBoundary := biased > 1 && frac == 0

	st := &scaled{
		r:      new(big.Int).SetUint64(mant),
		s:      big.NewInt(1),
		mPlus:  big.NewInt(1),
		mMinus: big.NewInt(1),
		even:   mant%2 == 0,
	}
	shift := uint(1)
	if lowerBoundary {
		shift = 2
		st.mPlus.SetInt64(2)
	}
	st.r.Lsh(st.r, shift)
	st.s.Lsh(st.s, shift)
	if exp >= 0 {
		st.r.Lsh(st.r, uint(exp))
		st.mPlus.Lsh(st.mPlus, uint(exp))
		st.mMinus.Lsh(st.mMinus, uint(exp))
	} else {
		st.s.Lsh(st.s, uint(-exp))
	}
	return st
}

// reachesDown reports whether the remainder is inside the lower rounding
// bound.
func (st *scaled) reachesDown() bool {
	c := st.r.Cmp(st.mMinus)
	return c < 0 || (st.even && c == 0)
}

// reachesUp reports whether the remainder is inside the upper rounding bound.
func (st *scaled) reachesUp() bool {
	c := new(big.Int).Add(st.r, st.mPlus).Cmp(st.s)
	return c > 0 || (st.even && c == 0)
}

func (st *scaled) times10() {
	st.r.Mul(st.r, bigTen)
	st.mPlus.Mul(st.mPlus, bigTen)
	st.mMinus.Mul(st.mMinus, bigTen)
}

// shortestDigits returns the shortest digit string d and exponent n with
// x = 0.d * 10^n that reads back as x.
func shortestDigits(x float64) ([]byte, int) {
	st := newScaled(x)

	n := estimateK(x)
	switch {
	case n > 0:
		st.s.Mul(st.s, pow10(n))
	case n < 0:
		p := pow10(-n)
		st.r.Mul(st.r, p)
		st.mPlus.Mul(st.mPlus, p)
		st.mMinus.Mul(st.mMinus, p)
	}

	// Fix the estimate so the first digit lands in [1, 9].
	if st.reachesUp() {
		st.s.Mul(st.s, bigTen)
		n++
	}
	for {
		st.times10()
		if st.r.Cmp(st.s) >= 0 || st.reachesUp() {
			break
		}
		n--
	}

	digits := make([]byte, 0, 20)
	q := new(big.Int)
	for first := true; ; first = false {
		if !first {
			st.times10()
		}
		q.DivMod(st.r, st.s, st.r)
		d := byte(q.Int64())

		down, up := st.reachesDown(), st.reachesUp()
		switch {
		case !down && !up:
			digits = append(digits, '0'+d)
			continue
		case down && !up:
		case up && !down:
			d++
		default:
			c := new(big.Int).Lsh(st.r, 1).Cmp(st.s)
			if c > 0 || (c == 0 && d%2 == 1) {
				d++
			}
		}
		digits = append(digits, '0'+d)
		break
	}
	return carry(digits, n)
}

// carry propagates a final digit of 10 leftwards and strips trailing zeros.
func carry(digits []byte, n int) ([]byte, int) {
	for i := len(digits) - 1; i > 0 && digits[i] > '9'; i-- {
		digits[i] = '0'
		digits[i-1]++
	}
	if digits[0] > '9' {
		digits[0] = '0'
		digits = append([]byte{'1'}, digits...)
		n++
	}
	for len(digits) > 1 && digits[len(digits)-1] == '0' {
		digits = digits[:len(digits)-1]
	}
	return digits, n
}

// estimateK returns ceil(log10(x)) or a value off by one, which the caller
// corrects.
func estimateK(x float64) int {
	return int(math.Ceil(math.Log10(x) - 1e-10))
}

// pow10Cache holds 10^0 through 10^699, enough for every double.
var pow10Cache [700]*big.Int

func init() {
	pow10Cache[0] = big.NewInt(1)
	for i := 1; i < len(pow10Cache); i++ {
		pow10Cache[i] = new(big.Int).Mul(pow10Cache[i-1], bigTen)
	}
}

// pow10 returns 10^n. The result is shared and must not be mutated.
func pow10(n int) *big.Int {
	if n < len(pow10Cache) {
		return pow10Cache[n]
	}
	return new(big.Int).Exp(bigTen, big.NewInt(int64(n)), nil)
}
