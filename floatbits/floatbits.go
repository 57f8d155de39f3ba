// Package floatbits isolates IEEE 754 binary64 bit arithmetic: splitting a
// double into sign, unbiased exponent and significand, putting it back
// together, and stepping to the adjacent representable value.
package floatbits

import "math"

const (
	mantissaBits = 52
	exponentBits = 11
	bias         = 1023

	implicitBit  = uint64(1) << mantissaBits
	mantissaMask = implicitBit - 1
	exponentMask = uint64(1)<<exponentBits - 1
	signMask     = uint64(1) << (mantissaBits + exponentBits)
)

// Class is the category of a double.
type Class uint8

const (
	Normal Class = iota
	Subnormal
	Zero
	Infinite
	NaN
)

func (c Class) String() string {
	switch c {
	case Normal:
		return "normal"
	case Subnormal:
		return "subnormal"
	case Zero:
		return "zero"
	case Infinite:
		return "infinite"
	case NaN:
		return "nan"
	default:
		return "unknown"
	}
}

// Classify reports the category of x. The sign is ignored.
func Classify(x float64) Class {
	b := math.Float64bits(x)
	exp := (b >> mantissaBits) & exponentMask
	frac := b & mantissaMask
	switch {
	case exp == exponentMask && frac != 0:
		return NaN
	case exp == exponentMask:
		return Infinite
	case exp == 0 && frac == 0:
		return Zero
	case exp == 0:
		return Subnormal
	default:
		return Normal
	}
}

// Decompose splits x into its sign (0 or 1), unbiased exponent and 53-bit
// significand with the implicit leading bit set, so that
// |x| = mantissa * 2^(exponent-52).
//
// x must be finite, non-zero and normal; other inputs give unspecified results.
func Decompose(x float64) (sign uint, exponent int, mantissa uint64) {
	b := math.Float64bits(x)
	sign = uint(b >> (mantissaBits + exponentBits))
	exponent = int((b>>mantissaBits)&exponentMask) - bias
	mantissa = b&mantissaMask | implicitBit
	return sign, exponent, mantissa
}

// Recompose is the inverse of Decompose.
func Recompose(sign uint, exponent int, mantissa uint64) float64 {
	b := uint64(sign&1) << (mantissaBits + exponentBits)
	b |= uint64(exponent+bias) & exponentMask << mantissaBits
	b |= mantissa & mantissaMask
	return math.Float64frombits(b)
}

// NextAwayFromZero returns the representable value adjacent to x with the
// next larger magnitude, keeping the sign.
//
// Infinities and NaN have no successor and yield NaN. Negative zero and
// negative subnormals yield +0. The successor of math.MaxFloat64 is +Inf.
func NextAwayFromZero(x float64) float64 {
	b := math.Float64bits(x)
	if b&^signMask >= exponentMask<<mantissaBits {
		return math.NaN()
	}
	if b&signMask != 0 && b&(exponentMask<<mantissaBits) == 0 {
		return 0
	}
	return math.Float64frombits(b + 1)
}
