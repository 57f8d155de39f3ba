package radix

import "github.com/lattice-substrate/ecmakit/ecmafloat"

// ToString implements Number.prototype.toString(radix). A radix outside
// [2, 36] is an INVALID_RADIX error, the counterpart of the RangeError thrown
// by ECMAScript. Radix 10 uses the Number::toString decimal layout, including
// exponent notation.
func ToString(x float64, radix int) (string, error) {
	r, err := New(radix)
	if err != nil {
		return "", err
	}
	return string(AppendString(nil, x, r)), nil
}

// AppendString appends the Number.prototype.toString(r) text of x to dst.
func AppendString(dst []byte, x float64, r Radix) []byte {
	if r == Decimal {
		return ecmafloat.Append(dst, x)
	}
	return Append(dst, x, r)
}
