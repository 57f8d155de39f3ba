package radix

const (
	lowerDigits = "0123456789abcdefghijklmnopqrstuvwxyz"
	upperDigits = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

const invalidDigit = 0xFF

// digitValues maps an ASCII byte to its digit value, or invalidDigit.
var digitValues = func() (t [256]byte) {
	for i := range t {
		t[i] = invalidDigit
	}
	for v := 0; v < len(lowerDigits); v++ {
		t[lowerDigits[v]] = byte(v)
		t[upperDigits[v]] = byte(v)
	}
	return t
}()

// Digit returns the lower-case ASCII digit for v, which must be below 36.
func Digit(v byte) byte {
	return lowerDigits[v]
}

// UpperDigit returns the upper-case ASCII digit for v, which must be below 36.
func UpperDigit(v byte) byte {
	return upperDigits[v]
}

// DigitValue returns the value of the digit c. Letters match regardless of
// case. ok is false when c is not an ASCII letter or decimal digit.
func DigitValue(c byte) (v byte, ok bool) {
	v = digitValues[c]
	return v, v != invalidDigit
}
