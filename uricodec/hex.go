// Package uricodec implements the ECMAScript global string codecs: escape,
// unescape, encodeURI, encodeURIComponent, decodeURI and decodeURIComponent.
//
// Inputs and outputs are UTF-8 byte strings. Where ECMAScript works on UTF-16
// code units, runes outside the Basic Multilingual Plane are handled as
// surrogate pairs.
package uricodec

import "github.com/lattice-substrate/ecmakit/radix"

// AppendHexByte appends b as two upper-case hexadecimal digits.
func AppendHexByte(dst []byte, b byte) []byte {
	return append(dst, radix.UpperDigit(b>>4), radix.UpperDigit(b&0xF))
}

// HexValue decodes two hexadecimal digits of either case.
func HexValue(hi, lo byte) (byte, bool) {
	h, ok := hexDigit(hi)
	if !ok {
		return 0, false
	}
	l, ok := hexDigit(lo)
	if !ok {
		return 0, false
	}
	return h<<4 | l, true
}

func hexDigit(c byte) (byte, bool) {
	v, ok := radix.DigitValue(c)
	return v, ok && v < 16
}

func appendPercent(dst []byte, b byte) []byte {
	return AppendHexByte(append(dst, '%'), b)
}

// appendUnit appends %uXXXX for a UTF-16 code unit.
func appendUnit(dst []byte, u uint16) []byte {
	dst = append(dst, '%', 'u')
	dst = AppendHexByte(dst, byte(u>>8))
	return AppendHexByte(dst, byte(u))
}

// byteSet is a 256-bit membership table.
type byteSet [4]uint64

func newByteSet(ranges ...string) *byteSet {
	var s byteSet
	for _, r := range ranges {
		for i := 0; i < len(r); i++ {
			s[r[i]>>6] |= 1 << (r[i] & 63)
		}
	}
	return &s
}

func (s *byteSet) has(c byte) bool {
	return s[c>>6]&(1<<(c&63)) != 0
}

const alphanumeric = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
