package uricodec

import (
	"unicode/utf16"
	"unicode/utf8"
)

// SplitSurrogates returns the UTF-16 code units of r: one unit for runes in
// the Basic Multilingual Plane (lo is 0), two for the rest.
func SplitSurrogates(r rune) (hi, lo uint16, pair bool) {
	if r < 0x10000 {
		return uint16(r), 0, false
	}
	h, l := utf16.EncodeRune(r)
	return uint16(h), uint16(l), true
}

// AppendUTF16 appends the UTF-8 encoding of the surrogate pair hi, lo.
// An invalid pair appends U+FFFD.
func AppendUTF16(dst []byte, hi, lo uint16) []byte {
	return utf8.AppendRune(dst, utf16.DecodeRune(rune(hi), rune(lo)))
}

// appendUnitUTF8 appends a single non-surrogate code unit as UTF-8. Lone
// surrogates have no UTF-8 form and become U+FFFD.
func appendUnitUTF8(dst []byte, u uint16) []byte {
	return utf8.AppendRune(dst, rune(u))
}

func isHighSurrogate(u uint16) bool { return u >= 0xD800 && u < 0xDC00 }
func isLowSurrogate(u uint16) bool  { return u >= 0xDC00 && u < 0xE000 }
