package uricodec

import "unicode/utf8"

var escapeKeep = newByteSet(alphanumeric, "@*_+-./")

// Escape returns the ECMAScript escape() of s.
func Escape(s string) string {
	return string(AppendEscape(nil, []byte(s)))
}

// AppendEscape appends the ECMAScript escape() of src to dst.
//
// Code units below 0x100 become %XX and the rest %uXXXX. Bytes that are not
// part of valid UTF-8 are taken as Latin-1 code units.
func AppendEscape(dst, src []byte) []byte {
	for i := 0; i < len(src); {
		c := src[i]
		if c < utf8.RuneSelf {
			if escapeKeep.has(c) {
				dst = append(dst, c)
			} else {
				dst = appendPercent(dst, c)
			}
			i++
			continue
		}
		r, size := utf8.DecodeRune(src[i:])
		i += size
		if r == utf8.RuneError && size == 1 {
			dst = appendPercent(dst, c)
			continue
		}
		hi, lo, pair := SplitSurrogates(r)
		switch {
		case pair:
			dst = appendUnit(appendUnit(dst, hi), lo)
		case hi < 0x100:
			dst = appendPercent(dst, byte(hi))
		default:
			dst = appendUnit(dst, hi)
		}
	}
	return dst
}

// Unescape returns the ECMAScript unescape() of s.
func Unescape(s string) string {
	return string(AppendUnescape(nil, []byte(s)))
}

// AppendUnescape appends the ECMAScript unescape() of src to dst. %uXXXX and
// %XX name UTF-16 code units and are written as UTF-8; escaped surrogate
// pairs combine into one rune. Malformed escapes are copied unchanged.
func AppendUnescape(dst, src []byte) []byte {
	var pending uint16 // high surrogate waiting for its pair
	flush := func() {
		if pending != 0 {
			dst = appendUnitUTF8(dst, pending)
			pending = 0
		}
	}
	for i := 0; i < len(src); {
		u, n, ok := unitAt(src, i)
		if !ok {
			flush()
			dst = append(dst, src[i])
			i++
			continue
		}
		i += n
		switch {
		case pending != 0 && isLowSurrogate(u):
			dst = AppendUTF16(dst, pending, u)
			pending = 0
		case isHighSurrogate(u):
			flush()
			pending = u
		default:
			flush()
			dst = appendUnitUTF8(dst, u)
		}
	}
	flush()
	return dst
}

// unitAt decodes a %uXXXX or %XX escape at src[i].
func unitAt(src []byte, i int) (unit uint16, n int, ok bool) {
	if src[i] != '%' {
		return 0, 0, false
	}
	if i+6 <= len(src) && src[i+1] == 'u' {
		hi, okHi := HexValue(src[i+2], src[i+3])
		lo, okLo := HexValue(src[i+4], src[i+5])
		if okHi && okLo {
			return uint16(hi)<<8 | uint16(lo), 6, true
		}
	}
	if i+3 <= len(src) {
		if b, ok := HexValue(src[i+1], src[i+2]); ok {
			return uint16(b), 3, true
		}
	}
	return 0, 0, false
}
