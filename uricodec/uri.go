package uricodec

import (
	"unicode/utf8"

	"github.com/lattice-substrate/ecmakit/ecmaerr"
)

const (
	uriMark     = "-_.!~*'()"
	uriReserved = ";/?:@&=+$,#"
)

var (
	encodeURIKeep       = newByteSet(alphanumeric, uriMark, uriReserved)
	encodeComponentKeep = newByteSet(alphanumeric, uriMark)
	decodeURIKeep       = newByteSet(uriReserved)
	decodeComponentKeep = newByteSet()
)

// EncodeURI returns the ECMAScript encodeURI() of s.
func EncodeURI(s string) (string, error) {
	b, err := AppendEncodeURI(nil, []byte(s))
	return string(b), err
}

// EncodeURIComponent returns the ECMAScript encodeURIComponent() of s.
func EncodeURIComponent(s string) (string, error) {
	b, err := AppendEncodeURIComponent(nil, []byte(s))
	return string(b), err
}

// DecodeURI returns the ECMAScript decodeURI() of s.
func DecodeURI(s string) (string, error) {
	b, err := AppendDecodeURI(nil, []byte(s))
	return string(b), err
}

// DecodeURIComponent returns the ECMAScript decodeURIComponent() of s.
func DecodeURIComponent(s string) (string, error) {
	b, err := AppendDecodeURIComponent(nil, []byte(s))
	return string(b), err
}

// AppendEncodeURI appends the encodeURI() form of src to dst. Reserved
// characters, which delimit URI components, are kept.
func AppendEncodeURI(dst, src []byte) ([]byte, error) {
	return appendEncode(dst, src, encodeURIKeep)
}

// AppendEncodeURIComponent appends the encodeURIComponent() form of src.
func AppendEncodeURIComponent(dst, src []byte) ([]byte, error) {
	return appendEncode(dst, src, encodeComponentKeep)
}

// AppendDecodeURI appends the decodeURI() form of src. Escapes that decode
// to a reserved character stay escaped.
func AppendDecodeURI(dst, src []byte) ([]byte, error) {
	return appendDecode(dst, src, decodeURIKeep)
}

// AppendDecodeURIComponent appends the decodeURIComponent() form of src.
func AppendDecodeURIComponent(dst, src []byte) ([]byte, error) {
	return appendDecode(dst, src, decodeComponentKeep)
}

func appendEncode(dst, src []byte, keep *byteSet) ([]byte, error) {
	for i := 0; i < len(src); {
		c := src[i]
		if c < utf8.RuneSelf {
			if keep.has(c) {
				dst = append(dst, c)
			} else {
				dst = appendPercent(dst, c)
			}
			i++
			continue
		}
		r, size := utf8.DecodeRune(src[i:])
		if r == utf8.RuneError && size == 1 {
			return dst, ecmaerr.Newf(ecmaerr.InvalidUTF8, i, "invalid UTF-8 byte 0x%02X", c)
		}
		for _, b := range src[i : i+size] {
			dst = appendPercent(dst, b)
		}
		i += size
	}
	return dst, nil
}

func appendDecode(dst, src []byte, keep *byteSet) ([]byte, error) {
	for i := 0; i < len(src); {
		if src[i] != '%' {
			dst = append(dst, src[i])
			i++
			continue
		}
		start := i
		b, err := octetAt(src, i)
		if err != nil {
			return dst, err
		}
		i += 3
		if b < utf8.RuneSelf {
			if keep.has(b) {
				dst = append(dst, src[start:i]...)
			} else {
				dst = append(dst, b)
			}
			continue
		}

		n := sequenceLength(b)
		if n == 0 {
			return dst, ecmaerr.Newf(ecmaerr.URIMalformed, start, "invalid UTF-8 lead octet %%%02X", b)
		}
		var seq [utf8.UTFMax]byte
		seq[0] = b
		for k := 1; k < n; k++ {
			c, err := octetAt(src, i)
			if err != nil {
				return dst, err
			}
			if c&0xC0 != 0x80 {
				return dst, ecmaerr.Newf(ecmaerr.URIMalformed, i, "invalid UTF-8 continuation octet %%%02X", c)
			}
			seq[k] = c
			i += 3
		}
		// DecodeRune rejects overlong forms, surrogates and values past U+10FFFF.
		if r, size := utf8.DecodeRune(seq[:n]); r == utf8.RuneError && size <= 1 {
			return dst, ecmaerr.New(ecmaerr.URIMalformed, start, "escaped octets are not a valid UTF-8 sequence")
		}
		dst = append(dst, seq[:n]...)
	}
	return dst, nil
}

// octetAt decodes the %XX escape at src[i].
func octetAt(src []byte, i int) (byte, error) {
	if i >= len(src) || src[i] != '%' {
		return 0, ecmaerr.New(ecmaerr.URIMalformed, i, "expected escaped continuation octet")
	}
	if i+3 > len(src) {
		return 0, ecmaerr.New(ecmaerr.URIMalformed, i, "truncated escape")
	}
	b, ok := HexValue(src[i+1], src[i+2])
	if !ok {
		return 0, ecmaerr.Newf(ecmaerr.URIMalformed, i, "invalid escape %q", src[i:i+3])
	}
	return b, nil
}

// sequenceLength returns the UTF-8 sequence length announced by a lead
// octet, or 0 when b cannot start a multi-byte sequence.
func sequenceLength(b byte) int {
	switch {
	case b&0xE0 == 0xC0:
		return 2
	case b&0xF0 == 0xE0:
		return 3
	case b&0xF8 == 0xF0:
		return 4
	default:
		return 0
	}
}
