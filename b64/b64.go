// Package b64 implements btoa/atob style base64 with the standard padded
// alphabet and classified decode errors.
package b64

import (
	"encoding/base64"
	"errors"

	"github.com/lattice-substrate/ecmakit/ecmaerr"
)

var enc = base64.StdEncoding

// Encode returns the padded base64 encoding of src.
func Encode(src []byte) string {
	return enc.EncodeToString(src)
}

// AppendEncode appends the padded base64 encoding of src to dst.
func AppendEncode(dst, src []byte) []byte {
	return enc.AppendEncode(dst, src)
}

// Decode decodes padded base64 text.
func Decode(s string) ([]byte, error) {
	return AppendDecode(nil, []byte(s))
}

// AppendDecode appends the decoding of src to dst. A length that is not a
// multiple of four is BASE64_LENGTH; a byte outside the alphabet or misplaced
// padding is BASE64_CONTENT at that byte.
func AppendDecode(dst, src []byte) ([]byte, error) {
	if len(src)%4 != 0 {
		return dst, ecmaerr.Newf(ecmaerr.Base64Length, -1, "length %d is not a multiple of 4", len(src))
	}
	// The standard decoder skips line breaks; they are content errors here.
	for i, c := range src {
		if c == '\r' || c == '\n' {
			return dst, ecmaerr.Newf(ecmaerr.Base64Content, i, "invalid byte 0x%02X", c)
		}
	}
	out, err := enc.AppendDecode(dst, src)
	if err != nil {
		var corrupt base64.CorruptInputError
		if errors.As(err, &corrupt) {
			off := int(corrupt)
			return dst, ecmaerr.Wrap(ecmaerr.Base64Content, off, "invalid base64 content", err)
		}
		return dst, ecmaerr.Wrap(ecmaerr.InternalError, -1, "base64 decode", err)
	}
	return out, nil
}
