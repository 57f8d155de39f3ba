// Package numlit parses ECMAScript numeric string literals, the grammar
// Number(string) accepts: decimal literals with optional sign, fraction and
// exponent, the Infinity and NaN words, and 0x/0o/0b integer literals.
//
// Unlike Number(string), malformed input is an error rather than NaN.
package numlit

import (
	"math"
	"math/big"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/tdewolff/parse/v2"

	"github.com/lattice-substrate/ecmakit/ecmaerr"
	"github.com/lattice-substrate/ecmakit/radix"
)

// Parse returns the value of the numeric literal s, ignoring surrounding
// white space. Values beyond the double range become ±Infinity.
func Parse(s string) (float64, error) {
	trimmed := strings.TrimLeftFunc(s, isSpace)
	lead := len(s) - len(trimmed)
	s = strings.TrimRightFunc(trimmed, isSpace)
	if s == "" {
		return 0, ecmaerr.New(ecmaerr.InvalidNumber, lead, "empty number literal")
	}
	l := &lexer{z: parse.NewInputString(s), src: s, base: lead}
	v, err := l.literal()
	if err != nil {
		return 0, err
	}
	if l.z.Pos() != len(s) {
		r, _ := utf8.DecodeRuneInString(s[l.z.Pos():])
		return 0, l.errorf("unexpected %q after number", r)
	}
	return v, nil
}

// isSpace reports whether r is an ECMAScript StrWhiteSpaceChar: WhiteSpace
// (Zs, TAB, VT, FF, ZWNBSP) or LineTerminator.
func isSpace(r rune) bool {
	switch r {
	case '\t', '\n', '\v', '\f', '\r', '\ufeff', '\u2028', '\u2029':
		return true
	}
	return unicode.Is(unicode.Zs, r)
}

type lexer struct {
	z    *parse.Input
	src  string
	base int // offset of src within the caller's string
}

func (l *lexer) errorf(format string, args ...any) error {
	off := l.base + l.z.Pos()
	return ecmaerr.Wrap(ecmaerr.InvalidNumber, off, "malformed number literal", parse.NewErrorLexer(l.z, format, args...))
}

func (l *lexer) literal() (float64, error) {
	if l.z.Peek(0) == '0' {
		switch l.z.Peek(1) | 0x20 {
		case 'x':
			return l.prefixed(16)
		case 'o':
			return l.prefixed(8)
		case 'b':
			return l.prefixed(2)
		}
	}
	if l.word("NaN") {
		return math.NaN(), nil
	}

	neg := false
	switch l.z.Peek(0) {
	case '-':
		neg = true
		l.z.Move(1)
	case '+':
		l.z.Move(1)
	}
	if l.word("Infinity") {
		if neg {
			return math.Inf(-1), nil
		}
		return math.Inf(1), nil
	}
	start := l.z.Pos()
	if err := l.decimal(); err != nil {
		return 0, err
	}
	text := l.src[start:l.z.Pos()]
	v, err := strconv.ParseFloat(text, 64)
	if err != nil && !math.IsInf(v, 0) {
		return 0, l.errorf("%v", err)
	}
	if neg {
		v = -v
	}
	return v, nil
}

// decimal consumes digits [. digits] [e [sign] digits] with at least one
// digit before or after the point.
func (l *lexer) decimal() error {
	n := l.digits()
	if l.z.Peek(0) == '.' {
		l.z.Move(1)
		n += l.digits()
	}
	if n == 0 {
		return l.errorf("expected digit")
	}
	if c := l.z.Peek(0); c == 'e' || c == 'E' {
		l.z.Move(1)
		if c := l.z.Peek(0); c == '+' || c == '-' {
			l.z.Move(1)
		}
		if l.digits() == 0 {
			return l.errorf("expected exponent digit")
		}
	}
	return nil
}

func (l *lexer) digits() int {
	n := 0
	for c := l.z.Peek(0); '0' <= c && c <= '9'; c = l.z.Peek(0) {
		l.z.Move(1)
		n++
	}
	return n
}

func (l *lexer) word(w string) bool {
	for i := 0; i < len(w); i++ {
		if l.z.Peek(i) != w[i] {
			return false
		}
	}
	l.z.Move(len(w))
	return true
}

// prefixed parses 0x, 0o and 0b literals of any length, rounding to the
// nearest double.
func (l *lexer) prefixed(base int) (float64, error) {
	l.z.Move(2)
	start := l.z.Pos()
	for {
		c := l.z.Peek(0)
		v, ok := radix.DigitValue(c)
		if !ok || int(v) >= base {
			break
		}
		l.z.Move(1)
	}
	if l.z.Pos() == start {
		return 0, l.errorf("expected base-%d digit", base)
	}
	text := l.src[start:l.z.Pos()]
	if u, err := strconv.ParseUint(text, base, 64); err == nil {
		return float64(u), nil
	}
	n, _ := new(big.Int).SetString(text, base)
	f, _ := new(big.Float).SetInt(n).Float64()
	return f, nil
}
