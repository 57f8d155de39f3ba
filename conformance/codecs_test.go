package conformance_test

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"net/url"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/lattice-substrate/ecmakit/b64"
	"github.com/lattice-substrate/ecmakit/ecmaerr"
	"github.com/lattice-substrate/ecmakit/rng"
	"github.com/lattice-substrate/ecmakit/uricodec"
)

// randomText returns a valid UTF-8 string mixing ASCII, Latin-1, BMP and
// astral runes.
func randomText(g *rng.Rng, runes int) string {
	var b strings.Builder
	for i := 0; i < runes; i++ {
		var r rune
		switch g.Uint32n(4) {
		case 0:
			r = rune(g.Uint32Range(0x20, 0x7F))
		case 1:
			r = rune(g.Uint32Range(0x80, 0x100))
		case 2:
			r = rune(g.Uint32Range(0x100, 0xD800))
		default:
			r = rune(g.Uint32Range(0x10000, 0x110000))
		}
		b.WriteRune(r)
	}
	return b.String()
}

func checkEscapeRoundTrip(t *testing.T, _ *harness) {
	g := rng.New(31)
	for i := 0; i < 500; i++ {
		s := randomText(g, int(g.Uint32n(24)))
		esc := uricodec.Escape(s)
		for j := 0; j < len(esc); j++ {
			if esc[j] >= utf8.RuneSelf {
				t.Fatalf("escape(%q) = %q is not ASCII", s, esc)
			}
		}
		if back := uricodec.Unescape(esc); back != s {
			t.Fatalf("unescape(escape(%q)) = %q via %q", s, back, esc)
		}
	}
}

func checkUnescapeMalformedLiteral(t *testing.T, _ *harness) {
	for _, s := range []string{"%", "%4", "%zz", "%u12", "%u12G4", "100%", "%%41"} {
		want := strings.ReplaceAll(s, "%41", "A")
		if got := uricodec.Unescape(s); got != want {
			t.Fatalf("unescape(%q) = %q want %q", s, got, want)
		}
	}
}

func checkEncodeComponentDecodes(t *testing.T, _ *harness) {
	g := rng.New(47)
	for i := 0; i < 500; i++ {
		s := randomText(g, int(g.Uint32n(24)))
		enc, err := uricodec.EncodeURIComponent(s)
		if err != nil {
			t.Fatalf("encodeURIComponent(%q): %v", s, err)
		}
		oracle, err := url.PathUnescape(enc)
		if err != nil || oracle != s {
			t.Fatalf("net/url decodes %q to %q, %v want %q", enc, oracle, err, s)
		}
		back, err := uricodec.DecodeURIComponent(enc)
		if err != nil || back != s {
			t.Fatalf("decodeURIComponent(%q) = %q, %v want %q", enc, back, err, s)
		}
	}
}

func checkDecodeURIKeepsReserved(t *testing.T, _ *harness) {
	for _, c := range ";/?:@&=+$,#" {
		esc := fmt.Sprintf("%%%02X", c)
		got, err := uricodec.DecodeURI(esc + "%41")
		if err != nil || got != esc+"A" {
			t.Fatalf("decodeURI(%q) = %q, %v", esc+"%41", got, err)
		}
		got, err = uricodec.DecodeURIComponent(esc)
		if err != nil || got != string(c) {
			t.Fatalf("decodeURIComponent(%q) = %q, %v", esc, got, err)
		}
	}
}

func checkMalformedURIClassified(t *testing.T, h *harness) {
	for _, s := range []string{"%", "%E2%82", "%C0%80", "%ED%A0%80", "%FF", "%E2%28%A1", "%4"} {
		_, err := uricodec.DecodeURIComponent(s)
		if class, _ := ecmaerr.ClassOf(err); class != ecmaerr.URIMalformed {
			t.Fatalf("decodeURIComponent(%q): class %q err=%v", s, class, err)
		}
	}
	assertInvalid(t, runCLI(t, h, []string{"decodeuri"}, []byte("%E2%82\n")), "URI_MALFORMED")
}

func checkBase64MatchesRFC4648(t *testing.T, _ *harness) {
	g := rng.New(3)
	for i := 0; i < 300; i++ {
		src := make([]byte, g.Uint32n(64))
		for j := range src {
			src[j] = byte(g.Uint32())
		}
		enc := b64.Encode(src)
		if want := base64.StdEncoding.EncodeToString(src); enc != want {
			t.Fatalf("btoa(%x) = %q want %q", src, enc, want)
		}
		back, err := b64.Decode(enc)
		if err != nil || !bytes.Equal(back, src) {
			t.Fatalf("atob(%q) = %x, %v want %x", enc, back, err, src)
		}
	}
}

func checkBase64ErrorClasses(t *testing.T, _ *harness) {
	cases := []struct {
		in    string
		class ecmaerr.FailureClass
	}{
		{"a", ecmaerr.Base64Length},
		{"abcde", ecmaerr.Base64Length},
		{"ab!d", ecmaerr.Base64Content},
		{"ab\ncd==", ecmaerr.Base64Length},
		{"ab\nc", ecmaerr.Base64Content},
		{"=abc", ecmaerr.Base64Content},
	}
	for _, tc := range cases {
		_, err := b64.Decode(tc.in)
		if class, _ := ecmaerr.ClassOf(err); class != tc.class {
			t.Fatalf("atob(%q): class %q want %q (%v)", tc.in, class, tc.class, err)
		}
	}
}

func checkRandomDeterministic(t *testing.T, h *harness) {
	a, b := rng.New(123), rng.New(123)
	for i := 0; i < 1000; i++ {
		if x, y := a.Uint64(), b.Uint64(); x != y {
			t.Fatalf("draw %d: %#x != %#x", i, x, y)
		}
	}
	args := []string{"random", "--seed", "123", "--count", "10"}
	first := runCLI(t, h, args, nil)
	second := runCLI(t, h, args, nil)
	if first.exitCode != 0 || first.stdout != second.stdout {
		t.Fatalf("random not reproducible: %+v vs %+v", first, second)
	}
}
