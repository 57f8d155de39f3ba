package conformance_test

import (
	"bufio"
	"math"
	"math/big"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	cyberphone "github.com/cyberphone/json-canonicalization/go/src/webpki.org/jsoncanonicalizer"

	"github.com/lattice-substrate/ecmakit/ecmaerr"
	"github.com/lattice-substrate/ecmakit/floatbits"
	"github.com/lattice-substrate/ecmakit/radix"
	"github.com/lattice-substrate/ecmakit/rng"
)

func checkInvalidRadixRejected(t *testing.T, h *harness) {
	for _, n := range []int{-1, 0, 1, 37, 255} {
		_, err := radix.ToString(1, n)
		if class, _ := ecmaerr.ClassOf(err); class != ecmaerr.InvalidRadix {
			t.Fatalf("ToString(1, %d): class %q err=%v", n, class, err)
		}
	}
	assertInvalid(t, runCLI(t, h, []string{"tostring", "--radix", "1"}, []byte("1\n")), "INVALID_RADIX")
	assertInvalid(t, runCLI(t, h, []string{"tostring", "--radix=37"}, []byte("1\n")), "INVALID_RADIX")
}

func checkSpecialValues(t *testing.T, _ *harness) {
	cases := []struct {
		in   float64
		want string
	}{
		{math.NaN(), "NaN"},
		{math.Inf(1), "Infinity"},
		{math.Inf(-1), "-Infinity"},
		{0, "0"},
		{math.Copysign(0, -1), "0"},
	}
	for n := 2; n <= 36; n++ {
		for _, tc := range cases {
			got, err := radix.ToString(tc.in, n)
			if err != nil || got != tc.want {
				t.Fatalf("ToString(%v, %d) = %q, %v want %q", tc.in, n, got, err, tc.want)
			}
		}
	}
}

func checkSignSymmetry(t *testing.T, _ *harness) {
	for _, bits := range numgenCorpus() {
		v := math.Float64frombits(bits)
		if math.Signbit(v) || v == 0 {
			continue
		}
		for n := 2; n <= 36; n++ {
			r := radix.MustNew(n)
			if pos, neg := radix.Format(v, r), radix.Format(-v, r); neg != "-"+pos {
				t.Fatalf("bits=%016x radix %d: %q vs %q", bits, n, pos, neg)
			}
		}
	}
}

func checkSafeIntegersExact(t *testing.T, _ *harness) {
	g := rng.New(2024)
	for i := 0; i < 2000; i++ {
		v := int64(g.Uint64() >> 11)
		for n := 2; n <= 36; n++ {
			got, err := radix.ToString(float64(v), n)
			if err != nil {
				t.Fatal(err)
			}
			if want := strconv.FormatInt(v, n); got != want {
				t.Fatalf("ToString(%d, %d) = %q want %q", v, n, got, want)
			}
		}
	}
}

func checkWideIntegersExact(t *testing.T, _ *harness) {
	values := []float64{1 << 53, 1 << 64, 1 << 127, 1 << 128, 3 << 140, 1e300, math.MaxFloat64}
	for _, v := range values {
		exact, _ := new(big.Float).SetFloat64(v).Int(nil)
		for _, n := range []int{2, 3, 7, 16, 36} {
			r := radix.MustNew(n)
			if got, want := radix.Format(v, r), exact.Text(n); got != want {
				t.Fatalf("Format(%g, %d) = %q want %q", v, n, got, want)
			}
		}
	}
}

func checkHexVectorTable(t *testing.T, h *harness) {
	rows := loadVectorRows(t, filepath.Join(h.root, "radix", "testdata", "vectors.csv"))
	seen := 0
	for _, row := range rows {
		if row.radix != 16 {
			continue
		}
		seen++
		got, err := radix.ToString(row.value, 16)
		if err != nil || got != row.output {
			t.Fatalf("ToString(%s, 16) = %q, %v want %q", row.literal, got, err, row.output)
		}
	}
	if seen < 20 {
		t.Fatalf("expected the full radix 16 table, found %d rows", seen)
	}
}

func checkTernaryVectorTable(t *testing.T, _ *harness) {
	cases := []struct {
		in   float64
		want string
	}{
		{1.0 / 4.0, "0.0202020202020202020202020202020202"},
		{2.0 / 7.0, "0.0212010212010212010212010212010212"},
		{4.0 / 3.0, "1.1"},
		{13.0 / 3.0, "11.1"},
		{1.0 / 9.0, "0.01"},
		{81, "10000"},
		{81 + 1.0/9.0, "10000.01"},
	}
	for _, tc := range cases {
		got, err := radix.ToString(tc.in, 3)
		if err != nil || got != tc.want {
			t.Fatalf("ToString(%v, 3) = %q, %v want %q", tc.in, got, err, tc.want)
		}
	}
}

func checkPowerOfTwoRoundTrip(t *testing.T, _ *harness) {
	inputs := numgenCorpus()
	g := rng.New(77)
	for i := 0; i < 500; i++ {
		inputs = append(inputs, g.Uint64())
	}
	for _, bits := range inputs {
		v := math.Float64frombits(bits)
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		for _, n := range []int{2, 4, 8, 16, 32} {
			s := radix.Format(v, radix.MustNew(n))
			if back := parseRadix(t, s, n); back != v && !(back == 0 && v == 0) {
				t.Fatalf("bits=%016x radix %d: %q parses to %v", bits, n, s, back)
			}
		}
	}
}

func checkDigitAlphabet(t *testing.T, _ *harness) {
	g := rng.New(5)
	for i := 0; i < 300; i++ {
		v := math.Float64frombits(g.Uint64())
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		n := int(g.Uint32Range(2, 37))
		s := strings.TrimPrefix(radix.Format(v, radix.MustNew(n)), "-")
		if strings.Count(s, ".") > 1 {
			t.Fatalf("bits=%016x radix %d: %q has several points", math.Float64bits(v), n, s)
		}
		if strings.Contains(s, ".") && (strings.HasSuffix(s, "0") || strings.HasSuffix(s, ".")) {
			t.Fatalf("bits=%016x radix %d: %q has a trailing fractional zero", math.Float64bits(v), n, s)
		}
		for j := 0; j < len(s); j++ {
			if s[j] == '.' {
				continue
			}
			d, ok := radix.DigitValue(s[j])
			if !ok || int(d) >= n || (s[j] >= 'A' && s[j] <= 'Z') {
				t.Fatalf("bits=%016x radix %d: bad digit %q in %q", math.Float64bits(v), n, s[j], s)
			}
		}
	}
}

func checkDecimalMatchesNumberToString(t *testing.T, _ *harness) {
	for _, bits := range numgenCorpus() {
		v := math.Float64frombits(bits)
		want, err := cyberphone.NumberToJSON(v)
		if err != nil {
			t.Fatalf("cyberphone bits=%016x: %v", bits, err)
		}
		got, err := radix.ToString(v, 10)
		if err != nil || got != want {
			t.Fatalf("bits=%016x: got %q, %v want %q", bits, got, err, want)
		}
	}
}

func checkDecomposeRecompose(t *testing.T, _ *harness) {
	g := rng.New(99)
	for i := 0; i < 5000; i++ {
		v := math.Float64frombits(g.Uint64())
		if floatbits.Classify(v) != floatbits.Normal {
			continue
		}
		sign, exp, mant := floatbits.Decompose(v)
		if mant>>52 != 1 {
			t.Fatalf("%v: significand %#x lacks the implicit bit", v, mant)
		}
		if back := floatbits.Recompose(sign, exp, mant); math.Float64bits(back) != math.Float64bits(v) {
			t.Fatalf("%v: recomposed to %v", v, back)
		}
	}
}

func checkNextAwayFromZeroEdges(t *testing.T, _ *harness) {
	cases := []struct {
		in, want float64
	}{
		{0, math.SmallestNonzeroFloat64},
		{1, math.Nextafter(1, 2)},
		{-1, math.Nextafter(-1, -2)},
		{math.MaxFloat64, math.Inf(1)},
		{math.Copysign(0, -1), 0},
		{-math.SmallestNonzeroFloat64, 0},
	}
	for _, tc := range cases {
		if got := floatbits.NextAwayFromZero(tc.in); got != tc.want {
			t.Fatalf("NextAwayFromZero(%v) = %v want %v", tc.in, got, tc.want)
		}
	}
	for _, in := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		if got := floatbits.NextAwayFromZero(in); !math.IsNaN(got) {
			t.Fatalf("NextAwayFromZero(%v) = %v want NaN", in, got)
		}
	}
}

type vectorRow struct {
	literal string
	value   float64
	radix   int
	output  string
}

func loadVectorRows(t *testing.T, path string) []vectorRow {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open vectors: %v", err)
	}
	defer func() { _ = f.Close() }()

	var rows []vectorRow
	s := bufio.NewScanner(f)
	for s.Scan() {
		line := strings.TrimSpace(s.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.Split(line, ",")
		if len(parts) != 3 {
			t.Fatalf("malformed vector row %q", line)
		}
		v, err := strconv.ParseFloat(parts[0], 64)
		if err != nil {
			t.Fatalf("bad value in %q: %v", line, err)
		}
		n, err := strconv.Atoi(parts[1])
		if err != nil {
			t.Fatalf("bad radix in %q: %v", line, err)
		}
		rows = append(rows, vectorRow{literal: parts[0], value: v, radix: n, output: parts[2]})
	}
	if err := s.Err(); err != nil {
		t.Fatalf("scan vectors: %v", err)
	}
	return rows
}

// parseRadix reads a [-]digits[.digits] string in base n back to the nearest
// double.
func parseRadix(t *testing.T, s string, n int) float64 {
	t.Helper()
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	intPart, fracPart, _ := strings.Cut(s, ".")

	ip, ok := new(big.Int).SetString(intPart, n)
	if !ok {
		t.Fatalf("bad integral digits %q", intPart)
	}
	v := new(big.Rat).SetInt(ip)
	if fracPart != "" {
		num, ok := new(big.Int).SetString(fracPart, n)
		if !ok {
			t.Fatalf("bad fractional digits %q", fracPart)
		}
		den := new(big.Int).Exp(big.NewInt(int64(n)), big.NewInt(int64(len(fracPart))), nil)
		v.Add(v, new(big.Rat).SetFrac(num, den))
	}
	f, _ := v.Float64()
	if neg {
		f = -f
	}
	return f
}

func numgenCorpus() []uint64 {
	out := make([]uint64, len(numgenStaticBits))
	copy(out, numgenStaticBits[:])
	return out
}
