package conformance_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	cyberphone "github.com/cyberphone/json-canonicalization/go/src/webpki.org/jsoncanonicalizer"
)

func checkUsageExitCodes(t *testing.T, h *harness) {
	res := runCLI(t, h, nil, nil)
	if res.exitCode != 2 || !strings.Contains(res.stderr, "usage:") {
		t.Fatalf("no command: %+v", res)
	}
	res = runCLI(t, h, []string{"bogus"}, nil)
	if res.exitCode != 2 || !strings.Contains(res.stderr, "unknown command") {
		t.Fatalf("unknown command: %+v", res)
	}
}

func checkInternalWriteFailureExitCode(t *testing.T, h *harness) {
	f, err := os.OpenFile("/dev/full", os.O_WRONLY, 0)
	if err != nil {
		t.Skipf("open /dev/full: %v", err)
	}
	t.Cleanup(func() { _ = f.Close() })

	res := runCLIToWriter(t, h, []string{"tostring", "--radix", "16"}, []byte("255\n"), f)
	if res.exitCode != 10 {
		t.Fatalf("expected exit 10, got %d stderr=%q", res.exitCode, res.stderr)
	}
}

func checkJSONOutputCanonical(t *testing.T, h *harness) {
	runs := []struct {
		args  []string
		stdin string
	}{
		{[]string{"tostring", "--radix", "16", "--json"}, "255\n0.5\n"},
		{[]string{"encodeuricomponent", "--json"}, "<a b>\n"},
		{[]string{"random", "--seed", "9", "--count", "4", "--json"}, ""},
	}
	for _, run := range runs {
		args := run.args
		res := runCLI(t, h, args, []byte(run.stdin))
		if res.exitCode != 0 {
			t.Fatalf("%v: exit %d stderr=%q", args, res.exitCode, res.stderr)
		}
		body := strings.TrimSuffix(res.stdout, "\n")
		again, err := cyberphone.Transform([]byte(body))
		if err != nil {
			t.Fatalf("%v: output is not JSON: %v", args, err)
		}
		if string(again) != body {
			t.Fatalf("%v: output not canonical:\n got %s\nwant %s", args, body, again)
		}
	}
}

func checkFileAndStdinParity(t *testing.T, h *harness) {
	inputPath := filepath.Join(t.TempDir(), "input.txt")
	input := []byte("0.1\n2021\n-7.25\n")
	if err := os.WriteFile(inputPath, input, 0o600); err != nil {
		t.Fatalf("write input file: %v", err)
	}
	fromFile := runCLI(t, h, []string{"tostring", "--radix", "2", inputPath}, nil)
	fromStdin := runCLI(t, h, []string{"tostring", "--radix", "2", "-"}, input)
	if fromFile.exitCode != 0 || fromStdin.exitCode != 0 {
		t.Fatalf("unexpected exits: file=%+v stdin=%+v", fromFile, fromStdin)
	}
	if fromFile.stdout != fromStdin.stdout {
		t.Fatalf("file/stdin mismatch: %q vs %q", fromFile.stdout, fromStdin.stdout)
	}
}

func checkLiteralForms(t *testing.T, h *harness) {
	in := "0x1F\n0o17\n0B101\n1.5e3\n.5\n-Infinity\n  42  \n"
	res := runCLI(t, h, []string{"tostring"}, []byte(in))
	want := "31\n15\n5\n1500\n0.5\n-Infinity\n42\n"
	if res.exitCode != 0 || res.stdout != want {
		t.Fatalf("got exit %d stdout %q want %q stderr=%q", res.exitCode, res.stdout, want, res.stderr)
	}
	assertInvalid(t, runCLI(t, h, []string{"tostring"}, []byte("0x\n")), "INVALID_NUMBER")
	assertInvalid(t, runCLI(t, h, []string{"tostring"}, []byte("1e\n")), "INVALID_NUMBER")
}
