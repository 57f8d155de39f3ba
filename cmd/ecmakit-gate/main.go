// Command ecmakit-gate runs the repository verification gates in order and
// stops at the first failure.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sort"
	"time"

	"github.com/lattice-substrate/ecmakit/clilog"
)

type gateStep struct {
	label string
	args  []string
	env   map[string]string
	// slow steps are skipped under --quick.
	slow bool
}

type commandRunner interface {
	Run(ctx context.Context, name string, args []string, env map[string]string, stdout io.Writer, stderr io.Writer) error
}

type realRunner struct{}

var gateSteps = []gateStep{
	{label: "go vet", args: []string{"vet", "./..."}},
	{label: "unit tests", args: []string{"test", "./...", "-count=1", "-timeout=20m"}},
	{label: "race tests", args: []string{"test", "./...", "-race", "-count=1", "-timeout=25m"}, env: map[string]string{"CGO_ENABLED": "1"}, slow: true},
	{label: "conformance", args: []string{"test", "./conformance", "-count=1", "-timeout=10m", "-v"}},
	{label: "radix fuzz smoke", args: []string{"test", "./radix", "-run=^$", "-fuzz=FuzzFormat", "-fuzztime=15s"}, slow: true},
	{label: "decimal fuzz smoke", args: []string{"test", "./ecmafloat", "-run=^$", "-fuzz=FuzzFormatRoundTrip", "-fuzztime=15s"}, slow: true},
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr, realRunner{}))
}

func run(args []string, stdout, stderr io.Writer, runner commandRunner) int {
	quick, list := false, false
	for _, arg := range args {
		switch arg {
		case "--help", "-h":
			if err := writeUsage(stdout); err != nil {
				return 1
			}
			return 0
		case "--quick":
			quick = true
		case "--list":
			list = true
		default:
			if err := writef(stderr, "error: unknown argument %q\n", arg); err != nil {
				return 1
			}
			if err := writeUsage(stderr); err != nil {
				return 1
			}
			return 2
		}
	}

	steps := selectSteps(quick)
	if list {
		for _, step := range steps {
			if err := writef(stdout, "%s: go %v\n", step.label, step.args); err != nil {
				return 1
			}
		}
		return 0
	}

	log := clilog.New(stderr, clilog.Info)
	ctx := context.Background()
	for i, step := range steps {
		if err := writef(stdout, "[%d/%d] %s\n", i+1, len(steps), step.label); err != nil {
			return 1
		}
		start := time.Now()
		if err := runner.Run(ctx, "go", step.args, step.env, stdout, stderr); err != nil {
			if writeErr := writef(stderr, "gate failed: %s: %v\n", step.label, err); writeErr != nil {
				return 1
			}
			return 1
		}
		log.Infof("%s passed in %s", step.label, time.Since(start).Round(time.Millisecond))
	}

	if err := writeLine(stdout, "all gates passed"); err != nil {
		return 1
	}
	return 0
}

func selectSteps(quick bool) []gateStep {
	if !quick {
		return gateSteps
	}
	var steps []gateStep
	for _, s := range gateSteps {
		if !s.slow {
			steps = append(steps, s)
		}
	}
	return steps
}

func (realRunner) Run(ctx context.Context, name string, args []string, env map[string]string, stdout io.Writer, stderr io.Writer) error {
	// #nosec G204 -- command and args are fixed repository gate invocations.
	cmd := exec.CommandContext(ctx, name, args...)
	if len(env) != 0 {
		cmd.Env = mergeEnv(cmd.Environ(), env)
	}
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s %v: %w", name, args, err)
	}
	return nil
}

// mergeEnv appends overrides to base in key order. Later entries win in
// os/exec, so overrides replace inherited values.
func mergeEnv(base []string, overrides map[string]string) []string {
	keys := make([]string, 0, len(overrides))
	for k := range overrides {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	merged := append([]string(nil), base...)
	for _, k := range keys {
		merged = append(merged, k+"="+overrides[k])
	}
	return merged
}

func writeUsage(w io.Writer) error {
	if err := writeLine(w, "usage: go run ./cmd/ecmakit-gate [--quick] [--list] [--help]"); err != nil {
		return err
	}
	if err := writeLine(w, "runs: vet, tests, race, conformance, fuzz smoke"); err != nil {
		return err
	}
	return writeLine(w, "--quick skips the race and fuzz steps; --list prints the steps without running them")
}

func writeLine(w io.Writer, msg string) error {
	return writef(w, "%s\n", msg)
}

func writef(w io.Writer, format string, args ...any) error {
	if _, err := fmt.Fprintf(w, format, args...); err != nil {
		return fmt.Errorf("write stream: %w", err)
	}
	return nil
}
