// Command ecmakit exposes the ECMAScript number and string codecs on the
// command line: Number.prototype.toString with a radix, escape/unescape,
// the URI codecs, btoa/atob and a seeded random number stream.
package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/lattice-substrate/ecmakit/clilog"
	"github.com/lattice-substrate/ecmakit/config"
	"github.com/lattice-substrate/ecmakit/ecmaerr"
	"github.com/lattice-substrate/ecmakit/radix"
)

const (
	exitSuccess  = 0
	exitInvalid  = 2
	exitInternal = 10
)

const usage = "usage: ecmakit <command> [options] [file|-]"

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout io.Writer, stderr io.Writer) int {
	if len(args) == 0 {
		if err := writeLine(stderr, usage); err != nil {
			return exitInternal
		}
		return exitInvalid
	}

	switch args[0] {
	case "help", "--help", "-h":
		if err := writeUsage(stderr); err != nil {
			return exitInternal
		}
		return exitSuccess
	}

	cmd, ok := lookupCommand(args[0])
	if !ok {
		if err := writef(stderr, "unknown command: %s\n", args[0]); err != nil {
			return exitInternal
		}
		if err := writeLine(stderr, usage); err != nil {
			return exitInternal
		}
		return exitInvalid
	}
	return execute(cmd, args[1:], stdin, stdout, stderr)
}

func execute(cmd *command, args []string, stdin io.Reader, stdout io.Writer, stderr io.Writer) int {
	opts, positional, err := parseFlags(args)
	if err != nil {
		return writeClassifiedError(stderr, err)
	}
	if opts.help {
		if err := writeCommandHelp(stderr, cmd); err != nil {
			return exitInternal
		}
		return exitSuccess
	}

	cfg, err := resolveConfig(opts)
	if err != nil {
		return writeClassifiedError(stderr, err)
	}
	log := newLogger(stderr, cfg, opts)
	log.Debugf("command=%s radix=%d json=%t max_input_bytes=%d", cmd.name, cfg.Radix, cfg.JSON, cfg.MaxInputBytes)

	var input []byte
	if cmd.readsInput {
		if err := ensureSingleInput(positional); err != nil {
			return writeClassifiedError(stderr, err)
		}
		input, err = readInput(positional, stdin, cfg.MaxInputBytes)
		if err != nil {
			return writeClassifiedError(stderr, err)
		}
		log.Debugf("read %d input bytes", len(input))
	} else if len(positional) > 0 {
		return writeClassifiedError(stderr, ecmaerr.Newf(ecmaerr.CLIUsage, -1, "%s takes no input file", cmd.name))
	}

	res, err := cmd.run(&invocation{cfg: cfg, log: log}, input)
	if err != nil {
		return writeClassifiedError(stderr, err)
	}

	out, err := render(res, cfg.JSON)
	if err != nil {
		return writeClassifiedError(stderr, err)
	}
	if err := emit(out, opts.output, stdout); err != nil {
		return writeClassifiedError(stderr, err)
	}
	if opts.output != "" {
		log.Infof("wrote %d bytes to %s", len(out), opts.output)
	}
	return exitSuccess
}

type options struct {
	radix   int
	seed    uint64
	count   int
	json    bool
	output  string
	config  string
	verbose bool
	quiet   bool
	help    bool
	set     map[string]bool
}

var valueFlags = map[string]bool{
	"--radix":  true,
	"--seed":   true,
	"--count":  true,
	"--output": true,
	"--config": true,
}

func parseFlags(args []string) (options, []string, error) {
	opts := options{set: map[string]bool{}}
	var positional []string
	consumeAsPositional := false
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if consumeAsPositional {
			positional = append(positional, arg)
			continue
		}

		switch arg {
		case "--json":
			opts.json = true
			opts.set["json"] = true
			continue
		case "--verbose", "-v":
			opts.verbose = true
			continue
		case "--quiet", "-q":
			opts.quiet = true
			continue
		case "--help", "-h":
			opts.help = true
			continue
		case "--":
			consumeAsPositional = true
			continue
		case "-":
			positional = append(positional, arg)
			continue
		}

		if !strings.HasPrefix(arg, "-") {
			positional = append(positional, arg)
			continue
		}

		name, value, inline := strings.Cut(arg, "=")
		if !valueFlags[name] {
			return options{}, nil, ecmaerr.Newf(ecmaerr.CLIUsage, -1, "unknown option: %s", arg)
		}
		if !inline {
			if i+1 >= len(args) {
				return options{}, nil, ecmaerr.Newf(ecmaerr.CLIUsage, -1, "option %s requires a value", name)
			}
			i++
			value = args[i]
		}
		if err := opts.setValue(name, value); err != nil {
			return options{}, nil, err
		}
	}
	if opts.verbose && opts.quiet {
		return options{}, nil, ecmaerr.New(ecmaerr.CLIUsage, -1, "--verbose and --quiet are mutually exclusive")
	}
	return opts, positional, nil
}

func (o *options) setValue(name, value string) error {
	key := strings.TrimPrefix(name, "--")
	switch name {
	case "--radix":
		n, err := strconv.Atoi(value)
		if err != nil {
			return ecmaerr.Wrap(ecmaerr.InvalidRadix, -1, "--radix", err)
		}
		if _, err := radix.New(n); err != nil {
			return err
		}
		o.radix = n
	case "--seed":
		n, err := strconv.ParseUint(value, 0, 64)
		if err != nil {
			return ecmaerr.Wrap(ecmaerr.CLIUsage, -1, "--seed", err)
		}
		o.seed = n
	case "--count":
		n, err := strconv.Atoi(value)
		if err != nil {
			return ecmaerr.Wrap(ecmaerr.CLIUsage, -1, "--count", err)
		}
		if n < 1 || n > config.MaxCount {
			return ecmaerr.Newf(ecmaerr.CLIUsage, -1, "--count must be in [1, %d], got %d", config.MaxCount, n)
		}
		o.count = n
	case "--output":
		if value == "" {
			return ecmaerr.New(ecmaerr.CLIUsage, -1, "--output requires a path")
		}
		o.output = value
	case "--config":
		o.config = value
	}
	o.set[key] = true
	return nil
}

// resolveConfig layers the built-in defaults, the --config document and the
// explicit flags, in that order.
func resolveConfig(opts options) (*config.Config, error) {
	cfg := config.Default()
	if opts.config != "" {
		loaded, err := config.Load(opts.config)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if opts.set["radix"] {
		cfg.Radix = opts.radix
	}
	if opts.set["seed"] {
		cfg.Seed = opts.seed
	}
	if opts.set["count"] {
		cfg.Count = opts.count
	}
	if opts.set["json"] {
		cfg.JSON = true
	}
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger(stderr io.Writer, cfg *config.Config, opts options) *clilog.Logger {
	level, err := clilog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = clilog.Warn
	}
	switch {
	case opts.verbose:
		level = clilog.Debug
	case opts.quiet:
		level = clilog.Silent
	}
	return clilog.New(stderr, level)
}

func readInput(positional []string, stdin io.Reader, maxInputSize int) ([]byte, error) {
	if len(positional) == 0 || positional[0] == "-" {
		return readBounded(stdin, maxInputSize)
	}

	f, err := os.Open(positional[0])
	if err != nil {
		return nil, ecmaerr.Wrap(ecmaerr.CLIUsage, -1, fmt.Sprintf("open input %q", positional[0]), err)
	}
	defer func() {
		_ = f.Close()
	}()

	data, err := readBounded(f, maxInputSize)
	if err != nil {
		return nil, fmt.Errorf("read file %q: %w", positional[0], err)
	}
	return data, nil
}

func readBounded(r io.Reader, maxInputSize int) ([]byte, error) {
	lr := io.LimitReader(r, int64(maxInputSize)+1)
	data, err := io.ReadAll(lr)
	if err != nil {
		return nil, ecmaerr.Wrap(ecmaerr.InternalIO, -1, "read input", err)
	}
	if len(data) > maxInputSize {
		return nil, ecmaerr.Newf(ecmaerr.BoundExceeded, maxInputSize, "input exceeds maximum size %d bytes", maxInputSize)
	}
	return data, nil
}

func ensureSingleInput(positional []string) error {
	if len(positional) <= 1 {
		return nil
	}
	return ecmaerr.New(ecmaerr.CLIUsage, -1, "multiple input files specified")
}

// writeClassifiedError prints err and returns the exit code of its failure
// class. Unclassified errors are internal.
func writeClassifiedError(stderr io.Writer, err error) int {
	class, ok := ecmaerr.ClassOf(err)
	if !ok {
		class = ecmaerr.InternalError
	}
	if werr := writef(stderr, "error: %v\n", err); werr != nil {
		return exitInternal
	}
	return class.ExitCode()
}

func writeUsage(w io.Writer) error {
	if err := writeLine(w, usage); err != nil {
		return err
	}
	if err := writeLine(w, "commands:"); err != nil {
		return err
	}
	for _, c := range commands {
		if err := writef(w, "  %-20s %s\n", c.name, c.summary); err != nil {
			return err
		}
	}
	return writeOptionHelp(w)
}

func writeCommandHelp(w io.Writer, c *command) error {
	input := " [file|-]"
	if !c.readsInput {
		input = ""
	}
	if err := writef(w, "usage: ecmakit %s [options]%s\n", c.name, input); err != nil {
		return err
	}
	if err := writef(w, "  %s\n", c.summary); err != nil {
		return err
	}
	return writeOptionHelp(w)
}

func writeOptionHelp(w io.Writer) error {
	lines := []string{
		"options:",
		"  --radix N       output radix for tostring and random (2..36, default 10)",
		"  --seed N        random seed",
		"  --count N       numbers to draw for random",
		"  --json          emit one canonical JSON document",
		"  --output FILE   write output atomically to FILE",
		"  --config FILE   load defaults from a YAML document",
		"  --verbose       log debug diagnostics to stderr",
		"  --quiet         suppress diagnostics",
	}
	for _, l := range lines {
		if err := writeLine(w, l); err != nil {
			return err
		}
	}
	return nil
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
