package main

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/lattice-substrate/ecmakit/b64"
	"github.com/lattice-substrate/ecmakit/clilog"
	"github.com/lattice-substrate/ecmakit/config"
	"github.com/lattice-substrate/ecmakit/numlit"
	"github.com/lattice-substrate/ecmakit/radix"
	"github.com/lattice-substrate/ecmakit/rng"
	"github.com/lattice-substrate/ecmakit/uricodec"
)

// invocation is the resolved state one command runs with.
type invocation struct {
	cfg *config.Config
	log *clilog.Logger
}

// result is what a command produced: text is the plain output, record the
// value rendered under --json.
type result struct {
	text   []byte
	record any
}

type command struct {
	name       string
	summary    string
	readsInput bool
	run        func(inv *invocation, input []byte) (result, error)
}

var commands = []*command{
	{name: "tostring", summary: "format one number literal per line with Number.prototype.toString(radix)", readsInput: true, run: runToString},
	transform("escape", "apply escape() to the input", func(dst, src []byte) ([]byte, error) {
		return uricodec.AppendEscape(dst, src), nil
	}),
	transform("unescape", "apply unescape() to the input", func(dst, src []byte) ([]byte, error) {
		return uricodec.AppendUnescape(dst, src), nil
	}),
	transform("encodeuri", "apply encodeURI() to the input", uricodec.AppendEncodeURI),
	transform("encodeuricomponent", "apply encodeURIComponent() to the input", uricodec.AppendEncodeURIComponent),
	transform("decodeuri", "apply decodeURI() to the input", uricodec.AppendDecodeURI),
	transform("decodeuricomponent", "apply decodeURIComponent() to the input", uricodec.AppendDecodeURIComponent),
	{name: "btoa", summary: "base64-encode the raw input bytes", readsInput: true, run: runBtoa},
	transform("atob", "base64-decode the input", b64.AppendDecode),
	{name: "random", summary: "print --count seeded random numbers in [0, 1)", run: runRandom},
}

func lookupCommand(name string) (*command, bool) {
	for _, c := range commands {
		if c.name == name {
			return c, true
		}
	}
	return nil, false
}

type transformRecord struct {
	Command string `json:"command"`
	Input   string `json:"input"`
	Output  string `json:"output"`
}

// transform wraps a whole-input codec. One trailing line ending is not part
// of the payload.
func transform(name, summary string, fn func(dst, src []byte) ([]byte, error)) *command {
	return &command{
		name:       name,
		summary:    summary,
		readsInput: true,
		run: func(inv *invocation, input []byte) (result, error) {
			payload := trimLineEnd(input)
			out, err := fn(nil, payload)
			if err != nil {
				return result{}, err
			}
			inv.log.Debugf("%s: %d bytes in, %d bytes out", name, len(payload), len(out))
			text := out
			if name != "atob" {
				text = append(text, '\n')
			}
			return result{
				text:   text,
				record: transformRecord{Command: name, Input: string(payload), Output: string(out)},
			}, nil
		},
	}
}

func runBtoa(inv *invocation, input []byte) (result, error) {
	out := b64.AppendEncode(nil, input)
	inv.log.Debugf("btoa: %d bytes in, %d bytes out", len(input), len(out))
	return result{
		text:   append(out, '\n'),
		record: transformRecord{Command: "btoa", Input: string(input), Output: string(out)},
	}, nil
}

type conversion struct {
	Input  string `json:"input"`
	Output string `json:"output"`
}

type toStringRecord struct {
	Radix   int          `json:"radix"`
	Results []conversion `json:"results"`
}

func runToString(inv *invocation, input []byte) (result, error) {
	r := radix.MustNew(inv.cfg.Radix)
	rec := toStringRecord{Radix: inv.cfg.Radix, Results: []conversion{}}
	var text []byte
	for n, line := range bytes.Split(input, []byte{'\n'}) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 {
			continue
		}
		v, err := numlit.Parse(string(line))
		if err != nil {
			return result{}, fmt.Errorf("line %d: %w", n+1, err)
		}
		start := len(text)
		text = radix.AppendString(text, v, r)
		rec.Results = append(rec.Results, conversion{Input: string(line), Output: string(text[start:])})
		text = append(text, '\n')
	}
	if len(rec.Results) == 0 {
		inv.log.Warnf("tostring: no numbers in input")
	}
	return result{text: text, record: rec}, nil
}

type sample struct {
	Value  float64 `json:"value"`
	Output string  `json:"output"`
}

type randomRecord struct {
	Radix  int      `json:"radix"`
	Seed   string   `json:"seed"`
	Values []sample `json:"values"`
}

func runRandom(inv *invocation, _ []byte) (result, error) {
	r := radix.MustNew(inv.cfg.Radix)
	g := rng.New(inv.cfg.Seed)
	rec := randomRecord{
		Radix:  inv.cfg.Radix,
		Seed:   strconv.FormatUint(inv.cfg.Seed, 10),
		Values: make([]sample, 0, inv.cfg.Count),
	}
	var text []byte
	for i := 0; i < inv.cfg.Count; i++ {
		v := g.Float64()
		start := len(text)
		text = radix.AppendString(text, v, r)
		rec.Values = append(rec.Values, sample{Value: v, Output: string(text[start:])})
		text = append(text, '\n')
	}
	inv.log.Debugf("random: seed=%d count=%d", inv.cfg.Seed, inv.cfg.Count)
	return result{text: text, record: rec}, nil
}

func trimLineEnd(b []byte) []byte {
	b = bytes.TrimSuffix(b, []byte{'\n'})
	return bytes.TrimSuffix(b, []byte{'\r'})
}
