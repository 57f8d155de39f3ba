package main

import (
	"encoding/json"
	"io"

	cyberphone "github.com/cyberphone/json-canonicalization/go/src/webpki.org/jsoncanonicalizer"

	"github.com/lattice-substrate/ecmakit/atomicfile"
	"github.com/lattice-substrate/ecmakit/ecmaerr"
)

// render returns the bytes a command writes: its plain text, or its record
// as one RFC 8785 canonical JSON document followed by a line feed.
func render(res result, asJSON bool) ([]byte, error) {
	if !asJSON {
		return res.text, nil
	}
	raw, err := json.Marshal(res.record)
	if err != nil {
		return nil, ecmaerr.Wrap(ecmaerr.InternalError, -1, "encode json record", err)
	}
	canonical, err := cyberphone.Transform(raw)
	if err != nil {
		return nil, ecmaerr.Wrap(ecmaerr.InternalError, -1, "canonicalize json record", err)
	}
	return append(canonical, '\n'), nil
}

// emit writes out to path atomically, or to stdout when path is empty.
func emit(out []byte, path string, stdout io.Writer) error {
	if path != "" {
		if err := atomicfile.Write(path, out, 0o644); err != nil {
			return ecmaerr.Wrap(ecmaerr.InternalIO, -1, "write output", err)
		}
		return nil
	}
	if _, err := stdout.Write(out); err != nil {
		return ecmaerr.Wrap(ecmaerr.InternalIO, -1, "write output", err)
	}
	return nil
}
