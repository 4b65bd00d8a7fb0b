package conformance

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"skit/engine"
	"skit/parser"
	"skit/types"
)

// Run executes one case in a fresh engine with a fixed seed and checks the
// expectation. It returns a non-empty failure description on mismatch.
func Run(c Case) string {
	var out bytes.Buffer
	eng := engine.New(engine.WithOutput(&out), engine.WithSeed(1))
	_, err := eng.LoadScript(c.Name, c.Script)

	if c.Error != "" {
		if err == nil {
			return fmt.Sprintf("expected %s, script succeeded with output %q", c.Error, out.String())
		}
		if kind := errorKind(err); kind != c.Error {
			return fmt.Sprintf("expected %s, got %s (%v)", c.Error, kind, err)
		}
		return ""
	}

	if err != nil {
		return fmt.Sprintf("unexpected error: %v", err)
	}
	got := splitLines(out.String())
	if len(got) != len(c.Output) {
		return fmt.Sprintf("output %q, want %q", got, c.Output)
	}
	for i, want := range c.Output {
		if got[i] != want {
			return fmt.Sprintf("output line %d = %q, want %q", i+1, got[i], want)
		}
	}
	return ""
}

func errorKind(err error) string {
	var serr *types.ScriptError
	if errors.As(err, &serr) {
		return serr.Kind.String()
	}
	var perr *parser.ParseError
	if errors.As(err, &perr) {
		return "ParseError"
	}
	return "unknown"
}

func splitLines(s string) []string {
	s = strings.TrimRight(s, "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}
