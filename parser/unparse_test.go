package parser

import (
	"strings"
	"testing"
)

// Unparse output is canonical: unparsing, reparsing, and unparsing again
// must reach a fixed point. This is the structural round-trip property.
func TestUnparseRoundTrip(t *testing.T) {
	scripts := []string{
		"var x = 1\nwhile x < 5:\n  x = x + 1\nprint(x)",
		`var p = {"a": 1, "b": 2}` + "\n" + `p["c"] = p["a"] + p["b"]`,
		"fn bump(x: byref Int):\n  x = x + 1\nend\nvar counter = 0\nbump(counter)",
		"type Particle = object { x: Float, rng: Rng }\nvar p = Particle(x: 1.5, rng: rng(42))",
		"for i in 0 ..< 10:\n  if i % 3 == 0:\n    print(i)\n  elif i % 3 == 1:\n    print(-i)\n  else:\n    continue\n  end\nend",
		"var xs = [1, 2] + [3]\nprint(len(xs))",
		"fn fib(n):\n  if n < 2:\n    return n\n  end\n  return fib(n - 1) + fib(n - 2)\nend",
		"var m = {}\nm.count = not ready and 1 .. 3",
	}

	for _, src := range scripts {
		name := src
		if i := strings.IndexByte(name, '\n'); i >= 0 {
			name = name[:i]
		}
		t.Run(name, func(t *testing.T) {
			prog, err := ParseSource(src)
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			canonical := Unparse(prog)

			reparsed, err := ParseSource(canonical)
			if err != nil {
				t.Fatalf("reparse of canonical form failed: %v\n%s", err, canonical)
			}
			again := Unparse(reparsed)
			if again != canonical {
				t.Errorf("round trip not stable:\nfirst:\n%s\nsecond:\n%s", canonical, again)
			}
		})
	}
}

// Strings holding bytes without an escape form (control characters, DEL)
// must still reparse to the same value.
func TestUnparseStringRoundTripsRawBytes(t *testing.T) {
	src := "var s = \"esc\\n\\0\\t\\\"raw\x01\x07\x7f\"\n"
	prog, err := ParseSource(src)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	canonical := Unparse(prog)

	reparsed, err := ParseSource(canonical)
	if err != nil {
		t.Fatalf("reparse of canonical form failed: %v\n%q", err, canonical)
	}
	want := prog.Stmts[0].(*VarDeclStmt).Value.(*LiteralExpr).Value
	got := reparsed.Stmts[0].(*VarDeclStmt).Value.(*LiteralExpr).Value
	if !got.Equal(want) {
		t.Errorf("value changed across round trip: %q != %q", got.String(), want.String())
	}
	if again := Unparse(reparsed); again != canonical {
		t.Errorf("round trip not stable:\nfirst: %q\nsecond: %q", canonical, again)
	}
}

func TestUnparsePreservesPrecedence(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"(1 + 2) * 3", "(1 + 2) * 3"},
		{"1 + 2 * 3", "1 + 2 * 3"},
		{"(a or b) and c", "(a or b) and c"},
		{"-(x + 1)", "-(x + 1)"},
	}
	for _, tt := range tests {
		prog, err := ParseSource(tt.input)
		if err != nil {
			t.Fatalf("parse %q: %v", tt.input, err)
		}
		got := strings.TrimSuffix(Unparse(prog), "\n")
		if got != tt.expected {
			t.Errorf("Unparse(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}
