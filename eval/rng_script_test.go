package eval

import (
	"testing"

	"skit/types"
)

func TestIsolatedRngPerObject(t *testing.T) {
	src := `type Particle = object { seed: Int, r: Rng }
fn draws(p, n):
  var out = []
  for i in 1 .. n:
    out = out + [p.r.rand(1000000)]
  end
  return out
end
var a = Particle(seed: 42, r: rng(42))
var b = Particle(seed: 42, r: rng(42))
var other = rng(7)
var fromA = []
var fromB = []
for i in 1 .. 20:
  fromA = fromA + [a.r.rand(1000000)]
  other.rand(1000000)
  fromB = fromB + [b.r.rand(1000000)]
  other.rand(1000000)
`
	env, _ := mustRun(t, src)
	fromA := globalVar(t, env, "fromA")
	fromB := globalVar(t, env, "fromB")
	if !fromA.Equal(fromB) {
		t.Errorf("same-seed objects diverged:\nA: %v\nB: %v", fromA, fromB)
	}
}

func TestRngDrawsAdvanceState(t *testing.T) {
	src := "var r = rng(1)\nvar a = r.rand(1000000)\nvar b = r.rand(1000000)\nvar same = a == b"
	env, _ := mustRun(t, src)
	// Not a hard guarantee for arbitrary generators, but with this seed the
	// first two draws differ
	if globalVar(t, env, "same").Truthy() {
		t.Error("consecutive draws were identical; state did not advance")
	}
}

func TestRngStateSharedThroughObjectField(t *testing.T) {
	// The same boxed generator observed through two bindings advances once
	src := `var r = rng(5)
var m = {"r": r}
var a = m["r"].rand(1000)
var reference = rng(5)
var first = reference.rand(1000)
var second = reference.rand(1000)
var viaOriginal = r.rand(1000)`
	env, _ := mustRun(t, src)
	if !globalVar(t, env, "a").Equal(globalVar(t, env, "first")) {
		t.Error("first draw through map binding diverged from reference")
	}
	if !globalVar(t, env, "viaOriginal").Equal(globalVar(t, env, "second")) {
		t.Error("rng box was copied on binding; draws did not share state")
	}
}

func TestRngMethodErrors(t *testing.T) {
	mustFail(t, "var r = rng(1)\nr.shuffle()", types.ErrType)
	mustFail(t, "var r = rng(1)\nr.rand()", types.ErrArgument)
	mustFail(t, "var r = rng(1)\nr.rand(\"x\")", types.ErrArgument)
	mustFail(t, "var x = 5\nx.rand(3)", types.ErrType)
}
