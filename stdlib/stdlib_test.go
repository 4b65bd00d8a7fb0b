package stdlib

import (
	"bytes"
	"strings"
	"testing"

	"skit/eval"
	"skit/parser"
	"skit/types"
)

func runScript(t *testing.T, src string) ([]string, *eval.Environment, types.Result) {
	t.Helper()
	prog, err := parser.ParseSource(src)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	var out bytes.Buffer
	env := eval.NewEnvironment()
	for _, p := range Plugins(&out, 1) {
		p.Load(env)
	}
	in := eval.New(nil)
	res := in.ExecProgram(prog, env)
	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	if out.Len() == 0 {
		lines = nil
	}
	return lines, env, res
}

func mustPrint(t *testing.T, src string, want ...string) {
	t.Helper()
	lines, _, res := runScript(t, src)
	if !res.IsNormal() {
		t.Fatalf("execution failed: %v", res.Err)
	}
	if len(lines) != len(want) {
		t.Fatalf("printed %v, want %v", lines, want)
	}
	for i, w := range want {
		if lines[i] != w {
			t.Errorf("line %d = %q, want %q", i, lines[i], w)
		}
	}
}

func mustError(t *testing.T, src string, kind types.ErrKind) {
	t.Helper()
	_, _, res := runScript(t, src)
	if !res.IsError() || res.Err.Kind != kind {
		t.Fatalf("res = %+v, want %v", res, kind)
	}
}

func TestPrintJoinsArguments(t *testing.T) {
	mustPrint(t, `print("score", 42, 1.5)`, "score 42 1.5")
}

func TestLen(t *testing.T) {
	mustPrint(t, "print(len([1, 2, 3]))", "3")
	mustPrint(t, `print(len("héllo"))`, "5")
	mustPrint(t, `print(len({"a": 1}))`, "1")
	mustError(t, "len(5)", types.ErrType)
	mustError(t, "len()", types.ErrArgument)
}

func TestConversions(t *testing.T) {
	mustPrint(t, `print(int("42"))`, "42")
	mustPrint(t, "print(int(3.9))", "3")
	mustPrint(t, "print(int(true))", "1")
	mustPrint(t, `print(float("1.5"))`, "1.5")
	mustPrint(t, "print(float(2))", "2.0")
	mustPrint(t, "print(str(42))", "42")
	mustError(t, `int("not a number")`, types.ErrType)
}

func TestTypeof(t *testing.T) {
	mustPrint(t, "print(typeof(1))", "int")
	mustPrint(t, `print(typeof("x"))`, "str")
	mustPrint(t, "print(typeof([1]))", "list")
	mustPrint(t, "print(typeof(nil))", "nil")
	mustPrint(t, "type Point = object { x: Int }\nprint(typeof(Point(x: 1)))", "Point")
}

func TestMapHelpers(t *testing.T) {
	mustPrint(t, `var m = {"a": 1, "b": 2}
print(has(m, "a"))
del(m, "a")
print(has(m, "a"))
for k in keys(m):
  print(k)`, "true", "false", "b")
}

func TestListHelpers(t *testing.T) {
	mustPrint(t, `var xs = [1]
push(xs, 2)
insert(xs, 0, 0)
print(xs)
print(pop(xs))
print(remove(xs, 0))
print(xs)`, "[0, 1, 2]", "2", "0", "[1]")
	mustError(t, "pop([])", types.ErrType)
	mustError(t, "insert([1], 5, 0)", types.ErrType)
}

func TestMathHelpers(t *testing.T) {
	mustPrint(t, "print(abs(-3))", "3")
	mustPrint(t, "print(abs(-1.5))", "1.5")
	mustPrint(t, "print(min(3, 1, 2))", "1")
	mustPrint(t, "print(max(3, 1.5))", "3")
	mustPrint(t, "print(floor(1.7))", "1.0")
	mustPrint(t, "print(sqrt(9.0))", "3.0")
	mustPrint(t, "print(pow(2.0, 10.0))", "1024.0")
	mustError(t, `min("a")`, types.ErrType)
}

func TestMathConstants(t *testing.T) {
	lines, _, res := runScript(t, "print(PI > 3.14 and PI < 3.15)\nprint(E > 2.71 and E < 2.72)")
	if !res.IsNormal() {
		t.Fatal(res.Err)
	}
	if lines[0] != "true" || lines[1] != "true" {
		t.Errorf("constants out of range: %v", lines)
	}
}

func TestGlobalRandBounds(t *testing.T) {
	src := `seed(99)
var ok = true
for i in 1 .. 100:
  var n = rand(5)
  if n < 0 or n > 5:
    ok = false
  end
  var m = rand(10, 12)
  if m < 10 or m > 12:
    ok = false
`
	_, env, res := runScript(t, src)
	if !res.IsNormal() {
		t.Fatal(res.Err)
	}
	ok, _ := env.Get("ok")
	if !ok.Truthy() {
		t.Error("rand produced a value outside its bounds")
	}
}

func TestIsolatedRngIndependentOfGlobalStream(t *testing.T) {
	src := `var a = rng(7)
var b = rng(7)
var same = true
for i in 1 .. 10:
  var x = a.rand(1000000)
  rand(1000000)
  var y = b.rand(1000000)
  if x != y:
    same = false
`
	_, env, res := runScript(t, src)
	if !res.IsNormal() {
		t.Fatal(res.Err)
	}
	same, _ := env.Get("same")
	if !same.Truthy() {
		t.Error("interleaved global draws disturbed isolated streams")
	}
}

func TestSeedofDeterministic(t *testing.T) {
	if seedOf("intro") != seedOf("intro") {
		t.Error("seedof is not deterministic")
	}
	if seedOf("intro") == seedOf("outro") {
		t.Error("distinct texts hashed to the same seed")
	}
	if seedOf("intro") < 0 {
		t.Error("seedof produced a negative seed")
	}
	mustPrint(t, `print(seedof("x") == seedof("x"))`, "true")
}

func TestStringHelpers(t *testing.T) {
	mustPrint(t, `print(upper("abc"))`, "ABC")
	mustPrint(t, `print(lower("ABC"))`, "abc")
	mustPrint(t, `print(trim("  x  "))`, "x")
	mustPrint(t, `print(split("a,b,c", ","))`, `["a", "b", "c"]`)
	mustPrint(t, `print(join(["a", "b"], "-"))`, "a-b")
	mustPrint(t, `print(contains("hello", "ell"))`, "true")
	mustPrint(t, `print(replace("aaa", "a", "b"))`, "bbb")
	mustPrint(t, `print(find("héllo", "llo"))`, "2")
	mustPrint(t, `print(find("abc", "z"))`, "-1")
}

func TestFmt(t *testing.T) {
	mustPrint(t, `print(fmt("{} + {} = {}", 1, 2, 3))`, "1 + 2 = 3")
	mustError(t, `fmt("{} {}", 1)`, types.ErrArgument)
	mustError(t, `fmt("{}", 1, 2)`, types.ErrArgument)
}
