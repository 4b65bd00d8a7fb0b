package engine

import (
	"bytes"
	"strings"
	"testing"

	"skit/types"
)

func newTestEngine() (*Engine, *bytes.Buffer) {
	var out bytes.Buffer
	return New(WithOutput(&out), WithSeed(1)), &out
}

func outputLines(out *bytes.Buffer) []string {
	s := strings.TrimRight(out.String(), "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

func TestLoadScriptRunsTopLevel(t *testing.T) {
	eng, out := newTestEngine()
	_, err := eng.LoadScript("hello", `print("hello", 1 + 2)`)
	if err != nil {
		t.Fatal(err)
	}
	if lines := outputLines(out); len(lines) != 1 || lines[0] != "hello 3" {
		t.Errorf("output = %v", lines)
	}
}

func TestLoadScriptParseError(t *testing.T) {
	eng, _ := newTestEngine()
	_, err := eng.LoadScript("bad", "var = 3")
	if err == nil {
		t.Fatal("expected parse error")
	}
	if !strings.Contains(err.Error(), "bad:") {
		t.Errorf("error %q does not name the script", err)
	}
}

func TestLifecycleHooks(t *testing.T) {
	eng, out := newTestEngine()
	s, err := eng.LoadScript("life", `var frames = 0
fn init():
  print("init")
end
fn update(dt):
  frames = frames + 1
end
fn render():
  print("frame", frames)
end
fn input(key):
  print("key", key)
end`)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Init(); err != nil {
		t.Fatal(err)
	}
	if err := s.Update(0.016); err != nil {
		t.Fatal(err)
	}
	if err := s.Update(0.016); err != nil {
		t.Fatal(err)
	}
	if err := s.Render(); err != nil {
		t.Fatal(err)
	}
	if err := s.OnInput("space"); err != nil {
		t.Fatal(err)
	}
	want := []string{"init", "frame 2", "key space"}
	got := outputLines(out)
	if len(got) != len(want) {
		t.Fatalf("output = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestMissingHooksAreNoOps(t *testing.T) {
	eng, _ := newTestEngine()
	s, err := eng.LoadScript("empty", "var x = 1")
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Init(); err != nil {
		t.Errorf("Init: %v", err)
	}
	if err := s.Render(); err != nil {
		t.Errorf("Render: %v", err)
	}
}

func TestRegisteredNativeVisibleToScripts(t *testing.T) {
	eng, out := newTestEngine()
	eng.RegisterNative("add", func(a, b int64) int64 { return a + b })
	if _, err := eng.LoadScript("uses", "print(add(2, 3))"); err != nil {
		t.Fatal(err)
	}
	if lines := outputLines(out); lines[0] != "5" {
		t.Errorf("add(2, 3) printed %v", lines)
	}
}

func TestNativeArityErrorIsRecoverable(t *testing.T) {
	eng, _ := newTestEngine()
	eng.RegisterNative("add", func(a, b int64) int64 { return a + b })
	_, err := eng.LoadScript("bad", "add(2)")
	if err == nil {
		t.Fatal("expected ArgumentError")
	}
	if !strings.Contains(err.Error(), "ArgumentError") {
		t.Errorf("error = %q, want an ArgumentError", err)
	}
}

func TestScriptFailureIsIsolated(t *testing.T) {
	eng, out := newTestEngine()
	good, err := eng.LoadScript("good", "fn render():\n  print(\"ok\")\nend")
	if err != nil {
		t.Fatal(err)
	}
	bad, err := eng.LoadScript("bad", "fn render():\n  return missing + 1\nend")
	if err != nil {
		t.Fatal(err)
	}
	if err := bad.Render(); err == nil {
		t.Fatal("expected runtime error")
	}
	if bad.Failed() == nil {
		t.Error("failed script not marked")
	}
	// failed scripts refuse further hooks
	if err := bad.Render(); err == nil {
		t.Error("failed script ran again")
	}
	// siblings keep working
	if err := good.Render(); err != nil {
		t.Fatalf("sibling script broken: %v", err)
	}
	if lines := outputLines(out); len(lines) != 1 || lines[0] != "ok" {
		t.Errorf("output = %v", lines)
	}
}

func TestTypeDeclSurvivesLaterFailure(t *testing.T) {
	// Schemas are engine-wide: a type registered before the script fails
	// stays visible, unlike the script's variables and functions.
	eng, out := newTestEngine()
	_, err := eng.LoadScript("bad", "type Shape = object { n: Int }\nboom()")
	if err == nil {
		t.Fatal("expected runtime error")
	}
	if _, err := eng.LoadScript("sibling", "print(Shape(n: 3).n)"); err != nil {
		t.Fatalf("sibling cannot use the registered type: %v", err)
	}
	if lines := outputLines(out); len(lines) != 1 || lines[0] != "3" {
		t.Errorf("output = %v", lines)
	}
}

func TestScriptsShareRootButNotLocals(t *testing.T) {
	eng, _ := newTestEngine()
	if _, err := eng.LoadScript("a", "var secret = 1"); err != nil {
		t.Fatal(err)
	}
	_, err := eng.LoadScript("b", "print(secret)")
	if err == nil {
		t.Fatal("script b saw script a's local")
	}
	if !strings.Contains(err.Error(), "UndefinedError") {
		t.Errorf("error = %q, want UndefinedError", err)
	}
}

func TestEnginesAreIndependent(t *testing.T) {
	var outA, outB bytes.Buffer
	a := New(WithOutput(&outA), WithSeed(1))
	b := New(WithOutput(&outB), WithSeed(1))
	a.RegisterNative("only_a", func() int64 { return 1 })
	if _, err := b.LoadScript("probe", "only_a()"); err == nil {
		t.Error("native registered on engine A leaked into engine B")
	}
	// schemas are per engine too
	if _, err := a.LoadScript("t", "type P = object { x: Int }"); err != nil {
		t.Fatal(err)
	}
	if _, err := b.LoadScript("probe2", "var p = P(x: 1)"); err == nil {
		t.Error("type declared on engine A leaked into engine B")
	}
}

func TestFixedSeedIsReproducible(t *testing.T) {
	run := func() string {
		var out bytes.Buffer
		eng := New(WithOutput(&out), WithSeed(42))
		if _, err := eng.LoadScript("r", "for i in 1 .. 5:\n  print(rand(1000))"); err != nil {
			panic(err)
		}
		return out.String()
	}
	if run() != run() {
		t.Error("same seed produced different global streams")
	}
}

func TestSeedZeroIsAFixedSeed(t *testing.T) {
	run := func() string {
		var out bytes.Buffer
		eng := New(WithOutput(&out), WithSeed(0))
		if _, err := eng.LoadScript("r", "for i in 1 .. 5:\n  print(rand(1000))"); err != nil {
			panic(err)
		}
		return out.String()
	}
	if run() != run() {
		t.Error("seed 0 produced different global streams")
	}
}

func TestEvalReturnsLastExpression(t *testing.T) {
	eng, _ := newTestEngine()
	got, err := eng.Eval("var x = 20\nx * 2 + 2")
	if err != nil {
		t.Fatal(err)
	}
	if !got.Equal(types.NewInt(42)) {
		t.Errorf("Eval = %v, want 42", got)
	}
	// state persists across Eval calls (REPL behavior)
	got, err = eng.Eval("x + 1")
	if err != nil {
		t.Fatal(err)
	}
	if !got.Equal(types.NewInt(21)) {
		t.Errorf("Eval = %v, want 21", got)
	}
	got, err = eng.Eval("var y = 1")
	if err != nil {
		t.Fatal(err)
	}
	if got.Kind() != types.KindNil {
		t.Errorf("non-expression Eval = %v, want nil", got)
	}
}

func TestCallbackRoundTrip(t *testing.T) {
	eng, out := newTestEngine()
	var handle int64
	eng.RegisterNative("start_job", func(h int64) { handle = h })
	_, err := eng.LoadScript("async", `var done = false
fn on_done(result):
  done = true
  print("got", result)
end
start_job(register_callback(on_done))`)
	if err != nil {
		t.Fatal(err)
	}
	if handle == 0 {
		t.Fatal("script did not hand the host a handle")
	}
	// host completes the job later; the callback runs in the root environment
	if _, err := eng.InvokeCallback(handle, types.NewInt(7)); err != nil {
		t.Fatal(err)
	}
	if lines := outputLines(out); len(lines) != 1 || lines[0] != "got 7" {
		t.Errorf("output = %v", lines)
	}
	// the entry is removed after invocation
	if _, err := eng.InvokeCallback(handle); err == nil {
		t.Error("second invocation succeeded; handle not removed")
	}
}

func TestCancelCallback(t *testing.T) {
	eng, _ := newTestEngine()
	got, err := eng.Eval("fn f():\n  return 1\nend\nvar h = register_callback(f)\ncancel_callback(h)")
	if err != nil {
		t.Fatal(err)
	}
	if !got.Equal(types.NewBool(true)) {
		t.Errorf("cancel_callback = %v, want true", got)
	}
	if eng.Callbacks().Pending() != 0 {
		t.Errorf("Pending = %d after cancel", eng.Callbacks().Pending())
	}
}

func TestRegisterCallbackRejectsNonFunction(t *testing.T) {
	eng, _ := newTestEngine()
	_, err := eng.Eval("register_callback(5)")
	if err == nil {
		t.Fatal("expected TypeError")
	}
	if !strings.Contains(err.Error(), "TypeError") {
		t.Errorf("error = %q, want TypeError", err)
	}
}
