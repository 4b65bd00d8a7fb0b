package bridge

import (
	"testing"

	"skit/types"
)

func TestCallbackRegisterAndTake(t *testing.T) {
	cbs := NewCallbacks()
	fn := &types.NativeValue{Name: "done"}
	h := cbs.Register(fn)
	if h == 0 {
		t.Fatal("handle 0 issued; zero should stay invalid")
	}
	got, ok := cbs.Take(h)
	if !ok || got != types.Value(fn) {
		t.Fatalf("Take = %v, %v", got, ok)
	}
	// single invocation only
	if _, ok := cbs.Take(h); ok {
		t.Error("second Take succeeded; entry was not removed")
	}
}

func TestCallbackHandlesAreUnique(t *testing.T) {
	cbs := NewCallbacks()
	a := cbs.Register(types.Nil)
	b := cbs.Register(types.Nil)
	if a == b {
		t.Errorf("duplicate handles: %d", a)
	}
	if cbs.Pending() != 2 {
		t.Errorf("Pending = %d, want 2", cbs.Pending())
	}
}

func TestCallbackDeregister(t *testing.T) {
	cbs := NewCallbacks()
	h := cbs.Register(types.Nil)
	if !cbs.Deregister(h) {
		t.Error("Deregister reported missing for a live handle")
	}
	if cbs.Deregister(h) {
		t.Error("Deregister reported success for a dead handle")
	}
	if _, ok := cbs.Take(h); ok {
		t.Error("Take succeeded after Deregister")
	}
}
