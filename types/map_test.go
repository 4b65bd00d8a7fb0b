package types

import "testing"

func TestMapMissingKeyIsNil(t *testing.T) {
	m := NewMap()
	m.Set("a", NewInt(1))

	val, found := m.Get("missing")
	if found {
		t.Error("missing key reported as found")
	}
	if !val.Equal(Nil) {
		t.Errorf("missing key = %v, want nil", val)
	}
}

func TestMapInsertionOrder(t *testing.T) {
	m := NewMap()
	m.Set("b", NewInt(1))
	m.Set("a", NewInt(2))
	m.Set("c", NewInt(3))
	m.Set("a", NewInt(4)) // overwrite keeps position

	keys := m.Keys()
	want := []string{"b", "a", "c"}
	if len(keys) != len(want) {
		t.Fatalf("keys = %v", keys)
	}
	for i, k := range want {
		if keys[i] != k {
			t.Errorf("keys[%d] = %q, want %q", i, keys[i], k)
		}
	}
}

func TestMapDelete(t *testing.T) {
	m := NewMap()
	m.Set("a", NewInt(1))
	m.Set("b", NewInt(2))

	if !m.Delete("a") {
		t.Error("delete existing returned false")
	}
	if m.Delete("a") {
		t.Error("delete missing returned true")
	}
	if m.Len() != 1 || m.Keys()[0] != "b" {
		t.Errorf("after delete: keys = %v", m.Keys())
	}
}

func TestMapCloneIsDeep(t *testing.T) {
	m := NewMap()
	m.Set("inner", NewList(NewInt(1)))

	cp := m.Clone().(*MapValue)
	innerCp, _ := cp.Get("inner")
	innerCp.(*ListValue).Set(0, NewInt(99))

	orig, _ := m.Get("inner")
	if got, _ := orig.(*ListValue).Get(0); !got.Equal(NewInt(1)) {
		t.Error("clone mutation leaked into original map")
	}
}

func TestObjectStringUsesTypeName(t *testing.T) {
	m := NewObject("Point")
	m.Set("x", NewInt(1))
	m.Set("y", NewInt(2))
	if m.String() != "Point(x: 1, y: 2)" {
		t.Errorf("String() = %q", m.String())
	}
}
