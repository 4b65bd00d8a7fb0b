package types

import "strings"

// ListValue is a mutable array of values. Binding a list to a new name
// deep-copies it (Clone); mutation is only visible through the same binding
// or via byref copy-back.
type ListValue struct {
	Elems []Value
}

// NewList creates a list from the given elements (the slice is taken over)
func NewList(elems ...Value) *ListValue {
	return &ListValue{Elems: elems}
}

func (v *ListValue) Kind() Kind { return KindList }

func (v *ListValue) Len() int { return len(v.Elems) }

// Get returns the element at idx, or false if out of range
func (v *ListValue) Get(idx int64) (Value, bool) {
	if idx < 0 || idx >= int64(len(v.Elems)) {
		return nil, false
	}
	return v.Elems[idx], true
}

// Set replaces the element at idx, reporting false if out of range
func (v *ListValue) Set(idx int64, val Value) bool {
	if idx < 0 || idx >= int64(len(v.Elems)) {
		return false
	}
	v.Elems[idx] = val
	return true
}

// Append adds a value at the end
func (v *ListValue) Append(val Value) {
	v.Elems = append(v.Elems, val)
}

// Concat returns a new list holding clones of both operands' elements.
// Neither operand is modified.
func (v *ListValue) Concat(other *ListValue) *ListValue {
	out := make([]Value, 0, len(v.Elems)+len(other.Elems))
	for _, e := range v.Elems {
		out = append(out, e.Clone())
	}
	for _, e := range other.Elems {
		out = append(out, e.Clone())
	}
	return &ListValue{Elems: out}
}

func (v *ListValue) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, e := range v.Elems {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(e.String())
	}
	sb.WriteByte(']')
	return sb.String()
}

func (v *ListValue) Truthy() bool { return len(v.Elems) > 0 }

func (v *ListValue) Clone() Value {
	out := make([]Value, len(v.Elems))
	for i, e := range v.Elems {
		out[i] = e.Clone()
	}
	return &ListValue{Elems: out}
}

func (v *ListValue) Equal(other Value) bool {
	o, ok := other.(*ListValue)
	if !ok || len(v.Elems) != len(o.Elems) {
		return false
	}
	for i, e := range v.Elems {
		if !e.Equal(o.Elems[i]) {
			return false
		}
	}
	return true
}
