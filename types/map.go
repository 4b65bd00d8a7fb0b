package types

import "strings"

// MapValue is an insertion-ordered string-keyed map. It backs both the
// dictionary literal type and objects built from a type declaration; objects
// carry the declaring type's name in TypeName.
type MapValue struct {
	TypeName string
	keys     []string
	entries  map[string]Value
}

// NewMap creates an empty map
func NewMap() *MapValue {
	return &MapValue{entries: make(map[string]Value)}
}

// NewObject creates an empty map tagged with an object type name
func NewObject(typeName string) *MapValue {
	m := NewMap()
	m.TypeName = typeName
	return m
}

func (v *MapValue) Kind() Kind { return KindMap }

func (v *MapValue) Len() int { return len(v.keys) }

// Get returns the value for key. A missing key yields (Nil, false); reads of
// missing keys are not an error at the language level.
func (v *MapValue) Get(key string) (Value, bool) {
	if val, ok := v.entries[key]; ok {
		return val, true
	}
	return Nil, false
}

// Set stores key -> val, preserving insertion order for new keys
func (v *MapValue) Set(key string, val Value) {
	if _, exists := v.entries[key]; !exists {
		v.keys = append(v.keys, key)
	}
	v.entries[key] = val
}

// Delete removes key, reporting whether it was present
func (v *MapValue) Delete(key string) bool {
	if _, exists := v.entries[key]; !exists {
		return false
	}
	delete(v.entries, key)
	for i, k := range v.keys {
		if k == key {
			v.keys = append(v.keys[:i], v.keys[i+1:]...)
			break
		}
	}
	return true
}

// Keys returns the keys in insertion order
func (v *MapValue) Keys() []string {
	out := make([]string, len(v.keys))
	copy(out, v.keys)
	return out
}

func (v *MapValue) String() string {
	var sb strings.Builder
	if v.TypeName != "" {
		sb.WriteString(v.TypeName)
		sb.WriteByte('(')
		for i, k := range v.keys {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(k)
			sb.WriteString(": ")
			sb.WriteString(v.entries[k].String())
		}
		sb.WriteByte(')')
		return sb.String()
	}
	sb.WriteByte('{')
	for i, k := range v.keys {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(NewStr(k).String())
		sb.WriteString(": ")
		sb.WriteString(v.entries[k].String())
	}
	sb.WriteByte('}')
	return sb.String()
}

func (v *MapValue) Truthy() bool { return len(v.keys) > 0 }

func (v *MapValue) Clone() Value {
	out := &MapValue{
		TypeName: v.TypeName,
		keys:     make([]string, len(v.keys)),
		entries:  make(map[string]Value, len(v.entries)),
	}
	copy(out.keys, v.keys)
	for k, val := range v.entries {
		out.entries[k] = val.Clone()
	}
	return out
}

func (v *MapValue) Equal(other Value) bool {
	o, ok := other.(*MapValue)
	if !ok || len(v.keys) != len(o.keys) {
		return false
	}
	for _, k := range v.keys {
		ov, present := o.entries[k]
		if !present || !v.entries[k].Equal(ov) {
			return false
		}
	}
	return true
}
