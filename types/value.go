package types

import (
	"fmt"
	"strconv"
)

// Kind identifies the runtime type of a Value
type Kind int

const (
	KindNil Kind = iota
	KindInt
	KindFloat
	KindBool
	KindStr
	KindList
	KindMap
	KindFunc
	KindNative
	KindRng
)

// String returns the script-visible name of the kind
func (k Kind) String() string {
	switch k {
	case KindNil:
		return "nil"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	case KindStr:
		return "str"
	case KindList:
		return "list"
	case KindMap:
		return "map"
	case KindFunc:
		return "fn"
	case KindNative:
		return "native"
	case KindRng:
		return "rng"
	default:
		return "unknown"
	}
}

// Value is the interface implemented by every script value
type Value interface {
	Kind() Kind
	String() string   // literal representation
	Equal(Value) bool // deep equality
	Truthy() bool
	Clone() Value // binding copy; scalars return themselves
}

// NilValue is the absent value
type NilValue struct{}

func (NilValue) Kind() Kind     { return KindNil }
func (NilValue) String() string { return "nil" }
func (NilValue) Truthy() bool   { return false }
func (NilValue) Clone() Value   { return NilValue{} }
func (NilValue) Equal(other Value) bool {
	_, ok := other.(NilValue)
	return ok
}

// Nil is the shared nil value
var Nil = NilValue{}

// IntValue is a 64-bit integer
type IntValue struct {
	Val int64
}

func NewInt(v int64) IntValue { return IntValue{Val: v} }

func (v IntValue) Kind() Kind     { return KindInt }
func (v IntValue) String() string { return strconv.FormatInt(v.Val, 10) }
func (v IntValue) Truthy() bool   { return v.Val != 0 }
func (v IntValue) Clone() Value   { return v }
func (v IntValue) Equal(other Value) bool {
	switch o := other.(type) {
	case IntValue:
		return v.Val == o.Val
	case FloatValue:
		return float64(v.Val) == o.Val
	default:
		return false
	}
}

// FloatValue is a 64-bit float
type FloatValue struct {
	Val float64
}

func NewFloat(v float64) FloatValue { return FloatValue{Val: v} }

func (v FloatValue) Kind() Kind     { return KindFloat }
func (v FloatValue) Truthy() bool   { return v.Val != 0 }
func (v FloatValue) Clone() Value   { return v }
func (v FloatValue) String() string {
	s := strconv.FormatFloat(v.Val, 'g', -1, 64)
	// Keep floats distinguishable from ints in literal output
	if !containsAny(s, ".eE") && s != "+Inf" && s != "-Inf" && s != "NaN" {
		s += ".0"
	}
	return s
}
func (v FloatValue) Equal(other Value) bool {
	switch o := other.(type) {
	case FloatValue:
		return v.Val == o.Val
	case IntValue:
		return v.Val == float64(o.Val)
	default:
		return false
	}
}

// BoolValue is true or false
type BoolValue struct {
	Val bool
}

func NewBool(v bool) BoolValue { return BoolValue{Val: v} }

func (v BoolValue) Kind() Kind   { return KindBool }
func (v BoolValue) Truthy() bool { return v.Val }
func (v BoolValue) Clone() Value { return v }
func (v BoolValue) String() string {
	if v.Val {
		return "true"
	}
	return "false"
}
func (v BoolValue) Equal(other Value) bool {
	o, ok := other.(BoolValue)
	return ok && v.Val == o.Val
}

// StrValue is an immutable string
type StrValue struct {
	Val string
}

func NewStr(s string) StrValue { return StrValue{Val: s} }

func (v StrValue) Kind() Kind     { return KindStr }
func (v StrValue) String() string { return strconv.Quote(v.Val) }
func (v StrValue) Truthy() bool   { return v.Val != "" }
func (v StrValue) Clone() Value   { return v }
func (v StrValue) Equal(other Value) bool {
	o, ok := other.(StrValue)
	return ok && v.Val == o.Val
}

// Display returns the value as shown by print: strings unquoted,
// everything else in literal form.
func Display(v Value) string {
	if s, ok := v.(StrValue); ok {
		return s.Val
	}
	return v.String()
}

// Format renders a value for diagnostics, including its kind
func Format(v Value) string {
	if v == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%s (%s)", v.String(), v.Kind())
}

func containsAny(s, chars string) bool {
	for i := 0; i < len(s); i++ {
		for j := 0; j < len(chars); j++ {
			if s[i] == chars[j] {
				return true
			}
		}
	}
	return false
}
