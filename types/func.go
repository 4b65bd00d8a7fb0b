package types

import "fmt"

// Scope is the environment surface natives and function values see.
// Implemented by eval.Environment; declared here to avoid a package cycle.
type Scope interface {
	Get(name string) (Value, bool)
	Define(name string, val Value)
	Set(name string, val Value) bool
}

// Param describes one formal parameter of a script function
type Param struct {
	Name  string
	Type  string // advisory type annotation, may be empty
	ByRef bool   // copy-in/copy-out semantics
}

// FuncValue is a user-defined function: a closure over its defining
// environment. Body holds []parser.Stmt as an opaque reference to avoid a
// cycle with the parser package.
type FuncValue struct {
	Name   string
	Params []Param
	Body   interface{} // []parser.Stmt
	Env    Scope       // captured defining environment, shared
	Line   int
}

func (v *FuncValue) Kind() Kind   { return KindFunc }
func (v *FuncValue) Truthy() bool { return true }
func (v *FuncValue) Clone() Value { return v } // closures are shared, not copied
func (v *FuncValue) String() string {
	if v.Name == "" {
		return fmt.Sprintf("<fn/%d>", len(v.Params))
	}
	return fmt.Sprintf("<fn %s/%d>", v.Name, len(v.Params))
}
func (v *FuncValue) Equal(other Value) bool {
	o, ok := other.(*FuncValue)
	return ok && v == o
}

// NativeCtx carries per-call state into a native function
type NativeCtx struct {
	Line int   // source line of the call site
	Env  Scope // environment visible at the call site
}

// NativeFunc is the raw signature of a host function exposed to scripts
type NativeFunc func(ctx *NativeCtx, args []Value) Result

// NativeValue wraps a registered host function as a callable value
type NativeValue struct {
	Name string
	Fn   NativeFunc
}

func (v *NativeValue) Kind() Kind     { return KindNative }
func (v *NativeValue) Truthy() bool   { return true }
func (v *NativeValue) Clone() Value   { return v }
func (v *NativeValue) String() string { return fmt.Sprintf("<native %s>", v.Name) }
func (v *NativeValue) Equal(other Value) bool {
	o, ok := other.(*NativeValue)
	return ok && v == o
}
