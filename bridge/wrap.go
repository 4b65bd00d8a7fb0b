package bridge

import (
	"fmt"
	"reflect"

	"skit/types"
)

// Wrap turns an ordinary Go function into a native value. Arguments are
// converted per the fixed table in convert.go; a wrong argument count or an
// unconvertible argument yields an ArgumentError result, never a panic. The
// Go function may optionally take a *types.NativeCtx as its first parameter
// and may return up to two values, the last of which may be an error; a
// non-nil error becomes a TypeError result carrying the call line. Variadic
// Go functions accept any number of trailing arguments of the variadic type.
func Wrap(name string, goFn interface{}) *types.NativeValue {
	fn := reflect.ValueOf(goFn)
	t := fn.Type()
	if t.Kind() != reflect.Func {
		panic(fmt.Sprintf("bridge.Wrap(%q): not a function: %T", name, goFn))
	}
	if t.NumOut() > 2 {
		panic(fmt.Sprintf("bridge.Wrap(%q): too many return values", name))
	}
	if t.NumOut() == 2 && t.Out(1) != errorType {
		panic(fmt.Sprintf("bridge.Wrap(%q): second return value must be error", name))
	}

	takesCtx := t.NumIn() > 0 && t.In(0) == ctxType
	fixed := t.NumIn()
	if takesCtx {
		fixed--
	}
	if t.IsVariadic() {
		fixed--
	}

	native := func(ctx *types.NativeCtx, args []types.Value) types.Result {
		if t.IsVariadic() {
			if len(args) < fixed {
				return types.FailArgument(ctx.Line, "%s expects at least %d argument(s), got %d", name, fixed, len(args))
			}
		} else if len(args) != fixed {
			return types.FailArgument(ctx.Line, "%s expects %d argument(s), got %d", name, fixed, len(args))
		}

		in := make([]reflect.Value, 0, t.NumIn()+len(args))
		if takesCtx {
			in = append(in, reflect.ValueOf(ctx))
		}
		for i, arg := range args {
			var want reflect.Type
			if t.IsVariadic() && i >= fixed {
				want = t.In(t.NumIn() - 1).Elem()
			} else if takesCtx {
				want = t.In(i + 1)
			} else {
				want = t.In(i)
			}
			converted, err := FromValue(arg, want)
			if err != nil {
				return types.FailArgument(ctx.Line, "%s argument %d: %v", name, i+1, err)
			}
			in = append(in, converted)
		}

		out := fn.Call(in)
		if n := len(out); n > 0 && t.Out(n-1) == errorType {
			if errv := out[n-1]; !errv.IsNil() {
				return types.FailType(ctx.Line, "%s: %v", name, errv.Interface().(error))
			}
			out = out[:n-1]
		}
		if len(out) == 0 {
			return types.Ok(types.Nil)
		}
		val, err := ToValue(out[0].Interface())
		if err != nil {
			return types.FailType(ctx.Line, "%s return value: %v", name, err)
		}
		return types.Ok(val)
	}
	return &types.NativeValue{Name: name, Fn: native}
}
