// Package stdlib ships the built-in plugins every engine instance loads:
// core value helpers, math with the global and isolated random streams, and
// string utilities. Each plugin carries codegen mappings for the Go symbols
// the transpiler should emit in its place.
package stdlib

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"skit/bridge"
	"skit/types"
)

// Core returns the core plugin. Script print/echo output goes to out.
func Core(out io.Writer) *bridge.Plugin {
	return bridge.NewPlugin("core").
		About("skit", "1.0", "printing, conversions, and container helpers").
		Func("print", printTo(out)).
		Func("echo", printTo(out)).
		Func("len", coreLen).
		Func("str", coreStr).
		Func("int", coreInt).
		Func("float", coreFloat).
		Func("typeof", coreTypeof).
		Func("keys", coreKeys).
		Func("has", coreHas).
		Func("del", coreDel).
		Func("push", corePush).
		Func("pop", corePop).
		Func("insert", coreInsert).
		Func("remove", coreRemove).
		Import("fmt").
		MapName("print", "fmt.Println").
		MapName("echo", "fmt.Println").
		MapName("len", "len").
		MapName("str", "fmt.Sprint")
}

func printTo(out io.Writer) types.NativeFunc {
	return func(ctx *types.NativeCtx, args []types.Value) types.Result {
		parts := make([]string, len(args))
		for i, arg := range args {
			parts[i] = types.Display(arg)
		}
		fmt.Fprintln(out, strings.Join(parts, " "))
		return types.Ok(types.Nil)
	}
}

// len(value) -> int
// Strings count runes, not bytes.
func coreLen(ctx *types.NativeCtx, args []types.Value) types.Result {
	if len(args) != 1 {
		return types.FailArgument(ctx.Line, "len expects 1 argument, got %d", len(args))
	}
	switch v := args[0].(type) {
	case types.StrValue:
		return types.Ok(types.NewInt(int64(len([]rune(v.Val)))))
	case *types.ListValue:
		return types.Ok(types.NewInt(int64(len(v.Elems))))
	case *types.MapValue:
		return types.Ok(types.NewInt(int64(len(v.Keys()))))
	default:
		return types.FailType(ctx.Line, "len: %s has no length", args[0].Kind())
	}
}

func coreStr(ctx *types.NativeCtx, args []types.Value) types.Result {
	if len(args) != 1 {
		return types.FailArgument(ctx.Line, "str expects 1 argument, got %d", len(args))
	}
	return types.Ok(types.NewStr(types.Display(args[0])))
}

// int(value) -> int
// Floats truncate toward zero, strings parse, bools become 0/1.
func coreInt(ctx *types.NativeCtx, args []types.Value) types.Result {
	if len(args) != 1 {
		return types.FailArgument(ctx.Line, "int expects 1 argument, got %d", len(args))
	}
	switch v := args[0].(type) {
	case types.IntValue:
		return types.Ok(v)
	case types.FloatValue:
		return types.Ok(types.NewInt(int64(v.Val)))
	case types.BoolValue:
		if v.Val {
			return types.Ok(types.NewInt(1))
		}
		return types.Ok(types.NewInt(0))
	case types.StrValue:
		n, err := strconv.ParseInt(strings.TrimSpace(v.Val), 10, 64)
		if err != nil {
			return types.FailType(ctx.Line, "int: cannot parse %q", v.Val)
		}
		return types.Ok(types.NewInt(n))
	default:
		return types.FailType(ctx.Line, "int: cannot convert %s", args[0].Kind())
	}
}

func coreFloat(ctx *types.NativeCtx, args []types.Value) types.Result {
	if len(args) != 1 {
		return types.FailArgument(ctx.Line, "float expects 1 argument, got %d", len(args))
	}
	switch v := args[0].(type) {
	case types.FloatValue:
		return types.Ok(v)
	case types.IntValue:
		return types.Ok(types.NewFloat(float64(v.Val)))
	case types.StrValue:
		f, err := strconv.ParseFloat(strings.TrimSpace(v.Val), 64)
		if err != nil {
			return types.FailType(ctx.Line, "float: cannot parse %q", v.Val)
		}
		return types.Ok(types.NewFloat(f))
	default:
		return types.FailType(ctx.Line, "float: cannot convert %s", args[0].Kind())
	}
}

func coreTypeof(ctx *types.NativeCtx, args []types.Value) types.Result {
	if len(args) != 1 {
		return types.FailArgument(ctx.Line, "typeof expects 1 argument, got %d", len(args))
	}
	if m, ok := args[0].(*types.MapValue); ok && m.TypeName != "" {
		return types.Ok(types.NewStr(m.TypeName))
	}
	return types.Ok(types.NewStr(args[0].Kind().String()))
}

func coreKeys(ctx *types.NativeCtx, args []types.Value) types.Result {
	if len(args) != 1 {
		return types.FailArgument(ctx.Line, "keys expects 1 argument, got %d", len(args))
	}
	m, ok := args[0].(*types.MapValue)
	if !ok {
		return types.FailType(ctx.Line, "keys: expected map, got %s", args[0].Kind())
	}
	out := types.NewList()
	for _, k := range m.Keys() {
		out.Append(types.NewStr(k))
	}
	return types.Ok(out)
}

func coreHas(ctx *types.NativeCtx, args []types.Value) types.Result {
	if len(args) != 2 {
		return types.FailArgument(ctx.Line, "has expects 2 arguments, got %d", len(args))
	}
	m, ok := args[0].(*types.MapValue)
	if !ok {
		return types.FailType(ctx.Line, "has: expected map, got %s", args[0].Kind())
	}
	key, ok := args[1].(types.StrValue)
	if !ok {
		return types.FailType(ctx.Line, "has: key must be string, got %s", args[1].Kind())
	}
	_, present := m.Get(key.Val)
	return types.Ok(types.NewBool(present))
}

func coreDel(ctx *types.NativeCtx, args []types.Value) types.Result {
	if len(args) != 2 {
		return types.FailArgument(ctx.Line, "del expects 2 arguments, got %d", len(args))
	}
	m, ok := args[0].(*types.MapValue)
	if !ok {
		return types.FailType(ctx.Line, "del: expected map, got %s", args[0].Kind())
	}
	key, ok := args[1].(types.StrValue)
	if !ok {
		return types.FailType(ctx.Line, "del: key must be string, got %s", args[1].Kind())
	}
	m.Delete(key.Val)
	return types.Ok(types.Nil)
}

// push(list, value)
// Mutates the caller's list in place; the stored element is a copy.
func corePush(ctx *types.NativeCtx, args []types.Value) types.Result {
	if len(args) != 2 {
		return types.FailArgument(ctx.Line, "push expects 2 arguments, got %d", len(args))
	}
	list, ok := args[0].(*types.ListValue)
	if !ok {
		return types.FailType(ctx.Line, "push: expected list, got %s", args[0].Kind())
	}
	list.Append(args[1].Clone())
	return types.Ok(types.Nil)
}

func corePop(ctx *types.NativeCtx, args []types.Value) types.Result {
	if len(args) != 1 {
		return types.FailArgument(ctx.Line, "pop expects 1 argument, got %d", len(args))
	}
	list, ok := args[0].(*types.ListValue)
	if !ok {
		return types.FailType(ctx.Line, "pop: expected list, got %s", args[0].Kind())
	}
	n := len(list.Elems)
	if n == 0 {
		return types.FailType(ctx.Line, "pop: empty list")
	}
	last := list.Elems[n-1]
	list.Elems = list.Elems[:n-1]
	return types.Ok(last)
}

func coreInsert(ctx *types.NativeCtx, args []types.Value) types.Result {
	if len(args) != 3 {
		return types.FailArgument(ctx.Line, "insert expects 3 arguments, got %d", len(args))
	}
	list, ok := args[0].(*types.ListValue)
	if !ok {
		return types.FailType(ctx.Line, "insert: expected list, got %s", args[0].Kind())
	}
	idx, ok := args[1].(types.IntValue)
	if !ok {
		return types.FailType(ctx.Line, "insert: index must be int, got %s", args[1].Kind())
	}
	i := idx.Val
	if i < 0 || i > int64(len(list.Elems)) {
		return types.FailType(ctx.Line, "insert: index %d out of range (len %d)", i, len(list.Elems))
	}
	elem := args[2].Clone()
	list.Elems = append(list.Elems, nil)
	copy(list.Elems[i+1:], list.Elems[i:])
	list.Elems[i] = elem
	return types.Ok(types.Nil)
}

func coreRemove(ctx *types.NativeCtx, args []types.Value) types.Result {
	if len(args) != 2 {
		return types.FailArgument(ctx.Line, "remove expects 2 arguments, got %d", len(args))
	}
	list, ok := args[0].(*types.ListValue)
	if !ok {
		return types.FailType(ctx.Line, "remove: expected list, got %s", args[0].Kind())
	}
	idx, ok := args[1].(types.IntValue)
	if !ok {
		return types.FailType(ctx.Line, "remove: index must be int, got %s", args[1].Kind())
	}
	i := idx.Val
	if i < 0 || i >= int64(len(list.Elems)) {
		return types.FailType(ctx.Line, "remove: index %d out of range (len %d)", i, len(list.Elems))
	}
	removed := list.Elems[i]
	list.Elems = append(list.Elems[:i], list.Elems[i+1:]...)
	return types.Ok(removed)
}
