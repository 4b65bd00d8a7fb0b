package bridge

import (
	"errors"
	"strings"
	"testing"

	"skit/types"
)

func callNative(t *testing.T, nv *types.NativeValue, args ...types.Value) types.Result {
	t.Helper()
	return nv.Fn(&types.NativeCtx{Line: 3}, args)
}

func TestWrapSimple(t *testing.T) {
	add := Wrap("add", func(a, b int64) int64 { return a + b })
	res := callNative(t, add, types.NewInt(2), types.NewInt(3))
	if !res.IsNormal() || !res.Val.Equal(types.NewInt(5)) {
		t.Fatalf("add(2, 3) = %+v", res)
	}
}

func TestWrapArityError(t *testing.T) {
	add := Wrap("add", func(a, b int64) int64 { return a + b })
	res := callNative(t, add, types.NewInt(2))
	if !res.IsError() || res.Err.Kind != types.ErrArgument {
		t.Fatalf("add(2) = %+v, want ArgumentError", res)
	}
	if res.Err.Line != 3 {
		t.Errorf("error line = %d, want call line 3", res.Err.Line)
	}
}

func TestWrapTypeMismatchIsArgumentError(t *testing.T) {
	add := Wrap("add", func(a, b int64) int64 { return a + b })
	res := callNative(t, add, types.NewStr("x"), types.NewInt(1))
	if !res.IsError() || res.Err.Kind != types.ErrArgument {
		t.Fatalf("add(\"x\", 1) = %+v, want ArgumentError", res)
	}
	if !strings.Contains(res.Err.Message, "argument 1") {
		t.Errorf("message = %q, want the failing argument named", res.Err.Message)
	}
}

func TestWrapErrorReturn(t *testing.T) {
	div := Wrap("div", func(a, b int64) (int64, error) {
		if b == 0 {
			return 0, errors.New("division by zero")
		}
		return a / b, nil
	})
	res := callNative(t, div, types.NewInt(10), types.NewInt(2))
	if !res.IsNormal() || !res.Val.Equal(types.NewInt(5)) {
		t.Fatalf("div(10, 2) = %+v", res)
	}
	res = callNative(t, div, types.NewInt(1), types.NewInt(0))
	if !res.IsError() || res.Err.Kind != types.ErrType {
		t.Fatalf("div(1, 0) = %+v, want TypeError", res)
	}
}

func TestWrapErrorOnlyReturn(t *testing.T) {
	called := false
	ping := Wrap("ping", func() error { called = true; return nil })
	res := callNative(t, ping)
	if !res.IsNormal() || res.Val.Kind() != types.KindNil || !called {
		t.Fatalf("ping() = %+v, called=%v", res, called)
	}
}

func TestWrapCtxParameter(t *testing.T) {
	where := Wrap("where", func(ctx *types.NativeCtx) int64 { return int64(ctx.Line) })
	res := callNative(t, where)
	if !res.IsNormal() || !res.Val.Equal(types.NewInt(3)) {
		t.Fatalf("where() = %+v", res)
	}
}

func TestWrapVariadic(t *testing.T) {
	sum := Wrap("sum", func(base int64, rest ...int64) int64 {
		for _, n := range rest {
			base += n
		}
		return base
	})
	res := callNative(t, sum, types.NewInt(1), types.NewInt(2), types.NewInt(3))
	if !res.IsNormal() || !res.Val.Equal(types.NewInt(6)) {
		t.Fatalf("sum(1, 2, 3) = %+v", res)
	}
	res = callNative(t, sum)
	if !res.IsError() || res.Err.Kind != types.ErrArgument {
		t.Fatalf("sum() = %+v, want ArgumentError", res)
	}
}

func TestWrapCompositeReturn(t *testing.T) {
	split := Wrap("halves", func(s string) []string {
		mid := len(s) / 2
		return []string{s[:mid], s[mid:]}
	})
	res := callNative(t, split, types.NewStr("abcd"))
	want := types.NewList(types.NewStr("ab"), types.NewStr("cd"))
	if !res.IsNormal() || !res.Val.Equal(want) {
		t.Fatalf("halves = %+v", res)
	}
}

func TestWrapMutatesSharedContainer(t *testing.T) {
	// A *ListValue parameter receives the caller's container, so in-place
	// writes are visible after the call
	push9 := Wrap("push9", func(xs *types.ListValue) { xs.Append(types.NewInt(9)) })
	list := types.NewList(types.NewInt(1))
	res := callNative(t, push9, list)
	if !res.IsNormal() {
		t.Fatalf("push9 = %+v", res)
	}
	if !list.Equal(types.NewList(types.NewInt(1), types.NewInt(9))) {
		t.Errorf("list = %v, in-place mutation lost", list)
	}
}
