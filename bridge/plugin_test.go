package bridge

import (
	"math"
	"testing"

	"skit/eval"
	"skit/types"
)

func TestPluginLoad(t *testing.T) {
	p := NewPlugin("geometry").
		About("skit", "1.0", "test plugin").
		Func("area", func(w, h float64) float64 { return w * h }).
		Const("PI", math.Pi).
		Import("math").
		MapName("area", "geomArea")

	env := eval.NewEnvironment()
	p.Load(env)

	pi, ok := env.Get("PI")
	if !ok || !pi.Equal(types.NewFloat(math.Pi)) {
		t.Fatalf("PI = %v, %v", pi, ok)
	}
	area, ok := env.Get("area")
	if !ok {
		t.Fatal("area not defined")
	}
	nv := area.(*types.NativeValue)
	res := nv.Fn(&types.NativeCtx{Line: 1}, []types.Value{types.NewFloat(2), types.NewFloat(3)})
	if !res.IsNormal() || !res.Val.Equal(types.NewFloat(6)) {
		t.Errorf("area(2, 3) = %+v", res)
	}
}

func TestPluginCodegenMetadata(t *testing.T) {
	p := NewPlugin("m").Import("math").MapName("sqrt", "math.Sqrt")
	if target, ok := p.Mapping("sqrt"); !ok || target != "math.Sqrt" {
		t.Errorf("mapping = %q, %v", target, ok)
	}
	if _, ok := p.Mapping("missing"); ok {
		t.Error("unexpected mapping for missing")
	}
	if imports := p.Imports(); len(imports) != 1 || imports[0] != "math" {
		t.Errorf("imports = %v", imports)
	}
}

func TestPluginDoesNotLeakAcrossEnvironments(t *testing.T) {
	p := NewPlugin("a").Const("ONE", 1)
	first := eval.NewEnvironment()
	second := eval.NewEnvironment()
	p.Load(first)
	if _, ok := second.Get("ONE"); ok {
		t.Error("plugin leaked into an environment it was not loaded into")
	}
}

func TestExportProcs(t *testing.T) {
	env := eval.NewEnvironment()
	ExportProcs(env,
		Proc{"double", func(n int64) int64 { return n * 2 }},
		Proc{"raw", types.NativeFunc(func(ctx *types.NativeCtx, args []types.Value) types.Result {
			return types.Ok(types.NewInt(int64(len(args))))
		})},
	)
	d, ok := env.Get("double")
	if !ok {
		t.Fatal("double not defined")
	}
	res := d.(*types.NativeValue).Fn(&types.NativeCtx{Line: 1}, []types.Value{types.NewInt(4)})
	if !res.Val.Equal(types.NewInt(8)) {
		t.Errorf("double(4) = %+v", res)
	}
	r, ok := env.Get("raw")
	if !ok {
		t.Fatal("raw not defined")
	}
	res = r.(*types.NativeValue).Fn(&types.NativeCtx{Line: 1}, []types.Value{types.Nil, types.Nil})
	if !res.Val.Equal(types.NewInt(2)) {
		t.Errorf("raw(nil, nil) = %+v", res)
	}
}
