package stdlib

import (
	"encoding/binary"
	"math"

	"golang.org/x/crypto/blake2b"

	"skit/bridge"
	"skit/types"
)

// Math returns the math plugin. seed initializes the plugin's own global
// random stream, which is per engine instance; scripts that need
// reproducible streams independent of it construct isolated generators with
// rng(seed).
func Math(seed int64) *bridge.Plugin {
	global := types.NewRng(seed)
	return bridge.NewPlugin("math").
		About("skit", "1.0", "arithmetic helpers and random streams").
		Func("abs", mathAbs).
		Func("min", mathMin).
		Func("max", mathMax).
		Func("floor", math.Floor).
		Func("ceil", math.Ceil).
		Func("sqrt", math.Sqrt).
		Func("pow", math.Pow).
		Func("sin", math.Sin).
		Func("cos", math.Cos).
		Func("atan2", math.Atan2).
		Func("rand", globalRand(global)).
		Func("randf", func() float64 { return global.RandFloat() }).
		Func("seed", func(n int64) { global.Reseed(n) }).
		Func("rng", func(n int64) types.Value { return types.NewRng(n) }).
		Func("seedof", seedOf).
		Const("PI", math.Pi).
		Const("E", math.E).
		Import("math").
		MapName("abs", "math.Abs").
		MapName("floor", "math.Floor").
		MapName("ceil", "math.Ceil").
		MapName("sqrt", "math.Sqrt").
		MapName("pow", "math.Pow").
		MapName("sin", "math.Sin").
		MapName("cos", "math.Cos").
		MapName("atan2", "math.Atan2").
		MapName("PI", "math.Pi").
		MapName("E", "math.E")
}

// abs preserves the argument's numeric kind
func mathAbs(ctx *types.NativeCtx, args []types.Value) types.Result {
	if len(args) != 1 {
		return types.FailArgument(ctx.Line, "abs expects 1 argument, got %d", len(args))
	}
	switch v := args[0].(type) {
	case types.IntValue:
		if v.Val < 0 {
			return types.Ok(types.NewInt(-v.Val))
		}
		return types.Ok(v)
	case types.FloatValue:
		return types.Ok(types.NewFloat(math.Abs(v.Val)))
	default:
		return types.FailType(ctx.Line, "abs: expected number, got %s", args[0].Kind())
	}
}

func mathMin(ctx *types.NativeCtx, args []types.Value) types.Result {
	return pickExtreme(ctx, "min", args, func(a, b float64) bool { return a < b })
}

func mathMax(ctx *types.NativeCtx, args []types.Value) types.Result {
	return pickExtreme(ctx, "max", args, func(a, b float64) bool { return a > b })
}

func pickExtreme(ctx *types.NativeCtx, name string, args []types.Value, better func(a, b float64) bool) types.Result {
	if len(args) == 0 {
		return types.FailArgument(ctx.Line, "%s expects at least 1 argument", name)
	}
	best := args[0]
	bestF, ok := numeric(best)
	if !ok {
		return types.FailType(ctx.Line, "%s: expected number, got %s", name, best.Kind())
	}
	for _, arg := range args[1:] {
		f, ok := numeric(arg)
		if !ok {
			return types.FailType(ctx.Line, "%s: expected number, got %s", name, arg.Kind())
		}
		if better(f, bestF) {
			best, bestF = arg, f
		}
	}
	return types.Ok(best)
}

func numeric(v types.Value) (float64, bool) {
	switch n := v.(type) {
	case types.IntValue:
		return float64(n.Val), true
	case types.FloatValue:
		return n.Val, true
	default:
		return 0, false
	}
}

// rand(max) -> int in [0, max]
// rand(lo, hi) -> int in [lo, hi]
// Draws from the plugin's global stream; same bounds convention as the
// isolated rng method.
func globalRand(global *types.RngValue) types.NativeFunc {
	return func(ctx *types.NativeCtx, args []types.Value) types.Result {
		switch len(args) {
		case 1:
			max, ok := args[0].(types.IntValue)
			if !ok {
				return types.FailArgument(ctx.Line, "rand: max must be int, got %s", args[0].Kind())
			}
			return types.Ok(types.NewInt(global.Rand(max.Val)))
		case 2:
			lo, ok1 := args[0].(types.IntValue)
			hi, ok2 := args[1].(types.IntValue)
			if !ok1 || !ok2 {
				return types.FailArgument(ctx.Line, "rand: bounds must be int")
			}
			return types.Ok(types.NewInt(global.RandRange(lo.Val, hi.Val)))
		default:
			return types.FailArgument(ctx.Line, "rand expects 1 or 2 arguments, got %d", len(args))
		}
	}
}

// seedof maps text to a deterministic non-negative seed, so scripts can key
// reproducible generators off names and content
func seedOf(text string) int64 {
	sum := blake2b.Sum256([]byte(text))
	return int64(binary.BigEndian.Uint64(sum[:8]) & math.MaxInt64)
}
