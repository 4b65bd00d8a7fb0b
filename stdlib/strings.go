package stdlib

import (
	"strings"

	"skit/bridge"
	"skit/types"
)

// Strings returns the string-utilities plugin.
func Strings() *bridge.Plugin {
	return bridge.NewPlugin("strings").
		About("skit", "1.0", "string utilities").
		Func("upper", strings.ToUpper).
		Func("lower", strings.ToLower).
		Func("trim", strings.TrimSpace).
		Func("split", strings.Split).
		Func("join", func(parts []string, sep string) string { return strings.Join(parts, sep) }).
		Func("contains", strings.Contains).
		Func("replace", func(s, old, new string) string { return strings.ReplaceAll(s, old, new) }).
		Func("find", strFind).
		Func("fmt", strFmt).
		Import("strings").
		MapName("upper", "strings.ToUpper").
		MapName("lower", "strings.ToLower").
		MapName("trim", "strings.TrimSpace").
		MapName("split", "strings.Split").
		MapName("join", "strings.Join").
		MapName("contains", "strings.Contains").
		MapName("replace", "strings.ReplaceAll")
}

// find(haystack, needle) -> rune index of the first occurrence, -1 if absent.
// Rune-based to match string indexing.
func strFind(s, sub string) int64 {
	byteIdx := strings.Index(s, sub)
	if byteIdx < 0 {
		return -1
	}
	return int64(len([]rune(s[:byteIdx])))
}

// fmt(template, args...) substitutes each {} in order
func strFmt(ctx *types.NativeCtx, args []types.Value) types.Result {
	if len(args) == 0 {
		return types.FailArgument(ctx.Line, "fmt expects at least 1 argument")
	}
	template, ok := args[0].(types.StrValue)
	if !ok {
		return types.FailType(ctx.Line, "fmt: template must be string, got %s", args[0].Kind())
	}
	var b strings.Builder
	rest := template.Val
	used := 0
	for {
		i := strings.Index(rest, "{}")
		if i < 0 {
			b.WriteString(rest)
			break
		}
		b.WriteString(rest[:i])
		if used+1 >= len(args) {
			return types.FailArgument(ctx.Line, "fmt: template has more {} than arguments")
		}
		used++
		b.WriteString(types.Display(args[used]))
		rest = rest[i+2:]
	}
	if used+1 < len(args) {
		return types.FailArgument(ctx.Line, "fmt: %d argument(s) unused", len(args)-1-used)
	}
	return types.Ok(types.NewStr(b.String()))
}
