package bridge

import (
	"skit/types"
)

// Proc marks a host function for auto-export. Fn may be a types.NativeFunc
// for raw access to script values, or any ordinary Go function accepted by
// Wrap.
type Proc struct {
	Name string
	Fn   interface{}
}

// ExportProcs registers a batch of marked host functions into env without
// hand-written wrappers.
func ExportProcs(env types.Scope, procs ...Proc) {
	for _, p := range procs {
		switch fn := p.Fn.(type) {
		case types.NativeFunc:
			RegisterNative(env, p.Name, fn)
		case func(*types.NativeCtx, []types.Value) types.Result:
			RegisterNative(env, p.Name, fn)
		case *types.NativeValue:
			env.Define(p.Name, fn)
		default:
			env.Define(p.Name, Wrap(p.Name, p.Fn))
		}
	}
}
