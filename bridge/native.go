// Package bridge connects Go host code to script values: raw native
// registration, reflect-based wrapping of ordinary Go functions, plugin
// bundles, and the integer-handle callback registry.
package bridge

import (
	"skit/types"
)

// RegisterNative installs a raw native function under name in env. The
// function receives script values unconverted; use Wrap for automatic
// argument conversion.
func RegisterNative(env types.Scope, name string, fn types.NativeFunc) {
	env.Define(name, &types.NativeValue{Name: name, Fn: fn})
}
