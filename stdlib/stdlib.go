package stdlib

import (
	"io"

	"skit/bridge"
)

// Plugins returns the standard plugin set for an engine: core printing and
// container helpers writing to out, math with its global stream seeded with
// seed, and string utilities.
func Plugins(out io.Writer, seed int64) []*bridge.Plugin {
	return []*bridge.Plugin{
		Core(out),
		Math(seed),
		Strings(),
	}
}
