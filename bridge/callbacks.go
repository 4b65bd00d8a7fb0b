package bridge

import (
	"skit/types"
)

// Handle identifies a stored callback. Handles are plain integers looked up
// in a table; a script value or host pointer never crosses the async
// boundary directly.
type Handle int64

// Callbacks stores function values registered by scripts ahead of
// long-running host operations. Script execution is single-threaded, so the
// table is unsynchronized; hosts completing work on other goroutines must
// re-enter through the engine's single script thread before calling Take.
type Callbacks struct {
	next  Handle
	table map[Handle]types.Value
}

func NewCallbacks() *Callbacks {
	return &Callbacks{next: 1, table: make(map[Handle]types.Value)}
}

// Register stores fn and returns its handle.
func (c *Callbacks) Register(fn types.Value) Handle {
	h := c.next
	c.next++
	c.table[h] = fn
	return h
}

// Take removes and returns the callback for h. A handle can be taken once;
// a second Take reports false rather than double-invoking.
func (c *Callbacks) Take(h Handle) (types.Value, bool) {
	fn, ok := c.table[h]
	if ok {
		delete(c.table, h)
	}
	return fn, ok
}

// Deregister drops a pending callback without invoking it, for cancelled
// host operations.
func (c *Callbacks) Deregister(h Handle) bool {
	_, ok := c.table[h]
	delete(c.table, h)
	return ok
}

// Pending reports how many callbacks are waiting.
func (c *Callbacks) Pending() int {
	return len(c.table)
}
