// Package engine is the embedding surface: it owns the persistent root
// environment, the schema and callback registries, and the per-script
// lifecycle. Independent Engine instances share no state.
package engine

import (
	"fmt"
	"io"
	"os"
	"time"

	"skit/bridge"
	"skit/eval"
	"skit/parser"
	"skit/stdlib"
	"skit/types"
)

// Option configures an Engine at construction time.
type Option func(*Engine)

// WithOutput redirects script print output.
func WithOutput(w io.Writer) Option {
	return func(e *Engine) { e.out = w }
}

// WithSeed fixes the global random stream's seed for reproducible runs.
func WithSeed(seed int64) Option {
	return func(e *Engine) { e.seed = seed }
}

// Engine hosts scripts. The root environment persists for the engine's
// lifetime and is the execution context for asynchronous callbacks, so a
// completion never runs in a stack frame that has already unwound.
type Engine struct {
	out       io.Writer
	seed      int64
	root      *eval.Environment
	interp    *eval.Interp
	schemas   *types.Schemas
	callbacks *bridge.Callbacks
	plugins   []*bridge.Plugin
}

func New(opts ...Option) *Engine {
	e := &Engine{
		out:  os.Stdout,
		seed: time.Now().UnixNano(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.schemas = types.NewSchemas()
	e.interp = eval.New(e.schemas)
	e.root = eval.NewEnvironment()
	e.callbacks = bridge.NewCallbacks()
	for _, p := range stdlib.Plugins(e.out, e.seed) {
		e.LoadPlugin(p)
	}
	bridge.ExportProcs(e.root,
		bridge.Proc{Name: "register_callback", Fn: types.NativeFunc(e.registerCallback)},
		bridge.Proc{Name: "cancel_callback", Fn: types.NativeFunc(e.cancelCallback)},
	)
	return e
}

// Root exposes the persistent global environment, for natives that need to
// read or write script-visible variables directly.
func (e *Engine) Root() *eval.Environment { return e.root }

// Plugins returns every plugin loaded so far, for codegen.
func (e *Engine) Plugins() []*bridge.Plugin { return e.plugins }

// LoadPlugin installs a plugin into the root environment.
func (e *Engine) LoadPlugin(p *bridge.Plugin) {
	p.Load(e.root)
	e.plugins = append(e.plugins, p)
}

// RegisterNative exposes a single host function to every script. fn follows
// the bridge.Proc conventions: a raw native or any wrappable Go function.
func (e *Engine) RegisterNative(name string, fn interface{}) {
	bridge.ExportProcs(e.root, bridge.Proc{Name: name, Fn: fn})
}

// LoadScript parses src and runs its top-level statements in a fresh child
// environment of the root, defining the script's functions, types, and
// variables. A parse or runtime failure is returned and the failed script's
// environment is discarded. Type declarations executed before the failure
// stay registered: schemas live in the engine-wide registry, not in the
// script environment.
func (e *Engine) LoadScript(name, src string) (*Script, error) {
	prog, err := parser.ParseSource(src)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	env := eval.NewEnclosed(e.root)
	if res := e.interp.ExecProgram(prog, env); res.IsError() {
		return nil, fmt.Errorf("%s: %w", name, res.Err)
	}
	return &Script{name: name, eng: e, env: env, prog: prog}, nil
}

// Eval parses and runs src in the root environment and returns the value of
// its final expression statement, or nil when the program ends with a
// non-expression statement. Used by the REPL.
func (e *Engine) Eval(src string) (types.Value, error) {
	prog, err := parser.ParseSource(src)
	if err != nil {
		return nil, err
	}
	stmts := prog.Stmts
	var last parser.Expr
	if n := len(stmts); n > 0 {
		if es, ok := stmts[n-1].(*parser.ExprStmt); ok {
			last = es.Expr
			stmts = stmts[:n-1]
		}
	}
	if res := e.interp.ExecProgram(&parser.Program{Stmts: stmts}, e.root); res.IsError() {
		return nil, res.Err
	}
	if last == nil {
		return types.Nil, nil
	}
	res := e.interp.Eval(last, e.root)
	if res.IsError() {
		return nil, res.Err
	}
	return res.Val, nil
}

// InvokeCallback runs the stored callback for handle with args in the root
// environment and removes the table entry. Unknown or already-taken handles
// report an error instead of running anything.
func (e *Engine) InvokeCallback(handle int64, args ...types.Value) (types.Value, error) {
	fn, ok := e.callbacks.Take(bridge.Handle(handle))
	if !ok {
		return nil, fmt.Errorf("no pending callback for handle %d", handle)
	}
	res := e.interp.CallFunction(fn, args, e.root, 0)
	if res.IsError() {
		return nil, res.Err
	}
	return res.Val, nil
}

// Callbacks exposes the handle table, for hosts that cancel pending work.
func (e *Engine) Callbacks() *bridge.Callbacks { return e.callbacks }

// register_callback(fn) -> handle
func (e *Engine) registerCallback(ctx *types.NativeCtx, args []types.Value) types.Result {
	if len(args) != 1 {
		return types.FailArgument(ctx.Line, "register_callback expects 1 argument, got %d", len(args))
	}
	switch args[0].Kind() {
	case types.KindFunc, types.KindNative:
	default:
		return types.FailType(ctx.Line, "register_callback: expected function, got %s", args[0].Kind())
	}
	h := e.callbacks.Register(args[0])
	return types.Ok(types.NewInt(int64(h)))
}

// cancel_callback(handle) -> bool
func (e *Engine) cancelCallback(ctx *types.NativeCtx, args []types.Value) types.Result {
	if len(args) != 1 {
		return types.FailArgument(ctx.Line, "cancel_callback expects 1 argument, got %d", len(args))
	}
	h, ok := args[0].(types.IntValue)
	if !ok {
		return types.FailType(ctx.Line, "cancel_callback: expected handle, got %s", args[0].Kind())
	}
	return types.Ok(types.NewBool(e.callbacks.Deregister(bridge.Handle(h.Val))))
}
