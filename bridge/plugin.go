package bridge

import (
	"skit/types"
)

// Plugin is a named bundle of native functions and constants loaded into an
// environment as a unit, optionally carrying codegen metadata: Go import
// paths it requires and script-name to Go-symbol mappings. There is no
// hidden registry; a plugin only affects the environments it is loaded into.
type Plugin struct {
	Name        string
	Author      string
	Version     string
	Description string

	funcs    []pluginEntry
	consts   []pluginEntry
	imports  []string
	mappings map[string]string
}

type pluginEntry struct {
	name  string
	value types.Value
}

func NewPlugin(name string) *Plugin {
	return &Plugin{Name: name, mappings: make(map[string]string)}
}

// About sets the plugin metadata and returns the plugin for chaining.
func (p *Plugin) About(author, version, description string) *Plugin {
	p.Author = author
	p.Version = version
	p.Description = description
	return p
}

// Func adds a native function. fn follows the same rules as Proc.Fn.
func (p *Plugin) Func(name string, fn interface{}) *Plugin {
	switch f := fn.(type) {
	case types.NativeFunc:
		p.funcs = append(p.funcs, pluginEntry{name, &types.NativeValue{Name: name, Fn: f}})
	case func(*types.NativeCtx, []types.Value) types.Result:
		p.funcs = append(p.funcs, pluginEntry{name, &types.NativeValue{Name: name, Fn: f}})
	case *types.NativeValue:
		p.funcs = append(p.funcs, pluginEntry{name, f})
	default:
		p.funcs = append(p.funcs, pluginEntry{name, Wrap(name, fn)})
	}
	return p
}

// Const adds a named constant. v must be convertible by ToValue; an
// unconvertible constant is a host programming error and panics at build
// time, before any script runs.
func (p *Plugin) Const(name string, v interface{}) *Plugin {
	val, err := ToValue(v)
	if err != nil {
		panic("bridge: plugin " + p.Name + " constant " + name + ": " + err.Error())
	}
	p.consts = append(p.consts, pluginEntry{name, val})
	return p
}

// Import declares a Go import path the generated code needs when any of this
// plugin's functions are called.
func (p *Plugin) Import(path string) *Plugin {
	p.imports = append(p.imports, path)
	return p
}

// MapName maps a script-visible name to the Go symbol codegen should emit
// for it.
func (p *Plugin) MapName(script, target string) *Plugin {
	p.mappings[script] = target
	return p
}

// Load installs every function and constant into env.
func (p *Plugin) Load(env types.Scope) {
	for _, e := range p.funcs {
		env.Define(e.name, e.value)
	}
	for _, e := range p.consts {
		env.Define(e.name, e.value)
	}
}

// Mapping reports the Go symbol for a script name, if declared.
func (p *Plugin) Mapping(script string) (string, bool) {
	target, ok := p.mappings[script]
	return target, ok
}

// Imports returns the Go import paths this plugin declares.
func (p *Plugin) Imports() []string {
	return p.imports
}

// Names returns every script-visible name the plugin defines, functions
// before constants, in registration order.
func (p *Plugin) Names() []string {
	names := make([]string, 0, len(p.funcs)+len(p.consts))
	for _, e := range p.funcs {
		names = append(names, e.name)
	}
	for _, e := range p.consts {
		names = append(names, e.name)
	}
	return names
}
