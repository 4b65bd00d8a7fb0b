package engine

import (
	"fmt"

	"skit/eval"
	"skit/parser"
	"skit/types"
)

// Script is one loaded script: its own environment rooted at the engine's
// global one, plus the parsed program for codegen. Lifecycle hooks are the
// script functions init, update, render, and input; each is optional.
//
// A runtime error in any hook marks the script failed; the error is returned
// to the host and the script refuses further hook calls, leaving sibling
// scripts and the root environment untouched.
type Script struct {
	name string
	eng  *Engine
	env  *eval.Environment
	prog *parser.Program
	err  error
}

func (s *Script) Name() string { return s.name }

// Program exposes the parsed AST, for codegen.
func (s *Script) Program() *parser.Program { return s.prog }

// Env exposes the script's environment, for hosts reading script state.
func (s *Script) Env() *eval.Environment { return s.env }

// Failed reports the error that disabled this script, if any.
func (s *Script) Failed() error { return s.err }

// Init runs the script's init function, if present.
func (s *Script) Init() error { return s.callHook("init") }

// Update runs the script's update function with the frame delta, if present.
func (s *Script) Update(dt float64) error {
	return s.callHook("update", types.NewFloat(dt))
}

// Render runs the script's render function, if present.
func (s *Script) Render() error { return s.callHook("render") }

// OnInput runs the script's input function with the key name, if present.
func (s *Script) OnInput(key string) error {
	return s.callHook("input", types.NewStr(key))
}

// Call invokes an arbitrary script function by name with pre-converted
// values and returns its result.
func (s *Script) Call(name string, args ...types.Value) (types.Value, error) {
	if s.err != nil {
		return nil, s.err
	}
	fn, ok := s.env.Get(name)
	if !ok {
		return nil, fmt.Errorf("%s: no function %q", s.name, name)
	}
	res := s.eng.interp.CallFunction(fn, args, s.env, 0)
	if res.IsError() {
		s.err = fmt.Errorf("%s: %w", s.name, res.Err)
		return nil, s.err
	}
	return res.Val, nil
}

func (s *Script) callHook(name string, args ...types.Value) error {
	if s.err != nil {
		return s.err
	}
	fn, ok := s.env.Get(name)
	if !ok {
		return nil
	}
	switch fn.Kind() {
	case types.KindFunc, types.KindNative:
	default:
		return nil
	}
	res := s.eng.interp.CallFunction(fn, args, s.env, 0)
	if res.IsError() {
		s.err = fmt.Errorf("%s: %w", s.name, res.Err)
		return s.err
	}
	return nil
}
