package eval

import (
	"skit/parser"
	"skit/types"
)

func (in *Interp) evalCall(e *parser.CallExpr, env *Environment) types.Result {
	// Method-shaped calls: evaluate the receiver first so rng dispatch and
	// map-held functions work without a separate method table
	if field, ok := e.Callee.(*parser.FieldExpr); ok {
		receiver := in.Eval(field.Target, env)
		if !receiver.IsNormal() {
			return receiver
		}
		switch recv := receiver.Val.(type) {
		case *types.RngValue:
			args, res := in.evalArgs(e.Args, env)
			if !res.IsNormal() {
				return res
			}
			return in.callRngMethod(recv, field.Name, args, e.Pos.Line)
		case *types.MapValue:
			member, _ := recv.Get(field.Name)
			switch member.Kind() {
			case types.KindFunc, types.KindNative:
				return in.callValue(member, e.Args, env, e.Pos.Line)
			default:
				return types.FailType(e.Pos.Line, "field %q is not callable", field.Name)
			}
		default:
			return types.FailType(e.Pos.Line, "%s has no methods", receiver.Val.Kind())
		}
	}

	callee := in.Eval(e.Callee, env)
	if !callee.IsNormal() {
		return callee
	}
	return in.callValue(callee.Val, e.Args, env, e.Pos.Line)
}

// evalArgs evaluates an argument list left to right
func (in *Interp) evalArgs(args []parser.Expr, env *Environment) ([]types.Value, types.Result) {
	vals := make([]types.Value, 0, len(args))
	for _, arg := range args {
		res := in.Eval(arg, env)
		if !res.IsNormal() {
			return nil, res
		}
		vals = append(vals, res.Val)
	}
	return vals, types.Ok(types.Nil)
}

// callValue invokes a callable with unevaluated argument expressions; byref
// copy-back needs the expressions, not just their values
func (in *Interp) callValue(callee types.Value, argExprs []parser.Expr, env *Environment, line int) types.Result {
	args, res := in.evalArgs(argExprs, env)
	if !res.IsNormal() {
		return res
	}

	switch fn := callee.(type) {
	case *types.NativeValue:
		out := fn.Fn(&types.NativeCtx{Line: line, Env: env}, args)
		if out.IsError() && out.Err.Line == 0 {
			out.Err.Line = line
		}
		return out
	case *types.FuncValue:
		return in.callScriptFunc(fn, argExprs, args, env, line)
	default:
		return types.FailType(line, "%s is not callable", callee.Kind())
	}
}

// callScriptFunc runs a user-defined function. Arguments bind as copies into
// a fresh scope chained to the captured environment; after a successful run,
// byref parameters copy their final binding back into lvalue arguments.
// Non-lvalue arguments to byref parameters simply do not propagate.
func (in *Interp) callScriptFunc(fn *types.FuncValue, argExprs []parser.Expr, args []types.Value, env *Environment, line int) types.Result {
	if len(args) != len(fn.Params) {
		return types.FailArgument(line, "%s expects %d argument(s), got %d", fn.String(), len(fn.Params), len(args))
	}
	captured, ok := fn.Env.(*Environment)
	if !ok {
		return types.FailType(line, "function %s has no environment", fn.Name)
	}
	body, ok := fn.Body.([]parser.Stmt)
	if !ok {
		return types.FailType(line, "function %s has no body", fn.Name)
	}

	if in.depth >= in.MaxDepth {
		return types.FailType(line, "maximum call depth exceeded (%d)", in.MaxDepth)
	}
	in.depth++
	defer func() { in.depth-- }()

	scope := NewEnclosed(captured)
	for i, param := range fn.Params {
		scope.Define(param.Name, args[i].Clone())
	}

	res := in.Exec(body, scope)
	switch res.Flow {
	case types.FlowNormal:
		res = types.Ok(types.Nil)
	case types.FlowReturn:
		res = types.Ok(res.Val)
	case types.FlowBreak, types.FlowContinue:
		return types.FailType(fn.Line, "break or continue outside a loop in %s", fn.String())
	default:
		return res
	}

	// Copy-out for byref parameters; host-initiated calls have no argument
	// expressions and skip this
	for i, param := range fn.Params {
		if argExprs == nil || !param.ByRef || !isLvaluePath(argExprs[i]) {
			continue
		}
		final, ok := scope.GetLocal(param.Name)
		if !ok {
			continue
		}
		if out := in.assign(argExprs[i], final.Clone(), env); !out.IsNormal() {
			return out
		}
	}
	return res
}

// CallFunction invokes a function or native value with pre-evaluated
// arguments. Used by the host for lifecycle and async callbacks; byref
// copy-back does not apply because there are no argument expressions.
func (in *Interp) CallFunction(callee types.Value, args []types.Value, env *Environment, line int) types.Result {
	switch fn := callee.(type) {
	case *types.NativeValue:
		return fn.Fn(&types.NativeCtx{Line: line, Env: env}, args)
	case *types.FuncValue:
		return in.callScriptFunc(fn, nil, args, env, line)
	default:
		return types.FailType(line, "%s is not callable", callee.Kind())
	}
}

// callRngMethod dispatches draws on an isolated generator. Draws mutate only
// this instance's stream, never the global one.
func (in *Interp) callRngMethod(rng *types.RngValue, name string, args []types.Value, line int) types.Result {
	intArg := func(i int) (int64, types.Result) {
		v, ok := args[i].(types.IntValue)
		if !ok {
			return 0, types.FailArgument(line, "rng.%s argument %d must be int, got %s", name, i+1, args[i].Kind())
		}
		return v.Val, types.Ok(types.Nil)
	}

	switch name {
	case "rand":
		switch len(args) {
		case 1:
			max, res := intArg(0)
			if !res.IsNormal() {
				return res
			}
			return types.Ok(types.NewInt(rng.Rand(max)))
		case 2:
			lo, res := intArg(0)
			if !res.IsNormal() {
				return res
			}
			hi, res := intArg(1)
			if !res.IsNormal() {
				return res
			}
			return types.Ok(types.NewInt(rng.RandRange(lo, hi)))
		default:
			return types.FailArgument(line, "rng.rand expects 1 or 2 arguments, got %d", len(args))
		}
	case "randf":
		if len(args) != 0 {
			return types.FailArgument(line, "rng.randf expects no arguments, got %d", len(args))
		}
		return types.Ok(types.NewFloat(rng.RandFloat()))
	case "reseed":
		if len(args) != 1 {
			return types.FailArgument(line, "rng.reseed expects 1 argument, got %d", len(args))
		}
		seed, res := intArg(0)
		if !res.IsNormal() {
			return res
		}
		rng.Reseed(seed)
		return types.Ok(types.Nil)
	default:
		return types.FailType(line, "rng has no method %q", name)
	}
}
