package eval

import (
	"skit/parser"
	"skit/types"
)

// Exec evaluates a sequence of statements, propagating control flow
func (in *Interp) Exec(stmts []parser.Stmt, env *Environment) types.Result {
	for _, stmt := range stmts {
		result := in.ExecStmt(stmt, env)
		if !result.IsNormal() {
			return result
		}
	}
	return types.Ok(types.Nil)
}

// ExecStmt evaluates a single statement
func (in *Interp) ExecStmt(stmt parser.Stmt, env *Environment) types.Result {
	switch s := stmt.(type) {
	case *parser.VarDeclStmt:
		res := in.Eval(s.Value, env)
		if !res.IsNormal() {
			return res
		}
		env.Define(s.Name, res.Val.Clone())
		return types.Ok(types.Nil)
	case *parser.AssignStmt:
		res := in.Eval(s.Value, env)
		if !res.IsNormal() {
			return res
		}
		return in.assign(s.Target, res.Val.Clone(), env)
	case *parser.ExprStmt:
		res := in.Eval(s.Expr, env)
		if !res.IsNormal() {
			return res
		}
		return types.Ok(types.Nil)
	case *parser.IfStmt:
		return in.execIf(s, env)
	case *parser.WhileStmt:
		return in.execWhile(s, env)
	case *parser.ForStmt:
		return in.execFor(s, env)
	case *parser.FuncDeclStmt:
		fn := &types.FuncValue{
			Name:   s.Name,
			Params: s.Params,
			Body:   s.Body,
			Env:    env,
			Line:   s.Pos.Line,
		}
		env.Define(s.Name, fn)
		return types.Ok(types.Nil)
	case *parser.TypeDeclStmt:
		in.Schemas.Register(&types.Schema{Name: s.Name, Fields: s.Fields})
		return types.Ok(types.Nil)
	case *parser.ReturnStmt:
		if s.Value == nil {
			return types.Return(types.Nil)
		}
		res := in.Eval(s.Value, env)
		if !res.IsNormal() {
			return res
		}
		return types.Return(res.Val)
	case *parser.BreakStmt:
		return types.Break()
	case *parser.ContinueStmt:
		return types.Continue()
	default:
		return types.FailType(stmt.Position().Line, "cannot execute %T", stmt)
	}
}

func (in *Interp) execIf(s *parser.IfStmt, env *Environment) types.Result {
	cond := in.Eval(s.Cond, env)
	if !cond.IsNormal() {
		return cond
	}
	if cond.Val.Truthy() {
		return in.Exec(s.Body, NewEnclosed(env))
	}
	for _, elif := range s.Elifs {
		elifCond := in.Eval(elif.Cond, env)
		if !elifCond.IsNormal() {
			return elifCond
		}
		if elifCond.Val.Truthy() {
			return in.Exec(elif.Body, NewEnclosed(env))
		}
	}
	if s.Else != nil {
		return in.Exec(s.Else, NewEnclosed(env))
	}
	return types.Ok(types.Nil)
}

func (in *Interp) execWhile(s *parser.WhileStmt, env *Environment) types.Result {
	for {
		cond := in.Eval(s.Cond, env)
		if !cond.IsNormal() {
			return cond
		}
		if !cond.Val.Truthy() {
			return types.Ok(types.Nil)
		}
		// Each iteration gets a fresh scope: body-local declarations do not
		// leak past the loop
		body := in.Exec(s.Body, NewEnclosed(env))
		switch body.Flow {
		case types.FlowNormal, types.FlowContinue:
		case types.FlowBreak:
			return types.Ok(types.Nil)
		default:
			return body
		}
	}
}

func (in *Interp) execFor(s *parser.ForStmt, env *Environment) types.Result {
	// Ranges iterate lazily without materializing a list
	if rangeExpr, ok := s.Iter.(*parser.RangeExpr); ok {
		lo, hi, res := in.rangeBounds(rangeExpr, env)
		if !res.IsNormal() {
			return res
		}
		for i := lo; i <= hi; i++ {
			body := in.runLoopBody(s, types.NewInt(i), env)
			switch body.Flow {
			case types.FlowNormal, types.FlowContinue:
			case types.FlowBreak:
				return types.Ok(types.Nil)
			default:
				return body
			}
		}
		return types.Ok(types.Nil)
	}

	iter := in.Eval(s.Iter, env)
	if !iter.IsNormal() {
		return iter
	}

	var items []types.Value
	switch coll := iter.Val.(type) {
	case *types.ListValue:
		items = coll.Elems
	case *types.MapValue:
		for _, key := range coll.Keys() {
			items = append(items, types.NewStr(key))
		}
	case types.StrValue:
		for _, r := range coll.Val {
			items = append(items, types.NewStr(string(r)))
		}
	default:
		return types.FailType(s.Pos.Line, "cannot iterate %s", iter.Val.Kind())
	}

	for _, item := range items {
		body := in.runLoopBody(s, item, env)
		switch body.Flow {
		case types.FlowNormal, types.FlowContinue:
		case types.FlowBreak:
			return types.Ok(types.Nil)
		default:
			return body
		}
	}
	return types.Ok(types.Nil)
}

func (in *Interp) runLoopBody(s *parser.ForStmt, item types.Value, env *Environment) types.Result {
	scope := NewEnclosed(env)
	scope.Define(s.Name, item)
	return in.Exec(s.Body, scope)
}
