package eval

import (
	"skit/parser"
	"skit/types"
)

// DefaultMaxDepth bounds script call nesting so runaway recursion surfaces
// as a script error instead of exhausting the Go stack.
const DefaultMaxDepth = 2000

// Interp walks the AST and evaluates expressions and statements. All
// failures travel through types.Result; the interpreter never panics on
// script input and never terminates the process.
type Interp struct {
	Schemas  *types.Schemas
	MaxDepth int
	depth    int
}

// New creates an interpreter around a schema registry. Passing nil creates
// a private registry.
func New(schemas *types.Schemas) *Interp {
	if schemas == nil {
		schemas = types.NewSchemas()
	}
	return &Interp{Schemas: schemas, MaxDepth: DefaultMaxDepth}
}

// ExecProgram executes a parsed script's top-level statements in env
func (in *Interp) ExecProgram(prog *parser.Program, env *Environment) types.Result {
	return in.Exec(prog.Stmts, env)
}

// Eval evaluates an expression. Evaluation is strict, left-to-right,
// depth-first.
func (in *Interp) Eval(expr parser.Expr, env *Environment) types.Result {
	switch e := expr.(type) {
	case *parser.LiteralExpr:
		return types.Ok(e.Value)
	case *parser.IdentifierExpr:
		if val, ok := env.Get(e.Name); ok {
			return types.Ok(val)
		}
		return types.FailUndefined(e.Pos.Line, e.Name)
	case *parser.UnaryExpr:
		return in.evalUnary(e, env)
	case *parser.BinaryExpr:
		return in.evalBinary(e, env)
	case *parser.RangeExpr:
		return in.evalRange(e, env)
	case *parser.ListExpr:
		return in.evalListLiteral(e, env)
	case *parser.MapExpr:
		return in.evalMapLiteral(e, env)
	case *parser.ConstructExpr:
		return in.evalConstruct(e, env)
	case *parser.IndexExpr:
		return in.evalIndex(e, env)
	case *parser.FieldExpr:
		return in.evalField(e, env)
	case *parser.CallExpr:
		return in.evalCall(e, env)
	default:
		return types.FailType(expr.Position().Line, "cannot evaluate %T", expr)
	}
}

func (in *Interp) evalUnary(e *parser.UnaryExpr, env *Environment) types.Result {
	operand := in.Eval(e.Operand, env)
	if !operand.IsNormal() {
		return operand
	}
	switch e.Operator {
	case parser.TOKEN_MINUS:
		switch v := operand.Val.(type) {
		case types.IntValue:
			return types.Ok(types.NewInt(-v.Val))
		case types.FloatValue:
			return types.Ok(types.NewFloat(-v.Val))
		default:
			return types.FailType(e.Pos.Line, "cannot negate %s", operand.Val.Kind())
		}
	case parser.TOKEN_NOT:
		return types.Ok(types.NewBool(!operand.Val.Truthy()))
	default:
		return types.FailType(e.Pos.Line, "unknown unary operator")
	}
}

func (in *Interp) evalBinary(e *parser.BinaryExpr, env *Environment) types.Result {
	// and/or short-circuit before the right operand is evaluated
	if e.Operator == parser.TOKEN_AND || e.Operator == parser.TOKEN_OR {
		left := in.Eval(e.Left, env)
		if !left.IsNormal() {
			return left
		}
		if e.Operator == parser.TOKEN_AND && !left.Val.Truthy() {
			return types.Ok(types.NewBool(false))
		}
		if e.Operator == parser.TOKEN_OR && left.Val.Truthy() {
			return types.Ok(types.NewBool(true))
		}
		right := in.Eval(e.Right, env)
		if !right.IsNormal() {
			return right
		}
		return types.Ok(types.NewBool(right.Val.Truthy()))
	}

	left := in.Eval(e.Left, env)
	if !left.IsNormal() {
		return left
	}
	right := in.Eval(e.Right, env)
	if !right.IsNormal() {
		return right
	}
	return evalBinaryOp(e.Operator, left.Val, right.Val, e.Pos.Line)
}

// evalRange materializes a range expression into a list of ints. For-in
// loops iterate ranges lazily without building the list (see eval_stmt.go).
func (in *Interp) evalRange(e *parser.RangeExpr, env *Environment) types.Result {
	lo, hi, res := in.rangeBounds(e, env)
	if !res.IsNormal() {
		return res
	}
	list := types.NewList()
	for i := lo; i <= hi; i++ {
		list.Append(types.NewInt(i))
	}
	return types.Ok(list)
}

// rangeBounds evaluates a range's endpoints to inclusive integer bounds
func (in *Interp) rangeBounds(e *parser.RangeExpr, env *Environment) (int64, int64, types.Result) {
	start := in.Eval(e.Start, env)
	if !start.IsNormal() {
		return 0, 0, start
	}
	end := in.Eval(e.End, env)
	if !end.IsNormal() {
		return 0, 0, end
	}
	lo, ok := start.Val.(types.IntValue)
	if !ok {
		return 0, 0, types.FailType(e.Pos.Line, "range start must be int, got %s", start.Val.Kind())
	}
	hi, ok := end.Val.(types.IntValue)
	if !ok {
		return 0, 0, types.FailType(e.Pos.Line, "range end must be int, got %s", end.Val.Kind())
	}
	upper := hi.Val
	if e.Exclusive {
		upper--
	}
	return lo.Val, upper, types.Ok(types.Nil)
}

func (in *Interp) evalListLiteral(e *parser.ListExpr, env *Environment) types.Result {
	list := types.NewList()
	for _, elem := range e.Elems {
		res := in.Eval(elem, env)
		if !res.IsNormal() {
			return res
		}
		list.Append(res.Val.Clone())
	}
	return types.Ok(list)
}

func (in *Interp) evalMapLiteral(e *parser.MapExpr, env *Environment) types.Result {
	m := types.NewMap()
	for _, entry := range e.Entries {
		res := in.Eval(entry.Value, env)
		if !res.IsNormal() {
			return res
		}
		m.Set(entry.Key, res.Val.Clone())
	}
	return types.Ok(m)
}

// evalConstruct builds an object from a type declaration. Construction is
// validated against the schema: unknown fields are rejected, declared fields
// missing from the constructor default to nil.
func (in *Interp) evalConstruct(e *parser.ConstructExpr, env *Environment) types.Result {
	schema, ok := in.Schemas.Lookup(e.TypeName)
	if !ok {
		return types.FailUndefined(e.Pos.Line, e.TypeName)
	}
	obj := types.NewObject(schema.Name)
	for _, field := range schema.Fields {
		obj.Set(field.Name, types.Nil)
	}
	for _, init := range e.Fields {
		if _, declared := schema.Field(init.Name); !declared {
			return types.FailType(e.Pos.Line, "type %s has no field %q", schema.Name, init.Name)
		}
		res := in.Eval(init.Value, env)
		if !res.IsNormal() {
			return res
		}
		obj.Set(init.Name, res.Val.Clone())
	}
	return types.Ok(obj)
}

func (in *Interp) evalIndex(e *parser.IndexExpr, env *Environment) types.Result {
	target := in.Eval(e.Target, env)
	if !target.IsNormal() {
		return target
	}
	index := in.Eval(e.Index, env)
	if !index.IsNormal() {
		return index
	}
	switch coll := target.Val.(type) {
	case *types.ListValue:
		idx, ok := index.Val.(types.IntValue)
		if !ok {
			return types.FailType(e.Pos.Line, "list index must be int, got %s", index.Val.Kind())
		}
		val, ok := coll.Get(idx.Val)
		if !ok {
			return types.FailType(e.Pos.Line, "list index %d out of range (len %d)", idx.Val, coll.Len())
		}
		return types.Ok(val)
	case *types.MapValue:
		key, ok := index.Val.(types.StrValue)
		if !ok {
			return types.FailType(e.Pos.Line, "map key must be str, got %s", index.Val.Kind())
		}
		// A missing key reads as nil, never an error
		val, _ := coll.Get(key.Val)
		return types.Ok(val)
	case types.StrValue:
		idx, ok := index.Val.(types.IntValue)
		if !ok {
			return types.FailType(e.Pos.Line, "string index must be int, got %s", index.Val.Kind())
		}
		runes := []rune(coll.Val)
		if idx.Val < 0 || idx.Val >= int64(len(runes)) {
			return types.FailType(e.Pos.Line, "string index %d out of range (len %d)", idx.Val, len(runes))
		}
		return types.Ok(types.NewStr(string(runes[idx.Val])))
	default:
		return types.FailType(e.Pos.Line, "cannot index %s", target.Val.Kind())
	}
}

func (in *Interp) evalField(e *parser.FieldExpr, env *Environment) types.Result {
	target := in.Eval(e.Target, env)
	if !target.IsNormal() {
		return target
	}
	switch obj := target.Val.(type) {
	case *types.MapValue:
		val, _ := obj.Get(e.Name)
		return types.Ok(val)
	default:
		return types.FailType(e.Pos.Line, "%s has no field %q", target.Val.Kind(), e.Name)
	}
}
