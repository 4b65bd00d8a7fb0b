package eval

import (
	"skit/parser"
	"skit/types"
)

// assign stores val into the slot named by target. Targets are plain
// identifiers, index paths, or field paths; anything else was rejected at
// parse time. The value is expected to be already cloned by the caller.
func (in *Interp) assign(target parser.Expr, val types.Value, env *Environment) types.Result {
	switch t := target.(type) {
	case *parser.IdentifierExpr:
		if !env.Set(t.Name, val) {
			return types.FailUndefined(t.Pos.Line, t.Name)
		}
		return types.Ok(types.Nil)

	case *parser.IndexExpr:
		container := in.Eval(t.Target, env)
		if !container.IsNormal() {
			return container
		}
		index := in.Eval(t.Index, env)
		if !index.IsNormal() {
			return index
		}
		switch coll := container.Val.(type) {
		case *types.ListValue:
			idx, ok := index.Val.(types.IntValue)
			if !ok {
				return types.FailType(t.Pos.Line, "list index must be int, got %s", index.Val.Kind())
			}
			if !coll.Set(idx.Val, val) {
				return types.FailType(t.Pos.Line, "list index %d out of range (len %d)", idx.Val, coll.Len())
			}
			return types.Ok(types.Nil)
		case *types.MapValue:
			key, ok := index.Val.(types.StrValue)
			if !ok {
				return types.FailType(t.Pos.Line, "map key must be str, got %s", index.Val.Kind())
			}
			coll.Set(key.Val, val)
			return types.Ok(types.Nil)
		default:
			return types.FailType(t.Pos.Line, "cannot assign into %s", container.Val.Kind())
		}

	case *parser.FieldExpr:
		container := in.Eval(t.Target, env)
		if !container.IsNormal() {
			return container
		}
		obj, ok := container.Val.(*types.MapValue)
		if !ok {
			return types.FailType(t.Pos.Line, "%s has no assignable fields", container.Val.Kind())
		}
		// Objects built from a type declaration only accept declared fields;
		// plain maps stay open
		if obj.TypeName != "" {
			if schema, found := in.Schemas.Lookup(obj.TypeName); found {
				if _, declared := schema.Field(t.Name); !declared {
					return types.FailType(t.Pos.Line, "type %s has no field %q", obj.TypeName, t.Name)
				}
			}
		}
		obj.Set(t.Name, val)
		return types.Ok(types.Nil)

	default:
		return types.FailType(target.Position().Line, "cannot assign to this expression")
	}
}

// isLvaluePath reports whether an argument expression denotes a storage slot
// that byref copy-back can write to
func isLvaluePath(expr parser.Expr) bool {
	switch expr.(type) {
	case *parser.IdentifierExpr, *parser.IndexExpr, *parser.FieldExpr:
		return true
	default:
		return false
	}
}
