package eval

import (
	"skit/parser"
	"skit/types"
)

// evalBinaryOp dispatches a binary operator on already-evaluated operands.
// Operand kinds decide the meaning: `+` is numeric addition, string
// concatenation, or list concatenation (a new list, operands untouched).
func evalBinaryOp(op parser.TokenType, left, right types.Value, line int) types.Result {
	switch op {
	case parser.TOKEN_PLUS:
		return evalAdd(left, right, line)
	case parser.TOKEN_MINUS, parser.TOKEN_STAR, parser.TOKEN_SLASH, parser.TOKEN_PERCENT:
		return evalArith(op, left, right, line)
	case parser.TOKEN_EQ:
		return types.Ok(types.NewBool(left.Equal(right)))
	case parser.TOKEN_NE:
		return types.Ok(types.NewBool(!left.Equal(right)))
	case parser.TOKEN_LT, parser.TOKEN_GT, parser.TOKEN_LE, parser.TOKEN_GE:
		return evalCompare(op, left, right, line)
	default:
		return types.FailType(line, "unknown binary operator")
	}
}

func evalAdd(left, right types.Value, line int) types.Result {
	// List concatenation
	if l, ok := left.(*types.ListValue); ok {
		r, ok := right.(*types.ListValue)
		if !ok {
			return types.FailType(line, "cannot add list and %s", right.Kind())
		}
		return types.Ok(l.Concat(r))
	}
	// String concatenation
	if l, ok := left.(types.StrValue); ok {
		r, ok := right.(types.StrValue)
		if !ok {
			return types.FailType(line, "cannot add str and %s", right.Kind())
		}
		return types.Ok(types.NewStr(l.Val + r.Val))
	}
	return evalArith(parser.TOKEN_PLUS, left, right, line)
}

// numericOperands extracts numeric operands, promoting to float when either
// side is a float
func numericOperands(left, right types.Value) (int64, int64, float64, float64, bool, bool) {
	var li, ri int64
	var lf, rf float64
	isFloat := false
	switch l := left.(type) {
	case types.IntValue:
		li, lf = l.Val, float64(l.Val)
	case types.FloatValue:
		lf, isFloat = l.Val, true
	default:
		return 0, 0, 0, 0, false, false
	}
	switch r := right.(type) {
	case types.IntValue:
		ri, rf = r.Val, float64(r.Val)
	case types.FloatValue:
		rf, isFloat = r.Val, true
	default:
		return 0, 0, 0, 0, false, false
	}
	return li, ri, lf, rf, isFloat, true
}

func evalArith(op parser.TokenType, left, right types.Value, line int) types.Result {
	li, ri, lf, rf, isFloat, ok := numericOperands(left, right)
	if !ok {
		return types.FailType(line, "invalid operands %s and %s for arithmetic", left.Kind(), right.Kind())
	}

	if isFloat {
		var out float64
		switch op {
		case parser.TOKEN_PLUS:
			out = lf + rf
		case parser.TOKEN_MINUS:
			out = lf - rf
		case parser.TOKEN_STAR:
			out = lf * rf
		case parser.TOKEN_SLASH:
			if rf == 0 {
				return types.FailType(line, "division by zero")
			}
			out = lf / rf
		case parser.TOKEN_PERCENT:
			return types.FailType(line, "modulo requires int operands")
		}
		return types.Ok(types.NewFloat(out))
	}

	var out int64
	switch op {
	case parser.TOKEN_PLUS:
		out = li + ri
	case parser.TOKEN_MINUS:
		out = li - ri
	case parser.TOKEN_STAR:
		out = li * ri
	case parser.TOKEN_SLASH:
		if ri == 0 {
			return types.FailType(line, "division by zero")
		}
		out = li / ri
	case parser.TOKEN_PERCENT:
		if ri == 0 {
			return types.FailType(line, "modulo by zero")
		}
		out = li % ri
	}
	return types.Ok(types.NewInt(out))
}

func evalCompare(op parser.TokenType, left, right types.Value, line int) types.Result {
	// String comparison is lexicographic
	if l, ok := left.(types.StrValue); ok {
		r, ok := right.(types.StrValue)
		if !ok {
			return types.FailType(line, "cannot compare str and %s", right.Kind())
		}
		return types.Ok(types.NewBool(compareOrdered(op, compareStrings(l.Val, r.Val))))
	}

	_, _, lf, rf, _, ok := numericOperands(left, right)
	if !ok {
		return types.FailType(line, "cannot compare %s and %s", left.Kind(), right.Kind())
	}
	var cmp int
	switch {
	case lf < rf:
		cmp = -1
	case lf > rf:
		cmp = 1
	}
	return types.Ok(types.NewBool(compareOrdered(op, cmp)))
}

func compareStrings(a, b string) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func compareOrdered(op parser.TokenType, cmp int) bool {
	switch op {
	case parser.TOKEN_LT:
		return cmp < 0
	case parser.TOKEN_GT:
		return cmp > 0
	case parser.TOKEN_LE:
		return cmp <= 0
	case parser.TOKEN_GE:
		return cmp >= 0
	default:
		return false
	}
}
