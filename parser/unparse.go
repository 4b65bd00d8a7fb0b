package parser

import (
	"strings"

	"skit/types"
)

// Unparse converts a Program back to canonical source. The output uses
// two-space indentation and explicit `end` terminators; reparsing it yields
// a structurally equal AST.
func Unparse(prog *Program) string {
	var sb strings.Builder
	for _, stmt := range prog.Stmts {
		unparseStmt(&sb, stmt, 0)
	}
	return sb.String()
}

func indentOf(depth int) string {
	return strings.Repeat("  ", depth)
}

func unparseStmt(sb *strings.Builder, stmt Stmt, depth int) {
	ind := indentOf(depth)
	switch s := stmt.(type) {
	case *VarDeclStmt:
		sb.WriteString(ind + "var " + s.Name + " = " + unparseExpr(s.Value, PREC_LOWEST) + "\n")
	case *AssignStmt:
		sb.WriteString(ind + unparseExpr(s.Target, PREC_POSTFIX) + " = " + unparseExpr(s.Value, PREC_LOWEST) + "\n")
	case *ExprStmt:
		sb.WriteString(ind + unparseExpr(s.Expr, PREC_LOWEST) + "\n")
	case *IfStmt:
		sb.WriteString(ind + "if " + unparseExpr(s.Cond, PREC_LOWEST) + ":\n")
		unparseBody(sb, s.Body, depth+1)
		for _, elif := range s.Elifs {
			sb.WriteString(ind + "elif " + unparseExpr(elif.Cond, PREC_LOWEST) + ":\n")
			unparseBody(sb, elif.Body, depth+1)
		}
		if s.Else != nil {
			sb.WriteString(ind + "else:\n")
			unparseBody(sb, s.Else, depth+1)
		}
		sb.WriteString(ind + "end\n")
	case *WhileStmt:
		sb.WriteString(ind + "while " + unparseExpr(s.Cond, PREC_LOWEST) + ":\n")
		unparseBody(sb, s.Body, depth+1)
		sb.WriteString(ind + "end\n")
	case *ForStmt:
		sb.WriteString(ind + "for " + s.Name + " in " + unparseExpr(s.Iter, PREC_LOWEST) + ":\n")
		unparseBody(sb, s.Body, depth+1)
		sb.WriteString(ind + "end\n")
	case *FuncDeclStmt:
		sb.WriteString(ind + "fn " + s.Name + "(")
		for i, param := range s.Params {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(param.Name)
			if param.Type != "" || param.ByRef {
				sb.WriteString(": ")
				if param.ByRef {
					sb.WriteString("byref ")
				}
				sb.WriteString(param.Type)
			}
		}
		sb.WriteString("):\n")
		unparseBody(sb, s.Body, depth+1)
		sb.WriteString(ind + "end\n")
	case *TypeDeclStmt:
		sb.WriteString(ind + "type " + s.Name + " = object { ")
		for i, field := range s.Fields {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(field.Name)
			if field.Type != "" {
				sb.WriteString(": " + field.Type)
			}
		}
		sb.WriteString(" }\n")
	case *ReturnStmt:
		if s.Value != nil {
			sb.WriteString(ind + "return " + unparseExpr(s.Value, PREC_LOWEST) + "\n")
		} else {
			sb.WriteString(ind + "return\n")
		}
	case *BreakStmt:
		sb.WriteString(ind + "break\n")
	case *ContinueStmt:
		sb.WriteString(ind + "continue\n")
	}
}

func unparseBody(sb *strings.Builder, body []Stmt, depth int) {
	for _, stmt := range body {
		unparseStmt(sb, stmt, depth)
	}
}

func operatorText(t TokenType) string {
	switch t {
	case TOKEN_PLUS:
		return "+"
	case TOKEN_MINUS:
		return "-"
	case TOKEN_STAR:
		return "*"
	case TOKEN_SLASH:
		return "/"
	case TOKEN_PERCENT:
		return "%"
	case TOKEN_EQ:
		return "=="
	case TOKEN_NE:
		return "!="
	case TOKEN_LT:
		return "<"
	case TOKEN_GT:
		return ">"
	case TOKEN_LE:
		return "<="
	case TOKEN_GE:
		return ">="
	case TOKEN_AND:
		return "and"
	case TOKEN_OR:
		return "or"
	case TOKEN_NOT:
		return "not"
	default:
		return "?"
	}
}

// unparseExpr renders an expression, parenthesizing when the surrounding
// precedence requires it
func unparseExpr(expr Expr, outerPrec int) string {
	switch e := expr.(type) {
	case *LiteralExpr:
		if s, ok := e.Value.(types.StrValue); ok {
			return quoteString(s.Val)
		}
		return e.Value.String()
	case *IdentifierExpr:
		return e.Name
	case *UnaryExpr:
		inner := unparseExpr(e.Operand, PREC_UNARY)
		if e.Operator == TOKEN_NOT {
			return parenIf("not "+inner, outerPrec > PREC_UNARY)
		}
		return parenIf("-"+inner, outerPrec > PREC_UNARY)
	case *BinaryExpr:
		prec := precedenceOf(e.Operator)
		s := unparseExpr(e.Left, prec) + " " + operatorText(e.Operator) + " " + unparseExpr(e.Right, prec+1)
		return parenIf(s, prec < outerPrec)
	case *RangeExpr:
		op := ".."
		if e.Exclusive {
			op = "..<"
		}
		s := unparseExpr(e.Start, PREC_RANGE) + " " + op + " " + unparseExpr(e.End, PREC_RANGE+1)
		return parenIf(s, PREC_RANGE < outerPrec)
	case *CallExpr:
		var args []string
		for _, arg := range e.Args {
			args = append(args, unparseExpr(arg, PREC_LOWEST))
		}
		return unparseExpr(e.Callee, PREC_POSTFIX) + "(" + strings.Join(args, ", ") + ")"
	case *ConstructExpr:
		var fields []string
		for _, f := range e.Fields {
			fields = append(fields, f.Name+": "+unparseExpr(f.Value, PREC_LOWEST))
		}
		return e.TypeName + "(" + strings.Join(fields, ", ") + ")"
	case *IndexExpr:
		return unparseExpr(e.Target, PREC_POSTFIX) + "[" + unparseExpr(e.Index, PREC_LOWEST) + "]"
	case *FieldExpr:
		return unparseExpr(e.Target, PREC_POSTFIX) + "." + e.Name
	case *ListExpr:
		var elems []string
		for _, el := range e.Elems {
			elems = append(elems, unparseExpr(el, PREC_LOWEST))
		}
		return "[" + strings.Join(elems, ", ") + "]"
	case *MapExpr:
		var entries []string
		for _, entry := range e.Entries {
			entries = append(entries, quoteString(entry.Key)+": "+unparseExpr(entry.Value, PREC_LOWEST))
		}
		return "{" + strings.Join(entries, ", ") + "}"
	default:
		return "?"
	}
}

// quoteString renders a string literal using only the escape sequences the
// lexer decodes, so the output reparses to the same value. Bytes with no
// escape form are emitted literally; the lexer accepts them inside strings.
func quoteString(s string) string {
	var sb strings.Builder
	sb.WriteByte('"')
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '\n':
			sb.WriteString(`\n`)
		case '\t':
			sb.WriteString(`\t`)
		case '\r':
			sb.WriteString(`\r`)
		case '\\':
			sb.WriteString(`\\`)
		case '"':
			sb.WriteString(`\"`)
		case 0:
			sb.WriteString(`\0`)
		default:
			sb.WriteByte(c)
		}
	}
	sb.WriteByte('"')
	return sb.String()
}

func parenIf(s string, need bool) string {
	if need {
		return "(" + s + ")"
	}
	return s
}
