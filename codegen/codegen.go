// Package codegen transpiles a parsed script to Go source for ahead-of-time
// builds. Call sites are resolved against the active plugins' name mappings;
// script-defined functions keep their own names. A call that is neither
// script-defined nor mapped is a hard error listing every unmapped name, so
// a gap in the mapping table surfaces at generation time instead of as a
// broken build.
package codegen

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"skit/bridge"
	"skit/parser"
	"skit/types"
)

// Context carries the generation settings: the target package name and the
// plugins whose mappings and imports are in effect.
type Context struct {
	Package string
	Plugins []*bridge.Plugin
}

// Generate emits Go source for prog.
func Generate(prog *parser.Program, ctx *Context) (string, error) {
	if ctx == nil {
		ctx = &Context{}
	}
	g := &generator{
		ctx:      ctx,
		funcs:    make(map[string][]types.Param),
		declared: make(map[string]bool),
		imports:  make(map[string]bool),
		unmapped: make(map[string]bool),
	}
	g.collect(prog.Stmts)

	var body strings.Builder
	g.sb = &body
	for i, stmt := range prog.Stmts {
		if i > 0 {
			g.separate(prog.Stmts[i-1], stmt)
		}
		g.stmt(stmt)
	}
	if len(g.unmapped) > 0 {
		names := make([]string, 0, len(g.unmapped))
		for n := range g.unmapped {
			names = append(names, n)
		}
		sort.Strings(names)
		return "", fmt.Errorf("codegen: no mapping for: %s", strings.Join(names, ", "))
	}

	pkg := ctx.Package
	if pkg == "" {
		pkg = "main"
	}
	var out strings.Builder
	out.WriteString("// Code generated by skit gen. DO NOT EDIT.\n\n")
	out.WriteString("package " + pkg + "\n\n")
	if len(g.imports) > 0 {
		paths := make([]string, 0, len(g.imports))
		for p := range g.imports {
			paths = append(paths, p)
		}
		sort.Strings(paths)
		out.WriteString("import (\n")
		for _, p := range paths {
			out.WriteString("\t" + strconv.Quote(p) + "\n")
		}
		out.WriteString(")\n\n")
	}
	out.WriteString(body.String())
	return out.String(), nil
}

type generator struct {
	ctx      *Context
	sb       *strings.Builder
	indent   int
	funcs    map[string][]types.Param // script-defined functions
	declared map[string]bool          // every script-declared name
	byref    map[string]bool          // byref params of the function being emitted
	imports  map[string]bool
	unmapped map[string]bool
}

// collect records every name the script itself declares, so call resolution
// can tell script functions from plugin natives
func (g *generator) collect(stmts []parser.Stmt) {
	for _, stmt := range stmts {
		switch s := stmt.(type) {
		case *parser.VarDeclStmt:
			g.declared[s.Name] = true
		case *parser.FuncDeclStmt:
			g.funcs[s.Name] = s.Params
			g.declared[s.Name] = true
			for _, p := range s.Params {
				g.declared[p.Name] = true
			}
			g.collect(s.Body)
		case *parser.TypeDeclStmt:
			g.declared[s.Name] = true
		case *parser.IfStmt:
			g.collect(s.Body)
			for _, clause := range s.Elifs {
				g.collect(clause.Body)
			}
			g.collect(s.Else)
		case *parser.WhileStmt:
			g.collect(s.Body)
		case *parser.ForStmt:
			g.declared[s.Name] = true
			g.collect(s.Body)
		}
	}
}

// resolve maps a called name to the Go symbol to emit
func (g *generator) resolve(name string) string {
	if _, ok := g.funcs[name]; ok {
		return funcName(name)
	}
	if g.declared[name] {
		return name
	}
	for _, p := range g.ctx.Plugins {
		if target, ok := p.Mapping(name); ok {
			for _, imp := range p.Imports() {
				g.imports[imp] = true
			}
			return target
		}
	}
	g.unmapped[name] = true
	return name
}

// funcName renames the init hook; a Go func init has reserved semantics
func funcName(name string) string {
	if name == "init" {
		return "scriptInit"
	}
	return name
}

func (g *generator) line(format string, args ...interface{}) {
	g.sb.WriteString(strings.Repeat("\t", g.indent))
	fmt.Fprintf(g.sb, format, args...)
	g.sb.WriteByte('\n')
}

// separate inserts a blank line between top-level declarations
func (g *generator) separate(prev, next parser.Stmt) {
	_, prevDecl := prev.(*parser.FuncDeclStmt)
	_, prevType := prev.(*parser.TypeDeclStmt)
	_, nextDecl := next.(*parser.FuncDeclStmt)
	_, nextType := next.(*parser.TypeDeclStmt)
	if prevDecl || prevType || nextDecl || nextType {
		g.sb.WriteByte('\n')
	}
}

func (g *generator) stmt(stmt parser.Stmt) {
	switch s := stmt.(type) {
	case *parser.VarDeclStmt:
		g.line("%s := %s", s.Name, g.expr(s.Value))
	case *parser.AssignStmt:
		g.line("%s = %s", g.expr(s.Target), g.expr(s.Value))
	case *parser.ExprStmt:
		g.line("%s", g.expr(s.Expr))
	case *parser.FuncDeclStmt:
		g.funcDecl(s)
	case *parser.TypeDeclStmt:
		g.typeDecl(s)
	case *parser.IfStmt:
		g.line("if %s {", g.expr(s.Cond))
		g.block(s.Body)
		for _, clause := range s.Elifs {
			g.line("} else if %s {", g.expr(clause.Cond))
			g.block(clause.Body)
		}
		if len(s.Else) > 0 {
			g.line("} else {")
			g.block(s.Else)
		}
		g.line("}")
	case *parser.WhileStmt:
		g.line("for %s {", g.expr(s.Cond))
		g.block(s.Body)
		g.line("}")
	case *parser.ForStmt:
		if r, ok := s.Iter.(*parser.RangeExpr); ok {
			cmp := "<="
			if r.Exclusive {
				cmp = "<"
			}
			g.line("for %s := %s; %s %s %s; %s++ {", s.Name, g.expr(r.Start), s.Name, cmp, g.expr(r.End), s.Name)
		} else {
			g.line("for _, %s := range %s {", s.Name, g.expr(s.Iter))
		}
		g.block(s.Body)
		g.line("}")
	case *parser.ReturnStmt:
		if s.Value == nil {
			g.line("return")
		} else {
			g.line("return %s", g.expr(s.Value))
		}
	case *parser.BreakStmt:
		g.line("break")
	case *parser.ContinueStmt:
		g.line("continue")
	}
}

func (g *generator) block(stmts []parser.Stmt) {
	g.indent++
	for _, stmt := range stmts {
		g.stmt(stmt)
	}
	g.indent--
}

func (g *generator) funcDecl(s *parser.FuncDeclStmt) {
	params := make([]string, len(s.Params))
	byref := make(map[string]bool)
	for i, p := range s.Params {
		t := goType(p.Type)
		if p.ByRef {
			t = "*" + t
			byref[p.Name] = true
		}
		params[i] = p.Name + " " + t
	}
	ret := ""
	if returnsValue(s.Body) {
		ret = " any"
	}
	g.line("func %s(%s)%s {", funcName(s.Name), strings.Join(params, ", "), ret)
	prev := g.byref
	g.byref = byref
	g.block(s.Body)
	g.byref = prev
	g.line("}")
}

func (g *generator) typeDecl(s *parser.TypeDeclStmt) {
	g.line("type %s struct {", s.Name)
	for _, f := range s.Fields {
		g.line("\t%s %s", f.Name, goType(f.Type))
	}
	g.line("}")
}

// goType maps an advisory parameter or field annotation to a Go type; the
// untyped default is any
func goType(annotation string) string {
	switch annotation {
	case "Int":
		return "int64"
	case "Float":
		return "float64"
	case "Str", "String":
		return "string"
	case "Bool":
		return "bool"
	case "List":
		return "[]any"
	case "Map":
		return "map[string]any"
	case "":
		return "any"
	default:
		return annotation
	}
}

func returnsValue(stmts []parser.Stmt) bool {
	for _, stmt := range stmts {
		switch s := stmt.(type) {
		case *parser.ReturnStmt:
			if s.Value != nil {
				return true
			}
		case *parser.IfStmt:
			if returnsValue(s.Body) || returnsValue(s.Else) {
				return true
			}
			for _, clause := range s.Elifs {
				if returnsValue(clause.Body) {
					return true
				}
			}
		case *parser.WhileStmt:
			if returnsValue(s.Body) {
				return true
			}
		case *parser.ForStmt:
			if returnsValue(s.Body) {
				return true
			}
		}
	}
	return false
}

func (g *generator) expr(expr parser.Expr) string {
	switch e := expr.(type) {
	case *parser.LiteralExpr:
		if e.Value.Kind() == types.KindStr {
			return strconv.Quote(e.Value.(types.StrValue).Val)
		}
		return e.Value.String()
	case *parser.IdentifierExpr:
		if g.byref[e.Name] {
			return "(*" + e.Name + ")"
		}
		if g.declared[e.Name] {
			return e.Name
		}
		// constants like PI resolve through the mapping table too
		for _, p := range g.ctx.Plugins {
			if target, ok := p.Mapping(e.Name); ok {
				for _, imp := range p.Imports() {
					g.imports[imp] = true
				}
				return target
			}
		}
		return e.Name
	case *parser.UnaryExpr:
		op := "-"
		if e.Operator == parser.TOKEN_NOT {
			op = "!"
		}
		return op + g.expr(e.Operand)
	case *parser.BinaryExpr:
		prec := opPrec(e.Operator)
		left := g.operand(e.Left, prec, false)
		right := g.operand(e.Right, prec, true)
		return fmt.Sprintf("%s %s %s", left, goOperator(e.Operator), right)
	case *parser.CallExpr:
		return g.call(e)
	case *parser.ConstructExpr:
		fields := make([]string, len(e.Fields))
		for i, f := range e.Fields {
			fields[i] = f.Name + ": " + g.expr(f.Value)
		}
		return fmt.Sprintf("%s{%s}", e.TypeName, strings.Join(fields, ", "))
	case *parser.IndexExpr:
		return fmt.Sprintf("%s[%s]", g.expr(e.Target), g.expr(e.Index))
	case *parser.FieldExpr:
		return g.expr(e.Target) + "." + e.Name
	case *parser.ListExpr:
		elems := make([]string, len(e.Elems))
		for i, el := range e.Elems {
			elems[i] = g.expr(el)
		}
		return "[]any{" + strings.Join(elems, ", ") + "}"
	case *parser.MapExpr:
		entries := make([]string, len(e.Entries))
		for i, ent := range e.Entries {
			entries[i] = strconv.Quote(ent.Key) + ": " + g.expr(ent.Value)
		}
		return "map[string]any{" + strings.Join(entries, ", ") + "}"
	case *parser.RangeExpr:
		g.unmapped["range expression outside for"] = true
		return ""
	default:
		return ""
	}
}

func (g *generator) call(e *parser.CallExpr) string {
	args := make([]string, len(e.Args))
	ident, named := e.Callee.(*parser.IdentifierExpr)
	var params []types.Param
	if named {
		params = g.funcs[ident.Name]
	}
	for i, arg := range e.Args {
		text := g.expr(arg)
		if params != nil && i < len(params) && params[i].ByRef {
			// byref maps to a plain Go pointer here; the copy-in/copy-out
			// dance is an interpreter concern
			text = "&" + text
		}
		args[i] = text
	}
	if named {
		return g.resolve(ident.Name) + "(" + strings.Join(args, ", ") + ")"
	}
	return g.expr(e.Callee) + "(" + strings.Join(args, ", ") + ")"
}

// operand emits a binary operand, parenthesized when its own precedence
// would rebind under the parent operator
func (g *generator) operand(e parser.Expr, parentPrec int, rightSide bool) string {
	text := g.expr(e)
	inner, ok := e.(*parser.BinaryExpr)
	if !ok {
		return text
	}
	prec := opPrec(inner.Operator)
	if prec < parentPrec || (prec == parentPrec && rightSide) {
		return "(" + text + ")"
	}
	return text
}

func opPrec(op parser.TokenType) int {
	switch op {
	case parser.TOKEN_OR:
		return 1
	case parser.TOKEN_AND:
		return 2
	case parser.TOKEN_EQ, parser.TOKEN_NE:
		return 3
	case parser.TOKEN_LT, parser.TOKEN_GT, parser.TOKEN_LE, parser.TOKEN_GE:
		return 4
	case parser.TOKEN_PLUS, parser.TOKEN_MINUS:
		return 5
	case parser.TOKEN_STAR, parser.TOKEN_SLASH, parser.TOKEN_PERCENT:
		return 6
	default:
		return 7
	}
}

func goOperator(op parser.TokenType) string {
	switch op {
	case parser.TOKEN_AND:
		return "&&"
	case parser.TOKEN_OR:
		return "||"
	case parser.TOKEN_PLUS:
		return "+"
	case parser.TOKEN_MINUS:
		return "-"
	case parser.TOKEN_STAR:
		return "*"
	case parser.TOKEN_SLASH:
		return "/"
	case parser.TOKEN_PERCENT:
		return "%"
	case parser.TOKEN_EQ:
		return "=="
	case parser.TOKEN_NE:
		return "!="
	case parser.TOKEN_LT:
		return "<"
	case parser.TOKEN_GT:
		return ">"
	case parser.TOKEN_LE:
		return "<="
	case parser.TOKEN_GE:
		return ">="
	default:
		return "?"
	}
}
