package parser

import "skit/types"

// Node is the base interface for all AST nodes
type Node interface {
	Position() Position
}

// Expr represents an expression node
type Expr interface {
	Node
	exprNode()
}

// Stmt represents a statement node
type Stmt interface {
	Node
	stmtNode()
}

// Program is a parsed script: a sequence of top-level statements. It owns its
// AST exclusively; nodes are immutable after parsing.
type Program struct {
	Stmts []Stmt
}

// ----------------------------------------------------------------------------
// Expressions
// ----------------------------------------------------------------------------

// LiteralExpr wraps a constant value (int, float, string, bool, nil)
type LiteralExpr struct {
	Pos   Position
	Value types.Value
}

func (e *LiteralExpr) Position() Position { return e.Pos }
func (e *LiteralExpr) exprNode()          {}

// IdentifierExpr represents a variable reference
type IdentifierExpr struct {
	Pos  Position
	Name string
}

func (e *IdentifierExpr) Position() Position { return e.Pos }
func (e *IdentifierExpr) exprNode()          {}

// UnaryExpr represents a unary operation: -x, not x
type UnaryExpr struct {
	Pos      Position
	Operator TokenType // TOKEN_MINUS, TOKEN_NOT
	Operand  Expr
}

func (e *UnaryExpr) Position() Position { return e.Pos }
func (e *UnaryExpr) exprNode()          {}

// BinaryExpr represents a binary operation. Operator dispatch on operand
// kinds (numeric add vs list/string concatenation) happens at evaluation
// time, not here.
type BinaryExpr struct {
	Pos      Position
	Left     Expr
	Operator TokenType
	Right    Expr
}

func (e *BinaryExpr) Position() Position { return e.Pos }
func (e *BinaryExpr) exprNode()          {}

// RangeExpr represents a..b (inclusive) or a..<b (exclusive)
type RangeExpr struct {
	Pos       Position
	Start     Expr
	End       Expr
	Exclusive bool
}

func (e *RangeExpr) Position() Position { return e.Pos }
func (e *RangeExpr) exprNode()          {}

// CallExpr represents a call: callee(arg, ...)
type CallExpr struct {
	Pos    Position
	Callee Expr
	Args   []Expr
}

func (e *CallExpr) Position() Position { return e.Pos }
func (e *CallExpr) exprNode()          {}

// FieldInit is one `name: value` pair in an object construction
type FieldInit struct {
	Name  string
	Value Expr
}

// ConstructExpr represents object construction: Name(field: value, ...).
// Recognized syntactically by the named-argument form.
type ConstructExpr struct {
	Pos      Position
	TypeName string
	Fields   []FieldInit
}

func (e *ConstructExpr) Position() Position { return e.Pos }
func (e *ConstructExpr) exprNode()          {}

// IndexExpr represents indexing: expr[index]
type IndexExpr struct {
	Pos    Position
	Target Expr
	Index  Expr
}

func (e *IndexExpr) Position() Position { return e.Pos }
func (e *IndexExpr) exprNode()          {}

// FieldExpr represents dotted access: expr.name
type FieldExpr struct {
	Pos    Position
	Target Expr
	Name   string
}

func (e *FieldExpr) Position() Position { return e.Pos }
func (e *FieldExpr) exprNode()          {}

// ListExpr represents an array literal: [a, b, c]
type ListExpr struct {
	Pos   Position
	Elems []Expr
}

func (e *ListExpr) Position() Position { return e.Pos }
func (e *ListExpr) exprNode()          {}

// MapEntry is one key: value pair of a map literal
type MapEntry struct {
	Key   string
	Value Expr
}

// MapExpr represents a map literal: {"k": v, ...}
type MapExpr struct {
	Pos     Position
	Entries []MapEntry
}

func (e *MapExpr) Position() Position { return e.Pos }
func (e *MapExpr) exprNode()          {}

// ----------------------------------------------------------------------------
// Statements
// ----------------------------------------------------------------------------

// VarDeclStmt represents `var name = expr`
type VarDeclStmt struct {
	Pos   Position
	Name  string
	Value Expr
}

func (s *VarDeclStmt) Position() Position { return s.Pos }
func (s *VarDeclStmt) stmtNode()          {}

// AssignStmt represents `target = expr` where target is an identifier,
// index, or field lvalue
type AssignStmt struct {
	Pos    Position
	Target Expr
	Value  Expr
}

func (s *AssignStmt) Position() Position { return s.Pos }
func (s *AssignStmt) stmtNode()          {}

// ExprStmt is an expression evaluated for its side effects
type ExprStmt struct {
	Pos  Position
	Expr Expr
}

func (s *ExprStmt) Position() Position { return s.Pos }
func (s *ExprStmt) stmtNode()          {}

// ElifClause is one `elif cond:` arm of an if-chain
type ElifClause struct {
	Cond Expr
	Body []Stmt
}

// IfStmt represents if/elif/else
type IfStmt struct {
	Pos   Position
	Cond  Expr
	Body  []Stmt
	Elifs []ElifClause
	Else  []Stmt
}

func (s *IfStmt) Position() Position { return s.Pos }
func (s *IfStmt) stmtNode()          {}

// WhileStmt represents a while loop
type WhileStmt struct {
	Pos  Position
	Cond Expr
	Body []Stmt
}

func (s *WhileStmt) Position() Position { return s.Pos }
func (s *WhileStmt) stmtNode()          {}

// ForStmt represents `for name in iterable:`
type ForStmt struct {
	Pos  Position
	Name string
	Iter Expr
	Body []Stmt
}

func (s *ForStmt) Position() Position { return s.Pos }
func (s *ForStmt) stmtNode()          {}

// FuncDeclStmt represents `fn name(params): ... end`
type FuncDeclStmt struct {
	Pos    Position
	Name   string
	Params []types.Param
	Body   []Stmt
}

func (s *FuncDeclStmt) Position() Position { return s.Pos }
func (s *FuncDeclStmt) stmtNode()          {}

// TypeDeclStmt represents `type Name = object { field: Type, ... }`
type TypeDeclStmt struct {
	Pos    Position
	Name   string
	Fields []types.SchemaField
}

func (s *TypeDeclStmt) Position() Position { return s.Pos }
func (s *TypeDeclStmt) stmtNode()          {}

// ReturnStmt represents `return [expr]`
type ReturnStmt struct {
	Pos   Position
	Value Expr // nil for a bare return
}

func (s *ReturnStmt) Position() Position { return s.Pos }
func (s *ReturnStmt) stmtNode()          {}

// BreakStmt represents `break`
type BreakStmt struct {
	Pos Position
}

func (s *BreakStmt) Position() Position { return s.Pos }
func (s *BreakStmt) stmtNode()          {}

// ContinueStmt represents `continue`
type ContinueStmt struct {
	Pos Position
}

func (s *ContinueStmt) Position() Position { return s.Pos }
func (s *ContinueStmt) stmtNode()          {}
