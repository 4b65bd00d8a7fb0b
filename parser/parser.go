package parser

import (
	"fmt"
	"strconv"

	"skit/types"
)

// ParseError is a syntax error with its 1-based source line. Parsing does not
// recover: the first error aborts the script.
type ParseError struct {
	Line    int
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("ParseError at line %d: %s", e.Line, e.Message)
}

// Operator precedence levels (higher = tighter binding)
const (
	PREC_LOWEST = iota
	PREC_OR
	PREC_AND
	PREC_EQUALITY   // == !=
	PREC_COMPARISON // < <= > >=
	PREC_RANGE      // .. ..<
	PREC_ADDITIVE   // + -
	PREC_MULTIPLY   // * / %
	PREC_UNARY      // - not
	PREC_POSTFIX    // call, index, field access
)

func precedenceOf(t TokenType) int {
	switch t {
	case TOKEN_OR:
		return PREC_OR
	case TOKEN_AND:
		return PREC_AND
	case TOKEN_EQ, TOKEN_NE:
		return PREC_EQUALITY
	case TOKEN_LT, TOKEN_GT, TOKEN_LE, TOKEN_GE:
		return PREC_COMPARISON
	case TOKEN_RANGE, TOKEN_RANGE_EXCL:
		return PREC_RANGE
	case TOKEN_PLUS, TOKEN_MINUS:
		return PREC_ADDITIVE
	case TOKEN_STAR, TOKEN_SLASH, TOKEN_PERCENT:
		return PREC_MULTIPLY
	default:
		return PREC_LOWEST
	}
}

// Parser consumes a token stream and produces a Program
type Parser struct {
	toks []Token
	pos  int
}

// NewParser creates a parser over a token slice produced by Tokenize
func NewParser(toks []Token) *Parser {
	if len(toks) == 0 {
		toks = []Token{{Type: TOKEN_EOF, Position: Position{Line: 1, Column: 1}}}
	}
	return &Parser{toks: toks}
}

// Parse parses a token stream into a Program
func Parse(toks []Token) (*Program, error) {
	return NewParser(toks).ParseProgram()
}

// ParseSource tokenizes and parses a script in one step
func ParseSource(src string) (*Program, error) {
	return Parse(Tokenize(src))
}

func (p *Parser) cur() Token { return p.toks[p.pos] }

func (p *Parser) peek() Token {
	if p.pos+1 < len(p.toks) {
		return p.toks[p.pos+1]
	}
	return p.toks[len(p.toks)-1]
}

func (p *Parser) advance() Token {
	tok := p.toks[p.pos]
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return tok
}

func (p *Parser) at(t TokenType) bool { return p.cur().Type == t }

func (p *Parser) accept(t TokenType) bool {
	if p.at(t) {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) expect(t TokenType) (Token, error) {
	if !p.at(t) {
		return Token{}, p.errorf("expected %s, found %s", t, p.describe(p.cur()))
	}
	return p.advance(), nil
}

func (p *Parser) errorf(format string, args ...interface{}) *ParseError {
	return &ParseError{Line: p.cur().Position.Line, Message: fmt.Sprintf(format, args...)}
}

func (p *Parser) errorAt(pos Position, format string, args ...interface{}) *ParseError {
	return &ParseError{Line: pos.Line, Message: fmt.Sprintf(format, args...)}
}

func (p *Parser) describe(tok Token) string {
	switch tok.Type {
	case TOKEN_EOF, TOKEN_NEWLINE:
		return tok.Type.String()
	case TOKEN_ILLEGAL:
		return fmt.Sprintf("illegal character %q", tok.Value)
	default:
		return fmt.Sprintf("%s %q", tok.Type, tok.Value)
	}
}

func (p *Parser) skipNewlines() {
	for p.at(TOKEN_NEWLINE) {
		p.advance()
	}
}

// ----------------------------------------------------------------------------
// Statements
// ----------------------------------------------------------------------------

// ParseProgram parses a complete script (sequence of statements)
func (p *Parser) ParseProgram() (*Program, error) {
	prog := &Program{}
	p.skipNewlines()
	for !p.at(TOKEN_EOF) {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		prog.Stmts = append(prog.Stmts, stmt)
		if err := p.endStatement(); err != nil {
			return nil, err
		}
		p.skipNewlines()
	}
	return prog, nil
}

// endStatement consumes a statement terminator: a newline, or a token that
// legitimately closes the surrounding block
func (p *Parser) endStatement() error {
	switch p.cur().Type {
	case TOKEN_NEWLINE:
		p.advance()
		return nil
	case TOKEN_EOF, TOKEN_END, TOKEN_ELIF, TOKEN_ELSE:
		return nil
	default:
		return p.errorf("unexpected %s after statement", p.describe(p.cur()))
	}
}

func (p *Parser) parseStatement() (Stmt, error) {
	switch p.cur().Type {
	case TOKEN_VAR:
		return p.parseVarDecl()
	case TOKEN_FN:
		return p.parseFuncDecl()
	case TOKEN_TYPE:
		return p.parseTypeDecl()
	case TOKEN_IF:
		return p.parseIfStatement()
	case TOKEN_WHILE:
		return p.parseWhileStatement()
	case TOKEN_FOR:
		return p.parseForStatement()
	case TOKEN_RETURN:
		return p.parseReturnStatement()
	case TOKEN_BREAK:
		pos := p.advance().Position
		return &BreakStmt{Pos: pos}, nil
	case TOKEN_CONTINUE:
		pos := p.advance().Position
		return &ContinueStmt{Pos: pos}, nil
	case TOKEN_ILLEGAL:
		return nil, p.errorf("unrecognized character %q", p.cur().Value)
	default:
		return p.parseSimpleStatement()
	}
}

// parseSimpleStatement parses an assignment or expression statement
func (p *Parser) parseSimpleStatement() (Stmt, error) {
	pos := p.cur().Position
	expr, err := p.ParseExpression(PREC_LOWEST)
	if err != nil {
		return nil, err
	}
	if p.at(TOKEN_ASSIGN) {
		if !isLvalue(expr) {
			return nil, p.errorAt(pos, "cannot assign to this expression")
		}
		p.advance()
		value, err := p.ParseExpression(PREC_LOWEST)
		if err != nil {
			return nil, err
		}
		return &AssignStmt{Pos: pos, Target: expr, Value: value}, nil
	}
	return &ExprStmt{Pos: pos, Expr: expr}, nil
}

// isLvalue reports whether an expression denotes a mutable storage slot
func isLvalue(expr Expr) bool {
	switch expr.(type) {
	case *IdentifierExpr, *IndexExpr, *FieldExpr:
		return true
	default:
		return false
	}
}

func (p *Parser) parseVarDecl() (Stmt, error) {
	pos := p.advance().Position // consume 'var'
	name, err := p.expect(TOKEN_IDENTIFIER)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TOKEN_ASSIGN); err != nil {
		return nil, err
	}
	value, err := p.ParseExpression(PREC_LOWEST)
	if err != nil {
		return nil, err
	}
	return &VarDeclStmt{Pos: pos, Name: name.Value, Value: value}, nil
}

func (p *Parser) parseFuncDecl() (Stmt, error) {
	pos := p.advance().Position // consume 'fn'
	name, err := p.expect(TOKEN_IDENTIFIER)
	if err != nil {
		return nil, err
	}
	params, err := p.parseParams()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock(pos)
	if err != nil {
		return nil, err
	}
	p.maybeEnd(pos)
	return &FuncDeclStmt{Pos: pos, Name: name.Value, Params: params, Body: body}, nil
}

// parseParams parses `(name [: [byref] Type], ...)`
func (p *Parser) parseParams() ([]types.Param, error) {
	if _, err := p.expect(TOKEN_LPAREN); err != nil {
		return nil, err
	}
	var params []types.Param
	for !p.at(TOKEN_RPAREN) {
		name, err := p.expect(TOKEN_IDENTIFIER)
		if err != nil {
			return nil, err
		}
		param := types.Param{Name: name.Value}
		if p.accept(TOKEN_COLON) {
			if p.accept(TOKEN_BYREF) {
				param.ByRef = true
			}
			typeName, err := p.expect(TOKEN_IDENTIFIER)
			if err != nil {
				return nil, err
			}
			param.Type = typeName.Value
		}
		params = append(params, param)
		if !p.accept(TOKEN_COMMA) {
			break
		}
	}
	if _, err := p.expect(TOKEN_RPAREN); err != nil {
		return nil, err
	}
	return params, nil
}

func (p *Parser) parseTypeDecl() (Stmt, error) {
	pos := p.advance().Position // consume 'type'
	name, err := p.expect(TOKEN_IDENTIFIER)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TOKEN_ASSIGN); err != nil {
		return nil, err
	}
	if _, err := p.expect(TOKEN_OBJECT); err != nil {
		return nil, err
	}
	if _, err := p.expect(TOKEN_LBRACE); err != nil {
		return nil, err
	}
	var fields []types.SchemaField
	for !p.at(TOKEN_RBRACE) {
		fieldName, err := p.expect(TOKEN_IDENTIFIER)
		if err != nil {
			return nil, err
		}
		field := types.SchemaField{Name: fieldName.Value}
		if p.accept(TOKEN_COLON) {
			typeName, err := p.expect(TOKEN_IDENTIFIER)
			if err != nil {
				return nil, err
			}
			field.Type = typeName.Value
		}
		fields = append(fields, field)
		if !p.accept(TOKEN_COMMA) {
			break
		}
	}
	if _, err := p.expect(TOKEN_RBRACE); err != nil {
		return nil, err
	}
	return &TypeDeclStmt{Pos: pos, Name: name.Value, Fields: fields}, nil
}

func (p *Parser) parseIfStatement() (Stmt, error) {
	pos := p.advance().Position // consume 'if'
	cond, err := p.ParseExpression(PREC_LOWEST)
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock(pos)
	if err != nil {
		return nil, err
	}
	stmt := &IfStmt{Pos: pos, Cond: cond, Body: body}

	for p.at(TOKEN_ELIF) {
		p.advance()
		elifCond, err := p.ParseExpression(PREC_LOWEST)
		if err != nil {
			return nil, err
		}
		elifBody, err := p.parseBlock(pos)
		if err != nil {
			return nil, err
		}
		stmt.Elifs = append(stmt.Elifs, ElifClause{Cond: elifCond, Body: elifBody})
	}
	if p.at(TOKEN_ELSE) {
		p.advance()
		elseBody, err := p.parseBlock(pos)
		if err != nil {
			return nil, err
		}
		stmt.Else = elseBody
	}
	p.maybeEnd(pos)
	return stmt, nil
}

func (p *Parser) parseWhileStatement() (Stmt, error) {
	pos := p.advance().Position // consume 'while'
	cond, err := p.ParseExpression(PREC_LOWEST)
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock(pos)
	if err != nil {
		return nil, err
	}
	p.maybeEnd(pos)
	return &WhileStmt{Pos: pos, Cond: cond, Body: body}, nil
}

func (p *Parser) parseForStatement() (Stmt, error) {
	pos := p.advance().Position // consume 'for'
	name, err := p.expect(TOKEN_IDENTIFIER)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TOKEN_IN); err != nil {
		return nil, err
	}
	iter, err := p.ParseExpression(PREC_LOWEST)
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock(pos)
	if err != nil {
		return nil, err
	}
	p.maybeEnd(pos)
	return &ForStmt{Pos: pos, Name: name.Value, Iter: iter, Body: body}, nil
}

func (p *Parser) parseReturnStatement() (Stmt, error) {
	pos := p.advance().Position // consume 'return'
	switch p.cur().Type {
	case TOKEN_NEWLINE, TOKEN_EOF, TOKEN_END, TOKEN_ELIF, TOKEN_ELSE:
		return &ReturnStmt{Pos: pos}, nil
	}
	value, err := p.ParseExpression(PREC_LOWEST)
	if err != nil {
		return nil, err
	}
	return &ReturnStmt{Pos: pos, Value: value}, nil
}

// parseBlock parses a colon-introduced block body. Statements on the same
// line as the colon form a one-line body. A multi-line body is closed by
// `end`, by `elif`/`else` (if-chains), or implicitly by the first statement
// whose column does not exceed the header's column; `end` itself is consumed
// by the caller via maybeEnd so if-chains can share one terminator.
func (p *Parser) parseBlock(header Position) ([]Stmt, error) {
	if _, err := p.expect(TOKEN_COLON); err != nil {
		return nil, err
	}
	if !p.at(TOKEN_NEWLINE) && !p.at(TOKEN_EOF) {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		return []Stmt{stmt}, nil
	}

	var body []Stmt
	for {
		p.skipNewlines()
		switch p.cur().Type {
		case TOKEN_EOF, TOKEN_END, TOKEN_ELIF, TOKEN_ELSE:
			return body, nil
		}
		if p.cur().Position.Column <= header.Column {
			return body, nil
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		body = append(body, stmt)
		if p.at(TOKEN_NEWLINE) && p.dedentFollows(header) {
			// Leave the newline for the enclosing statement's terminator
			return body, nil
		}
		if err := p.endStatement(); err != nil {
			return nil, err
		}
	}
}

// dedentFollows reports whether the first token after the pending newlines
// starts a statement at or left of the header column, which closes the
// block implicitly. Nothing is consumed; explicit terminators (end, elif,
// else, eof) are not dedents.
func (p *Parser) dedentFollows(header Position) bool {
	i := p.pos
	for p.toks[i].Type == TOKEN_NEWLINE {
		i++
	}
	switch p.toks[i].Type {
	case TOKEN_EOF, TOKEN_END, TOKEN_ELIF, TOKEN_ELSE:
		return false
	}
	return p.toks[i].Position.Column <= header.Column
}

// maybeEnd consumes an `end` terminator belonging to the block that started
// at header (its column is at or beyond the header's)
func (p *Parser) maybeEnd(header Position) {
	if p.at(TOKEN_END) && p.cur().Position.Column >= header.Column {
		p.advance()
	}
}

// ----------------------------------------------------------------------------
// Expressions
// ----------------------------------------------------------------------------

// ParseExpression parses an expression with precedence climbing
func (p *Parser) ParseExpression(minPrec int) (Expr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		op := p.cur()
		prec := precedenceOf(op.Type)
		if prec == PREC_LOWEST || prec < minPrec {
			return left, nil
		}
		p.advance()
		right, err := p.ParseExpression(prec + 1)
		if err != nil {
			return nil, err
		}
		if op.Type == TOKEN_RANGE || op.Type == TOKEN_RANGE_EXCL {
			left = &RangeExpr{
				Pos:       left.Position(),
				Start:     left,
				End:       right,
				Exclusive: op.Type == TOKEN_RANGE_EXCL,
			}
		} else {
			left = &BinaryExpr{Pos: left.Position(), Left: left, Operator: op.Type, Right: right}
		}
	}
}

func (p *Parser) parseUnary() (Expr, error) {
	switch p.cur().Type {
	case TOKEN_MINUS, TOKEN_NOT:
		op := p.advance()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &UnaryExpr{Pos: op.Position, Operator: op.Type, Operand: operand}, nil
	}
	return p.parsePostfix()
}

// parsePostfix parses a primary expression followed by any chain of calls,
// index accesses, and field accesses
func (p *Parser) parsePostfix() (Expr, error) {
	expr, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for {
		switch p.cur().Type {
		case TOKEN_LPAREN:
			expr, err = p.parseCallOrConstruct(expr)
			if err != nil {
				return nil, err
			}
		case TOKEN_LBRACKET:
			lbracket := p.advance()
			index, err := p.ParseExpression(PREC_LOWEST)
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(TOKEN_RBRACKET); err != nil {
				return nil, err
			}
			expr = &IndexExpr{Pos: lbracket.Position, Target: expr, Index: index}
		case TOKEN_DOT:
			dot := p.advance()
			name, err := p.expect(TOKEN_IDENTIFIER)
			if err != nil {
				return nil, err
			}
			expr = &FieldExpr{Pos: dot.Position, Target: expr, Name: name.Value}
		default:
			return expr, nil
		}
	}
}

// parseCallOrConstruct parses an argument list. The named-argument form
// `Name(field: value, ...)` is object construction and requires an
// identifier callee; the forms cannot be mixed.
func (p *Parser) parseCallOrConstruct(callee Expr) (Expr, error) {
	lparen := p.advance() // consume '('

	if p.at(TOKEN_IDENTIFIER) && p.peek().Type == TOKEN_COLON {
		ident, ok := callee.(*IdentifierExpr)
		if !ok {
			return nil, p.errorAt(lparen.Position, "named arguments are only valid in object construction")
		}
		construct := &ConstructExpr{Pos: lparen.Position, TypeName: ident.Name}
		for !p.at(TOKEN_RPAREN) {
			fieldName, err := p.expect(TOKEN_IDENTIFIER)
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(TOKEN_COLON); err != nil {
				return nil, err
			}
			value, err := p.ParseExpression(PREC_LOWEST)
			if err != nil {
				return nil, err
			}
			construct.Fields = append(construct.Fields, FieldInit{Name: fieldName.Value, Value: value})
			if !p.accept(TOKEN_COMMA) {
				break
			}
		}
		if _, err := p.expect(TOKEN_RPAREN); err != nil {
			return nil, err
		}
		return construct, nil
	}

	call := &CallExpr{Pos: lparen.Position, Callee: callee}
	for !p.at(TOKEN_RPAREN) {
		arg, err := p.ParseExpression(PREC_LOWEST)
		if err != nil {
			return nil, err
		}
		call.Args = append(call.Args, arg)
		if !p.accept(TOKEN_COMMA) {
			break
		}
	}
	if _, err := p.expect(TOKEN_RPAREN); err != nil {
		return nil, err
	}
	return call, nil
}

func (p *Parser) parsePrimary() (Expr, error) {
	tok := p.cur()
	switch tok.Type {
	case TOKEN_INT:
		p.advance()
		val, err := strconv.ParseInt(tok.Value, 10, 64)
		if err != nil {
			return nil, p.errorAt(tok.Position, "invalid integer literal %q", tok.Value)
		}
		return &LiteralExpr{Pos: tok.Position, Value: types.NewInt(val)}, nil
	case TOKEN_FLOAT:
		p.advance()
		val, err := strconv.ParseFloat(tok.Value, 64)
		if err != nil {
			return nil, p.errorAt(tok.Position, "invalid float literal %q", tok.Value)
		}
		return &LiteralExpr{Pos: tok.Position, Value: types.NewFloat(val)}, nil
	case TOKEN_STRING:
		p.advance()
		return &LiteralExpr{Pos: tok.Position, Value: types.NewStr(tok.Value)}, nil
	case TOKEN_TRUE:
		p.advance()
		return &LiteralExpr{Pos: tok.Position, Value: types.NewBool(true)}, nil
	case TOKEN_FALSE:
		p.advance()
		return &LiteralExpr{Pos: tok.Position, Value: types.NewBool(false)}, nil
	case TOKEN_NIL:
		p.advance()
		return &LiteralExpr{Pos: tok.Position, Value: types.Nil}, nil
	case TOKEN_IDENTIFIER:
		p.advance()
		return &IdentifierExpr{Pos: tok.Position, Name: tok.Value}, nil
	case TOKEN_LPAREN:
		p.advance()
		expr, err := p.ParseExpression(PREC_LOWEST)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TOKEN_RPAREN); err != nil {
			return nil, err
		}
		return expr, nil
	case TOKEN_LBRACKET:
		return p.parseListLiteral()
	case TOKEN_LBRACE:
		return p.parseMapLiteral()
	case TOKEN_ILLEGAL:
		return nil, p.errorAt(tok.Position, "unrecognized character %q", tok.Value)
	default:
		return nil, p.errorAt(tok.Position, "unexpected %s", p.describe(tok))
	}
}

func (p *Parser) parseListLiteral() (Expr, error) {
	lbracket := p.advance() // consume '['
	list := &ListExpr{Pos: lbracket.Position}
	for !p.at(TOKEN_RBRACKET) {
		elem, err := p.ParseExpression(PREC_LOWEST)
		if err != nil {
			return nil, err
		}
		list.Elems = append(list.Elems, elem)
		if !p.accept(TOKEN_COMMA) {
			break
		}
	}
	if _, err := p.expect(TOKEN_RBRACKET); err != nil {
		return nil, err
	}
	return list, nil
}

// parseMapLiteral parses `{"key": value, ...}`; bare identifier keys are
// accepted as sugar for string keys, and trailing commas are allowed
func (p *Parser) parseMapLiteral() (Expr, error) {
	lbrace := p.advance() // consume '{'
	m := &MapExpr{Pos: lbrace.Position}
	for !p.at(TOKEN_RBRACE) {
		var key string
		switch p.cur().Type {
		case TOKEN_STRING, TOKEN_IDENTIFIER:
			key = p.advance().Value
		default:
			return nil, p.errorf("expected map key, found %s", p.describe(p.cur()))
		}
		if _, err := p.expect(TOKEN_COLON); err != nil {
			return nil, err
		}
		value, err := p.ParseExpression(PREC_LOWEST)
		if err != nil {
			return nil, err
		}
		m.Entries = append(m.Entries, MapEntry{Key: key, Value: value})
		if !p.accept(TOKEN_COMMA) {
			break
		}
	}
	if _, err := p.expect(TOKEN_RBRACE); err != nil {
		return nil, err
	}
	return m, nil
}
