package parser

// TokenType represents different types of lexical tokens
type TokenType int

const (
	// Special tokens
	TOKEN_EOF TokenType = iota
	TOKEN_ILLEGAL
	TOKEN_NEWLINE

	// Literals
	TOKEN_INT    // 42
	TOKEN_FLOAT  // 3.14
	TOKEN_STRING // "hello" or 'hello'

	// Identifiers
	TOKEN_IDENTIFIER

	// Keywords
	TOKEN_VAR
	TOKEN_FN
	TOKEN_TYPE
	TOKEN_OBJECT
	TOKEN_IF
	TOKEN_ELIF
	TOKEN_ELSE
	TOKEN_WHILE
	TOKEN_FOR
	TOKEN_IN
	TOKEN_RETURN
	TOKEN_BREAK
	TOKEN_CONTINUE
	TOKEN_END
	TOKEN_AND
	TOKEN_OR
	TOKEN_NOT
	TOKEN_BYREF
	TOKEN_TRUE
	TOKEN_FALSE
	TOKEN_NIL

	// Operators
	TOKEN_PLUS       // +
	TOKEN_MINUS      // -
	TOKEN_STAR       // *
	TOKEN_SLASH      // /
	TOKEN_PERCENT    // %
	TOKEN_ASSIGN     // =
	TOKEN_EQ         // ==
	TOKEN_NE         // !=
	TOKEN_LT         // <
	TOKEN_GT         // >
	TOKEN_LE         // <=
	TOKEN_GE         // >=
	TOKEN_RANGE      // ..  (inclusive)
	TOKEN_RANGE_EXCL // ..< (exclusive)

	// Delimiters
	TOKEN_LPAREN   // (
	TOKEN_RPAREN   // )
	TOKEN_LBRACE   // {
	TOKEN_RBRACE   // }
	TOKEN_LBRACKET // [
	TOKEN_RBRACKET // ]
	TOKEN_COMMA    // ,
	TOKEN_COLON    // :
	TOKEN_DOT      // .
)

var tokenNames = map[TokenType]string{
	TOKEN_EOF:        "end of input",
	TOKEN_ILLEGAL:    "illegal token",
	TOKEN_NEWLINE:    "newline",
	TOKEN_INT:        "int literal",
	TOKEN_FLOAT:      "float literal",
	TOKEN_STRING:     "string literal",
	TOKEN_IDENTIFIER: "identifier",
	TOKEN_VAR:        "'var'",
	TOKEN_FN:         "'fn'",
	TOKEN_TYPE:       "'type'",
	TOKEN_OBJECT:     "'object'",
	TOKEN_IF:         "'if'",
	TOKEN_ELIF:       "'elif'",
	TOKEN_ELSE:       "'else'",
	TOKEN_WHILE:      "'while'",
	TOKEN_FOR:        "'for'",
	TOKEN_IN:         "'in'",
	TOKEN_RETURN:     "'return'",
	TOKEN_BREAK:      "'break'",
	TOKEN_CONTINUE:   "'continue'",
	TOKEN_END:        "'end'",
	TOKEN_AND:        "'and'",
	TOKEN_OR:         "'or'",
	TOKEN_NOT:        "'not'",
	TOKEN_BYREF:      "'byref'",
	TOKEN_TRUE:       "'true'",
	TOKEN_FALSE:      "'false'",
	TOKEN_NIL:        "'nil'",
	TOKEN_PLUS:       "'+'",
	TOKEN_MINUS:      "'-'",
	TOKEN_STAR:       "'*'",
	TOKEN_SLASH:      "'/'",
	TOKEN_PERCENT:    "'%'",
	TOKEN_ASSIGN:     "'='",
	TOKEN_EQ:         "'=='",
	TOKEN_NE:         "'!='",
	TOKEN_LT:         "'<'",
	TOKEN_GT:         "'>'",
	TOKEN_LE:         "'<='",
	TOKEN_GE:         "'>='",
	TOKEN_RANGE:      "'..'",
	TOKEN_RANGE_EXCL: "'..<'",
	TOKEN_LPAREN:     "'('",
	TOKEN_RPAREN:     "')'",
	TOKEN_LBRACE:     "'{'",
	TOKEN_RBRACE:     "'}'",
	TOKEN_LBRACKET:   "'['",
	TOKEN_RBRACKET:   "']'",
	TOKEN_COMMA:      "','",
	TOKEN_COLON:      "':'",
	TOKEN_DOT:        "'.'",
}

// String returns a human-readable token type name for diagnostics
func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return "unknown token"
}

var keywords = map[string]TokenType{
	"var":      TOKEN_VAR,
	"fn":       TOKEN_FN,
	"type":     TOKEN_TYPE,
	"object":   TOKEN_OBJECT,
	"if":       TOKEN_IF,
	"elif":     TOKEN_ELIF,
	"else":     TOKEN_ELSE,
	"while":    TOKEN_WHILE,
	"for":      TOKEN_FOR,
	"in":       TOKEN_IN,
	"return":   TOKEN_RETURN,
	"break":    TOKEN_BREAK,
	"continue": TOKEN_CONTINUE,
	"end":      TOKEN_END,
	"and":      TOKEN_AND,
	"or":       TOKEN_OR,
	"not":      TOKEN_NOT,
	"byref":    TOKEN_BYREF,
	"true":     TOKEN_TRUE,
	"false":    TOKEN_FALSE,
	"nil":      TOKEN_NIL,
}

// Position is a location in the source text
type Position struct {
	Line   int // 1-based
	Column int // 1-based
	Offset int // byte offset
}

// Token is a lexical token with its source position
type Token struct {
	Type     TokenType
	Value    string
	Position Position
}
