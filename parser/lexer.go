package parser

// Lexer tokenizes skit source code. Lexing is total: malformed input becomes
// TOKEN_ILLEGAL tokens that the parser turns into diagnostics, so Tokenize
// never fails.
type Lexer struct {
	input        string
	position     int  // current position in input (points to current char)
	readPosition int  // current reading position (after current char)
	ch           byte // current char under examination
	line         int
	column       int
	bracketDepth int // suppress newline tokens inside ( [ {
}

// NewLexer creates a new Lexer instance
func NewLexer(input string) *Lexer {
	l := &Lexer{
		input:  input,
		line:   1,
		column: 0,
	}
	l.readChar()
	return l
}

// Tokenize scans the whole source into a token slice ending with TOKEN_EOF
func Tokenize(input string) []Token {
	l := NewLexer(input)
	var toks []Token
	for {
		tok := l.NextToken()
		toks = append(toks, tok)
		if tok.Type == TOKEN_EOF {
			return toks
		}
	}
}

// readChar reads the next character and advances position
func (l *Lexer) readChar() {
	if l.readPosition >= len(l.input) {
		l.ch = 0 // ASCII NUL
	} else {
		l.ch = l.input[l.readPosition]
	}
	l.position = l.readPosition
	l.readPosition++
	l.column++
	if l.ch == '\n' {
		l.line++
		l.column = 0
	}
}

// peekChar returns the next character without advancing
func (l *Lexer) peekChar() byte {
	if l.readPosition >= len(l.input) {
		return 0
	}
	return l.input[l.readPosition]
}

// skipSpace skips blanks and comments; newlines are significant outside
// brackets and are left for NextToken
func (l *Lexer) skipSpace() {
	for {
		switch {
		case l.ch == ' ' || l.ch == '\t' || l.ch == '\r':
			l.readChar()
		case l.ch == '\n' && l.bracketDepth > 0:
			l.readChar()
		case l.ch == '/' && l.peekChar() == '/':
			for l.ch != '\n' && l.ch != 0 {
				l.readChar()
			}
		default:
			return
		}
	}
}

// NextToken returns the next token from the input
func (l *Lexer) NextToken() Token {
	l.skipSpace()

	tok := Token{
		Position: Position{
			Line:   l.line,
			Column: l.column,
			Offset: l.position,
		},
	}

	switch l.ch {
	case 0:
		tok.Type = TOKEN_EOF
	case '\n':
		// Collapse a run of newlines (and blank/comment lines) into one token
		tok.Type = TOKEN_NEWLINE
		tok.Value = "\n"
		for l.ch == '\n' {
			l.readChar()
			l.skipSpace()
		}
	case '(':
		tok = l.single(tok, TOKEN_LPAREN)
		l.bracketDepth++
	case ')':
		tok = l.single(tok, TOKEN_RPAREN)
		if l.bracketDepth > 0 {
			l.bracketDepth--
		}
	case '[':
		tok = l.single(tok, TOKEN_LBRACKET)
		l.bracketDepth++
	case ']':
		tok = l.single(tok, TOKEN_RBRACKET)
		if l.bracketDepth > 0 {
			l.bracketDepth--
		}
	case '{':
		tok = l.single(tok, TOKEN_LBRACE)
		l.bracketDepth++
	case '}':
		tok = l.single(tok, TOKEN_RBRACE)
		if l.bracketDepth > 0 {
			l.bracketDepth--
		}
	case ',':
		tok = l.single(tok, TOKEN_COMMA)
	case ':':
		tok = l.single(tok, TOKEN_COLON)
	case '+':
		tok = l.single(tok, TOKEN_PLUS)
	case '-':
		tok = l.single(tok, TOKEN_MINUS)
	case '*':
		tok = l.single(tok, TOKEN_STAR)
	case '/':
		tok = l.single(tok, TOKEN_SLASH)
	case '%':
		tok = l.single(tok, TOKEN_PERCENT)
	case '=':
		if l.peekChar() == '=' {
			l.readChar()
			l.readChar()
			tok.Type = TOKEN_EQ
			tok.Value = "=="
		} else {
			tok = l.single(tok, TOKEN_ASSIGN)
		}
	case '!':
		if l.peekChar() == '=' {
			l.readChar()
			l.readChar()
			tok.Type = TOKEN_NE
			tok.Value = "!="
		} else {
			tok = l.single(tok, TOKEN_ILLEGAL)
		}
	case '<':
		if l.peekChar() == '=' {
			l.readChar()
			l.readChar()
			tok.Type = TOKEN_LE
			tok.Value = "<="
		} else {
			tok = l.single(tok, TOKEN_LT)
		}
	case '>':
		if l.peekChar() == '=' {
			l.readChar()
			l.readChar()
			tok.Type = TOKEN_GE
			tok.Value = ">="
		} else {
			tok = l.single(tok, TOKEN_GT)
		}
	case '.':
		if l.peekChar() == '.' {
			l.readChar()
			l.readChar()
			if l.ch == '<' {
				l.readChar()
				tok.Type = TOKEN_RANGE_EXCL
				tok.Value = "..<"
			} else {
				tok.Type = TOKEN_RANGE
				tok.Value = ".."
			}
		} else {
			tok = l.single(tok, TOKEN_DOT)
		}
	case '"', '\'':
		tok.Type, tok.Value = l.readString(l.ch)
	default:
		switch {
		case isLetter(l.ch):
			tok.Value = l.readIdentifier()
			if kw, ok := keywords[tok.Value]; ok {
				tok.Type = kw
			} else {
				tok.Type = TOKEN_IDENTIFIER
			}
		case isDigit(l.ch):
			tok.Type, tok.Value = l.readNumber()
		default:
			tok = l.single(tok, TOKEN_ILLEGAL)
		}
	}

	return tok
}

// single emits a one-character token and advances
func (l *Lexer) single(tok Token, t TokenType) Token {
	tok.Type = t
	tok.Value = string(l.ch)
	l.readChar()
	return tok
}

// readIdentifier reads an identifier or keyword
func (l *Lexer) readIdentifier() string {
	start := l.position
	for isLetter(l.ch) || isDigit(l.ch) {
		l.readChar()
	}
	return l.input[start:l.position]
}

// readNumber reads a decimal integer or float. A '.' followed by another '.'
// belongs to a range operator, not the number.
func (l *Lexer) readNumber() (TokenType, string) {
	start := l.position
	for isDigit(l.ch) {
		l.readChar()
	}
	if l.ch == '.' && isDigit(l.peekChar()) {
		l.readChar() // consume '.'
		for isDigit(l.ch) {
			l.readChar()
		}
		return TOKEN_FLOAT, l.input[start:l.position]
	}
	return TOKEN_INT, l.input[start:l.position]
}

// readString reads a quoted string with the given delimiter. An unterminated
// string yields an ILLEGAL token holding what was read.
func (l *Lexer) readString(quote byte) (TokenType, string) {
	l.readChar() // consume opening quote
	var out []byte
	for l.ch != quote {
		if l.ch == 0 || l.ch == '\n' {
			return TOKEN_ILLEGAL, string(out)
		}
		if l.ch == '\\' {
			l.readChar()
			switch l.ch {
			case 'n':
				out = append(out, '\n')
			case 't':
				out = append(out, '\t')
			case 'r':
				out = append(out, '\r')
			case '\\', '"', '\'':
				out = append(out, l.ch)
			case '0':
				out = append(out, 0)
			default:
				// Unknown escape: keep both characters
				out = append(out, '\\', l.ch)
			}
			l.readChar()
			continue
		}
		out = append(out, l.ch)
		l.readChar()
	}
	l.readChar() // consume closing quote
	return TOKEN_STRING, string(out)
}

func isLetter(ch byte) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z' || ch == '_'
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}
