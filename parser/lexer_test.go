package parser

import "testing"

func tokenTypes(input string) []TokenType {
	var out []TokenType
	for _, tok := range Tokenize(input) {
		out = append(out, tok.Type)
	}
	return out
}

func TestTokenizeOperators(t *testing.T) {
	tests := []struct {
		input    string
		expected TokenType
	}{
		{"+", TOKEN_PLUS},
		{"-", TOKEN_MINUS},
		{"*", TOKEN_STAR},
		{"/", TOKEN_SLASH},
		{"%", TOKEN_PERCENT},
		{"=", TOKEN_ASSIGN},
		{"==", TOKEN_EQ},
		{"!=", TOKEN_NE},
		{"<", TOKEN_LT},
		{">", TOKEN_GT},
		{"<=", TOKEN_LE},
		{">=", TOKEN_GE},
		{"..", TOKEN_RANGE},
		{"..<", TOKEN_RANGE_EXCL},
		{".", TOKEN_DOT},
		{"and", TOKEN_AND},
		{"or", TOKEN_OR},
		{"not", TOKEN_NOT},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			toks := Tokenize(tt.input)
			if len(toks) != 2 {
				t.Fatalf("got %d tokens, want operator + EOF", len(toks))
			}
			if toks[0].Type != tt.expected {
				t.Errorf("type = %v, want %v", toks[0].Type, tt.expected)
			}
		})
	}
}

func TestTokenizeNumbers(t *testing.T) {
	tests := []struct {
		input    string
		expected TokenType
		value    string
	}{
		{"42", TOKEN_INT, "42"},
		{"0", TOKEN_INT, "0"},
		{"3.14", TOKEN_FLOAT, "3.14"},
		{"10.0", TOKEN_FLOAT, "10.0"},
	}

	for _, tt := range tests {
		toks := Tokenize(tt.input)
		if toks[0].Type != tt.expected || toks[0].Value != tt.value {
			t.Errorf("Tokenize(%q) = %v %q, want %v %q",
				tt.input, toks[0].Type, toks[0].Value, tt.expected, tt.value)
		}
	}
}

func TestRangeAfterIntIsNotFloat(t *testing.T) {
	got := tokenTypes("1..5")
	want := []TokenType{TOKEN_INT, TOKEN_RANGE, TOKEN_INT, TOKEN_EOF}
	if len(got) != len(want) {
		t.Fatalf("got %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("token %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestTokenizeStrings(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{`"hello"`, "hello"},
		{`'hello'`, "hello"},
		{`"it's"`, "it's"},
		{`"a\nb"`, "a\nb"},
		{`"say \"hi\""`, `say "hi"`},
		{`""`, ""},
	}

	for _, tt := range tests {
		toks := Tokenize(tt.input)
		if toks[0].Type != TOKEN_STRING {
			t.Errorf("Tokenize(%q) type = %v", tt.input, toks[0].Type)
			continue
		}
		if toks[0].Value != tt.expected {
			t.Errorf("Tokenize(%q) = %q, want %q", tt.input, toks[0].Value, tt.expected)
		}
	}
}

func TestUnterminatedStringIsIllegal(t *testing.T) {
	toks := Tokenize(`"abc`)
	if toks[0].Type != TOKEN_ILLEGAL {
		t.Errorf("type = %v, want ILLEGAL", toks[0].Type)
	}
}

func TestUnknownCharIsIllegalNotPanic(t *testing.T) {
	toks := Tokenize("var x = 1 @ 2")
	found := false
	for _, tok := range toks {
		if tok.Type == TOKEN_ILLEGAL {
			found = true
		}
	}
	if !found {
		t.Error("expected an ILLEGAL token for '@'")
	}
	if toks[len(toks)-1].Type != TOKEN_EOF {
		t.Error("token stream must still end with EOF")
	}
}

func TestLineTracking(t *testing.T) {
	toks := Tokenize("a\nb\n\nc")
	byName := map[string]int{}
	for _, tok := range toks {
		if tok.Type == TOKEN_IDENTIFIER {
			byName[tok.Value] = tok.Position.Line
		}
	}
	if byName["a"] != 1 || byName["b"] != 2 || byName["c"] != 4 {
		t.Errorf("line numbers = %v", byName)
	}
}

func TestNewlinesSuppressedInsideBrackets(t *testing.T) {
	input := "f(1,\n  2)\n[1,\n 2]\n{a:\n 1}"
	count := 0
	for _, tok := range Tokenize(input) {
		if tok.Type == TOKEN_NEWLINE {
			count++
		}
	}
	// Only the two newlines separating the three literals survive
	if count != 2 {
		t.Errorf("newline tokens = %d, want 2", count)
	}
}

func TestCommentsAreSkipped(t *testing.T) {
	got := tokenTypes("x // comment\n// full line\ny")
	want := []TokenType{TOKEN_IDENTIFIER, TOKEN_NEWLINE, TOKEN_IDENTIFIER, TOKEN_EOF}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("token %d = %v, want %v", i, got[i], want[i])
		}
	}
}
