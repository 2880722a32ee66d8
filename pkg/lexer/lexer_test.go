package lexer

import (
	"strings"
	"testing"
)

// tokenizeOK is a helper that tokenizes source and fails the test on error.
func tokenizeOK(t *testing.T, source string) []Token {
	t.Helper()
	tokens, err := Tokenize(source, "test.imp")
	if err != nil {
		t.Fatalf("Tokenize(%q) returned error: %v", source, err)
	}
	return tokens
}

// types strips spans and values, leaving just the token type sequence.
func types(tokens []Token) []TokenType {
	out := make([]TokenType, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.Type
	}
	return out
}

func typesEqual(a, b []TokenType) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// ============================================================
// Basic token scanning
// ============================================================

func TestTokenizeEmpty(t *testing.T) {
	tokens := tokenizeOK(t, "")
	if len(tokens) != 1 || tokens[0].Type != TokEOF {
		t.Errorf("expected single EOF token, got %v", tokens)
	}
}

func TestTokenizeKeywords(t *testing.T) {
	tests := []struct {
		source string
		want   TokenType
	}{
		{"if", TokIf},
		{"else", TokElse},
		{"while", TokWhile},
		{"fn", TokFn},
		{"return", TokReturn},
	}

	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			tokens := tokenizeOK(t, tt.source)
			if tokens[0].Type != tt.want {
				t.Errorf("Tokenize(%q)[0].Type = %v, want %v", tt.source, tokens[0].Type, tt.want)
			}
		})
	}
}

func TestKeywordPrefixIsIdent(t *testing.T) {
	// Identifiers that merely start with a keyword stay identifiers.
	for _, source := range []string{"iffy", "whilex", "fnord", "returned", "elsewhere"} {
		tokens := tokenizeOK(t, source)
		if tokens[0].Type != TokIdent {
			t.Errorf("Tokenize(%q)[0].Type = %v, want TokIdent", source, tokens[0].Type)
		}
		if tokens[0].Value != source {
			t.Errorf("Tokenize(%q)[0].Value = %q, want %q", source, tokens[0].Value, source)
		}
	}
}

func TestTokenizeIntegerLiteral(t *testing.T) {
	tokens := tokenizeOK(t, "12345")
	if tokens[0].Type != TokIntLit || tokens[0].Value != "12345" {
		t.Errorf("got %+v, want TokIntLit '12345'", tokens[0])
	}
}

func TestDigitsThenLettersSplit(t *testing.T) {
	// A digit run ends at the first non-digit, so 12ab is two tokens.
	tokens := tokenizeOK(t, "12ab")
	want := []TokenType{TokIntLit, TokIdent, TokEOF}
	if !typesEqual(types(tokens), want) {
		t.Errorf("got %v, want %v", types(tokens), want)
	}
}

// ============================================================
// Operators, longest match
// ============================================================

func TestTokenizeOperators(t *testing.T) {
	tests := []struct {
		source string
		want   TokenType
	}{
		{"+", TokPlus},
		{"-", TokMinus},
		{"*", TokStar},
		{"/", TokSlash},
		{"=", TokEquals},
		{"==", TokEqEq},
		{"!=", TokBangEq},
		{"<", TokLt},
		{">", TokGt},
		{"<=", TokLtEq},
		{">=", TokGtEq},
		{"&&", TokAndAnd},
		{"||", TokOrOr},
	}

	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			tokens := tokenizeOK(t, tt.source)
			if tokens[0].Type != tt.want {
				t.Errorf("Tokenize(%q)[0].Type = %v, want %v", tt.source, tokens[0].Type, tt.want)
			}
			if tokens[0].Value != tt.source {
				t.Errorf("Tokenize(%q)[0].Value = %q, want %q", tt.source, tokens[0].Value, tt.source)
			}
		})
	}
}

func TestLongestMatch(t *testing.T) {
	// == must not split into = =; <= must not split into < =.
	tokens := tokenizeOK(t, "a == b <= c")
	want := []TokenType{TokIdent, TokEqEq, TokIdent, TokLtEq, TokIdent, TokEOF}
	if !typesEqual(types(tokens), want) {
		t.Errorf("got %v, want %v", types(tokens), want)
	}
}

func TestLoneOperatorHalvesError(t *testing.T) {
	for _, source := range []string{"!", "&", "|", "1 & 2", "a | b"} {
		_, err := Tokenize(source, "test.imp")
		if err == nil {
			t.Errorf("Tokenize(%q) succeeded, want lex error", source)
		}
	}
}

func TestInvalidCharacter(t *testing.T) {
	_, err := Tokenize("x = 1 @ 2", "test.imp")
	if err == nil {
		t.Fatal("expected lex error for '@'")
	}
	lexErr, ok := err.(*LexError)
	if !ok {
		t.Fatalf("error type = %T, want *LexError", err)
	}
	if !strings.Contains(lexErr.Diag.Message, "@") {
		t.Errorf("message %q does not name the character", lexErr.Diag.Message)
	}
	if lexErr.Diag.Span == nil || lexErr.Diag.Span.StartCol != 7 {
		t.Errorf("span = %+v, want StartCol 7", lexErr.Diag.Span)
	}
}

// ============================================================
// Whole statements and positions
// ============================================================

func TestTokenizeStatement(t *testing.T) {
	tokens := tokenizeOK(t, "fn add(a, b) { return a + b }")
	want := []TokenType{
		TokFn, TokIdent, TokLParen, TokIdent, TokComma, TokIdent, TokRParen,
		TokLBrace, TokReturn, TokIdent, TokPlus, TokIdent, TokRBrace, TokEOF,
	}
	if !typesEqual(types(tokens), want) {
		t.Errorf("got %v, want %v", types(tokens), want)
	}
}

func TestSpansTrackLinesAndColumns(t *testing.T) {
	tokens := tokenizeOK(t, "x = 1\ny = 2")

	// x at 1:1
	if tokens[0].Span.StartLine != 1 || tokens[0].Span.StartCol != 1 {
		t.Errorf("token x span = %+v, want 1:1", tokens[0].Span)
	}
	// y at 2:1
	if tokens[3].Span.StartLine != 2 || tokens[3].Span.StartCol != 1 {
		t.Errorf("token y span = %+v, want 2:1", tokens[3].Span)
	}
	// 2 at 2:5
	if tokens[5].Span.StartLine != 2 || tokens[5].Span.StartCol != 5 {
		t.Errorf("token 2 span = %+v, want 2:5", tokens[5].Span)
	}
}

func TestWhitespaceInsignificant(t *testing.T) {
	a := tokenizeOK(t, "x=1+2")
	b := tokenizeOK(t, "  x \t=\n 1   +\r\n 2 ")
	if !typesEqual(types(a), types(b)) {
		t.Errorf("token types differ: %v vs %v", types(a), types(b))
	}
}
