// Package lexer implements the imp language tokenizer.
package lexer

import (
	"fmt"

	"github.com/agueguen-LR/imp/pkg/ast"
	"github.com/agueguen-LR/imp/pkg/diagnostics"
)

// TokenType identifies the type of a lexer token.
type TokenType int

const (
	// Keywords
	TokIf TokenType = iota
	TokElse
	TokWhile
	TokFn
	TokReturn

	// Literals
	TokIntLit

	// Identifiers
	TokIdent

	// Punctuation
	TokLParen // (
	TokRParen // )
	TokLBrace // {
	TokRBrace // }
	TokComma  // ,

	// Assignment
	TokEquals // =

	// Comparison operators
	TokEqEq   // ==
	TokBangEq // !=
	TokLtEq   // <=
	TokGtEq   // >=
	TokLt     // <
	TokGt     // >

	// Arithmetic operators
	TokPlus  // +
	TokMinus // -
	TokStar  // *
	TokSlash // /

	// Logical operators
	TokAndAnd // &&
	TokOrOr   // ||

	// Special
	TokEOF
)

// Token represents a single lexer token.
type Token struct {
	Type  TokenType
	Value string
	Span  ast.Span
}

var keywords = map[string]TokenType{
	"if":     TokIf,
	"else":   TokElse,
	"while":  TokWhile,
	"fn":     TokFn,
	"return": TokReturn,
}

type scanner struct {
	source   string
	filename string
	pos      int
	line     int
	col      int
}

func newScanner(source, filename string) *scanner {
	return &scanner{
		source:   source,
		filename: filename,
		pos:      0,
		line:     1,
		col:      1,
	}
}

func (s *scanner) atEnd() bool {
	return s.pos >= len(s.source)
}

func (s *scanner) peek() byte {
	if s.atEnd() {
		return 0
	}
	return s.source[s.pos]
}

func (s *scanner) advance() byte {
	ch := s.source[s.pos]
	s.pos++
	if ch == '\n' {
		s.line++
		s.col = 1
	} else {
		s.col++
	}
	return ch
}

func (s *scanner) span(startLine, startCol int) ast.Span {
	return ast.Span{
		File:      s.filename,
		StartLine: startLine,
		StartCol:  startCol,
		EndLine:   s.line,
		EndCol:    s.col,
	}
}

func (s *scanner) skipWhitespace() {
	for !s.atEnd() {
		ch := s.peek()
		if ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n' {
			s.advance()
		} else {
			break
		}
	}
}

func isAlpha(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_'
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isAlphaNumeric(ch byte) bool {
	return isAlpha(ch) || isDigit(ch)
}

func (s *scanner) scanNumber() Token {
	startLine, startCol := s.line, s.col
	startPos := s.pos

	for !s.atEnd() && isDigit(s.peek()) {
		s.advance()
	}

	return Token{
		Type:  TokIntLit,
		Value: s.source[startPos:s.pos],
		Span:  s.span(startLine, startCol),
	}
}

func (s *scanner) scanIdentOrKeyword() Token {
	startLine, startCol := s.line, s.col
	startPos := s.pos

	for !s.atEnd() && isAlphaNumeric(s.peek()) {
		s.advance()
	}

	text := s.source[startPos:s.pos]

	if tokType, ok := keywords[text]; ok {
		return Token{
			Type:  tokType,
			Value: text,
			Span:  s.span(startLine, startCol),
		}
	}

	return Token{
		Type:  TokIdent,
		Value: text,
		Span:  s.span(startLine, startCol),
	}
}

func (s *scanner) lexError(line, col int, msg string) error {
	diag := diagnostics.MakeDiag(
		diagnostics.ELex,
		msg,
		&ast.Span{File: s.filename, StartLine: line, StartCol: col, EndLine: line, EndCol: col + 1},
		"",
	)
	return &LexError{Diag: diag}
}

// LexError wraps a diagnostic for lex errors.
type LexError struct {
	Diag diagnostics.Diagnostic
}

func (e *LexError) Error() string {
	return e.Diag.Message
}

func (s *scanner) nextToken() (Token, error) {
	s.skipWhitespace()

	if s.atEnd() {
		return Token{
			Type:  TokEOF,
			Value: "",
			Span:  s.span(s.line, s.col),
		}, nil
	}

	ch := s.peek()
	startLine, startCol := s.line, s.col

	// Single-char tokens
	switch ch {
	case '(':
		s.advance()
		return Token{Type: TokLParen, Value: "(", Span: s.span(startLine, startCol)}, nil
	case ')':
		s.advance()
		return Token{Type: TokRParen, Value: ")", Span: s.span(startLine, startCol)}, nil
	case '{':
		s.advance()
		return Token{Type: TokLBrace, Value: "{", Span: s.span(startLine, startCol)}, nil
	case '}':
		s.advance()
		return Token{Type: TokRBrace, Value: "}", Span: s.span(startLine, startCol)}, nil
	case ',':
		s.advance()
		return Token{Type: TokComma, Value: ",", Span: s.span(startLine, startCol)}, nil
	case '+':
		s.advance()
		return Token{Type: TokPlus, Value: "+", Span: s.span(startLine, startCol)}, nil
	case '-':
		s.advance()
		return Token{Type: TokMinus, Value: "-", Span: s.span(startLine, startCol)}, nil
	case '*':
		s.advance()
		return Token{Type: TokStar, Value: "*", Span: s.span(startLine, startCol)}, nil
	case '/':
		s.advance()
		return Token{Type: TokSlash, Value: "/", Span: s.span(startLine, startCol)}, nil
	}

	// Multi-char tokens, longest match first
	switch ch {
	case '=':
		s.advance()
		if !s.atEnd() && s.peek() == '=' {
			s.advance()
			return Token{Type: TokEqEq, Value: "==", Span: s.span(startLine, startCol)}, nil
		}
		return Token{Type: TokEquals, Value: "=", Span: s.span(startLine, startCol)}, nil

	case '!':
		s.advance()
		if !s.atEnd() && s.peek() == '=' {
			s.advance()
			return Token{Type: TokBangEq, Value: "!=", Span: s.span(startLine, startCol)}, nil
		}
		return Token{}, s.lexError(startLine, startCol, "unexpected character '!'")

	case '<':
		s.advance()
		if !s.atEnd() && s.peek() == '=' {
			s.advance()
			return Token{Type: TokLtEq, Value: "<=", Span: s.span(startLine, startCol)}, nil
		}
		return Token{Type: TokLt, Value: "<", Span: s.span(startLine, startCol)}, nil

	case '>':
		s.advance()
		if !s.atEnd() && s.peek() == '=' {
			s.advance()
			return Token{Type: TokGtEq, Value: ">=", Span: s.span(startLine, startCol)}, nil
		}
		return Token{Type: TokGt, Value: ">", Span: s.span(startLine, startCol)}, nil

	case '&':
		s.advance()
		if !s.atEnd() && s.peek() == '&' {
			s.advance()
			return Token{Type: TokAndAnd, Value: "&&", Span: s.span(startLine, startCol)}, nil
		}
		return Token{}, s.lexError(startLine, startCol, "unexpected character '&'")

	case '|':
		s.advance()
		if !s.atEnd() && s.peek() == '|' {
			s.advance()
			return Token{Type: TokOrOr, Value: "||", Span: s.span(startLine, startCol)}, nil
		}
		return Token{}, s.lexError(startLine, startCol, "unexpected character '|'")
	}

	// Numbers
	if isDigit(ch) {
		return s.scanNumber(), nil
	}

	// Identifiers and keywords
	if isAlpha(ch) {
		return s.scanIdentOrKeyword(), nil
	}

	s.advance()
	return Token{}, s.lexError(startLine, startCol, fmt.Sprintf("unexpected character '%c'", ch))
}

// Tokenize breaks source code into a slice of tokens in a single forward pass.
// The returned slice always ends with a TokEOF token.
func Tokenize(source, filename string) ([]Token, error) {
	s := newScanner(source, filename)
	var tokens []Token

	for {
		tok, err := s.nextToken()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		if tok.Type == TokEOF {
			break
		}
	}

	return tokens, nil
}
