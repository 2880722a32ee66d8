// Package parser turns imp source into an AST. Statements are parsed by
// dispatch on the leading token; expressions use a Shunting Yard parser
// (see shunting.go).
package parser

import (
	"fmt"

	"github.com/agueguen-LR/imp/pkg/ast"
	"github.com/agueguen-LR/imp/pkg/diagnostics"
	"github.com/agueguen-LR/imp/pkg/lexer"
)

type parser struct {
	tokens   []lexer.Token
	pos      int
	filename string
	diags    []diagnostics.Diagnostic
}

// Parse tokenizes and parses source into a Program. A non-empty
// diagnostics slice means the parse failed; the Program is nil in that
// case.
func Parse(source, filename string) (*ast.Program, []diagnostics.Diagnostic) {
	tokens, err := lexer.Tokenize(source, filename)
	if err != nil {
		if lexErr, ok := err.(*lexer.LexError); ok {
			return nil, []diagnostics.Diagnostic{lexErr.Diag}
		}
		return nil, []diagnostics.Diagnostic{
			diagnostics.MakeDiag(diagnostics.ELex, err.Error(), nil, ""),
		}
	}

	p := &parser{tokens: tokens, filename: filename}
	program := p.parseProgram()
	if len(p.diags) > 0 {
		return nil, p.diags
	}
	return program, nil
}

// --- Token cursor ---

func (p *parser) current() lexer.Token {
	if p.pos >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1] // EOF
	}
	return p.tokens[p.pos]
}

func (p *parser) peekAhead() lexer.Token {
	if p.pos+1 >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[p.pos+1]
}

func (p *parser) advance() lexer.Token {
	tok := p.current()
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	return tok
}

func (p *parser) check(t lexer.TokenType) bool {
	return p.current().Type == t
}

func (p *parser) expect(t lexer.TokenType, what string) (lexer.Token, bool) {
	if p.check(t) {
		return p.advance(), true
	}
	p.addError(fmt.Sprintf("expected %s, found '%s'", what, p.describe(p.current())), p.current().Span)
	return p.current(), false
}

func (p *parser) describe(tok lexer.Token) string {
	if tok.Type == lexer.TokEOF {
		return "end of input"
	}
	return tok.Value
}

func (p *parser) addError(msg string, span ast.Span) {
	p.diags = append(p.diags, diagnostics.MakeDiag(diagnostics.EParse, msg, &span, ""))
}

func spanFromTo(start, end ast.Span) ast.Span {
	return ast.Span{
		File:      start.File,
		StartLine: start.StartLine,
		StartCol:  start.StartCol,
		EndLine:   end.EndLine,
		EndCol:    end.EndCol,
	}
}

// --- Program and statements ---

func (p *parser) parseProgram() *ast.Program {
	start := p.current().Span
	var stmts []ast.Stmt

	for !p.check(lexer.TokEOF) {
		before := p.pos
		stmt := p.parseStmt()
		if stmt != nil {
			stmts = append(stmts, stmt)
		}
		if len(p.diags) > 0 {
			return nil
		}
		if p.pos == before {
			// No progress; bail rather than loop forever.
			p.addError(fmt.Sprintf("unexpected token '%s'", p.describe(p.current())), p.current().Span)
			return nil
		}
	}

	end := p.current().Span
	return &ast.Program{Span: spanFromTo(start, end), Statements: stmts}
}

func (p *parser) parseStmt() ast.Stmt {
	switch p.current().Type {
	case lexer.TokIf:
		return p.parseIf()
	case lexer.TokWhile:
		return p.parseWhile()
	case lexer.TokFn:
		return p.parseFnDecl()
	case lexer.TokReturn:
		return p.parseReturn()
	case lexer.TokIdent:
		if p.peekAhead().Type == lexer.TokEquals {
			return p.parseAssign()
		}
		return p.parseExprStmt()
	default:
		return p.parseExprStmt()
	}
}

func (p *parser) parseAssign() ast.Stmt {
	name := p.advance() // TokIdent
	p.advance()         // TokEquals
	value := p.parseExpr()
	if value == nil {
		return nil
	}
	return &ast.AssignStmt{
		Span:  spanFromTo(name.Span, value.NodeSpan()),
		Name:  name.Value,
		Value: value,
	}
}

func (p *parser) parseExprStmt() ast.Stmt {
	expr := p.parseExpr()
	if expr == nil {
		return nil
	}
	return &ast.ExprStmt{Span: expr.NodeSpan(), Expr: expr}
}

func (p *parser) parseIf() ast.Stmt {
	start := p.advance().Span // TokIf

	cond := p.parseExpr()
	if cond == nil {
		return nil
	}

	thenBlock, thenEnd, ok := p.parseBlock()
	if !ok {
		return nil
	}

	var elseBlock ast.Block
	end := thenEnd
	if p.check(lexer.TokElse) {
		p.advance()
		var elseEnd ast.Span
		elseBlock, elseEnd, ok = p.parseBlock()
		if !ok {
			return nil
		}
		end = elseEnd
	}

	return &ast.IfStmt{
		Span: spanFromTo(start, end),
		Cond: cond,
		Then: thenBlock,
		Else: elseBlock,
	}
}

func (p *parser) parseWhile() ast.Stmt {
	start := p.advance().Span // TokWhile

	cond := p.parseExpr()
	if cond == nil {
		return nil
	}

	body, end, ok := p.parseBlock()
	if !ok {
		return nil
	}

	return &ast.WhileStmt{
		Span: spanFromTo(start, end),
		Cond: cond,
		Body: body,
	}
}

func (p *parser) parseFnDecl() ast.Stmt {
	start := p.advance().Span // TokFn

	name, ok := p.expect(lexer.TokIdent, "function name")
	if !ok {
		return nil
	}

	if _, ok := p.expect(lexer.TokLParen, "'('"); !ok {
		return nil
	}

	var params []string
	if !p.check(lexer.TokRParen) {
		for {
			param, ok := p.expect(lexer.TokIdent, "parameter name")
			if !ok {
				return nil
			}
			params = append(params, param.Value)
			if !p.check(lexer.TokComma) {
				break
			}
			p.advance()
		}
	}

	if _, ok := p.expect(lexer.TokRParen, "')'"); !ok {
		return nil
	}

	body, end, ok := p.parseBlock()
	if !ok {
		return nil
	}

	return &ast.FnDecl{
		Span:   spanFromTo(start, end),
		Name:   name.Value,
		Params: params,
		Body:   body,
	}
}

func (p *parser) parseReturn() ast.Stmt {
	start := p.advance().Span // TokReturn

	value := p.parseExpr()
	if value == nil {
		return nil
	}

	return &ast.ReturnStmt{
		Span:  spanFromTo(start, value.NodeSpan()),
		Value: value,
	}
}

// parseBlock parses `{ stmt* }` and returns the statements plus the span
// of the closing brace.
func (p *parser) parseBlock() (ast.Block, ast.Span, bool) {
	if _, ok := p.expect(lexer.TokLBrace, "'{'"); !ok {
		return nil, ast.Span{}, false
	}

	var stmts ast.Block
	for !p.check(lexer.TokRBrace) && !p.check(lexer.TokEOF) {
		before := p.pos
		stmt := p.parseStmt()
		if stmt != nil {
			stmts = append(stmts, stmt)
		}
		if len(p.diags) > 0 {
			return nil, ast.Span{}, false
		}
		if p.pos == before {
			p.addError(fmt.Sprintf("unexpected token '%s'", p.describe(p.current())), p.current().Span)
			return nil, ast.Span{}, false
		}
	}

	closing, ok := p.expect(lexer.TokRBrace, "'}'")
	if !ok {
		return nil, ast.Span{}, false
	}
	return stmts, closing.Span, true
}
