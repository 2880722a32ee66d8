package parser

import (
	"fmt"
	"strconv"

	"github.com/agueguen-LR/imp/pkg/ast"
	"github.com/agueguen-LR/imp/pkg/lexer"
)

// Binary operator precedence, tighter binds higher. Unary minus sits
// above all binaries and is right-associative.
const unaryPrec = 5

var binaryPrec = map[lexer.TokenType]int{
	lexer.TokStar:   4,
	lexer.TokSlash:  4,
	lexer.TokPlus:   3,
	lexer.TokMinus:  3,
	lexer.TokLt:     2,
	lexer.TokGt:     2,
	lexer.TokLtEq:   2,
	lexer.TokGtEq:   2,
	lexer.TokEqEq:   2,
	lexer.TokBangEq: 2,
	lexer.TokAndAnd: 1,
	lexer.TokOrOr:   1,
}

var binaryOps = map[lexer.TokenType]ast.BinaryOp{
	lexer.TokStar:   ast.OpMul,
	lexer.TokSlash:  ast.OpDiv,
	lexer.TokPlus:   ast.OpAdd,
	lexer.TokMinus:  ast.OpSub,
	lexer.TokLt:     ast.OpLt,
	lexer.TokGt:     ast.OpGt,
	lexer.TokLtEq:   ast.OpLtEq,
	lexer.TokGtEq:   ast.OpGtEq,
	lexer.TokEqEq:   ast.OpEqEq,
	lexer.TokBangEq: ast.OpNeq,
	lexer.TokAndAnd: ast.OpAnd,
	lexer.TokOrOr:   ast.OpOr,
}

// opEntry is an operator held on the Shunting Yard operator stack.
type opEntry struct {
	tok   lexer.Token
	unary bool
}

func (e opEntry) prec() int {
	if e.unary {
		return unaryPrec
	}
	return binaryPrec[e.tok.Type]
}

// parseExpr parses one expression with the Shunting Yard algorithm:
// operands accumulate on one stack, operators on another, and an
// operator is applied whenever a newcomer cannot outrank the stack top.
// Parenthesized groups and call arguments recurse into parseExpr.
func (p *parser) parseExpr() ast.Expr {
	var operands []ast.Expr
	var operators []opEntry

	apply := func() bool {
		op := operators[len(operators)-1]
		operators = operators[:len(operators)-1]

		if op.unary {
			if len(operands) < 1 {
				p.addError("missing operand for unary '-'", op.tok.Span)
				return false
			}
			operand := operands[len(operands)-1]
			operands = operands[:len(operands)-1]
			operands = append(operands, &ast.UnaryExpr{
				Span:    spanFromTo(op.tok.Span, operand.NodeSpan()),
				Op:      ast.OpNeg,
				Operand: operand,
			})
			return true
		}

		if len(operands) < 2 {
			p.addError(fmt.Sprintf("missing operand for '%s'", op.tok.Value), op.tok.Span)
			return false
		}
		right := operands[len(operands)-1]
		left := operands[len(operands)-2]
		operands = operands[:len(operands)-2]
		operands = append(operands, &ast.BinaryExpr{
			Span:  spanFromTo(left.NodeSpan(), right.NodeSpan()),
			Op:    binaryOps[op.tok.Type],
			Left:  left,
			Right: right,
		})
		return true
	}

	expectOperand := true

	for {
		tok := p.current()

		if expectOperand {
			switch tok.Type {
			case lexer.TokIntLit:
				p.advance()
				value, err := strconv.ParseInt(tok.Value, 10, 64)
				if err != nil {
					p.addError(fmt.Sprintf("integer literal '%s' out of range", tok.Value), tok.Span)
					return nil
				}
				operands = append(operands, &ast.IntLiteral{Span: tok.Span, Value: value})
				expectOperand = false

			case lexer.TokIdent:
				if p.peekAhead().Type == lexer.TokLParen {
					call := p.parseCall()
					if call == nil {
						return nil
					}
					operands = append(operands, call)
				} else {
					p.advance()
					operands = append(operands, &ast.Ident{Span: tok.Span, Name: tok.Value})
				}
				expectOperand = false

			case lexer.TokLParen:
				p.advance()
				inner := p.parseExpr()
				if inner == nil {
					return nil
				}
				if _, ok := p.expect(lexer.TokRParen, "')'"); !ok {
					return nil
				}
				operands = append(operands, inner)
				expectOperand = false

			case lexer.TokMinus:
				p.advance()
				operators = append(operators, opEntry{tok: tok, unary: true})

			default:
				p.addError(fmt.Sprintf("expected expression, found '%s'", p.describe(tok)), tok.Span)
				return nil
			}
			continue
		}

		// Operand in hand: a binary operator continues the expression,
		// anything else ends it.
		prec, isBinary := binaryPrec[tok.Type]
		if !isBinary {
			break
		}
		p.advance()

		// Left-associative: equal precedence on the stack applies first.
		for len(operators) > 0 && operators[len(operators)-1].prec() >= prec {
			if !apply() {
				return nil
			}
		}
		operators = append(operators, opEntry{tok: tok, unary: false})
		expectOperand = true
	}

	if expectOperand {
		p.addError(fmt.Sprintf("expected expression, found '%s'", p.describe(p.current())), p.current().Span)
		return nil
	}

	for len(operators) > 0 {
		if !apply() {
			return nil
		}
	}

	if len(operands) != 1 {
		p.addError("malformed expression", p.current().Span)
		return nil
	}
	return operands[0]
}

// parseCall parses `name ( arg, ... )`. The caller has verified the
// ident/lparen lookahead.
func (p *parser) parseCall() ast.Expr {
	name := p.advance() // TokIdent
	p.advance()         // TokLParen

	var args []ast.Expr
	if !p.check(lexer.TokRParen) {
		for {
			arg := p.parseExpr()
			if arg == nil {
				return nil
			}
			args = append(args, arg)
			if !p.check(lexer.TokComma) {
				break
			}
			p.advance()
		}
	}

	closing, ok := p.expect(lexer.TokRParen, "')'")
	if !ok {
		return nil
	}

	return &ast.CallExpr{
		Span: spanFromTo(name.Span, closing.Span),
		Name: name.Value,
		Args: args,
	}
}
