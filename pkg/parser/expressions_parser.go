package parser

import (
	"errors"
	"strconv"

	"mlua/interpreter-go/pkg/ast"
	"mlua/interpreter-go/pkg/lexer"
)

var arithmeticOperators = map[lexer.Kind]ast.ArithmeticOperator{
	lexer.KindAdd: ast.OpAdd,
	lexer.KindSub: ast.OpSub,
	lexer.KindMul: ast.OpMul,
	lexer.KindDiv: ast.OpDiv,
}

var relationalOperators = map[lexer.Kind]ast.RelationalOperator{
	lexer.KindEQ: ast.OpEQ,
	lexer.KindNE: ast.OpNE,
	lexer.KindLT: ast.OpLT,
	lexer.KindLE: ast.OpLE,
	lexer.KindGT: ast.OpGT,
	lexer.KindGE: ast.OpGE,
}

// arith_expr := id | integer_literal | arith_op arith_expr arith_expr
//
// Operators are prefix, so no precedence or associativity rules apply.
func (p *Parser) parseArithmeticExpression() (ast.ArithmeticExpression, error) {
	tok, err := p.peek()
	if err != nil {
		return nil, err
	}
	switch tok.Kind() {
	case lexer.KindIdentifier:
		return p.parseIdentifier()
	case lexer.KindIntegerLiteral:
		return p.parseIntegerLiteral()
	default:
		return p.parseBinaryExpression()
	}
}

func (p *Parser) parseBinaryExpression() (*ast.BinaryExpression, error) {
	op, err := p.parseArithmeticOperator()
	if err != nil {
		return nil, err
	}
	left, err := p.parseArithmeticExpression()
	if err != nil {
		return nil, err
	}
	right, err := p.parseArithmeticExpression()
	if err != nil {
		return nil, err
	}
	return ast.NewBinaryExpression(op, left, right)
}

func (p *Parser) parseArithmeticOperator() (ast.ArithmeticOperator, error) {
	tok, err := p.next()
	if err != nil {
		return "", err
	}
	op, ok := arithmeticOperators[tok.Kind()]
	if !ok {
		return "", errorAt(tok, "arithmetic operator expected")
	}
	return op, nil
}

// bool_expr := rel_op arith_expr arith_expr
func (p *Parser) parseBooleanExpression() (*ast.BooleanExpression, error) {
	op, err := p.parseRelationalOperator()
	if err != nil {
		return nil, err
	}
	left, err := p.parseArithmeticExpression()
	if err != nil {
		return nil, err
	}
	right, err := p.parseArithmeticExpression()
	if err != nil {
		return nil, err
	}
	return ast.NewBooleanExpression(op, left, right)
}

func (p *Parser) parseRelationalOperator() (ast.RelationalOperator, error) {
	tok, err := p.next()
	if err != nil {
		return "", err
	}
	op, ok := relationalOperators[tok.Kind()]
	if !ok {
		return "", errorAt(tok, "relational operator expected")
	}
	return op, nil
}

func (p *Parser) parseIntegerLiteral() (*ast.IntegerLiteral, error) {
	tok, err := p.next()
	if err != nil {
		return nil, err
	}
	if tok.Kind() != lexer.KindIntegerLiteral {
		return nil, errorAt(tok, "literal integer expected")
	}
	value, err := strconv.ParseInt(tok.Lexeme(), 10, 32)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return nil, errorAt(tok, "literal integer out of range")
		}
		return nil, errorAt(tok, "literal integer expected")
	}
	return ast.NewIntegerLiteral(int32(value)), nil
}

func (p *Parser) parseIdentifier() (*ast.Identifier, error) {
	tok, err := p.next()
	if err != nil {
		return nil, err
	}
	if tok.Kind() != lexer.KindIdentifier {
		return nil, errorAt(tok, "identifier expected")
	}
	return ast.NewIdentifier(tok.Lexeme()[0])
}
