package parser

import (
	"mlua/interpreter-go/pkg/ast"
	"mlua/interpreter-go/pkg/lexer"
)

// parseBlock collects statements until the lookahead cannot start one; the
// caller then matches its own terminator.
func (p *Parser) parseBlock() (*ast.Block, error) {
	block, err := ast.NewBlock()
	if err != nil {
		return nil, err
	}
	for {
		tok, err := p.peek()
		if err != nil {
			return nil, err
		}
		if !startsStatement(tok.Kind()) {
			return block, nil
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		if err := block.Append(stmt); err != nil {
			return nil, err
		}
	}
}

func startsStatement(kind lexer.Kind) bool {
	switch kind {
	case lexer.KindIdentifier, lexer.KindIf, lexer.KindWhile, lexer.KindPrint, lexer.KindRepeat:
		return true
	default:
		return false
	}
}

func (p *Parser) parseStatement() (ast.Statement, error) {
	tok, err := p.peek()
	if err != nil {
		return nil, err
	}
	switch tok.Kind() {
	case lexer.KindIf:
		return p.parseIfStatement()
	case lexer.KindWhile:
		return p.parseWhileStatement()
	case lexer.KindPrint:
		return p.parsePrintStatement()
	case lexer.KindRepeat:
		return p.parseRepeatStatement()
	case lexer.KindIdentifier:
		return p.parseAssignmentStatement()
	default:
		return nil, errorAt(tok, "invalid statement")
	}
}

// assignment := id "=" arith_expr
func (p *Parser) parseAssignmentStatement() (ast.Statement, error) {
	target, err := p.parseIdentifier()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.KindAssign); err != nil {
		return nil, err
	}
	expr, err := p.parseArithmeticExpression()
	if err != nil {
		return nil, err
	}
	return ast.NewAssignmentStatement(target, expr)
}

// repeat := "repeat" block "until" bool_expr
func (p *Parser) parseRepeatStatement() (ast.Statement, error) {
	if _, err := p.expect(lexer.KindRepeat); err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.KindUntil); err != nil {
		return nil, err
	}
	cond, err := p.parseBooleanExpression()
	if err != nil {
		return nil, err
	}
	return ast.NewRepeatStatement(body, cond)
}

// print := "print" "(" arith_expr ")"
func (p *Parser) parsePrintStatement() (ast.Statement, error) {
	if _, err := p.expect(lexer.KindPrint); err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.KindLeftParen); err != nil {
		return nil, err
	}
	expr, err := p.parseArithmeticExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.KindRightParen); err != nil {
		return nil, err
	}
	return ast.NewPrintStatement(expr)
}

// while := "while" bool_expr "do" block "end"
func (p *Parser) parseWhileStatement() (ast.Statement, error) {
	if _, err := p.expect(lexer.KindWhile); err != nil {
		return nil, err
	}
	cond, err := p.parseBooleanExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.KindDo); err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.KindEnd); err != nil {
		return nil, err
	}
	return ast.NewWhileStatement(cond, body)
}

// if := "if" bool_expr "then" block "else" block "end"
func (p *Parser) parseIfStatement() (ast.Statement, error) {
	if _, err := p.expect(lexer.KindIf); err != nil {
		return nil, err
	}
	cond, err := p.parseBooleanExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.KindThen); err != nil {
		return nil, err
	}
	thenBlock, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.KindElse); err != nil {
		return nil, err
	}
	elseBlock, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.KindEnd); err != nil {
		return nil, err
	}
	return ast.NewIfStatement(cond, thenBlock, elseBlock)
}
