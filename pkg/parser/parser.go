// Package parser builds mlua ASTs by recursive descent over the lexer's
// token queue, with one token of lookahead and no backtracking. The first
// grammar violation aborts the parse.
//
//	program    := "function" id "(" ")" block "end" EOS
//	block      := { statement }
//	statement  := if | while | repeat | print | assignment
//	if         := "if" bool_expr "then" block "else" block "end"
//	while      := "while" bool_expr "do" block "end"
//	repeat     := "repeat" block "until" bool_expr
//	print      := "print" "(" arith_expr ")"
//	assignment := id "=" arith_expr
//	arith_expr := id | integer_literal | arith_op arith_expr arith_expr
//	bool_expr  := rel_op arith_expr arith_expr
package parser

import (
	"mlua/interpreter-go/pkg/ast"
	"mlua/interpreter-go/pkg/lexer"
)

// Parser consumes a single lexer. It is not reusable: ParseProgram drains
// the token queue.
type Parser struct {
	lex *lexer.Lexer
}

func New(lex *lexer.Lexer) *Parser {
	return &Parser{lex: lex}
}

// ParseSource tokenizes and parses src. Malformed lexemes are reported as
// *lexer.LexicalError, grammar violations as *ParseError.
func ParseSource(src string) (*ast.Program, error) {
	lex, err := lexer.FromString(src)
	if err != nil {
		return nil, err
	}
	return New(lex).ParseProgram()
}

// ParseProgram implements
//
//	program := "function" id "(" ")" block "end" EOS
func (p *Parser) ParseProgram() (*ast.Program, error) {
	if p == nil || p.lex == nil {
		return nil, &ParseError{Message: msgNoMoreTokens}
	}
	if _, err := p.expect(lexer.KindFunction); err != nil {
		return nil, err
	}
	name, err := p.parseIdentifier()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.KindLeftParen); err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.KindRightParen); err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.KindEnd); err != nil {
		return nil, err
	}
	tok, err := p.next()
	if err != nil {
		return nil, err
	}
	if tok.Kind() != lexer.KindEOS {
		return nil, errorAt(tok, "garbage at end of file")
	}
	return ast.NewProgram(name, body)
}

// peek and next fold every lexer failure into a generic parse error.
func (p *Parser) peek() (lexer.Token, error) {
	tok, err := p.lex.Peek()
	if err != nil {
		return lexer.Token{}, &ParseError{Message: msgNoMoreTokens}
	}
	return tok, nil
}

func (p *Parser) next() (lexer.Token, error) {
	tok, err := p.lex.Next()
	if err != nil {
		return lexer.Token{}, &ParseError{Message: msgNoMoreTokens}
	}
	return tok, nil
}

// expect consumes the next token and checks its kind.
func (p *Parser) expect(kind lexer.Kind) (lexer.Token, error) {
	tok, err := p.next()
	if err != nil {
		return lexer.Token{}, err
	}
	if err := match(tok, kind); err != nil {
		return lexer.Token{}, err
	}
	return tok, nil
}

func match(tok lexer.Token, kind lexer.Kind) error {
	if tok.Kind() != kind {
		return expectedError(kind, tok)
	}
	return nil
}
