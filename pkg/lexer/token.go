package lexer

import (
	"fmt"

	"mlua/interpreter-go/pkg/diag"
)

// Kind classifies a lexeme.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindEOS
	KindIdentifier
	KindIntegerLiteral

	// keywords
	KindFunction
	KindIf
	KindThen
	KindElse
	KindEnd
	KindWhile
	KindDo
	KindPrint
	KindRepeat
	KindUntil

	// punctuation
	KindLeftParen
	KindRightParen

	// relational operators
	KindEQ
	KindNE
	KindLT
	KindLE
	KindGT
	KindGE

	// arithmetic operators
	KindAdd
	KindSub
	KindMul
	KindDiv

	KindAssign

	kindCount
)

var kindNames = [...]string{
	KindInvalid:        "invalid",
	KindEOS:            "end of stream",
	KindIdentifier:     "identifier",
	KindIntegerLiteral: "integer literal",
	KindFunction:       "function",
	KindIf:             "if",
	KindThen:           "then",
	KindElse:           "else",
	KindEnd:            "end",
	KindWhile:          "while",
	KindDo:             "do",
	KindPrint:          "print",
	KindRepeat:         "repeat",
	KindUntil:          "until",
	KindLeftParen:      "(",
	KindRightParen:     ")",
	KindEQ:             "==",
	KindNE:             "~=",
	KindLT:             "<",
	KindLE:             "<=",
	KindGT:             ">",
	KindGE:             ">=",
	KindAdd:            "+",
	KindSub:            "-",
	KindMul:            "*",
	KindDiv:            "/",
	KindAssign:         "=",
}

func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Valid reports whether k is one of the defined token kinds.
func (k Kind) Valid() bool {
	return k > KindInvalid && k < kindCount
}

// IsKeyword reports whether k is a reserved word.
func (k Kind) IsKeyword() bool {
	return k >= KindFunction && k <= KindUntil
}

// IsRelational reports whether k is one of the six comparison operators.
func (k Kind) IsRelational() bool {
	return k >= KindEQ && k <= KindGE
}

// IsArithmetic reports whether k is one of the four arithmetic operators.
func (k Kind) IsArithmetic() bool {
	return k >= KindAdd && k <= KindDiv
}

var keywords = map[string]Kind{
	"function": KindFunction,
	"if":       KindIf,
	"then":     KindThen,
	"else":     KindElse,
	"end":      KindEnd,
	"while":    KindWhile,
	"do":       KindDo,
	"print":    KindPrint,
	"repeat":   KindRepeat,
	"until":    KindUntil,
}

// symbols are matched against the whole lexeme, never as a prefix.
var symbols = map[string]Kind{
	"(":  KindLeftParen,
	")":  KindRightParen,
	">=": KindGE,
	">":  KindGT,
	"<=": KindLE,
	"<":  KindLT,
	"==": KindEQ,
	"~=": KindNE,
	"+":  KindAdd,
	"-":  KindSub,
	"*":  KindMul,
	"/":  KindDiv,
	"=":  KindAssign,
}

// Token is a classified lexeme and its 1-based source position. Tokens are
// values; the fields cannot be changed after construction.
type Token struct {
	kind   Kind
	lexeme string
	line   int
	column int
}

// NewToken validates its arguments and builds a token.
func NewToken(kind Kind, lexeme string, line, column int) (Token, error) {
	if !kind.Valid() {
		return Token{}, diag.Argumentf("token", "invalid token kind %d", uint8(kind))
	}
	if lexeme == "" {
		return Token{}, diag.Argumentf("token", "invalid lexeme argument")
	}
	if line <= 0 {
		return Token{}, diag.Argumentf("token", "invalid row number argument %d", line)
	}
	if column <= 0 {
		return Token{}, diag.Argumentf("token", "invalid column number argument %d", column)
	}
	return Token{kind: kind, lexeme: lexeme, line: line, column: column}, nil
}

func (t Token) Kind() Kind     { return t.kind }
func (t Token) Lexeme() string { return t.lexeme }
func (t Token) Line() int      { return t.line }
func (t Token) Column() int    { return t.column }

// Location returns the token position without a path.
func (t Token) Location() diag.Location {
	return diag.Location{Line: t.line, Column: t.column}
}

func (t Token) String() string {
	return fmt.Sprintf("%d:%d %s %q", t.line, t.column, t.kind, t.lexeme)
}
