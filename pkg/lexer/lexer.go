// Package lexer turns mlua source text into a queue of classified tokens.
//
// Lexemes are delimited by whitespace only: `x=5` is a single (invalid)
// lexeme, not three tokens.
package lexer

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/edwingeng/deque"

	"mlua/interpreter-go/pkg/diag"
)

const (
	msgLiteralExpected = "literal integer expected"
	msgInvalidLexeme   = "invalid lexeme"
	msgNoMoreTokens    = "no more tokens"

	eosLexeme = "EOS"
)

// LexicalError reports a malformed lexeme or a read past the end of the
// token queue. Location is zero for the latter.
type LexicalError struct {
	Message  string
	Location diag.Location
}

func (e *LexicalError) Error() string {
	if loc := diag.FormatLocation(e.Location); loc != "" {
		return fmt.Sprintf("%s at %s", e.Message, loc)
	}
	return e.Message
}

// Is matches ErrNoMoreTokens for the position-less error Peek and Next
// return on an empty queue.
func (e *LexicalError) Is(target error) bool {
	return target == ErrNoMoreTokens && e.Message == msgNoMoreTokens && e.Location.IsZero()
}

// ErrNoMoreTokens matches, via errors.Is, the *LexicalError returned by Peek
// and Next once the end-of-stream token has been taken.
var ErrNoMoreTokens = errors.New(msgNoMoreTokens)

// Lexer owns the token queue produced from one source text. The queue is
// filled eagerly by New and drained left to right by Next.
type Lexer struct {
	queue deque.Deque
	lines int
}

// New tokenizes lines; line i of the slice is row i+1.
func New(lines []string) (*Lexer, error) {
	l := &Lexer{queue: deque.NewDeque(), lines: len(lines)}
	for i, line := range lines {
		if err := l.processLine(line, i+1); err != nil {
			return nil, err
		}
	}
	row := len(lines)
	if row == 0 {
		row = 1
	}
	eos, err := NewToken(KindEOS, eosLexeme, row, 1)
	if err != nil {
		return nil, err
	}
	l.queue.PushBack(eos)
	return l, nil
}

// FromString tokenizes src, splitting lines on '\n'.
func FromString(src string) (*Lexer, error) {
	return New(splitLines(src))
}

// FromReader reads r to the end and tokenizes it.
func FromReader(r io.Reader) (*Lexer, error) {
	if r == nil {
		return nil, diag.Argumentf("lexer", "nil reader argument")
	}
	var lines []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("lexer: read source: %w", err)
	}
	return New(lines)
}

// Tokenize drains a fresh lexer over src, returning every token including
// the trailing end-of-stream token.
func Tokenize(src string) ([]Token, error) {
	l, err := FromString(src)
	if err != nil {
		return nil, err
	}
	tokens := make([]Token, 0, l.Len())
	for {
		tok, err := l.Next()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		if tok.Kind() == KindEOS {
			return tokens, nil
		}
	}
}

// Lines reports how many source lines were tokenized.
func (l *Lexer) Lines() int {
	return l.lines
}

// Len reports how many tokens remain in the queue.
func (l *Lexer) Len() int {
	return l.queue.Len()
}

// Peek returns the front token without removing it.
func (l *Lexer) Peek() (Token, error) {
	if l.queue.Empty() {
		return Token{}, &LexicalError{Message: msgNoMoreTokens}
	}
	return l.queue.Front().(Token), nil
}

// Next removes and returns the front token.
func (l *Lexer) Next() (Token, error) {
	if l.queue.Empty() {
		return Token{}, &LexicalError{Message: msgNoMoreTokens}
	}
	return l.queue.PopFront().(Token), nil
}

func (l *Lexer) processLine(line string, row int) error {
	runes := []rune(line)
	index := skipWhitespace(runes, 0)
	for index < len(runes) {
		lexeme := lexemeAt(runes, index)
		column := index + 1
		kind, err := classify(lexeme, row, column)
		if err != nil {
			return err
		}
		tok, err := NewToken(kind, lexeme, row, column)
		if err != nil {
			return err
		}
		l.queue.PushBack(tok)
		index = skipWhitespace(runes, index+len([]rune(lexeme)))
	}
	return nil
}

func classify(lexeme string, row, column int) (Kind, error) {
	if lexeme == "" {
		return KindInvalid, diag.Argumentf("lexer", "invalid string argument")
	}
	first := []rune(lexeme)[0]
	switch {
	case isDigit(first):
		if !allDigits(lexeme) {
			return KindInvalid, lexicalError(msgLiteralExpected, row, column)
		}
		return KindIntegerLiteral, nil
	case isLetter(first):
		if len([]rune(lexeme)) == 1 {
			return KindIdentifier, nil
		}
		if kind, ok := keywords[lexeme]; ok {
			return kind, nil
		}
		return KindInvalid, lexicalError(msgInvalidLexeme, row, column)
	default:
		if kind, ok := symbols[lexeme]; ok {
			return kind, nil
		}
		return KindInvalid, lexicalError(msgInvalidLexeme, row, column)
	}
}

func lexicalError(message string, row, column int) *LexicalError {
	return &LexicalError{
		Message:  message,
		Location: diag.Location{Line: row, Column: column},
	}
}

// IsLexicalError reports whether err is (or wraps) a LexicalError.
func IsLexicalError(err error) bool {
	var lexErr *LexicalError
	return errors.As(err, &lexErr)
}

func allDigits(lexeme string) bool {
	for _, r := range lexeme {
		if !isDigit(r) {
			return false
		}
	}
	return true
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

// Identifiers are restricted to ASCII letters so each maps onto a store slot.
func isLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

// Only ASCII whitespace separates lexemes; U+00A0 and friends stay part of
// the lexeme.
func isSpace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

func lexemeAt(runes []rune, index int) string {
	end := index
	for end < len(runes) && !isSpace(runes[end]) {
		end++
	}
	return string(runes[index:end])
}

func skipWhitespace(runes []rune, index int) int {
	for index < len(runes) && isSpace(runes[index]) {
		index++
	}
	return index
}

func splitLines(src string) []string {
	if src == "" {
		return nil
	}
	lines := strings.Split(src, "\n")
	// A terminating newline does not start another line.
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
