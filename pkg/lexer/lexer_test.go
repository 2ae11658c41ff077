package lexer

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"mlua/interpreter-go/pkg/diag"
)

func mustToken(t *testing.T, kind Kind, lexeme string, line, column int) Token {
	t.Helper()
	tok, err := NewToken(kind, lexeme, line, column)
	if err != nil {
		t.Fatalf("NewToken(%v, %q, %d, %d): %v", kind, lexeme, line, column, err)
	}
	return tok
}

func TestTokenizeProgram(t *testing.T) {
	src := "function f ( )\n  x = + 2 3\n  print ( x )\nend\n"
	got, err := Tokenize(src)
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	want := []Token{
		mustToken(t, KindFunction, "function", 1, 1),
		mustToken(t, KindIdentifier, "f", 1, 10),
		mustToken(t, KindLeftParen, "(", 1, 12),
		mustToken(t, KindRightParen, ")", 1, 14),
		mustToken(t, KindIdentifier, "x", 2, 3),
		mustToken(t, KindAssign, "=", 2, 5),
		mustToken(t, KindAdd, "+", 2, 7),
		mustToken(t, KindIntegerLiteral, "2", 2, 9),
		mustToken(t, KindIntegerLiteral, "3", 2, 11),
		mustToken(t, KindPrint, "print", 3, 3),
		mustToken(t, KindLeftParen, "(", 3, 9),
		mustToken(t, KindIdentifier, "x", 3, 11),
		mustToken(t, KindRightParen, ")", 3, 13),
		mustToken(t, KindEnd, "end", 4, 1),
		mustToken(t, KindEOS, "EOS", 4, 1),
	}
	if diff := cmp.Diff(want, got, cmp.AllowUnexported(Token{})); diff != "" {
		t.Fatalf("tokens mismatch (-want +got):\n%s", diff)
	}
}

func TestClassifyEveryKind(t *testing.T) {
	cases := map[string]Kind{
		"function": KindFunction, "if": KindIf, "then": KindThen, "else": KindElse,
		"end": KindEnd, "while": KindWhile, "do": KindDo, "print": KindPrint,
		"repeat": KindRepeat, "until": KindUntil,
		"(": KindLeftParen, ")": KindRightParen,
		"==": KindEQ, "~=": KindNE, "<": KindLT, "<=": KindLE, ">": KindGT, ">=": KindGE,
		"+": KindAdd, "-": KindSub, "*": KindMul, "/": KindDiv, "=": KindAssign,
		"a": KindIdentifier, "Z": KindIdentifier,
		"0": KindIntegerLiteral, "007": KindIntegerLiteral, "99999999999": KindIntegerLiteral,
	}
	for lexeme, want := range cases {
		got, err := classify(lexeme, 1, 1)
		if err != nil {
			t.Fatalf("classify(%q): %v", lexeme, err)
		}
		if got != want {
			t.Fatalf("classify(%q) = %v, want %v", lexeme, got, want)
		}
	}
}

func TestLexicalErrors(t *testing.T) {
	cases := []struct {
		name    string
		src     string
		message string
		line    int
		column  int
	}{
		{name: "digit then letter", src: "function f ( )\n  x = 12a3\nend", message: "literal integer expected", line: 2, column: 7},
		{name: "multi letter word", src: "function f ( ) foo = 1 end", message: "invalid lexeme", line: 1, column: 16},
		{name: "glued punctuation", src: "function f ( )\n\tprint (x)\nend", message: "invalid lexeme", line: 2, column: 8},
		{name: "no spaces", src: "x=5", message: "invalid lexeme", line: 1, column: 1},
		{name: "unknown symbol", src: "function f ( ) x = % 1 2 end", message: "invalid lexeme", line: 1, column: 20},
		{name: "non ascii letter", src: "é = 1", message: "invalid lexeme", line: 1, column: 1},
		{name: "keyword case", src: "Function f ( ) end", message: "invalid lexeme", line: 1, column: 1},
		{name: "no-break space", src: "function f ( ) x\u00a0= 1 end", message: "invalid lexeme", line: 1, column: 16},
		{name: "no-break space after digits", src: "x = 1\u00a0", message: "literal integer expected", line: 1, column: 5},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := FromString(tc.src)
			var lexErr *LexicalError
			if !errors.As(err, &lexErr) {
				t.Fatalf("expected LexicalError, got %T (%v)", err, err)
			}
			want := diag.Location{Line: tc.line, Column: tc.column}
			if lexErr.Message != tc.message || lexErr.Location != want {
				t.Fatalf("got %q at %v, want %q at %v", lexErr.Message, lexErr.Location, tc.message, want)
			}
			if !IsLexicalError(err) {
				t.Fatalf("IsLexicalError(%v) = false", err)
			}
		})
	}
}

func TestLexicalErrorMessage(t *testing.T) {
	_, err := FromString("x = 1a")
	if err == nil || err.Error() != "literal integer expected at row 1 and column 5" {
		t.Fatalf("unexpected error %v", err)
	}
}

func TestEmptySource(t *testing.T) {
	for _, src := range []string{"", "\n", "   \n\t\n"} {
		l, err := FromString(src)
		if err != nil {
			t.Fatalf("FromString(%q): %v", src, err)
		}
		if l.Len() != 1 {
			t.Fatalf("FromString(%q) queued %d tokens, want 1", src, l.Len())
		}
		tok, err := l.Next()
		if err != nil {
			t.Fatalf("Next: %v", err)
		}
		if tok.Kind() != KindEOS || tok.Column() != 1 {
			t.Fatalf("unexpected token %v", tok)
		}
	}
}

func TestEOSRow(t *testing.T) {
	l, err := New([]string{"function f ( )", "", "end", ""})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if l.Lines() != 4 {
		t.Fatalf("Lines = %d, want 4", l.Lines())
	}
	var last Token
	for l.Len() > 0 {
		last, _ = l.Next()
	}
	if last.Kind() != KindEOS || last.Line() != 4 || last.Column() != 1 {
		t.Fatalf("EOS token = %v", last)
	}
}

func TestPeekAndNext(t *testing.T) {
	l, err := FromString("end")
	if err != nil {
		t.Fatalf("FromString: %v", err)
	}
	first, err := l.Peek()
	if err != nil || first.Kind() != KindEnd {
		t.Fatalf("Peek = %v, %v", first, err)
	}
	again, _ := l.Peek()
	if again != first {
		t.Fatalf("Peek consumed a token")
	}
	if tok, _ := l.Next(); tok != first {
		t.Fatalf("Next = %v, want %v", tok, first)
	}
	if tok, _ := l.Next(); tok.Kind() != KindEOS {
		t.Fatalf("expected EOS, got %v", tok)
	}
	if _, err := l.Peek(); !errors.Is(err, ErrNoMoreTokens) {
		t.Fatalf("Peek on empty queue: %v", err)
	}
	_, err = l.Next()
	if !errors.Is(err, ErrNoMoreTokens) {
		t.Fatalf("Next on empty queue: %v", err)
	}
	var lexErr *LexicalError
	if !errors.As(err, &lexErr) || !lexErr.Location.IsZero() {
		t.Fatalf("Next on empty queue: %T (%v)", err, err)
	}
	lexErr.Message = "changed"
	if _, err := l.Peek(); err == nil || err.Error() != "no more tokens" {
		t.Fatalf("Peek after caller edit: %v", err)
	}
	if errors.Is(&LexicalError{Message: "no more tokens", Location: diag.Location{Line: 1, Column: 1}}, ErrNoMoreTokens) {
		t.Fatalf("positioned error matched ErrNoMoreTokens")
	}
}

func TestASCIIWhitespaceSeparates(t *testing.T) {
	tokens, err := Tokenize("x\t=\v+\f1\r2")
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	var kinds []Kind
	for _, tok := range tokens {
		kinds = append(kinds, tok.Kind())
	}
	want := []Kind{KindIdentifier, KindAssign, KindAdd, KindIntegerLiteral, KindIntegerLiteral, KindEOS}
	if diff := cmp.Diff(want, kinds); diff != "" {
		t.Fatalf("kinds mismatch (-want +got):\n%s", diff)
	}
}

func TestFromReaderMatchesFromString(t *testing.T) {
	src := "function f ( )\r\n  print ( 1 )\r\nend"
	l, err := FromReader(strings.NewReader(src))
	if err != nil {
		t.Fatalf("FromReader: %v", err)
	}
	want, err := Tokenize(src)
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	var got []Token
	for l.Len() > 0 {
		tok, _ := l.Next()
		got = append(got, tok)
	}
	if diff := cmp.Diff(want, got, cmp.AllowUnexported(Token{})); diff != "" {
		t.Fatalf("tokens mismatch (-FromString +FromReader):\n%s", diff)
	}
	if _, err := FromReader(nil); err == nil {
		t.Fatalf("expected error for nil reader")
	}
}
