package parser

import (
	"fmt"

	"mlua/interpreter-go/pkg/diag"
	"mlua/interpreter-go/pkg/lexer"
)

const msgNoMoreTokens = "no more tokens"

// ParseError includes a message plus the position of the offending token.
// Location is zero when the token stream itself failed.
type ParseError struct {
	Message  string
	Location diag.Location
}

func (e *ParseError) Error() string {
	if loc := diag.FormatLocation(e.Location); loc != "" {
		return fmt.Sprintf("%s at %s", e.Message, loc)
	}
	return e.Message
}

func errorAt(tok lexer.Token, format string, args ...any) *ParseError {
	return &ParseError{
		Message:  fmt.Sprintf(format, args...),
		Location: tok.Location(),
	}
}

func expectedError(want lexer.Kind, got lexer.Token) *ParseError {
	return errorAt(got, "%s expected", want)
}
