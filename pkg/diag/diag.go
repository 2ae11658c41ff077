// Package diag holds the source-location and argument-error types shared by
// the lexer, AST, runtime and driver packages.
package diag

import (
	"fmt"
	"strings"
)

// Location references a position in a source file. Line and Column are
// 1-based; zero means unknown.
type Location struct {
	Path   string `json:"path,omitempty"`
	Line   int    `json:"line"`
	Column int    `json:"column"`
}

// IsZero reports whether the location carries no position information.
func (l Location) IsZero() bool {
	return l.Path == "" && l.Line == 0 && l.Column == 0
}

// WithPath returns a copy of the location attributed to path.
func (l Location) WithPath(path string) Location {
	l.Path = path
	return l
}

func (l Location) String() string {
	return FormatLocation(l)
}

// FormatLocation renders a location for CLI output.
func FormatLocation(loc Location) string {
	path := strings.TrimSpace(loc.Path)
	switch {
	case path != "" && loc.Line > 0 && loc.Column > 0:
		return fmt.Sprintf("%s:%d:%d", path, loc.Line, loc.Column)
	case path != "" && loc.Line > 0:
		return fmt.Sprintf("%s:%d", path, loc.Line)
	case path != "":
		return path
	case loc.Line > 0 && loc.Column > 0:
		return fmt.Sprintf("row %d and column %d", loc.Line, loc.Column)
	case loc.Line > 0:
		return fmt.Sprintf("row %d", loc.Line)
	default:
		return ""
	}
}

// ArgumentError signals a constructor or store called with invalid input.
// It describes caller misuse, never a defect in the source text.
type ArgumentError struct {
	Op      string
	Message string
}

func (e *ArgumentError) Error() string {
	if e.Op == "" {
		return e.Message
	}
	return e.Op + ": " + e.Message
}

// Argumentf builds an ArgumentError for op.
func Argumentf(op, format string, args ...any) *ArgumentError {
	return &ArgumentError{Op: op, Message: fmt.Sprintf(format, args...)}
}
