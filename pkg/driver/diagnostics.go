package driver

import (
	"errors"
	"fmt"
	"strings"

	"mlua/interpreter-go/pkg/diag"
	"mlua/interpreter-go/pkg/lexer"
	"mlua/interpreter-go/pkg/parser"
)

// DiagnosticStage names the pipeline step that failed.
type DiagnosticStage string

const (
	StageLoad     DiagnosticStage = "loader"
	StageLexer    DiagnosticStage = "lexer"
	StageParser   DiagnosticStage = "parser"
	StageArgument DiagnosticStage = "argument"
	StageRuntime  DiagnosticStage = "runtime"
)

// Diagnostic is a structured, printable failure report.
type Diagnostic struct {
	Stage    DiagnosticStage
	Message  string
	Location diag.Location
}

// DiagnosticFromError classifies err and attributes it to path.
func DiagnosticFromError(err error, path string) Diagnostic {
	d := Diagnostic{
		Stage:    StageRuntime,
		Location: diag.Location{Path: path},
	}
	var (
		lexErr   *lexer.LexicalError
		parseErr *parser.ParseError
		argErr   *diag.ArgumentError
		loadErr  *LoadError
	)
	switch {
	case errors.As(err, &lexErr):
		d.Stage = StageLexer
		d.Message = lexErr.Message
		d.Location = lexErr.Location.WithPath(path)
	case errors.As(err, &parseErr):
		d.Stage = StageParser
		d.Message = parseErr.Message
		d.Location = parseErr.Location.WithPath(path)
	case errors.As(err, &argErr):
		d.Stage = StageArgument
		d.Message = argErr.Error()
	case errors.As(err, &loadErr):
		d.Stage = StageLoad
		d.Message = loadErr.Err.Error()
	case err != nil:
		d.Message = err.Error()
	}
	return d
}

// DescribeDiagnostic formats a diagnostic for CLI output, e.g.
// "parser: main.lua:3:5 end expected".
func DescribeDiagnostic(d Diagnostic) string {
	message := strings.TrimSpace(d.Message)
	stage := string(d.Stage)
	if stage == "" {
		stage = "error"
	}
	if strings.HasPrefix(message, stage+":") {
		message = strings.TrimSpace(strings.TrimPrefix(message, stage+":"))
	}
	prefix := stage + ": "
	if location := diag.FormatLocation(d.Location); location != "" {
		return fmt.Sprintf("%s%s %s", prefix, location, message)
	}
	return prefix + message
}
