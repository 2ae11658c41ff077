package interpreter

import (
	"fmt"
	"io"

	"mlua/interpreter-go/pkg/ast"
	"mlua/interpreter-go/pkg/diag"
	"mlua/interpreter-go/pkg/runtime"
)

// Interpreter evaluates programs against a caller-supplied store and writes
// print output to its sink. It holds no variable state of its own, so one
// Interpreter can run any number of programs.
type Interpreter struct {
	stdout io.Writer
}

// New returns an interpreter printing to stdout; a nil writer discards
// output.
func New(stdout io.Writer) *Interpreter {
	if stdout == nil {
		stdout = io.Discard
	}
	return &Interpreter{stdout: stdout}
}

// Execute runs the program body once, top to bottom.
func (i *Interpreter) Execute(program *ast.Program, store *runtime.Store) error {
	if program == nil {
		return diag.Argumentf("execute", "null program argument")
	}
	if store == nil {
		return diag.Argumentf("execute", "null store argument")
	}
	return i.ExecuteBlock(program.Body, store)
}

// Run executes program against a fresh store and returns that store.
func (i *Interpreter) Run(program *ast.Program) (*runtime.Store, error) {
	store := runtime.NewStore()
	if err := i.Execute(program, store); err != nil {
		return store, err
	}
	return store, nil
}

func (i *Interpreter) print(value int32) error {
	if _, err := fmt.Fprintln(i.stdout, value); err != nil {
		return fmt.Errorf("print: %w", err)
	}
	return nil
}
