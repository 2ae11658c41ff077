package interpreter

import (
	"fmt"

	"mlua/interpreter-go/pkg/ast"
	"mlua/interpreter-go/pkg/diag"
	"mlua/interpreter-go/pkg/runtime"
)

// ExecuteBlock executes every statement of block in order.
func (i *Interpreter) ExecuteBlock(block *ast.Block, store *runtime.Store) error {
	if store == nil {
		return diag.Argumentf("execute", "null store argument")
	}
	if block == nil {
		return nil
	}
	for _, stmt := range block.Statements {
		if err := i.ExecuteStatement(stmt, store); err != nil {
			return err
		}
	}
	return nil
}

// ExecuteStatement executes a single statement.
func (i *Interpreter) ExecuteStatement(node ast.Statement, store *runtime.Store) error {
	if store == nil {
		return diag.Argumentf("execute", "null store argument")
	}
	switch n := node.(type) {
	case *ast.AssignmentStatement:
		return i.executeAssignment(n, store)
	case *ast.IfStatement:
		return i.executeIf(n, store)
	case *ast.WhileStatement:
		return i.executeWhile(n, store)
	case *ast.RepeatStatement:
		return i.executeRepeat(n, store)
	case *ast.PrintStatement:
		return i.executePrint(n, store)
	default:
		return fmt.Errorf("unsupported statement type: %T", node)
	}
}

func (i *Interpreter) executeAssignment(stmt *ast.AssignmentStatement, store *runtime.Store) error {
	value, err := i.EvaluateArithmetic(stmt.Expression, store)
	if err != nil {
		return err
	}
	return store.Store(stmt.Target.Name, value)
}

func (i *Interpreter) executeIf(stmt *ast.IfStatement, store *runtime.Store) error {
	cond, err := i.EvaluateBoolean(stmt.Condition, store)
	if err != nil {
		return err
	}
	if cond {
		return i.ExecuteBlock(stmt.Then, store)
	}
	return i.ExecuteBlock(stmt.Else, store)
}

func (i *Interpreter) executeWhile(loop *ast.WhileStatement, store *runtime.Store) error {
	for {
		cond, err := i.EvaluateBoolean(loop.Condition, store)
		if err != nil {
			return err
		}
		if !cond {
			return nil
		}
		if err := i.ExecuteBlock(loop.Body, store); err != nil {
			return err
		}
	}
}

// The body runs before the first test; the loop ends the first time the
// condition holds.
func (i *Interpreter) executeRepeat(loop *ast.RepeatStatement, store *runtime.Store) error {
	for {
		if err := i.ExecuteBlock(loop.Body, store); err != nil {
			return err
		}
		done, err := i.EvaluateBoolean(loop.Condition, store)
		if err != nil {
			return err
		}
		if done {
			return nil
		}
	}
}

func (i *Interpreter) executePrint(stmt *ast.PrintStatement, store *runtime.Store) error {
	value, err := i.EvaluateArithmetic(stmt.Expression, store)
	if err != nil {
		return err
	}
	return i.print(value)
}
