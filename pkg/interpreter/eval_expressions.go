package interpreter

import (
	"fmt"

	"mlua/interpreter-go/pkg/ast"
	"mlua/interpreter-go/pkg/diag"
	"mlua/interpreter-go/pkg/runtime"
)

// EvaluateArithmetic computes expr. Reading the store is its only effect.
func (i *Interpreter) EvaluateArithmetic(expr ast.ArithmeticExpression, store *runtime.Store) (int32, error) {
	if store == nil {
		return 0, diag.Argumentf("evaluate", "null store argument")
	}
	switch n := expr.(type) {
	case *ast.Identifier:
		return store.Fetch(n.Name)
	case *ast.IntegerLiteral:
		return n.Value, nil
	case *ast.BinaryExpression:
		return i.evaluateBinary(n, store)
	default:
		return 0, fmt.Errorf("unsupported expression type: %T", expr)
	}
}

func (i *Interpreter) evaluateBinary(expr *ast.BinaryExpression, store *runtime.Store) (int32, error) {
	left, err := i.EvaluateArithmetic(expr.Left, store)
	if err != nil {
		return 0, err
	}
	right, err := i.EvaluateArithmetic(expr.Right, store)
	if err != nil {
		return 0, err
	}
	switch expr.Operator {
	case ast.OpAdd:
		return left + right, nil
	case ast.OpSub:
		return left - right, nil
	case ast.OpMul:
		return left * right, nil
	case ast.OpDiv:
		// A zero divisor panics here on purpose.
		return left / right, nil
	default:
		return 0, fmt.Errorf("unsupported arithmetic operator %q", string(expr.Operator))
	}
}

// EvaluateBoolean compares the two operands of expr.
func (i *Interpreter) EvaluateBoolean(expr *ast.BooleanExpression, store *runtime.Store) (bool, error) {
	if expr == nil {
		return false, fmt.Errorf("nil boolean expression")
	}
	if store == nil {
		return false, diag.Argumentf("evaluate", "null store argument")
	}
	left, err := i.EvaluateArithmetic(expr.Left, store)
	if err != nil {
		return false, err
	}
	right, err := i.EvaluateArithmetic(expr.Right, store)
	if err != nil {
		return false, err
	}
	switch expr.Operator {
	case ast.OpEQ:
		return left == right, nil
	case ast.OpNE:
		return left != right, nil
	case ast.OpLT:
		return left < right, nil
	case ast.OpLE:
		return left <= right, nil
	case ast.OpGT:
		return left > right, nil
	case ast.OpGE:
		return left >= right, nil
	default:
		return false, fmt.Errorf("unsupported relational operator %q", string(expr.Operator))
	}
}
