package ast

import (
	"math"
	"strconv"
	"strings"
)

const indentUnit = "  "

// Format renders node as canonical mlua source with every lexeme separated
// by whitespace. Trees produced by the parser format and re-parse to an equal
// tree; hand-built negative literals come back as subtractions.
func Format(node Node) string {
	var b strings.Builder
	f := formatter{b: &b}
	f.node(node, 0)
	return b.String()
}

type formatter struct {
	b *strings.Builder
}

func (f formatter) node(node Node, depth int) {
	switch n := node.(type) {
	case *Program:
		name := "f"
		if n.Name != nil {
			name = n.Name.String()
		}
		f.line(depth, "function "+name+" ( )")
		f.block(n.Body, depth+1)
		f.line(depth, "end")
	case *Block:
		f.block(n, depth)
	case Statement:
		f.statement(n, depth)
	case *BooleanExpression:
		f.b.WriteString(formatBoolean(n))
	case ArithmeticExpression:
		f.b.WriteString(formatArithmetic(n))
	}
}

func (f formatter) block(block *Block, depth int) {
	if block == nil {
		return
	}
	for _, stmt := range block.Statements {
		f.statement(stmt, depth)
	}
}

func (f formatter) statement(stmt Statement, depth int) {
	switch s := stmt.(type) {
	case *AssignmentStatement:
		f.line(depth, s.Target.String()+" = "+formatArithmetic(s.Expression))
	case *PrintStatement:
		f.line(depth, "print ( "+formatArithmetic(s.Expression)+" )")
	case *IfStatement:
		f.line(depth, "if "+formatBoolean(s.Condition)+" then")
		f.block(s.Then, depth+1)
		f.line(depth, "else")
		f.block(s.Else, depth+1)
		f.line(depth, "end")
	case *WhileStatement:
		f.line(depth, "while "+formatBoolean(s.Condition)+" do")
		f.block(s.Body, depth+1)
		f.line(depth, "end")
	case *RepeatStatement:
		f.line(depth, "repeat")
		f.block(s.Body, depth+1)
		f.line(depth, "until "+formatBoolean(s.Condition))
	}
}

func (f formatter) line(depth int, text string) {
	f.b.WriteString(strings.Repeat(indentUnit, depth))
	f.b.WriteString(text)
	f.b.WriteByte('\n')
}

func formatBoolean(expr *BooleanExpression) string {
	return expr.Operator.String() + " " + formatArithmetic(expr.Left) + " " + formatArithmetic(expr.Right)
}

func formatArithmetic(expr ArithmeticExpression) string {
	switch e := expr.(type) {
	case *Identifier:
		return e.String()
	case *IntegerLiteral:
		return formatInteger(e.Value)
	case *BinaryExpression:
		return e.Operator.String() + " " + formatArithmetic(e.Left) + " " + formatArithmetic(e.Right)
	default:
		return ""
	}
}

// Literals are unsigned in source, so negative values are written as a
// subtraction from zero.
func formatInteger(v int32) string {
	switch {
	case v >= 0:
		return strconv.FormatInt(int64(v), 10)
	case v == math.MinInt32:
		return "- - 0 " + strconv.FormatInt(math.MaxInt32, 10) + " 1"
	default:
		return "- 0 " + strconv.FormatInt(-int64(v), 10)
	}
}
