package ast

import "mlua/interpreter-go/pkg/diag"

type NodeType string

const (
	NodeIdentifier          NodeType = "Identifier"
	NodeIntegerLiteral      NodeType = "IntegerLiteral"
	NodeBinaryExpression    NodeType = "BinaryExpression"
	NodeBooleanExpression   NodeType = "BooleanExpression"
	NodeAssignmentStatement NodeType = "AssignmentStatement"
	NodeIfStatement         NodeType = "IfStatement"
	NodeWhileStatement      NodeType = "WhileStatement"
	NodeRepeatStatement     NodeType = "RepeatStatement"
	NodePrintStatement      NodeType = "PrintStatement"
	NodeBlock               NodeType = "Block"
	NodeProgram             NodeType = "Program"
)

type Node interface {
	NodeType() NodeType
	isNode()
}

type nodeImpl struct {
	Type NodeType `json:"type"`
}

func newNodeImpl(kind NodeType) nodeImpl {
	return nodeImpl{Type: kind}
}

func (n nodeImpl) NodeType() NodeType { return n.Type }
func (nodeImpl) isNode()              {}

// Marker interfaces. The families are closed: only the types in this file
// implement them.

type ArithmeticExpression interface {
	Node
	arithmeticExpressionNode()
}

type arithmeticMarker struct{}

func (arithmeticMarker) arithmeticExpressionNode() {}

type Statement interface {
	Node
	statementNode()
}

type statementMarker struct{}

func (statementMarker) statementNode() {}

// Operators

type ArithmeticOperator string

const (
	OpAdd ArithmeticOperator = "+"
	OpSub ArithmeticOperator = "-"
	OpMul ArithmeticOperator = "*"
	OpDiv ArithmeticOperator = "/"
)

func (op ArithmeticOperator) Valid() bool {
	switch op {
	case OpAdd, OpSub, OpMul, OpDiv:
		return true
	default:
		return false
	}
}

func (op ArithmeticOperator) String() string { return string(op) }

type RelationalOperator string

const (
	OpEQ RelationalOperator = "=="
	OpNE RelationalOperator = "~="
	OpLT RelationalOperator = "<"
	OpLE RelationalOperator = "<="
	OpGT RelationalOperator = ">"
	OpGE RelationalOperator = ">="
)

func (op RelationalOperator) Valid() bool {
	switch op {
	case OpEQ, OpNE, OpLT, OpLE, OpGT, OpGE:
		return true
	default:
		return false
	}
}

func (op RelationalOperator) String() string { return string(op) }

// Arithmetic expressions

type Identifier struct {
	nodeImpl
	arithmeticMarker

	Name byte `json:"name"`
}

// NewIdentifier builds a reference to the variable named by letter.
func NewIdentifier(letter byte) (*Identifier, error) {
	if !isLetter(letter) {
		return nil, diag.Argumentf("identifier", "invalid identifier argument %q", letter)
	}
	return &Identifier{nodeImpl: newNodeImpl(NodeIdentifier), Name: letter}, nil
}

func (id *Identifier) String() string { return string(id.Name) }

type IntegerLiteral struct {
	nodeImpl
	arithmeticMarker

	Value int32 `json:"value"`
}

func NewIntegerLiteral(value int32) *IntegerLiteral {
	return &IntegerLiteral{nodeImpl: newNodeImpl(NodeIntegerLiteral), Value: value}
}

type BinaryExpression struct {
	nodeImpl
	arithmeticMarker

	Operator ArithmeticOperator   `json:"operator"`
	Left     ArithmeticExpression `json:"left"`
	Right    ArithmeticExpression `json:"right"`
}

func NewBinaryExpression(op ArithmeticOperator, left, right ArithmeticExpression) (*BinaryExpression, error) {
	if !op.Valid() {
		return nil, diag.Argumentf("binary expression", "invalid arithmetic operator argument %q", string(op))
	}
	if isNil(left) || isNil(right) {
		return nil, diag.Argumentf("binary expression", "null arithmetic expression argument")
	}
	return &BinaryExpression{
		nodeImpl: newNodeImpl(NodeBinaryExpression),
		Operator: op,
		Left:     left,
		Right:    right,
	}, nil
}

// Boolean expressions are deliberately not arithmetic expressions: the
// grammar has no boolean literals or connectives.

type BooleanExpression struct {
	nodeImpl

	Operator RelationalOperator   `json:"operator"`
	Left     ArithmeticExpression `json:"left"`
	Right    ArithmeticExpression `json:"right"`
}

func NewBooleanExpression(op RelationalOperator, left, right ArithmeticExpression) (*BooleanExpression, error) {
	if !op.Valid() {
		return nil, diag.Argumentf("boolean expression", "invalid relational operator argument %q", string(op))
	}
	if isNil(left) || isNil(right) {
		return nil, diag.Argumentf("boolean expression", "null arithmetic expression argument")
	}
	return &BooleanExpression{
		nodeImpl: newNodeImpl(NodeBooleanExpression),
		Operator: op,
		Left:     left,
		Right:    right,
	}, nil
}

// Statements

type AssignmentStatement struct {
	nodeImpl
	statementMarker

	Target     *Identifier          `json:"target"`
	Expression ArithmeticExpression `json:"expression"`
}

func NewAssignmentStatement(target *Identifier, expr ArithmeticExpression) (*AssignmentStatement, error) {
	if target == nil {
		return nil, diag.Argumentf("assignment", "null identifier argument")
	}
	if isNil(expr) {
		return nil, diag.Argumentf("assignment", "null arithmetic expression argument")
	}
	return &AssignmentStatement{
		nodeImpl:   newNodeImpl(NodeAssignmentStatement),
		Target:     target,
		Expression: expr,
	}, nil
}

type IfStatement struct {
	nodeImpl
	statementMarker

	Condition *BooleanExpression `json:"condition"`
	Then      *Block             `json:"then"`
	Else      *Block             `json:"else"`
}

func NewIfStatement(cond *BooleanExpression, thenBlock, elseBlock *Block) (*IfStatement, error) {
	if cond == nil {
		return nil, diag.Argumentf("if statement", "null boolean expression argument")
	}
	if thenBlock == nil || elseBlock == nil {
		return nil, diag.Argumentf("if statement", "null block argument")
	}
	return &IfStatement{
		nodeImpl:  newNodeImpl(NodeIfStatement),
		Condition: cond,
		Then:      thenBlock,
		Else:      elseBlock,
	}, nil
}

type WhileStatement struct {
	nodeImpl
	statementMarker

	Condition *BooleanExpression `json:"condition"`
	Body      *Block             `json:"body"`
}

func NewWhileStatement(cond *BooleanExpression, body *Block) (*WhileStatement, error) {
	if cond == nil {
		return nil, diag.Argumentf("while statement", "null boolean expression argument")
	}
	if body == nil {
		return nil, diag.Argumentf("while statement", "null block argument")
	}
	return &WhileStatement{nodeImpl: newNodeImpl(NodeWhileStatement), Condition: cond, Body: body}, nil
}

type RepeatStatement struct {
	nodeImpl
	statementMarker

	Body      *Block             `json:"body"`
	Condition *BooleanExpression `json:"condition"`
}

func NewRepeatStatement(body *Block, cond *BooleanExpression) (*RepeatStatement, error) {
	if body == nil {
		return nil, diag.Argumentf("repeat statement", "null block argument")
	}
	if cond == nil {
		return nil, diag.Argumentf("repeat statement", "null boolean expression argument")
	}
	return &RepeatStatement{nodeImpl: newNodeImpl(NodeRepeatStatement), Body: body, Condition: cond}, nil
}

type PrintStatement struct {
	nodeImpl
	statementMarker

	Expression ArithmeticExpression `json:"expression"`
}

func NewPrintStatement(expr ArithmeticExpression) (*PrintStatement, error) {
	if isNil(expr) {
		return nil, diag.Argumentf("print statement", "null arithmetic expression argument")
	}
	return &PrintStatement{nodeImpl: newNodeImpl(NodePrintStatement), Expression: expr}, nil
}

// Blocks and programs

// Block is an ordered, possibly empty, statement sequence.
type Block struct {
	nodeImpl

	Statements []Statement `json:"statements"`
}

func NewBlock(stmts ...Statement) (*Block, error) {
	b := &Block{nodeImpl: newNodeImpl(NodeBlock), Statements: []Statement{}}
	for _, stmt := range stmts {
		if err := b.Append(stmt); err != nil {
			return nil, err
		}
	}
	return b, nil
}

// Append adds stmt to the end of the block.
func (b *Block) Append(stmt Statement) error {
	if isNil(stmt) {
		return diag.Argumentf("block", "null statement argument")
	}
	b.Statements = append(b.Statements, stmt)
	return nil
}

func (b *Block) Len() int { return len(b.Statements) }

// Program is the parse result: the name from `function <id> ( )` and the
// single body block.
type Program struct {
	nodeImpl

	Name *Identifier `json:"name,omitempty"`
	Body *Block      `json:"body"`
}

func NewProgram(name *Identifier, body *Block) (*Program, error) {
	if body == nil {
		return nil, diag.Argumentf("program", "null block argument")
	}
	return &Program{nodeImpl: newNodeImpl(NodeProgram), Name: name, Body: body}, nil
}

func isLetter(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

// isNil catches both untyped nil and typed nil pointers stored in an
// interface.
func isNil(node Node) bool {
	if node == nil {
		return true
	}
	switch n := node.(type) {
	case *Identifier:
		return n == nil
	case *IntegerLiteral:
		return n == nil
	case *BinaryExpression:
		return n == nil
	case *AssignmentStatement:
		return n == nil
	case *IfStatement:
		return n == nil
	case *WhileStatement:
		return n == nil
	case *RepeatStatement:
		return n == nil
	case *PrintStatement:
		return n == nil
	default:
		return false
	}
}

