package formula

import "fmt"

// Node is the closed set of syntax tree nodes a formula may contain.
// The evaluator type-switches exhaustively over these kinds; anything
// else is rejected, which is the second half of the sandboxing guarantee
// (the first half being the whitelist applied during Parse).
type Node interface {
	node()
}

// Number is a numeric literal, broadcast to every row during evaluation.
type Number struct {
	Value float64
}

// Variable references a bound column by name.
type Variable struct {
	Name string
}

// UnaryOp identifies a unary operator. Negation is the only one allowed.
type UnaryOp int

const (
	OpNeg UnaryOp = iota
)

func (op UnaryOp) String() string {
	if op == OpNeg {
		return "-"
	}
	return fmt.Sprintf("UnaryOp(%d)", int(op))
}

// Unary applies a unary operator to its operand.
type Unary struct {
	Op      UnaryOp
	Operand Node
}

// BinaryOp identifies one of the four allowed binary operators.
type BinaryOp int

const (
	OpAdd BinaryOp = iota
	OpSub
	OpMul
	OpDiv
)

func (op BinaryOp) String() string {
	switch op {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	default:
		return fmt.Sprintf("BinaryOp(%d)", int(op))
	}
}

// Binary applies a binary operator elementwise to its operands.
type Binary struct {
	Op    BinaryOp
	Left  Node
	Right Node
}

func (*Number) node()   {}
func (*Variable) node() {}
func (*Unary) node()    {}
func (*Binary) node()   {}
