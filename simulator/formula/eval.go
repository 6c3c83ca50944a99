package formula

import "fmt"

// Bindings associates variable names with numeric column vectors.
// Every bound vector has the same length, one entry per catalog row.
type Bindings struct {
	rows int
	vars map[string][]float64
}

// NewBindings creates an empty binding set for tables with the given
// number of rows. Numeric literals broadcast to this length even when
// a formula references no variables at all.
func NewBindings(rows int) *Bindings {
	return &Bindings{
		rows: rows,
		vars: make(map[string][]float64),
	}
}

// Bind associates a name with a column vector. The vector length must
// match the row count the binding set was created with; equal lengths
// across all bound columns are what make elementwise evaluation sound.
func (b *Bindings) Bind(name string, values []float64) error {
	if len(values) != b.rows {
		return fmt.Errorf("column %q has %d values, expected %d", name, len(values), b.rows)
	}
	b.vars[name] = values
	return nil
}

// Rows returns the common vector length.
func (b *Bindings) Rows() int {
	return b.rows
}

// Lookup returns the vector bound to name.
func (b *Bindings) Lookup(name string) ([]float64, bool) {
	v, ok := b.vars[name]
	return v, ok
}

// Evaluate walks a parsed formula tree and computes one score per row.
//
// Evaluation is a pure function of (tree, bindings): no state survives
// between calls and repeated calls produce identical output. The left
// operand of a binary node is evaluated before the right one. Division
// follows float64 semantics, so a zero divisor yields +Inf, -Inf or NaN
// (for 0/0) instead of an error; callers decide how non-finite scores
// are surfaced (ranking sorts NaN last).
//
// Results are never clamped here. Raising negative scores to zero is a
// separate post-processing step applied before ranking.
func Evaluate(node Node, b *Bindings) ([]float64, error) {
	switch n := node.(type) {
	case *Number:
		out := make([]float64, b.rows)
		for i := range out {
			out[i] = n.Value
		}
		return out, nil

	case *Variable:
		values, ok := b.Lookup(n.Name)
		if !ok {
			return nil, &UnknownVariableError{Name: n.Name}
		}
		return values, nil

	case *Unary:
		if n.Op != OpNeg {
			return nil, &UnsupportedError{Construct: fmt.Sprintf("unary operator %q", n.Op)}
		}
		operand, err := Evaluate(n.Operand, b)
		if err != nil {
			return nil, err
		}
		out := make([]float64, len(operand))
		for i, v := range operand {
			out[i] = -v
		}
		return out, nil

	case *Binary:
		left, err := Evaluate(n.Left, b)
		if err != nil {
			return nil, err
		}
		right, err := Evaluate(n.Right, b)
		if err != nil {
			return nil, err
		}
		out := make([]float64, len(left))
		switch n.Op {
		case OpAdd:
			for i := range out {
				out[i] = left[i] + right[i]
			}
		case OpSub:
			for i := range out {
				out[i] = left[i] - right[i]
			}
		case OpMul:
			for i := range out {
				out[i] = left[i] * right[i]
			}
		case OpDiv:
			for i := range out {
				out[i] = left[i] / right[i]
			}
		default:
			return nil, &UnsupportedError{Construct: fmt.Sprintf("binary operator %q", n.Op)}
		}
		return out, nil

	default:
		// Unreachable for trees built by Parse; guards against foreign
		// Node implementations reaching the evaluator.
		return nil, &UnsupportedError{Construct: fmt.Sprintf("%T", node)}
	}
}

// Eval parses and evaluates a formula in one call.
func Eval(text string, b *Bindings) ([]float64, error) {
	node, err := Parse(text)
	if err != nil {
		return nil, err
	}
	return Evaluate(node, b)
}
