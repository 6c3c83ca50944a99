package formula

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/expr-lang/expr/ast"
	"github.com/expr-lang/expr/parser"
)

// Parse turns a formula string into a validated syntax tree.
//
// Parsing happens in two stages. The expr-lang parser produces a tree in
// its general expression grammar; translate then walks that tree and
// admits only the arithmetic subset (numbers, variables, unary minus,
// binary + - * /, grouping), converting it into the closed Node union.
// The expr-lang compiler and VM are never invoked, so there is no path
// from a formula string to general code execution.
func Parse(text string) (Node, error) {
	if strings.TrimSpace(text) == "" {
		return nil, &SyntaxError{Message: "empty formula"}
	}

	// expr-lang accepts hex/octal/binary literals; formulas are decimal only.
	if nonDecimalLiteral.MatchString(text) {
		return nil, &UnsupportedError{Construct: "non-decimal numeric literal"}
	}

	tree, err := parser.Parse(text)
	if err != nil {
		return nil, &SyntaxError{Message: err.Error()}
	}

	return translate(tree.Node)
}

var nonDecimalLiteral = regexp.MustCompile(`(?i)\b0[xob][0-9a-f_]+`)

var binaryOps = map[string]BinaryOp{
	"+": OpAdd,
	"-": OpSub,
	"*": OpMul,
	"/": OpDiv,
}

// translate converts an expr-lang node into the closed Node union,
// rejecting every node kind outside the whitelist.
func translate(n ast.Node) (Node, error) {
	switch n := n.(type) {
	case *ast.IntegerNode:
		return &Number{Value: float64(n.Value)}, nil

	case *ast.FloatNode:
		return &Number{Value: n.Value}, nil

	case *ast.IdentifierNode:
		return &Variable{Name: n.Value}, nil

	case *ast.UnaryNode:
		if n.Operator != "-" {
			return nil, &UnsupportedError{Construct: fmt.Sprintf("unary operator %q", n.Operator)}
		}
		operand, err := translate(n.Node)
		if err != nil {
			return nil, err
		}
		return &Unary{Op: OpNeg, Operand: operand}, nil

	case *ast.BinaryNode:
		op, ok := binaryOps[n.Operator]
		if !ok {
			return nil, &UnsupportedError{Construct: fmt.Sprintf("binary operator %q", n.Operator)}
		}
		left, err := translate(n.Left)
		if err != nil {
			return nil, err
		}
		right, err := translate(n.Right)
		if err != nil {
			return nil, err
		}
		return &Binary{Op: op, Left: left, Right: right}, nil

	case *ast.CallNode:
		return nil, &UnsupportedError{Construct: "function call"}
	case *ast.BuiltinNode:
		return nil, &UnsupportedError{Construct: fmt.Sprintf("builtin function %q", n.Name)}
	case *ast.MemberNode:
		return nil, &UnsupportedError{Construct: "member access"}
	case *ast.ChainNode:
		return nil, &UnsupportedError{Construct: "optional chaining"}
	case *ast.SliceNode:
		return nil, &UnsupportedError{Construct: "slice"}
	case *ast.ConditionalNode:
		return nil, &UnsupportedError{Construct: "conditional"}
	case *ast.VariableDeclaratorNode:
		return nil, &UnsupportedError{Construct: "variable declaration"}
	case *ast.ClosureNode:
		return nil, &UnsupportedError{Construct: "closure"}
	case *ast.PointerNode:
		return nil, &UnsupportedError{Construct: "closure pointer"}
	case *ast.BoolNode:
		return nil, &UnsupportedError{Construct: "boolean literal"}
	case *ast.StringNode:
		return nil, &UnsupportedError{Construct: "string literal"}
	case *ast.NilNode:
		return nil, &UnsupportedError{Construct: "nil literal"}
	case *ast.ArrayNode:
		return nil, &UnsupportedError{Construct: "array literal"}
	case *ast.MapNode:
		return nil, &UnsupportedError{Construct: "map literal"}

	default:
		return nil, &UnsupportedError{Construct: fmt.Sprintf("%T", n)}
	}
}
