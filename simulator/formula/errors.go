package formula

import "fmt"

// SyntaxError reports input that is not parseable as an expression at all.
type SyntaxError struct {
	Message string
}

func (e *SyntaxError) Error() string {
	return "syntax error: " + e.Message
}

// UnsupportedError reports input that parses but uses a construct outside
// the allowed arithmetic subset (calls, member access, comparisons, boolean
// logic, string literals, and so on). The Construct field names the offender.
type UnsupportedError struct {
	Construct string
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("unsupported construct: %s", e.Construct)
}

// UnknownVariableError reports a variable reference with no binding.
type UnknownVariableError struct {
	Name string
}

func (e *UnknownVariableError) Error() string {
	return fmt.Sprintf("unknown variable: %s", e.Name)
}
