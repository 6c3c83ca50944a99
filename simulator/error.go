package simulator

import (
	"errors"
	"fmt"
	"net/http"

	"ranksim/simulator/formula"
)

// ErrorCode identifies the known simulation error codes surfaced to clients.
type ErrorCode string

const (
	// Formula errors: user input problems, never retried.
	CodeSyntaxError          ErrorCode = "SYNTAX_ERROR"
	CodeUnsupportedConstruct ErrorCode = "UNSUPPORTED_CONSTRUCT"
	CodeUnknownVariable      ErrorCode = "UNKNOWN_VARIABLE"

	// Request/data errors.
	CodeEmptySelection ErrorCode = "EMPTY_SELECTION"
	CodeInvalidRequest ErrorCode = "INVALID_REQUEST"
	CodeCatalogError   ErrorCode = "CATALOG_ERROR"
)

// SimulationError is the canonical error type for a failed simulation.
// It is JSON-serializable so handlers can return it as the response body.
type SimulationError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	// Formula is "a" or "b" when a specific formula caused the failure.
	Formula string `json:"formula,omitempty"`

	cause error
}

func (e *SimulationError) Error() string {
	if e.Formula != "" {
		return fmt.Sprintf("[%s] %s (formula: %s)", e.Code, e.Message, e.Formula)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *SimulationError) Unwrap() error {
	return e.cause
}

// Status maps the error code to an HTTP status. Formula and selection
// errors are the client's to fix; only catalog failures are server-side.
func (e *SimulationError) Status() int {
	switch e.Code {
	case CodeCatalogError:
		return http.StatusInternalServerError
	default:
		return http.StatusUnprocessableEntity
	}
}

// newFormulaError classifies a formula package error for the response
// taxonomy, tagging it with which formula (a or b) failed.
func newFormulaError(which string, err error) *SimulationError {
	code := CodeSyntaxError

	var unsupported *formula.UnsupportedError
	var unknown *formula.UnknownVariableError
	switch {
	case errors.As(err, &unsupported):
		code = CodeUnsupportedConstruct
	case errors.As(err, &unknown):
		code = CodeUnknownVariable
	}

	return &SimulationError{
		Code:    code,
		Message: err.Error(),
		Formula: which,
		cause:   err,
	}
}

func newCatalogError(err error) *SimulationError {
	return &SimulationError{
		Code:    CodeCatalogError,
		Message: err.Error(),
		cause:   err,
	}
}
