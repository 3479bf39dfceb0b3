// Package errors centralizes the error taxonomy shared by the CAD parser,
// classifier, and placement engine. Every boundary in cadtool converts its
// failure into an *AppError carrying one of the ErrorCode values below so
// callers can switch on Code instead of matching strings.
package errors

import (
	"errors"
	"fmt"
)

// ErrorCode identifies a family of failure within the core pipeline.
type ErrorCode string

const (
	// Parser errors: malformed or unsupported input formats.
	CodeEmptyEntities    ErrorCode = "PARSE_EMPTY_ENTITIES"
	CodeTruncated        ErrorCode = "PARSE_TRUNCATED"
	CodeUnsupportedInput ErrorCode = "PARSE_UNSUPPORTED_FORMAT"

	// Classifier errors: a drawing that parses but carries no usable geometry.
	CodeNoGeometry      ErrorCode = "CLASSIFY_NO_GEOMETRY"
	CodeNoWalls         ErrorCode = "CLASSIFY_NO_WALLS"
	CodeDegenerateBounds ErrorCode = "CLASSIFY_DEGENERATE_BOUNDS"

	// Placement errors: the search could not return a usable layout.
	CodeInfeasible ErrorCode = "PLACE_INFEASIBLE"
	CodeCancelled  ErrorCode = "PLACE_CANCELLED"
	CodeTimeout    ErrorCode = "PLACE_TIMEOUT"

	// Internal invariant violations; floorplan.Validate also reports
	// rejected Settings under this code.
	CodeInternal ErrorCode = "INTERNAL_INVARIANT_VIOLATION"
)

// AppError is a typed, context-carrying error. It wraps an optional
// underlying cause and a Details map the caller can render alongside
// Message (e.g. which entity id, which section, which îlot id).
type AppError struct {
	Code    ErrorCode              `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
	Err     error                  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap exposes the wrapped cause to errors.Is/errors.As.
func (e *AppError) Unwrap() error { return e.Err }

// New creates an AppError with no wrapped cause.
func New(code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message, Details: map[string]interface{}{}}
}

// Wrap creates an AppError around an existing error.
func Wrap(code ErrorCode, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err, Details: map[string]interface{}{}}
}

// WithDetail attaches a caller-renderable detail and returns e for chaining.
func (e *AppError) WithDetail(key string, value interface{}) *AppError {
	if e.Details == nil {
		e.Details = map[string]interface{}{}
	}
	e.Details[key] = value
	return e
}

// Is reports whether target is an *AppError with the same Code, enabling
// errors.Is(err, errors.New(CodeInfeasible, "")) style checks.
func (e *AppError) Is(target error) bool {
	var other *AppError
	if errors.As(target, &other) {
		return other.Code == e.Code
	}
	return false
}

// CodeOf extracts the ErrorCode from err if it is (or wraps) an *AppError.
func CodeOf(err error) (ErrorCode, bool) {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae.Code, true
	}
	return "", false
}
