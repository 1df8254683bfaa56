// Package apierror provides the error taxonomy for the settlement core and
// the standardized error response structures for the API. All errors returned
// to clients go through this package to ensure consistency and to prevent
// leaking internal details (stack traces, DB errors, etc.).
package apierror

import (
	"errors"
	"net/http"
)

// Kind classifies an application error for HTTP mapping and for callers that
// need to branch on failure cause without string matching.
type Kind int

const (
	KindInternal Kind = iota
	KindInvalidInput
	KindNotFound
	KindConflict
	KindAmountMismatch
	KindInvalidState
)

// Error is the typed application error carried through the service layer.
type Error struct {
	Kind   Kind
	Detail string
}

func (e *Error) Error() string { return e.Detail }

func Invalid(detail string) *Error        { return &Error{Kind: KindInvalidInput, Detail: detail} }
func NotFound(detail string) *Error       { return &Error{Kind: KindNotFound, Detail: detail} }
func Conflict(detail string) *Error       { return &Error{Kind: KindConflict, Detail: detail} }
func AmountMismatch(detail string) *Error { return &Error{Kind: KindAmountMismatch, Detail: detail} }
func InvalidState(detail string) *Error   { return &Error{Kind: KindInvalidState, Detail: detail} }

// KindOf extracts the Kind from any error; non-apierror values map to KindInternal.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindInternal
}

// Status maps an error to its HTTP status code.
func Status(err error) int {
	switch KindOf(err) {
	case KindInvalidInput:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindAmountMismatch:
		return http.StatusUnprocessableEntity
	case KindInvalidState:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// APIError is the canonical error envelope for all 4xx/5xx HTTP responses.
type APIError struct {
	Detail string `json:"detail"`
}

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

// ValidationError wraps multiple field errors.
type ValidationError struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Detail: "Error de validacion", Fields: fields}
}
