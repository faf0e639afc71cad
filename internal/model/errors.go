package model

import (
	"errors"
	"fmt"
)

var (
	ErrOrderNotFound = errors.New("order not found")

	// ErrVersionConflict is returned by CompareAndSwap when another writer
	// got there first. Callers re-read and retry.
	ErrVersionConflict = errors.New("order was modified concurrently")
)

// Validation error codes.
const (
	CodeEmptyLines       = "EMPTY_LINES"
	CodeInvalidSKU       = "INVALID_SKU"
	CodeInvalidQuantity  = "INVALID_QUANTITY"
	CodeMissingPaymentID = "MISSING_PAYMENT_ID"
	CodeInvalidState     = "INVALID_STATE"
)

// ValidationError is bad client input. Handlers map it to HTTP 400; it is
// never retried.
type ValidationError struct {
	Code    string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(code, format string, args ...any) *ValidationError {
	return &ValidationError{Code: code, Message: fmt.Sprintf(format, args...)}
}
