package common

import (
	"errors"
	"fmt"
)

// Pipeline error taxonomy. Extractor failures wrap one of these so callers
// can distinguish "we don't take this file" from "the file had nothing in it".
var (
	// ErrUnsupportedFormat: extension not in the dispatch table. Fatal,
	// no extractor is invoked.
	ErrUnsupportedFormat = errors.New("unsupported file format")
	// ErrEmptyInput: the source decoded to zero rows / zero text / zero
	// elements. Fatal per file.
	ErrEmptyInput = errors.New("no data found")
	// ErrNoTransactions: decoding succeeded but no heuristic matched
	// anything. Always the last-resort outcome of a fallback cascade.
	ErrNoTransactions = errors.New("no transaction data found")
)

// Service-level errors for the HTTP collaborators.
var (
	ErrNotFound     = errors.New("resource not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrUnauthorized = errors.New("unauthorized")
)

// AppError carries a stable code alongside a human-readable message.
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func NewAppError(code, message string, cause error) *AppError {
	return &AppError{Code: code, Message: message, Cause: cause}
}

func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
