// Package errors defines the coded error type shared across the module.
//
// An AppError carries a Code so callers can distinguish retryable store
// failures from terminal cryptographic ones without string matching.
package errors

import (
	stderrors "errors"
	"fmt"
)

// AppError is the error type returned by services and stores.
type AppError struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
	Cause   error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Cause }

// New returns an AppError with the given code and message.
func New(code Code, message string) error {
	return &AppError{Code: code, Message: message}
}

// Wrap returns an AppError with code and message wrapping cause.
func Wrap(code Code, message string, cause error) error {
	return &AppError{Code: code, Message: message, Cause: cause}
}

// Constructors

// Unavailable reports a store that could not be reached.
func Unavailable(msg string, cause error) error { return Wrap(CodeUnavailable, msg, cause) }

// Corrupted reports persisted bytes that cannot be imported.
func Corrupted(msg string, cause error) error { return Wrap(CodeCorrupted, msg, cause) }

// NotFound reports an expected absence.
func NotFound(msg string) error { return New(CodeNotFound, msg) }

// Conflict reports a write that lost to an existing record.
func Conflict(msg string) error { return New(CodeConflict, msg) }

// Decryption reports a failed authenticated decryption.
func Decryption(msg string, cause error) error { return Wrap(CodeDecryption, msg, cause) }

// MACMismatch reports a plaintext MAC that failed verification.
func MACMismatch(msg string) error { return New(CodeMACMismatch, msg) }

// Internal reports an unclassified failure.
func Internal(msg string, cause error) error { return Wrap(CodeInternal, msg, cause) }

// HasCode reports whether err or any error in its chain carries code.
func HasCode(err error, code Code) bool {
	var ae *AppError
	if stderrors.As(err, &ae) {
		return ae.Code == code
	}
	return false
}
