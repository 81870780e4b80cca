// Package errors provides structured error handling with typed error codes.
//
// Error codes are organized into categories:
//   - General errors (1-99): Unknown and general errors
//   - Validation errors (100-199): Invalid parameters, periods, operands and configuration
//   - Data errors (200-299): Bar loading, querying and persistence failures
//   - Indicator errors (300-399): Unsupported indicators and key generation
//   - Strategy errors (400-499): Strategy file loading and validation
//   - Execution errors (500-599): Position lifecycle and fills
//   - Backtest errors (600-699): Engine state, run setup and accounting invariants
//
// Usage:
//
//	err := errors.New(errors.ErrCodeInvalidParameter, "invalid parameter value")
//	err := errors.Newf(errors.ErrCodeDataNotFound, "no bars for code %s", code)
//	err := errors.Wrap(errors.ErrCodeQueryFailed, "failed to execute query", originalErr)
//
//	if errors.HasCode(err, errors.ErrCodeInvariantViolation) { ... }
package errors

import (
	"errors"
	"fmt"
	"time"
)

// Error represents a structured error with an error code and message.
type Error struct {
	Code    ErrorCode
	Message string
	Cause   error
}

// New creates a new Error with the given code and message.
func New(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Cause:   nil,
	}
}

// Newf creates a new Error with the given code and formatted message.
func Newf(code ErrorCode, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   nil,
	}
}

// Wrap wraps an existing error with a new Error containing the given code and message.
func Wrap(code ErrorCode, message string, cause error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// Wrapf wraps an existing error with a new Error containing the given code and formatted message.
func Wrapf(code ErrorCode, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%d] %s: %v", e.Code, e.Message, e.Cause)
	}

	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// GetCode extracts the ErrorCode from an error if it's an *Error type.
// Returns ErrCodeUnknown if the error is not an *Error type.
func GetCode(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}

	return ErrCodeUnknown
}

// HasCode checks if an error has a specific ErrorCode.
func HasCode(err error, code ErrorCode) bool {
	return GetCode(err) == code
}

// InvariantViolationError reports a bar at which cash plus marked positions
// no longer matches the equity implied by the realized and unrealized PnL.
// A run that produces one must stop.
type InvariantViolationError struct {
	Date      time.Time
	Cash      float64
	Marked    float64 // cash + market value of open positions
	Expected  float64 // initial capital + net realized + unrealized pnl
	Tolerance float64
}

// Error implements the error interface.
func (e *InvariantViolationError) Error() string {
	return fmt.Sprintf("equity invariant violated at %s: cash=%.4f marked=%.4f expected=%.4f (tolerance %.4f)",
		e.Date.Format(time.RFC3339), e.Cash, e.Marked, e.Expected, e.Tolerance)
}

// Diff returns the absolute mismatch between the marked and the expected equity.
func (e *InvariantViolationError) Diff() float64 {
	d := e.Marked - e.Expected
	if d < 0 {
		return -d
	}

	return d
}

// IsInvariantViolation checks if an error chain carries an InvariantViolationError.
func IsInvariantViolation(err error) bool {
	var invariantErr *InvariantViolationError

	return errors.As(err, &invariantErr)
}
