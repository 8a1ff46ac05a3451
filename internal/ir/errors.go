package ir

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes store and query errors.
type ErrorCode string

const (
	// ErrCodeValidation indicates malformed input: an invalid record, an
	// empty table name, or a query built from no predicates.
	ErrCodeValidation ErrorCode = "VALIDATION"

	// ErrCodeComparison indicates an ordering predicate was evaluated
	// against an absent attribute or values of incompatible kinds.
	ErrCodeComparison ErrorCode = "COMPARISON"
)

// Error is the structured error returned by the store, predicates and the
// query executor. Callers classify it with IsValidationError and
// IsComparisonError, which see through wrapping.
type Error struct {
	// Code identifies the error category.
	Code ErrorCode

	// Message is a human-readable description.
	Message string

	// Attr is the attribute involved, if any.
	Attr string

	// Table is the table involved, if any.
	Table string
}

// Error implements the error interface.
func (e *Error) Error() string {
	switch {
	case e.Table != "" && e.Attr != "":
		return fmt.Sprintf("%s: %s (table=%s, attr=%s)", e.Code, e.Message, e.Table, e.Attr)
	case e.Table != "":
		return fmt.Sprintf("%s: %s (table=%s)", e.Code, e.Message, e.Table)
	case e.Attr != "":
		return fmt.Sprintf("%s: %s (attr=%s)", e.Code, e.Message, e.Attr)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewValidationError creates an Error with ErrCodeValidation.
func NewValidationError(message string) *Error {
	return &Error{Code: ErrCodeValidation, Message: message}
}

// NewComparisonError creates an Error with ErrCodeComparison for attr.
func NewComparisonError(attr, message string) *Error {
	return &Error{Code: ErrCodeComparison, Message: message, Attr: attr}
}

// WithAttr returns a copy of e tagged with attr.
func (e *Error) WithAttr(attr string) *Error {
	cp := *e
	cp.Attr = attr
	return &cp
}

// WithTable returns a copy of e tagged with table.
func (e *Error) WithTable(table string) *Error {
	cp := *e
	cp.Table = table
	return &cp
}

// IsValidationError returns true if err is, or wraps, a validation error.
func IsValidationError(err error) bool {
	return hasCode(err, ErrCodeValidation)
}

// IsComparisonError returns true if err is, or wraps, a comparison error.
func IsComparisonError(err error) bool {
	return hasCode(err, ErrCodeComparison)
}

func hasCode(err error, code ErrorCode) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

func typeName(v any) string {
	return fmt.Sprintf("%T", v)
}
