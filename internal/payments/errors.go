package payments

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by this package matches exactly one of
// these with errors.Is.
var (
	ErrTypeMismatch    = errors.New("type mismatch")
	ErrDateParse       = errors.New("date parse error")
	ErrInvalidPayments = errors.New("invalid payments")
)

// TypeMismatchError reports a raw value with no conversion into the amount
// or date domain.
type TypeMismatchError struct {
	Expected string // "amount", "date" or "pair"
	Type     string
	Value    any
}

func (e *TypeMismatchError) Error() string {
	if e.Value == nil {
		return fmt.Sprintf("cannot convert %s to %s", e.Type, e.Expected)
	}
	return fmt.Sprintf("cannot convert %s %v to %s", e.Type, e.Value, e.Expected)
}

func (e *TypeMismatchError) Unwrap() error { return ErrTypeMismatch }

// DateParseError reports a string that matched none of the accepted layouts.
type DateParseError struct {
	Input string
}

func (e *DateParseError) Error() string {
	return fmt.Sprintf("unable to parse date %q: expected YYYY-MM-DD, MM/DD/YYYY or YYYY-MM-DDTHH:MM:SS.ffffff", e.Input)
}

func (e *DateParseError) Unwrap() error { return ErrDateParse }

// InvalidPaymentsError reports a well-typed schedule that violates a domain
// invariant.
type InvalidPaymentsError struct {
	Reason string
}

func (e *InvalidPaymentsError) Error() string {
	return "invalid payments: " + e.Reason
}

func (e *InvalidPaymentsError) Unwrap() error { return ErrInvalidPayments }

func mismatch(expected string, v any) error {
	return &TypeMismatchError{Expected: expected, Type: typeName(v), Value: v}
}

func invalid(format string, args ...any) error {
	return &InvalidPaymentsError{Reason: fmt.Sprintf(format, args...)}
}

func typeName(v any) string {
	if v == nil {
		return "nil"
	}
	return fmt.Sprintf("%T", v)
}
