package order

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedCondition is returned when a Condition's variant does not match its Type.
	ErrMalformedCondition = errors.New("order: malformed condition")

	// ErrUnknownConditionType is returned for condition type codes or names outside the closed set.
	ErrUnknownConditionType = errors.New("order: unknown condition type")

	// ErrChainLength is returned when a truth vector does not line up with a condition chain.
	ErrChainLength = errors.New("order: condition chain length mismatch")
)

// ParseError reports a string that could not be read as the requested kind
// of value. It is never retriable.
type ParseError struct {
	Input string // offending text
	Kind  string // "double", "integer", "bool", "trigger method", ...
	Err   error
}

func (e *ParseError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("order: parse %s %q", e.Kind, e.Input)
	}
	return fmt.Sprintf("order: parse %s %q: %v", e.Kind, e.Input, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// DecodeError reports a persisted record that could not be coerced into
// its declared shape.
type DecodeError struct {
	Format string // "json", "yaml", "fields"
	Err    error
}

func (e *DecodeError) Error() string {
	return "order: decode " + e.Format + ": " + e.Err.Error()
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

func newDecodeError(format string, err error) error {
	var de *DecodeError
	if errors.As(err, &de) {
		return err
	}
	return &DecodeError{Format: format, Err: err}
}
