package query

import (
	"errors"
	"fmt"
)

// UnexpectedValueError wraps a non-error value recovered from a producer
// panic. Error values recovered from panics and errors returned by producers
// pass through unchanged.
type UnexpectedValueError struct {
	Value any
}

func (e *UnexpectedValueError) Error() string {
	return fmt.Sprintf("unexpected error: %v", e.Value)
}

// AsUnexpected reports whether err is (or wraps) an UnexpectedValueError.
func AsUnexpected(err error) (*UnexpectedValueError, bool) {
	var uve *UnexpectedValueError
	if errors.As(err, &uve) {
		return uve, true
	}
	return nil, false
}

// normalizeRecovered converts a recovered panic value into the published
// error representation.
func normalizeRecovered(r any) error {
	if err, ok := r.(error); ok {
		return err
	}
	return &UnexpectedValueError{Value: r}
}

// ValueAs performs a typed read of an untyped cache value.
func ValueAs[T any](value any) (T, error) {
	if value == nil {
		var zero T
		return zero, nil
	}

	typed, ok := value.(T)
	if !ok {
		var zero T
		return zero, fmt.Errorf("type assertion error: expected %T, got %T (value: %v)", zero, value, value)
	}

	return typed, nil
}
