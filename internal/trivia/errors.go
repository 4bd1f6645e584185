package trivia

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by stores when a record does not exist.
var ErrNotFound = errors.New("not found")

// ValidationError reports the first missing or malformed field of a request body.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing required field %q", e.Field)
}

// Lookup is the result of a read that treats an empty result as a missing resource.
type Lookup[T any] struct {
	Value T
	Found bool
}

// Found wraps a present value.
func Found[T any](v T) Lookup[T] {
	return Lookup[T]{Value: v, Found: true}
}

// NotFound reports a missing resource.
func NotFound[T any]() Lookup[T] {
	return Lookup[T]{}
}
