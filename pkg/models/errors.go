package models

import (
	"errors"
	"fmt"
)

// ErrFieldCount is wrapped by ParseError when a record has the wrong number
// of fields for its tag.
var ErrFieldCount = errors.New("models: wrong field count")

// ParseError reports a record field that could not be converted.
type ParseError struct {
	Field string
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("models: invalid %s %q: %v", e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

func fieldCountError(tag Tag, want int, fields []string) error {
	return &ParseError{
		Field: tag.String(),
		Value: fmt.Sprint(len(fields)),
		Err:   fmt.Errorf("%w: expected %d", ErrFieldCount, want),
	}
}
