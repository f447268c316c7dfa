package sbe

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by this package wraps exactly one of these,
// so callers can branch with errors.Is.
var (
	ErrMalformedEnum  = errors.New("malformed enum value")
	ErrOutOfBounds    = errors.New("truncated buffer")
	ErrOversizedField = errors.New("field exceeds fixed width")
	ErrInvalidText    = errors.New("field is not ASCII")
	ErrUnknownSchema  = errors.New("unrecognized schema")
	ErrMissingField   = errors.New("required field missing")
)

// FieldError attaches the message and field name to an error kind.
type FieldError struct {
	Message string // "order", "trade", "marketdata", "header", "levels"
	Field   string
	Err     error
}

func (e *FieldError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return fmt.Sprintf("%s.%s: %v", e.Message, e.Field, e.Err)
}

func (e *FieldError) Unwrap() error { return e.Err }

func fieldErr(msg, field string, err error) error {
	var fe *FieldError
	if errors.As(err, &fe) {
		return err
	}
	return &FieldError{Message: msg, Field: field, Err: err}
}

func outOfBounds(off, width, size int) error {
	return fmt.Errorf("%w: need %d bytes at offset %d, buffer has %d", ErrOutOfBounds, width, off, size)
}
