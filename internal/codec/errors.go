package codec

import (
	"errors"
	"fmt"

	"codec-generator/wire"
)

// Codec errors.
var (
	ErrUnknownEntity     = errors.New("unknown entity")
	ErrUnknownEnum       = errors.New("unknown enum")
	ErrUnknownField      = errors.New("unknown field")
	ErrMissingField      = errors.New("missing field")
	ErrTypeMismatch      = errors.New("type mismatch")
	ErrNotComponent      = errors.New("entity is not a component")
	ErrComponentMismatch = wire.ErrComponentMismatch
)

// FieldError locates a failure at an entity field.
type FieldError struct {
	Entity string
	Field  string
	Err    error
}

func (e *FieldError) Error() string {
	return e.Entity + "." + e.Field + ": " + e.Err.Error()
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

func mismatch(want string, got any) error {
	return fmt.Errorf("%w: want %s, got %T", ErrTypeMismatch, want, got)
}
