package entity

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedFieldShape is returned when a field holds a value of the wrong category,
	// e.g. a string where a Gain field expects a number.
	ErrMalformedFieldShape = errors.New("malformed field shape")

	// ErrMissingBaseEntity is returned when a consolidated entry has no base entity
	// registered under the name it replaces.
	ErrMissingBaseEntity = errors.New("missing base entity")
)

// FieldError describes a malformed field on a named entity.
type FieldError struct {
	Entity string
	Field  string
	Want   string
	Got    any
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: field %q of %q: want %s, got %T", ErrMalformedFieldShape, e.Field, e.Entity, e.Want, e.Got)
}

func (e *FieldError) Unwrap() error {
	return ErrMalformedFieldShape
}

// EntityError attaches the entity kind and name to an error raised while merging it.
type EntityError struct {
	Kind Kind
	Name string
	Err  error
}

func (e *EntityError) Error() string {
	return fmt.Sprintf("%s %q: %v", e.Kind, e.Name, e.Err)
}

func (e *EntityError) Unwrap() error {
	return e.Err
}
