package compiler

import (
	"errors"
	"strings"

	"codec-generator/internal/diagnostic"
	"codec-generator/internal/resolve"
	"codec-generator/internal/wiretype"
)

// Compile errors. Every error returned by this package matches one of them
// with errors.Is.
var (
	ErrUnresolvedField      = errors.New("unresolved field")
	ErrUnresolvedWireType   = resolve.ErrUnresolvedWireType
	ErrArityMismatch        = resolve.ErrArityMismatch
	ErrDuplicateFieldID     = errors.New("duplicate field id")
	ErrDuplicateEnumValue   = errors.New("duplicate enum value")
	ErrDuplicateName        = errors.New("duplicate name")
	ErrDuplicateComponentID = errors.New("duplicate component id")
	ErrReservedFieldID      = errors.New("reserved field id")
	ErrInvalidMapKey        = wiretype.ErrInvalidMapKey
	ErrRecursiveValue       = errors.New("entity contains itself by value")
	ErrInvalidSchema        = errors.New("invalid schema")
)

// codes maps each sentinel to its diagnostic code.
var codes = []struct {
	err  error
	code string
}{
	{ErrUnresolvedField, "unresolved_field"},
	{resolve.ErrUnsupportedMarker, "unsupported_marker"},
	{ErrUnresolvedWireType, "unresolved_wire_type"},
	{ErrArityMismatch, "arity_mismatch"},
	{ErrDuplicateFieldID, "duplicate_field_id"},
	{ErrDuplicateEnumValue, "duplicate_enum_value"},
	{ErrDuplicateName, "duplicate_name"},
	{ErrDuplicateComponentID, "duplicate_component_id"},
	{ErrReservedFieldID, "reserved_field_id"},
	{ErrInvalidMapKey, "invalid_map_key"},
	{ErrRecursiveValue, "recursive_value"},
	{ErrInvalidSchema, "invalid_schema"},
}

// Error is a compile failure located at an entity (or enum) and field (or
// variant).
type Error struct {
	// Code is one of the package sentinel errors.
	Code   error
	Entity string
	Field  string
	Detail string
	// Cause is the underlying error, if any.
	Cause       error
	Suggestions []string
}

func (e *Error) Error() string {
	if e.Entity == "" {
		return e.message()
	}

	loc := e.Entity
	if e.Field != "" {
		loc += "." + e.Field
	}

	return loc + ": " + e.message()
}

// message is the error text without its location.
func (e *Error) message() string {
	var b strings.Builder

	switch {
	case e.Cause != nil:
		b.WriteString(e.Cause.Error())
	case e.Detail != "":
		b.WriteString(e.Code.Error() + ": " + e.Detail)
	default:
		b.WriteString(e.Code.Error())
	}

	if e.Cause != nil && e.Detail != "" {
		b.WriteString(" (" + e.Detail + ")")
	}

	if len(e.Suggestions) > 0 {
		b.WriteString(" (did you mean " + strings.Join(e.Suggestions, ", ") + "?)")
	}

	return b.String()
}

func (e *Error) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Code}
	}

	return []error{e.Code, e.Cause}
}

// DiagnosticCode returns the stable code of the error, for diagnostics.
func (e *Error) DiagnosticCode() string {
	for _, c := range codes {
		if errors.Is(e, c.err) {
			return c.code
		}
	}

	return "compile_error"
}

// Failure is returned by Compile when any descriptor fails. It carries every
// error found, as diagnostics and as a joined error.
type Failure struct {
	Diagnostics diagnostic.Diagnostics
	Err         error
}

func (f *Failure) Error() string {
	return f.Err.Error()
}

func (f *Failure) Unwrap() error {
	return f.Err
}

// collectErrors flattens joined errors into their *Error parts.
func collectErrors(err error) []*Error {
	if err == nil {
		return nil
	}

	if ce, ok := err.(*Error); ok {
		return []*Error{ce}
	}

	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		var out []*Error
		for _, e := range joined.Unwrap() {
			out = append(out, collectErrors(e)...)
		}

		return out
	}

	return []*Error{{Code: ErrInvalidSchema, Cause: err}}
}

func newFailure(errs []*Error, extra diagnostic.Diagnostics) *Failure {
	f := &Failure{}
	f.Diagnostics.Merge(extra)

	joined := make([]error, 0, len(errs))
	for _, e := range errs {
		f.Diagnostics.AddError(e.DiagnosticCode(), e.message(), e.Entity, e.Field)
		joined = append(joined, e)
	}

	f.Err = errors.Join(joined...)
	if f.Err == nil {
		f.Err = f.Diagnostics.Error()
	}

	return f
}
