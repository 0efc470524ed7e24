package binder

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// Common binding errors
var (
	ErrFailedToParseQuery = errors.New("failed to parse query parameters")
	ErrInvalidTarget      = errors.New("invalid binding target")

	// Type-level errors. They abort a bind before any field is processed.
	ErrNotBindableType  = errors.New("type is not a bindable query model")
	ErrUnsupportedShape = errors.New("unsupported field type")
	ErrNameCollision    = errors.New("query parameter name collision")
	ErrInvalidDefault   = errors.New("invalid default value")
)

// ConversionError reports a raw value that could not be converted to the
// declared type of a field or sequence element.
type ConversionError struct {
	Field   string // external name; empty when the error comes from Convert
	Value   string
	Message string
}

func (e *ConversionError) Error() string {
	if e.Field == "" {
		return e.Reason()
	}
	return fmt.Sprintf("field %s: %s", e.Field, e.Reason())
}

// Reason returns the message without the field prefix.
// It is what ends up in FieldErrors.
func (e *ConversionError) Reason() string {
	return fmt.Sprintf("%s, got %q", e.Message, e.Value)
}

// FieldErrors maps external parameter names to a human-readable error message.
// It holds at most one message per parameter.
type FieldErrors map[string]string

// Error implements the error interface.
// Fields are listed in sorted order so the message is stable.
func (e FieldErrors) Error() string {
	if len(e) == 0 {
		return "validation failed"
	}

	parts := make([]string, 0, len(e))
	for _, field := range e.Fields() {
		parts = append(parts, fmt.Sprintf("%s: %s", field, e[field]))
	}
	return "validation error: " + strings.Join(parts, ", ")
}

// Add records a message for a field. The first message for a field wins.
func (e FieldErrors) Add(field, message string) {
	if _, exists := e[field]; exists {
		return
	}
	e[field] = message
}

func (e FieldErrors) Get(field string) string {
	return e[field]
}

func (e FieldErrors) Has(field string) bool {
	_, ok := e[field]
	return ok
}

func (e FieldErrors) IsEmpty() bool {
	return len(e) == 0
}

// Fields returns the names of failed fields in sorted order.
func (e FieldErrors) Fields() []string {
	fields := make([]string, 0, len(e))
	for field := range e {
		fields = append(fields, field)
	}
	slices.Sort(fields)
	return fields
}

// Values converts the errors to the url.Values-style shape used by
// validation responses.
func (e FieldErrors) Values() map[string][]string {
	out := make(map[string][]string, len(e))
	for field, msg := range e {
		out[field] = []string{msg}
	}
	return out
}

// BindingError is returned by the strict entry points when at least one field
// failed to convert. The partially bound record is still returned alongside it.
type BindingError struct {
	Message string
	Fields  FieldErrors
}

func newBindingError(fields FieldErrors) *BindingError {
	return &BindingError{
		Message: ErrFailedToParseQuery.Error(),
		Fields:  fields,
	}
}

func (e *BindingError) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Message, e.Fields.Error())
}

// Unwrap makes errors.Is(err, ErrFailedToParseQuery) report true.
func (e *BindingError) Unwrap() error {
	return ErrFailedToParseQuery
}
