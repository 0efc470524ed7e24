// Package binder converts URL query parameters into typed query model structs.
//
// A query model is a struct that embeds binder.Model. Each exported field is
// bound from the query parameter named by its `query` tag (or, without a tag,
// by the field name in lower camel case). Lookup is case-insensitive.
//
// # Basic Usage
//
//	type ListQuery struct {
//	    binder.Model
//	    Page        int       `query:"page" default:"0"`
//	    PageSize    int       `query:"pageSize" default:"20"`
//	    Search      *string   `query:"search"`
//	    SortBy      *string   `query:"sort"`
//	    IsAscending bool      `query:"isAscending" default:"true"`
//	    Status      []Status  `query:"status"`
//	}
//
//	q, err := binder.Bind[ListQuery](r.URL.Query())
//	var bindErr *binder.BindingError
//	if errors.As(err, &bindErr) {
//	    // bindErr.Fields maps parameter names to messages
//	}
//
// TryBind returns the record, the per-field errors and a success flag instead
// of an error, leaving the decision to the caller. It panics when the type
// itself cannot be bound.
//
// # Binding Rules
//
// Absent or blank parameters leave the field at its `default` tag value, or
// at its zero value when there is none. A parameter that fails to convert is
// reported in FieldErrors and its field is left at the zero value; binding
// continues with the remaining fields.
//
// Slice and array fields accept comma-separated values and repeated keys.
// Parts are trimmed and empty parts dropped; the first invalid element fails
// the field.
//
// # Types
//
// Built-in conversions cover strings, booleans ("true"/"false"), integers,
// floats, decimal.Decimal, uuid.UUID, time.Time (RFC 3339), time.Duration,
// civil.Date (YYYY-MM-DD) and civil.Time (HH:MM:SS or HH:MM). Enumerations are
// registered with WithEnum or RegisterEnum and match case-insensitively.
// Other types need a converter (WithConverter, RegisterConverter) or an
// encoding.TextUnmarshaler implementation; fields of any other type are
// skipped with a warning, or rejected with WithStrictShapes.
//
// # Errors
//
//   - ErrNotBindableType: the struct does not embed binder.Model
//   - ErrUnsupportedShape: a field type is unsupported (WithStrictShapes only)
//   - ErrNameCollision: two fields bind the same parameter name
//   - ErrInvalidDefault: a `default` tag does not convert to the field type
//   - ErrFailedToParseQuery: matched by every *BindingError
//
// Field descriptors are resolved once per type and cached; a Binder is safe
// for concurrent use.
package binder
