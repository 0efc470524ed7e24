package binder

import (
	"fmt"
	"net/http"
)

// Query creates a query parameter binder function backed by the default binder.
//
// It supports struct tags for parameter names and defaults:
//   - `query:"name"` - binds to query parameter "name" (matched case-insensitively)
//   - `query:"-"` - skips the field
//   - `query:"name,omitempty"` - same as query:"name" for parsing
//   - `default:"20"` - value used when the parameter is absent or blank
//
// Supported types:
//   - string, bool, signed and unsigned integers, float32, float64
//   - decimal.Decimal, uuid.UUID, time.Time, time.Duration, civil.Date, civil.Time
//   - registered enumerations and converters, encoding.TextUnmarshaler
//   - slices and arrays of the above (?tags=go&tags=web or ?tags=go,web)
//   - pointers for optional fields
//
// The target struct must embed binder.Model. Conversion failures are collected
// for all fields and returned together as a *BindingError.
//
// Example:
//
//	type SearchRequest struct {
//		binder.Model
//		Query    string   `query:"q"`
//		Page     int      `query:"page" default:"1"`
//		PageSize int      `query:"page_size" default:"20"`
//		Tags     []string `query:"tags"`
//		Active   *bool    `query:"active"`   // Optional
//		Internal string   `query:"-"`        // Skipped
//	}
//
//	http.HandleFunc("/search", handler.Wrap(search,
//		handler.WithBinder[SearchRequest](binder.Query()),
//	))
func Query() func(r *http.Request, v any) error {
	return defaultBinder.Query()
}

// Query creates a query parameter binder function backed by b.
func (b *Binder) Query() func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		errs, err := b.BindValues(r.URL.Query(), v)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrFailedToParseQuery, err)
		}
		if !errs.IsEmpty() {
			return newBindingError(errs)
		}
		return nil
	}
}
