package logger

import "log/slog"

// Group creates a slog group attribute from the provided attributes.
func Group(name string, attrs ...slog.Attr) slog.Attr {
	return slog.Attr{Key: name, Value: slog.GroupValue(attrs...)}
}

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// RequestID records the request identifier under the key "request_id".
// An empty id yields an empty Attr.
func RequestID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("request_id", id)
}

// Component records the component name under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Type records a Go type name under the key "type".
func Type(name string) slog.Attr {
	return slog.String("type", name)
}

// Field records a struct field or parameter name under the key "field".
func Field(name string) slog.Attr {
	return slog.String("field", name)
}

// Reason records why something was skipped or rejected under the key "reason".
func Reason(reason string) slog.Attr {
	return slog.String("reason", reason)
}

// FieldErrors groups per-field messages under the key "fields".
func FieldErrors(errs map[string]string) slog.Attr {
	if len(errs) == 0 {
		return slog.Attr{}
	}
	attrs := make([]slog.Attr, 0, len(errs))
	for field, msg := range errs {
		attrs = append(attrs, slog.String(field, msg))
	}
	return Group("fields", attrs...)
}
