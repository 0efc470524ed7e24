package binder

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
)

// splitParts splits every raw value on commas, trimming each part and
// dropping empty ones. Values of repeated keys (?tag=a&tag=b,c) are
// concatenated in order.
func splitParts(raws []string) []string {
	var parts []string
	for _, raw := range raws {
		for part := range strings.SplitSeq(raw, ",") {
			if part = strings.TrimSpace(part); part != "" {
				parts = append(parts, part)
			}
		}
	}
	return parts
}

// decodeSequence converts parts into the field's slice or array type.
// The first failing element fails the whole field.
func (b *Binder) decodeSequence(parts []string, f *Field) (reflect.Value, error) {
	elemType := f.Type.Elem()

	var seq reflect.Value
	switch f.Container {
	case ContainerArray:
		if n := f.Type.Len(); len(parts) > n {
			return reflect.Value{}, &ConversionError{
				Value:   strings.Join(parts, ","),
				Message: fmt.Sprintf("expected at most %d elements", n),
			}
		}
		seq = reflect.New(f.Type).Elem()
	default:
		seq = reflect.MakeSlice(f.Type, len(parts), len(parts))
	}

	for i, part := range parts {
		v, err := b.decode(part, elemType, f.Kind)
		if err != nil {
			var convErr *ConversionError
			if errors.As(err, &convErr) {
				return reflect.Value{}, &ConversionError{
					Value:   convErr.Value,
					Message: fmt.Sprintf("invalid element at index %d: %s", i, convErr.Message),
				}
			}
			return reflect.Value{}, err
		}
		seq.Index(i).Set(v)
	}

	return seq, nil
}
