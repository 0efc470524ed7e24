package binder

import (
	"errors"
	"fmt"
	"maps"
	"net/url"
	"reflect"
	"slices"
	"strings"

	"golang.org/x/text/cases"
)

// Bind binds values into a new T using the default binder.
//
// It returns a *BindingError carrying the per-field messages when any field
// failed; the returned record is still populated as far as possible. Type-level
// problems (ErrNotBindableType and friends) are returned as wrapped errors.
//
// Example:
//
//	type ListQuery struct {
//		binder.Model
//		Page     int     `query:"page" default:"1"`
//		PageSize int     `query:"page_size" default:"20"`
//		Search   *string `query:"q"`
//	}
//
//	q, err := binder.Bind[ListQuery](r.URL.Query())
func Bind[T any](values url.Values) (T, error) {
	return BindWith[T](defaultBinder, values)
}

// BindWith is Bind with an explicit binder.
func BindWith[T any](b *Binder, values url.Values) (T, error) {
	var v T
	errs, err := b.BindValues(values, &v)
	if err != nil {
		return v, err
	}
	if !errs.IsEmpty() {
		return v, newBindingError(errs)
	}
	return v, nil
}

// TryBind binds values into a new T and leaves the success decision to the
// caller: ok is true exactly when errs is empty, and errs only ever holds
// parameter names.
//
// A T that cannot be bound at all (ErrNotBindableType, ErrNameCollision,
// ErrInvalidDefault and the like) is a programming error, so TryBind panics
// with it, like regexp.MustCompile. Resolve the type at startup with FieldsOf
// or use Bind to get it as an error instead.
func TryBind[T any](values url.Values) (v T, errs FieldErrors, ok bool) {
	return TryBindWith[T](defaultBinder, values)
}

// TryBindWith is TryBind with an explicit binder.
func TryBindWith[T any](b *Binder, values url.Values) (v T, errs FieldErrors, ok bool) {
	errs, err := b.BindValues(values, &v)
	if err != nil {
		panic(fmt.Errorf("binder: TryBind[%T]: %w", v, err))
	}
	return v, errs, errs.IsEmpty()
}

// BindValues binds values into the struct dst points to.
//
// Every described field is written: with the converted input, with its
// default when the input is absent or blank, or with its zero value otherwise
// (including when conversion failed). Fields the binder does not own, such
// as `query:"-"` fields, are left untouched. The returned FieldErrors is never
// nil; the error is non-nil only for type-level problems.
func (b *Binder) BindValues(values url.Values, dst any) (FieldErrors, error) {
	rv := reflect.ValueOf(dst)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return nil, fmt.Errorf("%w: target must be a non-nil pointer", ErrInvalidTarget)
	}
	rv = rv.Elem()

	info := b.typeInfo(rv.Type())
	if info.err != nil {
		return nil, info.err
	}

	in := newLookup(values)
	errs := make(FieldErrors)

	for i := range info.fields {
		f := &info.fields[i]
		field := rv.FieldByIndex(f.index)

		v, present, err := b.bindField(f, in.get(f))
		switch {
		case err != nil:
			errs.Add(f.ExternalName, reason(err))
			field.SetZero()
		case present:
			field.Set(v)
		case f.HasDefault:
			// The default was validated when the type was resolved.
			dv, _, _ := b.bindField(f, []string{f.Default})
			field.Set(dv)
		default:
			field.SetZero()
		}
	}

	return errs, nil
}

// bindField converts the raw values of one field. present is false when no
// non-blank input was supplied. Conversion errors carry the external name.
func (b *Binder) bindField(f *Field, raws []string) (v reflect.Value, present bool, err error) {
	if f.Shape == ShapeSequence {
		parts := splitParts(raws)
		if len(parts) == 0 {
			return reflect.Value{}, false, nil
		}
		v, err = b.decodeSequence(parts, f)
	} else {
		raw, ok := firstNonBlank(raws)
		if !ok {
			return reflect.Value{}, false, nil
		}
		v, err = b.decode(raw, f.Type, f.Kind)
	}

	var convErr *ConversionError
	if errors.As(err, &convErr) {
		convErr.Field = f.ExternalName
	}
	return v, true, err
}

func firstNonBlank(raws []string) (string, bool) {
	for _, raw := range raws {
		if strings.TrimSpace(raw) != "" {
			return raw, true
		}
	}
	return "", false
}

func reason(err error) string {
	var convErr *ConversionError
	if errors.As(err, &convErr) {
		return convErr.Reason()
	}
	return err.Error()
}

// lookup resolves external names against the input case-insensitively.
// An exact key with a non-blank value wins; otherwise the values of every
// key with the same case fold are merged in sorted key order.
type lookup struct {
	exact  url.Values
	folded map[string][]string
}

func newLookup(values url.Values) lookup {
	c := cases.Fold()
	folded := make(map[string][]string, len(values))
	for _, key := range slices.Sorted(maps.Keys(values)) {
		fk := c.String(key)
		folded[fk] = append(folded[fk], values[key]...)
	}
	return lookup{exact: values, folded: folded}
}

func (l lookup) get(f *Field) []string {
	if raws, ok := l.exact[f.ExternalName]; ok {
		if _, nonBlank := firstNonBlank(raws); nonBlank {
			return raws
		}
	}
	return l.folded[f.folded]
}
