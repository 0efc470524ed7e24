package binder

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"
	"unicode"

	"github.com/dmitrymomot/querybind/pkg/logger"
)

// Field describes how one struct field is bound.
type Field struct {
	Name         string // Go field name
	ExternalName string // query parameter name
	Default      string // raw default, meaningful when HasDefault is set
	HasDefault   bool
	Shape        Shape
	Container    Container
	Kind         Kind // kind of the value, or of each element for sequences
	Nullable     bool // value (or element) is a pointer
	Type         reflect.Type

	index  []int
	folded string // case-folded ExternalName
}

// FieldsOf returns the field descriptors of T resolved by the default binder.
func FieldsOf[T any]() ([]Field, error) {
	return defaultBinder.Fields(reflect.TypeFor[T]())
}

// Fields returns the field descriptors of a query model type, in declaration
// order. A pointer to a struct is accepted. Results are cached per type.
func (b *Binder) Fields(t reflect.Type) ([]Field, error) {
	if t == nil {
		return nil, fmt.Errorf("%w: nil type", ErrInvalidTarget)
	}
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	info := b.typeInfo(t)
	if info.err != nil {
		return nil, info.err
	}
	return slices.Clone(info.fields), nil
}

func (b *Binder) typeInfo(t reflect.Type) *typeInfo {
	if cached, ok := b.cache.Load(t); ok {
		return cached.(*typeInfo)
	}
	fields, err := b.resolve(t)
	actual, _ := b.cache.LoadOrStore(t, &typeInfo{fields: fields, err: err})
	return actual.(*typeInfo)
}

func (b *Binder) resolve(t reflect.Type) ([]Field, error) {
	if t.Kind() != reflect.Struct || !t.Implements(bindableType) {
		return nil, fmt.Errorf("%w: %s", ErrNotBindableType, t)
	}

	var fields []Field
	if err := b.collect(t, t, nil, &fields); err != nil {
		return nil, err
	}

	owners := make(map[string]string, len(fields))
	for _, f := range fields {
		if prev, exists := owners[f.folded]; exists {
			return nil, fmt.Errorf("%w: %s: fields %s and %s both bind %q",
				ErrNameCollision, t, prev, f.Name, f.ExternalName)
		}
		owners[f.folded] = f.Name
	}

	return fields, nil
}

// collect appends the descriptors of t's fields, expanding embedded structs in place.
func (b *Binder) collect(root, t reflect.Type, parent []int, out *[]Field) error {
	for i := range t.NumField() {
		sf := t.Field(i)
		if sf.Type == modelType {
			continue
		}

		tag := sf.Tag.Get(b.tagName)
		name, skip := parseFieldTag(sf, tag)
		if skip {
			continue
		}

		index := append(slices.Clone(parent), i)

		if sf.Anonymous && tag == "" {
			ft := sf.Type
			if ft.Kind() == reflect.Pointer {
				b.warnSkipped(root, sf, "embedded pointer")
				continue
			}
			if ft.Kind() == reflect.Struct && b.scalarKind(ft) == KindInvalid {
				if err := b.collect(root, ft, index, out); err != nil {
					return err
				}
				continue
			}
		}

		if !sf.IsExported() {
			continue
		}

		f, err := b.describe(sf, name, index)
		if err != nil {
			if errors.Is(err, ErrUnsupportedShape) && !b.strictShapes {
				b.warnSkipped(root, sf, "unsupported type")
				continue
			}
			return fmt.Errorf("%w: %s.%s (%s)", err, root, sf.Name, sf.Type)
		}
		*out = append(*out, f)
	}
	return nil
}

func (b *Binder) describe(sf reflect.StructField, name string, index []int) (Field, error) {
	f := Field{
		Name:         sf.Name,
		ExternalName: name,
		Type:         sf.Type,
		index:        index,
		folded:       fold(name),
	}

	if kind, nullable := b.classify(sf.Type); kind != KindInvalid {
		f.Shape = ShapeScalar
		f.Kind = kind
		f.Nullable = nullable
	} else {
		switch sf.Type.Kind() {
		case reflect.Slice:
			f.Container = ContainerSlice
		case reflect.Array:
			f.Container = ContainerArray
		default:
			return Field{}, ErrUnsupportedShape
		}
		kind, nullable := b.classify(sf.Type.Elem())
		if kind == KindInvalid {
			return Field{}, ErrUnsupportedShape
		}
		f.Shape = ShapeSequence
		f.Kind = kind
		f.Nullable = nullable
	}

	if def, ok := sf.Tag.Lookup("default"); ok && strings.TrimSpace(def) != "" {
		f.Default = def
		f.HasDefault = true
		if _, _, err := b.bindField(&f, []string{def}); err != nil {
			return Field{}, fmt.Errorf("%w %q: %w", ErrInvalidDefault, def, err)
		}
	}

	return f, nil
}

func (b *Binder) warnSkipped(root reflect.Type, sf reflect.StructField, reason string) {
	b.log().Warn("query model field skipped",
		logger.Component("binder"),
		logger.Type(root.String()),
		logger.Field(sf.Name),
		logger.Reason(reason),
	)
}

// parseFieldTag returns the external name for a field and whether to skip it.
// Without a tag the name is the field name in lower camel case.
func parseFieldTag(field reflect.StructField, tag string) (paramName string, skip bool) {
	if tag == "-" {
		return "", true
	}
	// Options after a comma (e.g. "name,omitempty") carry no meaning here.
	name, _, _ := strings.Cut(tag, ",")
	if name == "" {
		return lowerCamel(field.Name), false
	}
	return name, false
}

// lowerCamel lower-cases the leading upper-case run of an identifier:
// PageSize -> pageSize, ID -> id, IDs -> ids, IDsList -> idsList,
// URLPath -> urlPath.
func lowerCamel(s string) string {
	runes := []rune(s)
	n := 0
	for n < len(runes) && unicode.IsUpper(runes[n]) {
		n++
	}
	switch {
	case n == 0:
		return s
	case n == len(runes):
		return strings.ToLower(s)
	case n > 1 && !pluralAcronym(runes, n):
		// Keep the last upper-case rune: it starts the next word.
		n--
	}
	for i := range n {
		runes[i] = unicode.ToLower(runes[i])
	}
	return string(runes)
}

// pluralAcronym reports whether the upper-case run runes[:n] is followed by
// a plural "s" that ends the identifier or precedes the next word.
func pluralAcronym(runes []rune, n int) bool {
	if runes[n] != 's' {
		return false
	}
	return n+1 == len(runes) || unicode.IsUpper(runes[n+1])
}
