package binder

import (
	"fmt"
	"log/slog"
	"reflect"
	"sync"

	"golang.org/x/text/cases"
)

const defaultTagName = "query"

// Model marks a struct as a bindable query model. Embed it in the target type:
//
//	type ListQuery struct {
//		binder.Model
//		Page int `query:"page" default:"1"`
//	}
//
// Binding a struct without the marker fails with ErrNotBindableType.
type Model struct{}

func (Model) queryModel() {}

type bindable interface{ queryModel() }

var (
	bindableType = reflect.TypeFor[bindable]()
	modelType    = reflect.TypeFor[Model]()
)

// converter turns a raw string into a value of one registered type.
type converter func(raw string) (reflect.Value, error)

// enumSet holds the named constants of an enumeration in declaration order.
type enumSet struct {
	names  []string
	values map[string]reflect.Value // keyed by case-folded name
}

// typeInfo is the cached resolution result for one struct type.
type typeInfo struct {
	fields []Field
	err    error
}

// Binder converts url.Values into query model structs.
// It is safe for concurrent use; the zero value is not usable, use New.
type Binder struct {
	tagName      string
	strictShapes bool
	logger       *slog.Logger

	mu         sync.RWMutex
	converters map[reflect.Type]converter
	enums      map[reflect.Type]*enumSet

	cache sync.Map // reflect.Type -> *typeInfo
}

// Option configures a Binder.
type Option func(*Binder)

// WithLogger sets the logger used for resolution warnings.
// Nil loggers are ignored and slog.Default is used.
func WithLogger(l *slog.Logger) Option {
	return func(b *Binder) {
		if l != nil {
			b.logger = l
		}
	}
}

// WithTagName changes the struct tag that carries the external name.
func WithTagName(name string) Option {
	if name == "" {
		panic("WithTagName: tag name cannot be empty")
	}
	return func(b *Binder) { b.tagName = name }
}

// WithStrictShapes makes fields of unsupported types a resolution error
// instead of a logged skip.
func WithStrictShapes() Option {
	return func(b *Binder) { b.strictShapes = true }
}

// WithConverter registers a converter for values of type T.
// Converters take precedence over every built-in conversion for T.
func WithConverter[T any](fn func(raw string) (T, error)) Option {
	if fn == nil {
		panic("WithConverter: nil converter")
	}
	return func(b *Binder) {
		b.setConverter(reflect.TypeFor[T](), wrapConverter(fn))
	}
}

// WithEnum registers the named constants of enumeration type T.
// A constant's name is its fmt.Sprint form, so types implementing
// fmt.Stringer are matched by their String value.
func WithEnum[T comparable](values ...T) Option {
	return func(b *Binder) {
		if len(values) == 0 {
			return
		}
		b.setEnum(reflect.TypeFor[T](), newEnumSet(values))
	}
}

// New creates a Binder.
func New(opts ...Option) *Binder {
	b := &Binder{
		tagName:    defaultTagName,
		converters: make(map[reflect.Type]converter),
		enums:      make(map[reflect.Type]*enumSet),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

var defaultBinder = New()

// Default returns the process-wide binder used by the package-level functions.
func Default() *Binder {
	return defaultBinder
}

// RegisterConverter registers a converter on the default binder.
func RegisterConverter[T any](fn func(raw string) (T, error)) {
	WithConverter(fn)(defaultBinder)
}

// RegisterEnum registers enumeration constants on the default binder.
func RegisterEnum[T comparable](values ...T) {
	WithEnum(values...)(defaultBinder)
}

func (b *Binder) log() *slog.Logger {
	if b.logger != nil {
		return b.logger
	}
	return slog.Default()
}

// Registrations change how types classify, so cached descriptors are dropped.
func (b *Binder) setConverter(t reflect.Type, c converter) {
	b.mu.Lock()
	b.converters[t] = c
	b.mu.Unlock()
	b.cache.Clear()
}

func (b *Binder) setEnum(t reflect.Type, set *enumSet) {
	b.mu.Lock()
	b.enums[t] = set
	b.mu.Unlock()
	b.cache.Clear()
}

func (b *Binder) converterFor(t reflect.Type) converter {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.converters[t]
}

func (b *Binder) enumFor(t reflect.Type) *enumSet {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.enums[t]
}

func wrapConverter[T any](fn func(string) (T, error)) converter {
	return func(raw string) (reflect.Value, error) {
		v, err := fn(raw)
		if err != nil {
			return reflect.Value{}, err
		}
		return reflect.ValueOf(&v).Elem(), nil
	}
}

func newEnumSet[T comparable](values []T) *enumSet {
	set := &enumSet{
		names:  make([]string, 0, len(values)),
		values: make(map[string]reflect.Value, len(values)),
	}
	c := cases.Fold()
	for _, v := range values {
		name := fmt.Sprint(v)
		key := c.String(name)
		if _, dup := set.values[key]; dup {
			continue
		}
		set.names = append(set.names, name)
		set.values[key] = reflect.ValueOf(v)
	}
	return set
}

// fold returns the Unicode case fold of s. A Caser is not safe for concurrent
// use, so each call gets its own.
func fold(s string) string {
	return cases.Fold().String(s)
}
