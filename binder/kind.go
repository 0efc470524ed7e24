package binder

import (
	"encoding"
	"reflect"
	"time"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Kind classifies the scalar type a field (or sequence element) converts to.
type Kind uint8

const (
	KindInvalid Kind = iota // unsupported type

	KindString
	KindBool
	KindInt
	KindUint
	KindFloat
	KindDecimal
	KindUUID
	KindDateTime
	KindDate
	KindTime
	KindDuration
	KindEnum
	KindText   // encoding.TextUnmarshaler
	KindCustom // registered converter
)

var kindNames = [...]string{
	KindInvalid:  "invalid",
	KindString:   "string",
	KindBool:     "bool",
	KindInt:      "int",
	KindUint:     "uint",
	KindFloat:    "float",
	KindDecimal:  "decimal",
	KindUUID:     "uuid",
	KindDateTime: "datetime",
	KindDate:     "date",
	KindTime:     "time",
	KindDuration: "duration",
	KindEnum:     "enum",
	KindText:     "text",
	KindCustom:   "custom",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "invalid"
}

// Shape tells whether a field holds one value or a sequence of values.
type Shape uint8

const (
	ShapeScalar Shape = iota
	ShapeSequence
)

func (s Shape) String() string {
	if s == ShapeSequence {
		return "sequence"
	}
	return "scalar"
}

// Container is the Go container used by a sequence-shaped field.
type Container uint8

const (
	ContainerNone Container = iota
	ContainerSlice
	ContainerArray
)

var (
	uuidType            = reflect.TypeFor[uuid.UUID]()
	decimalType         = reflect.TypeFor[decimal.Decimal]()
	timeType            = reflect.TypeFor[time.Time]()
	durationType        = reflect.TypeFor[time.Duration]()
	dateType            = reflect.TypeFor[civil.Date]()
	timeOfDayType       = reflect.TypeFor[civil.Time]()
	textUnmarshalerType = reflect.TypeFor[encoding.TextUnmarshaler]()
)

// scalarKind classifies a non-pointer type. Explicit registrations take
// precedence over well-known types, which take precedence over reflect kinds.
func (b *Binder) scalarKind(t reflect.Type) Kind {
	b.mu.RLock()
	_, custom := b.converters[t]
	_, enum := b.enums[t]
	b.mu.RUnlock()

	switch {
	case custom:
		return KindCustom
	case t == uuidType:
		return KindUUID
	case t == decimalType:
		return KindDecimal
	case t == timeType:
		return KindDateTime
	case t == durationType:
		return KindDuration
	case t == dateType:
		return KindDate
	case t == timeOfDayType:
		return KindTime
	case enum:
		return KindEnum
	case reflect.PointerTo(t).Implements(textUnmarshalerType):
		return KindText
	}

	switch t.Kind() {
	case reflect.String:
		return KindString
	case reflect.Bool:
		return KindBool
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return KindInt
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return KindUint
	case reflect.Float32, reflect.Float64:
		return KindFloat
	default:
		return KindInvalid
	}
}

// classify resolves a scalar type, unwrapping a single pointer level.
// The pointer marks the value as nullable.
func (b *Binder) classify(t reflect.Type) (kind Kind, nullable bool) {
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
		if t.Kind() == reflect.Pointer {
			return KindInvalid, false
		}
		nullable = true
	}
	return b.scalarKind(t), nullable
}
