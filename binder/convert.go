package binder

import (
	"encoding"
	"errors"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Layouts accepted for time.Time, tried in order. A value without an offset is UTC.
var dateTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
}

// Layouts accepted for civil.Time; the longer one goes first.
var timeOfDayLayouts = []string{
	"15:04:05.999999999",
	"15:04",
}

// Convert converts a raw string to a value of type t, which may be a pointer
// to a supported scalar type. Conversion failures are *ConversionError.
func (b *Binder) Convert(raw string, t reflect.Type) (any, error) {
	if t == nil {
		return nil, fmt.Errorf("%w: nil type", ErrInvalidTarget)
	}
	kind, _ := b.classify(t)
	if kind == KindInvalid {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedShape, t)
	}
	v, err := b.decode(raw, t, kind)
	if err != nil {
		return nil, err
	}
	return v.Interface(), nil
}

// ConvertTo converts raw to T using the default binder.
func ConvertTo[T any](raw string) (T, error) {
	var zero T
	v, err := defaultBinder.Convert(raw, reflect.TypeFor[T]())
	if err != nil {
		return zero, err
	}
	return v.(T), nil
}

// decode converts raw to a value of type t. A pointer type gets a freshly
// allocated pointer to the converted value.
func (b *Binder) decode(raw string, t reflect.Type, kind Kind) (reflect.Value, error) {
	if t.Kind() == reflect.Pointer {
		v, err := b.decodeScalar(raw, t.Elem(), kind)
		if err != nil {
			return reflect.Value{}, err
		}
		p := reflect.New(t.Elem())
		p.Elem().Set(v)
		return p, nil
	}
	return b.decodeScalar(raw, t, kind)
}

func (b *Binder) decodeScalar(raw string, t reflect.Type, kind Kind) (reflect.Value, error) {
	if kind != KindString {
		raw = strings.TrimSpace(raw)
	}
	v := reflect.New(t).Elem()

	switch kind {
	case KindString:
		v.SetString(raw)

	case KindBool:
		switch {
		case strings.EqualFold(raw, "true"):
			v.SetBool(true)
		case strings.EqualFold(raw, "false"):
			v.SetBool(false)
		default:
			return fail(raw, `expected boolean ("true" or "false")`)
		}

	case KindInt:
		n, err := strconv.ParseInt(raw, 10, t.Bits())
		if err != nil {
			if errors.Is(err, strconv.ErrRange) {
				lo, hi := intRange(t.Bits())
				return fail(raw, fmt.Sprintf("integer out of range [%d, %d]", lo, hi))
			}
			return fail(raw, "expected integer")
		}
		v.SetInt(n)

	case KindUint:
		n, err := strconv.ParseUint(raw, 10, t.Bits())
		if err != nil {
			if errors.Is(err, strconv.ErrRange) {
				return fail(raw, fmt.Sprintf("integer out of range [0, %d]", uint64(math.MaxUint64)>>(64-t.Bits())))
			}
			return fail(raw, "expected non-negative integer")
		}
		v.SetUint(n)

	case KindFloat:
		// ParseFloat also takes Go literal forms (hex, underscores, Inf, NaN).
		if !isDecimalLiteral(raw) {
			return fail(raw, "expected number")
		}
		n, err := strconv.ParseFloat(raw, t.Bits())
		if err != nil {
			if errors.Is(err, strconv.ErrRange) {
				return fail(raw, "number out of range")
			}
			return fail(raw, "expected number")
		}
		v.SetFloat(n)

	case KindDecimal:
		d, err := decimal.NewFromString(raw)
		if err != nil {
			return fail(raw, "expected decimal number")
		}
		v.Set(reflect.ValueOf(d))

	case KindUUID:
		// uuid.Parse also takes braced and urn forms; only the canonical one is allowed.
		id, err := uuid.Parse(raw)
		if err != nil || len(raw) != 36 {
			return fail(raw, "expected UUID (xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx)")
		}
		v.Set(reflect.ValueOf(id))

	case KindDateTime:
		ts, ok := parseWithLayouts(raw, dateTimeLayouts)
		if !ok {
			return fail(raw, "expected RFC 3339 date-time")
		}
		v.Set(reflect.ValueOf(ts))

	case KindDate:
		d, err := civil.ParseDate(raw)
		if err != nil {
			return fail(raw, "expected date (YYYY-MM-DD)")
		}
		v.Set(reflect.ValueOf(d))

	case KindTime:
		ts, ok := parseWithLayouts(raw, timeOfDayLayouts)
		if !ok {
			return fail(raw, "expected time (HH:MM:SS or HH:MM)")
		}
		v.Set(reflect.ValueOf(civil.TimeOf(ts)))

	case KindDuration:
		d, err := time.ParseDuration(raw)
		if err != nil {
			return fail(raw, "expected duration (e.g. 1h30m)")
		}
		v.SetInt(int64(d))

	case KindEnum:
		set := b.enumFor(t)
		if set == nil {
			return fail(raw, "enumeration is not registered")
		}
		ev, ok := set.values[fold(raw)]
		if !ok {
			return fail(raw, fmt.Sprintf("expected one of [%s]", strings.Join(set.names, ", ")))
		}
		v.Set(ev)

	case KindText:
		p := reflect.New(t)
		if err := p.Interface().(encoding.TextUnmarshaler).UnmarshalText([]byte(raw)); err != nil {
			return fail(raw, err.Error())
		}
		v = p.Elem()

	case KindCustom:
		conv := b.converterFor(t)
		if conv == nil {
			return fail(raw, "converter is not registered")
		}
		cv, err := conv(raw)
		if err != nil {
			return fail(raw, err.Error())
		}
		v.Set(cv)

	default:
		return reflect.Value{}, fmt.Errorf("%w: %s", ErrUnsupportedShape, t)
	}

	return v, nil
}

func fail(raw, message string) (reflect.Value, error) {
	return reflect.Value{}, &ConversionError{Value: raw, Message: message}
}

func intRange(bits int) (lo, hi int64) {
	return math.MinInt64 >> (64 - bits), math.MaxInt64 >> (64 - bits)
}

// isDecimalLiteral reports whether s is [sign] digits [. digits] [e [sign] digits],
// with at least one mantissa digit.
func isDecimalLiteral(s string) bool {
	i, n := 0, len(s)
	if i < n && (s[i] == '+' || s[i] == '-') {
		i++
	}
	digits := 0
	for ; i < n && isDigit(s[i]); i++ {
		digits++
	}
	if i < n && s[i] == '.' {
		for i++; i < n && isDigit(s[i]); i++ {
			digits++
		}
	}
	if digits == 0 {
		return false
	}
	if i < n && (s[i] == 'e' || s[i] == 'E') {
		i++
		if i < n && (s[i] == '+' || s[i] == '-') {
			i++
		}
		start := i
		for i < n && isDigit(s[i]) {
			i++
		}
		if i == start {
			return false
		}
	}
	return i == n
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

func parseWithLayouts(raw string, layouts []string) (time.Time, bool) {
	for _, layout := range layouts {
		if ts, err := time.Parse(layout, raw); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}
