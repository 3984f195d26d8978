// Package sanitize turns arbitrary Go values into plain document trees that a
// schema-less document store accepts: maps keyed by string, slices, strings and
// primitives. Nil values count as "undefined" and are removed.
package sanitize

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"
)

// TimeLayout is the ISO-8601 form timestamps are stored in.
const TimeLayout = "2006-01-02T15:04:05.000Z"

// ErrNotDocument is returned by Document when the value does not sanitize to an object.
var ErrNotDocument = errors.New("value is not a document")

var (
	timeType  = reflect.TypeOf(time.Time{})
	basicType = map[reflect.Kind]reflect.Type{
		reflect.Bool:    reflect.TypeOf(false),
		reflect.Int:     reflect.TypeOf(int(0)),
		reflect.Int8:    reflect.TypeOf(int8(0)),
		reflect.Int16:   reflect.TypeOf(int16(0)),
		reflect.Int32:   reflect.TypeOf(int32(0)),
		reflect.Int64:   reflect.TypeOf(int64(0)),
		reflect.Uint:    reflect.TypeOf(uint(0)),
		reflect.Uint8:   reflect.TypeOf(uint8(0)),
		reflect.Uint16:  reflect.TypeOf(uint16(0)),
		reflect.Uint32:  reflect.TypeOf(uint32(0)),
		reflect.Uint64:  reflect.TypeOf(uint64(0)),
		reflect.Float32: reflect.TypeOf(float32(0)),
		reflect.Float64: reflect.TypeOf(float64(0)),
		reflect.String:  reflect.TypeOf(""),
	}
)

// Value returns a copy of v with every nil field removed at any depth and every
// time.Time replaced by its ISO-8601 string. Structs become maps keyed by their
// json tag names. Value(Value(v)) deep-equals Value(v).
func Value(v any) any {
	out, ok := value(reflect.ValueOf(v))
	if !ok {
		return nil
	}
	return out
}

// Document sanitizes v and requires the result to be an object.
func Document(v any) (map[string]any, error) {
	m, ok := Value(v).(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: %T", ErrNotDocument, v)
	}
	return m, nil
}

// FormatTime renders t the way Value stores timestamps.
func FormatTime(t time.Time) string {
	return t.UTC().Format(TimeLayout)
}

// value reports false when rv is undefined and must be dropped by the caller.
func value(rv reflect.Value) (any, bool) {
	if !rv.IsValid() {
		return nil, false
	}
	if rv.Type() == timeType {
		return FormatTime(rv.Interface().(time.Time)), true
	}

	switch rv.Kind() {
	case reflect.Interface, reflect.Pointer:
		if rv.IsNil() {
			return nil, false
		}
		return value(rv.Elem())

	case reflect.Map:
		if rv.IsNil() {
			return nil, false
		}
		out := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			if v, ok := value(iter.Value()); ok {
				out[mapKey(iter.Key())] = v
			}
		}
		return out, true

	case reflect.Slice:
		if rv.IsNil() {
			return nil, false
		}
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return rv.Bytes(), true
		}
		return sequence(rv), true

	case reflect.Array:
		return sequence(rv), true

	case reflect.Struct:
		out := make(map[string]any)
		writeStruct(rv, out)
		return out, true

	case reflect.Func, reflect.Chan, reflect.UnsafePointer, reflect.Complex64, reflect.Complex128:
		return nil, false
	}

	if t, ok := basicType[rv.Kind()]; ok {
		return rv.Convert(t).Interface(), true
	}
	return rv.Interface(), true
}

func sequence(rv reflect.Value) []any {
	out := make([]any, 0, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		if v, ok := value(rv.Index(i)); ok {
			out = append(out, v)
		}
	}
	return out
}

func mapKey(k reflect.Value) string {
	if k.Kind() == reflect.String {
		return k.String()
	}
	return fmt.Sprint(k.Interface())
}

func writeStruct(rv reflect.Value, out map[string]any) {
	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		if !field.IsExported() {
			continue
		}
		name, omitEmpty, skip := parseTag(field)
		if skip {
			continue
		}

		fv := rv.Field(i)
		if field.Anonymous && name == "" {
			if fv.Kind() == reflect.Pointer {
				if fv.IsNil() {
					continue
				}
				fv = fv.Elem()
			}
			if fv.Kind() == reflect.Struct && fv.Type() != timeType {
				writeStruct(fv, out)
				continue
			}
		}
		if name == "" {
			name = field.Name
		}
		if omitEmpty && isEmpty(fv) {
			continue
		}
		if v, ok := value(fv); ok {
			out[name] = v
		}
	}
}

func parseTag(field reflect.StructField) (name string, omitEmpty, skip bool) {
	tag := field.Tag.Get("json")
	if tag == "-" {
		return "", false, true
	}
	parts := strings.Split(tag, ",")
	for _, opt := range parts[1:] {
		if opt == "omitempty" || opt == "omitzero" {
			omitEmpty = true
		}
	}
	return parts[0], omitEmpty, false
}

// isEmpty follows encoding/json's omitempty rules, plus zero time.Time.
func isEmpty(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Array, reflect.Map, reflect.Slice, reflect.String:
		return v.Len() == 0
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64,
		reflect.Interface, reflect.Pointer:
		return v.IsZero()
	case reflect.Struct:
		return v.Type() == timeType && v.IsZero()
	}
	return false
}
