package workout

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// Row gives the normalizer uniform access to a warehouse row, whatever its shape.
type Row interface {
	Field(name string) (any, bool)
}

// MapRow is a key-addressed row, as produced by the postgres source.
type MapRow map[string]any

func (r MapRow) Field(name string) (any, bool) {
	v, ok := r[name]
	return v, ok
}

// StructRow exposes the exported fields of a struct (or pointer to one) as a Row.
// A `row:"Name"` tag overrides the Go field name.
type StructRow struct {
	v reflect.Value
}

func NewStructRow(v any) StructRow {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer && !rv.IsNil() {
		rv = rv.Elem()
	}
	return StructRow{v: rv}
}

func (r StructRow) Field(name string) (any, bool) {
	if r.v.Kind() != reflect.Struct {
		return nil, false
	}
	rt := r.v.Type()
	for i := 0; i < rt.NumField(); i++ {
		f := rt.Field(i)
		if !f.IsExported() {
			continue
		}
		key := f.Name
		if tag := f.Tag.Get("row"); tag != "" {
			key = tag
		}
		if key == name {
			return r.v.Field(i).Interface(), true
		}
	}
	return nil, false
}

// value returns the field with null markers (nil, nil pointers, invalid
// driver values, blank strings) folded into ok=false.
func value(row Row, name string) (any, bool) {
	v, ok := row.Field(name)
	if !ok {
		return nil, false
	}
	return unwrap(v)
}

func unwrap(v any) (any, bool) {
	// bounded so a driver.Valuer that returns itself cannot spin forever
	for depth := 0; depth < 8; depth++ {
		if v == nil {
			return nil, false
		}
		if valuer, ok := v.(driver.Valuer); ok {
			inner, err := valuer.Value()
			if err != nil {
				return nil, false
			}
			v = inner
			continue
		}
		rv := reflect.ValueOf(v)
		if rv.Kind() == reflect.Pointer {
			if rv.IsNil() {
				return nil, false
			}
			v = rv.Elem().Interface()
			continue
		}
		if b, ok := v.([]byte); ok {
			v = string(b)
			continue
		}
		if s, ok := v.(string); ok && strings.TrimSpace(s) == "" {
			return nil, false
		}
		return v, true
	}
	return v, v != nil
}

func textField(row Row, name string) (string, error) {
	v, ok := value(row, name)
	if !ok {
		return "", nil
	}
	switch t := v.(type) {
	case string:
		return t, nil
	case fmt.Stringer:
		return t.String(), nil
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return fmt.Sprint(t), nil
	default:
		return "", fmt.Errorf("%s: unsupported identifier type %T", name, v)
	}
}

func floatField(row Row, name string) (float64, error) {
	v, ok := value(row, name)
	if !ok {
		return 0, nil
	}
	f, err := toFloat(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", name, err)
	}
	return f, nil
}

func intField(row Row, name string) (int64, error) {
	v, ok := value(row, name)
	if !ok {
		return 0, nil
	}
	switch t := v.(type) {
	case int:
		return int64(t), nil
	case int8:
		return int64(t), nil
	case int16:
		return int64(t), nil
	case int32:
		return int64(t), nil
	case int64:
		return t, nil
	case uint8:
		return int64(t), nil
	case uint16:
		return int64(t), nil
	case uint32:
		return int64(t), nil
	case uint:
		return uintToInt(name, uint64(t))
	case uint64:
		return uintToInt(name, t)
	case json.Number:
		if n, err := strconv.ParseInt(t.String(), 10, 64); err == nil {
			return n, nil
		}
	case string:
		if n, err := strconv.ParseInt(strings.TrimSpace(t), 10, 64); err == nil {
			return n, nil
		}
	}
	f, err := toFloat(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", name, err)
	}
	if f != math.Trunc(f) {
		return 0, fmt.Errorf("%s: %v is not a whole number", name, f)
	}
	if f >= 1<<63 || f < -(1<<63) {
		return 0, fmt.Errorf("%s: %v is out of range", name, f)
	}
	return int64(f), nil
}

func uintToInt(name string, u uint64) (int64, error) {
	if u > math.MaxInt64 {
		return 0, fmt.Errorf("%s: %d is out of range", name, u)
	}
	return int64(u), nil
}

func toFloat(v any) (float64, error) {
	var f float64
	switch t := v.(type) {
	case float64:
		f = t
	case float32:
		f = float64(t)
	case int:
		f = float64(t)
	case int8:
		f = float64(t)
	case int16:
		f = float64(t)
	case int32:
		f = float64(t)
	case int64:
		f = float64(t)
	case uint:
		f = float64(t)
	case uint8:
		f = float64(t)
	case uint16:
		f = float64(t)
	case uint32:
		f = float64(t)
	case uint64:
		f = float64(t)
	case json.Number:
		parsed, err := t.Float64()
		if err != nil {
			return 0, err
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0, fmt.Errorf("%q is not a number", t)
		}
		f = parsed
	default:
		return 0, fmt.Errorf("unsupported numeric type %T", v)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%v is not a finite number", f)
	}
	return f, nil
}

func timestampField(row Row, name string) (Timestamp, error) {
	v, ok := value(row, name)
	if !ok {
		return Timestamp{}, nil
	}
	switch t := v.(type) {
	case time.Time:
		if t.IsZero() {
			return Timestamp{}, nil
		}
		return Timestamp{Text: t.UTC().Format(isoLayout), At: t}, nil
	case string:
		return timestampFromText(t), nil
	default:
		return Timestamp{}, fmt.Errorf("%s: unsupported timestamp type %T", name, v)
	}
}

const isoLayout = "2006-01-02T15:04:05"

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02",
}

// timestampFromText keeps text verbatim and records the instant when a known layout matches.
func timestampFromText(text string) Timestamp {
	if strings.TrimSpace(text) == "" {
		return Timestamp{}
	}
	ts := Timestamp{Text: text}
	for _, layout := range timestampLayouts {
		if at, err := time.Parse(layout, strings.TrimSpace(text)); err == nil {
			ts.At = at
			break
		}
	}
	return ts
}
