// expr/normalize.go
package expr

import (
	"fmt"
	"reflect"
	"time"
)

// DefaultModelField is the identifier field used for model-like values
// when no model_value_field override is given, and the fallback when the
// configured field does not exist.
const DefaultModelField = "ID"

// Model is implemented by structured values that expose a primary
// identifier. Values that do not implement it can still normalize via a
// reflected DefaultModelField field.
type Model interface {
	PrimaryKey() any
}

// Normalize converts one resolved value to its canonical query-string
// form. The second return is false for null values (which signal deletion
// for SET and are dropped from value lists).
//
// Rules: strings pass through; time values use 2006-01-02 when the
// time-of-day is zero and RFC 3339 otherwise; model-like values use the
// configured field, falling back to the primary identifier when that
// field does not exist; fmt.Stringer values use String(); everything else
// uses fmt.Sprint.
func Normalize(v any, modelField string) (string, bool) {
	switch val := v.(type) {
	case nil:
		return "", false
	case string:
		return val, true
	case []byte:
		return string(val), true
	case time.Time:
		return formatTime(val), true
	case *time.Time:
		if val == nil {
			return "", false
		}
		return formatTime(*val), true
	}
	if s, ok := modelString(v, modelField); ok {
		return s, true
	}
	if s, ok := v.(fmt.Stringer); ok {
		return s.String(), true
	}
	return fmt.Sprint(v), true
}

// ValueList normalizes a resolved value to a canonical string sequence.
// Slices and arrays (other than byte slices) normalize element-wise, one
// level deep; anything else becomes a one-element sequence. Null elements
// are dropped.
func ValueList(v any, modelField string) []string {
	if v == nil {
		return nil
	}
	rv := reflect.ValueOf(v)
	if (rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array) && rv.Type() != reflect.TypeOf([]byte(nil)) {
		out := make([]string, 0, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			if s, ok := Normalize(rv.Index(i).Interface(), modelField); ok {
				out = append(out, s)
			}
		}
		return out
	}
	s, ok := Normalize(v, modelField)
	if !ok {
		return nil
	}
	return []string{s}
}

func formatTime(t time.Time) string {
	if h, m, s := t.Clock(); h == 0 && m == 0 && s == 0 && t.Nanosecond() == 0 {
		return t.Format("2006-01-02")
	}
	return t.Format(time.RFC3339)
}

// modelString extracts the identifying string of a model-like value.
// It reports false when v is not model-like at all.
func modelString(v any, field string) (string, bool) {
	if field != "" && field != DefaultModelField {
		if fv, ok := structField(v, field); ok {
			s, _ := Normalize(fv, "")
			return s, true
		}
		// Configured field missing: fall back to the primary identifier.
	}
	if m, ok := v.(Model); ok {
		s, _ := Normalize(m.PrimaryKey(), "")
		return s, true
	}
	if fv, ok := structField(v, DefaultModelField); ok {
		s, _ := Normalize(fv, "")
		return s, true
	}
	return "", false
}

func structField(v any, name string) (any, bool) {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, false
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil, false
	}
	fv := rv.FieldByName(name)
	if !fv.IsValid() || !fv.CanInterface() {
		return nil, false
	}
	return fv.Interface(), true
}
