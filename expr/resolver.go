// expr/resolver.go
package expr

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// MapResolver resolves dotted variable paths against a map of template
// variables. Each path segment traverses a map entry, an exported struct
// field, or a numeric slice/array index. Filter expressions (containing
// "|") are a host-engine concern and always resolve as not found.
type MapResolver map[string]any

// Resolve implements Resolver.
func (m MapResolver) Resolve(name string) (any, error) {
	if strings.Contains(name, "|") {
		return nil, fmt.Errorf("resolve %q: filters are not supported: %w", name, ErrNotFound)
	}
	parts := strings.Split(name, ".")
	cur, ok := m[parts[0]]
	if !ok {
		return nil, fmt.Errorf("resolve %q: %w", name, ErrNotFound)
	}
	for _, part := range parts[1:] {
		cur, ok = access(cur, part)
		if !ok {
			return nil, fmt.Errorf("resolve %q: no attribute %q: %w", name, part, ErrNotFound)
		}
	}
	return cur, nil
}

// access walks one path segment into v. A zero-argument single-return
// method takes precedence over a field of the same name, matching how
// html/template resolves names.
func access(v any, part string) (any, bool) {
	if v == nil {
		return nil, false
	}
	rv := reflect.ValueOf(v)
	if out, ok := callMethod(rv, part); ok {
		return out, true
	}
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil, false
		}
		rv = rv.Elem()
		if out, ok := callMethod(rv, part); ok {
			return out, true
		}
	}
	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil, false
		}
		mv := rv.MapIndex(reflect.ValueOf(part).Convert(rv.Type().Key()))
		if !mv.IsValid() {
			return nil, false
		}
		return mv.Interface(), true
	case reflect.Struct:
		fv := rv.FieldByName(part)
		if fv.IsValid() && fv.CanInterface() {
			return fv.Interface(), true
		}
		return nil, false
	case reflect.Slice, reflect.Array:
		i, err := strconv.Atoi(part)
		if err != nil || i < 0 || i >= rv.Len() {
			return nil, false
		}
		return rv.Index(i).Interface(), true
	}
	return nil, false
}

func callMethod(rv reflect.Value, name string) (any, bool) {
	if !rv.IsValid() {
		return nil, false
	}
	m := rv.MethodByName(name)
	if !m.IsValid() {
		return nil, false
	}
	mt := m.Type()
	if mt.NumIn() != 0 || mt.NumOut() != 1 {
		return nil, false
	}
	return m.Call(nil)[0].Interface(), true
}
