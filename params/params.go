// params/params.go
package params

import (
	"net/url"
	"sort"
	"strings"
)

// Values is an ordered multi-valued query-parameter map. Keys keep their
// insertion order, and each key maps to an ordered list of string values.
// The zero value is not usable; call New or ParseQuery.
//
// Values is not safe for concurrent use. It is intended to be owned by a
// single render and copied (Copy) whenever the source is caller-owned.
type Values struct {
	keys   []string
	values map[string][]string
}

// New returns an empty Values.
func New() *Values {
	return &Values{values: make(map[string][]string)}
}

// ParseQuery parses a query string (with or without a leading "?") into a
// Values, preserving the order keys first appear in the input. Pairs that
// fail to unescape are skipped rather than failing the whole parse.
func ParseQuery(query string) *Values {
	v := New()
	query = strings.TrimPrefix(query, "?")
	for _, pair := range strings.Split(query, "&") {
		if pair == "" {
			continue
		}
		key, val, _ := strings.Cut(pair, "=")
		key, err := url.QueryUnescape(key)
		if err != nil || key == "" {
			continue
		}
		val, err = url.QueryUnescape(val)
		if err != nil {
			continue
		}
		v.Append(key, val)
	}
	return v
}

// FromMap builds a Values from a key to value-list map. Key order follows
// lexicographic order of the map keys so output is deterministic.
func FromMap(m map[string][]string) *Values {
	v := New()
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		v.SetList(k, m[k])
	}
	return v
}

// Len returns the number of keys.
func (v *Values) Len() int {
	return len(v.keys)
}

// Has reports whether key is present (even with zero values).
func (v *Values) Has(key string) bool {
	_, ok := v.values[key]
	return ok
}

// Keys returns the keys in insertion order. The slice is a copy.
func (v *Values) Keys() []string {
	out := make([]string, len(v.keys))
	copy(out, v.keys)
	return out
}

// Get returns the first value for key, or "" if absent.
func (v *Values) Get(key string) string {
	if vs := v.values[key]; len(vs) > 0 {
		return vs[0]
	}
	return ""
}

// GetList returns the values for key in order. The slice is a copy; it is
// nil when the key is absent.
func (v *Values) GetList(key string) []string {
	vs, ok := v.values[key]
	if !ok {
		return nil
	}
	out := make([]string, len(vs))
	copy(out, vs)
	return out
}

// SetList replaces the value list for key. A nil or empty list leaves the
// key present with zero values; use Del to remove the key itself.
func (v *Values) SetList(key string, vals []string) {
	if _, ok := v.values[key]; !ok {
		v.keys = append(v.keys, key)
	}
	cp := make([]string, len(vals))
	copy(cp, vals)
	v.values[key] = cp
}

// Append adds one value to the end of key's value list, creating the key
// if needed.
func (v *Values) Append(key, val string) {
	if _, ok := v.values[key]; !ok {
		v.keys = append(v.keys, key)
	}
	v.values[key] = append(v.values[key], val)
}

// Del removes key and its values. Absent keys are a no-op.
func (v *Values) Del(key string) {
	if _, ok := v.values[key]; !ok {
		return
	}
	delete(v.values, key)
	for i, k := range v.keys {
		if k == key {
			v.keys = append(v.keys[:i], v.keys[i+1:]...)
			break
		}
	}
}

// Copy returns a deep copy of v.
func (v *Values) Copy() *Values {
	out := New()
	for _, k := range v.keys {
		out.SetList(k, v.values[k])
	}
	return out
}

// Encode serializes v as a percent-encoded query string without a leading
// "?". Keys appear in insertion order; each value becomes its own
// key=value pair in list order. An empty Values encodes to "".
//
// Unlike url.Values.Encode, key order is preserved rather than sorted.
func (v *Values) Encode() string {
	var b strings.Builder
	for _, k := range v.keys {
		ek := url.QueryEscape(k)
		for _, val := range v.values[k] {
			if b.Len() > 0 {
				b.WriteByte('&')
			}
			b.WriteString(ek)
			b.WriteByte('=')
			b.WriteString(url.QueryEscape(val))
		}
	}
	return b.String()
}

// String implements fmt.Stringer using Encode.
func (v *Values) String() string {
	return v.Encode()
}
