// tag/modifier.go
package tag

import (
	"github.com/dalemusser/querytag/expr"
	"github.com/dalemusser/querytag/params"
)

// modifier is one parameter mutation: a key expression, an operator, and
// a value expression. It is compiled once per directive; each render
// resolves it into a resolvedModifier before applying it, so a compiled
// directive can render concurrently.
type modifier struct {
	op    Operator
	key   expr.Expression
	value expr.Expression
}

// resolvedModifier is a modifier fixed against one render's context: a
// concrete key plus either a null value (deletion for SET) or a canonical
// value sequence.
type resolvedModifier struct {
	op     Operator
	key    string
	values []string
	null   bool
}

// resolve fixes the key and value against the live context. A key that
// resolves to null or empty falls back to its raw token text.
func (m *modifier) resolve(r expr.Resolver, modelField string) (resolvedModifier, error) {
	kv, err := m.key.Resolve(r, false)
	if err != nil {
		return resolvedModifier{}, err
	}
	key, ok := expr.Normalize(kv, "")
	if !ok || key == "" {
		key = m.key.Token()
	}

	vv, err := m.value.Resolve(r, false)
	if err != nil {
		return resolvedModifier{}, err
	}
	rm := resolvedModifier{op: m.op, key: key, null: vv == nil}
	if !rm.null {
		rm.values = expr.ValueList(vv, modelField)
	}
	return rm, nil
}

// apply mutates the working map.
func (rm resolvedModifier) apply(working *params.Values) {
	switch rm.op {
	case OpSet:
		if rm.null {
			working.Del(rm.key)
			return
		}
		working.SetList(rm.key, rm.values)
	case OpAdd:
		seen := make(map[string]struct{})
		for _, v := range working.GetList(rm.key) {
			seen[v] = struct{}{}
		}
		for _, v := range rm.values {
			if _, ok := seen[v]; ok {
				continue
			}
			seen[v] = struct{}{}
			working.Append(rm.key, v)
		}
	case OpRemove:
		drop := make(map[string]struct{}, len(rm.values))
		for _, v := range rm.values {
			drop[v] = struct{}{}
		}
		var kept []string
		for _, v := range working.GetList(rm.key) {
			if _, ok := drop[v]; !ok {
				kept = append(kept, v)
			}
		}
		// The key stays present even when emptied; cleanup removes it.
		working.SetList(rm.key, kept)
	}
}
