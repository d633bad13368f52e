// tag/node.go
package tag

import (
	"net/url"
	"sort"
	"strings"

	"github.com/dalemusser/querytag/expr"
	"github.com/dalemusser/querytag/params"
)

// Context carries everything one render of a directive may touch: the
// ambient request parameters (copied before mutation), the template
// variables, and an optional resolver override. When Resolver is nil,
// variables resolve by dotted lookup into Vars.
type Context struct {
	Params   *params.Values
	Vars     map[string]any
	Resolver expr.Resolver
}

func (c *Context) resolver() expr.Resolver {
	if c == nil {
		return nil
	}
	if c.Resolver != nil {
		return c.Resolver
	}
	return expr.MapResolver(c.Vars)
}

// Node is one compiled querystring directive. Compile builds it once; it
// is read-only afterwards, so a single Node may render concurrently
// against different contexts.
type Node struct {
	sourceData      expr.Expression
	only            []expr.Expression
	discard         []expr.Expression
	modifiers       []*modifier
	removeBlank     expr.Expression // nil means default true
	removeUTM       expr.Expression // nil means default true
	modelValueField expr.Expression
	targetVar       string
}

// TargetVar returns the variable name from the 'as' clause, or "".
func (n *Node) TargetVar() string {
	return n.targetVar
}

// Render produces the "?"-prefixed query string for ctx. When the
// directive has an 'as' clause the result is bound into ctx.Vars under
// the target name and the inline output is empty.
func (n *Node) Render(ctx *Context) (string, error) {
	r := ctx.resolver()

	// Shared options resolve before any modifier uses them.
	modelField, err := n.resolveModelField(r)
	if err != nil {
		return "", err
	}

	working, err := n.baseValues(ctx, r, modelField)
	if err != nil {
		return "", err
	}

	if err := n.applyFilter(working, r); err != nil {
		return "", err
	}

	for _, m := range n.modifiers {
		rm, err := m.resolve(r, modelField)
		if err != nil {
			return "", err
		}
		rm.apply(working)
	}

	removeBlank, err := resolveBool(n.removeBlank, r, true)
	if err != nil {
		return "", err
	}
	removeUTM, err := resolveBool(n.removeUTM, r, true)
	if err != nil {
		return "", err
	}
	clean(working, removeBlank, removeUTM)

	out := "?" + working.Encode()
	if n.targetVar != "" {
		if ctx.Vars == nil {
			ctx.Vars = make(map[string]any)
		}
		ctx.Vars[n.targetVar] = out
		return "", nil
	}
	return out, nil
}

func (n *Node) resolveModelField(r expr.Resolver) (string, error) {
	if n.modelValueField == nil {
		return expr.DefaultModelField, nil
	}
	v, err := n.modelValueField.Resolve(r, false)
	if err != nil {
		return "", err
	}
	field, ok := expr.Normalize(v, "")
	if !ok || field == "" {
		return expr.DefaultModelField, nil
	}
	return field, nil
}

// baseValues builds the working map. Precedence: source_data override,
// then the ambient request parameters, then an empty map. The result is
// always an owned copy; caller-held state is never mutated.
func (n *Node) baseValues(ctx *Context, r expr.Resolver, modelField string) (*params.Values, error) {
	if n.sourceData == nil {
		if ctx != nil && ctx.Params != nil {
			return ctx.Params.Copy(), nil
		}
		return params.New(), nil
	}
	src, err := n.sourceData.Resolve(r, false)
	if err != nil {
		return nil, err
	}
	switch s := src.(type) {
	case nil:
		return params.New(), nil
	case *params.Values:
		return s.Copy(), nil
	case string:
		return params.ParseQuery(s), nil
	case url.Values:
		return params.FromMap(s), nil
	case map[string][]string:
		return params.FromMap(s), nil
	case map[string]string:
		m := make(map[string][]string, len(s))
		for k, v := range s {
			m[k] = []string{v}
		}
		return params.FromMap(m), nil
	case map[string]any:
		v := params.New()
		keys := make([]string, 0, len(s))
		for k := range s {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			v.SetList(k, expr.ValueList(s[k], modelField))
		}
		return v, nil
	default:
		// Unsupported source shapes degrade to an empty map rather than
		// failing the render.
		return params.New(), nil
	}
}

// applyFilter resolves the only/discard parameter names and drops keys
// accordingly. 'only' wins when both are present.
func (n *Node) applyFilter(working *params.Values, r expr.Resolver) error {
	only, err := resolveNames(n.only, r)
	if err != nil {
		return err
	}
	discard, err := resolveNames(n.discard, r)
	if err != nil {
		return err
	}
	switch {
	case len(only) > 0:
		keep := make(map[string]struct{}, len(only))
		for _, k := range only {
			keep[k] = struct{}{}
		}
		for _, k := range working.Keys() {
			if _, ok := keep[k]; !ok {
				working.Del(k)
			}
		}
	case len(discard) > 0:
		for _, k := range discard {
			working.Del(k)
		}
	}
	return nil
}

func resolveNames(names []expr.Expression, r expr.Resolver) ([]string, error) {
	out := make([]string, 0, len(names))
	for _, e := range names {
		v, err := e.Resolve(r, false)
		if err != nil {
			return nil, err
		}
		if s, ok := expr.Normalize(v, ""); ok && s != "" {
			out = append(out, s)
		}
	}
	return out, nil
}

// resolveBool resolves an option expression to its truth value. Truthiness
// follows the usual template-language rules: nil, false, zero numbers,
// and empty strings/collections are false; everything else is true.
func resolveBool(e expr.Expression, r expr.Resolver, def bool) (bool, error) {
	if e == nil {
		return def, nil
	}
	v, err := e.Resolve(r, false)
	if err != nil {
		return false, err
	}
	return truthy(v), nil
}

func truthy(v any) bool {
	switch val := v.(type) {
	case nil:
		return false
	case bool:
		return val
	case string:
		return val != ""
	case int:
		return val != 0
	case int64:
		return val != 0
	case float64:
		return val != 0
	default:
		return true
	}
}

// clean is the final pass over the working map: tracking parameters go
// first, then blank values, then each surviving value list is sorted so
// equivalent maps serialize identically.
func clean(working *params.Values, removeBlank, removeUTM bool) {
	for _, key := range working.Keys() {
		if removeUTM && strings.HasPrefix(strings.ToLower(key), "utm_") {
			working.Del(key)
			continue
		}
		vals := working.GetList(key)
		kept := vals[:0]
		for _, v := range vals {
			if v == "" && removeBlank {
				continue
			}
			kept = append(kept, v)
		}
		if len(kept) == 0 {
			working.Del(key)
			continue
		}
		sort.Strings(kept)
		working.SetList(key, kept)
	}
}
