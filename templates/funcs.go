// templates/funcs.go

// Package templates wires the querystring directive into html/template.
// Pages receive a *tag.Context in their data and call the function with
// the directive text:
//
//	{{ querystring .QS "page=2" }}
//	{{ querystring .QS "only 'q' 'page' page+=next" }}
package templates

import (
	"fmt"
	"html/template"
	"net/url"
	"strings"
	"sync"

	"github.com/dalemusser/querytag/tag"
)

// Funcs returns helpers available to all templates, including the
// "querystring" directive function and anything added via RegisterFunc.
func Funcs() template.FuncMap {
	fm := template.FuncMap{
		"querystring": Querystring,

		// {{ "a b" | urlquery }} → "a+b"
		"urlquery": url.QueryEscape,

		// Small quality-of-life helpers
		"lower":  strings.ToLower,
		"upper":  strings.ToUpper,
		"join":   strings.Join,
		"printf": func(f string, a ...any) string { return fmt.Sprintf(f, a...) },
	}
	extraMu.RLock()
	for name, fn := range extra {
		fm[name] = fn
	}
	extraMu.RUnlock()
	return fm
}

var (
	extraMu sync.RWMutex
	extra   = template.FuncMap{}
)

// RegisterFunc adds an application-specific helper to the map returned by
// Funcs. Call before parsing templates.
func RegisterFunc(name string, fn any) {
	extraMu.Lock()
	extra[name] = fn
	extraMu.Unlock()
}

var (
	cacheMu sync.RWMutex
	cache   = map[string]*tag.Node{}
)

// Querystring compiles the directive (cached on its text) and renders it
// against ctx. The output is pre-encoded and safe to embed in attribute
// contexts, so it is returned as template.HTML.
func Querystring(ctx *tag.Context, directive string) (template.HTML, error) {
	node, err := compile(directive)
	if err != nil {
		return "", err
	}
	out, err := node.Render(ctx)
	if err != nil {
		return "", fmt.Errorf("render %q: %w", directive, err)
	}
	return template.HTML(out), nil
}

func compile(directive string) (*tag.Node, error) {
	cacheMu.RLock()
	node, ok := cache[directive]
	cacheMu.RUnlock()
	if ok {
		return node, nil
	}
	node, err := tag.Compile(directive)
	if err != nil {
		return nil, err
	}
	cacheMu.Lock()
	cache[directive] = node
	cacheMu.Unlock()
	return node, nil
}
