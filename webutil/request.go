// webutil/request.go

// Package webutil adapts incoming HTTP requests to the querystring
// directive's render context.
package webutil

import (
	"net/http"

	"github.com/dalemusser/querytag/params"
	"github.com/dalemusser/querytag/tag"
)

// RequestParams returns the request's query parameters as an ordered
// multi-valued map. The raw query is parsed directly so that key order is
// preserved (url.Values would lose it). The result is owned by the
// caller; the request is not touched again.
func RequestParams(r *http.Request) *params.Values {
	if r == nil || r.URL == nil {
		return params.New()
	}
	return params.ParseQuery(r.URL.RawQuery)
}

// RenderContext builds a directive render context from a request and a
// set of template variables. vars may be nil; the directive's 'as' option
// allocates the map on demand.
func RenderContext(r *http.Request, vars map[string]any) *tag.Context {
	return &tag.Context{
		Params: RequestParams(r),
		Vars:   vars,
	}
}
