// expr/expr.go

// Package expr compiles the raw tokens of a querystring directive into
// late-bound expressions and resolves them against a variable resolver at
// render time.
//
// A token is one of three things: a quoted literal ('new' or "new"), a
// reserved word literal (nil/null/None, true/True, false/False), or a
// variable reference. Quoted tokens are never looked up. Variable
// references that cannot be resolved fall back to their raw text when the
// token looks like a plain word (no member access, no filter marker);
// dotted or filtered tokens stay strict.
package expr

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned by a Resolver when a variable name does not
// exist in the render context.
var ErrNotFound = errors.New("variable not found")

// Resolver is the boundary to the host template engine's variable lookup.
// Resolve returns the value bound to name, or an error wrapping
// ErrNotFound when the name does not exist.
type Resolver interface {
	Resolve(name string) (any, error)
}

// Expression is a token that can be resolved against a Resolver.
type Expression interface {
	// Resolve evaluates the expression. With ignoreFailures set, an
	// unresolvable strict reference yields (nil, nil) instead of an error.
	Resolve(r Resolver, ignoreFailures bool) (any, error)

	// Token returns the raw source text of the expression.
	Token() string
}

// Compile classifies a raw token and returns the matching Expression.
func Compile(token string) Expression {
	stripped := strings.Trim(token, `'"`)
	if len(token)-len(stripped) == 2 {
		// A single matching pair of quotes; the inner text is literal.
		return literal{token: token, value: stripped}
	}
	switch token {
	case "nil", "null", "None":
		return literal{token: token, value: nil}
	case "true", "True":
		return literal{token: token, value: true}
	case "false", "False":
		return literal{token: token, value: false}
	}
	return lookup{token: token}
}

type literal struct {
	token string
	value any
}

func (l literal) Resolve(Resolver, bool) (any, error) { return l.value, nil }
func (l literal) Token() string                       { return l.token }

type lookup struct {
	token string
}

func (l lookup) Resolve(r Resolver, ignoreFailures bool) (any, error) {
	if r != nil {
		v, err := r.Resolve(l.token)
		if err == nil {
			return v, nil
		}
		if !errors.Is(err, ErrNotFound) {
			return nil, err
		}
	}
	// Unquoted plain words double as literals for convenience. Tokens with
	// a member-access or filter marker are real references and stay strict.
	if !strings.ContainsAny(l.token, ".|") {
		return l.token, nil
	}
	if ignoreFailures {
		return nil, nil
	}
	return nil, fmt.Errorf("resolve %q: %w", l.token, ErrNotFound)
}

func (l lookup) Token() string { return l.token }
