// tag/token.go

// Package tag implements the querystring directive: parsing of the
// directive argument list into modifier expressions and options, and
// rendering of the resulting query string against a render context.
//
// Directive syntax:
//
//	querystring [only <name>... | discard <name>...]
//	            [<key><op><value>]...
//	            [remove_blank=<bool>] [remove_utm=<bool>]
//	            [source_data=<expr>] [model_value_field=<expr>]
//	            [as <variable_name>]
//
// where <op> is one of "=", "+=" or "-=" and whitespace around the
// operator is insignificant.
package tag

import (
	"regexp"
	"strings"
)

// Operator identifies a parameter modification.
type Operator string

const (
	// OpSet replaces a key's values, or deletes the key when the value
	// resolves to null.
	OpSet Operator = "="
	// OpAdd appends values not already present.
	OpAdd Operator = "+="
	// OpRemove removes matching values.
	OpRemove Operator = "-="
)

// operators in split-precedence order: the two-character operators must be
// tried before the bare "=" to avoid mis-splitting "+=" into "+", "=".
var operators = []Operator{OpAdd, OpRemove, OpSet}

func isOperator(bit string) bool {
	switch Operator(bit) {
	case OpSet, OpAdd, OpRemove:
		return true
	}
	return false
}

// kwargPattern recognizes a whole bit of the form key<ws>*op<ws>*value,
// where the key contains no operator characters or whitespace and the
// value is either a quoted string or free of "=". Keeping "=" out of the
// unquoted value class makes normalization idempotent: no emitted atom
// can be split again.
var kwargPattern = regexp.MustCompile(`^([^-+=\s'"]+)\s*(-=|\+=|=)\s*('[^']*'|"[^"]*"|[^\s=]+)$`)

// SplitArgs splits a raw directive argument string on whitespace, keeping
// single- or double-quoted substrings atomic including their quotes. The
// quotes must survive splitting so that expression compilation can tell
// literals from variable references.
func SplitArgs(s string) []string {
	var (
		bits  []string
		cur   strings.Builder
		quote byte
	)
	flush := func() {
		if cur.Len() > 0 {
			bits = append(bits, cur.String())
			cur.Reset()
		}
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case quote != 0:
			cur.WriteByte(c)
			if c == quote {
				quote = 0
			}
		case c == '\'' || c == '"':
			quote = c
			cur.WriteByte(c)
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			flush()
		default:
			cur.WriteByte(c)
		}
	}
	flush()
	return bits
}

// NormalizeBits splits mixed key/operator/value bits into standalone
// atoms, so "page=2", "page =2", "page= 2" and "page = 2" all normalize
// to the same three atoms. Already-normalized input passes through
// unchanged; the function is idempotent.
func NormalizeBits(bits []string) []string {
	out := make([]string, 0, len(bits))
	for _, bit := range bits {
		out = appendNormalized(out, bit)
	}
	return out
}

func appendNormalized(out []string, bit string) []string {
	if isOperator(bit) {
		return append(out, bit)
	}
	// Quoted atoms are literal text; never split them.
	if strings.HasPrefix(bit, "'") || strings.HasPrefix(bit, `"`) {
		return append(out, bit)
	}
	if m := kwargPattern.FindStringSubmatch(bit); m != nil {
		return append(out, m[1], m[2], m[3])
	}
	for _, op := range operators {
		if strings.HasPrefix(bit, string(op)) {
			out = append(out, string(op))
			return appendNormalized(out, bit[len(op):])
		}
		if strings.HasSuffix(bit, string(op)) {
			out = appendNormalized(out, bit[:len(bit)-len(op)])
			return append(out, string(op))
		}
	}
	return append(out, bit)
}
