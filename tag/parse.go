// tag/parse.go
package tag

import (
	"fmt"

	"github.com/dalemusser/querytag/expr"
)

// SyntaxError reports a malformed directive. It is returned at
// compile time, never during rendering.
type SyntaxError struct {
	Msg string
}

func (e *SyntaxError) Error() string {
	return "querystring: " + e.Msg
}

func syntaxErrorf(format string, args ...any) error {
	return &SyntaxError{Msg: fmt.Sprintf(format, args...)}
}

// kwargGroup is one grouped (key, operator, values...) run of atoms. A
// group without an operator holds stray atoms that belong to no modifier
// and is ignored by the caller.
type kwargGroup struct {
	key    expr.Expression
	op     Operator
	values []expr.Expression
}

// Compile parses a full directive argument list into a Node. The input is
// the text between the tag delimiters, e.g.
//
//	only 'page' 'size' page=2 remove_blank=False as qs
//
// A leading "querystring" tag-name bit is tolerated and skipped.
func Compile(directive string) (*Node, error) {
	bits := NormalizeBits(SplitArgs(directive))
	if len(bits) > 0 && bits[0] == "querystring" {
		bits = bits[1:]
	}

	node := &Node{}

	// The 'as' clause must sit at the very end: "... as <name>".
	for i, bit := range bits {
		if bit != "as" {
			continue
		}
		if i != len(bits)-2 {
			return nil, syntaxErrorf("the 'as' option must be used at the end of the tag, followed by a single variable name")
		}
		node.targetVar = bits[len(bits)-1]
		bits = bits[:len(bits)-2]
		break
	}

	// Leading 'only'/'discard' clause: parameter names run until the next
	// atom is a modifier key (detected by the operator that follows it).
	if len(bits) > 0 && (bits[0] == "only" || bits[0] == "discard") {
		clause := bits[0]
		rest := bits[1:]
		var names []expr.Expression
		for i, bit := range rest {
			if i+1 < len(rest) && isOperator(rest[i+1]) {
				break
			}
			names = append(names, expr.Compile(bit))
		}
		if clause == "only" {
			node.only = names
		} else {
			node.discard = names
		}
		bits = rest[len(names):]
	}

	groups, err := extractKwargGroups(bits)
	if err != nil {
		return nil, err
	}
	for _, g := range groups {
		if g.op == "" {
			// Stray atoms with no operator; nothing to do with them.
			continue
		}
		value := g.values[0]
		switch g.key.Token() {
		case "remove_blank":
			node.removeBlank = value
		case "remove_utm":
			node.removeUTM = value
		case "source_data":
			node.sourceData = value
		case "model_value_field":
			node.modelValueField = value
		default:
			node.modifiers = append(node.modifiers, &modifier{
				op:    g.op,
				key:   g.key,
				value: value,
			})
		}
	}
	return node, nil
}

// extractKwargGroups groups the normalized atom stream into
// (key, operator, value) runs. Atoms between one group's value and the
// next operator accumulate onto the open group; the atom immediately
// before an operator is popped off as the next group's key.
func extractKwargGroups(bits []string) ([]kwargGroup, error) {
	var (
		groups  []kwargGroup
		open    *kwargGroup
		pending []expr.Expression
	)
	closeOpen := func() error {
		if open == nil {
			if len(pending) > 0 {
				groups = append(groups, kwargGroup{values: pending})
				pending = nil
			}
			return nil
		}
		if len(pending) == 0 {
			return syntaxErrorf("operator %q for %q has no value", open.op, open.key.Token())
		}
		open.values = pending
		groups = append(groups, *open)
		open = nil
		pending = nil
		return nil
	}

	for _, bit := range bits {
		if bit == "as" {
			break
		}
		if !isOperator(bit) {
			pending = append(pending, expr.Compile(bit))
			continue
		}
		if len(pending) == 0 {
			return nil, syntaxErrorf("operator %q has no preceding parameter name", bit)
		}
		key := pending[len(pending)-1]
		pending = pending[:len(pending)-1]
		if err := closeOpen(); err != nil {
			return nil, err
		}
		open = &kwargGroup{key: key, op: Operator(bit)}
	}
	if err := closeOpen(); err != nil {
		return nil, err
	}
	return groups, nil
}

// MustCompile is like Compile but panics on a syntax error. Intended for
// directives hard-coded at program start.
func MustCompile(directive string) *Node {
	n, err := Compile(directive)
	if err != nil {
		panic(err)
	}
	return n
}
