package tag

import (
	"testing"

	"github.com/dalemusser/querytag/expr"
	"github.com/dalemusser/querytag/params"
)

func applyOne(t *testing.T, working *params.Values, directive string, vars map[string]any) {
	t.Helper()
	n, err := Compile(directive)
	if err != nil {
		t.Fatalf("Compile(%q) error: %v", directive, err)
	}
	if len(n.modifiers) != 1 {
		t.Fatalf("Compile(%q) produced %d modifiers, want 1", directive, len(n.modifiers))
	}
	rm, err := n.modifiers[0].resolve(expr.MapResolver(vars), expr.DefaultModelField)
	if err != nil {
		t.Fatalf("resolve error: %v", err)
	}
	rm.apply(working)
}

func TestAddCollapsesDuplicateIncoming(t *testing.T) {
	working := params.New()
	applyOne(t, working, "foo+=dupes", map[string]any{"dupes": []string{"d", "d", "e"}})
	if got := working.Encode(); got != "foo=d&foo=e" {
		t.Errorf("working = %q, want foo=d&foo=e", got)
	}
}

func TestAddKeepsExistingValues(t *testing.T) {
	working := params.ParseQuery("foo=a&foo=b")
	applyOne(t, working, "foo+=vals", map[string]any{"vals": []string{"b", "c"}})
	if got := working.Encode(); got != "foo=a&foo=b&foo=c" {
		t.Errorf("working = %q, want foo=a&foo=b&foo=c", got)
	}
}

func TestRemoveLeavesEmptyKeyUntilCleanup(t *testing.T) {
	working := params.ParseQuery("foo=a")
	applyOne(t, working, "foo-='a'", nil)
	if !working.Has("foo") {
		t.Fatal("remove should leave the emptied key for cleanup to delete")
	}
	clean(working, true, true)
	if working.Has("foo") {
		t.Error("cleanup should delete the emptied key")
	}
}

func TestSetReplacesWholeList(t *testing.T) {
	working := params.ParseQuery("foo=a&foo=b&bar=1")
	applyOne(t, working, "foo=two", map[string]any{"two": 2})
	if got := working.Encode(); got != "foo=2&bar=1" {
		t.Errorf("working = %q, want foo=2&bar=1", got)
	}
}

func TestKeyFallsBackToRawToken(t *testing.T) {
	// An unresolvable bare key keeps its own text as the parameter name.
	working := params.New()
	applyOne(t, working, "mystery='x'", nil)
	if got := working.Encode(); got != "mystery=x" {
		t.Errorf("working = %q, want mystery=x", got)
	}
}
