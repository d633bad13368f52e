package tag

import (
	"errors"
	"testing"
)

func TestCompileSyntaxErrors(t *testing.T) {
	tests := []struct {
		name      string
		directive string
	}{
		{"bare as", "as"},
		{"as without variable name", "page=2 as"},
		{"as not at end", "as qs page=2"},
		{"as with two names", "page=2 as a b"},
		{"operator with no key", "= 2"},
		{"leading operator run", "+= x"},
		{"trailing operator without value", "page="},
		{"consecutive operators", "page = = 2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Compile(tt.directive)
			var syntaxErr *SyntaxError
			if !errors.As(err, &syntaxErr) {
				t.Errorf("Compile(%q) error = %v, want *SyntaxError", tt.directive, err)
			}
		})
	}
}

func TestCompileAsClause(t *testing.T) {
	n, err := Compile("page=2 as qs")
	if err != nil {
		t.Fatalf("Compile() error: %v", err)
	}
	if got := n.TargetVar(); got != "qs" {
		t.Errorf("TargetVar() = %q, want %q", got, "qs")
	}
	if len(n.modifiers) != 1 {
		t.Errorf("modifiers = %d, want 1", len(n.modifiers))
	}
}

func TestCompileClauses(t *testing.T) {
	tests := []struct {
		name         string
		directive    string
		wantOnly     int
		wantDiscard  int
		wantModifier int
	}{
		{"empty", "", 0, 0, 0},
		{"tag name skipped", "querystring page=2", 0, 0, 1},
		{"only names", "only 'foo' 'bar'", 2, 0, 0},
		{"discard names", "discard 'foo' 'bar'", 0, 2, 0},
		{"only stops before modifier key", "only 'foo' 'bar' baz=letter_a newparam='new'", 2, 0, 2},
		{"modifiers only", "a=1 b+=2 c-=3", 0, 0, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := Compile(tt.directive)
			if err != nil {
				t.Fatalf("Compile(%q) error: %v", tt.directive, err)
			}
			if len(n.only) != tt.wantOnly {
				t.Errorf("only = %d, want %d", len(n.only), tt.wantOnly)
			}
			if len(n.discard) != tt.wantDiscard {
				t.Errorf("discard = %d, want %d", len(n.discard), tt.wantDiscard)
			}
			if len(n.modifiers) != tt.wantModifier {
				t.Errorf("modifiers = %d, want %d", len(n.modifiers), tt.wantModifier)
			}
		})
	}
}

func TestCompileRecognizesOptions(t *testing.T) {
	n, err := Compile("remove_blank=False remove_utm=False source_data=src model_value_field='Slug' page=2")
	if err != nil {
		t.Fatalf("Compile() error: %v", err)
	}
	if n.removeBlank == nil || n.removeUTM == nil || n.sourceData == nil || n.modelValueField == nil {
		t.Fatal("expected all options to be captured")
	}
	if len(n.modifiers) != 1 {
		t.Fatalf("modifiers = %d, want 1 (options must not become modifiers)", len(n.modifiers))
	}
	if n.modifiers[0].key.Token() != "page" {
		t.Errorf("modifier key = %q, want %q", n.modifiers[0].key.Token(), "page")
	}
}

func TestCompileOperatorKinds(t *testing.T) {
	n, err := Compile("a=1 b+=2 c-=3")
	if err != nil {
		t.Fatalf("Compile() error: %v", err)
	}
	want := []Operator{OpSet, OpAdd, OpRemove}
	for i, m := range n.modifiers {
		if m.op != want[i] {
			t.Errorf("modifier %d op = %q, want %q", i, m.op, want[i])
		}
	}
}

func TestMustCompilePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustCompile did not panic on a syntax error")
		}
	}()
	MustCompile("as")
}
