package templates

import (
	"bytes"
	"html/template"
	"strings"
	"testing"

	"github.com/dalemusser/querytag/params"
	"github.com/dalemusser/querytag/tag"
)

func renderTemplate(t *testing.T, src string, data any) string {
	t.Helper()
	tpl, err := template.New("test").Funcs(Funcs()).Parse(src)
	if err != nil {
		t.Fatalf("parse template: %v", err)
	}
	var buf bytes.Buffer
	if err := tpl.Execute(&buf, data); err != nil {
		t.Fatalf("execute template: %v", err)
	}
	return buf.String()
}

func testData() map[string]any {
	return map[string]any{
		"QS": &tag.Context{
			Params: params.ParseQuery("page=3&q=shoes"),
			Vars:   map[string]any{"next": 4},
		},
	}
}

func TestQuerystringFunc(t *testing.T) {
	got := renderTemplate(t, `<a href="{{ querystring .QS "page=next" }}">next</a>`, testData())
	want := `<a href="?page=4&q=shoes">next</a>`
	if got != want {
		t.Errorf("rendered %q, want %q", got, want)
	}
}

func TestQuerystringFuncOutputNotEscaped(t *testing.T) {
	// The output is pre-encoded; html/template must not escape the "&".
	got := renderTemplate(t, `{{ querystring .QS "extra='1'" }}`, testData())
	if strings.Contains(got, "&amp;") {
		t.Errorf("output was re-escaped: %q", got)
	}
}

func TestQuerystringFuncAsBinding(t *testing.T) {
	data := testData()
	got := renderTemplate(t, `{{ querystring .QS "q=None as qs" }}[{{ .QS.Vars.qs }}]`, data)
	if got != "[?page=3]" {
		t.Errorf("rendered %q, want %q", got, "[?page=3]")
	}
}

func TestQuerystringFuncSyntaxError(t *testing.T) {
	tpl, err := template.New("bad").Funcs(Funcs()).Parse(`{{ querystring .QS "as" }}`)
	if err != nil {
		t.Fatalf("parse template: %v", err)
	}
	if err := tpl.Execute(&bytes.Buffer{}, testData()); err == nil {
		t.Error("expected execution to fail on a malformed directive")
	}
}

func TestRegisterFunc(t *testing.T) {
	RegisterFunc("shout", func(s string) string { return strings.ToUpper(s) + "!" })
	got := renderTemplate(t, `{{ shout "hi" }}`, testData())
	if got != "HI!" {
		t.Errorf("rendered %q, want HI!", got)
	}
}

func TestCompileCaching(t *testing.T) {
	first, err := compile("page=2")
	if err != nil {
		t.Fatalf("compile error: %v", err)
	}
	second, err := compile("page=2")
	if err != nil {
		t.Fatalf("compile error: %v", err)
	}
	if first != second {
		t.Error("expected the same *tag.Node from the cache")
	}
}
