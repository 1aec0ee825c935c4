package options

import (
	"reflect"
	"testing"
)

func TestParseLiteral(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  any
	}{
		{"single quoted array", `['firefox']`, []any{"firefox"}},
		{"double quoted array", `["chrome", "edge"]`, []any{"chrome", "edge"}},
		{"unquoted object keys", `{type: 'module'}`, map[string]any{"type": "module"}},
		{"quoted object keys", `{"run_at": "document_end"}`, map[string]any{"run_at": "document_end"}},
		{"trailing comma", `{matches: ['<all_urls>'],}`, map[string]any{"matches": []any{"<all_urls>"}}},
		{"nested", `{icon: {'16': 'icon16.png'}}`, map[string]any{"icon": map[string]any{"16": "icon16.png"}}},
		{"booleans", `{allFrames: true, persistent: false}`, map[string]any{"allFrames": true, "persistent": false}},
		{"numbers", `[1, -2.5]`, []any{1.0, -2.5}},
		{"null", `null`, nil},
		{"bare string", `'document_start'`, "document_start"},
		{"empty array", `[]`, []any{}},
		{"empty object", `{}`, map[string]any{}},
		{"escapes", `"a\n\"b\""`, "a\n\"b\""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseLiteral(tt.input)
			if err != nil {
				t.Fatalf("ParseLiteral(%q) error: %v", tt.input, err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseLiteral(%q) = %#v, want %#v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseLiteralRejectsCode(t *testing.T) {
	// The parser must never accept anything that smells like executable
	// code; rejecting it is what keeps meta values data-only.
	inputs := []string{
		`alert('hi')`,
		`{main: () => {}}`,
		`[1, foo()]`,
		`{a: b}`,
		`'unterminated`,
		`{key 'value'}`,
		`[1, 2] extra`,
	}

	for _, input := range inputs {
		if _, err := ParseLiteral(input); err == nil {
			t.Errorf("ParseLiteral(%q) succeeded, want error", input)
		}
	}
}
