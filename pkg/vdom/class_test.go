package vdom

import "testing"

func TestNormalizeClass(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"nil", nil, ""},
		{"string", "  a   b ", "a b"},
		{"slice", []string{"a", "b c"}, "a b c"},
		{"nested", []any{"a", []string{"b"}, map[string]bool{"c": true}}, "a b c"},
		{"bool map", map[string]bool{"z": true, "off": false, "a": true}, "a z"},
		{"any map", map[string]any{"on": 1, "off": 0, "s": "yes", "e": "", "n": nil}, "on s"},
		{"unsupported", 42, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeClass(tt.in); got != tt.want {
				t.Errorf("NormalizeClass() = %q, want %q", got, tt.want)
			}
		})
	}
}
