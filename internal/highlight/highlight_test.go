package highlight

import "testing"

func TestForExtension(t *testing.T) {
	tests := []struct {
		hint string
		want string
	}{
		{"xml", "xml"},
		{".xml", "xml"},
		{"Settings.XML", "xml"},
		{"json", "json"},
		{"go", "go"},
		{"", ""},
		{".", ""},
		{"no-such-language-zzz", ""},
	}
	for _, tt := range tests {
		t.Run(tt.hint, func(t *testing.T) {
			got := ForExtension(tt.hint)
			if got.Language != tt.want {
				t.Errorf("ForExtension(%q) = %q, want %q", tt.hint, got.Language, tt.want)
			}
			if (tt.want == "") != got.None() {
				t.Errorf("ForExtension(%q).None() = %v", tt.hint, got.None())
			}
		})
	}
}
