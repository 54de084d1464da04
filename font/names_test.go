package font

import "testing"

func TestGlyphNameToRune(t *testing.T) {
	tests := []struct {
		name string
		want rune
		ok   bool
	}{
		{"A", 'A', true},
		{"space", ' ', true},
		{"eacute", 'é', true},
		{"Euro", '€', true},
		{"uni0041", 'A', true},
		{"u1F600", 0x1F600, true},
		{"a.sc", 'a', true},
		{"uniZZZZ", 0, false},
		{"nosuchglyph", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := GlyphNameToRune(tt.name)
			if ok != tt.ok || got != tt.want {
				t.Errorf("GlyphNameToRune(%q) = %q, %v; want %q, %v", tt.name, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestRuneToGlyphName(t *testing.T) {
	tests := []struct {
		r    rune
		want string
	}{
		{'A', "A"},
		{' ', "space"},
		{'é', "eacute"},
		{0x4E2D, "uni4E2D"},
	}
	for _, tt := range tests {
		if got := RuneToGlyphName(tt.r); got != tt.want {
			t.Errorf("RuneToGlyphName(%q) = %q, want %q", tt.r, got, tt.want)
		}
	}
}
