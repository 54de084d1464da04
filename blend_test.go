package pdfrender

import (
	"testing"

	"github.com/gogpu/pdfrender/pdf"
)

func TestParseBlendMode(t *testing.T) {
	tests := []struct {
		name pdf.Name
		want BlendMode
		ok   bool
	}{
		{"Normal", BlendNormal, true},
		{"Compatible", BlendNormal, true},
		{"Multiply", BlendMultiply, true},
		{"Overlay", BlendOverlay, true},
		{"Darken", BlendDarken, true},
		{"Luminosity", BlendLuminosity, true},
		{"Bogus", BlendNormal, false},
		{"", BlendNormal, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.name), func(t *testing.T) {
			got, ok := ParseBlendMode(tt.name)
			if got != tt.want || ok != tt.ok {
				t.Errorf("got %v, %v; want %v, %v", got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestBlendModeStringRoundTrip(t *testing.T) {
	for m := BlendNormal; m <= BlendLuminosity; m++ {
		got, ok := ParseBlendMode(pdf.Name(m.String()))
		if !ok || got != m {
			t.Errorf("%v: parsed back as %v, %v", m, got, ok)
		}
	}
	if got := BlendMode(200).String(); got != "Unknown" {
		t.Errorf("got %q, want Unknown", got)
	}
}

func TestTextMode(t *testing.T) {
	visible := map[TextMode]bool{
		TextFill: true, TextStroke: true, TextFillStroke: true, TextInvisible: false,
		TextFillClip: true, TextStrokeClip: true, TextFillStrokeClip: true, TextClip: false,
	}
	for m, want := range visible {
		if got := m.Visible(); got != want {
			t.Errorf("TextMode(%d).Visible() = %v, want %v", m, got, want)
		}
		if got, want := m.Clips(), m >= TextFillClip; got != want {
			t.Errorf("TextMode(%d).Clips() = %v, want %v", m, got, want)
		}
	}
}

func TestTextSpanClone(t *testing.T) {
	s := TextSpan{Text: "ab", Chars: []TextChar{{Offset: 0}, {Offset: 1, Pos: 0.5}}}
	c := s.Clone()
	c.Chars[1].Pos = 9
	if s.Chars[1].Pos != 0.5 {
		t.Error("Clone shares Chars")
	}
}
