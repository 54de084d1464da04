package pdfrender

import (
	"errors"
	"math"
	"testing"

	"github.com/gogpu/gg"
)

func TestValidateMode(t *testing.T) {
	black := Gray(0)
	style := DefaultStrokeStyle()

	tests := []struct {
		name string
		mode DrawMode
		ok   bool
	}{
		{"fill", Fill{Paint: black, Alpha: 1}, true},
		{"fill transparent", Fill{Paint: black, Alpha: 0}, true},
		{"fill pattern", Fill{Paint: Pattern{Name: "P0"}, Alpha: 0.5}, true},
		{"stroke", Stroke{Paint: black, Alpha: 1, Style: style}, true},
		{"fill stroke", FillStroke{FillPaint: black, FillAlpha: 1, StrokePaint: black, StrokeAlpha: 1, Style: style}, true},
		{"dashed", Stroke{Paint: black, Alpha: 1, Style: StrokeStyle{Width: 1, Dash: &DashPattern{Array: []float64{3, 1}}}}, true},
		{"nil", nil, false},
		{"pointer", &Fill{Paint: black, Alpha: 1}, false},
		{"nil paint", Fill{Alpha: 1}, false},
		{"alpha above one", Fill{Paint: black, Alpha: 1.5}, false},
		{"negative alpha", Stroke{Paint: black, Alpha: -0.1, Style: style}, false},
		{"nan alpha", Fill{Paint: black, Alpha: math.NaN()}, false},
		{"stroke alpha", FillStroke{FillPaint: black, FillAlpha: 1, StrokePaint: black, StrokeAlpha: 2, Style: style}, false},
		{"stroke paint", FillStroke{FillPaint: black, FillAlpha: 1, StrokeAlpha: 1, Style: style}, false},
		{"negative width", Stroke{Paint: black, Alpha: 1, Style: StrokeStyle{Width: -1}}, false},
		{"inf width", Stroke{Paint: black, Alpha: 1, Style: StrokeStyle{Width: math.Inf(1)}}, false},
		{"bad cap", Stroke{Paint: black, Alpha: 1, Style: StrokeStyle{Width: 1, Cap: 9}}, false},
		{"bad join", Stroke{Paint: black, Alpha: 1, Style: StrokeStyle{Width: 1, Join: -1}}, false},
		{"negative dash", Stroke{Paint: black, Alpha: 1, Style: StrokeStyle{Width: 1, Dash: &DashPattern{Array: []float64{-1}}}}, false},
		{"nan phase", Stroke{Paint: black, Alpha: 1, Style: StrokeStyle{Width: 1, Dash: &DashPattern{Array: []float64{1}, Phase: math.NaN()}}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateMode(tt.mode)
			if tt.ok && err != nil {
				t.Errorf("got %v, want nil", err)
			}
			if !tt.ok && !errors.Is(err, ErrInvalidDrawMode) {
				t.Errorf("got %v, want ErrInvalidDrawMode", err)
			}
		})
	}
}

func TestDefaultStrokeStyle(t *testing.T) {
	s := DefaultStrokeStyle()
	if s.Width != 1 || s.MiterLimit != 10 {
		t.Errorf("got width %v miter %v, want 1 and 10", s.Width, s.MiterLimit)
	}
	if s.Cap != gg.LineCapButt || s.Join != gg.LineJoinMiter || s.Dash != nil {
		t.Errorf("got %+v, want butt caps, miter joins, solid", s)
	}
}

func TestDashPatternGG(t *testing.T) {
	var nilDash *DashPattern
	if nilDash.GG() != nil {
		t.Error("nil pattern should convert to nil")
	}
	if (&DashPattern{}).GG() != nil {
		t.Error("empty pattern should convert to nil")
	}
	if (&DashPattern{Array: []float64{0, 0}}).GG() != nil {
		t.Error("all-zero pattern should convert to nil")
	}

	src := []float64{3, 2}
	d := (&DashPattern{Array: src, Phase: 1}).GG()
	if d == nil {
		t.Fatal("got nil dash")
	}
	if len(d.Array) != 2 || d.Array[0] != 3 || d.Array[1] != 2 || d.Offset != 1 {
		t.Errorf("got %+v, want [3 2] offset 1", d)
	}
	d.Array[0] = 9
	if src[0] != 3 {
		t.Error("GG shares the caller's slice")
	}
}

func TestStrokeStyleClone(t *testing.T) {
	s := DefaultStrokeStyle()
	s.Dash = &DashPattern{Array: []float64{4, 1}, Phase: 2}

	c := s.Clone()
	s.Dash.Array[0] = 7
	s.Dash.Phase = 0

	if c.Dash == s.Dash {
		t.Fatal("Clone shares the dash pattern")
	}
	if c.Dash.Array[0] != 4 || c.Dash.Phase != 2 {
		t.Errorf("got %+v, want [4 1] phase 2", *c.Dash)
	}
	if solid := DefaultStrokeStyle().Clone(); solid.Dash != nil {
		t.Error("solid style gained a dash")
	}
}
