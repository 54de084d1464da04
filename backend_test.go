package pdfrender

import (
	"testing"

	"github.com/gogpu/gg"

	"github.com/gogpu/pdfrender/font"
	"github.com/gogpu/pdfrender/geom"
	"github.com/gogpu/pdfrender/pdf"
)

type drawCall struct {
	outline geom.Outline
	mode    DrawMode
	rule    geom.FillRule
	t       geom.Transform
}

// mockBackend records Draw calls and relies on the default diagnostics.
type mockBackend struct {
	NopDiagnostics
	draws   []drawCall
	clips   []*geom.Outline
	viewBox *geom.Rect
	spans   []TextSpan
}

func (b *mockBackend) SetClipPath(clip *geom.Outline) { b.clips = append(b.clips, clip) }

func (b *mockBackend) Draw(o *geom.Outline, mode DrawMode, rule geom.FillRule, t geom.Transform) error {
	if err := ValidateMode(mode); err != nil {
		return err
	}
	b.draws = append(b.draws, drawCall{outline: *o, mode: mode, rule: rule, t: t})
	return nil
}

func (b *mockBackend) SetViewBox(r geom.Rect) { b.viewBox = &r }

func (b *mockBackend) DrawImage(pdf.Ref, *pdf.ImageXObject, *pdf.Resources, geom.Transform, BlendMode, pdf.Resolver) error {
	return nil
}

func (b *mockBackend) DrawInlineImage(*pdf.ImageXObject, *pdf.Resources, geom.Transform, BlendMode, pdf.Resolver) error {
	return nil
}

func (b *mockBackend) DrawGlyph(g *font.Glyph, mode DrawMode, t geom.Transform) error {
	return DrawGlyph(b, g, mode, t)
}

func (b *mockBackend) GetFont(pdf.Object, pdf.Resolver) (*font.Entry, error) { return nil, nil }

func (b *mockBackend) AddText(span TextSpan) { b.spans = append(b.spans, span) }

var _ Backend = (*mockBackend)(nil)

func triangle() geom.Outline {
	var b geom.Builder
	b.MoveTo(0, 0).LineTo(1, 0).LineTo(0, 1).Close()
	return b.Outline()
}

func TestDrawGlyphDelegatesToDraw(t *testing.T) {
	g := &font.Glyph{ID: 7, Outline: triangle(), Advance: 0.5}
	mode := Fill{Paint: RGB(0, 0, 0), Alpha: 1}
	tr := geom.Scale(12, 12)

	viaGlyph := &mockBackend{}
	if err := viaGlyph.DrawGlyph(g, mode, tr); err != nil {
		t.Fatalf("DrawGlyph: %v", err)
	}
	viaDraw := &mockBackend{}
	if err := viaDraw.Draw(&g.Outline, mode, geom.Winding, tr); err != nil {
		t.Fatalf("Draw: %v", err)
	}

	if len(viaGlyph.draws) != 1 || len(viaDraw.draws) != 1 {
		t.Fatalf("got %d and %d draws, want 1 each", len(viaGlyph.draws), len(viaDraw.draws))
	}
	a, b := viaGlyph.draws[0], viaDraw.draws[0]
	if a.rule != geom.NonZero {
		t.Errorf("got rule %v, want NonZero", a.rule)
	}
	if a.rule != b.rule || a.t != b.t || a.outline.Bounds() != b.outline.Bounds() || a.outline.Len() != b.outline.Len() {
		t.Errorf("DrawGlyph call %+v differs from Draw call %+v", a, b)
	}
}

func TestDrawGlyphNil(t *testing.T) {
	b := &mockBackend{}
	if err := DrawGlyph(b, nil, Fill{Paint: Gray(0), Alpha: 1}, geom.Identity()); err != nil {
		t.Fatalf("got %v, want nil", err)
	}
	if len(b.draws) != 0 {
		t.Errorf("got %d draws, want 0", len(b.draws))
	}
}

func TestNopDiagnostics(t *testing.T) {
	var d Diagnostics = NopDiagnostics{}
	d.BugTextNoFont([]byte("abc"))
	d.BugTextInvisible("abc")
	d.BugPostScript(nil)
	d.BugOp(3)
	d.InspectOp(pdf.Op{Name: "re", Operands: []pdf.Object{pdf.Integer(1)}})
}

func TestPaintConstructors(t *testing.T) {
	tests := []struct {
		name string
		got  Solid
		want gg.RGBA
	}{
		{"rgb", RGB(1, 0.5, 0), gg.RGBA{R: 1, G: 0.5, B: 0, A: 1}},
		{"rgb clamped", RGB(2, -1, 0.25), gg.RGBA{R: 1, G: 0, B: 0.25, A: 1}},
		{"gray", Gray(0.25), gg.RGBA{R: 0.25, G: 0.25, B: 0.25, A: 1}},
		{"cmyk black", CMYK(0, 0, 0, 1), gg.RGBA{A: 1}},
		{"cmyk cyan", CMYK(1, 0, 0, 0), gg.RGBA{R: 0, G: 1, B: 1, A: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got.Color != tt.want {
				t.Errorf("got %+v, want %+v", tt.got.Color, tt.want)
			}
		})
	}
}

func TestPaintString(t *testing.T) {
	if got := (Pattern{Name: "P1"}).String(); got != "pattern /P1" {
		t.Errorf("got %q", got)
	}
	if got := (Pattern{Name: "P1", Ref: pdf.Ref{Num: 4}}).String(); got != "pattern /P1 4 0 R" {
		t.Errorf("got %q", got)
	}
	if got := Gray(0).String(); got != "rgba(0 0 0 1)" {
		t.Errorf("got %q", got)
	}
}
