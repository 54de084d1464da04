package main

import (
	"testing"

	"github.com/gogpu/pdfrender"
	"github.com/gogpu/pdfrender/backend/scene"
	"github.com/gogpu/pdfrender/backend/trace"
	"github.com/gogpu/pdfrender/geom"
	"github.com/gogpu/pdfrender/pdf/ximage"
)

func TestDemoPageTrace(t *testing.T) {
	doc, err := newDemoDoc()
	if err != nil {
		t.Fatal(err)
	}
	tr := trace.New(nil)
	if err := doc.draw(tr, pdfrender.DefaultRenderOptions()); err != nil {
		t.Fatalf("draw: %v", err)
	}

	counts := make(map[trace.EventKind]int)
	for _, ev := range tr.Finish() {
		counts[ev.Kind()]++
	}
	want := map[trace.EventKind]int{
		trace.KindViewBox:       1,
		trace.KindDraw:          2,
		trace.KindFont:          2,
		trace.KindText:          2,
		trace.KindImage:         1,
		trace.KindInlineImage:   1,
		trace.KindInvisibleText: 1,
		trace.KindClip:          1,
	}
	for k, n := range want {
		if counts[k] != n {
			t.Errorf("%s events = %d, want %d", k, counts[k], n)
		}
	}
	// The space may or may not map to a glyph.
	if n := counts[trace.KindGlyph]; n < 9 || n > 10 {
		t.Errorf("Glyph events = %d, want 9 or 10", n)
	}
	if counts[trace.KindNoFont] != 0 || counts[trace.KindBugOp] != 0 {
		t.Errorf("unexpected diagnostics: %v", counts)
	}
}

func TestDemoPageScene(t *testing.T) {
	doc, err := newDemoDoc()
	if err != nil {
		t.Fatal(err)
	}
	b := scene.New(nil, nil)
	opts := pdfrender.DefaultRenderOptions()
	opts.Transform = geom.Matrix(2, 0, 0, -2, 0, 296)

	for page := range 2 {
		if err := doc.draw(b, opts); err != nil {
			t.Fatalf("page %d: %v", page, err)
		}
		res := b.Finish()
		if res.ViewBox != geom.NewRect(0, 0, 210, 296) {
			t.Errorf("page %d: ViewBox = %v", page, res.ViewBox)
		}
		if len(res.Text) != 2 {
			t.Errorf("page %d: got %d spans, want 2", page, len(res.Text))
		}
		if res.Diagnostics != 1 {
			t.Errorf("page %d: Diagnostics = %d, want 1", page, res.Diagnostics)
		}
		if len(res.Scene.Images()) != 2 {
			t.Errorf("page %d: got %d images, want 2", page, len(res.Scene.Images()))
		}
	}
}

func TestDemoPageImagesDecode(t *testing.T) {
	doc, err := newDemoDoc()
	if err != nil {
		t.Fatal(err)
	}
	tr := trace.New(nil, trace.WithImageDecoder(&ximage.Decoder{}))
	if err := doc.draw(tr, pdfrender.DefaultRenderOptions()); err != nil {
		t.Fatalf("draw: %v", err)
	}
	for _, ev := range tr.Finish() {
		switch e := ev.(type) {
		case trace.ImageEvent:
			if e.Err != nil {
				t.Errorf("image %s: %v", e.Ref, e.Err)
			}
		case trace.InlineImageEvent:
			if e.Err != nil {
				t.Errorf("inline image: %v", e.Err)
			}
		}
	}
}
