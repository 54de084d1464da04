package pdfrender

import (
	"errors"
	"math"
	"testing"

	"github.com/gogpu/pdfrender/geom"
)

func TestDefaultRenderOptions(t *testing.T) {
	o := DefaultRenderOptions()
	if o.Transform != geom.Identity() {
		t.Errorf("got transform %v, want identity", o.Transform)
	}
	if o.Clip != nil {
		t.Error("got a clip, want none")
	}
}

func TestBeginPage(t *testing.T) {
	media := geom.NewRect(0, 0, 210, 297)
	scale := 150 / 25.4

	t.Run("identity", func(t *testing.T) {
		b := &mockBackend{}
		if err := BeginPage(b, media, DefaultRenderOptions()); err != nil {
			t.Fatal(err)
		}
		if b.viewBox == nil || *b.viewBox != media {
			t.Errorf("got view box %v, want %v", b.viewBox, media)
		}
		if len(b.clips) != 0 {
			t.Errorf("got %d clip calls, want 0", len(b.clips))
		}
	})

	t.Run("scaled with clip", func(t *testing.T) {
		b := &mockBackend{}
		clip := geom.RectOutline(geom.NewRect(10, 10, 100, 100))
		opts := RenderOptions{Transform: geom.Scale(scale, scale), Clip: &clip}
		if err := BeginPage(b, media, opts); err != nil {
			t.Fatal(err)
		}
		want := geom.NewRect(0, 0, 210*scale, 297*scale)
		if b.viewBox == nil || math.Abs(b.viewBox.Max.X-want.Max.X) > 1e-9 || math.Abs(b.viewBox.Max.Y-want.Max.Y) > 1e-9 {
			t.Errorf("got view box %v, want %v", b.viewBox, want)
		}
		if len(b.clips) != 1 || b.clips[0] != &clip {
			t.Errorf("got clips %v, want the option's clip", b.clips)
		}
	})

	t.Run("invalid transform", func(t *testing.T) {
		for _, tr := range []geom.Transform{{}, geom.Scale(math.NaN(), 1)} {
			b := &mockBackend{}
			if err := BeginPage(b, media, RenderOptions{Transform: tr}); !errors.Is(err, ErrInvalidTransform) {
				t.Errorf("got %v, want ErrInvalidTransform", err)
			}
			if b.viewBox != nil {
				t.Error("view box set despite the error")
			}
		}
	})
}
