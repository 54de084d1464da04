// Package trace provides a backend that records every call as an Event
// instead of drawing.
//
// A Tracer is useful for tests of page interpreters and for inspecting
// what a page asks a backend to do:
//
//	tr := trace.New(nil)
//	// ... drive the page ...
//	for _, ev := range tr.Finish() {
//		fmt.Println(ev)
//	}
//
// Each call appends exactly one event, in call order. Fonts are loaded
// through the shared cache so text can be followed through GetFont.
// Images are decoded only with WithImageDecoder, so that a trace can
// show which images a drawing backend would fail on.
package trace

import (
	"fmt"
	"slices"
	"sync"

	"github.com/gogpu/pdfrender"
	"github.com/gogpu/pdfrender/font"
	"github.com/gogpu/pdfrender/geom"
	"github.com/gogpu/pdfrender/pdf"
	"github.com/gogpu/pdfrender/pdf/ximage"
)

func init() {
	pdfrender.Register("trace", func(cfg pdfrender.Config) pdfrender.Backend {
		return New(cfg.FontCache)
	})
}

// Tracer records backend calls. It is safe for concurrent use, though
// concurrent calls are recorded in an unspecified order.
type Tracer struct {
	fonts  *font.Cache
	images *ximage.Decoder

	mu     sync.Mutex
	events []Event
}

var _ pdfrender.Backend = (*Tracer)(nil)

// Option configures a Tracer.
type Option func(*Tracer)

// WithImageDecoder makes DrawImage and DrawInlineImage decode the image
// with d. A decode failure is stored in the event's Err and returned.
func WithImageDecoder(d *ximage.Decoder) Option {
	return func(t *Tracer) {
		t.images = d
	}
}

// New returns a Tracer loading fonts through cache. A nil cache gets a
// private one.
func New(cache *font.Cache, opts ...Option) *Tracer {
	if cache == nil {
		cache = font.NewCache(font.WithLogger(pdfrender.Logger()))
	}
	t := &Tracer{fonts: cache}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// decode checks that im decodes when an image decoder is set.
func (t *Tracer) decode(im *pdf.ImageXObject, res *pdf.Resources, r pdf.Resolver) error {
	if t.images == nil {
		return nil
	}
	_, err := t.images.Decode(im, res, r)
	return err
}

func (t *Tracer) record(e Event) {
	t.mu.Lock()
	t.events = append(t.events, e)
	t.mu.Unlock()
}

// Len returns the number of events recorded since the last Finish.
func (t *Tracer) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.events)
}

// Events returns a copy of the events recorded so far.
func (t *Tracer) Events() []Event {
	t.mu.Lock()
	defer t.mu.Unlock()
	return slices.Clone(t.events)
}

// Finish returns the recorded events and starts a new, empty list.
func (t *Tracer) Finish() []Event {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := t.events
	t.events = nil
	return out
}

func (t *Tracer) SetClipPath(clip *geom.Outline) {
	var e ClipEvent
	if clip != nil {
		c := *clip
		e.Clip = &c
	}
	t.record(e)
}

func (t *Tracer) Draw(outline *geom.Outline, mode pdfrender.DrawMode, rule geom.FillRule, tr geom.Transform) error {
	e := DrawEvent{Mode: cloneMode(mode), Rule: rule, Transform: tr}
	if outline != nil {
		e.Outline = *outline
	}
	t.record(e)
	return nil
}

func (t *Tracer) SetViewBox(r geom.Rect) {
	t.record(ViewBoxEvent{Rect: r})
}

func (t *Tracer) DrawImage(ref pdf.Ref, im *pdf.ImageXObject, res *pdf.Resources, tr geom.Transform, mode pdfrender.BlendMode, r pdf.Resolver) error {
	e := ImageEvent{Ref: ref, Transform: tr, Blend: mode}
	if im != nil {
		e.Width, e.Height = im.Width, im.Height
	}
	if err := t.decode(im, res, r); err != nil {
		e.Err = fmt.Errorf("trace: image %s: %w", ref, err)
	}
	t.record(e)
	return e.Err
}

func (t *Tracer) DrawInlineImage(im *pdf.ImageXObject, res *pdf.Resources, tr geom.Transform, mode pdfrender.BlendMode, r pdf.Resolver) error {
	e := InlineImageEvent{Transform: tr, Blend: mode}
	if im != nil {
		e.Width, e.Height = im.Width, im.Height
	}
	if err := t.decode(im, res, r); err != nil {
		e.Err = fmt.Errorf("trace: inline image: %w", err)
	}
	t.record(e)
	return e.Err
}

// DrawGlyph records the glyph rather than delegating to Draw, so a trace
// shows which calls carried glyphs.
func (t *Tracer) DrawGlyph(g *font.Glyph, mode pdfrender.DrawMode, tr geom.Transform) error {
	e := GlyphEvent{Mode: cloneMode(mode), Transform: tr}
	if g != nil {
		c := *g
		e.Glyph = &c
	}
	t.record(e)
	return nil
}

func (t *Tracer) GetFont(o pdf.Object, r pdf.Resolver) (*font.Entry, error) {
	f, err := t.fonts.Get(o, r)
	t.record(FontEvent{Source: pdf.Format(o), Font: f, Err: err})
	return f, err
}

func (t *Tracer) AddText(span pdfrender.TextSpan) {
	t.record(TextEvent{Span: span.Clone()})
}

func (t *Tracer) BugTextNoFont(data []byte) {
	t.record(NoFontEvent{Data: slices.Clone(data)})
}

func (t *Tracer) BugTextInvisible(text string) {
	t.record(InvisibleTextEvent{Text: text})
}

func (t *Tracer) BugPostScript(data []byte) {
	t.record(PostScriptEvent{Data: slices.Clone(data)})
}

func (t *Tracer) BugOp(opIndex int) {
	t.record(BugOpEvent{Index: opIndex})
}

func (t *Tracer) InspectOp(op pdf.Op) {
	t.record(InspectOpEvent{Op: op.Clone()})
}

func cloneMode(m pdfrender.DrawMode) pdfrender.DrawMode {
	switch m := m.(type) {
	case pdfrender.Stroke:
		m.Style = m.Style.Clone()
		return m
	case pdfrender.FillStroke:
		m.Style = m.Style.Clone()
		return m
	}
	return m
}
