package scene

import (
	"context"
	"fmt"
	"log/slog"

	ggscene "github.com/gogpu/gg/scene"

	"github.com/gogpu/pdfrender"
	"github.com/gogpu/pdfrender/font"
	"github.com/gogpu/pdfrender/geom"
	"github.com/gogpu/pdfrender/internal/cache"
	"github.com/gogpu/pdfrender/pdf"
	"github.com/gogpu/pdfrender/pdf/ximage"
)

func init() {
	pdfrender.Register("scene", func(cfg pdfrender.Config) pdfrender.Backend {
		return New(cfg.FontCache, nil, WithLogger(cfg.Logger))
	})
}

// Backend records page drawing into a gg scene. It is not safe for
// concurrent use; backends rendering pages in parallel share only the
// font cache.
type Backend struct {
	fonts  *font.Cache
	scene  *ggscene.Scene
	log    *slog.Logger
	images *ximage.Decoder

	viewBox    geom.Rect
	hasViewBox bool
	clipped    bool
	text       []pdfrender.TextSpan
	draws      int
	diags      int

	// decoded keeps the most recently used images by reference across
	// pages. inline keeps inline images by pointer for the current page.
	decoded   *cache.Sharded[pdf.Ref, *ggscene.Image]
	cacheSize int
	inline    map[*pdf.ImageXObject]*ggscene.Image
}

// DefaultImageCacheSize is the number of decoded image XObjects a
// backend keeps by default.
const DefaultImageCacheSize = 256

var _ pdfrender.Backend = (*Backend)(nil)

// Option configures a Backend.
type Option func(*Backend)

// WithLogger sets the logger. The default is pdfrender.Logger().
func WithLogger(l *slog.Logger) Option {
	return func(b *Backend) {
		if l != nil {
			b.log = l
		}
	}
}

// WithImageDecoder replaces the decoder used for image pixel data.
func WithImageDecoder(d *ximage.Decoder) Option {
	return func(b *Backend) {
		if d != nil {
			b.images = d
		}
	}
}

// WithImageCacheSize bounds how many decoded image XObjects the backend
// keeps between draws. Zero or less keeps every image.
func WithImageCacheSize(n int) Option {
	return func(b *Backend) {
		b.cacheSize = n
	}
}

// New returns a backend drawing into s, or into a new scene when s is
// nil. A nil cache gets a private one.
func New(fonts *font.Cache, s *ggscene.Scene, opts ...Option) *Backend {
	if s == nil {
		s = ggscene.NewScene()
	}
	b := &Backend{
		fonts:     fonts,
		scene:     s,
		log:       pdfrender.Logger(),
		cacheSize: DefaultImageCacheSize,
		inline:    make(map[*pdf.ImageXObject]*ggscene.Image),
	}
	for _, opt := range opts {
		opt(b)
	}
	perShard := 0
	if b.cacheSize > 0 {
		perShard = (b.cacheSize + cache.ShardCount - 1) / cache.ShardCount
	}
	b.decoded = cache.NewSharded[pdf.Ref, *ggscene.Image](perShard, pdf.Ref.Hash)
	if b.fonts == nil {
		b.fonts = font.NewCache(font.WithLogger(b.log))
	}
	if b.images == nil {
		b.images = &ximage.Decoder{Logger: b.log}
	}
	return b
}

// Scene returns the scene being drawn into.
func (b *Backend) Scene() *ggscene.Scene { return b.scene }

// SetClipPath replaces the active clip. The previous clip is popped
// before the new one is pushed, so at most one is ever active.
func (b *Backend) SetClipPath(clip *geom.Outline) {
	if b.clipped {
		b.scene.PopClip()
		b.clipped = false
	}
	if clip == nil {
		return
	}
	b.scene.PushClip(ggscene.NewPathShape(clipPath(*clip)))
	b.clipped = true
}

// Draw appends the outline, mapped through t, to the scene.
func (b *Backend) Draw(outline *geom.Outline, mode pdfrender.DrawMode, rule geom.FillRule, t geom.Transform) error {
	if err := pdfrender.ValidateMode(mode); err != nil {
		return err
	}
	if !geom.IsFinite(t) {
		return fmt.Errorf("scene: draw: %w", pdfrender.ErrInvalidTransform)
	}
	if outline == nil || outline.IsEmpty() {
		return nil
	}
	switch m := mode.(type) {
	case pdfrender.Fill:
		b.fill(*outline, m.Paint, m.Alpha, rule, t)
	case pdfrender.Stroke:
		b.stroke(*outline, m.Paint, m.Alpha, m.Style, t)
	case pdfrender.FillStroke:
		b.fill(*outline, m.FillPaint, m.FillAlpha, rule, t)
		b.stroke(*outline, m.StrokePaint, m.StrokeAlpha, m.Style, t)
	}
	b.draws++
	return nil
}

func (b *Backend) fill(o geom.Outline, p pdfrender.Paint, alpha float64, rule geom.FillRule, t geom.Transform) {
	path := scenePath(o.Transform(t))
	b.scene.Fill(fillStyle(rule), ggscene.IdentityAffine(), b.brush(p, alpha), ggscene.NewPathShape(path))
}

func (b *Backend) stroke(o geom.Outline, p pdfrender.Paint, alpha float64, style pdfrender.StrokeStyle, t geom.Transform) {
	scale := geom.ScaleFactor(t)
	if dash := style.Dash.GG(); dash != nil {
		tol := geom.DefaultTolerance
		if scale > 0 {
			tol /= scale
		}
		o = o.Dash(dash, tol)
		if o.IsEmpty() {
			return
		}
	}
	path := scenePath(o.Transform(t))
	b.scene.Stroke(strokeStyle(style, scale), ggscene.IdentityAffine(), b.brush(p, alpha), ggscene.NewPathShape(path))
}

// SetViewBox records the page bounds in output space.
func (b *Backend) SetViewBox(r geom.Rect) {
	if b.hasViewBox {
		b.log.Warn("scene: view box set twice", "old", b.viewBox, "new", r)
	}
	b.viewBox = r
	b.hasViewBox = true
}

// DrawImage decodes the image on first use and draws it mapped through t.
func (b *Backend) DrawImage(ref pdf.Ref, im *pdf.ImageXObject, res *pdf.Resources, t geom.Transform, mode pdfrender.BlendMode, r pdf.Resolver) error {
	img, err := b.decoded.GetOrLoad(ref, func() (*ggscene.Image, error) {
		return b.decode(im, res, r)
	})
	if err != nil {
		return fmt.Errorf("scene: image %s: %w", ref, err)
	}
	b.placeImage(img, t, mode)
	return nil
}

// DrawInlineImage is DrawImage for inline images, memoized by im.
func (b *Backend) DrawInlineImage(im *pdf.ImageXObject, res *pdf.Resources, t geom.Transform, mode pdfrender.BlendMode, r pdf.Resolver) error {
	img, ok := b.inline[im]
	if !ok {
		var err error
		img, err = b.decode(im, res, r)
		if err != nil {
			return fmt.Errorf("scene: inline image: %w", err)
		}
		b.inline[im] = img
	}
	b.placeImage(img, t, mode)
	return nil
}

// DrawGlyph draws the glyph outline with the nonzero rule.
func (b *Backend) DrawGlyph(g *font.Glyph, mode pdfrender.DrawMode, t geom.Transform) error {
	return pdfrender.DrawGlyph(b, g, mode, t)
}

// GetFont loads the font through the shared cache.
func (b *Backend) GetFont(ref pdf.Object, r pdf.Resolver) (*font.Entry, error) {
	return b.fonts.Get(ref, r)
}

// AddText keeps the span for the page result.
func (b *Backend) AddText(span pdfrender.TextSpan) {
	b.text = append(b.text, span.Clone())
}

func (b *Backend) BugTextNoFont(data []byte) {
	b.diags++
	b.log.Debug("scene: text without font", "bytes", len(data))
}

func (b *Backend) BugTextInvisible(text string) {
	b.diags++
	b.log.Debug("scene: invisible text", "text", text)
}

func (b *Backend) BugPostScript(data []byte) {
	b.diags++
	b.log.Debug("scene: embedded PostScript", "bytes", len(data))
}

func (b *Backend) BugOp(opIndex int) {
	b.diags++
	b.log.Debug("scene: bad operator", "index", opIndex)
}

func (b *Backend) InspectOp(op pdf.Op) {
	if b.log.Enabled(context.Background(), slog.LevelDebug) {
		b.log.Debug("scene: op", "op", op.String())
	}
}

// Result is one finished page.
type Result struct {
	Scene   *ggscene.Scene
	ViewBox geom.Rect
	Text    []pdfrender.TextSpan

	// Diagnostics counts bug reports received through the hooks.
	Diagnostics int

	// Draws counts successful Draw calls, glyphs included.
	Draws int
}

// Finish closes the page and returns it. The backend then starts a new
// page in a fresh scene; the font cache and decoded image XObjects are
// kept.
func (b *Backend) Finish() *Result {
	if b.clipped {
		b.scene.PopClip()
		b.clipped = false
	}
	res := &Result{
		Scene:       b.scene,
		ViewBox:     b.viewBox,
		Text:        b.text,
		Diagnostics: b.diags,
		Draws:       b.draws,
	}
	b.scene = ggscene.NewScene()
	b.viewBox, b.hasViewBox = geom.Rect{}, false
	b.text = nil
	b.draws, b.diags = 0, 0
	clear(b.inline)
	return res
}
