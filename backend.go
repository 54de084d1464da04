package pdfrender

import (
	"github.com/gogpu/pdfrender/font"
	"github.com/gogpu/pdfrender/geom"
	"github.com/gogpu/pdfrender/pdf"
)

// Backend is a page rendering target driven by a content-stream
// interpreter. The interpreter issues calls in content-stream order from
// a single goroutine and waits for each to return.
//
// Values passed by pointer (outlines, glyphs, image objects) belong to
// the caller for the duration of the call only. A backend that retains
// geometry must copy it.
//
// # Implementation Contract
//
// Each backend must:
//  1. Keep at most one clip active; SetClipPath replaces it
//  2. Apply the transform it is given without composing it further
//  3. Treat call order as paint order
//  4. Route malformed content through the Diagnostics hooks, never fail
//     a call because of it
//
// Backends register a factory in init:
//
//	func init() {
//	    pdfrender.Register("svg", func(cfg pdfrender.Config) pdfrender.Backend {
//	        return NewSVGBackend(cfg.FontCache)
//	    })
//	}
type Backend interface {
	// SetClipPath replaces the active clip region. A nil clip removes it.
	// Subsequent drawing is restricted to the region until the next call.
	SetClipPath(clip *geom.Outline)

	// Draw renders one outline with one paint mode. It fails only for
	// invalid arguments or backend-internal failures. A batching backend
	// returns once the shape is queued.
	Draw(outline *geom.Outline, mode DrawMode, rule geom.FillRule, t geom.Transform) error

	// SetViewBox establishes the page bounds in output space. It is
	// called at most once per page, before any drawing.
	SetViewBox(r geom.Rect)

	// DrawImage draws an image XObject identified by ref. Pixel data is
	// resolved through r on demand. t maps the unit square to output
	// space. It fails when the image cannot be resolved or decoded and
	// leaves the backend unchanged in that case.
	DrawImage(ref pdf.Ref, im *pdf.ImageXObject, res *pdf.Resources, t geom.Transform, mode BlendMode, r pdf.Resolver) error

	// DrawInlineImage is DrawImage for an image embedded in the content
	// stream. The same im may be drawn several times within a page.
	DrawInlineImage(im *pdf.ImageXObject, res *pdf.Resources, t geom.Transform, mode BlendMode, r pdf.Resolver) error

	// DrawGlyph draws one glyph. Backends without special glyph handling
	// implement it by calling the package-level DrawGlyph; others must
	// produce the same visual result.
	DrawGlyph(g *font.Glyph, mode DrawMode, t geom.Transform) error

	// GetFont returns the font for a Font resource entry. It returns a
	// nil entry when the font is absent or unusable, and an error only
	// when resolving it failed.
	GetFont(ref pdf.Object, r pdf.Resolver) (*font.Entry, error)

	// AddText records a completed text run for backends that need the
	// logical text. Its glyphs have already been drawn.
	AddText(span TextSpan)

	Diagnostics
}

// Diagnostics receives reports of malformed content. Hooks never fail
// and never stop processing.
type Diagnostics interface {
	// BugTextNoFont reports a text string shown without a usable font.
	BugTextNoFont(data []byte)

	// BugTextInvisible reports text drawn in an invisible render mode.
	BugTextInvisible(text string)

	// BugPostScript reports an embedded PostScript fragment.
	BugPostScript(data []byte)

	// BugOp reports that the operator at index opIndex could not be
	// executed.
	BugOp(opIndex int)

	// InspectOp is called with every operator before it executes.
	InspectOp(op pdf.Op)
}

// NopDiagnostics implements Diagnostics with hooks that do nothing.
// Embed it in a backend to get the default behavior.
type NopDiagnostics struct{}

func (NopDiagnostics) BugTextNoFont([]byte)    {}
func (NopDiagnostics) BugTextInvisible(string) {}
func (NopDiagnostics) BugPostScript([]byte)    {}
func (NopDiagnostics) BugOp(int)               {}
func (NopDiagnostics) InspectOp(pdf.Op)        {}

// DrawGlyph is the default glyph rendering: it draws the glyph's outline
// with the nonzero winding rule. A nil glyph draws nothing.
func DrawGlyph(b Backend, g *font.Glyph, mode DrawMode, t geom.Transform) error {
	if g == nil {
		return nil
	}
	return b.Draw(&g.Outline, mode, geom.Winding, t)
}
