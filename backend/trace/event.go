package trace

import (
	"fmt"
	"strings"

	"github.com/gogpu/pdfrender"
	"github.com/gogpu/pdfrender/font"
	"github.com/gogpu/pdfrender/geom"
	"github.com/gogpu/pdfrender/pdf"
)

// EventKind identifies the backend call an Event records.
type EventKind uint8

const (
	// Drawing calls
	KindClip        EventKind = iota // SetClipPath
	KindDraw                         // Draw
	KindViewBox                      // SetViewBox
	KindImage                        // DrawImage
	KindInlineImage                  // DrawInlineImage
	KindGlyph                        // DrawGlyph
	KindFont                         // GetFont
	KindText                         // AddText

	// Diagnostics
	KindNoFont        // BugTextNoFont
	KindInvisibleText // BugTextInvisible
	KindPostScript    // BugPostScript
	KindBugOp         // BugOp
	KindInspectOp     // InspectOp
)

// eventKindNames maps EventKind values to their string representation.
var eventKindNames = [...]string{
	KindClip:          "Clip",
	KindDraw:          "Draw",
	KindViewBox:       "ViewBox",
	KindImage:         "Image",
	KindInlineImage:   "InlineImage",
	KindGlyph:         "Glyph",
	KindFont:          "Font",
	KindText:          "Text",
	KindNoFont:        "NoFont",
	KindInvisibleText: "InvisibleText",
	KindPostScript:    "PostScript",
	KindBugOp:         "BugOp",
	KindInspectOp:     "InspectOp",
}

// String returns the string representation of an EventKind.
func (k EventKind) String() string {
	if int(k) < len(eventKindNames) {
		return eventKindNames[k]
	}
	return "Unknown"
}

// Event is one recorded backend call. Events own their data; nothing in
// an event aliases the arguments of the call.
type Event interface {
	Kind() EventKind
	fmt.Stringer
}

// ClipEvent records SetClipPath. Clip is nil when the clip was cleared.
type ClipEvent struct {
	Clip *geom.Outline
}

// DrawEvent records Draw.
type DrawEvent struct {
	Outline   geom.Outline
	Mode      pdfrender.DrawMode
	Rule      geom.FillRule
	Transform geom.Transform
}

// ViewBoxEvent records SetViewBox.
type ViewBoxEvent struct {
	Rect geom.Rect
}

// ImageEvent records DrawImage. Err is the decode failure, set only
// when the tracer decodes images.
type ImageEvent struct {
	Ref           pdf.Ref
	Width, Height int
	Transform     geom.Transform
	Blend         pdfrender.BlendMode
	Err           error
}

// InlineImageEvent records DrawInlineImage.
type InlineImageEvent struct {
	Width, Height int
	Transform     geom.Transform
	Blend         pdfrender.BlendMode
	Err           error
}

// GlyphEvent records DrawGlyph. Glyph is nil for a nil glyph.
type GlyphEvent struct {
	Glyph     *font.Glyph
	Mode      pdfrender.DrawMode
	Transform geom.Transform
}

// FontEvent records GetFont and its outcome.
type FontEvent struct {
	Source string // the font object as written in the file
	Font   *font.Entry
	Err    error
}

// TextEvent records AddText.
type TextEvent struct {
	Span pdfrender.TextSpan
}

// NoFontEvent records BugTextNoFont.
type NoFontEvent struct {
	Data []byte
}

// InvisibleTextEvent records BugTextInvisible.
type InvisibleTextEvent struct {
	Text string
}

// PostScriptEvent records BugPostScript.
type PostScriptEvent struct {
	Data []byte
}

// BugOpEvent records BugOp.
type BugOpEvent struct {
	Index int
}

// InspectOpEvent records InspectOp.
type InspectOpEvent struct {
	Op pdf.Op
}

func (ClipEvent) Kind() EventKind          { return KindClip }
func (DrawEvent) Kind() EventKind          { return KindDraw }
func (ViewBoxEvent) Kind() EventKind       { return KindViewBox }
func (ImageEvent) Kind() EventKind         { return KindImage }
func (InlineImageEvent) Kind() EventKind   { return KindInlineImage }
func (GlyphEvent) Kind() EventKind         { return KindGlyph }
func (FontEvent) Kind() EventKind          { return KindFont }
func (TextEvent) Kind() EventKind          { return KindText }
func (NoFontEvent) Kind() EventKind        { return KindNoFont }
func (InvisibleTextEvent) Kind() EventKind { return KindInvisibleText }
func (PostScriptEvent) Kind() EventKind    { return KindPostScript }
func (BugOpEvent) Kind() EventKind         { return KindBugOp }
func (InspectOpEvent) Kind() EventKind     { return KindInspectOp }

func (e ClipEvent) String() string {
	if e.Clip == nil {
		return "Clip none"
	}
	return fmt.Sprintf("Clip %d elements %s", e.Clip.Len(), formatRect(e.Clip.Bounds()))
}

func (e DrawEvent) String() string {
	return fmt.Sprintf("Draw %s %s %d elements %s", formatMode(e.Mode), e.Rule,
		e.Outline.Len(), formatRect(geom.TransformRect(e.Outline.Bounds(), e.Transform)))
}

func (e ViewBoxEvent) String() string {
	return "ViewBox " + formatRect(e.Rect)
}

func (e ImageEvent) String() string {
	s := fmt.Sprintf("Image %s %dx%d %s %s", e.Ref, e.Width, e.Height, e.Blend, formatMatrix(e.Transform))
	return s + formatErr(e.Err)
}

func (e InlineImageEvent) String() string {
	s := fmt.Sprintf("InlineImage %dx%d %s %s", e.Width, e.Height, e.Blend, formatMatrix(e.Transform))
	return s + formatErr(e.Err)
}

func (e GlyphEvent) String() string {
	if e.Glyph == nil {
		return "Glyph none"
	}
	return fmt.Sprintf("Glyph %d %s %s", e.Glyph.ID, formatMode(e.Mode), formatMatrix(e.Transform))
}

func (e FontEvent) String() string {
	switch {
	case e.Err != nil:
		return fmt.Sprintf("Font %s error: %v", e.Source, e.Err)
	case e.Font == nil:
		return fmt.Sprintf("Font %s unusable", e.Source)
	}
	return fmt.Sprintf("Font %s %s (%s)", e.Source, e.Font.Name, e.Font.Kind)
}

func (e TextEvent) String() string {
	name := "-"
	if e.Span.Font != nil {
		name = e.Span.Font.Name
	}
	return fmt.Sprintf("Text %q %s %g op %d", e.Span.Text, name, e.Span.FontSize, e.Span.Op)
}

func (e NoFontEvent) String() string {
	return fmt.Sprintf("NoFont %d bytes", len(e.Data))
}

func (e InvisibleTextEvent) String() string {
	return fmt.Sprintf("InvisibleText %q", e.Text)
}

func (e PostScriptEvent) String() string {
	return fmt.Sprintf("PostScript %d bytes", len(e.Data))
}

func (e BugOpEvent) String() string {
	return fmt.Sprintf("BugOp %d", e.Index)
}

func (e InspectOpEvent) String() string {
	return "InspectOp " + e.Op.String()
}

func formatErr(err error) string {
	if err == nil {
		return ""
	}
	return " error: " + err.Error()
}

func formatRect(r geom.Rect) string {
	return fmt.Sprintf("[%g %g %g %g]", r.Min.X, r.Min.Y, r.Max.X, r.Max.Y)
}

func formatMatrix(t geom.Transform) string {
	// PDF operand order
	return fmt.Sprintf("[%g %g %g %g %g %g]", t.A, t.D, t.B, t.E, t.C, t.F)
}

func formatMode(m pdfrender.DrawMode) string {
	var sb strings.Builder
	switch m := m.(type) {
	case pdfrender.Fill:
		fmt.Fprintf(&sb, "fill %s a=%g", m.Paint, m.Alpha)
	case pdfrender.Stroke:
		fmt.Fprintf(&sb, "stroke %s a=%g w=%g", m.Paint, m.Alpha, m.Style.Width)
	case pdfrender.FillStroke:
		fmt.Fprintf(&sb, "fill %s a=%g stroke %s a=%g w=%g",
			m.FillPaint, m.FillAlpha, m.StrokePaint, m.StrokeAlpha, m.Style.Width)
	default:
		fmt.Fprintf(&sb, "%T", m)
	}
	return sb.String()
}
