package pdfrender

import (
	"slices"

	"github.com/gogpu/pdfrender/font"
	"github.com/gogpu/pdfrender/geom"
)

// TextMode is the PDF text rendering mode (the Tr operand).
type TextMode uint8

const (
	TextFill TextMode = iota
	TextStroke
	TextFillStroke
	TextInvisible
	TextFillClip
	TextStrokeClip
	TextFillStrokeClip
	TextClip
)

// Visible reports whether the mode paints glyphs.
func (m TextMode) Visible() bool {
	return m != TextInvisible && m != TextClip
}

// Clips reports whether the mode adds glyphs to the clip.
func (m TextMode) Clips() bool {
	return m >= TextFillClip && m <= TextClip
}

// TextSpan is one run of glyphs sharing a font and transform, with the
// logical text it represents.
type TextSpan struct {
	Font     *font.Entry
	FontSize float64

	// Transform maps text space to output space at the start of the run.
	Transform geom.Transform

	// Bounds is the run's extent in output space.
	Bounds geom.Rect

	// Width is the advance of the whole run in text space.
	Width float64

	Text  string
	Chars []TextChar

	Paint Paint
	Alpha float64
	Mode  TextMode

	// Op is the index of the operator that produced the span.
	Op int
}

// TextChar locates one character of a span's Text.
type TextChar struct {
	// Offset is the byte offset in Text.
	Offset int
	// Pos is the distance from the start of the run in text space.
	Pos   float64
	Width float64
}

// Clone returns a copy whose Chars slice is not shared with s.
func (s TextSpan) Clone() TextSpan {
	s.Chars = slices.Clone(s.Chars)
	return s
}
