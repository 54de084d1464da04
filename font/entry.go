package font

import (
	"strings"
	"sync"

	ot "github.com/go-text/typesetting/font/opentype"

	"github.com/gogpu/pdfrender/geom"
	"github.com/gogpu/pdfrender/pdf"
)

// Kind identifies the technology behind an Entry's glyphs.
type Kind uint8

const (
	// KindUnknown is the zero Kind.
	KindUnknown Kind = iota
	// KindTrueType is an embedded TrueType program (FontFile2).
	KindTrueType
	// KindOpenType is an embedded OpenType program (FontFile3/OpenType).
	KindOpenType
	// KindCFF is an embedded bare CFF program (FontFile3/Type1C or
	// CIDFontType0C).
	KindCFF
	// KindStandard is a Go font substituted for a standard 14 font.
	KindStandard
)

var kindNames = [...]string{"Unknown", "TrueType", "OpenType", "CFF", "Standard"}

// String returns the kind's name.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Unknown"
}

// Glyph is one glyph outline in glyph space, scaled so that one em is
// 1.0, with y pointing up.
type Glyph struct {
	ID      uint32
	Outline geom.Outline
	Advance float64
}

// Entry is a loaded font. It is safe for concurrent use; glyph outlines
// are decoded once per glyph ID and shared.
type Entry struct {
	// Ref is the font dictionary's reference, zero for direct
	// dictionaries.
	Ref pdf.Ref

	// Name is the BaseFont without any subset prefix.
	Name string

	Kind Kind

	// IsCID reports a composite (Type0) font with multi-byte codes.
	IsCID bool

	// Vertical reports a composite font in vertical writing mode.
	Vertical bool

	// Symbolic reports the font descriptor's symbolic flag.
	Symbolic bool

	mu     sync.Mutex
	prog   program
	enc    *simpleEncoding
	codec  cidCodec
	toUni  *toUnicode
	widths widths
	glyphs map[uint32]*Glyph
}

func newEntry(ref pdf.Ref, name string) *Entry {
	return &Entry{Ref: ref, Name: stripSubset(name), glyphs: make(map[uint32]*Glyph)}
}

// stripSubset removes a subset tag such as "ABCDEF+".
func stripSubset(name string) string {
	if len(name) > 7 && name[6] == '+' && strings.ToUpper(name[:6]) == name[:6] {
		return name[7:]
	}
	return name
}

// Glyph returns the glyph with the given ID.
func (e *Entry) Glyph(gid uint32) (*Glyph, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.glyphLocked(gid)
}

func (e *Entry) glyphLocked(gid uint32) (*Glyph, bool) {
	if g, ok := e.glyphs[gid]; ok {
		return g, g != nil
	}
	g := e.decodeGlyph(gid)
	e.glyphs[gid] = g
	return g, g != nil
}

func (e *Entry) decodeGlyph(gid uint32) *Glyph {
	if e.prog == nil {
		return nil
	}
	segs, ok := e.prog.segments(gid)
	if !ok {
		return nil
	}
	s := 1 / e.prog.unitsPerEm()
	var b geom.Builder
	for _, seg := range segs {
		a := seg.Args
		switch seg.Op {
		case ot.SegmentOpMoveTo:
			b.Close()
			b.MoveTo(float64(a[0].X)*s, float64(a[0].Y)*s)
		case ot.SegmentOpLineTo:
			b.LineTo(float64(a[0].X)*s, float64(a[0].Y)*s)
		case ot.SegmentOpQuadTo:
			b.QuadTo(float64(a[0].X)*s, float64(a[0].Y)*s, float64(a[1].X)*s, float64(a[1].Y)*s)
		case ot.SegmentOpCubeTo:
			b.CubicTo(float64(a[0].X)*s, float64(a[0].Y)*s,
				float64(a[1].X)*s, float64(a[1].Y)*s,
				float64(a[2].X)*s, float64(a[2].Y)*s)
		}
	}
	b.Close()
	adv, _ := e.prog.advance(gid)
	return &Glyph{ID: gid, Outline: b.Outline(), Advance: adv * s}
}

// GID maps a character code to a glyph ID.
func (e *Entry) GID(code uint32) (uint32, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.gidLocked(code)
}

func (e *Entry) gidLocked(code uint32) (uint32, bool) {
	if e.codec != nil {
		return e.codec.gid(e.prog, code)
	}
	if e.prog == nil || code > 0xFF {
		return 0, false
	}
	c := byte(code)
	if e.Kind == KindCFF {
		if n := e.enc.name(c); n != "" {
			if g, ok := e.prog.gidForName(n); ok {
				return g, true
			}
		}
		return 0, false
	}
	if r := e.enc.rune(c); r != 0 {
		if g, ok := e.prog.gidForRune(r); ok {
			return g, true
		}
	}
	if n := e.enc.names[c]; n != "" {
		if g, ok := e.prog.gidForName(n); ok {
			return g, true
		}
	}
	if e.Symbolic {
		for _, r := range []rune{0xF000 + rune(c), rune(c)} {
			if g, ok := e.prog.gidForRune(r); ok {
				return g, true
			}
		}
	}
	return 0, false
}

// GlyphForCode returns the glyph drawn for a character code.
func (e *Entry) GlyphForCode(code uint32) (*Glyph, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	gid, ok := e.gidLocked(code)
	if !ok {
		return nil, false
	}
	return e.glyphLocked(gid)
}

// Codes splits a PDF string into character codes: one byte each for
// simple fonts, as defined by the CMap for composite fonts.
func (e *Entry) Codes(raw []byte) []uint32 {
	if e.codec != nil {
		return e.codec.codes(raw)
	}
	out := make([]uint32, len(raw))
	for i, b := range raw {
		out[i] = uint32(b)
	}
	return out
}

// Text decodes a PDF string to Unicode. ToUnicode wins when present;
// codes without a known value become U+FFFD.
func (e *Entry) Text(raw []byte) string {
	if e.codec != nil {
		if e.toUni != nil {
			return e.toUni.decode(raw)
		}
		if s, ok := e.codec.text(raw); ok {
			return s
		}
		return strings.Repeat("\ufffd", len(e.codec.codes(raw)))
	}
	var sb strings.Builder
	for _, c := range raw {
		if e.toUni != nil {
			if s, ok := e.toUni.lookup(1, uint32(c)); ok {
				sb.WriteString(s)
				continue
			}
		}
		if r := e.enc.rune(c); r != 0 {
			sb.WriteRune(r)
		} else {
			sb.WriteRune('\ufffd')
		}
	}
	return sb.String()
}

// Width returns the advance of code in text space, where one em is 1.0.
// The font dictionary's widths win over the program's metrics.
func (e *Entry) Width(code uint32) float64 {
	if _, ok := e.codec.(unicodeCodec); ok && e.widths.hasCID {
		// Codes are runes here, not CIDs.
		return e.widths.missing / 1000
	}
	if w, ok := e.widths.lookup(code, e.IsCID); ok {
		return w / 1000
	}
	if g, ok := e.GlyphForCode(code); ok {
		return g.Advance
	}
	return e.widths.missing / 1000
}
