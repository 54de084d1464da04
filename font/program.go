package font

import (
	"bytes"
	"math"

	gtfont "github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/font/cff"
	ot "github.com/go-text/typesetting/font/opentype"
	"github.com/go-text/typesetting/font/opentype/tables"
)

// program is a parsed font program. Implementations are not safe for
// concurrent use; Entry serializes access.
type program interface {
	// segments returns the outline of gid in font units, y up.
	segments(gid uint32) ([]ot.Segment, bool)

	// advance returns the horizontal advance of gid in font units.
	advance(gid uint32) (float64, bool)

	unitsPerEm() float64
	gidForRune(r rune) (uint32, bool)
	gidForName(name string) (uint32, bool)
}

// sfntFont is a parsed sfnt font with its glyph count from maxp.
type sfntFont struct {
	font      *gtfont.Font
	numGlyphs int
}

func loadSFNT(ld *ot.Loader) (sfntFont, error) {
	f, err := gtfont.NewFont(ld)
	if err != nil {
		return sfntFont{}, err
	}
	raw, err := ld.RawTable(ot.MustNewTag("maxp"))
	if err != nil {
		return sfntFont{}, err
	}
	maxp, _, err := tables.ParseMaxp(raw)
	if err != nil {
		return sfntFont{}, err
	}
	return sfntFont{font: f, numGlyphs: int(maxp.NumGlyphs)}, nil
}

// sfntProgram is a TrueType or OpenType program.
type sfntProgram struct {
	face      *gtfont.Face
	upem      float64
	numGlyphs int
	names     map[string]uint32
}

func parseSFNT(data []byte) (*sfntProgram, error) {
	ld, err := ot.NewLoader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	f, err := loadSFNT(ld)
	if err != nil {
		return nil, err
	}
	return newSFNT(f), nil
}

func newSFNT(f sfntFont) *sfntProgram {
	face := gtfont.NewFace(f.font)
	upem := float64(face.Upem())
	if upem == 0 {
		upem = 1000
	}
	return &sfntProgram{face: face, upem: upem, numGlyphs: f.numGlyphs}
}

func (p *sfntProgram) segments(gid uint32) ([]ot.Segment, bool) {
	if gid > math.MaxUint16 {
		return nil, false
	}
	out, ok := p.face.GlyphDataOutline(uint16(gid))
	return out.Segments, ok
}

func (p *sfntProgram) advance(gid uint32) (float64, bool) {
	return float64(p.face.HorizontalAdvance(gtfont.GID(gid))), true
}

func (p *sfntProgram) unitsPerEm() float64 { return p.upem }

func (p *sfntProgram) gidForRune(r rune) (uint32, bool) {
	g, ok := p.face.NominalGlyph(r)
	return uint32(g), ok && g != 0
}

func (p *sfntProgram) gidForName(name string) (uint32, bool) {
	if p.names == nil {
		p.names = make(map[string]uint32, p.numGlyphs)
		for g := range p.numGlyphs {
			if n := p.face.GlyphName(gtfont.GID(g)); n != "" {
				if _, dup := p.names[n]; !dup {
					p.names[n] = uint32(g)
				}
			}
		}
	}
	g, ok := p.names[name]
	return g, ok
}

// cffProgram is a bare CFF program. Glyph space is 1000 units per em.
type cffProgram struct {
	font  *cff.CFF
	names map[string]uint32
}

func parseCFF(data []byte) (*cffProgram, error) {
	f, err := cff.Parse(data)
	if err != nil {
		return nil, err
	}
	return &cffProgram{font: f}, nil
}

func (p *cffProgram) segments(gid uint32) ([]ot.Segment, bool) {
	if int(gid) >= len(p.font.Charstrings) {
		return nil, false
	}
	segs, _, err := p.font.LoadGlyph(uint16(gid))
	return segs, err == nil
}

// advance is unknown: CFF widths live in the charstrings' hints and the
// PDF Widths array supplies them instead.
func (p *cffProgram) advance(uint32) (float64, bool) { return 0, false }

func (p *cffProgram) unitsPerEm() float64 { return 1000 }

func (p *cffProgram) gidForRune(r rune) (uint32, bool) {
	return p.gidForName(RuneToGlyphName(r))
}

func (p *cffProgram) gidForName(name string) (uint32, bool) {
	if p.names == nil {
		p.names = make(map[string]uint32, len(p.font.Charstrings))
		for g := range p.font.Charstrings {
			if n := p.font.GlyphName(ot.GID(g)); n != "" {
				p.names[n] = uint32(g)
			}
		}
	}
	g, ok := p.names[name]
	return g, ok
}
