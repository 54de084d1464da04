package font

import (
	"bytes"
	"compress/zlib"
	"errors"
	"testing"

	"golang.org/x/image/font/gofont/goregular"

	"github.com/gogpu/pdfrender/pdf"
)

func mustLoad(t *testing.T, r pdf.Resolver, d pdf.Dict) *Entry {
	t.Helper()
	e, err := Load(pdf.Ref{Num: 1}, d, r, nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if e == nil {
		t.Fatal("Load returned nil entry")
	}
	return e
}

func flateStream(t *testing.T, data []byte, d pdf.Dict) *pdf.Stream {
	t.Helper()
	var buf bytes.Buffer
	w := zlib.NewWriter(&buf)
	if _, err := w.Write(data); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	if d == nil {
		d = pdf.Dict{}
	}
	d["Filter"] = pdf.Name("FlateDecode")
	return &pdf.Stream{Dict: d, Data: buf.Bytes()}
}

func goRegularDescriptor(t *testing.T, r *pdf.MemResolver, flags int) pdf.Ref {
	t.Helper()
	prog := r.Add(flateStream(t, goregular.TTF, nil))
	return r.Add(pdf.Dict{
		"Type":      pdf.Name("FontDescriptor"),
		"FontName":  pdf.Name("GoRegular"),
		"Flags":     pdf.Integer(flags),
		"FontFile2": prog,
	})
}

func TestLoadStandardFont(t *testing.T) {
	e := mustLoad(t, nil, pdf.Dict{
		"Type":     pdf.Name("Font"),
		"Subtype":  pdf.Name("Type1"),
		"BaseFont": pdf.Name("ABCDEF+Helvetica"),
	})
	if e.Name != "Helvetica" {
		t.Errorf("Name = %q, want Helvetica", e.Name)
	}
	if e.Kind != KindStandard {
		t.Errorf("Kind = %v, want Standard", e.Kind)
	}
	g, ok := e.GlyphForCode('A')
	if !ok {
		t.Fatal("no glyph for 'A'")
	}
	if g.Outline.IsEmpty() {
		t.Error("glyph 'A' has an empty outline")
	}
	b := g.Outline.Bounds()
	if b.Max.Y <= 0 || b.Max.Y > 1.5 {
		t.Errorf("glyph height %v not scaled to em units", b.Max.Y)
	}
	if w := e.Width('A'); w <= 0 || w > 1 {
		t.Errorf("Width('A') = %v, want (0, 1]", w)
	}
	if got := e.Text([]byte("Hi")); got != "Hi" {
		t.Errorf("Text = %q, want Hi", got)
	}
}

func TestLoadStandardGlyphShared(t *testing.T) {
	e := mustLoad(t, nil, pdf.Dict{"Subtype": pdf.Name("Type1"), "BaseFont": pdf.Name("Courier")})
	g1, _ := e.GlyphForCode('x')
	g2, _ := e.GlyphForCode('x')
	if g1 == nil || g1 != g2 {
		t.Errorf("got %p and %p, want the same decoded glyph", g1, g2)
	}
}

func TestLoadSymbolFont(t *testing.T) {
	e := mustLoad(t, nil, pdf.Dict{"Subtype": pdf.Name("Type1"), "BaseFont": pdf.Name("Symbol")})
	if !e.Symbolic {
		t.Error("Symbol should be symbolic")
	}
	if got := e.Text([]byte("ab")); got != "αβ" {
		t.Errorf("Text = %q, want αβ", got)
	}
	if _, ok := e.GlyphForCode('a'); !ok {
		t.Error("no glyph for alpha")
	}
}

func TestLoadUnusableFonts(t *testing.T) {
	r := pdf.NewMemResolver()
	badFD := r.Add(pdf.Integer(7))

	tests := []struct {
		name string
		d    pdf.Dict
	}{
		{"type3", pdf.Dict{"Subtype": pdf.Name("Type3")}},
		{"unknown subtype", pdf.Dict{"Subtype": pdf.Name("Type42")}},
		{"no subtype", pdf.Dict{"BaseFont": pdf.Name("Helvetica")}},
		{"not embedded", pdf.Dict{"Subtype": pdf.Name("TrueType"), "BaseFont": pdf.Name("Frutiger")}},
		{"zapf dingbats", pdf.Dict{"Subtype": pdf.Name("Type1"), "BaseFont": pdf.Name("ZapfDingbats")}},
		{"descriptor not a dict", pdf.Dict{"Subtype": pdf.Name("TrueType"), "FontDescriptor": badFD}},
		{"type0 without descendants", pdf.Dict{"Subtype": pdf.Name("Type0"), "Encoding": pdf.Name("Identity-H")}},
		{"type0 unknown cmap", pdf.Dict{"Subtype": pdf.Name("Type0"), "Encoding": pdf.Name("Nonsense-H")}},
		{"garbage program", pdf.Dict{
			"Subtype":  pdf.Name("TrueType"),
			"BaseFont": pdf.Name("Broken"),
			"FontDescriptor": pdf.Dict{
				"FontFile2": &pdf.Stream{Dict: pdf.Dict{}, Data: []byte("not a font")},
			},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := Load(pdf.Ref{Num: 1}, tt.d, r, nil)
			if err != nil {
				t.Fatalf("got error %v, want nil", err)
			}
			if e != nil {
				t.Errorf("got entry %+v, want nil", e.Name)
			}
		})
	}
}

func TestLoadGarbageProgramFallsBackToStandard(t *testing.T) {
	e := mustLoad(t, nil, pdf.Dict{
		"Subtype":  pdf.Name("TrueType"),
		"BaseFont": pdf.Name("Arial,Bold"),
		"FontDescriptor": pdf.Dict{
			"Flags":     pdf.Integer(32),
			"FontFile2": &pdf.Stream{Dict: pdf.Dict{}, Data: []byte("not a font")},
		},
	})
	if e.Kind != KindStandard {
		t.Errorf("Kind = %v, want Standard", e.Kind)
	}
}

func TestLoadResolverFailure(t *testing.T) {
	r := pdf.NewMemResolver()
	d := pdf.Dict{
		"Subtype":        pdf.Name("TrueType"),
		"BaseFont":       pdf.Name("Arial"),
		"FontDescriptor": pdf.Ref{Num: 40},
	}
	e, err := Load(pdf.Ref{Num: 1}, d, r, nil)
	if !errors.Is(err, pdf.ErrMissingObject) {
		t.Errorf("got %v, want ErrMissingObject", err)
	}
	if e != nil {
		t.Error("got entry, want nil")
	}
}

func TestLoadEmbeddedTrueType(t *testing.T) {
	r := pdf.NewMemResolver()
	widths := r.Add(pdf.Array{pdf.Integer(722)})
	e := mustLoad(t, r, pdf.Dict{
		"Subtype":        pdf.Name("TrueType"),
		"BaseFont":       pdf.Name("XYZABC+GoRegular"),
		"FirstChar":      pdf.Integer(65),
		"LastChar":       pdf.Integer(65),
		"Widths":         widths,
		"Encoding":       pdf.Name("WinAnsiEncoding"),
		"FontDescriptor": goRegularDescriptor(t, r, 32),
	})
	if e.Kind != KindTrueType {
		t.Errorf("Kind = %v, want TrueType", e.Kind)
	}
	if e.Name != "GoRegular" {
		t.Errorf("Name = %q, want GoRegular", e.Name)
	}
	if got := e.Width('A'); got != 0.722 {
		t.Errorf("Width('A') = %v, want 0.722", got)
	}
	if got := e.Width('B'); got <= 0 || got > 1 {
		t.Errorf("Width('B') = %v, want the program's advance", got)
	}
	g, ok := e.GlyphForCode(0x80)
	if !ok || g.Outline.IsEmpty() {
		t.Error("no outline for the euro sign")
	}
	if got := e.Text([]byte{0x80}); got != "€" {
		t.Errorf("Text = %q, want €", got)
	}
}

func TestLoadSymbolicTrueType(t *testing.T) {
	r := pdf.NewMemResolver()
	e := mustLoad(t, r, pdf.Dict{
		"Subtype":        pdf.Name("TrueType"),
		"BaseFont":       pdf.Name("GoRegular"),
		"FontDescriptor": goRegularDescriptor(t, r, 4),
	})
	if !e.Symbolic {
		t.Error("Symbolic = false, want true")
	}
	if _, ok := e.GlyphForCode('Q'); !ok {
		t.Error("no glyph for code 'Q'")
	}
}

func TestLoadToUnicodeWins(t *testing.T) {
	r := pdf.NewMemResolver()
	tu := r.Add(flateStream(t, []byte("begincodespacerange <00> <FF> endcodespacerange beginbfchar <41> <005A> endbfchar"), nil))
	e := mustLoad(t, r, pdf.Dict{
		"Subtype":   pdf.Name("Type1"),
		"BaseFont":  pdf.Name("Times-Roman"),
		"ToUnicode": tu,
	})
	if got := e.Text([]byte("AB")); got != "ZB" {
		t.Errorf("Text = %q, want ZB", got)
	}
}

func type0Font(t *testing.T, r *pdf.MemResolver, encoding pdf.Object, cid pdf.Dict) pdf.Dict {
	t.Helper()
	if cid == nil {
		cid = pdf.Dict{}
	}
	cid["Type"] = pdf.Name("Font")
	cid["Subtype"] = pdf.Name("CIDFontType2")
	cid["BaseFont"] = pdf.Name("GoRegular")
	cid["FontDescriptor"] = goRegularDescriptor(t, r, 4)
	return pdf.Dict{
		"Type":            pdf.Name("Font"),
		"Subtype":         pdf.Name("Type0"),
		"BaseFont":        pdf.Name("GoRegular-Identity-H"),
		"Encoding":        encoding,
		"DescendantFonts": pdf.Array{r.Add(cid)},
	}
}

func TestLoadType0Identity(t *testing.T) {
	r := pdf.NewMemResolver()
	e := mustLoad(t, r, type0Font(t, r, pdf.Name("Identity-H"), pdf.Dict{
		"DW":          pdf.Integer(800),
		"W":           pdf.Array{pdf.Integer(36), pdf.Array{pdf.Integer(500), pdf.Integer(600)}, pdf.Integer(40), pdf.Integer(42), pdf.Integer(250)},
		"CIDToGIDMap": pdf.Name("Identity"),
	}))
	if !e.IsCID || e.Vertical {
		t.Errorf("IsCID = %v, Vertical = %v; want true, false", e.IsCID, e.Vertical)
	}
	if e.Kind != KindTrueType {
		t.Errorf("Kind = %v, want TrueType", e.Kind)
	}

	gidA, ok := e.prog.gidForRune('A')
	if !ok {
		t.Fatal("program has no 'A'")
	}
	codes := e.Codes([]byte{byte(gidA >> 8), byte(gidA), 0x00})
	if len(codes) != 1 || codes[0] != gidA {
		t.Fatalf("Codes = %v, want [%d]", codes, gidA)
	}
	if got, _ := e.GID(gidA); got != gidA {
		t.Errorf("GID = %d, want %d", got, gidA)
	}
	if g, ok := e.GlyphForCode(gidA); !ok || g.Outline.IsEmpty() {
		t.Error("no outline for 'A'")
	}

	widths := map[uint32]float64{36: 0.5, 37: 0.6, 40: 0.25, 42: 0.25, 43: 0.8}
	for code, want := range widths {
		if got := e.Width(code); got != want {
			t.Errorf("Width(%d) = %v, want %v", code, got, want)
		}
	}
	if got := e.Text([]byte{0x00, 0x24}); got != "\ufffd" {
		t.Errorf("Text = %q, want one replacement character", got)
	}
}

func TestLoadType0CIDToGIDStream(t *testing.T) {
	r := pdf.NewMemResolver()
	tmp := mustLoad(t, nil, pdf.Dict{"Subtype": pdf.Name("Type1"), "BaseFont": pdf.Name("Helvetica")})
	gidA, _ := tmp.prog.gidForRune('A')

	m := r.Add(flateStream(t, []byte{0, 0, byte(gidA >> 8), byte(gidA)}, nil))
	e := mustLoad(t, r, type0Font(t, r, pdf.Name("Identity-V"), pdf.Dict{"CIDToGIDMap": m}))
	if !e.Vertical {
		t.Error("Vertical = false, want true")
	}
	if got, ok := e.GID(1); !ok || got != gidA {
		t.Errorf("GID(1) = %d, %v; want %d", got, ok, gidA)
	}
	if _, ok := e.GID(5); ok {
		t.Error("GID(5) beyond the map should fail")
	}
}

func TestLoadType0UCS2(t *testing.T) {
	r := pdf.NewMemResolver()
	e := mustLoad(t, r, type0Font(t, r, pdf.Name("UniGB-UCS2-H"), pdf.Dict{"DW": pdf.Integer(900)}))

	raw := []byte{0x00, 'H', 0x00, 'i'}
	if got := e.Text(raw); got != "Hi" {
		t.Errorf("Text = %q, want Hi", got)
	}
	codes := e.Codes(raw)
	if len(codes) != 2 || codes[0] != 'H' || codes[1] != 'i' {
		t.Fatalf("Codes = %v, want [H i]", codes)
	}
	if _, ok := e.GlyphForCode(codes[0]); !ok {
		t.Error("no glyph for 'H'")
	}
	if got := e.Width(codes[0]); got != 0.9 {
		t.Errorf("Width = %v, want 0.9", got)
	}
}

func TestLoadType0EmbeddedCMap(t *testing.T) {
	r := pdf.NewMemResolver()
	cmap := r.Add(&pdf.Stream{Dict: pdf.Dict{"CMapName": pdf.Name("Custom-V")}, Data: []byte("begincmap endcmap")})
	e := mustLoad(t, r, type0Font(t, r, cmap, nil))
	if e.Vertical {
		t.Error("embedded CMap read as Identity-H should be horizontal")
	}
	if got := e.Codes([]byte{0, 1, 0, 2}); len(got) != 2 {
		t.Errorf("Codes = %v, want two codes", got)
	}
}
