package font

import (
	"golang.org/x/text/encoding/charmap"

	"github.com/gogpu/pdfrender/pdf"
)

// simpleEncoding maps one-byte codes to Unicode and glyph names.
type simpleEncoding struct {
	runes [256]rune
	names [256]string
}

// rune returns the Unicode value of code, or 0 when unknown.
func (e *simpleEncoding) rune(code byte) rune { return e.runes[code] }

// name returns the glyph name of code, derived from its rune when the
// encoding does not name it.
func (e *simpleEncoding) name(code byte) string {
	if n := e.names[code]; n != "" {
		return n
	}
	if r := e.runes[code]; r != 0 {
		return RuneToGlyphName(r)
	}
	return ""
}

func (e *simpleEncoding) set(code byte, name string) {
	e.names[code] = name
	if r, ok := GlyphNameToRune(name); ok {
		e.runes[code] = r
	} else {
		e.runes[code] = 0
	}
}

// standardHigh is the upper half of the Adobe StandardEncoding.
var standardHigh = map[byte]string{
	0xA1: "exclamdown", 0xA2: "cent", 0xA3: "sterling", 0xA4: "fraction", 0xA5: "yen",
	0xA6: "florin", 0xA7: "section", 0xA8: "currency", 0xA9: "quotesingle",
	0xAA: "quotedblleft", 0xAB: "guillemotleft", 0xAC: "guilsinglleft",
	0xAD: "guilsinglright", 0xAE: "fi", 0xAF: "fl", 0xB1: "endash", 0xB2: "dagger",
	0xB3: "daggerdbl", 0xB4: "periodcentered", 0xB6: "paragraph", 0xB7: "bullet",
	0xB8: "quotesinglbase", 0xB9: "quotedblbase", 0xBA: "quotedblright",
	0xBB: "guillemotright", 0xBC: "ellipsis", 0xBD: "perthousand", 0xBF: "questiondown",
	0xC1: "grave", 0xC2: "acute", 0xC3: "circumflex", 0xC4: "tilde", 0xC5: "macron",
	0xC6: "breve", 0xC7: "dotaccent", 0xC8: "dieresis", 0xCA: "ring", 0xCB: "cedilla",
	0xCD: "hungarumlaut", 0xCE: "ogonek", 0xCF: "caron", 0xD0: "emdash", 0xE1: "AE",
	0xE3: "ordfeminine", 0xE8: "Lslash", 0xE9: "Oslash", 0xEA: "OE", 0xEB: "ordmasculine",
	0xF1: "ae", 0xF5: "dotlessi", 0xF8: "lslash", 0xF9: "oslash", 0xFA: "oe",
	0xFB: "germandbls",
}

func standardEncoding() *simpleEncoding {
	e := &simpleEncoding{}
	for i, n := range asciiNames {
		e.set(byte(0x20+i), n)
	}
	e.set(0x27, "quoteright")
	e.set(0x60, "quoteleft")
	for c, n := range standardHigh {
		e.set(c, n)
	}
	return e
}

func charmapEncoding(cm *charmap.Charmap) *simpleEncoding {
	e := &simpleEncoding{}
	for c := 0x20; c < 256; c++ {
		if r := cm.DecodeByte(byte(c)); r != '\ufffd' && r != 0x7F {
			e.runes[c] = r
		}
	}
	return e
}

// identityEncoding maps each code to the rune of the same value. It
// stands in for a symbolic font's built-in encoding.
func identityEncoding() *simpleEncoding {
	e := &simpleEncoding{}
	for c := range 256 {
		e.runes[c] = rune(c)
	}
	return e
}

// baseEncoding returns a named base encoding.
func baseEncoding(name pdf.Name) (*simpleEncoding, bool) {
	switch name {
	case "WinAnsiEncoding":
		return charmapEncoding(charmap.Windows1252), true
	case "MacRomanEncoding":
		return charmapEncoding(charmap.Macintosh), true
	case "StandardEncoding":
		return standardEncoding(), true
	}
	return nil, false
}

// newSimpleEncoding builds the encoding of a simple font from its
// Encoding entry. def supplies the base when the entry names none.
func newSimpleEncoding(o pdf.Object, r pdf.Resolver, def func() *simpleEncoding) (*simpleEncoding, error) {
	v, err := pdf.Deref(r, o)
	if err != nil {
		return nil, err
	}
	switch v := v.(type) {
	case pdf.Name:
		if e, ok := baseEncoding(v); ok {
			return e, nil
		}
		return def(), nil
	case pdf.Dict:
		e := def()
		if n, ok := v.Name("BaseEncoding"); ok {
			if b, ok := baseEncoding(n); ok {
				e = b
			}
		}
		diffs, err := pdf.Deref(r, v["Differences"])
		if err != nil {
			return nil, err
		}
		if a, ok := diffs.(pdf.Array); ok {
			applyDifferences(e, a)
		}
		return e, nil
	}
	return def(), nil
}

// applyDifferences applies a Differences array: a code followed by the
// names of consecutive codes, repeated.
func applyDifferences(e *simpleEncoding, a pdf.Array) {
	code := -1
	for _, o := range a {
		switch o := o.(type) {
		case pdf.Integer:
			code = int(o)
		case pdf.Name:
			if code >= 0 && code < 256 {
				e.set(byte(code), string(o))
			}
			if code >= 0 {
				code++
			}
		}
	}
}
