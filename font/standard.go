package font

import (
	"bytes"
	"sync"

	ot "github.com/go-text/typesetting/font/opentype"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/gomonobolditalic"
	"golang.org/x/image/font/gofont/gomonoitalic"
	"golang.org/x/image/font/gofont/goregular"
)

// goFace lazily parses one Go font. The parsed Font is shared; each
// Entry gets its own Face.
type goFace struct {
	load func() (sfntFont, error)
}

func newGoFace(ttf []byte) goFace {
	return goFace{load: sync.OnceValues(func() (sfntFont, error) {
		ld, err := ot.NewLoader(bytes.NewReader(ttf))
		if err != nil {
			return sfntFont{}, err
		}
		return loadSFNT(ld)
	})}
}

var (
	goRegular    = newGoFace(goregular.TTF)
	goBold       = newGoFace(gobold.TTF)
	goItalic     = newGoFace(goitalic.TTF)
	goBoldItalic = newGoFace(gobolditalic.TTF)
	goMono       = newGoFace(gomono.TTF)
	goMonoBold   = newGoFace(gomonobold.TTF)
	goMonoItalic = newGoFace(gomonoitalic.TTF)
	goMonoBI     = newGoFace(gomonobolditalic.TTF)
)

// standardFonts maps the standard 14 names, and the common names of
// their metric-compatible equivalents, to substitutes.
var standardFonts = map[string]goFace{
	"Helvetica":             goRegular,
	"Helvetica-Bold":        goBold,
	"Helvetica-Oblique":     goItalic,
	"Helvetica-BoldOblique": goBoldItalic,
	"Times-Roman":           goRegular,
	"Times-Bold":            goBold,
	"Times-Italic":          goItalic,
	"Times-BoldItalic":      goBoldItalic,
	"Courier":               goMono,
	"Courier-Bold":          goMonoBold,
	"Courier-Oblique":       goMonoItalic,
	"Courier-BoldOblique":   goMonoBI,
	"Symbol":                goRegular,

	"Arial":                        goRegular,
	"ArialMT":                      goRegular,
	"Arial,Bold":                   goBold,
	"Arial-BoldMT":                 goBold,
	"Arial,Italic":                 goItalic,
	"Arial-ItalicMT":               goItalic,
	"Arial,BoldItalic":             goBoldItalic,
	"Arial-BoldItalicMT":           goBoldItalic,
	"TimesNewRoman":                goRegular,
	"TimesNewRomanPSMT":            goRegular,
	"TimesNewRoman,Bold":           goBold,
	"TimesNewRomanPS-BoldMT":       goBold,
	"TimesNewRoman,Italic":         goItalic,
	"TimesNewRomanPS-ItalicMT":     goItalic,
	"TimesNewRoman,BoldItalic":     goBoldItalic,
	"TimesNewRomanPS-BoldItalicMT": goBoldItalic,
	"CourierNew":                   goMono,
	"CourierNewPSMT":               goMono,
	"CourierNew,Bold":              goMonoBold,
	"CourierNewPS-BoldMT":          goMonoBold,
	"CourierNew,Italic":            goMonoItalic,
	"CourierNewPS-ItalicMT":        goMonoItalic,
	"CourierNew,BoldItalic":        goMonoBI,
	"CourierNewPS-BoldItalicMT":    goMonoBI,
}

// IsStandard reports whether name (without subset prefix) has a
// standard font substitute.
func IsStandard(name string) bool {
	_, ok := standardFonts[stripSubset(name)]
	return ok
}

// standardProgram returns a fresh program for a standard font name.
func standardProgram(name string) (*sfntProgram, bool, error) {
	gf, ok := standardFonts[name]
	if !ok {
		return nil, false, nil
	}
	f, err := gf.load()
	if err != nil {
		return nil, true, err
	}
	return newSFNT(f), true, nil
}

// symbolLetters maps the Latin letters of the Symbol font's built-in
// encoding to Greek.
var symbolLetters = map[byte]rune{
	'A': 'Α', 'B': 'Β', 'C': 'Χ', 'D': 'Δ', 'E': 'Ε', 'F': 'Φ', 'G': 'Γ', 'H': 'Η',
	'I': 'Ι', 'J': 'ϑ', 'K': 'Κ', 'L': 'Λ', 'M': 'Μ', 'N': 'Ν', 'O': 'Ο', 'P': 'Π',
	'Q': 'Θ', 'R': 'Ρ', 'S': 'Σ', 'T': 'Τ', 'U': 'Υ', 'V': 'ς', 'W': 'Ω', 'X': 'Ξ',
	'Y': 'Ψ', 'Z': 'Ζ',
	'a': 'α', 'b': 'β', 'c': 'χ', 'd': 'δ', 'e': 'ε', 'f': 'φ', 'g': 'γ', 'h': 'η',
	'i': 'ι', 'j': 'ϕ', 'k': 'κ', 'l': 'λ', 'm': 'μ', 'n': 'ν', 'o': 'ο', 'p': 'π',
	'q': 'θ', 'r': 'ρ', 's': 'σ', 't': 'τ', 'u': 'υ', 'v': 'ϖ', 'w': 'ω', 'x': 'ξ',
	'y': 'ψ', 'z': 'ζ',
}

// symbolEncoding approximates the Symbol font's built-in encoding:
// ASCII punctuation and digits plus Greek letters.
func symbolEncoding() *simpleEncoding {
	e := &simpleEncoding{}
	for i := range asciiNames {
		e.runes[0x20+i] = rune(0x20 + i)
	}
	for c, r := range symbolLetters {
		e.runes[c] = r
	}
	return e
}
