package font

import (
	"strconv"
	"strings"
	"sync"
)

// asciiNames are the glyph names of codes 0x20 through 0x7E in
// WinAnsiEncoding, which match Unicode.
var asciiNames = [...]string{
	"space", "exclam", "quotedbl", "numbersign", "dollar", "percent", "ampersand", "quotesingle",
	"parenleft", "parenright", "asterisk", "plus", "comma", "hyphen", "period", "slash",
	"zero", "one", "two", "three", "four", "five", "six", "seven",
	"eight", "nine", "colon", "semicolon", "less", "equal", "greater", "question",
	"at", "A", "B", "C", "D", "E", "F", "G", "H", "I", "J", "K", "L", "M", "N", "O",
	"P", "Q", "R", "S", "T", "U", "V", "W", "X", "Y", "Z",
	"bracketleft", "backslash", "bracketright", "asciicircum", "underscore", "grave",
	"a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k", "l", "m", "n", "o",
	"p", "q", "r", "s", "t", "u", "v", "w", "x", "y", "z",
	"braceleft", "bar", "braceright", "asciitilde",
}

// latin1Names are the glyph names of U+00A1 through U+00FF.
var latin1Names = [...]string{
	"exclamdown", "cent", "sterling", "currency", "yen", "brokenbar", "section", "dieresis",
	"copyright", "ordfeminine", "guillemotleft", "logicalnot", "hyphen", "registered", "macron",
	"degree", "plusminus", "twosuperior", "threesuperior", "acute", "mu", "paragraph",
	"periodcentered", "cedilla", "onesuperior", "ordmasculine", "guillemotright", "onequarter",
	"onehalf", "threequarters", "questiondown",
	"Agrave", "Aacute", "Acircumflex", "Atilde", "Adieresis", "Aring", "AE", "Ccedilla",
	"Egrave", "Eacute", "Ecircumflex", "Edieresis", "Igrave", "Iacute", "Icircumflex", "Idieresis",
	"Eth", "Ntilde", "Ograve", "Oacute", "Ocircumflex", "Otilde", "Odieresis", "multiply",
	"Oslash", "Ugrave", "Uacute", "Ucircumflex", "Udieresis", "Yacute", "Thorn", "germandbls",
	"agrave", "aacute", "acircumflex", "atilde", "adieresis", "aring", "ae", "ccedilla",
	"egrave", "eacute", "ecircumflex", "edieresis", "igrave", "iacute", "icircumflex", "idieresis",
	"eth", "ntilde", "ograve", "oacute", "ocircumflex", "otilde", "odieresis", "divide",
	"oslash", "ugrave", "uacute", "ucircumflex", "udieresis", "yacute", "thorn", "ydieresis",
}

// extraNames covers the remaining names used by the standard Latin
// encodings.
var extraNames = map[string]rune{
	"Euro": '€', "quotesinglbase": '‚', "florin": 'ƒ', "quotedblbase": '„',
	"ellipsis": '…', "dagger": '†', "daggerdbl": '‡', "circumflex": 'ˆ',
	"perthousand": '‰', "Scaron": 'Š', "guilsinglleft": '‹', "OE": 'Œ',
	"Zcaron": 'Ž', "quoteleft": '‘', "quoteright": '’', "quotedblleft": '“',
	"quotedblright": '”', "bullet": '•', "endash": '–', "emdash": '—',
	"tilde": '˜', "trademark": '™', "scaron": 'š', "guilsinglright": '›',
	"oe": 'œ', "zcaron": 'ž', "Ydieresis": 'Ÿ', "fi": 'ﬁ', "fl": 'ﬂ',
	"fraction": '⁄', "Lslash": 'Ł', "lslash": 'ł', "dotlessi": 'ı',
	"breve": '˘', "dotaccent": '˙', "ring": '˚', "hungarumlaut": '˝',
	"ogonek": '˛', "caron": 'ˇ', "minus": '−', "nbspace": '\u00a0',
	"sfthyphen": '\u00ad', "Delta": 'Δ', "Omega": 'Ω', "pi": 'π', "mu1": '\u00b5',
}

var (
	glyphNamesOnce sync.Once
	nameToRune     map[string]rune
	runeToName     map[rune]string
)

func initGlyphNames() {
	nameToRune = make(map[string]rune, len(asciiNames)+len(latin1Names)+len(extraNames))
	runeToName = make(map[rune]string, len(nameToRune))
	add := func(name string, r rune) {
		if _, ok := nameToRune[name]; !ok {
			nameToRune[name] = r
		}
		if _, ok := runeToName[r]; !ok {
			runeToName[r] = name
		}
	}
	for i, n := range asciiNames {
		add(n, rune(0x20+i))
	}
	for i, n := range latin1Names {
		add(n, rune(0xA1+i))
	}
	for n, r := range extraNames {
		add(n, r)
	}
}

// GlyphNameToRune maps a glyph name to Unicode. It knows the names of
// the standard Latin character sets plus the uniXXXX and uXXXX[XX]
// forms. Suffixes after a period, as in "a.sc", are ignored.
func GlyphNameToRune(name string) (rune, bool) {
	glyphNamesOnce.Do(initGlyphNames)
	if i := strings.IndexByte(name, '.'); i > 0 {
		name = name[:i]
	}
	if r, ok := nameToRune[name]; ok {
		return r, true
	}
	switch {
	case strings.HasPrefix(name, "uni") && len(name) >= 7:
		return parseCodePoint(name[3:7])
	case strings.HasPrefix(name, "u") && len(name) >= 5 && len(name) <= 7:
		return parseCodePoint(name[1:])
	}
	return 0, false
}

// RuneToGlyphName returns the standard glyph name of r, or uniXXXX for
// runes outside the known sets.
func RuneToGlyphName(r rune) string {
	glyphNamesOnce.Do(initGlyphNames)
	if n, ok := runeToName[r]; ok {
		return n
	}
	if r <= 0xFFFF {
		return "uni" + strings.ToUpper(strconv.FormatInt(int64(r)|0x10000, 16)[1:])
	}
	return "u" + strings.ToUpper(strconv.FormatInt(int64(r), 16))
}

func parseCodePoint(hex string) (rune, bool) {
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil || v > 0x10FFFF || (v >= 0xD800 && v <= 0xDFFF) {
		return 0, false
	}
	return rune(v), true
}
