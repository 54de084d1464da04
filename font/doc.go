// Package font loads PDF fonts into glyph providers.
//
// An [Entry] maps character codes from a PDF text string to glyph
// outlines and Unicode text. Entries are built by [Load] from a font
// dictionary and its embedded program:
//   - TrueType and OpenType programs (FontFile2, FontFile3/OpenType)
//     through go-text/typesetting/font;
//   - bare CFF programs (FontFile3/Type1C, FontFile3/CIDFontType0C)
//     through go-text/typesetting/font/cff;
//   - standard 14 fonts without an embedded program through Go font
//     substitutes.
//
// Fonts that cannot be drawn (Type3, bare Type1, or a non-standard font
// without a program) load as nil without an error.
//
// A [Cache] shares entries between backends and pages. It is keyed by
// the font dictionary's reference and decodes each font at most once,
// however many goroutines ask for it.
package font
