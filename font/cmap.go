package font

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/traditionalchinese"
	"golang.org/x/text/encoding/unicode"
)

// cidCodec splits composite font strings into codes and maps codes to
// glyphs.
type cidCodec interface {
	codes(raw []byte) []uint32
	gid(p program, code uint32) (uint32, bool)

	// text decodes raw when the encoding itself implies Unicode.
	text(raw []byte) (string, bool)
}

// identityCodec implements Identity-H and Identity-V: two-byte codes
// equal to CIDs. cidToGID is the CIDToGIDMap stream, nil for identity.
type identityCodec struct {
	cidToGID []byte
}

func (identityCodec) codes(raw []byte) []uint32 {
	out := make([]uint32, 0, len(raw)/2)
	for i := 0; i+1 < len(raw); i += 2 {
		out = append(out, uint32(raw[i])<<8|uint32(raw[i+1]))
	}
	return out
}

func (c identityCodec) gid(_ program, cid uint32) (uint32, bool) {
	if c.cidToGID == nil {
		return cid, true
	}
	i := 2 * int(cid)
	if i+1 >= len(c.cidToGID) {
		return 0, false
	}
	return uint32(c.cidToGID[i])<<8 | uint32(c.cidToGID[i+1]), true
}

func (identityCodec) text(raw []byte) (string, bool) { return "", false }

// unicodeCodec implements predefined CMaps whose codes are a known text
// encoding. Codes are the decoded runes and reach glyphs through the
// program's Unicode cmap. A nil enc means UTF-8.
type unicodeCodec struct {
	enc encoding.Encoding
}

func (c unicodeCodec) decode(raw []byte) string {
	if c.enc == nil {
		return string(raw)
	}
	s, err := c.enc.NewDecoder().String(string(raw))
	if err != nil {
		return ""
	}
	return s
}

func (c unicodeCodec) codes(raw []byte) []uint32 {
	s := c.decode(raw)
	out := make([]uint32, 0, utf8.RuneCountInString(s))
	for _, r := range s {
		out = append(out, uint32(r))
	}
	return out
}

func (unicodeCodec) gid(p program, code uint32) (uint32, bool) {
	if p == nil {
		return 0, false
	}
	return p.gidForRune(rune(code))
}

func (c unicodeCodec) text(raw []byte) (string, bool) { return c.decode(raw), true }

// predefinedCodec returns the codec of a predefined CMap name.
func predefinedCodec(name string) (cidCodec, bool) {
	switch name {
	case "Identity-H", "Identity-V":
		return identityCodec{}, true
	case "EUC-H", "EUC-V":
		return unicodeCodec{japanese.EUCJP}, true
	}
	switch {
	case strings.Contains(name, "UCS2"), strings.Contains(name, "UTF16"):
		return unicodeCodec{unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM)}, true
	case strings.Contains(name, "UTF8"):
		return unicodeCodec{}, true
	case strings.Contains(name, "RKSJ"):
		return unicodeCodec{japanese.ShiftJIS}, true
	case strings.HasPrefix(name, "GBK2K"):
		return unicodeCodec{simplifiedchinese.GB18030}, true
	case strings.HasPrefix(name, "GB"):
		return unicodeCodec{simplifiedchinese.GBK}, true
	case strings.Contains(name, "B5"):
		return unicodeCodec{traditionalchinese.Big5}, true
	case strings.HasPrefix(name, "KSC"):
		return unicodeCodec{korean.EUCKR}, true
	}
	return nil, false
}

// IsVerticalCMap reports whether a CMap name selects vertical writing.
func IsVerticalCMap(name string) bool {
	return strings.HasSuffix(name, "-V")
}
