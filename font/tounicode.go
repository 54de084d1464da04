package font

import (
	"slices"
	"strings"

	"golang.org/x/text/encoding/unicode"
)

// toUnicode is a parsed ToUnicode CMap. Codes are keyed by their byte
// length and value so one-byte and two-byte codes do not collide.
type toUnicode struct {
	m       map[codeKey]string
	lengths []int // longest first
}

type codeKey struct {
	n    int
	code uint32
}

// maxRangeSpan bounds how many codes one bfrange may define.
const maxRangeSpan = 1 << 16

// parseToUnicode reads the codespacerange, bfchar and bfrange sections
// of a ToUnicode CMap. Anything else is ignored.
func parseToUnicode(data []byte) *toUnicode {
	t := &toUnicode{m: make(map[codeKey]string)}
	lengths := map[int]bool{}
	toks := tokenizeCMap(data)

	section := ""
	for i := 0; i < len(toks); i++ {
		tok := toks[i]
		if tok.kind == tokKeyword {
			switch tok.text {
			case "begincodespacerange", "beginbfchar", "beginbfrange":
				section = tok.text[len("begin"):]
			case "endcodespacerange", "endbfchar", "endbfrange":
				section = ""
			}
			continue
		}
		switch section {
		case "codespacerange":
			if tok.kind == tokHex && i+1 < len(toks) {
				if validCode(tok.bytes) {
					lengths[len(tok.bytes)] = true
				}
				i++
			}
		case "bfchar":
			if tok.kind != tokHex || i+1 >= len(toks) {
				continue
			}
			dst := toks[i+1]
			i++
			if !validCode(tok.bytes) {
				continue
			}
			if s, ok := dst.unicode(); ok {
				t.m[codeKey{len(tok.bytes), bytesValue(tok.bytes)}] = s
				lengths[len(tok.bytes)] = true
			}
		case "bfrange":
			if tok.kind != tokHex || i+2 >= len(toks) || toks[i+1].kind != tokHex {
				continue
			}
			dst := toks[i+2]
			i += 2
			if !validCode(tok.bytes) || len(toks[i-1].bytes) != len(tok.bytes) {
				continue
			}
			lo, hi := bytesValue(tok.bytes), bytesValue(toks[i-1].bytes)
			n := len(tok.bytes)
			if hi < lo || hi-lo >= maxRangeSpan {
				continue
			}
			lengths[n] = true
			switch dst.kind {
			case tokHex:
				base := []rune(utf16BE(dst.bytes))
				if len(base) == 0 {
					continue
				}
				for c := uint64(lo); c <= uint64(hi); c++ {
					r := slices.Clone(base)
					r[len(r)-1] += rune(c - uint64(lo))
					t.m[codeKey{n, uint32(c)}] = string(r)
				}
			case tokArray:
				for k, e := range dst.elems {
					c := uint64(lo) + uint64(k)
					if c > uint64(hi) {
						break
					}
					if s, ok := e.unicode(); ok {
						t.m[codeKey{n, uint32(c)}] = s
					}
				}
			}
		}
	}
	for n := range lengths {
		t.lengths = append(t.lengths, n)
	}
	slices.Sort(t.lengths)
	slices.Reverse(t.lengths)
	return t
}

// decode maps raw to text, trying the longest code first at each
// position. Unmapped bytes become U+FFFD.
func (t *toUnicode) decode(raw []byte) string {
	var sb strings.Builder
	for len(raw) > 0 {
		matched := false
		for _, n := range t.lengths {
			if n > len(raw) {
				continue
			}
			if s, ok := t.m[codeKey{n, bytesValue(raw[:n])}]; ok {
				sb.WriteString(s)
				raw = raw[n:]
				matched = true
				break
			}
		}
		if !matched {
			sb.WriteRune('\ufffd')
			raw = raw[1:]
		}
	}
	return sb.String()
}

// lookup returns the text of a single code of n bytes.
func (t *toUnicode) lookup(n int, code uint32) (string, bool) {
	s, ok := t.m[codeKey{n, code}]
	return s, ok
}

// validCode reports whether b is a character code of 1 to 4 bytes.
func validCode(b []byte) bool { return len(b) >= 1 && len(b) <= 4 }

// bytesValue packs a code of at most 4 bytes big-endian.
func bytesValue(b []byte) uint32 {
	var v uint32
	for _, c := range b {
		v = v<<8 | uint32(c)
	}
	return v
}

func utf16BE(b []byte) string {
	s, err := unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM).NewDecoder().Bytes(b)
	if err != nil {
		return ""
	}
	return string(s)
}

type tokKind uint8

const (
	tokKeyword tokKind = iota
	tokHex
	tokName
	tokArray
	tokOther
)

type cmapToken struct {
	kind  tokKind
	text  string
	bytes []byte
	elems []cmapToken
}

// unicode returns the destination text of a bfchar or bfrange entry.
func (t cmapToken) unicode() (string, bool) {
	switch t.kind {
	case tokHex:
		return utf16BE(t.bytes), true
	case tokName:
		if r, ok := GlyphNameToRune(t.text); ok {
			return string(r), true
		}
	}
	return "", false
}

// tokenizeCMap splits CMap PostScript into the tokens the parser needs.
// Dictionaries, comments and strings are skipped.
func tokenizeCMap(data []byte) []cmapToken {
	var stack [][]cmapToken
	var out []cmapToken
	emit := func(t cmapToken) {
		if len(stack) > 0 {
			stack[len(stack)-1] = append(stack[len(stack)-1], t)
			return
		}
		out = append(out, t)
	}
	for i := 0; i < len(data); {
		c := data[i]
		switch {
		case isCMapSpace(c):
			i++
		case c == '%':
			for i < len(data) && data[i] != '\n' && data[i] != '\r' {
				i++
			}
		case c == '<' && i+1 < len(data) && data[i+1] == '<', c == '>' && i+1 < len(data) && data[i+1] == '>':
			i += 2
		case c == '<':
			j := i + 1
			var hex []byte
			for j < len(data) && data[j] != '>' {
				if v, ok := hexDigit(data[j]); ok {
					hex = append(hex, v)
				}
				j++
			}
			if len(hex)%2 == 1 {
				hex = append(hex, 0)
			}
			b := make([]byte, len(hex)/2)
			for k := range b {
				b[k] = hex[2*k]<<4 | hex[2*k+1]
			}
			emit(cmapToken{kind: tokHex, bytes: b})
			i = j + 1
		case c == '[':
			stack = append(stack, nil)
			i++
		case c == ']':
			if len(stack) > 0 {
				elems := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				emit(cmapToken{kind: tokArray, elems: elems})
			}
			i++
		case c == '(':
			depth := 0
			for i < len(data) {
				switch data[i] {
				case '\\':
					i++
				case '(':
					depth++
				case ')':
					depth--
				}
				i++
				if depth == 0 {
					break
				}
			}
			emit(cmapToken{kind: tokOther})
		default:
			j := i + 1
			for j < len(data) && !isCMapSpace(data[j]) && !strings.ContainsRune("<>[]()/%", rune(data[j])) {
				j++
			}
			word := string(data[i:j])
			if c == '/' {
				emit(cmapToken{kind: tokName, text: word[1:]})
			} else if isCMapKeyword(word) {
				emit(cmapToken{kind: tokKeyword, text: word})
			} else {
				emit(cmapToken{kind: tokOther, text: word})
			}
			i = j
		}
	}
	return out
}

func isCMapKeyword(w string) bool {
	return strings.HasPrefix(w, "begin") || strings.HasPrefix(w, "end")
}

func isCMapSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n' || c == '\f' || c == 0
}

func hexDigit(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}
