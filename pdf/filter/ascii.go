package filter

import (
	"bytes"
	"encoding/ascii85"
	"fmt"

	"github.com/gogpu/pdfrender/pdf"
)

// ASCIIHex decodes ASCIIHexDecode streams. Whitespace is ignored, '>'
// ends the data, and an odd final digit is padded with zero.
type ASCIIHex struct{}

// Name implements Decoder.
func (ASCIIHex) Name() string { return "ASCIIHexDecode" }

// Decode implements Decoder.
func (ASCIIHex) Decode(in []byte, _ pdf.Dict) ([]byte, error) {
	out := make([]byte, 0, len(in)/2)
	var (
		hi   byte
		half bool
	)
	for _, c := range in {
		if isSpace(c) {
			continue
		}
		if c == '>' {
			break
		}
		v, ok := hexValue(c)
		if !ok {
			return nil, fmt.Errorf("%w: invalid hex digit %q", pdf.ErrDecode, c)
		}
		if half {
			out = append(out, hi<<4|v)
		} else {
			hi = v
		}
		half = !half
	}
	if half {
		out = append(out, hi<<4)
	}
	return out, nil
}

func hexValue(c byte) (byte, bool) {
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

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\r', '\n', '\f', 0:
		return true
	}
	return false
}

// ASCII85 decodes ASCII85Decode streams. An optional "<~" prefix is
// accepted and "~>" ends the data.
type ASCII85 struct{}

// Name implements Decoder.
func (ASCII85) Name() string { return "ASCII85Decode" }

// Decode implements Decoder.
func (a ASCII85) Decode(in []byte, params pdf.Dict) ([]byte, error) {
	return a.DecodeLimited(in, params, 0)
}

// DecodeLimited implements LimitedDecoder. Each 'z' expands to four
// bytes, so the output may be larger than the input.
func (ASCII85) DecodeLimited(in []byte, _ pdf.Dict, limit int) ([]byte, error) {
	in = bytes.TrimPrefix(bytes.TrimLeftFunc(in, func(r rune) bool { return r < 0x80 && isSpace(byte(r)) }), []byte("<~"))
	if i := bytes.Index(in, []byte("~>")); i >= 0 {
		in = in[:i]
	}
	clean := make([]byte, 0, len(in))
	for _, c := range in {
		if !isSpace(c) {
			clean = append(clean, c)
		}
	}
	return readAll(ascii85.NewDecoder(bytes.NewReader(clean)), limit)
}
