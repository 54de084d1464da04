package filter

import (
	"bytes"
	"compress/lzw"
	"io"

	tifflzw "golang.org/x/image/tiff/lzw"

	"github.com/gogpu/pdfrender/pdf"
)

// LZW decodes LZWDecode streams. The default EarlyChange of 1 switches
// code width one code early, as TIFF does; EarlyChange 0 is the classic
// variant.
type LZW struct{}

// Name implements Decoder.
func (LZW) Name() string { return "LZWDecode" }

// Decode implements Decoder.
func (l LZW) Decode(in []byte, params pdf.Dict) ([]byte, error) {
	return l.DecodeLimited(in, params, 0)
}

// DecodeLimited implements LimitedDecoder.
func (LZW) DecodeLimited(in []byte, params pdf.Dict, limit int) ([]byte, error) {
	var rc io.ReadCloser
	if intParam(params, "EarlyChange", 1) == 0 {
		rc = lzw.NewReader(bytes.NewReader(in), lzw.MSB, 8)
	} else {
		rc = tifflzw.NewReader(bytes.NewReader(in), tifflzw.MSB, 8)
	}
	defer rc.Close()

	out, err := readAll(rc, limit)
	if err != nil {
		return nil, err
	}
	return unpredict(out, params)
}
