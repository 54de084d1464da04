package filter

import (
	"bytes"
	"compress/zlib"
	"fmt"

	"github.com/gogpu/pdfrender/pdf"
)

// Flate decodes FlateDecode streams, including PNG and TIFF predictors.
// Truncated streams yield the bytes recovered before the damage.
type Flate struct{}

// Name implements Decoder.
func (Flate) Name() string { return "FlateDecode" }

// Decode implements Decoder.
func (f Flate) Decode(in []byte, params pdf.Dict) ([]byte, error) {
	return f.DecodeLimited(in, params, 0)
}

// DecodeLimited implements LimitedDecoder.
func (Flate) DecodeLimited(in []byte, params pdf.Dict, limit int) ([]byte, error) {
	zr, err := zlib.NewReader(bytes.NewReader(in))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", pdf.ErrDecode, err)
	}
	defer zr.Close()

	out, err := readAll(zr, limit)
	if err != nil {
		return nil, err
	}
	return unpredict(out, params)
}
