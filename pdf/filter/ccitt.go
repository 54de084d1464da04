package filter

import (
	"bytes"
	"fmt"

	"golang.org/x/image/ccitt"

	"github.com/gogpu/pdfrender/pdf"
)

// CCITTFax decodes CCITTFaxDecode streams with K < 0 (Group 4) or K = 0
// (one-dimensional Group 3). The output is one bit per pixel, rows padded
// to a byte, with 0 meaning black unless BlackIs1 is set.
type CCITTFax struct{}

// Name implements Decoder.
func (CCITTFax) Name() string { return "CCITTFaxDecode" }

// Decode implements Decoder.
func (c CCITTFax) Decode(in []byte, params pdf.Dict) ([]byte, error) {
	return c.DecodeLimited(in, params, 0)
}

// DecodeLimited implements LimitedDecoder. A declared Rows count whose
// output would pass limit fails before decoding starts.
func (CCITTFax) DecodeLimited(in []byte, params pdf.Dict, limit int) ([]byte, error) {
	k := intParam(params, "K", 0)
	columns := intParam(params, "Columns", 1728)
	rows := intParam(params, "Rows", 0)
	if columns <= 0 {
		return nil, fmt.Errorf("%w: Columns %d", pdf.ErrDecode, columns)
	}
	if limit > 0 {
		stride := (columns + 7) / 8
		if stride > limit || (rows > 0 && rows > limit/stride) {
			return nil, ErrLimitExceeded
		}
	}
	if k > 0 {
		return nil, fmt.Errorf("%w: CCITT mixed 2D coding (K=%d)", ErrUnsupportedFilter, k)
	}
	sf := ccitt.Group3
	if k < 0 {
		sf = ccitt.Group4
	}
	if rows <= 0 {
		rows = ccitt.AutoDetectHeight
	}
	opts := &ccitt.Options{
		Align:  boolParam(params, "EncodedByteAlign", false),
		Invert: boolParam(params, "BlackIs1", false),
	}
	r := ccitt.NewReader(bytes.NewReader(in), ccitt.MSB, sf, columns, rows, opts)
	return readAll(r, limit)
}
