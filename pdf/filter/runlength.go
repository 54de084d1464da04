package filter

import (
	"fmt"

	"github.com/gogpu/pdfrender/pdf"
)

// RunLength decodes RunLengthDecode streams.
type RunLength struct{}

// Name implements Decoder.
func (RunLength) Name() string { return "RunLengthDecode" }

// Decode implements Decoder.
func (rl RunLength) Decode(in []byte, params pdf.Dict) ([]byte, error) {
	return rl.DecodeLimited(in, params, 0)
}

// DecodeLimited implements LimitedDecoder.
func (RunLength) DecodeLimited(in []byte, _ pdf.Dict, limit int) ([]byte, error) {
	var out []byte
	for i := 0; i < len(in); {
		n := int(in[i])
		i++
		switch {
		case n == 128:
			return out, nil
		case n < 128:
			end := i + n + 1
			if end > len(in) {
				return nil, fmt.Errorf("%w: literal run past end of data", pdf.ErrDecode)
			}
			if limit > 0 && len(out)+n+1 > limit {
				return nil, ErrLimitExceeded
			}
			out = append(out, in[i:end]...)
			i = end
		default:
			if i >= len(in) {
				return nil, fmt.Errorf("%w: repeat run past end of data", pdf.ErrDecode)
			}
			if limit > 0 && len(out)+257-n > limit {
				return nil, ErrLimitExceeded
			}
			for range 257 - n {
				out = append(out, in[i])
			}
			i++
		}
	}
	return out, nil
}
