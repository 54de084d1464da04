package ximage

import (
	"fmt"
	"math"

	"github.com/gogpu/pdfrender/pdf/filter"
)

// sampler reads packed samples. Rows start on byte boundaries.
type sampler struct {
	data    []byte
	n, bpc  int
	rowSize int
}

// newSampler fails with filter.ErrLimitExceeded when the unpacked
// samples would take more than limit bytes.
func newSampler(data []byte, w, h, n, bpc, limit int) (*sampler, error) {
	pixelBits, ok1 := mulWithin(n, bpc, math.MaxInt)
	rowBits, ok2 := mulWithin(w, pixelBits, math.MaxInt-7)
	rowSize := (rowBits + 7) / 8
	need, ok3 := mulWithin(rowSize, h, limit)
	if !ok1 || !ok2 || !ok3 {
		return nil, fmt.Errorf("%w: %dx%d image with %d-bit pixels", filter.ErrLimitExceeded, w, h, pixelBits)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("empty image data (%d bytes needed)", need)
	}
	if len(data) < need {
		// Truncated streams are drawn with the missing rows zeroed.
		padded := make([]byte, need)
		copy(padded, data)
		data = padded
	}
	return &sampler{data: data, n: n, bpc: bpc, rowSize: rowSize}, nil
}

// at returns the raw value of component c of pixel (x, y).
func (s *sampler) at(x, y, c int) uint32 {
	row := s.data[y*s.rowSize : (y+1)*s.rowSize]
	idx := x*s.n + c
	switch s.bpc {
	case 8:
		return uint32(row[idx])
	case 16:
		return uint32(row[2*idx])<<8 | uint32(row[2*idx+1])
	}
	bit := idx * s.bpc
	b := row[bit/8]
	shift := 8 - s.bpc - bit%8
	return uint32(b>>shift) & (1<<s.bpc - 1)
}

// mulWithin returns a*b when a and b are positive and the product does
// not exceed limit.
func mulWithin(a, b, limit int) (int, bool) {
	if a <= 0 || b <= 0 || a > limit/b {
		return 0, false
	}
	return a * b, true
}
