package filter

import (
	"fmt"

	"github.com/gogpu/pdfrender/pdf"
)

// unpredict reverses the Predictor named in params. Predictor 1 (or no
// params) returns data unchanged; 2 is TIFF; 10-15 are PNG.
func unpredict(data []byte, params pdf.Dict) ([]byte, error) {
	predictor := intParam(params, "Predictor", 1)
	if predictor == 1 {
		return data, nil
	}
	colors := intParam(params, "Colors", 1)
	bpc := intParam(params, "BitsPerComponent", 8)
	columns := intParam(params, "Columns", 1)
	if colors < 1 || columns < 1 || (bpc != 1 && bpc != 2 && bpc != 4 && bpc != 8 && bpc != 16) {
		return nil, fmt.Errorf("%w: bad predictor parameters", pdf.ErrDecode)
	}
	bpp := max((colors*bpc+7)/8, 1)
	rowLen := (colors*bpc*columns + 7) / 8

	switch {
	case predictor == 2:
		return unpredictTIFF(data, rowLen, colors, bpc), nil
	case predictor >= 10 && predictor <= 15:
		return unpredictPNG(data, rowLen, bpp)
	}
	return nil, fmt.Errorf("%w: predictor %d", ErrUnsupportedFilter, predictor)
}

func unpredictTIFF(data []byte, rowLen, colors, bpc int) []byte {
	out := append([]byte(nil), data...)
	if bpc != 8 {
		// Only byte samples are differenced in practice; other depths
		// are passed through.
		return out
	}
	for row := 0; row+rowLen <= len(out); row += rowLen {
		line := out[row : row+rowLen]
		for i := colors; i < len(line); i++ {
			line[i] += line[i-colors]
		}
	}
	return out
}

func unpredictPNG(data []byte, rowLen, bpp int) ([]byte, error) {
	stride := rowLen + 1
	rows := len(data) / stride
	out := make([]byte, 0, rows*rowLen)
	prev := make([]byte, rowLen)
	cur := make([]byte, rowLen)

	for r := 0; r < rows; r++ {
		line := data[r*stride : (r+1)*stride]
		ft := line[0]
		copy(cur, line[1:])
		switch ft {
		case 0:
		case 1:
			for i := bpp; i < rowLen; i++ {
				cur[i] += cur[i-bpp]
			}
		case 2:
			for i := range cur {
				cur[i] += prev[i]
			}
		case 3:
			for i := range cur {
				var left byte
				if i >= bpp {
					left = cur[i-bpp]
				}
				cur[i] += byte((int(left) + int(prev[i])) / 2)
			}
		case 4:
			for i := range cur {
				var left, upLeft byte
				if i >= bpp {
					left, upLeft = cur[i-bpp], prev[i-bpp]
				}
				cur[i] += paeth(left, prev[i], upLeft)
			}
		default:
			return nil, fmt.Errorf("%w: PNG filter type %d", pdf.ErrDecode, ft)
		}
		out = append(out, cur...)
		prev, cur = cur, prev
	}
	return out, nil
}

func paeth(a, b, c byte) byte {
	p := int(a) + int(b) - int(c)
	pa, pb, pc := abs(p-int(a)), abs(p-int(b)), abs(p-int(c))
	switch {
	case pa <= pb && pa <= pc:
		return a
	case pb <= pc:
		return b
	}
	return c
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
