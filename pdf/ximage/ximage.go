// Package ximage turns PDF image XObjects and inline images into RGBA
// pixels.
//
// Sample data is run through the stream's filter chain, unpacked at the
// image's bit depth, mapped through its Decode array and converted from
// its color space. Stencil masks (ImageMask) come out black where they
// paint. Soft masks and color-key masks become the alpha channel.
package ximage

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"log/slog"
	"math"

	"golang.org/x/image/draw"

	"github.com/gogpu/pdfrender/pdf"
	"github.com/gogpu/pdfrender/pdf/filter"
)

// Decoder decodes images. The zero value uses the default filter
// pipeline and discards log output.
type Decoder struct {
	Pipeline *filter.Pipeline

	// Logger receives debug records about data the decoder repairs or
	// ignores, such as truncated samples and explicit masks.
	Logger *slog.Logger
}

var defaultDecoder = &Decoder{}

// maxImageBytes bounds decoded images when the pipeline has no size
// limit.
const maxImageBytes = math.MaxInt32

// Decode decodes im with the default decoder.
func Decode(im *pdf.ImageXObject, res *pdf.Resources, r pdf.Resolver) (*image.RGBA, error) {
	return defaultDecoder.Decode(im, res, r)
}

func (d *Decoder) pipeline() *filter.Pipeline {
	if d.Pipeline != nil {
		return d.Pipeline
	}
	return filter.NewPipeline()
}

// limit returns the most bytes one decoded image or sample buffer may
// take.
func (d *Decoder) limit() int {
	if l := d.pipeline().Limits.MaxDecodedSize; l > 0 {
		return l
	}
	return maxImageBytes
}

// checkSize rejects images whose RGBA output would pass the limit.
func (d *Decoder) checkSize(w, h int) error {
	_, ok := mulWithin(w, h, d.limit()/4)
	if !ok {
		return fmt.Errorf("%w: %dx%d image", filter.ErrLimitExceeded, w, h)
	}
	return nil
}

// Decode decodes im. Named color spaces are looked up in res. Every
// failure wraps pdf.ErrDecode.
func (d *Decoder) Decode(im *pdf.ImageXObject, res *pdf.Resources, r pdf.Resolver) (*image.RGBA, error) {
	if im == nil {
		return nil, fmt.Errorf("%w: nil image", pdf.ErrDecode)
	}
	if err := d.checkSize(im.Width, im.Height); err != nil {
		return nil, decodeErr(err)
	}
	data, codec, err := d.pipeline().Decode(im.Data, im.Filters)
	if err != nil {
		return nil, decodeErr(err)
	}

	var dst *image.RGBA
	switch codec {
	case "":
		if im.ImageMask {
			dst, err = decodeStencil(im, data, d.limit())
		} else {
			dst, err = d.decodeSamples(im, data, res, r)
		}
	case "DCTDecode":
		dst, err = d.decodeJPEG(data)
	default:
		err = fmt.Errorf("%w: %s", filter.ErrUnsupportedFilter, codec)
	}
	if err != nil {
		return nil, decodeErr(err)
	}

	if !im.ImageMask && im.SMask != nil {
		if err := d.applySoftMask(dst, im.SMask, res, r); err != nil {
			return nil, decodeErr(err)
		}
	}
	return dst, nil
}

func decodeErr(err error) error {
	if errors.Is(err, pdf.ErrDecode) {
		return err
	}
	return fmt.Errorf("%w: %w", pdf.ErrDecode, err)
}

func (d *Decoder) decodeJPEG(data []byte) (*image.RGBA, error) {
	cfg, err := jpeg.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	if err := d.checkSize(cfg.Width, cfg.Height); err != nil {
		return nil, err
	}
	src, err := jpeg.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	return dst, nil
}

// decodeStencil paints opaque black where the mask paints. With the
// default Decode [0 1] that is where the sample is 0.
func decodeStencil(im *pdf.ImageXObject, data []byte, limit int) (*image.RGBA, error) {
	paint := uint32(0)
	if len(im.Decode) >= 2 && im.Decode[0] > im.Decode[1] {
		paint = 1
	}
	s, err := newSampler(data, im.Width, im.Height, 1, 1, limit)
	if err != nil {
		return nil, err
	}
	dst := image.NewRGBA(image.Rect(0, 0, im.Width, im.Height))
	for y := 0; y < im.Height; y++ {
		for x := 0; x < im.Width; x++ {
			if s.at(x, y, 0) == paint {
				dst.Pix[dst.PixOffset(x, y)+3] = 0xff
			}
		}
	}
	return dst, nil
}

func (d *Decoder) decodeSamples(im *pdf.ImageXObject, data []byte, res *pdf.Resources, r pdf.Resolver) (*image.RGBA, error) {
	cs, err := d.ColorSpace(im.ColorSpace, res, r)
	if err != nil {
		return nil, err
	}
	bpc := im.BitsPerComponent
	switch bpc {
	case 1, 2, 4, 8, 16:
	default:
		return nil, fmt.Errorf("BitsPerComponent %d", bpc)
	}
	n := cs.Components()
	s, err := newSampler(data, im.Width, im.Height, n, bpc, d.limit())
	if err != nil {
		return nil, err
	}
	if len(data) < len(s.data) {
		d.log().Debug("ximage: truncated samples", "have", len(data), "need", len(s.data))
	}

	decode := cs.DefaultDecode(bpc)
	if len(im.Decode) == 2*n {
		decode = im.Decode
	}
	key := d.colorKey(im.Dict, r, n)
	maxVal := float64(uint32(1)<<bpc - 1)

	dst := image.NewRGBA(image.Rect(0, 0, im.Width, im.Height))
	raw := make([]uint32, n)
	comps := make([]float64, n)
	for y := 0; y < im.Height; y++ {
		for x := 0; x < im.Width; x++ {
			for c := range n {
				raw[c] = s.at(x, y, c)
				lo, hi := decode[2*c], decode[2*c+1]
				comps[c] = lo + float64(raw[c])*(hi-lo)/maxVal
			}
			if key.masks(raw) {
				continue
			}
			rr, gg, bb := cs.RGB(comps)
			i := dst.PixOffset(x, y)
			dst.Pix[i+0] = to8(rr)
			dst.Pix[i+1] = to8(gg)
			dst.Pix[i+2] = to8(bb)
			dst.Pix[i+3] = 0xff
		}
	}
	return dst, nil
}

func to8(v float64) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 1:
		return 0xff
	}
	return uint8(v*255 + 0.5)
}
