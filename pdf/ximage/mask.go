package ximage

import (
	"image"

	"golang.org/x/image/draw"

	"github.com/gogpu/pdfrender/pdf"
)

// keyMask is a color-key Mask array: a pixel whose raw components all
// fall inside their ranges is transparent.
type keyMask []uint32

func (d *Decoder) colorKey(dict pdf.Dict, r pdf.Resolver, n int) keyMask {
	v, err := pdf.Deref(r, dict["Mask"])
	if err != nil {
		return nil
	}
	if _, ok := v.(*pdf.Stream); ok {
		d.log().Debug("ximage: explicit mask ignored")
		return nil
	}
	a, ok := v.(pdf.Array)
	if !ok || len(a) != 2*n {
		return nil
	}
	nums, ok := a.Numbers()
	if !ok {
		return nil
	}
	k := make(keyMask, len(nums))
	for i, f := range nums {
		k[i] = uint32(max(f, 0))
	}
	return k
}

func (k keyMask) masks(raw []uint32) bool {
	if k == nil {
		return false
	}
	for c, v := range raw {
		if v < k[2*c] || v > k[2*c+1] {
			return false
		}
	}
	return true
}

// applySoftMask decodes the SMask stream as a gray image, scales it to
// dst and multiplies it into dst's alpha.
func (d *Decoder) applySoftMask(dst *image.RGBA, o pdf.Object, res *pdf.Resources, r pdf.Resolver) error {
	s, err := pdf.DerefStream(r, o)
	if err != nil || s == nil {
		return err
	}
	mim, err := pdf.NewImageXObject(s, r)
	if err != nil {
		return err
	}
	mim.ColorSpace = pdf.Name("DeviceGray")
	mim.SMask = nil
	mask, err := d.Decode(mim, res, r)
	if err != nil {
		return err
	}
	if mask.Bounds() != dst.Bounds() {
		scaled := image.NewRGBA(dst.Bounds())
		draw.BiLinear.Scale(scaled, scaled.Bounds(), mask, mask.Bounds(), draw.Src, nil)
		mask = scaled
	}
	for i := 0; i < len(dst.Pix); i += 4 {
		a := uint32(mask.Pix[i])
		for c := range 4 {
			dst.Pix[i+c] = uint8(uint32(dst.Pix[i+c]) * a / 0xff)
		}
	}
	return nil
}
