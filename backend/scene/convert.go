package scene

import (
	"image"

	"github.com/gogpu/gg"
	ggscene "github.com/gogpu/gg/scene"

	"github.com/gogpu/pdfrender"
	"github.com/gogpu/pdfrender/geom"
	"github.com/gogpu/pdfrender/pdf"
)

// patternGray stands in for pattern paints, which the scene cannot express.
var patternGray = gg.RGB(0.5, 0.5, 0.5)

// scenePath converts an output-space outline to a scene path.
func scenePath(o geom.Outline) *ggscene.Path {
	p := ggscene.NewPath()
	for e := range o.All() {
		switch e := e.(type) {
		case gg.MoveTo:
			p.MoveTo(float32(e.Point.X), float32(e.Point.Y))
		case gg.LineTo:
			p.LineTo(float32(e.Point.X), float32(e.Point.Y))
		case gg.QuadTo:
			p.QuadTo(float32(e.Control.X), float32(e.Control.Y), float32(e.Point.X), float32(e.Point.Y))
		case gg.CubicTo:
			p.CubicTo(
				float32(e.Control1.X), float32(e.Control1.Y),
				float32(e.Control2.X), float32(e.Control2.Y),
				float32(e.Point.X), float32(e.Point.Y))
		case gg.Close:
			p.Close()
		}
	}
	return p
}

// clipPath is scenePath for clip regions. An empty outline clips
// everything, so it becomes a zero-area path the scene still encodes.
func clipPath(o geom.Outline) *ggscene.Path {
	if o.IsEmpty() {
		return ggscene.NewPath().MoveTo(0, 0).LineTo(0, 0).Close()
	}
	return scenePath(o)
}

func fillStyle(rule geom.FillRule) ggscene.FillStyle {
	if rule == geom.EvenOdd {
		return ggscene.FillEvenOdd
	}
	return ggscene.FillNonZero
}

// strokeStyle maps a user-space style to output space. A zero width is
// the thinnest visible line.
func strokeStyle(s pdfrender.StrokeStyle, scale float64) *ggscene.StrokeStyle {
	width := float32(s.Width * scale)
	if width <= 0 {
		width = 1
	}
	out := &ggscene.StrokeStyle{
		Width:      width,
		MiterLimit: float32(s.MiterLimit),
		Cap:        ggscene.LineCapButt,
		Join:       ggscene.LineJoinMiter,
	}
	switch s.Cap {
	case gg.LineCapRound:
		out.Cap = ggscene.LineCapRound
	case gg.LineCapSquare:
		out.Cap = ggscene.LineCapSquare
	}
	switch s.Join {
	case gg.LineJoinRound:
		out.Join = ggscene.LineJoinRound
	case gg.LineJoinBevel:
		out.Join = ggscene.LineJoinBevel
	}
	return out
}

func (b *Backend) brush(p pdfrender.Paint, alpha float64) ggscene.Brush {
	var c gg.RGBA
	switch p := p.(type) {
	case pdfrender.Solid:
		c = p.Color
	default:
		b.log.Debug("scene: paint drawn as gray", "paint", p.String())
		c = patternGray
	}
	c.A *= alpha
	return ggscene.SolidBrush(c)
}

// blendModes maps PDF blend modes to scene blend modes by name.
var blendModes = [...]ggscene.BlendMode{
	pdfrender.BlendNormal:     ggscene.BlendNormal,
	pdfrender.BlendMultiply:   ggscene.BlendMultiply,
	pdfrender.BlendScreen:     ggscene.BlendScreen,
	pdfrender.BlendOverlay:    ggscene.BlendOverlay,
	pdfrender.BlendDarken:     ggscene.BlendDarken,
	pdfrender.BlendLighten:    ggscene.BlendLighten,
	pdfrender.BlendColorDodge: ggscene.BlendColorDodge,
	pdfrender.BlendColorBurn:  ggscene.BlendColorBurn,
	pdfrender.BlendHardLight:  ggscene.BlendHardLight,
	pdfrender.BlendSoftLight:  ggscene.BlendSoftLight,
	pdfrender.BlendDifference: ggscene.BlendDifference,
	pdfrender.BlendExclusion:  ggscene.BlendExclusion,
	pdfrender.BlendHue:        ggscene.BlendHue,
	pdfrender.BlendSaturation: ggscene.BlendSaturation,
	pdfrender.BlendColor:      ggscene.BlendColor,
	pdfrender.BlendLuminosity: ggscene.BlendLuminosity,
}

func sceneBlend(m pdfrender.BlendMode) ggscene.BlendMode {
	if int(m) < len(blendModes) {
		return blendModes[m]
	}
	return ggscene.BlendNormal
}

func (b *Backend) decode(im *pdf.ImageXObject, res *pdf.Resources, r pdf.Resolver) (*ggscene.Image, error) {
	rgba, err := b.images.Decode(im, res, r)
	if err != nil {
		return nil, err
	}
	return sceneImage(rgba), nil
}

// sceneImage copies the pixels into a tightly packed scene image.
func sceneImage(src *image.RGBA) *ggscene.Image {
	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	data := make([]byte, 0, w*h*4)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		off := src.PixOffset(bounds.Min.X, y)
		data = append(data, src.Pix[off:off+w*4]...)
	}
	return &ggscene.Image{Width: w, Height: h, Data: data}
}

// placeImage draws img so that its pixel grid fills the unit square in
// user space, first row at the top, then maps it through t.
func (b *Backend) placeImage(img *ggscene.Image, t geom.Transform, mode pdfrender.BlendMode) {
	if img.Width == 0 || img.Height == 0 {
		return
	}
	unit := ggscene.Affine{A: 1 / float32(img.Width), E: -1 / float32(img.Height), F: 1}
	affine := ggscene.AffineFromMatrix(t).Multiply(unit)
	if mode == pdfrender.BlendNormal {
		b.scene.DrawImage(img, affine)
		return
	}
	b.scene.PushLayer(sceneBlend(mode), 1, nil)
	b.scene.DrawImage(img, affine)
	b.scene.PopLayer()
}
