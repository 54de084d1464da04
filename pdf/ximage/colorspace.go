package ximage

import (
	"errors"
	"fmt"
	"math"

	"github.com/gogpu/pdfrender/pdf"
)

// ErrColorSpace is returned for color spaces that images cannot use.
var ErrColorSpace = errors.New("ximage: unsupported color space")

// ColorSpace converts decoded components to RGB in [0, 1].
type ColorSpace interface {
	// Family returns the color space family name, such as DeviceRGB.
	Family() pdf.Name

	// Components returns the number of components per pixel.
	Components() int

	// DefaultDecode returns the Decode array used when the image has none.
	DefaultDecode(bpc int) []float64

	// RGB converts one pixel's decoded components.
	RGB(c []float64) (r, g, b float64)
}

// maxColorSpaceDepth bounds Alternate and base color space nesting.
const maxColorSpaceDepth = 8

// ColorSpace resolves a ColorSpace entry. A name that is not a device or
// family name is looked up in res.
func (d *Decoder) ColorSpace(o pdf.Object, res *pdf.Resources, r pdf.Resolver) (ColorSpace, error) {
	return d.colorSpace(o, res, r, 0)
}

func (d *Decoder) colorSpace(o pdf.Object, res *pdf.Resources, r pdf.Resolver, depth int) (ColorSpace, error) {
	if depth > maxColorSpaceDepth {
		return nil, fmt.Errorf("%w: nested too deeply", ErrColorSpace)
	}
	v, err := pdf.Deref(r, o)
	if err != nil {
		return nil, err
	}
	switch v := v.(type) {
	case nil, pdf.Null:
		return nil, fmt.Errorf("%w: missing", ErrColorSpace)
	case pdf.Name:
		if cs, ok := deviceSpace(v); ok {
			return cs, nil
		}
		named, ok := res.ColorSpace(v)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrColorSpace, v)
		}
		return d.colorSpace(named, res, r, depth+1)
	case pdf.Array:
		return d.arraySpace(v, res, r, depth)
	}
	return nil, fmt.Errorf("%w: %s", ErrColorSpace, pdf.Format(v))
}

func deviceSpace(n pdf.Name) (ColorSpace, bool) {
	switch n {
	case "DeviceGray", "CalGray":
		return gray{}, true
	case "DeviceRGB", "CalRGB":
		return rgb{}, true
	case "DeviceCMYK":
		return cmyk{}, true
	}
	return nil, false
}

func (d *Decoder) arraySpace(a pdf.Array, res *pdf.Resources, r pdf.Resolver, depth int) (ColorSpace, error) {
	if len(a) == 0 {
		return nil, fmt.Errorf("%w: empty array", ErrColorSpace)
	}
	family, _ := a[0].(pdf.Name)
	if len(a) == 1 {
		return d.colorSpace(family, res, r, depth+1)
	}
	switch family {
	case "CalGray":
		return gray{}, nil
	case "CalRGB":
		return rgb{}, nil
	case "Lab":
		return newLab(a[1], r)
	case "ICCBased":
		s, err := pdf.DerefStream(r, a[1])
		if err != nil {
			return nil, err
		}
		if s == nil {
			return nil, fmt.Errorf("%w: ICCBased without profile", ErrColorSpace)
		}
		if alt, ok := s.Dict["Alternate"]; ok {
			return d.colorSpace(alt, res, r, depth+1)
		}
		n, _ := s.Dict.Int("N")
		switch n {
		case 1:
			return gray{}, nil
		case 3:
			return rgb{}, nil
		case 4:
			return cmyk{}, nil
		}
		return nil, fmt.Errorf("%w: ICCBased with N=%d", ErrColorSpace, n)
	case "Indexed", "I":
		return d.indexedSpace(a, res, r, depth)
	case "Separation":
		return tint{n: 1}, nil
	case "DeviceN":
		names, err := pdf.Deref(r, a[1])
		if err != nil {
			return nil, err
		}
		arr, _ := names.(pdf.Array)
		if len(arr) == 0 {
			return nil, fmt.Errorf("%w: DeviceN without colorants", ErrColorSpace)
		}
		return tint{n: len(arr)}, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrColorSpace, family)
}

func (d *Decoder) indexedSpace(a pdf.Array, res *pdf.Resources, r pdf.Resolver, depth int) (ColorSpace, error) {
	if len(a) < 4 {
		return nil, fmt.Errorf("%w: short Indexed array", ErrColorSpace)
	}
	base, err := d.colorSpace(a[1], res, r, depth+1)
	if err != nil {
		return nil, err
	}
	if _, ok := base.(indexed); ok {
		return nil, fmt.Errorf("%w: Indexed base is Indexed", ErrColorSpace)
	}
	hv, err := pdf.Deref(r, a[2])
	if err != nil {
		return nil, err
	}
	hival, ok := pdf.Number(hv)
	if !ok || hival < 0 || hival > 255 {
		return nil, fmt.Errorf("%w: Indexed hival %s", ErrColorSpace, pdf.Format(hv))
	}
	lv, err := pdf.Deref(r, a[3])
	if err != nil {
		return nil, err
	}
	var lookup []byte
	switch lv := lv.(type) {
	case pdf.String:
		lookup = []byte(lv)
	case *pdf.Stream:
		specs, err := pdf.FilterSpecs(lv.Dict, r)
		if err != nil {
			return nil, err
		}
		lookup, _, err = d.pipeline().Decode(lv.Data, specs)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: Indexed lookup %s", ErrColorSpace, pdf.Format(lv))
	}
	return indexed{base: base, hival: int(hival), lookup: lookup}, nil
}

type gray struct{}

func (gray) Family() pdf.Name                  { return "DeviceGray" }
func (gray) Components() int                   { return 1 }
func (gray) DefaultDecode(int) []float64       { return []float64{0, 1} }
func (gray) RGB(c []float64) (r, g, b float64) { return c[0], c[0], c[0] }

type rgb struct{}

func (rgb) Family() pdf.Name                  { return "DeviceRGB" }
func (rgb) Components() int                   { return 3 }
func (rgb) DefaultDecode(int) []float64       { return []float64{0, 1, 0, 1, 0, 1} }
func (rgb) RGB(c []float64) (r, g, b float64) { return c[0], c[1], c[2] }

type cmyk struct{}

func (cmyk) Family() pdf.Name            { return "DeviceCMYK" }
func (cmyk) Components() int             { return 4 }
func (cmyk) DefaultDecode(int) []float64 { return []float64{0, 1, 0, 1, 0, 1, 0, 1} }

func (cmyk) RGB(c []float64) (r, g, b float64) {
	k := 1 - c[3]
	return (1 - c[0]) * k, (1 - c[1]) * k, (1 - c[2]) * k
}

// tint approximates Separation and DeviceN spaces without evaluating
// their tint transforms: full tint in any colorant is black.
type tint struct{ n int }

func (t tint) Family() pdf.Name {
	if t.n == 1 {
		return "Separation"
	}
	return "DeviceN"
}

func (t tint) Components() int { return t.n }

func (t tint) DefaultDecode(int) []float64 {
	d := make([]float64, 2*t.n)
	for i := range t.n {
		d[2*i+1] = 1
	}
	return d
}

func (t tint) RGB(c []float64) (r, g, b float64) {
	var m float64
	for _, v := range c {
		m = max(m, v)
	}
	v := 1 - min(m, 1)
	return v, v, v
}

type indexed struct {
	base   ColorSpace
	hival  int
	lookup []byte
}

func (indexed) Family() pdf.Name { return "Indexed" }
func (indexed) Components() int  { return 1 }

func (indexed) DefaultDecode(bpc int) []float64 {
	return []float64{0, float64(uint32(1)<<bpc - 1)}
}

func (ix indexed) RGB(c []float64) (r, g, b float64) {
	i := min(max(int(math.Round(c[0])), 0), ix.hival)
	n := ix.base.Components()
	if (i+1)*n > len(ix.lookup) {
		return 0, 0, 0
	}
	comps := make([]float64, n)
	for k := range n {
		comps[k] = float64(ix.lookup[i*n+k]) / 255
	}
	if l, ok := ix.base.(lab); ok {
		// Lab lookup bytes span the component ranges, not [0, 1].
		comps[0] *= 100
		comps[1] = l.rng[0] + comps[1]*(l.rng[1]-l.rng[0])
		comps[2] = l.rng[2] + comps[2]*(l.rng[3]-l.rng[2])
	}
	return ix.base.RGB(comps)
}

// lab is CIE L*a*b* converted to sRGB under the space's white point.
type lab struct {
	white [3]float64
	rng   [4]float64
}

func newLab(o pdf.Object, r pdf.Resolver) (ColorSpace, error) {
	d, err := pdf.DerefDict(r, o)
	if err != nil {
		return nil, err
	}
	l := lab{white: [3]float64{0.9505, 1, 1.089}, rng: [4]float64{-100, 100, -100, 100}}
	if wp, ok := d.Array("WhitePoint"); ok {
		if v, ok := wp.Numbers(); ok && len(v) == 3 {
			copy(l.white[:], v)
		}
	}
	if rg, ok := d.Array("Range"); ok {
		if v, ok := rg.Numbers(); ok && len(v) == 4 {
			copy(l.rng[:], v)
		}
	}
	return l, nil
}

func (lab) Family() pdf.Name { return "Lab" }
func (lab) Components() int  { return 3 }

func (l lab) DefaultDecode(int) []float64 {
	return []float64{0, 100, l.rng[0], l.rng[1], l.rng[2], l.rng[3]}
}

func (l lab) RGB(c []float64) (r, g, b float64) {
	fy := (c[0] + 16) / 116
	fx := fy + c[1]/500
	fz := fy - c[2]/200
	finv := func(t float64) float64 {
		if t > 6.0/29 {
			return t * t * t
		}
		return 3 * (6.0 / 29) * (6.0 / 29) * (t - 4.0/29)
	}
	x := l.white[0] * finv(fx)
	y := l.white[1] * finv(fy)
	z := l.white[2] * finv(fz)

	r = 3.2406*x - 1.5372*y - 0.4986*z
	g = -0.9689*x + 1.8758*y + 0.0415*z
	b = 0.0557*x - 0.2040*y + 1.0570*z
	return gammaSRGB(r), gammaSRGB(g), gammaSRGB(b)
}

func gammaSRGB(v float64) float64 {
	if v <= 0.0031308 {
		return 12.92 * v
	}
	return 1.055*math.Pow(v, 1/2.4) - 0.055
}
