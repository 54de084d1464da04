package pdfrender

import (
	"fmt"

	"github.com/gogpu/gg"

	"github.com/gogpu/pdfrender/pdf"
)

// Paint is the source of color for a fill or stroke. It is passed
// through the backend interface as is; the implementations are Solid
// and Pattern.
type Paint interface {
	isPaint()
	fmt.Stringer
}

// Solid is a single resolved color.
type Solid struct {
	Color gg.RGBA
}

func (Solid) isPaint() {}

func (s Solid) String() string {
	c := s.Color
	return fmt.Sprintf("rgba(%.3g %.3g %.3g %.3g)", c.R, c.G, c.B, c.A)
}

// Pattern refers to a tiling or shading pattern resource. Backends that
// cannot render patterns substitute a neutral color.
type Pattern struct {
	Name pdf.Name
	Ref  pdf.Ref
}

func (Pattern) isPaint() {}

func (p Pattern) String() string {
	if p.Ref.IsZero() {
		return "pattern /" + string(p.Name)
	}
	return fmt.Sprintf("pattern /%s %s", p.Name, p.Ref)
}

// RGB returns an opaque DeviceRGB color.
func RGB(r, g, b float64) Solid {
	return Solid{Color: gg.RGB(clamp01(r), clamp01(g), clamp01(b))}
}

// Gray returns an opaque DeviceGray color.
func Gray(g float64) Solid {
	return RGB(g, g, g)
}

// CMYK returns an opaque DeviceCMYK color converted with the naive
// complement formula.
func CMYK(c, m, y, k float64) Solid {
	k = clamp01(k)
	return RGB((1-clamp01(c))*(1-k), (1-clamp01(m))*(1-k), (1-clamp01(y))*(1-k))
}

func clamp01(v float64) float64 {
	switch {
	case v > 1:
		return 1
	case v >= 0:
		return v
	}
	return 0
}
