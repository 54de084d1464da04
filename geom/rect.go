package geom

import (
	"math"

	"github.com/gogpu/gg"
)

// Rect is an axis-aligned rectangle with Min <= Max.
type Rect = gg.Rect

// NewRect returns the rectangle spanned by two corners in any order,
// like a PDF MediaBox [llx lly urx ury].
func NewRect(x0, y0, x1, y1 float64) Rect {
	return gg.NewRect(gg.Pt(x0, y0), gg.Pt(x1, y1))
}

// TransformRect returns the bounding box of r mapped through t.
func TransformRect(r Rect, t Transform) Rect {
	corners := [4]Point{
		r.Min,
		{X: r.Max.X, Y: r.Min.Y},
		r.Max,
		{X: r.Min.X, Y: r.Max.Y},
	}
	out := Rect{
		Min: Point{X: math.Inf(1), Y: math.Inf(1)},
		Max: Point{X: math.Inf(-1), Y: math.Inf(-1)},
	}
	for _, c := range corners {
		p := t.TransformPoint(c)
		out.Min.X = math.Min(out.Min.X, p.X)
		out.Min.Y = math.Min(out.Min.Y, p.Y)
		out.Max.X = math.Max(out.Max.X, p.X)
		out.Max.Y = math.Max(out.Max.Y, p.Y)
	}
	return out
}

// RectOutline returns a closed outline tracing r.
func RectOutline(r Rect) Outline {
	var b Builder
	b.Rect(r.Min.X, r.Min.Y, r.Width(), r.Height())
	return b.Outline()
}
