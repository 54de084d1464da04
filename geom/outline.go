package geom

import (
	"iter"
	"slices"

	"github.com/gogpu/gg"
)

// Point is a 2D point in user or output space.
type Point = gg.Point

// Outline is an immutable sequence of path elements forming one or more
// subpaths. The zero value is an empty outline.
//
// Elements are gg.MoveTo, gg.LineTo, gg.QuadTo, gg.CubicTo and gg.Close.
type Outline struct {
	elems []gg.PathElement
}

// FromPath snapshots the elements of a gg path into an Outline.
// Later changes to p do not affect the result.
func FromPath(p *gg.Path) Outline {
	if p == nil {
		return Outline{}
	}
	return Outline{elems: slices.Clone(p.Elements())}
}

// Len returns the number of path elements.
func (o Outline) Len() int { return len(o.elems) }

// IsEmpty reports whether the outline has no elements.
func (o Outline) IsEmpty() bool { return len(o.elems) == 0 }

// Elements returns a copy of the path elements.
func (o Outline) Elements() []gg.PathElement {
	return slices.Clone(o.elems)
}

// All iterates over the path elements in order.
func (o Outline) All() iter.Seq[gg.PathElement] {
	return func(yield func(gg.PathElement) bool) {
		for _, e := range o.elems {
			if !yield(e) {
				return
			}
		}
	}
}

// Path returns a new gg path with the outline's elements.
func (o Outline) Path() *gg.Path {
	p := gg.NewPath()
	for _, elem := range o.elems {
		switch e := elem.(type) {
		case gg.MoveTo:
			p.MoveTo(e.Point.X, e.Point.Y)
		case gg.LineTo:
			p.LineTo(e.Point.X, e.Point.Y)
		case gg.QuadTo:
			p.QuadraticTo(e.Control.X, e.Control.Y, e.Point.X, e.Point.Y)
		case gg.CubicTo:
			p.CubicTo(e.Control1.X, e.Control1.Y, e.Control2.X, e.Control2.Y, e.Point.X, e.Point.Y)
		case gg.Close:
			p.Close()
		}
	}
	return p
}

// Bounds returns the tight bounding box of the outline, taking curve
// extrema into account. An empty outline has a zero Rect.
func (o Outline) Bounds() Rect {
	if len(o.elems) == 0 {
		return Rect{}
	}
	return o.Path().BoundingBox()
}

// Transform returns a new outline with every point mapped through t.
func (o Outline) Transform(t Transform) Outline {
	out := make([]gg.PathElement, len(o.elems))
	for i, elem := range o.elems {
		switch e := elem.(type) {
		case gg.MoveTo:
			out[i] = gg.MoveTo{Point: t.TransformPoint(e.Point)}
		case gg.LineTo:
			out[i] = gg.LineTo{Point: t.TransformPoint(e.Point)}
		case gg.QuadTo:
			out[i] = gg.QuadTo{
				Control: t.TransformPoint(e.Control),
				Point:   t.TransformPoint(e.Point),
			}
		case gg.CubicTo:
			out[i] = gg.CubicTo{
				Control1: t.TransformPoint(e.Control1),
				Control2: t.TransformPoint(e.Control2),
				Point:    t.TransformPoint(e.Point),
			}
		default:
			out[i] = elem
		}
	}
	return Outline{elems: out}
}

// Builder accumulates path elements and produces immutable Outlines.
// The zero value is ready to use.
type Builder struct {
	elems   []gg.PathElement
	start   Point
	current Point
	open    bool
}

// MoveTo starts a new subpath at (x, y).
func (b *Builder) MoveTo(x, y float64) *Builder {
	pt := gg.Pt(x, y)
	b.elems = append(b.elems, gg.MoveTo{Point: pt})
	b.start, b.current, b.open = pt, pt, true
	return b
}

// LineTo adds a line to (x, y). Without an open subpath it acts as MoveTo.
func (b *Builder) LineTo(x, y float64) *Builder {
	if !b.open {
		return b.MoveTo(x, y)
	}
	pt := gg.Pt(x, y)
	b.elems = append(b.elems, gg.LineTo{Point: pt})
	b.current = pt
	return b
}

// QuadTo adds a quadratic Bezier curve with control point (cx, cy).
func (b *Builder) QuadTo(cx, cy, x, y float64) *Builder {
	if !b.open {
		b.MoveTo(cx, cy)
	}
	pt := gg.Pt(x, y)
	b.elems = append(b.elems, gg.QuadTo{Control: gg.Pt(cx, cy), Point: pt})
	b.current = pt
	return b
}

// CubicTo adds a cubic Bezier curve.
func (b *Builder) CubicTo(c1x, c1y, c2x, c2y, x, y float64) *Builder {
	if !b.open {
		b.MoveTo(c1x, c1y)
	}
	pt := gg.Pt(x, y)
	b.elems = append(b.elems, gg.CubicTo{
		Control1: gg.Pt(c1x, c1y),
		Control2: gg.Pt(c2x, c2y),
		Point:    pt,
	})
	b.current = pt
	return b
}

// Close closes the current subpath. It is a no-op without an open subpath.
func (b *Builder) Close() *Builder {
	if !b.open {
		return b
	}
	b.elems = append(b.elems, gg.Close{})
	b.current = b.start
	b.open = false
	return b
}

// Rect adds a closed rectangle subpath, as the PDF "re" operator does.
func (b *Builder) Rect(x, y, w, h float64) *Builder {
	return b.MoveTo(x, y).LineTo(x+w, y).LineTo(x+w, y+h).LineTo(x, y+h).Close()
}

// CurrentPoint returns the end point of the last element.
func (b *Builder) CurrentPoint() Point { return b.current }

// Len returns the number of elements added so far.
func (b *Builder) Len() int { return len(b.elems) }

// Outline returns a snapshot of the accumulated elements.
// The builder can keep growing without affecting the snapshot.
func (b *Builder) Outline() Outline {
	return Outline{elems: slices.Clone(b.elems)}
}

// Reset discards all elements.
func (b *Builder) Reset() {
	b.elems = b.elems[:0]
	b.start, b.current, b.open = Point{}, Point{}, false
}
