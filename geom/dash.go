package geom

import (
	"math"

	"github.com/gogpu/gg"
)

// DefaultTolerance is the flattening tolerance used when callers pass a
// non-positive value to Dash.
const DefaultTolerance = 0.1

// MaxDashes is the most dashes Dash produces for one outline. Patterns
// that would cut the outline into more pieces leave it solid.
const MaxDashes = 1 << 17

// Dash returns the outline split into the "on" intervals of the dash
// pattern. Curves are flattened to within tolerance first, so the result
// contains only MoveTo and LineTo elements. Closed subpaths dash through
// their closing segment.
//
// A nil or solid pattern returns o unchanged, as does a pattern so fine
// that the outline would need more than MaxDashes dashes.
func (o Outline) Dash(d *gg.Dash, tolerance float64) Outline {
	if !d.IsDashed() || d.PatternLength() <= 0 || len(o.elems) == 0 {
		return o
	}
	if tolerance <= 0 {
		tolerance = DefaultTolerance
	}

	pattern := d.Array
	if len(pattern)%2 != 0 {
		pattern = append(append(make([]float64, 0, 2*len(pattern)), pattern...), pattern...)
	}

	lines := o.polylines(tolerance)
	if n := dashCount(lines, pattern); !(n <= MaxDashes) {
		return o
	}

	var b Builder
	for _, sp := range lines {
		dashPolyline(&b, sp, pattern, d.NormalizedOffset())
	}
	return b.Outline()
}

// dashCount estimates how many "on" intervals pattern cuts lines into.
func dashCount(lines [][]Point, pattern []float64) float64 {
	var total, cycle float64
	for _, sp := range lines {
		for i := 1; i < len(sp); i++ {
			total += sp[i-1].Distance(sp[i])
		}
	}
	for _, l := range pattern {
		cycle += l
	}
	return math.Ceil(total/cycle) * float64(len(pattern)/2)
}

// dashState tracks the position within a dash pattern.
type dashState struct {
	pattern []float64
	index   int
	left    float64
}

func newDashState(pattern []float64, offset float64) dashState {
	s := dashState{pattern: pattern}
	for {
		l := pattern[s.index]
		if offset < l || (l == 0 && offset == 0) {
			s.left = l - offset
			return s
		}
		offset -= l
		s.index = (s.index + 1) % len(pattern)
	}
}

func (s *dashState) on() bool { return s.index%2 == 0 }

func (s *dashState) advance() {
	s.index = (s.index + 1) % len(s.pattern)
	s.left = s.pattern[s.index]
}

func dashPolyline(b *Builder, pts []Point, pattern []float64, offset float64) {
	if len(pts) < 2 {
		return
	}
	st := newDashState(pattern, offset)
	drawing := false
	if st.on() {
		b.MoveTo(pts[0].X, pts[0].Y)
		drawing = true
	}
	for i := 1; i < len(pts); i++ {
		p0, p1 := pts[i-1], pts[i]
		segLen := p0.Distance(p1)
		pos := 0.0
		for segLen-pos > st.left {
			pos += st.left
			pt := p0.Lerp(p1, pos/segLen)
			if st.on() {
				b.LineTo(pt.X, pt.Y)
				drawing = false
			}
			st.advance()
			if st.on() && st.left > 0 {
				b.MoveTo(pt.X, pt.Y)
				drawing = true
			}
		}
		st.left -= segLen - pos
		if drawing {
			b.LineTo(p1.X, p1.Y)
		}
	}
}

// polylines flattens each subpath into a list of points. A closed
// subpath ends with a copy of its start point.
func (o Outline) polylines(tolerance float64) [][]Point {
	var (
		out     [][]Point
		cur     []Point
		start   Point
		current Point
	)
	flush := func() {
		if len(cur) > 1 {
			out = append(out, cur)
		}
		cur = nil
	}
	tolSq := tolerance * tolerance
	for _, elem := range o.elems {
		switch e := elem.(type) {
		case gg.MoveTo:
			flush()
			start, current = e.Point, e.Point
			cur = []Point{e.Point}
		case gg.LineTo:
			cur = append(cur, e.Point)
			current = e.Point
		case gg.QuadTo:
			q := gg.NewQuadBez(current, e.Control, e.Point)
			cur = flattenCubic(cur, q.Raise(), tolSq)
			current = e.Point
		case gg.CubicTo:
			c := gg.NewCubicBez(current, e.Control1, e.Control2, e.Point)
			cur = flattenCubic(cur, c, tolSq)
			current = e.Point
		case gg.Close:
			if len(cur) > 0 {
				cur = append(cur, start)
			}
			flush()
			current = start
			cur = []Point{start}
		}
	}
	flush()
	return out
}

const maxFlattenDepth = 16

func flattenCubic(dst []Point, c gg.CubicBez, tolSq float64) []Point {
	return flattenCubicDepth(dst, c, tolSq, 0)
}

func flattenCubicDepth(dst []Point, c gg.CubicBez, tolSq float64, depth int) []Point {
	if depth >= maxFlattenDepth || cubicFlatness(c) <= tolSq*16 {
		return append(dst, c.P3)
	}
	a, b := c.Subdivide()
	dst = flattenCubicDepth(dst, a, tolSq, depth+1)
	return flattenCubicDepth(dst, b, tolSq, depth+1)
}

// cubicFlatness is the squared distance metric gg uses for flattening.
func cubicFlatness(c gg.CubicBez) float64 {
	ux := 3.0*c.P1.X - 2.0*c.P0.X - c.P3.X
	uy := 3.0*c.P1.Y - 2.0*c.P0.Y - c.P3.Y
	vx := 3.0*c.P2.X - c.P0.X - 2.0*c.P3.X
	vy := 3.0*c.P2.Y - c.P0.Y - 2.0*c.P3.Y
	return math.Max(ux*ux+uy*uy, vx*vx+vy*vy)
}
