package geom

import (
	"math"

	"github.com/gogpu/gg"
)

// Transform is a 2x3 affine matrix:
//
//	x' = A*x + B*y + C
//	y' = D*x + E*y + F
//
// Backends apply the transform they are given without composing it with
// anything else.
type Transform = gg.Matrix

// Identity returns the identity transform.
func Identity() Transform { return gg.Identity() }

// Translate returns a translation.
func Translate(x, y float64) Transform { return gg.Translate(x, y) }

// Scale returns a scale about the origin.
func Scale(x, y float64) Transform { return gg.Scale(x, y) }

// Matrix builds a Transform from operands in PDF "cm" order [a b c d e f],
// where x' = a*x + c*y + e and y' = b*x + d*y + f.
func Matrix(a, b, c, d, e, f float64) Transform {
	return Transform{A: a, B: c, C: e, D: b, E: d, F: f}
}

// ScaleFactor returns the mean linear scale of t, sqrt(|det|).
// It is used to carry line widths and tolerances across a transform.
func ScaleFactor(t Transform) float64 {
	return math.Sqrt(math.Abs(t.A*t.E - t.B*t.D))
}

// IsFinite reports whether every coefficient of t is a finite number.
func IsFinite(t Transform) bool {
	for _, v := range [...]float64{t.A, t.B, t.C, t.D, t.E, t.F} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
