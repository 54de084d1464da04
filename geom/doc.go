// Package geom holds the geometry value types that cross the rendering
// backend boundary: immutable outlines, affine transforms, rectangles and
// fill rules.
//
// The types are thin layers over the gg path and matrix model so that
// backends built on gg can consume them without conversion:
//
//	var b geom.Builder
//	b.MoveTo(0, 0).LineTo(10, 0).LineTo(10, 10).Close()
//	o := b.Outline()
//	bounds := o.Transform(geom.Scale(2, 2)).Bounds()
//
// An Outline never changes after it is built. Transform and Dash return
// new outlines.
package geom
