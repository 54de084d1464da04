// Package scene provides a backend that accumulates page drawing into a
// gg retained scene for later rasterization.
//
// Calls become scene commands in call order, so call order is paint
// order. Geometry is copied and mapped to output space at call time; the
// scene never refers to caller memory.
//
// # Supported Features
//
//   - Fill, stroke and fill-then-stroke with solid paints
//   - Dash patterns, applied in user space before the transform
//   - One active clip, replaced by each SetClipPath
//   - Image XObjects kept decoded in a bounded cache, inline images
//     decoded once per page
//   - Non-normal blend modes for images, through compositing layers
//
// # Limitations
//
// Pattern paints render as neutral gray. Glyphs are drawn as outlines.
//
// # Example
//
//	import _ "github.com/gogpu/pdfrender/backend/scene"
//
//	b := pdfrender.MustBackend("scene").(*scene.Backend)
//	// ... drive the page ...
//	res := b.Finish()
//	r := ggscene.NewRenderer(w, h)
//	err := r.Render(pixmap, res.Scene)
package scene
