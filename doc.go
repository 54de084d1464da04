// Package pdfrender defines the contract between a PDF content-stream
// interpreter and the targets that render pages.
//
// # Overview
//
// An interpreter reads one operator at a time, resolves the resources it
// names and translates it into calls on a [Backend]: draw an outline,
// draw an image, record a text span, replace the clip. The interpreter
// never learns which target it drives. A scene compositor and a tracer
// satisfy the same interface with very different behavior.
//
// # Quick Start
//
//	import (
//	    "github.com/gogpu/pdfrender"
//	    _ "github.com/gogpu/pdfrender/backend/scene" // registers "scene"
//	)
//
//	b, err := pdfrender.NewBackend("scene")
//	if err != nil {
//	    return err
//	}
//	if err := pdfrender.BeginPage(b, mediaBox, pdfrender.DefaultRenderOptions()); err != nil {
//	    return err
//	}
//	err = b.Draw(&outline, pdfrender.Fill{Paint: pdfrender.RGB(1, 0, 0), Alpha: 1},
//	    geom.NonZero, geom.Identity())
//
// # Drawing Modes
//
// [DrawMode] is a closed set of three variants: [Fill], [Stroke] and
// [FillStroke]. [ValidateMode] checks alphas, paints and stroke styles;
// backends reject invalid modes with [ErrInvalidDrawMode].
//
// # Fonts
//
// Fonts are loaded through a [font.Cache] shared by every backend created
// from the same [Config]. A font that is absent or cannot be drawn is not
// an error: GetFont returns a nil entry and the interpreter falls back to
// a placeholder.
//
// # Diagnostics
//
// Malformed content never fails a call. The interpreter reports it
// through the [Diagnostics] hooks instead. Embed [NopDiagnostics] to get
// no-op defaults for all of them.
//
// # Backends
//
// Backends register a [BackendFactory] under a name in init, following
// the database/sql driver pattern. Two are provided:
//   - backend/scene accumulates calls into a gg retained scene
//   - backend/trace records every call as an ordered event
package pdfrender
