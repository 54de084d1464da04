// Package pdf models the document objects that cross the boundary between
// a content-stream interpreter and a rendering backend.
//
// It does not parse PDF files. A document parser produces Objects, and
// a Resolver hands them out by reference. Backends receive those objects
// together with the Resolver when they need to load fonts or image data
// lazily.
//
// # Objects
//
// Object is a closed set of kinds: Null, Bool, Integer, Real, String,
// Name, Array, Dict, *Stream and Ref. Use a type switch to inspect them,
// or the typed helpers on Dict:
//
//	w, ok := dict.Int("Width")
//	cs := dict.Get("ColorSpace")
//	obj, err := pdf.Deref(resolver, cs)
package pdf
