// Package svg recomputes trustworthy geometry from emitted SVG markup.
//
// Chart renderers self-report a layout bounding box, but that estimate is
// wrong often enough (overflowing labels, edge strokes, fonts the renderer
// never measured) that the visible region cannot be trusted to it. This
// package re-derives the true content bounds by scanning the markup text
// element by element, then rewrites the document's viewBox so the visible
// frame tightly encloses every mark.
//
// The scanner deliberately treats markup as text rather than as an XML
// document: renderer output is machine-generated and regular, and a strict
// parser would abort on exactly the malformed fragments this package must
// tolerate. One broken path never prevents sizing the rest of the image.
//
// Recognized geometry:
//
//   - group open/close tags carrying translate() transforms (composed
//     through a transform stack; rotation and scale are not modeled)
//   - path, circle, rect, line elements
//   - text elements, approximated from character count and font size
//     (no glyph metrics are available at this layer)
//
// Path data is over-approximated: curve control points are recorded along
// with end points, which never under-estimates because a Bézier curve lies
// inside the convex hull of its control points.
package svg
