// Package drawing defines the element model shared by every stage of drawing
// interpretation and the JSON format used to exchange decoded drawings.
//
// A drawing is an ordered list of primitive elements:
//
//   - Line: a segment between two points
//   - Circle: a center point and a radius
//   - Text: a label anchored at a position
//
// Every element carries a layer name. Layers are used for statistics only and
// never influence geometry.
//
// # Coordinate System
//
// Drawing coordinates follow the CAD convention, not the image convention:
//   - X increases rightward
//   - Y increases upward
//   - Units are whatever the source drawing uses (usually mm or m)
//
// Packages that rasterize drawings (render, raster) convert between this
// convention and image coordinates.
//
// # Decoding
//
// Binary CAD and word-processor formats are decoded by external tools. Their
// output is handed to this package as JSON:
//
//	{
//	  "name": "plan.dwg",
//	  "elements": [
//	    {"type": "line", "points": [{"x": 0, "y": 0}, {"x": 10, "y": 0}], "layer": "walls"},
//	    {"type": "circle", "center": {"x": 5, "y": 5}, "radius": 1.5},
//	    {"type": "text", "content": "Floor Plan", "position": {"x": 1, "y": 9}}
//	  ]
//	}
//
// A line must carry exactly two points. Decode rejects anything else with
// ErrMalformedElement so later stages can rely on well-formed input.
//
// # Caching
//
// Cache keeps decoded drawings keyed by path so repeated tool calls against the
// same file skip disk I/O and decoding. It is safe for concurrent use.
package drawing
