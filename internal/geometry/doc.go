// Package geometry infers building structure from the line work of a vector
// drawing.
//
// The package is the structural core of drawing interpretation. Given the
// primitive elements of a drawing it finds axis-aligned enclosures ("rooms")
// and elongated enclosures that read as circulation paths ("corridors").
//
// # Algorithm Overview
//
// Identify runs a three-stage pipeline:
//
//  1. Segment classification: lines whose Δy is under 0.1 are horizontal,
//     lines whose Δx is under 0.1 are vertical. Diagonal and zero-length lines
//     take no part in structure detection.
//  2. Room detection: every pair of distinct horizontal segments is combined
//     with every pair of distinct vertical segments. The four segments bound a
//     room when each horizontal reaches both verticals and each vertical
//     reaches both horizontals, within a loose 0.5 unit tolerance.
//  3. Corridor derivation: rooms with an aspect ratio above 3:1 and a minor
//     dimension under 3 units are also reported as corridors.
//
// # Tolerances
//
// All thresholds are fixed:
//   - 0.1: horizontal/vertical classification
//   - 0.5: endpoint overlap and room deduplication
//   - 1: minimum separation of paired segments and minimum room size
//   - 3: corridor aspect ratio and maximum corridor width
//
// The overlap tolerance is looser than the pairing threshold. On inputs near
// these boundaries the constants interact, and results there are heuristic.
//
// # Performance Considerations
//
// Room detection enumerates O(H²·V²) segment quadruples, which is fine for the
// tens to low hundreds of segments of a typical floor plan. Hosts that accept
// large drawings should call DetectRoomsContext so the search can be cancelled.
//
// # Errors
//
// The classifier never fails. Empty input yields an empty StructureSet. Only
// the context-aware variants return an error, and only when cancelled.
package geometry
