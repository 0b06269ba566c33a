// Package raster recovers vector line and circle elements from scanned or exported
// drawing images.
//
// # Algorithm
//
//  1. Binarize: convert to grayscale and threshold, so every pixel is either
//     ink (dark) or paper.
//  2. Runs: scan each row for horizontal ink runs and each column for
//     vertical ink runs at least MinLength pixels long.
//  3. Strokes: runs in adjacent rows (or columns) whose ends line up within
//     a couple of pixels are merged into one stroke, so a pen several pixels
//     thick becomes a single line along its center.
//  4. Filter: strokes thicker than MaxThickness are solid fills, not walls,
//     and are dropped.
//
// Only axis-aligned lines are recovered; that is all room detection uses.
//
// # Circles
//
// With Options.Circles set, circular outlines are found with a Hough circle
// transform. Each ink pixel votes for centers 36 directions around it at
// every radius from MinRadius to MaxRadius. Accumulator peaks become
// candidates, and a candidate is kept only when at least 85% of its
// circumference is inked and its half-radius ring is mostly paper, which
// rules out filled disks. Near-identical detections are merged, keeping the
// best coverage.
//
// # Coordinate System
//
// Input images are y-down. Extracted elements are y-up drawing coordinates:
// the bottom-left pixel of the image is the origin, and one pixel is
// UnitsPerPixel drawing units.
//
// # Limitations
//
// Works best on clean, high-contrast line art. Hatching produces many short
// runs that fall below MinLength; text glyphs rarely reach it either.
package raster
