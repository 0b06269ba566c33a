package geometry

import (
	"context"
	"math"
)

const (
	// overlapTolerance is the slack allowed when checking that segment
	// endpoints reach each other, and when comparing rooms for duplicates.
	overlapTolerance = 0.5

	// minSeparation is the distance two parallel segments must exceed to be
	// paired, and the size a room must exceed in both directions.
	minSeparation = 1.0
)

// Room is an axis-aligned rectangle inferred from two horizontal and two
// vertical segments. X, Y is the min corner.
type Room struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Area returns Width × Height.
func (r Room) Area() float64 { return r.Width * r.Height }

// approxEqual reports whether two rooms agree within overlapTolerance in all
// four fields.
func (r Room) approxEqual(o Room) bool {
	return math.Abs(r.X-o.X) < overlapTolerance &&
		math.Abs(r.Y-o.Y) < overlapTolerance &&
		math.Abs(r.Width-o.Width) < overlapTolerance &&
		math.Abs(r.Height-o.Height) < overlapTolerance
}

// DetectRooms finds rooms bounded by pairs of horizontal and vertical
// segments.
//
// Parameters:
//   - horizontals: horizontal segments, normalized so X1 <= X2.
//   - verticals: vertical segments, normalized so Y1 <= Y2.
//
// Returns the rooms in discovery order, never nil.
//
// # Algorithm
//
// For every unordered pair (h1, h2) of horizontals more than 1 unit apart and
// every unordered pair (v1, v2) of verticals more than 1 unit apart, the
// quadruple bounds a room when all eight overlap checks pass:
//   - h1 and h2 each reach the x position of v1 and of v2
//   - v1 and v2 each reach the y position of h1 and of h2
//
// A passing quadruple yields Room{x: min(v1.x, v2.x), y: min(h1.y, h2.y),
// width: |v1.x - v2.x|, height: |h1.y - h2.y|}. Rooms not larger than 1 unit
// in both directions are discarded, and a room within 0.5 units of an
// already-found room in all four fields is treated as a duplicate.
//
// Pairs are enumerated by ascending index, horizontals in the outer loops,
// so identical input always yields identical output in identical order.
//
// # Complexity
//
// O(H²·V²). Suitable for tens to low hundreds of segments.
func DetectRooms(horizontals []HSegment, verticals []VSegment) []Room {
	rooms, _ := DetectRoomsContext(context.Background(), horizontals, verticals)
	return rooms
}

// DetectRoomsContext is DetectRooms with cancellation. The context is checked
// once per outer horizontal index; on cancellation the rooms found so far are
// returned together with ctx.Err().
func DetectRoomsContext(ctx context.Context, horizontals []HSegment, verticals []VSegment) ([]Room, error) {
	rooms := make([]Room, 0)

	for i := 0; i < len(horizontals); i++ {
		if err := ctx.Err(); err != nil {
			return rooms, err
		}
		h1 := horizontals[i]

		for j := i + 1; j < len(horizontals); j++ {
			h2 := horizontals[j]
			if math.Abs(h1.Y-h2.Y) <= minSeparation {
				continue
			}

			for k := 0; k < len(verticals); k++ {
				v1 := verticals[k]

				for l := k + 1; l < len(verticals); l++ {
					v2 := verticals[l]
					if math.Abs(v1.X-v2.X) <= minSeparation {
						continue
					}

					if !boundsRectangle(h1, h2, v1, v2) {
						continue
					}

					room := Room{
						X:      math.Min(v1.X, v2.X),
						Y:      math.Min(h1.Y, h2.Y),
						Width:  math.Abs(v1.X - v2.X),
						Height: math.Abs(h1.Y - h2.Y),
					}
					if room.Width <= minSeparation || room.Height <= minSeparation {
						continue
					}
					if containsRoom(rooms, room) {
						continue
					}
					rooms = append(rooms, room)
				}
			}
		}
	}

	return rooms, nil
}

// boundsRectangle runs the eight overlap checks for a segment quadruple.
func boundsRectangle(h1, h2 HSegment, v1, v2 VSegment) bool {
	for _, h := range [2]HSegment{h1, h2} {
		for _, v := range [2]VSegment{v1, v2} {
			if !overlaps(h.X1, h.X2, v.X, v.X, overlapTolerance) {
				return false
			}
			if !overlaps(v.Y1, v.Y2, h.Y, h.Y, overlapTolerance) {
				return false
			}
		}
	}
	return true
}

// overlaps reports whether [a1, a2] and [b1, b2] touch: either endpoint of
// one range lies within tol of the other range. b1 == b2 is the usual case of
// testing a segment against a single coordinate.
func overlaps(a1, a2, b1, b2, tol float64) bool {
	return within(b1, a1, a2, tol) || within(b2, a1, a2, tol) ||
		within(a1, b1, b2, tol) || within(a2, b1, b2, tol)
}

// within reports whether p lies in [lo-tol, hi+tol].
func within(p, lo, hi, tol float64) bool {
	return p >= lo-tol && p <= hi+tol
}

// containsRoom reports whether rooms already holds a near-duplicate of r.
func containsRoom(rooms []Room, r Room) bool {
	for _, existing := range rooms {
		if existing.approxEqual(r) {
			return true
		}
	}
	return false
}
