package geometry

import (
	"context"

	"github.com/ironsheep/drawing-tools-mcp/internal/drawing"
)

// StructureSet is the classifier's output: rooms and the corridors derived
// from them, each in discovery order.
type StructureSet struct {
	Rooms     []Room     `json:"rooms"`
	Corridors []Corridor `json:"corridors"`
}

// EmptyStructureSet returns a StructureSet with empty, non-nil slices.
func EmptyStructureSet() StructureSet {
	return StructureSet{Rooms: make([]Room, 0), Corridors: make([]Corridor, 0)}
}

// Identify classifies segments, detects rooms and derives corridors.
func Identify(elements []drawing.Element) StructureSet {
	s, _ := IdentifyContext(context.Background(), elements)
	return s
}

// IdentifyContext is Identify with a cancellable room search. On cancellation
// it returns an empty StructureSet and ctx.Err().
func IdentifyContext(ctx context.Context, elements []drawing.Element) (StructureSet, error) {
	segs := ClassifySegments(elements)
	return FromSegmentsContext(ctx, segs)
}

// FromSegmentsContext runs room detection and corridor derivation on already
// classified segments.
func FromSegmentsContext(ctx context.Context, segs Segments) (StructureSet, error) {
	rooms, err := DetectRoomsContext(ctx, segs.Horizontal, segs.Vertical)
	if err != nil {
		return EmptyStructureSet(), err
	}
	return StructureSet{
		Rooms:     rooms,
		Corridors: DeriveCorridors(rooms),
	}, nil
}

// LargestRoom returns the room with the greatest area; ties keep the earliest.
func (s StructureSet) LargestRoom() (Room, bool) {
	if len(s.Rooms) == 0 {
		return Room{}, false
	}
	best := s.Rooms[0]
	for _, r := range s.Rooms[1:] {
		if r.Area() > best.Area() {
			best = r
		}
	}
	return best, true
}

// SmallestRoom returns the room with the least area; ties keep the earliest.
func (s StructureSet) SmallestRoom() (Room, bool) {
	if len(s.Rooms) == 0 {
		return Room{}, false
	}
	best := s.Rooms[0]
	for _, r := range s.Rooms[1:] {
		if r.Area() < best.Area() {
			best = r
		}
	}
	return best, true
}
