package geometry

// corridorRatio and corridorMaxWidth define an elongated room: the long side
// must exceed corridorRatio times the short side, and the short side must be
// under corridorMaxWidth.
const (
	corridorRatio    = 3.0
	corridorMaxWidth = 3.0
)

// Corridor is a path segment along the center line of an elongated room.
// Width is the room's short side.
type Corridor struct {
	X1    float64 `json:"x1"`
	Y1    float64 `json:"y1"`
	X2    float64 `json:"x2"`
	Y2    float64 `json:"y2"`
	Width float64 `json:"width"`
}

// Length returns the corridor's center-line length.
func (c Corridor) Length() float64 {
	if c.Y1 == c.Y2 {
		return c.X2 - c.X1
	}
	return c.Y2 - c.Y1
}

// DeriveCorridors reinterprets elongated rooms as corridors.
//
// A room wider than three times its height, with a height under 3, becomes a
// horizontal corridor across its full width at half height. Otherwise a room
// taller than three times its width, with a width under 3, becomes a vertical
// corridor across its full height at half width. Each room yields at most one
// corridor, in room order. Rooms are not consumed: a qualifying rectangle is
// both a room and a corridor.
func DeriveCorridors(rooms []Room) []Corridor {
	corridors := make([]Corridor, 0)

	for _, r := range rooms {
		switch {
		case r.Width > corridorRatio*r.Height && r.Height < corridorMaxWidth:
			midY := r.Y + r.Height/2
			corridors = append(corridors, Corridor{
				X1:    r.X,
				Y1:    midY,
				X2:    r.X + r.Width,
				Y2:    midY,
				Width: r.Height,
			})
		case r.Height > corridorRatio*r.Width && r.Width < corridorMaxWidth:
			midX := r.X + r.Width/2
			corridors = append(corridors, Corridor{
				X1:    midX,
				Y1:    r.Y,
				X2:    midX,
				Y2:    r.Y + r.Height,
				Width: r.Width,
			})
		}
	}

	return corridors
}
