package analysis

import (
	"time"

	"github.com/ironsheep/drawing-tools-mcp/internal/document"
	"github.com/ironsheep/drawing-tools-mcp/internal/drawing"
	"github.com/ironsheep/drawing-tools-mcp/internal/geometry"
)

// SegmentCounts is the number of axis-aligned segments found.
type SegmentCounts struct {
	Horizontal int `json:"horizontal"`
	Vertical   int `json:"vertical"`
}

// Report is the outcome of analyzing one drawing.
type Report struct {
	ID             string                `json:"id"`
	FileName       string                `json:"file_name"`
	ByteSize       int64                 `json:"byte_size"`
	Counts         drawing.Counts        `json:"counts"`
	Segments       SegmentCounts         `json:"segments"`
	Structures     geometry.StructureSet `json:"structures"`
	Interpretation string                `json:"interpretation"`
	Duration       time.Duration         `json:"-"`
	DurationMS     float64               `json:"duration_ms"`
}

// DocumentReport is the outcome of analyzing one paginated document.
type DocumentReport struct {
	ID             string                 `json:"id"`
	FileName       string                 `json:"file_name"`
	ByteSize       int64                  `json:"byte_size"`
	Pages          int                    `json:"pages"`
	Sections       document.SectionCounts `json:"sections"`
	Interpretation string                 `json:"interpretation"`
	Duration       time.Duration          `json:"-"`
	DurationMS     float64                `json:"duration_ms"`
}

func durationMS(d time.Duration) float64 {
	return float64(d.Microseconds()) / 1000
}
