package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "drawing"

// Analysis outcome label values.
const (
	StatusOK        = "ok"
	StatusCancelled = "cancelled"
	StatusError     = "error"
)

// Analysis Prometheus metrics.
var (
	AnalysesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "analyses_total",
			Help:      "Total number of drawing and document analyses",
		},
		[]string{"kind", "status"}, // kind: drawing / document
	)

	AnalysisDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "analysis_duration_seconds",
			Help:      "Analysis duration in seconds",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		},
		[]string{"kind"},
	)

	RoomsDetected = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "rooms_detected",
			Help:      "Rooms detected per analyzed drawing",
			Buckets:   []float64{0, 1, 2, 4, 8, 16, 32, 64},
		},
	)

	SegmentsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "segments_total",
			Help:      "Axis-aligned segments classified",
		},
		[]string{"orientation"}, // horizontal / vertical
	)
)

var registerOnce sync.Once

// Register registers the analysis and HTTP metrics with the default
// registry. Safe to call more than once.
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			AnalysesTotal,
			AnalysisDuration,
			RoomsDetected,
			SegmentsTotal,
			httpRequestDuration,
			httpRequestsTotal,
		)
	})
}
