package analysis

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ironsheep/drawing-tools-mcp/internal/document"
	"github.com/ironsheep/drawing-tools-mcp/internal/drawing"
	"github.com/ironsheep/drawing-tools-mcp/internal/geometry"
	"github.com/ironsheep/drawing-tools-mcp/internal/logger"
	"github.com/ironsheep/drawing-tools-mcp/internal/metrics"
	"github.com/ironsheep/drawing-tools-mcp/internal/narrative"
)

const (
	kindDrawing  = "drawing"
	kindDocument = "document"
)

// Service runs the decode, classify, detect and narrate pipeline. It is safe
// for concurrent use. Logs go to the logger carried by the request context.
type Service struct {
	cache *drawing.Cache
	now   func() time.Time
	newID func() string
}

// Option configures a Service.
type Option func(*Service)

// WithCache sets the drawing cache used by LoadDrawing.
func WithCache(c *drawing.Cache) Option {
	return func(s *Service) { s.cache = c }
}

// NewService creates a Service. Without WithCache it caches up to 64
// drawings.
func NewService(opts ...Option) *Service {
	s := &Service{
		cache: drawing.NewCache(64),
		now:   time.Now,
		newID: func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Cache returns the drawing cache.
func (s *Service) Cache() *drawing.Cache { return s.cache }

// LoadDrawing loads a JSON drawing through the cache.
func (s *Service) LoadDrawing(path string) (*drawing.Drawing, error) {
	d, err := s.cache.Load(path)
	if err != nil {
		return nil, NewError(CodeDecodeFailed, "load drawing", err)
	}
	return d, nil
}

// Analyze classifies the drawing's segments, searches for rooms, derives
// corridors and writes the interpretation. The room search stops when ctx is
// cancelled and the returned error then has code ANALYSIS_CANCELLED.
func (s *Service) Analyze(ctx context.Context, d *drawing.Drawing) (*Report, error) {
	log := logger.FromContext(ctx)
	start := s.now()

	if d == nil {
		return nil, s.fail(log, kindDrawing, start, NewError(CodeDecodeFailed, "analyze", errors.New("no drawing")))
	}

	segs := geometry.ClassifySegments(d.Elements)
	metrics.SegmentsTotal.WithLabelValues("horizontal").Add(float64(len(segs.Horizontal)))
	metrics.SegmentsTotal.WithLabelValues("vertical").Add(float64(len(segs.Vertical)))

	structures, err := geometry.FromSegmentsContext(ctx, segs)
	if err != nil {
		return nil, s.fail(log, kindDrawing, start, NewError(CodeCancelled, "detect rooms", err))
	}

	report := &Report{
		ID:       s.newID(),
		FileName: d.Name,
		ByteSize: d.ByteSize,
		Counts:   d.Counts(),
		Segments: SegmentCounts{
			Horizontal: len(segs.Horizontal),
			Vertical:   len(segs.Vertical),
		},
		Structures:     structures,
		Interpretation: narrative.Summarize(d.Elements, structures),
	}
	report.Duration = s.now().Sub(start)
	report.DurationMS = durationMS(report.Duration)

	metrics.AnalysesTotal.WithLabelValues(kindDrawing, metrics.StatusOK).Inc()
	metrics.AnalysisDuration.WithLabelValues(kindDrawing).Observe(report.Duration.Seconds())
	metrics.RoomsDetected.Observe(float64(len(structures.Rooms)))

	log.Info("drawing analyzed",
		zap.String("report_id", report.ID),
		zap.String("file", report.FileName),
		zap.Int64("byte_size", report.ByteSize),
		zap.Int("elements", report.Counts.Total()),
		zap.Int("rooms", len(structures.Rooms)),
		zap.Int("corridors", len(structures.Corridors)),
		zap.Duration("duration", report.Duration),
	)

	return report, nil
}

// AnalyzeDocument summarizes a paginated document.
func (s *Service) AnalyzeDocument(ctx context.Context, doc *document.Document) (*DocumentReport, error) {
	log := logger.FromContext(ctx)
	start := s.now()

	if doc == nil {
		return nil, s.fail(log, kindDocument, start, NewError(CodeDecodeFailed, "analyze document", errors.New("no document")))
	}
	if err := ctx.Err(); err != nil {
		return nil, s.fail(log, kindDocument, start, NewError(CodeCancelled, "analyze document", err))
	}

	report := &DocumentReport{
		ID:             s.newID(),
		FileName:       doc.Name,
		ByteSize:       doc.ByteSize,
		Pages:          len(doc.Pages),
		Sections:       doc.Counts(),
		Interpretation: narrative.SummarizeDocument(doc),
	}
	report.Duration = s.now().Sub(start)
	report.DurationMS = durationMS(report.Duration)

	metrics.AnalysesTotal.WithLabelValues(kindDocument, metrics.StatusOK).Inc()
	metrics.AnalysisDuration.WithLabelValues(kindDocument).Observe(report.Duration.Seconds())

	log.Info("document analyzed",
		zap.String("report_id", report.ID),
		zap.String("file", report.FileName),
		zap.Int("pages", report.Pages),
		zap.Int("sections", report.Sections.Total()),
		zap.Duration("duration", report.Duration),
	)

	return report, nil
}

// fail records a failed analysis and returns err.
func (s *Service) fail(log *zap.Logger, kind string, start time.Time, err *Error) error {
	status := metrics.StatusError
	if err.Code == CodeCancelled {
		status = metrics.StatusCancelled
	}
	metrics.AnalysesTotal.WithLabelValues(kind, status).Inc()
	metrics.AnalysisDuration.WithLabelValues(kind).Observe(s.now().Sub(start).Seconds())

	log.Warn("analysis failed",
		zap.String("kind", kind),
		zap.String("code", string(err.Code)),
		zap.Error(err),
	)
	return err
}
