// Package httpapi exposes the drawing and document analyses over HTTP.
package httpapi

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/ironsheep/drawing-tools-mcp/internal/analysis"
	"github.com/ironsheep/drawing-tools-mcp/internal/document"
	"github.com/ironsheep/drawing-tools-mcp/internal/drawing"
	"github.com/ironsheep/drawing-tools-mcp/internal/geometry"
	"github.com/ironsheep/drawing-tools-mcp/internal/logger"
	"github.com/ironsheep/drawing-tools-mcp/internal/metrics"
	"github.com/ironsheep/drawing-tools-mcp/internal/render"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 16 << 20

// Error codes returned in ErrorResponse.Code.
const (
	CodeBadRequest    = "bad_request"
	CodeDecodeFailed  = "decode_failed"
	CodeNotFound      = "not_found"
	CodeCancelled     = "cancelled"
	CodeInternalError = "internal_error"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// StructuresResponse is the body of POST /v1/drawings/structures.
type StructuresResponse struct {
	Rooms     []geometry.Room     `json:"rooms"`
	Corridors []geometry.Corridor `json:"corridors"`
}

// Server serves the HTTP API.
type Server struct {
	svc    *analysis.Service
	render render.Options
	logger *zap.Logger
}

// NewServer creates an HTTP API server. renderDefaults fills render options
// not given in the query string.
func NewServer(svc *analysis.Service, renderDefaults render.Options, log *zap.Logger) *Server {
	if renderDefaults.Width <= 0 {
		renderDefaults.Width = 800
	}
	if renderDefaults.Height <= 0 {
		renderDefaults.Height = 600
	}
	if renderDefaults.Margin <= 0 {
		renderDefaults.Margin = 20
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{svc: svc, render: renderDefaults, logger: log}
}

// Router builds the chi router with the full middleware chain.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(jsonRecoverer(s.logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(s.logger))
	r.Use(metrics.Middleware())

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, CodeNotFound, "not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, CodeBadRequest, "method not allowed")
	})

	r.Get("/health", s.Health)
	r.Get("/metrics", s.Metrics)

	r.Route("/v1", func(r chi.Router) {
		r.Post("/drawings/interpret", s.InterpretDrawing)
		r.Post("/drawings/structures", s.DetectStructures)
		r.Post("/drawings/render", s.RenderDrawing)
		r.Post("/documents/interpret", s.InterpretDocument)
	})
	return r
}

// Health handles GET /health.
func (s *Server) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// InterpretDrawing handles POST /v1/drawings/interpret.
func (s *Server) InterpretDrawing(w http.ResponseWriter, r *http.Request) {
	d, ok := s.decodeDrawing(w, r)
	if !ok {
		return
	}

	report, err := s.svc.Analyze(r.Context(), d)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// DetectStructures handles POST /v1/drawings/structures.
func (s *Server) DetectStructures(w http.ResponseWriter, r *http.Request) {
	d, ok := s.decodeDrawing(w, r)
	if !ok {
		return
	}

	st, err := geometry.IdentifyContext(r.Context(), d.Elements)
	if err != nil {
		s.handleError(w, r, analysis.NewError(analysis.CodeCancelled, "detect structures", err))
		return
	}
	writeJSON(w, http.StatusOK, StructuresResponse{Rooms: st.Rooms, Corridors: st.Corridors})
}

// RenderDrawing handles POST /v1/drawings/render. Query parameters width,
// height, margin, scale, show_rooms and background override the defaults.
func (s *Server) RenderDrawing(w http.ResponseWriter, r *http.Request) {
	opts, err := s.renderOptions(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, err.Error())
		return
	}

	d, ok := s.decodeDrawing(w, r)
	if !ok {
		return
	}

	st := geometry.EmptyStructureSet()
	if opts.ShowRooms {
		if st, err = geometry.IdentifyContext(r.Context(), d.Elements); err != nil {
			s.handleError(w, r, analysis.NewError(analysis.CodeCancelled, "detect structures", err))
			return
		}
	}

	res, err := render.Render(d.Elements, st, opts)
	if err != nil {
		if errors.Is(err, render.ErrInvalidSize) {
			writeError(w, http.StatusBadRequest, CodeBadRequest, err.Error())
			return
		}
		s.handleError(w, r, analysis.NewError(analysis.CodeRenderFailed, "render", err))
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// InterpretDocument handles POST /v1/documents/interpret.
func (s *Server) InterpretDocument(w http.ResponseWriter, r *http.Request) {
	body, ok := readBody(w, r)
	if !ok {
		return
	}

	doc, err := document.Decode(bytes.NewReader(body))
	if err != nil {
		writeError(w, http.StatusBadRequest, CodeDecodeFailed, err.Error())
		return
	}
	if doc.ByteSize == 0 {
		doc.ByteSize = int64(len(body))
	}

	report, err := s.svc.AnalyzeDocument(r.Context(), doc)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// decodeDrawing reads a drawing from the request body, writing a 400 on
// failure. ByteSize defaults to the body length.
func (s *Server) decodeDrawing(w http.ResponseWriter, r *http.Request) (*drawing.Drawing, bool) {
	body, ok := readBody(w, r)
	if !ok {
		return nil, false
	}

	d, err := drawing.Decode(bytes.NewReader(body))
	if err != nil {
		writeError(w, http.StatusBadRequest, CodeDecodeFailed, err.Error())
		return nil, false
	}
	if d.ByteSize == 0 {
		d.ByteSize = int64(len(body))
	}
	return d, true
}

func readBody(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Invalid request body: "+err.Error())
		return nil, false
	}
	return body, true
}

func (s *Server) renderOptions(r *http.Request) (render.Options, error) {
	opts := s.render
	opts.ShowRooms = true
	q := r.URL.Query()

	ints := []struct {
		key string
		dst *int
	}{
		{"width", &opts.Width},
		{"height", &opts.Height},
		{"margin", &opts.Margin},
	}
	for _, p := range ints {
		if v := q.Get(p.key); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return opts, fmt.Errorf("invalid %s: %q", p.key, v)
			}
			*p.dst = n
		}
	}
	if v := q.Get("scale"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return opts, fmt.Errorf("invalid scale: %q", v)
		}
		opts.Scale = f
	}
	if v := q.Get("show_rooms"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return opts, fmt.Errorf("invalid show_rooms: %q", v)
		}
		opts.ShowRooms = b
	}
	if v := q.Get("background"); v != "" {
		opts.Background = v
	}
	return opts, nil
}

// handleError maps analysis errors onto status codes.
func (s *Server) handleError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromContext(r.Context())

	var aerr *analysis.Error
	if errors.As(err, &aerr) {
		switch aerr.Code {
		case analysis.CodeDecodeFailed:
			writeError(w, http.StatusBadRequest, CodeDecodeFailed, aerr.Error())
			return
		case analysis.CodeCancelled:
			log.Warn("request cancelled", zap.Error(err))
			writeError(w, http.StatusServiceUnavailable, CodeCancelled, "request cancelled")
			return
		}
	}

	log.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, CodeInternalError, "internal error")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{Code: code, Message: message})
}
