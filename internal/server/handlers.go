package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/ironsheep/drawing-tools-mcp/internal/analysis"
	"github.com/ironsheep/drawing-tools-mcp/internal/document"
	"github.com/ironsheep/drawing-tools-mcp/internal/drawing"
	"github.com/ironsheep/drawing-tools-mcp/internal/geometry"
	"github.com/ironsheep/drawing-tools-mcp/internal/logger"
	"github.com/ironsheep/drawing-tools-mcp/internal/ocr"
	"github.com/ironsheep/drawing-tools-mcp/internal/raster"
	"github.com/ironsheep/drawing-tools-mcp/internal/render"
)

// errNoSource signals a drawing tool call with neither path nor elements.
var errNoSource = errors.New("either path or elements is required")

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "drawing_interpret").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(ctx context.Context, req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	log := s.log.With(zap.String("tool", params.Name))
	ctx = logger.ContextWithLogger(ctx, log)

	start := time.Now()
	result, err := s.executeTool(ctx, params.Name, params.Arguments)
	if err != nil {
		log.Warn("tool failed", zap.Error(err), zap.Duration("duration", time.Since(start)))
		return &MCPResponse{
			JSONRPC: "2.0",
			ID:      req.ID,
			Error: &MCPError{
				Code:    -32000,
				Message: "Tool execution failed",
				Data:    errorData(err),
			},
		}
	}
	log.Debug("tool completed", zap.Duration("duration", time.Since(start)))

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
//
// Each tool handler:
//  1. Unmarshals arguments from JSON
//  2. Applies default values for optional parameters
//  3. Resolves the drawing from the cache or from inline elements
//  4. Calls the appropriate analysis/render/raster function
//  5. Returns the result or error
func (s *Server) executeTool(ctx context.Context, name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Drawing Analysis
	case "drawing_load":
		return s.handleDrawingLoad(args)
	case "drawing_classify_segments":
		return s.handleClassifySegments(args)
	case "drawing_detect_structures":
		return s.handleDetectStructures(ctx, args)
	case "drawing_interpret":
		return s.handleInterpret(ctx, args)

	// Images
	case "drawing_render":
		return s.handleRender(ctx, args)
	case "drawing_from_image":
		return s.handleFromImage(ctx, args)

	// Documents
	case "document_interpret":
		return s.handleDocumentInterpret(ctx, args)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// errorData is the data member of a tool failure: the analysis error code
// when there is one, and the error text.
func errorData(err error) map[string]interface{} {
	data := map[string]interface{}{"detail": err.Error()}
	var aerr *analysis.Error
	if errors.As(err, &aerr) {
		data["code"] = string(aerr.Code)
	}
	return data
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// === Drawing Source ===

// drawingArgs is embedded by every tool that works on a drawing.
type drawingArgs struct {
	Path     string                `json:"path"`
	Elements []drawing.ElementJSON `json:"elements"`
}

// resolve loads the drawing by path through the cache, or decodes the inline
// elements.
func (s *Server) resolve(a drawingArgs) (*drawing.Drawing, error) {
	if a.Path != "" {
		return s.svc.LoadDrawing(a.Path)
	}
	if a.Elements == nil {
		return nil, errNoSource
	}
	elements, err := drawing.ElementsFromJSON(a.Elements)
	if err != nil {
		return nil, analysis.NewError(analysis.CodeDecodeFailed, "decode elements", err)
	}
	return &drawing.Drawing{Name: "inline", Elements: elements}, nil
}

// === Drawing Analysis Handlers ===

// LayerInfo is one layer's element count.
type LayerInfo struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// DrawingInfo describes a loaded drawing.
type DrawingInfo struct {
	Name     string          `json:"name"`
	ByteSize int64           `json:"byte_size"`
	Counts   drawing.Counts  `json:"counts"`
	Bounds   *drawing.Bounds `json:"bounds,omitempty"`
	Layers   []LayerInfo     `json:"layers"`
}

func (s *Server) handleDrawingLoad(args json.RawMessage) (interface{}, error) {
	var a drawingArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	d, err := s.resolve(a)
	if err != nil {
		return nil, err
	}

	info := &DrawingInfo{
		Name:     d.Name,
		ByteSize: d.ByteSize,
		Counts:   d.Counts(),
		Layers:   make([]LayerInfo, 0),
	}
	if b, ok := d.Bounds(); ok {
		info.Bounds = &b
	}

	index := make(map[string]int)
	for _, e := range d.Elements {
		name := drawing.LayerOf(e)
		i, ok := index[name]
		if !ok {
			i = len(info.Layers)
			index[name] = i
			info.Layers = append(info.Layers, LayerInfo{Name: name})
		}
		info.Layers[i].Count++
	}
	return info, nil
}

type classifySegmentsArgs struct {
	drawingArgs
	IncludeSegments *bool `json:"include_segments"`
}

// SegmentsResult contains classified segments
type SegmentsResult struct {
	HorizontalCount int                 `json:"horizontal_count"`
	VerticalCount   int                 `json:"vertical_count"`
	MaxWidth        float64             `json:"max_width"`
	MaxHeight       float64             `json:"max_height"`
	Horizontal      []geometry.HSegment `json:"horizontal,omitempty"`
	Vertical        []geometry.VSegment `json:"vertical,omitempty"`
}

func (s *Server) handleClassifySegments(args json.RawMessage) (interface{}, error) {
	var a classifySegmentsArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	d, err := s.resolve(a.drawingArgs)
	if err != nil {
		return nil, err
	}

	segs := geometry.ClassifySegments(d.Elements)
	w, h := segs.MaxLengths()
	res := &SegmentsResult{
		HorizontalCount: len(segs.Horizontal),
		VerticalCount:   len(segs.Vertical),
		MaxWidth:        round1(w),
		MaxHeight:       round1(h),
	}
	if a.IncludeSegments == nil || *a.IncludeSegments {
		res.Horizontal = segs.Horizontal
		res.Vertical = segs.Vertical
	}
	return res, nil
}

// StructuresResult contains detected rooms and corridors
type StructuresResult struct {
	Rooms         []geometry.Room     `json:"rooms"`
	Corridors     []geometry.Corridor `json:"corridors"`
	RoomCount     int                 `json:"room_count"`
	CorridorCount int                 `json:"corridor_count"`
}

func (s *Server) handleDetectStructures(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a drawingArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	d, err := s.resolve(a)
	if err != nil {
		return nil, err
	}

	st, err := geometry.IdentifyContext(ctx, d.Elements)
	if err != nil {
		return nil, analysis.NewError(analysis.CodeCancelled, "detect structures", err)
	}
	return &StructuresResult{
		Rooms:         st.Rooms,
		Corridors:     st.Corridors,
		RoomCount:     len(st.Rooms),
		CorridorCount: len(st.Corridors),
	}, nil
}

type interpretArgs struct {
	drawingArgs
	Name     string `json:"name"`
	ByteSize int64  `json:"byte_size"`
}

func (s *Server) handleInterpret(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a interpretArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	d, err := s.resolve(a.drawingArgs)
	if err != nil {
		return nil, err
	}
	if a.Path == "" {
		if a.Name != "" {
			d.Name = a.Name
		}
		d.ByteSize = a.ByteSize
	}
	return s.svc.Analyze(ctx, d)
}

// === Image Handlers ===

type renderArgs struct {
	drawingArgs
	Width      int     `json:"width"`
	Height     int     `json:"height"`
	Margin     *int    `json:"margin"`
	Scale      float64 `json:"scale"`
	ShowRooms  *bool   `json:"show_rooms"`
	Background string  `json:"background"`
}

func (s *Server) handleRender(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a renderArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	d, err := s.resolve(a.drawingArgs)
	if err != nil {
		return nil, err
	}

	opts := s.defaults.Render
	if a.Width > 0 {
		opts.Width = a.Width
	}
	if a.Height > 0 {
		opts.Height = a.Height
	}
	if a.Margin != nil {
		opts.Margin = *a.Margin
	}
	opts.Scale = a.Scale
	opts.ShowRooms = a.ShowRooms == nil || *a.ShowRooms
	if a.Background != "" {
		opts.Background = a.Background
	}

	st := geometry.EmptyStructureSet()
	if opts.ShowRooms {
		if st, err = geometry.IdentifyContext(ctx, d.Elements); err != nil {
			return nil, analysis.NewError(analysis.CodeCancelled, "detect structures", err)
		}
	}

	res, err := render.Render(d.Elements, st, opts)
	if err != nil {
		return nil, analysis.NewError(analysis.CodeRenderFailed, "render", err)
	}
	return res, nil
}

type fromImageArgs struct {
	Path          string  `json:"path"`
	Threshold     int     `json:"threshold"`
	MinLength     int     `json:"min_length"`
	MaxThickness  int     `json:"max_thickness"`
	UnitsPerPixel float64 `json:"units_per_pixel"`
	Circles       bool    `json:"circles"`
	MinRadius     int     `json:"min_radius"`
	MaxRadius     int     `json:"max_radius"`
	OCR           bool    `json:"ocr"`
	Language      string  `json:"language"`
	Interpret     *bool   `json:"interpret"`
}

// FromImageResult contains elements recovered from an image
type FromImageResult struct {
	Width      int                   `json:"width"`
	Height     int                   `json:"height"`
	Horizontal int                   `json:"horizontal"`
	Vertical   int                   `json:"vertical"`
	Circles    int                   `json:"circles"`
	Texts      int                   `json:"texts"`
	OCRError   string                `json:"ocr_error,omitempty"`
	Elements   []drawing.ElementJSON `json:"elements"`
	Report     *analysis.Report      `json:"report,omitempty"`
}

func (s *Server) handleFromImage(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a fromImageArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Threshold < 0 || a.Threshold > 255 {
		return nil, fmt.Errorf("threshold must be between 0 and 255, got %d", a.Threshold)
	}

	img, err := raster.LoadImage(a.Path)
	if err != nil {
		return nil, analysis.NewError(analysis.CodeDecodeFailed, "load image", err)
	}

	ext := raster.ExtractElements(img, raster.Options{
		Threshold:     uint8(a.Threshold),
		MinLength:     a.MinLength,
		MaxThickness:  a.MaxThickness,
		UnitsPerPixel: a.UnitsPerPixel,
		Circles:       a.Circles,
		MinRadius:     a.MinRadius,
		MaxRadius:     a.MaxRadius,
	})

	res := &FromImageResult{
		Width:      ext.Width,
		Height:     ext.Height,
		Horizontal: ext.Horizontal,
		Vertical:   ext.Vertical,
		Circles:    ext.Circles,
	}
	elements := ext.Elements

	if a.OCR {
		opts := s.defaults.OCR
		if a.Language != "" {
			opts.Language = a.Language
		}
		opts.UnitsPerPixel = a.UnitsPerPixel

		texts, err := ocr.ExtractTextElements(a.Path, opts)
		if err != nil {
			// lines are still useful without labels
			oerr := analysis.NewError(analysis.CodeOCRFailed, "ocr", err)
			logger.FromContext(ctx).Warn("ocr failed", zap.Error(oerr))
			res.OCRError = oerr.Error()
		}
		for _, t := range texts {
			elements = append(elements, t)
		}
		res.Texts = len(texts)
	}

	res.Elements = drawing.ElementsToJSON(elements)

	if a.Interpret == nil || *a.Interpret {
		report, err := s.svc.Analyze(ctx, &drawing.Drawing{Name: a.Path, Elements: elements})
		if err != nil {
			return nil, err
		}
		res.Report = report
	}
	return res, nil
}

// === Document Handlers ===

type documentInterpretArgs struct {
	Path     string             `json:"path"`
	Document *document.FileJSON `json:"document"`
}

func (s *Server) handleDocumentInterpret(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a documentInterpretArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	var (
		doc *document.Document
		err error
	)
	switch {
	case a.Path != "":
		doc, err = document.LoadFile(a.Path)
	case a.Document != nil:
		doc, err = document.FromJSON(*a.Document)
	default:
		return nil, errors.New("either path or document is required")
	}
	if err != nil {
		return nil, analysis.NewError(analysis.CodeDecodeFailed, "load document", err)
	}

	return s.svc.AnalyzeDocument(ctx, doc)
}
