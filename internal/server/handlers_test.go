package server

import (
	"context"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// callTool sends a tools/call request and returns the response
func callTool(t *testing.T, s *Server, name string, args interface{}) *MCPResponse {
	t.Helper()

	params := map[string]interface{}{
		"name":      name,
		"arguments": args,
	}
	paramsJSON, err := json.Marshal(params)
	if err != nil {
		t.Fatalf("marshal params: %v", err)
	}

	resp := s.handleRequest(context.Background(), &MCPRequest{
		JSONRPC: "2.0",
		ID:      1,
		Method:  "tools/call",
		Params:  paramsJSON,
	})
	if resp == nil {
		t.Fatal("handleRequest returned nil")
	}
	return resp
}

// decodeResult unpacks the text content of a successful tool response into v
func decodeResult(t *testing.T, resp *MCPResponse, v interface{}) {
	t.Helper()

	if resp.Error != nil {
		t.Fatalf("unexpected error: %+v", resp.Error)
	}
	result := resp.Result.(map[string]interface{})
	content := result["content"].([]map[string]interface{})
	if len(content) != 1 || content[0]["type"] != "text" {
		t.Fatalf("unexpected content: %+v", content)
	}
	if err := json.Unmarshal([]byte(content[0]["text"].(string)), v); err != nil {
		t.Fatalf("decode result: %v", err)
	}
}

func rectangleJSON(x, y, w, h float64) []map[string]interface{} {
	seg := func(x1, y1, x2, y2 float64) map[string]interface{} {
		return map[string]interface{}{
			"type":   "line",
			"points": []map[string]float64{{"x": x1, "y": y1}, {"x": x2, "y": y2}},
			"layer":  "walls",
		}
	}
	return []map[string]interface{}{
		seg(x, y, x+w, y),
		seg(x, y+h, x+w, y+h),
		seg(x, y, x, y+h),
		seg(x+w, y, x+w, y+h),
	}
}

func planElements() []map[string]interface{} {
	elements := rectangleJSON(0, 0, 10, 5)
	elements = append(elements,
		map[string]interface{}{
			"type":     "text",
			"content":  "1F Plan 10m x 5m",
			"position": map[string]float64{"x": 1, "y": 1},
			"layer":    "notes",
		},
		map[string]interface{}{
			"type":   "circle",
			"center": map[string]float64{"x": 5, "y": 2},
			"radius": 1,
		},
	)
	return elements
}

// writeDrawingFile writes a drawing file into a temp dir and returns its path
func writeDrawingFile(t *testing.T, elements []map[string]interface{}) string {
	t.Helper()

	data, err := json.Marshal(map[string]interface{}{"elements": elements})
	if err != nil {
		t.Fatalf("marshal drawing: %v", err)
	}
	path := filepath.Join(t.TempDir(), "plan.json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write drawing: %v", err)
	}
	return path
}

// createLineImageFile draws a 2px black rectangle outline on white
func createLineImageFile(t *testing.T) string {
	t.Helper()

	img := image.NewGray(image.Rect(0, 0, 120, 80))
	for i := range img.Pix {
		img.Pix[i] = 255
	}
	black := color.Gray{Y: 0}
	for x := 10; x <= 110; x++ {
		for d := 0; d < 2; d++ {
			img.SetGray(x, 10+d, black)
			img.SetGray(x, 69+d, black)
		}
	}
	for y := 10; y <= 70; y++ {
		for d := 0; d < 2; d++ {
			img.SetGray(10+d, y, black)
			img.SetGray(109+d, y, black)
		}
	}

	path := filepath.Join(t.TempDir(), "scan.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create image: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encode image: %v", err)
	}
	return path
}

func TestHandleToolsCall_InvalidParams(t *testing.T) {
	s := newTestServer()
	resp := s.handleRequest(context.Background(), &MCPRequest{
		JSONRPC: "2.0",
		ID:      1,
		Method:  "tools/call",
		Params:  json.RawMessage(`"not an object"`),
	})
	if resp.Error == nil || resp.Error.Code != -32602 {
		t.Fatalf("expected -32602, got %+v", resp.Error)
	}
}

func TestHandleToolsCall_UnknownTool(t *testing.T) {
	s := newTestServer()
	resp := callTool(t, s, "drawing_crop", map[string]interface{}{})
	if resp.Error == nil || resp.Error.Code != -32000 {
		t.Fatalf("expected -32000, got %+v", resp.Error)
	}
	data := resp.Error.Data.(map[string]interface{})
	if !strings.Contains(data["detail"].(string), "unknown tool") {
		t.Errorf("detail: got %v", data["detail"])
	}
}

func TestHandleToolsCall_MissingSource(t *testing.T) {
	s := newTestServer()
	resp := callTool(t, s, "drawing_interpret", map[string]interface{}{})
	if resp.Error == nil {
		t.Fatal("expected error without path or elements")
	}
}

func TestHandleToolsCall_DecodeFailed(t *testing.T) {
	s := newTestServer()
	resp := callTool(t, s, "drawing_interpret", map[string]interface{}{
		"elements": []map[string]interface{}{{"type": "spline"}},
	})
	if resp.Error == nil {
		t.Fatal("expected error for unknown element type")
	}
	data := resp.Error.Data.(map[string]interface{})
	if data["code"] != "DECODE_FAILED" {
		t.Errorf("code: got %v, want DECODE_FAILED", data["code"])
	}
}

func TestHandleToolsCall_DrawingLoad(t *testing.T) {
	s := newTestServer()
	path := writeDrawingFile(t, planElements())

	var info DrawingInfo
	decodeResult(t, callTool(t, s, "drawing_load", map[string]interface{}{"path": path}), &info)

	if info.Counts.Lines != 4 || info.Counts.Circles != 1 || info.Counts.Texts != 1 {
		t.Errorf("counts: got %+v", info.Counts)
	}
	if info.ByteSize <= 0 {
		t.Errorf("byte size should be positive, got %d", info.ByteSize)
	}
	if info.Bounds == nil || info.Bounds.MaxX != 10 || info.Bounds.MaxY != 5 {
		t.Errorf("bounds: got %+v", info.Bounds)
	}
	want := []LayerInfo{{"walls", 4}, {"notes", 1}, {"default", 1}}
	if len(info.Layers) != len(want) {
		t.Fatalf("layers: got %+v, want %+v", info.Layers, want)
	}
	for i, l := range want {
		if info.Layers[i] != l {
			t.Errorf("layer %d: got %+v, want %+v", i, info.Layers[i], l)
		}
	}
	if s.svc.Cache().Len() != 1 {
		t.Errorf("drawing should be cached, cache has %d entries", s.svc.Cache().Len())
	}
}

func TestHandleToolsCall_ClassifySegments(t *testing.T) {
	s := newTestServer()
	elements := append(rectangleJSON(0, 0, 10, 5), map[string]interface{}{
		"type":   "line",
		"points": []map[string]float64{{"x": 0, "y": 0}, {"x": 3, "y": 4}},
	})

	var res SegmentsResult
	decodeResult(t, callTool(t, s, "drawing_classify_segments", map[string]interface{}{"elements": elements}), &res)

	if res.HorizontalCount != 2 || res.VerticalCount != 2 {
		t.Errorf("counts: got %d horizontal, %d vertical", res.HorizontalCount, res.VerticalCount)
	}
	if res.MaxWidth != 10 || res.MaxHeight != 5 {
		t.Errorf("max lengths: got %v x %v", res.MaxWidth, res.MaxHeight)
	}
	if len(res.Horizontal) != 2 || len(res.Vertical) != 2 {
		t.Errorf("segments should be included by default")
	}

	res = SegmentsResult{}
	decodeResult(t, callTool(t, s, "drawing_classify_segments", map[string]interface{}{
		"elements":         elements,
		"include_segments": false,
	}), &res)
	if res.Horizontal != nil || res.Vertical != nil {
		t.Errorf("segments should be omitted, got %+v", res)
	}
}

func TestHandleToolsCall_DetectStructures(t *testing.T) {
	s := newTestServer()

	var res StructuresResult
	decodeResult(t, callTool(t, s, "drawing_detect_structures", map[string]interface{}{
		"elements": rectangleJSON(0, 0, 10, 5),
	}), &res)

	if res.RoomCount != 1 || len(res.Rooms) != 1 {
		t.Fatalf("rooms: got %+v", res.Rooms)
	}
	r := res.Rooms[0]
	if r.X != 0 || r.Y != 0 || r.Width != 10 || r.Height != 5 {
		t.Errorf("room: got %+v", r)
	}
	if res.CorridorCount != 0 {
		t.Errorf("corridors: got %d, want 0", res.CorridorCount)
	}
}

func TestHandleToolsCall_Interpret(t *testing.T) {
	s := newTestServer()

	var report map[string]interface{}
	decodeResult(t, callTool(t, s, "drawing_interpret", map[string]interface{}{
		"elements":  planElements(),
		"name":      "house.dxf",
		"byte_size": 2048,
	}), &report)

	if report["file_name"] != "house.dxf" {
		t.Errorf("file_name: got %v", report["file_name"])
	}
	text, _ := report["interpretation"].(string)
	for _, want := range []string{"Drawing type:", "Structures: 1 room detected", "Dimension info:", "Note:"} {
		if !strings.Contains(text, want) {
			t.Errorf("interpretation missing %q:\n%s", want, text)
		}
	}
}

func TestHandleToolsCall_Render(t *testing.T) {
	s := newTestServer()

	var res map[string]interface{}
	decodeResult(t, callTool(t, s, "drawing_render", map[string]interface{}{
		"elements": planElements(),
		"width":    200,
		"height":   100,
	}), &res)

	if res["mime_type"] != "image/png" {
		t.Errorf("mime_type: got %v", res["mime_type"])
	}
	if res["width"] != float64(200) || res["height"] != float64(100) {
		t.Errorf("size: got %vx%v", res["width"], res["height"])
	}
	if s, _ := res["image_base64"].(string); s == "" {
		t.Error("image_base64 should not be empty")
	}
}

func TestHandleToolsCall_RenderInvalidSize(t *testing.T) {
	s := newTestServer()
	resp := callTool(t, s, "drawing_render", map[string]interface{}{
		"elements": planElements(),
		"width":    30,
		"height":   30,
		"margin":   20,
	})
	if resp.Error == nil {
		t.Fatal("expected error when the margin leaves no room")
	}
	data := resp.Error.Data.(map[string]interface{})
	if data["code"] != "RENDER_FAILED" {
		t.Errorf("code: got %v, want RENDER_FAILED", data["code"])
	}
}

func TestHandleToolsCall_FromImage(t *testing.T) {
	s := newTestServer()
	path := createLineImageFile(t)

	var res FromImageResult
	decodeResult(t, callTool(t, s, "drawing_from_image", map[string]interface{}{"path": path}), &res)

	if res.Width != 120 || res.Height != 80 {
		t.Errorf("size: got %dx%d", res.Width, res.Height)
	}
	if res.Horizontal != 2 || res.Vertical != 2 {
		t.Errorf("lines: got %d horizontal, %d vertical", res.Horizontal, res.Vertical)
	}
	if len(res.Elements) != 4 {
		t.Errorf("elements: got %d, want 4", len(res.Elements))
	}
	if res.Report == nil {
		t.Fatal("report should be included by default")
	}
}

func TestHandleToolsCall_FromImageNoInterpret(t *testing.T) {
	s := newTestServer()
	path := createLineImageFile(t)

	var res FromImageResult
	decodeResult(t, callTool(t, s, "drawing_from_image", map[string]interface{}{
		"path":      path,
		"interpret": false,
	}), &res)
	if res.Report != nil {
		t.Error("report should be omitted")
	}
}

func TestHandleToolsCall_FromImageBadThreshold(t *testing.T) {
	s := newTestServer()
	resp := callTool(t, s, "drawing_from_image", map[string]interface{}{
		"path":      "/nonexistent.png",
		"threshold": 300,
	})
	if resp.Error == nil {
		t.Fatal("expected error for out of range threshold")
	}
}

func TestHandleToolsCall_FromImageMissingFile(t *testing.T) {
	s := newTestServer()
	resp := callTool(t, s, "drawing_from_image", map[string]interface{}{"path": "/nonexistent/scan.png"})
	if resp.Error == nil {
		t.Fatal("expected error for missing image")
	}
	data := resp.Error.Data.(map[string]interface{})
	if data["code"] != "DECODE_FAILED" {
		t.Errorf("code: got %v, want DECODE_FAILED", data["code"])
	}
}

func TestHandleToolsCall_DocumentInterpret(t *testing.T) {
	s := newTestServer()

	var report map[string]interface{}
	decodeResult(t, callTool(t, s, "document_interpret", map[string]interface{}{
		"document": map[string]interface{}{
			"name": "notes.pdf",
			"pages": []map[string]interface{}{
				{"sections": []map[string]interface{}{
					{"type": "paragraph", "text": "General notes."},
					{"type": "table", "rows": [][]string{{"Room", "Area"}}},
				}},
				{"sections": []map[string]interface{}{
					{"type": "image", "caption": "Site photo"},
				}},
			},
		},
	}), &report)

	if report["pages"] != float64(2) {
		t.Errorf("pages: got %v, want 2", report["pages"])
	}
	text, _ := report["interpretation"].(string)
	if !strings.HasPrefix(text, "Document: 2 pages with 3 sections.") {
		t.Errorf("interpretation: got %q", text)
	}
}

func TestHandleToolsCall_DocumentMissingSource(t *testing.T) {
	s := newTestServer()
	resp := callTool(t, s, "document_interpret", map[string]interface{}{})
	if resp.Error == nil {
		t.Fatal("expected error without path or document")
	}
}
