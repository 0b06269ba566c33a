package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// elementsSchema describes the inline element wire format.
var elementsSchema = map[string]interface{}{
	"type":        "array",
	"description": "Inline drawing elements, used when path is omitted. Each item is {type: line|circle|text, points: [{x,y},{x,y}] for lines, center {x,y} and radius for circles, content and position {x,y} for text, layer}",
	"items": map[string]interface{}{
		"type": "object",
	},
}

// drawingProperties returns the path/elements properties shared by every
// drawing tool, plus extra.
func drawingProperties(extra map[string]interface{}) map[string]interface{} {
	props := map[string]interface{}{
		"path": map[string]interface{}{
			"type":        "string",
			"description": "Absolute path to a JSON drawing file",
		},
		"elements": elementsSchema,
	}
	for k, v := range extra {
		props[k] = v
	}
	return props
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Drawing Analysis
		{
			Name:        "drawing_load",
			Description: "Load a JSON drawing and return its name, size, element counts, bounding box and layers. Drawings loaded by path are cached for later calls.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": drawingProperties(nil),
			},
		},
		{
			Name:        "drawing_classify_segments",
			Description: "Split the drawing's lines into horizontal and vertical segments (diagonal and zero-length lines are dropped) and report the longest of each.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": drawingProperties(map[string]interface{}{
					"include_segments": map[string]interface{}{
						"type":        "boolean",
						"description": "Whether to list every segment, not just counts (default true)",
						"default":     true,
					},
				}),
			},
		},
		{
			Name:        "drawing_detect_structures",
			Description: "Detect rooms (rectangles bounded by two horizontal and two vertical walls) and corridors (long, narrow rooms) in a drawing.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": drawingProperties(nil),
			},
		},
		{
			Name:        "drawing_interpret",
			Description: "Analyze a drawing end to end: element counts, rooms, corridors and a prose interpretation of the drawing type, size, layout and likely purpose.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": drawingProperties(map[string]interface{}{
					"name": map[string]interface{}{
						"type":        "string",
						"description": "File name to report for inline elements",
					},
					"byte_size": map[string]interface{}{
						"type":        "integer",
						"description": "Original file size to report for inline elements",
					},
				}),
			},
		},

		// Images
		{
			Name:        "drawing_render",
			Description: "Render a drawing to a base64-encoded PNG preview, y axis up, one color per layer. Optionally tint and number detected rooms.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": drawingProperties(map[string]interface{}{
					"width": map[string]interface{}{
						"type":        "integer",
						"description": "Image width in pixels (default from server config)",
					},
					"height": map[string]interface{}{
						"type":        "integer",
						"description": "Image height in pixels (default from server config)",
					},
					"margin": map[string]interface{}{
						"type":        "integer",
						"description": "Blank border in pixels (default from server config)",
					},
					"scale": map[string]interface{}{
						"type":        "number",
						"description": "Pixels per drawing unit; 0 fits the drawing to the image (default 0)",
						"default":     0,
					},
					"show_rooms": map[string]interface{}{
						"type":        "boolean",
						"description": "Tint and number detected rooms (default true)",
						"default":     true,
					},
					"background": map[string]interface{}{
						"type":        "string",
						"description": "Background color as #RRGGBB (default #ffffff)",
					},
				}),
			},
		},
		{
			Name:        "drawing_from_image",
			Description: "Recover horizontal and vertical lines, and optionally circles, from a scanned drawing image, optionally read its text labels with OCR, and optionally interpret the result.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
					"threshold": map[string]interface{}{
						"type":        "integer",
						"description": "Gray level (0-255) below which a pixel is ink (default 128)",
						"default":     128,
					},
					"min_length": map[string]interface{}{
						"type":        "integer",
						"description": "Minimum line length in pixels (default 20)",
						"default":     20,
					},
					"max_thickness": map[string]interface{}{
						"type":        "integer",
						"description": "Maximum stroke thickness in pixels; thicker strokes are treated as fills (default 10)",
						"default":     10,
					},
					"units_per_pixel": map[string]interface{}{
						"type":        "number",
						"description": "Drawing units per pixel (default 1)",
						"default":     1,
					},
					"circles": map[string]interface{}{
						"type":        "boolean",
						"description": "Also recover circular outlines (default false)",
						"default":     false,
					},
					"min_radius": map[string]interface{}{
						"type":        "integer",
						"description": "Smallest circle radius in pixels (default 5)",
						"default":     5,
					},
					"max_radius": map[string]interface{}{
						"type":        "integer",
						"description": "Largest circle radius in pixels (default 50)",
						"default":     50,
					},
					"ocr": map[string]interface{}{
						"type":        "boolean",
						"description": "Read text labels with Tesseract (default false)",
						"default":     false,
					},
					"language": map[string]interface{}{
						"type":        "string",
						"description": "Tesseract language code, e.g. eng, kor, eng+kor (default from server config)",
					},
					"interpret": map[string]interface{}{
						"type":        "boolean",
						"description": "Also run the full analysis on the recovered elements (default true)",
						"default":     true,
					},
				},
				"required": []string{"path"},
			},
		},

		// Documents
		{
			Name:        "document_interpret",
			Description: "Summarize a paginated document (pages of paragraphs, tables and images): section counts, a content preview and paragraph previews.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to a JSON document file",
					},
					"document": map[string]interface{}{
						"type":        "object",
						"description": "Inline document {name, pages: [{sections: [{type: paragraph|table|image, text, rows, caption}]}]}, used when path is omitted",
					},
				},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
