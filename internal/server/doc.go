// Package server implements the MCP (Model Context Protocol) server for
// drawing interpretation tools.
//
// This package provides a JSON-RPC 2.0 server that exposes drawing analysis
// through the MCP protocol, so AI assistants can ask what a drawing depicts
// and get back rooms, corridors and a prose interpretation.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Drawing analysis:
//   - drawing_load: Load a JSON drawing and report counts, bounds and layers
//   - drawing_classify_segments: Split lines into horizontal and vertical segments
//   - drawing_detect_structures: Detect rooms and corridors
//   - drawing_interpret: Full analysis report with prose interpretation
//
// Images:
//   - drawing_render: Render a drawing to a PNG preview
//   - drawing_from_image: Recover lines, circles and OCR text from a scan
//
// Documents:
//   - document_interpret: Summarize a paginated document
//
// Every drawing tool accepts either "path" to a JSON drawing file or inline
// "elements" in the same wire format.
//
// # Drawing Caching
//
// Drawings loaded by path are cached for the lifetime of the process, up to
// the configured number of entries.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: {"code": analysis error code, "detail": Go error string}
//
// # Usage
//
//	srv := server.New(analysis.NewService(), log, server.Defaults{})
//	if err := srv.Run(ctx, os.Stdin, os.Stdout); err != nil {
//	    log.Fatal("server failed", zap.Error(err))
//	}
package server
