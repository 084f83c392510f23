// Copyright 2026 cloudygreybeard
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package mcp provides an MCP (Model Context Protocol) server exposing the
// persisted bookmark document to AI assistants over stdio.
//
// The server is read-only: it never writes the state file. Import previews
// run the full parse and diff in memory.
package mcp

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/cloudygreybeard/shelf/pkg/bookmark"
	"github.com/cloudygreybeard/shelf/pkg/config"
	"github.com/cloudygreybeard/shelf/pkg/diff"
	"github.com/cloudygreybeard/shelf/pkg/logger"
	"github.com/cloudygreybeard/shelf/pkg/migrate"
	jsonout "github.com/cloudygreybeard/shelf/pkg/output/json"
	"github.com/cloudygreybeard/shelf/pkg/output/markdown"
	"github.com/cloudygreybeard/shelf/pkg/output/netscape"
	"github.com/cloudygreybeard/shelf/pkg/pipeline"
	"github.com/cloudygreybeard/shelf/pkg/state"
)

// JSON-RPC error codes.
const (
	codeParseError     = -32700
	codeMethodNotFound = -32601
	codeInvalidParams  = -32602
	codeServerError    = -32000
)

const protocolVersion = "2024-11-05"

// Server implements an MCP server for bookmark resources.
type Server struct {
	config  config.Config
	log     logger.Logger
	version string

	doc   *bookmark.Data
	docMu sync.RWMutex
}

// NewServer creates a new MCP server.
func NewServer(cfg config.Config, log logger.Logger, version string) *Server {
	if log == nil {
		log = logger.Nop()
	}
	return &Server{config: cfg, log: log, version: version}
}

// Run serves JSON-RPC on stdin and stdout until stdin closes.
func (s *Server) Run(ctx context.Context) error {
	return s.Serve(ctx, os.Stdin, os.Stdout)
}

// Serve reads newline-delimited JSON-RPC requests from r and writes
// responses to w. Notifications get no response.
func (s *Server) Serve(ctx context.Context, r io.Reader, w io.Writer) error {
	reader := bufio.NewReader(r)
	encoder := json.NewEncoder(w)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		line, err := reader.ReadBytes('\n')
		if len(bytes.TrimSpace(line)) > 0 {
			if resp := s.handleLine(ctx, line); resp != nil {
				if err := encoder.Encode(resp); err != nil {
					s.log.Error("encoding response", logger.Error(err))
				}
			}
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

func (s *Server) handleLine(ctx context.Context, line []byte) *Response {
	var req Request
	if err := json.Unmarshal(line, &req); err != nil {
		s.log.Warn("malformed request", logger.Error(err))
		return errorResponse(nil, codeParseError, "Parse error")
	}
	if req.ID == nil && strings.HasPrefix(req.Method, "notifications/") {
		return nil
	}
	s.log.Debug("request", logger.String("method", req.Method))
	return s.handleRequest(ctx, &req)
}

func (s *Server) handleRequest(ctx context.Context, req *Request) *Response {
	switch req.Method {
	case "initialize":
		return s.handleInitialize(req)
	case "ping":
		return result(req.ID, map[string]interface{}{})
	case "resources/list":
		return s.handleResourcesList(req)
	case "resources/read":
		return s.handleResourcesRead(req)
	case "tools/list":
		return s.handleToolsList(req)
	case "tools/call":
		return s.handleToolsCall(ctx, req)
	default:
		return errorResponse(req.ID, codeMethodNotFound, "Method not found")
	}
}

func (s *Server) handleInitialize(req *Request) *Response {
	return result(req.ID, map[string]interface{}{
		"protocolVersion": protocolVersion,
		"serverInfo": map[string]string{
			"name":    "shelf",
			"version": s.version,
		},
		"capabilities": map[string]interface{}{
			"resources": map[string]bool{
				"subscribe":   false,
				"listChanged": false,
			},
			"tools": map[string]interface{}{},
		},
	})
}

// resource pairs an advertised resource with how to produce it.
type resource struct {
	Resource
	render func(*bookmark.Data) ([]byte, error)
}

func (s *Server) resources() []resource {
	opts := s.config.RenderOptions()
	return []resource{
		{
			Resource: Resource{
				URI:         "shelf://bookmarks",
				Name:        "All Bookmarks",
				Description: "Every bookmark in JSON format",
				MimeType:    "application/json",
			},
			render: func(d *bookmark.Data) ([]byte, error) { return jsonout.New().Render(d, opts) },
		},
		{
			Resource: Resource{
				URI:         "shelf://markdown",
				Name:        "Bookmarks (Markdown)",
				Description: "The folder tree as nested Markdown lists",
				MimeType:    "text/markdown",
			},
			render: func(d *bookmark.Data) ([]byte, error) { return markdown.New().Render(d, opts) },
		},
		{
			Resource: Resource{
				URI:         "shelf://netscape",
				Name:        "Bookmarks (HTML)",
				Description: "A Netscape bookmark file any browser can import",
				MimeType:    "text/html",
			},
			render: func(d *bookmark.Data) ([]byte, error) { return netscape.New().Render(d, opts) },
		},
		{
			Resource: Resource{
				URI:         "shelf://history",
				Name:        "Import History",
				Description: "Previous imports with their counts",
				MimeType:    "application/json",
			},
			render: func(d *bookmark.Data) ([]byte, error) {
				history := []bookmark.ImportRecord{}
				if d.SyncInfo != nil {
					history = d.SyncInfo.ImportHistory
				}
				return json.MarshalIndent(history, "", "  ")
			},
		},
	}
}

func (s *Server) handleResourcesList(req *Request) *Response {
	var list []Resource
	for _, r := range s.resources() {
		list = append(list, r.Resource)
	}
	return result(req.ID, map[string]interface{}{
		"resources": list,
	})
}

func (s *Server) handleResourcesRead(req *Request) *Response {
	var params struct {
		URI string `json:"uri"`
	}
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return errorResponse(req.ID, codeInvalidParams, "Invalid params")
	}

	var found *resource
	for _, r := range s.resources() {
		if r.URI == params.URI {
			r := r
			found = &r
			break
		}
	}
	if found == nil {
		return errorResponse(req.ID, codeInvalidParams, fmt.Sprintf("Unknown resource: %s", params.URI))
	}

	doc, err := s.document()
	if err != nil {
		return errorResponse(req.ID, codeServerError, err.Error())
	}

	data, err := found.render(doc)
	if err != nil {
		return errorResponse(req.ID, codeServerError, err.Error())
	}

	return result(req.ID, map[string]interface{}{
		"contents": []ResourceContents{
			{URI: params.URI, MimeType: found.MimeType, Text: string(data)},
		},
	})
}

func (s *Server) handleToolsList(req *Request) *Response {
	tools := []Tool{
		{
			Name:        "search_bookmarks",
			Description: "Search bookmarks by title, URL, tag or description",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"query": map[string]interface{}{
						"type":        "string",
						"description": "Search query",
					},
					"tag": map[string]interface{}{
						"type":        "string",
						"description": "Only return bookmarks with this tag",
					},
				},
				"required": []string{"query"},
			},
		},
		{
			Name:        "get_bookmark",
			Description: "Return a single bookmark by ID",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"id": map[string]interface{}{
						"type":        "string",
						"description": "Bookmark ID",
					},
				},
				"required": []string{"id"},
			},
		},
		{
			Name:        "preview_import",
			Description: "Compare a browser export file with the stored bookmarks without importing it",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Path to a .json, .html, .plist, .sqlite or .opml export",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "reload",
			Description: "Re-read the bookmark state file",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},
	}

	return result(req.ID, map[string]interface{}{
		"tools": tools,
	})
}

func (s *Server) handleToolsCall(ctx context.Context, req *Request) *Response {
	var params struct {
		Name      string          `json:"name"`
		Arguments json.RawMessage `json:"arguments"`
	}
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return errorResponse(req.ID, codeInvalidParams, "Invalid params")
	}
	if len(params.Arguments) == 0 {
		params.Arguments = json.RawMessage("{}")
	}

	switch params.Name {
	case "search_bookmarks":
		return s.toolSearchBookmarks(req, params.Arguments)
	case "get_bookmark":
		return s.toolGetBookmark(req, params.Arguments)
	case "preview_import":
		return s.toolPreviewImport(ctx, req, params.Arguments)
	case "reload":
		return s.toolReload(req)
	default:
		return errorResponse(req.ID, codeInvalidParams, "Unknown tool")
	}
}

// searchHit is one bookmark in tool output.
type searchHit struct {
	ID     string   `json:"id"`
	Title  string   `json:"title"`
	URL    string   `json:"url"`
	Folder string   `json:"folder,omitempty"`
	Tags   []string `json:"tags,omitempty"`
}

func hit(b *bookmark.Bookmark) searchHit {
	return searchHit{
		ID:     b.ID,
		Title:  b.Title,
		URL:    b.URL,
		Folder: strings.Join(b.FolderPath, "/"),
		Tags:   b.Tags,
	}
}

func (s *Server) toolSearchBookmarks(req *Request, args json.RawMessage) *Response {
	var searchArgs struct {
		Query string `json:"query"`
		Tag   string `json:"tag"`
	}
	if err := json.Unmarshal(args, &searchArgs); err != nil {
		return errorResponse(req.ID, codeInvalidParams, "Invalid search arguments")
	}

	doc, err := s.document()
	if err != nil {
		return errorResponse(req.ID, codeServerError, err.Error())
	}

	matches := []searchHit{}
	for _, b := range doc.FlatBookmarks {
		if searchArgs.Tag != "" && !hasTag(b, searchArgs.Tag) {
			continue
		}
		if matchesQuery(b, searchArgs.Query) {
			matches = append(matches, hit(b))
		}
	}

	resultJSON, _ := json.MarshalIndent(matches, "", "  ")
	return textResult(req.ID, fmt.Sprintf("Found %d matches:\n%s", len(matches), resultJSON))
}

func (s *Server) toolGetBookmark(req *Request, args json.RawMessage) *Response {
	var getArgs struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(args, &getArgs); err != nil || getArgs.ID == "" {
		return errorResponse(req.ID, codeInvalidParams, "Invalid arguments: id is required")
	}

	doc, err := s.document()
	if err != nil {
		return errorResponse(req.ID, codeServerError, err.Error())
	}

	b, ok := doc.Find(getArgs.ID)
	if !ok {
		return errorResponse(req.ID, codeServerError, fmt.Sprintf("%v: %s", bookmark.ErrNotFound, getArgs.ID))
	}

	out, _ := json.MarshalIndent(b, "", "  ")
	return textResult(req.ID, string(out))
}

func (s *Server) toolPreviewImport(ctx context.Context, req *Request, args json.RawMessage) *Response {
	var previewArgs struct {
		Path string `json:"path"`
	}
	if err := json.Unmarshal(args, &previewArgs); err != nil || previewArgs.Path == "" {
		return errorResponse(req.ID, codeInvalidParams, "Invalid arguments: path is required")
	}

	res, _, err := pipeline.Preview(ctx, s.config.State.Path, previewArgs.Path, pipeline.Options{
		Filter: s.config.FilterOptions(),
	})
	if err != nil {
		return errorResponse(req.ID, codeServerError, err.Error())
	}

	var sb strings.Builder
	if err := diff.WriteText(&sb, res, s.config.Diff.Limit); err != nil {
		return errorResponse(req.ID, codeServerError, err.Error())
	}
	return textResult(req.ID, sb.String())
}

func (s *Server) toolReload(req *Request) *Response {
	s.docMu.Lock()
	s.doc = nil
	s.docMu.Unlock()

	doc, err := s.document()
	if err != nil {
		return errorResponse(req.ID, codeServerError, err.Error())
	}
	return textResult(req.ID, fmt.Sprintf("Loaded %d bookmarks", doc.Count()))
}

// document returns the state, loading and migrating it in memory on first
// use.
func (s *Server) document() (*bookmark.Data, error) {
	s.docMu.RLock()
	if s.doc != nil {
		doc := s.doc
		s.docMu.RUnlock()
		return doc, nil
	}
	s.docMu.RUnlock()

	doc, err := state.Load(s.config.State.Path)
	if err != nil {
		return nil, err
	}
	doc, _ = migrate.Migrate(doc)
	s.log.Info("loaded bookmarks",
		logger.String("path", s.config.State.Path),
		logger.Int("count", doc.Count()))

	s.docMu.Lock()
	s.doc = doc
	s.docMu.Unlock()
	return doc, nil
}

func matchesQuery(b *bookmark.Bookmark, query string) bool {
	q := strings.ToLower(query)
	if strings.Contains(strings.ToLower(b.Title), q) ||
		strings.Contains(strings.ToLower(b.URL), q) ||
		strings.Contains(strings.ToLower(b.Description), q) {
		return true
	}
	return hasTag(b, query)
}

func hasTag(b *bookmark.Bookmark, tag string) bool {
	for _, t := range b.Tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

func result(id interface{}, v interface{}) *Response {
	return &Response{JSONRPC: "2.0", ID: id, Result: v}
}

func textResult(id interface{}, text string) *Response {
	return result(id, toolResult{
		Content: []Content{{Type: "text", Text: text}},
	})
}

func errorResponse(id interface{}, code int, message string) *Response {
	return &Response{
		JSONRPC: "2.0",
		ID:      id,
		Error: &Error{
			Code:    code,
			Message: message,
		},
	}
}
