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

// Package firefoxjson parses tree-structured bookmark exports: Firefox
// bookmark backups (.json) and Chromium "Bookmarks" files, which share the
// extension and are told apart by their top-level keys.
package firefoxjson

import (
	"context"
	"encoding/json"
	"fmt"
	"math"

	"github.com/cloudygreybeard/shelf/pkg/adapter"
	"github.com/cloudygreybeard/shelf/pkg/bookmark"
	"github.com/cloudygreybeard/shelf/pkg/input"
)

// Firefox node type codes.
const (
	typeBookmark = 1
	typeFolder   = 2
)

func init() {
	adapter.RegisterInput(New())
}

// Parser implements input.Parser for JSON bookmark trees.
type Parser struct{}

// New creates a new JSON tree parser.
func New() *Parser {
	return &Parser{}
}

// Name returns the parser identifier.
func (p *Parser) Name() string { return "firefox-json" }

// DisplayName returns a human-friendly name.
func (p *Parser) DisplayName() string { return "Firefox/Chromium JSON" }

// Extensions returns supported file extensions.
func (p *Parser) Extensions() []string { return []string{".json"} }

// ParseFile reads and parses the export at path.
func (p *Parser) ParseFile(ctx context.Context, path string) (*input.Node, error) {
	data, err := input.ReadFile(path)
	if err != nil {
		return nil, err
	}
	root, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return root, nil
}

// Parse parses a Firefox backup or a Chromium bookmarks document. Anything
// other than a JSON object at the top level fails with bookmark.ErrParse.
func Parse(data []byte) (*input.Node, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		return nil, fmt.Errorf("%w: invalid top-level document: %v", bookmark.ErrParse, err)
	}
	if top == nil {
		return nil, fmt.Errorf("%w: invalid top-level document: null", bookmark.ErrParse)
	}

	if roots, ok := top["roots"]; ok {
		return parseChromium(roots)
	}

	var node firefoxNode
	if err := json.Unmarshal(data, &node); err != nil {
		return nil, fmt.Errorf("%w: %v", bookmark.ErrParse, err)
	}

	root := input.NewRoot()
	root.Children = parseChildren(node.Children)
	return root, nil
}

type firefoxNode struct {
	GUID         string        `json:"guid"`
	Title        string        `json:"title"`
	TypeCode     int           `json:"typeCode"`
	URI          string        `json:"uri"`
	DateAdded    float64       `json:"dateAdded"`
	LastModified float64       `json:"lastModified"`
	Icon         string        `json:"icon"`
	Children     []firefoxNode `json:"children"`
}

func parseChildren(nodes []firefoxNode) []*input.Node {
	children := make([]*input.Node, 0, len(nodes))
	for _, n := range nodes {
		if child := parseNode(n); child != nil {
			children = append(children, child)
		}
	}
	return children
}

func parseNode(n firefoxNode) *input.Node {
	switch n.TypeCode {
	case typeFolder:
		title := n.Title
		if title == "" {
			title = input.UnnamedFolder
		}
		return &input.Node{
			Type:         input.TypeFolder,
			Title:        title,
			AddDate:      microsToSeconds(n.DateAdded),
			LastModified: microsToSeconds(n.LastModified),
			ExternalID:   n.GUID,
			Children:     parseChildren(n.Children),
		}
	case typeBookmark:
		title := n.Title
		if title == "" {
			title = input.UnnamedBookmark
		}
		return &input.Node{
			Type:         input.TypeBookmark,
			Title:        title,
			URL:          n.URI,
			AddDate:      microsToSeconds(n.DateAdded),
			LastModified: microsToSeconds(n.LastModified),
			Icon:         n.Icon,
			ExternalID:   n.GUID,
		}
	default:
		// Separators and anything newer than we know about.
		return nil
	}
}

func microsToSeconds(us float64) int64 {
	if us <= 0 {
		return 0
	}
	return int64(math.Floor(us / 1e6))
}
