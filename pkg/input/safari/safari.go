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

// Package safari parses Safari's Bookmarks.plist.
package safari

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"howett.net/plist"

	"github.com/cloudygreybeard/shelf/pkg/adapter"
	"github.com/cloudygreybeard/shelf/pkg/bookmark"
	"github.com/cloudygreybeard/shelf/pkg/input"
)

func init() {
	adapter.RegisterInput(New())
}

// Parser implements input.Parser for Safari.
type Parser struct{}

// New creates a new Safari parser.
func New() *Parser {
	return &Parser{}
}

// Name returns the parser identifier.
func (p *Parser) Name() string {
	return "safari"
}

// DisplayName returns a human-friendly name.
func (p *Parser) DisplayName() string {
	return "Apple Safari"
}

// Extensions returns supported file extensions.
func (p *Parser) Extensions() []string {
	return []string{".plist"}
}

// DefaultPath returns where Safari keeps its bookmarks, or "" off macOS.
func (p *Parser) DefaultPath() string {
	if runtime.GOOS != "darwin" {
		return ""
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, "Library", "Safari", "Bookmarks.plist")
}

// ParseFile reads a Bookmarks.plist, binary or XML.
func (p *Parser) ParseFile(ctx context.Context, path string) (*input.Node, error) {
	data, err := input.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var top safariBookmark
	if _, err := plist.Unmarshal(data, &top); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", bookmark.ErrParse, path, err)
	}

	root := input.NewRoot()
	root.Children = convertChildren(top.Children)
	return root, nil
}

type safariBookmark struct {
	WebBookmarkType string            `plist:"WebBookmarkType"`
	WebBookmarkUUID string            `plist:"WebBookmarkUUID"`
	Title           string            `plist:"Title"`
	URLString       string            `plist:"URLString"`
	URIDictionary   map[string]string `plist:"URIDictionary"`
	Children        []safariBookmark  `plist:"Children"`
}

func convertChildren(nodes []safariBookmark) []*input.Node {
	var out []*input.Node
	for _, n := range nodes {
		out = append(out, convert(n)...)
	}
	return out
}

// convert returns the nodes n contributes to its parent. Untitled lists
// and unknown entry types are transparent.
func convert(n safariBookmark) []*input.Node {
	switch n.WebBookmarkType {
	case "WebBookmarkTypeLeaf":
		url := n.URLString
		if url == "" && n.URIDictionary != nil {
			url = n.URIDictionary[""]
		}

		title := n.Title
		if title == "" && n.URIDictionary != nil {
			title = n.URIDictionary["title"]
		}
		if title == "" {
			title = input.UnnamedBookmark
		}

		return []*input.Node{{
			Type:       input.TypeBookmark,
			Title:      title,
			URL:        url,
			ExternalID: n.WebBookmarkUUID,
		}}

	case "WebBookmarkTypeList":
		if n.Title == "" {
			return convertChildren(n.Children)
		}
		return []*input.Node{{
			Type:       input.TypeFolder,
			Title:      n.Title,
			ExternalID: n.WebBookmarkUUID,
			Children:   convertChildren(n.Children),
		}}

	default:
		return convertChildren(n.Children)
	}
}
