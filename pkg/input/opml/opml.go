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

// Package opml parses OPML outline files as bookmark trees.
package opml

import (
	"context"
	"encoding/xml"
	"fmt"
	"time"

	"github.com/cloudygreybeard/shelf/pkg/adapter"
	"github.com/cloudygreybeard/shelf/pkg/bookmark"
	"github.com/cloudygreybeard/shelf/pkg/input"
)

func init() {
	adapter.RegisterInput(&Parser{})
}

// Parser reads bookmarks from OPML files.
type Parser struct{}

// Name returns the parser identifier.
func (p *Parser) Name() string { return "opml" }

// DisplayName returns a human-friendly name.
func (p *Parser) DisplayName() string { return "OPML" }

// Extensions returns supported file extensions.
func (p *Parser) Extensions() []string { return []string{".opml"} }

// ParseFile imports the outlines of an OPML document. Outlines with
// children become folders, the rest bookmarks.
func (p *Parser) ParseFile(ctx context.Context, path string) (*input.Node, error) {
	data, err := input.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var doc opmlDocument
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: parsing OPML %s: %v", bookmark.ErrParse, path, err)
	}

	root := input.NewRoot()
	root.Children = walk(doc.Body.Outlines)
	return root, nil
}

// OPML structures
type opmlDocument struct {
	XMLName xml.Name `xml:"opml"`
	Body    opmlBody `xml:"body"`
}

type opmlBody struct {
	Outlines []opmlOutline `xml:"outline"`
}

type opmlOutline struct {
	Text     string        `xml:"text,attr"`
	Title    string        `xml:"title,attr"`
	Type     string        `xml:"type,attr"`
	HTMLURL  string        `xml:"htmlUrl,attr"`
	XMLURL   string        `xml:"xmlUrl,attr"`
	URL      string        `xml:"url,attr"`
	Created  string        `xml:"created,attr"`
	Children []opmlOutline `xml:"outline"`
}

func walk(outlines []opmlOutline) []*input.Node {
	var nodes []*input.Node
	for _, o := range outlines {
		title := o.Text
		if title == "" {
			title = o.Title
		}

		if len(o.Children) > 0 {
			if title == "" {
				title = input.UnnamedFolder
			}
			nodes = append(nodes, &input.Node{
				Type:     input.TypeFolder,
				Title:    title,
				AddDate:  parseCreated(o.Created),
				Children: walk(o.Children),
			})
			continue
		}

		// Prefer htmlUrl, fall back to url (type="link") and xmlUrl for feeds
		url := o.HTMLURL
		if url == "" {
			url = o.URL
		}
		if url == "" {
			url = o.XMLURL
		}
		if url == "" && o.Type == "" {
			// Empty outline used as a section label.
			continue
		}
		if title == "" {
			title = input.UnnamedBookmark
		}

		nodes = append(nodes, &input.Node{
			Type:    input.TypeBookmark,
			Title:   title,
			URL:     url,
			AddDate: parseCreated(o.Created),
		})
	}
	return nodes
}

func parseCreated(s string) int64 {
	if s == "" {
		return 0
	}
	for _, layout := range []string{time.RFC1123, time.RFC1123Z, time.RFC822, time.RFC822Z} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Unix()
		}
	}
	return 0
}
