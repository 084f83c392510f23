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

// Package opml provides an output adapter for OPML outlines.
package opml

import (
	"encoding/xml"
	"fmt"
	"strings"
	"time"

	"github.com/cloudygreybeard/shelf/pkg/adapter"
	"github.com/cloudygreybeard/shelf/pkg/bookmark"
	"github.com/cloudygreybeard/shelf/pkg/output"
)

func init() {
	adapter.RegisterOutput(New())
}

// Adapter exports bookmarks to OPML format.
type Adapter struct{}

// New creates a new OPML adapter.
func New() *Adapter {
	return &Adapter{}
}

// Name returns the adapter identifier.
func (a *Adapter) Name() string { return "opml" }

// DisplayName returns a human-friendly name.
func (a *Adapter) DisplayName() string { return "OPML" }

// Extensions returns file extensions for this format.
func (a *Adapter) Extensions() []string { return []string{".opml", ".xml"} }

// Render exports the folder tree as nested outlines.
func (a *Adapter) Render(data *bookmark.Data, opts output.RenderOptions) ([]byte, error) {
	doc := opmlDocument{
		Version: "2.0",
		Head: opmlHead{
			Title: "Bookmarks Export",
		},
	}
	if opts.IncludeMetadata {
		doc.Head.DateCreated = time.Now().Format(time.RFC1123)
	}
	if data.Root != nil {
		doc.Body.Outlines = outlines(data.Root, opts)
	}

	out, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling OPML: %w", err)
	}

	return append([]byte(xml.Header), append(out, '\n')...), nil
}

// OPML structures for output
type opmlDocument struct {
	XMLName xml.Name `xml:"opml"`
	Version string   `xml:"version,attr"`
	Head    opmlHead `xml:"head"`
	Body    opmlBody `xml:"body"`
}

type opmlHead struct {
	Title       string `xml:"title"`
	DateCreated string `xml:"dateCreated,omitempty"`
}

type opmlBody struct {
	Outlines []opmlOutline `xml:"outline"`
}

type opmlOutline struct {
	Text     string        `xml:"text,attr"`
	Type     string        `xml:"type,attr,omitempty"`
	HTMLURL  string        `xml:"htmlUrl,attr,omitempty"`
	Created  string        `xml:"created,attr,omitempty"`
	Category string        `xml:"category,attr,omitempty"`
	Children []opmlOutline `xml:"outline,omitempty"`
}

func outlines(f *bookmark.Folder, opts output.RenderOptions) []opmlOutline {
	var out []opmlOutline

	for _, sf := range output.SortedSubfolders(f, opts) {
		out = append(out, opmlOutline{
			Text:     sf.Name,
			Children: outlines(sf, opts),
		})
	}

	for _, b := range output.SortedBookmarks(f, opts) {
		o := opmlOutline{
			Text:    b.Title,
			Type:    "link",
			HTMLURL: b.URL,
		}
		if opts.IncludeDates && b.AddDate > 0 {
			o.Created = time.Unix(b.AddDate, 0).UTC().Format(time.RFC1123)
		}
		if opts.IncludeTags && len(b.Tags) > 0 {
			o.Category = strings.Join(b.Tags, ",")
		}
		out = append(out, o)
	}

	return out
}
