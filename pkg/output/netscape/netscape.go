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

// Package netscape renders bookmarks as a Netscape bookmark file, the
// format every browser can import.
package netscape

import (
	"fmt"
	"html"
	"strings"

	"github.com/cloudygreybeard/shelf/pkg/adapter"
	"github.com/cloudygreybeard/shelf/pkg/bookmark"
	"github.com/cloudygreybeard/shelf/pkg/output"
)

const header = `<!DOCTYPE NETSCAPE-Bookmark-file-1>
<!-- This is an automatically generated file.
     It will be read and overwritten.
     DO NOT EDIT! -->
<META HTTP-EQUIV="Content-Type" CONTENT="text/html; charset=UTF-8">
<TITLE>Bookmarks</TITLE>
<H1>Bookmarks</H1>
`

func init() {
	adapter.RegisterOutput(New())
}

// Adapter exports bookmarks to Netscape HTML format.
type Adapter struct{}

// New creates a new Netscape HTML adapter.
func New() *Adapter {
	return &Adapter{}
}

// Name returns the adapter identifier.
func (a *Adapter) Name() string { return "netscape" }

// DisplayName returns a human-friendly name.
func (a *Adapter) DisplayName() string { return "Netscape HTML" }

// Extensions returns file extensions for this format.
func (a *Adapter) Extensions() []string { return []string{".html", ".htm"} }

// Render walks the folder tree; root bookmarks are written before the
// subfolders at each level, as browsers do.
func (a *Adapter) Render(data *bookmark.Data, opts output.RenderOptions) ([]byte, error) {
	var sb strings.Builder

	sb.WriteString(header)
	sb.WriteString("<DL><p>\n")
	if data.Root != nil {
		renderFolder(&sb, data.Root, 1, opts)
	}
	sb.WriteString("</DL><p>\n")

	return []byte(sb.String()), nil
}

func renderFolder(sb *strings.Builder, f *bookmark.Folder, depth int, opts output.RenderOptions) {
	indent := strings.Repeat("    ", depth)

	for _, b := range output.SortedBookmarks(f, opts) {
		sb.WriteString(fmt.Sprintf("%s<DT><A HREF=\"%s\"%s>%s</A>\n",
			indent,
			html.EscapeString(b.URL),
			attributes(b, opts),
			html.EscapeString(b.Title)))
	}

	for _, sf := range output.SortedSubfolders(f, opts) {
		sb.WriteString(fmt.Sprintf("%s<DT><H3>%s</H3>\n", indent, html.EscapeString(sf.Name)))
		sb.WriteString(fmt.Sprintf("%s<DL><p>\n", indent))
		renderFolder(sb, sf, depth+1, opts)
		sb.WriteString(fmt.Sprintf("%s</DL><p>\n", indent))
	}
}

func attributes(b *bookmark.Bookmark, opts output.RenderOptions) string {
	var sb strings.Builder
	if b.AddDate > 0 {
		sb.WriteString(fmt.Sprintf(" ADD_DATE=\"%d\"", b.AddDate))
	}
	if b.LastModified > 0 {
		sb.WriteString(fmt.Sprintf(" LAST_MODIFIED=\"%d\"", b.LastModified))
	}
	if b.Icon != "" {
		sb.WriteString(fmt.Sprintf(" ICON=\"%s\"", html.EscapeString(b.Icon)))
	}
	if opts.IncludeTags && len(b.Tags) > 0 {
		sb.WriteString(fmt.Sprintf(" TAGS=\"%s\"", html.EscapeString(strings.Join(b.Tags, ","))))
	}
	return sb.String()
}
