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

// Package markdown provides an output adapter for markdown format.
package markdown

import (
	"fmt"
	"runtime"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/cloudygreybeard/shelf/pkg/adapter"
	"github.com/cloudygreybeard/shelf/pkg/bookmark"
	"github.com/cloudygreybeard/shelf/pkg/output"
)

// Style defines the markdown sub-format.
type Style string

const (
	StyleTextual Style = "textual" // Nested markdown lists
	StyleTable   Style = "table"   // Markdown tables
	StyleYAML    Style = "yaml"    // Embedded YAML in code fence
)

func init() {
	adapter.RegisterOutput(New())
}

// Adapter implements output.Adapter for markdown format.
type Adapter struct{}

// New creates a new markdown adapter.
func New() *Adapter {
	return &Adapter{}
}

// Name returns the adapter identifier.
func (a *Adapter) Name() string {
	return "markdown"
}

// DisplayName returns a human-friendly name.
func (a *Adapter) DisplayName() string {
	return "Markdown"
}

// Extensions returns supported file extensions.
func (a *Adapter) Extensions() []string {
	return []string{".md", ".markdown"}
}

// Render converts bookmarks to markdown.
func (a *Adapter) Render(data *bookmark.Data, opts output.RenderOptions) ([]byte, error) {
	var sb strings.Builder

	sb.WriteString("# Bookmarks\n\n")
	if opts.IncludeMetadata {
		writeMetadata(&sb, data)
	}

	switch Style(opts.Style) {
	case StyleTable:
		renderTable(&sb, data.Root, opts)
	case StyleYAML:
		out, err := yaml.Marshal(output.NewDocument(data, output.RenderOptions{
			IncludeDates:  opts.IncludeDates,
			IncludeTags:   opts.IncludeTags,
			IncludeStatus: opts.IncludeStatus,
			SortAlpha:     opts.SortAlpha,
		}))
		if err != nil {
			return nil, err
		}
		sb.WriteString("```yaml\n")
		sb.Write(out)
		sb.WriteString("```\n")
	default:
		renderFolder(&sb, data.Root, 0, opts)
	}

	return []byte(sb.String()), nil
}

func writeMetadata(sb *strings.Builder, data *bookmark.Data) {
	sb.WriteString(fmt.Sprintf("*Generated: %s*\n", time.Now().Format("2006-01-02 15:04:05")))
	sb.WriteString(fmt.Sprintf("*Platform: %s (%s)*\n", runtime.GOOS, runtime.GOARCH))
	if data.SyncInfo != nil && data.SyncInfo.LastImportSource != "" {
		sb.WriteString(fmt.Sprintf("*Last import: %s*\n", data.SyncInfo.LastImportSource))
	}
	sb.WriteString(fmt.Sprintf("*Total bookmarks: %d*\n\n", data.Count()))
}

func renderFolder(sb *strings.Builder, f *bookmark.Folder, indent int, opts output.RenderOptions) {
	if f == nil {
		return
	}

	// Render folder heading (skip root)
	if len(f.Path) > 0 {
		sb.WriteString(fmt.Sprintf("%s- **%s**\n", strings.Repeat("  ", indent), f.Name))
		indent++
	}

	for _, b := range output.SortedBookmarks(f, opts) {
		renderBookmark(sb, b, indent, opts)
	}

	for _, sf := range output.SortedSubfolders(f, opts) {
		renderFolder(sb, sf, indent, opts)
	}
}

func renderBookmark(sb *strings.Builder, b *bookmark.Bookmark, indent int, opts output.RenderOptions) {
	title := strings.ReplaceAll(b.Title, "[", "\\[")
	title = strings.ReplaceAll(title, "]", "\\]")

	prefix := strings.Repeat("  ", indent) + "- "
	line := fmt.Sprintf("%s[%s](%s)", prefix, title, b.URL)

	var meta []string
	if opts.IncludeDates && b.AddDate > 0 {
		meta = append(meta, output.FormatDate(b.AddDate))
	}
	if opts.IncludeTags {
		for _, tag := range b.Tags {
			meta = append(meta, "#"+tag)
		}
	}
	if opts.IncludeStatus && b.StatusCode != 0 {
		meta = append(meta, fmt.Sprintf("HTTP %d", b.StatusCode))
	}

	if len(meta) > 0 {
		line += " *(" + strings.Join(meta, ", ") + ")*"
	}

	sb.WriteString(line + "\n")
}

func renderTable(sb *strings.Builder, root *bookmark.Folder, opts output.RenderOptions) {
	headers := []string{"Title", "Folder"}
	if opts.IncludeDates {
		headers = append(headers, "Date")
	}
	if opts.IncludeTags {
		headers = append(headers, "Tags")
	}
	if opts.IncludeStatus {
		headers = append(headers, "Status")
	}

	sb.WriteString("| " + strings.Join(headers, " | ") + " |\n")
	sb.WriteString("|" + strings.Repeat("---|", len(headers)) + "\n")

	var walk func(f *bookmark.Folder)
	walk = func(f *bookmark.Folder) {
		for _, b := range output.SortedBookmarks(f, opts) {
			sb.WriteString("| " + strings.Join(tableRow(b, opts), " | ") + " |\n")
		}
		for _, sf := range output.SortedSubfolders(f, opts) {
			walk(sf)
		}
	}
	if root != nil {
		walk(root)
	}
}

func tableRow(b *bookmark.Bookmark, opts output.RenderOptions) []string {
	link := fmt.Sprintf("[%s](%s)", escapeTableCell(b.Title), b.URL)
	row := []string{link, escapeTableCell(strings.Join(b.FolderPath, "/"))}

	if opts.IncludeDates {
		date := ""
		if b.AddDate > 0 {
			date = output.FormatDate(b.AddDate)
		}
		row = append(row, date)
	}

	if opts.IncludeTags {
		tagParts := make([]string, len(b.Tags))
		for i, t := range b.Tags {
			tagParts[i] = "#" + t
		}
		row = append(row, strings.Join(tagParts, " "))
	}

	if opts.IncludeStatus {
		status := ""
		switch {
		case b.CheckError != "":
			status = escapeTableCell(b.CheckError)
		case b.StatusCode != 0:
			status = fmt.Sprintf("%d", b.StatusCode)
		}
		row = append(row, status)
	}

	return row
}

func escapeTableCell(s string) string {
	s = strings.ReplaceAll(s, "|", "\\|")
	return strings.ReplaceAll(s, "\n", " ")
}
