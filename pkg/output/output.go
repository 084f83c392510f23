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

// Package output provides the Adapter interface for bookmark renderers.
//
// Output adapters render a persisted bookmark.Data document into a file
// format: a browser-importable export (Netscape HTML, Firefox JSON), a
// structured dump (JSON, YAML, OPML) or a readable listing (Markdown). Each
// adapter is registered with the global registry and selected at runtime via
// the --format flag.
//
// # Implementing an Output Adapter
//
//  1. Create a new package under pkg/output/
//  2. Implement the Adapter interface
//  3. Register via init() using adapter.RegisterOutput()
//  4. Import in cmd/root.go to include in the build
//
// Example:
//
//	package csv
//
//	func init() {
//	    adapter.RegisterOutput(New())
//	}
//
//	type Adapter struct{}
//
//	func New() *Adapter { return &Adapter{} }
//
//	func (a *Adapter) Name() string         { return "csv" }
//	func (a *Adapter) DisplayName() string  { return "CSV" }
//	func (a *Adapter) Extensions() []string { return []string{".csv"} }
//
//	func (a *Adapter) Render(data *bookmark.Data, opts output.RenderOptions) ([]byte, error) {
//	    // Walk data.FlatBookmarks or data.Root here
//	    return nil, nil
//	}
package output

import (
	"sort"
	"strings"

	"github.com/cloudygreybeard/shelf/pkg/bookmark"
)

// Adapter is the interface for bookmark output renderers.
type Adapter interface {
	// Name returns the unique adapter identifier used in --format flag.
	// Examples: "markdown", "json", "yaml", "netscape", "firefox"
	Name() string

	// DisplayName returns a human-friendly name for UI display.
	DisplayName() string

	// Extensions returns file extensions supported by this format.
	// First extension is the default.
	Extensions() []string

	// Render converts the document to the output format.
	// Implementations must not modify data.
	Render(data *bookmark.Data, opts RenderOptions) ([]byte, error)
}

// RenderOptions configures what information to include in the output.
type RenderOptions struct {
	// IncludeMetadata adds a header with generation time and counts.
	IncludeMetadata bool

	// IncludeDates includes the date each bookmark was added.
	IncludeDates bool

	// IncludeTags includes bookmark tags.
	IncludeTags bool

	// IncludeStatus includes link-check results where known.
	IncludeStatus bool

	// SortAlpha sorts bookmarks and folders alphabetically.
	SortAlpha bool

	// Style specifies a format variant (adapter-specific).
	// For markdown: "textual", "table"
	Style string
}

// DefaultRenderOptions returns sensible defaults for rendering.
func DefaultRenderOptions() RenderOptions {
	return RenderOptions{
		IncludeMetadata: true,
		IncludeDates:    true,
		IncludeTags:     true,
		IncludeStatus:   false,
		SortAlpha:       false,
	}
}

// SortedBookmarks returns the folder's bookmarks, alphabetised when asked.
// The folder itself is left untouched.
func SortedBookmarks(f *bookmark.Folder, opts RenderOptions) []*bookmark.Bookmark {
	bookmarks := append([]*bookmark.Bookmark{}, f.Bookmarks...)
	if opts.SortAlpha {
		sort.SliceStable(bookmarks, func(i, j int) bool {
			return strings.ToLower(bookmarks[i].Title) < strings.ToLower(bookmarks[j].Title)
		})
	}
	return bookmarks
}

// SortedSubfolders returns the folder's children, alphabetised when asked.
func SortedSubfolders(f *bookmark.Folder, opts RenderOptions) []*bookmark.Folder {
	subfolders := append([]*bookmark.Folder{}, f.Subfolders...)
	if opts.SortAlpha {
		sort.SliceStable(subfolders, func(i, j int) bool {
			return strings.ToLower(subfolders[i].Name) < strings.ToLower(subfolders[j].Name)
		})
	}
	return subfolders
}
