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

package output

import (
	"runtime"
	"sort"
	"strings"
	"time"

	"github.com/cloudygreybeard/shelf/pkg/bookmark"
)

// Document is the structured dump shared by the JSON and YAML renderers.
type Document struct {
	Metadata  *Metadata `json:"metadata,omitempty" yaml:"metadata,omitempty"`
	Bookmarks []Entry   `json:"bookmarks" yaml:"bookmarks"`
}

// Metadata contains generation information.
type Metadata struct {
	Generated     string `json:"generated" yaml:"generated"`
	Platform      string `json:"platform" yaml:"platform"`
	SchemaVersion string `json:"schemaVersion" yaml:"schema_version"`
	Total         int    `json:"total" yaml:"total"`
	Checked       int    `json:"checked,omitempty" yaml:"checked,omitempty"`
	LastImport    string `json:"lastImport,omitempty" yaml:"last_import,omitempty"`
}

// Entry is a single bookmark in a structured dump.
type Entry struct {
	ID          string   `json:"id" yaml:"id"`
	Title       string   `json:"title" yaml:"title"`
	URL         string   `json:"url" yaml:"url"`
	Folder      string   `json:"folder,omitempty" yaml:"folder,omitempty"`
	DateAdded   string   `json:"date_added,omitempty" yaml:"date_added,omitempty"`
	Tags        []string `json:"tags,omitempty" yaml:"tags,omitempty"`
	Source      string   `json:"source,omitempty" yaml:"source,omitempty"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	StatusCode  int      `json:"status_code,omitempty" yaml:"status_code,omitempty"`
	CheckError  string   `json:"check_error,omitempty" yaml:"check_error,omitempty"`
	ArchiveURL  string   `json:"archive_url,omitempty" yaml:"archive_url,omitempty"`
}

// NewDocument flattens data into a Document, in flat-list order unless
// opts.SortAlpha is set.
func NewDocument(data *bookmark.Data, opts RenderOptions) Document {
	doc := Document{Bookmarks: make([]Entry, 0, len(data.FlatBookmarks))}

	if opts.IncludeMetadata {
		doc.Metadata = &Metadata{
			Generated:     time.Now().Format(time.RFC3339),
			Platform:      runtime.GOOS + "/" + runtime.GOARCH,
			SchemaVersion: data.SchemaVersion,
			Total:         data.Count(),
			Checked:       data.BuildInfo.CheckedCount,
		}
		if data.SyncInfo != nil {
			doc.Metadata.LastImport = data.SyncInfo.LastImportSource
		}
	}

	bookmarks := append([]*bookmark.Bookmark{}, data.FlatBookmarks...)
	if opts.SortAlpha {
		sort.SliceStable(bookmarks, func(i, j int) bool {
			return strings.ToLower(bookmarks[i].Title) < strings.ToLower(bookmarks[j].Title)
		})
	}

	for _, b := range bookmarks {
		entry := Entry{
			ID:     b.ID,
			Title:  b.Title,
			URL:    b.URL,
			Folder: strings.Join(b.FolderPath, "/"),
			Source: string(b.Source),
		}

		if opts.IncludeDates && b.AddDate > 0 {
			entry.DateAdded = FormatDate(b.AddDate)
		}

		if opts.IncludeTags && len(b.Tags) > 0 {
			entry.Tags = b.Tags
		}

		if opts.IncludeStatus {
			entry.StatusCode = b.StatusCode
			entry.CheckError = b.CheckError
			entry.ArchiveURL = b.ArchiveURL
			entry.Description = b.Description
		}

		doc.Bookmarks = append(doc.Bookmarks, entry)
	}

	return doc
}

// FormatDate renders Unix seconds as a UTC calendar date.
func FormatDate(unix int64) string {
	return time.Unix(unix, 0).UTC().Format("2006-01-02")
}
