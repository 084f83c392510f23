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

// Package bookmark provides the persisted bookmark model.
//
// A Data document holds the same bookmarks twice: once in FlatBookmarks,
// which is authoritative, and once grouped under Root, a folder tree whose
// Bookmarks slices point at the very same *Bookmark values. Code that mutates
// a bookmark mutates the flat entry; code that changes membership (adding,
// removing, moving) calls Reindex afterwards so the tree follows the list.
//
//	data := &bookmark.Data{SchemaVersion: bookmark.SchemaVersion, Root: bookmark.NewRoot()}
//	data.FlatBookmarks = append(data.FlatBookmarks, &bookmark.Bookmark{
//	    ID:         bookmark.BookmarkID("https://go.dev", "Go"),
//	    Title:      "Go",
//	    URL:        "https://go.dev",
//	    FolderPath: []string{"Dev"},
//	    Source:     bookmark.SourceImported,
//	})
//	bookmark.Reindex(data)
//
// # Invariants
//
//  1. Every bookmark reachable from Root has exactly one flat entry with the
//     same ID, and its FolderPath equals the Path of the folder holding it.
//
//  2. BuildInfo.TotalBookmarks equals len(FlatBookmarks) after any mutation.
//
//  3. A bookmark's ID is derived from (URL, Title) when it is first created
//     and never recomputed, even when the title is edited later.
//
// Validate checks all of the above.
package bookmark

// SchemaVersion is the version written by this package. Older documents are
// upgraded by the migrate package before use.
const SchemaVersion = "2.0.0"

// RootName is the name of the synthetic top-level folder.
const RootName = "Root"

// Source records how a bookmark entered the collection.
type Source string

const (
	SourceImported Source = "imported" // Came from a browser export
	SourceManual   Source = "manual"   // Added by hand
)

// Bookmark is a single browser bookmark.
type Bookmark struct {
	// ID is the content hash of (URL, Title) at creation time.
	ID string `json:"id"`

	Title string `json:"title"`
	URL   string `json:"url"`

	// AddDate and LastModified are Unix seconds. Zero means unknown.
	AddDate      int64 `json:"addDate"`
	LastModified int64 `json:"lastModified,omitempty"`

	// Icon is usually a data: URI captured from the export.
	Icon string `json:"icon,omitempty"`

	// Tags start out derived from FolderPath and may be edited afterwards.
	Tags []string `json:"tags"`

	// FolderPath lists folder names from the root to the containing folder.
	// Empty means the bookmark sits directly in the root.
	FolderPath []string `json:"folderPath"`

	// ExternalID is the source browser's native identifier, if any.
	ExternalID string `json:"externalId,omitempty"`

	Source Source `json:"source,omitempty"`

	// LocallyModified protects the record from being overwritten by imports.
	LocallyModified bool `json:"locallyModified,omitempty"`

	// Cache-only fields, filled in by link checking, archive lookup and
	// suggestion tooling. Imports never produce them and merges keep them.
	LastChecked  int64  `json:"lastChecked,omitempty"`
	StatusCode   int    `json:"statusCode,omitempty"`
	CheckError   string `json:"checkError,omitempty"`
	ArchiveURL   string `json:"archiveUrl,omitempty"`
	Description  string `json:"description,omitempty"`
	PreviewImage string `json:"previewImage,omitempty"`
}

// Folder is a node in the folder tree.
type Folder struct {
	ID         string      `json:"id"`
	Name       string      `json:"name"`
	Path       []string    `json:"path"`
	Bookmarks  []*Bookmark `json:"bookmarks"`
	Subfolders []*Folder   `json:"subfolders"`
	ExternalID string      `json:"externalId,omitempty"`
}

// BuildInfo carries counters maintained by the build tooling.
type BuildInfo struct {
	TotalBookmarks    int   `json:"totalBookmarks"`
	CheckedCount      int   `json:"checkedCount"`
	PreviewsGenerated int   `json:"previewsGenerated"`
	LastBuild         int64 `json:"lastBuildTimestamp"` // Unix milliseconds
}

// ImportRecord is one entry of the import history.
type ImportRecord struct {
	Date      int64  `json:"date"` // Unix milliseconds
	Source    string `json:"source"`
	Added     int    `json:"added"`
	Updated   int    `json:"updated"`
	Unchanged int    `json:"unchanged"`
}

// SyncInfo describes previous imports into the document.
type SyncInfo struct {
	LastImportSource string         `json:"lastImportSource,omitempty"`
	LastImportDate   int64          `json:"lastImportDate,omitempty"`
	ImportHistory    []ImportRecord `json:"importHistory"`
}

// Data is the persisted document.
type Data struct {
	SchemaVersion string      `json:"schemaVersion"`
	ImportDate    int64       `json:"importDate"` // Unix milliseconds
	Root          *Folder     `json:"root"`
	FlatBookmarks []*Bookmark `json:"flatBookmarks"`
	BuildInfo     BuildInfo   `json:"buildInfo"`
	SyncInfo      *SyncInfo   `json:"syncInfo,omitempty"`
}

// NewRoot returns an empty root folder.
func NewRoot() *Folder {
	return NewFolder(RootName, nil)
}

// NewFolder returns an empty folder at the given path.
func NewFolder(name string, path []string) *Folder {
	if path == nil {
		path = []string{}
	}
	return &Folder{
		ID:         FolderID(path),
		Name:       name,
		Path:       path,
		Bookmarks:  []*Bookmark{},
		Subfolders: []*Folder{},
	}
}

// Count returns the number of bookmarks in the flat list.
func (d *Data) Count() int {
	return len(d.FlatBookmarks)
}

// Find returns the flat entry with the given ID.
func (d *Data) Find(id string) (*Bookmark, bool) {
	for _, b := range d.FlatBookmarks {
		if b.ID == id {
			return b, true
		}
	}
	return nil, false
}

// Subfolder returns the direct child with the given name.
func (f *Folder) Subfolder(name string) (*Folder, bool) {
	for _, sf := range f.Subfolders {
		if sf.Name == name {
			return sf, true
		}
	}
	return nil, false
}

// CoreEqual reports whether two bookmarks agree on the import-derived fields:
// title, URL, icon and folder path.
func CoreEqual(a, b *Bookmark) bool {
	return a.Title == b.Title &&
		a.URL == b.URL &&
		a.Icon == b.Icon &&
		equalPath(a.FolderPath, b.FolderPath)
}

func equalPath(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Clone returns a deep copy of b.
func (b *Bookmark) Clone() *Bookmark {
	c := *b
	if b.Tags != nil {
		c.Tags = append([]string{}, b.Tags...)
	}
	if b.FolderPath != nil {
		c.FolderPath = append([]string{}, b.FolderPath...)
	}
	return &c
}
