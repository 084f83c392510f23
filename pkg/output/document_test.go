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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cloudygreybeard/shelf/pkg/bookmark"
)

func sample() *bookmark.Data {
	list := []*bookmark.Bookmark{
		{ID: "b", Title: "beta", URL: "https://b.com", AddDate: 1700000000, Tags: []string{}, FolderPath: []string{}, Source: bookmark.SourceImported},
		{ID: "a", Title: "Alpha", URL: "https://a.com", Tags: []string{"dev"}, FolderPath: []string{"Dev"}, Source: bookmark.SourceManual,
			StatusCode: 404, CheckError: "not found", ArchiveURL: "https://web.archive.org/a", Description: "first letter"},
	}
	d := &bookmark.Data{
		SchemaVersion: bookmark.SchemaVersion,
		FlatBookmarks: list,
		BuildInfo:     bookmark.BuildInfo{CheckedCount: 1},
		SyncInfo:      &bookmark.SyncInfo{LastImportSource: "bookmarks.html"},
	}
	bookmark.Reindex(d)
	return d
}

func TestNewDocument(t *testing.T) {
	doc := NewDocument(sample(), DefaultRenderOptions())

	require.NotNil(t, doc.Metadata)
	assert.Equal(t, bookmark.SchemaVersion, doc.Metadata.SchemaVersion)
	assert.Equal(t, 2, doc.Metadata.Total)
	assert.Equal(t, 1, doc.Metadata.Checked)
	assert.Equal(t, "bookmarks.html", doc.Metadata.LastImport)

	require.Len(t, doc.Bookmarks, 2)
	assert.Equal(t, Entry{ID: "b", Title: "beta", URL: "https://b.com", DateAdded: "2023-11-14", Source: "imported"}, doc.Bookmarks[0])
	assert.Equal(t, Entry{ID: "a", Title: "Alpha", URL: "https://a.com", Folder: "Dev", Tags: []string{"dev"}, Source: "manual"}, doc.Bookmarks[1])
}

func TestNewDocumentOptions(t *testing.T) {
	doc := NewDocument(sample(), RenderOptions{SortAlpha: true, IncludeStatus: true})

	assert.Nil(t, doc.Metadata)
	require.Len(t, doc.Bookmarks, 2)
	alpha := doc.Bookmarks[0]
	assert.Equal(t, "Alpha", alpha.Title)
	assert.Nil(t, alpha.Tags)
	assert.Equal(t, 404, alpha.StatusCode)
	assert.Equal(t, "not found", alpha.CheckError)
	assert.Equal(t, "https://web.archive.org/a", alpha.ArchiveURL)
	assert.Equal(t, "first letter", alpha.Description)
	assert.Empty(t, doc.Bookmarks[1].DateAdded)
}

func TestSortedHelpersLeaveFolderAlone(t *testing.T) {
	root := bookmark.NewRoot()
	root.Bookmarks = []*bookmark.Bookmark{{Title: "b"}, {Title: "A"}}
	root.Subfolders = []*bookmark.Folder{bookmark.NewFolder("z", []string{"z"}), bookmark.NewFolder("Y", []string{"Y"})}

	sorted := SortedBookmarks(root, RenderOptions{SortAlpha: true})
	assert.Equal(t, "A", sorted[0].Title)
	assert.Equal(t, "b", root.Bookmarks[0].Title)

	folders := SortedSubfolders(root, RenderOptions{SortAlpha: true})
	assert.Equal(t, "Y", folders[0].Name)
	assert.Equal(t, "z", root.Subfolders[0].Name)

	assert.Equal(t, "b", SortedBookmarks(root, RenderOptions{})[0].Title)
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "2023-11-14", FormatDate(1700000000))
	assert.Equal(t, "1970-01-01", FormatDate(0))
}
