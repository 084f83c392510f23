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

package merge

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cloudygreybeard/shelf/pkg/bookmark"
	"github.com/cloudygreybeard/shelf/pkg/canonical"
	"github.com/cloudygreybeard/shelf/pkg/input"
)

var fixedNow = time.Unix(1700000000, 0)

func clock() time.Time { return fixedNow }

func link(title, url string) *input.Node {
	return &input.Node{Type: input.TypeBookmark, Title: title, URL: url, AddDate: 1600000000}
}

func folder(title string, children ...*input.Node) *input.Node {
	return &input.Node{Type: input.TypeFolder, Title: title, Children: children}
}

func snapshot(children ...*input.Node) *bookmark.Data {
	root := input.NewRoot()
	root.Children = children
	data, _ := canonical.Canonicalize(root, canonical.WithNow(clock))
	return data
}

func sampleExport() []*input.Node {
	return []*input.Node{
		link("Go", "https://go.dev"),
		folder("Dev", link("A", "https://a.com"), link("B", "https://b.com")),
	}
}

func TestMergeIntoNothing(t *testing.T) {
	res := Merge(nil, snapshot(sampleExport()...), "first.html", WithNow(clock))

	assert.Equal(t, 3, res.Added)
	assert.Zero(t, res.Updated+res.Unchanged+res.Conflicts+res.Retained+res.Removed)
	require.NoError(t, bookmark.Validate(res.Data))

	sync := res.Data.SyncInfo
	require.NotNil(t, sync)
	assert.Equal(t, "first.html", sync.LastImportSource)
	assert.Equal(t, fixedNow.UnixMilli(), sync.LastImportDate)
	require.Len(t, sync.ImportHistory, 1)
	assert.Equal(t, bookmark.ImportRecord{Date: fixedNow.UnixMilli(), Source: "first.html", Added: 3}, sync.ImportHistory[0])
}

func TestMergeIdempotent(t *testing.T) {
	existing := Merge(nil, snapshot(sampleExport()...), "first.html", WithNow(clock)).Data

	res := Merge(existing, snapshot(sampleExport()...), "again.html", WithNow(clock))
	assert.Zero(t, res.Added)
	assert.Zero(t, res.Updated)
	assert.Zero(t, res.Conflicts)
	assert.Equal(t, existing.Count(), res.Unchanged)
	assert.Zero(t, res.Removed)
	require.NoError(t, bookmark.Validate(res.Data))

	require.Len(t, res.Data.SyncInfo.ImportHistory, 2)
	assert.Equal(t, "again.html", res.Data.SyncInfo.ImportHistory[1].Source)
}

func TestMergeTitleChangeKeepsCache(t *testing.T) {
	existing := snapshot(folder("Dev", link("A", "https://a.com")))
	a := existing.FlatBookmarks[0]
	require.Equal(t, bookmark.BookmarkID("https://a.com", "A"), a.ID)
	a.StatusCode = 200
	a.LastChecked = 1000
	a.CheckError = ""
	a.ArchiveURL = "https://web.archive.org/a"
	a.Description = "Letter A"

	res := Merge(existing, snapshot(folder("Dev", link("A2", "https://a.com"))), "export.json", WithNow(clock))

	assert.Equal(t, 1, res.Updated)
	assert.Zero(t, res.Added)
	assert.Zero(t, res.Removed)
	require.Len(t, res.Data.FlatBookmarks, 1)

	got := res.Data.FlatBookmarks[0]
	assert.Equal(t, "A2", got.Title)
	assert.Equal(t, 200, got.StatusCode)
	assert.Equal(t, int64(1000), got.LastChecked)
	assert.Equal(t, "https://web.archive.org/a", got.ArchiveURL)
	assert.Equal(t, "Letter A", got.Description)
	assert.Equal(t, []string{"Dev"}, got.FolderPath)

	assert.Equal(t, "A", a.Title, "existing is not modified")
	require.NoError(t, bookmark.Validate(res.Data))
}

func TestMergeLocalEditWins(t *testing.T) {
	existing := snapshot(link("A", "https://a.com"))
	local := existing.FlatBookmarks[0]
	local.LocallyModified = true
	local.Tags = []string{"mine"}

	res := Merge(existing, snapshot(link("B", "https://a.com")), "export.html", WithNow(clock))

	assert.Equal(t, 1, res.Conflicts)
	assert.Zero(t, res.Updated)
	require.Len(t, res.Data.FlatBookmarks, 1)
	got := res.Data.FlatBookmarks[0]
	assert.Equal(t, "A", got.Title)
	assert.Equal(t, local.ID, got.ID)
	assert.Equal(t, []string{"mine"}, got.Tags)
	assert.True(t, got.LocallyModified)
	assert.NotSame(t, local, got)
	require.NoError(t, bookmark.Validate(res.Data))
}

func TestMergeConflictDuplicatesCollapse(t *testing.T) {
	existing := snapshot(link("A", "https://a.com"))
	existing.FlatBookmarks[0].LocallyModified = true

	// Both incoming records match the same local one, by ID and by URL.
	res := Merge(existing, snapshot(link("A", "https://a.com"), folder("Dev", link("A again", "https://a.com"))), "x", WithNow(clock))

	assert.Equal(t, 2, res.Conflicts)
	assert.Equal(t, 1, res.Data.Count())
	require.NoError(t, bookmark.Validate(res.Data))
}

func TestMergeRetainsManualAndDropsImported(t *testing.T) {
	existing := snapshot(link("Gone", "https://gone.com"), link("Go", "https://go.dev"))
	_, err := bookmark.AddManual(existing, "Mine", "https://mine.example.com", []string{"Notes"}, fixedNow)
	require.NoError(t, err)

	res := Merge(existing, snapshot(link("Go", "https://go.dev")), "x", WithNow(clock))

	assert.Equal(t, 1, res.Unchanged)
	assert.Equal(t, 1, res.Retained)
	assert.Equal(t, 1, res.Removed)
	require.Len(t, res.Data.FlatBookmarks, 2)
	assert.Equal(t, "Mine", res.Data.FlatBookmarks[1].Title)

	notes, ok := res.Data.Root.Subfolder("Notes")
	require.True(t, ok)
	assert.Len(t, notes.Bookmarks, 1)
	require.NoError(t, bookmark.Validate(res.Data))
}

func TestMergeMatchesExternalIDFirst(t *testing.T) {
	existing := snapshot(link("Old", "https://old.example.com"))
	existing.FlatBookmarks[0].ExternalID = "guid-1"
	existing.FlatBookmarks[0].StatusCode = 404

	moved := link("New", "https://new.example.com")
	moved.ExternalID = "guid-1"
	res := Merge(existing, snapshot(moved), "x", WithNow(clock))

	assert.Equal(t, 1, res.Updated)
	assert.Zero(t, res.Added)
	assert.Zero(t, res.Removed)
	assert.Equal(t, 404, res.Data.FlatBookmarks[0].StatusCode)
}

func TestMergeTitleAndURLChangeIsAdd(t *testing.T) {
	existing := snapshot(link("Old", "https://old.example.com"))
	res := Merge(existing, snapshot(link("New", "https://new.example.com")), "x", WithNow(clock))

	assert.Equal(t, 1, res.Added)
	assert.Equal(t, 1, res.Removed)
}

func TestMergeCarriesBuildInfoAndFolderIDs(t *testing.T) {
	existing := snapshot(folder("Dev", link("A", "https://a.com")))
	existing.BuildInfo.CheckedCount = 5
	existing.BuildInfo.PreviewsGenerated = 2
	dev, _ := existing.Root.Subfolder("Dev")
	dev.ExternalID = "guid-dev"

	later := func() time.Time { return fixedNow.Add(time.Hour) }
	res := Merge(existing, snapshot(folder("Dev", link("A", "https://a.com"), link("B", "https://b.com"))), "x", WithNow(later))

	info := res.Data.BuildInfo
	assert.Equal(t, 5, info.CheckedCount)
	assert.Equal(t, 2, info.PreviewsGenerated)
	assert.Equal(t, 2, info.TotalBookmarks)
	assert.Equal(t, later().UnixMilli(), info.LastBuild)

	merged, ok := res.Data.Root.Subfolder("Dev")
	require.True(t, ok)
	assert.Equal(t, "guid-dev", merged.ExternalID)
}
