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

package firefox

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cloudygreybeard/shelf/pkg/bookmark"
	"github.com/cloudygreybeard/shelf/pkg/canonical"
	"github.com/cloudygreybeard/shelf/pkg/input/firefoxjson"
	"github.com/cloudygreybeard/shelf/pkg/output"
)

var fixedNow = time.Unix(1700000000, 0)

func testAdapter() *Adapter {
	n := 0
	return &Adapter{
		Now: func() time.Time { return fixedNow },
		NewGUID: func() (string, error) {
			n++
			return fmt.Sprintf("gen_%08d", n), nil
		},
	}
}

func sample() *bookmark.Data {
	d := &bookmark.Data{
		SchemaVersion: bookmark.SchemaVersion,
		FlatBookmarks: []*bookmark.Bookmark{
			{ID: "t", Title: "Toolbar link", URL: "https://t.com", AddDate: 1600000000, ExternalID: "tlinkguid___", Tags: []string{"bookmarks-toolbar"}, FolderPath: []string{"Bookmarks Toolbar"}},
			{ID: "g", Title: "Go", URL: "https://go.dev", AddDate: 1600000001, LastModified: 1600000002, Tags: []string{"dev"}, FolderPath: []string{"Dev"}},
			{ID: "r", Title: "Loose", URL: "https://loose.example.com", AddDate: 1600000003, Tags: []string{}, FolderPath: []string{}},
		},
	}
	bookmark.Reindex(d)
	return d
}

func decode(t *testing.T, out []byte) *node {
	t.Helper()
	var root node
	require.NoError(t, json.Unmarshal(out, &root))
	return &root
}

func TestRender(t *testing.T) {
	out, err := testAdapter().Render(sample(), output.RenderOptions{IncludeTags: true})
	require.NoError(t, err)

	root := decode(t, out)
	assert.Equal(t, "root________", root.GUID)
	assert.Equal(t, "placesRoot", root.Root)
	assert.Equal(t, typeFolder, root.TypeCode)
	require.Len(t, root.Children, 3)

	toolbar := root.Children[0]
	assert.Equal(t, "toolbar_____", toolbar.GUID)
	assert.Equal(t, "toolbarFolder", toolbar.Root)
	assert.Equal(t, "Bookmarks Toolbar", toolbar.Title)
	require.Len(t, toolbar.Children, 1)
	assert.Equal(t, "tlinkguid___", toolbar.Children[0].GUID, "existing GUIDs are kept")

	dev := root.Children[1]
	assert.Equal(t, "Dev", dev.Title)
	assert.Empty(t, dev.Root)
	assert.Equal(t, fixedNow.UnixMicro(), dev.DateAdded)
	require.Len(t, dev.Children, 1)

	goLink := dev.Children[0]
	assert.Equal(t, typeBookmark, goLink.TypeCode)
	assert.Equal(t, mimeBookmark, goLink.Type)
	assert.Equal(t, "https://go.dev", goLink.URI)
	assert.Equal(t, int64(1600000001_000000), goLink.DateAdded)
	assert.Equal(t, int64(1600000002_000000), goLink.LastModified)
	assert.Equal(t, "dev", goLink.Tags)
	assert.Regexp(t, `^gen_\d{8}$`, goLink.GUID)

	unfiled := root.Children[2]
	assert.Equal(t, "unfiled_____", unfiled.GUID)
	assert.Equal(t, "Other Bookmarks", unfiled.Title)
	require.Len(t, unfiled.Children, 1)
	assert.Equal(t, "https://loose.example.com", unfiled.Children[0].URI)
	assert.Equal(t, int64(1600000003_000000), unfiled.Children[0].LastModified, "falls back to the add date")
}

func TestRenderIDsAreUnique(t *testing.T) {
	out, err := testAdapter().Render(sample(), output.RenderOptions{})
	require.NoError(t, err)

	seen := map[int]bool{}
	var walk func(n *node)
	walk = func(n *node) {
		assert.False(t, seen[n.ID], "duplicate id %d", n.ID)
		seen[n.ID] = true
		assert.Empty(t, n.Tags)
		for _, c := range n.Children {
			walk(c)
		}
	}
	walk(decode(t, out))
	assert.Len(t, seen, 7)
}

func TestRenderGUIDError(t *testing.T) {
	a := testAdapter()
	a.NewGUID = func() (string, error) { return "", errors.New("no entropy") }

	_, err := a.Render(sample(), output.RenderOptions{})
	assert.ErrorContains(t, err, "no entropy")
}

func TestDefaultGUIDs(t *testing.T) {
	guid, err := New().NewGUID()
	require.NoError(t, err)
	assert.Regexp(t, `^[A-Za-z0-9_-]{12}$`, guid)
}

func TestRoundTrip(t *testing.T) {
	out, err := testAdapter().Render(sample(), output.RenderOptions{})
	require.NoError(t, err)

	parsed, err := firefoxjson.Parse(out)
	require.NoError(t, err)
	back, report := canonical.Canonicalize(parsed, canonical.WithNow(func() time.Time { return fixedNow }))
	assert.Zero(t, report.Dropped)
	require.Equal(t, 3, back.Count())

	byURL := map[string]*bookmark.Bookmark{}
	for _, b := range back.FlatBookmarks {
		byURL[b.URL] = b
	}

	toolbarLink := byURL["https://t.com"]
	require.NotNil(t, toolbarLink)
	assert.Equal(t, bookmark.BookmarkID("https://t.com", "Toolbar link"), toolbarLink.ID)
	assert.Equal(t, "tlinkguid___", toolbarLink.ExternalID)
	assert.Equal(t, []string{"Bookmarks Toolbar"}, toolbarLink.FolderPath)
	assert.Equal(t, int64(1600000000), toolbarLink.AddDate)

	assert.Equal(t, []string{"Dev"}, byURL["https://go.dev"].FolderPath)
	assert.Equal(t, []string{"Other Bookmarks"}, byURL["https://loose.example.com"].FolderPath,
		"top-level bookmarks come back under the unfiled root")
}
