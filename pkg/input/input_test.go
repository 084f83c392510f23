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

package input

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cloudygreybeard/shelf/pkg/bookmark"
)

func folder(title string, children ...*Node) *Node {
	return &Node{Type: TypeFolder, Title: title, Children: children}
}

func link(title, url string) *Node {
	return &Node{Type: TypeBookmark, Title: title, URL: url}
}

func sampleTree() *Node {
	root := NewRoot()
	root.Children = []*Node{
		link("Go", "https://go.dev"),
		link("Script", "javascript:alert(1)"),
		folder("Work",
			link("Wiki", "https://wiki.example.com"),
			folder("Private", link("Bank", "https://bank.example.com")),
		),
		link("Local", "file:///tmp/notes.html"),
		link("Empty", ""),
	}
	return root
}

func TestNodeCount(t *testing.T) {
	assert.Equal(t, 6, sampleTree().Count())
	assert.Equal(t, 0, NewRoot().Count())
}

func TestPruneZeroOptionsKeepsEverything(t *testing.T) {
	root := sampleTree()
	opts := FilterOptions{}
	require.True(t, opts.IsZero())

	result := Prune(root, opts)
	assert.Zero(t, result.Excluded)
	assert.Empty(t, result.Warnings)
	assert.Equal(t, 6, root.Count())
}

func TestPruneExcludeProtocols(t *testing.T) {
	root := sampleTree()
	result := Prune(root, FilterOptions{ExcludeProtocols: []string{"JavaScript"}})

	assert.Equal(t, 1, result.Excluded)
	assert.Equal(t, 5, root.Count())
}

func TestPruneExcludeFolders(t *testing.T) {
	root := sampleTree()
	result := Prune(root, FilterOptions{ExcludeFolders: []string{"Work/Private"}})

	assert.Equal(t, 1, result.Excluded)
	work := root.Children[2]
	require.Len(t, work.Children, 1)
	assert.Equal(t, "Wiki", work.Children[0].Title)
}

func TestPruneKeepsBookmarksWithoutURL(t *testing.T) {
	root := sampleTree()
	Prune(root, FilterOptions{MaxURLLength: 5, IncludeFolders: []string{"Nowhere"}})

	require.Len(t, root.Children, 2, "folders stay, only the URL-less bookmark survives")
	assert.Equal(t, "Work", root.Children[0].Title)
	assert.Equal(t, "Empty", root.Children[1].Title)
}

func TestPruneURLPatternsAndLength(t *testing.T) {
	root := sampleTree()
	result := Prune(root, FilterOptions{
		ExcludeURLPatterns: []string{`example\.com`, `[invalid`},
		MaxURLLength:       20,
	})

	// wiki and bank by pattern, file by length
	assert.Equal(t, 3, result.Excluded)
	assert.Equal(t, 3, root.Count())
}

func TestPruneWarnings(t *testing.T) {
	root := sampleTree()
	result := Prune(root, FilterOptions{
		WarnProtocols: []string{"file", "javascript"},
		WarnURLLength: 22,
	})

	assert.Zero(t, result.Excluded)
	require.Len(t, result.Warnings, 4)
	assert.Contains(t, result.Warnings[0], "protocol 'javascript'")
	assert.Contains(t, result.Warnings[1], "long URL")
	assert.Contains(t, result.Warnings[2], "long URL")
	assert.Contains(t, result.Warnings[3], "protocol 'file'")
}

func TestExtractProtocol(t *testing.T) {
	assert.Equal(t, "https", extractProtocol("HTTPS://go.dev"))
	assert.Equal(t, "", extractProtocol("go.dev"))
	assert.Equal(t, "", extractProtocol(":nothing"))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcd...", truncate("abcdefghij", 7))
	assert.Equal(t, "ab", truncate("abcdef", 2))
}

func TestReadFileNotFound(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "missing.html"))
	assert.ErrorIs(t, err, bookmark.ErrFileNotFound)

	assert.ErrorIs(t, Stat(filepath.Join(t.TempDir(), "missing.sqlite")), bookmark.ErrFileNotFound)
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "export.html")
	require.NoError(t, os.WriteFile(path, []byte("<DL>"), 0644))

	data, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "<DL>", string(data))
	assert.NoError(t, Stat(path))
}
