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

package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cloudygreybeard/shelf/pkg/bookmark"
	"github.com/cloudygreybeard/shelf/pkg/state"
)

const export = `<!DOCTYPE NETSCAPE-Bookmark-file-1>
<DL><p>
    <DT><H3>Dev</H3>
    <DL><p>
        <DT><A HREF="https://a.com">A</A>
    </DL><p>
    <DT><A HREF="https://b.com">B</A>
</DL><p>
`

// run executes the root command once. Flag values stick between runs, so
// each subcommand is only used once per test binary.
func run(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append([]string{
		"--config", filepath.Join(dir, "none.yaml"),
		"--state", filepath.Join(dir, "bookmarks.json"),
	}, args...))
	err := rootCmd.Execute()
	return out.String(), err
}

func TestWorkflow(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "export.html")
	require.NoError(t, os.WriteFile(file, []byte(export), 0644))

	out, err := run(t, dir, "import", file)
	require.NoError(t, err)
	assert.Contains(t, out, "2 added, 0 updated, 0 unchanged, 0 conflicts")
	assert.Contains(t, out, "2 bookmarks total")

	goID := bookmark.BookmarkID("https://go.dev", "Go")
	out, err = run(t, dir, "add", "https://go.dev", "--title", "Go", "--folder", "Dev/ Go /")
	require.NoError(t, err)
	assert.Equal(t, "Added "+goID+"  Go\n", out)

	aID := bookmark.BookmarkID("https://a.com", "A")
	out, err = run(t, dir, "edit", aID, "--title", "Renamed")
	require.NoError(t, err)
	assert.Equal(t, "Updated "+aID+"  Renamed\n", out)

	out, err = run(t, dir, "status")
	require.NoError(t, err)
	assert.Contains(t, out, "Schema:    "+bookmark.SchemaVersion+"\n")
	assert.Contains(t, out, "Bookmarks: 3 (1 manual, 2 edited locally)")
	assert.Contains(t, out, "Folders:   2")
	assert.Contains(t, out, "Import history (1):")
	assert.Contains(t, out, "export.html")

	out, err = run(t, dir, "export", "--format", "json")
	require.NoError(t, err)
	assert.Contains(t, out, "https://go.dev")
	assert.Contains(t, out, "Renamed")

	out, err = run(t, dir, "rm", goID)
	require.NoError(t, err)
	assert.Equal(t, "Removed "+goID+"  Go\n", out)

	out, err = run(t, dir, "diff", file)
	require.NoError(t, err)
	assert.Contains(t, out, `~ "Renamed" -> "A"`)
	assert.Contains(t, out, "Total differences: 1")

	data, err := state.Load(filepath.Join(dir, "bookmarks.json"))
	require.NoError(t, err)
	require.NoError(t, bookmark.Validate(data))
	assert.Equal(t, 2, data.Count())
	a, ok := data.Find(aID)
	require.True(t, ok)
	assert.True(t, a.LocallyModified)
}

func TestMissingStateHint(t *testing.T) {
	_, err := run(t, t.TempDir(), "migrate")
	require.Error(t, err)
	assert.ErrorIs(t, err, bookmark.ErrFileNotFound)
	assert.Contains(t, err.Error(), "shelf import <file>")
}

func TestFormats(t *testing.T) {
	out, err := run(t, t.TempDir(), "formats")
	require.NoError(t, err)
	for _, name := range []string{"firefox-json", "netscape", "safari", "opml", "markdown", "firefox", "yaml"} {
		assert.Contains(t, out, name)
	}
}

func TestSplitFolder(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", []string{}},
		{"/", []string{}},
		{"Dev", []string{"Dev"}},
		{"Dev/Go", []string{"Dev", "Go"}},
		{" Dev // Go /", []string{"Dev", "Go"}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, splitFolder(tt.in), tt.in)
	}
}
