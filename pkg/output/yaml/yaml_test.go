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

package yaml

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/cloudygreybeard/shelf/pkg/bookmark"
	"github.com/cloudygreybeard/shelf/pkg/output"
)

func TestRender(t *testing.T) {
	d := &bookmark.Data{
		SchemaVersion: bookmark.SchemaVersion,
		FlatBookmarks: []*bookmark.Bookmark{
			{ID: "a", Title: "A", URL: "https://a.com", Tags: []string{"dev"}, FolderPath: []string{"Dev"}, StatusCode: 200},
		},
	}
	bookmark.Reindex(d)

	out, err := New().Render(d, output.RenderOptions{IncludeMetadata: true, IncludeTags: true, IncludeStatus: true})
	require.NoError(t, err)
	assert.Contains(t, string(out), "schema_version: 2.0.0")

	var doc output.Document
	require.NoError(t, yaml.Unmarshal(out, &doc))
	require.Len(t, doc.Bookmarks, 1)
	assert.Equal(t, output.Entry{ID: "a", Title: "A", URL: "https://a.com", Folder: "Dev", Tags: []string{"dev"}, StatusCode: 200}, doc.Bookmarks[0])
}
