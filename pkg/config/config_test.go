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

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, DefaultStatePath(), cfg.State.Path)
	assert.Equal(t, DefaultCachePath(), cfg.State.CachePath)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, 20, cfg.Diff.Limit)
	assert.Contains(t, cfg.Pipeline.Filter.WarnProtocols, "javascript")
	assert.Empty(t, cfg.Pipeline.Filter.ExcludeProtocols, "nothing is excluded by default")

	opts := cfg.FilterOptions()
	assert.Equal(t, 2048, opts.WarnURLLength)
	assert.Zero(t, opts.MaxURLLength)

	render := cfg.RenderOptions()
	assert.True(t, render.IncludeMetadata)
	assert.True(t, render.IncludeTags)
	assert.False(t, render.IncludeStatus)
}

func TestLoadMissingFileGivesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "none.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadMergesOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shelf.yaml")
	content := `
state:
  path: /tmp/shelf/bookmarks.json
log:
  level: debug
  file: /tmp/shelf/shelf.log
pipeline:
  filter:
    exclude_protocols: [javascript, data]
    max_url_length: 4096
  render:
    sort_alpha: true
    style: table
diff:
  limit: 5
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/shelf/bookmarks.json", cfg.State.Path)
	assert.Equal(t, DefaultCachePath(), cfg.State.CachePath, "unset keys keep defaults")
	assert.Equal(t, 5, cfg.Diff.Limit)

	filter := cfg.FilterOptions()
	assert.Equal(t, []string{"javascript", "data"}, filter.ExcludeProtocols)
	assert.Equal(t, 4096, filter.MaxURLLength)
	assert.Equal(t, 2048, filter.WarnURLLength)

	render := cfg.RenderOptions()
	assert.True(t, render.SortAlpha)
	assert.Equal(t, "table", render.Style)
	assert.True(t, render.IncludeDates)

	logOpts := cfg.LoggerOptions()
	assert.Equal(t, "debug", logOpts.Level)
	assert.Equal(t, "/tmp/shelf/shelf.log", logOpts.File)
	assert.Equal(t, 10, logOpts.MaxSizeMB)
}

func TestLoadInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("state: [unterminated"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLocalPath(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	assert.Empty(t, LocalPath())

	require.NoError(t, os.WriteFile(filepath.Join(dir, ".shelf.yml"), []byte("{}"), 0644))
	assert.Equal(t, ".shelf.yml", LocalPath())

	require.NoError(t, os.WriteFile(filepath.Join(dir, "shelf.yaml"), []byte("{}"), 0644))
	assert.Equal(t, "shelf.yaml", LocalPath())
}

func TestPaths(t *testing.T) {
	assert.Equal(t, filepath.Join(Dir(), "config.yaml"), DefaultPath())
	assert.Equal(t, ".shelf", filepath.Base(Dir()))
}
