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

package state

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/cloudygreybeard/shelf/pkg/bookmark"
)

// CacheVersion is the version written into new cache files.
const CacheVersion = "1.0.0"

// LinkCheck is the last link check recorded for a bookmark.
type LinkCheck struct {
	StatusCode int    `json:"statusCode"`
	CheckedAt  int64  `json:"checkedAt"` // Unix milliseconds
	Error      string `json:"error,omitempty"`
}

// CacheEntry is the cached state of one bookmark.
type CacheEntry struct {
	URL          string     `json:"url"`
	LastModified int64      `json:"lastModified,omitempty"`
	LinkCheck    *LinkCheck `json:"linkCheck,omitempty"`
}

// Cache is the link-check cache, keyed by bookmark ID. It is written by
// external tooling; shelf only reads it back into the document.
type Cache struct {
	Version   string                 `json:"version"`
	Bookmarks map[string]*CacheEntry `json:"bookmarks"`
}

// NewCache returns an empty cache.
func NewCache() *Cache {
	return &Cache{Version: CacheVersion, Bookmarks: map[string]*CacheEntry{}}
}

// LoadCache reads the cache at path. A missing file yields an empty cache.
func LoadCache(path string) (*Cache, error) {
	raw, err := readFile(path)
	if errors.Is(err, bookmark.ErrFileNotFound) {
		return NewCache(), nil
	}
	if err != nil {
		return nil, err
	}

	c := NewCache()
	if err := json.Unmarshal(raw, c); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", bookmark.ErrParse, path, err)
	}
	if c.Bookmarks == nil {
		c.Bookmarks = map[string]*CacheEntry{}
	}
	return c, nil
}

// SaveCache writes c to path.
func SaveCache(path string, c *Cache) error {
	raw, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding cache: %w", err)
	}
	return writeAtomic(path, append(raw, '\n'))
}

// ApplyCache copies cached link-check results onto the matching bookmarks
// and returns how many were updated. BuildInfo.CheckedCount is set to the
// number of cache entries holding a link check.
func ApplyCache(d *bookmark.Data, c *Cache) int {
	applied := 0
	for _, b := range d.FlatBookmarks {
		entry, ok := c.Bookmarks[b.ID]
		if !ok || entry == nil || entry.LinkCheck == nil {
			continue
		}
		b.StatusCode = entry.LinkCheck.StatusCode
		b.LastChecked = entry.LinkCheck.CheckedAt
		b.CheckError = entry.LinkCheck.Error
		applied++
	}

	checked := 0
	for _, entry := range c.Bookmarks {
		if entry != nil && entry.LinkCheck != nil {
			checked++
		}
	}
	d.BuildInfo.CheckedCount = checked
	return applied
}
