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

// Package canonical turns a parsed export into a fresh bookmark.Data
// snapshot: content-hash IDs, derived tags and a flat list that shares its
// records with the folder tree.
package canonical

import (
	"fmt"
	"time"

	"github.com/cloudygreybeard/shelf/pkg/bookmark"
	"github.com/cloudygreybeard/shelf/pkg/input"
)

// Report describes what the canonicalizer left out of the snapshot.
type Report struct {
	// Dropped counts bookmark nodes without a URL.
	Dropped int
	// Duplicates counts bookmarks whose ID was already in the snapshot.
	Duplicates int
	// Errors holds one bookmark.ErrInvalidBookmark per dropped node.
	Errors []error
}

// Option configures Canonicalize.
type Option func(*options)

type options struct {
	now func() time.Time
}

// WithNow sets the clock used for import timestamps and missing add dates.
func WithNow(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

// Canonicalize converts a parsed tree into a snapshot. The top node is the
// root folder whatever its title; bookmarks without a URL are dropped and
// reported, never fatal.
func Canonicalize(root *input.Node, opts ...Option) (*bookmark.Data, Report) {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	now := o.now()

	c := &canonicalizer{
		now:  now,
		seen: make(map[string]bool),
		flat: []*bookmark.Bookmark{},
	}

	folder := bookmark.NewRoot()
	if root != nil {
		folder.ExternalID = root.ExternalID
		c.fill(folder, root.Children)
	}

	data := &bookmark.Data{
		SchemaVersion: bookmark.SchemaVersion,
		ImportDate:    now.UnixMilli(),
		Root:          folder,
		FlatBookmarks: c.flat,
		BuildInfo: bookmark.BuildInfo{
			TotalBookmarks: len(c.flat),
			LastBuild:      now.UnixMilli(),
		},
		SyncInfo: &bookmark.SyncInfo{ImportHistory: []bookmark.ImportRecord{}},
	}
	return data, c.report
}

type canonicalizer struct {
	now    time.Time
	seen   map[string]bool
	flat   []*bookmark.Bookmark
	report Report
}

func (c *canonicalizer) fill(folder *bookmark.Folder, children []*input.Node) {
	for _, child := range children {
		if child == nil {
			continue
		}
		if child.IsFolder() {
			path := append(append([]string{}, folder.Path...), child.Title)
			sub := bookmark.NewFolder(child.Title, path)
			sub.ExternalID = child.ExternalID
			folder.Subfolders = append(folder.Subfolders, sub)
			c.fill(sub, child.Children)
			continue
		}

		b, err := c.bookmark(child, folder.Path)
		if err != nil {
			c.report.Dropped++
			c.report.Errors = append(c.report.Errors, err)
			continue
		}
		if c.seen[b.ID] {
			c.report.Duplicates++
			continue
		}
		c.seen[b.ID] = true
		folder.Bookmarks = append(folder.Bookmarks, b)
		c.flat = append(c.flat, b)
	}
}

func (c *canonicalizer) bookmark(n *input.Node, path []string) (*bookmark.Bookmark, error) {
	if n.URL == "" {
		return nil, fmt.Errorf("%w: %q in %v has no URL", bookmark.ErrInvalidBookmark, n.Title, path)
	}

	addDate := n.AddDate
	if addDate == 0 {
		addDate = c.now.Unix()
	}

	folderPath := append([]string{}, path...)
	return &bookmark.Bookmark{
		ID:           bookmark.BookmarkID(n.URL, n.Title),
		Title:        n.Title,
		URL:          n.URL,
		AddDate:      addDate,
		LastModified: n.LastModified,
		Icon:         n.Icon,
		Tags:         bookmark.TagsFromPath(folderPath),
		FolderPath:   folderPath,
		ExternalID:   n.ExternalID,
		Source:       bookmark.SourceImported,
	}, nil
}
