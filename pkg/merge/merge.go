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

// Package merge reconciles a fresh import snapshot with persisted state.
//
// Incoming bookmarks are matched against existing ones by external ID, then
// content-hash ID, then URL; the first key that hits decides. A match whose
// existing record was edited locally is a conflict and the local record
// wins outright, even for fields the edit never touched. Otherwise the
// import wins for title, URL, icon and folder, while fields filled in by
// link checking and other tooling are carried over from the existing record.
//
// A bookmark whose URL and title both change in the browser, and that has
// no external ID, matches nothing and is counted as added.
package merge

import (
	"time"

	"github.com/cloudygreybeard/shelf/pkg/bookmark"
)

// Result is the outcome of a merge.
type Result struct {
	Added     int
	Updated   int
	Unchanged int
	Conflicts int

	// Retained counts existing manual or locally modified bookmarks that
	// the import did not mention and that were kept anyway.
	Retained int
	// Removed counts existing imported bookmarks absent from the import.
	Removed int

	Data *bookmark.Data
}

// Option configures Merge.
type Option func(*options)

type options struct {
	now func() time.Time
}

// WithNow sets the clock used for the history entry and build timestamp.
func WithNow(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

// Merge folds incoming into existing and returns the merged document, which
// is incoming modified in place. existing is not modified and may be nil.
// Callers should migrate existing first.
func Merge(existing, incoming *bookmark.Data, source string, opts ...Option) *Result {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	if existing == nil {
		existing = &bookmark.Data{Root: bookmark.NewRoot()}
	}

	idx := newIndex(existing.FlatBookmarks)
	res := &Result{Data: incoming}
	matched := make(map[*bookmark.Bookmark]bool)

	for _, in := range incoming.FlatBookmarks {
		m := idx.match(in)
		if m == nil {
			res.Added++
			continue
		}
		matched[m] = true

		switch {
		case m.LocallyModified:
			res.Conflicts++
			*in = *m.Clone()
		case !bookmark.CoreEqual(m, in):
			res.Updated++
			carryCache(m, in)
		default:
			res.Unchanged++
			carryCache(m, in)
		}
	}

	for _, b := range existing.FlatBookmarks {
		if matched[b] {
			continue
		}
		if b.Source == bookmark.SourceManual || b.LocallyModified {
			incoming.FlatBookmarks = append(incoming.FlatBookmarks, b.Clone())
			res.Retained++
		} else {
			res.Removed++
		}
	}

	incoming.FlatBookmarks = dedupe(incoming.FlatBookmarks)
	bookmark.Reindex(incoming)
	mergeFolderIDs(existing.Root, incoming.Root)

	now := o.now().UnixMilli()
	history := []bookmark.ImportRecord{}
	if existing.SyncInfo != nil {
		history = append(history, existing.SyncInfo.ImportHistory...)
	}
	history = append(history, bookmark.ImportRecord{
		Date:      now,
		Source:    source,
		Added:     res.Added,
		Updated:   res.Updated,
		Unchanged: res.Unchanged,
	})
	incoming.SyncInfo = &bookmark.SyncInfo{
		LastImportSource: source,
		LastImportDate:   now,
		ImportHistory:    history,
	}

	incoming.BuildInfo = existing.BuildInfo
	incoming.BuildInfo.TotalBookmarks = len(incoming.FlatBookmarks)
	incoming.BuildInfo.LastBuild = now
	incoming.SchemaVersion = bookmark.SchemaVersion

	return res
}

// carryCache copies the fields maintained outside of imports from the
// existing record onto the incoming one.
func carryCache(existing, in *bookmark.Bookmark) {
	in.LastChecked = existing.LastChecked
	in.StatusCode = existing.StatusCode
	in.CheckError = existing.CheckError
	in.ArchiveURL = existing.ArchiveURL
	if existing.Description != "" {
		in.Description = existing.Description
	}
	if existing.PreviewImage != "" {
		in.PreviewImage = existing.PreviewImage
	}
}

// dedupe keeps the first record for each ID. Conflicts can turn two
// incoming records into copies of the same local one.
func dedupe(list []*bookmark.Bookmark) []*bookmark.Bookmark {
	seen := make(map[string]bool, len(list))
	out := list[:0]
	for _, b := range list {
		if seen[b.ID] {
			continue
		}
		seen[b.ID] = true
		out = append(out, b)
	}
	return out
}

// mergeFolderIDs copies external IDs from existing folders onto incoming
// folders with the same name at the same place in the tree.
func mergeFolderIDs(existing, incoming *bookmark.Folder) {
	if existing == nil || incoming == nil {
		return
	}
	if incoming.ExternalID == "" {
		incoming.ExternalID = existing.ExternalID
	}
	for _, in := range incoming.Subfolders {
		if ex, ok := existing.Subfolder(in.Name); ok {
			mergeFolderIDs(ex, in)
		}
	}
}
