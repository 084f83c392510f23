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

// Package migrate upgrades persisted documents to the current schema.
package migrate

import (
	"github.com/cloudygreybeard/shelf/pkg/bookmark"
)

// Migrate upgrades data in place to bookmark.SchemaVersion and reports
// whether anything changed. A document already at the current version is
// returned untouched, so Migrate is idempotent.
//
// Upgrading backfills a missing Source with bookmark.SourceImported, in the
// flat list and in the folder tree, and starts an empty import history.
func Migrate(data *bookmark.Data) (*bookmark.Data, bool) {
	if data == nil || data.SchemaVersion == bookmark.SchemaVersion {
		return data, false
	}

	if data.FlatBookmarks == nil {
		data.FlatBookmarks = []*bookmark.Bookmark{}
	}
	for _, b := range data.FlatBookmarks {
		backfill(b)
	}

	if data.Root == nil {
		data.Root = bookmark.BuildTree(data.FlatBookmarks)
		data.BuildInfo.TotalBookmarks = len(data.FlatBookmarks)
	}
	bookmark.Walk(data.Root, func(f *bookmark.Folder) {
		for _, b := range f.Bookmarks {
			backfill(b)
		}
	})

	if data.SyncInfo == nil {
		data.SyncInfo = &bookmark.SyncInfo{}
	}
	if data.SyncInfo.ImportHistory == nil {
		data.SyncInfo.ImportHistory = []bookmark.ImportRecord{}
	}

	data.SchemaVersion = bookmark.SchemaVersion
	return data, true
}

func backfill(b *bookmark.Bookmark) {
	if b.Source == "" {
		b.Source = bookmark.SourceImported
	}
}
