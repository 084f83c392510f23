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

package bookmark

import (
	"fmt"
	"time"
)

// Edit holds optional changes to a bookmark. Nil fields are left untouched.
type Edit struct {
	Title       *string
	Description *string
	Tags        []string
	FolderPath  []string
}

// AddManual adds a hand-made bookmark to the document. Manual bookmarks are
// marked as locally modified so that later imports never overwrite them.
func AddManual(d *Data, title, url string, folderPath []string, now time.Time) (*Bookmark, error) {
	if url == "" {
		return nil, fmt.Errorf("%w: empty URL", ErrInvalidBookmark)
	}
	if title == "" {
		title = url
	}
	if folderPath == nil {
		folderPath = []string{}
	}

	id := BookmarkID(url, title)
	if _, exists := d.Find(id); exists {
		return nil, fmt.Errorf("bookmark %s already exists", id)
	}

	b := &Bookmark{
		ID:              id,
		Title:           title,
		URL:             url,
		AddDate:         now.Unix(),
		Tags:            TagsFromPath(folderPath),
		FolderPath:      folderPath,
		Source:          SourceManual,
		LocallyModified: true,
	}
	d.FlatBookmarks = append(d.FlatBookmarks, b)
	Reindex(d)
	return b, nil
}

// Update applies an edit to the bookmark with the given ID and marks it as
// locally modified. The ID is not recomputed.
func Update(d *Data, id string, e Edit) (*Bookmark, error) {
	b, ok := d.Find(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	if e.Title != nil {
		b.Title = *e.Title
	}
	if e.Description != nil {
		b.Description = *e.Description
	}
	if e.Tags != nil {
		b.Tags = e.Tags
	}
	moved := e.FolderPath != nil && !equalPath(e.FolderPath, b.FolderPath)
	if e.FolderPath != nil {
		b.FolderPath = e.FolderPath
	}
	b.LocallyModified = true

	if moved {
		Reindex(d)
	}
	return b, nil
}

// Remove deletes the bookmark with the given ID from the list and the tree.
func Remove(d *Data, id string) (*Bookmark, error) {
	for i, b := range d.FlatBookmarks {
		if b.ID != id {
			continue
		}
		d.FlatBookmarks = append(d.FlatBookmarks[:i], d.FlatBookmarks[i+1:]...)
		Reindex(d)
		return b, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
}
