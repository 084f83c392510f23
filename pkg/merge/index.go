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

package merge

import "github.com/cloudygreybeard/shelf/pkg/bookmark"

// index holds the three alternative keys of existing bookmarks.
type index struct {
	byExternalID map[string]*bookmark.Bookmark
	byID         map[string]*bookmark.Bookmark
	byURL        map[string]*bookmark.Bookmark
}

func newIndex(list []*bookmark.Bookmark) *index {
	idx := &index{
		byExternalID: make(map[string]*bookmark.Bookmark),
		byID:         make(map[string]*bookmark.Bookmark, len(list)),
		byURL:        make(map[string]*bookmark.Bookmark, len(list)),
	}
	for _, b := range list {
		if b.ExternalID != "" {
			idx.byExternalID[b.ExternalID] = b
		}
		idx.byID[b.ID] = b
		idx.byURL[b.URL] = b
	}
	return idx
}

// match returns the existing record for b, or nil.
func (idx *index) match(b *bookmark.Bookmark) *bookmark.Bookmark {
	if b.ExternalID != "" {
		if m, ok := idx.byExternalID[b.ExternalID]; ok {
			return m
		}
	}
	if m, ok := idx.byID[b.ID]; ok {
		return m
	}
	return idx.byURL[b.URL]
}
