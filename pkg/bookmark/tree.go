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
	"errors"
	"fmt"
	"strings"
)

// Walk visits f and all of its descendants depth-first, parents before
// children.
func Walk(f *Folder, fn func(*Folder)) {
	if f == nil {
		return
	}
	fn(f)
	for _, sf := range f.Subfolders {
		Walk(sf, fn)
	}
}

// Relink points every folder reference at the flat entry with the same ID.
// Decoding a document yields separate copies for the tree and the list;
// Relink restores the sharing so edits to one are seen by the other.
// References without a flat entry are left alone.
func Relink(d *Data) {
	byID := make(map[string]*Bookmark, len(d.FlatBookmarks))
	for _, b := range d.FlatBookmarks {
		byID[b.ID] = b
	}
	Walk(d.Root, func(f *Folder) {
		for i, b := range f.Bookmarks {
			if flat, ok := byID[b.ID]; ok {
				f.Bookmarks[i] = flat
			}
		}
	})
}

// Reindex re-derives every folder's bookmark references from the flat list.
// Existing folders keep their place and order, including empty ones; missing
// folders named by a FolderPath are appended. Within a folder, bookmarks
// follow flat-list order.
func Reindex(d *Data) {
	if d.Root == nil {
		d.Root = NewRoot()
	}
	Walk(d.Root, func(f *Folder) {
		f.Bookmarks = []*Bookmark{}
	})
	place(d.Root, d.FlatBookmarks)
	d.BuildInfo.TotalBookmarks = len(d.FlatBookmarks)
}

// BuildTree builds a fresh folder tree holding the given bookmarks.
func BuildTree(bookmarks []*Bookmark) *Folder {
	root := NewRoot()
	place(root, bookmarks)
	return root
}

func place(root *Folder, bookmarks []*Bookmark) {
	for _, b := range bookmarks {
		f := EnsureFolder(root, b.FolderPath)
		f.Bookmarks = append(f.Bookmarks, b)
	}
}

// EnsureFolder returns the folder at path below root, creating any missing
// folders on the way.
func EnsureFolder(root *Folder, path []string) *Folder {
	current := root
	for i, name := range path {
		child, ok := current.Subfolder(name)
		if !ok {
			child = NewFolder(name, append([]string{}, path[:i+1]...))
			current.Subfolders = append(current.Subfolders, child)
		}
		current = child
	}
	return current
}

// Validate checks the document invariants and reports every violation found.
func Validate(d *Data) error {
	var errs []error

	if d.Root == nil {
		return errors.New("document has no root folder")
	}

	flat := make(map[string]*Bookmark, len(d.FlatBookmarks))
	for _, b := range d.FlatBookmarks {
		if _, dup := flat[b.ID]; dup {
			errs = append(errs, fmt.Errorf("duplicate flat entry %s", b.ID))
			continue
		}
		flat[b.ID] = b
	}

	seen := make(map[string]bool, len(d.FlatBookmarks))
	Walk(d.Root, func(f *Folder) {
		for _, b := range f.Bookmarks {
			entry, ok := flat[b.ID]
			switch {
			case !ok:
				errs = append(errs, fmt.Errorf("bookmark %s in folder %q has no flat entry", b.ID, strings.Join(f.Path, "/")))
			case seen[b.ID]:
				errs = append(errs, fmt.Errorf("bookmark %s appears in more than one folder", b.ID))
			case !equalPath(entry.FolderPath, f.Path):
				errs = append(errs, fmt.Errorf("bookmark %s has folder path %q but sits in %q",
					b.ID, strings.Join(entry.FolderPath, "/"), strings.Join(f.Path, "/")))
			}
			seen[b.ID] = true
		}
	})

	for _, b := range d.FlatBookmarks {
		if !seen[b.ID] {
			errs = append(errs, fmt.Errorf("bookmark %s is missing from the folder tree", b.ID))
			seen[b.ID] = true
		}
	}

	if d.BuildInfo.TotalBookmarks != len(d.FlatBookmarks) {
		errs = append(errs, fmt.Errorf("totalBookmarks is %d, flat list holds %d",
			d.BuildInfo.TotalBookmarks, len(d.FlatBookmarks)))
	}

	return errors.Join(errs...)
}
