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

// Package diff compares two bookmark documents by URL for preview reports.
//
// Unlike merge, diff ignores IDs and external IDs: a bookmark is the same
// on both sides when its URL is. Neither document is modified.
package diff

import (
	"strings"

	"github.com/cloudygreybeard/shelf/pkg/bookmark"
)

// Entry is a bookmark present on one side only.
type Entry struct {
	Title string `json:"title" yaml:"title"`
	URL   string `json:"url" yaml:"url"`
}

// TitleChange is a URL present on both sides under different titles.
type TitleChange struct {
	URL           string `json:"url" yaml:"url"`
	LocalTitle    string `json:"localTitle" yaml:"localTitle"`
	ExternalTitle string `json:"firefoxTitle" yaml:"firefoxTitle"`
}

// FolderChange is a URL present on both sides in different folders.
// Folders are compared as "/"-joined paths.
type FolderChange struct {
	Title          string `json:"title" yaml:"title"`
	URL            string `json:"url" yaml:"url"`
	LocalFolder    string `json:"localFolder" yaml:"localFolder"`
	ExternalFolder string `json:"firefoxFolder" yaml:"firefoxFolder"`
}

// Result lists the differences between a local and an external document.
type Result struct {
	OnlyLocal     []Entry        `json:"onlyLocal" yaml:"onlyLocal"`
	OnlyExternal  []Entry        `json:"onlyFirefox" yaml:"onlyFirefox"`
	TitleChanged  []TitleChange  `json:"titleChanged" yaml:"titleChanged"`
	FolderChanged []FolderChange `json:"folderChanged" yaml:"folderChanged"`
}

// Total returns the number of differences.
func (r Result) Total() int {
	return len(r.OnlyLocal) + len(r.OnlyExternal) + len(r.TitleChanged) + len(r.FolderChanged)
}

// Diff compares local against external. Within each side a URL listed more
// than once keeps the position of its first entry and the fields of its
// last.
func Diff(local, external *bookmark.Data) Result {
	res := Result{
		OnlyLocal:     []Entry{},
		OnlyExternal:  []Entry{},
		TitleChanged:  []TitleChange{},
		FolderChanged: []FolderChange{},
	}

	l := byURL(local)
	e := byURL(external)

	for _, url := range l.order {
		if _, ok := e.items[url]; !ok {
			res.OnlyLocal = append(res.OnlyLocal, Entry{Title: l.items[url].Title, URL: url})
		}
	}

	for _, url := range e.order {
		ext := e.items[url]
		loc, ok := l.items[url]
		if !ok {
			res.OnlyExternal = append(res.OnlyExternal, Entry{Title: ext.Title, URL: url})
			continue
		}

		if loc.Title != ext.Title {
			res.TitleChanged = append(res.TitleChanged, TitleChange{
				URL:           url,
				LocalTitle:    loc.Title,
				ExternalTitle: ext.Title,
			})
		}

		localFolder := strings.Join(loc.FolderPath, "/")
		externalFolder := strings.Join(ext.FolderPath, "/")
		if localFolder != externalFolder {
			res.FolderChanged = append(res.FolderChanged, FolderChange{
				Title:          loc.Title,
				URL:            url,
				LocalFolder:    localFolder,
				ExternalFolder: externalFolder,
			})
		}
	}

	return res
}

type urlIndex struct {
	order []string
	items map[string]*bookmark.Bookmark
}

func byURL(d *bookmark.Data) urlIndex {
	idx := urlIndex{items: make(map[string]*bookmark.Bookmark)}
	if d == nil {
		return idx
	}
	for _, b := range d.FlatBookmarks {
		if _, ok := idx.items[b.URL]; !ok {
			idx.order = append(idx.order, b.URL)
		}
		idx.items[b.URL] = b
	}
	return idx
}
