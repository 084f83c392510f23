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

// Package firefox renders bookmarks as a Firefox bookmark backup (.json)
// that Firefox can restore and the firefoxjson parser can read back.
package firefox

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/cloudygreybeard/shelf/pkg/adapter"
	"github.com/cloudygreybeard/shelf/pkg/bookmark"
	"github.com/cloudygreybeard/shelf/pkg/output"
)

// guidAlphabet is the URL-safe base64 alphabet Firefox draws GUIDs from.
const guidAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789_-"

const (
	guidLength = 12

	typeBookmark = 1
	typeFolder   = 2

	mimeBookmark  = "text/x-moz-place"
	mimeContainer = "text/x-moz-place-container"
)

// Firefox's built-in roots.
type placesRoot struct {
	guid  string
	root  string
	title string
}

var (
	rootPlaces  = placesRoot{guid: "root________", root: "placesRoot"}
	rootMenu    = placesRoot{guid: "menu________", root: "bookmarksMenuFolder", title: "Bookmarks Menu"}
	rootToolbar = placesRoot{guid: "toolbar_____", root: "toolbarFolder", title: "Bookmarks Toolbar"}
	rootUnfiled = placesRoot{guid: "unfiled_____", root: "unfiledBookmarksFolder", title: "Other Bookmarks"}
)

// wellKnown maps lower-cased top-level folder names onto Firefox roots.
var wellKnown = map[string]placesRoot{
	"menu":              rootMenu,
	"bookmarks menu":    rootMenu,
	"toolbar":           rootToolbar,
	"bookmarks toolbar": rootToolbar,
	"unfiled":           rootUnfiled,
	"other bookmarks":   rootUnfiled,
}

func init() {
	adapter.RegisterOutput(New())
}

// Adapter implements output.Adapter for Firefox backups.
type Adapter struct {
	// Now stamps folders, which carry no dates of their own.
	Now func() time.Time
	// NewGUID generates GUIDs for records that never came from Firefox.
	NewGUID func() (string, error)
}

// New creates a new Firefox backup adapter.
func New() *Adapter {
	return &Adapter{
		Now: time.Now,
		NewGUID: func() (string, error) {
			return gonanoid.Generate(guidAlphabet, guidLength)
		},
	}
}

// Name returns the adapter identifier.
func (a *Adapter) Name() string { return "firefox" }

// DisplayName returns a human-friendly name.
func (a *Adapter) DisplayName() string { return "Firefox backup JSON" }

// Extensions returns file extensions for this format.
func (a *Adapter) Extensions() []string { return []string{".json"} }

type node struct {
	GUID         string  `json:"guid"`
	Title        string  `json:"title"`
	Index        int     `json:"index"`
	DateAdded    int64   `json:"dateAdded"`
	LastModified int64   `json:"lastModified"`
	ID           int     `json:"id"`
	TypeCode     int     `json:"typeCode"`
	Type         string  `json:"type"`
	Root         string  `json:"root,omitempty"`
	URI          string  `json:"uri,omitempty"`
	Tags         string  `json:"tags,omitempty"`
	Children     []*node `json:"children,omitempty"`
}

type exporter struct {
	opts    output.RenderOptions
	now     int64
	nextID  int
	newGUID func() (string, error)
}

// Render converts the folder tree to a Firefox backup. Top-level folders
// named like Firefox's menu, toolbar or unfiled folders become those
// roots; bookmarks at the top level go to "Other Bookmarks".
func (a *Adapter) Render(data *bookmark.Data, opts output.RenderOptions) ([]byte, error) {
	e := &exporter{
		opts:    opts,
		now:     a.Now().UnixMicro(),
		nextID:  1,
		newGUID: a.NewGUID,
	}

	root := e.container(rootPlaces.guid, "", 0)
	root.Root = rootPlaces.root

	top := data.Root
	if top == nil {
		top = bookmark.NewRoot()
	}

	for i, sf := range output.SortedSubfolders(top, opts) {
		n, err := e.folder(sf, i)
		if err != nil {
			return nil, err
		}
		if r, ok := wellKnown[strings.ToLower(sf.Name)]; ok {
			n.GUID = r.guid
			n.Root = r.root
		}
		root.Children = append(root.Children, n)
	}

	if len(top.Bookmarks) > 0 {
		unfiled := findRoot(root, rootUnfiled.root)
		if unfiled == nil {
			unfiled = e.container(rootUnfiled.guid, rootUnfiled.title, len(root.Children))
			unfiled.Root = rootUnfiled.root
			root.Children = append(root.Children, unfiled)
		}
		for _, b := range output.SortedBookmarks(top, opts) {
			n, err := e.bookmark(b, len(unfiled.Children))
			if err != nil {
				return nil, err
			}
			unfiled.Children = append(unfiled.Children, n)
		}
	}

	out, err := json.MarshalIndent(root, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling Firefox backup: %w", err)
	}
	return append(out, '\n'), nil
}

func (e *exporter) container(guid, title string, index int) *node {
	n := &node{
		GUID:         guid,
		Title:        title,
		Index:        index,
		DateAdded:    e.now,
		LastModified: e.now,
		ID:           e.nextID,
		TypeCode:     typeFolder,
		Type:         mimeContainer,
	}
	e.nextID++
	return n
}

func (e *exporter) folder(f *bookmark.Folder, index int) (*node, error) {
	guid, err := e.guid(f.ExternalID)
	if err != nil {
		return nil, err
	}
	n := e.container(guid, f.Name, index)

	for _, sf := range output.SortedSubfolders(f, e.opts) {
		child, err := e.folder(sf, len(n.Children))
		if err != nil {
			return nil, err
		}
		n.Children = append(n.Children, child)
	}
	for _, b := range output.SortedBookmarks(f, e.opts) {
		child, err := e.bookmark(b, len(n.Children))
		if err != nil {
			return nil, err
		}
		n.Children = append(n.Children, child)
	}
	return n, nil
}

func (e *exporter) bookmark(b *bookmark.Bookmark, index int) (*node, error) {
	guid, err := e.guid(b.ExternalID)
	if err != nil {
		return nil, err
	}

	modified := b.LastModified
	if modified == 0 {
		modified = b.AddDate
	}

	n := &node{
		GUID:         guid,
		Title:        b.Title,
		Index:        index,
		DateAdded:    b.AddDate * 1_000_000,
		LastModified: modified * 1_000_000,
		ID:           e.nextID,
		TypeCode:     typeBookmark,
		Type:         mimeBookmark,
		URI:          b.URL,
	}
	if e.opts.IncludeTags && len(b.Tags) > 0 {
		n.Tags = strings.Join(b.Tags, ",")
	}
	e.nextID++
	return n, nil
}

func (e *exporter) guid(existing string) (string, error) {
	if existing != "" {
		return existing, nil
	}
	guid, err := e.newGUID()
	if err != nil {
		return "", fmt.Errorf("generate guid: %w", err)
	}
	return guid, nil
}

func findRoot(n *node, root string) *node {
	for _, c := range n.Children {
		if c.Root == root {
			return c
		}
	}
	return nil
}
