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

// Package places reads bookmarks straight from a Firefox profile's
// places.sqlite database.
package places

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/cloudygreybeard/shelf/pkg/adapter"
	"github.com/cloudygreybeard/shelf/pkg/input"
)

// firefoxPaths maps platform to Firefox profiles directory.
var firefoxPaths = map[string]string{
	"linux":   ".mozilla/firefox",
	"darwin":  "Library/Application Support/Firefox/Profiles",
	"windows": "Mozilla/Firefox/Profiles",
}

// moz_bookmarks.type values.
const (
	typeBookmark = 1
	typeFolder   = 2
)

// Well-known GUIDs of the places root and of the tags root, whose
// subtree holds tag assignments rather than bookmarks.
const (
	rootGUID = "root________"
	tagsGUID = "tags________"
)

func init() {
	adapter.RegisterInput(New())
}

// Parser implements input.Parser for places.sqlite.
type Parser struct{}

// New creates a new places parser.
func New() *Parser {
	return &Parser{}
}

// Name returns the parser identifier.
func (p *Parser) Name() string {
	return "places"
}

// DisplayName returns a human-friendly name.
func (p *Parser) DisplayName() string {
	return "Firefox places.sqlite"
}

// Extensions returns supported file extensions.
func (p *Parser) Extensions() []string {
	return []string{".sqlite"}
}

// DefaultPath returns the places database of the first Firefox profile
// found, or "".
func (p *Parser) DefaultPath() string {
	profilesDir := profilesDir()
	if profilesDir == "" {
		return ""
	}

	entries, err := os.ReadDir(profilesDir)
	if err != nil {
		return ""
	}

	for _, entry := range entries {
		if entry.IsDir() {
			placesPath := filepath.Join(profilesDir, entry.Name(), "places.sqlite")
			if _, err := os.Stat(placesPath); err == nil {
				return placesPath
			}
		}
	}
	return ""
}

// ParseFile reads the bookmark tree from a places database. Firefox holds
// a lock on a live profile, so the database is read from a copy.
func (p *Parser) ParseFile(ctx context.Context, path string) (*input.Node, error) {
	if err := input.Stat(path); err != nil {
		return nil, err
	}

	tmpFile, err := os.CreateTemp("", "shelf-places-*.sqlite")
	if err != nil {
		return nil, err
	}
	defer os.Remove(tmpFile.Name())
	defer tmpFile.Close()

	srcFile, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer srcFile.Close()

	if _, err := io.Copy(tmpFile, srcFile); err != nil {
		return nil, fmt.Errorf("copying %s: %w", path, err)
	}
	tmpFile.Close()

	db, err := sql.Open("sqlite3", "file:"+tmpFile.Name()+"?mode=ro")
	if err != nil {
		return nil, err
	}
	defer db.Close()

	root, err := readTree(ctx, db)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return root, nil
}

type row struct {
	id, parent   int64
	kind         int
	title        string
	url          string
	guid         string
	dateAdded    int64
	lastModified int64
}

func readTree(ctx context.Context, db *sql.DB) (*input.Node, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT b.id, b.parent, b.type, b.title, p.url, b.guid, b.dateAdded, b.lastModified
		FROM moz_bookmarks b
		LEFT JOIN moz_places p ON b.fk = p.id
		ORDER BY b.parent, b.position
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var all []row
	for rows.Next() {
		var r row
		var title, url, guid sql.NullString
		var added, modified sql.NullInt64
		if err := rows.Scan(&r.id, &r.parent, &r.kind, &title, &url, &guid, &added, &modified); err != nil {
			return nil, err
		}
		r.title, r.url, r.guid = title.String, url.String, guid.String
		r.dateAdded, r.lastModified = added.Int64/1e6, modified.Int64/1e6
		all = append(all, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return buildTree(all), nil
}

// buildTree attaches rows to their parents. Rows arrive ordered by parent
// and position, so children keep their Firefox order.
func buildTree(rows []row) *input.Node {
	root := input.NewRoot()

	nodes := make(map[int64]*input.Node, len(rows))
	var rootID int64 = -1

	for _, r := range rows {
		switch {
		case r.guid == rootGUID || (r.parent == 0 && r.kind == typeFolder && rootID < 0):
			rootID = r.id
			nodes[r.id] = root
		case r.guid == tagsGUID:
			// Left out of nodes so its subtree never attaches.
		case r.kind == typeFolder:
			title := r.title
			if title == "" {
				title = input.UnnamedFolder
			}
			nodes[r.id] = &input.Node{
				Type:         input.TypeFolder,
				Title:        title,
				AddDate:      r.dateAdded,
				LastModified: r.lastModified,
				ExternalID:   r.guid,
			}
		case r.kind == typeBookmark && !strings.HasPrefix(r.url, "place:"):
			title := r.title
			if title == "" {
				title = input.UnnamedBookmark
			}
			nodes[r.id] = &input.Node{
				Type:         input.TypeBookmark,
				Title:        title,
				URL:          r.url,
				AddDate:      r.dateAdded,
				LastModified: r.lastModified,
				ExternalID:   r.guid,
			}
		}
	}

	for _, r := range rows {
		node, ok := nodes[r.id]
		if !ok || node == root {
			continue
		}
		parent, ok := nodes[r.parent]
		if !ok || !parent.IsFolder() {
			continue
		}
		parent.Children = append(parent.Children, node)
	}

	return root
}

func profilesDir() string {
	relPath, ok := firefoxPaths[runtime.GOOS]
	if !ok {
		return ""
	}

	var base string
	if runtime.GOOS == "windows" {
		base = os.Getenv("APPDATA")
	} else {
		base, _ = os.UserHomeDir()
	}

	return filepath.Join(base, relPath)
}
