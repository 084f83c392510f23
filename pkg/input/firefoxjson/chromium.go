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

package firefoxjson

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"github.com/cloudygreybeard/shelf/pkg/bookmark"
	"github.com/cloudygreybeard/shelf/pkg/input"
)

// Difference between Chrome epoch (1601-01-01) and Unix epoch (1970-01-01) in seconds
const chromeToUnixEpochDelta = 11644473600

// rootOrder fixes the order of Chromium's well-known roots; any other roots
// follow alphabetically.
var rootOrder = []string{"bookmark_bar", "other", "synced"}

type chromiumNode struct {
	Type         string         `json:"type"`
	Name         string         `json:"name"`
	URL          string         `json:"url"`
	GUID         string         `json:"guid"`
	DateAdded    string         `json:"date_added"`
	DateModified string         `json:"date_modified"`
	Children     []chromiumNode `json:"children"`
}

func parseChromium(raw json.RawMessage) (*input.Node, error) {
	var roots map[string]json.RawMessage
	if err := json.Unmarshal(raw, &roots); err != nil {
		return nil, fmt.Errorf("%w: roots: %v", bookmark.ErrParse, err)
	}

	root := input.NewRoot()
	for _, name := range orderedRoots(roots) {
		var node chromiumNode
		if err := json.Unmarshal(roots[name], &node); err != nil {
			continue
		}
		if node.Type == "folder" {
			root.Children = append(root.Children, convertChromium(node))
		}
	}
	return root, nil
}

func orderedRoots(roots map[string]json.RawMessage) []string {
	var names []string
	known := make(map[string]bool, len(rootOrder))
	for _, name := range rootOrder {
		known[name] = true
		if _, ok := roots[name]; ok {
			names = append(names, name)
		}
	}

	var rest []string
	for name := range roots {
		if !known[name] {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	return append(names, rest...)
}

func convertChromium(n chromiumNode) *input.Node {
	if n.Type == "folder" {
		title := n.Name
		if title == "" {
			title = input.UnnamedFolder
		}
		folder := &input.Node{
			Type:         input.TypeFolder,
			Title:        title,
			AddDate:      parseChromiumDate(n.DateAdded),
			LastModified: parseChromiumDate(n.DateModified),
			ExternalID:   n.GUID,
		}
		for _, child := range n.Children {
			if child.Type != "folder" && child.Type != "url" {
				continue
			}
			folder.Children = append(folder.Children, convertChromium(child))
		}
		return folder
	}

	title := n.Name
	if title == "" {
		title = input.UnnamedBookmark
	}
	return &input.Node{
		Type:       input.TypeBookmark,
		Title:      title,
		URL:        n.URL,
		AddDate:    parseChromiumDate(n.DateAdded),
		ExternalID: n.GUID,
	}
}

// parseChromiumDate converts WebKit-epoch microseconds to Unix seconds.
func parseChromiumDate(dateStr string) int64 {
	if dateStr == "" {
		return 0
	}

	chromeMicroseconds, err := strconv.ParseInt(dateStr, 10, 64)
	if err != nil || chromeMicroseconds == 0 {
		return 0
	}

	unixSeconds := chromeMicroseconds/1000000 - chromeToUnixEpochDelta
	if unixSeconds < 0 {
		return 0
	}
	return unixSeconds
}
