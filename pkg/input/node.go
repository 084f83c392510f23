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

package input

// NodeType discriminates folders from bookmarks.
type NodeType string

const (
	TypeFolder   NodeType = "folder"
	TypeBookmark NodeType = "bookmark"
)

// Default titles used by parsers when an export leaves a name empty.
const (
	RootTitle       = "Root"
	UnnamedFolder   = "Unnamed Folder"
	UnnamedBookmark = "Unnamed Bookmark"
)

// Node is one folder or bookmark of a parsed export.
type Node struct {
	Type  NodeType
	Title string

	// URL is empty when the export gave the bookmark no link target.
	URL string

	// AddDate and LastModified are Unix seconds; zero means absent.
	AddDate      int64
	LastModified int64

	Icon string

	// ExternalID is the browser's native identifier (Firefox/Chromium GUID,
	// Safari UUID).
	ExternalID string

	Children []*Node
}

// NewRoot returns the synthetic root folder every parser returns.
func NewRoot() *Node {
	return &Node{Type: TypeFolder, Title: RootTitle}
}

// IsFolder reports whether n is a folder.
func (n *Node) IsFolder() bool {
	return n.Type == TypeFolder
}

// Count returns the number of bookmark nodes below n.
func (n *Node) Count() int {
	if !n.IsFolder() {
		return 1
	}
	total := 0
	for _, c := range n.Children {
		total += c.Count()
	}
	return total
}
