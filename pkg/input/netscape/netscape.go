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

// Package netscape parses the Netscape bookmark file format (.html) that
// every major browser still exports.
//
// The document is scanned as text rather than parsed into a DOM. Real-world
// exports are rarely well-formed, so the scanner is tolerant: it never fails
// and returns whatever it recognised before the input ran out.
package netscape

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/cloudygreybeard/shelf/pkg/adapter"
	"github.com/cloudygreybeard/shelf/pkg/input"
)

func init() {
	adapter.RegisterInput(New())
}

// Parser implements input.Parser for Netscape bookmark HTML.
type Parser struct{}

// New creates a new Netscape HTML parser.
func New() *Parser {
	return &Parser{}
}

// Name returns the parser identifier.
func (p *Parser) Name() string { return "netscape" }

// DisplayName returns a human-friendly name.
func (p *Parser) DisplayName() string { return "Netscape HTML" }

// Extensions returns supported file extensions.
func (p *Parser) Extensions() []string { return []string{".html", ".htm"} }

// ParseFile reads and parses the export at path. Only a missing or
// unreadable file produces an error.
func (p *Parser) ParseFile(ctx context.Context, path string) (*input.Node, error) {
	data, err := input.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data), nil
}

// Parse scans a Netscape bookmark document.
func Parse(data []byte) *input.Node {
	s := &scanner{src: string(data), up: asciiUpper(data)}
	root := input.NewRoot()
	root.Children, _ = s.level(0)
	return root
}

// scanner keeps the source alongside an upper-cased copy of equal length;
// tags are searched in up and text is sliced from src.
type scanner struct {
	src string
	up  string
}

func (s *scanner) index(tag string, from int) int {
	if from >= len(s.up) {
		return -1
	}
	i := strings.Index(s.up[from:], tag)
	if i < 0 {
		return -1
	}
	return from + i
}

// level collects the entries of one list, starting at pos, and returns them
// with the offset just past the list's closing tag (or the end of input).
func (s *scanner) level(pos int) ([]*input.Node, int) {
	var nodes []*input.Node

	for pos < len(s.src) {
		dt := s.index("<DT>", pos)
		if dt < 0 {
			break
		}
		pos = dt + len("<DT>")

		h3 := s.index("<H3", pos)
		a := s.index("<A ", pos)
		nextDT := s.index("<DT>", pos)
		dlClose := s.index("</DL>", pos)

		if dlClose >= 0 && (h3 < 0 || dlClose < h3) && (a < 0 || dlClose < a) {
			return nodes, dlClose + len("</DL>")
		}

		isFolder := h3 >= 0 && (a < 0 || h3 < a) && (nextDT < 0 || h3 < nextDT)
		switch {
		case isFolder:
			var folder *input.Node
			folder, pos = s.folder(h3, nextDT)
			nodes = append(nodes, folder)
		case a >= 0:
			var bm *input.Node
			bm, pos = s.anchor(a)
			nodes = append(nodes, bm)
		default:
			return nodes, len(s.src)
		}
	}

	return nodes, len(s.src)
}

func (s *scanner) folder(start, nextDT int) (*input.Node, int) {
	attrs, title, end := s.element(start, "</H3>")

	folder := &input.Node{
		Type:         input.TypeFolder,
		Title:        title,
		AddDate:      numberAttr(attrs, "ADD_DATE"),
		LastModified: numberAttr(attrs, "LAST_MODIFIED"),
	}
	if folder.Title == "" {
		folder.Title = input.UnnamedFolder
	}

	dl := s.index("<DL>", end)
	if dl >= 0 && (nextDT < 0 || dl < nextDT) {
		folder.Children, end = s.level(dl + len("<DL>"))
	}
	return folder, end
}

func (s *scanner) anchor(start int) (*input.Node, int) {
	attrs, title, end := s.element(start, "</A>")

	bm := &input.Node{
		Type:         input.TypeBookmark,
		Title:        title,
		URL:          attr(attrs, "HREF"),
		AddDate:      numberAttr(attrs, "ADD_DATE"),
		LastModified: numberAttr(attrs, "LAST_MODIFIED"),
		Icon:         attr(attrs, "ICON"),
	}
	if bm.Title == "" {
		bm.Title = input.UnnamedBookmark
	}
	return bm, end
}

// element splits the tag opened at start into its attribute text and its
// unescaped, trimmed body, returning the offset after the closing tag.
// Truncated elements consume the rest of the input.
func (s *scanner) element(start int, closeTag string) (attrs, body string, end int) {
	open := s.index(">", start)
	if open < 0 {
		return s.src[start:], "", len(s.src)
	}
	attrs = s.src[start:open]

	closeAt := s.index(closeTag, open+1)
	if closeAt < 0 {
		return attrs, unescape(s.src[open+1:]), len(s.src)
	}
	return attrs, unescape(s.src[open+1 : closeAt]), closeAt + len(closeTag)
}

var attrPatterns = map[string]*regexp.Regexp{
	"HREF":          attrPattern("HREF"),
	"ADD_DATE":      attrPattern("ADD_DATE"),
	"LAST_MODIFIED": attrPattern("LAST_MODIFIED"),
	"ICON":          attrPattern("ICON"),
}

func attrPattern(name string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)(?:^|\s)` + name + `="([^"]*)"`)
}

func attr(attrs, name string) string {
	m := attrPatterns[name].FindStringSubmatch(attrs)
	if m == nil {
		return ""
	}
	return html.UnescapeString(m[1])
}

// numberAttr reads the leading decimal digits of an attribute; anything
// unparseable counts as absent.
func numberAttr(attrs, name string) int64 {
	v := strings.TrimSpace(attr(attrs, name))
	end := 0
	if end < len(v) && (v[0] == '-' || v[0] == '+') {
		end++
	}
	for end < len(v) && v[end] >= '0' && v[end] <= '9' {
		end++
	}
	n, err := strconv.ParseInt(v[:end], 10, 64)
	if err != nil {
		return 0
	}
	return n
}

func unescape(s string) string {
	return strings.TrimSpace(html.UnescapeString(s))
}

func asciiUpper(b []byte) string {
	out := make([]byte, len(b))
	for i, c := range b {
		if c >= 'a' && c <= 'z' {
			c -= 'a' - 'A'
		}
		out[i] = c
	}
	return string(out)
}
