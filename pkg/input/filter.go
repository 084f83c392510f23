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

import (
	"fmt"
	"regexp"
	"strings"
)

// FilterOptions configures which parsed bookmarks make it into an import.
type FilterOptions struct {
	IncludeFolders     []string // Only keep bookmarks in these folders
	ExcludeFolders     []string // Drop these folders with everything below them
	ExcludeURLPatterns []string // Drop URLs matching these regex patterns

	// URL protocol filtering
	ExcludeProtocols []string // Protocols to drop (e.g., "data", "javascript")
	WarnProtocols    []string // Protocols to warn about but keep
	MaxURLLength     int      // Drop URLs longer than this (0 = no limit)
	WarnURLLength    int      // Warn on URLs longer than this (0 = no warning)
}

// IsZero reports whether the options filter nothing and warn about nothing.
func (o FilterOptions) IsZero() bool {
	return len(o.IncludeFolders) == 0 && len(o.ExcludeFolders) == 0 &&
		len(o.ExcludeURLPatterns) == 0 && len(o.ExcludeProtocols) == 0 &&
		len(o.WarnProtocols) == 0 && o.MaxURLLength == 0 && o.WarnURLLength == 0
}

// FilterResult reports what Prune removed and flagged.
type FilterResult struct {
	Warnings []string
	Excluded int // Count of dropped bookmarks
}

// Prune removes filtered bookmarks and folders from the tree below root, in
// place. Bookmarks without a URL are left for the canonicalizer to reject.
func Prune(root *Node, opts FilterOptions) FilterResult {
	f := newFilter(opts)
	var result FilterResult
	root.Children = f.prune(root.Children, nil, &result)
	return result
}

type filter struct {
	opts          FilterOptions
	patterns      []*regexp.Regexp
	excludeProtos map[string]bool
	warnProtos    map[string]bool
}

func newFilter(opts FilterOptions) *filter {
	f := &filter{
		opts:          opts,
		excludeProtos: make(map[string]bool),
		warnProtos:    make(map[string]bool),
	}
	for _, p := range opts.ExcludeURLPatterns {
		if re, err := regexp.Compile(p); err == nil {
			f.patterns = append(f.patterns, re)
		}
	}
	for _, p := range opts.ExcludeProtocols {
		f.excludeProtos[strings.ToLower(p)] = true
	}
	for _, p := range opts.WarnProtocols {
		f.warnProtos[strings.ToLower(p)] = true
	}
	return f
}

func (f *filter) prune(nodes []*Node, path []string, result *FilterResult) []*Node {
	kept := nodes[:0]
	for _, n := range nodes {
		if n.IsFolder() {
			childPath := append(append([]string{}, path...), n.Title)
			if f.folderExcluded(childPath) {
				result.Excluded += n.Count()
				continue
			}
			n.Children = f.prune(n.Children, childPath, result)
			kept = append(kept, n)
			continue
		}

		if n.URL != "" && f.excluded(n, path) {
			result.Excluded++
			continue
		}
		f.warn(n, result)
		kept = append(kept, n)
	}
	return kept
}

func (f *filter) folderExcluded(path []string) bool {
	folderStr := strings.Join(path, "/")
	for _, exc := range f.opts.ExcludeFolders {
		if strings.Contains(folderStr, exc) {
			return true
		}
	}
	return false
}

func (f *filter) excluded(n *Node, path []string) bool {
	if f.excludeProtos[extractProtocol(n.URL)] {
		return true
	}

	if f.opts.MaxURLLength > 0 && len(n.URL) > f.opts.MaxURLLength {
		return true
	}

	if len(f.opts.IncludeFolders) > 0 {
		folderStr := strings.Join(path, "/")
		matched := false
		for _, inc := range f.opts.IncludeFolders {
			if strings.Contains(folderStr, inc) {
				matched = true
				break
			}
		}
		if !matched {
			return true
		}
	}

	for _, p := range f.patterns {
		if p.MatchString(n.URL) {
			return true
		}
	}
	return false
}

func (f *filter) warn(n *Node, result *FilterResult) {
	proto := extractProtocol(n.URL)
	if f.warnProtos[proto] {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("bookmark '%s' uses protocol '%s': %s", truncate(n.Title, 40), proto, truncate(n.URL, 60)))
	}

	if f.opts.WarnURLLength > 0 && len(n.URL) > f.opts.WarnURLLength {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("bookmark '%s' has long URL (%d chars): %s", truncate(n.Title, 40), len(n.URL), truncate(n.URL, 60)))
	}
}

// extractProtocol extracts the protocol/scheme from a URL.
func extractProtocol(url string) string {
	idx := strings.Index(url, ":")
	if idx <= 0 {
		return ""
	}
	return strings.ToLower(url[:idx])
}

// truncate shortens a string to maxLen, adding "..." if truncated.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
