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

package diff

import (
	"fmt"
	"io"
)

// DefaultLimit is the number of items listed per section of a text report.
const DefaultLimit = 20

// WriteText writes a human-readable report, listing at most limit items per
// section. A limit of zero or less lists everything.
func WriteText(w io.Writer, r Result, limit int) error {
	p := &printer{w: w, limit: limit}

	p.printf("Bookmark Diff Report\n\n")

	p.section("Only in local", len(r.OnlyLocal), func(i int) {
		p.printf("  - %s (%s)\n", r.OnlyLocal[i].Title, r.OnlyLocal[i].URL)
	})
	p.section("Only in export", len(r.OnlyExternal), func(i int) {
		p.printf("  + %s (%s)\n", r.OnlyExternal[i].Title, r.OnlyExternal[i].URL)
	})
	p.section("Title changes", len(r.TitleChanged), func(i int) {
		c := r.TitleChanged[i]
		p.printf("  ~ %q -> %q\n", c.LocalTitle, c.ExternalTitle)
	})
	p.section("Folder changes", len(r.FolderChanged), func(i int) {
		c := r.FolderChanged[i]
		p.printf("  ~ %s: %q -> %q\n", c.Title, c.LocalFolder, c.ExternalFolder)
	})

	if total := r.Total(); total == 0 {
		p.printf("No differences found.\n")
	} else {
		p.printf("Total differences: %d\n", total)
	}
	return p.err
}

// printer remembers the first write error so callers check once.
type printer struct {
	w     io.Writer
	limit int
	err   error
}

func (p *printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

func (p *printer) section(title string, n int, item func(i int)) {
	if n == 0 {
		return
	}
	p.printf("%s (%d):\n", title, n)

	shown := n
	if p.limit > 0 && n > p.limit {
		shown = p.limit
	}
	for i := 0; i < shown; i++ {
		item(i)
	}
	if shown < n {
		p.printf("  ... and %d more\n", n-shown)
	}
	p.printf("\n")
}
