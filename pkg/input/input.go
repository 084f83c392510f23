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

// Package input provides the Parser interface for bookmark export formats.
//
// Parsers read a browser export and return a tree of Nodes rooted at a
// synthetic folder titled "Root". The tree is transient: the canonical
// package turns it into a persisted bookmark.Data document.
//
// # Implementing a Parser
//
// To support a new export format:
//
//  1. Create a new package under pkg/input/
//  2. Implement the Parser interface
//  3. Register via init() using adapter.RegisterInput()
//  4. Import in cmd/root.go to include in the build
//
// Example:
//
//	package csv
//
//	func init() {
//	    adapter.RegisterInput(New())
//	}
//
//	type Parser struct{}
//
//	func New() *Parser { return &Parser{} }
//
//	func (p *Parser) Name() string         { return "csv" }
//	func (p *Parser) DisplayName() string  { return "CSV export" }
//	func (p *Parser) Extensions() []string { return []string{".csv"} }
//
//	func (p *Parser) ParseFile(ctx context.Context, path string) (*input.Node, error) {
//	    data, err := input.ReadFile(path)
//	    if err != nil {
//	        return nil, err
//	    }
//	    // Build the node tree here
//	    return input.NewRoot(), nil
//	}
package input

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/cloudygreybeard/shelf/pkg/bookmark"
)

// Parser is the interface for bookmark export formats.
type Parser interface {
	// Name returns the unique parser identifier.
	// Examples: "firefox-json", "netscape", "safari"
	Name() string

	// DisplayName returns a human-friendly name for UI display.
	DisplayName() string

	// Extensions returns the lower-case file extensions handled by this
	// parser, including the leading dot.
	Extensions() []string

	// ParseFile reads the export at path. A missing file is reported as
	// bookmark.ErrFileNotFound and a structurally invalid one as
	// bookmark.ErrParse.
	ParseFile(ctx context.Context, path string) (*Node, error)
}

// ReadFile reads a whole export file, mapping a missing file to
// bookmark.ErrFileNotFound.
func ReadFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", bookmark.ErrFileNotFound, path)
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return data, nil
}

// Stat reports bookmark.ErrFileNotFound when path does not exist.
func Stat(path string) error {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", bookmark.ErrFileNotFound, path)
		}
		return err
	}
	return nil
}
