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

// Package adapter provides the registry for export parsers and renderers.
package adapter

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/cloudygreybeard/shelf/pkg/bookmark"
	"github.com/cloudygreybeard/shelf/pkg/input"
	"github.com/cloudygreybeard/shelf/pkg/output"
)

var (
	inputsMu    sync.RWMutex
	inputs      = make(map[string]input.Parser)
	byExtension = make(map[string]input.Parser)
	outputsMu   sync.RWMutex
	outputs     = make(map[string]output.Adapter)
)

// RegisterInput registers a parser under its name and each of its
// extensions. A later registration for the same extension wins.
func RegisterInput(p input.Parser) {
	inputsMu.Lock()
	defer inputsMu.Unlock()
	inputs[p.Name()] = p
	for _, ext := range p.Extensions() {
		byExtension[strings.ToLower(ext)] = p
	}
}

// RegisterOutput registers an output adapter.
func RegisterOutput(adapter output.Adapter) {
	outputsMu.Lock()
	defer outputsMu.Unlock()
	outputs[adapter.Name()] = adapter
}

// GetInput returns a parser by name.
func GetInput(name string) (input.Parser, bool) {
	inputsMu.RLock()
	defer inputsMu.RUnlock()
	p, ok := inputs[name]
	return p, ok
}

// ParserFor picks the parser for an export file by its extension. Unknown
// extensions fail with bookmark.ErrUnsupportedFormat before any I/O.
func ParserFor(path string) (input.Parser, error) {
	ext := strings.ToLower(filepath.Ext(path))

	inputsMu.RLock()
	defer inputsMu.RUnlock()
	p, ok := byExtension[ext]
	if !ok {
		return nil, fmt.Errorf("%w: %q (expected one of %v)", bookmark.ErrUnsupportedFormat, ext, extensionsLocked())
	}
	return p, nil
}

// GetOutput returns an output adapter by name.
func GetOutput(name string) (output.Adapter, bool) {
	outputsMu.RLock()
	defer outputsMu.RUnlock()
	a, ok := outputs[name]
	return a, ok
}

// ListInputs returns all registered parser names.
func ListInputs() []string {
	inputsMu.RLock()
	defer inputsMu.RUnlock()
	names := make([]string, 0, len(inputs))
	for name := range inputs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ListOutputs returns all registered output adapter names.
func ListOutputs() []string {
	outputsMu.RLock()
	defer outputsMu.RUnlock()
	names := make([]string, 0, len(outputs))
	for name := range outputs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Extensions returns every registered input extension.
func Extensions() []string {
	inputsMu.RLock()
	defer inputsMu.RUnlock()
	return extensionsLocked()
}

func extensionsLocked() []string {
	exts := make([]string, 0, len(byExtension))
	for ext := range byExtension {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}
