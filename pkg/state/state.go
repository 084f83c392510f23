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

// Package state reads and writes the persisted bookmark document and the
// link-check cache that sits beside it.
//
// Writes replace the whole file atomically: a write that fails, including
// one refused because the document is inconsistent, leaves the previous
// file byte-for-byte as it was. There is no locking; one writer at a time
// is assumed.
package state

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/cloudygreybeard/shelf/pkg/bookmark"
)

// Load reads the document at path and restores the sharing of records
// between its folder tree and flat list.
func Load(path string) (*bookmark.Data, error) {
	raw, err := readFile(path)
	if err != nil {
		return nil, err
	}

	var data bookmark.Data
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", bookmark.ErrParse, path, err)
	}
	if data.FlatBookmarks == nil {
		data.FlatBookmarks = []*bookmark.Bookmark{}
	}
	bookmark.Relink(&data)
	return &data, nil
}

// Save validates data and writes it to path.
func Save(path string, data *bookmark.Data) error {
	if err := bookmark.Validate(data); err != nil {
		return fmt.Errorf("refusing to save inconsistent document: %w", err)
	}
	raw, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding document: %w", err)
	}
	return writeAtomic(path, append(raw, '\n'))
}

// Exists reports whether a file is present at path.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func readFile(path string) ([]byte, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", bookmark.ErrFileNotFound, path)
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return raw, nil
}
