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

// Package pipeline wires parsers, the canonicalizer, migration, merge and
// diff into the three import entry points: fresh import, incremental
// import and preview.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/cloudygreybeard/shelf/pkg/adapter"
	"github.com/cloudygreybeard/shelf/pkg/bookmark"
	"github.com/cloudygreybeard/shelf/pkg/canonical"
	"github.com/cloudygreybeard/shelf/pkg/diff"
	"github.com/cloudygreybeard/shelf/pkg/input"
	"github.com/cloudygreybeard/shelf/pkg/merge"
	"github.com/cloudygreybeard/shelf/pkg/migrate"
	"github.com/cloudygreybeard/shelf/pkg/state"
)

// Options configures how an export is read.
type Options struct {
	Filter input.FilterOptions
	Now    func() time.Time
}

func (o Options) now() func() time.Time {
	if o.Now == nil {
		return time.Now
	}
	return o.Now
}

// Snapshot is a canonicalized export and what it took to produce it.
type Snapshot struct {
	Data   *bookmark.Data
	Parser string // Name of the parser that read the file
	Parsed int    // Bookmark nodes seen before filtering
	Filter input.FilterResult
	Report canonical.Report
}

// Read parses, filters and canonicalizes the export at path. The parser is
// chosen by extension.
func Read(ctx context.Context, path string, opts Options) (*Snapshot, error) {
	p, err := adapter.ParserFor(path)
	if err != nil {
		return nil, err
	}

	root, err := p.ParseFile(ctx, path)
	if err != nil {
		return nil, err
	}

	snap := &Snapshot{Parser: p.Name(), Parsed: root.Count()}
	if !opts.Filter.IsZero() {
		snap.Filter = input.Prune(root, opts.Filter)
	}
	snap.Data, snap.Report = canonical.Canonicalize(root, canonical.WithNow(opts.now()))
	return snap, nil
}

// ImportOptions configures Import.
type ImportOptions struct {
	Options

	// Fresh ignores any existing state and replaces it with the export.
	Fresh bool
	// DryRun computes the result without writing it.
	DryRun bool
	// Source labels the history entry; defaults to the file's base name.
	Source string
}

// ImportResult describes an import.
type ImportResult struct {
	Snapshot *Snapshot
	Merge    *merge.Result
	Migrated bool // The existing state was upgraded on the way
	Saved    bool
}

// Import reads the export at file and merges it into the state at
// statePath, creating the state if there is none. Nothing is written when
// any step fails.
func Import(ctx context.Context, statePath, file string, opts ImportOptions) (*ImportResult, error) {
	snap, err := Read(ctx, file, opts.Options)
	if err != nil {
		return nil, err
	}

	source := opts.Source
	if source == "" {
		source = filepath.Base(file)
	}

	var existing *bookmark.Data
	migrated := false
	if !opts.Fresh {
		existing, err = state.Load(statePath)
		switch {
		case errors.Is(err, bookmark.ErrFileNotFound):
			existing = nil
		case err != nil:
			return nil, err
		default:
			existing, migrated = migrate.Migrate(existing)
		}
	}

	res := &ImportResult{
		Snapshot: snap,
		Merge:    merge.Merge(existing, snap.Data, source, merge.WithNow(opts.now())),
		Migrated: migrated,
	}

	if opts.DryRun {
		return res, nil
	}
	if err := state.Save(statePath, res.Merge.Data); err != nil {
		return nil, fmt.Errorf("saving %s: %w", statePath, err)
	}
	res.Saved = true
	return res, nil
}

// Preview compares the export at file with the state at statePath without
// changing either.
func Preview(ctx context.Context, statePath, file string, opts Options) (diff.Result, *Snapshot, error) {
	local, err := state.Load(statePath)
	if err != nil {
		return diff.Result{}, nil, err
	}

	snap, err := Read(ctx, file, opts)
	if err != nil {
		return diff.Result{}, nil, err
	}
	return diff.Diff(local, snap.Data), snap, nil
}
