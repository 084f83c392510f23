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

package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cloudygreybeard/shelf/pkg/bookmark"
	"github.com/cloudygreybeard/shelf/pkg/input"
	"github.com/cloudygreybeard/shelf/pkg/logger"
	"github.com/cloudygreybeard/shelf/pkg/pipeline"
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Merge a browser export into the collection",
	Long: `Parses a browser export and merges it into the bookmark state.

Bookmarks are matched by browser GUID, then content hash, then URL.
Matches that were edited locally are kept as they are and counted as
conflicts; other matches take the export's title, URL, icon and folder
while keeping link-check results. Imported bookmarks missing from the
export are dropped; manual and locally edited ones are kept.

With --fresh the existing state is ignored and replaced.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	importCmd.Flags().Bool("fresh", false, "replace the state instead of merging")
	importCmd.Flags().Bool("dry-run", false, "show the result without writing the state")
	importCmd.Flags().String("source", "", "label for the import history (default: file name)")
	addFilterFlags(importCmd)
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	fresh, _ := cmd.Flags().GetBool("fresh")
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	source, _ := cmd.Flags().GetString("source")

	res, err := pipeline.Import(cmd.Context(), cfg.State.Path, args[0], pipeline.ImportOptions{
		Options: pipeline.Options{Filter: filterOptions(cmd)},
		Fresh:   fresh,
		DryRun:  dryRun,
		Source:  source,
	})
	if err != nil {
		return err
	}

	logSnapshot(args[0], res.Snapshot)
	if res.Migrated {
		log.Info("existing state upgraded", logger.String("schema", bookmark.SchemaVersion))
	}

	m := res.Merge
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s: %d added, %d updated, %d unchanged, %d conflicts\n",
		args[0], m.Added, m.Updated, m.Unchanged, m.Conflicts)
	if m.Retained > 0 || m.Removed > 0 {
		fmt.Fprintf(out, "  %d kept (manual or edited), %d removed\n", m.Retained, m.Removed)
	}
	fmt.Fprintf(out, "  %d bookmarks total\n", m.Data.Count())

	if dryRun {
		fmt.Fprintln(out, "Dry run: state not written.")
	} else {
		log.Info("state written", logger.String("path", cfg.State.Path))
	}
	return nil
}

// logSnapshot reports what was filtered or rejected while reading an export.
func logSnapshot(path string, snap *pipeline.Snapshot) {
	log.Debug("export parsed",
		logger.String("file", path),
		logger.String("parser", snap.Parser),
		logger.Int("bookmarks", snap.Parsed))

	for _, w := range snap.Filter.Warnings {
		log.Warn(w)
	}
	if snap.Filter.Excluded > 0 {
		log.Info("excluded by filter rules", logger.Int("count", snap.Filter.Excluded))
	}

	if snap.Report.Dropped > 0 {
		log.Warn("bookmarks without a URL dropped", logger.Int("count", snap.Report.Dropped))
		for _, err := range snap.Report.Errors {
			log.Debug("dropped", logger.Error(err))
		}
	}
	if snap.Report.Duplicates > 0 {
		log.Info("duplicate bookmarks skipped", logger.Int("count", snap.Report.Duplicates))
	}
}

func addFilterFlags(cmd *cobra.Command) {
	cmd.Flags().StringSlice("exclude-folders", nil, "folders to leave out (with everything below them)")
	cmd.Flags().StringSlice("exclude-protocols", nil, "protocols to exclude (e.g., data,javascript)")
	cmd.Flags().StringSlice("warn-protocols", nil, "protocols that trigger warnings (e.g., file,chrome)")
	cmd.Flags().Int("max-url-length", 0, "exclude URLs longer than this (0 = use config default)")
	cmd.Flags().Int("warn-url-length", 0, "warn on URLs longer than this (0 = use config default)")
}

// filterOptions applies filter flags over the configured filter.
func filterOptions(cmd *cobra.Command) input.FilterOptions {
	opts := cfg.FilterOptions()

	if folders, _ := cmd.Flags().GetStringSlice("exclude-folders"); len(folders) > 0 {
		opts.ExcludeFolders = folders
	}
	if excludeProtos, _ := cmd.Flags().GetStringSlice("exclude-protocols"); len(excludeProtos) > 0 {
		opts.ExcludeProtocols = excludeProtos
	}
	if warnProtos, _ := cmd.Flags().GetStringSlice("warn-protocols"); len(warnProtos) > 0 {
		opts.WarnProtocols = warnProtos
	}
	if maxLen, _ := cmd.Flags().GetInt("max-url-length"); maxLen > 0 {
		opts.MaxURLLength = maxLen
	}
	if warnLen, _ := cmd.Flags().GetInt("warn-url-length"); warnLen > 0 {
		opts.WarnURLLength = warnLen
	}
	return opts
}

// notFoundHint turns a missing state file into an actionable message.
func notFoundHint(err error) error {
	if errors.Is(err, bookmark.ErrFileNotFound) {
		return fmt.Errorf("%w (run 'shelf import <file>' first)", err)
	}
	return err
}
