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
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cloudygreybeard/shelf/pkg/adapter"
	"github.com/cloudygreybeard/shelf/pkg/logger"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Render the collection in another format",
	Long: `Renders the bookmark state with one of the output adapters.

Formats:
  markdown   Readable listing (styles: textual, table, yaml)
  netscape   Bookmark HTML that any browser can import
  firefox    Firefox backup JSON, restorable from the Library window
  json       Flat list with metadata
  yaml       Flat list with metadata
  opml       Folder outline

Output goes to stdout unless -o is given.`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringP("format", "f", "markdown", "output format")
	exportCmd.Flags().StringP("output", "o", "", "output file (default: stdout)")
	exportCmd.Flags().String("style", "", "format variant (markdown: textual, table, yaml)")
	exportCmd.Flags().Bool("sort", false, "sort bookmarks and folders alphabetically")
	exportCmd.Flags().Bool("metadata", true, "include a metadata header")
	exportCmd.Flags().Bool("tags", true, "include tags")
	exportCmd.Flags().Bool("status", false, "include link-check results")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	outAdapter, ok := adapter.GetOutput(format)
	if !ok {
		return fmt.Errorf("unknown output format: %s (available: %v)", format, adapter.ListOutputs())
	}

	data, _, err := loadState()
	if err != nil {
		return notFoundHint(err)
	}

	opts := cfg.RenderOptions()
	flags := cmd.Flags()
	if flags.Changed("style") {
		opts.Style, _ = flags.GetString("style")
	}
	if flags.Changed("sort") {
		opts.SortAlpha, _ = flags.GetBool("sort")
	}
	if flags.Changed("metadata") {
		opts.IncludeMetadata, _ = flags.GetBool("metadata")
	}
	if flags.Changed("tags") {
		opts.IncludeTags, _ = flags.GetBool("tags")
	}
	if flags.Changed("status") {
		opts.IncludeStatus, _ = flags.GetBool("status")
	}

	rendered, err := outAdapter.Render(data, opts)
	if err != nil {
		return fmt.Errorf("rendering output: %w", err)
	}

	outPath, _ := flags.GetString("output")
	if outPath == "" || outPath == "-" {
		_, err := cmd.OutOrStdout().Write(rendered)
		return err
	}

	if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	if err := os.WriteFile(outPath, rendered, 0644); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	log.Info("export written",
		logger.String("format", format),
		logger.String("path", outPath),
		logger.Int("bookmarks", data.Count()))
	return nil
}
