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
	"time"

	"github.com/spf13/cobra"

	"github.com/cloudygreybeard/shelf/pkg/bookmark"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show collection counts and import history",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func init() {
	statusCmd.Flags().Int("history", 10, "import history entries to show (0 = all)")
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt("history")

	data, migrated, err := loadState()
	if err != nil {
		return notFoundHint(err)
	}

	var folders, manual, edited int
	bookmark.Walk(data.Root, func(*bookmark.Folder) { folders++ })
	for _, b := range data.FlatBookmarks {
		if b.Source == bookmark.SourceManual {
			manual++
		}
		if b.LocallyModified {
			edited++
		}
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "State:     %s\n", cfg.State.Path)
	fmt.Fprintf(out, "Schema:    %s", data.SchemaVersion)
	if migrated {
		fmt.Fprint(out, " (upgraded in memory; run 'shelf migrate' to save)")
	}
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Bookmarks: %d (%d manual, %d edited locally)\n", data.Count(), manual, edited)
	fmt.Fprintf(out, "Folders:   %d\n", folders-1)
	fmt.Fprintf(out, "Checked:   %d\n", data.BuildInfo.CheckedCount)

	sync := data.SyncInfo
	if sync == nil || len(sync.ImportHistory) == 0 {
		fmt.Fprintln(out, "\nNo imports recorded.")
		return nil
	}

	fmt.Fprintf(out, "\nImport history (%d):\n", len(sync.ImportHistory))
	history := sync.ImportHistory
	if limit > 0 && len(history) > limit {
		history = history[len(history)-limit:]
	}
	for _, rec := range history {
		fmt.Fprintf(out, "  %s  %-24s +%d ~%d =%d\n",
			formatMillis(rec.Date), rec.Source, rec.Added, rec.Updated, rec.Unchanged)
	}
	return nil
}

func formatMillis(ms int64) string {
	return time.UnixMilli(ms).Local().Format("2006-01-02 15:04")
}
