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

	"github.com/spf13/cobra"

	"github.com/cloudygreybeard/shelf/pkg/bookmark"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Upgrade the state file to the current schema",
	Long: `Upgrades the bookmark state to schema ` + bookmark.SchemaVersion + `, filling in
fields older versions did not record. Running it again is harmless.`,
	Args: cobra.NoArgs,
	RunE: runMigrate,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, args []string) error {
	data, migrated, err := loadState()
	if err != nil {
		return notFoundHint(err)
	}

	out := cmd.OutOrStdout()
	if !migrated {
		fmt.Fprintf(out, "Already at schema %s\n", bookmark.SchemaVersion)
		return nil
	}

	if err := saveState(data); err != nil {
		return err
	}
	fmt.Fprintf(out, "Migrated %d bookmarks to schema %s\n", data.Count(), bookmark.SchemaVersion)
	return nil
}
