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

	"github.com/cloudygreybeard/shelf/pkg/logger"
	"github.com/cloudygreybeard/shelf/pkg/state"
)

var applyCacheCmd = &cobra.Command{
	Use:   "apply-cache",
	Short: "Copy link-check results from the cache into the collection",
	Long: `Reads the link-check cache and copies status codes, errors and check
times onto matching bookmarks. A missing cache is treated as empty.`,
	Args: cobra.NoArgs,
	RunE: runApplyCache,
}

func init() {
	applyCacheCmd.Flags().String("cache", "", "cache file (default: from config)")
	rootCmd.AddCommand(applyCacheCmd)
}

func runApplyCache(cmd *cobra.Command, args []string) error {
	cachePath, _ := cmd.Flags().GetString("cache")
	if cachePath == "" {
		cachePath = cfg.State.CachePath
	}

	cache, err := state.LoadCache(cachePath)
	if err != nil {
		return err
	}

	data, _, err := loadState()
	if err != nil {
		return notFoundHint(err)
	}

	applied := state.ApplyCache(data, cache)
	if err := saveState(data); err != nil {
		return err
	}

	log.Debug("cache applied", logger.String("cache", cachePath), logger.Int("entries", len(cache.Bookmarks)))
	fmt.Fprintf(cmd.OutOrStdout(), "Applied cache to %d of %d bookmarks (%d checked)\n",
		applied, data.Count(), data.BuildInfo.CheckedCount)
	return nil
}
