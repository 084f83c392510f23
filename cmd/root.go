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

// Package cmd implements the shelf CLI commands.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cloudygreybeard/shelf/pkg/bookmark"
	"github.com/cloudygreybeard/shelf/pkg/config"
	"github.com/cloudygreybeard/shelf/pkg/logger"
	"github.com/cloudygreybeard/shelf/pkg/migrate"
	"github.com/cloudygreybeard/shelf/pkg/state"

	// Import adapters to trigger init() registration
	_ "github.com/cloudygreybeard/shelf/pkg/input/firefoxjson"
	_ "github.com/cloudygreybeard/shelf/pkg/input/netscape"
	_ "github.com/cloudygreybeard/shelf/pkg/input/opml"
	_ "github.com/cloudygreybeard/shelf/pkg/input/places"
	_ "github.com/cloudygreybeard/shelf/pkg/input/safari"
	_ "github.com/cloudygreybeard/shelf/pkg/output/firefox"
	_ "github.com/cloudygreybeard/shelf/pkg/output/json"
	_ "github.com/cloudygreybeard/shelf/pkg/output/markdown"
	_ "github.com/cloudygreybeard/shelf/pkg/output/netscape"
	_ "github.com/cloudygreybeard/shelf/pkg/output/opml"
	_ "github.com/cloudygreybeard/shelf/pkg/output/yaml"
)

var (
	cfgFile   string
	statePath string
	verbose   bool

	cfg config.Config
	log logger.Logger = logger.Nop()
)

// rootCmd represents the base command.
var rootCmd = &cobra.Command{
	Use:   "shelf",
	Short: "Keep a curated bookmark collection in sync with your browsers",
	Long: `shelf keeps a single JSON bookmark collection in step with browser
exports. Imports are merged rather than replaced: bookmarks you edited by
hand stay as you left them, and link-check results survive re-imports.

Supported exports:
  - Firefox backup JSON and Chromium "Bookmarks" files (.json)
  - Netscape bookmark HTML, as exported by every browser (.html, .htm)
  - Safari Bookmarks.plist (.plist)
  - Firefox places.sqlite (.sqlite)
  - OPML outlines (.opml)

Examples:
  shelf import bookmarks.html          # Merge an export into the collection
  shelf import backup.json --dry-run   # Show what an import would do
  shelf diff bookmarks.html            # Compare an export with the collection
  shelf export --format netscape -o bookmarks.html
  shelf add https://go.dev --title Go --folder Dev/Languages
  shelf status                         # Counts and import history
  shelf serve                          # Run as MCP server
  shelf formats                        # List supported formats`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

// Execute runs the root command.
func Execute() {
	err := rootCmd.Execute()
	_ = log.Sync()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default: ./shelf.yaml or ~/.shelf/config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&statePath, "state", "s", "", "bookmark state file (default: from config, ~/.shelf/bookmarks.json)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output to stderr")

	rootCmd.Version = Version
	rootCmd.SetVersionTemplate(fmt.Sprintf("shelf %s (commit: %s, built: %s)\n", Version, Commit, Date))
}

// setup loads configuration and builds the logger before any command runs.
func setup(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = loadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if statePath != "" {
		cfg.State.Path = statePath
	}
	if verbose {
		cfg.Log.Level = "debug"
	}

	log = logger.New(cfg.LoggerOptions())
	log.Debug("configuration loaded",
		logger.String("config", cfgFile),
		logger.String("state", cfg.State.Path))
	return nil
}

func loadConfig() (config.Config, error) {
	path := cfgFile
	if path == "" {
		path = config.LocalPath()
	}
	if path == "" {
		path = config.DefaultPath()
	}

	return config.Load(path)
}

// loadState reads the state file, upgrading it in memory if it predates
// the current schema. The second result reports whether it was upgraded.
func loadState() (*bookmark.Data, bool, error) {
	data, err := state.Load(cfg.State.Path)
	if err != nil {
		return nil, false, err
	}
	data, migrated := migrate.Migrate(data)
	if migrated {
		log.Info("state upgraded in memory", logger.String("schema", bookmark.SchemaVersion))
	}
	return data, migrated, nil
}

func saveState(data *bookmark.Data) error {
	if err := state.Save(cfg.State.Path, data); err != nil {
		return err
	}
	log.Debug("state saved", logger.String("path", cfg.State.Path), logger.Int("bookmarks", data.Count()))
	return nil
}
