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
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/cloudygreybeard/shelf/pkg/bookmark"
	"github.com/cloudygreybeard/shelf/pkg/logger"
)

var addCmd = &cobra.Command{
	Use:   "add <url>",
	Short: "Add a bookmark by hand",
	Long: `Adds a bookmark to the collection. Hand-made bookmarks are never
overwritten or removed by imports.`,
	Args: cobra.ExactArgs(1),
	RunE: runAdd,
}

var editCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Change a bookmark's title, description, tags or folder",
	Long: `Edits a bookmark in place. Edited bookmarks are marked as locally
modified and later imports leave them alone.`,
	Args: cobra.ExactArgs(1),
	RunE: runEdit,
}

var rmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Remove a bookmark",
	Args:  cobra.ExactArgs(1),
	RunE:  runRm,
}

func init() {
	addCmd.Flags().String("title", "", "bookmark title (default: the URL)")
	addCmd.Flags().String("folder", "", "folder path, separated by / (e.g., Dev/Go)")

	editCmd.Flags().String("title", "", "new title")
	editCmd.Flags().String("description", "", "new description")
	editCmd.Flags().StringSlice("tags", nil, "replace tags (comma-separated)")
	editCmd.Flags().String("folder", "", "move to folder path, separated by / (empty string for the root)")

	rootCmd.AddCommand(addCmd, editCmd, rmCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	title, _ := cmd.Flags().GetString("title")
	folder, _ := cmd.Flags().GetString("folder")

	data, _, err := loadState()
	if err != nil {
		return notFoundHint(err)
	}

	b, err := bookmark.AddManual(data, title, args[0], splitFolder(folder), time.Now())
	if err != nil {
		return err
	}
	if err := saveState(data); err != nil {
		return err
	}

	log.Debug("bookmark added", logger.String("id", b.ID), logger.Strings("folder", b.FolderPath))
	fmt.Fprintf(cmd.OutOrStdout(), "Added %s  %s\n", b.ID, b.Title)
	return nil
}

func runEdit(cmd *cobra.Command, args []string) error {
	var e bookmark.Edit
	flags := cmd.Flags()
	if flags.Changed("title") {
		title, _ := flags.GetString("title")
		e.Title = &title
	}
	if flags.Changed("description") {
		desc, _ := flags.GetString("description")
		e.Description = &desc
	}
	if flags.Changed("tags") {
		tags, _ := flags.GetStringSlice("tags")
		e.Tags = append([]string{}, tags...)
	}
	if flags.Changed("folder") {
		folder, _ := flags.GetString("folder")
		e.FolderPath = splitFolder(folder)
	}
	if e.Title == nil && e.Description == nil && e.Tags == nil && e.FolderPath == nil {
		return fmt.Errorf("nothing to change: use --title, --description, --tags or --folder")
	}

	data, _, err := loadState()
	if err != nil {
		return notFoundHint(err)
	}

	b, err := bookmark.Update(data, args[0], e)
	if err != nil {
		return err
	}
	if err := saveState(data); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Updated %s  %s\n", b.ID, b.Title)
	return nil
}

func runRm(cmd *cobra.Command, args []string) error {
	data, _, err := loadState()
	if err != nil {
		return notFoundHint(err)
	}

	b, err := bookmark.Remove(data, args[0])
	if err != nil {
		return err
	}
	if err := saveState(data); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Removed %s  %s\n", b.ID, b.Title)
	return nil
}

// splitFolder turns "A/B" into [A B]. Empty segments are dropped.
func splitFolder(s string) []string {
	path := []string{}
	for _, part := range strings.Split(s, "/") {
		if part = strings.TrimSpace(part); part != "" {
			path = append(path, part)
		}
	}
	return path
}
