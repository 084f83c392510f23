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
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/cloudygreybeard/shelf/pkg/diff"
	"github.com/cloudygreybeard/shelf/pkg/pipeline"
)

var diffCmd = &cobra.Command{
	Use:   "diff <file>",
	Short: "Compare a browser export with the collection",
	Long: `Compares a browser export with the bookmark state by URL and lists
bookmarks found on only one side, title changes and folder moves.
Nothing is written.`,
	Args: cobra.ExactArgs(1),
	RunE: runDiff,
}

func init() {
	diffCmd.Flags().String("format", "text", "report format: text, json or yaml")
	diffCmd.Flags().Int("limit", 0, "items listed per section in text reports (0 = config default)")
	addFilterFlags(diffCmd)
	rootCmd.AddCommand(diffCmd)
}

func runDiff(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	limit, _ := cmd.Flags().GetInt("limit")
	if limit == 0 {
		limit = cfg.Diff.Limit
	}

	res, snap, err := pipeline.Preview(cmd.Context(), cfg.State.Path, args[0], pipeline.Options{
		Filter: filterOptions(cmd),
	})
	if err != nil {
		return notFoundHint(err)
	}
	logSnapshot(args[0], snap)

	out := cmd.OutOrStdout()
	switch format {
	case "text":
		return diff.WriteText(out, res, limit)
	case "json":
		data, err := json.MarshalIndent(res, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, string(data))
		return err
	case "yaml":
		data, err := yaml.Marshal(res)
		if err != nil {
			return err
		}
		_, err = out.Write(data)
		return err
	default:
		return fmt.Errorf("unknown report format: %s (available: text, json, yaml)", format)
	}
}
