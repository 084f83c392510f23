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

	"github.com/spf13/cobra"

	"github.com/cloudygreybeard/shelf/pkg/adapter"
)

var formatsCmd = &cobra.Command{
	Use:   "formats",
	Short: "List supported import and export formats",
	Long: `Lists registered parsers (import formats) with the file extensions
they claim, and registered renderers (export formats).`,
	Args: cobra.NoArgs,
	RunE: runFormats,
}

func init() {
	rootCmd.AddCommand(formatsCmd)
}

// defaultPather is implemented by parsers that know where a local browser
// keeps its bookmarks.
type defaultPather interface {
	DefaultPath() string
}

func runFormats(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Import formats (parsers):")
	fmt.Fprintln(out)

	for _, name := range adapter.ListInputs() {
		p, _ := adapter.GetInput(name)
		fmt.Fprintf(out, "  %-14s %-28s %s\n", name, p.DisplayName(), strings.Join(p.Extensions(), " "))
		if dp, ok := p.(defaultPather); ok {
			if path := dp.DefaultPath(); path != "" {
				fmt.Fprintf(out, "  %-14s local: %s\n", "", path)
			}
		}
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Export formats (renderers):")
	fmt.Fprintln(out)

	for _, name := range adapter.ListOutputs() {
		r, _ := adapter.GetOutput(name)
		fmt.Fprintf(out, "  %-14s %-28s %s\n", name, r.DisplayName(), strings.Join(r.Extensions(), " "))
	}

	return nil
}
