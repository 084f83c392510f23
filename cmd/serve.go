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
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/cloudygreybeard/shelf/pkg/logger"
	"github.com/cloudygreybeard/shelf/pkg/mcp"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run as an MCP server",
	Long: `Runs shelf as an MCP (Model Context Protocol) server.

The server communicates via JSON-RPC over stdin/stdout, exposing:

Resources:
  - shelf://bookmarks   The collection as JSON
  - shelf://markdown    The collection as Markdown
  - shelf://netscape    The collection as bookmark HTML
  - shelf://history     Import history

Tools:
  - search_bookmarks    Search bookmarks by title, URL or tag
  - get_bookmark        Fetch one bookmark by ID
  - preview_import      Diff an export file against the collection
  - reload              Re-read the state file

Usage with Claude Desktop or similar MCP clients:

Add to your MCP configuration:

  {
    "mcpServers": {
      "shelf": {
        "command": "/path/to/shelf",
        "args": ["serve"]
      }
    }
  }

Logs go to stderr (and the configured log file), never stdout.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	server := mcp.NewServer(cfg, log, Version)

	// Handle shutdown gracefully
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	log.Info("MCP server started", logger.String("state", cfg.State.Path))
	err := server.Run(ctx)
	log.Info("MCP server stopped")
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
