// Package main provides the entry point for the loom CLI.
package main

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	loommcp "github.com/gorewood/loom/internal/mcp"
)

// newServeCmd creates the serve command for running as an MCP server.
func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run as MCP server (stdio transport)",
		Long: `Run loom as a Model Context Protocol (MCP) server over stdio.

This exposes macro expansion as MCP tools that any MCP-capable agent
environment can use (Claude Code, Cursor, Windsurf, Gemini CLI, etc).

Configure in your agent's MCP settings:
  {
    "mcpServers": {
      "loom": {
        "command": "loom",
        "args": ["serve"]
      }
    }
  }

Available tools: expand, macros`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			server := loommcp.NewServer(buildVersion())
			return server.Run(cmd.Context(), &mcp.StdioTransport{})
		},
	}
}
