// Package mcp provides a Model Context Protocol server for loom.
// It exposes macro expansion as MCP tools that any MCP-capable agent can use.
package mcp

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// NewServer creates an MCP server with all loom tools registered.
func NewServer(version string) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "loom",
		Version: version,
	}, nil)
	registerTools(server)
	return server
}

// boolPtr returns a pointer to a bool value.
func boolPtr(b bool) *bool {
	return &b
}

// readOnlyAnnotations returns annotations for read-only tools.
func readOnlyAnnotations() *mcp.ToolAnnotations {
	return &mcp.ToolAnnotations{
		ReadOnlyHint:   true,
		IdempotentHint: true,
		OpenWorldHint:  boolPtr(false),
	}
}

// registerTools adds all loom tools to the server.
func registerTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name: "expand",
		Description: "Expand {name} macros in a template string. Values come from inline macros, " +
			"discovered project sources (loom.yaml, loom.ini, CHANGELOG.md), and optionally the environment. " +
			"Multi-line values are re-indented to match the template context; unresolved names stay verbatim.",
		Annotations: readOnlyAnnotations(),
	}, handleExpand)

	mcp.AddTool(server, &mcp.Tool{
		Name: "macros",
		Description: "List the macro names resolvable in a directory, grouped by source: " +
			"macro files, settings sections, and changelog metadata.",
		Annotations: readOnlyAnnotations(),
	}, handleMacros)
}
