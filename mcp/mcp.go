package mcp

import (
	"github.com/mark3labs/mcp-go/server"
)

// NewServer builds the MCP server with every tool registered. The version is
// reported to MCP clients during initialization.
func NewServer(cfg Config, version string) *SQLServerMCP {
	s := &SQLServerMCP{
		server: server.NewMCPServer(
			serverName,
			version,
			server.WithToolCapabilities(true),
			server.WithRecovery(),
		),
		cfg:  cfg,
		open: Open,
	}

	s.registerTools()

	return s
}

// Start serves MCP on stdio until the stream closes.
func (s *SQLServerMCP) Start() error {
	return server.ServeStdio(s.server)
}
