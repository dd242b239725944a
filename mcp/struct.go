package mcp

import (
	"context"
	"database/sql"

	"github.com/mark3labs/mcp-go/server"
)

// openFunc opens a database handle for a single tool invocation. Tests
// substitute it to inject a mock database.
type openFunc func(ctx context.Context, cfg Config, connString string) (*sql.DB, error)

// SQLServerMCP dispatches the SQL Server administrative tools. It holds no
// database state: every invocation opens and closes its own connection from
// the connection string supplied in the call.
type SQLServerMCP struct {
	server *server.MCPServer
	cfg    Config
	open   openFunc
}
