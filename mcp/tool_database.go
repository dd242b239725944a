package mcp

import (
	"context"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

type databaseInfo struct {
	Name          string `json:"name"`
	DatabaseID    int64  `json:"databaseId"`
	CreateDate    string `json:"createDate"`
	State         string `json:"state"`
	RecoveryModel string `json:"recoveryModel"`
}

type listDatabasesResult struct {
	Success       bool           `json:"success"`
	DatabaseCount int            `json:"databaseCount"`
	Databases     []databaseInfo `json:"databases"`
}

func (s *SQLServerMCP) toolListDatabases() (mcp.Tool, server.ToolHandlerFunc) {
	return mcp.Tool{
		Name:        "list_databases",
		Description: "Lists the user databases on the server, excluding the system databases.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"connectionString": map[string]interface{}{
					"type":        "string",
					"description": "SQL Server connection string",
				},
			},
			Required: []string{"connectionString"},
		},
	}, s.handleListDatabases
}

func (s *SQLServerMCP) handleListDatabases(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, terr := requestArgs(request)
	if terr != nil {
		return errorResult(terr), nil
	}

	connString, terr := connectionStringArg(args)
	if terr != nil {
		return errorResult(terr), nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultQueryTimeout)
	defer cancel()

	db, err := s.open(ctx, s.cfg, connString)
	if err != nil {
		return errorResult(err), nil
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, listDatabasesSQL)
	if err != nil {
		return errorResult(execError(err)), nil
	}
	defer rows.Close()

	databases := make([]databaseInfo, 0)
	for rows.Next() {
		var (
			name       string
			databaseID int64
			createDate time.Time
			state      string
			recovery   string
		)
		if err = rows.Scan(&name, &databaseID, &createDate, &state, &recovery); err != nil {
			return errorResult(execError(fmt.Errorf("%w: %v", errReadingRow, err))), nil
		}
		databases = append(databases, databaseInfo{
			Name:          name,
			DatabaseID:    databaseID,
			CreateDate:    createDate.Format(timestampLayout),
			State:         state,
			RecoveryModel: recovery,
		})
	}
	if err = rows.Err(); err != nil {
		return errorResult(execError(fmt.Errorf("%w: %v", errReadingResults, err))), nil
	}

	return textResult(listDatabasesResult{
		Success:       true,
		DatabaseCount: len(databases),
		Databases:     databases,
	}), nil
}
