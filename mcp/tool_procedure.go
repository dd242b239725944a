package mcp

import (
	"context"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

type procedureInfo struct {
	Schema      string `json:"schema"`
	Name        string `json:"name"`
	Created     string `json:"created"`
	LastAltered string `json:"lastAltered"`
}

type listProceduresResult struct {
	Success        bool            `json:"success"`
	ProcedureCount int             `json:"procedureCount"`
	Procedures     []procedureInfo `json:"procedures"`
}

func (s *SQLServerMCP) toolListStoredProcedures() (mcp.Tool, server.ToolHandlerFunc) {
	return mcp.Tool{
		Name:        "list_stored_procedures",
		Description: "Lists the stored procedures in the database, optionally filtered by schema.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"connectionString": map[string]interface{}{
					"type":        "string",
					"description": "SQL Server connection string",
				},
				"schema": map[string]interface{}{
					"type":        "string",
					"description": "Schema name to filter by (optional)",
				},
			},
			Required: []string{"connectionString"},
		},
	}, s.handleListStoredProcedures
}

func (s *SQLServerMCP) handleListStoredProcedures(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, terr := requestArgs(request)
	if terr != nil {
		return errorResult(terr), nil
	}

	connString, terr := connectionStringArg(args)
	if terr != nil {
		return errorResult(terr), nil
	}
	schema := optionalStringArg(args, "schema")

	ctx, cancel := context.WithTimeout(ctx, defaultQueryTimeout)
	defer cancel()

	db, err := s.open(ctx, s.cfg, connString)
	if err != nil {
		return errorResult(err), nil
	}
	defer db.Close()

	query, binds := appendSchemaFilter(listProceduresSQL, routineSchemaFilterSQL, schema, nil)
	query += routineOrderSQL

	rows, err := db.QueryContext(ctx, query, binds...)
	if err != nil {
		return errorResult(execError(err)), nil
	}
	defer rows.Close()

	procedures := make([]procedureInfo, 0)
	for rows.Next() {
		var (
			procSchema string
			procName   string
			created    time.Time
			altered    time.Time
		)
		if err = rows.Scan(&procSchema, &procName, &created, &altered); err != nil {
			return errorResult(execError(fmt.Errorf("%w: %v", errReadingRow, err))), nil
		}
		procedures = append(procedures, procedureInfo{
			Schema:      procSchema,
			Name:        procName,
			Created:     created.Format(timestampLayout),
			LastAltered: altered.Format(timestampLayout),
		})
	}
	if err = rows.Err(); err != nil {
		return errorResult(execError(fmt.Errorf("%w: %v", errReadingResults, err))), nil
	}

	return textResult(listProceduresResult{
		Success:        true,
		ProcedureCount: len(procedures),
		Procedures:     procedures,
	}), nil
}
