package mcp

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

type viewInfo struct {
	Schema      string `json:"schema"`
	Name        string `json:"name"`
	Created     string `json:"created"`
	LastAltered string `json:"lastAltered"`
}

type listViewsResult struct {
	Success   bool       `json:"success"`
	ViewCount int        `json:"viewCount"`
	Views     []viewInfo `json:"views"`
}

type viewDefinitionResult struct {
	Success    bool   `json:"success"`
	Schema     string `json:"schema"`
	Name       string `json:"name"`
	Definition string `json:"definition"`
}

func (s *SQLServerMCP) toolListViews() (mcp.Tool, server.ToolHandlerFunc) {
	return mcp.Tool{
		Name:        "list_views",
		Description: "Lists the views in the database, optionally filtered by schema.",
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
	}, s.handleListViews
}

func (s *SQLServerMCP) handleListViews(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
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

	query, binds := appendSchemaFilter(listViewsSQL, viewSchemaFilterSQL, schema, nil)
	query += viewOrderSQL

	rows, err := db.QueryContext(ctx, query, binds...)
	if err != nil {
		return errorResult(execError(err)), nil
	}
	defer rows.Close()

	views := make([]viewInfo, 0)
	for rows.Next() {
		var (
			viewSchema string
			viewName   string
			created    time.Time
			altered    time.Time
		)
		if err = rows.Scan(&viewSchema, &viewName, &created, &altered); err != nil {
			return errorResult(execError(fmt.Errorf("%w: %v", errReadingRow, err))), nil
		}
		views = append(views, viewInfo{
			Schema:      viewSchema,
			Name:        viewName,
			Created:     created.Format(timestampLayout),
			LastAltered: altered.Format(timestampLayout),
		})
	}
	if err = rows.Err(); err != nil {
		return errorResult(execError(fmt.Errorf("%w: %v", errReadingResults, err))), nil
	}

	return textResult(listViewsResult{
		Success:   true,
		ViewCount: len(views),
		Views:     views,
	}), nil
}

func (s *SQLServerMCP) toolGetViewDefinition() (mcp.Tool, server.ToolHandlerFunc) {
	return mcp.Tool{
		Name:        "get_view_definition",
		Description: "Fetches the T-SQL definition of a view.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"connectionString": map[string]interface{}{
					"type":        "string",
					"description": "SQL Server connection string",
				},
				"schema": map[string]interface{}{
					"type":        "string",
					"description": "Schema the view belongs to",
				},
				"viewName": map[string]interface{}{
					"type":        "string",
					"description": "View name",
				},
			},
			Required: []string{"connectionString", "schema", "viewName"},
		},
	}, s.handleGetViewDefinition
}

func (s *SQLServerMCP) handleGetViewDefinition(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, terr := requestArgs(request)
	if terr != nil {
		return errorResult(terr), nil
	}

	connString, terr := connectionStringArg(args)
	if terr != nil {
		return errorResult(terr), nil
	}
	schema, terr := requiredStringArg(args, "schema")
	if terr != nil {
		return errorResult(terr), nil
	}
	viewName, terr := requiredStringArg(args, "viewName")
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

	var definition sql.NullString
	err = db.QueryRowContext(ctx, viewDefinitionSQL, schema, viewName).Scan(&definition)
	if errors.Is(err, sql.ErrNoRows) {
		return errorResult(newError(KindNotFound, "View '%s.%s' not found", schema, viewName)), nil
	}
	if err != nil {
		return errorResult(execError(err)), nil
	}

	return textResult(viewDefinitionResult{
		Success:    true,
		Schema:     schema,
		Name:       viewName,
		Definition: definition.String,
	}), nil
}
