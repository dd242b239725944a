package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

type queryResult struct {
	Success   bool   `json:"success"`
	RowCount  int    `json:"rowCount"`
	Data      []Row  `json:"data"`
	Truncated bool   `json:"truncated"`
	Message   string `json:"message,omitempty"`
}

type nonQueryResult struct {
	Success      bool   `json:"success"`
	AffectedRows int64  `json:"affectedRows"`
	Message      string `json:"message"`
}

func (s *SQLServerMCP) toolQuery() (mcp.Tool, server.ToolHandlerFunc) {
	return mcp.Tool{
		Name:        "query",
		Description: "Executes a SQL query against SQL Server and returns the rows as JSON.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"connectionString": map[string]interface{}{
					"type":        "string",
					"description": "SQL Server connection string",
				},
				"query": map[string]interface{}{
					"type":        "string",
					"description": "SQL query to execute",
				},
				"maxRows": map[string]interface{}{
					"type":        "number",
					"description": "Maximum number of rows to return (1-1000, default: 100)",
				},
				"timeoutSeconds": map[string]interface{}{
					"type":        "number",
					"description": "Statement timeout in seconds (default: 30)",
				},
			},
			Required: []string{"connectionString", "query"},
		},
	}, s.handleQuery
}

func (s *SQLServerMCP) handleQuery(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, terr := requestArgs(request)
	if terr != nil {
		return errorResult(terr), nil
	}

	connString, terr := connectionStringArg(args)
	if terr != nil {
		return errorResult(terr), nil
	}
	query, terr := requiredStringArg(args, "query")
	if terr != nil {
		return errorResult(terr), nil
	}
	limit := rowLimit(args)

	ctx, cancel := context.WithTimeout(ctx, queryTimeout(args))
	defer cancel()

	db, err := s.open(ctx, s.cfg, connString)
	if err != nil {
		return errorResult(err), nil
	}
	defer db.Close()

	// The query text runs verbatim; the caller is trusted.
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return errorResult(execError(err)), nil
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return errorResult(execError(fmt.Errorf("%w: %v", errRetrievingColumns, err))), nil
	}

	data := make([]Row, 0, limit)
	truncated := false
	for rows.Next() {
		// One read past the limit detects further rows without keeping them.
		if len(data) >= limit {
			truncated = true
			break
		}
		row, err := readRow(rows, columns)
		if err != nil {
			return errorResult(execError(fmt.Errorf("%w: %v", errReadingRow, err))), nil
		}
		data = append(data, row)
	}
	if err = rows.Err(); err != nil {
		return errorResult(execError(fmt.Errorf("%w: %v", errReadingResults, err))), nil
	}

	out := queryResult{
		Success:   true,
		RowCount:  len(data),
		Data:      data,
		Truncated: truncated,
	}
	if truncated {
		out.Message = fmt.Sprintf("Result truncated to %d rows. Narrow the query with a WHERE clause or TOP to see the rest.", limit)
	}
	return textResult(out), nil
}

func (s *SQLServerMCP) toolExecuteNonQuery() (mcp.Tool, server.ToolHandlerFunc) {
	return mcp.Tool{
		Name:        "execute_non_query",
		Description: "Executes a SQL statement that returns no rows (INSERT, UPDATE, DELETE, DDL) and reports the affected row count.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"connectionString": map[string]interface{}{
					"type":        "string",
					"description": "SQL Server connection string",
				},
				"command": map[string]interface{}{
					"type":        "string",
					"description": "SQL statement to execute",
				},
				"timeoutSeconds": map[string]interface{}{
					"type":        "number",
					"description": "Statement timeout in seconds (default: 30)",
				},
			},
			Required: []string{"connectionString", "command"},
		},
	}, s.handleExecuteNonQuery
}

func (s *SQLServerMCP) handleExecuteNonQuery(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, terr := requestArgs(request)
	if terr != nil {
		return errorResult(terr), nil
	}

	connString, terr := connectionStringArg(args)
	if terr != nil {
		return errorResult(terr), nil
	}
	command, terr := requiredStringArg(args, "command")
	if terr != nil {
		return errorResult(terr), nil
	}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout(args))
	defer cancel()

	db, err := s.open(ctx, s.cfg, connString)
	if err != nil {
		return errorResult(err), nil
	}
	defer db.Close()

	res, err := db.ExecContext(ctx, command)
	if err != nil {
		return errorResult(execError(err)), nil
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return errorResult(execError(err)), nil
	}

	return textResult(nonQueryResult{
		Success:      true,
		AffectedRows: affected,
		Message:      fmt.Sprintf("Command executed successfully. %d row(s) affected.", affected),
	}), nil
}
