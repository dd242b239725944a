package mcp

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

type functionInfo struct {
	Schema      string `json:"schema"`
	Name        string `json:"name"`
	ReturnType  string `json:"returnType"`
	Created     string `json:"created"`
	LastAltered string `json:"lastAltered"`
}

type listFunctionsResult struct {
	Success       bool           `json:"success"`
	FunctionCount int            `json:"functionCount"`
	Functions     []functionInfo `json:"functions"`
}

func (s *SQLServerMCP) toolListFunctions() (mcp.Tool, server.ToolHandlerFunc) {
	return mcp.Tool{
		Name:        "list_functions",
		Description: "Lists the user-defined functions in the database, optionally filtered by schema. Table-valued functions report returnType TABLE.",
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
	}, s.handleListFunctions
}

func (s *SQLServerMCP) handleListFunctions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
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

	query, binds := appendSchemaFilter(listFunctionsSQL, routineSchemaFilterSQL, schema, nil)
	query += routineOrderSQL

	rows, err := db.QueryContext(ctx, query, binds...)
	if err != nil {
		return errorResult(execError(err)), nil
	}
	defer rows.Close()

	functions := make([]functionInfo, 0)
	for rows.Next() {
		var (
			funcSchema string
			funcName   string
			dataType   sql.NullString
			created    time.Time
			altered    time.Time
		)
		if err = rows.Scan(&funcSchema, &funcName, &dataType, &created, &altered); err != nil {
			return errorResult(execError(fmt.Errorf("%w: %v", errReadingRow, err))), nil
		}
		functions = append(functions, functionInfo{
			Schema:      funcSchema,
			Name:        funcName,
			ReturnType:  functionReturnType(dataType),
			Created:     created.Format(timestampLayout),
			LastAltered: altered.Format(timestampLayout),
		})
	}
	if err = rows.Err(); err != nil {
		return errorResult(execError(fmt.Errorf("%w: %v", errReadingResults, err))), nil
	}

	return textResult(listFunctionsResult{
		Success:       true,
		FunctionCount: len(functions),
		Functions:     functions,
	}), nil
}

// functionReturnType maps the catalog DATA_TYPE to the reported return type.
// Table-valued functions have no declared scalar type in the catalog.
func functionReturnType(dataType sql.NullString) string {
	if dataType.Valid {
		return dataType.String
	}
	return "TABLE"
}
