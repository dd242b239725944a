package mcp

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

type routineDefinitionResult struct {
	Success     bool    `json:"success"`
	Schema      string  `json:"schema"`
	Name        string  `json:"name"`
	Type        string  `json:"type"`
	ReturnType  *string `json:"returnType,omitempty"`
	Created     string  `json:"created"`
	LastAltered string  `json:"lastAltered"`
	Definition  string  `json:"definition"`
}

func (s *SQLServerMCP) toolGetRoutineDefinition() (mcp.Tool, server.ToolHandlerFunc) {
	return mcp.Tool{
		Name:        "get_routine_definition",
		Description: "Fetches the T-SQL source of a stored procedure or function.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"connectionString": map[string]interface{}{
					"type":        "string",
					"description": "SQL Server connection string",
				},
				"schema": map[string]interface{}{
					"type":        "string",
					"description": "Schema the routine belongs to",
				},
				"routineName": map[string]interface{}{
					"type":        "string",
					"description": "Procedure or function name",
				},
			},
			Required: []string{"connectionString", "schema", "routineName"},
		},
	}, s.handleGetRoutineDefinition
}

func (s *SQLServerMCP) handleGetRoutineDefinition(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
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
	routineName, terr := requiredStringArg(args, "routineName")
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

	var (
		routineSchema string
		name          string
		routineType   string
		dataType      sql.NullString
		created       time.Time
		altered       time.Time
		definition    sql.NullString
	)

	// QueryRow consumes exactly one row even if the join yields more.
	err = db.QueryRowContext(ctx, routineDefinitionSQL, schema, routineName).
		Scan(&routineSchema, &name, &routineType, &dataType, &created, &altered, &definition)
	if errors.Is(err, sql.ErrNoRows) {
		return errorResult(newError(KindNotFound, "Routine '%s.%s' not found", schema, routineName)), nil
	}
	if err != nil {
		return errorResult(execError(err)), nil
	}

	out := routineDefinitionResult{
		Success:     true,
		Schema:      routineSchema,
		Name:        name,
		Type:        routineType,
		Created:     created.Format(timestampLayout),
		LastAltered: altered.Format(timestampLayout),
		// Encrypted modules carry a null definition; render it empty.
		Definition: definition.String,
	}
	if routineType == "FUNCTION" {
		returnType := functionReturnType(dataType)
		out.ReturnType = &returnType
	}

	return textResult(out), nil
}
