package mcp

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

type tableInfo struct {
	Schema string `json:"schema"`
	Name   string `json:"name"`
	Type   string `json:"type"`
}

type listTablesResult struct {
	Success    bool        `json:"success"`
	TableCount int         `json:"tableCount"`
	Tables     []tableInfo `json:"tables"`
}

type columnInfo struct {
	Name         string  `json:"name"`
	DataType     string  `json:"dataType"`
	Nullable     bool    `json:"nullable"`
	DefaultValue *string `json:"defaultValue"`
	IsPrimaryKey bool    `json:"isPrimaryKey"`
}

type describeTableResult struct {
	Success     bool         `json:"success"`
	Schema      string       `json:"schema"`
	TableName   string       `json:"tableName"`
	ColumnCount int          `json:"columnCount"`
	Columns     []columnInfo `json:"columns"`
}

func (s *SQLServerMCP) toolListTables() (mcp.Tool, server.ToolHandlerFunc) {
	return mcp.Tool{
		Name:        "list_tables",
		Description: "Lists the base tables in the database, optionally filtered by schema.",
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
	}, s.handleListTables
}

func (s *SQLServerMCP) handleListTables(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
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

	query, binds := appendSchemaFilter(listTablesSQL, tableSchemaFilterSQL, schema, nil)
	query += tableOrderSQL

	rows, err := db.QueryContext(ctx, query, binds...)
	if err != nil {
		return errorResult(execError(err)), nil
	}
	defer rows.Close()

	tables := make([]tableInfo, 0)
	for rows.Next() {
		var t tableInfo
		if err = rows.Scan(&t.Schema, &t.Name, &t.Type); err != nil {
			return errorResult(execError(fmt.Errorf("%w: %v", errReadingRow, err))), nil
		}
		tables = append(tables, t)
	}
	if err = rows.Err(); err != nil {
		return errorResult(execError(fmt.Errorf("%w: %v", errReadingResults, err))), nil
	}

	return textResult(listTablesResult{
		Success:    true,
		TableCount: len(tables),
		Tables:     tables,
	}), nil
}

func (s *SQLServerMCP) toolDescribeTable() (mcp.Tool, server.ToolHandlerFunc) {
	return mcp.Tool{
		Name:        "describe_table",
		Description: "Describes the columns of a table: data types, nullability, defaults and primary key membership.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"connectionString": map[string]interface{}{
					"type":        "string",
					"description": "SQL Server connection string",
				},
				"schema": map[string]interface{}{
					"type":        "string",
					"description": "Schema the table belongs to",
				},
				"tableName": map[string]interface{}{
					"type":        "string",
					"description": "Table name",
				},
			},
			Required: []string{"connectionString", "schema", "tableName"},
		},
	}, s.handleDescribeTable
}

func (s *SQLServerMCP) handleDescribeTable(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
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
	tableName, terr := requiredStringArg(args, "tableName")
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

	rows, err := db.QueryContext(ctx, describeTableSQL, schema, tableName)
	if err != nil {
		return errorResult(execError(err)), nil
	}
	defer rows.Close()

	columns := make([]columnInfo, 0)
	for rows.Next() {
		var (
			name       string
			dataType   string
			charLen    sql.NullInt64
			precision  sql.NullInt64
			scale      sql.NullInt64
			isNullable string
			colDefault sql.NullString
			isPK       int
		)
		if err = rows.Scan(&name, &dataType, &charLen, &precision, &scale, &isNullable, &colDefault, &isPK); err != nil {
			return errorResult(execError(fmt.Errorf("%w: %v", errReadingRow, err))), nil
		}

		col := columnInfo{
			Name:         name,
			DataType:     synthesizeDataType(dataType, charLen, precision, scale),
			Nullable:     isNullable == "YES",
			IsPrimaryKey: isPK == 1,
		}
		if colDefault.Valid {
			col.DefaultValue = &colDefault.String
		}
		columns = append(columns, col)
	}
	if err = rows.Err(); err != nil {
		return errorResult(execError(fmt.Errorf("%w: %v", errReadingResults, err))), nil
	}

	return textResult(describeTableResult{
		Success:     true,
		Schema:      schema,
		TableName:   tableName,
		ColumnCount: len(columns),
		Columns:     columns,
	}), nil
}

// synthesizeDataType renders the catalog type with its length or precision
// qualifier. Character types with a positive declared length get (length);
// numeric types with both precision and scale get (precision,scale); every
// other type, including varchar(max) whose catalog length is -1, stays bare.
func synthesizeDataType(dataType string, charLen, precision, scale sql.NullInt64) string {
	if charLen.Valid && charLen.Int64 > 0 {
		return fmt.Sprintf("%s(%d)", dataType, charLen.Int64)
	}
	if precision.Valid && scale.Valid {
		return fmt.Sprintf("%s(%d,%d)", dataType, precision.Int64, scale.Int64)
	}
	return dataType
}
