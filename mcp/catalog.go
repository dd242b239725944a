package mcp

// Catalog queries for SQL Server, built on INFORMATION_SCHEMA plus the sys
// views. Placeholders use the @pN ordinal form understood by go-mssqldb.
//
// Optional filters are fixed clause fragments appended to the base query;
// the filter value itself is always bound as a parameter, never interpolated
// into the SQL text.
const (
	listTablesSQL = `
		SELECT
			TABLE_SCHEMA,
			TABLE_NAME,
			TABLE_TYPE
		FROM INFORMATION_SCHEMA.TABLES
		WHERE TABLE_TYPE = 'BASE TABLE'`
	tableSchemaFilterSQL = " AND TABLE_SCHEMA = @p1"
	tableOrderSQL        = " ORDER BY TABLE_SCHEMA, TABLE_NAME"

	describeTableSQL = `
		SELECT
			c.COLUMN_NAME,
			c.DATA_TYPE,
			c.CHARACTER_MAXIMUM_LENGTH,
			c.NUMERIC_PRECISION,
			c.NUMERIC_SCALE,
			c.IS_NULLABLE,
			c.COLUMN_DEFAULT,
			CASE WHEN pk.COLUMN_NAME IS NOT NULL THEN 1 ELSE 0 END AS IS_PRIMARY_KEY
		FROM INFORMATION_SCHEMA.COLUMNS c
		LEFT JOIN (
			SELECT ku.TABLE_SCHEMA, ku.TABLE_NAME, ku.COLUMN_NAME
			FROM INFORMATION_SCHEMA.TABLE_CONSTRAINTS tc
			JOIN INFORMATION_SCHEMA.KEY_COLUMN_USAGE ku
				ON tc.CONSTRAINT_TYPE = 'PRIMARY KEY'
				AND tc.CONSTRAINT_NAME = ku.CONSTRAINT_NAME
				AND tc.TABLE_SCHEMA = ku.TABLE_SCHEMA
				AND tc.TABLE_NAME = ku.TABLE_NAME
		) pk ON c.TABLE_SCHEMA = pk.TABLE_SCHEMA
			AND c.TABLE_NAME = pk.TABLE_NAME
			AND c.COLUMN_NAME = pk.COLUMN_NAME
		WHERE c.TABLE_SCHEMA = @p1 AND c.TABLE_NAME = @p2
		ORDER BY c.ORDINAL_POSITION`

	listDatabasesSQL = `
		SELECT
			name,
			database_id,
			create_date,
			state_desc,
			recovery_model_desc
		FROM sys.databases
		WHERE name NOT IN ('master', 'tempdb', 'model', 'msdb')
		ORDER BY name`

	listProceduresSQL = `
		SELECT
			ROUTINE_SCHEMA,
			ROUTINE_NAME,
			CREATED,
			LAST_ALTERED
		FROM INFORMATION_SCHEMA.ROUTINES
		WHERE ROUTINE_TYPE = 'PROCEDURE'`

	listFunctionsSQL = `
		SELECT
			ROUTINE_SCHEMA,
			ROUTINE_NAME,
			DATA_TYPE,
			CREATED,
			LAST_ALTERED
		FROM INFORMATION_SCHEMA.ROUTINES
		WHERE ROUTINE_TYPE = 'FUNCTION'`

	routineSchemaFilterSQL = " AND ROUTINE_SCHEMA = @p1"
	routineOrderSQL        = " ORDER BY ROUTINE_SCHEMA, ROUTINE_NAME"

	routineDefinitionSQL = `
		SELECT
			r.ROUTINE_SCHEMA,
			r.ROUTINE_NAME,
			r.ROUTINE_TYPE,
			r.DATA_TYPE,
			r.CREATED,
			r.LAST_ALTERED,
			m.definition
		FROM INFORMATION_SCHEMA.ROUTINES r
		INNER JOIN sys.sql_modules m
			ON m.object_id = OBJECT_ID(QUOTENAME(r.ROUTINE_SCHEMA) + '.' + QUOTENAME(r.ROUTINE_NAME))
		WHERE r.ROUTINE_SCHEMA = @p1 AND r.ROUTINE_NAME = @p2`

	listViewsSQL = `
		SELECT
			s.name AS view_schema,
			v.name AS view_name,
			v.create_date,
			v.modify_date
		FROM sys.views v
		INNER JOIN sys.schemas s ON v.schema_id = s.schema_id
		WHERE v.is_ms_shipped = 0`
	viewSchemaFilterSQL = " AND s.name = @p1"
	viewOrderSQL        = " ORDER BY s.name, v.name"

	viewDefinitionSQL = `
		SELECT m.definition
		FROM sys.sql_modules m
		INNER JOIN sys.views v ON m.object_id = v.object_id
		INNER JOIN sys.schemas s ON v.schema_id = s.schema_id
		WHERE s.name = @p1 AND v.name = @p2`
)

// appendSchemaFilter adds the optional schema clause to a catalog query.
// The clause text is one of the fixed fragments above; the schema value is
// always bound, so it can never reach the SQL text.
func appendSchemaFilter(query, filterSQL, schema string, args []interface{}) (string, []interface{}) {
	if schema == "" {
		return query, args
	}
	return query + filterSQL, append(args, schema)
}
