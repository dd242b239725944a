package mcp

func (s *SQLServerMCP) registerTools() {
	// Query execution
	s.server.AddTool(s.toolQuery())
	s.server.AddTool(s.toolExecuteNonQuery())

	// Tables
	s.server.AddTool(s.toolListTables())
	s.server.AddTool(s.toolDescribeTable())

	// Databases
	s.server.AddTool(s.toolListDatabases())

	// Routines
	s.server.AddTool(s.toolListStoredProcedures())
	s.server.AddTool(s.toolListFunctions())
	s.server.AddTool(s.toolGetRoutineDefinition())

	// Views
	s.server.AddTool(s.toolListViews())
	s.server.AddTool(s.toolGetViewDefinition())
}
