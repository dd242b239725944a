package mcp

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func routineRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"ROUTINE_SCHEMA", "ROUTINE_NAME", "ROUTINE_TYPE", "DATA_TYPE",
		"CREATED", "LAST_ALTERED", "definition",
	})
}

func TestHandleGetRoutineDefinition_Procedure(t *testing.T) {
	t.Parallel()

	s, mock := newTestServer(t)

	created := time.Date(2024, 3, 5, 16, 45, 0, 0, time.UTC)
	rows := routineRows().
		AddRow("dbo", "usp_close_period", "PROCEDURE", nil, created, created,
			"CREATE PROCEDURE dbo.usp_close_period AS BEGIN SET NOCOUNT ON END")
	mock.ExpectQuery(routineDefinitionSQL).WithArgs("dbo", "usp_close_period").WillReturnRows(rows)
	mock.ExpectClose()

	result, err := s.handleGetRoutineDefinition(context.Background(), newRequest("get_routine_definition", map[string]interface{}{
		"connectionString": testConnString,
		"schema":           "dbo",
		"routineName":      "usp_close_period",
	}))
	if err != nil {
		t.Fatalf("handleGetRoutineDefinition returned error: %v", err)
	}

	payload := requireSuccess(t, result)
	if payload["schema"] != "dbo" || payload["name"] != "usp_close_period" {
		t.Errorf("unexpected routine identity: %v %v", payload["schema"], payload["name"])
	}
	if payload["type"] != "PROCEDURE" {
		t.Errorf("expected type PROCEDURE, got %v", payload["type"])
	}
	// Procedures carry no return type at all, not a null one.
	if _, ok := payload["returnType"]; ok {
		t.Error("expected returnType to be omitted for a procedure")
	}
	if payload["created"] != "2024-03-05 16:45:00" {
		t.Errorf("unexpected created rendering: %v", payload["created"])
	}
	def, _ := payload["definition"].(string)
	if def == "" {
		t.Error("expected the routine definition to be returned")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestHandleGetRoutineDefinition_ScalarFunction(t *testing.T) {
	t.Parallel()

	s, mock := newTestServer(t)

	created := time.Date(2024, 3, 5, 16, 45, 0, 0, time.UTC)
	rows := routineRows().
		AddRow("sales", "fn_quarter", "FUNCTION", "int", created, created,
			"CREATE FUNCTION sales.fn_quarter(@d date) RETURNS int AS BEGIN RETURN DATEPART(quarter, @d) END")
	mock.ExpectQuery(routineDefinitionSQL).WithArgs("sales", "fn_quarter").WillReturnRows(rows)
	mock.ExpectClose()

	result, err := s.handleGetRoutineDefinition(context.Background(), newRequest("get_routine_definition", map[string]interface{}{
		"connectionString": testConnString,
		"schema":           "sales",
		"routineName":      "fn_quarter",
	}))
	if err != nil {
		t.Fatalf("handleGetRoutineDefinition returned error: %v", err)
	}

	payload := requireSuccess(t, result)
	if payload["type"] != "FUNCTION" {
		t.Errorf("expected type FUNCTION, got %v", payload["type"])
	}
	if payload["returnType"] != "int" {
		t.Errorf("expected returnType int, got %v", payload["returnType"])
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestHandleGetRoutineDefinition_TableValuedFunction(t *testing.T) {
	t.Parallel()

	s, mock := newTestServer(t)

	created := time.Date(2024, 3, 5, 16, 45, 0, 0, time.UTC)
	rows := routineRows().
		AddRow("dbo", "fn_orders_since", "FUNCTION", nil, created, created,
			"CREATE FUNCTION dbo.fn_orders_since(@d date) RETURNS TABLE AS RETURN SELECT 1 AS n")
	mock.ExpectQuery(routineDefinitionSQL).WithArgs("dbo", "fn_orders_since").WillReturnRows(rows)
	mock.ExpectClose()

	result, err := s.handleGetRoutineDefinition(context.Background(), newRequest("get_routine_definition", map[string]interface{}{
		"connectionString": testConnString,
		"schema":           "dbo",
		"routineName":      "fn_orders_since",
	}))
	if err != nil {
		t.Fatalf("handleGetRoutineDefinition returned error: %v", err)
	}

	payload := requireSuccess(t, result)
	if payload["returnType"] != "TABLE" {
		t.Errorf("expected returnType TABLE for a null data type, got %v", payload["returnType"])
	}
}

func TestHandleGetRoutineDefinition_NotFound(t *testing.T) {
	t.Parallel()

	s, mock := newTestServer(t)

	mock.ExpectQuery(routineDefinitionSQL).WithArgs("dbo", "usp_missing").WillReturnRows(routineRows())
	mock.ExpectClose()

	result, err := s.handleGetRoutineDefinition(context.Background(), newRequest("get_routine_definition", map[string]interface{}{
		"connectionString": testConnString,
		"schema":           "dbo",
		"routineName":      "usp_missing",
	}))
	if err != nil {
		t.Fatalf("handleGetRoutineDefinition returned error: %v", err)
	}

	payload := requireError(t, result, KindNotFound)
	if payload["error"] != "Routine 'dbo.usp_missing' not found" {
		t.Errorf("unexpected message: %v", payload["error"])
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestHandleGetRoutineDefinition_EncryptedModule(t *testing.T) {
	t.Parallel()

	s, mock := newTestServer(t)

	created := time.Date(2024, 3, 5, 16, 45, 0, 0, time.UTC)
	rows := routineRows().
		AddRow("dbo", "usp_secret", "PROCEDURE", nil, created, created, nil)
	mock.ExpectQuery(routineDefinitionSQL).WithArgs("dbo", "usp_secret").WillReturnRows(rows)
	mock.ExpectClose()

	result, err := s.handleGetRoutineDefinition(context.Background(), newRequest("get_routine_definition", map[string]interface{}{
		"connectionString": testConnString,
		"schema":           "dbo",
		"routineName":      "usp_secret",
	}))
	if err != nil {
		t.Fatalf("handleGetRoutineDefinition returned error: %v", err)
	}

	// WITH ENCRYPTION nulls the definition; it comes back empty, not absent.
	payload := requireSuccess(t, result)
	if def, ok := payload["definition"]; !ok || def != "" {
		t.Errorf("expected an empty definition, got %v", def)
	}
}

func TestHandleGetRoutineDefinition_MissingParams(t *testing.T) {
	t.Parallel()

	s, _ := newTestServer(t)

	result, err := s.handleGetRoutineDefinition(context.Background(), newRequest("get_routine_definition", map[string]interface{}{
		"connectionString": testConnString,
		"routineName":      "usp_close_period",
	}))
	if err != nil {
		t.Fatalf("handleGetRoutineDefinition returned error: %v", err)
	}

	payload := requireError(t, result, KindExecutionFailed)
	if payload["error"] != "schema is required" {
		t.Errorf("unexpected message: %v", payload["error"])
	}
}
