package mcp

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestHandleListStoredProcedures(t *testing.T) {
	t.Parallel()

	s, mock := newTestServer(t)

	created := time.Date(2024, 1, 15, 9, 30, 0, 0, time.UTC)
	altered := time.Date(2024, 6, 1, 14, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"ROUTINE_SCHEMA", "ROUTINE_NAME", "CREATED", "LAST_ALTERED"}).
		AddRow("dbo", "usp_close_period", created, altered).
		AddRow("sales", "usp_rebuild_totals", created, altered)
	mock.ExpectQuery(listProceduresSQL + routineOrderSQL).WithArgs().WillReturnRows(rows)
	mock.ExpectClose()

	result, err := s.handleListStoredProcedures(context.Background(), newRequest("list_stored_procedures", map[string]interface{}{
		"connectionString": testConnString,
	}))
	if err != nil {
		t.Fatalf("handleListStoredProcedures returned error: %v", err)
	}

	payload := requireSuccess(t, result)
	if payload["procedureCount"] != float64(2) {
		t.Errorf("expected procedureCount 2, got %v", payload["procedureCount"])
	}
	procedures, ok := payload["procedures"].([]interface{})
	if !ok || len(procedures) != 2 {
		t.Fatalf("expected 2 procedures, got %v", payload["procedures"])
	}
	first, ok := procedures[0].(map[string]interface{})
	if !ok {
		t.Fatalf("expected a procedure object, got %T", procedures[0])
	}
	if first["schema"] != "dbo" || first["name"] != "usp_close_period" {
		t.Errorf("unexpected first procedure: %v", first)
	}
	if first["created"] != "2024-01-15 09:30:00" {
		t.Errorf("unexpected created rendering: %v", first["created"])
	}
	if first["lastAltered"] != "2024-06-01 14:00:00" {
		t.Errorf("unexpected lastAltered rendering: %v", first["lastAltered"])
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestHandleListStoredProcedures_SchemaFilter(t *testing.T) {
	t.Parallel()

	s, mock := newTestServer(t)

	created := time.Date(2024, 1, 15, 9, 30, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"ROUTINE_SCHEMA", "ROUTINE_NAME", "CREATED", "LAST_ALTERED"}).
		AddRow("sales", "usp_rebuild_totals", created, created)
	mock.ExpectQuery(listProceduresSQL + routineSchemaFilterSQL + routineOrderSQL).WithArgs("sales").WillReturnRows(rows)
	mock.ExpectClose()

	result, err := s.handleListStoredProcedures(context.Background(), newRequest("list_stored_procedures", map[string]interface{}{
		"connectionString": testConnString,
		"schema":           "sales",
	}))
	if err != nil {
		t.Fatalf("handleListStoredProcedures returned error: %v", err)
	}

	payload := requireSuccess(t, result)
	if payload["procedureCount"] != float64(1) {
		t.Errorf("expected procedureCount 1, got %v", payload["procedureCount"])
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
