package mcp

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/mark3labs/mcp-go/mcp"
)

// ScalarKind enumerates the value variants a result cell can hold.
type ScalarKind int

const (
	ScalarNull ScalarKind = iota
	ScalarText
	ScalarInteger
	ScalarFloat
	ScalarBool
	ScalarTimestamp
	ScalarBinary
)

// Scalar is one dynamically typed result cell. The zero value is SQL NULL.
type Scalar struct {
	kind ScalarKind
	text string
	i    int64
	f    float64
	b    bool
	ts   time.Time
	bin  []byte
}

func NullScalar() Scalar { return Scalar{kind: ScalarNull} }

func TextScalar(v string) Scalar { return Scalar{kind: ScalarText, text: v} }

func IntegerScalar(v int64) Scalar { return Scalar{kind: ScalarInteger, i: v} }

func FloatScalar(v float64) Scalar { return Scalar{kind: ScalarFloat, f: v} }

func BoolScalar(v bool) Scalar { return Scalar{kind: ScalarBool, b: v} }

func TimestampScalar(v time.Time) Scalar { return Scalar{kind: ScalarTimestamp, ts: v} }

func BinaryScalar(v []byte) Scalar { return Scalar{kind: ScalarBinary, bin: v} }

func (s Scalar) Kind() ScalarKind {
	return s.kind
}

func (s Scalar) MarshalJSON() ([]byte, error) {
	switch s.kind {
	case ScalarNull:
		return []byte("null"), nil
	case ScalarText:
		return json.Marshal(s.text)
	case ScalarInteger:
		return strconv.AppendInt(nil, s.i, 10), nil
	case ScalarFloat:
		return json.Marshal(s.f)
	case ScalarBool:
		return strconv.AppendBool(nil, s.b), nil
	case ScalarTimestamp:
		return json.Marshal(s.ts.Format(timestampLayout))
	case ScalarBinary:
		return json.Marshal(fmt.Sprintf("<binary data: %d bytes>", len(s.bin)))
	}
	return nil, fmt.Errorf("unknown scalar kind %d", s.kind)
}

// scanScalar converts a value produced by database/sql into a Scalar. Byte
// slices that hold valid UTF-8 are reported as text; the rest stay binary.
func scanScalar(v interface{}) Scalar {
	switch v := v.(type) {
	case nil:
		return NullScalar()
	case string:
		return TextScalar(v)
	case int64:
		return IntegerScalar(v)
	case float64:
		return FloatScalar(v)
	case bool:
		return BoolScalar(v)
	case time.Time:
		return TimestampScalar(v)
	case []byte:
		if utf8.Valid(v) {
			return TextScalar(string(v))
		}
		// Copy: the driver reuses the buffer between rows.
		return BinaryScalar(append([]byte(nil), v...))
	default:
		return TextScalar(fmt.Sprintf("%v", v))
	}
}

// Field is one named cell of a result row.
type Field struct {
	Name  string
	Value Scalar
}

// Row is an ordered list of fields, preserving the result-set column order.
type Row []Field

// MarshalJSON renders the row as a JSON object with keys in field order.
func (r Row) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range r {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(f.Name)
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		buf.WriteByte(':')
		value, err := f.Value.MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// readRow scans the current row into an ordered Row.
func readRow(rows *sql.Rows, columns []string) (Row, error) {
	values := make([]interface{}, len(columns))
	valuePtrs := make([]interface{}, len(columns))
	for i := range values {
		valuePtrs[i] = &values[i]
	}

	if err := rows.Scan(valuePtrs...); err != nil {
		return nil, err
	}

	row := make(Row, len(columns))
	for i, col := range columns {
		row[i] = Field{Name: col, Value: scanScalar(values[i])}
	}
	return row, nil
}

type errorEnvelope struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Type    string `json:"type"`
}

// textResult serializes a success payload as the tool's text content.
func textResult(payload interface{}) *mcp.CallToolResult {
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return errorResult(wrapError(KindExecutionFailed, fmt.Errorf("%w: %v", errSerializingJSON, err)))
	}
	return mcp.NewToolResultText(string(data))
}

// errorResult serializes a failure into the error envelope. Callers detect
// failure by the success field, never by transport-level status.
func errorResult(err error) *mcp.CallToolResult {
	var terr *ToolError
	if !errors.As(err, &terr) {
		terr = wrapError(KindExecutionFailed, err)
	}

	data, merr := json.MarshalIndent(errorEnvelope{
		Success: false,
		Error:   terr.Message,
		Type:    string(terr.Kind),
	}, "", "  ")
	if merr != nil {
		return mcp.NewToolResultError(terr.Message)
	}
	return mcp.NewToolResultText(string(data))
}
