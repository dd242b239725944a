package mcp

import (
	"context"
	"errors"
	"fmt"
)

// ErrorKind is the closed set of failure categories a tool can report.
type ErrorKind string

const (
	KindConnectionFailed ErrorKind = "ConnectionFailed"
	KindExecutionFailed  ErrorKind = "ExecutionFailed"
	KindNotFound         ErrorKind = "NotFound"
	KindTimeout          ErrorKind = "Timeout"
)

// ToolError pairs a failure category with the message reported to the
// caller. Handlers never let a failure escape as a raised error; every
// ToolError ends up serialized into the error envelope.
type ToolError struct {
	Kind    ErrorKind
	Message string
}

func (e *ToolError) Error() string {
	return e.Message
}

// Connection errors
var (
	errConnectionFailed         = errors.New("failed to connect to database")
	errConnectionStringRequired = errors.New("connectionString is required")
)

// Argument errors
var (
	errInvalidArguments = errors.New("invalid arguments")
)

// Query errors
var (
	errStatementTimedOut = errors.New("statement timed out")
	errReadingRow        = errors.New("error reading row")
	errReadingResults    = errors.New("error reading results")
	errRetrievingColumns = errors.New("error retrieving columns")
)

// Serialization errors
var (
	errSerializingJSON = errors.New("error serializing response")
)

func newError(kind ErrorKind, format string, a ...interface{}) *ToolError {
	return &ToolError{Kind: kind, Message: fmt.Sprintf(format, a...)}
}

func wrapError(kind ErrorKind, err error) *ToolError {
	return &ToolError{Kind: kind, Message: err.Error()}
}

// connectError categorizes any failure while opening or pinging a
// connection, including unreachable hosts and rejected credentials.
func connectError(err error) *ToolError {
	return wrapError(KindConnectionFailed, fmt.Errorf("%w: %v", errConnectionFailed, err))
}

// execError categorizes failures raised while executing a statement or
// reading its results. Deadline expiry maps to the Timeout kind; everything
// else is an execution failure carrying the driver's message.
func execError(err error) *ToolError {
	if errors.Is(err, context.DeadlineExceeded) {
		return wrapError(KindTimeout, fmt.Errorf("%w: %v", errStatementTimedOut, err))
	}
	return wrapError(KindExecutionFailed, err)
}
