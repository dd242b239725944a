package mcp

import (
	"time"

	"github.com/mark3labs/mcp-go/mcp"
)

// requestArgs extracts the argument map from a tool call.
func requestArgs(request mcp.CallToolRequest) (map[string]interface{}, *ToolError) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, wrapError(KindExecutionFailed, errInvalidArguments)
	}
	return args, nil
}

// connectionStringArg returns the mandatory connection string. A missing or
// empty value counts as a connection failure.
func connectionStringArg(args map[string]interface{}) (string, *ToolError) {
	connString, ok := getStringArg(args, "connectionString")
	if !ok || connString == "" {
		return "", wrapError(KindConnectionFailed, errConnectionStringRequired)
	}
	return connString, nil
}

func requiredStringArg(args map[string]interface{}, key string) (string, *ToolError) {
	val, ok := getStringArg(args, key)
	if !ok || val == "" {
		return "", newError(KindExecutionFailed, "%s is required", key)
	}
	return val, nil
}

func optionalStringArg(args map[string]interface{}, key string) string {
	val, _ := getStringArg(args, key)
	return val
}

// Helper for converting string arguments safely
func getStringArg(args map[string]interface{}, key string) (string, bool) {
	val, ok := args[key].(string)
	return val, ok
}

// Helper for converting integer arguments safely. JSON numbers arrive as
// float64; plain ints are accepted for callers constructing requests in Go.
func getIntArg(args map[string]interface{}, key string, defaultVal int) int {
	switch val := args[key].(type) {
	case float64:
		return int(val)
	case int:
		return val
	}
	return defaultVal
}

// rowLimit clamps maxRows into [MinMaxRows, MaxMaxRows], defaulting to
// DefaultMaxRows when absent.
func rowLimit(args map[string]interface{}) int {
	limit := getIntArg(args, "maxRows", DefaultMaxRows)
	if limit < MinMaxRows {
		limit = MinMaxRows
	}
	if limit > MaxMaxRows {
		limit = MaxMaxRows
	}
	return limit
}

// queryTimeout returns the caller-supplied statement timeout. Absent or
// non-positive values fall back to the default.
func queryTimeout(args map[string]interface{}) time.Duration {
	secs := getIntArg(args, "timeoutSeconds", DefaultTimeoutSeconds)
	if secs <= 0 {
		secs = DefaultTimeoutSeconds
	}
	return time.Duration(secs) * time.Second
}
