package mcp

import (
	"os"
	"strconv"
)

// Environment keys.
const (
	envTrustServerCert = "MSSQL_MCP_TRUST_SERVER_CERT"
	envLogFile         = "MSSQL_MCP_LOG_FILE"
)

// Config carries process-level settings. Connection strings are supplied per
// tool call and are never configured here.
type Config struct {
	// MSSQL_MCP_TRUST_SERVER_CERT (default "false"). When true, every
	// connection string gets trustservercertificate=true appended, which
	// disables server certificate validation. Only for servers with
	// self-signed certificates; never enabled implicitly.
	TrustServerCertificate bool

	// MSSQL_MCP_LOG_FILE (default "", meaning stderr).
	LogFile string
}

// LoadConfig reads settings from the environment.
func LoadConfig() Config {
	return Config{
		TrustServerCertificate: envBool(envTrustServerCert, false),
		LogFile:                os.Getenv(envLogFile),
	}
}

func envBool(key string, fallback bool) bool {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
