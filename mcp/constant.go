package mcp

import "time"

const serverName = "mssql-mcp"

// driverName is the database/sql driver registered by go-mssqldb.
const driverName = "sqlserver"

// Row limit bounds for the query tool.
const (
	DefaultMaxRows = 100
	MinMaxRows     = 1
	MaxMaxRows     = 1000
)

// DefaultTimeoutSeconds bounds statement execution when the caller supplies
// no timeout of its own.
const DefaultTimeoutSeconds = 30

// defaultQueryTimeout bounds the catalog reads, which take no timeout
// parameter of their own.
const defaultQueryTimeout = DefaultTimeoutSeconds * time.Second

// Database connection pool configuration constants
const (
	dbMaxOpenConns    = 25
	dbMaxIdleConns    = 5
	dbConnMaxLifetime = 5 * time.Minute
	dbPingTimeout     = 5 * time.Second
)

// timestampLayout is how every datetime value is rendered in tool output.
const timestampLayout = "2006-01-02 15:04:05"
