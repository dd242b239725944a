package mcp

import (
	"context"
	"database/sql"
	"strings"

	_ "github.com/denisenkom/go-mssqldb" // registers the sqlserver driver
)

// Open opens a database handle for one tool invocation and verifies it with
// a bounded ping. The connection string is passed through to the driver
// unmodified; the only transformation ever applied is the explicit
// trust-server-certificate opt-in from the configuration.
//
// The caller owns the handle and must close it on every exit path.
func Open(ctx context.Context, cfg Config, connString string) (*sql.DB, error) {
	if cfg.TrustServerCertificate {
		connString = applyTrustServerCert(connString)
	}

	db, err := sql.Open(driverName, connString)
	if err != nil {
		return nil, connectError(err)
	}

	db.SetMaxOpenConns(dbMaxOpenConns)
	db.SetMaxIdleConns(dbMaxIdleConns)
	db.SetConnMaxLifetime(dbConnMaxLifetime)

	pingCtx, cancel := context.WithTimeout(ctx, dbPingTimeout)
	defer cancel()

	if err = db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, connectError(err)
	}

	return db, nil
}

// applyTrustServerCert appends trustservercertificate=true in whichever
// syntax the connection string already uses, without otherwise parsing it.
// This disables server certificate validation and exists for servers with
// self-signed certificates; it only runs when the operator opted in.
func applyTrustServerCert(connString string) string {
	if strings.Contains(connString, "://") {
		if strings.Contains(connString, "?") {
			return connString + "&trustservercertificate=true"
		}
		return connString + "?trustservercertificate=true"
	}
	return strings.TrimRight(connString, ";") + ";trustservercertificate=true"
}
