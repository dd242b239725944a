// Package cmd wires the command-line interface. The bare command serves MCP
// over stdio, which is how MCP hosts launch the binary; the remaining
// subcommands are operator utilities and are free to write to stdout.
package cmd

import (
	"fmt"
	"log"
	"os"

	"mssql-mcp/mcp"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "mssql-mcp",
	Short: "MCP server exposing SQL Server administrative tools",
	Long: `mssql-mcp is an MCP (Model Context Protocol) server that exposes SQL Server
administrative operations as tools: run queries, list tables, databases,
stored procedures, functions and views, describe tables, and fetch routine
definitions. Every tool receives its own connection string and opens a fresh
connection scoped to the one call.

Run without arguments to serve MCP on stdio.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := mcp.LoadConfig()

		// stdout carries the protocol, so logs go to stderr or a file.
		if cfg.LogFile != "" {
			f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
			if err != nil {
				return fmt.Errorf("opening log file: %w", err)
			}
			defer f.Close()
			log.SetOutput(f)
		}

		log.Printf("mssql-mcp %s serving on stdio", Version)
		return mcp.NewServer(cfg, Version).Start()
	},
}

// Execute runs the CLI and exits non-zero on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
