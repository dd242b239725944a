package main

import "mssql-mcp/cmd"

func main() {
	cmd.Execute()
}
