// Package main provides the sqltint CLI.
package main

import (
	"os"

	"github.com/sqltint/sqltint/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
