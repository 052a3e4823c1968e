// Package main provides the CLI entry point for the airline incidents tool.
// It manages tables of airline safety statistics in a SQLite database:
// create a table, load records from a file, query, and drop the table.
package main

import (
	"os"

	"github.com/fatih/color"

	"airline-incidents/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		errorColor := color.New(color.FgRed, color.Bold)
		_, _ = errorColor.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
