package commands

import (
	"github.com/spf13/cobra"
)

// NewRootCommand builds the base command with every subcommand attached
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "airline-incidents",
		Short: "Manage airline safety incident tables in SQLite",
		Long: `Airline Incidents stores airline safety statistics in a local SQLite database.

  create  make a table with the airline schema
  load    append records from a CSV, TSV, Excel or Parquet file
  query   run read-only SQL against the tables
  delete  drop a table

Every command works on airline_database.db in the current directory unless
--db is given.`,
		// main prints the error once; usage is noise for runtime failures
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	rootCmd.AddCommand(NewCreateCommand())
	rootCmd.AddCommand(NewQueryCommand())
	rootCmd.AddCommand(NewDeleteCommand())
	rootCmd.AddCommand(NewLoadCommand())

	return rootCmd
}
