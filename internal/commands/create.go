package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"airline-incidents/internal/database"
)

// NewCreateCommand creates the 'create' subcommand
// Usage: airline-incidents create <table_name> [--db airline_database.db]
func NewCreateCommand() *cobra.Command {
	var opts dbOptions

	cmd := &cobra.Command{
		Use:     "create <table_name>",
		Aliases: []string{"c"},
		Short:   "Create a new table with the airline schema",
		Long: `Create a table for airline safety statistics if it does not already exist.

Table names may contain letters, digits and underscores and must not start
with a digit. Creating a table that already exists is not an error.

Example:
  airline-incidents create flights`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCreateCommand(cmd, &opts, args[0])
		},
	}

	addDatabaseFlags(cmd, &opts)
	return cmd
}

func runCreateCommand(cmd *cobra.Command, opts *dbOptions, tableArg string) error {
	table, err := database.ParseTableName(tableArg)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	logger := newLogger(cmd.ErrOrStderr(), opts.verbose)

	fmt.Fprintf(out, "Creating Table '%s'\n", table)

	db, err := opts.open(cmd.Context(), logger)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := database.CreateTable(cmd.Context(), db, table); err != nil {
		return fmt.Errorf("failed to create table: %w", err)
	}

	successColor.Fprintf(out, "Table '%s' created successfully.\n", table)
	return nil
}
