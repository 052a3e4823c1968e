package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"airline-incidents/internal/database"
)

// NewDeleteCommand creates the 'delete' subcommand, which drops a table
// Usage: airline-incidents delete <table_name> [--db airline_database.db]
func NewDeleteCommand() *cobra.Command {
	var opts dbOptions

	cmd := &cobra.Command{
		Use:     "delete <table_name>",
		Aliases: []string{"d"},
		Short:   "Drop an existing table",
		Long: `Drop a table and every row in it. Dropping a table that does not exist
is not an error.

Example:
  airline-incidents delete flights`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDeleteCommand(cmd, &opts, args[0])
		},
	}

	addDatabaseFlags(cmd, &opts)
	return cmd
}

func runDeleteCommand(cmd *cobra.Command, opts *dbOptions, tableArg string) error {
	table, err := database.ParseTableName(tableArg)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	logger := newLogger(cmd.ErrOrStderr(), opts.verbose)

	fmt.Fprintf(out, "Dropping Table '%s'\n", table)

	db, err := opts.open(cmd.Context(), logger)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := database.DropTable(cmd.Context(), db, table); err != nil {
		return fmt.Errorf("failed to drop table: %w", err)
	}

	successColor.Fprintf(out, "Table '%s' dropped successfully.\n", table)
	return nil
}
