package commands

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"airline-incidents/internal/database"
)

// Query output modes
const (
	modeAuto     = "auto"
	modeIncident = "incident"
	modeTable    = "table"
)

// NewQueryCommand creates the 'query' subcommand for executing SQL queries
// Usage: airline-incidents query ["SELECT * FROM flights"] [--mode auto]
func NewQueryCommand() *cobra.Command {
	var opts dbOptions
	var mode string

	cmd := &cobra.Command{
		Use:     "query [sql]",
		Aliases: []string{"q"},
		Short:   "Execute a read-only SQL query",
		Long: `Execute a SQL query against the database and print the rows.

Rows with the 9 columns of an airline table are printed one per line with
every field labelled. Other results are printed as a plain table.

  --mode auto      airline rows when the result has 9 columns, a table otherwise
  --mode incident  always decode airline rows, failing on any other shape
  --mode table     always print a table

The query runs as written on a connection switched to query-only mode, so
statements that would change the database (INSERT, UPDATE, DELETE, CREATE,
DROP, ...) fail with a storage error; use the create, load and delete
commands instead.

Without a query argument the command enters interactive mode.

Example:
  airline-incidents query "SELECT * FROM flights"
  airline-incidents query "SELECT COUNT(*) FROM flights"`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch mode {
			case modeAuto, modeIncident, modeTable:
			default:
				return fmt.Errorf("invalid mode %q: must be auto, incident or table", mode)
			}
			return runQueryCommand(cmd, &opts, mode, args)
		},
	}

	addDatabaseFlags(cmd, &opts)
	cmd.Flags().StringVarP(&mode, "mode", "m", modeAuto, "Output mode: auto, incident or table")

	return cmd
}

// runQueryCommand executes the query logic
func runQueryCommand(cmd *cobra.Command, opts *dbOptions, mode string, args []string) error {
	logger := newLogger(cmd.ErrOrStderr(), opts.verbose)

	db, err := opts.open(cmd.Context(), logger)
	if err != nil {
		return err
	}
	defer db.Close()

	// Execute single query or enter interactive mode
	if len(args) == 1 {
		return executeSingleQuery(cmd.Context(), cmd.OutOrStdout(), db, args[0], mode)
	}

	return enterInteractiveMode(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), db, opts.dbFile, mode)
}

// executeSingleQuery runs a single SQL query and displays results
func executeSingleQuery(ctx context.Context, out io.Writer, db database.DB, query, mode string) error {
	fmt.Fprintf(out, "Executing Query: %s\n", query)

	if err := runQuery(ctx, out, db, query, mode); err != nil {
		return fmt.Errorf("query execution failed: %w", err)
	}
	return nil
}

// runQuery executes query read-only and streams its rows to out
func runQuery(ctx context.Context, out io.Writer, db database.DB, query, mode string) error {
	cur, err := database.QueryReadOnly(ctx, db, query)
	if err != nil {
		return err
	}
	defer cur.Close()

	return displayResults(out, cur, mode)
}

// enterInteractiveMode provides an interactive SQL query interface
func enterInteractiveMode(ctx context.Context, in io.Reader, out io.Writer, db database.DB, dbFile, mode string) error {
	fmt.Fprintf(out, "Connected to database: %s\n", dbFile)
	fmt.Fprintln(out, "Interactive SQL query mode. Type 'exit' or 'quit' to exit.")
	fmt.Fprintln(out, "The connection is query-only: statements that modify the database fail.")
	fmt.Fprintln(out)

	scanner := bufio.NewScanner(in)

	for {
		fmt.Fprint(out, "sql> ")

		if !scanner.Scan() {
			break
		}

		input := strings.TrimSpace(scanner.Text())

		if input == "exit" || input == "quit" {
			fmt.Fprintln(out, "Goodbye!")
			break
		}

		if input == "" {
			continue
		}

		// Errors are reported and the session continues
		if err := runQuery(ctx, out, db, input, mode); err != nil {
			fmt.Fprintf(out, "Error: %v\n\n", err)
			continue
		}
		fmt.Fprintln(out)
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading input: %w", err)
	}

	return nil
}

// displayResults prints rows as airline lines or as a table, depending on mode
func displayResults(out io.Writer, cur *database.Cursor, mode string) error {
	if mode == modeIncident || (mode == modeAuto && database.IsIncidentShape(cur.Columns())) {
		return displayIncidents(out, cur)
	}
	return displayTable(out, cur)
}

// displayIncidents decodes and prints each row as it is read
func displayIncidents(out io.Writer, cur *database.Cursor) error {
	if err := database.CheckIncidentShape(cur.Columns()); err != nil {
		return err
	}

	count := 0
	for cur.Next() {
		count++
		record, err := database.DecodeIncident(cur.Row(), count)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, record.String())
	}
	if err := cur.Err(); err != nil {
		return err
	}

	if count == 0 {
		fmt.Fprintln(out, "No results found.")
	}
	return nil
}

// displayTable formats and prints query results
func displayTable(out io.Writer, cur *database.Cursor) error {
	columns := cur.Columns()

	count := 0
	for cur.Next() {
		if count == 0 {
			printTableHeader(out, columns)
		}
		count++

		for i, val := range cur.Row() {
			if i > 0 {
				fmt.Fprint(out, " | ")
			}
			if val == nil {
				val = "NULL"
			}
			fmt.Fprintf(out, "%-15v", val)
		}
		fmt.Fprintln(out)
	}
	if err := cur.Err(); err != nil {
		return err
	}

	if count == 0 {
		fmt.Fprintln(out, "No results found.")
		return nil
	}

	fmt.Fprintf(out, "\n(%d rows)\n", count)
	return nil
}

func printTableHeader(out io.Writer, columns []string) {
	for i, column := range columns {
		if i > 0 {
			fmt.Fprint(out, " | ")
		}
		fmt.Fprintf(out, "%-15s", column)
	}
	fmt.Fprintln(out)

	for i := range columns {
		if i > 0 {
			fmt.Fprint(out, " | ")
		}
		fmt.Fprint(out, strings.Repeat("-", 15))
	}
	fmt.Fprintln(out)
}
