package commands

import (
	"fmt"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"airline-incidents/internal/database"
	"airline-incidents/internal/ingest"
	"airline-incidents/internal/parser"
)

// NewLoadCommand creates the 'load' subcommand for importing records into a table
// Usage: airline-incidents load <table_name> <file_path> [--header none] [--atomic]
func NewLoadCommand() *cobra.Command {
	var opts dbOptions
	var headerMode string
	var delimiter string
	var atomic bool

	cmd := &cobra.Command{
		Use:     "load <table_name> <file_path>",
		Aliases: []string{"l"},
		Short:   "Load data from a CSV file into a table",
		Long: `Append the records of a source file to an existing table.

Every record must have 8 fields in this order:
  airline, avail_seat_km_per_week, incidents_85_99, fatal_accidents_85_99,
  fatalities_85_99, incidents_00_14, fatal_accidents_00_14, fatalities_00_14

The first is stored as text, the rest must be plain base-10 integers.
The first record is treated as data unless --header is skip or auto.

Sources may be delimited text (.csv, .tsv, anything else is read as CSV),
Excel (.xlsx, first sheet) or Parquet (.parquet), optionally compressed
with .gz, .bz2, .xz or .zst.

Records are committed one at a time. If a record fails, the records before
it stay in the table and loading stops. Use --atomic to load everything
in one transaction instead.

Example:
  airline-incidents load flights airline-safety.csv
  airline-incidents load flights airline-safety.csv.gz --header auto --atomic`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := parser.ParseHeaderMode(headerMode)
			if err != nil {
				return err
			}
			delim, err := parseDelimiter(delimiter)
			if err != nil {
				return err
			}
			return runLoadCommand(cmd, &opts, args[0], args[1], ingest.Options{
				Header:    mode,
				Delimiter: delim,
				Atomic:    atomic,
			})
		},
	}

	addDatabaseFlags(cmd, &opts)
	cmd.Flags().StringVar(&headerMode, "header", string(parser.HeaderNone), "First record handling: none, skip or auto")
	cmd.Flags().StringVar(&delimiter, "delimiter", "", `Field delimiter for text sources (default: tab for .tsv, comma otherwise; "tab" accepted)`)
	cmd.Flags().BoolVar(&atomic, "atomic", false, "Load all records in a single transaction, rolling back on failure")

	return cmd
}

// runLoadCommand executes the loading logic
func runLoadCommand(cmd *cobra.Command, opts *dbOptions, tableArg, sourcePath string, loadOpts ingest.Options) error {
	table, err := database.ParseTableName(tableArg)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	logger := newLogger(cmd.ErrOrStderr(), opts.verbose)

	fmt.Fprintf(out, "Loading data into table '%s' from '%s'\n", table, sourcePath)

	db, err := opts.open(cmd.Context(), logger)
	if err != nil {
		return err
	}
	defer db.Close()

	count, err := ingest.NewLoader(db, logger, loadOpts).Load(cmd.Context(), table, sourcePath)
	if err != nil {
		if count > 0 {
			logger.Warn("load stopped early, earlier rows remain committed", "table", table.String(), "rows", count)
		}
		return fmt.Errorf("failed to load data from %s: %w", sourcePath, err)
	}

	logger.Info("load complete", "table", table.String(), "rows", count)
	successColor.Fprintf(out, "Data loaded successfully from '%s' into table '%s'.\n", sourcePath, table)
	return nil
}

// parseDelimiter converts the --delimiter flag into a rune; empty means detect by extension
func parseDelimiter(s string) (rune, error) {
	switch s {
	case "":
		return 0, nil
	case "tab", `\t`:
		return '\t', nil
	}

	r, size := utf8.DecodeRuneInString(s)
	if size != len(s) || r == utf8.RuneError {
		return 0, fmt.Errorf("invalid delimiter %q: must be a single character", s)
	}
	if r == '"' || r == '\r' || r == '\n' {
		return 0, fmt.Errorf("invalid delimiter %q", s)
	}
	return r, nil
}
