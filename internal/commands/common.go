// Package commands implements the CLI commands for the airline incidents tool
package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"airline-incidents/internal/config"
	"airline-incidents/internal/database"
)

var successColor = color.New(color.FgGreen)

// dbOptions holds the flags every command shares
type dbOptions struct {
	dbFile  string
	driver  string
	verbose bool
}

func addDatabaseFlags(cmd *cobra.Command, opts *dbOptions) {
	cmd.Flags().StringVarP(&opts.dbFile, "db", "d", config.DefaultDatabaseFile, config.DatabaseFileDescription)
	cmd.Flags().StringVar(&opts.driver, "driver", config.DefaultDriver, config.DriverDescription)
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, config.VerboseDescription)
}

// newLogger returns a text logger on w; debug output only when verbose
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// open opens the database named by the flags. The caller must Close it.
func (o *dbOptions) open(ctx context.Context, logger *slog.Logger) (database.DB, error) {
	db, err := database.Open(ctx, o.driver, o.dbFile)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	logger.Debug("database opened", "path", o.dbFile, "driver", o.driver)
	return db, nil
}
