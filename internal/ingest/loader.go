// Package ingest loads incident records from source files into a table
package ingest

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"airline-incidents/internal/database"
	"airline-incidents/internal/parser"
)

// Options controls a load run
type Options struct {
	Header    parser.HeaderMode
	Delimiter rune
	// Atomic runs the whole load in one transaction and rolls back on failure.
	// Otherwise every row commits on its own and a failed load leaves the
	// rows before the failing record in place.
	Atomic bool
}

// Loader appends source records to incident tables
type Loader struct {
	db     database.DB
	logger *slog.Logger
	opts   Options
}

// NewLoader returns a Loader writing through db. A nil logger discards logs.
func NewLoader(db database.DB, logger *slog.Logger, opts Options) *Loader {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if opts.Header == "" {
		opts.Header = parser.HeaderNone
	}
	return &Loader{db: db, logger: logger, opts: opts}
}

// Load reads sourcePath in order and inserts one row per record into table.
// It stops at the first failing record and returns the number of rows
// committed along with the error.
func (l *Loader) Load(ctx context.Context, table database.TableName, sourcePath string) (int64, error) {
	source, err := parser.OpenSource(sourcePath, parser.Options{Delimiter: l.opts.Delimiter})
	if err != nil {
		return 0, err
	}
	defer source.Close()

	l.logger.Debug("source opened", "path", sourcePath, "table", table.String(), "header", string(l.opts.Header), "atomic", l.opts.Atomic)

	if !l.opts.Atomic {
		return l.insertAll(ctx, l.db, table, source)
	}

	tx, err := l.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, &database.StorageError{Op: "begin", Table: table, Err: err}
	}

	count, err := l.insertAll(ctx, tx, table, source)
	if err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			l.logger.Warn("rollback failed", "table", table.String(), "error", rbErr)
		}
		l.logger.Debug("load rolled back", "discarded", count)
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, &database.StorageError{Op: "commit", Table: table, Err: err}
	}
	return count, nil
}

func (l *Loader) insertAll(ctx context.Context, p database.Preparer, table database.TableName, source parser.RecordReader) (int64, error) {
	var inserter *database.IncidentInserter
	defer func() {
		if inserter != nil {
			inserter.Close()
		}
	}()

	var inserted int64
	recordNum := 0
	for {
		fields, err := source.Read()
		if err == io.EOF {
			break
		}
		recordNum++
		if err != nil {
			return inserted, err
		}

		if recordNum == 1 && l.isHeader(fields) {
			l.logger.Debug("skipping header record", "fields", fields)
			continue
		}

		record, err := parser.ParseIncident(fields, recordNum)
		if err != nil {
			return inserted, err
		}

		// Prepared lazily so an empty source never touches the table
		if inserter == nil {
			inserter, err = database.PrepareIncidentInsert(ctx, p, table)
			if err != nil {
				return inserted, err
			}
		}

		id, err := inserter.Insert(ctx, record)
		if err != nil {
			return inserted, fmt.Errorf("record %d: %w", recordNum, err)
		}
		inserted++
		l.logger.Debug("record inserted", "record", recordNum, "id", id)
	}

	return inserted, nil
}

func (l *Loader) isHeader(fields []string) bool {
	switch l.opts.Header {
	case parser.HeaderSkip:
		return true
	case parser.HeaderAuto:
		return parser.IsHeaderRow(fields)
	default:
		return false
	}
}
