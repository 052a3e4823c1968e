package database

import (
	"context"
	"database/sql"

	"airline-incidents/internal/models"
)

// CreateTable creates an incident table if it does not already exist.
// An existing table of the same name is left untouched, whatever its columns.
func CreateTable(ctx context.Context, db DB, name TableName) error {
	if _, err := db.ExecContext(ctx, CreateTableSQL(models.IncidentSchema, name)); err != nil {
		return &StorageError{Op: "create table", Table: name, Err: err}
	}
	return nil
}

// DropTable drops the table if it exists
func DropTable(ctx context.Context, db DB, name TableName) error {
	if _, err := db.ExecContext(ctx, "DROP TABLE IF EXISTS "+name.Quoted()); err != nil {
		return &StorageError{Op: "drop table", Table: name, Err: err}
	}
	return nil
}

// TableExists reports whether a table called name is present
func TableExists(ctx context.Context, db DB, name TableName) (bool, error) {
	var count int
	err := db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?",
		string(name),
	).Scan(&count)
	if err != nil {
		return false, &StorageError{Op: "lookup table", Table: name, Err: err}
	}
	return count > 0, nil
}

// IncidentInserter inserts records through one prepared statement
type IncidentInserter struct {
	table TableName
	stmt  *sql.Stmt
}

// PrepareIncidentInsert prepares the insert statement for name on p,
// which may be the database or an open transaction. Preparing against
// a missing table fails here, before any record is read.
func PrepareIncidentInsert(ctx context.Context, p Preparer, name TableName) (*IncidentInserter, error) {
	stmt, err := p.PrepareContext(ctx, InsertSQL(models.IncidentSchema, name))
	if err != nil {
		return nil, &StorageError{Op: "prepare insert", Table: name, Err: err}
	}
	return &IncidentInserter{table: name, stmt: stmt}, nil
}

// Insert stores r and returns the id the engine assigned to it.
// r.ID is ignored.
func (i *IncidentInserter) Insert(ctx context.Context, r models.IncidentRecord) (int64, error) {
	res, err := i.stmt.ExecContext(ctx, r.InsertArgs()...)
	if err != nil {
		return 0, &StorageError{Op: "insert", Table: i.table, Err: err}
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, &StorageError{Op: "insert", Table: i.table, Err: err}
	}
	return id, nil
}

// Close releases the prepared statement
func (i *IncidentInserter) Close() error {
	return i.stmt.Close()
}
