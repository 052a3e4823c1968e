package database

import (
	"fmt"
	"regexp"
	"strings"

	"airline-incidents/internal/config"
	"airline-incidents/internal/models"
)

var tableNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// TableName is a validated SQL identifier. The only way to build one from
// user input is ParseTableName, so Quoted() is always safe to interpolate.
type TableName string

// ParseTableName validates s as a table identifier
func ParseTableName(s string) (TableName, error) {
	if s == "" {
		return "", fmt.Errorf("%w: empty", ErrInvalidTableName)
	}
	if len(s) > config.MaxTableNameLength {
		return "", fmt.Errorf("%w %q: longer than %d characters", ErrInvalidTableName, s, config.MaxTableNameLength)
	}
	if !tableNamePattern.MatchString(s) {
		return "", fmt.Errorf("%w %q: only letters, digits and underscores are allowed, and it must not start with a digit", ErrInvalidTableName, s)
	}
	if strings.HasPrefix(strings.ToLower(s), "sqlite_") {
		return "", fmt.Errorf("%w %q: the sqlite_ prefix is reserved", ErrInvalidTableName, s)
	}
	return TableName(s), nil
}

func (t TableName) String() string {
	return string(t)
}

// Quoted returns the identifier in double quotes, ready for SQL text
func (t TableName) Quoted() string {
	return `"` + string(t) + `"`
}

// CreateTableSQL generates the CREATE TABLE IF NOT EXISTS statement for name.
// AUTOINCREMENT keeps ids from being reused after deletes.
func CreateTableSQL(ts models.TableSchema, name TableName) string {
	var columns []string
	for _, col := range ts.Columns {
		if col.PrimaryKey {
			columns = append(columns, fmt.Sprintf("%s %s PRIMARY KEY AUTOINCREMENT", col.Name, col.Type.SQLType()))
			continue
		}
		columns = append(columns, fmt.Sprintf("%s %s NOT NULL", col.Name, col.Type.SQLType()))
	}

	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (\n  %s\n)",
		name.Quoted(),
		strings.Join(columns, ",\n  "))
}

// InsertSQL generates a parameterized INSERT for the data columns
func InsertSQL(ts models.TableSchema, name TableName) string {
	cols := ts.DataColumns()
	names := make([]string, len(cols))
	placeholders := make([]string, len(cols))
	for i, col := range cols {
		names[i] = col.Name
		placeholders[i] = "?"
	}

	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		name.Quoted(),
		strings.Join(names, ", "),
		strings.Join(placeholders, ", "))
}
