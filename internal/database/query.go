package database

import (
	"context"
	"database/sql"
	"fmt"
	"math"

	"airline-incidents/internal/models"
)

// ResultSet holds the columns and rows of an executed query, in engine order
type ResultSet struct {
	Columns []string
	Rows    [][]interface{}
}

// HasIncidentShape reports whether the result has as many columns as an incident table
func (rs *ResultSet) HasIncidentShape() bool {
	return IsIncidentShape(rs.Columns)
}

// IsIncidentShape reports whether columns has the width of an incident table
func IsIncidentShape(columns []string) bool {
	return len(columns) == len(models.IncidentSchema.Columns)
}

// Cursor streams the rows of a query from the engine one at a time.
// Values keep the dynamic type the driver reports; byte slices become strings.
type Cursor struct {
	rows    *sql.Rows
	columns []string
	row     []interface{}
	err     error
}

// OpenCursor executes query verbatim. The caller must Close the cursor.
func OpenCursor(ctx context.Context, db DB, query string) (*Cursor, error) {
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, &StorageError{Op: "query", Err: err}
	}

	columns, err := rows.Columns()
	if err != nil {
		rows.Close()
		return nil, &StorageError{Op: "query columns", Err: err}
	}

	return &Cursor{rows: rows, columns: columns}, nil
}

// QueryReadOnly switches the connection to query-only mode and opens a
// cursor on query. Statements that would modify the database fail inside
// the engine and surface as *StorageError from OpenCursor or Cursor.Err.
func QueryReadOnly(ctx context.Context, db DB, query string) (*Cursor, error) {
	if _, err := db.ExecContext(ctx, "PRAGMA query_only = ON"); err != nil {
		return nil, &StorageError{Op: "set query only", Err: err}
	}
	return OpenCursor(ctx, db, query)
}

// Columns returns the result column names in engine order
func (c *Cursor) Columns() []string {
	return c.columns
}

// Next reads the next row. It returns false at the end of the result or on error.
func (c *Cursor) Next() bool {
	if c.err != nil || !c.rows.Next() {
		return false
	}

	values := make([]interface{}, len(c.columns))
	valuePtrs := make([]interface{}, len(c.columns))
	for i := range values {
		valuePtrs[i] = &values[i]
	}

	if err := c.rows.Scan(valuePtrs...); err != nil {
		c.err = &StorageError{Op: "scan row", Err: err}
		return false
	}

	for i, val := range values {
		if b, ok := val.([]byte); ok {
			values[i] = string(b)
		}
	}

	c.row = values
	return true
}

// Row returns the values read by the last call to Next
func (c *Cursor) Row() []interface{} {
	return c.row
}

// Err returns the error that stopped iteration, if any
func (c *Cursor) Err() error {
	if c.err != nil {
		return c.err
	}
	if err := c.rows.Err(); err != nil {
		return &StorageError{Op: "row iteration", Err: err}
	}
	return nil
}

func (c *Cursor) Close() error {
	return c.rows.Close()
}

// ExecuteQuery executes a SQL query verbatim and returns every row
func ExecuteQuery(ctx context.Context, db DB, query string) (*ResultSet, error) {
	cur, err := OpenCursor(ctx, db, query)
	if err != nil {
		return nil, err
	}
	defer cur.Close()

	rs := &ResultSet{Columns: cur.Columns()}
	for cur.Next() {
		rs.Rows = append(rs.Rows, cur.Row())
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}

	return rs, nil
}

// CheckIncidentShape returns a *DecodeError unless columns can hold incident rows
func CheckIncidentShape(columns []string) error {
	if IsIncidentShape(columns) {
		return nil
	}
	return &DecodeError{
		Column: -1,
		Reason: fmt.Sprintf("expected %d columns, got %d", len(models.IncidentSchema.Columns), len(columns)),
	}
}

// DecodeIncidents decodes every row of rs positionally into IncidentRecord
func DecodeIncidents(rs *ResultSet) ([]models.IncidentRecord, error) {
	if err := CheckIncidentShape(rs.Columns); err != nil {
		return nil, err
	}

	records := make([]models.IncidentRecord, 0, len(rs.Rows))
	for i, row := range rs.Rows {
		r, err := DecodeIncident(row, i+1)
		if err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, nil
}

// DecodeIncident converts one result row into an IncidentRecord.
// rowNum is 1-indexed and only used for error reporting.
func DecodeIncident(row []interface{}, rowNum int) (models.IncidentRecord, error) {
	schema := models.IncidentSchema
	if len(row) != len(schema.Columns) {
		return models.IncidentRecord{}, &DecodeError{
			Row:    rowNum,
			Column: -1,
			Reason: fmt.Sprintf("expected %d values, got %d", len(schema.Columns), len(row)),
		}
	}

	var r models.IncidentRecord
	ints := []*int32{
		&r.Incidents8599, &r.FatalAccidents8599, &r.Fatalities8599,
		&r.Incidents0014, &r.FatalAccidents0014, &r.Fatalities0014,
	}

	for i, col := range schema.Columns {
		v := row[i]
		fail := func(reason string) error {
			return &DecodeError{Row: rowNum, Column: i, Name: col.Name, Reason: reason}
		}
		if v == nil {
			return r, fail("unexpected NULL")
		}

		switch col.Type {
		case models.TypeText:
			s, ok := v.(string)
			if !ok {
				return r, fail(fmt.Sprintf("expected text, got %T", v))
			}
			r.Airline = s

		case models.TypeInt64:
			n, ok := asInt64(v)
			if !ok {
				return r, fail(fmt.Sprintf("expected integer, got %T", v))
			}
			if col.PrimaryKey {
				r.ID = n
			} else {
				r.AvailSeatKmPerWeek = n
			}

		case models.TypeInt32:
			n, ok := asInt64(v)
			if !ok {
				return r, fail(fmt.Sprintf("expected integer, got %T", v))
			}
			if n < math.MinInt32 || n > math.MaxInt32 {
				return r, fail(fmt.Sprintf("value %d out of 32-bit range", n))
			}
			*ints[i-3] = int32(n)
		}
	}

	return r, nil
}

func asInt64(v interface{}) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case int32:
		return int64(n), true
	case int:
		return int64(n), true
	default:
		return 0, false
	}
}
