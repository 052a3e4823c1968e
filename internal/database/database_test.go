package database

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"airline-incidents/internal/config"
	"airline-incidents/internal/models"
)

var drivers = []string{config.DriverSQLite3, config.DriverModernc}

// forEachDriver runs fn against a fresh in-memory database for every supported driver
func forEachDriver(t *testing.T, fn func(t *testing.T, db DB)) {
	t.Helper()
	for _, driver := range drivers {
		t.Run(driver, func(t *testing.T) {
			db, err := Open(context.Background(), driver, ":memory:")
			require.NoError(t, err)
			t.Cleanup(func() { db.Close() })
			fn(t, db)
		})
	}
}

func mustTable(t *testing.T, s string) TableName {
	t.Helper()
	name, err := ParseTableName(s)
	require.NoError(t, err)
	return name
}

// TestOpen tests database initialization
func TestOpen(t *testing.T) {
	tests := []struct {
		name    string
		driver  string
		dbPath  string
		wantErr bool
	}{
		{name: "memory sqlite3", driver: config.DriverSQLite3, dbPath: ":memory:"},
		{name: "memory sqlite", driver: config.DriverModernc, dbPath: ":memory:"},
		{name: "file sqlite3", driver: config.DriverSQLite3, dbPath: filepath.Join(t.TempDir(), "a.db")},
		{name: "file sqlite", driver: config.DriverModernc, dbPath: filepath.Join(t.TempDir(), "b.db")},
		{name: "unsupported driver", driver: "postgres", dbPath: ":memory:", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, err := Open(context.Background(), tt.driver, tt.dbPath)
			if tt.wantErr {
				var storageErr *StorageError
				assert.True(t, errors.As(err, &storageErr), "expected StorageError, got %v", err)
				return
			}
			require.NoError(t, err)
			defer db.Close()

			rs, err := ExecuteQuery(context.Background(), db, "SELECT 1")
			require.NoError(t, err)
			assert.Len(t, rs.Rows, 1)
		})
	}
}

// TestOpen_FilePersists tests that data survives closing and reopening the file
func TestOpen_FilePersists(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "airline.db")
	table := mustTable(t, "flights")

	db, err := Open(ctx, config.DriverSQLite3, dbPath)
	require.NoError(t, err)
	require.NoError(t, CreateTable(ctx, db, table))
	require.NoError(t, db.Close())

	db, err = Open(ctx, config.DriverModernc, dbPath)
	require.NoError(t, err)
	defer db.Close()

	exists, err := TableExists(ctx, db, table)
	require.NoError(t, err)
	assert.True(t, exists)
}

// TestCreateTable_Idempotent tests that creating twice succeeds
func TestCreateTable_Idempotent(t *testing.T) {
	forEachDriver(t, func(t *testing.T, db DB) {
		ctx := context.Background()
		table := mustTable(t, "flights")

		require.NoError(t, CreateTable(ctx, db, table))
		exists, err := TableExists(ctx, db, table)
		require.NoError(t, err)
		assert.True(t, exists)

		require.NoError(t, CreateTable(ctx, db, table))
		exists, err = TableExists(ctx, db, table)
		require.NoError(t, err)
		assert.True(t, exists)
	})
}

// TestCreateTable_ExistingDifferentSchema tests that an unrelated table of the same name is kept
func TestCreateTable_ExistingDifferentSchema(t *testing.T) {
	forEachDriver(t, func(t *testing.T, db DB) {
		ctx := context.Background()
		_, err := db.ExecContext(ctx, "CREATE TABLE other (x TEXT)")
		require.NoError(t, err)

		require.NoError(t, CreateTable(ctx, db, mustTable(t, "other")))

		rs, err := ExecuteQuery(ctx, db, "SELECT * FROM other")
		require.NoError(t, err)
		assert.Equal(t, []string{"x"}, rs.Columns)
	})
}

// TestDropTable tests drop idempotence
func TestDropTable(t *testing.T) {
	forEachDriver(t, func(t *testing.T, db DB) {
		ctx := context.Background()
		table := mustTable(t, "flights")

		require.NoError(t, DropTable(ctx, db, table), "dropping a missing table must succeed")

		require.NoError(t, CreateTable(ctx, db, table))
		require.NoError(t, DropTable(ctx, db, table))

		exists, err := TableExists(ctx, db, table)
		require.NoError(t, err)
		assert.False(t, exists)
	})
}

// TestDropCreateCount tests that a recreated table is empty
func TestDropCreateCount(t *testing.T) {
	forEachDriver(t, func(t *testing.T, db DB) {
		ctx := context.Background()
		table := mustTable(t, "T")

		require.NoError(t, DropTable(ctx, db, table))
		require.NoError(t, CreateTable(ctx, db, table))

		rs, err := ExecuteQuery(ctx, db, "SELECT COUNT(*) FROM T")
		require.NoError(t, err)
		require.Len(t, rs.Rows, 1)
		assert.Equal(t, int64(0), rs.Rows[0][0])
	})
}

// TestIncidentInserter tests inserting and decoding records
func TestIncidentInserter(t *testing.T) {
	forEachDriver(t, func(t *testing.T, db DB) {
		ctx := context.Background()
		table := mustTable(t, "flights")
		require.NoError(t, CreateTable(ctx, db, table))

		ins, err := PrepareIncidentInsert(ctx, db, table)
		require.NoError(t, err)
		defer ins.Close()

		input := []models.IncidentRecord{
			{Airline: "Air A", AvailSeatKmPerWeek: 1000000, Incidents8599: 1},
			{Airline: "Air B", AvailSeatKmPerWeek: 2000000, Incidents8599: 2, FatalAccidents8599: 1, Fatalities8599: 5},
			{Airline: "Big", AvailSeatKmPerWeek: 7139291291, Fatalities0014: 2147483647, Incidents0014: -2147483648},
		}
		for i, r := range input {
			id, err := ins.Insert(ctx, r)
			require.NoError(t, err)
			assert.Equal(t, int64(i+1), id)
		}

		rs, err := ExecuteQuery(ctx, db, "SELECT * FROM flights ORDER BY id")
		require.NoError(t, err)
		records, err := DecodeIncidents(rs)
		require.NoError(t, err)
		require.Len(t, records, len(input))

		for i, r := range records {
			want := input[i]
			want.ID = int64(i + 1)
			assert.Equal(t, want, r)
		}
	})
}

// TestIncidentInserter_IDsNotReused tests AUTOINCREMENT behaviour after deletes
func TestIncidentInserter_IDsNotReused(t *testing.T) {
	forEachDriver(t, func(t *testing.T, db DB) {
		ctx := context.Background()
		table := mustTable(t, "flights")
		require.NoError(t, CreateTable(ctx, db, table))

		ins, err := PrepareIncidentInsert(ctx, db, table)
		require.NoError(t, err)
		defer ins.Close()

		_, err = ins.Insert(ctx, models.IncidentRecord{Airline: "A"})
		require.NoError(t, err)
		id2, err := ins.Insert(ctx, models.IncidentRecord{Airline: "B"})
		require.NoError(t, err)

		_, err = db.ExecContext(ctx, "DELETE FROM flights WHERE id = ?", id2)
		require.NoError(t, err)

		id3, err := ins.Insert(ctx, models.IncidentRecord{Airline: "C"})
		require.NoError(t, err)
		assert.Greater(t, id3, id2)
	})
}

// TestPrepareIncidentInsert_MissingTable tests that a missing table is a StorageError
func TestPrepareIncidentInsert_MissingTable(t *testing.T) {
	forEachDriver(t, func(t *testing.T, db DB) {
		_, err := PrepareIncidentInsert(context.Background(), db, mustTable(t, "missing"))
		var storageErr *StorageError
		require.True(t, errors.As(err, &storageErr), "expected StorageError, got %v", err)
		assert.Equal(t, TableName("missing"), storageErr.Table)
	})
}

// TestExecuteQuery tests SQL query execution
func TestExecuteQuery(t *testing.T) {
	forEachDriver(t, func(t *testing.T, db DB) {
		ctx := context.Background()
		table := mustTable(t, "flights")
		require.NoError(t, CreateTable(ctx, db, table))
		ins, err := PrepareIncidentInsert(ctx, db, table)
		require.NoError(t, err)
		for _, name := range []string{"Air A", "Air B", "Air C"} {
			_, err := ins.Insert(ctx, models.IncidentRecord{Airline: name, Incidents8599: 3})
			require.NoError(t, err)
		}
		require.NoError(t, ins.Close())

		tests := []struct {
			name      string
			query     string
			wantCols  []string
			wantRows  int
			wantErr   bool
			checkRows func(t *testing.T, rows [][]interface{})
		}{
			{
				name:     "count all",
				query:    "SELECT COUNT(*) AS count FROM flights",
				wantCols: []string{"count"},
				wantRows: 1,
				checkRows: func(t *testing.T, rows [][]interface{}) {
					assert.Equal(t, int64(3), rows[0][0])
				},
			},
			{
				name:     "text values are strings",
				query:    "SELECT airline FROM flights WHERE airline = 'Air B'",
				wantCols: []string{"airline"},
				wantRows: 1,
				checkRows: func(t *testing.T, rows [][]interface{}) {
					assert.Equal(t, "Air B", rows[0][0])
				},
			},
			{
				name:     "all columns",
				query:    "SELECT * FROM flights",
				wantRows: 3,
			},
			{name: "invalid SQL", query: "INVALID SQL QUERY", wantErr: true},
			{name: "missing table", query: "SELECT * FROM non_existent_table", wantErr: true},
			{name: "missing column", query: "SELECT nope FROM flights", wantErr: true},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				rs, err := ExecuteQuery(ctx, db, tt.query)
				if tt.wantErr {
					var storageErr *StorageError
					assert.True(t, errors.As(err, &storageErr), "expected StorageError, got %v", err)
					return
				}
				require.NoError(t, err)
				if tt.wantCols != nil {
					assert.Equal(t, tt.wantCols, rs.Columns)
				}
				require.Len(t, rs.Rows, tt.wantRows)
				if tt.checkRows != nil {
					tt.checkRows(t, rs.Rows)
				}
			})
		}
	})
}

// TestDecodeIncidents_Mismatch tests explicit DecodeError on foreign row shapes
func TestDecodeIncidents_Mismatch(t *testing.T) {
	forEachDriver(t, func(t *testing.T, db DB) {
		ctx := context.Background()
		table := mustTable(t, "flights")
		require.NoError(t, CreateTable(ctx, db, table))

		tests := []struct {
			name       string
			query      string
			wantRow    int
			wantColumn int
		}{
			{
				name:       "too few columns",
				query:      "SELECT COUNT(*) FROM flights",
				wantRow:    0,
				wantColumn: -1,
			},
			{
				name:       "text where integer expected",
				query:      "SELECT 1, 'a', 'lots', 0, 0, 0, 0, 0, 0",
				wantRow:    1,
				wantColumn: 2,
			},
			{
				name:       "integer where text expected",
				query:      "SELECT 1, 42, 1, 0, 0, 0, 0, 0, 0",
				wantRow:    1,
				wantColumn: 1,
			},
			{
				name:       "NULL value",
				query:      "SELECT 1, 'a', 1, NULL, 0, 0, 0, 0, 0",
				wantRow:    1,
				wantColumn: 3,
			},
			{
				name:       "32-bit overflow",
				query:      "SELECT 1, 'a', 1, 0, 0, 0, 0, 0, 4294967296",
				wantRow:    1,
				wantColumn: 8,
			},
			{
				name:       "real value",
				query:      "SELECT 1.5, 'a', 1, 0, 0, 0, 0, 0, 0",
				wantRow:    1,
				wantColumn: 0,
			},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				rs, err := ExecuteQuery(ctx, db, tt.query)
				require.NoError(t, err)

				_, err = DecodeIncidents(rs)
				var decodeErr *DecodeError
				require.True(t, errors.As(err, &decodeErr), "expected DecodeError, got %v", err)
				assert.Equal(t, tt.wantRow, decodeErr.Row)
				assert.Equal(t, tt.wantColumn, decodeErr.Column)
			})
		}
	})
}

func TestDecodeIncidents_Literal(t *testing.T) {
	rs := &ResultSet{
		Columns: []string{"id", "airline", "a", "b", "c", "d", "e", "f", "g"},
		Rows: [][]interface{}{
			{int64(5), "Air A", int64(1000000), int64(1), int64(2), int64(3), int64(4), int64(5), int64(6)},
		},
	}
	records, err := DecodeIncidents(rs)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, models.IncidentRecord{
		ID: 5, Airline: "Air A", AvailSeatKmPerWeek: 1000000,
		Incidents8599: 1, FatalAccidents8599: 2, Fatalities8599: 3,
		Incidents0014: 4, FatalAccidents0014: 5, Fatalities0014: 6,
	}, records[0])
}

func TestStorageError_Unwrap(t *testing.T) {
	inner := errors.New("boom")
	err := &StorageError{Op: "insert", Table: "flights", Err: inner}
	assert.ErrorIs(t, err, inner)
	assert.Equal(t, "storage: insert flights: boom", err.Error())
}

// TestCursor tests that rows are streamed in engine order
func TestCursor(t *testing.T) {
	forEachDriver(t, func(t *testing.T, db DB) {
		ctx := context.Background()
		cur, err := OpenCursor(ctx, db, "SELECT 1 AS n, 'a' AS s UNION ALL SELECT 2, 'b' UNION ALL SELECT 3, NULL")
		require.NoError(t, err)
		defer cur.Close()

		assert.Equal(t, []string{"n", "s"}, cur.Columns())

		var rows [][]interface{}
		for cur.Next() {
			rows = append(rows, cur.Row())
		}
		require.NoError(t, cur.Err())
		assert.Equal(t, [][]interface{}{{int64(1), "a"}, {int64(2), "b"}, {int64(3), nil}}, rows)
	})
}

// TestQueryReadOnly tests that the engine accepts every read and rejects every write
func TestQueryReadOnly(t *testing.T) {
	forEachDriver(t, func(t *testing.T, db DB) {
		ctx := context.Background()
		table := mustTable(t, "flights")
		require.NoError(t, CreateTable(ctx, db, table))
		ins, err := PrepareIncidentInsert(ctx, db, table)
		require.NoError(t, err)
		for _, name := range []string{"Delete Air", "Air; Drop", "Air A"} {
			_, err := ins.Insert(ctx, models.IncidentRecord{Airline: name})
			require.NoError(t, err)
		}
		require.NoError(t, ins.Close())

		drain := func(query string) (int, error) {
			cur, err := QueryReadOnly(ctx, db, query)
			if err != nil {
				return 0, err
			}
			defer cur.Close()
			n := 0
			for cur.Next() {
				n++
			}
			return n, cur.Err()
		}

		reads := []struct {
			query string
			want  int
		}{
			{query: "SELECT * FROM flights WHERE airline = 'Delete Air'", want: 1},
			{query: "SELECT id, replace(airline, ' ', '_') FROM flights", want: 3},
			{query: "SELECT * FROM flights WHERE airline = 'Air; Drop';", want: 1},
			{query: "WITH t AS (SELECT * FROM flights) SELECT COUNT(*) FROM t", want: 1},
			{query: "PRAGMA table_info(flights)", want: 9},
		}
		for _, tt := range reads {
			n, err := drain(tt.query)
			require.NoError(t, err, tt.query)
			assert.Equal(t, tt.want, n, tt.query)
		}

		writes := []string{
			"DELETE FROM flights",
			"INSERT INTO flights (airline, avail_seat_km_per_week, incidents_85_99, fatal_accidents_85_99, " +
				"fatalities_85_99, incidents_00_14, fatal_accidents_00_14, fatalities_00_14) VALUES ('x', 0, 0, 0, 0, 0, 0, 0)",
			"UPDATE flights SET airline = 'x'",
			"DROP TABLE flights",
			"CREATE TABLE evil (x TEXT)",
		}
		for _, query := range writes {
			_, err := drain(query)
			var storageErr *StorageError
			assert.True(t, errors.As(err, &storageErr), "%s: expected StorageError, got %v", query, err)
		}

		_, err = drain("SELEC * FROM flights")
		var storageErr *StorageError
		assert.True(t, errors.As(err, &storageErr), "expected StorageError, got %v", err)

		rs, err := ExecuteQuery(ctx, db, "SELECT COUNT(*) FROM flights")
		require.NoError(t, err)
		assert.Equal(t, int64(3), rs.Rows[0][0])
	})
}
