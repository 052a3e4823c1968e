package models

// ColumnType represents the storage type of an incident column
type ColumnType int

const (
	TypeText ColumnType = iota
	TypeInt64
	TypeInt32
)

// String returns the string representation of ColumnType
func (ct ColumnType) String() string {
	switch ct {
	case TypeInt64:
		return "INT64"
	case TypeInt32:
		return "INT32"
	default:
		return "TEXT"
	}
}

// SQLType returns the SQLite type string for the column type
func (ct ColumnType) SQLType() string {
	switch ct {
	case TypeInt64, TypeInt32:
		return "INTEGER"
	default:
		return "TEXT"
	}
}

// Bits returns the integer width of the column, 0 for text
func (ct ColumnType) Bits() int {
	switch ct {
	case TypeInt64:
		return 64
	case TypeInt32:
		return 32
	default:
		return 0
	}
}

// ColumnSchema represents the schema for a single column
type ColumnSchema struct {
	Name       string
	Type       ColumnType
	PrimaryKey bool
}

// TableSchema represents the column layout shared by every incident table
type TableSchema struct {
	Columns []ColumnSchema
}

// IncidentSchema is the fixed 9-column layout. Order matters: source
// fields and decoded result columns are matched by position.
var IncidentSchema = TableSchema{
	Columns: []ColumnSchema{
		{Name: "id", Type: TypeInt64, PrimaryKey: true},
		{Name: "airline", Type: TypeText},
		{Name: "avail_seat_km_per_week", Type: TypeInt64},
		{Name: "incidents_85_99", Type: TypeInt32},
		{Name: "fatal_accidents_85_99", Type: TypeInt32},
		{Name: "fatalities_85_99", Type: TypeInt32},
		{Name: "incidents_00_14", Type: TypeInt32},
		{Name: "fatal_accidents_00_14", Type: TypeInt32},
		{Name: "fatalities_00_14", Type: TypeInt32},
	},
}

// DataColumns returns every column except the generated primary key
func (ts TableSchema) DataColumns() []ColumnSchema {
	var cols []ColumnSchema
	for _, col := range ts.Columns {
		if !col.PrimaryKey {
			cols = append(cols, col)
		}
	}
	return cols
}
