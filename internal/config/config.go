// Package config provides shared configuration constants and settings
// for the airline incidents tool
package config

const (
	// DefaultDatabaseFile is the default SQLite database filename
	// used by every command when no --db flag is provided
	DefaultDatabaseFile = "airline_database.db"

	// DatabaseFileDescription is the help text description for the database file flag
	DatabaseFileDescription = "Path to SQLite database file"

	// DriverSQLite3 is the cgo driver registered by github.com/mattn/go-sqlite3
	DriverSQLite3 = "sqlite3"

	// DriverModernc is the pure Go driver registered by modernc.org/sqlite
	DriverModernc = "sqlite"

	// DefaultDriver is used when no --driver flag is provided
	DefaultDriver = DriverSQLite3

	// DriverDescription is the help text description for the driver flag
	DriverDescription = "SQL driver to open the database with (sqlite3 or sqlite)"

	// VerboseDescription is the help text description for the verbose flag
	VerboseDescription = "Enable debug logging on stderr"

	// MaxTableNameLength bounds user supplied table identifiers
	MaxTableNameLength = 64

	// IncidentFieldCount is the number of fields every source record must carry
	IncidentFieldCount = 8
)

// SupportedDrivers lists the driver names accepted by --driver
var SupportedDrivers = []string{DriverSQLite3, DriverModernc}

// IsSupportedDriver reports whether name is one of SupportedDrivers
func IsSupportedDriver(name string) bool {
	for _, d := range SupportedDrivers {
		if d == name {
			return true
		}
	}
	return false
}
