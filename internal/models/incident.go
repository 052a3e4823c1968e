// Package models defines the data structures used throughout the application
package models

import (
	"fmt"
)

// IncidentRecord is one row of airline safety statistics.
// Fields map positionally to the source file columns, after the generated id.
type IncidentRecord struct {
	ID                 int64  `db:"id" json:"id"` // Assigned by the storage engine on insert
	Airline            string `db:"airline" json:"airline"`
	AvailSeatKmPerWeek int64  `db:"avail_seat_km_per_week" json:"avail_seat_km_per_week"`
	Incidents8599      int32  `db:"incidents_85_99" json:"incidents_85_99"`
	FatalAccidents8599 int32  `db:"fatal_accidents_85_99" json:"fatal_accidents_85_99"`
	Fatalities8599     int32  `db:"fatalities_85_99" json:"fatalities_85_99"`
	Incidents0014      int32  `db:"incidents_00_14" json:"incidents_00_14"`
	FatalAccidents0014 int32  `db:"fatal_accidents_00_14" json:"fatal_accidents_00_14"`
	Fatalities0014     int32  `db:"fatalities_00_14" json:"fatalities_00_14"`
}

// String returns a human-readable representation of the record, one line, every field
func (r IncidentRecord) String() string {
	return fmt.Sprintf("ID: %d, Airline: %s, Available Seat-Km: %d, "+
		"Incidents 85-99: %d, Fatal Accidents 85-99: %d, Fatalities 85-99: %d, "+
		"Incidents 00-14: %d, Fatal Accidents 00-14: %d, Fatalities 00-14: %d",
		r.ID, r.Airline, r.AvailSeatKmPerWeek,
		r.Incidents8599, r.FatalAccidents8599, r.Fatalities8599,
		r.Incidents0014, r.FatalAccidents0014, r.Fatalities0014)
}

// InsertArgs returns the insertable column values in schema order, id excluded
func (r IncidentRecord) InsertArgs() []interface{} {
	return []interface{}{
		r.Airline,
		r.AvailSeatKmPerWeek,
		r.Incidents8599,
		r.FatalAccidents8599,
		r.Fatalities8599,
		r.Incidents0014,
		r.FatalAccidents0014,
		r.Fatalities0014,
	}
}
