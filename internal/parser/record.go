package parser

import (
	"fmt"
	"strconv"

	"airline-incidents/internal/config"
	"airline-incidents/internal/models"
)

// ParseIncident converts the fields of one source record into an IncidentRecord.
// Field 0 is taken verbatim; the rest are strict base-10 integers, no
// surrounding whitespace allowed. recordNum is used for error reporting only.
func ParseIncident(fields []string, recordNum int) (models.IncidentRecord, error) {
	if len(fields) != config.IncidentFieldCount {
		return models.IncidentRecord{}, &ParseError{
			Record: recordNum,
			Field:  -1,
			Err:    fmt.Errorf("expected %d fields, got %d", config.IncidentFieldCount, len(fields)),
		}
	}

	r := models.IncidentRecord{Airline: fields[0]}
	ints := []*int32{
		&r.Incidents8599, &r.FatalAccidents8599, &r.Fatalities8599,
		&r.Incidents0014, &r.FatalAccidents0014, &r.Fatalities0014,
	}

	columns := models.IncidentSchema.DataColumns()
	for i := 1; i < len(fields); i++ {
		col := columns[i]
		bits := col.Type.Bits()

		n, err := strconv.ParseInt(fields[i], 10, bits)
		if err != nil {
			return models.IncidentRecord{}, &ParseError{
				Record: recordNum,
				Field:  i,
				Column: col.Name,
				Value:  fields[i],
				Err:    err,
			}
		}

		if bits == 64 {
			r.AvailSeatKmPerWeek = n
		} else {
			*ints[i-2] = int32(n)
		}
	}

	return r, nil
}
