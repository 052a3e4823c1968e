package parser

import (
	"encoding/csv"
	"errors"
	"io"
)

// delimitedReader streams records from delimited text with the
// standard quoting rules of encoding/csv
type delimitedReader struct {
	reader *csv.Reader
	path   string
	record int
}

func newDelimitedReader(r io.Reader, path string, delimiter rune) *delimitedReader {
	reader := csv.NewReader(r)
	reader.Comma = delimiter
	// Field counts are checked per record by ParseIncident so that every
	// format reports them the same way
	reader.FieldsPerRecord = -1
	reader.ReuseRecord = false

	return &delimitedReader{reader: reader, path: path}
}

func (d *delimitedReader) Read() ([]string, error) {
	record, err := d.reader.Read()
	if err == io.EOF {
		return nil, io.EOF
	}
	d.record++
	if err != nil {
		var csvErr *csv.ParseError
		if errors.As(err, &csvErr) {
			return nil, &ParseError{
				Record: d.record,
				Field:  -1,
				Line:   csvErr.Line,
				Pos:    csvErr.Column,
				Err:    csvErr.Err,
			}
		}
		return nil, &IOError{Op: "read", Path: d.path, Err: err}
	}
	return record, nil
}

func (d *delimitedReader) Close() error {
	return nil
}
