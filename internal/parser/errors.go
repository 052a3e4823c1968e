package parser

import (
	"errors"
	"fmt"
)

// ErrUnsupportedFormat is returned for source encodings the reader cannot handle
var ErrUnsupportedFormat = errors.New("unsupported source format")

// IOError reports a source file that could not be opened or read
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// ParseError reports a source record that could not be converted into an incident.
// Record is the 1-indexed position of the record in the source. Field is the
// 0-indexed field position, or -1 when the record as a whole is malformed.
// Line and Pos locate malformed delimited text (1-indexed line and byte
// column); both are 0 when the reader did not report a position.
type ParseError struct {
	Record int
	Field  int
	Column string
	Value  string
	Line   int
	Pos    int
	Err    error
}

func (e *ParseError) Error() string {
	if e.Field < 0 && e.Line > 0 {
		return fmt.Sprintf("record %d at line %d column %d: %v", e.Record, e.Line, e.Pos, e.Err)
	}
	if e.Field < 0 {
		return fmt.Sprintf("record %d: %v", e.Record, e.Err)
	}
	return fmt.Sprintf("record %d field %d (%s) value %q: %v", e.Record, e.Field, e.Column, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
