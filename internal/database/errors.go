package database

import (
	"errors"
	"fmt"
)

// ErrInvalidTableName is returned when a table name fails identifier validation
var ErrInvalidTableName = errors.New("invalid table name")

// StorageError reports a statement the storage engine rejected
type StorageError struct {
	Op    string
	Table TableName
	Err   error
}

func (e *StorageError) Error() string {
	if e.Table != "" {
		return fmt.Sprintf("storage: %s %s: %v", e.Op, e.Table, e.Err)
	}
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// DecodeError reports a result row that does not fit the incident row shape.
// Row is 1-indexed; Row 0 means the result columns themselves do not fit.
// Column is 0-indexed, -1 when the whole row is at fault.
type DecodeError struct {
	Row    int
	Column int
	Name   string
	Reason string
}

func (e *DecodeError) Error() string {
	switch {
	case e.Row == 0:
		return fmt.Sprintf("decode: result shape: %s", e.Reason)
	case e.Column < 0:
		return fmt.Sprintf("decode: row %d: %s", e.Row, e.Reason)
	default:
		return fmt.Sprintf("decode: row %d column %d (%s): %s", e.Row, e.Column, e.Name, e.Reason)
	}
}
