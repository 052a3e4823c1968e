// Package parser reads incident records from delimited text, Excel and
// Parquet sources, optionally compressed
package parser

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Format identifies how records are encoded in a source file
type Format int

const (
	FormatDelimited Format = iota
	FormatXLSX
	FormatParquet
)

// Options configures how a source is opened
type Options struct {
	// Delimiter overrides the field separator for delimited text.
	// Zero selects it by extension: tab for .tsv, comma otherwise.
	Delimiter rune
}

// RecordReader yields raw records from a source in file order
type RecordReader interface {
	// Read returns the next record, or io.EOF once the source is exhausted
	Read() ([]string, error)
	Close() error
}

// DetectFormat picks the record format and default delimiter from a path
// whose compression extension has already been removed
func DetectFormat(path string) (Format, rune) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return FormatXLSX, 0
	case ".parquet":
		return FormatParquet, 0
	case ".tsv", ".tab":
		return FormatDelimited, '\t'
	default:
		return FormatDelimited, ','
	}
}

// OpenSource opens path and returns a reader for its records.
// Failures to open or decode the file are reported as *IOError.
func OpenSource(path string, opts Options) (RecordReader, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, &IOError{Op: "open", Path: path, Err: err}
	}

	compression, inner := DetectCompression(path)
	reader, closeDecompressor, err := newDecompressor(compression, file)
	if err != nil {
		file.Close()
		return nil, &IOError{Op: "decompress", Path: path, Err: err}
	}

	closeAll := func() error {
		return errors.Join(closeDecompressor(), file.Close())
	}

	format, delimiter := DetectFormat(inner)
	if opts.Delimiter != 0 {
		delimiter = opts.Delimiter
	}

	var rr RecordReader
	switch format {
	case FormatXLSX:
		rr, err = newXLSXReader(reader, path)
	case FormatParquet:
		rr, err = newParquetReader(reader, path)
	default:
		rr, err = newDelimitedReader(reader, path, delimiter), nil
	}
	if err != nil {
		closeAll()
		return nil, err
	}

	return &sourceReader{RecordReader: rr, closeSource: closeAll}, nil
}

// sourceReader closes the underlying file after the record reader
type sourceReader struct {
	RecordReader
	closeSource func() error
}

func (s *sourceReader) Close() error {
	return errors.Join(s.RecordReader.Close(), s.closeSource())
}

// sliceReader serves records that had to be fully decoded up front
type sliceReader struct {
	records [][]string
	next    int
}

func (s *sliceReader) Read() ([]string, error) {
	if s.next >= len(s.records) {
		return nil, io.EOF
	}
	record := s.records[s.next]
	s.next++
	return record, nil
}

func (s *sliceReader) Close() error {
	return nil
}
