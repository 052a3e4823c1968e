package parser

import (
	"bytes"
	"context"
	"errors"
	"io"

	"github.com/apache/arrow/go/v18/arrow/array"
	"github.com/apache/arrow/go/v18/arrow/memory"
	pqfile "github.com/apache/arrow/go/v18/parquet/file"
	"github.com/apache/arrow/go/v18/parquet/pqarrow"
)

// newParquetReader decodes every row of a Parquet file into string fields,
// in schema column order. Nulls become empty strings.
func newParquetReader(r io.Reader, path string) (RecordReader, error) {
	// Parquet requires random access
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &IOError{Op: "read parquet", Path: path, Err: err}
	}
	if len(data) == 0 {
		return nil, &IOError{Op: "read parquet", Path: path, Err: errors.New("empty parquet file")}
	}

	pqReader, err := pqfile.NewParquetReader(bytes.NewReader(data))
	if err != nil {
		return nil, &IOError{Op: "read parquet", Path: path, Err: err}
	}
	defer pqReader.Close()

	arrowReader, err := pqarrow.NewFileReader(pqReader, pqarrow.ArrowReadProperties{}, memory.DefaultAllocator)
	if err != nil {
		return nil, &IOError{Op: "read parquet", Path: path, Err: err}
	}

	table, err := arrowReader.ReadTable(context.Background())
	if err != nil {
		return nil, &IOError{Op: "read parquet", Path: path, Err: err}
	}
	defer table.Release()

	tableReader := array.NewTableReader(table, 0)
	defer tableReader.Release()

	var records [][]string
	for tableReader.Next() {
		batch := tableReader.Record()
		for i := 0; i < int(batch.NumRows()); i++ {
			row := make([]string, batch.NumCols())
			for j, col := range batch.Columns() {
				if col.IsNull(i) {
					continue
				}
				row[j] = col.ValueStr(i)
			}
			records = append(records, row)
		}
	}
	if err := tableReader.Err(); err != nil {
		return nil, &IOError{Op: "read parquet", Path: path, Err: err}
	}

	return &sliceReader{records: records}, nil
}
