package parser

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// newXLSXReader loads the rows of the first worksheet. Blank rows are dropped,
// short rows are kept as they are and fail the field count check later.
func newXLSXReader(r io.Reader, path string) (RecordReader, error) {
	xlsxFile, err := excelize.OpenReader(r)
	if err != nil {
		return nil, &IOError{Op: "read xlsx", Path: path, Err: err}
	}
	defer func() {
		_ = xlsxFile.Close()
	}()

	sheetNames := xlsxFile.GetSheetList()
	if len(sheetNames) == 0 {
		return nil, &IOError{Op: "read xlsx", Path: path, Err: fmt.Errorf("no sheets found")}
	}

	rows, err := xlsxFile.GetRows(sheetNames[0])
	if err != nil {
		return nil, &IOError{Op: "read xlsx", Path: path, Err: fmt.Errorf("failed to read sheet %s: %w", sheetNames[0], err)}
	}

	records := make([][]string, 0, len(rows))
	for _, row := range rows {
		if len(row) == 0 {
			continue
		}
		records = append(records, row)
	}

	return &sliceReader{records: records}, nil
}
