package dataset

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ParseWarning is a non-fatal issue hit while reading the indicator CSV.
type ParseWarning struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

// parseCSV reads delimited bytes into header-keyed rows, returning the
// headers in file order. Real-world exports are messy, so the reader is
// forgiving: variable field counts are padded or truncated with a warning,
// quotes are lazy, a leading BOM is stripped.
func parseCSV(data []byte) ([]string, []map[string]string, []ParseWarning, error) {
	data = bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF})

	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	headers, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil, nil, fmt.Errorf("empty file: no header row found")
		}
		return nil, nil, nil, fmt.Errorf("failed to read header row: %w", err)
	}
	for i, h := range headers {
		headers[i] = strings.TrimSpace(h)
	}
	headerCount := len(headers)

	var rows []map[string]string
	var warnings []ParseWarning
	rowNum := 1 // header is row 1

	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		rowNum++

		if err != nil {
			warnings = append(warnings, ParseWarning{Row: rowNum, Message: fmt.Sprintf("parse error: %v", err)})
			continue
		}

		if len(row) != headerCount {
			if len(row) < headerCount {
				warnings = append(warnings, ParseWarning{
					Row:     rowNum,
					Message: fmt.Sprintf("row has %d columns, expected %d; padding with empty values", len(row), headerCount),
				})
				padded := make([]string, headerCount)
				copy(padded, row)
				row = padded
			} else {
				warnings = append(warnings, ParseWarning{
					Row:     rowNum,
					Message: fmt.Sprintf("row has %d columns, expected %d; truncating extra columns", len(row), headerCount),
				})
				row = row[:headerCount]
			}
		}

		record := make(map[string]string, headerCount)
		for i, h := range headers {
			record[h] = strings.TrimSpace(row[i])
		}
		rows = append(rows, record)
	}

	if len(rows) == 0 {
		return nil, nil, nil, fmt.Errorf("file contains no data rows")
	}
	return headers, rows, warnings, nil
}
