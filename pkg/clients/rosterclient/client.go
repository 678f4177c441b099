// Package rosterclient reads roster data from CSV files exported by the
// residency management system. Each reader validates the header row and
// reports parse failures with the offending row number.
package rosterclient

import (
	"encoding/csv"
	"fmt"
	"os"
)

// readRows reads all CSV records from path. Rows may have fewer columns
// than the header; missing cells read as empty.
func readRows(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open roster file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read roster file: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("roster file is empty")
	}

	return rows, nil
}

// fieldIndexes maps each expected header field to its column index
func fieldIndexes(header []string, fields []string) (map[string]int, error) {
	indexes := make(map[string]int)
	for _, field := range fields {
		index := -1
		for i, cell := range header {
			if cell == field {
				index = i
				break
			}
		}
		if index == -1 {
			return nil, fmt.Errorf("missing required field in header: %s", field)
		}
		indexes[field] = index
	}
	return indexes, nil
}

// getField returns the named field from row, or "" when the row is short
func getField(indexes map[string]int, field string, row []string) string {
	index, ok := indexes[field]
	if !ok {
		return ""
	}
	if index >= len(row) {
		return ""
	}
	return row[index]
}
