package source

import (
	"encoding/csv"
	"fmt"
	"io"
)

// CSVReader handles CSV exports of the report. Each record becomes one
// line with its fields space-joined, so a row exported from the tabular
// dump reads the same as in data.txt.
type CSVReader struct{}

func (p *CSVReader) ReadLines(r io.Reader, filename string) ([]string, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}

	lines := make([]string, 0, len(records))
	for _, rec := range records {
		lines = append(lines, joinFields(rec))
	}
	return lines, nil
}
