package source

import (
	"encoding/csv"
	"fmt"
	"io"
)

// CSVExtractor handles spreadsheet itineraries exported as CSV, one activity
// per row. Columns are found by content, so header names and order do not
// matter.
type CSVExtractor struct{}

func (e *CSVExtractor) Extract(r io.Reader, filename string) (string, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return "", fmt.Errorf("parse csv: %w", err)
	}

	var out rows
	for _, rec := range records {
		out.add(rec)
	}
	return out.String(), nil
}
