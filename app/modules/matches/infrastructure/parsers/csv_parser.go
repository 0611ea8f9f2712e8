package parsers

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	matchtypes "github.com/courtside-labs/atp-dashboard/app/modules/matches/domain"
)

// CSVParser parses the ATP match CSV export.
type CSVParser struct{}

// NewCSVParser creates a new CSV parser
func NewCSVParser() *CSVParser {
	return &CSVParser{}
}

// Parse reads every row, header first, and converts them to records.
func (p *CSVParser) Parse(data []byte) ([]matchtypes.MatchRecord, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	// Rows in the season files do not all carry trailing empty columns.
	reader.FieldsPerRecord = -1

	var rows [][]string
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV: %w", err)
		}
		rows = append(rows, record)
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("CSV file is empty: %w", ErrMissingHeader)
	}

	return parseRows(rows)
}
