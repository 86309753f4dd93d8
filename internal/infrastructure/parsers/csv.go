package parsers

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
)

// CSVParser parses knowledge from CSV format.
type CSVParser struct{}

// Parse reads CSV from the reader and returns parsed entries.
// Expected columns: text. Other columns are ignored.
func (p *CSVParser) Parse(r io.Reader) ([]RawEntry, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	textCol, err := p.readHeader(reader)
	if err != nil {
		return nil, err
	}

	return p.readRecords(reader, textCol)
}

// readHeader reads the header row and returns the index of the text column.
func (p *CSVParser) readHeader(reader *csv.Reader) (int, error) {
	header, err := reader.Read()
	if err != nil {
		return 0, fmt.Errorf("reading CSV header: %w", err)
	}

	for i, col := range header {
		if col == "text" {
			return i, nil
		}
	}

	return 0, errors.New("missing required column: text")
}

// readRecords reads all data rows.
func (p *CSVParser) readRecords(reader *csv.Reader, textCol int) ([]RawEntry, error) {
	var entries []RawEntry
	lineNum := 1 // Header is line 1

	for {
		lineNum++
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}

		var text string
		if textCol < len(record) {
			text = record[textCol]
		}
		entries = append(entries, RawEntry{Text: text, LineNum: lineNum})
	}

	return entries, nil
}
