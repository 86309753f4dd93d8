package parsers

import (
	"encoding/json"
	"fmt"
	"io"
)

// JSONParser parses knowledge from a JSON array. Elements are either
// strings or objects with a "text" field.
type JSONParser struct{}

// Parse reads JSON from the reader and returns parsed entries.
func (p *JSONParser) Parse(r io.Reader) ([]RawEntry, error) {
	var items []json.RawMessage

	decoder := json.NewDecoder(r)
	if err := decoder.Decode(&items); err != nil {
		return nil, fmt.Errorf("parsing JSON: %w", err)
	}

	entries := make([]RawEntry, 0, len(items))
	for i, item := range items {
		entry, err := parseJSONItem(item)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i+1, err)
		}
		// Line numbers are array index + 1
		entry.LineNum = i + 1
		entries = append(entries, entry)
	}

	return entries, nil
}

func parseJSONItem(item json.RawMessage) (RawEntry, error) {
	var text string
	if err := json.Unmarshal(item, &text); err == nil {
		return RawEntry{Text: text}, nil
	}

	var entry RawEntry
	if err := json.Unmarshal(item, &entry); err != nil {
		return RawEntry{}, fmt.Errorf("expected a string or an object with a text field: %w", err)
	}
	return entry, nil
}
