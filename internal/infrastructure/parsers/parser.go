// Package parsers provides parsers for importing knowledge from various formats.
package parsers

import (
	"io"
	"path/filepath"
	"strings"
)

// RawEntry represents a piece of knowledge parsed from an external source.
type RawEntry struct {
	Text    string `json:"text"`
	LineNum int    `json:"-"` // Line number in source file (set by parser)
}

// Parser defines the interface for parsing knowledge from various formats.
type Parser interface {
	Parse(r io.Reader) ([]RawEntry, error)
}

// Formats lists the supported format names.
var Formats = []string{"json", "csv", "text"}

// ForFormat returns the appropriate parser for the given format.
func ForFormat(format string) Parser {
	switch strings.ToLower(format) {
	case "json":
		return &JSONParser{}
	case "csv":
		return &CSVParser{}
	case "text", "txt":
		return &TextParser{}
	default:
		return nil
	}
}

// ForFile returns the appropriate parser based on file extension.
func ForFile(filename string) Parser {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".json":
		return &JSONParser{}
	case ".csv":
		return &CSVParser{}
	case ".txt", ".md":
		return &TextParser{}
	default:
		return nil
	}
}
