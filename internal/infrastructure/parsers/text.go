package parsers

import (
	"bufio"
	"fmt"
	"io"
)

// maxLineSize bounds a single line of a text import.
const maxLineSize = 1 << 20

// TextParser parses one entry per line.
type TextParser struct{}

// Parse reads lines from the reader. Blank lines are kept so the importer
// can report them as skipped.
func (p *TextParser) Parse(r io.Reader) ([]RawEntry, error) {
	var entries []RawEntry

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		entries = append(entries, RawEntry{Text: scanner.Text(), LineNum: lineNum})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("line %d: %w", lineNum+1, err)
	}

	return entries, nil
}
