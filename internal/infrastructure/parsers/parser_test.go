package parsers

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONParser_Parse_ValidInput(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []RawEntry
	}{
		{
			name:  "strings",
			input: `["share the meeting link", "office hours are 9 to 5"]`,
			expected: []RawEntry{
				{Text: "share the meeting link", LineNum: 1},
				{Text: "office hours are 9 to 5", LineNum: 2},
			},
		},
		{
			name:  "objects",
			input: `[{"text": "share the meeting link", "tag": "sales"}]`,
			expected: []RawEntry{
				{Text: "share the meeting link", LineNum: 1},
			},
		},
		{
			name:  "mixed",
			input: `["a", {"text": "b"}]`,
			expected: []RawEntry{
				{Text: "a", LineNum: 1},
				{Text: "b", LineNum: 2},
			},
		},
		{
			name:     "empty array",
			input:    "[]",
			expected: []RawEntry{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parser := &JSONParser{}
			result, err := parser.Parse(strings.NewReader(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestJSONParser_Parse_InvalidInput(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"not an array", `{"text": "x"}`},
		{"number element", `[1]`},
		{"malformed", `["x"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := (&JSONParser{}).Parse(strings.NewReader(tt.input))
			require.Error(t, err)
		})
	}
}

func TestCSVParser_Parse(t *testing.T) {
	input := "id,text\n1,share the meeting link\n2,\"office hours, 9 to 5\"\n3\n"

	result, err := (&CSVParser{}).Parse(strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, []RawEntry{
		{Text: "share the meeting link", LineNum: 2},
		{Text: "office hours, 9 to 5", LineNum: 3},
		{Text: "", LineNum: 4},
	}, result)
}

func TestCSVParser_Parse_MissingTextColumn(t *testing.T) {
	_, err := (&CSVParser{}).Parse(strings.NewReader("id,body\n1,x\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing required column: text")
}

func TestCSVParser_Parse_Empty(t *testing.T) {
	_, err := (&CSVParser{}).Parse(strings.NewReader(""))
	require.Error(t, err)
}

func TestTextParser_Parse(t *testing.T) {
	result, err := (&TextParser{}).Parse(strings.NewReader("first\n\n  third  \n"))
	require.NoError(t, err)

	assert.Equal(t, []RawEntry{
		{Text: "first", LineNum: 1},
		{Text: "", LineNum: 2},
		{Text: "  third  ", LineNum: 3},
	}, result)
}

func TestForFormat(t *testing.T) {
	assert.IsType(t, &JSONParser{}, ForFormat("JSON"))
	assert.IsType(t, &CSVParser{}, ForFormat("csv"))
	assert.IsType(t, &TextParser{}, ForFormat("text"))
	assert.IsType(t, &TextParser{}, ForFormat("txt"))
	assert.Nil(t, ForFormat("xml"))
}

func TestForFile(t *testing.T) {
	assert.IsType(t, &JSONParser{}, ForFile("kb.json"))
	assert.IsType(t, &CSVParser{}, ForFile("KB.CSV"))
	assert.IsType(t, &TextParser{}, ForFile("notes.txt"))
	assert.IsType(t, &TextParser{}, ForFile("notes.md"))
	assert.Nil(t, ForFile("kb.xml"))
	assert.Nil(t, ForFile("noext"))
}
