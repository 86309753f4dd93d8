package entities

import (
	"strings"
	"time"
)

// KnowledgeEntry is a piece of text stored in the knowledge base together
// with its embedding. Score is the similarity to the query and is only set
// on search results.
type KnowledgeEntry struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Model     string    `json:"model,omitempty"`
	Embedding []float32 `json:"embedding,omitempty"`
	Score     float32   `json:"score,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// IsBlank reports whether the entry text has no visible content.
func (k KnowledgeEntry) IsBlank() bool {
	return strings.TrimSpace(k.Text) == ""
}

// Preview returns the text shortened to at most n runes.
func (k KnowledgeEntry) Preview(n int) string {
	runes := []rune(k.Text)
	if n <= 0 || len(runes) <= n {
		return k.Text
	}
	if n <= 3 {
		return string(runes[:n])
	}
	return string(runes[:n-3]) + "..."
}
