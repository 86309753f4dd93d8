package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/ersonp/onebox-embed/internal/application/handlers"
	"github.com/ersonp/onebox-embed/internal/domain/entities"
)

// searchHit is the JSON shape of one search result.
type searchHit struct {
	ID    string  `json:"id"`
	Text  string  `json:"text"`
	Score float32 `json:"score"`
}

func writeSearchJSON(w io.Writer, entries []entities.KnowledgeEntry) error {
	hits := make([]searchHit, 0, len(entries))
	for _, e := range entries {
		hits = append(hits, searchHit{ID: e.ID, Text: e.Text, Score: e.Score})
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(hits)
}

func writeSearchText(w io.Writer, result *handlers.SearchResult, verbose bool) error {
	if len(result.Entries) == 0 {
		_, err := fmt.Fprintln(w, "No matching knowledge found.")
		return err
	}

	if verbose {
		if _, err := fmt.Fprintf(w, "Results for %q:\n", result.Query); err != nil {
			return err
		}
	}
	for i, e := range result.Entries {
		if verbose {
			if _, err := fmt.Fprintf(w, "%d. [%.4f] %s\n   ID: %s\n", i+1, e.Score, e.Text, e.ID); err != nil {
				return err
			}
			continue
		}
		if _, err := fmt.Fprintln(w, e.Text); err != nil {
			return err
		}
	}
	return nil
}

func writeEntryTable(w io.Writer, entries []entities.KnowledgeEntry) error {
	if len(entries) == 0 {
		_, err := fmt.Fprintln(w, "No knowledge stored.")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tCREATED\tTEXT")
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", e.ID, e.CreatedAt.Local().Format(time.DateTime), e.Preview(PreviewLength))
	}
	return tw.Flush()
}
