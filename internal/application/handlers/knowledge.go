package handlers

import (
	"context"
	"fmt"

	"github.com/ersonp/onebox-embed/internal/domain/entities"
	"github.com/ersonp/onebox-embed/internal/domain/services"
)

// KnowledgeHandler handles knowledge base commands.
type KnowledgeHandler struct {
	knowledgeService *services.KnowledgeService
}

// NewKnowledgeHandler creates a new knowledge handler.
func NewKnowledgeHandler(knowledgeService *services.KnowledgeService) *KnowledgeHandler {
	return &KnowledgeHandler{
		knowledgeService: knowledgeService,
	}
}

// SearchResult contains the result of a search.
type SearchResult struct {
	Query   string
	Entries []entities.KnowledgeEntry
}

// Texts returns the text of every hit, best match first.
func (r *SearchResult) Texts() []string {
	texts := make([]string, len(r.Entries))
	for i, e := range r.Entries {
		texts[i] = e.Text
	}
	return texts
}

// HandleAdd stores a new piece of knowledge.
func (h *KnowledgeHandler) HandleAdd(ctx context.Context, text string) (*entities.KnowledgeEntry, error) {
	entry, err := h.knowledgeService.Add(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("adding knowledge: %w", err)
	}
	return entry, nil
}

// HandleSearch searches for knowledge matching the query.
func (h *KnowledgeHandler) HandleSearch(ctx context.Context, query string, limit int) (*SearchResult, error) {
	entries, err := h.knowledgeService.Search(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("searching knowledge: %w", err)
	}

	return &SearchResult{
		Query:   query,
		Entries: entries,
	}, nil
}

// HandleList lists stored knowledge, newest first.
func (h *KnowledgeHandler) HandleList(ctx context.Context, limit int) ([]entities.KnowledgeEntry, error) {
	return h.knowledgeService.List(ctx, limit)
}

// HandleDelete removes a piece of knowledge.
func (h *KnowledgeHandler) HandleDelete(ctx context.Context, id string) error {
	if err := h.knowledgeService.Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting knowledge: %w", err)
	}
	return nil
}
