package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ersonp/onebox-embed/internal/domain/entities"
	"github.com/ersonp/onebox-embed/internal/domain/ports"
)

// DefaultSearchLimit is the default number of results to return.
const DefaultSearchLimit = 10

// timeNow returns the current time (can be mocked in tests).
var timeNow = time.Now

// newID returns a fresh entry ID (can be mocked in tests).
var newID = func() string { return uuid.New().String() }

// KnowledgeService stores texts with their embeddings and finds the ones
// closest to a query.
type KnowledgeService struct {
	embedder ports.Embedder
	vectorDB ports.VectorDB
	ledger   ports.KnowledgeLedger
}

// NewKnowledgeService creates a new knowledge service.
func NewKnowledgeService(embedder ports.Embedder, vectorDB ports.VectorDB, ledger ports.KnowledgeLedger) *KnowledgeService {
	return &KnowledgeService{
		embedder: embedder,
		vectorDB: vectorDB,
		ledger:   ledger,
	}
}

// Add embeds text and stores it. Blank text is rejected.
func (s *KnowledgeService) Add(ctx context.Context, text string) (*entities.KnowledgeEntry, error) {
	entry := &entities.KnowledgeEntry{Text: text}
	if entry.IsBlank() {
		return nil, fmt.Errorf("%w: knowledge text is empty", entities.ErrInvalidInput)
	}

	embedding, err := s.embedder.Embed(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("embedding knowledge text: %w", err)
	}

	entry.ID = newID()
	entry.Model = s.embedder.Model()
	entry.Embedding = embedding
	entry.CreatedAt = timeNow().UTC()

	if err := s.vectorDB.Save(ctx, *entry); err != nil {
		return nil, fmt.Errorf("saving knowledge vector: %w", err)
	}

	if err := s.ledger.SaveEntry(ctx, entry); err != nil {
		// A vector must not outlive its ledger row.
		if delErr := s.vectorDB.Delete(ctx, entry.ID); delErr != nil {
			err = errors.Join(err, fmt.Errorf("rolling back vector %s: %w", entry.ID, delErr))
		}
		return nil, fmt.Errorf("recording knowledge entry: %w", err)
	}

	return entry, nil
}

// Search finds entries semantically similar to the query, best match first.
func (s *KnowledgeService) Search(ctx context.Context, query string, limit int) ([]entities.KnowledgeEntry, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("%w: search query is empty", entities.ErrInvalidInput)
	}
	if limit <= 0 {
		limit = DefaultSearchLimit
	}

	embedding, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("generating query embedding: %w", err)
	}

	results, err := s.vectorDB.Search(ctx, embedding, limit)
	if err != nil {
		return nil, fmt.Errorf("searching knowledge: %w", err)
	}

	return results, nil
}

// List returns recorded entries, newest first.
func (s *KnowledgeService) List(ctx context.Context, limit int) ([]entities.KnowledgeEntry, error) {
	if limit <= 0 {
		limit = DefaultSearchLimit
	}

	entries, err := s.ledger.ListEntries(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("listing knowledge: %w", err)
	}

	return entries, nil
}

// Delete removes an entry from both stores.
func (s *KnowledgeService) Delete(ctx context.Context, id string) error {
	entry, err := s.ledger.FindEntry(ctx, id)
	if err != nil {
		return fmt.Errorf("finding knowledge entry: %w", err)
	}
	if entry == nil {
		return fmt.Errorf("%w: knowledge entry not found: %s", entities.ErrInvalidInput, id)
	}

	if err := s.vectorDB.Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting knowledge vector: %w", err)
	}

	if err := s.ledger.DeleteEntry(ctx, id); err != nil {
		return fmt.Errorf("deleting knowledge entry: vector %s already removed, ledger row kept: %w", id, err)
	}

	return nil
}
