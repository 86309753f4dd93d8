package ports

import (
	"context"

	"github.com/ersonp/onebox-embed/internal/domain/entities"
)

// VectorDB defines the interface for vector database operations on
// knowledge entries.
type VectorDB interface {
	// Save stores an entry with its embedding.
	Save(ctx context.Context, entry entities.KnowledgeEntry) error

	// Search performs a semantic search and returns similar entries,
	// best match first.
	Search(ctx context.Context, embedding []float32, limit int) ([]entities.KnowledgeEntry, error)

	// Delete removes an entry by its ID.
	Delete(ctx context.Context, id string) error
}
