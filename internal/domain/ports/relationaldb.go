package ports

import (
	"context"

	"github.com/ersonp/onebox-embed/internal/domain/entities"
)

// KnowledgeLedger records knowledge entries in a relational store so they
// can be listed without touching the vector index.
type KnowledgeLedger interface {
	// EnsureSchema creates the database schema if it doesn't exist.
	EnsureSchema(ctx context.Context) error

	// SaveEntry records an entry. The embedding is not stored.
	SaveEntry(ctx context.Context, entry *entities.KnowledgeEntry) error

	// FindEntry returns the entry with the given ID, or nil if none exists.
	FindEntry(ctx context.Context, id string) (*entities.KnowledgeEntry, error)

	// ListEntries returns entries newest first.
	ListEntries(ctx context.Context, limit int) ([]entities.KnowledgeEntry, error)

	// DeleteEntry removes an entry. Deleting a missing entry is not an error.
	DeleteEntry(ctx context.Context, id string) error

	// DeleteAllEntries removes every entry.
	DeleteAllEntries(ctx context.Context) error

	// Close closes the database connection.
	Close() error
}
