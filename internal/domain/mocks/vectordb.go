package mocks

import (
	"context"
	"sort"

	"github.com/ersonp/onebox-embed/internal/domain/entities"
)

// VectorDB is a mock implementation of ports.VectorDB and
// ports.CollectionManager.
type VectorDB struct {
	Entries []entities.KnowledgeEntry
	Err     error

	// Collection errors (separate from Err for fine-grained control)
	EnsureCollectionErr error
	DeleteCollectionErr error

	// Call tracking
	SaveCallCount             int
	LastSaved                 entities.KnowledgeEntry
	DeletedIDs                []string
	EnsureCollectionCallCount int
	LastVectorSize            uint64
	DeleteCollectionCallCount int
}

// EnsureCollection creates the collection if it doesn't exist.
func (m *VectorDB) EnsureCollection(ctx context.Context, vectorSize uint64) error {
	m.EnsureCollectionCallCount++
	m.LastVectorSize = vectorSize
	return m.EnsureCollectionErr
}

// DeleteCollection removes the collection and all its data.
func (m *VectorDB) DeleteCollection(ctx context.Context) error {
	m.DeleteCollectionCallCount++
	return m.DeleteCollectionErr
}

// Save stores a single entry.
func (m *VectorDB) Save(ctx context.Context, entry entities.KnowledgeEntry) error {
	m.SaveCallCount++
	m.LastSaved = entry
	if m.Err != nil {
		return m.Err
	}
	m.Entries = append(m.Entries, entry)
	return nil
}

// Search returns stored entries ordered by their preset Score.
func (m *VectorDB) Search(ctx context.Context, embedding []float32, limit int) ([]entities.KnowledgeEntry, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	results := make([]entities.KnowledgeEntry, len(m.Entries))
	copy(results, m.Entries)
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if limit < len(results) {
		results = results[:limit]
	}
	return results, nil
}

// Delete removes an entry by ID.
func (m *VectorDB) Delete(ctx context.Context, id string) error {
	m.DeletedIDs = append(m.DeletedIDs, id)
	if m.Err != nil {
		return m.Err
	}
	for i := range m.Entries {
		if m.Entries[i].ID == id {
			m.Entries = append(m.Entries[:i], m.Entries[i+1:]...)
			break
		}
	}
	return nil
}
