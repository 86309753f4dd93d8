package mocks

import (
	"context"

	"github.com/ersonp/onebox-embed/internal/domain/entities"
)

// Ledger is a mock implementation of ports.KnowledgeLedger.
type Ledger struct {
	Entries   []entities.KnowledgeEntry
	Err       error
	DeleteErr error // returned by DeleteEntry and DeleteAllEntries only

	EnsureSchemaCallCount int
	Closed                bool
}

// EnsureSchema records the call.
func (m *Ledger) EnsureSchema(ctx context.Context) error {
	m.EnsureSchemaCallCount++
	return m.Err
}

// SaveEntry appends the entry.
func (m *Ledger) SaveEntry(ctx context.Context, entry *entities.KnowledgeEntry) error {
	if m.Err != nil {
		return m.Err
	}
	m.Entries = append(m.Entries, *entry)
	return nil
}

// FindEntry looks the entry up by ID.
func (m *Ledger) FindEntry(ctx context.Context, id string) (*entities.KnowledgeEntry, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	for i := range m.Entries {
		if m.Entries[i].ID == id {
			entry := m.Entries[i]
			return &entry, nil
		}
	}
	return nil, nil
}

// ListEntries returns entries in reverse insertion order.
func (m *Ledger) ListEntries(ctx context.Context, limit int) ([]entities.KnowledgeEntry, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	var result []entities.KnowledgeEntry
	for i := len(m.Entries) - 1; i >= 0 && len(result) < limit; i-- {
		result = append(result, m.Entries[i])
	}
	return result, nil
}

// DeleteEntry removes the entry if present.
func (m *Ledger) DeleteEntry(ctx context.Context, id string) error {
	if m.Err != nil {
		return m.Err
	}
	if m.DeleteErr != nil {
		return m.DeleteErr
	}
	for i := range m.Entries {
		if m.Entries[i].ID == id {
			m.Entries = append(m.Entries[:i], m.Entries[i+1:]...)
			break
		}
	}
	return nil
}

// DeleteAllEntries empties the ledger.
func (m *Ledger) DeleteAllEntries(ctx context.Context) error {
	if m.Err != nil {
		return m.Err
	}
	if m.DeleteErr != nil {
		return m.DeleteErr
	}
	m.Entries = nil
	return nil
}

// Close marks the ledger closed.
func (m *Ledger) Close() error {
	m.Closed = true
	return nil
}
