// Package sqlite provides a SQLite implementation of the KnowledgeLedger interface.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/ersonp/onebox-embed/internal/domain/entities"
	"github.com/ersonp/onebox-embed/internal/infrastructure/config"
)

// generateUUID returns a new UUID string.
func generateUUID() string {
	return uuid.New().String()
}

// timeNow returns the current time (can be mocked in tests).
var timeNow = time.Now

// timeLayout is fixed width so that created_at sorts as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Repository implements ports.KnowledgeLedger using SQLite.
type Repository struct {
	db   *sql.DB
	path string
}

// NewRepository creates a new SQLite repository.
func NewRepository(cfg config.SQLiteConfig) (*Repository, error) {
	if cfg.Path == "" {
		return nil, errors.New("sqlite path is required")
	}

	db, err := sql.Open("sqlite", cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite database: %w", err)
	}

	// A :memory: database exists per connection.
	db.SetMaxOpenConns(1)

	// Enable WAL mode for better concurrent read/write performance
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	// Set busy timeout to avoid "database is locked" errors
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting busy timeout: %w", err)
	}

	return &Repository{
		db:   db,
		path: cfg.Path,
	}, nil
}

// Close closes the database connection.
func (r *Repository) Close() error {
	return r.db.Close()
}

// Path returns the database file path.
func (r *Repository) Path() string {
	return r.path
}

// EnsureSchema creates the database schema if it doesn't exist.
func (r *Repository) EnsureSchema(ctx context.Context) error {
	schema := `
		CREATE TABLE IF NOT EXISTS knowledge_entries (
			id TEXT PRIMARY KEY,
			text TEXT NOT NULL,
			model TEXT NOT NULL DEFAULT '',
			created_at TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_knowledge_entries_created ON knowledge_entries(created_at);
	`

	if _, err := r.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}

	return nil
}

// SaveEntry records an entry, filling in the ID and creation time if unset.
func (r *Repository) SaveEntry(ctx context.Context, entry *entities.KnowledgeEntry) error {
	if entry.ID == "" {
		entry.ID = generateUUID()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = timeNow().UTC()
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO knowledge_entries (id, text, model, created_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET text = excluded.text, model = excluded.model
	`, entry.ID, entry.Text, entry.Model, entry.CreatedAt.UTC().Format(timeLayout))
	if err != nil {
		return fmt.Errorf("saving knowledge entry: %w", err)
	}

	return nil
}

// FindEntry returns the entry with the given ID, or nil if none exists.
func (r *Repository) FindEntry(ctx context.Context, id string) (*entities.KnowledgeEntry, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, text, model, created_at FROM knowledge_entries WHERE id = ?
	`, id)

	entry, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("finding knowledge entry: %w", err)
	}

	return &entry, nil
}

// ListEntries returns entries newest first.
func (r *Repository) ListEntries(ctx context.Context, limit int) ([]entities.KnowledgeEntry, error) {
	if limit <= 0 {
		limit = -1 // SQLite: no limit
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, text, model, created_at FROM knowledge_entries
		ORDER BY created_at DESC, rowid DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing knowledge entries: %w", err)
	}
	defer rows.Close()

	var entries []entities.KnowledgeEntry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning knowledge entry: %w", err)
		}
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

// DeleteEntry removes an entry. Deleting a missing entry is not an error.
func (r *Repository) DeleteEntry(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM knowledge_entries WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting knowledge entry: %w", err)
	}
	return nil
}

// DeleteAllEntries removes every entry.
func (r *Repository) DeleteAllEntries(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM knowledge_entries`); err != nil {
		return fmt.Errorf("deleting all knowledge entries: %w", err)
	}
	return nil
}

// CountEntries returns the number of recorded entries.
func (r *Repository) CountEntries(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM knowledge_entries`).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting knowledge entries: %w", err)
	}
	return count, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(s scanner) (entities.KnowledgeEntry, error) {
	var entry entities.KnowledgeEntry
	var createdAt string
	if err := s.Scan(&entry.ID, &entry.Text, &entry.Model, &createdAt); err != nil {
		return entities.KnowledgeEntry{}, err
	}

	ts, err := time.Parse(timeLayout, createdAt)
	if err != nil {
		return entities.KnowledgeEntry{}, fmt.Errorf("parsing created_at %q: %w", createdAt, err)
	}
	entry.CreatedAt = ts

	return entry, nil
}
