// Package mocks provides mock implementations for testing.
package mocks

import (
	"context"
	"sync"

	"github.com/ersonp/onebox-embed/internal/domain/ports"
)

// Embedder is a mock implementation of ports.Embedder.
type Embedder struct {
	EmbeddingResult []float32
	ModelName       string
	Err             error

	mu        sync.Mutex
	calls     int
	lastInput string
}

// Embed returns the configured embedding or error.
func (m *Embedder) Embed(ctx context.Context, text string) ([]float32, error) {
	m.mu.Lock()
	m.calls++
	m.lastInput = text
	m.mu.Unlock()

	if m.Err != nil {
		return nil, m.Err
	}
	return m.EmbeddingResult, nil
}

// Model returns the configured model name.
func (m *Embedder) Model() string {
	return m.ModelName
}

// Calls returns how many times Embed was called.
func (m *Embedder) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// LastInput returns the text passed to the most recent Embed call.
func (m *Embedder) LastInput() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastInput
}

// Loader counts how often a provider is loaded and hands out Embedder.
type Loader struct {
	Embedder *Embedder
	Err      error

	mu    sync.Mutex
	loads int
}

// Load implements ports.EmbedderLoader.
func (l *Loader) Load(ctx context.Context) (ports.Embedder, error) {
	l.mu.Lock()
	l.loads++
	l.mu.Unlock()

	if l.Err != nil {
		return nil, l.Err
	}
	return l.Embedder, nil
}

// Loads returns how many times Load was called.
func (l *Loader) Loads() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.loads
}
