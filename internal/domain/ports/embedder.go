package ports

import "context"

// Embedder defines the interface for generating vector embeddings.
type Embedder interface {
	// Embed generates a vector embedding for the given text.
	Embed(ctx context.Context, text string) ([]float32, error)

	// Model returns the name of the embedding model.
	Model() string
}

// EmbedderLoader loads an embedding provider. It is called at most once per
// process by the embedding service.
type EmbedderLoader func(ctx context.Context) (Embedder, error)
