// Package openai provides an Embedder for OpenAI-compatible embeddings
// endpoints (OpenAI, Jina AI, Ollama, text-embeddings-inference).
package openai

import (
	"context"
	"fmt"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/ersonp/onebox-embed/internal/domain/entities"
	"github.com/ersonp/onebox-embed/internal/infrastructure/config"
	"github.com/ersonp/onebox-embed/internal/infrastructure/openaicompat"
)

// Embedder implements the Embedder interface over the /embeddings API.
type Embedder struct {
	client  *openai.Client
	model   openai.EmbeddingModel
	timeout time.Duration
}

// NewEmbedder creates a new embedder. It does no network I/O; an
// unreachable endpoint surfaces on the first Embed call.
func NewEmbedder(cfg config.EmbedderConfig) (*Embedder, error) {
	if cfg.APIKey == "" && !cfg.AllowEmptyKey {
		return nil, fmt.Errorf("%w: API key is required for provider %q", entities.ErrProviderUnavailable, cfg.Provider)
	}

	clientCfg, err := openaicompat.ClientConfig(cfg.APIKey, cfg.BaseURL)
	if err != nil {
		return nil, err
	}

	model := openai.SmallEmbedding3
	if cfg.Model != "" {
		model = openai.EmbeddingModel(cfg.Model)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = config.DefaultTimeout
	}

	return &Embedder{
		client:  openai.NewClientWithConfig(clientCfg),
		model:   model,
		timeout: timeout,
	}, nil
}

// Model returns the embedding model name.
func (e *Embedder) Model() string {
	return string(e.model)
}

// Embed generates a vector embedding for the given text.
func (e *Embedder) Embed(ctx context.Context, text string) ([]float32, error) {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	resp, err := e.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Model: e.model,
		Input: []string{text},
	})
	if err != nil {
		return nil, fmt.Errorf("creating embeddings: %w", openaicompat.ClassifyError(err))
	}

	if len(resp.Data) == 0 {
		return nil, fmt.Errorf("%w: no embeddings returned", entities.ErrProviderInference)
	}

	return resp.Data[0].Embedding, nil
}
