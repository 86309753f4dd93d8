package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/ersonp/onebox-embed/internal/domain/entities"
	"github.com/ersonp/onebox-embed/internal/domain/ports"
)

// State is the lifecycle stage of an EmbeddingService.
type State int32

// Lifecycle states. A service moves from StateUninitialized to either
// StateReady or StateFailed exactly once and never goes back.
const (
	StateUninitialized State = iota
	StateReady
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateReady:
		return "ready"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("state(%d)", int32(s))
	}
}

// EmbeddingService turns text into embeddings. The provider is loaded
// lazily on the first Embed call and at most once per service; a failed
// load is remembered and returned to every later caller.
type EmbeddingService struct {
	model  string
	load   ports.EmbedderLoader
	logger *zap.Logger

	once     sync.Once
	state    atomic.Int32
	embedder ports.Embedder
	loadErr  error
}

// NewEmbeddingService creates an embedding service. model is the configured
// model name, reported by Model until the provider is loaded.
func NewEmbeddingService(model string, load ports.EmbedderLoader, logger *zap.Logger) *EmbeddingService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EmbeddingService{
		model:  model,
		load:   load,
		logger: logger,
	}
}

// State returns the current lifecycle state.
func (s *EmbeddingService) State() State {
	return State(s.state.Load())
}

// Model returns the name of the embedding model.
func (s *EmbeddingService) Model() string {
	if s.State() == StateReady {
		return s.embedder.Model()
	}
	return s.model
}

// Embed generates a vector embedding for the given text. The text is passed
// to the provider unchanged, including the empty string.
func (s *EmbeddingService) Embed(ctx context.Context, text string) ([]float32, error) {
	embedder, err := s.ready(ctx)
	if err != nil {
		return nil, err
	}

	vector, err := embedder.Embed(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("generating embedding: %w", classify(err, entities.ErrProviderInference))
	}

	if len(vector) == 0 {
		return nil, fmt.Errorf("generating embedding: %w: provider returned an empty vector", entities.ErrProviderInference)
	}

	if err := entities.CheckFinite(vector); err != nil {
		return nil, fmt.Errorf("generating embedding: %w: %w", entities.ErrProviderInference, err)
	}

	s.logger.Debug("embedding generated",
		zap.String("model", embedder.Model()),
		zap.Int("dimensions", len(vector)),
		zap.Int("input_bytes", len(text)),
	)

	return vector, nil
}

func (s *EmbeddingService) ready(ctx context.Context) (ports.Embedder, error) {
	s.once.Do(func() {
		s.logger.Debug("loading embedding provider", zap.String("model", s.model))

		embedder, err := s.load(ctx)
		if err == nil && embedder == nil {
			err = errors.New("provider loader returned no embedder")
		}
		if err != nil {
			s.loadErr = fmt.Errorf("loading embedding model %q: %w", s.model, classify(err, entities.ErrProviderUnavailable))
			s.state.Store(int32(StateFailed))
			return
		}

		s.embedder = embedder
		s.state.Store(int32(StateReady))
		s.logger.Debug("embedding provider ready", zap.String("model", embedder.Model()))
	})

	return s.embedder, s.loadErr
}

// classify tags err with fallback unless it already carries a provider
// classification. Cancellation is left untouched; a deadline is treated as
// the provider being unreachable.
func classify(err, fallback error) error {
	switch {
	case entities.IsProviderError(err), errors.Is(err, context.Canceled):
		return err
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%w: %w", entities.ErrProviderUnavailable, err)
	default:
		return fmt.Errorf("%w: %w", fallback, err)
	}
}
