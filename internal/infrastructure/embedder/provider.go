// Package embedder resolves an embedding provider by name.
package embedder

import (
	"context"
	"fmt"
	"sort"

	"github.com/ersonp/onebox-embed/internal/domain/entities"
	"github.com/ersonp/onebox-embed/internal/domain/ports"
	"github.com/ersonp/onebox-embed/internal/infrastructure/config"
	"github.com/ersonp/onebox-embed/internal/infrastructure/embedder/openai"
	"github.com/ersonp/onebox-embed/internal/infrastructure/embedder/subprocess"
)

type factory func(cfg config.EmbedderConfig) (ports.Embedder, error)

var factories = map[string]factory{
	config.ProviderJina: func(cfg config.EmbedderConfig) (ports.Embedder, error) {
		return openai.NewEmbedder(cfg)
	},
	config.ProviderOpenAI: func(cfg config.EmbedderConfig) (ports.Embedder, error) {
		return openai.NewEmbedder(cfg)
	},
	config.ProviderSubprocess: func(cfg config.EmbedderConfig) (ports.Embedder, error) {
		return subprocess.NewEmbedder(cfg)
	},
}

// Providers returns the known provider names, sorted.
func Providers() []string {
	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Open creates the embedder named by cfg.Provider.
func Open(cfg config.EmbedderConfig) (ports.Embedder, error) {
	create, ok := factories[cfg.Provider]
	if !ok {
		return nil, fmt.Errorf("%w: unknown provider %q (known: %v)", entities.ErrProviderUnavailable, cfg.Provider, Providers())
	}

	emb, err := create(cfg)
	if err != nil {
		return nil, fmt.Errorf("opening %s provider: %w", cfg.Provider, err)
	}

	return emb, nil
}

// Loader returns a ports.EmbedderLoader that opens cfg on first use.
func Loader(cfg config.EmbedderConfig) ports.EmbedderLoader {
	return func(ctx context.Context) (ports.Embedder, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return Open(cfg)
	}
}
