package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/ersonp/onebox-embed/internal/application/handlers"
	"github.com/ersonp/onebox-embed/internal/domain/services"
	"github.com/ersonp/onebox-embed/internal/infrastructure/config"
	"github.com/ersonp/onebox-embed/internal/infrastructure/embedder"
	llmopenai "github.com/ersonp/onebox-embed/internal/infrastructure/llm/openai"
	"github.com/ersonp/onebox-embed/internal/infrastructure/logger"
	"github.com/ersonp/onebox-embed/internal/infrastructure/relationaldb/sqlite"
	"github.com/ersonp/onebox-embed/internal/infrastructure/vectordb/qdrant"
)

// Deps holds high-level dependencies for commands.
// Only handlers are exposed - services and repositories are internal.
type Deps struct {
	Config           *config.Config
	KnowledgeHandler *handlers.KnowledgeHandler
	ImportHandler    *handlers.ImportHandler
}

// internalDeps holds all dependencies including low-level components.
// Used internally by helper functions.
type internalDeps struct {
	Deps
	repo      *qdrant.Repository
	ledger    *sqlite.Repository
	logger    *zap.Logger
	knowledge *services.KnowledgeService
}

// withDeps loads config and builds dependencies, then calls the provided function.
// It handles cleanup automatically.
func withDeps(ctx context.Context, fn func(*Deps) error) error {
	return withInternalDeps(ctx, func(d *internalDeps) error {
		return fn(&d.Deps)
	})
}

// withInternalDeps provides access to all dependencies including low-level components.
// Used by commands that need direct repository access.
func withInternalDeps(ctx context.Context, fn func(*internalDeps) error) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting current directory: %w", err)
	}

	cfg, err := config.Load(cwd)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	log := logger.New(cfg.Log.Level)
	defer log.Sync() //nolint:errcheck // stderr sync fails on some terminals

	if !config.Exists(cwd) {
		log.Debug("no config file, using defaults", zap.String("path", config.ConfigFilePath(cwd)))
	}

	repo, err := qdrant.NewRepository(cfg.Qdrant)
	if err != nil {
		return fmt.Errorf("creating qdrant repository: %w", err)
	}
	defer repo.Close()

	ledger, err := openLedger(cfg.SQLite)
	if err != nil {
		return err
	}
	defer ledger.Close()

	if err := ledger.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("ensuring sqlite schema: %w", err)
	}

	embeddingService := services.NewEmbeddingService(cfg.Embedder.Model, embedder.Loader(cfg.Embedder), log)
	knowledgeService := services.NewKnowledgeService(embeddingService, repo, ledger)

	deps := &internalDeps{
		Deps: Deps{
			Config:           cfg,
			KnowledgeHandler: handlers.NewKnowledgeHandler(knowledgeService),
			ImportHandler:    handlers.NewImportHandler(services.NewImportService(knowledgeService)),
		},
		repo:      repo,
		ledger:    ledger,
		logger:    log,
		knowledge: knowledgeService,
	}

	return fn(deps)
}

// withReplyHandler builds the chat model client on top of the regular
// dependencies. Only reply and categorize need an LLM key.
func withReplyHandler(ctx context.Context, fn func(*handlers.ReplyHandler) error) error {
	return withInternalDeps(ctx, func(d *internalDeps) error {
		client, err := llmopenai.NewClient(d.Config.LLM)
		if err != nil {
			return fmt.Errorf("creating LLM client: %w", err)
		}
		d.logger.Debug("llm client ready",
			zap.String("base_url", d.Config.LLM.BaseURL),
			zap.String("model", client.Model()),
		)
		return fn(handlers.NewReplyHandler(services.NewReplyService(d.knowledge, client)))
	})
}

// openLedger opens the sqlite ledger, creating its directory if needed.
func openLedger(cfg config.SQLiteConfig) (*sqlite.Repository, error) {
	if cfg.Path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(cfg.Path), 0755); err != nil {
			return nil, fmt.Errorf("creating sqlite directory: %w", err)
		}
	}

	ledger, err := sqlite.NewRepository(cfg)
	if err != nil {
		return nil, fmt.Errorf("creating sqlite repository: %w", err)
	}
	return ledger, nil
}
