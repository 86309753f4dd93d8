// Package main provides the entry point for the textembed CLI application.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ersonp/onebox-embed/internal/application/handlers"
	"github.com/ersonp/onebox-embed/internal/domain/ports"
	"github.com/ersonp/onebox-embed/internal/domain/services"
	"github.com/ersonp/onebox-embed/internal/infrastructure/config"
	"github.com/ersonp/onebox-embed/internal/infrastructure/embedder"
	"github.com/ersonp/onebox-embed/internal/infrastructure/logger"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	cancel()
	os.Exit(code)
}

// run executes one invocation and returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	build := func() (ports.Embedder, error) {
		return newEmbeddingService(stderr)
	}

	err := execute(ctx, newRootCmd(build, stdout), args, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
	}
	return handlers.ExitCode(err)
}

func execute(ctx context.Context, cmd *cobra.Command, args []string, stderr io.Writer) error {
	if args == nil {
		args = []string{}
	}
	cmd.SetArgs(args)
	cmd.SetOut(stderr)
	cmd.SetErr(stderr)

	// Cobra routes a leading __complete word to its completion command even
	// with flag parsing disabled, so that text is run directly.
	if len(args) > 0 && strings.HasPrefix(args[0], cobra.ShellCompRequestCmd) {
		if err := cmd.ValidateArgs(args); err != nil {
			return err
		}
		cmd.SetContext(ctx)
		return cmd.RunE(cmd, args)
	}
	return cmd.ExecuteContext(ctx)
}

// newRootCmd builds the command. Flag parsing is off so that every argument,
// including ones that look like flags, is text to embed.
func newRootCmd(build func() (ports.Embedder, error), stdout io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:                "textembed <text>",
		Short:              "Print the embedding vector of a text as a JSON array",
		DisableFlagParsing: true,
		SilenceUsage:       true,
		SilenceErrors:      true,
		Args: func(cmd *cobra.Command, args []string) error {
			_, err := handlers.TextFromArgs(args)
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			emb, err := build()
			if err != nil {
				return err
			}
			return handlers.NewEmbedHandler(emb).Handle(cmd.Context(), args, stdout)
		},
	}
}

// newEmbeddingService loads config from the working directory and returns a
// service that opens the configured provider on first use.
func newEmbeddingService(stderr io.Writer) (*services.EmbeddingService, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("getting current directory: %w", err)
	}

	cfg, err := config.Load(cwd)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	log := logger.NewWithWriter(cfg.Log.Level, stderr)
	log.Debug("config loaded",
		zap.String("provider", cfg.Embedder.Provider),
		zap.String("model", cfg.Embedder.Model),
	)

	return services.NewEmbeddingService(cfg.Embedder.Model, embedder.Loader(cfg.Embedder), log), nil
}
