// Package main provides the entry point for the kb CLI application.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ersonp/onebox-embed/internal/application/handlers"
)

var version = "0.1.0-dev"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	err := run(ctx)
	cancel()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
	}
	os.Exit(handlers.ExitCode(err))
}

func run(ctx context.Context) error {
	return newRootCmd().ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "kb",
		Short:         "A semantic knowledge base on top of textembed embeddings",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		newInitCmd(),
		newAddCmd(),
		newSearchCmd(),
		newListCmd(),
		newDeleteCmd(),
		newImportCmd(),
		newStatsCmd(),
		newReplyCmd(),
		newCategorizeCmd(),
	)

	return rootCmd
}
