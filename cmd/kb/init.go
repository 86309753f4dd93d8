package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ersonp/onebox-embed/internal/application/handlers"
	"github.com/ersonp/onebox-embed/internal/infrastructure/config"
	"github.com/ersonp/onebox-embed/internal/infrastructure/vectordb/qdrant"
)

func newInitCmd() *cobra.Command {
	var reset, force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize the knowledge base",
		Long: `Creates a .textembed directory with default configuration, the Qdrant collection and the SQLite ledger.

With --reset the collection is dropped and the ledger emptied first, which is
needed after switching to a model with different dimensions.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if reset && !force && !confirmAction(cmd.InOrStdin(), cmd.OutOrStdout(), "Delete all knowledge entries?") {
				fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
				return nil
			}
			return runInit(cmd, reset)
		},
	}

	cmd.Flags().BoolVar(&reset, "reset", false, "Drop the collection and empty the ledger first")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Skip confirmation prompt for --reset")

	return cmd
}

func runInit(cmd *cobra.Command, reset bool) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting current directory: %w", err)
	}

	created, err := config.WriteDefault(cwd)
	if err != nil {
		return fmt.Errorf("writing default config: %w", err)
	}
	if created {
		fmt.Fprintf(out, "Created %s\n", config.ConfigFilePath(cwd))
	} else {
		fmt.Fprintf(out, "Using existing %s\n", config.ConfigFilePath(cwd))
	}

	cfg, err := config.Load(cwd)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	repo, err := qdrant.NewRepository(cfg.Qdrant)
	if err != nil {
		return fmt.Errorf("connecting to qdrant: %w", err)
	}
	defer repo.Close()

	ledger, err := openLedger(cfg.SQLite)
	if err != nil {
		return err
	}
	defer ledger.Close()

	result, err := handlers.NewInitHandler(repo, ledger).Handle(ctx, handlers.InitOptions{
		VectorSize: uint64(max(cfg.Embedder.Dimensions, 0)),
		Reset:      reset,
	})
	if err != nil {
		return err
	}

	if result.Reset {
		fmt.Fprintln(out, "Removed existing knowledge entries")
	}
	fmt.Fprintf(out, "Created Qdrant collection: %s (%d dimensions)\n", repo.Collection(), result.VectorSize)
	fmt.Fprintf(out, "Created ledger: %s\n", ledger.Path())
	fmt.Fprintln(out, "Knowledge base initialized successfully!")

	return nil
}
