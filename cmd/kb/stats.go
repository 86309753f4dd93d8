package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show knowledge base statistics",
		Long:  "Prints the provider, the entry count in the ledger and the point count in Qdrant.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			return withInternalDeps(ctx, func(d *internalDeps) error {
				entries, err := d.ledger.CountEntries(ctx)
				if err != nil {
					return err
				}

				points, err := d.repo.Count(ctx)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Provider:   %s (%s)\n", d.Config.Embedder.Provider, d.Config.Embedder.Model)
				fmt.Fprintf(out, "Collection: %s\n", d.repo.Collection())
				fmt.Fprintf(out, "Entries:    %d\n", entries)
				fmt.Fprintf(out, "Points:     %d\n", points)
				if uint64(entries) != points {
					d.logger.Warn("ledger and vector store are out of sync",
						zap.Int("entries", entries),
						zap.Uint64("points", points),
					)
				}
				return nil
			})
		},
	}
}
