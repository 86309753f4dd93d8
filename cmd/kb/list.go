package main

import (
	"github.com/spf13/cobra"
)

func newListCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored knowledge",
		Long:  "Lists knowledge entries from the ledger, newest first.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDeps(cmd.Context(), func(deps *Deps) error {
				entries, err := deps.KnowledgeHandler.HandleList(cmd.Context(), limit)
				if err != nil {
					return err
				}
				return writeEntryTable(cmd.OutOrStdout(), entries)
			})
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "l", DefaultListLimit, "Maximum number of entries to display")

	return cmd
}
