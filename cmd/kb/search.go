package main

import (
	"github.com/spf13/cobra"
)

func newSearchCmd() *cobra.Command {
	var (
		limit   int
		asJSON  bool
		verbose bool
	)

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search the knowledge base",
		Long:  "Embeds the query and prints the most similar entries, best match first.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDeps(cmd.Context(), func(deps *Deps) error {
				result, err := deps.KnowledgeHandler.HandleSearch(cmd.Context(), args[0], limit)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				if asJSON {
					return writeSearchJSON(out, result.Entries)
				}
				return writeSearchText(out, result, verbose)
			})
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "l", DefaultSearchLimit, "Maximum number of results")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print results as JSON")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Show entry IDs and scores")

	return cmd
}
