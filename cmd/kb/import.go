package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ersonp/onebox-embed/internal/application/handlers"
)

func newImportCmd() *cobra.Command {
	var opts handlers.ImportOptions

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import knowledge from a file",
		Long: `Adds every non-blank line (text), array element (json) or "text" column
value (csv) as a separate entry. The format is taken from the file extension
unless --format is given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDeps(cmd.Context(), func(deps *Deps) error {
				result, err := deps.ImportHandler.Handle(cmd.Context(), args[0], opts)
				if result != nil {
					verb := "Imported"
					if opts.DryRun {
						verb = "Would import"
					}
					fmt.Fprintf(cmd.OutOrStdout(), "%s %d entries (%d skipped)\n", verb, result.Imported, result.Skipped)
				}
				return err
			})
		},
	}

	cmd.Flags().StringVar(&opts.Format, "format", "auto", "Input format: auto, json, csv, text")
	cmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "Parse and count without embedding or saving")

	return cmd
}
