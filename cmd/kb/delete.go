package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

func newDeleteCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a piece of knowledge",
		Long:  "Removes an entry from both the vector store and the ledger.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			out := cmd.OutOrStdout()

			if !force && !confirmAction(cmd.InOrStdin(), out, fmt.Sprintf("Delete entry %s?", id)) {
				fmt.Fprintln(out, "Cancelled.")
				return nil
			}

			return withDeps(cmd.Context(), func(deps *Deps) error {
				if err := deps.KnowledgeHandler.HandleDelete(cmd.Context(), id); err != nil {
					return err
				}
				fmt.Fprintf(out, "Deleted entry: %s\n", id)
				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Skip confirmation prompt")

	return cmd
}

func confirmAction(in io.Reader, out io.Writer, prompt string) bool {
	reader := bufio.NewReader(in)
	fmt.Fprintf(out, "%s [y/N]: ", prompt)
	response, _ := reader.ReadString('\n') // Error ignored: EOF/error treated as "no"
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes"
}
