package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ersonp/onebox-embed/internal/application/handlers"
)

func newReplyCmd() *cobra.Command {
	var (
		contextLimit int
		showContext  bool
	)

	cmd := &cobra.Command{
		Use:   "reply <email|->",
		Short: "Draft a reply to an email",
		Long: `Searches the knowledge base for the entries closest to the email and asks
the chat model for a reply informed by them. Pass - to read the email from stdin.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			email, err := readEmail(cmd.InOrStdin(), args[0])
			if err != nil {
				return err
			}

			return withReplyHandler(cmd.Context(), func(h *handlers.ReplyHandler) error {
				result, err := h.HandleReply(cmd.Context(), email, contextLimit)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				if showContext {
					fmt.Fprintln(out, "Context:")
					for _, text := range result.Context.Texts() {
						fmt.Fprintf(out, "  - %s\n", text)
					}
					fmt.Fprintln(out)
				}
				fmt.Fprintln(out, result.Reply)
				return nil
			})
		},
	}

	cmd.Flags().IntVarP(&contextLimit, "context", "c", DefaultReplyContext, "Number of knowledge entries to use as context")
	cmd.Flags().BoolVar(&showContext, "show-context", false, "Print the knowledge used before the reply")

	return cmd
}

func newCategorizeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "categorize <email|->",
		Short: "Categorize an email",
		Long: `Asks the chat model to label the email as one of: Interested, Meeting Booked,
Not Interested, Spam, Out of Office, None. Pass - to read the email from stdin.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			email, err := readEmail(cmd.InOrStdin(), args[0])
			if err != nil {
				return err
			}

			return withReplyHandler(cmd.Context(), func(h *handlers.ReplyHandler) error {
				category, err := h.HandleCategorize(cmd.Context(), email)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), category)
				return nil
			})
		},
	}
}

// readEmail returns arg, or all of in when arg is "-".
func readEmail(in io.Reader, arg string) (string, error) {
	if arg != "-" {
		return arg, nil
	}
	data, err := io.ReadAll(in)
	if err != nil {
		return "", fmt.Errorf("reading email from stdin: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}
