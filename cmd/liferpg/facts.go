package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ersonp/liferpg-core/internal/application/handlers"
)

func newFactsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "facts",
		Short: "Index and search the fact catalog",
	}

	cmd.AddCommand(
		newFactsIndexCmd(),
		newFactsSearchCmd(),
		newFactsDraftCmd(),
	)

	return cmd
}

func newFactsIndexCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "index",
		Short: "Embed every authored fact into the save's collection",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withFactsHandler(cmd.Context(), func(h *handlers.FactsHandler) error {
				n, err := h.HandleIndex(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintf(stdout, "Indexed %d facts\n", n)
				return nil
			})
		},
	}
}

func newFactsSearchCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Find facts semantically similar to a query",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withFactsHandler(cmd.Context(), func(h *handlers.FactsHandler) error {
				result, err := h.HandleSearch(cmd.Context(), args[0], limit)
				if err != nil {
					return err
				}
				if globalJSON {
					return printJSON(result)
				}

				if len(result.Facts) == 0 {
					fmt.Fprintln(stdout, "No facts found.")
					return nil
				}

				fmt.Fprintf(stdout, "Found %d facts:\n\n", len(result.Facts))
				for i, f := range result.Facts {
					fmt.Fprintf(stdout, "%d. [%.2f] %s (%s)\n", i+1, f.Score, f.Fact.Name, f.Fact.ID)
					if f.Fact.Description != "" {
						fmt.Fprintf(stdout, "   %s\n", f.Fact.Description)
					}
				}
				return nil
			})
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "l", DefaultSearchLimit, "Maximum number of results")

	return cmd
}

func newFactsDraftCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "draft <file>",
		Short: "Draft catalog facts from a prose file ('-' reads stdin)",
		Long: `Asks the configured chat model for the facts a character could learn from
the text and prints them as catalog CSV rows. Facts the content already
defines are reported on stderr and left out.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readInput(cmd.InOrStdin(), args[0])
			if err != nil {
				return err
			}

			return withDraftHandler(cmd.Context(), func(h *handlers.DraftHandler) error {
				result, err := h.HandleDraft(cmd.Context(), text)
				if err != nil {
					return err
				}
				if globalJSON {
					return printJSON(result)
				}

				for _, id := range result.Existing {
					fmt.Fprintf(cmd.ErrOrStderr(), "skipped %s: already in the catalog\n", id)
				}

				w := csv.NewWriter(stdout)
				_ = w.Write([]string{"kind", "id", "name", "description"})
				for _, f := range result.Facts {
					_ = w.Write([]string{"fact", f.ID, f.Name, f.Description})
				}
				w.Flush()
				return w.Error()
			})
		},
	}
}

func readInput(stdin io.Reader, path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return string(data), nil
}
