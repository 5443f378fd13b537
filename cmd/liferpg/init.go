package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ersonp/liferpg-core/internal/application/handlers"
)

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize liferpg in the current directory",
		Long:  "Creates .liferpg/config.yaml with default settings.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cwd, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("getting current directory: %w", err)
			}

			result, err := handlers.NewInitHandler().Handle(cmd.Context(), cwd)
			if err != nil {
				return err
			}

			fmt.Fprintf(stdout, "Initialized liferpg in %s\n", result.ConfigPath)
			fmt.Fprintf(stdout, "Content is read from %s\n", result.ContentDir)
			fmt.Fprintln(stdout, "Use 'liferpg saves create NAME' to start a save.")
			return nil
		},
	}
}
