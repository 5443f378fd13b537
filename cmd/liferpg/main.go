// Package main provides the entry point for the liferpg CLI application.
package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/ersonp/liferpg-core/internal/domain/entities"
)

var (
	version    = "0.1.0-dev"
	globalSave string
	globalSeed uint64
	globalJSON bool
)

func main() {
	// A missing .env is fine; anything else is worth reporting.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "warning: loading .env: %v\n", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	return newRootCmd().ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "liferpg",
		Short:         "A text life simulation: characters, relationships, dialogue and exploration",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return entities.ValidateRelationTables()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&globalSave, "save", "s", "", "Save to operate on")
	rootCmd.PersistentFlags().Uint64Var(&globalSeed, "seed", 0, "Random seed (overrides config; 0 picks a fresh seed)")
	rootCmd.PersistentFlags().BoolVar(&globalJSON, "json", false, "Print results as JSON")

	rootCmd.AddCommand(
		newInitCmd(),
		newSavesCmd(),
		newCharactersCmd(),
		newRelationshipsCmd(),
		newTalkCmd(),
		newPlayCmd(),
		newExploreCmd(),
		newFactsCmd(),
		newExportCmd(),
	)

	return rootCmd
}
