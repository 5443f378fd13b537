package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ersonp/liferpg-core/internal/infrastructure/config"
	"github.com/ersonp/liferpg-core/internal/infrastructure/relationaldb/sqlite"
	"github.com/ersonp/liferpg-core/internal/infrastructure/vectordb/qdrant"
)

func newSavesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "saves",
		Short: "Manage saves",
		RunE:  runSavesList,
	}

	cmd.AddCommand(
		newSavesListCmd(),
		newSavesCreateCmd(),
		newSavesDeleteCmd(),
	)

	return cmd
}

func newSavesListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all saves",
		RunE:  runSavesList,
	}
}

func runSavesList(cmd *cobra.Command, args []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting current directory: %w", err)
	}

	saves, err := config.LoadSaves(cwd)
	if err != nil {
		return fmt.Errorf("loading saves: %w", err)
	}

	if len(saves.Saves) == 0 {
		fmt.Fprintln(stdout, "No saves configured.")
		fmt.Fprintln(stdout, "Use 'liferpg saves create NAME' to create a save.")
		return nil
	}

	if globalJSON {
		return printJSON(saves.Saves)
	}

	fmt.Fprintf(stdout, "%-20s %-25s %-12s %s\n", "NAME", "COLLECTION", "CREATED", "DESCRIPTION")
	fmt.Fprintf(stdout, "%-20s %-25s %-12s %s\n", "----", "----------", "-------", "-----------")

	for _, name := range saves.Names() {
		s := saves.Saves[name]
		fmt.Fprintf(stdout, "%-20s %-25s %-12s %s\n", name, s.Collection, s.CreatedAt.Format(time.DateOnly), s.Description)
	}

	return nil
}

func newSavesCreateCmd() *cobra.Command {
	var description string

	cmd := &cobra.Command{
		Use:   "create NAME",
		Short: "Create a new save",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cwd, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("getting current directory: %w", err)
			}
			return createSave(cmd.Context(), cwd, args[0], description, time.Now().UTC())
		},
	}

	cmd.Flags().StringVarP(&description, "description", "d", "", "Save description")

	return cmd
}

// createSave registers a save and creates its database. The config is
// initialized first when missing.
func createSave(ctx context.Context, basePath, name, description string, now time.Time) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("invalid save name %q", name)
	}

	if !config.Exists(basePath) {
		if err := config.WriteDefault(basePath); err != nil {
			return fmt.Errorf("initializing config: %w", err)
		}
		fmt.Fprintf(stdout, "Initialized liferpg in %s\n", config.ConfigDir(basePath))
	}

	saves, err := config.LoadSaves(basePath)
	if err != nil {
		return fmt.Errorf("loading saves: %w", err)
	}
	if saves.Exists(name) {
		return fmt.Errorf("save %q already exists", name)
	}

	if err := os.MkdirAll(config.SaveDir(basePath, name), 0755); err != nil {
		return fmt.Errorf("creating save directory: %w", err)
	}

	db, err := sqlite.NewRepository(config.SQLiteConfig{Path: config.SQLitePathForSave(basePath, name)})
	if err != nil {
		return fmt.Errorf("creating sqlite repository: %w", err)
	}
	defer db.Close()

	if err := db.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}

	entry := config.SaveEntry{
		Collection:  config.GenerateCollectionName(name),
		Description: description,
		CreatedAt:   now,
	}
	saves.Add(name, entry)
	if err := saves.Save(basePath); err != nil {
		return fmt.Errorf("writing saves: %w", err)
	}

	fmt.Fprintf(stdout, "Created save %q\n", name)
	return nil
}

func newSavesDeleteCmd() *cobra.Command {
	var keepIndex bool

	cmd := &cobra.Command{
		Use:   "delete NAME",
		Short: "Delete a save and its data",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cwd, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("getting current directory: %w", err)
			}
			return deleteSave(cmd.Context(), cwd, args[0], !keepIndex)
		},
	}

	cmd.Flags().BoolVar(&keepIndex, "keep-index", false, "Leave the fact catalog collection in Qdrant")

	return cmd
}

// deleteSave removes a save's directory and registry entry. A collection
// that cannot be deleted only produces a warning.
func deleteSave(ctx context.Context, basePath, name string, dropIndex bool) error {
	saves, err := config.LoadSaves(basePath)
	if err != nil {
		return fmt.Errorf("loading saves: %w", err)
	}

	save, err := saves.Get(name)
	if err != nil {
		return err
	}

	if dropIndex {
		if err := deleteCollection(ctx, basePath, save.Collection); err != nil {
			fmt.Fprintf(stdout, "Warning: could not delete collection %q: %v\n", save.Collection, err)
		}
	}

	if err := os.RemoveAll(config.SaveDir(basePath, name)); err != nil {
		return fmt.Errorf("removing save directory: %w", err)
	}

	saves.Remove(name)
	if err := saves.Save(basePath); err != nil {
		return fmt.Errorf("writing saves: %w", err)
	}

	fmt.Fprintf(stdout, "Deleted save %q\n", name)
	return nil
}

func deleteCollection(ctx context.Context, basePath, collection string) error {
	cfg, err := config.Load(basePath)
	if err != nil {
		return err
	}

	qdrantCfg := cfg.Qdrant
	qdrantCfg.Collection = collection

	repo, err := qdrant.NewRepository(qdrantCfg)
	if err != nil {
		return err
	}
	defer repo.Close()

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return repo.DeleteCollection(ctx)
}
