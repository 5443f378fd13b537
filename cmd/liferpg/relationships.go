package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ersonp/liferpg-core/internal/application/handlers"
	"github.com/ersonp/liferpg-core/internal/domain/entities"
)

func newRelationshipsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "relationships",
		Aliases: []string{"rels"},
		Short:   "Build and inspect the relationship graph",
	}

	cmd.AddCommand(
		newRelationshipsGenerateCmd(),
		newRelationshipsRelateCmd(),
		newRelationshipsListCmd(),
	)

	return cmd
}

func newRelationshipsGenerateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "generate",
		Short: "Randomly relate every pair of characters that has not met",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withInternalDeps(cmd.Context(), func(d *internalDeps) error {
				created, err := d.Relationships.HandleGenerate(cmd.Context())
				if err != nil {
					return err
				}
				if globalJSON {
					return printJSON(created)
				}

				counts := make(map[entities.RelationType]int)
				for _, rel := range created {
					counts[rel.Type]++
				}
				fmt.Fprintf(stdout, "Created %d relationships (%d edges, seed %d)\n", len(created)/2, len(created), d.rng.Seed())
				for _, t := range entities.AllRelationTypes {
					if counts[t] > 0 {
						fmt.Fprintf(stdout, "  %-28s %d\n", t.Label(), counts[t])
					}
				}
				return nil
			})
		},
	}
}

func newRelationshipsRelateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "relate <source> <type> <target>",
		Short: "Create a relationship between two characters",
		Long: "Creates a reciprocal relationship. Valid types: " +
			strings.Join(relationTypeNames(), ", "),
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDeps(cmd.Context(), func(d *Deps) error {
				edges, err := d.Relationships.HandleRelate(cmd.Context(), args[0], args[1], args[2])
				if err != nil {
					return err
				}
				if globalJSON {
					return printJSON(edges)
				}
				if len(edges) == 0 {
					fmt.Fprintf(stdout, "%s already has a relationship with %s\n", args[0], args[2])
					return nil
				}
				fmt.Fprintf(stdout, "%s is now %s of %s (value %d)\n",
					args[0], edges[0].Type.Label(), args[2], edges[0].Value)
				return nil
			})
		},
	}
}

func newRelationshipsListCmd() *cobra.Command {
	var relType string

	cmd := &cobra.Command{
		Use:   "list <character>",
		Short: "List a character's relationships",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDeps(cmd.Context(), func(d *Deps) error {
				result, err := d.Relationships.HandleList(cmd.Context(), args[0], handlers.ListOptions{Type: relType})
				if err != nil {
					return err
				}
				if globalJSON {
					return printJSON(result)
				}
				if len(result.Relationships) == 0 {
					fmt.Fprintf(stdout, "%s has no relationships.\n", result.Character.Name)
					return nil
				}

				fmt.Fprintf(stdout, "Relationships of %s:\n", result.Character.Name)
				for _, info := range result.Relationships {
					printRelationshipRow(info.TargetName, info.Relationship)
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&relType, "type", "t", "", "Filter by relationship type")

	return cmd
}

func relationTypeNames() []string {
	names := make([]string, len(entities.AllRelationTypes))
	for i, t := range entities.AllRelationTypes {
		names[i] = string(t)
	}
	return names
}
