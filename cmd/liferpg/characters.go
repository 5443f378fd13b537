package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func newCharactersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "characters",
		Aliases: []string{"chars"},
		Short:   "Generate and inspect characters",
	}

	cmd.AddCommand(
		newCharactersGenerateCmd(),
		newCharactersListCmd(),
		newCharactersShowCmd(),
		newCharactersAddTraitCmd(),
		newCharactersHistoryCmd(),
	)

	return cmd
}

func newCharactersGenerateCmd() *cobra.Command {
	var count int

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate random characters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withInternalDeps(cmd.Context(), func(d *internalDeps) error {
				created, err := d.Characters.HandleGenerate(cmd.Context(), count)
				if err != nil {
					return err
				}
				if globalJSON {
					return printJSON(created)
				}

				now := time.Now().UTC()
				printCharacterHeader()
				for i := range created {
					printCharacterRow(&created[i], now)
				}
				fmt.Fprintf(stdout, "\nGenerated %d characters (seed %d)\n", len(created), d.rng.Seed())
				return nil
			})
		},
	}

	cmd.Flags().IntVarP(&count, "count", "n", DefaultGenerateCount, "Number of characters to generate")

	return cmd
}

func newCharactersListCmd() *cobra.Command {
	var limit, offset int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List characters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDeps(cmd.Context(), func(d *Deps) error {
				result, err := d.Characters.HandleList(cmd.Context(), limit, offset)
				if err != nil {
					return err
				}
				if globalJSON {
					return printJSON(result)
				}

				if result.Total == 0 {
					fmt.Fprintln(stdout, "No characters yet. Use 'liferpg characters generate' to create some.")
					return nil
				}

				now := time.Now().UTC()
				printCharacterHeader()
				for _, c := range result.Characters {
					printCharacterRow(c, now)
				}
				fmt.Fprintf(stdout, "\nShowing %d of %d characters\n", len(result.Characters), result.Total)
				return nil
			})
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "l", DefaultListLimit, "Maximum number of characters")
	cmd.Flags().IntVar(&offset, "offset", 0, "Number of characters to skip")

	return cmd
}

func newCharactersShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <character>",
		Short: "Show a character by ID or name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDeps(cmd.Context(), func(d *Deps) error {
				detail, err := d.Characters.HandleShow(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if globalJSON {
					return printJSON(detail)
				}

				c := detail.Character
				fmt.Fprintf(stdout, "%s (%s)\n", c.Name, c.ID)
				fmt.Fprintf(stdout, "  Sex:         %s\n", c.Sex.Label())
				fmt.Fprintf(stdout, "  Born:        %s (age %d)\n", c.BirthDate.Format(time.DateOnly), detail.Age)
				fmt.Fprintf(stdout, "  Height:      %d cm\n", c.Height)
				fmt.Fprintf(stdout, "  Weight:      %d kg\n", c.Weight)
				fmt.Fprintf(stdout, "  Muscle mass: %d kg\n", c.MuscleMass)
				fmt.Fprintf(stdout, "  Energy:      %d\n", c.Energy)
				fmt.Fprintf(stdout, "  Traits:      %v\n", detail.Traits)
				fmt.Fprintf(stdout, "  Knows:       %v\n", detail.Facts)

				if len(detail.Relationships) > 0 {
					fmt.Fprintln(stdout, "\nRelationships:")
					for _, info := range detail.Relationships {
						printRelationshipRow(info.TargetName, info.Relationship)
					}
				}
				return nil
			})
		},
	}
}

func newCharactersAddTraitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add-trait <character> <trait>",
		Short: "Give a character a trait defined in the content",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDeps(cmd.Context(), func(d *Deps) error {
				if err := d.Characters.HandleAddTrait(cmd.Context(), args[0], args[1]); err != nil {
					return err
				}
				fmt.Fprintf(stdout, "Added trait %s to %s\n", quote(args[1]), args[0])
				return nil
			})
		},
	}
}

func newCharactersHistoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "history <character>",
		Short: "Show what a character has done",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDeps(cmd.Context(), func(d *Deps) error {
				entries, err := d.Characters.HandleHistory(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if globalJSON {
					return printJSON(entries)
				}
				if len(entries) == 0 {
					fmt.Fprintln(stdout, "No history.")
					return nil
				}
				for _, e := range entries {
					fmt.Fprintf(stdout, "%s  %-20s %s\n", e.CreatedAt.Format(time.DateTime), e.Action, e.Summary())
				}
				return nil
			})
		},
	}
}
