package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newExploreCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "explore <actor> [action]",
		Short: "Perform an exploration action",
		Long:  "Without an action, lists the exploration actions by location and room.",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDeps(cmd.Context(), func(d *Deps) error {
				if len(args) == 1 {
					actions := d.Dialogue.HandleActions()
					if globalJSON {
						return printJSON(actions)
					}
					if len(actions) == 0 {
						fmt.Fprintln(stdout, "No exploration actions defined.")
						return nil
					}
					for _, a := range actions {
						fmt.Fprintf(stdout, "%-20s %s / %s (%d min)\n", a.Label, a.LocationName, a.RoomName, a.NeededMinutes)
					}
					return nil
				}

				result, err := d.Dialogue.HandleExplore(cmd.Context(), args[0], args[1])
				if err != nil {
					return err
				}
				if globalJSON {
					return printJSON(result)
				}

				out := result.Outcome
				if !out.ResultApplied {
					fmt.Fprintln(stdout, "Nothing happens.")
					return nil
				}
				if out.Narration != "" {
					fmt.Fprintln(stdout, out.Narration)
				}
				if out.MinutesElapsed > 0 {
					fmt.Fprintf(stdout, "%d minutes pass.\n", out.MinutesElapsed)
				}
				if out.EnergyChange != nil {
					fmt.Fprintf(stdout, "Energy: %d (%+d)\n", result.Actor.Energy, *out.EnergyChange)
				}
				return nil
			})
		},
	}
}
