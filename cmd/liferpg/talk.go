package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newTalkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "talk <actor> <target> [option]",
		Short: "Talk to another character",
		Long: `Without an option, lists what the actor can say to open a conversation.
With an option, resolves it, applies the outcome and lists the follow-ups.`,
		Args: cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDeps(cmd.Context(), func(d *Deps) error {
				if len(args) == 2 {
					result, err := d.Dialogue.HandleOptions(cmd.Context(), args[0], args[1])
					if err != nil {
						return err
					}
					if globalJSON {
						return printJSON(result)
					}
					fmt.Fprintf(stdout, "%s approaches %s.\n", result.Actor.Name, result.Target.Name)
					printOptions(result.Options)
					return nil
				}

				result, err := d.Dialogue.HandleTalk(cmd.Context(), args[0], args[1], args[2])
				if err != nil {
					return err
				}
				if globalJSON {
					return printJSON(result)
				}

				if printTalkResult(result, d.Content) {
					return nil
				}
				printOptions(result.NextOptions)
				return nil
			})
		},
	}
}
