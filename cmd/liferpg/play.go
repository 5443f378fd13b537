package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ersonp/liferpg-core/internal/domain/entities"
)

func newPlayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "play <actor> <target>",
		Short: "Hold an interactive conversation",
		Long:  "Pick dialogue options one at a time until the conversation ends.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDeps(cmd.Context(), func(d *Deps) error {
				state := &playState{deps: d}
				if err := state.start(cmd.Context(), args[0], args[1]); err != nil {
					return err
				}
				return state.runInputLoop(cmd.Context(), cmd.InOrStdin())
			})
		},
	}
}

type playState struct {
	deps     *Deps
	actorID  string
	targetID string
	options  []entities.DialogueOption
}

func (s *playState) start(ctx context.Context, actor, target string) error {
	result, err := s.deps.Dialogue.HandleOptions(ctx, actor, target)
	if err != nil {
		return err
	}
	s.actorID, s.targetID = result.Actor.ID, result.Target.ID
	s.options = result.Options

	fmt.Fprintf(stdout, "%s approaches %s. Pick an option by number or name, 'help' for commands.\n",
		result.Actor.Name, result.Target.Name)
	printNumberedOptions(s.options)
	return nil
}

func (s *playState) runInputLoop(ctx context.Context, in io.Reader) error {
	if len(s.options) == 0 {
		fmt.Fprintln(stdout, "Goodbye!")
		return nil
	}

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(stdout, "> ")
		if !scanner.Scan() {
			break
		}

		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}

		if handled, shouldExit := s.handleCommand(ctx, strings.ToLower(input)); handled {
			if shouldExit {
				return nil
			}
			continue
		}

		over, err := s.choose(ctx, input)
		if err != nil {
			fmt.Fprintf(stdout, "Error: %v\n", err)
			continue
		}
		if over {
			fmt.Fprintln(stdout, "Goodbye!")
			return nil
		}
	}

	return scanner.Err()
}

// handleCommand processes user commands. Returns (handled, shouldExit).
func (s *playState) handleCommand(ctx context.Context, input string) (bool, bool) {
	switch input {
	case "quit", "exit":
		fmt.Fprintln(stdout, "Goodbye!")
		return true, true
	case "options", "list":
		printNumberedOptions(s.options)
		return true, false
	case "status":
		if err := s.showStatus(ctx); err != nil {
			fmt.Fprintf(stdout, "Error: %v\n", err)
		}
		return true, false
	case "help":
		s.showHelp()
		return true, false
	default:
		return false, false
	}
}

func (s *playState) showHelp() {
	fmt.Fprintln(stdout, "Commands:")
	fmt.Fprintln(stdout, "  options - Show what you can say")
	fmt.Fprintln(stdout, "  status  - Show how the two of you get along")
	fmt.Fprintln(stdout, "  quit    - Walk away")
	fmt.Fprintln(stdout, "  help    - Show this help")
}

func (s *playState) showStatus(ctx context.Context) error {
	detail, err := s.deps.Characters.HandleShow(ctx, s.actorID)
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "%s (energy %d)\n", detail.Character.Name, detail.Character.Energy)
	for _, info := range detail.Relationships {
		if info.Relationship.TargetCharacterID == s.targetID {
			printRelationshipRow(info.TargetName, info.Relationship)
			return nil
		}
	}
	fmt.Fprintln(stdout, "You have not met yet.")
	return nil
}

// choose resolves the option picked by number or name. It reports whether
// the conversation is over.
func (s *playState) choose(ctx context.Context, input string) (bool, error) {
	name, err := s.pick(input)
	if err != nil {
		return false, err
	}

	result, err := s.deps.Dialogue.HandleTalk(ctx, s.actorID, s.targetID, name)
	if err != nil {
		return false, err
	}

	if printTalkResult(result, s.deps.Content) {
		return true, nil
	}
	if !result.Outcome.ResultApplied {
		return false, nil
	}
	if len(result.NextOptions) == 0 {
		fmt.Fprintln(stdout, "Nothing more to say.")
		return true, nil
	}

	s.options = result.NextOptions
	printNumberedOptions(s.options)
	return false, nil
}

func (s *playState) pick(input string) (string, error) {
	if n, err := strconv.Atoi(input); err == nil {
		if n < 1 || n > len(s.options) {
			return "", fmt.Errorf("pick a number between 1 and %d", len(s.options))
		}
		return s.options[n-1].Name, nil
	}
	for _, o := range s.options {
		if o.Name == input {
			return o.Name, nil
		}
	}
	return "", fmt.Errorf("unknown option %q", input)
}

func printNumberedOptions(opts []entities.DialogueOption) {
	if len(opts) == 0 {
		fmt.Fprintln(stdout, "Nothing to say.")
		return
	}
	for i, o := range opts {
		fmt.Fprintf(stdout, "  %d. %s\n", i+1, o.Label)
	}
}
