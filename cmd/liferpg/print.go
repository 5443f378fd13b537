package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/ersonp/liferpg-core/internal/application/handlers"
	"github.com/ersonp/liferpg-core/internal/domain/entities"
	"github.com/ersonp/liferpg-core/internal/infrastructure/content"
)

// stdout is swapped by tests.
var stdout io.Writer = os.Stdout

func printJSON(v any) error {
	encoder := json.NewEncoder(stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func printCharacterRow(c *entities.Character, now time.Time) {
	fmt.Fprintf(stdout, "%-36s %-24s %-7s %4d %6d %6d %4d\n",
		c.ID, truncate(c.Name, 24), c.Sex.Label(), c.AgeAt(now), c.Height, c.Weight, c.Energy)
}

func printCharacterHeader() {
	fmt.Fprintf(stdout, "%-36s %-24s %-7s %4s %6s %6s %4s\n", "ID", "NAME", "SEX", "AGE", "HEIGHT", "WEIGHT", "NRG")
}

func printRelationshipRow(name string, rel entities.Relationship) {
	fmt.Fprintf(stdout, "%-24s %-24s %5d  %s .. %s\n",
		truncate(name, 24), rel.Type.Label(), rel.Value,
		rel.FirstInteraction.Format(time.DateOnly), rel.LastInteraction.Format(time.DateOnly))
}

func printOptions(opts []entities.DialogueOption) {
	if len(opts) == 0 {
		fmt.Fprintln(stdout, "Nothing more to say.")
		return
	}
	fmt.Fprintln(stdout, "Options:")
	for _, o := range opts {
		fmt.Fprintf(stdout, "  %-20s %s\n", o.Name, o.Label)
	}
}

// printTalkResult prints what was said and what changed. It reports whether
// the conversation is over.
func printTalkResult(result *handlers.TalkResult, defs *content.Definitions) bool {
	out := result.Outcome
	if out.SpokenText != "" {
		fmt.Fprintf(stdout, "%s: %s\n", result.Actor.Name, quote(out.SpokenText))
	}
	if !out.ResultApplied {
		fmt.Fprintln(stdout, "Nothing happens.")
		return false
	}
	if out.ResultSpokenText != "" {
		fmt.Fprintf(stdout, "%s: %s\n", result.Target.Name, quote(out.ResultSpokenText))
	}
	if out.ResultNarration != "" {
		fmt.Fprintln(stdout, out.ResultNarration)
	}
	if out.LearnedFact != "" {
		name := out.LearnedFact
		if f, ok := defs.Fact(out.LearnedFact); ok {
			name = f.Name
		}
		fmt.Fprintf(stdout, "%s learned: %s\n", result.Actor.Name, name)
	}
	if out.EndsDialogue || len(out.NextOptionNames) == 0 {
		fmt.Fprintln(stdout, "The conversation ends.")
		return true
	}
	return false
}

func truncate(s string, n int) string {
	if len([]rune(s)) <= n {
		return s
	}
	return string([]rune(s)[:n-3]) + "..."
}

func quote(s string) string {
	return "\"" + strings.TrimSpace(s) + "\""
}
