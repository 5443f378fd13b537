package services

import (
	"fmt"
	"slices"

	"github.com/ersonp/liferpg-core/internal/domain/entities"
)

// DialogueEngine resolves dialogue options and exploration actions against
// character state. It performs no I/O and never mutates its inputs.
//
// Every gated list (spoken texts, results, narrations) is resolved by taking
// the first entry, in authored order, whose conditions hold.
type DialogueEngine struct {
	evaluator *ConditionEvaluator
}

// NewDialogueEngine creates a new DialogueEngine.
func NewDialogueEngine(evaluator *ConditionEvaluator) *DialogueEngine {
	return &DialogueEngine{evaluator: evaluator}
}

// IsOffered reports whether an option's top-level conditions hold.
func (e *DialogueEngine) IsOffered(option *entities.DialogueOption, actor, target *entities.CharacterState) (bool, error) {
	ok, err := e.evaluator.EvaluateAll(option.Conditions, actor, target)
	if err != nil {
		return false, fmt.Errorf("evaluating option %s: %w", option.Name, err)
	}
	return ok, nil
}

// AvailableOptions returns the options currently offered, in input order.
func (e *DialogueEngine) AvailableOptions(options []entities.DialogueOption, actor, target *entities.CharacterState) ([]entities.DialogueOption, error) {
	available := make([]entities.DialogueOption, 0, len(options))
	for i := range options {
		ok, err := e.IsOffered(&options[i], actor, target)
		if err != nil {
			return nil, err
		}
		if ok {
			available = append(available, options[i])
		}
	}
	return available, nil
}

// ResolveDialogueOption picks the spoken text and the first applicable result of an option.
func (e *DialogueEngine) ResolveDialogueOption(option *entities.DialogueOption, actor, target *entities.CharacterState) (entities.DialogueOutcome, error) {
	outcome := entities.DialogueOutcome{OptionName: option.Name}

	spoken, err := e.firstText(option.SpokenTexts, actor, target)
	if err != nil {
		return entities.DialogueOutcome{}, fmt.Errorf("option %s spoken texts: %w", option.Name, err)
	}
	outcome.SpokenText = spoken

	idx, err := e.firstResult(len(option.Results), func(i int) []entities.Condition {
		return option.Results[i].Conditions
	}, actor, target)
	if err != nil {
		return entities.DialogueOutcome{}, fmt.Errorf("option %s results: %w", option.Name, err)
	}
	if idx < 0 {
		return outcome, nil
	}

	result := &option.Results[idx]
	outcome.ResultApplied = true

	if outcome.ResultSpokenText, err = e.firstText(result.ResultSpokenTexts, actor, target); err != nil {
		return entities.DialogueOutcome{}, fmt.Errorf("option %s result %d spoken texts: %w", option.Name, idx, err)
	}
	if outcome.ResultNarration, err = e.firstText(result.ResultNarrations, actor, target); err != nil {
		return entities.DialogueOutcome{}, fmt.Errorf("option %s result %d narrations: %w", option.Name, idx, err)
	}

	if result.TargetRelationshipValueChange != nil {
		delta := *result.TargetRelationshipValueChange
		outcome.RelationshipValueChange = &delta
	}
	outcome.LearnedFact = result.ActorLearnFact
	outcome.SpecialAction = result.ActorTargetSpecialAction
	outcome.NextOptionNames = slices.Clone(result.NextDialogueOptionNames)
	outcome.EndsDialogue = result.EndsDialogue

	return outcome, nil
}

// ResolveExplorationAction picks the first applicable result of an exploration action.
// Exploration has no target, so target-based conditions see a nil target.
func (e *DialogueEngine) ResolveExplorationAction(action *entities.ExplorationAction, actor *entities.CharacterState) (entities.ExplorationOutcome, error) {
	outcome := entities.ExplorationOutcome{Label: action.Label}

	idx, err := e.firstResult(len(action.Results), func(i int) []entities.Condition {
		return action.Results[i].Conditions
	}, actor, nil)
	if err != nil {
		return entities.ExplorationOutcome{}, fmt.Errorf("action %s results: %w", action.Label, err)
	}
	if idx < 0 {
		return outcome, nil
	}

	result := &action.Results[idx]
	outcome.ResultApplied = true

	if outcome.Narration, err = e.firstText(result.ResultNarrations, actor, nil); err != nil {
		return entities.ExplorationOutcome{}, fmt.Errorf("action %s result %d narrations: %w", action.Label, idx, err)
	}
	if result.AddMinutes {
		outcome.MinutesElapsed = action.NeededMinutes
	}
	if result.EnergyChange != nil {
		delta := *result.EnergyChange
		outcome.EnergyChange = &delta
	}

	return outcome, nil
}

// firstText returns the first text whose conditions hold, or "".
func (e *DialogueEngine) firstText(texts []entities.GatedText, actor, target *entities.CharacterState) (string, error) {
	for i := range texts {
		ok, err := e.evaluator.EvaluateAll(texts[i].Conditions, actor, target)
		if err != nil {
			return "", err
		}
		if ok {
			return texts[i].Text, nil
		}
	}
	return "", nil
}

// firstResult returns the index of the first result whose conditions hold, or -1.
func (e *DialogueEngine) firstResult(n int, conditions func(int) []entities.Condition, actor, target *entities.CharacterState) (int, error) {
	for i := 0; i < n; i++ {
		ok, err := e.evaluator.EvaluateAll(conditions(i), actor, target)
		if err != nil {
			return -1, err
		}
		if ok {
			return i, nil
		}
	}
	return -1, nil
}
