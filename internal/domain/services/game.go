package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ersonp/liferpg-core/internal/domain/entities"
	"github.com/ersonp/liferpg-core/internal/domain/ports"
)

// Audit log actions.
const (
	ActionDialogue    = "dialogue"
	ActionExploration = "exploration"
	ActionRetype      = "retype_relationship"
)

// GameService applies resolution outcomes to persisted state.
type GameService struct {
	relationalDB ports.RelationalDB
	actions      ports.ActionHandler
	logger       *slog.Logger
}

// NewGameService creates a new GameService. actions may be nil when content
// uses no special actions. A nil logger uses slog.Default.
func NewGameService(relationalDB ports.RelationalDB, actions ports.ActionHandler, logger *slog.Logger) *GameService {
	if logger == nil {
		logger = slog.Default()
	}
	return &GameService{
		relationalDB: relationalDB,
		actions:      actions,
		logger:       logger,
	}
}

// ApplyDialogueOutcome persists the effects of a resolved dialogue option in
// one transaction: a failing special action leaves the save untouched.
//
// A relationship change applies to the actor→target edge only. When the pair
// has never met, an acquaintance pair is created first, both edges starting
// at the clamped change.
func (s *GameService) ApplyDialogueOutcome(
	ctx context.Context,
	actorID, targetID string,
	outcome entities.DialogueOutcome,
	now time.Time,
) error {
	if !outcome.ResultApplied {
		return nil
	}
	if outcome.SpecialAction != "" && s.actions == nil {
		return fmt.Errorf("%w: %s (no action handler configured)", ErrUnknownSpecialAction, outcome.SpecialAction)
	}

	err := s.relationalDB.WithTx(ctx, func(tx ports.RelationalDB) error {
		if outcome.RelationshipValueChange != nil {
			if err := changeRelationship(ctx, tx, actorID, targetID, *outcome.RelationshipValueChange, now); err != nil {
				return err
			}
		}

		if outcome.LearnedFact != "" {
			if err := tx.LearnFact(ctx, actorID, outcome.LearnedFact); err != nil {
				return fmt.Errorf("learning fact %s: %w", outcome.LearnedFact, err)
			}
		}

		if outcome.SpecialAction != "" {
			if err := s.actions.HandleAction(ctx, tx, outcome.SpecialAction, actorID, targetID); err != nil {
				return fmt.Errorf("special action %s: %w", outcome.SpecialAction, err)
			}
		}

		details := map[string]any{
			"option": outcome.OptionName,
			"target": targetID,
		}
		if outcome.RelationshipValueChange != nil {
			details["relationship_change"] = *outcome.RelationshipValueChange
		}
		if outcome.LearnedFact != "" {
			details["learned_fact"] = outcome.LearnedFact
		}
		if outcome.SpecialAction != "" {
			details["special_action"] = outcome.SpecialAction
		}
		if err := tx.LogAction(ctx, ActionDialogue, actorID, details); err != nil {
			return fmt.Errorf("logging dialogue: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.DebugContext(ctx, "applied dialogue outcome", "actor", actorID, "target", targetID, "option", outcome.OptionName)
	return nil
}

// ApplyExplorationOutcome persists the effects of a resolved exploration action.
// Energy stays within [MinEnergy, MaxEnergy]. Elapsed minutes are reported, not applied.
func (s *GameService) ApplyExplorationOutcome(ctx context.Context, actorID string, outcome entities.ExplorationOutcome) error {
	if !outcome.ResultApplied {
		return nil
	}

	err := s.relationalDB.WithTx(ctx, func(tx ports.RelationalDB) error {
		details := map[string]any{
			"action":  outcome.Label,
			"minutes": outcome.MinutesElapsed,
		}

		if outcome.EnergyChange != nil {
			actor, err := tx.FindCharacterByID(ctx, actorID)
			if err != nil {
				return fmt.Errorf("finding actor: %w", err)
			}
			if actor == nil {
				return fmt.Errorf("%w: %s", ErrCharacterNotFound, actorID)
			}

			energy := max(entities.MinEnergy, min(entities.MaxEnergy, actor.Energy+*outcome.EnergyChange))
			if err := tx.UpdateEnergy(ctx, actorID, energy); err != nil {
				return fmt.Errorf("updating energy: %w", err)
			}
			details["energy"] = energy
		}

		if err := tx.LogAction(ctx, ActionExploration, actorID, details); err != nil {
			return fmt.Errorf("logging exploration: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.DebugContext(ctx, "applied exploration outcome", "actor", actorID, "action", outcome.Label)
	return nil
}

func changeRelationship(ctx context.Context, relationalDB ports.RelationalDB, actorID, targetID string, delta int, now time.Time) error {
	rel, err := relationalDB.FindRelationshipBetween(ctx, actorID, targetID)
	if err != nil {
		return fmt.Errorf("finding relationship: %w", err)
	}

	if rel == nil {
		value := entities.ClampRelationshipValue(delta)
		pair := []entities.Relationship{
			{
				SourceCharacterID: actorID,
				TargetCharacterID: targetID,
				Type:              entities.RelationAcquaintance,
				Value:             value,
				FirstInteraction:  now,
				LastInteraction:   now,
			},
			{
				SourceCharacterID: targetID,
				TargetCharacterID: actorID,
				Type:              entities.RelationAcquaintance,
				Value:             value,
				FirstInteraction:  now,
				LastInteraction:   now,
			},
		}
		for i := range pair {
			if err := relationalDB.SaveRelationship(ctx, &pair[i]); err != nil {
				return fmt.Errorf("saving relationship: %w", err)
			}
		}
		return nil
	}

	rel.Value = entities.ClampRelationshipValue(rel.Value + delta)
	if now.After(rel.LastInteraction) {
		rel.LastInteraction = now
	}
	if err := relationalDB.SaveRelationship(ctx, rel); err != nil {
		return fmt.Errorf("saving relationship: %w", err)
	}
	return nil
}

// RegisterDefaultActions adds the built-in special actions to a dispatcher.
// Each one retypes both edges of the actor/target pair, creating them if needed.
func RegisterDefaultActions(d *ActionDispatcher, now func() time.Time) {
	retype := func(relType entities.RelationType) ActionFunc {
		return func(ctx context.Context, relationalDB ports.RelationalDB, actorID, targetID string) error {
			return retypePair(ctx, relationalDB, actorID, targetID, relType, now())
		}
	}
	d.Register("start_dating", retype(entities.RelationRomanticPartner))
	d.Register("become_friends", retype(entities.RelationFriend))
	d.Register("break_up", retype(entities.RelationAcquaintance))
}

func retypePair(
	ctx context.Context,
	relationalDB ports.RelationalDB,
	actorID, targetID string,
	relType entities.RelationType,
	now time.Time,
) error {
	directions := []struct {
		from, to string
		t        entities.RelationType
	}{
		{actorID, targetID, relType},
		{targetID, actorID, relType.Reciprocal()},
	}

	for _, dir := range directions {
		rel, err := relationalDB.FindRelationshipBetween(ctx, dir.from, dir.to)
		if err != nil {
			return fmt.Errorf("finding relationship: %w", err)
		}
		if rel == nil {
			rel = &entities.Relationship{
				SourceCharacterID: dir.from,
				TargetCharacterID: dir.to,
				FirstInteraction:  now,
			}
		}
		rel.Type = dir.t
		rel.LastInteraction = now
		if err := relationalDB.SaveRelationship(ctx, rel); err != nil {
			return fmt.Errorf("saving relationship: %w", err)
		}
	}

	return relationalDB.LogAction(ctx, ActionRetype, actorID, map[string]any{
		"target": targetID,
		"type":   string(relType),
	})
}
