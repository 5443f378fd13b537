package handlers

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/ersonp/liferpg-core/internal/domain/entities"
	"github.com/ersonp/liferpg-core/internal/domain/services"
	"github.com/ersonp/liferpg-core/internal/infrastructure/content"
)

// ErrOptionNotOffered means the option exists but its conditions do not hold.
var ErrOptionNotOffered = errors.New("dialogue option not offered")

// DialogueHandler runs conversations and exploration for the CLI.
type DialogueHandler struct {
	characters *services.CharacterService
	engine     *services.DialogueEngine
	game       *services.GameService
	content    *content.Definitions
	now        func() time.Time
}

// NewDialogueHandler creates a new DialogueHandler.
func NewDialogueHandler(
	characters *services.CharacterService,
	engine *services.DialogueEngine,
	game *services.GameService,
	defs *content.Definitions,
	now func() time.Time,
) *DialogueHandler {
	return &DialogueHandler{
		characters: characters,
		engine:     engine,
		game:       game,
		content:    defs,
		now:        now,
	}
}

// TalkOptionsResult lists what the actor can currently say to the target.
type TalkOptionsResult struct {
	Actor   entities.Character        `json:"actor"`
	Target  entities.Character        `json:"target"`
	Options []entities.DialogueOption `json:"options"`
}

// TalkResult is a resolved and applied dialogue option.
type TalkResult struct {
	Actor       entities.Character        `json:"actor"`
	Target      entities.Character        `json:"target"`
	Outcome     entities.DialogueOutcome  `json:"outcome"`
	NextOptions []entities.DialogueOption `json:"next_options,omitempty"`
}

// ExploreResult is a resolved and applied exploration action.
type ExploreResult struct {
	Actor   entities.Character          `json:"actor"`
	Outcome entities.ExplorationOutcome `json:"outcome"`
}

// HandleOptions returns the conversation openers currently offered.
func (h *DialogueHandler) HandleOptions(ctx context.Context, actor, target string) (res *TalkOptionsResult, err error) {
	ctx, span := startSpan(ctx, "talk.options", attribute.String("actor", actor), attribute.String("target", target))
	defer func() { endSpan(span, err) }()

	actorState, targetState, err := h.pair(ctx, actor, target)
	if err != nil {
		return nil, err
	}

	options, err := h.engine.AvailableOptions(h.content.EntryOptions(), actorState, targetState)
	if err != nil {
		return nil, err
	}

	return &TalkOptionsResult{
		Actor:   actorState.Character,
		Target:  targetState.Character,
		Options: options,
	}, nil
}

// HandleTalk resolves one dialogue option, applies its outcome and returns
// the follow-up options offered afterwards.
func (h *DialogueHandler) HandleTalk(ctx context.Context, actor, target, optionName string) (res *TalkResult, err error) {
	ctx, span := startSpan(ctx, "talk",
		attribute.String("actor", actor),
		attribute.String("target", target),
		attribute.String("option", optionName),
	)
	defer func() { endSpan(span, err) }()

	option, ok := h.content.Option(optionName)
	if !ok {
		return nil, fmt.Errorf("%w: %s", services.ErrOptionNotFound, optionName)
	}

	actorState, targetState, err := h.pair(ctx, actor, target)
	if err != nil {
		return nil, err
	}

	offered, err := h.engine.IsOffered(option, actorState, targetState)
	if err != nil {
		return nil, err
	}
	if !offered {
		return nil, fmt.Errorf("%w: %s", ErrOptionNotOffered, optionName)
	}

	outcome, err := h.engine.ResolveDialogueOption(option, actorState, targetState)
	if err != nil {
		return nil, err
	}

	actorID, targetID := actorState.Character.ID, targetState.Character.ID
	if err := h.game.ApplyDialogueOutcome(ctx, actorID, targetID, outcome, h.now()); err != nil {
		return nil, fmt.Errorf("applying outcome: %w", err)
	}
	span.SetAttributes(attribute.Bool("result_applied", outcome.ResultApplied))

	res = &TalkResult{Outcome: outcome}
	if outcome.EndsDialogue || len(outcome.NextOptionNames) == 0 {
		res.Actor, res.Target = actorState.Character, targetState.Character
		return res, nil
	}

	// Follow-ups are offered against the state after the outcome.
	actorState, targetState, err = h.pair(ctx, actorID, targetID)
	if err != nil {
		return nil, err
	}
	res.Actor, res.Target = actorState.Character, targetState.Character
	res.NextOptions, err = h.engine.AvailableOptions(h.content.Options(outcome.NextOptionNames), actorState, targetState)
	if err != nil {
		return nil, err
	}
	return res, nil
}

// HandleActions lists the exploration actions defined in the content.
func (h *DialogueHandler) HandleActions() []entities.ExplorationAction {
	return h.content.ExplorationActions
}

// HandleExplore resolves one exploration action and applies its outcome.
func (h *DialogueHandler) HandleExplore(ctx context.Context, actor, label string) (res *ExploreResult, err error) {
	ctx, span := startSpan(ctx, "explore", attribute.String("actor", actor), attribute.String("action", label))
	defer func() { endSpan(span, err) }()

	action, ok := h.content.Action(label)
	if !ok {
		return nil, fmt.Errorf("%w: %s", services.ErrOptionNotFound, label)
	}

	state, err := h.characters.State(ctx, actor)
	if err != nil {
		return nil, err
	}

	outcome, err := h.engine.ResolveExplorationAction(action, state)
	if err != nil {
		return nil, err
	}

	if err := h.game.ApplyExplorationOutcome(ctx, state.Character.ID, outcome); err != nil {
		return nil, fmt.Errorf("applying outcome: %w", err)
	}

	updated, err := h.characters.Find(ctx, state.Character.ID)
	if err != nil {
		return nil, err
	}
	return &ExploreResult{Actor: *updated, Outcome: outcome}, nil
}

func (h *DialogueHandler) pair(ctx context.Context, actor, target string) (*entities.CharacterState, *entities.CharacterState, error) {
	actorState, err := h.characters.State(ctx, actor)
	if err != nil {
		return nil, nil, fmt.Errorf("actor: %w", err)
	}
	targetState, err := h.characters.State(ctx, target)
	if err != nil {
		return nil, nil, fmt.Errorf("target: %w", err)
	}
	if actorState.Character.ID == targetState.Character.ID {
		return nil, nil, errors.New("a character cannot talk to itself")
	}
	return actorState, targetState, nil
}
