package handlers

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/ersonp/liferpg-core/internal/domain/entities"
	"github.com/ersonp/liferpg-core/internal/domain/services"
	"github.com/ersonp/liferpg-core/internal/infrastructure/content"
)

// CharacterHandler handles character operations.
type CharacterHandler struct {
	characters *services.CharacterService
	content    *content.Definitions
	now        func() time.Time
}

// NewCharacterHandler creates a new CharacterHandler.
// defs may be nil, in which case trait IDs are not checked.
func NewCharacterHandler(characters *services.CharacterService, defs *content.Definitions, now func() time.Time) *CharacterHandler {
	return &CharacterHandler{
		characters: characters,
		content:    defs,
		now:        now,
	}
}

// CharacterListResult contains the result of listing characters.
type CharacterListResult struct {
	Characters []*entities.Character `json:"characters"`
	Total      int                   `json:"total"`
}

// CharacterDetail is a character with everything known about it.
type CharacterDetail struct {
	Character     entities.Character `json:"character"`
	Age           int                `json:"age"`
	Traits        []string           `json:"traits"`
	Facts         []string           `json:"facts"`
	Relationships []RelationshipInfo `json:"relationships"`
}

// HandleGenerate creates count random characters.
func (h *CharacterHandler) HandleGenerate(ctx context.Context, count int) (created []entities.Character, err error) {
	ctx, span := startSpan(ctx, "characters.generate", attribute.Int("count", count))
	defer func() { endSpan(span, err) }()

	if count <= 0 {
		return nil, fmt.Errorf("count must be positive, got %d", count)
	}
	return h.characters.Generate(ctx, count, h.now())
}

// HandleList returns characters with pagination.
func (h *CharacterHandler) HandleList(ctx context.Context, limit, offset int) (res *CharacterListResult, err error) {
	ctx, span := startSpan(ctx, "characters.list")
	defer func() { endSpan(span, err) }()

	list, err := h.characters.List(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("listing characters: %w", err)
	}

	total, err := h.characters.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("counting characters: %w", err)
	}

	return &CharacterListResult{Characters: list, Total: total}, nil
}

// HandleShow returns a character's details by ID or name.
func (h *CharacterHandler) HandleShow(ctx context.Context, idOrName string) (res *CharacterDetail, err error) {
	ctx, span := startSpan(ctx, "characters.show", attribute.String("character", idOrName))
	defer func() { endSpan(span, err) }()

	state, err := h.characters.State(ctx, idOrName)
	if err != nil {
		return nil, err
	}

	detail := &CharacterDetail{
		Character: state.Character,
		Age:       state.Character.AgeAt(h.now()),
		Traits:    sortedKeys(state.Traits),
		Facts:     sortedKeys(state.Facts),
	}

	for _, targetID := range sortedKeys(state.Relationships) {
		rel := state.Relationships[targetID]
		info := RelationshipInfo{Relationship: rel, Label: rel.Type.Label()}
		if target, err := h.characters.Find(ctx, targetID); err == nil {
			info.TargetName = target.Name
		}
		detail.Relationships = append(detail.Relationships, info)
	}

	return detail, nil
}

// HandleHistory returns the audit log of a character.
func (h *CharacterHandler) HandleHistory(ctx context.Context, idOrName string) (entries []entities.AuditEntry, err error) {
	ctx, span := startSpan(ctx, "characters.history", attribute.String("character", idOrName))
	defer func() { endSpan(span, err) }()

	return h.characters.History(ctx, idOrName)
}

// HandleAddTrait gives a character a trait defined in the content.
func (h *CharacterHandler) HandleAddTrait(ctx context.Context, idOrName, traitID string) (err error) {
	ctx, span := startSpan(ctx, "characters.add_trait", attribute.String("trait", traitID))
	defer func() { endSpan(span, err) }()

	if h.content != nil && !h.hasTrait(traitID) {
		return fmt.Errorf("unknown trait %q", traitID)
	}
	return h.characters.AddTrait(ctx, idOrName, traitID)
}

func (h *CharacterHandler) hasTrait(id string) bool {
	for _, t := range h.content.Traits {
		if t.ID == id {
			return true
		}
	}
	return false
}
