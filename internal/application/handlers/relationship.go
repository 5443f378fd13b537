package handlers

import (
	"cmp"
	"context"
	"fmt"
	"maps"
	"slices"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/ersonp/liferpg-core/internal/domain/entities"
	"github.com/ersonp/liferpg-core/internal/domain/services"
)

// RelationshipHandler handles relationship operations.
type RelationshipHandler struct {
	social     *services.SocialGraphService
	characters *services.CharacterService
	now        func() time.Time
}

// NewRelationshipHandler creates a new RelationshipHandler.
func NewRelationshipHandler(social *services.SocialGraphService, characters *services.CharacterService, now func() time.Time) *RelationshipHandler {
	return &RelationshipHandler{
		social:     social,
		characters: characters,
		now:        now,
	}
}

// ListOptions configures relationship listing behavior.
type ListOptions struct {
	Type string // Filter by relationship type (empty = all)
}

// RelationshipInfo is an edge with display details.
type RelationshipInfo struct {
	Relationship entities.Relationship `json:"relationship"`
	Label        string                `json:"label"`
	TargetName   string                `json:"target_name,omitempty"`
}

// ListResult contains the result of listing relationships.
type ListResult struct {
	Character     entities.Character `json:"character"`
	Relationships []RelationshipInfo `json:"relationships"`
}

// HandleGenerate builds relationships across every persisted character.
func (h *RelationshipHandler) HandleGenerate(ctx context.Context) (created []entities.Relationship, err error) {
	ctx, span := startSpan(ctx, "relationships.generate")
	defer func() { endSpan(span, err) }()

	list, err := h.characters.List(ctx, 0, 0)
	if err != nil {
		return nil, fmt.Errorf("listing characters: %w", err)
	}

	all := make([]entities.Character, len(list))
	for i, c := range list {
		all[i] = *c
	}

	created, err = h.social.Generate(ctx, all, h.now())
	if err != nil {
		return nil, fmt.Errorf("generating relationships: %w", err)
	}
	span.SetAttributes(attribute.Int("edges", len(created)))
	return created, nil
}

// HandleRelate creates one reciprocal relationship between two characters.
func (h *RelationshipHandler) HandleRelate(ctx context.Context, source, relType, target string) (edges []entities.Relationship, err error) {
	ctx, span := startSpan(ctx, "relationships.relate",
		attribute.String("source", source),
		attribute.String("target", target),
		attribute.String("type", relType),
	)
	defer func() { endSpan(span, err) }()

	rt, err := entities.ParseRelationType(relType)
	if err != nil {
		return nil, err
	}

	src, err := h.characters.Find(ctx, source)
	if err != nil {
		return nil, err
	}
	dst, err := h.characters.Find(ctx, target)
	if err != nil {
		return nil, err
	}

	return h.social.Relate(ctx, *src, *dst, rt, h.now())
}

// HandleList returns a character's outgoing relationships, strongest first.
func (h *RelationshipHandler) HandleList(ctx context.Context, idOrName string, opts ListOptions) (res *ListResult, err error) {
	ctx, span := startSpan(ctx, "relationships.list", attribute.String("character", idOrName))
	defer func() { endSpan(span, err) }()

	var filter entities.RelationType
	if opts.Type != "" {
		if filter, err = entities.ParseRelationType(opts.Type); err != nil {
			return nil, err
		}
	}

	c, err := h.characters.Find(ctx, idOrName)
	if err != nil {
		return nil, err
	}

	rels, err := h.social.List(ctx, c.ID)
	if err != nil {
		return nil, fmt.Errorf("listing relationships: %w", err)
	}

	names := make(map[string]string)
	result := &ListResult{Character: *c, Relationships: make([]RelationshipInfo, 0, len(rels))}
	for _, rel := range rels {
		if filter != "" && rel.Type != filter {
			continue
		}
		name, ok := names[rel.TargetCharacterID]
		if !ok {
			if target, err := h.characters.Find(ctx, rel.TargetCharacterID); err == nil {
				name = target.Name
			}
			names[rel.TargetCharacterID] = name
		}
		result.Relationships = append(result.Relationships, RelationshipInfo{
			Relationship: rel,
			Label:        rel.Type.Label(),
			TargetName:   name,
		})
	}

	slices.SortStableFunc(result.Relationships, func(a, b RelationshipInfo) int {
		return cmp.Compare(b.Relationship.Value, a.Relationship.Value)
	})
	return result, nil
}

// HandleCount returns the total number of directed edges.
func (h *RelationshipHandler) HandleCount(ctx context.Context) (int, error) {
	return h.social.Count(ctx)
}

func sortedKeys[V any](m map[string]V) []string {
	return slices.Sorted(maps.Keys(m))
}
