package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ersonp/liferpg-core/internal/domain/entities"
	"github.com/ersonp/liferpg-core/internal/domain/ports"
)

// SocialSettings configures random social graph generation.
type SocialSettings struct {
	// RelationshipChance is the probability in [0, 1] that a candidate pair forms a relationship.
	RelationshipChance float64
	// TypeWeights is the relative chance of each relation type for a formed pair.
	TypeWeights map[entities.RelationType]int
}

// DefaultSocialSettings returns the settings used when none are configured.
func DefaultSocialSettings() SocialSettings {
	return SocialSettings{
		RelationshipChance: 0.3,
		TypeWeights: map[entities.RelationType]int{
			entities.RelationAcquaintance:          40,
			entities.RelationFriend:                25,
			entities.RelationColleague:             15,
			entities.RelationEnemy:                 10,
			entities.RelationCasualRomanticPartner: 5,
			entities.RelationRomanticPartner:       4,
			entities.RelationSpouse:                1,
		},
	}
}

// SocialGraphService builds and persists the relationship graph.
type SocialGraphService struct {
	relationalDB ports.RelationalDB
	rng          ports.RandomSource
	builder      *RelationshipBuilder
	settings     SocialSettings
	logger       *slog.Logger
}

// NewSocialGraphService creates a new SocialGraphService. A nil logger uses slog.Default.
func NewSocialGraphService(
	relationalDB ports.RelationalDB,
	rng ports.RandomSource,
	settings SocialSettings,
	logger *slog.Logger,
) *SocialGraphService {
	if logger == nil {
		logger = slog.Default()
	}
	return &SocialGraphService{
		relationalDB: relationalDB,
		rng:          rng,
		builder:      NewRelationshipBuilder(rng),
		settings:     settings,
		logger:       logger,
	}
}

// Generate walks every pair of characters in random order and forms relationships.
// Pairs that already have an edge in either direction are skipped. It returns the
// new edges, which are already persisted.
func (s *SocialGraphService) Generate(ctx context.Context, characters []entities.Character, now time.Time) ([]entities.Relationship, error) {
	existing, err := s.relationalDB.ListRelationships(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing relationships: %w", err)
	}

	linked := make(map[[2]string]bool, len(existing))
	for i := range existing {
		linked[[2]string{existing[i].SourceCharacterID, existing[i].TargetCharacterID}] = true
	}
	unlinked := func(a, b entities.Character) bool {
		return !linked[[2]string{a.ID, b.ID}] && !linked[[2]string{b.ID, a.ID}]
	}

	var created []entities.Relationship
	for pair := range PairsWhere(s.rng, characters, unlinked) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if s.rng.Float64() > s.settings.RelationshipChance {
			continue
		}

		relType, ok := s.pickType()
		if !ok {
			break
		}

		edges := s.builder.Create(existing, pair.A, pair.B, relType, now)
		if err := s.save(ctx, edges); err != nil {
			return nil, err
		}
		existing = append(existing, edges...)
		created = append(created, edges...)
	}

	s.logger.InfoContext(ctx, "generated social graph",
		"characters", len(characters),
		"edges", len(created),
	)
	return created, nil
}

// Relate creates one reciprocal relationship between two characters.
// It returns no edges when source→target already exists.
func (s *SocialGraphService) Relate(
	ctx context.Context,
	source, target entities.Character,
	relType entities.RelationType,
	now time.Time,
) ([]entities.Relationship, error) {
	if source.ID == target.ID {
		return nil, fmt.Errorf("cannot relate character %s to itself", source.ID)
	}

	existing, err := s.relationalDB.FindRelationshipBetween(ctx, source.ID, target.ID)
	if err != nil {
		return nil, fmt.Errorf("checking existing relationship: %w", err)
	}

	var current []entities.Relationship
	if existing != nil {
		current = append(current, *existing)
	}

	edges := s.builder.Create(current, source, target, relType, now)
	if err := s.save(ctx, edges); err != nil {
		return nil, err
	}

	s.logger.DebugContext(ctx, "relate",
		"source", source.ID,
		"target", target.ID,
		"type", relType,
		"created", len(edges),
	)
	return edges, nil
}

// List returns the outgoing edges of a character.
func (s *SocialGraphService) List(ctx context.Context, characterID string) ([]entities.Relationship, error) {
	return s.relationalDB.FindRelationshipsByCharacter(ctx, characterID)
}

// Count returns the total number of directed edges.
func (s *SocialGraphService) Count(ctx context.Context) (int, error) {
	return s.relationalDB.CountRelationships(ctx)
}

func (s *SocialGraphService) save(ctx context.Context, edges []entities.Relationship) error {
	for i := range edges {
		if err := s.relationalDB.SaveRelationship(ctx, &edges[i]); err != nil {
			return fmt.Errorf("saving relationship %s->%s: %w",
				edges[i].SourceCharacterID, edges[i].TargetCharacterID, err)
		}
	}
	return nil
}

// pickType draws a weighted relation type. Iteration follows AllRelationTypes
// so the result depends only on the random source.
func (s *SocialGraphService) pickType() (entities.RelationType, bool) {
	total := 0
	for _, t := range entities.AllRelationTypes {
		total += max(0, s.settings.TypeWeights[t])
	}
	if total == 0 {
		return "", false
	}

	roll := s.rng.IntN(0, total)
	for _, t := range entities.AllRelationTypes {
		w := max(0, s.settings.TypeWeights[t])
		if roll < w {
			return t, true
		}
		roll -= w
	}
	return "", false
}
