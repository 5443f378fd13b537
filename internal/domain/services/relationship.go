package services

import (
	"time"

	"github.com/ersonp/liferpg-core/internal/domain/entities"
	"github.com/ersonp/liferpg-core/internal/domain/ports"
)

// acquaintanceWindowYears bounds how long after the younger character's birth
// a non-kinship relationship may have started.
const acquaintanceWindowYears = 5

// RelationshipBuilder synthesizes reciprocal relationship edges.
type RelationshipBuilder struct {
	rng ports.RandomSource
}

// NewRelationshipBuilder creates a new RelationshipBuilder.
func NewRelationshipBuilder(rng ports.RandomSource) *RelationshipBuilder {
	return &RelationshipBuilder{rng: rng}
}

// Create returns the edge source→target of relType and its reciprocal edge
// target→source. Both share dates and value.
//
// If existing already holds an edge from source to target, Create returns nil.
// The reverse direction is not checked.
func (b *RelationshipBuilder) Create(
	existing []entities.Relationship,
	source, target entities.Character,
	relType entities.RelationType,
	now time.Time,
) []entities.Relationship {
	for i := range existing {
		if existing[i].SourceCharacterID == source.ID && existing[i].TargetCharacterID == target.ID {
			return nil
		}
	}

	first := b.firstInteraction(source, target, relType, now)
	last := b.dateBetween(first, now)
	value := b.value(relType)

	return []entities.Relationship{
		{
			SourceCharacterID: source.ID,
			TargetCharacterID: target.ID,
			Type:              relType,
			Value:             value,
			FirstInteraction:  first,
			LastInteraction:   last,
		},
		{
			SourceCharacterID: target.ID,
			TargetCharacterID: source.ID,
			Type:              relType.Reciprocal(),
			Value:             value,
			FirstInteraction:  first,
			LastInteraction:   last,
		},
	}
}

// firstInteraction is the later birth date for kinship, otherwise a random date
// in the few years after it. It never goes past now.
func (b *RelationshipBuilder) firstInteraction(source, target entities.Character, relType entities.RelationType, now time.Time) time.Time {
	latestBirth := source.BirthDate
	if target.BirthDate.After(latestBirth) {
		latestBirth = target.BirthDate
	}
	if latestBirth.After(now) {
		return now
	}

	if relType.IsKinship() {
		return latestBirth
	}

	upper := latestBirth.AddDate(acquaintanceWindowYears, 0, 0)
	if upper.After(now) {
		upper = now
	}
	return b.dateBetween(latestBirth, upper)
}

// dateBetween returns a uniform date in [from, to] at day granularity.
// An empty or negative span yields from.
func (b *RelationshipBuilder) dateBetween(from, to time.Time) time.Time {
	days := int(to.Sub(from).Hours() / 24)
	if days <= 0 {
		return from
	}
	d := from.AddDate(0, 0, b.rng.IntN(0, days+1))
	if d.After(to) {
		return to
	}
	return d
}

func (b *RelationshipBuilder) value(relType entities.RelationType) int {
	r := relType.ValueRange()
	return b.rng.IntN(r.Min, r.Max)
}
