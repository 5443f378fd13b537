package ports

import (
	"context"

	"github.com/ersonp/liferpg-core/internal/domain/entities"
)

// SpecialPredicate is a named boolean test over an actor and an optional target.
// target is nil when the evaluation has no target.
type SpecialPredicate func(actor, target *entities.CharacterState) bool

// SpecialConditions resolves special-condition labels to predicates.
type SpecialConditions interface {
	// Lookup returns the predicate registered under label.
	Lookup(label string) (SpecialPredicate, bool)
}

// ActionHandler interprets special action labels produced by dialogue results.
type ActionHandler interface {
	// HandleAction performs the named action for the actor and target,
	// writing through relationalDB so it shares the caller's transaction.
	HandleAction(ctx context.Context, relationalDB RelationalDB, label, actorID, targetID string) error
}
