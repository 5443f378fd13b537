package services

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/ersonp/liferpg-core/internal/domain/entities"
	"github.com/ersonp/liferpg-core/internal/domain/ports"
)

// adultAge is the age from which a character counts as an adult.
const adultAge = 18

// SpecialConditionRegistry maps special-condition labels to predicates.
type SpecialConditionRegistry struct {
	mu         sync.RWMutex
	predicates map[string]ports.SpecialPredicate
}

// NewSpecialConditionRegistry creates an empty registry.
func NewSpecialConditionRegistry() *SpecialConditionRegistry {
	return &SpecialConditionRegistry{predicates: make(map[string]ports.SpecialPredicate)}
}

// NewDefaultSpecialConditions returns a registry holding the built-in predicates.
// now supplies the current game date for age-based predicates.
func NewDefaultSpecialConditions(now func() time.Time) *SpecialConditionRegistry {
	r := NewSpecialConditionRegistry()
	r.Register("target_is_adult", func(_, target *entities.CharacterState) bool {
		return target != nil && target.Character.AgeAt(now()) >= adultAge
	})
	r.Register("actor_older_than_target", func(actor, target *entities.CharacterState) bool {
		return target != nil && actor.Character.BirthDate.Before(target.Character.BirthDate)
	})
	r.Register("same_sex", func(actor, target *entities.CharacterState) bool {
		return target != nil && actor.Character.Sex == target.Character.Sex
	})
	r.Register("target_knows_actor", func(actor, target *entities.CharacterState) bool {
		if target == nil {
			return false
		}
		_, ok := target.RelationshipTo(actor.Character.ID)
		return ok
	})
	return r
}

// Register adds or replaces a predicate.
func (r *SpecialConditionRegistry) Register(label string, pred ports.SpecialPredicate) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.predicates[label] = pred
}

// Lookup returns the predicate registered under label.
func (r *SpecialConditionRegistry) Lookup(label string) (ports.SpecialPredicate, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	pred, ok := r.predicates[label]
	return pred, ok
}

// Labels returns the registered labels, sorted.
func (r *SpecialConditionRegistry) Labels() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	labels := make([]string, 0, len(r.predicates))
	for label := range r.predicates {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels
}

// ActionFunc performs a special action, writing through relationalDB.
type ActionFunc func(ctx context.Context, relationalDB ports.RelationalDB, actorID, targetID string) error

// ActionDispatcher routes special action labels to handlers.
type ActionDispatcher struct {
	mu      sync.RWMutex
	actions map[string]ActionFunc
}

// NewActionDispatcher creates an empty dispatcher.
func NewActionDispatcher() *ActionDispatcher {
	return &ActionDispatcher{actions: make(map[string]ActionFunc)}
}

// Register adds or replaces an action.
func (d *ActionDispatcher) Register(label string, fn ActionFunc) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.actions[label] = fn
}

// HandleAction runs the action registered under label.
func (d *ActionDispatcher) HandleAction(ctx context.Context, relationalDB ports.RelationalDB, label, actorID, targetID string) error {
	d.mu.RLock()
	fn, ok := d.actions[label]
	d.mu.RUnlock()
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownSpecialAction, label)
	}
	return fn(ctx, relationalDB, actorID, targetID)
}

// Labels returns the registered action labels, sorted.
func (d *ActionDispatcher) Labels() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	labels := make([]string, 0, len(d.actions))
	for label := range d.actions {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels
}
