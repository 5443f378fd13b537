package services

import (
	"fmt"

	"github.com/ersonp/liferpg-core/internal/domain/entities"
	"github.com/ersonp/liferpg-core/internal/domain/ports"
)

// ConditionEvaluator evaluates content conditions against character state.
//
// A missing relationship edge counts as value 0 for relationship comparisons,
// both with no target and with a target the actor has never met.
type ConditionEvaluator struct {
	special ports.SpecialConditions
}

// NewConditionEvaluator creates a new ConditionEvaluator.
func NewConditionEvaluator(special ports.SpecialConditions) *ConditionEvaluator {
	return &ConditionEvaluator{special: special}
}

// Evaluate reports whether a single condition holds. target may be nil.
func (e *ConditionEvaluator) Evaluate(cond entities.Condition, actor, target *entities.CharacterState) (bool, error) {
	switch kind := cond.Kind(); kind {
	case entities.ConditionNone:
		return true, nil

	case entities.ConditionActorHasTrait:
		return actor.HasTrait(cond.ActorHasTrait), nil

	case entities.ConditionActorHasntLearnedFact:
		return !actor.KnowsFact(cond.ActorHasntLearnedFact), nil

	case entities.ConditionActorTargetSpecial:
		sc := cond.ActorTargetSpecialCondition
		if e.special == nil {
			return false, fmt.Errorf("%w: %s (no registry configured)", ErrUnknownSpecialCondition, sc.Label)
		}
		pred, ok := e.special.Lookup(sc.Label)
		if !ok {
			return false, fmt.Errorf("%w: %s", ErrUnknownSpecialCondition, sc.Label)
		}
		return pred(actor, target) != sc.Negate, nil

	case entities.ConditionActorRelationshipValue:
		return compare(*cond.ActorRelationshipValue, edgeValue(actor, target))

	case entities.ConditionTargetRelationshipValue:
		return compare(*cond.TargetRelationshipValue, edgeValue(target, actor))

	case entities.ConditionActorEnergy:
		return compare(*cond.ActorEnergy, actor.Character.Energy)

	default:
		return false, fmt.Errorf("%w: %s", ErrInvalidCondition, kind)
	}
}

// EvaluateAll reports whether every condition holds. An empty list holds.
// Evaluation stops at the first false condition or error.
func (e *ConditionEvaluator) EvaluateAll(conds []entities.Condition, actor, target *entities.CharacterState) (bool, error) {
	for i := range conds {
		ok, err := e.Evaluate(conds[i], actor, target)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
	}
	return true, nil
}

func compare(c entities.Comparison, v int) (bool, error) {
	if !c.Operator.IsValid() {
		return false, fmt.Errorf("%w: %q", ErrInvalidOperator, c.Operator)
	}
	return c.Compare(v)
}

// edgeValue is the value of the from→to edge, or 0 when either side or the edge is missing.
func edgeValue(from, to *entities.CharacterState) int {
	if from == nil || to == nil {
		return 0
	}
	rel, ok := from.RelationshipTo(to.Character.ID)
	if !ok {
		return 0
	}
	return rel.Value
}
