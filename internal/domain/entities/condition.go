package entities

import "fmt"

// ComparisonOperator compares a state value against a threshold.
type ComparisonOperator string

const (
	OpLessThan           ComparisonOperator = "<"
	OpLessThanOrEqual    ComparisonOperator = "<="
	OpEqual              ComparisonOperator = "=="
	OpNotEqual           ComparisonOperator = "!="
	OpGreaterThanOrEqual ComparisonOperator = ">="
	OpGreaterThan        ComparisonOperator = ">"
)

// IsValid reports whether the operator is one of the supported comparisons.
func (op ComparisonOperator) IsValid() bool {
	switch op {
	case OpLessThan, OpLessThanOrEqual, OpEqual, OpNotEqual, OpGreaterThanOrEqual, OpGreaterThan:
		return true
	default:
		return false
	}
}

// Comparison is an operator and a numeric threshold.
type Comparison struct {
	Operator ComparisonOperator `json:"operator" yaml:"operator"`
	Value    int                `json:"value" yaml:"value"`
}

// Compare applies the comparison to a value.
func (c Comparison) Compare(v int) (bool, error) {
	switch c.Operator {
	case OpLessThan:
		return v < c.Value, nil
	case OpLessThanOrEqual:
		return v <= c.Value, nil
	case OpEqual:
		return v == c.Value, nil
	case OpNotEqual:
		return v != c.Value, nil
	case OpGreaterThanOrEqual:
		return v >= c.Value, nil
	case OpGreaterThan:
		return v > c.Value, nil
	default:
		return false, fmt.Errorf("unknown comparison operator %q", c.Operator)
	}
}

// SpecialCondition names a predicate resolved by an external registry.
type SpecialCondition struct {
	Label  string `json:"label" yaml:"label"`
	Negate bool   `json:"negate,omitempty" yaml:"negate,omitempty"`
}

// ConditionKind identifies which variant of a Condition is set.
type ConditionKind int

const (
	ConditionNone ConditionKind = iota
	ConditionActorHasTrait
	ConditionActorHasntLearnedFact
	ConditionActorTargetSpecial
	ConditionActorRelationshipValue
	ConditionTargetRelationshipValue
	ConditionActorEnergy
	ConditionAmbiguous
)

func (k ConditionKind) String() string {
	switch k {
	case ConditionNone:
		return "none"
	case ConditionActorHasTrait:
		return "actor_has_trait"
	case ConditionActorHasntLearnedFact:
		return "actor_hasnt_learned_fact"
	case ConditionActorTargetSpecial:
		return "actor_target_special_condition"
	case ConditionActorRelationshipValue:
		return "actor_relationship_value"
	case ConditionTargetRelationshipValue:
		return "target_relationship_value"
	case ConditionActorEnergy:
		return "actor_energy"
	default:
		return "ambiguous"
	}
}

// Condition gates a dialogue option, text, narration or result.
// Exactly one field is set; the content loader rejects anything else.
type Condition struct {
	ActorHasTrait               string            `json:"actor_has_trait,omitempty" yaml:"actor_has_trait,omitempty"`
	ActorHasntLearnedFact       string            `json:"actor_hasnt_learned_fact,omitempty" yaml:"actor_hasnt_learned_fact,omitempty"`
	ActorTargetSpecialCondition *SpecialCondition `json:"actor_target_special_condition,omitempty" yaml:"actor_target_special_condition,omitempty"`
	ActorRelationshipValue      *Comparison       `json:"actor_relationship_value,omitempty" yaml:"actor_relationship_value,omitempty"`
	TargetRelationshipValue     *Comparison       `json:"target_relationship_value,omitempty" yaml:"target_relationship_value,omitempty"`
	ActorEnergy                 *Comparison       `json:"actor_energy,omitempty" yaml:"actor_energy,omitempty"`
}

// Kind returns the variant that is set, ConditionNone for a zero condition,
// or ConditionAmbiguous when several fields are set.
func (c Condition) Kind() ConditionKind {
	kind := ConditionNone
	set := 0
	if c.ActorHasTrait != "" {
		kind, set = ConditionActorHasTrait, set+1
	}
	if c.ActorHasntLearnedFact != "" {
		kind, set = ConditionActorHasntLearnedFact, set+1
	}
	if c.ActorTargetSpecialCondition != nil {
		kind, set = ConditionActorTargetSpecial, set+1
	}
	if c.ActorRelationshipValue != nil {
		kind, set = ConditionActorRelationshipValue, set+1
	}
	if c.TargetRelationshipValue != nil {
		kind, set = ConditionTargetRelationshipValue, set+1
	}
	if c.ActorEnergy != nil {
		kind, set = ConditionActorEnergy, set+1
	}
	if set > 1 {
		return ConditionAmbiguous
	}
	return kind
}
