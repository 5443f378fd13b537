package entities

import (
	"fmt"
	"time"
)

// RelationType defines the kind of relationship between two characters.
type RelationType string

const (
	RelationParent                RelationType = "parent"
	RelationChild                 RelationType = "child"
	RelationGrandparent           RelationType = "grandparent"
	RelationGrandchild            RelationType = "grandchild"
	RelationSibling               RelationType = "sibling"
	RelationFriend                RelationType = "friend"
	RelationEnemy                 RelationType = "enemy"
	RelationCasualRomanticPartner RelationType = "casual_romantic_partner"
	RelationRomanticPartner       RelationType = "romantic_partner"
	RelationSpouse                RelationType = "spouse"
	RelationAcquaintance          RelationType = "acquaintance"
	RelationColleague             RelationType = "colleague"
)

// AllRelationTypes lists every known relation type in display order.
var AllRelationTypes = []RelationType{
	RelationParent,
	RelationChild,
	RelationGrandparent,
	RelationGrandchild,
	RelationSibling,
	RelationFriend,
	RelationEnemy,
	RelationCasualRomanticPartner,
	RelationRomanticPartner,
	RelationSpouse,
	RelationAcquaintance,
	RelationColleague,
}

// RelationLabels maps each relation type to its display label.
var RelationLabels = map[RelationType]string{
	RelationParent:                "Parent",
	RelationChild:                 "Child",
	RelationGrandparent:           "Grandparent",
	RelationGrandchild:            "Grandchild",
	RelationSibling:               "Sibling",
	RelationFriend:                "Friend",
	RelationEnemy:                 "Enemy",
	RelationCasualRomanticPartner: "Casual romantic partner",
	RelationRomanticPartner:       "Romantic partner",
	RelationSpouse:                "Spouse",
	RelationAcquaintance:          "Acquaintance",
	RelationColleague:             "Colleague",
}

// reciprocalRelations holds the asymmetric pairs. Types missing here are self-reciprocal.
var reciprocalRelations = map[RelationType]RelationType{
	RelationParent:      RelationChild,
	RelationChild:       RelationParent,
	RelationGrandparent: RelationGrandchild,
	RelationGrandchild:  RelationGrandparent,
}

// ValueRange is a half-open integer range [Min, Max).
type ValueRange struct {
	Min int
	Max int
}

// DefaultValueRange applies to relation types without an entry in RelationValueRanges.
var DefaultValueRange = ValueRange{Min: -39, Max: 40}

// RelationValueRanges holds the initial value range per relation type.
var RelationValueRanges = map[RelationType]ValueRange{
	RelationParent:                {Min: -100, Max: 100},
	RelationChild:                 {Min: -100, Max: 100},
	RelationGrandparent:           {Min: -100, Max: 100},
	RelationGrandchild:            {Min: -100, Max: 100},
	RelationSibling:               {Min: -100, Max: 100},
	RelationFriend:                {Min: 40, Max: 100},
	RelationEnemy:                 {Min: -100, Max: -40},
	RelationCasualRomanticPartner: {Min: -100, Max: 100},
	RelationRomanticPartner:       {Min: -100, Max: 100},
	RelationSpouse:                {Min: -100, Max: 100},
}

// Relationship value bounds.
const (
	MinRelationshipValue = -100
	MaxRelationshipValue = 100
)

// Reciprocal returns the type of the reverse edge.
func (t RelationType) Reciprocal() RelationType {
	if r, ok := reciprocalRelations[t]; ok {
		return r
	}
	return t
}

// IsKinship reports whether the type is a family tie with a fixed first interaction.
func (t RelationType) IsKinship() bool {
	switch t {
	case RelationParent, RelationChild, RelationGrandparent, RelationGrandchild, RelationSibling:
		return true
	default:
		return false
	}
}

// IsRomantic reports whether the type is one of the romantic variants.
func (t RelationType) IsRomantic() bool {
	switch t {
	case RelationCasualRomanticPartner, RelationRomanticPartner, RelationSpouse:
		return true
	default:
		return false
	}
}

// ValueRange returns the initial value range for the type.
func (t RelationType) ValueRange() ValueRange {
	if r, ok := RelationValueRanges[t]; ok {
		return r
	}
	return DefaultValueRange
}

// Label returns the display label, or the raw value for unknown types.
func (t RelationType) Label() string {
	if label, ok := RelationLabels[t]; ok {
		return label
	}
	return string(t)
}

// IsKnown reports whether the type is part of AllRelationTypes.
func (t RelationType) IsKnown() bool {
	_, ok := RelationLabels[t]
	return ok
}

// ParseRelationType converts a string to a known RelationType.
func ParseRelationType(s string) (RelationType, error) {
	t := RelationType(s)
	if !t.IsKnown() {
		return "", fmt.Errorf("invalid relationship type: %s", s)
	}
	return t, nil
}

// ValidateRelationTables checks that the lookup tables are complete and consistent.
func ValidateRelationTables() error {
	for from, to := range reciprocalRelations {
		if back := to.Reciprocal(); back != from {
			return fmt.Errorf("reciprocal of %s is %s, whose reciprocal is %s", from, to, back)
		}
	}
	for _, t := range AllRelationTypes {
		if _, ok := RelationLabels[t]; !ok {
			return fmt.Errorf("relation type %s has no label", t)
		}
		r := t.ValueRange()
		if r.Max <= r.Min {
			return fmt.Errorf("relation type %s has an empty value range [%d, %d)", t, r.Min, r.Max)
		}
	}
	if len(RelationLabels) != len(AllRelationTypes) {
		return fmt.Errorf("relation labels cover %d types, expected %d", len(RelationLabels), len(AllRelationTypes))
	}
	return nil
}

// Relationship is a directed edge between two characters, keyed by (source, target).
// Edges are created in reciprocal pairs sharing dates and value.
type Relationship struct {
	SourceCharacterID string       `json:"source_character_id"`
	TargetCharacterID string       `json:"target_character_id"`
	Type              RelationType `json:"type"`
	Value             int          `json:"value"`
	FirstInteraction  time.Time    `json:"first_interaction"`
	LastInteraction   time.Time    `json:"last_interaction"`
}

// ClampRelationshipValue bounds a value to [MinRelationshipValue, MaxRelationshipValue].
func ClampRelationshipValue(v int) int {
	return max(MinRelationshipValue, min(MaxRelationshipValue, v))
}
