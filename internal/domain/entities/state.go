package entities

// CharacterState is a read-only snapshot of one character used during evaluation.
type CharacterState struct {
	Character Character
	Traits    map[string]bool
	Facts     map[string]bool
	// Relationships holds outgoing edges keyed by target character ID.
	Relationships map[string]Relationship
}

// NewCharacterState builds a snapshot from slices.
func NewCharacterState(c Character, traitIDs, factIDs []string, outgoing []Relationship) *CharacterState {
	s := &CharacterState{
		Character:     c,
		Traits:        make(map[string]bool, len(traitIDs)),
		Facts:         make(map[string]bool, len(factIDs)),
		Relationships: make(map[string]Relationship, len(outgoing)),
	}
	for _, id := range traitIDs {
		s.Traits[id] = true
	}
	for _, id := range factIDs {
		s.Facts[id] = true
	}
	for _, rel := range outgoing {
		if rel.SourceCharacterID == c.ID {
			s.Relationships[rel.TargetCharacterID] = rel
		}
	}
	return s
}

// HasTrait reports whether the character has the trait.
func (s *CharacterState) HasTrait(id string) bool {
	return s.Traits[id]
}

// KnowsFact reports whether the character has learned the fact.
func (s *CharacterState) KnowsFact(id string) bool {
	return s.Facts[id]
}

// RelationshipTo returns the outgoing edge to another character, if any.
func (s *CharacterState) RelationshipTo(targetID string) (Relationship, bool) {
	rel, ok := s.Relationships[targetID]
	return rel, ok
}
