package mocks

import (
	"context"
	"sort"
	"strings"

	"github.com/ersonp/liferpg-core/internal/domain/entities"
	"github.com/ersonp/liferpg-core/internal/domain/ports"
)

// RelationalDB is an in-memory mock implementation of ports.RelationalDB.
type RelationalDB struct {
	Characters    map[string]*entities.Character
	Relationships map[[2]string]*entities.Relationship
	Traits        map[string]map[string]bool
	Facts         map[string]map[string]bool
	Audit         []entities.AuditEntry
	Err           error
	TxCalls       int
	Rollbacks     int
}

// NewRelationalDB creates a new mock RelationalDB.
func NewRelationalDB() *RelationalDB {
	return &RelationalDB{
		Characters:    make(map[string]*entities.Character),
		Relationships: make(map[[2]string]*entities.Relationship),
		Traits:        make(map[string]map[string]bool),
		Facts:         make(map[string]map[string]bool),
	}
}

// EnsureSchema creates the database schema if it doesn't exist.
func (m *RelationalDB) EnsureSchema(_ context.Context) error {
	return m.Err
}

// Close closes the database connection.
func (m *RelationalDB) Close() error {
	return nil
}

// WithTx runs fn against the mock itself and restores the prior state when fn fails.
func (m *RelationalDB) WithTx(_ context.Context, fn func(tx ports.RelationalDB) error) error {
	m.TxCalls++
	snap := m.snapshot()
	if err := fn(m); err != nil {
		m.Characters, m.Relationships, m.Traits, m.Facts, m.Audit = snap.Characters, snap.Relationships, snap.Traits, snap.Facts, snap.Audit
		m.Rollbacks++
		return err
	}
	return nil
}

func (m *RelationalDB) snapshot() *RelationalDB {
	snap := NewRelationalDB()
	for id, c := range m.Characters {
		cp := *c
		snap.Characters[id] = &cp
	}
	for key, rel := range m.Relationships {
		cp := *rel
		snap.Relationships[key] = &cp
	}
	for owner, set := range m.Traits {
		for id := range set {
			addMember(snap.Traits, owner, id)
		}
	}
	for owner, set := range m.Facts {
		for id := range set {
			addMember(snap.Facts, owner, id)
		}
	}
	snap.Audit = append([]entities.AuditEntry(nil), m.Audit...)
	return snap
}

// Character methods.

// SaveCharacter saves or updates a character.
func (m *RelationalDB) SaveCharacter(_ context.Context, c *entities.Character) error {
	if m.Err != nil {
		return m.Err
	}
	cp := *c
	m.Characters[c.ID] = &cp
	return nil
}

// FindCharacterByID finds a character by its ID.
func (m *RelationalDB) FindCharacterByID(_ context.Context, id string) (*entities.Character, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	c, ok := m.Characters[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

// FindCharacterByName finds a character by name, case-insensitively.
func (m *RelationalDB) FindCharacterByName(_ context.Context, name string) (*entities.Character, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	for _, c := range m.Characters {
		if strings.EqualFold(c.Name, name) {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

// ListCharacters lists characters ordered by name.
func (m *RelationalDB) ListCharacters(_ context.Context, limit, offset int) ([]*entities.Character, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	result := make([]*entities.Character, 0, len(m.Characters))
	for _, c := range m.Characters {
		cp := *c
		result = append(result, &cp)
	}
	// Sort by name for deterministic test results
	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})
	if offset >= len(result) {
		return []*entities.Character{}, nil
	}
	result = result[offset:]
	if limit > 0 && limit < len(result) {
		result = result[:limit]
	}
	return result, nil
}

// CountCharacters returns the number of characters.
func (m *RelationalDB) CountCharacters(_ context.Context) (int, error) {
	return len(m.Characters), m.Err
}

// UpdateEnergy sets a character's energy.
func (m *RelationalDB) UpdateEnergy(_ context.Context, characterID string, energy int) error {
	if m.Err != nil {
		return m.Err
	}
	if c, ok := m.Characters[characterID]; ok {
		c.Energy = energy
	}
	return nil
}

// Relationship methods.

// SaveRelationship inserts or replaces an edge.
func (m *RelationalDB) SaveRelationship(_ context.Context, rel *entities.Relationship) error {
	if m.Err != nil {
		return m.Err
	}
	cp := *rel
	m.Relationships[[2]string{rel.SourceCharacterID, rel.TargetCharacterID}] = &cp
	return nil
}

// FindRelationshipBetween finds the directed edge source→target.
func (m *RelationalDB) FindRelationshipBetween(_ context.Context, sourceID, targetID string) (*entities.Relationship, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	rel, ok := m.Relationships[[2]string{sourceID, targetID}]
	if !ok {
		return nil, nil
	}
	cp := *rel
	return &cp, nil
}

// FindRelationshipsByCharacter finds all outgoing edges of a character.
func (m *RelationalDB) FindRelationshipsByCharacter(_ context.Context, characterID string) ([]entities.Relationship, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	var result []entities.Relationship
	for _, rel := range m.sortedRelationships() {
		if rel.SourceCharacterID == characterID {
			result = append(result, rel)
		}
	}
	return result, nil
}

// ListRelationships lists every edge.
func (m *RelationalDB) ListRelationships(_ context.Context) ([]entities.Relationship, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.sortedRelationships(), nil
}

// CountRelationships returns the number of edges.
func (m *RelationalDB) CountRelationships(_ context.Context) (int, error) {
	return len(m.Relationships), m.Err
}

func (m *RelationalDB) sortedRelationships() []entities.Relationship {
	result := make([]entities.Relationship, 0, len(m.Relationships))
	for _, rel := range m.Relationships {
		result = append(result, *rel)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].SourceCharacterID != result[j].SourceCharacterID {
			return result[i].SourceCharacterID < result[j].SourceCharacterID
		}
		return result[i].TargetCharacterID < result[j].TargetCharacterID
	})
	return result
}

// Trait and fact methods.

// AddTrait gives a character a trait.
func (m *RelationalDB) AddTrait(_ context.Context, characterID, traitID string) error {
	if m.Err != nil {
		return m.Err
	}
	addMember(m.Traits, characterID, traitID)
	return nil
}

// ListTraits lists a character's traits.
func (m *RelationalDB) ListTraits(_ context.Context, characterID string) ([]string, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return members(m.Traits, characterID), nil
}

// LearnFact records that a character knows a fact.
func (m *RelationalDB) LearnFact(_ context.Context, characterID, factID string) error {
	if m.Err != nil {
		return m.Err
	}
	addMember(m.Facts, characterID, factID)
	return nil
}

// ListFacts lists the facts a character knows.
func (m *RelationalDB) ListFacts(_ context.Context, characterID string) ([]string, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return members(m.Facts, characterID), nil
}

// LogAction appends an audit entry.
func (m *RelationalDB) LogAction(_ context.Context, action string, characterID string, details map[string]any) error {
	if m.Err != nil {
		return m.Err
	}
	m.Audit = append(m.Audit, entities.AuditEntry{
		ID:          int64(len(m.Audit) + 1),
		Action:      action,
		CharacterID: characterID,
		Details:     details,
	})
	return nil
}

// FindAuditLog finds audit entries for a character.
func (m *RelationalDB) FindAuditLog(_ context.Context, characterID string) ([]entities.AuditEntry, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	var result []entities.AuditEntry
	for _, e := range m.Audit {
		if e.CharacterID == characterID {
			result = append(result, e)
		}
	}
	return result, nil
}

func addMember(sets map[string]map[string]bool, owner, member string) {
	if sets[owner] == nil {
		sets[owner] = make(map[string]bool)
	}
	sets[owner][member] = true
}

func members(sets map[string]map[string]bool, owner string) []string {
	result := make([]string, 0, len(sets[owner]))
	for id := range sets[owner] {
		result = append(result, id)
	}
	sort.Strings(result)
	return result
}
