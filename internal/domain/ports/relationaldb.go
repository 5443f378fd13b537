package ports

import (
	"context"

	"github.com/ersonp/liferpg-core/internal/domain/entities"
)

// RelationalDB defines the interface for relational database operations.
// It owns persisted characters, their relationships and what they know.
type RelationalDB interface {
	// EnsureSchema creates the database schema if it doesn't exist.
	EnsureSchema(ctx context.Context) error

	// Close closes the database connection.
	Close() error

	// WithTx runs fn against a repository bound to one transaction. The
	// transaction commits when fn returns nil and rolls back otherwise.
	// Calling WithTx on a transaction-bound repository joins the open transaction.
	WithTx(ctx context.Context, fn func(tx RelationalDB) error) error

	// Character operations

	// SaveCharacter saves or updates a character.
	SaveCharacter(ctx context.Context, character *entities.Character) error

	// FindCharacterByID finds a character by its ID. Returns nil if not found.
	FindCharacterByID(ctx context.Context, id string) (*entities.Character, error)

	// FindCharacterByName finds a character by name (case-insensitive). Returns nil if not found.
	FindCharacterByName(ctx context.Context, name string) (*entities.Character, error)

	// ListCharacters lists characters ordered by name with pagination.
	ListCharacters(ctx context.Context, limit, offset int) ([]*entities.Character, error)

	// CountCharacters returns the number of characters.
	CountCharacters(ctx context.Context) (int, error)

	// UpdateEnergy sets a character's energy.
	UpdateEnergy(ctx context.Context, characterID string, energy int) error

	// Relationship operations

	// SaveRelationship inserts or replaces the edge keyed by (source, target).
	SaveRelationship(ctx context.Context, rel *entities.Relationship) error

	// FindRelationshipBetween finds the directed edge source→target. Returns nil if none exists.
	FindRelationshipBetween(ctx context.Context, sourceID, targetID string) (*entities.Relationship, error)

	// FindRelationshipsByCharacter finds all edges whose source is the character.
	FindRelationshipsByCharacter(ctx context.Context, characterID string) ([]entities.Relationship, error)

	// ListRelationships lists every edge.
	ListRelationships(ctx context.Context) ([]entities.Relationship, error)

	// CountRelationships returns the number of directed edges.
	CountRelationships(ctx context.Context) (int, error)

	// Trait and fact membership

	// AddTrait gives a character a trait. Adding an existing trait is a no-op.
	AddTrait(ctx context.Context, characterID, traitID string) error

	// ListTraits lists a character's trait IDs.
	ListTraits(ctx context.Context, characterID string) ([]string, error)

	// LearnFact records that a character knows a fact. Learning twice is a no-op.
	LearnFact(ctx context.Context, characterID, factID string) error

	// ListFacts lists the fact IDs a character knows.
	ListFacts(ctx context.Context, characterID string) ([]string, error)

	// LogAction logs an action to the audit log.
	LogAction(ctx context.Context, action string, characterID string, details map[string]any) error

	// FindAuditLog finds audit log entries for a character.
	FindAuditLog(ctx context.Context, characterID string) ([]entities.AuditEntry, error)
}
