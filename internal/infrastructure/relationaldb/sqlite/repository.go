// Package sqlite provides a SQLite implementation of the RelationalDB interface.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/ersonp/liferpg-core/internal/domain/entities"
	"github.com/ersonp/liferpg-core/internal/domain/ports"
	"github.com/ersonp/liferpg-core/internal/infrastructure/config"
)

// memoryPath opens a private in-memory database.
const memoryPath = ":memory:"

// timeNow returns the current time (can be mocked in tests).
var timeNow = time.Now

// querier is the part of *sql.DB and *sql.Tx the repository queries through.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Repository implements ports.RelationalDB using SQLite.
type Repository struct {
	db   *sql.DB
	q    querier
	tx   *sql.Tx
	path string
}

// NewRepository creates a new SQLite repository.
func NewRepository(cfg config.SQLiteConfig) (*Repository, error) {
	if cfg.Path == "" {
		return nil, errors.New("sqlite path is required")
	}

	db, err := sql.Open("sqlite", cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite database: %w", err)
	}

	// Every pooled connection to :memory: would be a separate database.
	if cfg.Path == memoryPath {
		db.SetMaxOpenConns(1)
	}

	// Enable foreign keys for referential integrity
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	// Enable WAL mode for better concurrent read/write performance
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	// Set busy timeout to avoid "database is locked" errors
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting busy timeout: %w", err)
	}

	return &Repository{
		db:   db,
		q:    db,
		path: cfg.Path,
	}, nil
}

// Close closes the database connection.
func (r *Repository) Close() error {
	return r.db.Close()
}

// WithTx runs fn against a repository bound to one transaction.
// A repository that is already inside a transaction runs fn in it.
func (r *Repository) WithTx(ctx context.Context, fn func(tx ports.RelationalDB) error) error {
	if r.tx != nil {
		return fn(r)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	if err := fn(&Repository{db: r.db, q: tx, tx: tx, path: r.path}); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return errors.Join(err, fmt.Errorf("rolling back: %w", rbErr))
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// Path returns the database file path.
func (r *Repository) Path() string {
	return r.path
}

// EnsureSchema creates the database schema if it doesn't exist.
func (r *Repository) EnsureSchema(ctx context.Context) error {
	schema := `
	-- Characters
	CREATE TABLE IF NOT EXISTS characters (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		birth_date TIMESTAMP NOT NULL,
		sex TEXT NOT NULL,
		height INTEGER NOT NULL,
		weight INTEGER NOT NULL,
		muscle_mass INTEGER NOT NULL,
		energy INTEGER NOT NULL,
		created_at TIMESTAMP NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_characters_name ON characters(name COLLATE NOCASE);

	-- Directed relationship edges, one per (source, target)
	CREATE TABLE IF NOT EXISTS relationships (
		source_character_id TEXT NOT NULL REFERENCES characters(id) ON DELETE CASCADE,
		target_character_id TEXT NOT NULL REFERENCES characters(id) ON DELETE CASCADE,
		type TEXT NOT NULL,
		value INTEGER NOT NULL,
		first_interaction TIMESTAMP NOT NULL,
		last_interaction TIMESTAMP NOT NULL,
		PRIMARY KEY (source_character_id, target_character_id)
	);
	CREATE INDEX IF NOT EXISTS idx_relationships_target ON relationships(target_character_id);
	CREATE INDEX IF NOT EXISTS idx_relationships_type ON relationships(type);

	-- Trait membership
	CREATE TABLE IF NOT EXISTS character_traits (
		character_id TEXT NOT NULL REFERENCES characters(id) ON DELETE CASCADE,
		trait_id TEXT NOT NULL,
		PRIMARY KEY (character_id, trait_id)
	);

	-- Learned facts
	CREATE TABLE IF NOT EXISTS character_facts (
		character_id TEXT NOT NULL REFERENCES characters(id) ON DELETE CASCADE,
		fact_id TEXT NOT NULL,
		learned_at TIMESTAMP NOT NULL,
		PRIMARY KEY (character_id, fact_id)
	);

	-- Audit log (tracks all actions)
	CREATE TABLE IF NOT EXISTS audit_log (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		action TEXT NOT NULL,
		character_id TEXT,
		details TEXT,
		created_at TIMESTAMP NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_audit_log_character ON audit_log(character_id);
	CREATE INDEX IF NOT EXISTS idx_audit_log_action ON audit_log(action);
	`

	_, err := r.q.ExecContext(ctx, schema)
	if err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}

const characterColumns = `id, name, birth_date, sex, height, weight, muscle_mass, energy, created_at`

// SaveCharacter saves or updates a character.
func (r *Repository) SaveCharacter(ctx context.Context, c *entities.Character) error {
	query := `
		INSERT INTO characters (` + characterColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			birth_date = excluded.birth_date,
			sex = excluded.sex,
			height = excluded.height,
			weight = excluded.weight,
			muscle_mass = excluded.muscle_mass,
			energy = excluded.energy
	`
	createdAt := c.CreatedAt
	if createdAt.IsZero() {
		createdAt = timeNow()
	}
	_, err := r.q.ExecContext(ctx, query,
		c.ID,
		c.Name,
		c.BirthDate.UTC(),
		string(c.Sex),
		c.Height,
		c.Weight,
		c.MuscleMass,
		c.Energy,
		createdAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("saving character: %w", err)
	}
	return nil
}

// FindCharacterByID finds a character by its ID.
func (r *Repository) FindCharacterByID(ctx context.Context, id string) (*entities.Character, error) {
	query := `SELECT ` + characterColumns + ` FROM characters WHERE id = ?`
	return r.queryCharacter(ctx, query, id)
}

// FindCharacterByName finds a character by name (case-insensitive).
// When several share a name, the earliest created wins.
func (r *Repository) FindCharacterByName(ctx context.Context, name string) (*entities.Character, error) {
	query := `
		SELECT ` + characterColumns + `
		FROM characters
		WHERE name = ? COLLATE NOCASE
		ORDER BY created_at, id
		LIMIT 1
	`
	return r.queryCharacter(ctx, query, name)
}

// ListCharacters lists characters ordered by name with pagination.
// A non-positive limit returns every character.
func (r *Repository) ListCharacters(ctx context.Context, limit, offset int) ([]*entities.Character, error) {
	if limit <= 0 {
		limit = -1
	}
	query := `
		SELECT ` + characterColumns + `
		FROM characters
		ORDER BY name, id
		LIMIT ? OFFSET ?
	`
	rows, err := r.q.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("listing characters: %w", err)
	}
	defer rows.Close()

	var result []*entities.Character
	for rows.Next() {
		c, err := scanCharacter(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	return result, rows.Err()
}

// CountCharacters returns the number of characters.
func (r *Repository) CountCharacters(ctx context.Context) (int, error) {
	var count int
	if err := r.q.QueryRowContext(ctx, `SELECT COUNT(*) FROM characters`).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting characters: %w", err)
	}
	return count, nil
}

// UpdateEnergy sets a character's energy.
func (r *Repository) UpdateEnergy(ctx context.Context, characterID string, energy int) error {
	result, err := r.q.ExecContext(ctx, `UPDATE characters SET energy = ? WHERE id = ?`, energy, characterID)
	if err != nil {
		return fmt.Errorf("updating energy: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking update: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("character not found: %s", characterID)
	}
	return nil
}

func (r *Repository) queryCharacter(ctx context.Context, query string, args ...any) (*entities.Character, error) {
	row := r.q.QueryRowContext(ctx, query, args...)
	c, err := scanCharacter(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanCharacter(s scanner) (*entities.Character, error) {
	var c entities.Character
	var sex string
	err := s.Scan(
		&c.ID,
		&c.Name,
		&c.BirthDate,
		&sex,
		&c.Height,
		&c.Weight,
		&c.MuscleMass,
		&c.Energy,
		&c.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("scanning character: %w", err)
	}
	c.Sex = entities.ParseSex(sex)
	return &c, nil
}

const relationshipColumns = `source_character_id, target_character_id, type, value, first_interaction, last_interaction`

// SaveRelationship inserts or replaces the edge keyed by (source, target).
func (r *Repository) SaveRelationship(ctx context.Context, rel *entities.Relationship) error {
	query := `
		INSERT INTO relationships (` + relationshipColumns + `)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(source_character_id, target_character_id) DO UPDATE SET
			type = excluded.type,
			value = excluded.value,
			first_interaction = excluded.first_interaction,
			last_interaction = excluded.last_interaction
	`
	_, err := r.q.ExecContext(ctx, query,
		rel.SourceCharacterID,
		rel.TargetCharacterID,
		string(rel.Type),
		rel.Value,
		rel.FirstInteraction.UTC(),
		rel.LastInteraction.UTC(),
	)
	if err != nil {
		return fmt.Errorf("saving relationship: %w", err)
	}
	return nil
}

// FindRelationshipBetween finds the directed edge source→target.
func (r *Repository) FindRelationshipBetween(ctx context.Context, sourceID, targetID string) (*entities.Relationship, error) {
	query := `
		SELECT ` + relationshipColumns + `
		FROM relationships
		WHERE source_character_id = ? AND target_character_id = ?
	`
	rels, err := r.queryRelationships(ctx, query, sourceID, targetID)
	if err != nil {
		return nil, err
	}
	if len(rels) == 0 {
		return nil, nil
	}
	return &rels[0], nil
}

// FindRelationshipsByCharacter finds all outgoing edges of a character.
func (r *Repository) FindRelationshipsByCharacter(ctx context.Context, characterID string) ([]entities.Relationship, error) {
	query := `
		SELECT ` + relationshipColumns + `
		FROM relationships
		WHERE source_character_id = ?
		ORDER BY target_character_id
	`
	return r.queryRelationships(ctx, query, characterID)
}

// ListRelationships lists every edge.
func (r *Repository) ListRelationships(ctx context.Context) ([]entities.Relationship, error) {
	query := `
		SELECT ` + relationshipColumns + `
		FROM relationships
		ORDER BY source_character_id, target_character_id
	`
	return r.queryRelationships(ctx, query)
}

// CountRelationships returns the number of directed edges.
func (r *Repository) CountRelationships(ctx context.Context) (int, error) {
	var count int
	if err := r.q.QueryRowContext(ctx, `SELECT COUNT(*) FROM relationships`).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting relationships: %w", err)
	}
	return count, nil
}

// queryRelationships is a helper to execute relationship queries.
func (r *Repository) queryRelationships(ctx context.Context, query string, args ...any) ([]entities.Relationship, error) {
	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying relationships: %w", err)
	}
	defer rows.Close()

	var result []entities.Relationship
	for rows.Next() {
		var rel entities.Relationship
		var relType string
		if err := rows.Scan(
			&rel.SourceCharacterID,
			&rel.TargetCharacterID,
			&relType,
			&rel.Value,
			&rel.FirstInteraction,
			&rel.LastInteraction,
		); err != nil {
			return nil, fmt.Errorf("scanning relationship: %w", err)
		}
		rel.Type = entities.RelationType(relType)
		result = append(result, rel)
	}
	return result, rows.Err()
}

// AddTrait gives a character a trait.
func (r *Repository) AddTrait(ctx context.Context, characterID, traitID string) error {
	query := `INSERT OR IGNORE INTO character_traits (character_id, trait_id) VALUES (?, ?)`
	if _, err := r.q.ExecContext(ctx, query, characterID, traitID); err != nil {
		return fmt.Errorf("adding trait: %w", err)
	}
	return nil
}

// ListTraits lists a character's trait IDs.
func (r *Repository) ListTraits(ctx context.Context, characterID string) ([]string, error) {
	query := `SELECT trait_id FROM character_traits WHERE character_id = ? ORDER BY trait_id`
	return r.queryStrings(ctx, query, characterID)
}

// LearnFact records that a character knows a fact.
func (r *Repository) LearnFact(ctx context.Context, characterID, factID string) error {
	query := `INSERT OR IGNORE INTO character_facts (character_id, fact_id, learned_at) VALUES (?, ?, ?)`
	if _, err := r.q.ExecContext(ctx, query, characterID, factID, timeNow().UTC()); err != nil {
		return fmt.Errorf("learning fact: %w", err)
	}
	return nil
}

// ListFacts lists the fact IDs a character knows.
func (r *Repository) ListFacts(ctx context.Context, characterID string) ([]string, error) {
	query := `SELECT fact_id FROM character_facts WHERE character_id = ? ORDER BY fact_id`
	return r.queryStrings(ctx, query, characterID)
}

func (r *Repository) queryStrings(ctx context.Context, query string, args ...any) ([]string, error) {
	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying: %w", err)
	}
	defer rows.Close()

	var result []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, fmt.Errorf("scanning: %w", err)
		}
		result = append(result, s)
	}
	return result, rows.Err()
}

// LogAction logs an action to the audit log.
func (r *Repository) LogAction(ctx context.Context, action string, characterID string, details map[string]any) error {
	var detailsJSON sql.NullString
	if details != nil {
		data, err := json.Marshal(details)
		if err != nil {
			return fmt.Errorf("marshaling details: %w", err)
		}
		detailsJSON = sql.NullString{String: string(data), Valid: true}
	}

	var characterIDPtr sql.NullString
	if characterID != "" {
		characterIDPtr = sql.NullString{String: characterID, Valid: true}
	}

	query := `INSERT INTO audit_log (action, character_id, details, created_at) VALUES (?, ?, ?, ?)`
	_, err := r.q.ExecContext(ctx, query, action, characterIDPtr, detailsJSON, timeNow().UTC())
	if err != nil {
		return fmt.Errorf("logging action: %w", err)
	}
	return nil
}

// FindAuditLog finds audit log entries for a specific character, newest first.
func (r *Repository) FindAuditLog(ctx context.Context, characterID string) ([]entities.AuditEntry, error) {
	query := `
		SELECT id, action, character_id, details, created_at
		FROM audit_log
		WHERE character_id = ?
		ORDER BY created_at DESC, id DESC
	`
	return r.queryAuditLog(ctx, query, characterID)
}

// FindAuditLogByAction finds audit log entries by action type.
func (r *Repository) FindAuditLogByAction(ctx context.Context, action string, limit int) ([]entities.AuditEntry, error) {
	query := `
		SELECT id, action, character_id, details, created_at
		FROM audit_log
		WHERE action = ?
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	`
	return r.queryAuditLog(ctx, query, action, limit)
}

// queryAuditLog is a helper to execute audit log queries.
func (r *Repository) queryAuditLog(ctx context.Context, query string, args ...any) ([]entities.AuditEntry, error) {
	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying audit log: %w", err)
	}
	defer rows.Close()

	var entries []entities.AuditEntry
	for rows.Next() {
		var entry entities.AuditEntry
		var characterID, details sql.NullString

		if err := rows.Scan(
			&entry.ID,
			&entry.Action,
			&characterID,
			&details,
			&entry.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning audit entry: %w", err)
		}

		entry.CharacterID = characterID.String

		if details.Valid && details.String != "" {
			if err := json.Unmarshal([]byte(details.String), &entry.Details); err != nil {
				return nil, fmt.Errorf("unmarshaling details: %w", err)
			}
		}

		entries = append(entries, entry)
	}
	return entries, rows.Err()
}
