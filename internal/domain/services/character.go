package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/ersonp/liferpg-core/internal/domain/entities"
	"github.com/ersonp/liferpg-core/internal/domain/ports"
)

// Age bounds for generated characters.
const (
	MinGeneratedAge = 18
	MaxGeneratedAge = 80
)

// CharacterService creates characters and builds their evaluation snapshots.
type CharacterService struct {
	relationalDB ports.RelationalDB
	rng          ports.RandomSource
	sampler      *AttributeSampler
	logger       *slog.Logger
}

// NewCharacterService creates a new CharacterService. A nil logger uses slog.Default.
func NewCharacterService(relationalDB ports.RelationalDB, rng ports.RandomSource, logger *slog.Logger) *CharacterService {
	if logger == nil {
		logger = slog.Default()
	}
	return &CharacterService{
		relationalDB: relationalDB,
		rng:          rng,
		sampler:      NewAttributeSampler(rng),
		logger:       logger,
	}
}

// NewCharacter builds a random character without persisting it. Every field,
// the ID included, is drawn from the service's random source.
func (s *CharacterService) NewCharacter(now time.Time) entities.Character {
	sex := s.pickSex()
	height := s.sampler.SampleHeight(sex)

	// Birth dates fall at midnight so a seed replays identically all day.
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	oldest := today.AddDate(-MaxGeneratedAge, 0, 0)
	youngest := today.AddDate(-MinGeneratedAge, 0, 0)
	days := int(youngest.Sub(oldest).Hours() / 24)

	c := entities.Character{
		Name:       s.pickName(sex),
		BirthDate:  oldest.AddDate(0, 0, s.rng.IntN(0, days+1)),
		Sex:        sex,
		Height:     height,
		Weight:     s.sampler.SampleWeight(sex, height),
		MuscleMass: s.sampler.SampleMuscleMass(sex, height),
		Energy:     entities.MaxEnergy,
		CreatedAt:  now,
	}
	c.ID = uuid.Must(uuid.NewRandomFromReader(randomReader{s.rng})).String()
	return c
}

// randomReader feeds uuid generation from a RandomSource.
type randomReader struct {
	rng ports.RandomSource
}

func (r randomReader) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = byte(r.rng.IntN(0, 256))
	}
	return len(p), nil
}

// Generate creates and persists count random characters.
func (s *CharacterService) Generate(ctx context.Context, count int, now time.Time) ([]entities.Character, error) {
	created := make([]entities.Character, 0, count)
	for i := 0; i < count; i++ {
		c := s.NewCharacter(now)
		if err := s.relationalDB.SaveCharacter(ctx, &c); err != nil {
			return nil, fmt.Errorf("saving character %d: %w", i+1, err)
		}
		created = append(created, c)
	}

	s.logger.InfoContext(ctx, "generated characters", "count", len(created))
	return created, nil
}

// Find looks a character up by ID, then by name.
func (s *CharacterService) Find(ctx context.Context, idOrName string) (*entities.Character, error) {
	c, err := s.relationalDB.FindCharacterByID(ctx, idOrName)
	if err != nil {
		return nil, fmt.Errorf("finding character by id: %w", err)
	}
	if c != nil {
		return c, nil
	}

	c, err = s.relationalDB.FindCharacterByName(ctx, idOrName)
	if err != nil {
		return nil, fmt.Errorf("finding character by name: %w", err)
	}
	if c == nil {
		return nil, fmt.Errorf("%w: %s", ErrCharacterNotFound, idOrName)
	}
	return c, nil
}

// State loads the evaluation snapshot of a character.
func (s *CharacterService) State(ctx context.Context, idOrName string) (*entities.CharacterState, error) {
	c, err := s.Find(ctx, idOrName)
	if err != nil {
		return nil, err
	}

	traits, err := s.relationalDB.ListTraits(ctx, c.ID)
	if err != nil {
		return nil, fmt.Errorf("listing traits: %w", err)
	}

	facts, err := s.relationalDB.ListFacts(ctx, c.ID)
	if err != nil {
		return nil, fmt.Errorf("listing facts: %w", err)
	}

	rels, err := s.relationalDB.FindRelationshipsByCharacter(ctx, c.ID)
	if err != nil {
		return nil, fmt.Errorf("listing relationships: %w", err)
	}

	return entities.NewCharacterState(*c, traits, facts, rels), nil
}

// AddTrait gives a character a trait.
func (s *CharacterService) AddTrait(ctx context.Context, idOrName, traitID string) error {
	c, err := s.Find(ctx, idOrName)
	if err != nil {
		return err
	}
	if err := s.relationalDB.AddTrait(ctx, c.ID, traitID); err != nil {
		return fmt.Errorf("adding trait: %w", err)
	}
	return nil
}

// History returns the audit log of a character, oldest first.
func (s *CharacterService) History(ctx context.Context, idOrName string) ([]entities.AuditEntry, error) {
	c, err := s.Find(ctx, idOrName)
	if err != nil {
		return nil, err
	}
	entries, err := s.relationalDB.FindAuditLog(ctx, c.ID)
	if err != nil {
		return nil, fmt.Errorf("finding audit log: %w", err)
	}
	return entries, nil
}

// List returns characters with pagination.
func (s *CharacterService) List(ctx context.Context, limit, offset int) ([]*entities.Character, error) {
	return s.relationalDB.ListCharacters(ctx, limit, offset)
}

// Count returns the number of characters.
func (s *CharacterService) Count(ctx context.Context) (int, error) {
	return s.relationalDB.CountCharacters(ctx)
}

func (s *CharacterService) pickSex() entities.Sex {
	total := 0
	for _, w := range sexWeights {
		total += w.weight
	}
	roll := s.rng.IntN(0, total)
	for _, w := range sexWeights {
		if roll < w.weight {
			return w.sex
		}
		roll -= w.weight
	}
	return entities.SexOther
}

func (s *CharacterService) pickName(sex entities.Sex) string {
	var firstNames []string
	switch sex {
	case entities.SexMale:
		firstNames = maleFirstNames
	case entities.SexFemale:
		firstNames = femaleFirstNames
	default:
		firstNames = append(append([]string{}, maleFirstNames...), femaleFirstNames...)
	}
	first := firstNames[s.rng.IntN(0, len(firstNames))]
	last := surnames[s.rng.IntN(0, len(surnames))]
	return first + " " + last
}
