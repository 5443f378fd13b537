package services

import (
	"math/rand/v2"
	"time"

	"github.com/ersonp/liferpg-core/internal/domain/entities"
)

// seededRNG is a deterministic ports.RandomSource for property tests.
type seededRNG struct {
	r *rand.Rand
}

func newSeededRNG(seed uint64) *seededRNG {
	return &seededRNG{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (s *seededRNG) IntN(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + s.r.IntN(hi-lo)
}

func (s *seededRNG) Float64() float64 {
	return 1 - s.r.Float64()
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func newCharacter(id string, born time.Time) entities.Character {
	return entities.Character{
		ID:        id,
		Name:      "Character " + id,
		BirthDate: born,
		Sex:       entities.SexOther,
		Energy:    entities.MaxEnergy,
	}
}

func intPtr(v int) *int {
	return &v
}
