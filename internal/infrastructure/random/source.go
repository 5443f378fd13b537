// Package random provides seeded implementations of ports.RandomSource.
package random

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand/v2"
	"sync"

	"github.com/ersonp/liferpg-core/internal/domain/ports"
)

// streamSalt derives the second PCG word from the seed.
const streamSalt = 0x9e3779b97f4a7c15

// Source is a PCG-backed random source. It is not safe for concurrent use;
// wrap it with NewLocked when sharing across goroutines.
type Source struct {
	seed uint64
	r    *rand.Rand
}

// New creates a Source from a seed. Equal seeds yield equal sequences.
func New(seed uint64) *Source {
	return &Source{
		seed: seed,
		r:    rand.New(rand.NewPCG(seed, seed^streamSalt)),
	}
}

// NewSeed generates a random seed using crypto/rand.
func NewSeed() (uint64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}
	return binary.LittleEndian.Uint64(b[:]), nil
}

// FromSeed returns New(seed), or a freshly seeded Source when seed is 0.
func FromSeed(seed uint64) (*Source, error) {
	if seed == 0 {
		var err error
		if seed, err = NewSeed(); err != nil {
			return nil, err
		}
	}
	return New(seed), nil
}

// Seed returns the seed the source was created with.
func (s *Source) Seed() uint64 {
	return s.seed
}

// IntN returns a uniform integer in [lo, hi), or lo when hi <= lo.
func (s *Source) IntN(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + s.r.IntN(hi-lo)
}

// Float64 returns a uniform value in (0, 1].
func (s *Source) Float64() float64 {
	return 1 - s.r.Float64()
}

// Locked serializes access to another source.
type Locked struct {
	mu  sync.Mutex
	src ports.RandomSource
}

// NewLocked wraps src so it can be shared by concurrent sessions.
func NewLocked(src ports.RandomSource) *Locked {
	return &Locked{src: src}
}

// IntN implements ports.RandomSource.
func (l *Locked) IntN(lo, hi int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.src.IntN(lo, hi)
}

// Float64 implements ports.RandomSource.
func (l *Locked) Float64() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.src.Float64()
}
