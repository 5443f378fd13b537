package mocks

import (
	"context"

	"github.com/ersonp/liferpg-core/internal/domain/ports"
)

// FactIndex is an in-memory mock implementation of ports.FactIndex.
type FactIndex struct {
	Facts         []ports.IndexedFact
	SearchResults []ports.IndexedFact
	SaveErr       error
	SearchErr     error
	DeleteErr     error

	// Call tracking
	LastSearchLimit int
	DeleteAllCalls  int
}

// SaveBatch stores the facts.
func (m *FactIndex) SaveBatch(_ context.Context, facts []ports.IndexedFact) error {
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.Facts = append(m.Facts, facts...)
	return nil
}

// Search returns the configured results.
func (m *FactIndex) Search(_ context.Context, _ []float32, limit int) ([]ports.IndexedFact, error) {
	m.LastSearchLimit = limit
	if m.SearchErr != nil {
		return nil, m.SearchErr
	}
	if limit < len(m.SearchResults) {
		return m.SearchResults[:limit], nil
	}
	return m.SearchResults, nil
}

// DeleteAll clears the stored facts.
func (m *FactIndex) DeleteAll(_ context.Context) error {
	m.DeleteAllCalls++
	if m.DeleteErr != nil {
		return m.DeleteErr
	}
	m.Facts = nil
	return nil
}

// Count returns the number of stored facts.
func (m *FactIndex) Count(_ context.Context) (uint64, error) {
	return uint64(len(m.Facts)), nil
}
