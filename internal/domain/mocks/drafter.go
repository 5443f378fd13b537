package mocks

import (
	"context"

	"github.com/ersonp/liferpg-core/internal/domain/entities"
)

// FactDrafter is a mock implementation of ports.FactDrafter.
type FactDrafter struct {
	Facts []entities.Fact
	Err   error

	LastText string
}

// DraftFacts returns the configured facts or error.
func (m *FactDrafter) DraftFacts(_ context.Context, text string) ([]entities.Fact, error) {
	m.LastText = text
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Facts, nil
}
