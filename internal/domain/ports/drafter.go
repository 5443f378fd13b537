package ports

import (
	"context"

	"github.com/ersonp/liferpg-core/internal/domain/entities"
)

// FactDrafter proposes fact definitions from free-form prose.
type FactDrafter interface {
	DraftFacts(ctx context.Context, text string) ([]entities.Fact, error)
}
