package ports

import (
	"context"

	"github.com/ersonp/liferpg-core/internal/domain/entities"
)

// IndexedFact pairs a learnable fact from the content catalog with the
// embedding of its name and description. Score is only set on search results.
type IndexedFact struct {
	Fact      entities.Fact `json:"fact"`
	Embedding []float32     `json:"-"`
	Score     float32       `json:"score,omitempty"`
}

// FactIndex stores fact embeddings so players and authors can find facts by
// meaning rather than by ID.
type FactIndex interface {
	// SaveBatch stores multiple facts with their embeddings.
	SaveBatch(ctx context.Context, facts []IndexedFact) error

	// Search performs a semantic search and returns similar facts.
	Search(ctx context.Context, embedding []float32, limit int) ([]IndexedFact, error)

	// DeleteAll removes all facts but keeps the collection.
	DeleteAll(ctx context.Context) error

	// Count returns the total number of indexed facts.
	Count(ctx context.Context) (uint64, error)
}
