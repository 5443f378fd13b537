package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/ersonp/liferpg-core/internal/domain/entities"
	"github.com/ersonp/liferpg-core/internal/domain/ports"
)

// DefaultSearchLimit is the default number of results to return.
const DefaultSearchLimit = 10

// FactCatalogService indexes authored facts for semantic search.
type FactCatalogService struct {
	embedder ports.Embedder
	index    ports.FactIndex
}

// NewFactCatalogService creates a new FactCatalogService.
func NewFactCatalogService(embedder ports.Embedder, index ports.FactIndex) *FactCatalogService {
	return &FactCatalogService{
		embedder: embedder,
		index:    index,
	}
}

// Index replaces the indexed catalog with the given facts.
func (s *FactCatalogService) Index(ctx context.Context, facts []entities.Fact) (int, error) {
	if err := s.index.DeleteAll(ctx); err != nil {
		return 0, fmt.Errorf("clearing fact index: %w", err)
	}
	if len(facts) == 0 {
		return 0, nil
	}

	texts := make([]string, len(facts))
	for i := range facts {
		texts[i] = facts[i].SearchText()
	}

	embeddings, err := s.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return 0, fmt.Errorf("generating embeddings: %w", err)
	}
	if len(embeddings) != len(facts) {
		return 0, errors.New("embedding count does not match fact count")
	}

	indexed := make([]ports.IndexedFact, len(facts))
	for i := range facts {
		indexed[i] = ports.IndexedFact{Fact: facts[i], Embedding: embeddings[i]}
	}

	if err := s.index.SaveBatch(ctx, indexed); err != nil {
		return 0, fmt.Errorf("saving facts: %w", err)
	}
	return len(indexed), nil
}

// Search finds facts semantically similar to the query.
func (s *FactCatalogService) Search(ctx context.Context, query string, limit int) ([]ports.IndexedFact, error) {
	if limit <= 0 {
		limit = DefaultSearchLimit
	}

	embedding, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("generating query embedding: %w", err)
	}

	facts, err := s.index.Search(ctx, embedding, limit)
	if err != nil {
		return nil, fmt.Errorf("searching facts: %w", err)
	}
	return facts, nil
}

// Dimensions is the vector length the index must be created with.
func (s *FactCatalogService) Dimensions() uint64 {
	return s.embedder.Dimensions()
}

// Count returns the number of indexed facts.
func (s *FactCatalogService) Count(ctx context.Context) (uint64, error) {
	return s.index.Count(ctx)
}
