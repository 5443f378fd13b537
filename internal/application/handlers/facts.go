package handlers

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"

	"github.com/ersonp/liferpg-core/internal/domain/ports"
	"github.com/ersonp/liferpg-core/internal/domain/services"
	"github.com/ersonp/liferpg-core/internal/infrastructure/content"
)

// FactsHandler indexes and searches the authored fact catalog.
type FactsHandler struct {
	catalog     *services.FactCatalogService
	collections ports.CollectionManager
	content     *content.Definitions
}

// NewFactsHandler creates a new FactsHandler. collections may be nil when
// the index needs no collection setup.
func NewFactsHandler(catalog *services.FactCatalogService, collections ports.CollectionManager, defs *content.Definitions) *FactsHandler {
	return &FactsHandler{
		catalog:     catalog,
		collections: collections,
		content:     defs,
	}
}

// QueryResult contains the result of a fact search.
type QueryResult struct {
	Query string               `json:"query"`
	Facts []ports.IndexedFact `json:"facts"`
}

// HandleIndex replaces the index with every fact in the content.
func (h *FactsHandler) HandleIndex(ctx context.Context) (n int, err error) {
	ctx, span := startSpan(ctx, "facts.index", attribute.Int("facts", len(h.content.Facts)))
	defer func() { endSpan(span, err) }()

	if h.collections != nil {
		if err := h.collections.EnsureCollection(ctx, h.catalog.Dimensions()); err != nil {
			return 0, fmt.Errorf("creating collection: %w", err)
		}
	}

	return h.catalog.Index(ctx, h.content.Facts)
}

// HandleSearch finds facts semantically similar to the query.
func (h *FactsHandler) HandleSearch(ctx context.Context, query string, limit int) (res *QueryResult, err error) {
	ctx, span := startSpan(ctx, "facts.search", attribute.Int("limit", limit))
	defer func() { endSpan(span, err) }()

	facts, err := h.catalog.Search(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("searching facts: %w", err)
	}

	return &QueryResult{
		Query: query,
		Facts: facts,
	}, nil
}
