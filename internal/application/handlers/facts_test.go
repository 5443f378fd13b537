package handlers

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ersonp/liferpg-core/internal/domain/entities"
	"github.com/ersonp/liferpg-core/internal/domain/mocks"
	"github.com/ersonp/liferpg-core/internal/domain/ports"
	"github.com/ersonp/liferpg-core/internal/domain/services"
)

func TestFactsHandler_HandleIndex(t *testing.T) {
	f := newFixture(t)
	index := &mocks.FactIndex{}
	collections := &mocks.CollectionManager{}
	catalog := services.NewFactCatalogService(&mocks.Embedder{Dims: 16}, index)

	n, err := NewFactsHandler(catalog, collections, f.defs).HandleIndex(t.Context())
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Len(t, index.Facts, 2)
	assert.Equal(t, 1, collections.EnsureCalls)
	assert.Equal(t, uint64(16), collections.Dimensions)
	assert.Len(t, index.Facts[0].Embedding, 16)
}

func TestFactsHandler_HandleIndex_CollectionError(t *testing.T) {
	f := newFixture(t)
	index := &mocks.FactIndex{}
	collections := &mocks.CollectionManager{EnsureErr: errors.New("qdrant down")}
	catalog := services.NewFactCatalogService(&mocks.Embedder{}, index)

	_, err := NewFactsHandler(catalog, collections, f.defs).HandleIndex(t.Context())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "creating collection")
	assert.Empty(t, index.Facts)
}

func TestFactsHandler_HandleSearch(t *testing.T) {
	f := newFixture(t)
	index := &mocks.FactIndex{SearchResults: []ports.IndexedFact{
		{Fact: entities.Fact{ID: "secret", Name: "Secret"}, Score: 0.8},
	}}
	catalog := services.NewFactCatalogService(&mocks.Embedder{}, index)

	res, err := NewFactsHandler(catalog, nil, f.defs).HandleSearch(t.Context(), "spies", 3)
	require.NoError(t, err)
	assert.Equal(t, "spies", res.Query)
	require.Len(t, res.Facts, 1)
	assert.Equal(t, "secret", res.Facts[0].Fact.ID)
	assert.Equal(t, 3, index.LastSearchLimit)
}
