// Package openai provides an Embedder implementation using OpenAI.
package openai

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/sashabaranov/go-openai"

	"github.com/ersonp/liferpg-core/internal/infrastructure/config"
)

// modelDimensions lists the native vector length of known embedding models.
var modelDimensions = map[openai.EmbeddingModel]uint64{
	openai.SmallEmbedding3: 1536,
	openai.LargeEmbedding3: 3072,
	openai.AdaEmbeddingV2:  1536,
}

// Embedder turns fact text into vectors for the fact catalog.
type Embedder struct {
	client     *openai.Client
	model      openai.EmbeddingModel
	dimensions uint64
	// shorten asks the API to truncate vectors to dimensions.
	shorten bool
}

// NewEmbedder creates a new OpenAI embedder. Models missing from
// modelDimensions need cfg.Dimensions.
func NewEmbedder(cfg config.EmbedderConfig) (*Embedder, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("OpenAI API key is required (set OPENAI_API_KEY)")
	}
	if cfg.Dimensions < 0 {
		return nil, fmt.Errorf("embedder.dimensions must be positive, got %d", cfg.Dimensions)
	}

	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	model := openai.SmallEmbedding3
	if cfg.Model != "" {
		model = openai.EmbeddingModel(cfg.Model)
	}

	e := &Embedder{
		client:     openai.NewClientWithConfig(clientCfg),
		model:      model,
		dimensions: modelDimensions[model],
	}
	if cfg.Dimensions > 0 {
		e.shorten = uint64(cfg.Dimensions) != e.dimensions
		e.dimensions = uint64(cfg.Dimensions)
	}
	if e.dimensions == 0 {
		return nil, fmt.Errorf("unknown vector size for model %q (set embedder.dimensions)", model)
	}

	return e, nil
}

// Dimensions is the length of every vector the embedder returns.
func (e *Embedder) Dimensions() uint64 {
	return e.dimensions
}

// Embed generates a vector embedding for the given text.
func (e *Embedder) Embed(ctx context.Context, text string) ([]float32, error) {
	embeddings, err := e.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}

	if len(embeddings) == 0 {
		return nil, errors.New("no embeddings returned")
	}

	return embeddings[0], nil
}

// EmbedBatch generates vector embeddings for multiple texts.
// Results are returned in input order.
func (e *Embedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	req := openai.EmbeddingRequest{
		Model: e.model,
		Input: texts,
	}
	if e.shorten {
		req.Dimensions = int(e.dimensions)
	}

	resp, err := e.client.CreateEmbeddings(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("creating embeddings: %w", err)
	}
	if len(resp.Data) != len(texts) {
		return nil, fmt.Errorf("expected %d embeddings, got %d", len(texts), len(resp.Data))
	}

	data := resp.Data
	sort.SliceStable(data, func(i, j int) bool { return data[i].Index < data[j].Index })

	embeddings := make([][]float32, len(data))
	for i, d := range data {
		if uint64(len(d.Embedding)) != e.dimensions {
			return nil, fmt.Errorf("embedding %d has %d dimensions, expected %d", d.Index, len(d.Embedding), e.dimensions)
		}
		embeddings[i] = d.Embedding
	}

	return embeddings, nil
}
