package a

import (
	"context"
	"strings"
)

type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
}

type FactIndex interface {
	Search(ctx context.Context, embedding []float32, limit int) ([]string, error)
}

func bad(ctx context.Context, queries []string, e Embedder, idx FactIndex) {
	for _, q := range queries {
		v, _ := e.Embed(ctx, q)     // want "potential N\\+1: Embed called inside loop"
		_, _ = idx.Search(ctx, v, 5) // want "potential N\\+1: Search called inside loop"
	}
}

func good(ctx context.Context, queries []string, e Embedder) {
	_, _ = e.EmbedBatch(ctx, queries)
	for _, q := range queries {
		_ = strings.Count(q, "a")
	}
}
