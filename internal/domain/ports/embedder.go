package ports

import "context"

// Embedder turns fact text and search queries into vectors.
// Every vector it returns has Dimensions elements.
type Embedder interface {
	// Embed embeds a single search query.
	Embed(ctx context.Context, text string) ([]float32, error)

	// EmbedBatch embeds texts in one request and returns vectors in input order.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)

	// Dimensions is the vector length the index must be created with.
	Dimensions() uint64
}
