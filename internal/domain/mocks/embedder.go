package mocks

import "context"

// Embedder is a mock implementation of ports.Embedder. Every text maps to
// Vector, or to a zero vector of Dims elements when Vector is unset.
type Embedder struct {
	Vector []float32
	Dims   uint64
	Err    error

	Texts      []string
	BatchCalls int
}

// Embed returns the configured vector.
func (m *Embedder) Embed(ctx context.Context, text string) ([]float32, error) {
	out, err := m.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return out[0], nil
}

// EmbedBatch returns one vector per text and records the texts.
func (m *Embedder) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	m.BatchCalls++
	if m.Err != nil {
		return nil, m.Err
	}
	m.Texts = append(m.Texts, texts...)

	out := make([][]float32, len(texts))
	for i := range texts {
		if m.Vector != nil {
			out[i] = m.Vector
		} else {
			out[i] = make([]float32, m.Dimensions())
		}
	}
	return out, nil
}

// Dimensions reports Dims, or the length of Vector when Dims is unset.
func (m *Embedder) Dimensions() uint64 {
	if m.Dims == 0 {
		return uint64(len(m.Vector))
	}
	return m.Dims
}
