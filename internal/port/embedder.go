package port

import "context"

// Embedder produces fixed-dimension embedding vectors for texts. The
// returned slice is index-aligned with the input.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
	Dimension() int
	ModelName() string
}
