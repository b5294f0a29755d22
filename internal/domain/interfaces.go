package domain

import "context"

// Embedder converts free text into a fixed-dimension numeric vector.
// The same embedder must be used at index-build time and query time for a
// given corpus, or similarity scores are meaningless.
type Embedder interface {
	Name() string
	Dimension() int
	Embed(ctx context.Context, text string) ([]float64, error)
}

// Generator produces natural-language prose from an instruction and a
// context. It is an opaque, possibly slow, possibly failing remote call.
type Generator interface {
	Generate(ctx context.Context, system, user string) (string, error)
}
