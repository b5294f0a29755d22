// Package compliance answers policy questions by semantic search over the
// chunked expense policy document. Unlike emails, no metadata filtering
// applies: the whole policy is always in scope.
package compliance

import (
	"context"

	"hawkai/internal/domain"
	"hawkai/internal/index"
	"hawkai/internal/retriever"
)

// DefaultTopK is how many policy excerpts a search returns at most.
const DefaultTopK = 5

// Subsystem searches a built policy index.
type Subsystem struct {
	chunks   []domain.Chunk
	embedder domain.Embedder
	backend  retriever.Backend
	topK     int
}

func New(idx *index.CorpusIndex, embedder domain.Embedder, backend retriever.Backend, topK int) *Subsystem {
	if topK <= 0 {
		topK = DefaultTopK
	}
	return &Subsystem{chunks: idx.Chunks, embedder: embedder, backend: backend, topK: topK}
}

// Search returns the policy excerpts most similar to the question. An empty
// result is a valid outcome, not an error.
func (s *Subsystem) Search(ctx context.Context, question string) ([]domain.SearchResult, error) {
	vec, err := s.embedder.Embed(ctx, question)
	if err != nil {
		return nil, err
	}
	return s.backend.Search(s.chunks, index.Normalize(vec), s.topK), nil
}
