// Package retriever implements top-k similarity search over chunk
// embeddings. The contract is identical regardless of backend: top k by
// descending score, ties broken by ascending chunk id, so swapping backends
// is a performance substitution, never a behavioral one.
package retriever

import (
	"sort"

	"hawkai/internal/domain"
)

// Backend scores every candidate chunk against the query vector and selects
// the top k. Vectors are assumed L2-normalized, so cosine similarity reduces
// to a dot product.
type Backend interface {
	Name() string
	Search(chunks []domain.Chunk, query []float64, k int) []domain.SearchResult
}

// Exact is a single-threaded linear scan.
type Exact struct{}

func NewExact() Exact { return Exact{} }

func (Exact) Name() string { return "exact" }

func (Exact) Search(chunks []domain.Chunk, query []float64, k int) []domain.SearchResult {
	if len(chunks) == 0 || k <= 0 {
		return nil
	}
	scores := make([]float64, len(chunks))
	for i := range chunks {
		scores[i] = dot(chunks[i].Embedding, query)
	}
	return selectTopK(chunks, scores, k)
}

func dot(a, b []float64) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	sum := 0.0
	for i := 0; i < n; i++ {
		sum += a[i] * b[i]
	}
	return sum
}

// selectTopK orders candidates by descending score with ascending chunk id
// on ties, and truncates to at most k results.
func selectTopK(chunks []domain.Chunk, scores []float64, k int) []domain.SearchResult {
	idxs := make([]int, len(chunks))
	for i := range idxs {
		idxs[i] = i
	}
	sort.Slice(idxs, func(a, b int) bool {
		i, j := idxs[a], idxs[b]
		if scores[i] != scores[j] {
			return scores[i] > scores[j]
		}
		return chunks[i].ID < chunks[j].ID
	})
	if k > len(idxs) {
		k = len(idxs)
	}
	results := make([]domain.SearchResult, 0, k)
	for _, i := range idxs[:k] {
		results = append(results, domain.SearchResult{Chunk: chunks[i], Score: scores[i]})
	}
	return results
}
