package retriever

import (
	"runtime"
	"sync"

	"hawkai/internal/domain"
)

// Parallel scores candidates across a fixed pool of goroutines. Scoring is
// sharded; selection runs over the complete score slice, so results are
// byte-for-byte identical to the exact backend.
type Parallel struct {
	workers int
}

func NewParallel(workers int) Parallel {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return Parallel{workers: workers}
}

func (p Parallel) Name() string { return "parallel" }

func (p Parallel) Search(chunks []domain.Chunk, query []float64, k int) []domain.SearchResult {
	if len(chunks) == 0 || k <= 0 {
		return nil
	}
	scores := make([]float64, len(chunks))
	shard := (len(chunks) + p.workers - 1) / p.workers

	var wg sync.WaitGroup
	for start := 0; start < len(chunks); start += shard {
		end := start + shard
		if end > len(chunks) {
			end = len(chunks)
		}
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			for i := lo; i < hi; i++ {
				scores[i] = dot(chunks[i].Embedding, query)
			}
		}(start, end)
	}
	wg.Wait()

	return selectTopK(chunks, scores, k)
}
