package emails

import (
	"context"
	"fmt"
	"strings"

	"hawkai/internal/domain"
	"hawkai/internal/index"
	"hawkai/internal/retriever"
)

// DefaultTopK is how many emails a search returns at most.
const DefaultTopK = 10

// ChunkFunc adapts the dump parser to the index store. Each email becomes
// exactly one chunk carrying its sender, recipient, subject and date as
// metadata; the embeddable text is truncated to maxLen runes to stay inside
// the embedding model's context.
func ChunkFunc(maxLen int) index.ChunkFunc {
	return func(corpusID, text string) ([]domain.Chunk, error) {
		parsed := ParseDump(text)
		chunks := make([]domain.Chunk, 0, len(parsed))
		for i, e := range parsed {
			body := fmt.Sprintf("De: %s Para: %s Assunto: %s %s", e.From, e.To, e.Subject, e.Body)
			if r := []rune(body); maxLen > 0 && len(r) > maxLen {
				body = string(r[:maxLen])
			}
			chunks = append(chunks, domain.Chunk{
				ID:       i,
				SourceID: corpusID,
				Text:     body,
				Offset:   e.Offset,
				Meta: domain.ChunkMeta{
					Sender:    e.From,
					Recipient: e.To,
					Subject:   e.Subject,
					Date:      e.Date,
				},
			})
		}
		return chunks, nil
	}
}

// Filter narrows email chunks to the given person and period before any
// ranking happens. Person matches sender, recipient or message text,
// case-insensitive substring. A chunk without a parseable date never matches
// a period filter.
func Filter(chunks []domain.Chunk, person string, period *domain.Period) []domain.Chunk {
	if person == "" && period == nil {
		return chunks
	}
	personLower := strings.ToLower(person)
	var out []domain.Chunk
	for _, ch := range chunks {
		if person != "" && !mentionsPerson(ch, personLower) {
			continue
		}
		if period != nil && (ch.Meta.Date.IsZero() || !period.Contains(ch.Meta.Date)) {
			continue
		}
		out = append(out, ch)
	}
	return out
}

func mentionsPerson(ch domain.Chunk, personLower string) bool {
	return strings.Contains(strings.ToLower(ch.Meta.Sender), personLower) ||
		strings.Contains(strings.ToLower(ch.Meta.Recipient), personLower) ||
		strings.Contains(strings.ToLower(ch.Text), personLower)
}

// Subsystem answers email questions over a built index.
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

// Search filters by the query's person and period, then ranks the survivors
// against the question. An empty filter result returns empty immediately:
// the embedding service is not called and no fallback to the full corpus
// happens.
func (s *Subsystem) Search(ctx context.Context, q domain.Query) ([]domain.SearchResult, error) {
	candidates := Filter(s.chunks, q.Person, q.Period)
	if len(candidates) == 0 {
		return nil, nil
	}
	vec, err := s.embedder.Embed(ctx, q.RawText)
	if err != nil {
		return nil, err
	}
	return s.backend.Search(candidates, index.Normalize(vec), s.topK), nil
}
