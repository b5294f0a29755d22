// Package index owns the persistent, hash-gated vector index for each
// corpus. Building an index calls the external embedding service once per
// chunk and is the most expensive operation in the system, so a finished
// index is persisted keyed by a content hash of the corpus and reused until
// the corpus bytes change.
package index

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sync"

	"hawkai/internal/domain"
	"hawkai/internal/logger"
)

// CorpusIndex is the searchable form of one corpus. ContentHash always
// reflects the exact byte content that produced Chunks; a mismatch
// invalidates the whole index, never part of it.
type CorpusIndex struct {
	CorpusID    string         `json:"corpus_id"`
	ContentHash string         `json:"content_hash"`
	Dimension   int            `json:"dimension"`
	Chunks      []domain.Chunk `json:"chunks"`
}

// ChunkFunc turns raw corpus content into chunks with embeddings unset.
type ChunkFunc func(corpusID, text string) ([]domain.Chunk, error)

// EmbedFunc produces a fixed-dimension vector for one chunk of text.
type EmbedFunc func(ctx context.Context, text string) ([]float64, error)

// ProgressFunc is called after each chunk is embedded during a build.
type ProgressFunc func(corpusID string, done, total int)

// Store persists one index per corpus under a cache directory. Rebuilds of
// the same corpus serialize on a per-corpus lock; reads of a valid cached
// index need no lock and may run alongside unrelated corpora's rebuilds.
type Store struct {
	dir      string
	progress ProgressFunc

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewStore(dir string) *Store {
	return &Store{dir: dir, locks: make(map[string]*sync.Mutex)}
}

// SetProgress installs a callback reporting per-chunk embedding progress.
func (s *Store) SetProgress(fn ProgressFunc) { s.progress = fn }

// GetOrBuild returns the index for corpusID, rebuilding it only when the
// content hash of raw differs from the persisted one. A corrupt cache is
// treated as a miss. If embedding fails for any chunk the build aborts, no
// partial index is persisted, and the prior cache (if any) stays valid.
func (s *Store) GetOrBuild(ctx context.Context, corpusID string, raw []byte, chunk ChunkFunc, embed EmbedFunc) (*CorpusIndex, error) {
	hash := contentHash(raw)

	lock := s.corpusLock(corpusID)
	lock.Lock()
	defer lock.Unlock()

	if idx := s.load(corpusID); idx != nil && idx.ContentHash == hash {
		logger.Debug("index %s: cache hit (%d chunks, hash %s)", corpusID, len(idx.Chunks), hash[:12])
		return idx, nil
	}
	logger.Info("index %s: cache miss, rebuilding", corpusID)

	chunks, err := chunk(corpusID, string(raw))
	if err != nil {
		return nil, &domain.IndexBuildError{CorpusID: corpusID, Err: fmt.Errorf("chunking: %w", err)}
	}

	dimension := 0
	for i := range chunks {
		vec, err := embed(ctx, chunks[i].Text)
		if err != nil {
			return nil, &domain.IndexBuildError{CorpusID: corpusID, Err: fmt.Errorf("embedding chunk %d: %w", chunks[i].ID, err)}
		}
		if dimension == 0 {
			dimension = len(vec)
		} else if len(vec) != dimension {
			return nil, &domain.IndexBuildError{
				CorpusID: corpusID,
				Err:      fmt.Errorf("embedding dimension changed mid-build: chunk %d has %d, want %d", chunks[i].ID, len(vec), dimension),
			}
		}
		chunks[i].Embedding = Normalize(vec)
		if s.progress != nil {
			s.progress(corpusID, i+1, len(chunks))
		}
	}

	idx := &CorpusIndex{CorpusID: corpusID, ContentHash: hash, Dimension: dimension, Chunks: chunks}
	if err := s.persist(idx); err != nil {
		return nil, &domain.IndexBuildError{CorpusID: corpusID, Err: err}
	}
	logger.Info("index %s: built %d chunks (dimension %d)", corpusID, len(chunks), dimension)
	return idx, nil
}

func (s *Store) corpusLock(corpusID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[corpusID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[corpusID] = l
	}
	return l
}

// load returns the persisted index for corpusID, or nil when it is missing
// or corrupt. Corruption is a cache miss, not an error.
func (s *Store) load(corpusID string) *CorpusIndex {
	data, err := os.ReadFile(s.path(corpusID))
	if err != nil {
		return nil
	}
	var idx CorpusIndex
	if err := json.Unmarshal(data, &idx); err != nil {
		logger.Warn("index %s: corrupt cache file, rebuilding: %v", corpusID, err)
		return nil
	}
	if idx.CorpusID != corpusID || idx.ContentHash == "" {
		logger.Warn("index %s: cache metadata mismatch, rebuilding", corpusID)
		return nil
	}
	for _, ch := range idx.Chunks {
		if len(ch.Embedding) != idx.Dimension {
			logger.Warn("index %s: chunk %d dimension mismatch, rebuilding", corpusID, ch.ID)
			return nil
		}
	}
	return &idx
}

// persist writes the index to a temporary file and renames it into place so
// a crash mid-write never leaves a partially written cache behind.
func (s *Store) persist(idx *CorpusIndex) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return err
	}
	data, err := json.Marshal(idx)
	if err != nil {
		return err
	}
	final := s.path(idx.CorpusID)
	tmp := final + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, final)
}

func (s *Store) path(corpusID string) string {
	return filepath.Join(s.dir, corpusID+".json")
}

func contentHash(raw []byte) string {
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:])
}

// Normalize scales v to unit length so cosine similarity reduces to a dot
// product at search time. Zero vectors are returned unchanged.
func Normalize(v []float64) []float64 {
	var sum float64
	for _, x := range v {
		sum += x * x
	}
	if sum == 0 {
		return v
	}
	norm := math.Sqrt(sum)
	out := make([]float64, len(v))
	for i, x := range v {
		out[i] = x / norm
	}
	return out
}
