package memstore

import (
	"fmt"
	"sync"

	"webqa/internal/domain"
)

// Store is an ordered in-memory collection of embedded passages. It is
// populated once at ingestion time and read-only afterwards, so concurrent
// queries can share it without coordination. All embeddings in one store
// have the same dimensionality; the first insert fixes it.
type Store struct {
	mu        sync.RWMutex
	passages  []domain.EmbeddedPassage
	dimension int
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{}
}

// Insert appends a passage with its embedding. An embedding whose length
// differs from the store's dimension is rejected and the store is left
// unchanged.
func (s *Store) Insert(p domain.Passage, embedding []float32) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(embedding) == 0 {
		return fmt.Errorf("insert passage from %q: empty embedding: %w", p.Source, domain.ErrDimensionMismatch)
	}
	if s.dimension == 0 {
		s.dimension = len(embedding)
	} else if len(embedding) != s.dimension {
		return fmt.Errorf("insert passage from %q: dimension %d, store has %d: %w",
			p.Source, len(embedding), s.dimension, domain.ErrDimensionMismatch)
	}

	s.passages = append(s.passages, domain.EmbeddedPassage{
		Passage:   p,
		Embedding: embedding,
	})
	return nil
}

// All returns every embedded passage in insertion order.
func (s *Store) All() []domain.EmbeddedPassage {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.EmbeddedPassage, len(s.passages))
	copy(out, s.passages)
	return out
}

// Len returns the number of stored passages.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.passages)
}

// Dimension returns the embedding dimensionality, or 0 for an empty store.
func (s *Store) Dimension() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dimension
}
