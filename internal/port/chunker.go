package port

import "webqa/internal/domain"

// Chunker splits document text into token-bounded passages.
type Chunker interface {
	Chunk(text string) ([]domain.Passage, error)
}
