package usecase

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"webqa/internal/adapter/memstore"
	"webqa/internal/domain"
	"webqa/internal/port"
)

// Ingestor chunks documents and fills an embedding store. One failing
// passage loses only itself: a failed embedding batch degrades to
// per-passage calls, and rejected inserts are counted and skipped.
type Ingestor struct {
	chunker   port.Chunker
	embedder  port.Embedder
	store     *memstore.Store
	batchSize int
	logger    *zap.Logger
}

// NewIngestor creates an ingestor.
func NewIngestor(chunker port.Chunker, embedder port.Embedder, store *memstore.Store, batchSize int, logger *zap.Logger) *Ingestor {
	if batchSize <= 0 {
		batchSize = 100
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Ingestor{
		chunker:   chunker,
		embedder:  embedder,
		store:     store,
		batchSize: batchSize,
		logger:    logger,
	}
}

// IngestResult summarizes one corpus build.
type IngestResult struct {
	Documents int
	Passages  int
	Skipped   int
	Errors    []string
}

// ProgressFunc reports embedding progress as passages are processed.
type ProgressFunc func(done, total int)

// Ingest chunks every document, embeds the passages in batches and inserts
// them into the store. progress may be nil.
func (u *Ingestor) Ingest(ctx context.Context, docs []domain.Document, progress ProgressFunc) (*IngestResult, error) {
	result := &IngestResult{}

	var passages []domain.Passage
	for _, doc := range docs {
		chunks, err := u.chunker.Chunk(doc.Text)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("chunk %s: %v", doc.Source, err))
			continue
		}
		if len(chunks) == 0 {
			u.logger.Debug("document produced no passages", zap.String("source", doc.Source))
			continue
		}
		for i := range chunks {
			chunks[i].Source = doc.Source
		}
		passages = append(passages, chunks...)
		result.Documents++
	}

	done := 0
	for i := 0; i < len(passages); i += u.batchSize {
		end := i + u.batchSize
		if end > len(passages) {
			end = len(passages)
		}
		batch := passages[i:end]

		texts := make([]string, len(batch))
		for j, p := range batch {
			texts[j] = p.Text
		}

		vectors, err := u.embedder.Embed(ctx, texts)
		if err != nil || len(vectors) != len(batch) {
			u.logger.Warn("embedding batch failed, retrying per passage",
				zap.Int("batch", len(batch)), zap.Error(err))
			vectors = u.embedPerPassage(ctx, batch, result)
		}

		for j, p := range batch {
			done++
			if vectors[j] == nil {
				result.Skipped++
			} else if err := u.store.Insert(p, vectors[j]); err != nil {
				u.logger.Warn("passage rejected", zap.String("source", p.Source), zap.Error(err))
				result.Skipped++
				result.Errors = append(result.Errors, fmt.Sprintf("insert %s: %v", p.Source, err))
			} else {
				result.Passages++
			}
			if progress != nil {
				progress(done, len(passages))
			}
		}
	}

	return result, nil
}

// embedPerPassage embeds a batch one passage at a time so a single poison
// passage only loses itself. Failed slots stay nil.
func (u *Ingestor) embedPerPassage(ctx context.Context, batch []domain.Passage, result *IngestResult) [][]float32 {
	vectors := make([][]float32, len(batch))
	for i, p := range batch {
		vs, err := u.embedder.Embed(ctx, []string{p.Text})
		if err != nil {
			svcErr := &domain.ServiceError{Service: "embedding", Err: err}
			result.Errors = append(result.Errors, fmt.Sprintf("embed %s: %v", p.Source, svcErr))
			continue
		}
		if len(vs) != 1 {
			result.Errors = append(result.Errors, fmt.Sprintf("embed %s: expected 1 vector, got %d", p.Source, len(vs)))
			continue
		}
		vectors[i] = vs[0]
	}
	return vectors
}
