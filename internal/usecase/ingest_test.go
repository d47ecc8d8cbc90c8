package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"webqa/internal/adapter/analyzer"
	"webqa/internal/adapter/chunker"
	"webqa/internal/adapter/embedding"
	"webqa/internal/adapter/memstore"
	"webqa/internal/domain"
)

// flakyEmbedder fails batch calls larger than one text, and fails singles
// containing a poison marker. Exercises the per-passage fallback.
type flakyEmbedder struct {
	inner      *embedding.MockEmbedder
	batchCalls int
}

func (e *flakyEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) > 1 {
		e.batchCalls++
		return nil, errors.New("batch too hot")
	}
	if strings.Contains(texts[0], "poison") {
		return nil, errors.New("poison text")
	}
	return e.inner.Embed(ctx, texts)
}

func (e *flakyEmbedder) Dimension() int    { return e.inner.Dimension() }
func (e *flakyEmbedder) ModelName() string { return "flaky" }

func TestIngestBuildsStore(t *testing.T) {
	tokenizer := analyzer.NewTokenizer()
	chk := chunker.NewSentenceChunker(50, tokenizer)
	st := memstore.NewStore()
	ing := NewIngestor(chk, embedding.NewMockEmbedder(8), st, 10, nil)

	docs := []domain.Document{
		{Source: "a", Text: "First document sentence. Another sentence here."},
		{Source: "b", Text: "Second document text entirely."},
	}

	var lastDone, lastTotal int
	result, err := ing.Ingest(context.Background(), docs, func(done, total int) {
		lastDone, lastTotal = done, total
	})
	if err != nil {
		t.Fatal(err)
	}

	if result.Documents != 2 {
		t.Errorf("expected 2 documents, got %d", result.Documents)
	}
	if result.Passages != st.Len() || st.Len() == 0 {
		t.Errorf("result passages %d, store %d", result.Passages, st.Len())
	}
	if result.Skipped != 0 || len(result.Errors) != 0 {
		t.Errorf("unexpected skips/errors: %+v", result)
	}
	if lastDone != lastTotal || lastTotal != st.Len() {
		t.Errorf("progress did not complete: %d/%d", lastDone, lastTotal)
	}

	// Provenance is stamped on every passage.
	for _, p := range st.All() {
		if p.Source != "a" && p.Source != "b" {
			t.Errorf("passage missing source: %+v", p.Passage)
		}
	}
}

func TestIngestPoisonPassageOnlyLosesItself(t *testing.T) {
	tokenizer := analyzer.NewTokenizer()
	chk := chunker.NewSentenceChunker(10, tokenizer)
	st := memstore.NewStore()
	fe := &flakyEmbedder{inner: embedding.NewMockEmbedder(8)}
	ing := NewIngestor(chk, fe, st, 10, nil)

	docs := []domain.Document{
		{Source: "good", Text: "A fine sentence here. Another fine sentence too."},
		{Source: "bad", Text: "This one contains poison right here."},
	}

	result, err := ing.Ingest(context.Background(), docs, nil)
	if err != nil {
		t.Fatal(err)
	}

	if fe.batchCalls == 0 {
		t.Error("expected the batch path to be attempted")
	}
	if result.Skipped != 1 {
		t.Errorf("expected 1 skipped passage, got %d", result.Skipped)
	}
	if result.Passages != st.Len() {
		t.Errorf("result passages %d, store %d", result.Passages, st.Len())
	}
	if st.Len() == 0 {
		t.Error("expected the healthy passages to survive")
	}
	if len(result.Errors) == 0 {
		t.Error("expected the poison failure to be recorded")
	}

	for _, p := range st.All() {
		if strings.Contains(p.Text, "poison") {
			t.Errorf("poison passage reached the store: %q", p.Text)
		}
	}
}

func TestIngestEmptyDocuments(t *testing.T) {
	tokenizer := analyzer.NewTokenizer()
	chk := chunker.NewSentenceChunker(50, tokenizer)
	st := memstore.NewStore()
	ing := NewIngestor(chk, embedding.NewMockEmbedder(4), st, 10, nil)

	result, err := ing.Ingest(context.Background(), []domain.Document{
		{Source: "empty", Text: "   "},
	}, nil)
	if err != nil {
		t.Fatal(err)
	}

	if result.Documents != 0 || result.Passages != 0 || st.Len() != 0 {
		t.Errorf("expected nothing ingested, got %+v (store %d)", result, st.Len())
	}
}
