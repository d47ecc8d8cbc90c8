package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"webqa/internal/adapter/embedding"
	"webqa/internal/adapter/llm"
	"webqa/internal/adapter/memstore"
	"webqa/internal/domain"
)

// failingEmbedder always fails.
type failingEmbedder struct{}

func (e *failingEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	return nil, errors.New("quota exhausted")
}
func (e *failingEmbedder) Dimension() int    { return 4 }
func (e *failingEmbedder) ModelName() string { return "failing" }

func buildAnswererStore(t *testing.T, embedder *embedding.MockEmbedder, texts ...string) *memstore.Store {
	t.Helper()
	st := memstore.NewStore()
	vectors, err := embedder.Embed(context.Background(), texts)
	if err != nil {
		t.Fatal(err)
	}
	for i, text := range texts {
		p := domain.Passage{Source: "doc", Text: text, Tokens: 5}
		if err := st.Insert(p, vectors[i]); err != nil {
			t.Fatal(err)
		}
	}
	return st
}

func TestAnswerPromptContainsContextAndQuestion(t *testing.T) {
	embedder := embedding.NewMockEmbedder(16)
	st := buildAnswererStore(t, embedder, "The sky is blue.", "Grass is green.")
	mock := &llm.MockLLM{Response: "Blue."}

	a, err := NewAnswerer(embedder, mock, st, 100, 4, nil)
	if err != nil {
		t.Fatal(err)
	}

	answer, err := a.Answer(context.Background(), "What color is the sky?")
	if err != nil {
		t.Fatal(err)
	}
	if answer != "Blue." {
		t.Errorf("expected mock answer, got %q", answer)
	}

	if len(mock.Prompts) != 1 {
		t.Fatalf("expected 1 prompt, got %d", len(mock.Prompts))
	}
	prompt := mock.Prompts[0]
	if !strings.Contains(prompt, "The sky is blue.") {
		t.Errorf("prompt missing context passage:\n%s", prompt)
	}
	if !strings.Contains(prompt, "What color is the sky?") {
		t.Errorf("prompt missing question:\n%s", prompt)
	}
	if !strings.Contains(prompt, UnknownAnswer) {
		t.Errorf("prompt missing unknown sentinel:\n%s", prompt)
	}
}

func TestAnswerEmbeddingFailure(t *testing.T) {
	st := memstore.NewStore()
	mock := &llm.MockLLM{Response: "should not be called"}

	a, err := NewAnswerer(&failingEmbedder{}, mock, st, 100, 4, nil)
	if err != nil {
		t.Fatal(err)
	}

	answer, err := a.Answer(context.Background(), "anything")
	if answer != "" {
		t.Errorf("expected empty answer, got %q", answer)
	}

	var svcErr *domain.ServiceError
	if !errors.As(err, &svcErr) {
		t.Fatalf("expected ServiceError, got %v", err)
	}
	if svcErr.Service != "embedding" {
		t.Errorf("expected embedding service error, got %s", svcErr.Service)
	}
	if len(mock.Prompts) != 0 {
		t.Error("completion service should not be called after embedding failure")
	}
}

func TestAnswerCompletionFailure(t *testing.T) {
	embedder := embedding.NewMockEmbedder(16)
	st := buildAnswererStore(t, embedder, "Some passage.")
	mock := &llm.MockLLM{Err: errors.New("model overloaded")}

	a, err := NewAnswerer(embedder, mock, st, 100, 4, nil)
	if err != nil {
		t.Fatal(err)
	}

	answer, err := a.Answer(context.Background(), "question")
	if answer != "" {
		t.Errorf("expected empty answer, got %q", answer)
	}

	var svcErr *domain.ServiceError
	if !errors.As(err, &svcErr) {
		t.Fatalf("expected ServiceError, got %v", err)
	}
	if svcErr.Service != "completion" {
		t.Errorf("expected completion service error, got %s", svcErr.Service)
	}
}

func TestAnswerEmptyStore(t *testing.T) {
	embedder := embedding.NewMockEmbedder(16)
	st := memstore.NewStore()
	mock := &llm.MockLLM{Response: UnknownAnswer}

	a, err := NewAnswerer(embedder, mock, st, 100, 4, nil)
	if err != nil {
		t.Fatal(err)
	}

	// An empty store is not an error; the model still gets the question
	// with an empty context and is expected to reply with the sentinel.
	answer, err := a.Answer(context.Background(), "question")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if answer != UnknownAnswer {
		t.Errorf("expected %q, got %q", UnknownAnswer, answer)
	}
}
