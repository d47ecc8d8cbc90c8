package usecase

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"strings"
	"text/template"

	"go.uber.org/zap"

	"webqa/internal/adapter/memstore"
	"webqa/internal/domain"
	"webqa/internal/port"
)

//go:embed templates/*.txt
var promptTemplates embed.FS

// UnknownAnswer is the sentinel the model is instructed to reply with when
// the context does not contain the answer.
const UnknownAnswer = "I don't know"

// Answerer builds a context window of the passages nearest to a question
// and asks the completion model to answer strictly from it.
type Answerer struct {
	embedder port.Embedder
	llm      port.LLM
	store    *memstore.Store
	budget   int
	overhead int
	logger   *zap.Logger
	tmpl     *template.Template
}

// NewAnswerer creates an answerer over the given store.
func NewAnswerer(embedder port.Embedder, llm port.LLM, store *memstore.Store, budget, overhead int, logger *zap.Logger) (*Answerer, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	content, err := promptTemplates.ReadFile("templates/answer_prompt.txt")
	if err != nil {
		return nil, fmt.Errorf("load prompt template: %w", err)
	}
	tmpl, err := template.New("answer").Parse(string(content))
	if err != nil {
		return nil, fmt.Errorf("parse prompt template: %w", err)
	}

	return &Answerer{
		embedder: embedder,
		llm:      llm,
		store:    store,
		budget:   budget,
		overhead: overhead,
		logger:   logger,
		tmpl:     tmpl,
	}, nil
}

type promptData struct {
	Question string
	Context  string
	Unknown  string
}

// Answer embeds the question, assembles the nearest-passage context and
// delegates to the completion model. External-service failures come back as
// an empty answer plus a *domain.ServiceError, never a crash.
func (a *Answerer) Answer(ctx context.Context, question string) (string, error) {
	vectors, err := a.embedder.Embed(ctx, []string{question})
	if err != nil {
		return "", &domain.ServiceError{Service: "embedding", Err: err}
	}
	if len(vectors) != 1 {
		return "", &domain.ServiceError{Service: "embedding", Err: errors.New("no embedding returned")}
	}

	window := AssembleContext(a.store, domain.ContextRequest{
		QueryEmbedding: vectors[0],
		Budget:         a.budget,
		Overhead:       a.overhead,
	})
	if window.Text == "" {
		a.logger.Debug("empty context window", zap.String("question", question))
	}
	a.logger.Debug("context assembled",
		zap.Int("passages", window.Passages),
		zap.Int("tokens_used", window.TokensUsed),
		zap.Int("budget", window.Budget))

	var prompt bytes.Buffer
	err = a.tmpl.Execute(&prompt, promptData{
		Question: question,
		Context:  window.Text,
		Unknown:  UnknownAnswer,
	})
	if err != nil {
		return "", fmt.Errorf("render prompt: %w", err)
	}

	answer, err := a.llm.Generate(ctx, prompt.String())
	if err != nil {
		return "", &domain.ServiceError{Service: "completion", Err: err}
	}

	return strings.TrimSpace(answer), nil
}
