package port

import "context"

// LLM generates a completion for a prompt.
type LLM interface {
	Generate(ctx context.Context, prompt string) (string, error)
	ModelName() string
}
