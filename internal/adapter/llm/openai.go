package llm

import (
	"context"
	"fmt"
	"os"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAILLM generates completions through an OpenAI-compatible chat API.
type OpenAILLM struct {
	client      *openai.Client
	model       string
	temperature float32
	maxTokens   int
}

// NewOpenAILLM creates a completion client. baseURL may be empty for the
// default endpoint; the API key is read from the named environment variable.
func NewOpenAILLM(apiKeyEnv, model, baseURL string, temperature float32, maxTokens int) (*OpenAILLM, error) {
	apiKey := os.Getenv(apiKeyEnv)
	if apiKey == "" {
		return nil, fmt.Errorf("API key not found in environment variable: %s", apiKeyEnv)
	}

	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}

	return &OpenAILLM{
		client:      openai.NewClientWithConfig(cfg),
		model:       model,
		temperature: temperature,
		maxTokens:   maxTokens,
	}, nil
}

// Generate returns the completion for the prompt.
func (l *OpenAILLM) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := l.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       l.model,
		Temperature: l.temperature,
		MaxTokens:   l.maxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("create chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("completion returned no choices")
	}

	return resp.Choices[0].Message.Content, nil
}

// ModelName returns the configured model.
func (l *OpenAILLM) ModelName() string {
	return l.model
}
