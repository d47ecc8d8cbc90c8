package llm

import "context"

// MockLLM returns a fixed response and records the prompts it saw.
type MockLLM struct {
	Response string
	Err      error
	Prompts  []string
}

func (l *MockLLM) Generate(ctx context.Context, prompt string) (string, error) {
	l.Prompts = append(l.Prompts, prompt)
	if l.Err != nil {
		return "", l.Err
	}
	return l.Response, nil
}

func (l *MockLLM) ModelName() string {
	return "mock"
}
