package chunker

import (
	"strings"

	"webqa/internal/domain"
	"webqa/internal/port"
)

// sentenceDelim is the boundary the chunker splits on: period-plus-space.
const sentenceDelim = ". "

// SentenceChunker accumulates whole sentences into passages that stay under
// a token budget. Sentences are never split; a single sentence whose own
// count exceeds the budget is dropped entirely.
type SentenceChunker struct {
	maxTokens int
	tokenizer port.Tokenizer
}

// NewSentenceChunker creates a chunker with the given per-passage token budget.
func NewSentenceChunker(maxTokens int, tokenizer port.Tokenizer) *SentenceChunker {
	return &SentenceChunker{
		maxTokens: maxTokens,
		tokenizer: tokenizer,
	}
}

// Chunk splits text into passages. Empty or degenerate input yields an
// empty result, not an error. A passage's token count is the sum of its
// sentences' counts; the tokenizer is called once per sentence.
func (c *SentenceChunker) Chunk(text string) ([]domain.Passage, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}

	// SplitAfter keeps the delimiter attached, so concatenating the emitted
	// passages reproduces the input minus dropped oversized sentences.
	sentences := strings.SplitAfter(text, sentenceDelim)

	var passages []domain.Passage
	var current strings.Builder
	currentTokens := 0

	flush := func() {
		chunkText := strings.TrimSpace(current.String())
		current.Reset()
		if chunkText == "" {
			currentTokens = 0
			return
		}
		passages = append(passages, domain.Passage{
			Text:   chunkText,
			Tokens: currentTokens,
		})
		currentTokens = 0
	}

	for _, sentence := range sentences {
		if strings.TrimSpace(sentence) == "" {
			continue
		}

		tokens := c.tokenizer.CountTokens(sentence)
		if tokens > c.maxTokens {
			// An oversized sentence cannot fit any passage. Drop it whole
			// rather than split mid-sentence.
			continue
		}

		if currentTokens > 0 && currentTokens+tokens > c.maxTokens {
			flush()
		}

		current.WriteString(sentence)
		currentTokens += tokens
	}
	flush()

	return passages, nil
}
