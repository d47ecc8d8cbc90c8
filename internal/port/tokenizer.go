package port

// Tokenizer estimates token counts for budget accounting.
type Tokenizer interface {
	CountTokens(text string) int
}
