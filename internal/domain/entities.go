package domain

// Document is one unit of source material: a crawled page or a loaded file.
type Document struct {
	Source string
	Text   string
}

// Passage is a bounded-size contiguous unit of document text produced by
// chunking. Tokens is the budgeting estimate for the text, not a word count.
type Passage struct {
	Source string
	Text   string
	Tokens int
}

// EmbeddedPassage is a passage with its embedding vector. All embedded
// passages in one store share the same dimensionality.
type EmbeddedPassage struct {
	Passage
	Embedding []float32
}

// ScoredPassage is a passage with its cosine distance to a query embedding.
// Lower distance means more similar.
type ScoredPassage struct {
	Passage  Passage
	Distance float64
}

// ContextRequest describes one context-assembly call. Overhead is charged
// per included passage to account for separators and framing.
type ContextRequest struct {
	QueryEmbedding []float32
	Budget         int
	Overhead       int
}

// ContextResult is an assembled context window. TokensUsed is the accounted
// total (token counts plus overhead) and never exceeds Budget.
type ContextResult struct {
	Text       string `json:"text"`
	Passages   int    `json:"passages"`
	TokensUsed int    `json:"tokens_used"`
	Budget     int    `json:"budget"`
}
