package usecase

import (
	"math"
	"sort"
	"strings"

	"webqa/internal/adapter/memstore"
	"webqa/internal/domain"
)

// ContextSeparator joins the selected passage texts in an assembled context.
const ContextSeparator = "\n\n###\n\n"

// RankPassages scores every stored passage by cosine distance to the query
// embedding and returns them in ascending order. The sort is stable, so
// passages at equal distance keep their insertion order.
func RankPassages(store *memstore.Store, queryEmbedding []float32) []domain.ScoredPassage {
	all := store.All()

	scored := make([]domain.ScoredPassage, 0, len(all))
	for _, p := range all {
		scored = append(scored, domain.ScoredPassage{
			Passage:  p.Passage,
			Distance: cosineDistance(queryEmbedding, p.Embedding),
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Distance < scored[j].Distance
	})
	return scored
}

// AssembleContext greedily packs the closest passages into a context window.
// Each included passage costs its token count plus the per-passage overhead.
// A passage that would push the running total over the budget is skipped and
// the scan continues, so a smaller passage further down the ranking can
// still fit. An empty store or non-positive budget yields an empty result.
func AssembleContext(store *memstore.Store, req domain.ContextRequest) domain.ContextResult {
	result := domain.ContextResult{Budget: req.Budget}
	if store.Len() == 0 || req.Budget <= 0 {
		return result
	}

	ranked := RankPassages(store, req.QueryEmbedding)

	var texts []string
	used := 0
	for _, sp := range ranked {
		cost := sp.Passage.Tokens + req.Overhead
		if used+cost > req.Budget {
			continue
		}
		texts = append(texts, sp.Passage.Text)
		used += cost
	}

	result.Text = strings.Join(texts, ContextSeparator)
	result.Passages = len(texts)
	result.TokensUsed = used
	return result
}

// cosineDistance is 1 - cosine similarity; lower means more similar.
// Mismatched lengths and zero vectors score 1, the least similar, so a
// degenerate embedding never errors a query.
func cosineDistance(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 1
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 1
	}

	return 1 - dot/(math.Sqrt(normA)*math.Sqrt(normB))
}
