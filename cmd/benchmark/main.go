package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"webqa/internal/adapter/embedding"
	"webqa/internal/adapter/memstore"
	"webqa/internal/domain"
	"webqa/internal/usecase"
)

func main() {
	passages := flag.Int("n", 10000, "Number of synthetic passages")
	dimension := flag.Int("dim", 256, "Embedding dimension")
	budget := flag.Int("budget", 1800, "Context token budget")
	overhead := flag.Int("overhead", 4, "Per-passage token overhead")
	queries := flag.Int("queries", 100, "Number of queries to time")
	flag.Parse()

	fmt.Println("CONTEXT ASSEMBLY BENCHMARK")
	fmt.Println(strings.Repeat("=", 70))
	fmt.Printf("Passages:  %d\n", *passages)
	fmt.Printf("Dimension: %d\n", *dimension)
	fmt.Printf("Budget:    %d tokens (+%d per passage)\n", *budget, *overhead)
	fmt.Println()

	embedder := embedding.NewMockEmbedder(*dimension)
	st := memstore.NewStore()

	buildStart := time.Now()
	for i := 0; i < *passages; i++ {
		text := fmt.Sprintf("Synthetic passage number %d covers topic %d in moderate detail.", i, i%97)
		vectors, err := embedder.Embed(context.Background(), []string{text})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Embedding error: %v\n", err)
			os.Exit(1)
		}
		p := domain.Passage{Source: fmt.Sprintf("doc-%d", i%50), Text: text, Tokens: 10 + i%90}
		if err := st.Insert(p, vectors[0]); err != nil {
			fmt.Fprintf(os.Stderr, "Insert error: %v\n", err)
			os.Exit(1)
		}
	}
	fmt.Printf("Store built in %s\n\n", time.Since(buildStart).Round(time.Millisecond))

	queryVec, err := embedder.Embed(context.Background(), []string{"benchmark query about topic 42"})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Embedding error: %v\n", err)
		os.Exit(1)
	}

	rankStart := time.Now()
	var ranked []domain.ScoredPassage
	for i := 0; i < *queries; i++ {
		ranked = usecase.RankPassages(st, queryVec[0])
	}
	rankElapsed := time.Since(rankStart)

	assembleStart := time.Now()
	var window domain.ContextResult
	for i := 0; i < *queries; i++ {
		window = usecase.AssembleContext(st, domain.ContextRequest{
			QueryEmbedding: queryVec[0],
			Budget:         *budget,
			Overhead:       *overhead,
		})
	}
	assembleElapsed := time.Since(assembleStart)

	fmt.Println(strings.Repeat("-", 70))
	fmt.Printf("Ranking:   %s/query (%d passages scored)\n", perQuery(rankElapsed, *queries), len(ranked))
	fmt.Printf("Assembly:  %s/query\n", perQuery(assembleElapsed, *queries))
	fmt.Println()
	fmt.Printf("Last window: %d passages, %d/%d tokens\n", window.Passages, window.TokensUsed, window.Budget)
	if len(ranked) > 0 {
		fmt.Printf("Closest:     %.4f  Farthest: %.4f\n", ranked[0].Distance, ranked[len(ranked)-1].Distance)
	}
}

func perQuery(d time.Duration, n int) time.Duration {
	if n == 0 {
		return 0
	}
	return (d / time.Duration(n)).Round(time.Microsecond)
}
