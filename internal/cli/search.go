package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"webqa/internal/usecase"
)

var (
	searchQuery string
	searchTopK  int
	searchJSON  bool
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Show the passages closest to a query",
	Long: `Embed the query and rank every stored passage by cosine distance,
closest first. Useful for inspecting what the answer command would see.`,
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)
	searchCmd.Flags().StringVarP(&searchQuery, "query", "q", "", "query text (required)")
	searchCmd.Flags().IntVarP(&searchTopK, "top-k", "k", 10, "number of passages to show")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "emit results as JSON")
	searchCmd.MarkFlagRequired("query")
}

type searchResult struct {
	Source   string  `json:"source"`
	Tokens   int     `json:"tokens"`
	Distance float64 `json:"distance"`
	Text     string  `json:"text"`
}

func runSearch(cmd *cobra.Command, args []string) error {
	st, err := loadCorpus()
	if err != nil {
		return err
	}

	embedder, err := buildEmbedder()
	if err != nil {
		return err
	}

	vectors, err := embedder.Embed(cmd.Context(), []string{searchQuery})
	if err != nil {
		return fmt.Errorf("failed to embed query: %w", err)
	}
	if len(vectors) != 1 {
		return fmt.Errorf("embedding service returned %d vectors for one query", len(vectors))
	}

	ranked := usecase.RankPassages(st, vectors[0])
	if searchTopK > 0 && len(ranked) > searchTopK {
		ranked = ranked[:searchTopK]
	}

	if searchJSON {
		results := make([]searchResult, 0, len(ranked))
		for _, sp := range ranked {
			results = append(results, searchResult{
				Source:   sp.Passage.Source,
				Tokens:   sp.Passage.Tokens,
				Distance: sp.Distance,
				Text:     sp.Passage.Text,
			})
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	if len(ranked) == 0 {
		fmt.Println("No passages in the corpus.")
		return nil
	}

	fmt.Printf("Top %d passages for %q:\n\n", len(ranked), searchQuery)
	for i, sp := range ranked {
		fmt.Printf("%d. %s (distance %.4f, %d tokens)\n", i+1, sp.Passage.Source, sp.Distance, sp.Passage.Tokens)
		fmt.Printf("   %s\n\n", truncate(sp.Passage.Text, 500))
	}
	return nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
