package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"webqa/internal/domain"
	"webqa/internal/usecase"
)

var (
	contextQuery    string
	contextBudget   int
	contextOverhead int
	contextJSON     bool
)

var contextCmd = &cobra.Command{
	Use:   "context",
	Short: "Assemble the context window for a query",
	Long: `Show exactly what the ask command would pass to the completion model:
the closest passages packed greedily under the token budget, joined by the
passage separator. Passages that would overflow the budget are skipped and
the scan continues with smaller ones.`,
	RunE: runContext,
}

func init() {
	rootCmd.AddCommand(contextCmd)
	contextCmd.Flags().StringVarP(&contextQuery, "query", "q", "", "query text (required)")
	contextCmd.Flags().IntVar(&contextBudget, "budget", 0, "token budget (default from config)")
	contextCmd.Flags().IntVar(&contextOverhead, "overhead", -1, "per-passage token overhead (default from config)")
	contextCmd.Flags().BoolVar(&contextJSON, "json", false, "emit the result as JSON")
	contextCmd.MarkFlagRequired("query")
}

func runContext(cmd *cobra.Command, args []string) error {
	st, err := loadCorpus()
	if err != nil {
		return err
	}

	embedder, err := buildEmbedder()
	if err != nil {
		return err
	}

	vectors, err := embedder.Embed(cmd.Context(), []string{contextQuery})
	if err != nil {
		return fmt.Errorf("failed to embed query: %w", err)
	}
	if len(vectors) != 1 {
		return fmt.Errorf("embedding service returned %d vectors for one query", len(vectors))
	}

	budget := cfg.Answer.ContextBudget
	if contextBudget > 0 {
		budget = contextBudget
	}
	overhead := cfg.Answer.PassageOverhead
	if contextOverhead >= 0 {
		overhead = contextOverhead
	}

	window := usecase.AssembleContext(st, domain.ContextRequest{
		QueryEmbedding: vectors[0],
		Budget:         budget,
		Overhead:       overhead,
	})

	if contextJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(window)
	}

	if window.Passages == 0 {
		fmt.Println("No passages fit the budget.")
		return nil
	}

	fmt.Println(window.Text)
	fmt.Printf("\n--- %d passages, %d/%d tokens ---\n", window.Passages, window.TokensUsed, window.Budget)
	return nil
}
