package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"webqa/internal/domain"
	"webqa/internal/usecase"
)

var askQuery string

var askCmd = &cobra.Command{
	Use:   "ask",
	Short: "Answer a question from the corpus",
	Long: `Embed the question, assemble the closest passages into a context window
and ask the completion model to answer strictly from it. The model replies
with "` + usecase.UnknownAnswer + `" when the corpus does not cover the question.`,
	RunE: runAsk,
}

func init() {
	rootCmd.AddCommand(askCmd)
	askCmd.Flags().StringVarP(&askQuery, "query", "q", "", "question text (required)")
	askCmd.MarkFlagRequired("query")
}

func runAsk(cmd *cobra.Command, args []string) error {
	st, err := loadCorpus()
	if err != nil {
		return err
	}

	embedder, err := buildEmbedder()
	if err != nil {
		return err
	}
	completion, err := buildLLM()
	if err != nil {
		return err
	}

	answerer, err := usecase.NewAnswerer(embedder, completion, st, cfg.Answer.ContextBudget, cfg.Answer.PassageOverhead, logger)
	if err != nil {
		return err
	}

	answer, err := answerer.Answer(cmd.Context(), askQuery)
	if err != nil {
		var svcErr *domain.ServiceError
		if errors.As(err, &svcErr) {
			logger.Error("external service failed", zap.String("service", svcErr.Service), zap.Error(svcErr.Err))
			return fmt.Errorf("the %s service failed: %w", svcErr.Service, svcErr.Err)
		}
		return err
	}

	fmt.Println(answer)
	return nil
}
