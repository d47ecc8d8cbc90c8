package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"webqa/config"
	"webqa/internal/adapter/cache"
	"webqa/internal/adapter/embedding"
	"webqa/internal/adapter/llm"
	"webqa/internal/adapter/memstore"
	"webqa/internal/adapter/store"
	"webqa/internal/logging"
	"webqa/internal/port"
)

var (
	cfgFile string
	cfg     *config.Config
	dataDir string
	logger  *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "webqa",
	Short: "Crawl a site or load documents, then answer questions over them",
	Long: `webqa ingests a website or a directory of documents, embeds the text as
token-bounded passages, and answers questions by assembling the nearest
passages into a context window for a completion model.

Example usage:
  webqa index ./docs                      # Ingest a directory of documents
  webqa index --url https://example.com   # Crawl and ingest a site
  webqa search -q "pricing tiers"         # Show the closest passages
  webqa ask -q "What does the API cost?"  # Answer from the corpus`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		_ = godotenv.Load()

		var err error
		if dataDir == "" {
			dataDir, err = os.Getwd()
			if err != nil {
				return fmt.Errorf("failed to get working directory: %w", err)
			}
		}

		if cfgFile != "" {
			cfg, err = config.Load(cfgFile)
		} else {
			cfg, err = config.LoadFromDir(dataDir)
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		logger, err = logging.New(cfg.Logging.Level, cfg.Logging.Format)
		if err != nil {
			return fmt.Errorf("failed to build logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./webqa.yaml)")
	rootCmd.PersistentFlags().StringVarP(&dataDir, "dir", "d", "", "data directory (default is current directory)")
}

// buildEmbedder creates the configured embedder wrapped in the cache.
func buildEmbedder() (port.Embedder, error) {
	var embedder port.Embedder
	var err error

	switch cfg.Embedding.Provider {
	case "openai":
		embedder, err = embedding.NewOpenAIEmbedder(cfg.Embedding.APIKeyEnv, cfg.Embedding.Model, cfg.Embedding.BaseURL)
	case "mock":
		embedder = embedding.NewMockEmbedder(cfg.Embedding.Dimension)
	default:
		return nil, fmt.Errorf("unsupported embedding provider: %s", cfg.Embedding.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create embedder: %w", err)
	}

	embCache := cache.NewEmbeddingCache(cfg.Embedding.CacheSize, time.Duration(cfg.Embedding.CacheTTLSeconds)*time.Second)
	return cache.NewCachedEmbedder(embedder, embCache), nil
}

// buildLLM creates the configured completion client.
func buildLLM() (port.LLM, error) {
	switch cfg.Answer.Provider {
	case "openai":
		return llm.NewOpenAILLM(cfg.Answer.APIKeyEnv, cfg.Answer.Model, cfg.Answer.BaseURL, cfg.Answer.Temperature, cfg.Answer.MaxTokens)
	case "mock":
		return &llm.MockLLM{Response: "mock answer"}, nil
	default:
		return nil, fmt.Errorf("unsupported completion provider: %s", cfg.Answer.Provider)
	}
}

// loadCorpus opens the snapshot and rebuilds the in-memory store.
func loadCorpus() (*memstore.Store, error) {
	dbPath := config.CorpusDBPath(dataDir)
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("no corpus found. Run 'webqa index' first")
	}

	snap, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open corpus: %w", err)
	}
	defer snap.Close()

	st, meta, err := snap.LoadCorpus(cfg.Embedding.Model)
	if err != nil {
		return nil, fmt.Errorf("failed to load corpus: %w", err)
	}

	logger.Debug("corpus loaded",
		zap.Int("passages", meta.Passages),
		zap.String("model", meta.Model),
		zap.Int("dimension", meta.Dimension))
	return st, nil
}
