package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"webqa/config"
	"webqa/internal/adapter/analyzer"
	"webqa/internal/adapter/chunker"
	"webqa/internal/adapter/crawler"
	"webqa/internal/adapter/fs"
	"webqa/internal/adapter/memstore"
	"webqa/internal/adapter/store"
	"webqa/internal/domain"
	"webqa/internal/usecase"
)

var indexURL string

var indexCmd = &cobra.Command{
	Use:   "index [path]",
	Short: "Build the corpus from a directory or a website",
	Long: `Crawl a website or load documents from a directory, chunk the text into
token-bounded passages, embed them and snapshot the corpus. The snapshot is
stored in .webqa/corpus.db within the data directory.

Examples:
  webqa index ./docs                      # Ingest a directory
  webqa index --url https://example.com   # Crawl and ingest a site`,
	Args: cobra.MaximumNArgs(1),
	RunE: runIndex,
}

func init() {
	rootCmd.AddCommand(indexCmd)
	indexCmd.Flags().StringVar(&indexURL, "url", "", "start URL to crawl instead of a directory")
}

func runIndex(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	docs, err := collectDocuments(cmd, args)
	if err != nil {
		return err
	}
	if len(docs) == 0 {
		fmt.Println("Nothing to ingest.")
		return nil
	}

	embedder, err := buildEmbedder()
	if err != nil {
		return err
	}

	tokenizer := analyzer.NewTokenizer()
	chk := chunker.NewSentenceChunker(cfg.Ingest.ChunkTokens, tokenizer)
	st := memstore.NewStore()

	ingestor := usecase.NewIngestor(chk, embedder, st, cfg.Embedding.BatchSize, logger)

	var bar *progressbar.ProgressBar
	progress := func(done, total int) {
		if bar == nil {
			bar = progressbar.NewOptions(total,
				progressbar.OptionEnableColorCodes(true),
				progressbar.OptionShowBytes(false),
				progressbar.OptionSetWidth(40),
				progressbar.OptionShowCount(),
				progressbar.OptionSetDescription("[cyan]Embedding[reset]"),
				progressbar.OptionOnCompletion(func() {
					fmt.Println()
				}),
			)
		}
		bar.Set(done)
	}

	start := time.Now()
	result, err := ingestor.Ingest(ctx, docs, progress)
	if err != nil {
		return fmt.Errorf("ingest failed: %w", err)
	}

	if err := config.EnsureDataDir(dataDir); err != nil {
		return fmt.Errorf("failed to create .webqa directory: %w", err)
	}
	dbPath := config.CorpusDBPath(dataDir)
	snap, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open corpus snapshot: %w", err)
	}
	defer snap.Close()

	if err := snap.SaveCorpus(st, cfg.Embedding.Model); err != nil {
		return fmt.Errorf("failed to save corpus: %w", err)
	}

	fmt.Printf("\nIngest complete in %s:\n", time.Since(start).Round(time.Millisecond))
	fmt.Printf("  Documents: %d\n", result.Documents)
	fmt.Printf("  Passages:  %d\n", result.Passages)
	if result.Skipped > 0 {
		fmt.Printf("  Skipped:   %d\n", result.Skipped)
	}

	if len(result.Errors) > 0 {
		fmt.Printf("\nWarnings:\n")
		for _, e := range result.Errors {
			fmt.Printf("  - %s\n", e)
		}
	}

	fmt.Printf("\nCorpus stored at: %s\n", dbPath)
	return nil
}

// collectDocuments crawls the start URL or loads files from the path argument.
func collectDocuments(cmd *cobra.Command, args []string) ([]domain.Document, error) {
	if indexURL != "" {
		c := crawler.New(cfg.Crawl.MaxPages, time.Duration(cfg.Crawl.TimeoutSeconds)*time.Second, cfg.Crawl.UserAgent, logger)
		fmt.Printf("Crawling %s...\n", indexURL)
		docs, err := c.Crawl(cmd.Context(), indexURL)
		if err != nil {
			return nil, fmt.Errorf("crawl failed: %w", err)
		}
		fmt.Printf("Fetched %d pages.\n", len(docs))
		return docs, nil
	}

	path := dataDir
	if len(args) > 0 {
		var err error
		path, err = filepath.Abs(args[0])
		if err != nil {
			return nil, fmt.Errorf("invalid path: %w", err)
		}
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("path does not exist: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("path is not a directory: %s", path)
	}

	fmt.Printf("Scanning %s...\n", path)
	walker := fs.NewWalker(cfg.Ingest.Includes, cfg.Ingest.Excludes)
	files, err := walker.Walk(path)
	if err != nil {
		return nil, fmt.Errorf("failed to walk directory: %w", err)
	}

	loader := fs.NewLoader(logger)
	docs := loader.Load(files)
	logger.Info("documents loaded", zap.Int("files", len(files)), zap.Int("documents", len(docs)))
	return docs, nil
}
