package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the webqa tool.
type Config struct {
	Crawl     CrawlConfig     `yaml:"crawl"`
	Ingest    IngestConfig    `yaml:"ingest"`
	Embedding EmbeddingConfig `yaml:"embedding"`
	Answer    AnswerConfig    `yaml:"answer"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// CrawlConfig holds site crawling configuration.
type CrawlConfig struct {
	MaxPages       int    `yaml:"max_pages"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	UserAgent      string `yaml:"user_agent"`
}

// IngestConfig holds document loading and chunking configuration.
type IngestConfig struct {
	Includes    []string `yaml:"includes"`
	Excludes    []string `yaml:"excludes"`
	ChunkTokens int      `yaml:"chunk_tokens"`
}

// EmbeddingConfig holds embedding service configuration.
type EmbeddingConfig struct {
	Provider        string `yaml:"provider"`    // "openai" or "mock"
	Model           string `yaml:"model"`       // e.g., "text-embedding-3-small"
	BaseURL         string `yaml:"base_url"`    // empty for the default endpoint
	APIKeyEnv       string `yaml:"api_key_env"` // environment variable for the API key
	Dimension       int    `yaml:"dimension"`
	BatchSize       int    `yaml:"batch_size"`
	CacheSize       int    `yaml:"cache_size"`
	CacheTTLSeconds int    `yaml:"cache_ttl_seconds"`
}

// AnswerConfig holds completion service and context window configuration.
type AnswerConfig struct {
	Provider        string  `yaml:"provider"` // "openai" or "mock"
	Model           string  `yaml:"model"`
	BaseURL         string  `yaml:"base_url"`
	APIKeyEnv       string  `yaml:"api_key_env"`
	ContextBudget   int     `yaml:"context_budget"`
	PassageOverhead int     `yaml:"passage_overhead"`
	Temperature     float32 `yaml:"temperature"`
	MaxTokens       int     `yaml:"max_tokens"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // "console" or "json"
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Crawl: CrawlConfig{
			MaxPages:       50,
			TimeoutSeconds: 20,
			UserAgent:      "webqa/0.1",
		},
		Ingest: IngestConfig{
			Includes:    []string{"**/*.txt", "**/*.md", "**/*.markdown", "**/*.pdf"},
			Excludes:    []string{"**/node_modules/**", "**/.git/**", "**/.webqa/**"},
			ChunkTokens: 500,
		},
		Embedding: EmbeddingConfig{
			Provider:        "openai",
			Model:           "text-embedding-3-small",
			APIKeyEnv:       "OPENAI_API_KEY",
			Dimension:       1536,
			BatchSize:       100,
			CacheSize:       1024,
			CacheTTLSeconds: 3600,
		},
		Answer: AnswerConfig{
			Provider:        "openai",
			Model:           "gpt-4o-mini",
			APIKeyEnv:       "OPENAI_API_KEY",
			ContextBudget:   1800,
			PassageOverhead: 4,
			Temperature:     0,
			MaxTokens:       512,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load loads configuration from a YAML file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil // Return defaults if no config file
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadFromDir loads configuration from a directory (looks for webqa.yaml).
func LoadFromDir(dir string) (*Config, error) {
	path := filepath.Join(dir, "webqa.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	path = filepath.Join(dir, ".webqa", "config.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	return DefaultConfig(), nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// CorpusDBPath returns the path to the corpus snapshot database.
func CorpusDBPath(dir string) string {
	return filepath.Join(dir, ".webqa", "corpus.db")
}

// EnsureDataDir ensures the .webqa directory exists.
func EnsureDataDir(dir string) error {
	return os.MkdirAll(filepath.Join(dir, ".webqa"), 0755)
}
