package fs

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
	"go.uber.org/zap"

	"webqa/internal/domain"
)

// Loader reads walked files into documents. Unreadable or unsupported files
// are logged and skipped so one bad file never aborts an ingest.
type Loader struct {
	logger *zap.Logger
}

// NewLoader creates a loader.
func NewLoader(logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{logger: logger}
}

// Load reads each file into a document, skipping failures and empty files.
func (l *Loader) Load(files []FileInfo) []domain.Document {
	var docs []domain.Document
	for _, f := range files {
		text, err := l.readFile(f.Path)
		if err != nil {
			l.logger.Warn("skipping file", zap.String("path", f.Path), zap.Error(err))
			continue
		}
		if strings.TrimSpace(text) == "" {
			l.logger.Debug("file has no text", zap.String("path", f.Path))
			continue
		}
		docs = append(docs, domain.Document{
			Source: f.Path,
			Text:   text,
		})
	}
	return docs
}

func (l *Loader) readFile(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return readPDF(path)
	case ".txt", ".md", ".markdown":
		data, err := os.ReadFile(path)
		if err != nil {
			return "", err
		}
		return string(data), nil
	default:
		return "", fmt.Errorf("unsupported file type: %s", filepath.Ext(path))
	}
}

func readPDF(path string) (string, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	content, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("read pdf text: %w", err)
	}

	var sb strings.Builder
	if _, err := io.Copy(&sb, content); err != nil {
		return "", fmt.Errorf("read pdf buffer: %w", err)
	}
	return sb.String(), nil
}
