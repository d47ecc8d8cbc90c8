package crawler

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/net/html"

	"webqa/internal/domain"
)

// maxFetchSize caps how much of a page body is read.
const maxFetchSize = 5 << 20

// Crawler walks a site breadth-first from a start URL, staying on the same
// host, and extracts the visible text of each page. One bad page never
// aborts a crawl.
type Crawler struct {
	client    *http.Client
	maxPages  int
	userAgent string
	logger    *zap.Logger
}

// New creates a crawler fetching at most maxPages pages.
func New(maxPages int, timeout time.Duration, userAgent string, logger *zap.Logger) *Crawler {
	if maxPages <= 0 {
		maxPages = 50
	}
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Crawler{
		client:    &http.Client{Timeout: timeout},
		maxPages:  maxPages,
		userAgent: userAgent,
		logger:    logger,
	}
}

// Crawl fetches pages starting from startURL and returns one document per
// page with visible text. Pages that fail to fetch or parse are logged and
// skipped.
func (c *Crawler) Crawl(ctx context.Context, startURL string) ([]domain.Document, error) {
	start, err := url.Parse(startURL)
	if err != nil || (start.Scheme != "http" && start.Scheme != "https") {
		return nil, fmt.Errorf("invalid start url: %s", startURL)
	}

	var docs []domain.Document
	queue := []*url.URL{start}
	seen := map[string]bool{normalize(start): true}

	for len(queue) > 0 && len(docs) < c.maxPages {
		if err := ctx.Err(); err != nil {
			return docs, err
		}

		page := queue[0]
		queue = queue[1:]

		root, err := c.fetch(ctx, page)
		if err != nil {
			c.logger.Warn("skipping page", zap.String("url", page.String()), zap.Error(err))
			continue
		}

		if text := extractText(root); strings.TrimSpace(text) != "" {
			docs = append(docs, domain.Document{
				Source: page.String(),
				Text:   text,
			})
		}

		for _, link := range extractLinks(root) {
			resolved, err := page.Parse(link)
			if err != nil {
				continue
			}
			resolved.Fragment = ""
			if resolved.Host != start.Host || (resolved.Scheme != "http" && resolved.Scheme != "https") {
				continue
			}
			key := normalize(resolved)
			if seen[key] {
				continue
			}
			seen[key] = true
			queue = append(queue, resolved)
		}
	}

	c.logger.Info("crawl finished",
		zap.String("start", start.String()),
		zap.Int("pages", len(docs)),
		zap.Int("discovered", len(seen)))
	return docs, nil
}

func (c *Crawler) fetch(ctx context.Context, u *url.URL) (*html.Node, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("status %d %s", resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	return html.Parse(io.LimitReader(resp.Body, maxFetchSize))
}

// extractText collects text nodes, skipping script, style and noscript
// subtrees, and joins them with single spaces.
func extractText(doc *html.Node) string {
	var parts []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript":
				return
			}
		}
		if n.Type == html.TextNode {
			if t := strings.TrimSpace(n.Data); t != "" {
				parts = append(parts, t)
			}
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(doc)
	return strings.Join(parts, " ")
}

// extractLinks collects href values from anchor elements.
func extractLinks(doc *html.Node) []string {
	var links []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "a" {
			for _, attr := range n.Attr {
				if attr.Key == "href" && attr.Val != "" {
					links = append(links, attr.Val)
				}
			}
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(doc)
	return links
}

func normalize(u *url.URL) string {
	clean := *u
	clean.Fragment = ""
	return strings.TrimSuffix(clean.String(), "/")
}
