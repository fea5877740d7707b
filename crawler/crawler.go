package crawler

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/w-h-a/rag/extractor"
)

// SitemapError reports that a sitemap document could not be fetched or parsed.
// Per-page extraction failures inside a sitemap walk are not sitemap errors;
// those pages are logged and skipped.
type SitemapError struct {
	URL string
	Err error
}

func (e *SitemapError) Error() string {
	return fmt.Sprintf("sitemap failed for %s: %v", e.URL, e.Err)
}

func (e *SitemapError) Unwrap() error {
	return e.Err
}

// Crawler turns URLs and sitemaps into extracted page text.
type Crawler struct {
	options   Options
	extractor extractor.Extractor
	client    *http.Client
}

// ExtractURL extracts the text content of a single page.
func (c *Crawler) ExtractURL(ctx context.Context, url string) (string, error) {
	return c.extractor.Extract(ctx, url)
}

// ExtractSitemap fetches a sitemap, extracts every listed page in document
// order, and concatenates the results with a `---` delimiter line. Pages
// that fail extraction are skipped; partial output is the normal outcome.
func (c *Crawler) ExtractSitemap(ctx context.Context, sitemapURL string) (string, error) {
	urls, err := c.fetchSitemap(ctx, sitemapURL)
	if err != nil {
		return "", &SitemapError{URL: sitemapURL, Err: err}
	}

	var contents []string

	for _, url := range urls {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		text, err := c.extractor.Extract(ctx, url)
		if err != nil {
			slog.WarnContext(ctx, "skipping sitemap url", "url", url, "error", err)
			continue
		}

		contents = append(contents, text)
	}

	return strings.Join(contents, "\n---\n"), nil
}

func (c *Crawler) fetchSitemap(ctx context.Context, sitemapURL string) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, sitemapURL, nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("User-Agent", c.options.UserAgent)

	rsp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer rsp.Body.Close()

	if rsp.StatusCode >= 400 {
		return nil, fmt.Errorf("status: %s", rsp.Status)
	}

	return parseLocations(rsp.Body)
}

func NewCrawler(e extractor.Extractor, opts ...Option) *Crawler {
	if e == nil {
		panic("extractor is required")
	}

	options := NewOptions(opts...)

	c := &Crawler{
		options:   options,
		extractor: e,
	}

	client := &http.Client{
		Timeout: options.Timeout,
	}

	c.client = client

	return c
}
