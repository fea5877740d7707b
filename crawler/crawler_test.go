package crawler_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/w-h-a/rag/crawler"
)

// urlExtractor returns canned text per URL and fails for URLs it does not
// know, standing in for both strategies failing.
type urlExtractor struct {
	pages map[string]string
	seen  []string
}

func (e *urlExtractor) Extract(ctx context.Context, url string) (string, error) {
	e.seen = append(e.seen, url)

	text, ok := e.pages[url]
	if !ok {
		return "", fmt.Errorf("extraction failed for %s", url)
	}

	return text, nil
}

func sitemapServer(t *testing.T, locs ...string) *httptest.Server {
	t.Helper()

	body := `<?xml version="1.0" encoding="UTF-8"?><urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">`
	for _, loc := range locs {
		body += "<url><loc>" + loc + "</loc></url>"
	}
	body += "</urlset>"

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/xml")
		w.Write([]byte(body))
	}))
}

func TestExtractSitemap(t *testing.T) {
	ctx := context.Background()

	t.Run("concatenates pages in document order with delimiter", func(t *testing.T) {
		srv := sitemapServer(t, "https://a.test/1", "https://a.test/2", "https://a.test/3")
		defer srv.Close()

		ex := &urlExtractor{pages: map[string]string{
			"https://a.test/1": "one",
			"https://a.test/2": "two",
			"https://a.test/3": "three",
		}}

		c := crawler.NewCrawler(ex)

		text, err := c.ExtractSitemap(ctx, srv.URL)
		require.NoError(t, err)

		assert.Equal(t, "one\n---\ntwo\n---\nthree", text)
		assert.Equal(t, []string{"https://a.test/1", "https://a.test/2", "https://a.test/3"}, ex.seen)
	})

	t.Run("failed page is skipped and the rest survive", func(t *testing.T) {
		srv := sitemapServer(t, "https://a.test/1", "https://a.test/2", "https://a.test/3")
		defer srv.Close()

		ex := &urlExtractor{pages: map[string]string{
			"https://a.test/1": "one",
			"https://a.test/3": "three",
		}}

		c := crawler.NewCrawler(ex)

		text, err := c.ExtractSitemap(ctx, srv.URL)
		require.NoError(t, err)

		assert.Equal(t, "one\n---\nthree", text)
		assert.Len(t, ex.seen, 3)
	})

	t.Run("unreachable sitemap is a sitemap error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer srv.Close()

		c := crawler.NewCrawler(&urlExtractor{})

		_, err := c.ExtractSitemap(ctx, srv.URL)
		require.Error(t, err)

		var sitemapErr *crawler.SitemapError
		require.ErrorAs(t, err, &sitemapErr)
		assert.Equal(t, srv.URL, sitemapErr.URL)
	})

	t.Run("unparseable sitemap is a sitemap error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("<urlset><loc>https://a.test/1"))
		}))
		defer srv.Close()

		c := crawler.NewCrawler(&urlExtractor{})

		_, err := c.ExtractSitemap(ctx, srv.URL)
		require.Error(t, err)

		var sitemapErr *crawler.SitemapError
		require.ErrorAs(t, err, &sitemapErr)
	})

	t.Run("sitemap index documents also yield locations", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`<?xml version="1.0"?><sitemapindex><sitemap><loc>https://a.test/nested.xml</loc></sitemap></sitemapindex>`))
		}))
		defer srv.Close()

		ex := &urlExtractor{pages: map[string]string{
			"https://a.test/nested.xml": "nested",
		}}

		c := crawler.NewCrawler(ex)

		text, err := c.ExtractSitemap(ctx, srv.URL)
		require.NoError(t, err)
		assert.Equal(t, "nested", text)
	})

	t.Run("cancelled context stops the walk", func(t *testing.T) {
		srv := sitemapServer(t, "https://a.test/1", "https://a.test/2")
		defer srv.Close()

		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		c := crawler.NewCrawler(&urlExtractor{})

		_, err := c.ExtractSitemap(cancelled, srv.URL)
		require.Error(t, err)
	})
}

func TestExtractURL(t *testing.T) {
	ex := &urlExtractor{pages: map[string]string{
		"https://a.test/solo": "solo page",
	}}

	c := crawler.NewCrawler(ex)

	text, err := c.ExtractURL(context.Background(), "https://a.test/solo")
	require.NoError(t, err)
	assert.Equal(t, "solo page", text)
}
