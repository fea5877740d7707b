package static

import (
	"context"
	"fmt"
	"net/http"

	"github.com/w-h-a/rag/extractor"
)

type staticExtractor struct {
	options extractor.Options
	client  *http.Client
}

func (e *staticExtractor) Extract(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}

	req.Header.Set("User-Agent", e.options.UserAgent)

	rsp, err := e.client.Do(req)
	if err != nil {
		return "", err
	}
	defer rsp.Body.Close()

	if rsp.StatusCode >= 400 {
		return "", fmt.Errorf("status: %s", rsp.Status)
	}

	return extractor.VisibleText(rsp.Body)
}

func NewExtractor(opts ...extractor.Option) extractor.Extractor {
	options := extractor.NewOptions(opts...)

	e := &staticExtractor{
		options: options,
	}

	client := &http.Client{
		Timeout: options.Timeout,
	}

	e.client = client

	return e
}
