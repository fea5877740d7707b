package extractor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// Extractor produces the visible text content of a single web page.
type Extractor interface {
	Extract(ctx context.Context, url string) (string, error)
}

// ExtractionError reports that every configured strategy failed for a URL.
// Err holds the error returned by the last strategy tried.
type ExtractionError struct {
	URL string
	Err error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extraction failed for %s: %v", e.URL, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

type fallbackExtractor struct {
	options    Options
	strategies []Extractor
}

// Extract tries each strategy in order and returns the first success,
// prefixed with a provenance header so the source URL survives chunking.
func (e *fallbackExtractor) Extract(ctx context.Context, url string) (string, error) {
	var last error

	for _, strategy := range e.strategies {
		text, err := strategy.Extract(ctx, url)
		if err == nil {
			return fmt.Sprintf("Source URL: %s\n\n%s", url, text), nil
		}

		slog.WarnContext(ctx, "extraction strategy failed", "url", url, "error", err)

		last = err
	}

	if last == nil {
		last = errors.New("no extraction strategies configured")
	}

	return "", &ExtractionError{URL: url, Err: last}
}

func NewExtractor(opts ...Option) Extractor {
	options := NewOptions(opts...)

	if len(options.Strategies) == 0 {
		panic("at least one extraction strategy is required")
	}

	e := &fallbackExtractor{
		options:    options,
		strategies: options.Strategies,
	}

	return e
}
