package rendered

import (
	"context"
	"strings"

	"github.com/chromedp/chromedp"
	"github.com/w-h-a/rag/extractor"
)

// renderedExtractor drives a headless browser so script-rendered pages
// produce their final DOM before text extraction.
type renderedExtractor struct {
	options extractor.Options
}

func (e *renderedExtractor) Extract(ctx context.Context, url string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, e.options.Timeout)
	defer cancel()

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(
		ctx,
		append(
			chromedp.DefaultExecAllocatorOptions[:],
			chromedp.UserAgent(e.options.UserAgent),
		)...,
	)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	var content string

	if err := chromedp.Run(
		browserCtx,
		chromedp.Navigate(url),
		chromedp.OuterHTML("html", &content),
	); err != nil {
		return "", err
	}

	return extractor.VisibleText(strings.NewReader(content))
}

func NewExtractor(opts ...extractor.Option) extractor.Extractor {
	options := extractor.NewOptions(opts...)

	e := &renderedExtractor{
		options: options,
	}

	return e
}
