package extractor

import (
	"context"
	"time"
)

type Option func(*Options)

type Options struct {
	UserAgent  string
	Timeout    time.Duration
	Strategies []Extractor
	Context    context.Context
}

func WithUserAgent(userAgent string) Option {
	return func(o *Options) {
		o.UserAgent = userAgent
	}
}

func WithTimeout(timeout time.Duration) Option {
	return func(o *Options) {
		o.Timeout = timeout
	}
}

func WithStrategies(strategies ...Extractor) Option {
	return func(o *Options) {
		o.Strategies = strategies
	}
}

func NewOptions(opts ...Option) Options {
	options := Options{
		UserAgent: "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36",
		Timeout:   20 * time.Second,
		Context:   context.Background(),
	}
	for _, opt := range opts {
		opt(&options)
	}
	return options
}
