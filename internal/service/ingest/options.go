package ingest

import (
	"github.com/w-h-a/rag/chunker"
	"github.com/w-h-a/rag/embedder"
)

type Option func(*Options)

type Options struct {
	ChunkSize int
	BatchSize int
}

func WithChunkSize(size int) Option {
	return func(o *Options) {
		o.ChunkSize = size
	}
}

func WithBatchSize(size int) Option {
	return func(o *Options) {
		o.BatchSize = size
	}
}

func NewOptions(opts ...Option) Options {
	options := Options{
		ChunkSize: chunker.DefaultSize,
		BatchSize: embedder.DefaultBatchSize,
	}
	for _, opt := range opts {
		opt(&options)
	}
	return options
}
