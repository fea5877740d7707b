package rag

import (
	"time"

	"github.com/w-h-a/rag/chunker"
	"github.com/w-h-a/rag/embedder"
)

type Option func(*Options)

type Options struct {
	ChunkSize      int
	BatchSize      int
	TopK           int
	Threshold      float64
	MemoryCapacity int
	MemoryTTL      time.Duration
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

func WithTopK(topK int) Option {
	return func(o *Options) {
		o.TopK = topK
	}
}

func WithThreshold(threshold float64) Option {
	return func(o *Options) {
		o.Threshold = threshold
	}
}

func WithMemoryCapacity(capacity int) Option {
	return func(o *Options) {
		o.MemoryCapacity = capacity
	}
}

func WithMemoryTTL(ttl time.Duration) Option {
	return func(o *Options) {
		o.MemoryTTL = ttl
	}
}

func NewOptions(opts ...Option) Options {
	options := Options{
		ChunkSize:      chunker.DefaultSize,
		BatchSize:      embedder.DefaultBatchSize,
		TopK:           5,
		Threshold:      0.0,
		MemoryCapacity: 5,
		MemoryTTL:      time.Hour,
	}
	for _, opt := range opts {
		opt(&options)
	}
	return options
}
