package memory

import "time"

type Option func(*Options)

type Options struct {
	Capacity int
	TTL      time.Duration
}

func WithCapacity(capacity int) Option {
	return func(o *Options) {
		o.Capacity = capacity
	}
}

func WithTTL(ttl time.Duration) Option {
	return func(o *Options) {
		o.TTL = ttl
	}
}

func NewOptions(opts ...Option) Options {
	options := Options{
		Capacity: 5,
		TTL:      time.Hour,
	}
	for _, opt := range opts {
		opt(&options)
	}
	if options.Capacity < 1 {
		options.Capacity = 5
	}
	if options.TTL <= 0 {
		options.TTL = time.Hour
	}
	return options
}
