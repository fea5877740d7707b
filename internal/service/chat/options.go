package chat

type Option func(*Options)

type Options struct {
	Threshold float64
	TopK      int
}

// WithThreshold sets the similarity floor for retrieved passages. The default
// of 0.0 keeps retrieval effectively unfiltered.
func WithThreshold(threshold float64) Option {
	return func(o *Options) {
		o.Threshold = threshold
	}
}

func WithTopK(topK int) Option {
	return func(o *Options) {
		o.TopK = topK
	}
}

func NewOptions(opts ...Option) Options {
	options := Options{
		Threshold: 0.0,
		TopK:      5,
	}
	for _, opt := range opts {
		opt(&options)
	}
	if options.TopK < 1 {
		options.TopK = 5
	}
	return options
}
