package format

// Option configures the text validators.
type Option func(*options)

type options struct {
	extraKeywords []string
	decode        DecodePolicy
}

// WithExtraKeywords adds keywords, compared case-insensitively, that ASCII
// STL validation must not report as unrecognized.
func WithExtraKeywords(keywords ...string) Option {
	return func(o *options) {
		o.extraKeywords = append(o.extraKeywords, keywords...)
	}
}

// WithDecodePolicy sets how the text validators decode file content.
func WithDecodePolicy(p DecodePolicy) Option {
	return func(o *options) {
		o.decode = p
	}
}

func buildOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
