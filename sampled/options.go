package sampled

import "go.uber.org/zap"

// DefaultMaxSamples bounds the search of NewExtendedRange.
const DefaultMaxSamples = 1 << 24

type options struct {
	logger     *zap.Logger
	maxSamples int
}

// Option configures construction.
type Option func(*options)

// WithLogger makes constructors report the resulting grid at debug level.
// A nil logger is ignored.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithMaxSamples sets the number of samples after which NewExtendedRange
// gives up with ErrStopNotReached. It panics if n < 1.
func WithMaxSamples(n int) Option {
	if n < 1 {
		panic("sampled: max samples should be greater than 0")
	}
	return func(o *options) {
		o.maxSamples = n
	}
}

func gatherOptions(opts []Option) options {
	o := options{
		logger:     zap.NewNop(),
		maxSamples: DefaultMaxSamples,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
