package sampled

import "errors"

// Construction errors. Constructors may return several of them combined;
// match with errors.Is.
var (
	ErrNilFunction       = errors.New("sampled: source function is nil")
	ErrNilStop           = errors.New("sampled: stop predicate is nil")
	ErrInvalidSubsamples = errors.New("sampled: number of subsamples must be at least 1")
	ErrInvalidSize       = errors.New("sampled: number of samples must not be negative")
	ErrInvalidRange      = errors.New("sampled: upper bound must be finite and greater than lower bound")
	ErrInvalidStep       = errors.New("sampled: step must be finite and positive")

	// ErrStopNotReached is returned by NewExtendedRange when the stop
	// predicate did not fire within the sample ceiling.
	ErrStopNotReached = errors.New("sampled: stop condition not reached")
)
