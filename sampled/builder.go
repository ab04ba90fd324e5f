package sampled

import (
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/exp/constraints"
)

// NewFixedRange samples fn on [lower, upper) with size samples per phase and
// nSubsamples phases:
//
//	step    = (upper - lower) / size
//	substep = step / nSubsamples
//
// size == 0 is accepted and yields empty subsamples; the bounds are then not
// checked and the step is reported as 0.
func NewFixedRange[X constraints.Float, Y any](
	fn func(X) Y,
	lower, upper X,
	size, nSubsamples int,
	opts ...Option,
) (*Function[X, Y], error) {
	var err error
	if fn == nil {
		err = multierr.Append(err, ErrNilFunction)
	}
	if nSubsamples < 1 {
		err = multierr.Append(err, fmt.Errorf("%w: got %d", ErrInvalidSubsamples, nSubsamples))
	}
	if size < 0 {
		err = multierr.Append(err, fmt.Errorf("%w: got %d", ErrInvalidSize, size))
	}
	if size > 0 && !(isFinite(lower) && isFinite(upper) && upper > lower) {
		err = multierr.Append(err, fmt.Errorf("%w: [%v, %v)", ErrInvalidRange, lower, upper))
	}
	if err != nil {
		return nil, err
	}

	var step X
	if size > 0 {
		step = (upper - lower) / X(size)
	}

	o := gatherOptions(opts)
	f := newFunction(fn, lower, upper, step, size, nSubsamples)
	logBuilt(o.logger, "fixed", f, size*nSubsamples)
	return f, nil
}

// NewExtendedRange samples fn from lower with the given step, extending the
// domain one step at a time until stop fires.
//
// Each candidate for the new upper bound x = lower + (n+1)*step is evaluated
// and passed to stop(x, fn(x)). While the current upper bound lower + n*step
// is still below atLeast the result of stop is ignored and the domain keeps
// growing. Once it is covered, the first candidate for which stop returns
// true is rejected and the domain ends just before it:
//
//	size  = n
//	upper = lower + step*size
//
// Comparisons are exact; choose step and atLeast away from borderline
// values.
//
// If stop does not fire within the sample ceiling (see WithMaxSamples),
// ErrStopNotReached is returned.
func NewExtendedRange[X constraints.Float, Y any](
	fn func(X) Y,
	lower, step X,
	stop func(x X, y Y) bool,
	nSubsamples int,
	atLeast X,
	opts ...Option,
) (*Function[X, Y], error) {
	var err error
	if fn == nil {
		err = multierr.Append(err, ErrNilFunction)
	}
	if stop == nil {
		err = multierr.Append(err, ErrNilStop)
	}
	if nSubsamples < 1 {
		err = multierr.Append(err, fmt.Errorf("%w: got %d", ErrInvalidSubsamples, nSubsamples))
	}
	if !isFinite(step) || step <= 0 {
		err = multierr.Append(err, fmt.Errorf("%w: got %v", ErrInvalidStep, step))
	}
	if err != nil {
		return nil, err
	}

	o := gatherOptions(opts)
	size, evaluations, err := searchRange(fn, lower, step, stop, atLeast, o.maxSamples)
	if err != nil {
		o.logger.Warn("sampled function range search failed",
			zap.Any("lower", lower),
			zap.Any("step", step),
			zap.Any("atLeast", atLeast),
			zap.Int("evaluations", evaluations),
			zap.Error(err),
		)
		return nil, err
	}

	f := newFunction(fn, lower, gridPoint(lower, step, size), step, size, nSubsamples)
	logBuilt(o.logger, "extended", f, evaluations+size*nSubsamples)
	return f, nil
}

// searchRange returns the number of samples accepted before stop fires, and
// how many times fn was called to find out.
func searchRange[X constraints.Float, Y any](
	fn func(X) Y,
	lower, step X,
	stop func(X, Y) bool,
	atLeast X,
	maxSamples int,
) (size, evaluations int, err error) {
	n := 0
	for {
		covered := gridPoint(lower, step, n) >= atLeast
		if covered {
			x := gridPoint(lower, step, n+1)
			evaluations++
			if stop(x, fn(x)) {
				return n, evaluations, nil
			}
		}
		if n >= maxSamples {
			return n, evaluations, fmt.Errorf("%w after %d samples", ErrStopNotReached, n)
		}
		n++
	}
}

func logBuilt[X constraints.Float, Y any](logger *zap.Logger, mode string, f *Function[X, Y], evaluations int) {
	logger.Debug("sampled function built",
		zap.String("build_id", uuid.New().String()),
		zap.String("mode", mode),
		zap.Any("lower", f.Lower()),
		zap.Any("upper", f.Upper()),
		zap.Any("step", f.StepSize()),
		zap.Int("size", f.Size()),
		zap.Int("subsamples", f.NSubsamples()),
		zap.Int("evaluations", evaluations),
	)
}
