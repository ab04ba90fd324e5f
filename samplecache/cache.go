// Package samplecache shares built sampled functions between callers that
// would otherwise sample the same function on the same grid.
package samplecache

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
	ristretto "github.com/dgraph-io/ristretto/v2"
	"github.com/on-the-ground/sampled_go/sampled"
	"github.com/on-the-ground/sampled_go/shared/log"
	"go.uber.org/zap"
	"golang.org/x/exp/constraints"
)

const (
	// DefaultMaxSamples is the default capacity, in stored values.
	DefaultMaxSamples = 1 << 24

	conflictSalt = "samplecache\x00"
)

// Config bounds the cache. Zero fields take defaults.
type Config struct {
	// MaxSamples is the total number of stored values (size*nSubsamples
	// summed over entries) the cache may hold.
	MaxSamples int64
	// NumCounters is the number of keys to track frequency of.
	NumCounters int64
	// BufferItems is the number of keys per Get buffer.
	BufferItems int64

	Logger *zap.Logger
}

// Cache is safe for concurrent use.
type Cache[X constraints.Float, Y any] struct {
	cache  *ristretto.Cache[string, *sampled.Function[X, Y]]
	logger *zap.Logger
}

func New[X constraints.Float, Y any](cfg Config) (*Cache[X, Y], error) {
	if cfg.MaxSamples <= 0 {
		cfg.MaxSamples = DefaultMaxSamples
	}
	if cfg.NumCounters <= 0 {
		cfg.NumCounters = 1e5
	}
	if cfg.BufferItems <= 0 {
		cfg.BufferItems = 64
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	cache, err := ristretto.NewCache(&ristretto.Config[string, *sampled.Function[X, Y]]{
		NumCounters:        cfg.NumCounters,
		MaxCost:            cfg.MaxSamples,
		BufferItems:        cfg.BufferItems,
		KeyToHash:          keyToHash,
		Cost:               cost[X, Y],
		IgnoreInternalCost: true,
		OnEvict: func(item *ristretto.Item[*sampled.Function[X, Y]]) {
			fields := map[string]any{"key_hash": item.Key}
			if item.Value != nil {
				// Cost is not set on items dropped by Clear or Close.
				fields["samples"] = cost(item.Value)
				fields["grid"] = item.Value.String()
			}
			logger.Debug("sampled function evicted", log.Fields(fields)...)
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create sample cache: %w", err)
	}
	return &Cache[X, Y]{cache: cache, logger: logger}, nil
}

func (c *Cache[X, Y]) Get(key string) (*sampled.Function[X, Y], bool) {
	return c.cache.Get(key)
}

// GetOrBuild returns the function cached under key, building and caching it
// on a miss. Concurrent misses on the same key may build more than once.
// A built function is returned even when the cache declines to keep it.
func (c *Cache[X, Y]) GetOrBuild(
	key string,
	build func() (*sampled.Function[X, Y], error),
) (*sampled.Function[X, Y], error) {
	if f, ok := c.cache.Get(key); ok {
		return f, nil
	}

	f, err := build()
	if err != nil {
		return nil, fmt.Errorf("failed to build %q: %w", key, err)
	}

	if !c.cache.Set(key, f, 0) {
		c.logger.Debug("sampled function not cached", zap.String("key", key))
		return f, nil
	}
	c.cache.Wait()
	return f, nil
}

func (c *Cache[X, Y]) Delete(key string) {
	c.cache.Del(key)
}

// Close stops the cache. It must not be used afterwards.
func (c *Cache[X, Y]) Close() {
	c.cache.Close()
}

// FixedRangeKey names the grid built by sampled.NewFixedRange for the
// function called name.
func FixedRangeKey[X constraints.Float](name string, lower, upper X, size, nSubsamples int) string {
	return joinKey("fixed", name,
		formatFloat(lower), formatFloat(upper),
		strconv.Itoa(size), strconv.Itoa(nSubsamples))
}

// ExtendedRangeKey names the grid built by sampled.NewExtendedRange for the
// function called name and the stop predicate called stopName.
func ExtendedRangeKey[X constraints.Float](name, stopName string, lower, step X, nSubsamples int, atLeast X) string {
	return joinKey("extended", name, stopName,
		formatFloat(lower), formatFloat(step),
		strconv.Itoa(nSubsamples), formatFloat(atLeast))
}

func joinKey(parts ...string) string {
	return strings.Join(parts, "|")
}

func formatFloat[X constraints.Float](x X) string {
	return strconv.FormatFloat(float64(x), 'g', -1, 64)
}

func keyToHash(key string) (uint64, uint64) {
	return xxhash.Sum64String(key), xxhash.Sum64String(conflictSalt + key)
}

func cost[X constraints.Float, Y any](f *sampled.Function[X, Y]) int64 {
	n := int64(f.Size()) * int64(f.NSubsamples())
	if n < 1 {
		return 1
	}
	return n
}
