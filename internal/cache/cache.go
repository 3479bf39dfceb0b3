// Package cache wraps a ristretto cache used by the placement engine to
// memoize geometry checks that get re-evaluated many times across search
// iterations (the same candidate/obstacle pairs recur across generations
// of the evolutionary and annealing strategies). The cache is constructed
// fresh per placement call, never shared across calls, and is a pure
// accelerator: a cold or evicted cache yields identical results, only
// slower.
package cache

import (
	"fmt"

	"github.com/dgraph-io/ristretto"

	"github.com/arxos/cadtool/internal/metrics"
)

// DistanceCache memoizes float64-valued geometry computations keyed by a
// caller-supplied string.
type DistanceCache struct {
	c        *ristretto.Cache
	recorder *metrics.Recorder
}

// New creates a DistanceCache sized for a single placement call's working
// set (tens of thousands of candidate/obstacle pairs). recorder may be nil,
// in which case hits and misses are simply not recorded.
func New(recorder *metrics.Recorder) *DistanceCache {
	c, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 100_000,
		MaxCost:     10_000_000,
		BufferItems: 64,
	})
	if err != nil {
		// ristretto only fails on invalid config; the config above is
		// fixed and valid, so this is unreachable in practice. Fall back
		// to a disabled cache rather than panic.
		return &DistanceCache{c: nil, recorder: recorder}
	}
	return &DistanceCache{c: c, recorder: recorder}
}

// Key builds a cache key from a kind tag and a set of coordinates, each
// written at full float64 precision so that only identical inputs share
// an entry.
func Key(kind string, coords ...float64) string {
	key := kind
	for _, v := range coords {
		key += fmt.Sprintf(":%v", v)
	}
	return key
}

// GetOrCompute returns the cached value for key if present, else calls
// compute, stores the result, and returns it.
func (d *DistanceCache) GetOrCompute(key string, compute func() float64) float64 {
	if d == nil || d.c == nil {
		return compute()
	}
	if v, ok := d.c.Get(key); ok {
		if f, ok := v.(float64); ok {
			d.recorder.RecordCacheAccess(true)
			return f
		}
	}
	d.recorder.RecordCacheAccess(false)
	result := compute()
	d.c.Set(key, result, 1)
	return result
}

// Close releases the cache's background resources. Safe to call on a nil
// receiver.
func (d *DistanceCache) Close() {
	if d != nil && d.c != nil {
		d.c.Close()
	}
}
