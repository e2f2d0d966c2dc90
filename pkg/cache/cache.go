// Package cache stores calibrated keyboard layouts between runs.
//
// Calibrating a layout from a cell grid is the only derived artifact worth
// keeping: generated paths are cheap to recompute and are never stored. The
// [Cache] interface has three backends:
//
//   - [FileCache]: JSON entry files under the user cache directory (CLI)
//   - [RedisCache]: a shared Redis instance (HTTP server deployments)
//   - [NullCache]: stores nothing (--no-cache, tests)
//
// Keys come from a [Keyer] so every backend addresses entries the same way.
package cache

import (
	"context"
	"time"
)

// TTLLayout is how long a calibrated layout stays cached. Keys are derived
// from the source bytes, so a changed grid file never hits a stale entry;
// the TTL only bounds disk and memory use.
const TTLLayout = 30 * 24 * time.Hour

// Cache is a byte-oriented key/value store with per-entry expiry.
//
// Get reports a miss as (nil, false, nil). Backend failures are returned as
// errors; callers treat them as misses and recompute.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}
