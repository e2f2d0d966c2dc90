package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/keytrace/swipepath/pkg/cache"
	"github.com/keytrace/swipepath/pkg/errors"
	"github.com/keytrace/swipepath/pkg/keyboard"
	"github.com/keytrace/swipepath/pkg/observability"
)

const layoutKeyType = "layout"

// =============================================================================
// Layout Loading
// =============================================================================

// LoadLayout returns the layout at path, or the built-in layout when path
// is empty. The bool reports a cache hit.
//
// Only grid files go through the cache: they need calibration, while TOML
// files decode directly. Cache failures degrade to recomputing.
func (r *Runner) LoadLayout(ctx context.Context, path string, refresh bool) (*keyboard.Layout, bool, error) {
	if path == "" {
		return keyboard.Default(), false, nil
	}
	if !keyboard.NeedsCalibration(path) {
		l, err := keyboard.Load(path)
		return l, false, err
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, false, errors.Wrap(errors.ErrCodeFileNotFound, err, "layout %s", path)
	}
	if err != nil {
		return nil, false, errors.Wrap(errors.ErrCodeInvalidLayout, err, "read layout %s", path)
	}

	key := r.Keyer.LayoutKey(cache.Hash(data), cache.LayoutKeyOpts{
		Name:   filepath.Base(path),
		Format: keyboard.ExtGrid,
	})
	hooks := observability.Cache()

	if !refresh {
		if l, ok := r.cachedLayout(ctx, key); ok {
			hooks.OnCacheHit(ctx, layoutKeyType)
			return l, true, nil
		}
		hooks.OnCacheMiss(ctx, layoutKeyType)
	}

	l, err := keyboard.Parse(path, data)
	if err != nil {
		return nil, false, err
	}

	if encoded, err := json.Marshal(l); err == nil {
		if err := r.Cache.Set(ctx, key, encoded, cache.TTLLayout); err != nil {
			r.Logger.Warn("cache write failed", "key", key, "err", err)
		} else {
			hooks.OnCacheSet(ctx, layoutKeyType, len(encoded))
		}
	}
	return l, false, nil
}

func (r *Runner) cachedLayout(ctx context.Context, key string) (*keyboard.Layout, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache read failed", "key", key, "err", err)
		return nil, false
	}
	if !hit {
		return nil, false
	}
	var l keyboard.Layout
	if err := json.NewDecoder(bytes.NewReader(data)).Decode(&l); err != nil {
		r.Logger.Debug("dropping unreadable cache entry", "key", key, "err", err)
		_ = r.Cache.Delete(ctx, key)
		return nil, false
	}
	return &l, true
}
