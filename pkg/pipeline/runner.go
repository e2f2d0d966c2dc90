package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/keytrace/swipepath/pkg/cache"
	"github.com/keytrace/swipepath/pkg/errors"
	"github.com/keytrace/swipepath/pkg/keyboard"
	"github.com/keytrace/swipepath/pkg/pathio"
	"github.com/keytrace/swipepath/pkg/wordpath"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger. Multiple
// goroutines can safely use the same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute loads the layout and generates every word's path.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{}

	layoutStart := time.Now()
	l, hit, err := r.LoadLayout(ctx, opts.LayoutPath, opts.Refresh)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Layout = l
	result.CacheInfo.LayoutHit = hit
	result.Stats.LayoutTime = time.Since(layoutStart)

	r.Logger.Debug("loaded layout",
		"name", l.Name(),
		"keys", l.Len(),
		"cached", hit,
		"duration", result.Stats.LayoutTime)

	genStart := time.Now()
	paths, err := r.Generate(ctx, l, opts.Words, opts.Policy(), opts.Workers)
	if err != nil {
		return nil, err
	}
	result.Paths = paths
	result.Stats.GenerateTime = time.Since(genStart)
	result.Stats.Words = len(paths)
	for _, p := range paths {
		if !p.OK() {
			result.Stats.Failed++
		}
		result.Stats.Points += len(p.Points)
	}

	r.Logger.Info("generated paths",
		"words", result.Stats.Words,
		"failed", result.Stats.Failed,
		"points", result.Stats.Points,
		"duration", result.Stats.GenerateTime)

	return result, nil
}

// Generate builds the path of every word on l with up to workers goroutines.
// The output is index-aligned with words. Per-word failures are recorded in
// the records; the only error returned is context cancellation.
func (r *Runner) Generate(ctx context.Context, l *keyboard.Layout, words []string, policy wordpath.Policy, workers int) ([]pathio.Path, error) {
	if workers < 1 {
		workers = 1
	}
	out := make([]pathio.Path, len(words))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, word := range words {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			out[i] = r.build(gctx, l, word, policy)
			if !out[i].OK() {
				r.Logger.Debug("no path", "word", word, "code", out[i].Error.Code)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// build generates one record. A panic is confined to its word and recorded
// as an internal error; worker goroutines are outside any HTTP recoverer.
func (r *Runner) build(ctx context.Context, l *keyboard.Layout, word string, policy wordpath.Policy) (p pathio.Path) {
	defer func() {
		if v := recover(); v != nil {
			r.Logger.Error("path generation panicked", "word", word, "panic", v)
			p = pathio.Path{
				Word:   word,
				Layout: l.Name(),
				Policy: policy.String(),
				Error:  pathio.NewError(errors.New(errors.ErrCodeInternal, "internal error generating %q", word)),
			}
		}
	}()
	return pathio.Build(ctx, l, word, policy, wordpath.WithLogger(r.Logger))
}

// Close releases the runner's cache.
func (r *Runner) Close() error {
	return r.Cache.Close()
}
