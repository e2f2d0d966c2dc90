// Package pipeline runs batch path generation for swipepath.
//
// The CLI and the HTTP server share this package so both resolve layouts,
// apply defaults and report failures the same way.
//
// # Stages
//
//  1. Layout: load the built-in layout or a layout file. Grid files are
//     calibrated and the result is cached by the hash of the file bytes.
//  2. Generate: build one [pathio.Path] per word, in parallel, keeping input
//     order. A word without a path is recorded, not fatal.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Words:   []string{"hello", "world"},
//	    Density: 0.1,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, p := range result.Paths { ... }
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/keytrace/swipepath/pkg/errors"
	"github.com/keytrace/swipepath/pkg/keyboard"
	"github.com/keytrace/swipepath/pkg/pathio"
	"github.com/keytrace/swipepath/pkg/wordpath"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultDensity is the resampling spacing used when neither a density
	// nor a count is given.
	DefaultDensity = 0.01

	// DefaultWorkers bounds concurrent word generation.
	DefaultWorkers = 4

	// MaxWorkers caps the worker count a caller may request.
	MaxWorkers = 64

	// MaxWords caps the words accepted in one batch.
	MaxWords = 10000

	// MaxBatchPoints caps words × count for fixed-count batches.
	MaxBatchPoints = 1 << 24
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one batch. This struct supports
// JSON serialization for API requests.
type Options struct {
	Words []string `json:"words"`

	// Resampling: at most one of Density and Count may be set.
	Density float64 `json:"density,omitempty"`
	Count   int     `json:"count,omitempty"`

	// LayoutPath is a .toml or .grid file; empty means the built-in layout.
	LayoutPath string `json:"-"`
	// Refresh bypasses the layout cache.
	Refresh bool `json:"-"`
	Workers int  `json:"-"`

	Logger *log.Logger `json:"-"`

	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Layout is the layout the paths were generated on.
	Layout *keyboard.Layout

	// Paths holds one record per input word, in input order.
	Paths []pathio.Path

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Words        int
	Failed       int
	Points       int
	LayoutTime   time.Duration
	GenerateTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether the calibrated layout came from cache
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks the options and applies defaults.
// This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if len(o.Words) == 0 {
		return errors.New(errors.ErrCodeInvalidInput, "at least one word is required")
	}
	if len(o.Words) > MaxWords {
		return errors.New(errors.ErrCodeInvalidInput, "too many words: %d (max %d)", len(o.Words), MaxWords)
	}
	for i, w := range o.Words {
		if err := errors.ValidateWord(w); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "word %d", i)
		}
	}
	if err := o.SetPolicyDefaults(); err != nil {
		return err
	}
	if o.Count > 0 && len(o.Words) > MaxBatchPoints/o.Count {
		return errors.New(errors.ErrCodeInvalidPolicy, "%d words of %d points exceed the batch limit of %d points", len(o.Words), o.Count, MaxBatchPoints)
	}
	if o.Workers == 0 {
		o.Workers = DefaultWorkers
	}
	if o.Workers < 0 || o.Workers > MaxWorkers {
		return errors.New(errors.ErrCodeInvalidInput, "workers must be between 1 and %d, got %d", MaxWorkers, o.Workers)
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// SetPolicyDefaults applies the default density when no policy is set and
// rejects setting both.
func (o *Options) SetPolicyDefaults() error {
	if o.Density != 0 && o.Count != 0 {
		return errors.New(errors.ErrCodeInvalidPolicy, "density and count are mutually exclusive")
	}
	if o.Density == 0 && o.Count == 0 {
		o.Density = DefaultDensity
	}
	return o.Policy().Validate()
}

// Policy returns the resampling policy the options select.
func (o *Options) Policy() wordpath.Policy {
	if o.Count != 0 {
		return wordpath.Count(o.Count)
	}
	return wordpath.Density(o.Density)
}

// String summarizes the options for logs.
func (o *Options) String() string {
	layout := o.LayoutPath
	if layout == "" {
		layout = keyboard.DefaultName
	}
	return fmt.Sprintf("%d words, %s, layout %s", len(o.Words), o.Policy(), layout)
}
