// Package pipeline provides the complete chart fitting pipeline.
//
// This package implements the transform → fit → reframe sequence that can
// be used by CLI, API, and worker components. By centralizing this logic,
// we ensure consistent behavior across all entry points and avoid code
// duplication.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Transform: rewrite lookup-based label formats into portable
//     conditional expressions so the renderer needs no lookup table
//  2. Fit: render the sized spec, measure reported content bounds, and
//     grow padding until the content fits the view
//  3. Reframe: re-derive the true content extents from the markup itself
//     and rewrite the root viewBox so nothing is clipped
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(renderer, cache, nil, logger)
//	opts := pipeline.Options{
//	    Spec:   specJSON,
//	    Width:  800,
//	    Height: 400,
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.SVG
package pipeline

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/chartfit/pkg/errors"
	"github.com/matzehuels/chartfit/pkg/render"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI, API, and Worker
// =============================================================================

const (
	// DefaultWidth is the default view width in pixels.
	DefaultWidth = 800.0

	// DefaultHeight is the default view height in pixels.
	DefaultHeight = 400.0

	// DefaultArtifactTTL is how long fitted output stays cached.
	DefaultArtifactTTL = 24 * time.Hour
)

// Options configures one pipeline run.
type Options struct {
	// Spec is the raw chart spec JSON.
	Spec []byte `json:"spec"`

	// View dimensions. Values below 1 fall back to the defaults.
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`

	// Padding is the initial padding in any accepted form: nil for
	// defaults, a number for uniform padding, or a per-side object.
	Padding any `json:"padding,omitempty"`

	// Refresh bypasses the artifact cache read (the result is still
	// written back).
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// padding is the normalized form, set by ValidateAndSetDefaults.
	padding render.Padding

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// ValidateAndSetDefaults checks required fields and applies defaults.
// This method is idempotent - calling it multiple times has the same
// effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}

	if len(o.Spec) == 0 {
		return errors.New(errors.ErrCodeInvalidInput, "spec is required")
	}
	if o.Width < 1 {
		o.Width = DefaultWidth
	}
	if o.Height < 1 {
		o.Height = DefaultHeight
	}

	pad, err := render.NormalizePadding(o.Padding)
	if err != nil {
		return err
	}
	o.padding = pad

	o.validated = true
	return nil
}

// paddingKey is the padding component of the artifact cache key.
func (o *Options) paddingKey() string {
	p := o.padding
	return fmt.Sprintf("%g,%g,%g,%g", p.Top, p.Bottom, p.Left, p.Right)
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// SVG is the fitted markup.
	SVG []byte

	// SpecHash is the content hash of the input spec.
	SpecHash string

	// Fitted reports whether the coordinator converged within its
	// attempt budget.
	Fitted bool

	// Attempts is how many render rounds the coordinator used.
	Attempts int

	// Stats contains timing information.
	Stats Stats

	// CacheInfo tracks whether the artifact came from cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	TransformTime time.Duration
	FitTime       time.Duration
	ReframeTime   time.Duration
}

// CacheInfo tracks cache hits for the pipeline.
type CacheInfo struct {
	ArtifactHit bool // Whether the fitted SVG came from cache
}
