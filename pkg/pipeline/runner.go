package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/chartfit/pkg/cache"
	"github.com/matzehuels/chartfit/pkg/observability"
	"github.com/matzehuels/chartfit/pkg/render"
	"github.com/matzehuels/chartfit/pkg/spec"
	"github.com/matzehuels/chartfit/pkg/svg"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Renderer render.Renderer
	Cache    cache.Cache
	Keyer    cache.Keyer
	Logger   *log.Logger
}

// NewRunner creates a runner around the given renderer.
// If keyer is nil, a DefaultKeyer is used.
// If c is nil, a NullCache is used (caching disabled).
func NewRunner(renderer render.Renderer, c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
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
		Renderer: renderer,
		Cache:    c,
		Keyer:    keyer,
		Logger:   logger,
	}
}

// Execute runs the complete transform → fit → reframe pipeline with
// caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = r.Logger
	}

	result := &Result{
		SpecHash: cache.Hash(opts.Spec),
	}

	cacheKey := r.Keyer.ArtifactKey(result.SpecHash, cache.ArtifactKeyOpts{
		Width:   opts.Width,
		Height:  opts.Height,
		Padding: opts.paddingKey(),
	})

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			observability.Cache().OnCacheHit(ctx, "artifact")
			result.SVG = data
			result.Fitted = true
			result.CacheInfo.ArtifactHit = true
			return result, nil
		}
		observability.Cache().OnCacheMiss(ctx, "artifact")
	}

	// Stage 1: Transform
	doc, err := spec.Parse(opts.Spec)
	if err != nil {
		return nil, err
	}

	lookups := doc.LookupCount()
	transformStart := time.Now()
	observability.Pipeline().OnTransformStart(ctx, lookups)
	doc = spec.Transform(doc)
	result.Stats.TransformTime = time.Since(transformStart)
	observability.Pipeline().OnTransformComplete(ctx, result.Stats.TransformTime, nil)

	logger.Debug("transformed label formats",
		"lookups", lookups,
		"duration", result.Stats.TransformTime)

	// Stage 2: Fit
	fitStart := time.Now()
	observability.Pipeline().OnFitStart(ctx, opts.Width, opts.Height)
	coord := render.NewCoordinator(r.Renderer, logger)
	fit, err := coord.Fit(ctx, doc, opts.Width, opts.Height, opts.padding)
	result.Stats.FitTime = time.Since(fitStart)
	if err != nil {
		observability.Pipeline().OnFitComplete(ctx, 0, false, result.Stats.FitTime, err)
		return nil, err
	}
	observability.Pipeline().OnFitComplete(ctx, fit.Attempts, fit.Fitted, result.Stats.FitTime, nil)
	result.Fitted = fit.Fitted
	result.Attempts = fit.Attempts

	logger.Info("rendered chart",
		"attempts", fit.Attempts,
		"fitted", fit.Fitted,
		"duration", result.Stats.FitTime)

	// Stage 3: Reframe
	reframeStart := time.Now()
	markup := fit.Frame.SVG
	content, found := svg.ExtractBounds(markup)
	observability.Pipeline().OnExtractComplete(ctx, found, time.Since(reframeStart))
	if found {
		markup = svg.FitViewBox(markup, &content)
	} else {
		logger.Debug("no geometry found, keeping renderer output")
	}
	result.Stats.ReframeTime = time.Since(reframeStart)
	result.SVG = []byte(markup)

	logger.Info("fitted viewport",
		"geometry", found,
		"duration", result.Stats.ReframeTime)

	// Cache the result
	if err := r.Cache.Set(ctx, cacheKey, result.SVG, DefaultArtifactTTL); err == nil {
		observability.Cache().OnCacheSet(ctx, "artifact", len(result.SVG))
	}

	return result, nil
}

// RenderToFittedSVG is a convenience wrapper for callers that only need
// the final markup.
func (r *Runner) RenderToFittedSVG(ctx context.Context, specJSON []byte, width, height float64) ([]byte, error) {
	result, err := r.Execute(ctx, Options{Spec: specJSON, Width: width, Height: height})
	if err != nil {
		return nil, err
	}
	return result.SVG, nil
}
