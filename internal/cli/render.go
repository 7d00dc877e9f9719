package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/chartfit/pkg/cache"
	"github.com/matzehuels/chartfit/pkg/integrations"
	"github.com/matzehuels/chartfit/pkg/integrations/analytics"
	"github.com/matzehuels/chartfit/pkg/pipeline"
	"github.com/matzehuels/chartfit/pkg/render"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output   string  // output file path, "-" for stdout
	chartID  string  // saved chart ID to fetch from the analytics service
	width    float64 // view width in pixels
	height   float64 // view height in pixels
	padding  string  // initial padding: a number or a per-side JSON object
	refresh  bool    // bypass the artifact cache
	renderer string  // render service URL (overrides config)
	cacheSel string  // cache backend: dir path, redis:// URL, or "off"
}

// newRenderCmd creates the render command.
//
// The spec comes either from a local file argument or from a saved chart
// on the analytics service via --chart. The fitted SVG is written next to
// the input by default, or to --output.
func newRenderCmd() *cobra.Command {
	opts := renderOpts{
		width:  pipeline.DefaultWidth,
		height: pipeline.DefaultHeight,
	}

	cmd := &cobra.Command{
		Use:   "render [spec.json]",
		Short: "Fit a chart spec into an SVG document",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := ""
			if len(args) == 1 {
				input = args[0]
			}
			if input == "" && opts.chartID == "" {
				return fmt.Errorf("either a spec file or --chart is required")
			}
			if input != "" && opts.chartID != "" {
				return fmt.Errorf("a spec file and --chart are mutually exclusive")
			}
			return runRender(cmd.Context(), input, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file, or - for stdout")
	cmd.Flags().StringVar(&opts.chartID, "chart", "", "saved chart ID to fetch and render")
	cmd.Flags().Float64Var(&opts.width, "width", opts.width, "view width")
	cmd.Flags().Float64Var(&opts.height, "height", opts.height, "view height")
	cmd.Flags().StringVar(&opts.padding, "padding", "", `initial padding: a number or {"top":…,"left":…}`)
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "bypass the artifact cache")
	cmd.Flags().StringVar(&opts.renderer, "renderer", "", "render service URL (overrides config)")
	cmd.Flags().StringVar(&opts.cacheSel, "cache", "", "cache backend: directory, redis:// URL, or off")

	return cmd
}

// parsePaddingFlag turns the --padding flag into the forms the pipeline
// accepts: nil for empty, a number, or a per-side object.
func parsePaddingFlag(s string) (any, error) {
	if s == "" {
		return nil, nil
	}
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return v, nil
	}
	var obj map[string]any
	if err := json.Unmarshal([]byte(s), &obj); err != nil {
		return nil, fmt.Errorf("invalid padding %q: want a number or a JSON object", s)
	}
	return obj, nil
}

// buildCache selects the artifact cache backend from the --cache flag or
// config value. Empty selects the default file cache, "off" disables
// caching, and redis:// URLs select Redis.
func buildCache(ctx context.Context, sel string) (cache.Cache, error) {
	switch {
	case sel == "off":
		return cache.NewNullCache(), nil
	case strings.HasPrefix(sel, "redis://"), strings.HasPrefix(sel, "rediss://"):
		return cache.NewRedisCache(ctx, sel)
	case sel != "":
		return cache.NewFileCache(sel)
	default:
		dir, err := cacheDir()
		if err != nil {
			return nil, err
		}
		return cache.NewFileCache(filepath.Join(dir, "artifacts"))
	}
}

// fetchSpec loads the spec bytes from a file or the analytics service.
func fetchSpec(ctx context.Context, input string, opts *renderOpts, cfg Config) ([]byte, error) {
	if input != "" {
		return os.ReadFile(input)
	}

	if cfg.AnalyticsURL == "" {
		return nil, fmt.Errorf("--chart requires analytics_url in the config file")
	}
	httpCache, err := integrations.NewCache(cfg.CacheTTL())
	if err != nil {
		return nil, err
	}
	client := analytics.NewClient(cfg.AnalyticsURL, cfg.AnalyticsToken, httpCache)
	return client.FetchSpec(ctx, opts.chartID, opts.refresh)
}

// outputPath derives where the fitted SVG goes.
func outputPath(input string, opts *renderOpts) string {
	if opts.output != "" {
		return opts.output
	}
	if input != "" {
		return strings.TrimSuffix(input, filepath.Ext(input)) + ".svg"
	}
	return opts.chartID + ".svg"
}

// runRender executes the fitting pipeline for one spec and writes the result.
func runRender(ctx context.Context, input string, opts *renderOpts) error {
	logger := loggerFromContext(ctx)

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("reading config: %w", err)
	}
	rendererURL := opts.renderer
	if rendererURL == "" {
		rendererURL = cfg.RendererURL
	}
	if rendererURL == "" {
		return fmt.Errorf("no render service configured: set --renderer or renderer_url in the config file")
	}

	padding, err := parsePaddingFlag(opts.padding)
	if err != nil {
		return err
	}

	specJSON, err := fetchSpec(ctx, input, opts, cfg)
	if err != nil {
		return err
	}

	cacheSel := opts.cacheSel
	if cacheSel == "" {
		cacheSel = cfg.Cache
	}
	backend, err := buildCache(ctx, cacheSel)
	if err != nil {
		return fmt.Errorf("opening cache: %w", err)
	}
	defer backend.Close()

	runner := pipeline.NewRunner(render.NewRemoteRenderer(rendererURL), backend, nil, logger)

	prog := newProgress(logger)
	spin := newSpinnerWithContext(ctx, "Fitting chart...")
	spin.Start()

	result, err := runner.Execute(ctx, pipeline.Options{
		Spec:    specJSON,
		Width:   opts.width,
		Height:  opts.height,
		Padding: padding,
		Refresh: opts.refresh,
		Logger:  logger,
	})
	spin.Stop()
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Fitted chart in %d attempt(s)", result.Attempts))
	if !result.Fitted && !result.CacheInfo.ArtifactHit {
		printWarning("content still overflows after %d attempts; output is best effort", result.Attempts)
	}

	out := outputPath(input, opts)
	if out == "-" {
		_, err := os.Stdout.Write(result.SVG)
		return err
	}
	if err := os.WriteFile(out, result.SVG, 0o644); err != nil {
		return err
	}

	printSuccess("Wrote fitted SVG")
	printFile(out)
	printFitStats(result.Attempts, result.Fitted, result.CacheInfo.ArtifactHit)
	return nil
}
