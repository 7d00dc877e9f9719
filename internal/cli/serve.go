package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/chartfit/internal/server"
	"github.com/matzehuels/chartfit/pkg/pipeline"
	"github.com/matzehuels/chartfit/pkg/render"
)

// newServeCmd creates the serve command running the fitting pipeline as an
// HTTP service.
func newServeCmd() *cobra.Command {
	var (
		addr        string
		rendererURL string
		cacheSel    string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the fitting pipeline as an HTTP service",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), addr, rendererURL, cacheSel)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&rendererURL, "renderer", "", "render service URL (overrides config)")
	cmd.Flags().StringVar(&cacheSel, "cache", "", "cache backend: directory, redis:// URL, or off")

	return cmd
}

func runServe(ctx context.Context, addr, rendererURL, cacheSel string) error {
	logger := loggerFromContext(ctx)

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("reading config: %w", err)
	}
	if rendererURL == "" {
		rendererURL = cfg.RendererURL
	}
	if rendererURL == "" {
		return fmt.Errorf("no render service configured: set --renderer or renderer_url in the config file")
	}
	if cacheSel == "" {
		cacheSel = cfg.Cache
	}
	backend, err := buildCache(ctx, cacheSel)
	if err != nil {
		return fmt.Errorf("opening cache: %w", err)
	}
	defer backend.Close()

	runner := pipeline.NewRunner(render.NewRemoteRenderer(rendererURL), backend, nil, logger)
	srv := &http.Server{
		Addr:              addr,
		Handler:           server.New(runner, logger).Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
