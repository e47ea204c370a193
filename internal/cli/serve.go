package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/coursegraph/coursegraph/pkg/api"
	"github.com/coursegraph/coursegraph/pkg/cache"
	"github.com/coursegraph/coursegraph/pkg/pipeline"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var addr, redisURL string
	var noCache bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		Long: `Serve starts an HTTP server exposing the catalog pipeline:

  POST /v1/validate  - build a catalog and report problems
  POST /v1/order     - prerequisite-respecting course order
  POST /v1/eligible  - courses a student may take next
  GET  /healthz      - liveness probe
  GET  /version      - build information

With --redis-url (or cache.redis_url in the config) results are cached
in Redis so multiple instances share them; otherwise the file cache is
used.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = c.Config.Server.Addr
			}
			if redisURL == "" {
				redisURL = c.Config.Cache.RedisURL
			}

			backend, err := c.serveCache(cmd.Context(), noCache, redisURL)
			if err != nil {
				return err
			}
			runner := pipeline.NewRunner(backend, nil, c.Logger)
			defer runner.Close()

			server := api.NewServer(runner, c.Logger)
			return server.ListenAndServe(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, then :8080)")
	cmd.Flags().StringVar(&redisURL, "redis-url", "", "Redis cache backend (e.g. redis://localhost:6379/0)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable result caching")

	return cmd
}

// serveCache picks the cache backend for the server: null, Redis, or file.
func (c *CLI) serveCache(ctx context.Context, noCache bool, redisURL string) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	if redisURL != "" {
		return cache.NewRedisCache(ctx, redisURL)
	}
	return c.newCache(false)
}
