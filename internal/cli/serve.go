package cli

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/keytrace/swipepath/pkg/cache"
	"github.com/keytrace/swipepath/pkg/pipeline"
	"github.com/keytrace/swipepath/pkg/server"
)

// redisKeyPrefix namespaces swipepath entries in a shared Redis.
const redisKeyPrefix = appName + ":"

// serveCommand creates the serve command for the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr      string
		redisAddr string
		noCache   bool
	)
	cfg := server.Config{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the path API over HTTP",
		Long: `Serve the path API over HTTP.

Endpoints:
  GET  /healthz
  GET  /v1/layout
  POST /v1/paths        {"words": [...], "density": 0.05} or {"count": 32}
  GET  /v1/endpoints?word=WORD

Calibrated grid layouts are cached in Redis when --redis (or
` + envRedisAddr + `) is set, otherwise in the local cache directory.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if redisAddr == "" {
				redisAddr = os.Getenv(envRedisAddr)
			}
			return c.runServe(cmd.Context(), addr, redisAddr, noCache, cfg)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", server.DefaultAddr, "listen address")
	cmd.Flags().StringVar(&redisAddr, "redis", "", "Redis address for the layout cache (env "+envRedisAddr+")")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the layout cache")
	cmd.Flags().StringVarP(&cfg.LayoutPath, "layout", "l", "", "layout file (.toml or .grid; default: built-in)")
	cmd.Flags().IntVarP(&cfg.Workers, "workers", "w", pipeline.DefaultWorkers, "words generated in parallel per request")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr, redisAddr string, noCache bool, cfg server.Config) error {
	runner, err := c.newServeRunner(ctx, redisAddr, noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	cfg.Logger = loggerFromContext(ctx)
	srv, err := server.New(ctx, runner, cfg)
	if err != nil {
		return err
	}

	printInfo("Serving layout %s on %s", StyleHighlight.Render(srv.Layout().Name()), StyleValue.Render(addr))
	return srv.ListenAndServe(ctx, addr)
}

// newServeRunner prefers Redis when configured and falls back to the local
// cache when Redis is unreachable.
func (c *CLI) newServeRunner(ctx context.Context, redisAddr string, noCache bool) (*pipeline.Runner, error) {
	if noCache || redisAddr == "" {
		return c.newRunner(noCache)
	}

	rc, err := cache.NewRedisCache(ctx, cache.RedisConfig{Addr: redisAddr})
	if err != nil {
		printWarning("Redis unavailable, using local cache: %v", err)
		return c.newRunner(false)
	}
	c.Logger.Info("using redis layout cache", "addr", redisAddr)
	keyer := cache.NewScopedKeyer(cache.NewDefaultKeyer(), redisKeyPrefix)
	return pipeline.NewRunner(rc, keyer, c.Logger), nil
}
