package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/scopeviz/scopetree/internal/server"
	"github.com/scopeviz/scopetree/pkg/cache"
	"github.com/scopeviz/scopetree/pkg/config"
	apperrors "github.com/scopeviz/scopetree/pkg/errors"
	"github.com/scopeviz/scopetree/pkg/pipeline"
	"github.com/scopeviz/scopetree/pkg/store"
)

// serveCommand creates the serve command for running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		configPath string
		addr       string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the layout HTTP API",
		Long: `Run the layout HTTP API.

The server accepts object-graph snapshots over HTTP and serves computed
layouts. Snapshots are held in memory by default; configure a MongoDB URI
to persist them. Layout results are cached with the configured backend.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}
			return c.runServe(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "scopetree.toml", "path to config file")
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config)")

	return cmd
}

// runServe wires the store, cache, and runner and serves until cancelled.
func (c *CLI) runServe(ctx context.Context, cfg config.Config) error {
	st, err := newStore(ctx, cfg.Server.Mongo)
	if err != nil {
		return fmt.Errorf("initialize store: %w", err)
	}
	defer st.Close(context.Background())

	ch, err := newConfiguredCache(ctx, cfg.Cache)
	if err != nil {
		return fmt.Errorf("initialize cache: %w", err)
	}

	runner := pipeline.NewRunner(ch, nil, c.Logger)
	runner.CacheTTL = cfg.Cache.TTL.Duration()
	defer runner.Close()

	c.Logger.Info("starting server",
		"addr", cfg.Server.Addr,
		"cache", cfg.Cache.Backend,
		"store", storeKind(cfg.Server.Mongo))

	srv := server.New(cfg.Server.Addr, st, runner, c.Logger)
	return srv.ListenAndServe(ctx)
}

// newStore selects the snapshot store. An empty Mongo URI means in-memory.
func newStore(ctx context.Context, cfg config.Mongo) (store.Store, error) {
	if cfg.URI == "" {
		return store.NewMemoryStore(), nil
	}
	return store.NewMongoStore(ctx, cfg.URI, cfg.Database, cfg.Collection)
}

// newConfiguredCache builds the cache backend named in the config.
func newConfiguredCache(ctx context.Context, cfg config.Cache) (cache.Cache, error) {
	switch cfg.Backend {
	case "none":
		return cache.NewNullCache(), nil
	case "redis":
		return cache.NewRedisCache(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	case "file", "":
		dir := cfg.Dir
		if dir == "" {
			var err error
			dir, err = cacheDir()
			if err != nil {
				return nil, err
			}
		}
		return cache.NewFileCache(dir)
	default:
		return nil, apperrors.New(apperrors.ErrCodeUnsupported, "unknown cache backend %q", cfg.Backend)
	}
}

func storeKind(cfg config.Mongo) string {
	if cfg.URI == "" {
		return "memory"
	}
	return "mongo"
}
