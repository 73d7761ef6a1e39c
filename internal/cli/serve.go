package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/gridlayout/internal/server"
	"github.com/matzehuels/gridlayout/pkg/cache"
	errs "github.com/matzehuels/gridlayout/pkg/errors"
	"github.com/matzehuels/gridlayout/pkg/pipeline"
	"github.com/matzehuels/gridlayout/pkg/store"
)

// Backend names accepted by serve.
const (
	backendNone   = "none"
	backendMemory = "memory"
	backendFile   = "file"
	backendRedis  = "redis"
	backendMongo  = "mongo"
)

type serveOpts struct {
	addr        string
	storeKind   string
	mongoURI    string
	mongoDB     string
	cacheKind   string
	redisURL    string
	cachePrefix string
	maxNodes    int
	maxCells    int
	timeout     time.Duration
}

// serveCommand creates the serve command for the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	opts := serveOpts{
		storeKind:   backendMemory,
		cacheKind:   backendFile,
		mongoURI:    os.Getenv("GRIDLAYOUT_MONGO_URI"),
		redisURL:    os.Getenv("GRIDLAYOUT_REDIS_URL"),
		cachePrefix: "api:v1:",
	}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the layout HTTP API",
		Long: `Serve the layout HTTP API.

Runs are kept in memory by default; use --store mongo to share history
between instances. Layouts and artifacts are cached on disk by default;
use --cache redis for a shared cache.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&opts.storeKind, "store", opts.storeKind, "run store: memory, mongo")
	cmd.Flags().StringVar(&opts.mongoURI, "mongo-uri", opts.mongoURI, "MongoDB URI (env GRIDLAYOUT_MONGO_URI)")
	cmd.Flags().StringVar(&opts.mongoDB, "mongo-db", appName, "MongoDB database")
	cmd.Flags().StringVar(&opts.cacheKind, "cache", opts.cacheKind, "cache backend: none, file, redis")
	cmd.Flags().StringVar(&opts.redisURL, "redis-url", opts.redisURL, "Redis URL (env GRIDLAYOUT_REDIS_URL)")
	cmd.Flags().StringVar(&opts.cachePrefix, "cache-prefix", opts.cachePrefix, "prefix for cache keys")
	cmd.Flags().IntVar(&opts.maxNodes, "max-nodes", server.DefaultMaxNodes, "largest graph accepted")
	cmd.Flags().IntVar(&opts.maxCells, "max-cells", server.DefaultMaxCells, "largest grid (width x height) accepted")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", server.DefaultTimeout, "per-request layout timeout")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, opts serveOpts) error {
	backend, err := openCache(ctx, opts)
	if err != nil {
		return err
	}
	st, err := openStore(ctx, opts)
	if err != nil {
		backend.Close()
		return err
	}

	runner := pipeline.NewRunner(backend, cache.NewScopedKeyer(nil, opts.cachePrefix), c.Logger)
	runner.Store = st
	defer runner.Close()

	c.Logger.Info("starting server", "store", opts.storeKind, "cache", opts.cacheKind)
	srv := server.New(runner, server.Config{MaxNodes: opts.maxNodes, MaxCells: opts.maxCells, Timeout: opts.timeout}, c.Logger)
	return srv.ListenAndServe(ctx, opts.addr)
}

func openCache(ctx context.Context, opts serveOpts) (cache.Cache, error) {
	switch opts.cacheKind {
	case backendNone:
		return cache.NewNullCache(), nil
	case backendFile:
		dir, err := cache.DefaultDir()
		if err != nil {
			return nil, err
		}
		return cache.NewFileCache(dir)
	case backendRedis:
		if opts.redisURL == "" {
			return nil, errs.New(errs.ErrCodeInvalidConfig, "--redis-url is required for the redis cache")
		}
		return cache.NewRedisCache(ctx, opts.redisURL)
	default:
		return nil, errs.New(errs.ErrCodeInvalidConfig, "unknown cache backend %q", opts.cacheKind)
	}
}

func openStore(ctx context.Context, opts serveOpts) (store.Store, error) {
	switch opts.storeKind {
	case backendMemory:
		return store.NewMemoryStore(), nil
	case backendMongo:
		if opts.mongoURI == "" {
			return nil, errs.New(errs.ErrCodeInvalidConfig, "--mongo-uri is required for the mongo store")
		}
		st, err := store.NewMongoStore(ctx, opts.mongoURI, opts.mongoDB)
		if err != nil {
			return nil, fmt.Errorf("connect mongo: %w", err)
		}
		return st, nil
	default:
		return nil, errs.New(errs.ErrCodeInvalidConfig, "unknown store backend %q", opts.storeKind)
	}
}
