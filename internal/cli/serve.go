package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/scanform/scanform/internal/server"
	"github.com/scanform/scanform/internal/store"
	"github.com/scanform/scanform/pkg/cache"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr       string // listen address
	configPath string // TOML geometry overrides

	storeBackend    string // "memory" or "mongo"
	mongoURI        string
	mongoDatabase   string
	mongoCollection string

	cacheBackend  string // "none", "file" or "redis"
	redisAddr     string
	redisPassword string
	redisDB       int
}

// newServeCmd creates the serve command for running the HTTP API.
func newServeCmd() *cobra.Command {
	opts := serveOpts{
		addr:            ":8080",
		storeBackend:    "memory",
		mongoURI:        "mongodb://localhost:27017",
		mongoDatabase:   "scanform",
		mongoCollection: "products",
		cacheBackend:    "file",
		redisAddr:       "localhost:6379",
	}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP generation and catalog server",
		Long: `Serve exposes document generation and the product catalog over HTTP.
POST a sheet definition to /documents to receive the rendered PDF, and use
the /products routes to manage the catalog and post decoded counts back.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), &opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", opts.addr, "listen address")
	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "TOML file with geometry overrides")

	cmd.Flags().StringVar(&opts.storeBackend, "store", opts.storeBackend, "catalog backend: memory, mongo")
	cmd.Flags().StringVar(&opts.mongoURI, "mongo-uri", opts.mongoURI, "MongoDB connection URI")
	cmd.Flags().StringVar(&opts.mongoDatabase, "mongo-database", opts.mongoDatabase, "MongoDB database name")
	cmd.Flags().StringVar(&opts.mongoCollection, "mongo-collection", opts.mongoCollection, "MongoDB collection name")

	cmd.Flags().StringVar(&opts.cacheBackend, "cache", opts.cacheBackend, "artifact cache backend: none, file, redis")
	cmd.Flags().StringVar(&opts.redisAddr, "redis-addr", opts.redisAddr, "Redis address")
	cmd.Flags().StringVar(&opts.redisPassword, "redis-password", opts.redisPassword, "Redis password")
	cmd.Flags().IntVar(&opts.redisDB, "redis-db", opts.redisDB, "Redis database number")

	return cmd
}

// runServe wires the catalog and cache backends and runs the server until
// the context is cancelled.
func runServe(ctx context.Context, opts *serveOpts) error {
	logger := loggerFromContext(ctx)

	cfg, err := loadGeometry(opts.configPath)
	if err != nil {
		return err
	}

	catalog, err := openCatalog(ctx, opts)
	if err != nil {
		return err
	}
	defer catalog.Close(context.Background())
	logger.Info("catalog ready", "backend", opts.storeBackend)

	artifacts, err := openServeCache(opts)
	if err != nil {
		return err
	}
	if artifacts != nil {
		defer artifacts.Close()
		logger.Info("artifact cache ready", "backend", opts.cacheBackend)
	}

	srv := server.New(server.Options{
		Catalog: catalog,
		Cache:   artifacts,
		Config:  cfg,
		Logger:  logger,
	})
	return srv.ListenAndServe(ctx, opts.addr)
}

// openCatalog creates the catalog backend named by --store.
func openCatalog(ctx context.Context, opts *serveOpts) (store.Catalog, error) {
	switch opts.storeBackend {
	case "memory":
		return store.NewMemory(), nil
	case "mongo":
		return store.NewMongo(ctx, opts.mongoURI, opts.mongoDatabase, opts.mongoCollection)
	default:
		return nil, fmt.Errorf("unknown store backend: %s (must be 'memory' or 'mongo')", opts.storeBackend)
	}
}

// openServeCache creates the artifact cache backend named by --cache.
func openServeCache(opts *serveOpts) (cache.Cache, error) {
	switch opts.cacheBackend {
	case "none":
		return nil, nil
	case "file":
		dir, err := cacheDir()
		if err != nil {
			return nil, err
		}
		return cache.NewFileCache(dir)
	case "redis":
		return cache.NewRedisCache(opts.redisAddr, opts.redisPassword, opts.redisDB)
	default:
		return nil, fmt.Errorf("unknown cache backend: %s (must be 'none', 'file' or 'redis')", opts.cacheBackend)
	}
}
