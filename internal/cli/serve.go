package cli

import (
	"github.com/spf13/cobra"

	"github.com/boardwalk-eda/boardwalk/internal/server"
	"github.com/boardwalk-eda/boardwalk/pkg/cache"
	"github.com/boardwalk-eda/boardwalk/pkg/pipeline"
	"github.com/boardwalk-eda/boardwalk/pkg/store"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr    string // listen address
	redis   string // redis URL for the shared cache; file cache when empty
	mongo   string // mongodb URI for the run store; in-memory when empty
	mongoDB string // mongodb database name
	noCache bool   // disable caching entirely
}

// serveCommand creates the serve command for running the HTTP placement API.
//
// By default the server uses the local file cache and an in-memory run store,
// which is enough for a single instance. For shared deployments --redis and
// --mongo move the cache and run history into external services.
func (c *CLI) serveCommand() *cobra.Command {
	opts := serveOpts{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP placement API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd, &opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&opts.redis, "redis", "", "redis URL for a shared cache (e.g. redis://localhost:6379/0)")
	cmd.Flags().StringVar(&opts.mongo, "mongo", "", "mongodb URI for persistent run history")
	cmd.Flags().StringVar(&opts.mongoDB, "mongo-db", "boardwalk", "mongodb database name")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the cache entirely")

	return cmd
}

// runServe wires the cache, store, and runner together and blocks until the
// command context is cancelled.
func (c *CLI) runServe(cmd *cobra.Command, opts *serveOpts) error {
	ctx := cmd.Context()

	var (
		ch  cache.Cache
		err error
	)
	switch {
	case opts.noCache:
		ch = cache.NewNullCache()
	case opts.redis != "":
		ch, err = cache.NewRedisCacheFromURL(ctx, opts.redis)
		if err != nil {
			return err
		}
		c.Logger.Info("Using redis cache", "url", opts.redis)
	default:
		ch, err = newCache(false)
		if err != nil {
			return err
		}
	}

	var st store.Store
	if opts.mongo != "" {
		st, err = store.NewMongoStore(ctx, opts.mongo, opts.mongoDB)
		if err != nil {
			return err
		}
		c.Logger.Info("Using mongodb run store", "database", opts.mongoDB)
	} else {
		st = store.NewMemoryStore()
	}
	defer st.Close(ctx)

	runner := pipeline.NewRunner(ch, nil, c.Logger)
	defer runner.Close()

	srv := server.New(runner, st, c.Logger)
	c.Logger.Info("Starting placement API", "addr", opts.addr)
	return srv.ListenAndServe(ctx, opts.addr)
}
