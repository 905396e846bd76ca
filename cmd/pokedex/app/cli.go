package app

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kailas-cloud/pokedex"
	"github.com/kailas-cloud/pokedex/internal/config"
	logpkg "github.com/kailas-cloud/pokedex/internal/logger"
	"github.com/kailas-cloud/pokedex/internal/transport/graphql"
)

// App is the pokedex command-line application.
type App struct {
	version string
	commit  string
	date    string

	rootCmd *cobra.Command

	// Persistent flags
	endpoint      string
	timeout       time.Duration
	cacheDriver   string
	cacheAddr     string
	cachePassword string
	verbose       bool
}

// NewApp creates the CLI application.
func NewApp(version, commit, date string) *App {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
	}

	app.rootCmd = &cobra.Command{
		Use:   "pokedex",
		Short: "Browse the first-generation Pokémon roster",
		Long: `pokedex queries the first-generation Pokémon roster from the public GraphQL API.

Examples:
  pokedex list --type Fire --height tall       # Fire types taller than 2 m
  pokedex list --from 25 --to 50 --sort desc   # Ordinals 50 down to 25
  pokedex show UG9rZW1vbjowMDE=                # Detail view with stat gauges
  pokedex dashboard --index 5                  # Radar profile of the 6th entry
  pokedex serve                                # Run the HTTP API (config/<ENV>.yaml)`,
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	app.setupFlags()
	app.setupCommands()

	return app
}

// Execute runs the CLI application.
func (a *App) Execute() error {
	return a.rootCmd.Execute()
}

// SetArgs overrides os.Args (tests).
func (a *App) SetArgs(args []string) {
	a.rootCmd.SetArgs(args)
}

// SetOutput redirects stdout and stderr of every command (tests).
func (a *App) SetOutput(w io.Writer) {
	a.rootCmd.SetOut(w)
	a.rootCmd.SetErr(w)
}

func (a *App) setupFlags() {
	flags := a.rootCmd.PersistentFlags()

	flags.StringVar(&a.endpoint, "endpoint", graphql.DefaultEndpoint, "GraphQL endpoint of the roster source")
	flags.DurationVar(&a.timeout, "timeout", 10*time.Second, "Timeout of each upstream request")
	flags.StringVar(&a.cacheDriver, "cache", config.CacheMemory, "Roster cache: memory, redis or valkey")
	flags.StringVar(&a.cacheAddr, "cache-addr", "localhost:6379", "Cache server address (redis/valkey)")
	flags.StringVar(&a.cachePassword, "cache-password", "", "Cache server password (redis/valkey)")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "Log upstream and cache activity to stderr")
}

func (a *App) setupCommands() {
	a.rootCmd.AddCommand(a.createListCommand())
	a.rootCmd.AddCommand(a.createShowCommand())
	a.rootCmd.AddCommand(a.createDashboardCommand())
	a.rootCmd.AddCommand(a.createFacetsCommand())
	a.rootCmd.AddCommand(a.createServeCommand())
	a.rootCmd.AddCommand(a.createVersionCommand())
}

// newClient builds an SDK client from the persistent flags.
func (a *App) newClient(ctx context.Context) (*pokedex.Client, *zap.Logger, error) {
	logger := logpkg.NewCLI(a.verbose)

	opts := []pokedex.Option{
		pokedex.WithEndpoint(a.endpoint),
		pokedex.WithTimeout(a.timeout),
		pokedex.WithLogger(logger),
	}
	switch a.cacheDriver {
	case config.CacheRedis:
		opts = append(opts, pokedex.WithRedis(a.cacheAddr, a.cachePassword))
	case config.CacheValkey:
		opts = append(opts, pokedex.WithValkey(a.cacheAddr, a.cachePassword))
	case config.CacheMemory, config.CacheNone, "":
	default:
		return nil, nil, fmt.Errorf("unknown cache %q (want memory, redis or valkey)", a.cacheDriver)
	}

	client, err := pokedex.New(ctx, opts...)
	if err != nil {
		return nil, nil, err //nolint:wrapcheck // SDK errors carry their own prefix
	}
	return client, logger, nil
}
