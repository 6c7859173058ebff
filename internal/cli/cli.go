package cli

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/looptrace/pkg/buildinfo"
	"github.com/matzehuels/looptrace/pkg/cache"
	"github.com/matzehuels/looptrace/pkg/config"
	"github.com/matzehuels/looptrace/pkg/errors"
	"github.com/matzehuels/looptrace/pkg/history"
	"github.com/matzehuels/looptrace/pkg/observability"
	"github.com/matzehuels/looptrace/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used in help text and completions.
const appName = "looptrace"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
//
// Config is loaded in the root command's PersistentPreRunE, so it is only
// populated once a command runs.
type CLI struct {
	Logger *log.Logger
	Config *config.Config

	stderr     io.Writer
	configPath string
	verbose    bool
	logFile    io.Closer
}

// New creates a new CLI instance with a default logger writing to w.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		stderr: w,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Looptrace traces the pipe loop in a tile grid",
		Long: `Looptrace reads a grid of pipe tiles, follows the single closed loop through
the start tile S, and reports the distance to the farthest loop tile and the
number of tiles the loop encloses.`,
		Version:           buildinfo.Version,
		SilenceUsage:      true,
		PersistentPreRunE: c.setup,
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return c.Close()
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default "+config.DefaultPath()+")")

	root.AddCommand(c.solveCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.viewCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.historyCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// setup loads the configuration and rebuilds the logger from it.
func (c *CLI) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	c.Config = cfg

	level, _ := log.ParseLevel(cfg.Log.Level)
	if c.verbose {
		level = log.DebugLevel
	}

	w := c.stderr
	if cfg.Log.File != "" {
		fw := newFileWriter(cfg.Log)
		c.logFile = fw
		w = io.MultiWriter(c.stderr, fw)
	}
	c.Logger = newLogger(w, level)

	if c.verbose {
		observability.NewLogHooks(c.Logger).Register()
	}

	cmd.SetContext(withLogger(cmd.Context(), c.Logger))
	c.Logger.Debug("loaded config", "path", c.configPath, "cache", cfg.Cache.Backend, "history", cfg.History.Backend)
	return nil
}

// Close releases the log file, if one was opened.
func (c *CLI) Close() error {
	if c.logFile == nil {
		return nil
	}
	err := c.logFile.Close()
	c.logFile = nil
	return err
}

// config returns the loaded configuration or the defaults when no command
// has run setup yet.
func (c *CLI) config() *config.Config {
	if c.Config == nil {
		c.Config = config.Default()
	}
	return c.Config
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use. The history store is only
// opened when withHistory is set.
func (c *CLI) newRunner(ctx context.Context, noCache, withHistory bool) (*pipeline.Runner, error) {
	ch, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}

	var store history.Store
	if withHistory {
		store, err = c.newStore(ctx)
		if err != nil {
			ch.Close()
			return nil, err
		}
	}

	var keyer cache.Keyer
	if prefix := c.config().Cache.Prefix; prefix != "" {
		keyer = cache.NewScopedKeyer(nil, prefix)
	}
	return pipeline.NewRunner(ch, keyer, store, c.Logger), nil
}

// newCache builds the configured cache backend.
func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	cfg := c.config().Cache
	if noCache {
		return cache.NewNullCache(), nil
	}
	switch cfg.Backend {
	case config.CacheRedis:
		rc, err := cache.NewRedisCache(ctx, cache.RedisOptions{URL: cfg.RedisURL})
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeNetwork, err, "connect to redis cache")
		}
		return rc, nil
	case config.CacheFile:
		if cfg.Dir == "" {
			return cache.NewNullCache(), nil
		}
		return cache.NewFileCache(cfg.Dir)
	default:
		return cache.NewNullCache(), nil
	}
}

// newStore opens the configured history store.
func (c *CLI) newStore(ctx context.Context) (history.Store, error) {
	return history.Open(ctx, c.config().HistoryOptions())
}

// solveOptions returns pipeline options carrying the configured TTL and the
// CLI logger.
func (c *CLI) solveOptions(formats ...string) pipeline.Options {
	return pipeline.Options{
		Formats:  formats,
		CacheTTL: c.config().CacheTTL(),
		Logger:   c.Logger,
	}
}
