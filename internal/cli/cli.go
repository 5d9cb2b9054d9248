// Package cli implements the chartkit command-line interface.
package cli

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/chartkit/pkg/buildinfo"
	"github.com/matzehuels/chartkit/pkg/cache"
	"github.com/matzehuels/chartkit/pkg/config"
	"github.com/matzehuels/chartkit/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "chartkit"

	// defaultJobs is the batch compile concurrency when --jobs is unset.
	defaultJobs = 4
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// ConfigPath is the TOML file read by publish and serve. Empty means
	// defaults plus environment.
	ConfigPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "chartkit compiles declarative chart specs to SVG",
		Long:         `chartkit turns JSON bar, line and pie chart specifications into standalone SVG documents, converts them to PNG or PDF and publishes them behind signed URLs.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVarP(&c.ConfigPath, "config", "c", "", "config file (TOML)")

	root.AddCommand(c.compileCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.publishCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// loadConfig reads the configuration selected by --config.
func (c *CLI) loadConfig() (config.Config, error) {
	return config.Load(c.ConfigPath)
}

// newRunner creates a pipeline runner for local compilation. It caches to
// the XDG cache directory and has no artifact store.
func (c *CLI) newRunner(noCache bool) *pipeline.Runner {
	return pipeline.NewRunner(c.newCache(noCache), nil, nil, c.Logger)
}

// newStoreRunner creates a runner backed by the configured cache and store.
func (c *CLI) newStoreRunner(ctx context.Context, cfg config.Config) (*pipeline.Runner, error) {
	st, err := cfg.OpenStore(ctx)
	if err != nil {
		return nil, err
	}
	ch, err := cfg.OpenCache(ctx)
	if err != nil {
		c.Logger.Warn("cache unavailable, continuing without", "backend", cfg.Cache.Backend, "err", err)
		ch = cache.NewNullCache()
	}
	r := pipeline.NewRunner(ch, cfg.Keyer(), st, c.Logger)
	r.SignTTL = cfg.Store.TTL
	return r, nil
}

func (c *CLI) newCache(noCache bool) cache.Cache {
	if noCache {
		return cache.NewNullCache()
	}
	dir, err := config.DefaultCacheDir()
	if err != nil {
		return cache.NewNullCache()
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		c.Logger.Debug("file cache disabled", "dir", dir, "err", err)
		return cache.NewNullCache()
	}
	return fc
}
