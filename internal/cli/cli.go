// Package cli implements the cyclegraph command-line interface.
//
// The CLI analyzes a code base for circular imports between its
// components, prints the cycles and exports the dependency graph. It is
// built with cobra and logs through charmbracelet/log.
//
// # Commands
//
//   - analyze: build the graph, mark cycles and optionally export it
//   - cycles: list the cycles of a code base or a saved graph
//   - render: render a saved JSON graph to DOT, SVG, PNG, JPG or PDF
//   - serve: serve the graph over HTTP, optionally re-analyzing on change
//   - cache: manage the import cache
//
// # Configuration
//
// Commands read cyclegraph.toml from the analyzed directory, or the file
// given with --config. Flags that are set explicitly override the file.
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/cyclegraph/pkg/buildinfo"
	"github.com/matzehuels/cyclegraph/pkg/cache"
	"github.com/matzehuels/cyclegraph/pkg/config"
	"github.com/matzehuels/cyclegraph/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "cyclegraph"

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
}

// New creates a new CLI instance writing logs to w.
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
		Short:        "cyclegraph finds circular imports between components",
		Long:         `cyclegraph builds the import graph between the components of a Python or Go code base, marks every import cycle and exports the result as DOT, JSON or an image.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.analyzeCommand())
	root.AddCommand(c.cyclesCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner backed by the configured cache.
func newRunner(ctx context.Context, cfg config.Cache, logger *log.Logger) *pipeline.Runner {
	return pipeline.NewRunner(newCache(ctx, cfg, logger), logger)
}

// newCache opens the configured cache backend. Backends that cannot be
// opened disable caching instead of failing the run.
func newCache(ctx context.Context, cfg config.Cache, logger *log.Logger) cache.Cache {
	switch cfg.Backend {
	case "none":
		return cache.NewNullCache()
	case "redis":
		rc, err := cache.NewRedisCache(ctx, cache.RedisConfig{Addr: cfg.RedisAddr})
		if err != nil {
			logger.Warn("Redis unavailable, caching disabled", "addr", cfg.RedisAddr, "err", err)
			return cache.NewNullCache()
		}
		return cache.NewScoped(rc, cfg.Prefix)
	default:
		dir, err := fileCacheDir(cfg)
		if err != nil {
			logger.Warn("No cache directory, caching disabled", "err", err)
			return cache.NewNullCache()
		}
		fc, err := cache.NewFileCache(dir)
		if err != nil {
			logger.Warn("Cannot open cache directory, caching disabled", "dir", dir, "err", err)
			return cache.NewNullCache()
		}
		return fc
	}
}

// analyze runs the pipeline for cfg, or on the demo graph.
func analyze(ctx context.Context, runner *pipeline.Runner, cfg *config.Config, demo bool) (*pipeline.Result, error) {
	opts := pipeline.OptionsFromConfig(cfg)
	if demo {
		return runner.Demo(ctx, opts.Filter)
	}
	return runner.Analyze(ctx, opts)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/cyclegraph/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// fileCacheDir returns the configured cache directory or the XDG default.
func fileCacheDir(cfg config.Cache) (string, error) {
	if cfg.Dir != "" {
		return cfg.Dir, nil
	}
	return cacheDir()
}
