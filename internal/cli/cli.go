// Package cli implements the pixelgraph command-line interface.
//
// This package provides commands for running TOML recipes through the
// layer pipeline, rendering graph structure diagrams, inspecting graphs
// interactively, and managing the artifact cache. The CLI is built using
// cobra and supports verbose logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - run: Execute a recipe and write the final image
//   - render: Draw the recipe's layer graph as SVG, PNG, or DOT
//   - inspect: Step through a recipe's layers interactively
//   - cache: Manage the artifact cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context to allow structured progress tracking.
//
// # Example
//
//	import "github.com/mkoenig/pixelgraph/internal/cli"
//
//	func main() {
//	    c := cli.New(os.Stderr, cli.LogInfo)
//	    if err := c.RootCommand().Execute(); err != nil {
//	        os.Exit(1)
//	    }
//	}
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/mkoenig/pixelgraph/pkg/buildinfo"
	"github.com/mkoenig/pixelgraph/pkg/cache"
	"github.com/mkoenig/pixelgraph/pkg/pipeline"
)

// appName is the application name used for directories and display.
const appName = "pixelgraph"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	noCache   bool
	redisAddr string
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
		Short:        "Pixelgraph runs image recipes through a layer graph",
		Long:         `Pixelgraph is a CLI tool for composing image transformations as a graph of typed layers, declared in TOML recipes and evaluated one layer at a time.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	// Commands read the logger back out with loggerFromContext, so hosts
	// embedding a subcommand get the same plumbing.
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		return nil
	}

	root.PersistentFlags().BoolVar(&c.noCache, "no-cache", false, "disable the artifact cache")
	root.PersistentFlags().StringVar(&c.redisAddr, "redis", "", "use a Redis artifact cache at this address")

	root.AddCommand(c.runCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context) (*pipeline.Runner, error) {
	backend, err := c.newCache(ctx)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(backend, c.Logger), nil
}

// newCache picks the cache backend from the persistent flags. Falls back
// to disabled caching when no cache directory can be determined.
func (c *CLI) newCache(ctx context.Context) (cache.Cache, error) {
	if c.noCache {
		return cache.NewNullCache(), nil
	}
	if c.redisAddr != "" {
		return cache.NewRedisCache(ctx, cache.RedisConfig{Addr: c.redisAddr})
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// cacheDir returns the cache directory using XDG standard (~/.cache/pixelgraph/).
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

// outputPath derives the output file path from the --output flag and the
// recipe path. When output is empty, the recipe's extension is replaced
// with the format's.
func outputPath(output, recipe, format string) string {
	if output != "" {
		return output
	}
	base := recipe[:len(recipe)-len(filepath.Ext(recipe))]
	return base + "." + format
}
