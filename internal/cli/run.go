package cli

import (
	"context"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/mkoenig/pixelgraph/pkg/errors"
	"github.com/mkoenig/pixelgraph/pkg/observability"
	"github.com/mkoenig/pixelgraph/pkg/pipeline"
)

// runOpts holds the command-line flags for the run command.
type runOpts struct {
	output  string // output file path
	format  string // output format: png, jpeg, gif, tiff, bmp
	refresh bool   // bypass the artifact cache
}

// runCommand creates the run command that executes a recipe end to end.
func (c *CLI) runCommand() *cobra.Command {
	opts := runOpts{format: pipeline.DefaultFormat}

	cmd := &cobra.Command{
		Use:   "run [recipe.toml]",
		Short: "Execute a recipe and write the final image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRecipe(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: recipe name with format extension)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: png (default), jpeg, gif, tiff, bmp")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "recompute even if a cached artifact exists")

	return cmd
}

func (c *CLI) runRecipe(ctx context.Context, recipePath string, opts *runOpts) error {
	runner, err := c.newRunner(ctx)
	if err != nil {
		return err
	}
	defer runner.Close()

	logger := loggerFromContext(ctx)
	observability.SetGraphHooks(&logGraphHooks{logger: logger})
	observability.SetCacheHooks(&logCacheHooks{logger: logger})

	p := newProgress(logger)
	result, err := runner.Execute(ctx, pipeline.Options{
		RecipePath: recipePath,
		Format:     opts.format,
		Refresh:    opts.refresh,
		Logger:     logger,
	})
	if err != nil {
		printError("%s", errors.UserMessage(err))
		return err
	}
	p.done("Pipeline finished")

	out := outputPath(opts.output, recipePath, opts.format)
	if err := os.WriteFile(out, result.Artifact, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write %s", out)
	}

	printSuccess("Wrote %s artifact", opts.format)
	printFile(out)
	printStats(result.Stats.NodeCount, result.Stats.EdgeCount, result.CacheInfo.ArtifactHit)
	return nil
}

// logGraphHooks forwards per-layer compute events to the CLI logger at
// debug level.
type logGraphHooks struct {
	logger *log.Logger
}

func (h *logGraphHooks) OnComputeStart(_ context.Context, index int, kind string) {
	h.logger.Debug("compute layer", "index", index, "kind", kind)
}

func (h *logGraphHooks) OnComputeComplete(_ context.Context, index int, kind string, d time.Duration, err error) {
	if err != nil {
		h.logger.Error("layer failed", "index", index, "kind", kind, "err", err)
		return
	}
	h.logger.Debug("layer done", "index", index, "kind", kind, "duration", d.Round(time.Microsecond))
}

func (h *logGraphHooks) OnRunComplete(_ context.Context, runID string, layers int, d time.Duration, err error) {
	if err != nil {
		h.logger.Error("run failed", "run_id", runID, "err", err)
		return
	}
	h.logger.Debug("run done", "run_id", runID, "layers", layers, "duration", d.Round(time.Millisecond))
}

// logCacheHooks forwards cache events to the CLI logger at debug level.
type logCacheHooks struct {
	logger *log.Logger
}

func (h *logCacheHooks) OnCacheHit(_ context.Context, key string) {
	h.logger.Debug("cache hit", "key", key)
}

func (h *logCacheHooks) OnCacheMiss(_ context.Context, key string) {
	h.logger.Debug("cache miss", "key", key)
}

func (h *logCacheHooks) OnCacheSet(_ context.Context, key string, size int) {
	h.logger.Debug("cache set", "key", key, "bytes", size)
}
