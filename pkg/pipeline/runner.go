package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/mkoenig/pixelgraph/pkg/cache"
	"github.com/mkoenig/pixelgraph/pkg/codec"
	"github.com/mkoenig/pixelgraph/pkg/errors"
	"github.com/mkoenig/pixelgraph/pkg/graph"
	"github.com/mkoenig/pixelgraph/pkg/layer"
	"github.com/mkoenig/pixelgraph/pkg/observability"
)

// Runner encapsulates pipeline execution with artifact caching.
//
// The Runner is stateless except for the cache and logger. Multiple
// goroutines can safely use the same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache.
// If c is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Logger: logger}
}

// Execute runs the complete parse, compute, encode pipeline with caching.
// The final layer declared in the recipe provides the output image.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	runStart := time.Now()
	result := &Result{RunID: uuid.NewString()}

	data, err := opts.recipeBytes()
	if err != nil {
		return nil, err
	}

	// Recipes are deterministic, so the encoded output can be served
	// straight from the cache when the same recipe ran before.
	artifactKey := cache.ArtifactKey(data, opts.Format)
	if !opts.Refresh {
		if cached, hit, err := r.Cache.Get(ctx, artifactKey); err == nil && hit {
			observability.Cache().OnCacheHit(ctx, artifactKey)
			result.Artifact = cached
			result.CacheInfo.ArtifactHit = true
			opts.Logger.Info("artifact cache hit", "run_id", result.RunID, "format", opts.Format)
			return result, nil
		}
		observability.Cache().OnCacheMiss(ctx, artifactKey)
	}

	// Stage 1: Build
	buildStart := time.Now()
	g, err := ParseRecipe(data)
	if err != nil {
		return nil, err
	}
	result.Graph = g
	result.Stats.BuildTime = time.Since(buildStart)
	result.Stats.NodeCount = g.Len()
	for i := 0; i < g.Len(); i++ {
		result.Stats.EdgeCount += len(g.Parents(i))
	}

	opts.Logger.Info("built graph",
		"run_id", result.RunID,
		"nodes", result.Stats.NodeCount,
		"edges", result.Stats.EdgeCount,
		"duration", result.Stats.BuildTime)

	// Stage 2: Compute
	computeStart := time.Now()
	if err := r.Compute(ctx, g); err != nil {
		observability.Graph().OnRunComplete(ctx, result.RunID, g.Len(), time.Since(runStart), err)
		return nil, err
	}
	result.Stats.ComputeTime = time.Since(computeStart)

	opts.Logger.Info("computed layers",
		"run_id", result.RunID,
		"generation", g.Generation(),
		"duration", result.Stats.ComputeTime)

	// Stage 3: Encode
	encodeStart := time.Now()
	out, err := g.Output(g.Len() - 1)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "final output")
	}
	artifact, err := codec.Encode(out, opts.Format)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeUnsupported, err, "encode artifact")
	}
	result.Artifact = artifact
	result.Stats.EncodeTime = time.Since(encodeStart)

	if err := r.Cache.Set(ctx, artifactKey, artifact, cache.DefaultTTL); err == nil {
		observability.Cache().OnCacheSet(ctx, artifactKey, len(artifact))
	}

	opts.Logger.Info("encoded artifact",
		"run_id", result.RunID,
		"format", opts.Format,
		"bytes", len(artifact),
		"duration", result.Stats.EncodeTime)

	observability.Graph().OnRunComplete(ctx, result.RunID, g.Len(), time.Since(runStart), nil)
	return result, nil
}

// Compute runs every layer of a graph in index order. Recipes declare
// layers after their inputs, so index order is a valid evaluation order.
func (r *Runner) Compute(ctx context.Context, g *graph.Graph) error {
	hooks := observability.Graph()
	for idx := 0; idx < g.Len(); idx++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		kind := ""
		if l, ok := g.Layer(idx); ok {
			if k, ok := l.(layer.Kinder); ok {
				kind = k.Kind()
			}
		}

		start := time.Now()
		hooks.OnComputeStart(ctx, idx, kind)
		err := g.ComputeLayer(idx)
		hooks.OnComputeComplete(ctx, idx, kind, time.Since(start), err)
		if err != nil {
			return err
		}
	}
	return nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
