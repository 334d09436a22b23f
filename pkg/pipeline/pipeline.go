// Package pipeline builds layer graphs from TOML recipes and runs them
// to completion.
//
// This package implements the complete parse, compute, encode flow shared
// by the CLI commands. A recipe declares an ordered list of layers; the
// pipeline wires them into a graph, computes every layer in declaration
// order, and encodes the final layer's output image.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, logger)
//	opts := pipeline.Options{
//	    RecipePath: "recipe.toml",
//	    Format:     pipeline.FormatPNG,
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	png := result.Artifact
//
// Build a graph without running it:
//
//	g, err := pipeline.ParseRecipe(recipeBytes)
package pipeline

import (
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/mkoenig/pixelgraph/pkg/errors"
	"github.com/mkoenig/pixelgraph/pkg/graph"
)

// Format constants for encoded outputs.
const (
	FormatPNG  = "png"
	FormatJPEG = "jpeg"
	FormatGIF  = "gif"
	FormatTIFF = "tiff"
	FormatBMP  = "bmp"
)

// DefaultFormat is used when Options.Format is empty.
const DefaultFormat = FormatPNG

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatPNG:  true,
	FormatJPEG: true,
	FormatGIF:  true,
	FormatTIFF: true,
	FormatBMP:  true,
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: png, jpeg, gif, tiff, bmp)", format)
	}
	return nil
}

// Options contains all configuration for a pipeline run.
type Options struct {
	// RecipePath is the path to a TOML recipe file. Ignored when Recipe
	// is set.
	RecipePath string

	// Recipe is the raw recipe content. Takes precedence over RecipePath.
	Recipe []byte

	// Format selects the output encoding. Defaults to DefaultFormat.
	Format string

	// Refresh bypasses the artifact cache and recomputes from scratch.
	Refresh bool

	// Logger receives progress output. Defaults to a discarding logger.
	Logger *log.Logger

	validated bool
}

// ValidateAndSetDefaults checks required fields and applies defaults.
// Calling it more than once has no additional effect.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if len(o.Recipe) == 0 && o.RecipePath == "" {
		return errors.New(errors.ErrCodeInvalidRecipe, "recipe or recipe path is required")
	}
	if o.Format == "" {
		o.Format = DefaultFormat
	}
	if err := ValidateFormat(o.Format); err != nil {
		return err
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// recipeBytes returns the raw recipe content, reading RecipePath if no
// inline content was provided.
func (o *Options) recipeBytes() ([]byte, error) {
	if len(o.Recipe) > 0 {
		return o.Recipe, nil
	}
	data, err := os.ReadFile(o.RecipePath)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "read recipe %s", o.RecipePath)
	}
	return data, nil
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// RunID uniquely identifies this execution.
	RunID string

	// Graph is the computed layer graph. Nil when the artifact came
	// straight from the cache.
	Graph *graph.Graph

	// Artifact is the encoded final image.
	Artifact []byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks whether the artifact came from the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount   int
	EdgeCount   int
	BuildTime   time.Duration
	ComputeTime time.Duration
	EncodeTime  time.Duration
}

// CacheInfo tracks cache hits for a pipeline run.
type CacheInfo struct {
	ArtifactHit bool
}
