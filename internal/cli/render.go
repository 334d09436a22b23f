package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mkoenig/pixelgraph/pkg/pipeline"
	"github.com/mkoenig/pixelgraph/pkg/render"
)

// Diagram formats for the render command.
const (
	diagramSVG = "svg"
	diagramPNG = "png"
	diagramDOT = "dot"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output   string // output file path
	format   string // diagram format: svg, png, dot
	detailed bool   // include per-layer version counters
	computed bool   // compute all layers before rendering
}

// renderCommand creates the render command that draws a recipe's layer
// graph as a diagram.
func (c *CLI) renderCommand() *cobra.Command {
	opts := renderOpts{format: diagramSVG}

	cmd := &cobra.Command{
		Use:   "render [recipe.toml]",
		Short: "Draw the recipe's layer graph",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateDiagramFormat(opts.format); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: recipe name with format extension)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "diagram format: svg (default), png, dot")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "include per-layer version counters")
	cmd.Flags().BoolVar(&opts.computed, "computed", false, "compute all layers before rendering")

	return cmd
}

func validateDiagramFormat(s string) error {
	switch s {
	case diagramSVG, diagramPNG, diagramDOT:
		return nil
	}
	return fmt.Errorf("invalid format: %s (must be 'svg', 'png', or 'dot')", s)
}

func (c *CLI) runRender(ctx context.Context, recipePath string, opts *renderOpts) error {
	logger := loggerFromContext(ctx)

	data, err := os.ReadFile(recipePath)
	if err != nil {
		return fmt.Errorf("read recipe: %w", err)
	}
	g, err := pipeline.ParseRecipe(data)
	if err != nil {
		return err
	}
	logger.Debug("built graph", "layers", g.Len())

	if opts.computed {
		for idx := 0; idx < g.Len(); idx++ {
			if err := g.ComputeLayer(idx); err != nil {
				return err
			}
			logger.Debug("computed layer", "index", idx)
		}
	}

	dot := render.ToDOT(g, render.Options{Detailed: opts.detailed})

	var out []byte
	switch opts.format {
	case diagramDOT:
		out = []byte(dot)
	case diagramSVG:
		out, err = render.RenderSVG(dot)
	case diagramPNG:
		out, err = render.RenderPNG(dot)
	}
	if err != nil {
		return err
	}

	path := outputPath(opts.output, recipePath, opts.format)
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	printSuccess("Rendered layer graph")
	printFile(path)
	edges := 0
	for idx := 0; idx < g.Len(); idx++ {
		edges += len(g.Parents(idx))
	}
	printStats(g.Len(), edges, false)
	return nil
}
