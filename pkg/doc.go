// Package pkg provides the core libraries for pixelgraph image pipelines.
//
// # Overview
//
// Pixelgraph evaluates image transformations as a graph of typed layers.
// Each layer computes one image from the images of its parent layers and
// caches the result, so hosts can recompute individual layers and poll the
// graph for changes. The pkg directory is organized into:
//
//  1. [element] - Pixel grid types shared by all layers
//  2. [layer] - Layer implementations (sources, conversions, thresholds)
//  3. [graph] - The layer graph and its evaluation contract
//  4. [codec] - Decoding and encoding raster files
//  5. [pipeline] - TOML recipes and run orchestration
//  6. [cache], [render], [observability] - Supporting infrastructure
//
// # Architecture
//
// The typical data flow through pixelgraph:
//
//	TOML recipe
//	     ↓
//	[pipeline] package (build the graph)
//	     ↓
//	[graph] package (compute layers in order)
//	     ↓
//	[codec] package (encode the final layer's image)
//	     ↓
//	PNG/JPEG/GIF/TIFF/BMP output
//
// # Quick Start
//
// Build a graph by hand and compute it:
//
//	g := graph.New()
//	src, _ := g.AddLayer(layer.NewSourceFile("photo.png"), nil)
//	gray, _ := g.AddLayer(layer.NewRGBAToGray(), []int{src})
//	bin, _ := g.AddLayer(layer.NewThreshold(128, layer.Greater), []int{gray})
//
//	for idx := 0; idx < g.Len(); idx++ {
//	    if err := g.ComputeLayer(idx); err != nil {
//	        log.Fatal(err)
//	    }
//	}
//
//	out, _ := g.Output(bin)
//	_ = codec.Save(out, "out.png")
//
// Or run a recipe through the pipeline:
//
//	runner := pipeline.NewRunner(cache.NewMemoryCache(), nil)
//	result, err := runner.Execute(ctx, pipeline.Options{RecipePath: "recipe.toml"})
package pkg
