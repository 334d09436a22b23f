package pipeline

import (
	"github.com/BurntSushi/toml"

	"github.com/mkoenig/pixelgraph/pkg/errors"
	"github.com/mkoenig/pixelgraph/pkg/graph"
	"github.com/mkoenig/pixelgraph/pkg/layer"
)

// Op constants name the layer kinds a recipe can declare.
const (
	OpSource          = "source"
	OpBinaryToGray    = "binary-to-gray"
	OpRGBAToGray      = "rgba-to-gray"
	OpRGBAToGrayAlpha = "rgba-to-grayalpha"
	OpGrayToGrayAlpha = "gray-to-grayalpha"
	OpThreshold       = "threshold"
)

// Recipe is the top-level TOML document.
type Recipe struct {
	Layers []LayerSpec `toml:"layer"`
}

// LayerSpec declares one layer in a recipe. Layers are appended to the
// graph in declaration order, so inputs can only name earlier layers.
type LayerSpec struct {
	// Name optionally labels the layer so later layers can reference it.
	Name string `toml:"name"`

	// Op selects the layer kind.
	Op string `toml:"op"`

	// Path is the image file to load. Required for source layers.
	Path string `toml:"path"`

	// Threshold is the cutoff pixel value for threshold layers.
	Threshold *int64 `toml:"threshold"`

	// Ordering is the comparison for threshold layers: "less", "equal"
	// or "greater".
	Ordering string `toml:"ordering"`

	// Inputs names the layers feeding this one. When empty and the op
	// takes an input, the immediately preceding layer is used.
	Inputs []string `toml:"inputs"`
}

// ParseRecipe decodes a TOML recipe and builds the layer graph it
// describes. The returned graph has not been computed yet.
func ParseRecipe(data []byte) (*graph.Graph, error) {
	var recipe Recipe
	if err := toml.Unmarshal(data, &recipe); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidRecipe, err, "decode recipe")
	}
	return BuildGraph(&recipe)
}

// BuildGraph wires a parsed recipe into a layer graph.
func BuildGraph(recipe *Recipe) (*graph.Graph, error) {
	if len(recipe.Layers) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidRecipe, "recipe declares no layers")
	}

	g := graph.New()
	byName := make(map[string]int, len(recipe.Layers))

	for i, spec := range recipe.Layers {
		l, err := buildLayer(spec, i)
		if err != nil {
			return nil, err
		}

		parents, err := resolveInputs(spec, i, byName)
		if err != nil {
			return nil, err
		}

		idx, err := g.AddLayer(l, parents)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "add layer %d", i)
		}

		if spec.Name != "" {
			if _, dup := byName[spec.Name]; dup {
				return nil, errors.New(errors.ErrCodeDuplicateLayer,
					"layer %d: duplicate name %q", i, spec.Name)
			}
			byName[spec.Name] = idx
		}
	}

	return g, nil
}

func buildLayer(spec LayerSpec, idx int) (layer.Layer, error) {
	switch spec.Op {
	case OpSource:
		if spec.Path == "" {
			return nil, errors.New(errors.ErrCodeInvalidRecipe,
				"layer %d: source requires a path", idx)
		}
		return layer.NewSourceFile(spec.Path), nil

	case OpBinaryToGray:
		return layer.NewBinaryToGray(), nil

	case OpRGBAToGray:
		return layer.NewRGBAToGray(), nil

	case OpRGBAToGrayAlpha:
		return layer.NewRGBAToGrayAlpha(), nil

	case OpGrayToGrayAlpha:
		return layer.NewGrayToGrayAlpha(), nil

	case OpThreshold:
		if spec.Threshold == nil {
			return nil, errors.New(errors.ErrCodeInvalidRecipe,
				"layer %d: threshold requires a threshold value", idx)
		}
		t := *spec.Threshold
		if t < 0 || t > 255 {
			return nil, errors.New(errors.ErrCodeInvalidRecipe,
				"layer %d: threshold %d out of range [0, 255]", idx, t)
		}
		ordering := layer.Greater
		if spec.Ordering != "" {
			var err error
			ordering, err = layer.ParseOrdering(spec.Ordering)
			if err != nil {
				return nil, errors.Wrap(errors.ErrCodeInvalidOrdering, err,
					"layer %d", idx)
			}
		}
		return layer.NewThreshold(uint8(t), ordering), nil

	case "":
		return nil, errors.New(errors.ErrCodeInvalidRecipe, "layer %d: op is required", idx)
	}
	return nil, errors.New(errors.ErrCodeInvalidOp, "layer %d: unknown op %q", idx, spec.Op)
}

func resolveInputs(spec LayerSpec, idx int, byName map[string]int) ([]int, error) {
	if len(spec.Inputs) > 0 {
		parents := make([]int, len(spec.Inputs))
		for j, name := range spec.Inputs {
			parent, ok := byName[name]
			if !ok {
				return nil, errors.New(errors.ErrCodeUnknownInput,
					"layer %d: input %q does not name an earlier layer", idx, name)
			}
			parents[j] = parent
		}
		return parents, nil
	}

	// Source layers take no inputs; everything else defaults to chaining
	// off the previous layer.
	if spec.Op == OpSource {
		return nil, nil
	}
	if idx == 0 {
		return nil, errors.New(errors.ErrCodeUnknownInput,
			"layer 0: op %q needs an input but none precede it", spec.Op)
	}
	return []int{idx - 1}, nil
}
