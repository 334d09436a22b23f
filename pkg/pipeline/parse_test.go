package pipeline

import (
	"testing"

	"github.com/mkoenig/pixelgraph/pkg/errors"
)

func TestParseRecipeBuildsGraph(t *testing.T) {
	recipe := []byte(`
[[layer]]
name = "src"
op = "source"
path = "in.png"

[[layer]]
op = "rgba-to-gray"

[[layer]]
op = "threshold"
threshold = 128
ordering = "greater"
`)
	g, err := ParseRecipe(recipe)
	if err != nil {
		t.Fatalf("ParseRecipe: %v", err)
	}
	if got := g.Len(); got != 3 {
		t.Fatalf("node count = %d, want 3", got)
	}
	if got := g.Parents(1); len(got) != 1 || got[0] != 0 {
		t.Errorf("layer 1 parents = %v, want [0]", got)
	}
	if got := g.Parents(2); len(got) != 1 || got[0] != 1 {
		t.Errorf("layer 2 parents = %v, want [1]", got)
	}
}

func TestParseRecipeNamedInputs(t *testing.T) {
	recipe := []byte(`
[[layer]]
name = "photo"
op = "source"
path = "in.png"

[[layer]]
name = "gray"
op = "rgba-to-gray"
inputs = ["photo"]

[[layer]]
op = "threshold"
threshold = 60
inputs = ["gray"]
`)
	g, err := ParseRecipe(recipe)
	if err != nil {
		t.Fatalf("ParseRecipe: %v", err)
	}
	if got := g.Parents(2); len(got) != 1 || got[0] != 1 {
		t.Errorf("threshold parents = %v, want [1]", got)
	}
}

func TestParseRecipeErrors(t *testing.T) {
	tests := []struct {
		name   string
		recipe string
		code   errors.Code
	}{
		{
			name:   "not toml",
			recipe: `{"layer": []}`,
			code:   errors.ErrCodeInvalidRecipe,
		},
		{
			name:   "empty",
			recipe: ``,
			code:   errors.ErrCodeInvalidRecipe,
		},
		{
			name: "unknown op",
			recipe: `
[[layer]]
op = "blur"
`,
			code: errors.ErrCodeInvalidOp,
		},
		{
			name: "missing op",
			recipe: `
[[layer]]
path = "in.png"
`,
			code: errors.ErrCodeInvalidRecipe,
		},
		{
			name: "source without path",
			recipe: `
[[layer]]
op = "source"
`,
			code: errors.ErrCodeInvalidRecipe,
		},
		{
			name: "threshold without value",
			recipe: `
[[layer]]
op = "source"
path = "in.png"

[[layer]]
op = "threshold"
`,
			code: errors.ErrCodeInvalidRecipe,
		},
		{
			name: "threshold out of range",
			recipe: `
[[layer]]
op = "source"
path = "in.png"

[[layer]]
op = "threshold"
threshold = 300
`,
			code: errors.ErrCodeInvalidRecipe,
		},
		{
			name: "bad ordering",
			recipe: `
[[layer]]
op = "source"
path = "in.png"

[[layer]]
op = "threshold"
threshold = 100
ordering = "sideways"
`,
			code: errors.ErrCodeInvalidOrdering,
		},
		{
			name: "unknown input name",
			recipe: `
[[layer]]
op = "source"
path = "in.png"

[[layer]]
op = "rgba-to-gray"
inputs = ["missing"]
`,
			code: errors.ErrCodeUnknownInput,
		},
		{
			name: "first layer needs input",
			recipe: `
[[layer]]
op = "rgba-to-gray"
`,
			code: errors.ErrCodeUnknownInput,
		},
		{
			name: "duplicate name",
			recipe: `
[[layer]]
name = "a"
op = "source"
path = "in.png"

[[layer]]
name = "a"
op = "source"
path = "other.png"
`,
			code: errors.ErrCodeDuplicateLayer,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseRecipe([]byte(tt.recipe))
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if got := errors.GetCode(err); got != tt.code {
				t.Errorf("code = %s, want %s (err: %v)", got, tt.code, err)
			}
		})
	}
}

func TestValidateFormat(t *testing.T) {
	for _, format := range []string{FormatPNG, FormatJPEG, FormatGIF, FormatTIFF, FormatBMP} {
		if err := ValidateFormat(format); err != nil {
			t.Errorf("ValidateFormat(%q) = %v", format, err)
		}
	}
	if err := ValidateFormat("webp"); err == nil {
		t.Error("ValidateFormat(webp) should fail")
	}
}
