package layer

import (
	"github.com/mkoenig/pixelgraph/pkg/codec"
	"github.com/mkoenig/pixelgraph/pkg/element"
)

// SourceFile is a root layer that decodes a fixed image file into an
// RGBA pixel grid. It has no inputs; the path is configuration set at
// construction and never changes.
type SourceFile struct {
	path   string
	output *element.RGBA
}

// NewSourceFile creates a source layer for the image at path.
// The file is not touched until the first Compute.
func NewSourceFile(path string) *SourceFile {
	return &SourceFile{path: path}
}

// Path returns the configured file path.
func (s *SourceFile) Path() string { return s.path }

// Name returns the file path as the layer's display name.
func (s *SourceFile) Name() string { return s.path }

// Kind returns "source".
func (s *SourceFile) Kind() string { return "source" }

// Compute decodes the configured file. Inputs are ignored; a source layer
// has no incoming edges. Decoding failures surface as *codec.DecodeError.
func (s *SourceFile) Compute(_ []Value) (Value, Patch, error) {
	img, err := codec.DecodeRGBA(s.path)
	if err != nil {
		return nil, nil, err
	}
	return img, nil, nil
}

// Update commits a decoded image into the cached slot.
func (s *SourceFile) Update(output Value, patch Patch) error {
	if patch != nil {
		return ErrUnsupportedPatch
	}
	if output == nil {
		s.output = nil
		return nil
	}
	img, err := As[*element.RGBA](output)
	if err != nil {
		return err
	}
	s.output = img
	return nil
}

// Output returns the most recently decoded image, or nil before the
// first successful cycle.
func (s *SourceFile) Output() Value {
	if s.output == nil {
		return nil
	}
	return s.output
}

var _ Layer = (*SourceFile)(nil)
