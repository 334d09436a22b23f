package layer

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/mkoenig/pixelgraph/pkg/element"
)

// Perceptual luminance weights for linear-light RGB (ITU-R BT.709).
const (
	lumR = 0.2126
	lumG = 0.7152
	lumB = 0.0722
)

// Convert is a single-input layer that applies a fixed pure function
// between two element types. The function is chosen at construction; the
// layer itself only handles the type-erasure plumbing.
type Convert[A, B any] struct {
	name   string
	op     func(A) (B, error)
	output *B
}

// NewConvert creates a conversion layer around op. The name is used for
// display only. Hosts can register conversions beyond the built-in ones
// by supplying their own op.
func NewConvert[A, B any](name string, op func(A) (B, error)) *Convert[A, B] {
	return &Convert[A, B]{name: name, op: op}
}

// Name returns the conversion's display name.
func (c *Convert[A, B]) Name() string { return c.name }

// Kind returns "convert".
func (c *Convert[A, B]) Kind() string { return "convert" }

// Compute downcasts the single input to A and applies the conversion.
func (c *Convert[A, B]) Compute(inputs []Value) (Value, Patch, error) {
	in, err := Input[A](inputs, 0)
	if err != nil {
		return nil, nil, err
	}
	out, err := c.op(in)
	if err != nil {
		return nil, nil, err
	}
	return out, nil, nil
}

// Update commits a converted image into the cached slot.
func (c *Convert[A, B]) Update(output Value, patch Patch) error {
	if patch != nil {
		return ErrUnsupportedPatch
	}
	if output == nil {
		c.output = nil
		return nil
	}
	b, err := As[B](output)
	if err != nil {
		return err
	}
	c.output = &b
	return nil
}

// Output returns the most recent conversion result, or nil before the
// first successful cycle.
func (c *Convert[A, B]) Output() Value {
	if c.output == nil {
		return nil
	}
	return *c.output
}

// NewBinaryToGray converts binary images to grayscale: set pixels become
// 255, unset pixels become 0.
func NewBinaryToGray() *Convert[*element.Binary, *element.Gray] {
	return NewConvert("binary-to-gray", binaryToGray)
}

func binaryToGray(in *element.Binary) (*element.Gray, error) {
	pix := make([]uint8, len(in.Pix()))
	for i, set := range in.Pix() {
		if set {
			pix[i] = math.MaxUint8
		}
	}
	return element.NewGray(in.Width(), in.Height(), pix)
}

// NewRGBAToGrayAlpha converts RGBA images to grayscale+alpha using
// perceptual luminance. Each channel is linearized with the sRGB piecewise
// map, the linear components are combined with the BT.709 weights, and the
// result is re-encoded by rounding 255*Y to the nearest integer. Alpha
// passes through unchanged.
func NewRGBAToGrayAlpha() *Convert[*element.RGBA, *element.GrayAlpha] {
	return NewConvert("rgba-to-grayalpha", rgbaToGrayAlpha)
}

func rgbaToGrayAlpha(in *element.RGBA) (*element.GrayAlpha, error) {
	pix := make([]element.GrayAlphaPixel, len(in.Pix()))
	for i, px := range in.Pix() {
		pix[i] = element.GrayAlphaPixel{V: luminance(px.R, px.G, px.B), A: px.A}
	}
	return element.NewGrayAlpha(in.Width(), in.Height(), pix)
}

// NewRGBAToGray converts RGBA images to grayscale with the same luminance
// math as NewRGBAToGrayAlpha, discarding alpha.
func NewRGBAToGray() *Convert[*element.RGBA, *element.Gray] {
	return NewConvert("rgba-to-gray", rgbaToGray)
}

func rgbaToGray(in *element.RGBA) (*element.Gray, error) {
	pix := make([]uint8, len(in.Pix()))
	for i, px := range in.Pix() {
		pix[i] = luminance(px.R, px.G, px.B)
	}
	return element.NewGray(in.Width(), in.Height(), pix)
}

// NewGrayToGrayAlpha widens grayscale images with a fully opaque alpha
// channel.
func NewGrayToGrayAlpha() *Convert[*element.Gray, *element.GrayAlpha] {
	return NewConvert("gray-to-grayalpha", grayToGrayAlpha)
}

func grayToGrayAlpha(in *element.Gray) (*element.GrayAlpha, error) {
	pix := make([]element.GrayAlphaPixel, len(in.Pix()))
	for i, v := range in.Pix() {
		pix[i] = element.GrayAlphaPixel{V: v, A: math.MaxUint8}
	}
	return element.NewGrayAlpha(in.Width(), in.Height(), pix)
}

// luminance maps 8-bit sRGB channels to an 8-bit perceptual luminance
// value. Linearization goes through go-colorful, which implements the
// sRGB piecewise transfer function (c/12.92 below the 0.04045 knee,
// ((c+0.055)/1.055)^2.4 above it).
func luminance(r, g, b uint8) uint8 {
	c := colorful.Color{
		R: float64(r) / 255,
		G: float64(g) / 255,
		B: float64(b) / 255,
	}
	lr, lg, lb := c.LinearRgb()
	y := lumR*lr + lumG*lg + lumB*lb
	return uint8(math.Round(y * 255))
}
