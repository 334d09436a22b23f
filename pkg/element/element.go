// Package element provides the typed image containers that flow between
// layers of the computation graph.
//
// The core container is the generic pixel grid [Image], a rectangular
// buffer of an arbitrary element type with declared dimensions. On top of
// it sit distinct nominal wrappers ([Binary], [Gray], [GrayAlpha], [RGB],
// [RGBA], [BinaryAlpha]), one per colorspace. The wrapper type, not the
// underlying representation, is the contract boundary between layers:
// [GrayAlpha] and an arbitrary pair-of-bytes grid are different types even
// though they store the same bytes.
//
// Images are immutable by contract. Accessors return values or read-only
// views, and every transformation allocates a fresh image.
package element

import "fmt"

// ShapeMismatchError is returned by image constructors when the buffer
// length disagrees with the declared width and height.
type ShapeMismatchError struct {
	Width  int // declared width
	Height int // declared height
	Len    int // actual buffer length
}

// Error implements the error interface.
func (e *ShapeMismatchError) Error() string {
	return fmt.Sprintf("shape mismatch: declared %dx%d (%d elements), buffer has %d",
		e.Width, e.Height, e.Width*e.Height, e.Len)
}

// Image is a rectangular pixel grid of element type T.
// Pixels are stored in a flat row-major buffer whose length always equals
// width*height; constructors reject anything else, so a zero-value Image
// is the only empty one ever observed.
type Image[T any] struct {
	width  int
	height int
	pix    []T
}

// NewImage creates a pixel grid from a row-major buffer.
// Returns a *ShapeMismatchError if len(pix) != width*height; the buffer is
// never silently truncated or padded.
func NewImage[T any](width, height int, pix []T) (Image[T], error) {
	if len(pix) != width*height {
		return Image[T]{}, &ShapeMismatchError{Width: width, Height: height, Len: len(pix)}
	}
	return Image[T]{width: width, height: height, pix: pix}, nil
}

// Width returns the declared width in pixels.
func (m Image[T]) Width() int { return m.width }

// Height returns the declared height in pixels.
func (m Image[T]) Height() int { return m.height }

// At returns the pixel at column x, row y. Coordinates are 0-based with
// origin at the top-left; callers must stay within bounds.
func (m Image[T]) At(x, y int) T { return m.pix[y*m.width+x] }

// Pix returns the row-major pixel buffer.
// The slice is a view into the image's storage and must be treated as
// read-only.
func (m Image[T]) Pix() []T { return m.pix }

// Binary is a 1-bit image: each pixel is either set or not.
// Produced by thresholding.
type Binary struct{ Image[bool] }

// NewBinary creates a binary image from a row-major buffer.
func NewBinary(width, height int, pix []bool) (*Binary, error) {
	m, err := NewImage(width, height, pix)
	if err != nil {
		return nil, err
	}
	return &Binary{m}, nil
}

// BinaryAlpha is a 1-bit image with an 8-bit alpha channel.
type BinaryAlpha struct{ Image[BinaryAlphaPixel] }

// NewBinaryAlpha creates a binary+alpha image from a row-major buffer.
func NewBinaryAlpha(width, height int, pix []BinaryAlphaPixel) (*BinaryAlpha, error) {
	m, err := NewImage(width, height, pix)
	if err != nil {
		return nil, err
	}
	return &BinaryAlpha{m}, nil
}

// Gray is an 8-bit single-channel image.
type Gray struct{ Image[uint8] }

// NewGray creates a grayscale image from a row-major buffer.
func NewGray(width, height int, pix []uint8) (*Gray, error) {
	m, err := NewImage(width, height, pix)
	if err != nil {
		return nil, err
	}
	return &Gray{m}, nil
}

// GrayAlpha is an 8-bit single-channel image with an alpha channel.
// It is deliberately a distinct type from any other two-byte grid.
type GrayAlpha struct{ Image[GrayAlphaPixel] }

// NewGrayAlpha creates a grayscale+alpha image from a row-major buffer.
func NewGrayAlpha(width, height int, pix []GrayAlphaPixel) (*GrayAlpha, error) {
	m, err := NewImage(width, height, pix)
	if err != nil {
		return nil, err
	}
	return &GrayAlpha{m}, nil
}

// RGB is an 8-bit-per-channel color image without alpha.
type RGB struct{ Image[RGBPixel] }

// NewRGB creates an RGB image from a row-major buffer.
func NewRGB(width, height int, pix []RGBPixel) (*RGB, error) {
	m, err := NewImage(width, height, pix)
	if err != nil {
		return nil, err
	}
	return &RGB{m}, nil
}

// RGBA is an 8-bit-per-channel color image with alpha.
// This is the type the file source layer produces.
type RGBA struct{ Image[RGBAPixel] }

// NewRGBA creates an RGBA image from a row-major buffer.
func NewRGBA(width, height int, pix []RGBAPixel) (*RGBA, error) {
	m, err := NewImage(width, height, pix)
	if err != nil {
		return nil, err
	}
	return &RGBA{m}, nil
}
