// Package codec bridges the element image types and raster files on disk.
//
// It is the engine's only I/O collaborator: the file source layer decodes
// through it and the pipeline persists final outputs through it. Decoding
// and encoding are delegated to disintegration/imaging, which handles the
// standard formats (PNG, JPEG, GIF, TIFF, BMP) and EXIF orientation; this
// package only converts between the decoded raster and the element model.
package codec

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"

	"github.com/disintegration/imaging"

	"github.com/mkoenig/pixelgraph/pkg/element"
)

// DecodeError reports that a source file could not be read or decoded.
type DecodeError struct {
	Path string
	Err  error
}

// Error implements the error interface.
func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying cause.
func (e *DecodeError) Unwrap() error { return e.Err }

// DecodeRGBA reads the image at path and returns it as an RGBA pixel grid.
// All pixels are converted to 8-bit non-premultiplied RGBA regardless of
// the source color model. Failures are wrapped in a *DecodeError.
func DecodeRGBA(path string) (*element.RGBA, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, &DecodeError{Path: path, Err: err}
	}
	return FromImage(img)
}

// FromImage converts a standard library image into an RGBA pixel grid.
func FromImage(img image.Image) (*element.RGBA, error) {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	nrgba, ok := img.(*image.NRGBA)
	if !ok {
		nrgba = image.NewNRGBA(image.Rect(0, 0, w, h))
		draw.Draw(nrgba, nrgba.Bounds(), img, bounds.Min, draw.Src)
	}

	pix := make([]element.RGBAPixel, w*h)
	for y := 0; y < h; y++ {
		row := nrgba.Pix[y*nrgba.Stride : y*nrgba.Stride+w*4]
		for x := 0; x < w; x++ {
			pix[y*w+x] = element.RGBAPixel{
				R: row[x*4],
				G: row[x*4+1],
				B: row[x*4+2],
				A: row[x*4+3],
			}
		}
	}
	return element.NewRGBA(w, h, pix)
}

// ToImage converts an element image into a standard library image ready
// for encoding. Binary pixels map to 0/255 gray; gray+alpha and binary+
// alpha map to NRGBA with equal color channels. Returns an error for
// values that are not element images.
func ToImage(v any) (image.Image, error) {
	switch m := v.(type) {
	case *element.Gray:
		out := image.NewGray(image.Rect(0, 0, m.Width(), m.Height()))
		copy(out.Pix, m.Pix())
		return out, nil

	case *element.Binary:
		out := image.NewGray(image.Rect(0, 0, m.Width(), m.Height()))
		for i, set := range m.Pix() {
			if set {
				out.Pix[i] = 255
			}
		}
		return out, nil

	case *element.GrayAlpha:
		out := image.NewNRGBA(image.Rect(0, 0, m.Width(), m.Height()))
		for i, px := range m.Pix() {
			out.Pix[i*4] = px.V
			out.Pix[i*4+1] = px.V
			out.Pix[i*4+2] = px.V
			out.Pix[i*4+3] = px.A
		}
		return out, nil

	case *element.BinaryAlpha:
		out := image.NewNRGBA(image.Rect(0, 0, m.Width(), m.Height()))
		for i, px := range m.Pix() {
			var v uint8
			if px.V {
				v = 255
			}
			out.Pix[i*4] = v
			out.Pix[i*4+1] = v
			out.Pix[i*4+2] = v
			out.Pix[i*4+3] = px.A
		}
		return out, nil

	case *element.RGB:
		out := image.NewNRGBA(image.Rect(0, 0, m.Width(), m.Height()))
		for i, px := range m.Pix() {
			out.Pix[i*4] = px.R
			out.Pix[i*4+1] = px.G
			out.Pix[i*4+2] = px.B
			out.Pix[i*4+3] = 255
		}
		return out, nil

	case *element.RGBA:
		out := image.NewNRGBA(image.Rect(0, 0, m.Width(), m.Height()))
		for i, px := range m.Pix() {
			out.Pix[i*4] = px.R
			out.Pix[i*4+1] = px.G
			out.Pix[i*4+2] = px.B
			out.Pix[i*4+3] = px.A
		}
		return out, nil
	}
	return nil, fmt.Errorf("cannot encode value of type %T", v)
}

// Encode serializes an element image to the named format ("png", "jpeg",
// "gif", "tiff", "bmp") and returns the encoded bytes.
func Encode(v any, format string) ([]byte, error) {
	img, err := ToImage(v)
	if err != nil {
		return nil, err
	}
	f, err := imaging.FormatFromExtension(format)
	if err != nil {
		return nil, fmt.Errorf("encode format %q: %w", format, err)
	}
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, f); err != nil {
		return nil, fmt.Errorf("encode %s: %w", format, err)
	}
	return buf.Bytes(), nil
}

// Save encodes an element image to path. The format is chosen from the
// file extension (png, jpg, gif, tif, bmp).
func Save(v any, path string) error {
	img, err := ToImage(v)
	if err != nil {
		return err
	}
	if err := imaging.Save(img, path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}
