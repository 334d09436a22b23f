package codec

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/mkoenig/pixelgraph/pkg/element"
)

// writePNG writes a tiny test image and returns its path.
func writePNG(t *testing.T, pix []color.NRGBA, w, h int) string {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i, c := range pix {
		img.SetNRGBA(i%w, i/w, c)
	}
	path := filepath.Join(t.TempDir(), "test.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encode: %v", err)
	}
	return path
}

func TestDecodeRGBA(t *testing.T) {
	path := writePNG(t, []color.NRGBA{
		{R: 255, A: 255}, {G: 255, A: 255},
		{B: 255, A: 255}, {R: 1, G: 2, B: 3, A: 4},
	}, 2, 2)

	img, err := DecodeRGBA(path)
	if err != nil {
		t.Fatalf("DecodeRGBA error: %v", err)
	}
	if img.Width() != 2 || img.Height() != 2 {
		t.Fatalf("dimensions = %dx%d, want 2x2", img.Width(), img.Height())
	}
	if got := img.At(0, 0); got != (element.RGBAPixel{R: 255, A: 255}) {
		t.Errorf("At(0,0) = %+v, want pure red", got)
	}
	if got := img.At(1, 1); got != (element.RGBAPixel{R: 1, G: 2, B: 3, A: 4}) {
		t.Errorf("At(1,1) = %+v", got)
	}
}

func TestDecodeRGBAMissingFile(t *testing.T) {
	_, err := DecodeRGBA(filepath.Join(t.TempDir(), "nope.png"))
	var de *DecodeError
	if !errors.As(err, &de) {
		t.Fatalf("error = %v, want *DecodeError", err)
	}
	if de.Path == "" {
		t.Error("DecodeError.Path is empty")
	}
}

func TestDecodeRGBAGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "junk.png")
	if err := os.WriteFile(path, []byte("not an image"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	_, err := DecodeRGBA(path)
	var de *DecodeError
	if !errors.As(err, &de) {
		t.Fatalf("error = %v, want *DecodeError", err)
	}
}

func TestToImage(t *testing.T) {
	t.Run("Gray", func(t *testing.T) {
		in, err := element.NewGray(2, 1, []uint8{0, 200})
		if err != nil {
			t.Fatal(err)
		}
		img, err := ToImage(in)
		if err != nil {
			t.Fatalf("ToImage error: %v", err)
		}
		gray, ok := img.(*image.Gray)
		if !ok {
			t.Fatalf("type = %T, want *image.Gray", img)
		}
		if gray.Pix[0] != 0 || gray.Pix[1] != 200 {
			t.Errorf("pix = %v", gray.Pix)
		}
	})

	t.Run("Binary", func(t *testing.T) {
		in, err := element.NewBinary(2, 1, []bool{true, false})
		if err != nil {
			t.Fatal(err)
		}
		img, err := ToImage(in)
		if err != nil {
			t.Fatalf("ToImage error: %v", err)
		}
		gray := img.(*image.Gray)
		if gray.Pix[0] != 255 || gray.Pix[1] != 0 {
			t.Errorf("pix = %v, want [255 0]", gray.Pix)
		}
	})

	t.Run("GrayAlpha", func(t *testing.T) {
		in, err := element.NewGrayAlpha(1, 1, []element.GrayAlphaPixel{{V: 77, A: 128}})
		if err != nil {
			t.Fatal(err)
		}
		img, err := ToImage(in)
		if err != nil {
			t.Fatalf("ToImage error: %v", err)
		}
		nrgba := img.(*image.NRGBA)
		want := []uint8{77, 77, 77, 128}
		for i, v := range nrgba.Pix[:4] {
			if v != want[i] {
				t.Errorf("pix[%d] = %d, want %d", i, v, want[i])
			}
		}
	})

	t.Run("Unsupported", func(t *testing.T) {
		if _, err := ToImage("not an image"); err == nil {
			t.Error("ToImage accepted a string")
		}
	})
}

func TestSaveRoundTrip(t *testing.T) {
	in, err := element.NewRGBA(2, 2, []element.RGBAPixel{
		{R: 255, A: 255}, {G: 255, A: 255},
		{B: 255, A: 255}, {R: 10, G: 20, B: 30, A: 255},
	})
	if err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "out.png")
	if err := Save(in, path); err != nil {
		t.Fatalf("Save error: %v", err)
	}

	back, err := DecodeRGBA(path)
	if err != nil {
		t.Fatalf("DecodeRGBA error: %v", err)
	}
	if back.Width() != 2 || back.Height() != 2 {
		t.Fatalf("dimensions = %dx%d, want 2x2", back.Width(), back.Height())
	}
	for i := range in.Pix() {
		if back.Pix()[i] != in.Pix()[i] {
			t.Errorf("pixel %d = %+v, want %+v", i, back.Pix()[i], in.Pix()[i])
		}
	}
}
